// Package professor implements the feedback agent: it reads the newest
// writing revision, critiques it against the global writing heuristics, and
// appends an actionable todo list to the todo history.
package professor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"paper_writing_agents/history"
	"paper_writing_agents/llm"
	"paper_writing_agents/memory"
)

// ErrValidation marks precondition failures detected before any model call.
var ErrValidation = errors.New("validation failed")

const timestampLayout = "2006-01-02 15:04:05"

type Professor struct {
	llm llm.Client
	log *zap.Logger
}

func New(client llm.Client, logger *zap.Logger) *Professor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Professor{llm: client, log: logger}
}

// GenerateTodoList critiques the newest entry of historyPath against the
// heuristics file and appends the resulting todo list to todoPath. The
// writing history must exist; a missing heuristics file is created with the
// default heuristics. Returns the cleaned todo text.
func (p *Professor) GenerateTodoList(ctx context.Context, heuristicsPath, historyPath, todoPath string) (string, error) {
	if _, err := os.Stat(historyPath); errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("writing history not found: %s: %w", historyPath, os.ErrNotExist)
	}

	heuristics, err := memory.EnsureGlobal(heuristicsPath)
	if err != nil {
		return "", err
	}

	writingStore := history.NewStore(historyPath,
		history.KindRevision, history.KindVersioned, history.KindPlain)
	latest, ok, err := writingStore.Latest()
	if err != nil {
		return "", err
	}
	if !ok || strings.TrimSpace(latest.Body) == "" {
		return "", fmt.Errorf("%w: writing history holds no reviewable text", ErrValidation)
	}

	prompt := todoPrompt(latest.Body, heuristics[memory.GlobalSections[0]])
	raw, err := p.llm.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	todo := cleanTodoFormat(raw)
	if todo == "" {
		return "", errors.New("model returned an empty todo list")
	}

	todoStore := history.NewStore(todoPath, history.KindTodo)
	seq, err := todoStore.AppendWithRefs(history.KindTodo, todo,
		time.Now().Format(timestampLayout), map[string]string{
			history.RefHeuristicsFile:     heuristicsPath,
			history.RefWritingHistoryFile: historyPath,
		})
	if err != nil {
		return "", err
	}
	p.log.Info("todo list generated", zap.Int("number", seq))
	return todo, nil
}

// LatestTodo returns the newest todo list body of path. The file must exist.
func LatestTodo(path string) (string, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("todo history not found: %s: %w", path, os.ErrNotExist)
	}
	store := history.NewStore(path, history.KindTodo)
	latest, ok, err := store.Latest()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: todo history holds no todo list", ErrValidation)
	}
	return latest.Body, nil
}

func todoPrompt(writing string, heuristics []string) string {
	var b strings.Builder
	b.WriteString("You are a professor reviewing a student's paper draft. Critique the ")
	b.WriteString("draft below against each writing heuristic and produce a numbered ")
	b.WriteString("todo list of concrete revisions.\n\n")

	b.WriteString("===== Writing Heuristics =====\n")
	for _, h := range heuristics {
		b.WriteString("- " + h + "\n")
	}
	b.WriteString("\n===== Draft =====\n")
	b.WriteString(writing)
	b.WriteString("\n\nRequirements:\n")
	b.WriteString("- Plain text only: no markdown, no LaTeX markup.\n")
	b.WriteString("- Each item names the sentence or passage it applies to and the change to make.\n")
	b.WriteString("- Order items by importance.\n")
	return b.String()
}
