package writer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"paper_writing_agents/history"
)

// WriteFromTemplate generates paper text from an ideas file organized by a
// template file, validating relevance with up to three attempts, and records
// the result as a REVISION entry carrying both source paths.
func (w *Writer) WriteFromTemplate(ctx context.Context, ideasPath, templatePath string) (Result, error) {
	ideas, err := readRequiredFile(ideasPath, "ideas file")
	if err != nil {
		return Result{}, err
	}
	template, err := readRequiredFile(templatePath, "template file")
	if err != nil {
		return Result{}, err
	}

	text, err := w.generateWithValidation(ctx, ideas, template)
	if err != nil {
		return Result{}, err
	}
	text, _ = ExtractInlineComments(text)

	latex := w.toLaTeX(ctx, text)
	ts := time.Now().Format(timestampLayout)
	seq, err := w.historyStore().AppendWithRefs(history.KindRevision, text, ts, map[string]string{
		history.RefIdeasFile:    ideasPath,
		history.RefTemplateFile: templatePath,
	})
	if err != nil {
		return Result{}, err
	}
	if err := w.writeOutputs(text, latex); err != nil {
		return Result{}, err
	}
	w.log.Info("revision written from template",
		zap.String("project", w.proj.Name()), zap.Int("revision", seq))
	return Result{PlainText: text, LaTeX: latex, Version: seq}, nil
}

// generateWithValidation runs the bounded generate/validate loop. Provider
// errors abort immediately; a text that never validates is still returned,
// as the last attempt, with the issues logged.
func (w *Writer) generateWithValidation(ctx context.Context, ideas, template string) (string, error) {
	concepts := extractKeyConcepts(ideas)

	var text string
	correction := ""
	for attempt := 1; attempt <= maxGenerationAttempts; attempt++ {
		prompt := writeFromTemplatePrompt(ideas, template, correction)
		w.logPrompt("WriteFromTemplate", prompt)

		raw, err := w.llm.Generate(ctx, prompt)
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(raw)

		ok, issues := validateRelevance(text, concepts, ideas)
		if ok {
			return text, nil
		}
		w.log.Warn("generated text failed relevance check",
			zap.Int("attempt", attempt), zap.Strings("issues", issues))
		correction = correctionFromIssues(issues, concepts)
	}
	w.log.Warn("keeping last attempt despite failed relevance check")
	return text, nil
}

// ReviseFromTodo applies the newest todo list to the newest revision. Both
// history files must already exist.
func (w *Writer) ReviseFromTodo(ctx context.Context) (Result, error) {
	todoPath := w.proj.TodoHistoryFile()
	if _, err := os.Stat(todoPath); errors.Is(err, os.ErrNotExist) {
		return Result{}, fmt.Errorf("todo history not found: %s: %w", todoPath, os.ErrNotExist)
	}
	historyPath := w.proj.WritingHistoryFile()
	if _, err := os.Stat(historyPath); errors.Is(err, os.ErrNotExist) {
		return Result{}, fmt.Errorf("writing history not found: %s: %w", historyPath, os.ErrNotExist)
	}

	todoStore := history.NewStore(todoPath, history.KindTodo)
	todo, ok, err := todoStore.Latest()
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, fmt.Errorf("%w: todo history holds no todo list", ErrValidation)
	}

	previous, ok, err := w.historyStore().Latest()
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, fmt.Errorf("%w: writing history holds no revision", ErrValidation)
	}

	prompt := reviseFromTodoPrompt(previous.Body, todo.Body)
	w.logPrompt("ReviseFromTodo", prompt)

	raw, err := w.llm.Generate(ctx, prompt)
	if err != nil {
		return Result{}, err
	}
	text, _ := ExtractInlineComments(strings.TrimSpace(raw))

	refs := map[string]string{
		history.RefIdeasFile:    previous.Refs[history.RefIdeasFile],
		history.RefTemplateFile: previous.Refs[history.RefTemplateFile],
	}
	for k, v := range refs {
		if v == "" {
			refs[k] = "unknown"
		}
	}

	latex := w.toLaTeX(ctx, text)
	ts := time.Now().Format(timestampLayout)
	seq, err := w.historyStore().AppendWithRefs(history.KindRevision, text, ts, refs)
	if err != nil {
		return Result{}, err
	}
	if err := w.writeOutputs(text, latex); err != nil {
		return Result{}, err
	}
	w.log.Info("revision written from todo list",
		zap.String("project", w.proj.Name()), zap.Int("revision", seq))
	return Result{PlainText: text, LaTeX: latex, Version: seq}, nil
}

func readRequiredFile(path, what string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s not found: %s: %w", what, path, os.ErrNotExist)
		}
		return "", fmt.Errorf("read %s %s: %w", what, path, err)
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return "", fmt.Errorf("%w: %s %s is empty", ErrValidation, what, path)
	}
	return content, nil
}
