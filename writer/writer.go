// Package writer implements the drafting agent: it assembles prompts from
// project memory, calls the configured model, and round-trips every result
// through the project's plain-text stores.
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
	"paper_writing_agents/llm"
	"paper_writing_agents/memory"
	"paper_writing_agents/project"
)

// ErrValidation marks precondition failures detected before any model call.
var ErrValidation = errors.New("validation failed")

const timestampLayout = "2006-01-02 15:04:05"

// Result is the outcome of one writing or revision operation.
type Result struct {
	PlainText string
	LaTeX     string
	Version   int
}

type Writer struct {
	proj *project.Project
	llm  llm.Client
	log  *zap.Logger
}

func New(proj *project.Project, client llm.Client, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{proj: proj, llm: client, log: logger}
}

// historyStore recognizes every flavor the writing history can hold: fresh
// paragraphs, versioned revisions, and template-driven revisions.
func (w *Writer) historyStore() *history.Store {
	return history.NewStore(w.proj.WritingHistoryFile(),
		history.KindPlain, history.KindVersioned, history.KindRevision)
}

// NewParagraph drafts a fresh paragraph from temp and project memory and
// records it as the newest history entry.
func (w *Writer) NewParagraph(ctx context.Context) (Result, error) {
	temp, err := memory.LoadTemp(w.proj.TempMemoryFile())
	if err != nil {
		return Result{}, err
	}
	proj, err := memory.LoadProject(w.proj.ProjectMemoryFile())
	if err != nil {
		return Result{}, err
	}

	prompt := newParagraphPrompt(temp, proj)
	w.logPrompt("NewParagraph", prompt)

	raw, err := w.llm.Generate(ctx, prompt)
	if err != nil {
		return Result{}, err
	}
	text, stray := ExtractInlineComments(strings.TrimSpace(raw))
	if len(stray) > 0 {
		w.log.Debug("model emitted inline annotations; stripped",
			zap.Int("count", len(stray)))
	}

	latex := w.toLaTeX(ctx, text)
	ts := time.Now().Format(timestampLayout)

	if _, err := w.historyStore().Append(history.Entry{
		Kind:      history.KindPlain,
		Timestamp: ts,
		Body:      text,
	}); err != nil {
		return Result{}, err
	}
	if err := w.writeOutputs(text, latex); err != nil {
		return Result{}, err
	}
	w.log.Info("paragraph written", zap.String("project", w.proj.Name()))
	return Result{PlainText: text, LaTeX: latex}, nil
}

// ReviseParagraph revises the Current Paragraph held in temp memory. The
// feedback comes from the Revision Feedback section, from {inline comments}
// embedded in the paragraph, or both; having neither is a validation error.
func (w *Writer) ReviseParagraph(ctx context.Context) (Result, error) {
	temp, err := memory.LoadTemp(w.proj.TempMemoryFile())
	if err != nil {
		return Result{}, err
	}

	current := strings.TrimSpace(strings.Join(temp["Current Paragraph"], "\n"))
	if current == "" {
		return Result{}, fmt.Errorf("%w: temp memory has no Current Paragraph to revise", ErrValidation)
	}

	cleaned, comments := ExtractInlineComments(current)
	feedback := strings.TrimSpace(strings.Join(temp["Revision Feedback"], "\n"))
	if feedback == "" && len(comments) > 0 {
		feedback = "Address every inline comment listed below."
	}
	if feedback == "" {
		return Result{}, fmt.Errorf("%w: no revision feedback and no inline comments", ErrValidation)
	}

	prompt := reviseParagraphPrompt(cleaned, feedback, comments)
	w.logPrompt("ReviseParagraph", prompt)

	raw, err := w.llm.Generate(ctx, prompt)
	if err != nil {
		return Result{}, err
	}
	text, _ := ExtractInlineComments(strings.TrimSpace(raw))
	latex := w.toLaTeX(ctx, text)
	ts := time.Now().Format(timestampLayout)

	version, err := w.historyStore().AppendVersioned(text, "ReviseParagraph", ts)
	if err != nil {
		return Result{}, err
	}
	if err := w.writeOutputs(text, latex); err != nil {
		return Result{}, err
	}
	w.log.Info("paragraph revised",
		zap.String("project", w.proj.Name()), zap.Int("version", version))
	return Result{PlainText: text, LaTeX: latex, Version: version}, nil
}

// writeOutputs overwrites the rendered output files and mirrors the plain
// text into the temp memory Output section.
func (w *Writer) writeOutputs(text, latex string) error {
	if err := os.WriteFile(w.proj.PlaintextFile(), []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("write output file %s: %w", w.proj.PlaintextFile(), err)
	}
	if err := os.WriteFile(w.proj.LatexFile(), []byte(latex+"\n"), 0o644); err != nil {
		return fmt.Errorf("write output file %s: %w", w.proj.LatexFile(), err)
	}
	temp, err := memory.LoadTemp(w.proj.TempMemoryFile())
	if err != nil {
		return err
	}
	temp["Output"] = splitNonEmptyLines(text)
	return memory.Save(w.proj.TempMemoryFile(), temp, memory.TempSections)
}

// logPrompt appends the exact prompt to the project's audit log. Failures
// are logged and swallowed; the log must never block a writing run.
func (w *Writer) logPrompt(mode, prompt string) {
	store := history.NewStore(w.proj.PromptLogFile(), history.KindPrompt)
	if _, err := store.Append(history.Entry{
		Kind:      history.KindPrompt,
		Mode:      mode,
		Timestamp: time.Now().Format(timestampLayout),
		Body:      prompt,
	}); err != nil {
		w.log.Warn("prompt log append failed", zap.Error(err))
	}
}

func splitNonEmptyLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			out = append(out, s)
		}
	}
	return out
}
