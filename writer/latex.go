package writer

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var codeFenceRe = regexp.MustCompile("(?s)^```[a-zA-Z]*\n(.*?)\n?```$")

// latexReplacer escapes the characters that break LaTeX body text; the
// single-pass replacement never re-escapes its own output.
var latexReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// escapeLaTeX is the deterministic fallback conversion.
func escapeLaTeX(text string) string {
	return latexReplacer.Replace(text)
}

// toLaTeX asks the model for a proper conversion and falls back to plain
// escaping when the call fails or returns nothing usable.
func (w *Writer) toLaTeX(ctx context.Context, text string) string {
	raw, err := w.llm.Generate(ctx, latexPrompt(text))
	if err != nil {
		w.log.Debug("latex conversion fell back to escaping", zap.Error(err))
		return escapeLaTeX(text)
	}
	out := strings.TrimSpace(raw)
	if m := codeFenceRe.FindStringSubmatch(out); m != nil {
		out = strings.TrimSpace(m[1])
	}
	if out == "" {
		return escapeLaTeX(text)
	}
	return out
}
