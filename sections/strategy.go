package sections

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"paper_writing_agents/llm"
)

// Strategy extracts one titled section from already-extracted paper text.
type Strategy interface {
	ExtractSection(ctx context.Context, text, title string) (string, error)
}

// NewStrategy picks the AI-assisted strategy when a model client is
// available and falls back to pure rules otherwise.
func NewStrategy(client llm.Client, logger *zap.Logger) Strategy {
	if logger == nil {
		logger = zap.NewNop()
	}
	if client == nil {
		return &RuleBased{det: NewDetector()}
	}
	return &AIAssisted{client: client, fallback: NewDetector(), log: logger}
}

// RuleBased wraps the detector as a Strategy.
type RuleBased struct {
	det *Detector
}

func NewRuleBased() *RuleBased { return &RuleBased{det: NewDetector()} }

func (r *RuleBased) ExtractSection(_ context.Context, text, title string) (string, error) {
	return r.det.Extract(text, title)
}

// AIAssisted asks the model to carve out the section and falls back to the
// rule-based detector when the model errs or returns something too short to
// be a real section body.
type AIAssisted struct {
	client   llm.Client
	fallback *Detector
	log      *zap.Logger
}

const minAISectionLength = 100

func (a *AIAssisted) ExtractSection(ctx context.Context, text, title string) (string, error) {
	reply, err := a.client.Generate(ctx, sectionPrompt(text, title))
	if err == nil {
		body := cleanSectionReply(reply, title)
		if len(body) >= minAISectionLength {
			return body, nil
		}
		a.log.Debug("ai section extraction too short; using rules",
			zap.String("title", title), zap.Int("length", len(body)))
	} else {
		a.log.Debug("ai section extraction failed; using rules",
			zap.String("title", title), zap.Error(err))
	}
	return a.fallback.Extract(text, title)
}

func sectionPrompt(text, title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Below is the full text of an academic paper. Return the complete body of its %q section, verbatim.\n", title)
	b.WriteString("Do not include the section header, other sections, or any commentary.\n")
	b.WriteString("If the paper has no such section, return the single word NONE.\n\n")
	b.WriteString(text)
	b.WriteByte('\n')
	return b.String()
}

func cleanSectionReply(reply, title string) string {
	body := strings.TrimSpace(reply)
	if strings.EqualFold(body, "NONE") {
		return ""
	}
	// Strip a leading repetition of the header if the model kept it.
	lines := strings.SplitN(body, "\n", 2)
	first := strings.ToLower(strings.TrimLeft(strings.TrimSpace(lines[0]), "#0123456789. "))
	if strings.TrimRight(first, ": ") == strings.ToLower(title) && len(lines) == 2 {
		body = strings.TrimSpace(lines[1])
	}
	return body
}
