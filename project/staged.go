package project

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"paper_writing_agents/llm"
	"paper_writing_agents/memory"
)

const maxSummarySentences = 10

var (
	listMarkerRe = regexp.MustCompile(`^\s*(?:\d+[.)]|[-•*])\s*`)

	// Lines a model sometimes emits around the sentence list rather than as
	// part of it.
	instructionLineRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^here (?:are|is)\b`),
		regexp.MustCompile(`(?i)^the following\b`),
		regexp.MustCompile(`(?i)^below (?:are|is)\b`),
		regexp.MustCompile(`(?i)^(?:sure|certainly|of course)[,!.]`),
		regexp.MustCompile(`(?i)^\s*sentences?\s*:?\s*$`),
		regexp.MustCompile(`(?i)let me know\b`),
	}
)

// UpdateMemoryFromStaged summarizes Output/StagedOutput.txt into at most ten
// standalone sentences and installs them as the project's Previous Content.
// The staged file must exist.
func (p *Project) UpdateMemoryFromStaged(ctx context.Context, client llm.Client) ([]string, error) {
	staged := p.StagedOutputFile()
	data, err := os.ReadFile(staged)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("staged output not found: %s: %w", staged, os.ErrNotExist)
		}
		return nil, fmt.Errorf("read staged output %s: %w", staged, err)
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return nil, fmt.Errorf("staged output %s is empty", staged)
	}

	prompt := stagedSummaryPrompt(content)
	reply, err := client.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	sentences := parseSummarySentences(reply)
	if len(sentences) == 0 {
		return nil, errors.New("summary produced no usable sentences")
	}

	mem, err := memory.LoadProject(p.ProjectMemoryFile())
	if err != nil {
		return nil, err
	}
	mem["Previous Content"] = sentences
	if err := memory.Save(p.ProjectMemoryFile(), mem, memory.ProjectSections); err != nil {
		return nil, err
	}
	return sentences, nil
}

func stagedSummaryPrompt(content string) string {
	var b strings.Builder
	b.WriteString("Summarize the following paper content into at most 10 standalone sentences.\n")
	b.WriteString("Each sentence must capture a distinct idea from the content; avoid overlap.\n")
	b.WriteString("Return one sentence per line with no numbering and no commentary.\n\n")
	b.WriteString("Content:\n")
	b.WriteString(content)
	b.WriteString("\n")
	return b.String()
}

// parseSummarySentences keeps substantive lines: markers stripped, chatter
// and fragments under 20 characters dropped, at most ten retained.
func parseSummarySentences(reply string) []string {
	var out []string
	for _, line := range strings.Split(reply, "\n") {
		s := strings.TrimSpace(listMarkerRe.ReplaceAllString(line, ""))
		if len(s) < 20 {
			continue
		}
		skip := false
		for _, re := range instructionLineRes {
			if re.MatchString(s) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		out = append(out, s)
		if len(out) == maxSummarySentences {
			break
		}
	}
	return out
}
