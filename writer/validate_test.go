package writer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paper_writing_agents/history"
	"paper_writing_agents/llm"
)

const testIdeas = `Sparse Mixture routing cuts decoding cost.
The "expert capacity" bound controls load balance.
MoE layers keep quality while activating fewer parameters.
Sparse routing and Mixture gating interact with capacity limits.`

func TestExtractKeyConcepts(t *testing.T) {
	concepts := extractKeyConcepts(testIdeas)

	assert.Contains(t, concepts, "Sparse")
	assert.Contains(t, concepts, "Mixture")
	assert.Contains(t, concepts, "expert capacity")
	assert.Contains(t, concepts, "MoE")
	assert.NotContains(t, concepts, "The")
	assert.LessOrEqual(t, len(concepts), maxKeyConcepts)
}

func TestValidateRelevanceAcceptsFaithfulText(t *testing.T) {
	generated := `Sparse Mixture routing cuts decoding cost by activating fewer
parameters per token, while the expert capacity bound keeps the load across
MoE layers balanced so quality does not degrade under sparse gating limits.`

	ok, issues := validateRelevance(generated, extractKeyConcepts(testIdeas), testIdeas)
	assert.True(t, ok, "issues: %v", issues)
}

func TestValidateRelevanceRejectsDrift(t *testing.T) {
	generated := "Bananas ripen faster in warm kitchens near other fruit."

	ok, issues := validateRelevance(generated, extractKeyConcepts(testIdeas), testIdeas)
	assert.False(t, ok)
	assert.NotEmpty(t, issues)
}

func TestWriteFromTemplateRetriesOnDrift(t *testing.T) {
	p := newTestProject(t)
	dir := t.TempDir()
	ideasPath := filepath.Join(dir, "ideas.txt")
	templatePath := filepath.Join(dir, "template.txt")
	writeFile(t, ideasPath, testIdeas)
	writeFile(t, templatePath, "Claim, mechanism, evidence.")

	faithful := `Sparse Mixture routing with an expert capacity bound lets MoE
layers activate fewer parameters while routing and gating keep decoding cost
and load balance under sparse capacity limits without losing quality.`

	calls := 0
	mock := &llm.Mock{Fn: func(prompt string) (string, error) {
		if strings.Contains(prompt, "Convert the following paragraph to LaTeX") {
			return "latex body", nil
		}
		calls++
		if calls == 1 {
			return "Completely unrelated prose about gardening.", nil
		}
		return faithful, nil
	}}

	w := New(p, mock, nil)
	res, err := w.WriteFromTemplate(context.Background(), ideasPath, templatePath)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Contains(t, res.PlainText, "Sparse Mixture routing")

	// The retry prompt must carry the correction.
	var sawCorrection bool
	for _, prompt := range mock.Prompts {
		if strings.Contains(prompt, "===== Correction =====") {
			sawCorrection = true
		}
	}
	assert.True(t, sawCorrection)

	entries, err := history.NewStore(p.WritingHistoryFile(), history.KindRevision).All()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ideasPath, entries[0].Refs[history.RefIdeasFile])
	assert.Equal(t, templatePath, entries[0].Refs[history.RefTemplateFile])
}

func TestWriteFromTemplateKeepsLastAttemptAfterRetries(t *testing.T) {
	p := newTestProject(t)
	dir := t.TempDir()
	ideasPath := filepath.Join(dir, "ideas.txt")
	templatePath := filepath.Join(dir, "template.txt")
	writeFile(t, ideasPath, testIdeas)
	writeFile(t, templatePath, "Claim, mechanism, evidence.")

	calls := 0
	mock := &llm.Mock{Fn: func(prompt string) (string, error) {
		if strings.Contains(prompt, "Convert the following paragraph to LaTeX") {
			return "latex body", nil
		}
		calls++
		return "Stubbornly off-topic text about sailing.", nil
	}}

	res, err := New(p, mock, nil).WriteFromTemplate(context.Background(), ideasPath, templatePath)
	require.NoError(t, err)
	assert.Equal(t, maxGenerationAttempts, calls)
	assert.Contains(t, res.PlainText, "sailing")
}

func TestWriteFromTemplateMissingIdeasFile(t *testing.T) {
	p := newTestProject(t)
	templatePath := filepath.Join(t.TempDir(), "template.txt")
	writeFile(t, templatePath, "flow")

	_, err := New(p, &llm.Mock{Reply: "x"}, nil).
		WriteFromTemplate(context.Background(), filepath.Join(t.TempDir(), "absent.txt"), templatePath)
	require.Error(t, err)
	assert.ErrorContains(t, err, "ideas file not found")
}

func TestReviseFromTodoAppliesNewestTodo(t *testing.T) {
	p := newTestProject(t)

	hist := history.NewStore(p.WritingHistoryFile(), history.KindRevision)
	_, err := hist.Append(history.Entry{
		Kind:      history.KindRevision,
		Timestamp: "ts",
		Refs: map[string]string{
			history.RefIdeasFile:    "ideas.txt",
			history.RefTemplateFile: "template.txt",
		},
		Body: "Previous revision text.",
	})
	require.NoError(t, err)

	todos := history.NewStore(p.TodoHistoryFile(), history.KindTodo)
	_, err = todos.Append(history.Entry{
		Kind:      history.KindTodo,
		Timestamp: "ts",
		Refs: map[string]string{
			history.RefHeuristicsFile:     "global_memory.txt",
			history.RefWritingHistoryFile: p.WritingHistoryFile(),
		},
		Body: "1. Sharpen the claim.",
	})
	require.NoError(t, err)

	mock := &llm.Mock{Reply: "Sharpened revision text."}
	res, err := New(p, mock, nil).ReviseFromTodo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Version)

	require.NotEmpty(t, mock.Prompts)
	assert.Contains(t, mock.Prompts[0], "Previous revision text.")
	assert.Contains(t, mock.Prompts[0], "1. Sharpen the claim.")

	entries, err := history.NewStore(p.WritingHistoryFile(), history.KindRevision).All()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "ideas.txt", entries[0].Refs[history.RefIdeasFile])
}

func TestReviseFromTodoRequiresBothHistories(t *testing.T) {
	p := newTestProject(t)

	_, err := New(p, &llm.Mock{Reply: "x"}, nil).ReviseFromTodo(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "todo history not found")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
