package professor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paper_writing_agents/history"
	"paper_writing_agents/llm"
)

func seedWritingHistory(t *testing.T, path, body string) {
	t.Helper()
	store := history.NewStore(path, history.KindPlain)
	_, err := store.Append(history.Entry{Kind: history.KindPlain, Timestamp: "ts", Body: body})
	require.NoError(t, err)
}

func TestGenerateTodoListAppendsAndReturns(t *testing.T) {
	dir := t.TempDir()
	heuristicsPath := filepath.Join(dir, "global_memory.txt")
	historyPath := filepath.Join(dir, "WritingHistory.txt")
	todoPath := filepath.Join(dir, "TodoHistory.txt")
	seedWritingHistory(t, historyPath, "The method is novel and the results are strong.")

	mock := &llm.Mock{Reply: "1. Quantify \"strong\" with the table numbers.\n2. Define the method before praising it."}
	p := New(mock, nil)

	todo, err := p.GenerateTodoList(context.Background(), heuristicsPath, historyPath, todoPath)
	require.NoError(t, err)
	assert.Contains(t, todo, "1. Quantify")

	latest, err := LatestTodo(todoPath)
	require.NoError(t, err)
	assert.Equal(t, todo, latest)

	entries, err := history.NewStore(todoPath, history.KindTodo).All()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, heuristicsPath, entries[0].Refs[history.RefHeuristicsFile])
	assert.Equal(t, historyPath, entries[0].Refs[history.RefWritingHistoryFile])

	// The heuristics file was seeded with the defaults and fed to the prompt.
	_, statErr := os.Stat(heuristicsPath)
	require.NoError(t, statErr)
	require.NotEmpty(t, mock.Prompts)
	assert.Contains(t, mock.Prompts[0], "===== Writing Heuristics =====")
	assert.Contains(t, mock.Prompts[0], "Clarity:")
	assert.Contains(t, mock.Prompts[0], "The method is novel")
}

func TestGenerateTodoListRequiresWritingHistory(t *testing.T) {
	dir := t.TempDir()
	p := New(&llm.Mock{Reply: "never called"}, nil)

	_, err := p.GenerateTodoList(context.Background(),
		filepath.Join(dir, "global_memory.txt"),
		filepath.Join(dir, "WritingHistory.txt"),
		filepath.Join(dir, "TodoHistory.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGenerateTodoListNumbersSuccessiveLists(t *testing.T) {
	dir := t.TempDir()
	historyPath := filepath.Join(dir, "WritingHistory.txt")
	todoPath := filepath.Join(dir, "TodoHistory.txt")
	seedWritingHistory(t, historyPath, "Draft text.")

	p := New(&llm.Mock{Reply: "1. Fix something."}, nil)
	for i := 0; i < 3; i++ {
		_, err := p.GenerateTodoList(context.Background(),
			filepath.Join(dir, "global_memory.txt"), historyPath, todoPath)
		require.NoError(t, err)
	}

	entries, err := history.NewStore(todoPath, history.KindTodo).All()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 3, entries[0].Seq)
	assert.Equal(t, 1, entries[2].Seq)
}

func TestLatestTodoMissingFile(t *testing.T) {
	_, err := LatestTodo(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCleanTodoFormatScrubsMarkup(t *testing.T) {
	raw := "## Review\n1. \\textbf{Rewrite} the *opening* sentence.\n\n\n2. Replace `jargon` with \\emph{plain terms}."

	got := cleanTodoFormat(raw)
	assert.Equal(t, "Review\n1. Rewrite the opening sentence.\n\n2. Replace jargon with plain terms.", got)
}
