package writer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractInlineCommentsPairsWithPrecedingSentence(t *testing.T) {
	text := "Alpha sentence. {fix clarity} Beta sentence."

	cleaned, comments := ExtractInlineComments(text)
	assert.Equal(t, "Alpha sentence. Beta sentence.", cleaned)
	require.Len(t, comments, 1)
	assert.Equal(t, "fix clarity", comments[0].Comment)
	assert.Equal(t, "Alpha sentence.", comments[0].TargetSentence)
}

func TestExtractInlineCommentsDropsEmptyComment(t *testing.T) {
	cleaned, comments := ExtractInlineComments("Text {  } more text")
	assert.Equal(t, "Text more text", cleaned)
	assert.Empty(t, comments)
}

func TestExtractInlineCommentsMidSentenceTarget(t *testing.T) {
	text := "The model converges {cite the proof} under mild assumptions."

	cleaned, comments := ExtractInlineComments(text)
	assert.Equal(t, "The model converges under mild assumptions.", cleaned)
	require.Len(t, comments, 1)
	assert.Equal(t, "The model converges", comments[0].TargetSentence)
}

func TestExtractInlineCommentsMultiple(t *testing.T) {
	text := "First point. {tighten} Second point? {add citation} Done."

	cleaned, comments := ExtractInlineComments(text)
	assert.Equal(t, "First point. Second point? Done.", cleaned)
	require.Len(t, comments, 2)
	assert.Equal(t, "First point.", comments[0].TargetSentence)
	assert.Equal(t, "Second point?", comments[1].TargetSentence)
}

func TestExtractInlineCommentsCollapsesBlankRuns(t *testing.T) {
	cleaned, _ := ExtractInlineComments("Para one.\n\n\n\nPara two. {x}")
	assert.Equal(t, "Para one.\n\nPara two.", cleaned)
}

func TestExtractInlineCommentsNoNesting(t *testing.T) {
	// An inner '}' terminates the comment; the remainder stays in the text.
	cleaned, comments := ExtractInlineComments("Claim. {outer {inner} rest}")
	require.Len(t, comments, 1)
	assert.Equal(t, "outer {inner", comments[0].Comment)
	assert.Contains(t, cleaned, "rest}")
}

func TestFormatInlineFeedback(t *testing.T) {
	out := FormatInlineFeedback([]InlineComment{
		{Comment: "fix clarity", TargetSentence: "Alpha sentence."},
		{Comment: "cite source"},
	})
	assert.Contains(t, out, "1. Sentence: Alpha sentence.")
	assert.Contains(t, out, "Feedback: fix clarity")
	assert.Contains(t, out, "2. Feedback: cite source")
}
