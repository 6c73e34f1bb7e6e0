package writer

import (
	"fmt"
	"regexp"
	"strings"
)

// InlineComment is a brace-delimited annotation the author left inside the
// paragraph text, paired with the sentence it follows.
type InlineComment struct {
	Comment        string
	TargetSentence string
}

var (
	inlineCommentRe = regexp.MustCompile(`\{([^}]*)\}`)
	spaceRunRe      = regexp.MustCompile(` +`)
	blankRunRe      = regexp.MustCompile(`\n\s*\n+`)
)

// ExtractInlineComments removes every {comment} annotation from text and
// returns the cleaned text plus the non-empty comments, each paired with the
// sentence immediately preceding it. Nested braces are not supported; an
// inner '}' ends the comment.
func ExtractInlineComments(text string) (string, []InlineComment) {
	var comments []InlineComment
	var cleaned strings.Builder
	last := 0
	for _, loc := range inlineCommentRe.FindAllStringSubmatchIndex(text, -1) {
		cleaned.WriteString(text[last:loc[0]])
		last = loc[1]
		comment := strings.TrimSpace(text[loc[2]:loc[3]])
		if comment == "" {
			continue
		}
		comments = append(comments, InlineComment{
			Comment:        comment,
			TargetSentence: targetSentence(text, loc[0]),
		})
	}
	cleaned.WriteString(text[last:])

	out := spaceRunRe.ReplaceAllString(cleaned.String(), " ")
	out = blankRunRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out), comments
}

// targetSentence walks back from the annotation to the previous sentence
// boundary. When that yields nothing (the annotation sits right after the
// boundary), the trailing 200 characters stand in for the sentence.
func targetSentence(text string, at int) string {
	preceding := text[:at]
	start := strings.LastIndexAny(preceding, ".?!\n") + 1
	sentence := strings.TrimSpace(preceding[start:])
	if sentence == "" {
		tail := preceding
		if len(tail) > 200 {
			tail = tail[len(tail)-200:]
		}
		sentence = strings.TrimSpace(tail)
	}
	return sentence
}

// FormatInlineFeedback renders comments as a numbered feedback list suitable
// for a revision prompt.
func FormatInlineFeedback(comments []InlineComment) string {
	var b strings.Builder
	for i, c := range comments {
		if c.TargetSentence != "" {
			fmt.Fprintf(&b, "%d. Sentence: %s\n   Feedback: %s\n", i+1, c.TargetSentence, c.Comment)
		} else {
			fmt.Fprintf(&b, "%d. Feedback: %s\n", i+1, c.Comment)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
