package professor

import (
	"regexp"
	"strings"
)

// Models asked for plain text still leak markdown and LaTeX markup into todo
// lists; the list is stored and re-read verbatim by the revision mode, so the
// markup is scrubbed once here.
var todoCleanups = []struct {
	re   *regexp.Regexp
	with string
}{
	{regexp.MustCompile(`\\textbf\{([^}]*)\}`), "$1"},
	{regexp.MustCompile(`\\textit\{([^}]*)\}`), "$1"},
	{regexp.MustCompile(`\\emph\{([^}]*)\}`), "$1"},
	{regexp.MustCompile(`\\item\s*`), "\n"},
	{regexp.MustCompile(`\\[a-zA-Z]+\*?\{([^}]*)\}`), "$1"},
	{regexp.MustCompile(`\\[a-zA-Z]+\*?`), ""},
	{regexp.MustCompile(`\*\*([^*]+)\*\*`), "$1"},
	{regexp.MustCompile(`\*([^*]+)\*`), "$1"},
	{regexp.MustCompile("`([^`]+)`"), "$1"},
	{regexp.MustCompile(`(?m)^#{1,6}\s*`), ""},
	{regexp.MustCompile(`[ \t]+`), " "},
	{regexp.MustCompile(` *\n`), "\n"},
	{regexp.MustCompile(`\n{3,}`), "\n\n"},
}

func cleanTodoFormat(raw string) string {
	out := raw
	for _, c := range todoCleanups {
		out = c.re.ReplaceAllString(out, c.with)
	}
	return strings.TrimSpace(out)
}
