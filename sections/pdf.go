// Package sections locates and extracts named sections (Abstract,
// Introduction, ...) from academic papers, starting from raw PDF text.
package sections

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText pulls the plain text of every page of the PDF at path,
// concatenated with page breaks normalized to single newlines.
func ExtractText(path string) (string, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("pdf file not found: %s: %w", path, os.ErrNotExist)
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single damaged page should not sink the whole paper.
			continue
		}
		b.WriteString(cleanPageText(text))
		b.WriteByte('\n')
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", fmt.Errorf("pdf %s yielded no extractable text", path)
	}
	return out, nil
}

var (
	trailingSpaceRe = regexp.MustCompile(`[ \t]+\n`)
	manyBlanksRe    = regexp.MustCompile(`\n{3,}`)
)

func cleanPageText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = trailingSpaceRe.ReplaceAllString(text, "\n")
	text = manyBlanksRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
