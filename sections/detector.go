package sections

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrSectionNotFound reports that a requested section has no locatable body.
var ErrSectionNotFound = errors.New("section not found")

// CommonTitles lists the section titles academic papers use, in the order
// they usually appear. The detector also uses them as end markers.
var CommonTitles = []string{
	"Abstract",
	"Introduction",
	"Related Work",
	"Background",
	"Methodology",
	"Methods",
	"Approach",
	"Results",
	"Findings",
	"Discussion",
	"Evaluation",
	"Experiments",
	"Conclusion",
	"Conclusions",
	"Future Work",
	"Acknowledgments",
	"References",
}

// shortNumberedHeadingRe spots unknown numbered headings ("7 Ablations")
// that should still terminate a section.
var shortNumberedHeadingRe = regexp.MustCompile(`^\d+\.?\s+[A-Z]`)

// Detector finds section boundaries in extracted paper text with layout
// heuristics only; it needs no model access.
type Detector struct {
	titles   []string
	anchored map[string][]*regexp.Regexp
	anywhere map[string]*regexp.Regexp
}

// NewDetector builds a detector over CommonTitles.
func NewDetector() *Detector {
	return NewDetectorWithTitles(CommonTitles)
}

// NewDetectorWithTitles builds a detector over a custom title catalog.
func NewDetectorWithTitles(titles []string) *Detector {
	d := &Detector{
		titles:   append([]string(nil), titles...),
		anchored: make(map[string][]*regexp.Regexp, len(titles)),
		anywhere: make(map[string]*regexp.Regexp, len(titles)),
	}
	for _, title := range titles {
		q := regexp.QuoteMeta(title)
		d.anchored[strings.ToLower(title)] = []*regexp.Regexp{
			regexp.MustCompile(`(?i)^\s*` + q + `\s*:?\s*$`),
			regexp.MustCompile(`(?i)^\s*\d+\.?\s*` + q + `\s*:?\s*$`),
			regexp.MustCompile(`(?i)^\s*\d+\.\d+\.?\s*` + q + `\s*:?\s*$`),
			regexp.MustCompile(`(?i)^\s*\d+\.\d+\.\d+\.?\s*` + q + `\s*:?\s*$`),
			regexp.MustCompile(`(?i)^\s*#{1,3}\s*` + q + `\s*:?\s*$`),
		}
		d.anywhere[strings.ToLower(title)] = regexp.MustCompile(`(?i)\b\d+\.?\s+` + q + `\b`)
	}
	return d
}

func (d *Detector) patternsFor(title string) ([]*regexp.Regexp, *regexp.Regexp) {
	key := strings.ToLower(title)
	if res, ok := d.anchored[key]; ok {
		return res, d.anywhere[key]
	}
	// A title outside the catalog still gets on-the-fly patterns.
	tmp := NewDetectorWithTitles([]string{title})
	return tmp.anchored[key], tmp.anywhere[key]
}

// Extract returns the body of the titled section: from its header (on its
// own line, or buried mid-line after flowed text) to the next section
// header, with the header itself stripped.
func (d *Detector) Extract(text, title string) (string, error) {
	lines := strings.Split(text, "\n")
	anchored, anywhere := d.patternsFor(title)

	headerLine, contentStart := -1, -1
	remainder := ""
	for i, line := range lines {
		if matchesAny(anchored, line) {
			headerLine, contentStart = i, i+1
			break
		}
	}
	if headerLine == -1 {
		for i, line := range lines {
			loc := anywhere.FindStringIndex(line)
			if loc == nil {
				continue
			}
			headerLine, contentStart = i, i+1
			// A header buried mid-line may carry the start of the body
			// after it; keep that tail as the first content line.
			if tail := strings.TrimSpace(line[loc[1]:]); len(tail) > 2 {
				remainder = tail
			}
			break
		}
	}
	if headerLine == -1 {
		return "", fmt.Errorf("%w: %s", ErrSectionNotFound, title)
	}

	end := len(lines)
	for i := contentStart; i < len(lines); i++ {
		if d.isOtherSectionHeader(lines[i], title) {
			end = i
			break
		}
		trimmed := strings.TrimSpace(lines[i])
		if i > headerLine+3 && shortNumberedHeadingRe.MatchString(trimmed) &&
			len(strings.Fields(trimmed)) < 10 {
			end = i
			break
		}
	}

	var parts []string
	if remainder != "" {
		parts = append(parts, remainder)
	}
	if contentStart < end {
		parts = append(parts, lines[contentStart:end]...)
	}
	content := strings.TrimSpace(strings.Join(parts, "\n"))
	if content == "" {
		return "", fmt.Errorf("%w: %s has an empty body", ErrSectionNotFound, title)
	}
	return content, nil
}

func (d *Detector) isOtherSectionHeader(line, target string) bool {
	for _, title := range d.titles {
		if strings.EqualFold(title, target) {
			continue
		}
		if matchesAny(d.anchored[strings.ToLower(title)], line) {
			return true
		}
	}
	return false
}

func matchesAny(res []*regexp.Regexp, line string) bool {
	for _, re := range res {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
