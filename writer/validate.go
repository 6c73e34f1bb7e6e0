package writer

import (
	"regexp"
	"sort"
	"strings"
)

// Relevance validation guards the template-driven mode: the model sometimes
// drifts off the supplied ideas entirely, and one bounded retry loop with an
// explicit correction is cheaper than a bad revision landing in history.

const (
	maxGenerationAttempts = 3
	maxKeyConcepts        = 10
	topConceptsChecked    = 5
	minKeywordOverlap     = 0.2
	maxMissingConcepts    = 3
)

var (
	capitalizedWordRe = regexp.MustCompile(`\b[A-Z][a-zA-Z]+\b`)
	quotedTermRe      = regexp.MustCompile(`["']([^"']+)["']`)
	allCapsTermRe     = regexp.MustCompile(`\b[A-Z]{2,}\b`)
	keywordRe         = regexp.MustCompile(`\b[a-z]{4,}\b`)

	// Sentence-initial words that look like concepts but carry no content.
	commonConceptWords = map[string]bool{
		"The": true, "This": true, "That": true, "These": true, "Those": true,
		"We": true, "Our": true, "They": true, "However": true, "Therefore": true,
		"Paper": true, "Research": true, "Study": true, "Section": true,
	}
)

// extractKeyConcepts pulls the terms the generated text is expected to carry:
// the most frequent capitalized words, quoted terms, and all-caps acronyms.
func extractKeyConcepts(ideas string) []string {
	counts := map[string]int{}
	for _, w := range capitalizedWordRe.FindAllString(ideas, -1) {
		if len(w) > 2 && !commonConceptWords[w] {
			counts[w]++
		}
	}
	frequent := make([]string, 0, len(counts))
	for w := range counts {
		frequent = append(frequent, w)
	}
	sort.Slice(frequent, func(i, j int) bool {
		if counts[frequent[i]] != counts[frequent[j]] {
			return counts[frequent[i]] > counts[frequent[j]]
		}
		return frequent[i] < frequent[j]
	})

	seen := map[string]bool{}
	var concepts []string
	add := func(term string) {
		term = strings.TrimSpace(term)
		if term == "" || seen[term] || len(concepts) >= maxKeyConcepts {
			return
		}
		seen[term] = true
		concepts = append(concepts, term)
	}
	for _, w := range frequent {
		add(w)
	}
	for _, m := range quotedTermRe.FindAllStringSubmatch(ideas, -1) {
		add(m[1])
	}
	for _, w := range allCapsTermRe.FindAllString(ideas, -1) {
		add(w)
	}
	return concepts
}

// validateRelevance checks generated text against the source ideas. It fails
// when too many of the leading concepts are absent or the lowercase keyword
// overlap with the ideas drops below the floor.
func validateRelevance(generated string, concepts []string, ideas string) (bool, []string) {
	var issues []string

	lower := strings.ToLower(generated)
	missing := 0
	checked := concepts
	if len(checked) > topConceptsChecked {
		checked = checked[:topConceptsChecked]
	}
	for _, c := range checked {
		if !strings.Contains(lower, strings.ToLower(c)) {
			missing++
			issues = append(issues, "missing key concept: "+c)
		}
	}

	ideaWords := map[string]bool{}
	for _, w := range keywordRe.FindAllString(strings.ToLower(ideas), -1) {
		ideaWords[w] = true
	}
	overlapping := 0
	for _, w := range keywordRe.FindAllString(lower, -1) {
		if ideaWords[w] {
			overlapping++
			delete(ideaWords, w)
		}
	}
	total := len(ideaWords) + overlapping
	overlap := 0.0
	if total > 0 {
		overlap = float64(overlapping) / float64(total)
	}
	if overlap < minKeywordOverlap {
		issues = append(issues, "keyword overlap with the ideas is too low")
	}

	return missing < maxMissingConcepts && overlap >= minKeywordOverlap, issues
}

func correctionFromIssues(issues []string, concepts []string) string {
	var b strings.Builder
	b.WriteString("The previous attempt drifted from the supplied ideas:\n")
	for _, issue := range issues {
		b.WriteString("- " + issue + "\n")
	}
	if len(concepts) > 0 {
		b.WriteString("Make sure the text explicitly uses these terms: ")
		b.WriteString(strings.Join(concepts, ", "))
		b.WriteByte('\n')
	}
	return b.String()
}
