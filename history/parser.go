package history

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Separator delimits entry blocks. A body line of exactly eighty '='
// characters is indistinguishable from a block boundary and will mis-split
// the file; existing logs rely on this exact line, so it is not guarded.
const Separator = "================================================================================"

var separatorRe = regexp.MustCompile(`(?m)^={80}$`)

type flavor struct {
	kind     Kind
	numbered bool // header carries an explicit number
	renumber bool // numbers are recomputed on every rewrite
	re       *regexp.Regexp
	header   func(e Entry) string
	from     func(m []string) Entry
}

var flavors = map[Kind]*flavor{
	KindPlain: {
		kind: KindPlain,
		re:   regexp.MustCompile(`(?m)^={80}\nEntry:[ \t]*(.+)\n={80}\n`),
		header: func(e Entry) string {
			return "Entry: " + e.Timestamp
		},
		from: func(m []string) Entry {
			return Entry{Kind: KindPlain, Timestamp: strings.TrimSpace(m[1])}
		},
	},
	KindVersioned: {
		kind:     KindVersioned,
		numbered: true,
		re:       regexp.MustCompile(`(?m)^={80}\n(?i:Version)[ \t]+(\d+) - (.+?) - (.+)\n={80}\n`),
		header: func(e Entry) string {
			return fmt.Sprintf("Version %d - %s - %s", e.Seq, e.Mode, e.Timestamp)
		},
		from: func(m []string) Entry {
			n, _ := strconv.Atoi(m[1])
			return Entry{
				Kind:      KindVersioned,
				Seq:       n,
				Mode:      strings.TrimSpace(m[2]),
				Timestamp: strings.TrimSpace(m[3]),
			}
		},
	},
	KindRevision: {
		kind:     KindRevision,
		numbered: true,
		renumber: true,
		re:       regexp.MustCompile(`(?m)^={80}\nREVISION #(\d+)\nTimestamp:[ \t]*(.+)\nIdeas File:[ \t]*(.+)\nTemplate File:[ \t]*(.+)\n={80}\n`),
		header: func(e Entry) string {
			return fmt.Sprintf("REVISION #%d\nTimestamp: %s\nIdeas File: %s\nTemplate File: %s",
				e.Seq, e.Timestamp, e.Refs[RefIdeasFile], e.Refs[RefTemplateFile])
		},
		from: func(m []string) Entry {
			n, _ := strconv.Atoi(m[1])
			return Entry{
				Kind:      KindRevision,
				Seq:       n,
				Timestamp: strings.TrimSpace(m[2]),
				Refs: map[string]string{
					RefIdeasFile:    strings.TrimSpace(m[3]),
					RefTemplateFile: strings.TrimSpace(m[4]),
				},
			}
		},
	},
	KindTodo: {
		kind:     KindTodo,
		numbered: true,
		renumber: true,
		re:       regexp.MustCompile(`(?m)^={80}\nTODO LIST #(\d+)\nTimestamp:[ \t]*(.+)\nHeuristics File:[ \t]*(.+)\nWriting History File:[ \t]*(.+)\n={80}\n`),
		header: func(e Entry) string {
			return fmt.Sprintf("TODO LIST #%d\nTimestamp: %s\nHeuristics File: %s\nWriting History File: %s",
				e.Seq, e.Timestamp, e.Refs[RefHeuristicsFile], e.Refs[RefWritingHistoryFile])
		},
		from: func(m []string) Entry {
			n, _ := strconv.Atoi(m[1])
			return Entry{
				Kind:      KindTodo,
				Seq:       n,
				Timestamp: strings.TrimSpace(m[2]),
				Refs: map[string]string{
					RefHeuristicsFile:     strings.TrimSpace(m[3]),
					RefWritingHistoryFile: strings.TrimSpace(m[4]),
				},
			}
		},
	},
	KindPrompt: {
		kind: KindPrompt,
		re:   regexp.MustCompile(`(?m)^={80}\nMode:[ \t]*(.+?) \| Timestamp:[ \t]*(.+)\n={80}\n`),
		header: func(e Entry) string {
			return fmt.Sprintf("Mode: %s | Timestamp: %s", e.Mode, e.Timestamp)
		},
		from: func(m []string) Entry {
			return Entry{
				Kind:      KindPrompt,
				Mode:      strings.TrimSpace(m[1]),
				Timestamp: strings.TrimSpace(m[2]),
			}
		},
	},
}

// Parse extracts every well-formed block of the given kinds, in file order
// (newest first by convention). A block whose header does not match any of
// the kinds is skipped entirely; its separator lines still terminate the
// preceding body.
func Parse(content string, kinds ...Kind) []Entry {
	seps := separatorRe.FindAllStringIndex(content, -1)

	type hit struct {
		at, end int
		e       Entry
	}
	var hits []hit
	for _, k := range kinds {
		f, ok := flavors[k]
		if !ok {
			continue
		}
		for _, loc := range f.re.FindAllStringSubmatchIndex(content, -1) {
			m := make([]string, 0, len(loc)/2)
			for i := 0; i < len(loc); i += 2 {
				if loc[i] < 0 {
					m = append(m, "")
					continue
				}
				m = append(m, content[loc[i]:loc[i+1]])
			}
			hits = append(hits, hit{at: loc[0], end: loc[1], e: f.from(m)})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].at < hits[j].at })

	entries := make([]Entry, 0, len(hits))
	for _, h := range hits {
		bodyEnd := len(content)
		for _, sep := range seps {
			if sep[0] >= h.end {
				bodyEnd = sep[0]
				break
			}
		}
		e := h.e
		e.Body = strings.TrimSpace(content[h.end:bodyEnd])
		entries = append(entries, e)
	}
	numberByPosition(entries)
	return entries
}

// numberByPosition assigns ranks to flavors whose header carries no number:
// the newest entry of a kind gets the highest rank.
func numberByPosition(entries []Entry) {
	total := map[Kind]int{}
	for _, e := range entries {
		if !flavors[e.Kind].numbered {
			total[e.Kind]++
		}
	}
	seen := map[Kind]int{}
	for i := range entries {
		e := &entries[i]
		if flavors[e.Kind].numbered {
			continue
		}
		e.Seq = total[e.Kind] - seen[e.Kind]
		seen[e.Kind]++
	}
}

// Serialize renders entries in the order given; callers keep newest first.
func Serialize(entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(Separator)
		b.WriteByte('\n')
		b.WriteString(flavors[e.Kind].header(e))
		b.WriteByte('\n')
		b.WriteString(Separator)
		b.WriteString("\n\n")
		b.WriteString(strings.TrimRight(e.Body, "\n"))
		b.WriteString("\n\n")
	}
	return b.String()
}
