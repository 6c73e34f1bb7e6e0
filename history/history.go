// Package history maintains newest-first, append-only revision logs as plain
// text files. Every entry is a block delimited by lines of exactly eighty '='
// characters; several header flavors share the same block shape and may
// coexist in one file.
package history

// Kind selects the header flavor of a log entry.
type Kind string

const (
	// KindPlain labels entries headed by "Entry: <timestamp>".
	KindPlain Kind = "plain"
	// KindVersioned labels entries headed by "Version <n> - <mode> - <timestamp>".
	KindVersioned Kind = "versioned"
	// KindRevision labels entries headed by "REVISION #<n>" plus source file references.
	KindRevision Kind = "revision"
	// KindTodo labels entries headed by "TODO LIST #<n>" plus source file references.
	KindTodo Kind = "todo"
	// KindPrompt labels audit entries headed by "Mode: <m> | Timestamp: <ts>".
	KindPrompt Kind = "prompt"
)

// Ref keys carried by the revision and todo flavors.
const (
	RefIdeasFile          = "ideas_file"
	RefTemplateFile       = "template_file"
	RefHeuristicsFile     = "heuristics_file"
	RefWritingHistoryFile = "writing_history_file"
)

// Entry is one block of a log file. Seq is the header number for flavors
// that carry one, and a position-derived rank (newest highest) otherwise.
type Entry struct {
	Kind      Kind
	Seq       int
	Timestamp string
	Mode      string
	Refs      map[string]string
	Body      string
}
