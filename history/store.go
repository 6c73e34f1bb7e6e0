package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

var versionNumberRe = regexp.MustCompile(`(?i)version\s+(\d+)`)

// Store reads and rewrites one log file. Appending prepends: the newest-first
// ordering forces a full-file rewrite on every mutation. A missing file is an
// empty history, never an error.
type Store struct {
	path  string
	kinds []Kind
}

// NewStore opens a store over path that recognizes the given header kinds.
func NewStore(path string, kinds ...Kind) *Store {
	if len(kinds) == 0 {
		kinds = []Kind{KindPlain}
	}
	return &Store{path: path, kinds: kinds}
}

func (s *Store) Path() string { return s.path }

func (s *Store) readRaw() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read history file %s: %w", s.path, err)
	}
	return string(data), nil
}

// All returns every well-formed entry, newest first.
func (s *Store) All() ([]Entry, error) {
	raw, err := s.readRaw()
	if err != nil {
		return nil, err
	}
	return Parse(raw, s.kinds...), nil
}

// Latest returns the structurally newest entry, ok=false when the file is
// missing or holds no well-formed block.
func (s *Store) Latest() (Entry, bool, error) {
	entries, err := s.All()
	if err != nil || len(entries) == 0 {
		return Entry{}, false, err
	}
	return entries[0], true, nil
}

// Append prepends e and rewrites the file. The assigned sequence number is
// one past the highest existing number of the same kind; for the renumbering
// flavors it ends up equal to the new entry count.
func (s *Store) Append(e Entry) (int, error) {
	entries, err := s.All()
	if err != nil {
		return 0, err
	}
	maxSeq := 0
	for _, old := range entries {
		if old.Kind == e.Kind && old.Seq > maxSeq {
			maxSeq = old.Seq
		}
	}
	e.Seq = maxSeq + 1
	entries = append([]Entry{e}, entries...)
	if err := s.rewrite(entries); err != nil {
		return 0, err
	}
	return e.Seq, nil
}

// AppendWithRefs prepends a referenced entry (revision or todo flavor).
func (s *Store) AppendWithRefs(kind Kind, body, timestamp string, refs map[string]string) (int, error) {
	return s.Append(Entry{Kind: kind, Timestamp: timestamp, Refs: refs, Body: body})
}

// AppendVersioned numbers the new entry from the textual maximum of
// "Version N" found anywhere in the file, plus one. This is deliberately a
// different numbering source than Append's per-kind maximum; existing logs
// depend on both schemes.
func (s *Store) AppendVersioned(body, mode, timestamp string) (int, error) {
	raw, err := s.readRaw()
	if err != nil {
		return 0, err
	}
	next := 1
	for _, m := range versionNumberRe.FindAllStringSubmatch(raw, -1) {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil && n >= next {
			next = n + 1
		}
	}
	e := Entry{Kind: KindVersioned, Seq: next, Mode: mode, Timestamp: timestamp, Body: body}
	entries := append([]Entry{e}, Parse(raw, s.kinds...)...)
	if err := s.rewrite(entries); err != nil {
		return 0, err
	}
	return next, nil
}

func (s *Store) rewrite(entries []Entry) error {
	renumber(entries)
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create history directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, []byte(Serialize(entries)), 0o644); err != nil {
		return fmt.Errorf("write history file %s: %w", s.path, err)
	}
	return nil
}

// renumber recomputes the descending count-based numbers of the revision and
// todo flavors. Versioned entries keep their assigned numbers.
func renumber(entries []Entry) {
	total := map[Kind]int{}
	for _, e := range entries {
		if flavors[e.Kind].renumber {
			total[e.Kind]++
		}
	}
	seen := map[Kind]int{}
	for i := range entries {
		e := &entries[i]
		if !flavors[e.Kind].renumber {
			continue
		}
		e.Seq = total[e.Kind] - seen[e.Kind]
		seen[e.Kind]++
	}
}
