// Package memory stores agent working memory as human-editable text files:
// "===== Title =====" section headers followed by one bullet item per line.
package memory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sections maps a section title to its bullet items, in file order.
type Sections map[string][]string

// Section schemas per file role. Save order is fixed so files stay diffable.
var (
	ProjectSections = []string{"Key Ideas", "Previous Content"}

	TempSections = []string{
		"Writing Context",
		"Topic Sentence",
		"Bullet Points",
		"Template Flow",
		"Current Paragraph",
		"Revision Feedback",
		"Output",
	}

	GlobalSections = []string{"Writing Heuristics"}

	// DefaultHeuristics seed the global memory file when it does not exist.
	DefaultHeuristics = []string{
		"Clarity: Each paragraph should express one main idea clearly.",
		"Structure: Begin with a topic sentence, support it, then transition.",
		"Academic Tone: Prefer precise, formal language over colloquialisms.",
		"Evidence: Claims need support from the provided ideas or sources.",
		"Coherence: Sentences should flow logically from one to the next.",
	}
)

// Load reads the sections of path, returning every recognized title with its
// items. A missing file yields all recognized sections empty. Items under
// unrecognized titles are dropped; non-bullet lines are ignored.
func Load(path string, recognized []string) (Sections, error) {
	result := make(Sections, len(recognized))
	for _, title := range recognized {
		result[title] = nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return result, nil
		}
		return nil, fmt.Errorf("read memory file %s: %w", path, err)
	}

	parsed := make(Sections)
	var current string
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "=====") && strings.HasSuffix(trimmed, "=====") {
			current = strings.TrimSpace(strings.ReplaceAll(trimmed, "=", ""))
			continue
		}
		if current == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "•") {
			item := strings.TrimSpace(strings.TrimLeft(trimmed, "-• \t"))
			if item != "" {
				parsed[current] = append(parsed[current], item)
			}
		}
	}

	for _, title := range recognized {
		if items, ok := parsed[title]; ok {
			result[title] = items
		}
	}
	return result, nil
}

// Save writes m to path in the given section order, one "- " bullet per item.
// Sections absent from m are written empty so the file shape stays stable.
func Save(path string, m Sections, order []string) error {
	var b strings.Builder
	for _, title := range order {
		fmt.Fprintf(&b, "===== %s =====\n", title)
		for _, item := range m[title] {
			b.WriteString("- ")
			b.WriteString(strings.TrimSpace(item))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create memory directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write memory file %s: %w", path, err)
	}
	return nil
}

// LoadProject reads a project memory file (Key Ideas, Previous Content).
func LoadProject(path string) (Sections, error) { return Load(path, ProjectSections) }

// LoadTemp reads a temp memory file (the per-run writing scratchpad).
func LoadTemp(path string) (Sections, error) { return Load(path, TempSections) }

// LoadGlobal reads the global heuristics file, falling back to the built-in
// defaults when the file is absent.
func LoadGlobal(path string) (Sections, error) {
	m, err := Load(path, GlobalSections)
	if err != nil {
		return nil, err
	}
	if len(m[GlobalSections[0]]) == 0 {
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			m[GlobalSections[0]] = append([]string(nil), DefaultHeuristics...)
		}
	}
	return m, nil
}

// EnsureGlobal creates the global heuristics file with the default items if
// it does not exist, and returns its sections either way.
func EnsureGlobal(path string) (Sections, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		m := Sections{GlobalSections[0]: append([]string(nil), DefaultHeuristics...)}
		if err := Save(path, m, GlobalSections); err != nil {
			return nil, err
		}
		return m, nil
	}
	return Load(path, GlobalSections)
}
