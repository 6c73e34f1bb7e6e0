package sections

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ExtractedSection describes one section saved by ExtractAll.
type ExtractedSection struct {
	Number int
	Title  string
	File   string
	Chars  int
}

// ExtractOne pulls a single titled section straight from a PDF.
func ExtractOne(ctx context.Context, strat Strategy, pdfPath, title string) (string, error) {
	text, err := ExtractText(pdfPath)
	if err != nil {
		return "", err
	}
	return strat.ExtractSection(ctx, text, title)
}

// ExtractAll walks the common title catalog and saves every section found in
// the PDF to outDir as <n>_<snake_title>.txt, numbering only the sections
// that exist. Missing sections are skipped, not errors.
func ExtractAll(ctx context.Context, strat Strategy, pdfPath, outDir string, logger *zap.Logger) ([]ExtractedSection, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	text, err := ExtractText(pdfPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", outDir, err)
	}

	var saved []ExtractedSection
	num := 1
	for _, title := range CommonTitles {
		body, err := strat.ExtractSection(ctx, text, title)
		if err != nil {
			if errors.Is(err, ErrSectionNotFound) {
				continue
			}
			return saved, err
		}
		if strings.TrimSpace(body) == "" {
			continue
		}

		name := fmt.Sprintf("%d_%s.txt", num, snake(title))
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, []byte(body+"\n"), 0o644); err != nil {
			return saved, fmt.Errorf("write section file %s: %w", path, err)
		}
		saved = append(saved, ExtractedSection{Number: num, Title: title, File: path, Chars: len(body)})
		logger.Info("section saved", zap.String("title", title), zap.String("file", name))
		num++
	}
	return saved, nil
}

func snake(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "_")
}
