// Package project defines the on-disk layout of one writing project and the
// scaffolding that creates it.
//
//	<root>/Memory/ProjectMemory.txt    long-lived key ideas and prior content
//	<root>/Memory/TempMemory.txt       per-run writing scratchpad
//	<root>/Intermediate/               histories and the prompt audit log
//	<root>/Output/                     rendered text, LaTeX, staged content
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"paper_writing_agents/memory"
)

type Project struct {
	Root string
}

// At wraps an existing (or soon to exist) project directory.
func At(root string) *Project { return &Project{Root: root} }

func (p *Project) Name() string { return filepath.Base(p.Root) }

func (p *Project) MemoryDir() string       { return filepath.Join(p.Root, "Memory") }
func (p *Project) IntermediateDir() string { return filepath.Join(p.Root, "Intermediate") }
func (p *Project) OutputDir() string       { return filepath.Join(p.Root, "Output") }

func (p *Project) ProjectMemoryFile() string {
	return filepath.Join(p.MemoryDir(), "ProjectMemory.txt")
}
func (p *Project) TempMemoryFile() string {
	return filepath.Join(p.MemoryDir(), "TempMemory.txt")
}
func (p *Project) WritingHistoryFile() string {
	return filepath.Join(p.IntermediateDir(), "WritingHistory.txt")
}
func (p *Project) TodoHistoryFile() string {
	return filepath.Join(p.IntermediateDir(), "TodoHistory.txt")
}
func (p *Project) PromptLogFile() string {
	return filepath.Join(p.IntermediateDir(), "prompt.txt")
}
func (p *Project) LatexFile() string {
	return filepath.Join(p.OutputDir(), "Latex.txt")
}
func (p *Project) PlaintextFile() string {
	return filepath.Join(p.OutputDir(), "Plaintext.txt")
}
func (p *Project) StagedOutputFile() string {
	return filepath.Join(p.OutputDir(), "StagedOutput.txt")
}
func (p *Project) PreviewFile() string {
	return filepath.Join(p.OutputDir(), "Preview.html")
}

// Create scaffolds the project directory tree and seeds empty memory files.
// History files are not seeded; a missing history is an empty one.
func Create(root string) (*Project, error) {
	p := At(root)
	for _, dir := range []string{p.MemoryDir(), p.IntermediateDir(), p.OutputDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create project directory %s: %w", dir, err)
		}
	}
	if err := memory.Save(p.ProjectMemoryFile(), memory.Sections{}, memory.ProjectSections); err != nil {
		return nil, err
	}
	if err := memory.Save(p.TempMemoryFile(), memory.Sections{}, memory.TempSections); err != nil {
		return nil, err
	}
	if err := os.WriteFile(p.PlaintextFile(), nil, 0o644); err != nil {
		return nil, fmt.Errorf("seed output file %s: %w", p.PlaintextFile(), err)
	}
	return p, nil
}
