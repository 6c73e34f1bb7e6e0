// paperagent is the command-line entry point for the paper writing agents.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"paper_writing_agents/config"
	"paper_writing_agents/llm"
	"paper_writing_agents/project"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the loaded configuration and logger into every subcommand.
type app struct {
	cfgPath  string
	provider string
	verbose  bool

	cfg config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "paperagent",
		Short:         "Multi-agent academic paper writing pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "config.yaml", "config file path")
	root.PersistentFlags().StringVar(&a.provider, "provider", "", "override the llm provider")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newParagraphCmd(a),
		reviseParagraphCmd(a),
		writeCmd(a),
		reviewCmd(a),
		reviseFromTodoCmd(a),
		extractCmd(a),
		createProjectCmd(a),
		updateMemoryCmd(a),
		previewCmd(a),
		serveCmd(a),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.provider != "" {
		cfg.LLM.Provider = a.provider
		cfg.ResolveAPIKey()
	}
	a.cfg = cfg

	if a.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		a.log = logger
	} else {
		a.log = zap.NewNop()
	}
	return nil
}

func (a *app) client(ctx context.Context) (llm.Client, error) {
	return llm.New(ctx, llm.Settings{
		Provider: a.cfg.LLM.Provider,
		Model:    a.cfg.LLM.Model,
		APIKey:   a.cfg.LLM.APIKey,
		BaseURL:  a.cfg.LLM.BaseURL,
	})
}

// project resolves a project argument: explicit paths are taken as-is,
// bare names live under the configured projects directory.
func (a *app) project(arg string) *project.Project {
	if filepath.IsAbs(arg) || strings.ContainsRune(arg, os.PathSeparator) {
		return project.At(arg)
	}
	return project.At(filepath.Join(a.cfg.ProjectsDir, arg))
}
