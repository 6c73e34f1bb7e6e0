package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"paper_writing_agents/llm"
	"paper_writing_agents/sections"
)

func extractCmd(a *app) *cobra.Command {
	var (
		section string
		all     bool
		outDir  string
		noAI    bool
	)
	cmd := &cobra.Command{
		Use:   "extract <paper.pdf>",
		Short: "Extract sections from a paper PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pdfPath := args[0]

			// Rules alone are enough when no key is configured or AI was
			// switched off; otherwise the model gets the first shot.
			var client llm.Client
			if !noAI && a.cfg.LLM.APIKey != "" {
				c, err := a.client(cmd.Context())
				if err != nil {
					return err
				}
				client = c
			}
			strat := sections.NewStrategy(client, a.log)

			if !all {
				if section == "" {
					return fmt.Errorf("provide --section <title> or --all")
				}
				body, err := sections.ExtractOne(cmd.Context(), strat, pdfPath, section)
				if err != nil {
					return err
				}
				fmt.Println(body)
				return nil
			}

			if outDir == "" {
				base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
				outDir = filepath.Join("Extracted-sections", base)
			}
			saved, err := sections.ExtractAll(cmd.Context(), strat, pdfPath, outDir, a.log)
			if err != nil {
				return err
			}
			for _, s := range saved {
				fmt.Printf("✓ %s (%d chars) -> %s\n", s.Title, s.Chars, s.File)
			}
			fmt.Printf("\nExtracted %d sections to %s\n", len(saved), outDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&section, "section", "", "single section title to extract")
	cmd.Flags().BoolVar(&all, "all", false, "extract every common section to files")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory for --all")
	cmd.Flags().BoolVar(&noAI, "no-ai", false, "use rule-based extraction only")
	return cmd
}
