package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"paper_writing_agents/project"
)

func createProjectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "createproject <name>",
		Short: "Scaffold a new writing project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.Create(a.project(args[0]).Root)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Project created at %s\n", p.Root)
			fmt.Println("  Fill Memory/TempMemory.txt and run: paperagent newparagraph", p.Name())
			return nil
		},
	}
}

func updateMemoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "updatememory <project>",
		Short: "Summarize Output/StagedOutput.txt into the project's Previous Content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			sentences, err := a.project(args[0]).UpdateMemoryFromStaged(cmd.Context(), client)
			if err != nil {
				return err
			}
			for i, s := range sentences {
				fmt.Printf("%d. %s\n", i+1, s)
			}
			fmt.Printf("\n✓ Previous Content updated with %d sentences.\n", len(sentences))
			return nil
		},
	}
}
