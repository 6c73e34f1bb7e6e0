package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"paper_writing_agents/professor"
	"paper_writing_agents/writer"
)

func newParagraphCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "newparagraph <project>",
		Short: "Draft a fresh paragraph from the project's temp memory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			w := writer.New(a.project(args[0]), client, a.log)
			res, err := w.NewParagraph(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(res.PlainText)
			fmt.Println("\n✓ Paragraph written.")
			return nil
		},
	}
}

func reviseParagraphCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reviseparagraph <project>",
		Short: "Revise the Current Paragraph using feedback and inline comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			w := writer.New(a.project(args[0]), client, a.log)
			res, err := w.ReviseParagraph(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(res.PlainText)
			fmt.Printf("\n✓ Revised as version %d.\n", res.Version)
			return nil
		},
	}
}

func writeCmd(a *app) *cobra.Command {
	var ideasPath, templatePath string
	cmd := &cobra.Command{
		Use:   "write <project>",
		Short: "Write paper text from an ideas file organized by a template file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			w := writer.New(a.project(args[0]), client, a.log)
			res, err := w.WriteFromTemplate(cmd.Context(), ideasPath, templatePath)
			if err != nil {
				return err
			}
			fmt.Println(res.PlainText)
			fmt.Printf("\n✓ Revision #%d recorded.\n", res.Version)
			return nil
		},
	}
	cmd.Flags().StringVar(&ideasPath, "ideas", "", "ideas file (required)")
	cmd.Flags().StringVar(&templatePath, "template", "", "template file (required)")
	_ = cmd.MarkFlagRequired("ideas")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}

func reviewCmd(a *app) *cobra.Command {
	var heuristicsPath string
	cmd := &cobra.Command{
		Use:   "review <project>",
		Short: "Generate a professor todo list for the newest revision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			proj := a.project(args[0])
			prof := professor.New(client, a.log)
			todo, err := prof.GenerateTodoList(cmd.Context(),
				heuristicsPath, proj.WritingHistoryFile(), proj.TodoHistoryFile())
			if err != nil {
				return err
			}
			fmt.Println(todo)
			fmt.Println("\n✓ Todo list recorded.")
			return nil
		},
	}
	cmd.Flags().StringVar(&heuristicsPath, "heuristics", "global_memory.txt", "global writing heuristics file")
	return cmd
}

func reviseFromTodoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "revisefromtodo <project>",
		Short: "Apply the newest todo list to the newest revision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			w := writer.New(a.project(args[0]), client, a.log)
			res, err := w.ReviseFromTodo(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(res.PlainText)
			fmt.Printf("\n✓ Revision #%d recorded.\n", res.Version)
			return nil
		},
	}
}
