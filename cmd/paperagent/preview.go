package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"

	"paper_writing_agents/history"
)

const previewShell = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>%s - latest revision</title>
<style>body{max-width:42em;margin:2em auto;font-family:Georgia,serif;line-height:1.5}</style>
</head>
<body>
%s</body>
</html>
`

func previewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <project>",
		Short: "Render the newest history entry to Output/Preview.html",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj := a.project(args[0])
			store := history.NewStore(proj.WritingHistoryFile(),
				history.KindPlain, history.KindVersioned, history.KindRevision)
			latest, ok, err := store.Latest()
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("writing history of %s holds no entries", proj.Name())
			}

			var buf bytes.Buffer
			if err := goldmark.Convert([]byte(latest.Body), &buf); err != nil {
				return fmt.Errorf("render preview: %w", err)
			}
			html := fmt.Sprintf(previewShell, proj.Name(), buf.String())
			if err := os.MkdirAll(proj.OutputDir(), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(proj.PreviewFile(), []byte(html), 0o644); err != nil {
				return fmt.Errorf("write preview %s: %w", proj.PreviewFile(), err)
			}
			fmt.Printf("✓ Preview written to %s\n", proj.PreviewFile())
			return nil
		},
	}
}
