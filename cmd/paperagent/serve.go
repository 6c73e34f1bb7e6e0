package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"paper_writing_agents/server"
)

func serveCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the writer modes over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			srv, err := server.New(client, a.cfg.ProjectsDir, a.log)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.ServerAddr
			}
			httpSrv := &http.Server{
				Addr:              addr,
				Handler:           srv.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			fmt.Printf("Listening on %s\n", addr)
			return httpSrv.ListenAndServe()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
