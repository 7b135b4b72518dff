package cli

import (
	"github.com/spf13/cobra"

	"github.com/jsnanigans/linemap/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the matcher over HTTP",
	Long: `Serve starts an HTTP endpoint: POST {"old": "...", "new": "..."} to /map
and receive the line correspondence as JSON.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:8080", "listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	srv, err := server.New(cfg.MatcherConfig(), logger)
	if err != nil {
		return err
	}
	return srv.ListenAndServe(serveAddr)
}
