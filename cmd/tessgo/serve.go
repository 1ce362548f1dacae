package main

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/tessgo/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdin/stdout",
	Long: `Run a Model Context Protocol server that exposes OCR tools over
stdin/stdout. Configure it in your MCP client; logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		defer svc.Close()

		logger.Info().Str("version", Version).Str("commit", GitCommit).Msg("starting MCP server")
		srv := server.New(svc,
			server.WithLogger(logger),
			server.WithVersion(Version),
			server.WithDPI(cfg.DPI),
		)
		return srv.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
