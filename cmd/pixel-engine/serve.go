package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/pixel-engine-mcp/internal/script"
	"github.com/ironsheep/pixel-engine-mcp/internal/server"
	"github.com/ironsheep/pixel-engine-mcp/internal/workspace"
)

var serveInit string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdin/stdout",
	Long: `Run the MCP server over stdin/stdout.

This server communicates via MCP protocol over stdin/stdout.
Configure it in your MCP client. Set ` + logLevelEnv + `=debug to log
every request to stderr.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveInit, "init", "", "script to run before serving, e.g. to preload images")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	store := workspace.NewStore()
	if serveInit != "" {
		// Script output would corrupt the protocol stream; keep it in the log.
		runner := script.NewRunner(store, script.WithLogger(logVerbose))
		if err := runner.RunFile(cmd.Context(), serveInit); err != nil {
			return fmt.Errorf("init script %s: %w", serveInit, err)
		}
		logVerbose("Preloaded %d images from %s", store.Len(), serveInit)
	}

	srv := server.New(server.WithStore(store), server.WithVersion(Version))
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := srv.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
