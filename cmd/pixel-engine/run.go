package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/pixel-engine-mcp/internal/codec"
	"github.com/ironsheep/pixel-engine-mcp/internal/script"
	"github.com/ironsheep/pixel-engine-mcp/internal/workspace"
)

var (
	runQuality  int
	runCommands bool
)

var runCmd = &cobra.Command{
	Use:   "run <script | ->",
	Short: "Execute a command script; '-' reads from stdin",
	Long: `Execute a command script against a fresh workspace.

Each line is a command followed by its arguments, for example:

  load photo.ppm photo
  blur photo soft split 50
  save soft.png soft

Use --commands to list every command.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if runCommands {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runScript,
}

func init() {
	runCmd.Flags().IntVar(&runQuality, "quality", codec.DefaultJPEGQuality, "JPEG quality for save (1-100)")
	runCmd.Flags().BoolVar(&runCommands, "commands", false, "list the script commands and exit")
	rootCmd.AddCommand(runCmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if runCommands {
		fmt.Fprintln(out, strings.Join(script.Commands(), "\n"))
		return nil
	}

	runner := script.NewRunner(workspace.NewStore(),
		script.WithOutput(out),
		script.WithJPEGQuality(runQuality),
		script.WithLogger(logVerbose),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if args[0] == "-" {
		return runner.Run(ctx, cmd.InOrStdin())
	}
	return runner.RunFile(ctx, args[0])
}
