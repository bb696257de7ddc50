package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ironsheep/pixel-engine-mcp/internal/server"
)

// logLevelEnv enables debug logging when set to "debug".
const logLevelEnv = "PIXEL_ENGINE_LOG_LEVEL"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "pixel-engine",
	Short: "RGB image processing engine with an MCP server and a script runner",
	Long: `pixel-engine applies point transforms, convolution filters, histogram
colour correction, levels, wavelet compression, downscaling and masked
operations to images held in a named workspace.

Run "pixel-engine serve" from an MCP client, or "pixel-engine run" to
execute a command script.`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: configureLogging,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"pixel-engine %s (%s/%s, %s)\n  Build time: %s\n  Git commit: %s\n",
		Version, runtime.GOOS, runtime.GOARCH, runtime.Version(), BuildTime, GitCommit,
	))
}

// configureLogging sends logs to stderr; stdout carries MCP traffic or script output.
func configureLogging(_ *cobra.Command, _ []string) error {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if os.Getenv(logLevelEnv) == "debug" {
		verbose = true
	}
	server.SetDebug(verbose)
	logVerbose("pixel-engine %s (built %s, commit %s)", Version, BuildTime, GitCommit)
	return nil
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}
