package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lingqianapp/lingqian/pkg/buildinfo"
)

// Execute runs the lingqian CLI and returns an error if any command
// fails. This is the main entry point for the CLI application.
//
// The root command wires all subcommands (draw, card, browse, serve,
// cache), configures logging based on the --verbose flag, and attaches
// the logger to the command context so every command retrieves it via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "lingqian",
		Short:        "Lingqian draws fortune signs and renders share cards",
		Long:         `Lingqian is a fortune sign service: it draws signs from a localized sign set, renders them as share card images, and serves both over an HTTP API.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newDrawCmd())
	root.AddCommand(newCardCmd())
	root.AddCommand(newBrowseCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}
