package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/ini"
)

type commandContext struct {
	verbose *bool
	stderr  io.Writer
}

func newCommandContext(verbose *bool) *commandContext {
	return &commandContext{verbose: verbose}
}

// logger returns a debug logger on stderr when --verbose is set, nil otherwise.
func (c *commandContext) logger() *slog.Logger {
	if c.verbose == nil || !*c.verbose || c.stderr == nil {
		return nil
	}
	return slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (c *commandContext) load(path string) (*ini.Document, error) {
	return ini.Load(path, ini.WithLogger(c.logger()))
}

func newRootCommand() *cobra.Command {
	var verbose bool

	ctx := newCommandContext(&verbose)

	rootCmd := &cobra.Command{
		Use:           "inictl",
		Short:         "Inspect and edit INI settings files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx.stderr = cmd.ErrOrStderr()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(newGetCommand(ctx))
	rootCmd.AddCommand(newSetCommand(ctx))
	rootCmd.AddCommand(newUnsetCommand(ctx))
	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newConvertCommand(ctx))
	rootCmd.AddCommand(newFmtCommand(ctx))

	return rootCmd
}
