package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/babycare/internal/client/cli"
	"github.com/dmitrijs2005/babycare/internal/client/config"
	"github.com/dmitrijs2005/babycare/internal/logging"
)

// RootOptions holds flags shared by all commands.
type RootOptions struct {
	Verbose bool

	// args feed the config loader; cobra does not parse the config flags.
	args   []string
	stderr io.Writer
}

func (o *RootOptions) load() (*config.Config, logging.Logger) {
	cfg := config.LoadConfigFrom(o.args)
	level := cfg.LogLevel
	if o.Verbose {
		level = "debug"
	}
	return cfg, logging.NewTextLogger(o.stderr, level)
}

// NewRootCommand builds the babycare command tree. Without a subcommand it
// starts the interactive client.
func NewRootCommand(args []string) *cobra.Command {
	opts := &RootOptions{args: args, stderr: os.Stderr}

	cmd := &cobra.Command{
		Use:   "babycare",
		Short: "Track immunizations, milestones and growth for your baby",
		Long: `babycare is a terminal client for the baby care backend.

Configuration flags (-a -t -d -b -i -p -l -o -c -e) are read by the config
loader and may be combined with any command.`,
		SilenceUsage:       true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		Args:               cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger := opts.load()
			app, err := cli.NewApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			app.Run(cmd.Context())
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(newRouteCommand(opts))
	cmd.AddCommand(newLogoutCommand(opts))

	return cmd
}

func newRouteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:                "route",
		Short:              "Print the screen a fresh start would open",
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		Args:               cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger := opts.load()
			app, err := cli.NewApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer app.AuthService().Close(cmd.Context())

			route := app.Resolver().ResolveInitialRoute(cmd.Context())
			_, err = fmt.Fprintln(cmd.OutOrStdout(), route)
			return err
		},
	}
}

func newLogoutCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:                "logout",
		Short:              "Forget the stored session and local data",
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		Args:               cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger := opts.load()
			app, err := cli.NewApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer app.AuthService().Close(cmd.Context())

			if err := app.AuthService().Logout(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return err
		},
	}
}
