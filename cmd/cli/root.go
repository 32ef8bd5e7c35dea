package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"newsletter-admin-go/pkg/cli"
	"newsletter-admin-go/pkg/cli/logger"
	"newsletter-admin-go/pkg/config"
)

// state is filled by the root command before any subcommand runs.
type state struct {
	cfg *config.Config
	app *cli.App
}

func newRootCmd() *cobra.Command {
	st := &state{}

	root := &cobra.Command{
		Use:           "newsletter-admin",
		Short:         "Manage newsletter members, post links and webhooks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return errors.Wrap(err, "failed to load config")
			}
			logger.Init(cfg.Log.File)
			st.cfg = cfg
			st.app = cli.NewApp(cfg)
			st.app.SetOutput(cmd.OutOrStdout())
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.CloseLog()
		},
		// With no subcommand the interactive TUI starts.
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.app.Run()
		},
	}

	root.AddCommand(
		newTUICmd(st),
		newMembersCmd(st),
		newPostsCmd(st),
		newLinksCmd(st),
		newWebhooksCmd(st),
		newRegisterCmd(st),
		newWhoAmICmd(st),
		newConfigCmd(st),
	)
	return root
}

func newTUICmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive interface",
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.app.Run()
		},
	}
}

func newRegisterCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "register <email>",
		Short: "Register a user and save its API key to the config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.app.RegisterUser(cmd.Context(), args[0])
		},
	}
}

func newWhoAmICmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the user the configured API key belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.app.WhoAmI(cmd.Context())
		},
	}
}

func newConfigCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the CLI configuration",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the current configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return st.app.ShowConfig()
			},
		},
		&cobra.Command{
			Use:     "set <section.key=value>",
			Short:   "Set a configuration value",
			Example: "  newsletter-admin config set cli.base_url=http://localhost:8080",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := st.app.SetConfig(args[0]); err != nil {
					return err
				}
				cmd.Println("Configuration updated successfully")
				return nil
			},
		},
	)
	return cmd
}
