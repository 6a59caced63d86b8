// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taibuivan/locallibrary/internal/platform/config"
)

// app carries what every subcommand needs once the root has loaded it.
type app struct {
	cfg *config.Database
	log *slog.Logger
}

func newRootCommand() *cobra.Command {
	state := &app{}
	var (
		envFile string
		verbose bool
	)

	root := &cobra.Command{
		Use:          "catalogctl",
		Short:        "LocalLibrary operator tooling",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			state.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})).
				With(slog.String("app", "catalogctl"))

			cfg, err := config.LoadDatabase(envFile)
			if err != nil {
				return err
			}
			state.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file read before the environment")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(newMigrateCommand(state), newUserCommand(state))
	return root
}
