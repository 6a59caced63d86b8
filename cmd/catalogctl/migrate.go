// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/locallibrary/internal/platform/migration"
)

func newMigrateCommand(state *app) *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	migrate.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := migration.RunUp(state.cfg.DatabaseURL, state.cfg.MigrationPath, state.log); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				status, err := migration.Version(state.cfg.DatabaseURL, state.cfg.MigrationPath, state.log)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), describeStatus(status))
				return nil
			},
		},
	)
	return migrate
}

func describeStatus(status migration.Status) string {
	switch {
	case status.Empty:
		return "no migrations applied"
	case status.Dirty:
		return fmt.Sprintf("version %d (dirty, manual intervention required)", status.Version)
	default:
		return fmt.Sprintf("version %d", status.Version)
	}
}
