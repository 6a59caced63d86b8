// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/taibuivan/locallibrary/internal/platform/postgres"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
	"github.com/taibuivan/locallibrary/internal/users/auth"
)

func newUserCommand(state *app) *cobra.Command {
	user := &cobra.Command{
		Use:   "user",
		Short: "Administer accounts and permission grants",
	}
	user.AddCommand(newUserCreateCommand(state), newUserGrantCommand(state, true), newUserGrantCommand(state, false))
	return user
}

func newUserCreateCommand(state *app) *cobra.Command {
	var input auth.CreateUserInput

	create := &cobra.Command{
		Use:   "create <username>",
		Short: "Create an account, prompting for its password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}
			input.Username = args[0]
			input.Password = password

			return withAccounts(cmd.Context(), state, func(service *auth.Service) error {
				created, err := service.CreateUser(cmd.Context(), input)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", created.Username, created.ID)
				return nil
			})
		},
	}

	create.Flags().StringVar(&input.Email, "email", "", "contact address")
	create.Flags().StringVar(&input.FirstName, "first-name", "", "given name")
	create.Flags().StringVar(&input.LastName, "last-name", "", "family name")
	create.Flags().BoolVar(&input.Superuser, "superuser", false, "grant every permission implicitly")
	return create
}

func newUserGrantCommand(state *app, grant bool) *cobra.Command {
	use, short := "grant", "Give a permission to an account"
	if !grant {
		use, short = "revoke", "Take a permission away from an account"
	}

	return &cobra.Command{
		Use:   use + " <username> <permission>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			username, permission := args[0], sec.Permission(args[1])

			return withAccounts(cmd.Context(), state, func(service *auth.Service) error {
				change := service.Revoke
				if grant {
					change = service.Grant
				}
				if err := change(cmd.Context(), username, permission); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", use, username, permission)
				return nil
			})
		},
	}
}

// withAccounts opens a pool for the duration of fn. Token issuance is not
// needed offline, so the service gets no token provider.
func withAccounts(ctx context.Context, state *app, fn func(*auth.Service) error) error {
	pool, err := postgres.NewPool(ctx, state.cfg.DatabaseURL, state.log)
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(auth.NewService(auth.NewUserRepository(pool), nil, state.log))
}

// readPassword prompts twice without echo on a terminal and reads a single
// line otherwise, so the password can be piped in from scripts.
func readPassword(cmd *cobra.Command) (string, error) {
	if file, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		password, err := promptHidden(cmd, file, "Password: ")
		if err != nil {
			return "", err
		}
		confirm, err := promptHidden(cmd, file, "Password (again): ")
		if err != nil {
			return "", err
		}
		if password != confirm {
			return "", errors.New("passwords do not match")
		}
		return password, nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("empty password")
	}
	return password, nil
}

func promptHidden(cmd *cobra.Command, file *os.File, prompt string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	raw, err := term.ReadPassword(int(file.Fd()))
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}
