// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/migration"
)

/*
TestReadPassword_Piped verifies that a non-terminal stdin yields its first line.
*/
func TestReadPassword_Piped(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"line", "s3cret-pass\nignored\n", "s3cret-pass", false},
		{"crlf", "s3cret-pass\r\n", "s3cret-pass", false},
		{"no newline", "s3cret-pass", "s3cret-pass", false},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{}
			cmd.SetIn(strings.NewReader(tt.input))

			got, err := readPassword(cmd)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestDescribeStatus verifies the migrate status wording.
*/
func TestDescribeStatus(t *testing.T) {
	assert.Equal(t, "no migrations applied", describeStatus(migration.Status{Empty: true}))
	assert.Equal(t, "version 3", describeStatus(migration.Status{Version: 3}))
	assert.Contains(t, describeStatus(migration.Status{Version: 3, Dirty: true}), "dirty")
}

/*
TestRootCommand_Arguments verifies argument checks run before any database work.
*/
func TestRootCommand_Arguments(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/locallibrary")

	tests := [][]string{
		{"user", "grant", "alice"},
		{"user", "create"},
		{"migrate", "up", "extra"},
	}

	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			root := newRootCommand()
			var stderr bytes.Buffer
			root.SetOut(&stderr)
			root.SetErr(&stderr)
			root.SetArgs(append(args, "--env-file", t.TempDir()+"/missing.env"))

			assert.Error(t, root.Execute())
		})
	}
}
