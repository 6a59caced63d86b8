// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command catalogctl is the operator CLI for LocalLibrary.
//
// It shares the database configuration of the API server and exposes the
// tasks the public API does not: schema migrations and account administration.
//
//	catalogctl migrate up
//	catalogctl migrate status
//	catalogctl user create alice --email alice@example.com
//	catalogctl user grant alice catalog.can_mark_returned
//	catalogctl user revoke alice catalog.can_mark_returned
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
