// Package main implements the pressctl binary: the command-line front
// end for administering a content-management platform.
package main

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/pressctl/pressctl/internal/app"
	"github.com/pressctl/pressctl/pkg/runner"
)

// version is set at build time.
var version = "2.12.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	ctx, err := app.New(argv, "")
	if err != nil {
		return fail(err)
	}
	if err := app.RegisterBuiltins(ctx, version); err != nil {
		return fail(err)
	}
	if err := app.RegisterAdapters(ctx); err != nil {
		return fail(err)
	}

	// Every fatal condition, from lookup errors to handler-raised
	// conditions, lands here and nowhere deeper.
	if err := ctx.Run(); err != nil {
		return fail(err)
	}
	return 0
}

func fail(err error) int {
	pterm.Error.WithWriter(os.Stderr).Printfln("%v", err)
	return runner.ExitCode(err)
}
