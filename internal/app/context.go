// Package app assembles one invocation's application context: the
// option table, the resolved configuration, the command tree and the
// hook registry. The context replaces any process-wide registries; it
// is built once at startup, read-only after initialization, and
// discarded at process exit.
package app

import (
	"fmt"
	"io"
	"os"

	"github.com/pressctl/pressctl/pkg/command"
	"github.com/pressctl/pressctl/pkg/config"
	"github.com/pressctl/pressctl/pkg/interactive"
	"github.com/pressctl/pressctl/pkg/runner"
)

// Context carries everything one invocation needs.
type Context struct {
	Tree    *command.Tree
	Options *config.Table
	Config  *config.Resolved
	Split   *config.SplitResult
	Notices []config.Notice
	Hooks   *runner.Hooks

	Stdout io.Writer
	Stderr io.Writer
}

// DefaultOptions is the global option-spec table.
func DefaultOptions() *config.Table {
	return config.NewTable(
		config.OptionSpec{Key: "path", Runtime: config.RuntimeValue, File: true, Path: true},
		config.OptionSpec{Key: "url", Runtime: config.RuntimeValue, File: true},
		config.OptionSpec{Key: "user", Runtime: config.RuntimeValue, File: true},
		config.OptionSpec{Key: "require", Runtime: config.RuntimeValue, File: true, Path: true, Multiple: true},
		config.OptionSpec{Key: "color", Runtime: config.RuntimeFlag, File: true, Default: true},
		config.OptionSpec{Key: "debug", Runtime: config.RuntimeFlag, Default: false},
		config.OptionSpec{Key: "quiet", Runtime: config.RuntimeFlag, File: true, Default: false},
		config.OptionSpec{Key: "prompt", Runtime: config.RuntimeFlag, Default: false},
		// blog predates url and still works; the resolver classifies
		// its use and the pipeline reports it once.
		config.OptionSpec{Key: "blog", Runtime: config.RuntimeValue, Deprecated: "use --url instead"},
		// File-only: a command line may never disable commands, so the
		// token falls through to the command's own arguments.
		config.OptionSpec{Key: "disabled_commands", Runtime: config.RuntimeNone, File: true, Multiple: true},
	)
}

// New tokenizes argv and resolves the layered configuration. workDir
// anchors project-config discovery and .env loading; "" means the
// current directory.
func New(argv []string, workDir string) (*Context, error) {
	if workDir == "" {
		var err error
		if workDir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("cannot determine working directory: %w", err)
		}
	}

	options := DefaultOptions()
	split := options.SplitArgs(argv)

	config.LoadDotEnv(workDir)

	layers := make([]*config.FileLayer, 0, 2)
	global, err := config.LoadFile(config.LocateGlobal())
	if err != nil {
		// A broken global config must not take every command down.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	layers = append(layers, global)
	if path := config.LocateProject(workDir); path != "" {
		project, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		layers = append(layers, project)
	}

	resolved := config.NewResolver(options).Resolve(layers, split.Runtime)

	return &Context{
		Tree:    command.NewTree(),
		Options: options,
		Config:  resolved,
		Split:   split,
		Notices: options.DeprecatedUses(split.RuntimeKeys),
		Hooks:   runner.NewHooks(),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}, nil
}

// Run dispatches the invocation the context was built from.
func (c *Context) Run() error {
	r := &runner.Runner{
		Tree:     c.Tree,
		Config:   c.Config,
		Notices:  c.Notices,
		Hooks:    c.Hooks,
		Prompter: interactive.NewPrompter(nil),
		Stderr:   c.Stderr,
	}
	return r.Run(c.Split.Positionals, c.Split.Assoc)
}
