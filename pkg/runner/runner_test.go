package runner

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/pressctl/pressctl/pkg/command"
	"github.com/pressctl/pressctl/pkg/config"
	"github.com/pressctl/pressctl/pkg/interactive"
	"github.com/pressctl/pressctl/pkg/process"
)

type recordingHandler struct {
	called bool
	args   []string
	assoc  map[string]string
	err    error
}

func (h *recordingHandler) Run(args []string, assocArgs map[string]string) error {
	h.called = true
	h.args = args
	h.assoc = assocArgs
	return h.err
}

type scriptReader struct {
	responses []string
	pos       int
}

func (r *scriptReader) ReadLine(prompt string) (string, error) {
	if r.pos >= len(r.responses) {
		return "", errors.New("interrupted")
	}
	line := r.responses[r.pos]
	r.pos++
	return line, nil
}

func testOptions() *config.Table {
	return config.NewTable(
		config.OptionSpec{Key: "url", Runtime: config.RuntimeValue, File: true},
		config.OptionSpec{Key: "user", Runtime: config.RuntimeValue, File: true},
		config.OptionSpec{Key: "prompt", Runtime: config.RuntimeFlag, Default: false},
		config.OptionSpec{Key: "require", Runtime: config.RuntimeValue, File: true, Multiple: true},
	)
}

type fixture struct {
	runner *Runner
	create *recordingHandler
	delete *recordingHandler
	stderr *bytes.Buffer
}

func newFixture(t *testing.T, runtime map[string]any) *fixture {
	t.Helper()

	f := &fixture{
		create: &recordingHandler{},
		delete: &recordingHandler{},
		stderr: &bytes.Buffer{},
	}

	tree := command.NewTree()
	mustAdd(t, tree, []string{"term", "create"},
		&command.Node{Handler: f.create, Synopsis: "<taxonomy> <term> [--slug=<slug>] [--porcelain]"})
	mustAdd(t, tree, []string{"term", "delete"},
		&command.Node{Handler: f.delete, Synopsis: "<taxonomy> <term-id>..."})

	f.runner = &Runner{
		Tree:   tree,
		Config: config.NewResolver(testOptions()).Resolve(nil, runtime),
		Hooks:  NewHooks(),
		Stderr: f.stderr,
	}
	return f
}

func mustAdd(t *testing.T, tree *command.Tree, path []string, node *command.Node) {
	t.Helper()
	if _, err := tree.Add(path, node); err != nil {
		t.Fatal(err)
	}
}

func TestRunDispatchesHandler(t *testing.T) {
	f := newFixture(t, map[string]any{"user": "admin"})

	err := f.runner.Run(
		[]string{"term", "create", "category", "Fruit"},
		map[string]string{"slug": "fruit"})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if !f.create.called {
		t.Fatal("handler not invoked")
	}
	if len(f.create.args) != 2 || f.create.args[0] != "category" {
		t.Errorf("args = %v", f.create.args)
	}
	// Merged assoc: global config under the command's own args.
	if f.create.assoc["slug"] != "fruit" {
		t.Errorf("assoc = %v, want slug from the command line", f.create.assoc)
	}
	if f.create.assoc["user"] != "admin" {
		t.Errorf("assoc = %v, want global user merged in", f.create.assoc)
	}
}

func TestRunCommandSpecificWins(t *testing.T) {
	f := newFixture(t, map[string]any{"url": "https://global.example.com"})

	// url is not in the synopsis, so it stays a command-specific assoc
	// token that must shadow the global value.
	tree := f.runner.Tree
	generic := &recordingHandler{}
	mustAdd(t, tree, []string{"option", "update"},
		&command.Node{Handler: generic, Synopsis: "<key> [--<field>=<value>]"})

	err := f.runner.Run([]string{"option", "update", "home"},
		map[string]string{"url": "https://cli.example.com"})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if generic.assoc["url"] != "https://cli.example.com" {
		t.Errorf("assoc url = %q, want the command-specific value", generic.assoc["url"])
	}
}

func TestRunMultipleValuesJoined(t *testing.T) {
	f := newFixture(t, map[string]any{"require": []string{"a.php", "b.php"}})

	if err := f.runner.Run([]string{"term", "create", "category", "Fruit"}, nil); err != nil {
		t.Fatal(err)
	}
	if f.create.assoc["require"] != "a.php,b.php" {
		t.Errorf("require = %q, want values joined in layer order", f.create.assoc["require"])
	}
}

func TestRunCommandNotFound(t *testing.T) {
	f := newFixture(t, nil)

	err := f.runner.Run([]string{"term", "merge", "1", "2"}, nil)

	var nf *command.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Run() error = %v, want NotFoundError", err)
	}
	if ExitCode(err) != 1 {
		t.Errorf("ExitCode = %d, want 1", ExitCode(err))
	}
}

func TestRunCompositeShowsSubcommands(t *testing.T) {
	f := newFixture(t, nil)

	err := f.runner.Run([]string{"term"}, nil)

	var fatal *FatalError
	if !errors.As(err, &fatal) {
		t.Fatalf("Run() error = %v, want FatalError", err)
	}
	for _, want := range []string{"usage: pressctl term <subcommand>", "create", "delete"} {
		if !strings.Contains(fatal.Message, want) {
			t.Errorf("usage %q missing %q", fatal.Message, want)
		}
	}
}

func TestRunValidationFatalSkipsHandler(t *testing.T) {
	f := newFixture(t, nil)

	err := f.runner.Run([]string{"term", "create", "category"},
		map[string]string{"unknown": "x"})

	var fatal *FatalError
	if !errors.As(err, &fatal) {
		t.Fatalf("Run() error = %v, want FatalError", err)
	}
	if f.create.called {
		t.Error("handler must not run after a fatal validation error")
	}
	for _, want := range []string{"not enough positional arguments", "--unknown", "usage: pressctl term create"} {
		if !strings.Contains(fatal.Message, want) {
			t.Errorf("aggregate %q missing %q", fatal.Message, want)
		}
	}
}

func TestRunHandlerWarningContinues(t *testing.T) {
	f := newFixture(t, nil)
	f.create.err = Warnf("term already exists")

	err := f.runner.Run([]string{"term", "create", "category", "Fruit"}, nil)

	if err != nil {
		t.Fatalf("Run() error = %v, want warning swallowed", err)
	}
	if !strings.Contains(f.stderr.String(), "term already exists") {
		t.Error("warning not printed")
	}
	if ExitCode(err) != 0 {
		t.Errorf("ExitCode = %d, want 0", ExitCode(err))
	}
}

func TestRunHandlerFatal(t *testing.T) {
	f := newFixture(t, nil)
	f.create.err = Fatalf("taxonomy does not exist")

	err := f.runner.Run([]string{"term", "create", "category", "Fruit"}, nil)

	var fatal *FatalError
	if !errors.As(err, &fatal) {
		t.Fatalf("Run() error = %v, want FatalError", err)
	}
	if ExitCode(err) != 1 {
		t.Errorf("ExitCode = %d, want 1", ExitCode(err))
	}
}

func TestRunPromptingFillsRepeating(t *testing.T) {
	f := newFixture(t, map[string]any{"prompt": true})
	f.runner.Prompter = interactive.NewPrompter(&scriptReader{responses: []string{"category", "5 6 7"}})

	if err := f.runner.Run([]string{"term", "delete"}, nil); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	want := []string{"category", "5", "6", "7"}
	if len(f.delete.args) != len(want) {
		t.Fatalf("args = %v, want %v", f.delete.args, want)
	}
	for i := range want {
		if f.delete.args[i] != want[i] {
			t.Errorf("args = %v, want %v", f.delete.args, want)
		}
	}
}

// Cancelling mid-prompt must surface as a normal arity error.
func TestRunPromptCancellationValidates(t *testing.T) {
	f := newFixture(t, map[string]any{"prompt": true})
	f.runner.Prompter = interactive.NewPrompter(&scriptReader{})

	err := f.runner.Run([]string{"term", "create"}, nil)

	var fatal *FatalError
	if !errors.As(err, &fatal) {
		t.Fatalf("Run() error = %v, want FatalError", err)
	}
	if !strings.Contains(fatal.Message, "not enough positional arguments") {
		t.Errorf("message %q, want arity error", fatal.Message)
	}
	if f.create.called {
		t.Error("handler must not run after cancellation")
	}
}

func TestRunFiresHookBeforeHandler(t *testing.T) {
	f := newFixture(t, nil)

	var order []string
	if err := f.runner.Hooks.RegisterBefore("term", func() {
		order = append(order, "hook")
	}); err != nil {
		t.Fatal(err)
	}
	f.create.err = nil

	if err := f.runner.Run([]string{"term", "create", "category", "Fruit"}, nil); err != nil {
		t.Fatal(err)
	}
	order = append(order, "handler-done")
	if len(order) != 2 || order[0] != "hook" {
		t.Errorf("order = %v, want hook first", order)
	}
	if !f.create.called {
		t.Error("handler not invoked after hook")
	}
}

func TestRunReportsDeprecations(t *testing.T) {
	f := newFixture(t, nil)
	f.runner.Notices = []config.Notice{{Key: "blog", Replacement: "use --url instead"}}

	if err := f.runner.Run([]string{"term", "create", "category", "Fruit"}, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(f.stderr.String(), "use --url instead") {
		t.Error("deprecation notice not reported")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"fatal", Fatalf("boom"), 1},
		{"subprocess status", &process.ExitError{Code: 7}, 7},
		{"plain error", errors.New("x"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
