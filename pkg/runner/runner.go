// Package runner orchestrates one invocation: locate the command node,
// optionally prompt, validate against the synopsis, merge configuration
// and dispatch the handler.
//
// All fatal conditions surface as returned errors handled at the
// outermost boundary; the layers below only produce structured results
// and never terminate the process themselves.
package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cast"

	"github.com/pressctl/pressctl/pkg/command"
	"github.com/pressctl/pressctl/pkg/config"
	"github.com/pressctl/pressctl/pkg/interactive"
	"github.com/pressctl/pressctl/pkg/synopsis"
)

// BinName is the display name used in usage lines.
const BinName = "pressctl"

// Runner is the invocation pipeline. All fields are set at startup and
// read-only afterwards; a long-lived host rebuilds one per invocation.
type Runner struct {
	Tree     *command.Tree
	Config   *config.Resolved
	Notices  []config.Notice
	Hooks    *Hooks
	Prompter *interactive.Prompter
	Stderr   io.Writer
}

// Run resolves and dispatches one invocation. positionals carry the
// command path followed by the command's own arguments; assoc carries
// the command-specific associative tokens from SplitArgs.
func (r *Runner) Run(positionals []string, assoc map[string]string) error {
	r.reportDeprecations()

	node, args := r.Tree.FindDeepest(positionals)
	if !node.IsLeaf() {
		if len(args) > 0 {
			matched := r.Tree.Path(node)
			return &command.NotFoundError{
				Path:    append(matched, args[0]),
				Matched: matched,
			}
		}
		return r.subcommandUsage(node)
	}

	specs := node.ArgSpecs()

	if r.promptEnabled() {
		collected := r.Prompter.Collect(specs, args, assoc)
		// Cancellation still flows into validation so the user gets a
		// coherent arity error instead of a crash.
		args, assoc = collected.Positionals, collected.Assoc
	}

	report := synopsis.Validate(specs, args, assoc, r.Config.Map())
	for _, w := range report.Warnings {
		r.warnf("%s", w)
	}
	if !report.Ok() {
		return &FatalError{Message: fmt.Sprintf(
			"%s\n\nusage: %s %s %s",
			strings.Join(report.Fatals, "\n"),
			BinName,
			strings.Join(r.Tree.Path(node), " "),
			synopsis.Render(specs),
		)}
	}

	merged := r.mergeAssoc(assoc, report.DiscardGlobals)

	if r.Hooks != nil {
		r.Hooks.RunBefore(r.Tree.Path(node)[0])
	}

	err := node.Handler.Run(args, merged)
	var warn *WarningError
	if errors.As(err, &warn) {
		r.warnf("%s", warn.Message)
		return nil
	}
	return err
}

func (r *Runner) promptEnabled() bool {
	return r.Prompter != nil && r.Config.GetBool("prompt")
}

// mergeAssoc overlays the command's associative arguments over the
// global configuration, dropping shadowed global values first so
// command-specific precedence holds.
func (r *Runner) mergeAssoc(assoc map[string]string, discard []string) map[string]string {
	global := r.Config.Map()
	for _, key := range discard {
		delete(global, key)
	}

	merged := make(map[string]string, len(global)+len(assoc))
	for key, value := range global {
		if list, ok := value.([]string); ok {
			if len(list) > 0 {
				merged[key] = strings.Join(list, ",")
			}
			continue
		}
		merged[key] = cast.ToString(value)
	}
	for key, value := range assoc {
		merged[key] = value
	}
	return merged
}

// subcommandUsage is the fatal produced when a composite node is
// invoked directly: its usage line plus the subcommand listing.
func (r *Runner) subcommandUsage(node *command.Node) error {
	var b strings.Builder
	usage := BinName
	if path := strings.Join(r.Tree.Path(node), " "); path != "" {
		usage += " " + path
	}
	fmt.Fprintf(&b, "usage: %s <subcommand>\n\nAvailable subcommands:", usage)
	for _, child := range r.Tree.Children(node) {
		fmt.Fprintf(&b, "\n  %-12s %s", child.Name, child.Short)
	}
	return &FatalError{Message: b.String()}
}

// reportDeprecations performs the single reporting step for the pure
// classification the resolver produced.
func (r *Runner) reportDeprecations() {
	for _, n := range r.Notices {
		r.warnf("--%s is deprecated; %s", n.Key, n.Replacement)
	}
}

func (r *Runner) warnf(format string, args ...any) {
	w := r.Stderr
	if w == nil {
		w = os.Stderr
	}
	pterm.Warning.WithWriter(w).Printfln(format, args...)
}
