// Package process implements the scoped subprocess hand-off: launching
// an external program takes over this process's standard streams for
// its duration and blocks until it exits.
package process

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
)

// EnvRelaunchBin overrides the command used when the tool re-invokes
// itself as a fresh subprocess.
const EnvRelaunchBin = "PRESSCTL_BIN"

// ExitError carries a child process's exit status up to the pipeline
// boundary, where it becomes this process's own exit code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("subprocess exited with status %d", e.Code)
}

// Options configures a launch. Zero values inherit this process's
// streams and propagate the child's exit status.
type Options struct {
	Stdin          io.Reader
	Stdout, Stderr io.Writer
	// SuppressExit discards a non-zero child status instead of
	// returning it as an ExitError.
	SuppressExit bool
}

// Launch runs the named program and blocks until it exits. The child
// owns the configured streams for its lifetime; there is no fork of
// control flow. A non-zero child status returns as *ExitError unless
// suppressed.
func Launch(name string, args []string, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}

	cmd := exec.Command(name, args...)
	cmd.Stdin = opts.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = opts.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = opts.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if opts.SuppressExit {
			return nil
		}
		return &ExitError{Code: exitErr.ExitCode()}
	}
	return fmt.Errorf("failed to launch %s: %w", name, err)
}

// Relaunch re-invokes this tool as a fresh subprocess, carrying over
// the named global options as --key=value arguments ahead of args. The
// binary comes from PRESSCTL_BIN when set, otherwise the running
// executable.
func Relaunch(args []string, global map[string]string, carry []string, opts *Options) error {
	bin := os.Getenv(EnvRelaunchBin)
	if bin == "" {
		var err error
		if bin, err = os.Executable(); err != nil {
			return fmt.Errorf("cannot locate own executable: %w", err)
		}
	}

	carried := make([]string, 0, len(carry))
	sort.Strings(carry)
	for _, key := range carry {
		if value, ok := global[key]; ok && value != "" {
			carried = append(carried, fmt.Sprintf("--%s=%s", key, value))
		}
	}

	return Launch(bin, append(carried, args...), opts)
}
