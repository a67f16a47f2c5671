package app

import (
	"github.com/pterm/pterm"
)

// Checker is the narrow contract to the remote release service. The
// HTTP side lives outside this repository.
type Checker interface {
	LatestVersion() (string, error)
}

// RegisterUpdateCheck installs a pre-invoke hook for each named
// top-level command that forces a release check immediately before the
// handler runs. The check is synchronous and not cancellable; its
// outcome is purely informational.
func RegisterUpdateCheck(c *Context, current string, checker Checker, commands ...string) error {
	for _, name := range commands {
		if err := c.Hooks.RegisterBefore(name, func() {
			runUpdateCheck(c, current, checker)
		}); err != nil {
			return err
		}
	}
	return nil
}

func runUpdateCheck(c *Context, current string, checker Checker) {
	spinner, _ := pterm.DefaultSpinner.WithWriter(c.Stderr).Start("Checking for updates")

	latest, err := checker.LatestVersion()
	switch {
	case err != nil:
		spinner.Warning("Update check failed: ", err.Error())
	case latest != "" && latest != current:
		spinner.Info("Update available: " + latest)
	default:
		spinner.Success("pressctl is up to date")
	}
}
