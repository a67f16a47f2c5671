package runner

import "fmt"

// Hooks holds pre-invoke side effects keyed by top-level command name.
// At most one hook per name; it runs synchronously, immediately before
// the handler, and is not cancellable. Used e.g. to force a
// remote-update check ahead of upgrade-style commands.
type Hooks struct {
	before map[string]func()
}

// NewHooks creates an empty hook registry.
func NewHooks() *Hooks {
	return &Hooks{before: make(map[string]func())}
}

// RegisterBefore installs fn for the top-level command name. A second
// registration for the same name fails.
func (h *Hooks) RegisterBefore(command string, fn func()) error {
	if _, exists := h.before[command]; exists {
		return fmt.Errorf("a pre-invoke hook is already registered for %q", command)
	}
	h.before[command] = fn
	return nil
}

// RunBefore fires the hook for the top-level command name, if any.
func (h *Hooks) RunBefore(command string) {
	if fn, ok := h.before[command]; ok {
		fn()
	}
}
