// Package config implements the layered configuration resolver: a table
// of option specs, a tokenizer for the runtime argument grammar, YAML
// file layers, and a precedence-ordered merge.
//
// # Precedence
//
// Values merge in increasing precedence:
//
//	built-in defaults < global config file < project config file <
//	process environment < command-line runtime flags
//
// Singular keys are replaced by higher layers; keys marked Multiple
// accumulate values in layer order instead.
package config

// RuntimeSyntax describes how an option may appear on the command line.
type RuntimeSyntax string

const (
	// RuntimeNone disables command-line input entirely. A token naming
	// the key still parses, but it falls through into the command's own
	// associative arguments instead of the global configuration.
	RuntimeNone RuntimeSyntax = ""
	// RuntimeFlag accepts --key and --no-key.
	RuntimeFlag RuntimeSyntax = "flag"
	// RuntimeValue accepts --key=<value>.
	RuntimeValue RuntimeSyntax = "value"
)

// OptionSpec declares one global configuration option and its policy.
type OptionSpec struct {
	Key     string
	Runtime RuntimeSyntax
	// File permits the key in config files. Keys absent from files are
	// still accepted there as unvalidated pass-through extras.
	File bool
	// Default is the built-in value: a scalar, or nil for Multiple keys
	// (which default to an empty sequence).
	Default any
	// Multiple keys accumulate across layers rather than overwrite.
	Multiple bool
	// Path-valued entries read from a file are resolved relative to
	// that file's directory before merging.
	Path bool
	// Deprecated carries the replacement message for options that still
	// function but should no longer be used. Empty means current.
	Deprecated string
}

// Table is the full option-spec table, order-preserving for listing.
type Table struct {
	specs []OptionSpec
	byKey map[string]int
}

// NewTable builds a table from specs. Later duplicates of a key replace
// earlier ones in place.
func NewTable(specs ...OptionSpec) *Table {
	t := &Table{byKey: make(map[string]int, len(specs))}
	for _, s := range specs {
		if i, ok := t.byKey[s.Key]; ok {
			t.specs[i] = s
			continue
		}
		t.byKey[s.Key] = len(t.specs)
		t.specs = append(t.specs, s)
	}
	return t
}

// Lookup returns the spec for key.
func (t *Table) Lookup(key string) (OptionSpec, bool) {
	i, ok := t.byKey[key]
	if !ok {
		return OptionSpec{}, false
	}
	return t.specs[i], true
}

// Specs returns all specs in declaration order.
func (t *Table) Specs() []OptionSpec {
	out := make([]OptionSpec, len(t.specs))
	copy(out, t.specs)
	return out
}

// Defaults returns the built-in bottom layer of the merge.
func (t *Table) Defaults() map[string]any {
	defaults := make(map[string]any, len(t.specs))
	for _, s := range t.specs {
		if s.Multiple {
			defaults[s.Key] = []string{}
			continue
		}
		if s.Default != nil {
			defaults[s.Key] = s.Default
		}
	}
	return defaults
}
