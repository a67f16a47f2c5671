package config

import "strings"

// SplitResult is the three-way classification of raw process arguments.
type SplitResult struct {
	// Positionals are bare tokens in order: the command path followed by
	// the command's own positional arguments.
	Positionals []string
	// Assoc holds command-specific associative tokens: keys unknown to
	// the option table, plus known keys whose runtime input is disabled.
	Assoc map[string]string
	// AssocOrder preserves the order Assoc keys appeared on the line.
	AssocOrder []string
	// Runtime holds recognized global options from the command line,
	// the highest-precedence merge layer. Multiple keys accumulate as
	// []string; flags carry bool.
	Runtime map[string]any
	// RuntimeKeys lists the option keys seen in Runtime, in order and
	// with repeats, for deprecation classification.
	RuntimeKeys []string
}

// SplitArgs tokenizes raw process arguments against the option table.
//
// Grammar: --name asserts a flag true, --no-name negates it, and
// --name=value carries an explicit value (everything after the first
// "=", verbatim, so values may span lines). Bare tokens are positional.
// A token whose key has a spec with runtime input enabled becomes
// global runtime config; every other --token falls into the
// command-specific associative bucket.
func (t *Table) SplitArgs(argv []string) *SplitResult {
	res := &SplitResult{
		Assoc:   make(map[string]string),
		Runtime: make(map[string]any),
	}

	for _, token := range argv {
		if !strings.HasPrefix(token, "--") || token == "--" {
			res.Positionals = append(res.Positionals, token)
			continue
		}

		key, value, hasValue := strings.Cut(token[2:], "=")
		negated := false
		if !hasValue && strings.HasPrefix(key, "no-") {
			if _, ok := t.Lookup(key); !ok {
				key = strings.TrimPrefix(key, "no-")
				negated = true
			}
		}

		spec, known := t.Lookup(key)
		if !known || spec.Runtime == RuntimeNone {
			res.setAssoc(key, value, hasValue, negated)
			continue
		}

		res.RuntimeKeys = append(res.RuntimeKeys, key)
		switch {
		case spec.Multiple:
			prior, _ := res.Runtime[key].([]string)
			if hasValue {
				res.Runtime[key] = append(prior, value)
			}
		case spec.Runtime == RuntimeFlag && !hasValue:
			res.Runtime[key] = !negated
		case hasValue:
			res.Runtime[key] = value
		default:
			res.Runtime[key] = !negated
		}
	}

	return res
}

func (res *SplitResult) setAssoc(key, value string, hasValue, negated bool) {
	if !hasValue {
		value = "true"
		if negated {
			value = "false"
		}
	}
	if _, seen := res.Assoc[key]; !seen {
		res.AssocOrder = append(res.AssocOrder, key)
	}
	res.Assoc[key] = value
}
