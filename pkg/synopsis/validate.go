package synopsis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// Report is the outcome of validating one invocation against a synopsis.
// Fatals are aggregated so the caller reports every problem in a single
// pass; the validator itself never prints and never terminates.
type Report struct {
	// Fatals are usage errors. A non-empty slice means the command must
	// not run; the caller prints the aggregate and exits non-zero.
	Fatals []string
	// Warnings are non-fatal findings (malformed synopsis tokens,
	// ignored flag values). The command still runs.
	Warnings []string
	// DiscardGlobals lists associative keys that matched a spec and
	// shadow a value already present in the merged global configuration.
	// The pipeline drops those keys from the global map before merging
	// so command-specific precedence holds.
	DiscardGlobals []string
}

// Ok reports whether the invocation may proceed.
func (r *Report) Ok() bool { return len(r.Fatals) == 0 }

// FatalError folds all fatal findings into a single error, or nil.
func (r *Report) FatalError() error {
	if len(r.Fatals) == 0 {
		return nil
	}
	return fmt.Errorf("%s", strings.Join(r.Fatals, "\n"))
}

var affirmative = map[string]bool{"": true, "true": true, "1": true, "yes": true, "y": true}

// Validate checks actual invocation arguments against the parsed specs.
// positionals and assoc are the command's own arguments after global
// options were stripped; resolved is the merged global configuration,
// consulted only to compute DiscardGlobals.
//
// All findings from one pass are aggregated: an arity error does not
// suppress unknown-parameter reporting.
func Validate(specs []ArgSpec, positionals []string, assoc map[string]string, resolved map[string]any) *Report {
	r := &Report{}

	var required, total int
	repeating := false
	hasGeneric := false
	known := make(map[string]Kind)

	for _, s := range specs {
		switch s.Kind {
		case KindPositional:
			total++
			if s.Repeating {
				repeating = true
			}
			if !s.Optional && !s.Repeating {
				required++
			}
		case KindAssoc, KindFlag:
			known[s.Name] = s.Kind
		case KindGeneric:
			hasGeneric = true
		case KindUnknown:
			r.Warnings = append(r.Warnings, fmt.Sprintf("unknown synopsis part %q", s.Token))
		}
	}

	if len(positionals) < required {
		r.Fatals = append(r.Fatals, "not enough positional arguments")
	}
	if len(positionals) > total && !repeating {
		excess := positionals[total:]
		r.Fatals = append(r.Fatals, fmt.Sprintf(
			"too many positional arguments: %s", strings.Join(excess, " ")))
	}

	var unknown []string
	for key, value := range assoc {
		kind, ok := known[key]
		if !ok {
			if !hasGeneric {
				unknown = append(unknown, key)
			}
			continue
		}
		if kind == KindFlag && !affirmative[strings.ToLower(value)] && value != "false" {
			r.Warnings = append(r.Warnings, fmt.Sprintf(
				"ignoring value %q passed to flag --%s", value, key))
		}
		if prior, present := resolved[key]; present && cast.ToString(prior) != value {
			r.DiscardGlobals = append(r.DiscardGlobals, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		for i, key := range unknown {
			unknown[i] = "--" + key
		}
		r.Fatals = append(r.Fatals, fmt.Sprintf(
			"unknown parameters: %s", strings.Join(unknown, ", ")))
	}
	sort.Strings(r.DiscardGlobals)

	return r
}
