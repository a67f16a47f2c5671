// Package synopsis parses and validates compact argument-description
// strings of the form used in command docstrings.
//
// A synopsis describes what a command accepts, one token per argument:
//
//	<taxonomy> <term> [--slug=<slug>] [--porcelain] [--<field>=<value>]
//
// # Token Shapes
//
//   - <name>            required positional
//   - [<name>]          optional positional
//   - <name>...         repeating positional (consumes the rest)
//   - --name=<value>    required associative argument
//   - [--name=<value>]  optional associative argument
//   - --name, [--name]  boolean flag
//   - [--<field>=<value>]  generic: arbitrary undeclared key=value pairs
//
// Parsing is tolerant: tokens that match no shape are preserved verbatim
// with KindUnknown so the validator can surface them as warnings without
// failing the command they belong to.
package synopsis

import (
	"regexp"
	"strings"
)

// Kind classifies a synopsis argument spec.
type Kind string

const (
	KindPositional Kind = "positional"
	KindAssoc      Kind = "assoc"
	KindFlag       Kind = "flag"
	KindGeneric    Kind = "generic"
	// KindUnknown marks a token the grammar could not recognize. It is
	// carried through verbatim and reported as a warning at validation
	// time rather than a parse error.
	KindUnknown Kind = "unknown"
)

// ArgSpec describes one argument position in a synopsis. Specs are
// evaluated in declaration order for both validation and prompting.
type ArgSpec struct {
	Kind Kind
	// Name identifies the argument: the placeholder for positionals, the
	// key for assoc and flag specs. Empty for generic and unknown specs.
	Name string
	// Token is the display form the spec was parsed from.
	Token string
	// Optional arguments may be omitted.
	Optional bool
	// Repeating is only meaningful for positionals: the spec consumes
	// all remaining positional tokens.
	Repeating bool
}

var (
	reGeneric    = regexp.MustCompile(`^\[?--<field>=<value>\]?$`)
	reAssoc      = regexp.MustCompile(`^\[?--([a-z0-9][a-z0-9_-]*)=<([^<>]+)>\]?$`)
	reFlag       = regexp.MustCompile(`^\[?--([a-z0-9][a-z0-9_-]*)\]?$`)
	rePositional = regexp.MustCompile(`^\[?<([a-zA-Z0-9|_-]+)>(\.\.\.)?\]?$`)
)

// Parse turns a synopsis string into an ordered list of argument specs.
// It never fails: malformed tokens come back as KindUnknown entries.
func Parse(text string) []ArgSpec {
	var specs []ArgSpec
	for _, token := range strings.Fields(text) {
		specs = append(specs, parseToken(token))
	}
	return specs
}

func parseToken(token string) ArgSpec {
	optional := strings.HasPrefix(token, "[") && strings.HasSuffix(token, "]")

	if reGeneric.MatchString(token) {
		return ArgSpec{Kind: KindGeneric, Token: token, Optional: optional}
	}
	if m := reAssoc.FindStringSubmatch(token); m != nil {
		return ArgSpec{Kind: KindAssoc, Name: m[1], Token: token, Optional: optional}
	}
	if m := reFlag.FindStringSubmatch(token); m != nil {
		return ArgSpec{Kind: KindFlag, Name: m[1], Token: token, Optional: optional}
	}
	if m := rePositional.FindStringSubmatch(token); m != nil {
		return ArgSpec{
			Kind:      KindPositional,
			Name:      m[1],
			Token:     token,
			Optional:  optional,
			Repeating: m[2] == "...",
		}
	}
	return ArgSpec{Kind: KindUnknown, Token: token}
}
