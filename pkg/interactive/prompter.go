// Package interactive collects missing command arguments from a human
// by walking the command's synopsis, one prompt per argument spec.
//
// Cancellation never raises: interrupting any prompt marks the
// collection cancelled and returns whatever was gathered so far, so the
// pipeline can still run validation over the partial result.
package interactive

import (
	"strings"

	"github.com/pterm/pterm"

	"github.com/pressctl/pressctl/pkg/synopsis"
)

// LineReader supplies one line of user input per prompt. Returning an
// error (interrupt, closed input) cancels the collection.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// ptermReader reads lines through pterm's interactive text input.
type ptermReader struct{}

func (ptermReader) ReadLine(prompt string) (string, error) {
	return pterm.DefaultInteractiveTextInput.WithMultiLine(false).Show(prompt)
}

// Prompter walks a synopsis and fills in arguments interactively.
type Prompter struct {
	reader LineReader
}

// NewPrompter creates a Prompter. A nil reader means terminal input via
// pterm; tests inject a scripted reader instead.
func NewPrompter(reader LineReader) *Prompter {
	if reader == nil {
		reader = ptermReader{}
	}
	return &Prompter{reader: reader}
}

// Collected is the outcome of one collection pass. Cancelled collections
// still carry every argument gathered before the interrupt.
type Collected struct {
	Positionals []string
	Assoc       map[string]string
	Cancelled   bool
}

// Collect walks the specs in declaration order, prompting only for
// arguments the invocation did not already supply. Supplied positionals
// satisfy the leading positional specs; supplied associative keys
// satisfy their specs.
func (p *Prompter) Collect(specs []synopsis.ArgSpec, positionals []string, assoc map[string]string) *Collected {
	out := &Collected{
		Positionals: append([]string(nil), positionals...),
		Assoc:       make(map[string]string, len(assoc)),
	}
	for k, v := range assoc {
		out.Assoc[k] = v
	}

	supplied := len(positionals)
	posSeen := 0

	for _, spec := range specs {
		switch spec.Kind {
		case synopsis.KindPositional:
			if posSeen < supplied {
				posSeen++
				continue
			}
			posSeen++
			if spec.Repeating {
				if p.promptRepeating(spec, out) {
					return out
				}
				continue
			}
			if p.promptPositional(spec, out) {
				return out
			}
		case synopsis.KindAssoc:
			if _, ok := out.Assoc[spec.Name]; ok {
				continue
			}
			if p.promptAssoc(spec, out) {
				return out
			}
		case synopsis.KindFlag:
			if _, ok := out.Assoc[spec.Name]; ok {
				continue
			}
			if p.promptFlag(spec, out) {
				return out
			}
		case synopsis.KindGeneric:
			if p.promptGeneric(out) {
				return out
			}
		}
	}
	return out
}

// promptPositional asks once for a single positional. Required specs
// re-ask on empty input; optional specs accept it and move on. Reports
// whether the collection was cancelled.
func (p *Prompter) promptPositional(spec synopsis.ArgSpec, out *Collected) bool {
	for {
		line, err := p.reader.ReadLine(spec.String())
		if err != nil {
			out.Cancelled = true
			return true
		}
		line = strings.TrimSpace(line)
		if line == "" {
			if spec.Optional {
				return false
			}
			continue
		}
		out.Positionals = append(out.Positionals, line)
		return false
	}
}

// promptRepeating asks once and splits the response on whitespace,
// filling all remaining positional slots.
func (p *Prompter) promptRepeating(spec synopsis.ArgSpec, out *Collected) bool {
	line, err := p.reader.ReadLine(spec.String())
	if err != nil {
		out.Cancelled = true
		return true
	}
	out.Positionals = append(out.Positionals, strings.Fields(line)...)
	return false
}

func (p *Prompter) promptAssoc(spec synopsis.ArgSpec, out *Collected) bool {
	line, err := p.reader.ReadLine(spec.String())
	if err != nil {
		out.Cancelled = true
		return true
	}
	if line = strings.TrimSpace(line); line != "" {
		out.Assoc[spec.Name] = line
	}
	return false
}

// promptFlag offers a yes/no choice. Only an explicit affirmative sets
// the flag; anything else leaves it unset.
func (p *Prompter) promptFlag(spec synopsis.ArgSpec, out *Collected) bool {
	line, err := p.reader.ReadLine(spec.String() + " (y/n)")
	if err != nil {
		out.Cancelled = true
		return true
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		out.Assoc[spec.Name] = "true"
	}
	return false
}

// promptGeneric loops over key/value pairs until an empty key. This is
// the one spec kind that can bind an unbounded number of keys.
func (p *Prompter) promptGeneric(out *Collected) bool {
	for {
		key, err := p.reader.ReadLine("field (empty to finish)")
		if err != nil {
			out.Cancelled = true
			return true
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return false
		}
		value, err := p.reader.ReadLine("value for --" + key)
		if err != nil {
			out.Cancelled = true
			return true
		}
		out.Assoc[key] = value
	}
}
