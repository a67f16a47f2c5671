package synopsis

import "strings"

// String re-derives the display form of the spec from its fields. For
// recognized kinds the result matches the token shape the spec was
// parsed from; unknown tokens render verbatim.
func (s ArgSpec) String() string {
	var b strings.Builder

	switch s.Kind {
	case KindPositional:
		b.WriteString("<")
		b.WriteString(s.Name)
		b.WriteString(">")
		if s.Repeating {
			b.WriteString("...")
		}
	case KindAssoc:
		b.WriteString("--")
		b.WriteString(s.Name)
		b.WriteString("=<")
		b.WriteString(s.Name)
		b.WriteString(">")
	case KindFlag:
		b.WriteString("--")
		b.WriteString(s.Name)
	case KindGeneric:
		b.WriteString("--<field>=<value>")
	default:
		return s.Token
	}

	if s.Optional {
		return "[" + b.String() + "]"
	}
	return b.String()
}

// Render joins the display forms of all specs into a one-line synopsis.
func Render(specs []ArgSpec) string {
	parts := make([]string, 0, len(specs))
	for _, s := range specs {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, " ")
}
