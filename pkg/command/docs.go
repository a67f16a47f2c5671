package command

import (
	"strings"

	"github.com/pressctl/pressctl/pkg/synopsis"
)

// GetSynopsis returns the node's synopsis string, falling back to
// scraping the long description when none was declared explicitly.
func (n *Node) GetSynopsis() string {
	if n.Synopsis != "" {
		return n.Synopsis
	}
	return scrapeSynopsis(n.Doc)
}

// ArgSpecs returns the parsed argument specs, parsing lazily on first
// use. The result is cached; a command's spec errors therefore surface
// at its own dispatch time, never while other commands run.
func (n *Node) ArgSpecs() []synopsis.ArgSpec {
	if !n.specsParsed {
		n.specs = synopsis.Parse(n.GetSynopsis())
		n.specsParsed = true
	}
	return n.specs
}

// scrapeSynopsis recovers a synopsis from description lines ending in a
// colon, collecting the tokens on them that look like synopsis parts.
// This is the legacy path for commands registered without metadata.
func scrapeSynopsis(doc string) string {
	var parts []string
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasSuffix(line, ":") {
			continue
		}
		for _, token := range strings.Fields(strings.TrimSuffix(line, ":")) {
			if looksLikeSynopsisPart(token) {
				parts = append(parts, token)
			}
		}
	}
	return strings.Join(parts, " ")
}

func looksLikeSynopsisPart(token string) bool {
	return strings.HasPrefix(token, "<") ||
		strings.HasPrefix(token, "[") ||
		strings.HasPrefix(token, "--")
}
