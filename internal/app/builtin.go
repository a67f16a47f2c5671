package app

import (
	"fmt"
	"strings"

	"github.com/pressctl/pressctl/pkg/command"
	"github.com/pressctl/pressctl/pkg/runner"
	"github.com/pressctl/pressctl/pkg/synopsis"
)

// RegisterBuiltins installs the commands every installation carries:
// help, version and the config inspectors. Platform domain commands
// register through the same Tree.Add path.
func RegisterBuiltins(c *Context, version string) error {
	adds := []struct {
		path []string
		node *command.Node
	}{
		{
			path: []string{"help"},
			node: &command.Node{
				Short:    "Get help on a command",
				Synopsis: "[<command>...]",
				Handler:  helpHandler(c),
			},
		},
		{
			path: []string{"version"},
			node: &command.Node{
				Short:   "Print the pressctl version",
				Alias:   "v",
				Handler: versionHandler(c, version),
			},
		},
		{
			path: []string{"config", "list"},
			node: &command.Node{
				Short:   "List the resolved global configuration",
				Handler: configListHandler(c),
			},
		},
		{
			path: []string{"config", "get"},
			node: &command.Node{
				Short:    "Print one resolved configuration value",
				Synopsis: "<key>",
				Handler:  configGetHandler(c),
			},
		},
	}

	for _, a := range adds {
		if _, err := c.Tree.Add(a.path, a.node); err != nil {
			return err
		}
	}
	return nil
}

func helpHandler(c *Context) command.Handler {
	return command.HandlerFunc(func(args []string, assocArgs map[string]string) error {
		node, err := c.Tree.Find(args)
		if err != nil {
			return err
		}

		name := runner.BinName
		if path := strings.Join(c.Tree.Path(node), " "); path != "" {
			name += " " + path
		}
		if node.IsLeaf() {
			usage := name
			if syn := synopsis.Render(node.ArgSpecs()); syn != "" {
				usage += " " + syn
			}
			fmt.Fprintf(c.Stdout, "usage: %s\n", usage)
			if node.Doc != "" {
				fmt.Fprintf(c.Stdout, "\n%s\n", node.Doc)
			}
			return nil
		}

		fmt.Fprintf(c.Stdout, "usage: %s <subcommand>\n\nAvailable subcommands:\n", name)
		for _, child := range c.Tree.Children(node) {
			fmt.Fprintf(c.Stdout, "  %-12s %s\n", child.Name, child.Short)
		}
		return nil
	})
}

func versionHandler(c *Context, version string) command.Handler {
	return command.HandlerFunc(func(args []string, assocArgs map[string]string) error {
		fmt.Fprintf(c.Stdout, "%s %s\n", runner.BinName, version)
		return nil
	})
}

func configListHandler(c *Context) command.Handler {
	return command.HandlerFunc(func(args []string, assocArgs map[string]string) error {
		for _, key := range c.Config.Keys() {
			value, _ := c.Config.Get(key)
			fmt.Fprintf(c.Stdout, "%s=%v\n", key, value)
		}
		return nil
	})
}

func configGetHandler(c *Context) command.Handler {
	return command.HandlerFunc(func(args []string, assocArgs map[string]string) error {
		value, ok := c.Config.Get(args[0])
		if !ok {
			return runner.Fatalf("no configuration value for %q", args[0])
		}
		fmt.Fprintf(c.Stdout, "%v\n", value)
		return nil
	})
}
