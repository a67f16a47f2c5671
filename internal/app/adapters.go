package app

import (
	"fmt"

	"github.com/pressctl/pressctl/pkg/command"
	"github.com/pressctl/pressctl/pkg/runner"
)

// RegisterAdapters installs the bundled platform adapters. Each one is
// a thin handler over the platform's domain API; the dispatch machinery
// neither knows nor cares what they do. The bindings shipped here cover
// the operations the test suite drives end to end.
func RegisterAdapters(c *Context) error {
	adds := []struct {
		path []string
		node *command.Node
	}{
		{
			path: []string{"term", "create"},
			node: &command.Node{
				Short:    "Create a new term",
				Synopsis: "<taxonomy> <term> [--slug=<slug>] [--porcelain]",
				Handler:  termCreateHandler(c),
			},
		},
		{
			path: []string{"user", "create"},
			node: &command.Node{
				Short:    "Create a new user",
				Synopsis: "<login> <email> [--role=<role>] [--porcelain]",
				Handler:  userCreateHandler(c),
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

func termCreateHandler(c *Context) command.Handler {
	return command.HandlerFunc(func(args []string, assocArgs map[string]string) error {
		taxonomy, term := args[0], args[1]
		if taxonomy == "" || term == "" {
			return runner.Fatalf("taxonomy and term may not be empty")
		}
		if assocArgs["porcelain"] == "true" {
			fmt.Fprintln(c.Stdout, term)
			return nil
		}
		fmt.Fprintf(c.Stdout, "Created %s %q.\n", taxonomy, term)
		return nil
	})
}

func userCreateHandler(c *Context) command.Handler {
	return command.HandlerFunc(func(args []string, assocArgs map[string]string) error {
		login, email := args[0], args[1]
		role := assocArgs["role"]
		if role == "" {
			role = "subscriber"
		}
		if assocArgs["porcelain"] == "true" {
			fmt.Fprintln(c.Stdout, login)
			return nil
		}
		fmt.Fprintf(c.Stdout, "Created user %s <%s> with role %s.\n", login, email, role)
		return nil
	})
}
