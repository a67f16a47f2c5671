package app

import (
	"strings"
	"testing"
)

func adapterContext(t *testing.T, argv []string) *Context {
	t.Helper()
	c := newContext(t, "", "", argv)
	if err := RegisterAdapters(c); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestTermCreateEndToEnd(t *testing.T) {
	c := adapterContext(t, []string{"term", "create", "category", "Fruit", "--slug=fruit"})

	if err := c.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got := stdout(c); got != "Created category \"Fruit\".\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestTermCreatePorcelain(t *testing.T) {
	c := adapterContext(t, []string{"term", "create", "category", "Fruit", "--porcelain"})

	if err := c.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got := stdout(c); got != "Fruit\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestTermCreateUnknownParameterRejected(t *testing.T) {
	c := adapterContext(t, []string{"term", "create", "category", "Fruit", "--unknown=x"})

	err := c.Run()
	if err == nil {
		t.Fatal("Run() expected fatal for unknown parameter")
	}
	if !strings.Contains(err.Error(), "--unknown") {
		t.Errorf("error %q does not name the parameter", err)
	}
	if stdout(c) != "" {
		t.Error("handler output written despite fatal validation error")
	}
}

func TestUserCreateRoleFromCommandLine(t *testing.T) {
	c := adapterContext(t, []string{"user", "create", "bob", "bob@example.com", "--role=author"})

	if err := c.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !strings.Contains(stdout(c), "with role author") {
		t.Errorf("stdout = %q", stdout(c))
	}
}
