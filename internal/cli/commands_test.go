package cli

import (
	"bytes"
	"testing"
)

// TestCommandFlags checks that every pattern-driven and maintenance command
// declares the flags spec §6 assigns it, the way parse_test.go in the
// teacher checks flag wiring rather than full end-to-end execution (these
// commands need a live workspace and network access to run).
func TestCommandFlags(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)

	fetch := c.fetchCommand()
	for _, name := range []string{"strict", "refetch"} {
		if fetch.Flags().Lookup(name) == nil {
			t.Errorf("fetch command missing --%s flag", name)
		}
	}

	imp := c.importCommand()
	for _, name := range []string{"strict", "refetch"} {
		if imp.Flags().Lookup(name) == nil {
			t.Errorf("import command missing --%s flag", name)
		}
	}

	clean := c.cleanCommand()
	if clean.Flags().Lookup("all") == nil {
		t.Error("clean command missing --all flag")
	}

	query := c.queryCommand()
	if query.Flags().Lookup("output") == nil {
		t.Error("query command missing --output flag")
	}

	explain := c.explainCommand()
	if explain.Flags().Lookup("dot") == nil {
		t.Error("explain command missing --dot flag")
	}

	auth := c.authCommand()
	for _, name := range []string{"delete", "remote"} {
		if auth.Flags().Lookup(name) == nil {
			t.Errorf("auth command missing --%s flag", name)
		}
	}
}
