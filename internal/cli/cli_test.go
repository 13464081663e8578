package cli

import (
	"bytes"
	"testing"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()

	want := []string{"info", "query", "explain", "fetch", "import", "clean", "auth"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("root command missing subcommand %q: %v", name, err)
		}
	}
}

func TestRootCommandJobsFlagDefaultsPositive(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()

	jobs, err := root.PersistentFlags().GetInt("jobs")
	if err != nil {
		t.Fatalf("GetInt(jobs) error: %v", err)
	}
	if jobs < 1 {
		t.Errorf("jobs default = %d, want >= 1", jobs)
	}
}
