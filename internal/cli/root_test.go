package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/hintlayout/pkg/buildinfo"
)

const scenarioTOML = `anchor_line = 20
default_line_height = 20

[viewport]
content_left = 50
content_width = 1000
vertical_scrollbar_width = 14

[embedded]
content_height = 60
max_preferred_width = 500
non_content_width = 10
reveal_start = 100
reveal_end = 900

[[lines]]
width = 100
repeat = 100
`

// isolate points the cache and config lookups at fresh temp directories.
func isolate(t *testing.T) (cacheHome string) {
	t.Helper()
	cacheHome = t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return cacheHome
}

// writeScenario writes the test scenario and returns its path.
func writeScenario(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.toml")
	if err := os.WriteFile(path, []byte(scenarioTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the root command with args and returns its standard output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	var got []string
	for _, cmd := range root.Commands() {
		got = append(got, cmd.Name())
	}
	for _, want := range []string{"place", "preview", "flex", "tower", "reveal", "serve", "cache", "config", "version", "completion"} {
		if !slices.Contains(got, want) {
			t.Errorf("RootCommand() missing subcommand %q (have %v)", want, got)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, appName+" ") {
		t.Errorf("version output = %q, want prefix %q", out, appName)
	}
	if !strings.Contains(out, buildinfo.Version) {
		t.Errorf("version output = %q, want version %q", out, buildinfo.Version)
	}
}

func TestUnknownCommand(t *testing.T) {
	if _, err := execute(t, "layout"); err == nil {
		t.Error("unknown command error = nil, want error")
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion error = %v", err)
	}
	if !strings.Contains(out, appName) {
		t.Errorf("completion output does not mention %q", appName)
	}
}
