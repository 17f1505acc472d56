package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/hintlayout/pkg/config"
)

func TestCacheCommands(t *testing.T) {
	cacheHome := isolate(t)
	dir := filepath.Join(cacheHome, appName)

	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error = %v", err)
	}
	if got := strings.TrimSpace(out); got != dir {
		t.Errorf("cache path = %q, want %q", got, dir)
	}

	out, err = execute(t, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear error = %v", err)
	}
	if !strings.Contains(out, "Cache is empty") {
		t.Errorf("clear on missing dir = %q, want empty notice", out)
	}

	if _, err := execute(t, "place", writeScenario(t)); err != nil {
		t.Fatalf("place error = %v", err)
	}
	out, err = execute(t, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear error = %v", err)
	}
	if !strings.Contains(out, "Cleared 1 cached entries") {
		t.Errorf("cache clear = %q, want one entry cleared", out)
	}
}

func TestConfigCommands(t *testing.T) {
	isolate(t)

	out, err := execute(t, "config", "show")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	if _, err := config.Parse([]byte(out)); err != nil {
		t.Errorf("config show output does not parse: %v\n%s", err, out)
	}

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[planner]\nreveal_ratio = 0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err = execute(t, "config", "show", "--config", path)
	if err != nil {
		t.Fatalf("config show --config error = %v", err)
	}
	cfg, err := config.Parse([]byte(out))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if cfg.Planner.RevealRatio != 0.5 {
		t.Errorf("RevealRatio = %v, want 0.5", cfg.Planner.RevealRatio)
	}

	out, err = execute(t, "config", "path")
	if err != nil {
		t.Fatalf("config path error = %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), filepath.Join(appName, configFileName)) {
		t.Errorf("config path = %q", out)
	}
}

func TestConfigFromUserDir(t *testing.T) {
	isolate(t)
	path, err := configPath()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[server]\naddr = \":9090\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "config", "show")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	if !strings.Contains(out, `":9090"`) {
		t.Errorf("config show ignored user config:\n%s", out)
	}
}

func TestConfigShowRejectsBadFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[planner]\nunknown_key = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "config", "show", "--config", path); err == nil {
		t.Error("config show with unknown key error = nil, want error")
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	isolate(t)
	ctx, cancel := context.WithCancel(context.Background())

	var out syncBuffer
	c := New(io.Discard, LogInfo)
	done := make(chan error, 1)
	go func() {
		done <- c.runServe(ctx, &out, serveOpts{addr: "127.0.0.1:0", noCache: true})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runServe() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runServe() did not return after cancel")
	}
	if !strings.Contains(out.String(), "Server stopped") {
		t.Errorf("output = %q, want stop message", out.String())
	}
}

func TestServeBadAddress(t *testing.T) {
	isolate(t)
	c := New(io.Discard, LogInfo)
	if err := c.runServe(context.Background(), io.Discard, serveOpts{addr: "bad:address:here", noCache: true}); err == nil {
		t.Error("runServe() with bad address error = nil, want error")
	}
}
