package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/nsdom/internal/config"
)

func testdataDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.Abs(filepath.Join("..", "..", "testdata", "scenarios"))
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReplayTestdata(t *testing.T) {
	_, err := execute(t, "replay", "--config", t.TempDir(), "--log-level", "error", "--dir", testdataDir(t))
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
}

func TestReplayNamed(t *testing.T) {
	_, err := execute(t, "replay", "--config", t.TempDir(), "--log-level", "error",
		"--dir", testdataDir(t), "--json", "class-list", "svg-viewbox")
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
}

func TestReplayFailure(t *testing.T) {
	dir := t.TempDir()
	failing := `{"steps": [{"render": {"tag": "svg"}, "expect": [{"expr": "container.firstChild.namespaceURI", "equals": "nope"}]}]}`
	if err := os.WriteFile(filepath.Join(dir, "failing.json"), []byte(failing), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, "replay", "--config", t.TempDir(), "--log-level", "error", "--dir", dir)
	if err == nil || !strings.Contains(err.Error(), "1 of 1 scenarios failed") {
		t.Errorf("replay error = %v", err)
	}

	if _, err := execute(t, "replay", "--config", t.TempDir(), "--dir", dir, "missing"); err == nil {
		t.Error("replaying a missing scenario should fail")
	}
}

func TestReplayUsesConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := config.New()
	cfg.Scenarios.Dir = testdataDir(t)
	cfg.Log.Level = "error"
	cfg.Metrics.Enabled = true
	cfg.Tracing.Enabled = true
	if err := cfg.SaveTo(filepath.Join(dir, config.ConfigFileName)); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "replay", "--config", dir, "svg-height-cycle"); err != nil {
		t.Fatalf("replay: %v", err)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	if _, err := execute(t, "replay", "--config", t.TempDir(), "--log-level", "loud"); err == nil {
		t.Error("invalid --log-level should fail")
	}
}

func TestServeOptions(t *testing.T) {
	cfg := config.New()
	opts := &serveOptions{host: "0.0.0.0", port: 9000, origins: []string{"http://a.test"}, metrics: true}
	opts.apply(cfg)

	if cfg.ServerAddress() != "0.0.0.0:9000" {
		t.Errorf("ServerAddress() = %q", cfg.ServerAddress())
	}
	if !cfg.Metrics.Enabled || cfg.Tracing.Enabled {
		t.Errorf("metrics = %v, tracing = %v", cfg.Metrics.Enabled, cfg.Tracing.Enabled)
	}
	if len(cfg.Server.AllowedOrigins) != 1 {
		t.Errorf("AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
	if srv := newServer(cfg); srv == nil || srv.Handler() == nil {
		t.Error("newServer returned no handler")
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version --short = %q", out)
	}
}
