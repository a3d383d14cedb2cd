package cli

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestCachePath(t *testing.T) {
	dir := filepath.ToSlash(t.TempDir())
	cfg := writeConfig(t, "[cache]\ndir = \""+dir+"\"\n")

	out, err := execute(t, "--config", cfg, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error = %v", err)
	}
	if got := strings.TrimSpace(out); got != dir {
		t.Errorf("cache path = %q, want %q", got, dir)
	}
}

func TestCachePathDefault(t *testing.T) {
	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error = %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "spliceplot") {
		t.Errorf("cache path = %q, want a spliceplot directory", out)
	}
}

func TestCachePathNoDirectory(t *testing.T) {
	cfg := writeConfig(t, "[cache]\nbackend = \"none\"\n")
	if _, err := execute(t, "--config", cfg, "cache", "path"); err == nil {
		t.Error("expected error for a backend without a directory")
	}
}

func TestCacheClear(t *testing.T) {
	cfg := writeConfig(t, "[cache]\ndir = \""+filepath.ToSlash(t.TempDir())+"\"\n")

	out, err := execute(t, "--config", cfg, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear error = %v", err)
	}
	if !strings.Contains(out, "Cache is empty") {
		t.Errorf("clear on empty cache = %q", out)
	}

	if _, err := execute(t, "--config", cfg, "render", sampleDataset(t), "-f", "svg,json"); err != nil {
		t.Fatalf("render error = %v", err)
	}
	out, err = execute(t, "--config", cfg, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear error = %v", err)
	}
	if !strings.Contains(out, "Cleared 2 cached entries") {
		t.Errorf("clear after render = %q", out)
	}
}

func TestCachePathSQLite(t *testing.T) {
	cfg := writeConfig(t, "[cache]\nbackend = \"sqlite\"\n")
	out, err := execute(t, "--config", cfg, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error = %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), filepath.Join("spliceplot", "cache.db")) {
		t.Errorf("cache path = %q, want the default database", out)
	}
}

func TestCacheClearSQLite(t *testing.T) {
	db := filepath.ToSlash(filepath.Join(t.TempDir(), "figures.db"))
	cfg := writeConfig(t, "[cache]\nbackend = \"sqlite\"\npath = \""+db+"\"\n")

	if _, err := execute(t, "--config", cfg, "render", sampleDataset(t)); err != nil {
		t.Fatalf("render error = %v", err)
	}
	out, err := execute(t, "--config", cfg, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear error = %v", err)
	}
	if !strings.Contains(out, "Cleared 1 cached entries") || !strings.Contains(out, db) {
		t.Errorf("clear output = %q", out)
	}
}
