package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConf(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "folio.json")
	if err := os.WriteFile(path, []byte(text), 0o664); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadDefaults(t *testing.T) {
	path := writeConf(t, `{"SiteTitle": "My Site", "BaseURL": "https://example.com", "Author": "Me"}`)

	conf, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	base := filepath.Dir(path)
	if conf.ContentDir != filepath.Join(base, "content") {
		t.Errorf("ContentDir = %q", conf.ContentDir)
	}
	if conf.DBPath != filepath.Join(base, "site.db") {
		t.Errorf("DBPath = %q", conf.DBPath)
	}
	if conf.TimeFormat != "2006-01-02 15:04:05" {
		t.Errorf("TimeFormat = %q", conf.TimeFormat)
	}
	if conf.PostsDir() != filepath.Join(base, "content", "posts") {
		t.Errorf("PostsDir = %q", conf.PostsDir())
	}
}

func TestReadAbsolutePathsKept(t *testing.T) {
	path := writeConf(t, `{"ContentDir": "/srv/content", "OutputDir": "out"}`)

	conf, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if conf.ContentDir != "/srv/content" {
		t.Errorf("absolute path rewritten: %q", conf.ContentDir)
	}
	if conf.OutputDir != filepath.Join(filepath.Dir(path), "out") {
		t.Errorf("relative path not normalized: %q", conf.OutputDir)
	}
}

func TestReadEnvOverride(t *testing.T) {
	t.Setenv("FOLIO_DB", "/tmp/other.db")

	conf, err := Read(writeConf(t, `{}`))
	if err != nil {
		t.Fatal(err)
	}
	if conf.DBPath != "/tmp/other.db" {
		t.Errorf("env override ignored: %q", conf.DBPath)
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing config")
	}
}
