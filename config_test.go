package folio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := DefaultConfig()
	if cfg.Name != want.Name || cfg.URL != want.URL || cfg.Addr != ":3000" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.ContentDir != filepath.Join("content", "blog") {
		t.Errorf("ContentDir = %q", cfg.ContentDir)
	}
	if cfg.FeedLimit != 20 || cfg.PostsPerPage != 10 || cfg.RateLimit != 60 || cfg.RateWindow != time.Minute {
		t.Errorf("numeric defaults = %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
name: Security Research Blog
url: https://blog.example.com
description: Thoughts on security
author: Luke Johnson
author_email: luke@example.com
bio: I write about exploits.
projects:
  - name: fuzzer
    description: A grammar fuzzer
    url: https://github.com/example/fuzzer
categories: [Cybersecurity, CTF]
content_dir: posts
feed_limit: 5
rate_limit: 0
rate_window: 30s
log_level: debug
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Name != "Security Research Blog" || cfg.URL != "https://blog.example.com" {
		t.Errorf("site fields = %+v", cfg)
	}
	if len(cfg.Projects) != 1 || cfg.Projects[0].Name != "fuzzer" {
		t.Errorf("projects = %+v", cfg.Projects)
	}
	if len(cfg.Categories) != 2 || cfg.Categories[1] != "CTF" {
		t.Errorf("categories = %q", cfg.Categories)
	}
	if cfg.ContentDir != "posts" || cfg.FeedLimit != 5 {
		t.Errorf("content_dir/feed_limit = %q/%d", cfg.ContentDir, cfg.FeedLimit)
	}
	if cfg.RateLimit != 0 {
		t.Errorf("explicit rate_limit 0 should disable limiting, got %d", cfg.RateLimit)
	}
	if cfg.RateWindow != 30*time.Second {
		t.Errorf("RateWindow = %v", cfg.RateWindow)
	}
	if cfg.PostsPerPage != 10 || cfg.Language != "en-us" {
		t.Errorf("unset keys should keep defaults: %+v", cfg)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, "url: https://blog.example.com\naddr: \":8080\"\n")
	t.Setenv("FOLIO_SITE_URL", "https://override.example.com")
	t.Setenv("FOLIO_CONTENT_DIR", "/srv/posts")
	t.Setenv("FOLIO_RATE_LIMIT", "5")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.URL != "https://override.example.com" || cfg.ContentDir != "/srv/posts" || cfg.RateLimit != 5 {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"relative url", "url: example.com\n", "URL"},
		{"bad email", "author_email: nope\n", "AuthorEmail"},
		{"negative feed limit", "feed_limit: -1\n", "FeedLimit"},
		{"bad log level", "log_level: loud\n", "LogLevel"},
		{"unnamed project", "projects:\n  - url: https://example.com\n", "Projects"},
		{"bad yaml", "name: [unterminated\n", "parsing config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q should mention %s", err, tt.field)
			}
		})
	}
}

func TestDefaultConfigPathPrefersLocalFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if got := DefaultConfigPath(); got == LocalConfigFile {
		t.Fatalf("no local file yet, got %q", got)
	}
	if err := os.WriteFile(LocalConfigFile, []byte("name: Local\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := DefaultConfigPath(); got != LocalConfigFile {
		t.Errorf("DefaultConfigPath() = %q, want %q", got, LocalConfigFile)
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("FOLIO_TEST_KEY", "set")
	if got := EnvOr("FOLIO_TEST_KEY", "fallback"); got != "set" {
		t.Errorf("EnvOr = %q", got)
	}
	if got := EnvOr("FOLIO_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("EnvOr = %q", got)
	}
}
