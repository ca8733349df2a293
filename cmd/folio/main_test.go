package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func testConfig(t *testing.T, contentDir string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "url: https://example.com\nauthor: Tester\ncontent_dir: " + contentDir + "\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewNonInteractive(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	out, err := runCmd(t, "new", "--config", cfg, "--log-format", "json", "--title", "Hello World", "--tags", "go, web")
	if err != nil {
		t.Fatalf("new failed: %v\n%s", err, out)
	}
	for _, want := range []string{
		"File: " + filepath.Join(dir, "hello-world.md"),
		"URL: /blog/hello-world",
		"Status: Draft",
		`set "published: true"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	src, err := os.ReadFile(filepath.Join(dir, "hello-world.md"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"author: Tester", "tags: [go, web]", "published: false"} {
		if !strings.Contains(string(src), want) {
			t.Errorf("post missing %q:\n%s", want, src)
		}
	}

	if _, err := runCmd(t, "new", "--config", cfg, "--log-format", "json", "--title", "Hello World"); err == nil {
		t.Error("expected an error for an existing post without --force")
	}
	out, err = runCmd(t, "new", "--config", cfg, "--log-format", "json", "--title", "Hello World", "--publish", "--force")
	if err != nil {
		t.Fatalf("forced new failed: %v", err)
	}
	if !strings.Contains(out, "Status: Published") {
		t.Errorf("expected published status:\n%s", out)
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)
	if err := os.WriteFile(filepath.Join(dir, "ok.md"), []byte("---\ntitle: OK\ntags: [go]\n---\nbody"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCmd(t, "check", "--config", cfg, "--log-format", "json")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.Contains(out, "1 published posts, 1 tags") {
		t.Errorf("unexpected output: %s", out)
	}

	if err := os.WriteFile(filepath.Join(dir, "ok.markdown"), []byte("body"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCmd(t, "check", "--config", cfg, "--log-format", "json"); err == nil {
		t.Error("expected check to report the slug collision")
	}
}

func TestBadLogFormat(t *testing.T) {
	cfg := testConfig(t, t.TempDir())
	if _, err := runCmd(t, "check", "--config", cfg, "--log-format", "xml"); err == nil {
		t.Error("expected an error for an unknown log format")
	}
}

func TestVersion(t *testing.T) {
	out, err := runCmd(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "folio dev" {
		t.Errorf("version output = %q", out)
	}
}
