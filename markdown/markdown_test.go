package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func render(t *testing.T, md string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := RenderMarkdown(&buf, md); err != nil {
		t.Fatalf("RenderMarkdown(%q) failed: %v", md, err)
	}
	return buf.String()
}

func TestRenderInline(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"__bold__", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"_italic_", "<em>italic</em>"},
		{"**bold *italic* text**", "<strong>bold <em>italic</em> text</strong>"},
		{"`code`", "<code>code</code>"},
		{"~~gone~~", "<del>gone</del>"},
		{"a < b & c", "a &lt; b &amp; c"},
	}
	for _, tt := range tests {
		got := render(t, tt.input)
		if !strings.Contains(got, tt.expected) {
			t.Errorf("RenderMarkdown(%q) = %q, want it to contain %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderHeadingIDs(t *testing.T) {
	got := render(t, "# Title\n\n## Main Content\n")
	for _, want := range []string{`<h1 id="title">Title</h1>`, `<h2 id="main-content">Main Content</h2>`} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %s in %q", want, got)
		}
	}
}

func TestRenderCodeBlock(t *testing.T) {
	got := render(t, "```go\nif a < b {\n}\n```\n")
	for _, want := range []string{
		`<div class="code-block-wrapper"><span class="code-lang code-lang-go">go</span>`,
		`<pre class="code-block"><code class="language-go">if a &lt; b {`,
		"</code></pre>\n</div>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
}

func TestRenderCodeBlockWithoutLanguage(t *testing.T) {
	got := render(t, "```\nplain <text>\n```\n")
	if strings.Contains(got, "code-block-wrapper") {
		t.Errorf("unexpected language badge: %q", got)
	}
	if !strings.Contains(got, `<pre class="code-block"><code>plain &lt;text&gt;`) {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestRenderCodeBlockEscapesLanguage(t *testing.T) {
	got := render(t, "```\"><script>\nx\n```\n")
	if strings.Contains(got, "<script>") {
		t.Errorf("language not escaped: %q", got)
	}
}

func TestRenderLinks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
		absent   string
	}{
		{"external", "[go](https://go.dev)", `<a href="https://go.dev" target="_blank" rel="noopener noreferrer">go</a>`, ""},
		{"internal", "[post](/blog/hello)", `<a href="/blog/hello">post</a>`, "target="},
		{"javascript", "[x](javascript:alert(1))", `<a href="">x</a>`, "javascript:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(t, tt.input)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("got %q, want it to contain %q", got, tt.contains)
			}
			if tt.absent != "" && strings.Contains(got, tt.absent) {
				t.Errorf("got %q, should not contain %q", got, tt.absent)
			}
		})
	}
}

func TestRenderOmitsRawHTML(t *testing.T) {
	got := render(t, "<script>alert(1)</script>\n\ntext")
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML should be omitted: %q", got)
	}
}

func TestRenderTable(t *testing.T) {
	got := render(t, "| a | b |\n|---|---|\n| 1 | 2 |\n")
	for _, want := range []string{"<table>", "<th>a</th>", "<td>2</td>"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %s in %q", want, got)
		}
	}
}

func TestRenderLists(t *testing.T) {
	got := render(t, "- one\n- two\n\n1. first\n2. second\n\n- [x] done\n")
	for _, want := range []string{"<ul>", "<li>one</li>", "<ol>", "<li>first</li>", `type="checkbox"`} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %s in %q", want, got)
		}
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("> quoted").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "<blockquote>") {
		t.Errorf("got %q", buf.String())
	}
}
