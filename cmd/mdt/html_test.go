package main

import (
	"bytes"
	"strings"
	"testing"

	"pkt.systems/mdt"
)

func loadDoc(t *testing.T, src string) *mdt.Node {
	t.Helper()
	doc, err := mdt.LoadReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	t.Cleanup(doc.Free)
	return doc
}

func TestRenderHTMLBody(t *testing.T) {
	doc := loadDoc(t, "# Hello World\n\nA *styled* paragraph.\n")
	var out bytes.Buffer
	if err := renderHTML(&out, doc, htmlOptions{onlyBody: true}); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := out.String()
	if strings.Contains(html, "<!DOCTYPE") {
		t.Fatalf("only-body output has page wrapper:\n%s", html)
	}
	if !strings.Contains(html, `<h1 id="hello-world">Hello World</h1>`) {
		t.Fatalf("missing anchored heading:\n%s", html)
	}
	if !strings.Contains(html, "<em>styled</em>") {
		t.Fatalf("missing emphasis:\n%s", html)
	}
}

func TestRenderHTMLPageTitle(t *testing.T) {
	doc := loadDoc(t, "---\ntitle: My Page\n---\nbody\n")
	var out bytes.Buffer
	if err := renderHTML(&out, doc, htmlOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out.String(), "<title>My Page</title>") {
		t.Fatalf("missing title:\n%s", out.String())
	}
}

func TestRenderHTMLInternalAnchorLink(t *testing.T) {
	doc := loadDoc(t, "# Setup Guide\n\nSee [Setup Guide](@) for details.\n")
	var out bytes.Buffer
	if err := renderHTML(&out, doc, htmlOptions{onlyBody: true}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out.String(), `<a href="#setup-guide">`) {
		t.Fatalf("missing internal anchor:\n%s", out.String())
	}
}

func TestRenderHTMLEscapesText(t *testing.T) {
	doc := loadDoc(t, "x > y & \"z\" < w\n")
	var out bytes.Buffer
	if err := renderHTML(&out, doc, htmlOptions{onlyBody: true}); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := out.String()
	for _, want := range []string{"&lt;", "&amp;", "&gt;", "&quot;"} {
		if !strings.Contains(html, want) {
			t.Fatalf("missing %s:\n%s", want, html)
		}
	}
}

func TestRenderHTMLTable(t *testing.T) {
	doc := loadDoc(t, "| A | B |\n|---|--:|\n| 1 | 2 |\n")
	var out bytes.Buffer
	if err := renderHTML(&out, doc, htmlOptions{onlyBody: true}); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := out.String()
	for _, want := range []string{"<table>", "<thead>", "<tbody>", "<th>", `<td class="right">`} {
		if !strings.Contains(html, want) {
			t.Fatalf("missing %s:\n%s", want, html)
		}
	}
}

func TestRenderHTMLHighlightedCode(t *testing.T) {
	doc := loadDoc(t, "```go\npackage main\n```\n")
	var out bytes.Buffer
	if err := renderHTML(&out, doc, htmlOptions{onlyBody: true, highlight: "github"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := out.String()
	if strings.Contains(html, "<pre><code>") {
		t.Fatalf("expected chroma output for hinted fence:\n%s", html)
	}
	if !strings.Contains(html, "package") {
		t.Fatalf("code content missing:\n%s", html)
	}
}

func TestRenderHTMLPlainCodeWithoutHint(t *testing.T) {
	doc := loadDoc(t, "```\nplain <code>\n```\n")
	var out bytes.Buffer
	if err := renderHTML(&out, doc, htmlOptions{onlyBody: true, highlight: "github"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out.String(), "<pre><code>plain &lt;code&gt;\n</code></pre>") {
		t.Fatalf("expected escaped plain code:\n%s", out.String())
	}
}

func TestMakeAnchor(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Hello World", "hello-world"},
		{"v1.2 Release-Notes", "v1.2-release-notes"},
		{"What's New?", "whats-new"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := makeAnchor(tc.in); got != tc.want {
			t.Fatalf("makeAnchor(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
