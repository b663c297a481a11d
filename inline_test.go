package mdt

import "testing"

type leaf struct {
	typ        NodeType
	text       string
	whitespace bool
}

func collectLeaves(n *Node) []leaf {
	var leaves []leaf
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		leaves = append(leaves, leaf{c.Type(), c.Text(), c.Whitespace()})
	}
	return leaves
}

func checkLeaves(t *testing.T, got, want []leaf) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("leaf %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestEmphasisAndStrong(t *testing.T) {
	doc := loadString(t, "*em* and **strong**\n")
	p := doc.FirstChild()
	if p.Type() != Paragraph {
		t.Fatalf("expected paragraph, got %v", p.Type())
	}
	checkLeaves(t, collectLeaves(p), []leaf{
		{EmphasizedText, "em", false},
		{NormalText, "and", true},
		{StrongText, "strong", true},
	})
}

func TestUnderscoreEmphasis(t *testing.T) {
	doc := loadString(t, "an _emphasized_ word\n")
	p := doc.FirstChild()
	checkLeaves(t, collectLeaves(p), []leaf{
		{NormalText, "an", false},
		{EmphasizedText, "emphasized", true},
		{NormalText, "word", true},
	})
}

func TestStruckText(t *testing.T) {
	doc := loadString(t, "~~gone~~ kept\n")
	p := doc.FirstChild()
	checkLeaves(t, collectLeaves(p), []leaf{
		{StruckText, "gone", false},
		{NormalText, "kept", true},
	})
}

func TestCodeSpan(t *testing.T) {
	doc := loadString(t, "run `make all` now\n")
	p := doc.FirstChild()
	checkLeaves(t, collectLeaves(p), []leaf{
		{NormalText, "run", false},
		{CodeText, "make all", true},
		{NormalText, "now", true},
	})
}

func TestBackslashEscape(t *testing.T) {
	doc := loadString(t, "\\*not em\\*\n")
	p := doc.FirstChild()
	for n := p.FirstChild(); n != nil; n = n.NextSibling() {
		if n.Type() != NormalText {
			t.Fatalf("expected only normal-text, got %v", n.Type())
		}
	}
	if got := p.CopyAllText(); got != "*not em*" {
		t.Fatalf("expected %q, got %q", "*not em*", got)
	}
}

func TestBackslashLiteralInCodeSpan(t *testing.T) {
	doc := loadString(t, "`a\\b`\n")
	code := doc.FirstChild().FirstChild()
	if code.Type() != CodeText {
		t.Fatalf("expected code-text, got %v", code.Type())
	}
	if code.Text() != "a\\b" {
		t.Fatalf("expected backslash kept, got %q", code.Text())
	}
}

func TestInlineLink(t *testing.T) {
	doc := loadString(t, "see [the docs](https://example.com/docs) here\n")
	p := doc.FirstChild()
	checkLeaves(t, collectLeaves(p), []leaf{
		{NormalText, "see", false},
		{LinkedText, "the docs", true},
		{NormalText, "here", true},
	})
	link := p.FirstChild().NextSibling()
	if link.URL() != "https://example.com/docs" {
		t.Fatalf("expected URL bound, got %q", link.URL())
	}
}

func TestLinkTitleDiscarded(t *testing.T) {
	doc := loadString(t, "[x](/path \"a title\")\n")
	link := doc.FirstChild().FirstChild()
	if link.Type() != LinkedText || link.URL() != "/path" {
		t.Fatalf("expected /path, got %v %q", link.Type(), link.URL())
	}
}

func TestAutolink(t *testing.T) {
	doc := loadString(t, "<https://example.com>\n")
	link := doc.FirstChild().FirstChild()
	if link.Type() != LinkedText {
		t.Fatalf("expected linked-text, got %v", link.Type())
	}
	if link.Text() != "https://example.com" || link.URL() != "https://example.com" {
		t.Fatalf("expected text and URL equal, got %q %q", link.Text(), link.URL())
	}
}

func TestImage(t *testing.T) {
	doc := loadString(t, "![alt text](img.png)\n")
	img := doc.FirstChild().FirstChild()
	if img.Type() != Image {
		t.Fatalf("expected image, got %v", img.Type())
	}
	if img.Text() != "alt text" || img.URL() != "img.png" {
		t.Fatalf("expected alt/url, got %q %q", img.Text(), img.URL())
	}
}

func TestCodeLink(t *testing.T) {
	doc := loadString(t, "[`Load`](/api#load)\n")
	code := doc.FirstChild().FirstChild()
	if code.Type() != CodeText {
		t.Fatalf("expected code-text, got %v", code.Type())
	}
	if code.Text() != "Load" || code.URL() != "/api#load" {
		t.Fatalf("expected code link, got %q %q", code.Text(), code.URL())
	}
}

func TestUnterminatedLinkIsLiteral(t *testing.T) {
	doc := loadString(t, "broken [link text\n")
	p := doc.FirstChild()
	last := p.LastChild()
	if last.Type() != NormalText || last.Text() != "[link text" {
		t.Fatalf("expected literal remainder, got %v %q", last.Type(), last.Text())
	}
}
