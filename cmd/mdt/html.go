package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
	"pkt.systems/mdt"
)

type htmlOptions struct {
	onlyBody  bool
	highlight string
}

const htmlPageStyle = `body {
  font-family: sans-serif;
  font-size: 18px;
  line-height: 150%;
}
a {
  font: inherit;
}
pre, li code, p code {
  font-family: monospace;
}
pre {
  background: #f8f8f8;
  border: solid thin #666;
  line-height: 120%;
  padding: 10px;
}
li code, p code {
  padding: 2px 5px;
}
table {
  border: solid thin #999;
  border-collapse: collapse;
  border-spacing: 0;
}
td {
  border: solid thin #ccc;
  padding: 1px 5px;
}
td.center {
  text-align: center;
}
td.right {
  text-align: right;
}
th {
  background: #ccc;
  border: none;
  border-bottom: solid thin #999;
  padding: 1px 5px;
  text-align: center;
}
`

// renderHTML writes the document tree as HTML. Unless onlyBody is set
// the output is a complete page titled from the "title" metadata.
func renderHTML(w io.Writer, doc *mdt.Node, opts htmlOptions) error {
	bw := bufio.NewWriter(w)
	r := &htmlRenderer{w: bw, highlight: opts.highlight}

	if !opts.onlyBody {
		title := doc.Metadata("title")
		if title == "" {
			title = "Unknown"
		}
		bw.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<title>")
		r.writeText(title)
		bw.WriteString("</title>\n<style><!--\n")
		bw.WriteString(htmlPageStyle)
		bw.WriteString("--></style>\n</head>\n<body>\n")
	}

	r.writeBlock(doc)

	if !opts.onlyBody {
		bw.WriteString("</body>\n</html>\n")
	}
	if r.err != nil {
		return r.err
	}
	return bw.Flush()
}

type htmlRenderer struct {
	w         *bufio.Writer
	highlight string
	err       error
}

func (r *htmlRenderer) writeBlock(parent *mdt.Node) {
	var element, class string

	typ := parent.Type()
	switch typ {
	case mdt.BlockQuote:
		element = "blockquote"
	case mdt.OrderedList:
		element = "ol"
	case mdt.UnorderedList:
		element = "ul"
	case mdt.ListItem:
		element = "li"
	case mdt.Heading1:
		element = "h1"
	case mdt.Heading2:
		element = "h2"
	case mdt.Heading3:
		element = "h3"
	case mdt.Heading4:
		element = "h4"
	case mdt.Heading5:
		element = "h5"
	case mdt.Heading6:
		element = "h6"
	case mdt.Paragraph:
		element = "p"
	case mdt.CodeBlock:
		r.writeCodeBlock(parent)
		return
	case mdt.ThematicBreak:
		r.w.WriteString("<hr>\n")
		return
	case mdt.Table:
		element = "table"
	case mdt.TableHeader:
		element = "thead"
	case mdt.TableBody:
		element = "tbody"
	case mdt.TableRow:
		element = "tr"
	case mdt.TableHeaderCell:
		element = "th"
	case mdt.TableBodyCellLeft:
		element = "td"
	case mdt.TableBodyCellCenter:
		element = "td"
		class = "center"
	case mdt.TableBodyCellRight:
		element = "td"
		class = "right"
	case mdt.Metadata:
		return
	}

	if typ >= mdt.Heading1 && typ <= mdt.Heading6 {
		// Anchor each heading so internal "@" links can target it.
		fmt.Fprintf(r.w, "<%s id=\"", element)
		for node := parent.FirstChild(); node != nil; node = node.NextSibling() {
			if node.Whitespace() {
				r.w.WriteByte('-')
			}
			r.w.WriteString(makeAnchor(node.Text()))
		}
		r.w.WriteString("\">")
	} else if element != "" {
		fmt.Fprintf(r.w, "<%s", element)
		if class != "" {
			fmt.Fprintf(r.w, " class=%q", class)
		}
		r.w.WriteByte('>')
		if typ <= mdt.UnorderedList {
			r.w.WriteByte('\n')
		}
	}

	for node := parent.FirstChild(); node != nil; node = node.NextSibling() {
		if node.IsBlock() {
			r.writeBlock(node)
		} else {
			r.writeLeaf(node)
		}
	}

	if element != "" {
		fmt.Fprintf(r.w, "</%s>\n", element)
	}
}

func (r *htmlRenderer) writeCodeBlock(parent *mdt.Node) {
	var sb strings.Builder
	for node := parent.FirstChild(); node != nil; node = node.NextSibling() {
		sb.WriteString(node.Text())
	}
	lang := parent.URL()
	if r.highlight != "" && lang != "" && lexers.Get(lang) != nil {
		if err := quick.Highlight(r.w, sb.String(), lang, "html", r.highlight); err == nil {
			r.w.WriteByte('\n')
			return
		} else if r.err == nil {
			r.err = err
		}
	}
	r.w.WriteString("<pre><code>")
	r.writeText(sb.String())
	r.w.WriteString("</code></pre>\n")
}

func (r *htmlRenderer) writeLeaf(node *mdt.Node) {
	if node.Whitespace() {
		r.w.WriteByte(' ')
	}

	text := node.Text()
	url := node.URL()

	var element string
	switch node.Type() {
	case mdt.EmphasizedText:
		element = "em"
	case mdt.StrongText:
		element = "strong"
	case mdt.StruckText:
		element = "del"
	case mdt.CodeText:
		element = "code"
	case mdt.Image:
		r.w.WriteString("<img src=\"")
		r.writeText(url)
		r.w.WriteString("\" alt=\"")
		r.writeText(text)
		r.w.WriteString("\" />")
		return
	case mdt.HardBreak:
		r.w.WriteString("<br>\n")
		return
	case mdt.SoftBreak:
		r.w.WriteString("<wbr>\n")
		return
	case mdt.MetadataText:
		return
	}

	if url != "" {
		if url == "@" {
			fmt.Fprintf(r.w, "<a href=\"#%s\">", makeAnchor(text))
		} else {
			r.w.WriteString("<a href=\"")
			r.writeText(url)
			r.w.WriteString("\">")
		}
	}
	if element != "" {
		fmt.Fprintf(r.w, "<%s>", element)
	}
	r.writeText(text)
	if element != "" {
		fmt.Fprintf(r.w, "</%s>", element)
	}
	if url != "" {
		r.w.WriteString("</a>")
	}
}

func (r *htmlRenderer) writeText(text string) {
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '&':
			r.w.WriteString("&amp;")
		case '<':
			r.w.WriteString("&lt;")
		case '>':
			r.w.WriteString("&gt;")
		case '"':
			r.w.WriteString("&quot;")
		default:
			r.w.WriteByte(text[i])
		}
	}
}

// makeAnchor reduces heading text to an anchor name: alphanumerics,
// '.' and '-' are kept lowercased, spaces become dashes, anything else
// is dropped.
func makeAnchor(text string) string {
	var sb strings.Builder
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch >= 'A' && ch <= 'Z':
			sb.WriteByte(ch - 'A' + 'a')
		case (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'z') || ch == '.' || ch == '-':
			sb.WriteByte(ch)
		case ch == ' ':
			sb.WriteByte('-')
		}
	}
	return sb.String()
}
