package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"pkt.systems/mdt"
)

const (
	ansiReset     = "\x1b[0m"
	ansiBold      = "\x1b[1m"
	ansiDim       = "\x1b[2m"
	ansiItalic    = "\x1b[3m"
	ansiUnderline = "\x1b[4m"
	ansiStrike    = "\x1b[9m"
	ansiCyan      = "\x1b[36m"
	ansiYellow    = "\x1b[33m"
)

// renderTerm writes the document tree as word-wrapped ANSI text.
func renderTerm(w io.Writer, doc *mdt.Node, width int, osc8 bool) error {
	if width <= 0 {
		width = defaultWidth
	}
	r := &termRenderer{w: bufio.NewWriter(w), width: width, osc8: osc8}
	r.writeChildren(doc, "")
	return r.w.Flush()
}

type termRenderer struct {
	w     *bufio.Writer
	width int
	osc8  bool
}

func (r *termRenderer) writeChildren(parent *mdt.Node, indent string) {
	first := true
	for node := parent.FirstChild(); node != nil; node = node.NextSibling() {
		if node.Type() == mdt.Metadata {
			continue
		}
		if !first {
			r.w.WriteString(strings.TrimRight(indent, " "))
			r.w.WriteByte('\n')
		}
		first = false
		r.writeBlock(node, indent)
	}
}

func (r *termRenderer) writeBlock(node *mdt.Node, indent string) {
	switch node.Type() {
	case mdt.Heading1, mdt.Heading2:
		r.writeWrapped(ansiBold+ansiUnderline+r.inline(node)+ansiReset, indent, indent)
	case mdt.Heading3, mdt.Heading4, mdt.Heading5, mdt.Heading6:
		r.writeWrapped(ansiBold+r.inline(node)+ansiReset, indent, indent)
	case mdt.Paragraph:
		r.writeWrapped(r.inline(node), indent, indent)
	case mdt.BlockQuote:
		r.writeChildren(node, indent+"> ")
	case mdt.UnorderedList:
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			r.writeListItem(item, indent, "- ")
		}
	case mdt.OrderedList:
		n := 1
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			r.writeListItem(item, indent, fmt.Sprintf("%d. ", n))
			n++
		}
	case mdt.CodeBlock:
		for t := node.FirstChild(); t != nil; t = t.NextSibling() {
			line := strings.TrimSuffix(t.Text(), "\n")
			r.w.WriteString(indent + "    " + ansiYellow + line + ansiReset + "\n")
		}
	case mdt.ThematicBreak:
		n := r.width - len(indent)
		if n < 1 {
			n = 1
		}
		r.w.WriteString(indent + ansiDim + strings.Repeat("─", n) + ansiReset + "\n")
	case mdt.Table:
		r.writeTable(node, indent)
	default:
		r.writeWrapped(r.inline(node), indent, indent)
	}
}

func (r *termRenderer) writeListItem(item *mdt.Node, indent, marker string) {
	cont := indent + strings.Repeat(" ", len(marker))
	r.writeWrapped(r.inline(item), indent+marker, cont)
	for node := item.FirstChild(); node != nil; node = node.NextSibling() {
		if !node.IsBlock() {
			continue
		}
		r.w.WriteByte('\n')
		r.writeBlock(node, cont)
	}
}

func (r *termRenderer) writeWrapped(text, first, rest string) {
	limit := r.width - len(rest)
	if limit < 20 {
		limit = 20
	}
	for i, line := range strings.Split(wordwrap.String(text, limit), "\n") {
		if i == 0 {
			r.w.WriteString(first)
		} else {
			r.w.WriteString(rest)
		}
		r.w.WriteString(line)
		r.w.WriteByte('\n')
	}
}

// inline renders the leaf children of parent as one styled string.
func (r *termRenderer) inline(parent *mdt.Node) string {
	var sb strings.Builder
	for node := parent.FirstChild(); node != nil; node = node.NextSibling() {
		if node.IsBlock() {
			continue
		}
		r.inlineLeaf(&sb, node)
	}
	return sb.String()
}

func (r *termRenderer) inlineLeaf(sb *strings.Builder, node *mdt.Node) {
	if node.Whitespace() {
		sb.WriteByte(' ')
	}
	text := node.Text()
	url := node.URL()
	switch node.Type() {
	case mdt.EmphasizedText:
		sb.WriteString(ansiItalic + text + ansiReset)
	case mdt.StrongText:
		sb.WriteString(ansiBold + text + ansiReset)
	case mdt.StruckText:
		sb.WriteString(ansiStrike + text + ansiReset)
	case mdt.CodeText:
		sb.WriteString(ansiYellow + text + ansiReset)
	case mdt.LinkedText:
		if r.osc8 && url != "" && url != "@" {
			sb.WriteString(osc8Start + url + "\x1b\\")
			sb.WriteString(ansiUnderline + ansiCyan + text + ansiReset)
			sb.WriteString(osc8End)
		} else {
			sb.WriteString(ansiUnderline + ansiCyan + text + ansiReset)
			if url != "" && url != "@" && url != text {
				sb.WriteString(ansiDim + " (" + url + ")" + ansiReset)
			}
		}
	case mdt.Image:
		sb.WriteString(ansiDim + "[image: " + text + "]" + ansiReset)
	case mdt.HardBreak:
		sb.WriteByte('\n')
	case mdt.SoftBreak:
	default:
		sb.WriteString(text)
	}
}

func (r *termRenderer) writeTable(table *mdt.Node, indent string) {
	type tableRow struct {
		cells  []string
		header bool
	}
	var (
		rows   []tableRow
		aligns []mdt.NodeType
		widths []int
	)
	for part := table.FirstChild(); part != nil; part = part.NextSibling() {
		header := part.Type() == mdt.TableHeader
		for row := part.FirstChild(); row != nil; row = row.NextSibling() {
			tr := tableRow{header: header}
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				text := cell.CopyAllText()
				col := len(tr.cells)
				if col >= len(widths) {
					widths = append(widths, 0)
					aligns = append(aligns, mdt.TableBodyCellLeft)
				}
				if n := len([]rune(text)); n > widths[col] {
					widths[col] = n
				}
				if !header && cell.Type() != mdt.TableBodyCellLeft {
					aligns[col] = cell.Type()
				}
				tr.cells = append(tr.cells, text)
			}
			rows = append(rows, tr)
		}
	}

	sepDone := false
	for _, row := range rows {
		r.w.WriteString(indent)
		for col, cell := range row.cells {
			if col > 0 {
				r.w.WriteString("  ")
			}
			padded := padCell(cell, widths[col], aligns[col])
			if row.header {
				r.w.WriteString(ansiBold + padded + ansiReset)
			} else {
				r.w.WriteString(padded)
			}
		}
		r.w.WriteByte('\n')
		if row.header && !sepDone {
			sepDone = true
			total := 0
			for col, w := range widths {
				if col > 0 {
					total += 2
				}
				total += w
			}
			r.w.WriteString(indent + ansiDim + strings.Repeat("─", total) + ansiReset + "\n")
		}
	}
}

func padCell(text string, width int, align mdt.NodeType) string {
	pad := width - len([]rune(text))
	if pad <= 0 {
		return text
	}
	switch align {
	case mdt.TableBodyCellRight:
		return strings.Repeat(" ", pad) + text
	case mdt.TableBodyCellCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
	default:
		return text + strings.Repeat(" ", pad)
	}
}
