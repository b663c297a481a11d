package mdt

import (
	"io"
	"os"
	"strings"
)

// parser carries the reference table built up while loading one
// document.
type parser struct {
	refs []*reference
}

// Load reads the named markdown file and returns its document tree.
func Load(filename string) (*Node, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader reads markdown from r and returns its document tree. The
// root node always has type Document; an error leaves no partial tree.
func LoadReader(r io.Reader) (*Node, error) {
	p := &parser{}
	lines := newLineReader(r)
	root := newNode(nil, Document, false, "", "")

	var (
		current    = root
		block      *Node
		blankCode  bool
		columns    [256]NodeType
		numColumns int
		rows       int
	)

	for {
		line, ok := lines.next()
		if !ok {
			break
		}

		sp := 0
		for sp < len(line) && isSpaceByte(line[sp]) {
			sp++
		}
		text := line[sp:]
		atStart := sp == 0

		if sp >= 4 && block == nil && (current == root || current.Type() == CodeBlock) {
			// Indented code block.
			if current == root {
				current = newNode(root, CodeBlock, false, "", "")
			}
			if blankCode {
				newNode(current, CodeText, false, "\n", "")
			}
			newNode(current, CodeText, false, line[4:]+"\n", "")
			blankCode = false
			continue
		} else if len(text) > 0 && text[0] == '`' && (len(text) == 1 || text[1] == '`') {
			// Code fence. The text after the backticks is a language hint
			// kept in the block's URL field.
			lang := strings.Trim(strings.TrimLeft(text, "`"), " \t")
			if block != nil {
				switch {
				case block.Type() == CodeBlock:
					block = nil
				case block.Type() == ListItem:
					block = newNode(block, CodeBlock, false, "", lang)
				case block.Parent().Type() == ListItem:
					block = newNode(block.Parent(), CodeBlock, false, "", lang)
				default:
					block = newNode(current, CodeBlock, false, "", lang)
				}
			} else {
				block = newNode(current, CodeBlock, false, "", lang)
			}
			continue
		}

		if block != nil && block.Type() == CodeBlock {
			newNode(block, CodeText, false, line+"\n", "")
			continue
		} else if text == "---" && root.firstChild == nil {
			// Document metadata.
			block = newNode(root, Metadata, false, "", "")
			for {
				mline, mok := lines.next()
				if !mok || strings.HasPrefix(mline, "---") || strings.HasPrefix(mline, "...") {
					break
				}
				newNode(block, MetadataText, false, strings.TrimLeft(mline, " \t\v\f"), "")
			}
			block = nil
			continue
		} else if block == nil && (strings.HasPrefix(text, "---") || strings.HasPrefix(text, "***") || strings.HasPrefix(text, "___")) {
			ch := text[0]
			rest := text[3:]
			for len(rest) > 0 && (rest[0] == ch || isSpaceByte(rest[0])) {
				rest = rest[1:]
			}
			if len(rest) == 0 {
				newNode(current, ThematicBreak, false, "", "")
				block = nil
				continue
			}
			text = rest
			atStart = false
		}

		if len(text) > 0 && text[0] == '>' {
			// Block quote; reuse an open one if the current container is
			// inside it.
			node := current
			for node != root && node.Type() != BlockQuote {
				node = node.parent
			}
			if node == root {
				current = newNode(root, BlockQuote, false, "", "")
			}
			text = text[1:]
			for len(text) > 0 && isSpaceByte(text[0]) {
				text = text[1:]
			}
			atStart = false
		} else if current.Type() == BlockQuote {
			current = current.parent
		} else if current.Type() == Table && current.parent != nil && current.parent.Type() == BlockQuote {
			current = current.parent.parent
		}

		if len(text) == 0 {
			blankCode = current.Type() == CodeBlock
			block = nil
			continue
		} else if strings.Contains(text, "|") && (current.Type() == Table || isTableSeparatorAhead(lines)) {
			// Table row. rows counts processed rows: -1 while in the
			// header, 0 on the separator row, 1+ in the body.
			if current.Type() != Table {
				if current != root && current.Type() != BlockQuote {
					current = current.parent
				}
				current = newNode(current, Table, false, "", "")
				block = newNode(current, TableHeader, false, "", "")
				for col := range columns {
					columns[col] = TableBodyCellLeft
				}
				numColumns = 0
				rows = -1
			} else if rows > 0 {
				if rows == 1 {
					block = newNode(current, TableBody, false, "", "")
				}
			} else {
				block = nil
			}

			var row *Node
			if block != nil {
				row = newNode(block, TableRow, false, "", "")
			}

			cells := splitTableRow(text)
			col := 0
			for ; col < len(cells) && col < len(columns); col++ {
				if block != nil {
					var cell *Node
					if block.Type() == TableHeader {
						cell = newNode(row, TableHeaderCell, false, "", "")
					} else {
						cell = newNode(row, columns[col], false, "", "")
					}
					p.parseInline(cell, []byte(cells[col]))
				} else {
					// Separator row; derive column alignment.
					c := strings.Trim(cells[col], " \t")
					if len(c) > 0 && c[0] == ':' && c[len(c)-1] == ':' {
						columns[col] = TableBodyCellCenter
					} else if len(c) > 0 && c[len(c)-1] == ':' {
						columns[col] = TableBodyCellRight
					}
				}
			}

			// The widest row sets the column count; short body rows are
			// padded with empty cells.
			if col > numColumns {
				numColumns = col
			} else if block != nil && block.Type() != TableHeader {
				for ; col < numColumns; col++ {
					newNode(row, columns[col], false, "", "")
				}
			}
			rows++
			continue
		} else if current.Type() == Table {
			current = current.parent
			block = nil
		}

		var typ NodeType
		if text == "+" {
			// Continuation marker: start a new paragraph in the open list
			// item.
			if block != nil {
				switch {
				case block.Type() == ListItem:
					block = newNode(block, Paragraph, false, "", "")
				case block.Parent().Type() == ListItem:
					block = newNode(block.Parent(), Paragraph, false, "", "")
				default:
					block = nil
				}
			}
			continue
		} else if block != nil && block.Type() == Paragraph && (strings.HasPrefix(text, "---") || strings.HasPrefix(text, "===")) {
			// Setext heading underline.
			ch := text[0]
			rest := text[3:]
			for len(rest) > 0 && rest[0] == ch {
				rest = rest[1:]
			}
			for len(rest) > 0 && isSpaceByte(rest[0]) {
				rest = rest[1:]
			}
			if len(rest) == 0 {
				if ch == '=' {
					block.nodeType = Heading1
				} else {
					block.nodeType = Heading2
				}
				block = nil
				continue
			}
			text = rest
			typ = Paragraph
		} else if (text[0] == '-' || text[0] == '+' || text[0] == '*') && len(text) > 1 && isSpaceByte(text[1]) {
			// Bulleted list item.
			text = text[2:]
			for len(text) > 0 && isSpaceByte(text[0]) {
				text = text[1:]
			}
			if current == root && root.lastChild.Type() == UnorderedList {
				current = root.lastChild
			} else if current.Type() != UnorderedList {
				parent := root
				if current.Type() == BlockQuote {
					parent = current
				}
				current = newNode(parent, UnorderedList, false, "", "")
			}
			typ = ListItem
			block = nil
		} else if text[0] >= '0' && text[0] <= '9' {
			// Ordered list item?
			j := 1
			for j < len(text) && text[j] >= '0' && text[j] <= '9' {
				j++
			}
			if j+1 < len(text) && text[j] == '.' && isSpaceByte(text[j+1]) {
				text = text[j+2:]
				for len(text) > 0 && isSpaceByte(text[0]) {
					text = text[1:]
				}
				if current == root && root.lastChild.Type() == OrderedList {
					current = root.lastChild
				} else if current.Type() != OrderedList {
					current = newNode(current, OrderedList, false, "", "")
				}
				typ = ListItem
				block = nil
			} else if block != nil {
				typ = block.Type()
			} else {
				typ = Paragraph
			}
		} else if text[0] == '#' {
			n := 1
			for n < len(text) && text[n] == '#' {
				n++
			}
			if n <= 6 {
				typ = Heading1 + NodeType(n-1)
				block = nil
				text = text[n:]
				for len(text) > 0 && isSpaceByte(text[0]) {
					text = text[1:]
				}
				for len(text) > 1 && text[len(text)-1] == '#' {
					text = text[:len(text)-1]
				}
			} else {
				// Seven or more makes a paragraph, marker included.
				typ = Paragraph
			}
			if current.Type() != BlockQuote {
				current = root
			}
		} else if block == nil {
			typ = Paragraph
			if atStart {
				current = root
			}
		} else {
			typ = block.Type()
		}

		if block == nil || block.Type() != typ {
			if current.Type() == CodeBlock {
				current = root
			}
			block = newNode(current, typ, false, "", "")
		}
		p.parseInline(block, []byte(text))
	}

	if err := lines.failure(); err != nil {
		root.Free()
		return nil, err
	}

	p.resolveReferences(root)
	return root, nil
}

// isTableSeparatorAhead peeks at the next line and reports whether it
// looks like a table heading divider.
func isTableSeparatorAhead(lines *lineReader) bool {
	line, ok := lines.peek()
	if !ok {
		return false
	}
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if ch == '>' && i == 0 {
			continue
		}
		if !strings.ContainsRune(" \t\r:-|", rune(ch)) {
			return false
		}
	}
	return true
}

// splitTableRow splits a table row into raw cell strings. Leading and
// single trailing pipes are decorative; a backslash-escaped pipe does
// not split and the backslash is left for the inline scanner to elide.
func splitTableRow(text string) []string {
	text = strings.TrimPrefix(text, "|")
	text = strings.TrimRight(text, " \t")
	if strings.HasSuffix(text, "|") && !strings.HasSuffix(text, "\\|") {
		text = text[:len(text)-1]
	}
	if text == "" {
		return nil
	}
	var cells []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '|':
			cells = append(cells, text[start:i])
			start = i + 1
		}
	}
	return append(cells, text[start:])
}
