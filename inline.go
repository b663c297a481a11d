package mdt

import "bytes"

func isSpaceByte(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// parseInline splits one line of block content into leaf nodes under
// parent. The scanner owns line and may shrink it in place when eliding
// backslash escapes.
func (p *parser) parseInline(parent *Node, line []byte) {
	whitespace := parent.lastChild != nil
	typ := NormalText
	textStart := -1

	// flush emits the pending text fragment ending at i, if one is open.
	// Empty fragments still produce a node; style toggles rely on that.
	flush := func(i int) bool {
		if textStart < 0 {
			return false
		}
		newNode(parent, typ, whitespace, string(line[textStart:i]), "")
		textStart = -1
		return true
	}

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case isSpaceByte(ch) && typ != CodeText:
			flush(i)
			whitespace = true
			if i+2 == len(line) && ch == ' ' && line[i+1] == ' ' {
				newNode(parent, HardBreak, false, "", "")
			}

		case ch == '!' && i+1 < len(line) && line[i+1] == '[' && typ != CodeText:
			if flush(i) {
				whitespace = false
			}
			next, text, url, refname, res := p.parseLink(line, i+1)
			if res == linkUnterminated {
				newNode(parent, NormalText, whitespace, string(line[i:]), "")
				return
			}
			if res == linkNode && (url != "" || refname != "") {
				node := newNode(parent, Image, whitespace, text, url)
				if refname != "" {
					p.refUse(node, refname)
				}
			}
			if next >= len(line) {
				return
			}
			whitespace = false
			i = next - 1

		case ch == '[' && typ != CodeText:
			if flush(i) {
				whitespace = false
			}
			next, text, url, refname, res := p.parseLink(line, i)
			if res == linkUnterminated {
				newNode(parent, NormalText, whitespace, string(line[i:]), "")
				return
			}
			if res == linkNode {
				var node *Node
				if len(text) > 0 && text[0] == '`' {
					code := text[1:]
					if len(code) > 0 && code[len(code)-1] == '`' {
						code = code[:len(code)-1]
					}
					node = newNode(parent, CodeText, whitespace, code, url)
				} else {
					node = newNode(parent, LinkedText, whitespace, text, url)
				}
				if refname != "" {
					p.refUse(node, refname)
				}
			}
			if next >= len(line) {
				return
			}
			whitespace = false
			i = next - 1

		case ch == '<' && typ != CodeText && bytes.IndexByte(line[i+1:], '>') >= 0:
			if flush(i) {
				whitespace = false
			}
			j := i + 1 + bytes.IndexByte(line[i+1:], '>')
			url := string(line[i+1 : j])
			newNode(parent, LinkedText, whitespace, url, url)
			whitespace = false
			i = j

		case (ch == '*' || ch == '_') && typ != CodeText:
			if flush(i) {
				whitespace = false
			}
			if typ == NormalText {
				if i+1 < len(line) && line[i+1] == ch && (i+2 >= len(line) || !isSpaceByte(line[i+2])) {
					typ = StrongText
					i++
				} else if i+1 >= len(line) || !isSpaceByte(line[i+1]) {
					typ = EmphasizedText
				}
				textStart = i + 1
			} else {
				if i+1 < len(line) && line[i+1] == ch {
					i++
				}
				typ = NormalText
			}

		case ch == '~' && i+1 < len(line) && line[i+1] == '~' && typ != CodeText:
			if flush(i) {
				whitespace = false
			}
			if typ == NormalText && (i+2 >= len(line) || !isSpaceByte(line[i+2])) {
				typ = StruckText
				textStart = i + 2
			} else {
				i++
				typ = NormalText
			}

		case ch == '`':
			if flush(i) {
				whitespace = false
			}
			if typ == CodeText {
				typ = NormalText
			} else {
				typ = CodeText
				textStart = i + 1
			}

		case textStart < 0:
			if ch == '\\' && i+1 < len(line) {
				i++
			}
			textStart = i

		case ch == '\\' && i+1 < len(line) && typ != CodeText:
			// Elide the backslash; the escaped character is skipped by
			// the loop increment so it cannot open a construct.
			copy(line[i:], line[i+1:])
			line = line[:len(line)-1]
		}
	}

	if textStart >= 0 {
		newNode(parent, typ, whitespace, string(line[textStart:]), "")
	}
}

type linkResult int

const (
	linkNode linkResult = iota
	linkRefDef
	linkUnterminated
)

// parseLink parses a link construct starting at the '[' at line[i].
// next is the index of the first byte after the construct. For the bare
// shortcut form [name], next is the byte after ']' and refname carries
// the name. A reference definition consumes the rest of the line and
// produces no node.
func (p *parser) parseLink(line []byte, i int) (next int, text, url, refname string, res linkResult) {
	i++
	start := i
	for i < len(line) && line[i] != ']' {
		if line[i] == '"' {
			i++
			for i < len(line) && line[i] != '"' {
				i++
			}
			if i >= len(line) {
				return i, "", "", "", linkUnterminated
			}
		}
		i++
	}
	if i >= len(line) {
		return i, "", "", "", linkUnterminated
	}
	text = string(line[start:i])
	i++
	afterBracket := i

	j := i
	for j < len(line) && isSpaceByte(line[j]) {
		j++
	}

	switch {
	case j < len(line) && line[j] == '(':
		j++
		urlStart := j
		urlEnd := -1
		for j < len(line) && line[j] != ')' {
			if isSpaceByte(line[j]) {
				if urlEnd < 0 {
					urlEnd = j
				}
			} else if line[j] == '"' {
				j++
				for j < len(line) && line[j] != '"' {
					j++
				}
				if j >= len(line) {
					return j, "", "", "", linkUnterminated
				}
			}
			j++
		}
		if j >= len(line) {
			return j, "", "", "", linkUnterminated
		}
		if urlEnd < 0 {
			urlEnd = j
		}
		url = string(line[urlStart:urlEnd])
		return j + 1, text, url, "", linkNode

	case j < len(line) && line[j] == '[':
		j++
		refStart := j
		refEnd := -1
		for j < len(line) && line[j] != ']' {
			if isSpaceByte(line[j]) {
				if refEnd < 0 {
					refEnd = j
				}
			} else if line[j] == '"' {
				j++
				for j < len(line) && line[j] != '"' {
					j++
				}
				if j >= len(line) {
					return j, "", "", "", linkUnterminated
				}
			}
			j++
		}
		if j >= len(line) {
			return j, "", "", "", linkUnterminated
		}
		if refEnd < 0 {
			refEnd = j
		}
		refname = string(line[refStart:refEnd])
		if refname == "" {
			refname = text
		}
		return j + 1, text, "", refname, linkNode

	case j < len(line) && line[j] == ':':
		j++
		for j < len(line) && isSpaceByte(line[j]) {
			j++
		}
		urlStart := j
		for j < len(line) && !isSpaceByte(line[j]) {
			j++
		}
		p.addReference(text, string(line[urlStart:j]))
		return len(line), "", "", "", linkRefDef

	default:
		// Shortcut reference use: [name] with no trailing construct.
		if text != "" {
			refname = text
		}
		return afterBracket, text, "", refname, linkNode
	}
}
