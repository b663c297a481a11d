// Package mdt parses Markdown into a document tree.
//
// The parser is line oriented: each input line is classified once, in a
// fixed priority order, and attached to the tree as it is read. The
// result is a single Document root whose children are blocks (headings,
// paragraphs, lists, tables, block quotes, code blocks) and whose
// leaves are typed text fragments with whitespace flags, so a renderer
// can rebuild spacing without re-tokenizing.
//
// Example:
//
//	doc, err := mdt.LoadReader(strings.NewReader("# Hello\n\nSome *text*.\n"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer doc.Free()
//	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
//		fmt.Println(node.Type(), node.CopyAllText())
//	}
//
// Document metadata between leading "---" lines is kept on the tree as
// a Metadata node; see (*Node).Metadata and DecodeMetadata.
package mdt
