package main

import (
	"bufio"
	"fmt"
	"io"

	"pkt.systems/mdt"
)

// writeTree dumps the document tree one node per line, indented by
// depth. Handy for debugging parser output.
func writeTree(w io.Writer, doc *mdt.Node) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, doc.Type())
	var dump func(parent *mdt.Node, depth int)
	dump = func(parent *mdt.Node, depth int) {
		for node := parent.FirstChild(); node != nil; node = node.NextSibling() {
			fmt.Fprintf(bw, "%*s%s", 2*depth, "", node.Type())
			if node.Whitespace() {
				bw.WriteString(" ws")
			}
			if node.Text() != "" {
				fmt.Fprintf(bw, " %q", node.Text())
			}
			if node.URL() != "" {
				fmt.Fprintf(bw, " url=%q", node.URL())
			}
			bw.WriteByte('\n')
			dump(node, depth+1)
		}
	}
	dump(doc, 1)
	return bw.Flush()
}
