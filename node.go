package mdt

import "strings"

// NodeType identifies the kind of a document tree node.
//
// Block types come before the inline range; consumers may rely on that
// ordering, but IsBlock is the supported predicate.
type NodeType int

// Node types, in document-structure order.
const (
	None NodeType = iota
	Document
	Metadata
	BlockQuote
	OrderedList
	UnorderedList
	ListItem
	Table
	TableHeader
	TableBody
	TableRow
	Heading1
	Heading2
	Heading3
	Heading4
	Heading5
	Heading6
	Paragraph
	CodeBlock
	ThematicBreak
	TableHeaderCell
	TableBodyCellLeft
	TableBodyCellCenter
	TableBodyCellRight
	NormalText
	EmphasizedText
	StrongText
	StruckText
	LinkedText
	CodeText
	Image
	HardBreak
	SoftBreak
	MetadataText
)

var nodeTypeNames = map[NodeType]string{
	None:                "none",
	Document:            "document",
	Metadata:            "metadata",
	BlockQuote:          "block-quote",
	OrderedList:         "ordered-list",
	UnorderedList:       "unordered-list",
	ListItem:            "list-item",
	Table:               "table",
	TableHeader:         "table-header",
	TableBody:           "table-body",
	TableRow:            "table-row",
	Heading1:            "heading-1",
	Heading2:            "heading-2",
	Heading3:            "heading-3",
	Heading4:            "heading-4",
	Heading5:            "heading-5",
	Heading6:            "heading-6",
	Paragraph:           "paragraph",
	CodeBlock:           "code-block",
	ThematicBreak:       "thematic-break",
	TableHeaderCell:     "table-header-cell",
	TableBodyCellLeft:   "table-body-cell-left",
	TableBodyCellCenter: "table-body-cell-center",
	TableBodyCellRight:  "table-body-cell-right",
	NormalText:          "normal-text",
	EmphasizedText:      "emphasized-text",
	StrongText:          "strong-text",
	StruckText:          "struck-text",
	LinkedText:          "linked-text",
	CodeText:            "code-text",
	Image:               "image",
	HardBreak:           "hard-break",
	SoftBreak:           "soft-break",
	MetadataText:        "metadata-text",
}

// String returns a stable lowercase name for the type.
func (t NodeType) String() string {
	if name, ok := nodeTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// IsBlock reports whether nodes of this type are structural containers
// rather than inline content.
func (t NodeType) IsBlock() bool {
	switch t {
	case Document, Metadata, BlockQuote, OrderedList, UnorderedList, ListItem,
		Table, TableHeader, TableBody, TableRow,
		Heading1, Heading2, Heading3, Heading4, Heading5, Heading6,
		Paragraph, CodeBlock, ThematicBreak,
		TableHeaderCell, TableBodyCellLeft, TableBodyCellCenter, TableBodyCellRight:
		return true
	default:
		return false
	}
}

// Node is a single node in a loaded document tree.
//
// A tree has exactly one root of type Document with a nil parent; every
// other node appears in exactly one parent's child list. All accessors
// are read-only and safe on a nil receiver.
type Node struct {
	nodeType   NodeType
	whitespace bool
	text       string
	url        string

	// refName holds the name of a reference whose URL was not known when
	// the node was created; resolveReferences clears it before Load
	// returns.
	refName string

	parent      *Node
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node
}

// newNode appends a node of the given type to parent's child list.
// A nil parent creates a root.
func newNode(parent *Node, nodeType NodeType, whitespace bool, text, url string) *Node {
	n := &Node{
		nodeType:   nodeType,
		whitespace: whitespace,
		text:       text,
		url:        url,
	}
	if parent != nil {
		n.parent = parent
		if parent.lastChild != nil {
			parent.lastChild.nextSibling = n
			n.prevSibling = parent.lastChild
			parent.lastChild = n
		} else {
			parent.firstChild = n
			parent.lastChild = n
		}
	}
	return n
}

// remove detaches the node from its parent's sibling chain without
// touching its children.
func (n *Node) remove() {
	if n == nil || n.parent == nil {
		return
	}
	if n.prevSibling != nil {
		n.prevSibling.nextSibling = n.nextSibling
	} else {
		n.parent.firstChild = n.nextSibling
	}
	if n.nextSibling != nil {
		n.nextSibling.prevSibling = n.prevSibling
	} else {
		n.parent.lastChild = n.prevSibling
	}
	n.parent = nil
	n.prevSibling = nil
	n.nextSibling = nil
}

// Type returns the node type, or None for a nil node.
func (n *Node) Type() NodeType {
	if n == nil {
		return None
	}
	return n.nodeType
}

// Text returns the text owned by the node, if any.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return n.text
}

// URL returns the URL owned by the node: a link or image target, or the
// language hint of a fenced code block.
func (n *Node) URL() string {
	if n == nil {
		return ""
	}
	return n.url
}

// Whitespace reports whether inter-token whitespace preceded the node.
func (n *Node) Whitespace() bool {
	return n != nil && n.whitespace
}

// IsBlock reports whether the node is a block.
func (n *Node) IsBlock() bool {
	return n != nil && n.nodeType.IsBlock()
}

// Parent returns the parent of the node, if any.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// FirstChild returns the first child of the node, if any.
func (n *Node) FirstChild() *Node {
	if n == nil {
		return nil
	}
	return n.firstChild
}

// LastChild returns the last child of the node, if any.
func (n *Node) LastChild() *Node {
	if n == nil {
		return nil
	}
	return n.lastChild
}

// PrevSibling returns the previous sibling of the node, if any.
func (n *Node) PrevSibling() *Node {
	if n == nil {
		return nil
	}
	return n.prevSibling
}

// NextSibling returns the next sibling of the node, if any.
func (n *Node) NextSibling() *Node {
	if n == nil {
		return nil
	}
	return n.nextSibling
}

// CopyAllText concatenates the text of every descendant leaf, inserting
// a single space before each leaf whose whitespace flag is set. Useful
// for flattened labels such as heading anchors.
func (n *Node) CopyAllText() string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	current := n.firstChild
	for current != nil && current != n {
		if current.text != "" {
			if current.whitespace {
				sb.WriteByte(' ')
			}
			sb.WriteString(current.text)
		}
		next := current.nextSibling
		if next == nil {
			next = current.parent
			for next != nil && next != n && next.nextSibling == nil {
				next = next.parent
			}
			if next != nil && next != n {
				next = next.nextSibling
			}
		}
		current = next
	}
	return sb.String()
}

// Free releases the node and every descendant. The walk is iterative so
// arbitrarily deep or wide trees cannot exhaust the call stack. Call at
// most once per loaded document; the tree must not be used afterwards.
func (n *Node) Free() {
	if n == nil {
		return
	}
	n.remove()
	for current := n.firstChild; current != nil; {
		if next := current.firstChild; next != nil {
			// Children first; clearing the link stops the revisit from
			// descending again.
			current.firstChild = nil
			current = next
			continue
		}
		next := current.nextSibling
		if next == nil {
			if next = current.parent; next == n {
				next = nil
			}
		}
		current.release()
		current = next
	}
	n.release()
}

func (n *Node) release() {
	n.text = ""
	n.url = ""
	n.refName = ""
	n.parent = nil
	n.firstChild = nil
	n.lastChild = nil
	n.prevSibling = nil
	n.nextSibling = nil
}

// walkTree visits every descendant of root in document order without
// recursion.
func walkTree(root *Node, fn func(*Node)) {
	if root == nil {
		return
	}
	node := root.firstChild
	for node != nil {
		fn(node)
		switch {
		case node.firstChild != nil:
			node = node.firstChild
		case node.nextSibling != nil:
			node = node.nextSibling
		default:
			for node.parent != nil && node.parent != root && node.parent.nextSibling == nil {
				node = node.parent
			}
			if node.parent == nil || node.parent == root {
				node = nil
			} else {
				node = node.parent.nextSibling
			}
		}
	}
}
