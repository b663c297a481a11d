package mdt

import (
	"errors"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoMetadata is returned by DecodeMetadata when the document has no
// leading metadata block.
var ErrNoMetadata = errors.New("mdt: document has no metadata")

// Metadata returns the value of the given metadata keyword, or "" if
// the document has no metadata block or the keyword is absent. Lookup
// is a plain "keyword:" prefix match on each metadata line.
func (n *Node) Metadata(keyword string) string {
	if n == nil || keyword == "" {
		return ""
	}
	meta := n.firstChild
	if meta == nil || meta.nodeType != Metadata {
		return ""
	}
	prefix := keyword + ":"
	for entry := meta.firstChild; entry != nil; entry = entry.nextSibling {
		if strings.HasPrefix(entry.text, prefix) {
			return strings.TrimLeft(entry.text[len(prefix):], " \t")
		}
	}
	return ""
}

// DecodeMetadata unmarshals the document's metadata block as YAML into
// out. It returns ErrNoMetadata when the document has none.
func (n *Node) DecodeMetadata(out any) error {
	if n == nil {
		return ErrNoMetadata
	}
	meta := n.firstChild
	if meta == nil || meta.nodeType != Metadata {
		return ErrNoMetadata
	}
	var sb strings.Builder
	for entry := meta.firstChild; entry != nil; entry = entry.nextSibling {
		sb.WriteString(entry.text)
		sb.WriteByte('\n')
	}
	return yaml.Unmarshal([]byte(sb.String()), out)
}
