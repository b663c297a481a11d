package mdt

import "strings"

// reference is one `[name]: url` definition, or a pending entry created
// by a use that preceded its definition.
type reference struct {
	name string
	url  string
}

func (p *parser) findReference(name string) *reference {
	for _, ref := range p.refs {
		if strings.EqualFold(ref.name, name) {
			return ref
		}
	}
	return nil
}

// addReference records a definition. The first definition of a name
// wins; later ones are ignored.
func (p *parser) addReference(name, url string) {
	if ref := p.findReference(name); ref != nil {
		if ref.url == "" {
			ref.url = url
		}
		return
	}
	p.refs = append(p.refs, &reference{name: name, url: url})
}

// refUse binds node to the named reference. If the definition has been
// seen the URL is copied now; otherwise the name is parked on the node
// for resolveReferences.
func (p *parser) refUse(node *Node, name string) {
	ref := p.findReference(name)
	if ref == nil {
		ref = &reference{name: name}
		p.refs = append(p.refs, ref)
	}
	if ref.url != "" {
		node.url = ref.url
		return
	}
	node.refName = name
}

// resolveReferences walks the finished tree and fills in every URL that
// was used before (or without) its definition. A name that never got a
// definition binds as its own URL, matching common shortcut usage.
func (p *parser) resolveReferences(root *Node) {
	walkTree(root, func(n *Node) {
		if n.refName == "" {
			return
		}
		if ref := p.findReference(n.refName); ref != nil && ref.url != "" {
			n.url = ref.url
		} else {
			n.url = n.refName
		}
		n.refName = ""
	})
}
