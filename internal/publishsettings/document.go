package publishsettings

import (
	"fmt"

	"github.com/beevik/etree"
)

// Node is a read-only view of an element in a parsed document.
type Node interface {
	Name() string
	Attributes() []Attribute
	Children() []Node
}

// ParseDocument parses XML into a Node tree. The returned node is the document itself;
// its children are the top-level elements.
func ParseDocument(data []byte) (Node, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentUnreadable, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: no root element", ErrDocumentUnreadable)
	}
	return documentNode{doc: doc}, nil
}

type documentNode struct {
	doc *etree.Document
}

func (d documentNode) Name() string            { return "" }
func (d documentNode) Attributes() []Attribute { return nil }
func (d documentNode) Children() []Node        { return elementNodes(d.doc.ChildElements()) }

type elementNode struct {
	el *etree.Element
}

func (e elementNode) Name() string { return e.el.FullTag() }

// Attributes skips namespace declarations, which are not profile attributes.
func (e elementNode) Attributes() []Attribute {
	attrs := make([]Attribute, 0, len(e.el.Attr))
	for _, a := range e.el.Attr {
		if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
			continue
		}
		attrs = append(attrs, Attribute{Name: a.FullKey(), Value: a.Value})
	}
	return attrs
}

func (e elementNode) Children() []Node { return elementNodes(e.el.ChildElements()) }

func elementNodes(elements []*etree.Element) []Node {
	nodes := make([]Node, 0, len(elements))
	for _, el := range elements {
		nodes = append(nodes, elementNode{el: el})
	}
	return nodes
}

// attributeValue returns the value of the attribute with exactly this name.
func attributeValue(n Node, name string) string {
	for _, a := range n.Attributes() {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}
