package dom

// NodeType discriminates the variants a Node can take.
type NodeType uint8

const (
	DocumentNode NodeType = iota + 1
	DocumentTypeNode
	ElementNode
	TextNode
	CommentNode
)

func (t NodeType) String() string {
	switch t {
	case DocumentNode:
		return "document"
	case DocumentTypeNode:
		return "doctype"
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	}
	return "unknown"
}

// Namespace identifies the namespace an element or attribute belongs to.
type Namespace uint8

const (
	HTMLNamespace Namespace = iota
	MathMLNamespace
	SVGNamespace
	XLinkNamespace
	XMLNamespace
	XMLNSNamespace
)

func (ns Namespace) URI() string {
	switch ns {
	case HTMLNamespace:
		return "http://www.w3.org/1999/xhtml"
	case MathMLNamespace:
		return "http://www.w3.org/1998/Math/MathML"
	case SVGNamespace:
		return "http://www.w3.org/2000/svg"
	case XLinkNamespace:
		return "http://www.w3.org/1999/xlink"
	case XMLNamespace:
		return "http://www.w3.org/XML/1998/namespace"
	case XMLNSNamespace:
		return "http://www.w3.org/2000/xmlns/"
	}
	return ""
}

// Attribute is one name/value pair on an element. Attribute order is the
// order of first appearance in the markup; a later duplicate never
// overwrites an earlier name.
type Attribute struct {
	Name      string
	Value     string
	Namespace Namespace
	Prefix    string
}

// Node is a tagged variant: the fields past Parent/Children are meaningful
// only for the NodeType the node was created with.
type Node struct {
	Type     NodeType
	Parent   NodeRef
	Children []NodeRef

	// ElementNode
	Tag        string
	Namespace  Namespace
	Attributes []Attribute

	// TextNode and CommentNode
	Data string

	// DocumentTypeNode
	Name        string
	PublicID    string
	SystemID    string
	HasPublicID bool
	HasSystemID bool

	detached bool
}

// Attr returns the value of the named attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttr reports whether the named attribute is present.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.Attr(name)
	return ok
}

// IsElement reports whether the node is an element with the given tag in the
// HTML namespace.
func (n *Node) IsElement(tag string) bool {
	return n.Type == ElementNode && n.Namespace == HTMLNamespace && n.Tag == tag
}
