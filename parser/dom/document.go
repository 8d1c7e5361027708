package dom

// QuirksMode is the compatibility classification derived from the DOCTYPE.
type QuirksMode string

const (
	NoQuirks      QuirksMode = "no-quirks"
	LimitedQuirks QuirksMode = "limited-quirks"
	Quirks        QuirksMode = "quirks"
)

// InsertionPoint addresses a location in the tree: inside Parent,
// immediately before Before. An invalid Before means "append at the end".
type InsertionPoint struct {
	Parent NodeRef
	Before NodeRef
}

// Document owns the node arena for one parsed document. The mutation
// primitives are meant for the tree constructor only; every downstream
// consumer goes through the read-only traversal surface.
type Document struct {
	arena arena
	root  NodeRef

	QuirksMode QuirksMode

	// Complete is false while parsing is in progress and stays false when a
	// parse is aborted, so a partially built tree is recognizable as such.
	Complete bool
}

// NewDocument creates an empty document whose root document node occupies
// the first arena slot.
func NewDocument() *Document {
	d := &Document{QuirksMode: NoQuirks}
	d.root = d.arena.register(&Node{Type: DocumentNode, Parent: InvalidRef})
	return d
}

// Root returns the document node reference.
func (d *Document) Root() NodeRef {
	return d.root
}

// Node resolves a reference. It returns nil for an invalid reference.
func (d *Document) Node(ref NodeRef) *Node {
	return d.arena.get(ref)
}

// Len returns the number of arena slots in use, detached nodes included.
func (d *Document) Len() int {
	return d.arena.len()
}

// ParentOf returns the parent reference, or InvalidRef at the root or for a
// detached node.
func (d *Document) ParentOf(ref NodeRef) NodeRef {
	if n := d.arena.get(ref); n != nil {
		return n.Parent
	}
	return InvalidRef
}

// ChildrenOf returns the ordered child references of a node. The returned
// slice is the document's own; callers must not mutate it.
func (d *Document) ChildrenOf(ref NodeRef) []NodeRef {
	if n := d.arena.get(ref); n != nil {
		return n.Children
	}
	return nil
}

// AttributesOf returns the ordered attribute list of an element node.
func (d *Document) AttributesOf(ref NodeRef) []Attribute {
	if n := d.arena.get(ref); n != nil {
		return n.Attributes
	}
	return nil
}

// CreateElement registers a fresh, unattached element node.
func (d *Document) CreateElement(tag string, ns Namespace, attrs []Attribute) NodeRef {
	return d.arena.register(&Node{
		Type:       ElementNode,
		Parent:     InvalidRef,
		Tag:        tag,
		Namespace:  ns,
		Attributes: attrs,
	})
}

// CreateText registers a fresh, unattached text node.
func (d *Document) CreateText(data string) NodeRef {
	return d.arena.register(&Node{Type: TextNode, Parent: InvalidRef, Data: data})
}

// CreateComment registers a fresh, unattached comment node.
func (d *Document) CreateComment(data string) NodeRef {
	return d.arena.register(&Node{Type: CommentNode, Parent: InvalidRef, Data: data})
}

// CreateDoctype registers a fresh, unattached document type node.
func (d *Document) CreateDoctype(name, publicID, systemID string, hasPublic, hasSystem bool) NodeRef {
	return d.arena.register(&Node{
		Type:        DocumentTypeNode,
		Parent:      InvalidRef,
		Name:        name,
		PublicID:    publicID,
		SystemID:    systemID,
		HasPublicID: hasPublic,
		HasSystemID: hasSystem,
	})
}

// CloneShallow registers a copy of an element carrying the same tag,
// namespace and attributes but no children or parent.
func (d *Document) CloneShallow(ref NodeRef) NodeRef {
	src := d.arena.get(ref)
	attrs := make([]Attribute, len(src.Attributes))
	copy(attrs, src.Attributes)
	return d.CreateElement(src.Tag, src.Namespace, attrs)
}

// Insert places child at the insertion point. A child still attached
// elsewhere is detached first.
func (d *Document) Insert(ip InsertionPoint, child NodeRef) {
	d.Detach(child)
	parent := d.arena.get(ip.Parent)
	cn := d.arena.get(child)
	cn.Parent = ip.Parent
	cn.detached = false
	if ip.Before.Valid() {
		for i, c := range parent.Children {
			if c == ip.Before {
				parent.Children = append(parent.Children, InvalidRef)
				copy(parent.Children[i+1:], parent.Children[i:])
				parent.Children[i] = child
				return
			}
		}
	}
	parent.Children = append(parent.Children, child)
}

// AppendChild attaches child as the last child of parent.
func (d *Document) AppendChild(parent, child NodeRef) {
	d.Insert(InsertionPoint{Parent: parent, Before: InvalidRef}, child)
}

// InsertText inserts character data at the insertion point. If a text node
// sits immediately before the insertion point the data is appended to it
// instead of growing a sibling run of text nodes.
func (d *Document) InsertText(ip InsertionPoint, data string) {
	parent := d.arena.get(ip.Parent)
	var prev NodeRef = InvalidRef
	if ip.Before.Valid() {
		for i, c := range parent.Children {
			if c == ip.Before && i > 0 {
				prev = parent.Children[i-1]
				break
			}
		}
	} else if len(parent.Children) > 0 {
		prev = parent.Children[len(parent.Children)-1]
	}
	if prev.Valid() {
		if pn := d.arena.get(prev); pn.Type == TextNode {
			pn.Data += data
			return
		}
	}
	d.Insert(ip, d.CreateText(data))
}

// InsertComment inserts a comment node at the insertion point.
func (d *Document) InsertComment(ip InsertionPoint, data string) NodeRef {
	ref := d.CreateComment(data)
	d.Insert(ip, ref)
	return ref
}

// Detach unlinks a node from its parent. The arena slot stays allocated so
// existing references remain valid; the node can be reinserted later.
func (d *Document) Detach(ref NodeRef) {
	n := d.arena.get(ref)
	if n == nil || !n.Parent.Valid() {
		return
	}
	parent := d.arena.get(n.Parent)
	for i, c := range parent.Children {
		if c == ref {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			break
		}
	}
	n.Parent = InvalidRef
	n.detached = true
}

// Reparent moves every child of src to the end of dst's child list.
func (d *Document) Reparent(src, dst NodeRef) {
	sn := d.arena.get(src)
	children := make([]NodeRef, len(sn.Children))
	copy(children, sn.Children)
	for _, c := range children {
		d.AppendChild(dst, c)
	}
}

// DocumentElement returns the root <html> element if one exists.
func (d *Document) DocumentElement() NodeRef {
	for _, c := range d.ChildrenOf(d.root) {
		if n := d.arena.get(c); n.Type == ElementNode {
			return c
		}
	}
	return InvalidRef
}

// FirstElement returns the first child element of ref with the given tag in
// the HTML namespace, or InvalidRef.
func (d *Document) FirstElement(ref NodeRef, tag string) NodeRef {
	for _, c := range d.ChildrenOf(ref) {
		if n := d.arena.get(c); n.IsElement(tag) {
			return c
		}
	}
	return InvalidRef
}
