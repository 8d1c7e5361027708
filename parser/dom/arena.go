package dom

// NodeRef is a stable index into a document's node arena. A NodeRef handed
// out once stays valid until the whole document is discarded; detaching a
// node never invalidates references to it.
type NodeRef int

// InvalidRef is the zero-value-adjacent sentinel for "no node".
const InvalidRef NodeRef = -1

// Valid reports whether the reference points at a node slot.
func (r NodeRef) Valid() bool {
	return r >= 0
}

// arena owns every node of one document. Slots are append-only: Detach
// unlinks a node from its parent but the slot stays occupied so outstanding
// NodeRef values cannot dangle.
type arena struct {
	nodes []*Node
}

func (a *arena) register(n *Node) NodeRef {
	ref := NodeRef(len(a.nodes))
	a.nodes = append(a.nodes, n)
	return ref
}

func (a *arena) get(ref NodeRef) *Node {
	if !ref.Valid() || int(ref) >= len(a.nodes) {
		return nil
	}
	return a.nodes[ref]
}

func (a *arena) len() int {
	return len(a.nodes)
}
