package parser

import "github.com/jhendrix/webparse/parser/dom"

// afeEntry is one slot in the list of active formatting elements. A marker
// entry carries no element; it bounds the reconstruction range opened by
// applet, object, marquee, template and td/th/caption.
type afeEntry struct {
	ref    dom.NodeRef
	marker bool

	// token is the start tag that created the element, kept so
	// reconstruction can build an identical element.
	token Token
}

func (c *treeConstructor) indexOfAFE(ref dom.NodeRef) int {
	for i := len(c.afe) - 1; i >= 0; i-- {
		if !c.afe[i].marker && c.afe[i].ref == ref {
			return i
		}
	}
	return -1
}

func (c *treeConstructor) removeFromAFE(ref dom.NodeRef) {
	if i := c.indexOfAFE(ref); i >= 0 {
		c.afe = append(c.afe[:i], c.afe[i+1:]...)
	}
}

// sameFormattingElement compares tag, namespace and the full attribute set,
// the equality the Noah's Ark clause is defined over.
func (c *treeConstructor) sameFormattingElement(a, b dom.NodeRef) bool {
	an, bn := c.node(a), c.node(b)
	if an.Tag != bn.Tag || an.Namespace != bn.Namespace || len(an.Attributes) != len(bn.Attributes) {
		return false
	}
	for _, attr := range an.Attributes {
		v, ok := bn.Attr(attr.Name)
		if !ok || v != attr.Value {
			return false
		}
	}
	return true
}

// pushActiveFormattingElement appends the element, enforcing the Noah's Ark
// clause: at most three matching elements since the last marker.
func (c *treeConstructor) pushActiveFormattingElement(ref dom.NodeRef, t *Token) {
	matches := 0
	earliest := -1
	for i := len(c.afe) - 1; i >= 0; i-- {
		if c.afe[i].marker {
			break
		}
		if c.sameFormattingElement(c.afe[i].ref, ref) {
			matches++
			earliest = i
		}
	}
	if matches >= 3 {
		c.afe = append(c.afe[:earliest], c.afe[earliest+1:]...)
	}
	c.afe = append(c.afe, afeEntry{ref: ref, token: *t})
}

func (c *treeConstructor) clearAFEToMarker() {
	for len(c.afe) > 0 {
		entry := c.afe[len(c.afe)-1]
		c.afe = c.afe[:len(c.afe)-1]
		if entry.marker {
			return
		}
	}
}

// reconstructActiveFormattingElements reopens formatting elements that were
// implicitly closed, cloning them at the current insertion point.
func (c *treeConstructor) reconstructActiveFormattingElements() {
	if len(c.afe) == 0 {
		return
	}
	i := len(c.afe) - 1
	if c.afe[i].marker || c.indexOfOE(c.afe[i].ref) >= 0 {
		return
	}
	for i > 0 {
		i--
		if c.afe[i].marker || c.indexOfOE(c.afe[i].ref) >= 0 {
			i++
			break
		}
	}
	for ; i < len(c.afe); i++ {
		tok := c.afe[i].token
		c.afe[i].ref = c.insertHTMLElement(&tok)
	}
}

// adoptionAgency is the agency algorithm for misnested formatting end tags.
// The outer loop runs at most eight times; each pass restructures one layer
// of the misnesting.
func (c *treeConstructor) adoptionAgency(t *Token) {
	subject := t.TagName

	if cur := c.currentNode(); cur.Valid() {
		n := c.node(cur)
		if n.Namespace == dom.HTMLNamespace && n.Tag == subject && c.indexOfAFE(cur) < 0 {
			c.pop()
			return
		}
	}

	for outer := 0; outer < 8; outer++ {
		var formatting dom.NodeRef = dom.InvalidRef
		feAFE := -1
		for i := len(c.afe) - 1; i >= 0; i-- {
			if c.afe[i].marker {
				break
			}
			if c.node(c.afe[i].ref).IsElement(subject) {
				formatting = c.afe[i].ref
				feAFE = i
				break
			}
		}
		if !formatting.Valid() {
			c.anyOtherEndTag(t)
			return
		}

		feOE := c.indexOfOE(formatting)
		if feOE < 0 {
			c.err(t, ErrMisnestedTag)
			c.afe = append(c.afe[:feAFE], c.afe[feAFE+1:]...)
			return
		}
		if !c.refInScope(formatting) {
			c.err(t, ErrMisnestedTag)
			return
		}
		if formatting != c.currentNode() {
			c.err(t, ErrUnclosedElements)
		}

		furthestBlock := dom.InvalidRef
		for i := feOE + 1; i < len(c.oe); i++ {
			if c.isSpecial(c.oe[i]) {
				furthestBlock = c.oe[i]
				break
			}
		}
		if !furthestBlock.Valid() {
			c.popUntilRef(formatting)
			c.afe = append(c.afe[:feAFE], c.afe[feAFE+1:]...)
			return
		}

		commonAncestor := c.oe[feOE-1]
		bookmark := feAFE

		node := furthestBlock
		lastNode := furthestBlock
		x := c.indexOfOE(node)
		for inner := 0; ; inner++ {
			x--
			node = c.oe[x]
			if node == formatting {
				break
			}
			nodeAFE := c.indexOfAFE(node)
			if inner >= 3 && nodeAFE >= 0 {
				c.afe = append(c.afe[:nodeAFE], c.afe[nodeAFE+1:]...)
				if nodeAFE < bookmark {
					bookmark--
				}
				nodeAFE = -1
			}
			if nodeAFE < 0 {
				c.removeFromOE(node)
				continue
			}
			clone := c.doc.CloneShallow(node)
			c.afe[nodeAFE].ref = clone
			c.oe[c.indexOfOE(node)] = clone
			node = clone
			if lastNode == furthestBlock {
				bookmark = c.indexOfAFE(node) + 1
			}
			c.doc.Detach(lastNode)
			c.doc.AppendChild(node, lastNode)
			lastNode = node
		}

		c.doc.Detach(lastNode)
		c.doc.Insert(c.appropriatePlaceForInsertion(commonAncestor), lastNode)

		clone := c.doc.CloneShallow(formatting)
		c.doc.Reparent(furthestBlock, clone)
		c.doc.AppendChild(furthestBlock, clone)

		feAFE = c.indexOfAFE(formatting)
		if feAFE >= 0 {
			tok := c.afe[feAFE].token
			c.afe = append(c.afe[:feAFE], c.afe[feAFE+1:]...)
			if feAFE < bookmark {
				bookmark--
			}
			if bookmark > len(c.afe) {
				bookmark = len(c.afe)
			}
			rest := append([]afeEntry{{ref: clone, token: tok}}, c.afe[bookmark:]...)
			c.afe = append(c.afe[:bookmark], rest...)
		}

		c.removeFromOE(formatting)
		if fbIdx := c.indexOfOE(furthestBlock); fbIdx >= 0 {
			rest := append([]dom.NodeRef{clone}, c.oe[fbIdx+1:]...)
			c.oe = append(c.oe[:fbIdx+1], rest...)
		}
	}
}
