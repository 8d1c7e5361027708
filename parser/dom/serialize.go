package dom

import (
	"sort"
	"strings"
)

// DumpTree renders the subtree at ref in the conformance-corpus format: one
// node per line, "| " plus two spaces of indent per depth level.
func (d *Document) DumpTree(ref NodeRef) string {
	var b strings.Builder
	d.dumpNode(&b, ref, 0)
	return strings.TrimRight(b.String(), "\n")
}

// String renders the whole document tree.
func (d *Document) String() string {
	return d.DumpTree(d.root)
}

func indentLine(b *strings.Builder, depth int) {
	b.WriteString("| ")
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

func (d *Document) dumpNode(b *strings.Builder, ref NodeRef, depth int) {
	n := d.Node(ref)
	if n == nil {
		return
	}
	if n.Type == DocumentNode {
		b.WriteString("#document\n")
		for _, c := range n.Children {
			d.dumpNode(b, c, 0)
		}
		return
	}
	indentLine(b, depth)
	switch n.Type {
	case DocumentTypeNode:
		b.WriteString("<!DOCTYPE " + n.Name)
		if n.HasPublicID || n.HasSystemID {
			b.WriteString(" \"" + n.PublicID + "\" \"" + n.SystemID + "\"")
		}
		b.WriteString(">\n")
	case ElementNode:
		b.WriteString("<")
		switch n.Namespace {
		case SVGNamespace:
			b.WriteString("svg ")
		case MathMLNamespace:
			b.WriteString("math ")
		}
		b.WriteString(n.Tag + ">\n")
		if len(n.Attributes) > 0 {
			sorted := make([]Attribute, len(n.Attributes))
			copy(sorted, n.Attributes)
			sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
			for _, a := range sorted {
				indentLine(b, depth+1)
				switch a.Namespace {
				case XLinkNamespace:
					b.WriteString("xlink ")
				case XMLNamespace:
					b.WriteString("xml ")
				case XMLNSNamespace:
					b.WriteString("xmlns ")
				}
				b.WriteString(a.Name + "=\"" + a.Value + "\"\n")
			}
		}
	case TextNode:
		b.WriteString("\"" + n.Data + "\"\n")
	case CommentNode:
		b.WriteString("<!-- " + n.Data + " -->\n")
	}
	for _, c := range n.Children {
		d.dumpNode(b, c, depth+1)
	}
}

var voidElements = map[string]bool{
	"area": true, "base": true, "basefont": true, "bgsound": true, "br": true,
	"col": true, "embed": true, "frame": true, "hr": true, "img": true,
	"input": true, "keygen": true, "link": true, "meta": true, "param": true,
	"source": true, "track": true, "wbr": true,
}

var rawTextContainers = map[string]bool{
	"style": true, "script": true, "xmp": true, "iframe": true,
	"noembed": true, "noframes": true, "plaintext": true, "noscript": true,
}

func escapeText(s string, attrValue bool) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "\u00a0", "&nbsp;")
	if attrValue {
		return strings.ReplaceAll(s, "\"", "&quot;")
	}
	s = strings.ReplaceAll(s, "<", "&lt;")
	return strings.ReplaceAll(s, ">", "&gt;")
}

// SerializeHTML writes the children of ref back out as HTML markup.
func (d *Document) SerializeHTML(ref NodeRef) string {
	var b strings.Builder
	n := d.Node(ref)
	if n == nil {
		return ""
	}
	if n.Type == ElementNode {
		switch n.Tag {
		case "basefont", "bgsound", "frame", "keygen":
			return ""
		}
	}
	for _, c := range n.Children {
		d.serializeNode(&b, c)
	}
	return b.String()
}

func (d *Document) serializeNode(b *strings.Builder, ref NodeRef) {
	n := d.Node(ref)
	switch n.Type {
	case ElementNode:
		b.WriteString("<" + n.Tag)
		for _, a := range n.Attributes {
			b.WriteString(" ")
			switch a.Namespace {
			case XLinkNamespace:
				b.WriteString("xlink:")
			case XMLNamespace:
				b.WriteString("xml:")
			case XMLNSNamespace:
				if a.Name != "xmlns" {
					b.WriteString("xmlns:")
				}
			}
			b.WriteString(a.Name + "=\"" + escapeText(a.Value, true) + "\"")
		}
		b.WriteString(">")
		if n.Namespace == HTMLNamespace && voidElements[n.Tag] {
			return
		}
		b.WriteString(d.SerializeHTML(ref))
		b.WriteString("</" + n.Tag + ">")
	case TextNode:
		parent := d.Node(n.Parent)
		if parent != nil && parent.Type == ElementNode && rawTextContainers[parent.Tag] {
			b.WriteString(n.Data)
			return
		}
		b.WriteString(escapeText(n.Data, false))
	case CommentNode:
		b.WriteString("<!--" + n.Data + "-->")
	case DocumentTypeNode:
		b.WriteString("<!DOCTYPE " + n.Name + ">")
	}
}
