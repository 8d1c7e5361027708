package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefsStayValidAfterDetach(t *testing.T) {
	d := NewDocument()
	html := d.CreateElement("html", HTMLNamespace, nil)
	d.AppendChild(d.Root(), html)
	body := d.CreateElement("body", HTMLNamespace, nil)
	d.AppendChild(html, body)
	p := d.CreateElement("p", HTMLNamespace, nil)
	d.AppendChild(body, p)

	d.Detach(p)

	require.NotNil(t, d.Node(p))
	assert.Equal(t, "p", d.Node(p).Tag)
	assert.False(t, d.ParentOf(p).Valid())
	assert.Empty(t, d.ChildrenOf(body))

	// A detached node can be inserted again under a different parent.
	d.AppendChild(html, p)
	assert.Equal(t, html, d.ParentOf(p))
	assert.Equal(t, []NodeRef{body, p}, d.ChildrenOf(html))
}

func TestInsertBefore(t *testing.T) {
	d := NewDocument()
	parent := d.CreateElement("ul", HTMLNamespace, nil)
	d.AppendChild(d.Root(), parent)
	a := d.CreateElement("li", HTMLNamespace, nil)
	c := d.CreateElement("li", HTMLNamespace, nil)
	d.AppendChild(parent, a)
	d.AppendChild(parent, c)

	b := d.CreateElement("li", HTMLNamespace, nil)
	d.Insert(InsertionPoint{Parent: parent, Before: c}, b)
	assert.Equal(t, []NodeRef{a, b, c}, d.ChildrenOf(parent))
}

func TestInsertTextMergesIntoPrecedingTextNode(t *testing.T) {
	d := NewDocument()
	p := d.CreateElement("p", HTMLNamespace, nil)
	d.AppendChild(d.Root(), p)

	ip := InsertionPoint{Parent: p, Before: InvalidRef}
	d.InsertText(ip, "Hello")
	d.InsertText(ip, ", ")
	d.InsertText(ip, "world")

	children := d.ChildrenOf(p)
	require.Len(t, children, 1)
	assert.Equal(t, "Hello, world", d.Node(children[0]).Data)
}

func TestInsertTextDoesNotMergeAcrossElements(t *testing.T) {
	d := NewDocument()
	p := d.CreateElement("p", HTMLNamespace, nil)
	d.AppendChild(d.Root(), p)

	ip := InsertionPoint{Parent: p, Before: InvalidRef}
	d.InsertText(ip, "a")
	d.AppendChild(p, d.CreateElement("br", HTMLNamespace, nil))
	d.InsertText(ip, "b")

	children := d.ChildrenOf(p)
	require.Len(t, children, 3)
	assert.Equal(t, "a", d.Node(children[0]).Data)
	assert.Equal(t, "b", d.Node(children[2]).Data)
}

func TestReparentMovesAllChildren(t *testing.T) {
	d := NewDocument()
	src := d.CreateElement("div", HTMLNamespace, nil)
	dst := d.CreateElement("span", HTMLNamespace, nil)
	d.AppendChild(d.Root(), src)
	d.AppendChild(d.Root(), dst)
	a := d.CreateText("a")
	b := d.CreateElement("b", HTMLNamespace, nil)
	d.AppendChild(src, a)
	d.AppendChild(src, b)

	d.Reparent(src, dst)

	assert.Empty(t, d.ChildrenOf(src))
	assert.Equal(t, []NodeRef{a, b}, d.ChildrenOf(dst))
	assert.Equal(t, dst, d.ParentOf(a))
	assert.Equal(t, dst, d.ParentOf(b))
}

func TestCloneShallowCopiesAttributesNotChildren(t *testing.T) {
	d := NewDocument()
	el := d.CreateElement("a", HTMLNamespace, []Attribute{{Name: "href", Value: "/x"}})
	d.AppendChild(d.Root(), el)
	d.AppendChild(el, d.CreateText("link"))

	clone := d.CloneShallow(el)
	require.NotEqual(t, el, clone)
	cn := d.Node(clone)
	assert.Equal(t, "a", cn.Tag)
	require.Len(t, cn.Attributes, 1)
	assert.Equal(t, "/x", cn.Attributes[0].Value)
	assert.Empty(t, cn.Children)

	// Mutating the clone's attributes must not touch the original.
	cn.Attributes[0].Value = "/y"
	v, _ := d.Node(el).Attr("href")
	assert.Equal(t, "/x", v)
}

func TestDocumentElement(t *testing.T) {
	d := NewDocument()
	assert.False(t, d.DocumentElement().Valid())
	d.AppendChild(d.Root(), d.CreateComment("x"))
	html := d.CreateElement("html", HTMLNamespace, nil)
	d.AppendChild(d.Root(), html)
	assert.Equal(t, html, d.DocumentElement())
}

func TestDumpTreeFormat(t *testing.T) {
	d := NewDocument()
	html := d.CreateElement("html", HTMLNamespace, nil)
	d.AppendChild(d.Root(), html)
	body := d.CreateElement("body", HTMLNamespace, nil)
	d.AppendChild(html, body)
	p := d.CreateElement("p", HTMLNamespace, []Attribute{{Name: "id", Value: "x"}})
	d.AppendChild(body, p)
	d.AppendChild(p, d.CreateText("hi"))
	d.AppendChild(body, d.CreateComment(" c "))

	expected := "#document\n" +
		"| <html>\n" +
		"|   <body>\n" +
		"|     <p>\n" +
		"|       id=\"x\"\n" +
		"|       \"hi\"\n" +
		"|     <!--  c  -->"
	assert.Equal(t, expected, d.String())
}

func TestSerializeHTML(t *testing.T) {
	d := NewDocument()
	html := d.CreateElement("html", HTMLNamespace, nil)
	d.AppendChild(d.Root(), html)
	body := d.CreateElement("body", HTMLNamespace, nil)
	d.AppendChild(html, body)
	a := d.CreateElement("a", HTMLNamespace, []Attribute{{Name: "href", Value: `/x?a=1&b="2"`}})
	d.AppendChild(body, a)
	d.AppendChild(a, d.CreateText("1 < 2"))
	d.AppendChild(body, d.CreateElement("br", HTMLNamespace, nil))

	got := d.SerializeHTML(d.Root())
	assert.Equal(t, `<html><body><a href="/x?a=1&amp;b=&quot;2&quot;">1 &lt; 2</a><br></body></html>`, got)
}

func TestAttrFirstWins(t *testing.T) {
	n := &Node{
		Type: ElementNode,
		Attributes: []Attribute{
			{Name: "class", Value: "first"},
			{Name: "class", Value: "second"},
		},
	}
	v, ok := n.Attr("class")
	assert.True(t, ok)
	assert.Equal(t, "first", v)
	assert.True(t, n.HasAttr("class"))
	assert.False(t, n.HasAttr("id"))
}
