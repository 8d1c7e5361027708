package parser

import (
	"strings"

	"github.com/jhendrix/webparse/parser/dom"
)

// specialElements is the category that terminates implied-end-tag runs and
// adoption agency searches.
var specialElements = map[scopeEntry]bool{
	{dom.HTMLNamespace, "address"}: true, {dom.HTMLNamespace, "applet"}: true,
	{dom.HTMLNamespace, "area"}: true, {dom.HTMLNamespace, "article"}: true,
	{dom.HTMLNamespace, "aside"}: true, {dom.HTMLNamespace, "base"}: true,
	{dom.HTMLNamespace, "basefont"}: true, {dom.HTMLNamespace, "bgsound"}: true,
	{dom.HTMLNamespace, "blockquote"}: true, {dom.HTMLNamespace, "body"}: true,
	{dom.HTMLNamespace, "br"}: true, {dom.HTMLNamespace, "button"}: true,
	{dom.HTMLNamespace, "caption"}: true, {dom.HTMLNamespace, "center"}: true,
	{dom.HTMLNamespace, "col"}: true, {dom.HTMLNamespace, "colgroup"}: true,
	{dom.HTMLNamespace, "dd"}: true, {dom.HTMLNamespace, "details"}: true,
	{dom.HTMLNamespace, "dir"}: true, {dom.HTMLNamespace, "div"}: true,
	{dom.HTMLNamespace, "dl"}: true, {dom.HTMLNamespace, "dt"}: true,
	{dom.HTMLNamespace, "embed"}: true, {dom.HTMLNamespace, "fieldset"}: true,
	{dom.HTMLNamespace, "figcaption"}: true, {dom.HTMLNamespace, "figure"}: true,
	{dom.HTMLNamespace, "footer"}: true, {dom.HTMLNamespace, "form"}: true,
	{dom.HTMLNamespace, "frame"}: true, {dom.HTMLNamespace, "frameset"}: true,
	{dom.HTMLNamespace, "h1"}: true, {dom.HTMLNamespace, "h2"}: true,
	{dom.HTMLNamespace, "h3"}: true, {dom.HTMLNamespace, "h4"}: true,
	{dom.HTMLNamespace, "h5"}: true, {dom.HTMLNamespace, "h6"}: true,
	{dom.HTMLNamespace, "head"}: true, {dom.HTMLNamespace, "header"}: true,
	{dom.HTMLNamespace, "hgroup"}: true, {dom.HTMLNamespace, "hr"}: true,
	{dom.HTMLNamespace, "html"}: true, {dom.HTMLNamespace, "iframe"}: true,
	{dom.HTMLNamespace, "img"}: true, {dom.HTMLNamespace, "input"}: true,
	{dom.HTMLNamespace, "keygen"}: true, {dom.HTMLNamespace, "li"}: true,
	{dom.HTMLNamespace, "link"}: true, {dom.HTMLNamespace, "listing"}: true,
	{dom.HTMLNamespace, "main"}: true, {dom.HTMLNamespace, "marquee"}: true,
	{dom.HTMLNamespace, "menu"}: true, {dom.HTMLNamespace, "meta"}: true,
	{dom.HTMLNamespace, "nav"}: true, {dom.HTMLNamespace, "noembed"}: true,
	{dom.HTMLNamespace, "noframes"}: true, {dom.HTMLNamespace, "noscript"}: true,
	{dom.HTMLNamespace, "object"}: true, {dom.HTMLNamespace, "ol"}: true,
	{dom.HTMLNamespace, "p"}: true, {dom.HTMLNamespace, "param"}: true,
	{dom.HTMLNamespace, "plaintext"}: true, {dom.HTMLNamespace, "pre"}: true,
	{dom.HTMLNamespace, "script"}: true, {dom.HTMLNamespace, "section"}: true,
	{dom.HTMLNamespace, "select"}: true, {dom.HTMLNamespace, "source"}: true,
	{dom.HTMLNamespace, "style"}: true, {dom.HTMLNamespace, "summary"}: true,
	{dom.HTMLNamespace, "table"}: true, {dom.HTMLNamespace, "tbody"}: true,
	{dom.HTMLNamespace, "td"}: true, {dom.HTMLNamespace, "template"}: true,
	{dom.HTMLNamespace, "textarea"}: true, {dom.HTMLNamespace, "tfoot"}: true,
	{dom.HTMLNamespace, "th"}: true, {dom.HTMLNamespace, "thead"}: true,
	{dom.HTMLNamespace, "title"}: true, {dom.HTMLNamespace, "tr"}: true,
	{dom.HTMLNamespace, "track"}: true, {dom.HTMLNamespace, "ul"}: true,
	{dom.HTMLNamespace, "wbr"}: true, {dom.HTMLNamespace, "xmp"}: true,
	{dom.MathMLNamespace, "mi"}: true, {dom.MathMLNamespace, "mo"}: true,
	{dom.MathMLNamespace, "mn"}: true, {dom.MathMLNamespace, "ms"}: true,
	{dom.MathMLNamespace, "mtext"}: true, {dom.MathMLNamespace, "annotation-xml"}: true,
	{dom.SVGNamespace, "foreignObject"}: true, {dom.SVGNamespace, "desc"}: true,
	{dom.SVGNamespace, "title"}: true,
}

func (c *treeConstructor) isSpecial(ref dom.NodeRef) bool {
	n := c.node(ref)
	return specialElements[scopeEntry{n.Namespace, n.Tag}]
}

func isHeading(tag string) bool {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

func (c *treeConstructor) inBodyModeHandler(t *Token) (bool, insertionMode) {
	switch t.Type {
	case characterToken:
		if c.skipNewline {
			c.skipNewline = false
			if t.Data == "\u000A" {
				return false, inBody
			}
		}
		if t.Data == "\u0000" {
			c.err(t, ErrUnexpectedNullCharacter)
			return false, inBody
		}
		c.reconstructActiveFormattingElements()
		c.insertCharacter(t)
		if !t.isWhitespace() {
			c.framesetOK = false
		}
		return false, inBody
	case commentToken:
		c.insertComment(t)
		return false, inBody
	case doctypeToken:
		c.err(t, ErrUnexpectedDoctype)
		return false, inBody
	case startTagToken:
		return c.inBodyStartTag(t)
	case endTagToken:
		return c.inBodyEndTag(t)
	case endOfFileToken:
		if len(c.templateModes) > 0 {
			return c.useRulesFor(t, inTemplate)
		}
		for _, ref := range c.oe {
			switch c.node(ref).Tag {
			case "dd", "dt", "li", "optgroup", "option", "p", "rb", "rp", "rt", "rtc",
				"tbody", "td", "tfoot", "th", "thead", "tr", "body", "html":
			default:
				c.err(t, ErrUnclosedElements)
			}
		}
		c.stop()
		return false, inBody
	}
	return false, inBody
}

func (c *treeConstructor) inBodyStartTag(t *Token) (bool, insertionMode) {
	switch t.TagName {
	case "html":
		c.err(t, ErrUnexpectedStartTag)
		if c.oeContains("template") {
			return false, inBody
		}
		top := c.node(c.oe[0])
		for _, a := range t.Attributes {
			if !top.HasAttr(a.Name) {
				top.Attributes = append(top.Attributes, a)
			}
		}
		return false, inBody

	case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
		return c.useRulesFor(t, inHead)

	case "body":
		c.err(t, ErrUnexpectedStartTag)
		if len(c.oe) < 2 || !c.node(c.oe[1]).IsElement("body") || c.oeContains("template") {
			return false, inBody
		}
		c.framesetOK = false
		body := c.node(c.oe[1])
		for _, a := range t.Attributes {
			if !body.HasAttr(a.Name) {
				body.Attributes = append(body.Attributes, a)
			}
		}
		return false, inBody

	case "frameset":
		c.err(t, ErrUnexpectedStartTag)
		if len(c.oe) < 2 || !c.node(c.oe[1]).IsElement("body") || !c.framesetOK {
			return false, inBody
		}
		c.doc.Detach(c.oe[1])
		c.oe = c.oe[:1]
		c.insertHTMLElement(t)
		return false, inFrameset

	case "address", "article", "aside", "blockquote", "center", "details", "dialog",
		"dir", "div", "dl", "fieldset", "figcaption", "figure", "footer", "header",
		"hgroup", "main", "menu", "nav", "ol", "p", "section", "summary", "ul":
		if c.tagInButtonScope("p") {
			if t.TagName == "p" {
				// The open paragraph was never closed explicitly.
				c.err(t, ErrUnclosedParagraph)
			}
			c.closePElement(t)
		}
		c.insertHTMLElement(t)
		return false, inBody

	case "h1", "h2", "h3", "h4", "h5", "h6":
		if c.tagInButtonScope("p") {
			c.closePElement(t)
		}
		if cur := c.currentNode(); cur.Valid() && isHeading(c.node(cur).Tag) && c.node(cur).Namespace == dom.HTMLNamespace {
			c.err(t, ErrHeadingInHeading)
			c.pop()
		}
		c.insertHTMLElement(t)
		return false, inBody

	case "pre", "listing":
		if c.tagInButtonScope("p") {
			c.closePElement(t)
		}
		c.insertHTMLElement(t)
		c.skipNewline = true
		c.framesetOK = false
		return false, inBody

	case "form":
		if c.form.Valid() && !c.oeContains("template") {
			c.err(t, ErrFormNestedInForm)
			return false, inBody
		}
		if c.tagInButtonScope("p") {
			c.closePElement(t)
		}
		ref := c.insertHTMLElement(t)
		if !c.oeContains("template") {
			c.form = ref
		}
		return false, inBody

	case "li":
		c.framesetOK = false
		for i := len(c.oe) - 1; i >= 0; i-- {
			n := c.node(c.oe[i])
			if n.IsElement("li") {
				c.generateImpliedEndTags("li")
				if !c.currentNodeIs("li") {
					c.err(t, ErrMisnestedTag)
				}
				c.popUntil("li")
				break
			}
			if c.isSpecial(c.oe[i]) && !n.IsElement("address") && !n.IsElement("div") && !n.IsElement("p") {
				break
			}
		}
		if c.tagInButtonScope("p") {
			c.closePElement(t)
		}
		c.insertHTMLElement(t)
		return false, inBody

	case "dd", "dt":
		c.framesetOK = false
		for i := len(c.oe) - 1; i >= 0; i-- {
			n := c.node(c.oe[i])
			if n.IsElement("dd") || n.IsElement("dt") {
				c.generateImpliedEndTags(n.Tag)
				if !c.currentNodeIs(n.Tag) {
					c.err(t, ErrMisnestedTag)
				}
				c.popUntil(n.Tag)
				break
			}
			if c.isSpecial(c.oe[i]) && !n.IsElement("address") && !n.IsElement("div") && !n.IsElement("p") {
				break
			}
		}
		if c.tagInButtonScope("p") {
			c.closePElement(t)
		}
		c.insertHTMLElement(t)
		return false, inBody

	case "plaintext":
		if c.tagInButtonScope("p") {
			c.closePElement(t)
		}
		c.insertHTMLElement(t)
		c.tk.switchTo(plaintextState)
		return false, inBody

	case "button":
		if c.tagInScope("button") {
			c.err(t, ErrMisnestedTag)
			c.generateImpliedEndTags()
			c.popUntil("button")
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElement(t)
		c.framesetOK = false
		return false, inBody

	case "a":
		for i := len(c.afe) - 1; i >= 0; i-- {
			if c.afe[i].marker {
				break
			}
			if c.node(c.afe[i].ref).IsElement("a") {
				c.err(t, ErrMisnestedTag)
				ref := c.afe[i].ref
				c.adoptionAgency(t)
				c.removeFromAFE(ref)
				c.removeFromOE(ref)
				break
			}
		}
		c.reconstructActiveFormattingElements()
		c.pushActiveFormattingElement(c.insertHTMLElement(t), t)
		return false, inBody

	case "b", "big", "code", "em", "font", "i", "s", "small", "strike", "strong", "tt", "u":
		c.reconstructActiveFormattingElements()
		c.pushActiveFormattingElement(c.insertHTMLElement(t), t)
		return false, inBody

	case "nobr":
		c.reconstructActiveFormattingElements()
		if c.tagInScope("nobr") {
			c.err(t, ErrMisnestedTag)
			c.adoptionAgency(t)
			c.reconstructActiveFormattingElements()
		}
		c.pushActiveFormattingElement(c.insertHTMLElement(t), t)
		return false, inBody

	case "applet", "marquee", "object":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElement(t)
		c.afe = append(c.afe, afeEntry{marker: true, ref: dom.InvalidRef})
		c.framesetOK = false
		return false, inBody

	case "table":
		if c.doc.QuirksMode != dom.Quirks && c.tagInButtonScope("p") {
			c.closePElement(t)
		}
		c.insertHTMLElement(t)
		c.framesetOK = false
		return false, inTable

	case "area", "br", "embed", "img", "keygen", "wbr":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElement(t)
		c.pop()
		c.framesetOK = false
		return false, inBody

	case "input":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElement(t)
		c.pop()
		if typ, ok := t.Attr("type"); !ok || !strings.EqualFold(typ, "hidden") {
			c.framesetOK = false
		}
		return false, inBody

	case "param", "source", "track":
		c.insertHTMLElement(t)
		c.pop()
		return false, inBody

	case "hr":
		if c.tagInButtonScope("p") {
			c.closePElement(t)
		}
		c.insertHTMLElement(t)
		c.pop()
		c.framesetOK = false
		return false, inBody

	case "image":
		c.err(t, ErrImageStartTag)
		t.TagName = "img"
		return true, inBody

	case "textarea":
		c.insertHTMLElement(t)
		c.skipNewline = true
		c.tk.switchTo(rcDataState)
		c.originalMode = c.mode
		c.framesetOK = false
		return false, text

	case "xmp":
		if c.tagInButtonScope("p") {
			c.closePElement(t)
		}
		c.reconstructActiveFormattingElements()
		c.framesetOK = false
		return false, c.genericRawTextParse(t)

	case "iframe":
		c.framesetOK = false
		return false, c.genericRawTextParse(t)

	case "noembed":
		return false, c.genericRawTextParse(t)

	case "noscript":
		if c.scripting {
			return false, c.genericRawTextParse(t)
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElement(t)
		return false, inBody

	case "select":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElement(t)
		c.framesetOK = false
		switch c.mode {
		case inTable, inCaption, inTableBody, inRow, inCell:
			return false, inSelectInTable
		}
		return false, inSelect

	case "optgroup", "option":
		if c.currentNodeIs("option") {
			c.pop()
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElement(t)
		return false, inBody

	case "rb", "rtc":
		if c.tagInScope("ruby") {
			c.generateImpliedEndTags()
			if !c.currentNodeIs("ruby") {
				c.err(t, ErrMisnestedTag)
			}
		}
		c.insertHTMLElement(t)
		return false, inBody

	case "rp", "rt":
		if c.tagInScope("ruby") {
			c.generateImpliedEndTags("rtc")
			if !c.currentNodeIs("ruby", "rtc") {
				c.err(t, ErrMisnestedTag)
			}
		}
		c.insertHTMLElement(t)
		return false, inBody

	case "math":
		c.reconstructActiveFormattingElements()
		adjustMathMLAttributes(t)
		adjustForeignAttributes(t)
		c.insertForeignElement(t, dom.MathMLNamespace)
		if t.SelfClosing {
			c.pop()
		}
		return false, inBody

	case "svg":
		c.reconstructActiveFormattingElements()
		adjustSVGAttributes(t)
		adjustForeignAttributes(t)
		c.insertForeignElement(t, dom.SVGNamespace)
		if t.SelfClosing {
			c.pop()
		}
		return false, inBody

	case "caption", "col", "colgroup", "frame", "head", "tbody", "td", "tfoot", "th", "thead", "tr":
		c.err(t, ErrUnexpectedStartTag)
		return false, inBody

	default:
		c.reconstructActiveFormattingElements()
		c.insertHTMLElement(t)
		if t.SelfClosing {
			c.err(t, ErrNonVoidStartTagWithTrailingSolidus)
		}
		return false, inBody
	}
}

func (c *treeConstructor) inBodyEndTag(t *Token) (bool, insertionMode) {
	switch t.TagName {
	case "template":
		return c.useRulesFor(t, inHead)

	case "body":
		if !c.tagInScope("body") {
			c.err(t, ErrUnexpectedEndTag)
			return false, inBody
		}
		c.checkUnclosedAtBodyEnd(t)
		return false, afterBody

	case "html":
		if !c.tagInScope("body") {
			c.err(t, ErrUnexpectedEndTag)
			return false, inBody
		}
		c.checkUnclosedAtBodyEnd(t)
		return true, afterBody

	case "address", "article", "aside", "blockquote", "button", "center", "details",
		"dialog", "dir", "div", "dl", "fieldset", "figcaption", "figure", "footer",
		"header", "hgroup", "listing", "main", "menu", "nav", "ol", "pre", "section",
		"summary", "ul":
		if !c.tagInScope(t.TagName) {
			c.err(t, ErrUnexpectedEndTag)
			return false, inBody
		}
		c.generateImpliedEndTags()
		if !c.currentNodeIs(t.TagName) {
			c.err(t, ErrUnclosedElements)
		}
		c.popUntil(t.TagName)
		return false, inBody

	case "form":
		if !c.oeContains("template") {
			node := c.form
			c.form = dom.InvalidRef
			if !node.Valid() || !c.refInScope(node) {
				c.err(t, ErrUnexpectedEndTag)
				return false, inBody
			}
			c.generateImpliedEndTags()
			if c.currentNode() != node {
				c.err(t, ErrUnclosedElements)
			}
			c.removeFromOE(node)
			return false, inBody
		}
		if !c.tagInScope("form") {
			c.err(t, ErrUnexpectedEndTag)
			return false, inBody
		}
		c.generateImpliedEndTags()
		if !c.currentNodeIs("form") {
			c.err(t, ErrUnclosedElements)
		}
		c.popUntil("form")
		return false, inBody

	case "p":
		if !c.tagInButtonScope("p") {
			c.err(t, ErrUnexpectedEndTag)
			c.insertSynthetic("p")
		}
		c.closePElement(t)
		return false, inBody

	case "li":
		if !c.tagInListItemScope("li") {
			c.err(t, ErrUnexpectedEndTag)
			return false, inBody
		}
		c.generateImpliedEndTags("li")
		if !c.currentNodeIs("li") {
			c.err(t, ErrUnclosedElements)
		}
		c.popUntil("li")
		return false, inBody

	case "dd", "dt":
		if !c.tagInScope(t.TagName) {
			c.err(t, ErrUnexpectedEndTag)
			return false, inBody
		}
		c.generateImpliedEndTags(t.TagName)
		if !c.currentNodeIs(t.TagName) {
			c.err(t, ErrUnclosedElements)
		}
		c.popUntil(t.TagName)
		return false, inBody

	case "h1", "h2", "h3", "h4", "h5", "h6":
		found := false
		for _, h := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
			if c.tagInScope(h) {
				found = true
				break
			}
		}
		if !found {
			c.err(t, ErrUnexpectedEndTag)
			return false, inBody
		}
		c.generateImpliedEndTags()
		if !c.currentNodeIs(t.TagName) {
			c.err(t, ErrUnclosedElements)
		}
		c.popUntil("h1", "h2", "h3", "h4", "h5", "h6")
		return false, inBody

	case "a", "b", "big", "code", "em", "font", "i", "nobr", "s", "small",
		"strike", "strong", "tt", "u":
		c.adoptionAgency(t)
		return false, inBody

	case "applet", "marquee", "object":
		if !c.tagInScope(t.TagName) {
			c.err(t, ErrUnexpectedEndTag)
			return false, inBody
		}
		c.generateImpliedEndTags()
		if !c.currentNodeIs(t.TagName) {
			c.err(t, ErrUnclosedElements)
		}
		c.popUntil(t.TagName)
		c.clearAFEToMarker()
		return false, inBody

	case "br":
		c.err(t, ErrUnexpectedEndTag)
		c.reconstructActiveFormattingElements()
		c.insertHTMLElement(&Token{Type: startTagToken, TagName: "br", Position: t.Position})
		c.pop()
		c.framesetOK = false
		return false, inBody

	default:
		c.anyOtherEndTag(t)
		return false, inBody
	}
}

func (c *treeConstructor) checkUnclosedAtBodyEnd(t *Token) {
	for _, ref := range c.oe {
		switch c.node(ref).Tag {
		case "dd", "dt", "li", "optgroup", "option", "p", "rb", "rp", "rt", "rtc",
			"tbody", "td", "tfoot", "th", "thead", "tr", "body", "html":
		default:
			c.err(t, ErrUnclosedElements)
			return
		}
	}
}

func (c *treeConstructor) anyOtherEndTag(t *Token) {
	for i := len(c.oe) - 1; i >= 0; i-- {
		ref := c.oe[i]
		n := c.node(ref)
		if n.Namespace == dom.HTMLNamespace && n.Tag == t.TagName {
			c.generateImpliedEndTags(t.TagName)
			if ref != c.currentNode() {
				c.err(t, ErrUnclosedElements)
			}
			c.popUntilRef(ref)
			return
		}
		if c.isSpecial(ref) {
			c.err(t, ErrUnexpectedEndTag)
			return
		}
	}
}
