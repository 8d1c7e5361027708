package parser

import (
	"strings"

	"github.com/jhendrix/webparse/parser/dom"
)

func (c *treeConstructor) inTableModeHandler(t *Token) (bool, insertionMode) {
	switch t.Type {
	case characterToken:
		if c.currentNodeIs("table", "tbody", "tfoot", "thead", "tr") {
			c.pendingTableText = c.pendingTableText[:0]
			c.originalMode = c.mode
			return true, inTableText
		}
	case commentToken:
		c.insertComment(t)
		return false, inTable
	case doctypeToken:
		c.err(t, ErrUnexpectedDoctype)
		return false, inTable
	case startTagToken:
		switch t.TagName {
		case "caption":
			c.clearStackBackToTableContext()
			c.afe = append(c.afe, afeEntry{marker: true, ref: dom.InvalidRef})
			c.insertHTMLElement(t)
			return false, inCaption
		case "colgroup":
			c.clearStackBackToTableContext()
			c.insertHTMLElement(t)
			return false, inColumnGroup
		case "col":
			c.clearStackBackToTableContext()
			c.insertSynthetic("colgroup")
			return true, inColumnGroup
		case "tbody", "tfoot", "thead":
			c.clearStackBackToTableContext()
			c.insertHTMLElement(t)
			return false, inTableBody
		case "td", "th", "tr":
			c.clearStackBackToTableContext()
			c.insertSynthetic("tbody")
			return true, inTableBody
		case "table":
			c.err(t, ErrUnexpectedStartTag)
			if !c.tagInTableScope("table") {
				return false, inTable
			}
			c.popUntil("table")
			c.resetInsertionMode()
			return true, c.mode
		case "style", "script", "template":
			return c.useRulesFor(t, inHead)
		case "input":
			if typ, ok := t.Attr("type"); ok && strings.EqualFold(typ, "hidden") {
				c.err(t, ErrUnexpectedStartTag)
				c.insertHTMLElement(t)
				c.pop()
				return false, inTable
			}
		case "form":
			c.err(t, ErrUnexpectedStartTag)
			if c.oeContains("template") || c.form.Valid() {
				return false, inTable
			}
			c.form = c.insertHTMLElement(t)
			c.pop()
			return false, inTable
		}
	case endTagToken:
		switch t.TagName {
		case "table":
			if !c.tagInTableScope("table") {
				c.err(t, ErrUnexpectedEndTag)
				return false, inTable
			}
			c.popUntil("table")
			c.resetInsertionMode()
			return false, c.mode
		case "body", "caption", "col", "colgroup", "html", "tbody", "td", "tfoot", "th", "thead", "tr":
			c.err(t, ErrUnexpectedEndTag)
			return false, inTable
		case "template":
			return c.useRulesFor(t, inHead)
		}
	case endOfFileToken:
		return c.useRulesFor(t, inBody)
	}
	// Anything else is foster parented through the in-body rules.
	if t.Type == characterToken {
		c.err(t, ErrUnexpectedCharInTable)
	} else {
		c.err(t, ErrFosteredContent)
	}
	c.fosterParenting = true
	reprocess, next := c.useRulesFor(t, inBody)
	c.fosterParenting = false
	return reprocess, next
}

func (c *treeConstructor) inTableTextModeHandler(t *Token) (bool, insertionMode) {
	if t.Type == characterToken {
		if t.Data == "\u0000" {
			c.err(t, ErrUnexpectedNullCharacter)
			return false, inTableText
		}
		c.pendingTableText = append(c.pendingTableText, *t)
		return false, inTableText
	}

	nonSpace := false
	for i := range c.pendingTableText {
		if !c.pendingTableText[i].isWhitespace() {
			nonSpace = true
			break
		}
	}
	if nonSpace {
		c.err(t, ErrNonSpaceInTableText)
		for i := range c.pendingTableText {
			tok := c.pendingTableText[i]
			c.fosterParenting = true
			c.reconstructActiveFormattingElements()
			c.insertCharacter(&tok)
			c.fosterParenting = false
			c.framesetOK = false
		}
	} else {
		for i := range c.pendingTableText {
			c.insertCharacter(&c.pendingTableText[i])
		}
	}
	c.pendingTableText = c.pendingTableText[:0]
	return true, c.originalMode
}

func (c *treeConstructor) closeCaption(t *Token) bool {
	if !c.tagInTableScope("caption") {
		c.err(t, ErrUnexpectedEndTag)
		return false
	}
	c.generateImpliedEndTags()
	if !c.currentNodeIs("caption") {
		c.err(t, ErrUnclosedElements)
	}
	c.popUntil("caption")
	c.clearAFEToMarker()
	return true
}

func (c *treeConstructor) inCaptionModeHandler(t *Token) (bool, insertionMode) {
	switch t.Type {
	case startTagToken:
		switch t.TagName {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if !c.closeCaption(t) {
				return false, inCaption
			}
			return true, inTable
		}
	case endTagToken:
		switch t.TagName {
		case "caption":
			if !c.closeCaption(t) {
				return false, inCaption
			}
			return false, inTable
		case "table":
			if !c.closeCaption(t) {
				return false, inCaption
			}
			return true, inTable
		case "body", "col", "colgroup", "html", "tbody", "td", "tfoot", "th", "thead", "tr":
			c.err(t, ErrUnexpectedEndTag)
			return false, inCaption
		}
	}
	return c.useRulesFor(t, inBody)
}

func (c *treeConstructor) inColumnGroupModeHandler(t *Token) (bool, insertionMode) {
	switch t.Type {
	case characterToken:
		if t.isWhitespace() {
			c.insertCharacter(t)
			return false, inColumnGroup
		}
	case commentToken:
		c.insertComment(t)
		return false, inColumnGroup
	case doctypeToken:
		c.err(t, ErrUnexpectedDoctype)
		return false, inColumnGroup
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inBody)
		case "col":
			c.insertHTMLElement(t)
			c.pop()
			return false, inColumnGroup
		case "template":
			return c.useRulesFor(t, inHead)
		}
	case endTagToken:
		switch t.TagName {
		case "colgroup":
			if !c.currentNodeIs("colgroup") {
				c.err(t, ErrUnexpectedEndTag)
				return false, inColumnGroup
			}
			c.pop()
			return false, inTable
		case "col":
			c.err(t, ErrUnexpectedEndTag)
			return false, inColumnGroup
		case "template":
			return c.useRulesFor(t, inHead)
		}
	case endOfFileToken:
		return c.useRulesFor(t, inBody)
	}
	if !c.currentNodeIs("colgroup") {
		c.err(t, ErrUnexpectedToken)
		return false, inColumnGroup
	}
	c.pop()
	return true, inTable
}

func (c *treeConstructor) inTableBodyModeHandler(t *Token) (bool, insertionMode) {
	switch t.Type {
	case startTagToken:
		switch t.TagName {
		case "tr":
			c.clearStackBackToTableBodyContext()
			c.insertHTMLElement(t)
			return false, inRow
		case "th", "td":
			c.err(t, ErrUnexpectedStartTag)
			c.clearStackBackToTableBodyContext()
			c.insertSynthetic("tr")
			return true, inRow
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead":
			if !c.tagInTableScope("tbody") && !c.tagInTableScope("thead") && !c.tagInTableScope("tfoot") {
				c.err(t, ErrUnexpectedStartTag)
				return false, inTableBody
			}
			c.clearStackBackToTableBodyContext()
			c.pop()
			return true, inTable
		}
	case endTagToken:
		switch t.TagName {
		case "tbody", "tfoot", "thead":
			if !c.tagInTableScope(t.TagName) {
				c.err(t, ErrUnexpectedEndTag)
				return false, inTableBody
			}
			c.clearStackBackToTableBodyContext()
			c.pop()
			return false, inTable
		case "table":
			if !c.tagInTableScope("tbody") && !c.tagInTableScope("thead") && !c.tagInTableScope("tfoot") {
				c.err(t, ErrUnexpectedEndTag)
				return false, inTableBody
			}
			c.clearStackBackToTableBodyContext()
			c.pop()
			return true, inTable
		case "body", "caption", "col", "colgroup", "html", "td", "th", "tr":
			c.err(t, ErrUnexpectedEndTag)
			return false, inTableBody
		}
	}
	return c.useRulesFor(t, inTable)
}

func (c *treeConstructor) inRowModeHandler(t *Token) (bool, insertionMode) {
	switch t.Type {
	case startTagToken:
		switch t.TagName {
		case "th", "td":
			c.clearStackBackToTableRowContext()
			c.insertHTMLElement(t)
			c.afe = append(c.afe, afeEntry{marker: true, ref: dom.InvalidRef})
			return false, inCell
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead", "tr":
			if !c.tagInTableScope("tr") {
				c.err(t, ErrUnexpectedStartTag)
				return false, inRow
			}
			c.clearStackBackToTableRowContext()
			c.pop()
			return true, inTableBody
		}
	case endTagToken:
		switch t.TagName {
		case "tr":
			if !c.tagInTableScope("tr") {
				c.err(t, ErrUnexpectedEndTag)
				return false, inRow
			}
			c.clearStackBackToTableRowContext()
			c.pop()
			return false, inTableBody
		case "table":
			if !c.tagInTableScope("tr") {
				c.err(t, ErrUnexpectedEndTag)
				return false, inRow
			}
			c.clearStackBackToTableRowContext()
			c.pop()
			return true, inTableBody
		case "tbody", "tfoot", "thead":
			if !c.tagInTableScope(t.TagName) {
				c.err(t, ErrUnexpectedEndTag)
				return false, inRow
			}
			if !c.tagInTableScope("tr") {
				return false, inRow
			}
			c.clearStackBackToTableRowContext()
			c.pop()
			return true, inTableBody
		case "body", "caption", "col", "colgroup", "html", "td", "th":
			c.err(t, ErrUnexpectedEndTag)
			return false, inRow
		}
	}
	return c.useRulesFor(t, inTable)
}

func (c *treeConstructor) closeCell(t *Token) {
	c.generateImpliedEndTags()
	if !c.currentNodeIs("td", "th") {
		c.err(t, ErrUnclosedElements)
	}
	c.popUntil("td", "th")
	c.clearAFEToMarker()
}

func (c *treeConstructor) inCellModeHandler(t *Token) (bool, insertionMode) {
	switch t.Type {
	case startTagToken:
		switch t.TagName {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if !c.tagInTableScope("td") && !c.tagInTableScope("th") {
				c.err(t, ErrUnexpectedStartTag)
				return false, inCell
			}
			c.closeCell(t)
			return true, inRow
		}
	case endTagToken:
		switch t.TagName {
		case "td", "th":
			if !c.tagInTableScope(t.TagName) {
				c.err(t, ErrUnexpectedEndTag)
				return false, inCell
			}
			c.generateImpliedEndTags()
			if !c.currentNodeIs(t.TagName) {
				c.err(t, ErrUnclosedElements)
			}
			c.popUntil(t.TagName)
			c.clearAFEToMarker()
			return false, inRow
		case "body", "caption", "col", "colgroup", "html":
			c.err(t, ErrUnexpectedEndTag)
			return false, inCell
		case "table", "tbody", "tfoot", "thead", "tr":
			if !c.tagInTableScope(t.TagName) {
				c.err(t, ErrUnexpectedEndTag)
				return false, inCell
			}
			c.closeCell(t)
			return true, inRow
		}
	}
	return c.useRulesFor(t, inBody)
}

func (c *treeConstructor) inSelectModeHandler(t *Token) (bool, insertionMode) {
	switch t.Type {
	case characterToken:
		if t.Data == "\u0000" {
			c.err(t, ErrUnexpectedNullCharacter)
			return false, inSelect
		}
		c.insertCharacter(t)
		return false, inSelect
	case commentToken:
		c.insertComment(t)
		return false, inSelect
	case doctypeToken:
		c.err(t, ErrUnexpectedDoctype)
		return false, inSelect
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inBody)
		case "option":
			if c.currentNodeIs("option") {
				c.pop()
			}
			c.insertHTMLElement(t)
			return false, inSelect
		case "optgroup":
			if c.currentNodeIs("option") {
				c.pop()
			}
			if c.currentNodeIs("optgroup") {
				c.pop()
			}
			c.insertHTMLElement(t)
			return false, inSelect
		case "hr":
			if c.currentNodeIs("option") {
				c.pop()
			}
			if c.currentNodeIs("optgroup") {
				c.pop()
			}
			c.insertHTMLElement(t)
			c.pop()
			return false, inSelect
		case "select":
			c.err(t, ErrUnexpectedStartTag)
			if !c.tagInSelectScope("select") {
				return false, inSelect
			}
			c.popUntil("select")
			c.resetInsertionMode()
			return false, c.mode
		case "input", "keygen", "textarea":
			c.err(t, ErrUnexpectedStartTag)
			if !c.tagInSelectScope("select") {
				return false, inSelect
			}
			c.popUntil("select")
			c.resetInsertionMode()
			return true, c.mode
		case "script", "template":
			return c.useRulesFor(t, inHead)
		}
	case endTagToken:
		switch t.TagName {
		case "optgroup":
			if c.currentNodeIs("option") && len(c.oe) > 1 && c.node(c.oe[len(c.oe)-2]).IsElement("optgroup") {
				c.pop()
			}
			if c.currentNodeIs("optgroup") {
				c.pop()
			} else {
				c.err(t, ErrUnexpectedEndTag)
			}
			return false, inSelect
		case "option":
			if c.currentNodeIs("option") {
				c.pop()
			} else {
				c.err(t, ErrUnexpectedEndTag)
			}
			return false, inSelect
		case "select":
			if !c.tagInSelectScope("select") {
				c.err(t, ErrUnexpectedEndTag)
				return false, inSelect
			}
			c.popUntil("select")
			c.resetInsertionMode()
			return false, c.mode
		case "template":
			return c.useRulesFor(t, inHead)
		}
	case endOfFileToken:
		return c.useRulesFor(t, inBody)
	}
	c.err(t, ErrUnexpectedToken)
	return false, inSelect
}

func (c *treeConstructor) inSelectInTableModeHandler(t *Token) (bool, insertionMode) {
	switch t.Type {
	case startTagToken:
		switch t.TagName {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			c.err(t, ErrUnexpectedStartTag)
			c.popUntil("select")
			c.resetInsertionMode()
			return true, c.mode
		}
	case endTagToken:
		switch t.TagName {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			c.err(t, ErrUnexpectedEndTag)
			if !c.tagInTableScope(t.TagName) {
				return false, inSelectInTable
			}
			c.popUntil("select")
			c.resetInsertionMode()
			return true, c.mode
		}
	}
	return c.useRulesFor(t, inSelect)
}

func (c *treeConstructor) inTemplateModeHandler(t *Token) (bool, insertionMode) {
	switch t.Type {
	case characterToken, commentToken, doctypeToken:
		return c.useRulesFor(t, inBody)
	case startTagToken:
		switch t.TagName {
		case "base", "basefont", "bgsound", "link", "meta", "noframes", "script",
			"style", "template", "title":
			return c.useRulesFor(t, inHead)
		case "caption", "colgroup", "tbody", "tfoot", "thead":
			return c.switchTemplateMode(inTable), inTable
		case "col":
			return c.switchTemplateMode(inColumnGroup), inColumnGroup
		case "tr":
			return c.switchTemplateMode(inTableBody), inTableBody
		case "td", "th":
			return c.switchTemplateMode(inRow), inRow
		default:
			return c.switchTemplateMode(inBody), inBody
		}
	case endTagToken:
		if t.TagName == "template" {
			return c.useRulesFor(t, inHead)
		}
		c.err(t, ErrUnexpectedEndTag)
		return false, inTemplate
	case endOfFileToken:
		if !c.oeContains("template") {
			c.stop()
			return false, inTemplate
		}
		c.err(t, ErrUnexpectedEOF)
		c.popUntil("template")
		c.clearAFEToMarker()
		if len(c.templateModes) > 0 {
			c.templateModes = c.templateModes[:len(c.templateModes)-1]
		}
		c.resetInsertionMode()
		return true, c.mode
	}
	return false, inTemplate
}

func (c *treeConstructor) switchTemplateMode(mode insertionMode) bool {
	c.templateModes = c.templateModes[:len(c.templateModes)-1]
	c.templateModes = append(c.templateModes, mode)
	return true
}
