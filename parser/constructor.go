package parser

import "github.com/jhendrix/webparse/parser/dom"

type insertionMode uint8

const (
	initial insertionMode = iota
	beforeHTML
	beforeHead
	inHead
	inHeadNoScript
	afterHead
	inBody
	text
	inTable
	inTableText
	inCaption
	inColumnGroup
	inTableBody
	inRow
	inCell
	inSelect
	inSelectInTable
	inTemplate
	afterBody
	inFrameset
	afterFrameset
	afterAfterBody
	afterAfterFrameset
)

var insertionModeNames = map[insertionMode]string{
	initial:            "initial",
	beforeHTML:         "before-html",
	beforeHead:         "before-head",
	inHead:             "in-head",
	inHeadNoScript:     "in-head-noscript",
	afterHead:          "after-head",
	inBody:             "in-body",
	text:               "text",
	inTable:            "in-table",
	inTableText:        "in-table-text",
	inCaption:          "in-caption",
	inColumnGroup:      "in-column-group",
	inTableBody:        "in-table-body",
	inRow:              "in-row",
	inCell:             "in-cell",
	inSelect:           "in-select",
	inSelectInTable:    "in-select-in-table",
	inTemplate:         "in-template",
	afterBody:          "after-body",
	inFrameset:         "in-frameset",
	afterFrameset:      "after-frameset",
	afterAfterBody:     "after-after-body",
	afterAfterFrameset: "after-after-frameset",
}

func (m insertionMode) String() string {
	if name, ok := insertionModeNames[m]; ok {
		return name
	}
	return "unknown"
}

type modeHandler func(t *Token) (bool, insertionMode)

// treeConstructor consumes the token stream and builds the document tree. It
// keeps the open element stack and the list of active formatting elements as
// arena references into the document.
type treeConstructor struct {
	doc  *dom.Document
	tk   *Tokenizer
	sink *ErrorSink

	mode          insertionMode
	originalMode  insertionMode
	templateModes []insertionMode
	modeHandlers  map[insertionMode]modeHandler

	oe  []dom.NodeRef
	afe []afeEntry

	head dom.NodeRef
	form dom.NodeRef

	framesetOK      bool
	fosterParenting bool
	scripting       bool

	// skipNewline eats the newline immediately following <pre>, <listing>
	// and <textarea>.
	skipNewline bool

	pendingTableText []Token

	// fragment parsing context. contextRef is the arena copy of the context
	// element, valid only while fragment is set.
	fragment   bool
	contextRef dom.NodeRef

	// scriptReady holds the </script> element awaiting execution; the parser
	// pauses on it when a script handler is installed.
	scriptReady dom.NodeRef

	stopped bool
}

func newTreeConstructor(doc *dom.Document, tk *Tokenizer, sink *ErrorSink) *treeConstructor {
	c := &treeConstructor{
		doc:         doc,
		tk:          tk,
		sink:        sink,
		mode:        initial,
		head:        dom.InvalidRef,
		form:        dom.InvalidRef,
		contextRef:  dom.InvalidRef,
		scriptReady: dom.InvalidRef,
		framesetOK:  true,
	}
	c.createMappings()
	tk.inForeignContent = func() bool {
		acn := c.adjustedCurrentNode()
		if !acn.Valid() {
			return false
		}
		return c.node(acn).Namespace != dom.HTMLNamespace
	}
	return c
}

func (c *treeConstructor) createMappings() {
	c.modeHandlers = map[insertionMode]modeHandler{
		initial:            c.initialModeHandler,
		beforeHTML:         c.beforeHTMLModeHandler,
		beforeHead:         c.beforeHeadModeHandler,
		inHead:             c.inHeadModeHandler,
		inHeadNoScript:     c.inHeadNoScriptModeHandler,
		afterHead:          c.afterHeadModeHandler,
		inBody:             c.inBodyModeHandler,
		text:               c.textModeHandler,
		inTable:            c.inTableModeHandler,
		inTableText:        c.inTableTextModeHandler,
		inCaption:          c.inCaptionModeHandler,
		inColumnGroup:      c.inColumnGroupModeHandler,
		inTableBody:        c.inTableBodyModeHandler,
		inRow:              c.inRowModeHandler,
		inCell:             c.inCellModeHandler,
		inSelect:           c.inSelectModeHandler,
		inSelectInTable:    c.inSelectInTableModeHandler,
		inTemplate:         c.inTemplateModeHandler,
		afterBody:          c.afterBodyModeHandler,
		inFrameset:         c.inFramesetModeHandler,
		afterFrameset:      c.afterFramesetModeHandler,
		afterAfterBody:     c.afterAfterBodyModeHandler,
		afterAfterFrameset: c.afterAfterFramesetModeHandler,
	}
}

// processToken runs the tree construction dispatcher for one token,
// reprocessing as long as a handler asks for it.
func (c *treeConstructor) processToken(t *Token) {
	if t.Type != characterToken {
		c.skipNewline = false
	}
	reprocess := true
	for reprocess && !c.stopped {
		if c.useForeignRules(t) {
			reprocess = c.foreignContentHandler(t)
			continue
		}
		var next insertionMode
		reprocess, next = c.modeHandlers[c.mode](t)
		if next != c.mode {
			log.Tracef("constructor: %s -> %s on %s token", c.mode, next, t.Type)
		}
		c.mode = next
	}
}

func (c *treeConstructor) err(t *Token, kind ErrorKind) {
	c.sink.add(t.Position, kind)
}

func (c *treeConstructor) node(ref dom.NodeRef) *dom.Node {
	return c.doc.Node(ref)
}

func (c *treeConstructor) currentNode() dom.NodeRef {
	if len(c.oe) == 0 {
		return dom.InvalidRef
	}
	return c.oe[len(c.oe)-1]
}

// adjustedCurrentNode is the context element when fragment parsing sits at
// the bottom of the stack, the current node otherwise.
func (c *treeConstructor) adjustedCurrentNode() dom.NodeRef {
	if c.fragment && len(c.oe) == 1 {
		return c.contextRef
	}
	return c.currentNode()
}

func (c *treeConstructor) currentNodeIs(tags ...string) bool {
	cur := c.currentNode()
	if !cur.Valid() {
		return false
	}
	n := c.node(cur)
	for _, tag := range tags {
		if n.IsElement(tag) {
			return true
		}
	}
	return false
}

func (c *treeConstructor) pop() dom.NodeRef {
	if len(c.oe) == 0 {
		return dom.InvalidRef
	}
	ref := c.oe[len(c.oe)-1]
	c.oe = c.oe[:len(c.oe)-1]
	return ref
}

// popUntil pops elements until one of the named HTML elements has been
// popped.
func (c *treeConstructor) popUntil(tags ...string) {
	for len(c.oe) > 0 {
		popped := c.pop()
		n := c.node(popped)
		for _, tag := range tags {
			if n.IsElement(tag) {
				return
			}
		}
	}
}

// popUntilRef pops elements until ref itself has been popped.
func (c *treeConstructor) popUntilRef(ref dom.NodeRef) {
	for len(c.oe) > 0 {
		if c.pop() == ref {
			return
		}
	}
}

func (c *treeConstructor) indexOfOE(ref dom.NodeRef) int {
	for i := len(c.oe) - 1; i >= 0; i-- {
		if c.oe[i] == ref {
			return i
		}
	}
	return -1
}

func (c *treeConstructor) removeFromOE(ref dom.NodeRef) {
	if i := c.indexOfOE(ref); i >= 0 {
		c.oe = append(c.oe[:i], c.oe[i+1:]...)
	}
}

func (c *treeConstructor) oeContains(tag string) bool {
	for _, ref := range c.oe {
		if c.node(ref).IsElement(tag) {
			return true
		}
	}
	return false
}

// appropriatePlaceForInsertion implements the override-target and foster
// parenting rules. An invalid override means "use the current node".
func (c *treeConstructor) appropriatePlaceForInsertion(override dom.NodeRef) dom.InsertionPoint {
	target := override
	if !target.Valid() {
		target = c.currentNode()
	}
	if c.fosterParenting {
		tn := c.node(target)
		if tn.Namespace == dom.HTMLNamespace {
			switch tn.Tag {
			case "table", "tbody", "tfoot", "thead", "tr":
				return c.fosterParentingPlace()
			}
		}
	}
	// Template contents live under the template element itself.
	return dom.InsertionPoint{Parent: target, Before: dom.InvalidRef}
}

func (c *treeConstructor) fosterParentingPlace() dom.InsertionPoint {
	lastTemplate, lastTable := -1, -1
	for i := len(c.oe) - 1; i >= 0; i-- {
		n := c.node(c.oe[i])
		if lastTemplate < 0 && n.IsElement("template") {
			lastTemplate = i
		}
		if lastTable < 0 && n.IsElement("table") {
			lastTable = i
		}
	}
	if lastTemplate >= 0 && (lastTable < 0 || lastTemplate > lastTable) {
		return dom.InsertionPoint{Parent: c.oe[lastTemplate], Before: dom.InvalidRef}
	}
	if lastTable < 0 {
		return dom.InsertionPoint{Parent: c.oe[0], Before: dom.InvalidRef}
	}
	table := c.oe[lastTable]
	if parent := c.doc.ParentOf(table); parent.Valid() {
		return dom.InsertionPoint{Parent: parent, Before: table}
	}
	return dom.InsertionPoint{Parent: c.oe[lastTable-1], Before: dom.InvalidRef}
}

func (c *treeConstructor) insertHTMLElement(t *Token) dom.NodeRef {
	return c.insertForeignElement(t, dom.HTMLNamespace)
}

func (c *treeConstructor) insertForeignElement(t *Token, ns dom.Namespace) dom.NodeRef {
	ip := c.appropriatePlaceForInsertion(dom.InvalidRef)
	ref := c.doc.CreateElement(t.TagName, ns, t.Attributes)
	c.doc.Insert(ip, ref)
	c.oe = append(c.oe, ref)
	return ref
}

// insertSynthetic inserts an HTML element that has no token of its own, such
// as the implied <head>, <body> and table scaffolding.
func (c *treeConstructor) insertSynthetic(tag string) dom.NodeRef {
	return c.insertHTMLElement(&Token{Type: startTagToken, TagName: tag})
}

func (c *treeConstructor) insertCharacter(t *Token) {
	ip := c.appropriatePlaceForInsertion(dom.InvalidRef)
	if pn := c.node(ip.Parent); pn == nil || pn.Type == dom.DocumentNode {
		return
	}
	c.doc.InsertText(ip, t.Data)
}

func (c *treeConstructor) insertComment(t *Token) {
	c.doc.InsertComment(c.appropriatePlaceForInsertion(dom.InvalidRef), t.Data)
}

func (c *treeConstructor) insertCommentAsLastChildOf(ref dom.NodeRef, t *Token) {
	c.doc.InsertComment(dom.InsertionPoint{Parent: ref, Before: dom.InvalidRef}, t.Data)
}

// useRulesFor processes the token with another mode's rules while staying in
// the current mode unless those rules switch it.
func (c *treeConstructor) useRulesFor(t *Token, mode insertionMode) (bool, insertionMode) {
	reprocess, next := c.modeHandlers[mode](t)
	if next != mode {
		return reprocess, next
	}
	return reprocess, c.mode
}

// genericRawTextParse and genericRCDATAParse insert the element and hand the
// tokenizer the matching content model until the appropriate end tag.
func (c *treeConstructor) genericRawTextParse(t *Token) insertionMode {
	c.insertHTMLElement(t)
	c.tk.switchTo(rawTextState)
	c.originalMode = c.mode
	return text
}

func (c *treeConstructor) genericRCDATAParse(t *Token) insertionMode {
	c.insertHTMLElement(t)
	c.tk.switchTo(rcDataState)
	c.originalMode = c.mode
	return text
}

type scopeEntry struct {
	ns  dom.Namespace
	tag string
}

var defaultScope = []scopeEntry{
	{dom.HTMLNamespace, "applet"}, {dom.HTMLNamespace, "caption"},
	{dom.HTMLNamespace, "html"}, {dom.HTMLNamespace, "table"},
	{dom.HTMLNamespace, "td"}, {dom.HTMLNamespace, "th"},
	{dom.HTMLNamespace, "marquee"}, {dom.HTMLNamespace, "object"},
	{dom.HTMLNamespace, "template"},
	{dom.MathMLNamespace, "mi"}, {dom.MathMLNamespace, "mo"},
	{dom.MathMLNamespace, "mn"}, {dom.MathMLNamespace, "ms"},
	{dom.MathMLNamespace, "mtext"}, {dom.MathMLNamespace, "annotation-xml"},
	{dom.SVGNamespace, "foreignObject"}, {dom.SVGNamespace, "desc"},
	{dom.SVGNamespace, "title"},
}

var listItemScope = append(append([]scopeEntry{}, defaultScope...),
	scopeEntry{dom.HTMLNamespace, "ol"}, scopeEntry{dom.HTMLNamespace, "ul"})

var buttonScope = append(append([]scopeEntry{}, defaultScope...),
	scopeEntry{dom.HTMLNamespace, "button"})

var tableScope = []scopeEntry{
	{dom.HTMLNamespace, "html"}, {dom.HTMLNamespace, "table"},
	{dom.HTMLNamespace, "template"},
}

func (c *treeConstructor) tagInSpecificScope(tag string, list []scopeEntry) bool {
	for i := len(c.oe) - 1; i >= 0; i-- {
		n := c.node(c.oe[i])
		if n.IsElement(tag) {
			return true
		}
		for _, s := range list {
			if n.Namespace == s.ns && n.Tag == s.tag {
				return false
			}
		}
	}
	return false
}

func (c *treeConstructor) refInScope(ref dom.NodeRef) bool {
	for i := len(c.oe) - 1; i >= 0; i-- {
		if c.oe[i] == ref {
			return true
		}
		n := c.node(c.oe[i])
		for _, s := range defaultScope {
			if n.Namespace == s.ns && n.Tag == s.tag {
				return false
			}
		}
	}
	return false
}

func (c *treeConstructor) tagInScope(tag string) bool {
	return c.tagInSpecificScope(tag, defaultScope)
}

func (c *treeConstructor) tagInListItemScope(tag string) bool {
	return c.tagInSpecificScope(tag, listItemScope)
}

func (c *treeConstructor) tagInButtonScope(tag string) bool {
	return c.tagInSpecificScope(tag, buttonScope)
}

func (c *treeConstructor) tagInTableScope(tag string) bool {
	return c.tagInSpecificScope(tag, tableScope)
}

// tagInSelectScope inverts the usual rule: everything except optgroup and
// option terminates the search.
func (c *treeConstructor) tagInSelectScope(tag string) bool {
	for i := len(c.oe) - 1; i >= 0; i-- {
		n := c.node(c.oe[i])
		if n.IsElement(tag) {
			return true
		}
		if n.Namespace != dom.HTMLNamespace || (n.Tag != "optgroup" && n.Tag != "option") {
			return false
		}
	}
	return false
}

var impliedEndTags = []string{"dd", "dt", "li", "optgroup", "option", "p", "rb", "rp", "rt", "rtc"}

var thoroughImpliedEndTags = append(append([]string{}, impliedEndTags...),
	"caption", "colgroup", "table", "tbody", "td", "tfoot", "th", "thead", "tr")

func (c *treeConstructor) generateImpliedEndTags(except ...string) {
	for {
		cur := c.currentNode()
		if !cur.Valid() {
			return
		}
		n := c.node(cur)
		if n.Namespace != dom.HTMLNamespace {
			return
		}
		found := false
		for _, tag := range impliedEndTags {
			if n.Tag == tag {
				found = true
				break
			}
		}
		if !found {
			return
		}
		for _, ex := range except {
			if n.Tag == ex {
				return
			}
		}
		c.pop()
	}
}

func (c *treeConstructor) generateAllImpliedEndTagsThoroughly() {
	for {
		cur := c.currentNode()
		if !cur.Valid() {
			return
		}
		n := c.node(cur)
		if n.Namespace != dom.HTMLNamespace {
			return
		}
		found := false
		for _, tag := range thoroughImpliedEndTags {
			if n.Tag == tag {
				found = true
				break
			}
		}
		if !found {
			return
		}
		c.pop()
	}
}

func (c *treeConstructor) closePElement(t *Token) {
	c.generateImpliedEndTags("p")
	if !c.currentNodeIs("p") {
		c.err(t, ErrMisnestedTag)
	}
	c.popUntil("p")
}

func (c *treeConstructor) clearStackBackToTableContext() {
	for !c.currentNodeIs("table", "template", "html") {
		c.pop()
	}
}

func (c *treeConstructor) clearStackBackToTableBodyContext() {
	for !c.currentNodeIs("tbody", "tfoot", "thead", "template", "html") {
		c.pop()
	}
}

func (c *treeConstructor) clearStackBackToTableRowContext() {
	for !c.currentNodeIs("tr", "template", "html") {
		c.pop()
	}
}

// resetInsertionMode recomputes the mode from the open element stack, used
// after templates, misnested tables and fragment setup.
func (c *treeConstructor) resetInsertionMode() {
	for i := len(c.oe) - 1; i >= 0; i-- {
		ref := c.oe[i]
		last := i == 0
		if c.fragment && last {
			ref = c.contextRef
		}
		n := c.node(ref)
		if n.Namespace != dom.HTMLNamespace {
			if last {
				c.mode = inBody
				return
			}
			continue
		}
		switch n.Tag {
		case "select":
			for j := i - 1; j > 0; j-- {
				an := c.node(c.oe[j])
				if an.IsElement("template") {
					break
				}
				if an.IsElement("table") {
					c.mode = inSelectInTable
					return
				}
			}
			c.mode = inSelect
			return
		case "td", "th":
			if !last {
				c.mode = inCell
				return
			}
		case "tr":
			c.mode = inRow
			return
		case "tbody", "thead", "tfoot":
			c.mode = inTableBody
			return
		case "caption":
			c.mode = inCaption
			return
		case "colgroup":
			c.mode = inColumnGroup
			return
		case "table":
			c.mode = inTable
			return
		case "template":
			c.mode = c.templateModes[len(c.templateModes)-1]
			return
		case "head":
			if !last {
				c.mode = inHead
				return
			}
		case "body":
			c.mode = inBody
			return
		case "frameset":
			c.mode = inFrameset
			return
		case "html":
			if !c.head.Valid() {
				c.mode = beforeHead
			} else {
				c.mode = afterHead
			}
			return
		}
		if last {
			c.mode = inBody
			return
		}
	}
	c.mode = inBody
}

func (c *treeConstructor) stop() {
	c.stopped = true
}

func (c *treeConstructor) initialModeHandler(t *Token) (bool, insertionMode) {
	switch t.Type {
	case characterToken:
		if t.isWhitespace() {
			return false, initial
		}
	case commentToken:
		c.insertCommentAsLastChildOf(c.doc.Root(), t)
		return false, initial
	case doctypeToken:
		if t.Name != "html" || t.HasPublicID ||
			(t.HasSystemID && t.SystemID != "about:legacy-compat") {
			c.err(t, ErrUnexpectedDoctype)
		}
		ref := c.doc.CreateDoctype(t.Name, t.PublicID, t.SystemID, t.HasPublicID, t.HasSystemID)
		c.doc.AppendChild(c.doc.Root(), ref)
		c.doc.QuirksMode = quirksModeForDoctype(t)
		return false, beforeHTML
	}
	c.err(t, ErrExpectedDoctype)
	c.doc.QuirksMode = dom.Quirks
	return true, beforeHTML
}

func (c *treeConstructor) defaultBeforeHTMLModeHandler(t *Token) (bool, insertionMode) {
	ref := c.doc.CreateElement("html", dom.HTMLNamespace, nil)
	c.doc.AppendChild(c.doc.Root(), ref)
	c.oe = append(c.oe, ref)
	return true, beforeHead
}

func (c *treeConstructor) beforeHTMLModeHandler(t *Token) (bool, insertionMode) {
	switch t.Type {
	case doctypeToken:
		c.err(t, ErrUnexpectedDoctype)
		return false, beforeHTML
	case commentToken:
		c.insertCommentAsLastChildOf(c.doc.Root(), t)
		return false, beforeHTML
	case characterToken:
		if t.isWhitespace() {
			return false, beforeHTML
		}
	case startTagToken:
		if t.TagName == "html" {
			ref := c.doc.CreateElement(t.TagName, dom.HTMLNamespace, t.Attributes)
			c.doc.AppendChild(c.doc.Root(), ref)
			c.oe = append(c.oe, ref)
			return false, beforeHead
		}
	case endTagToken:
		switch t.TagName {
		case "head", "body", "html", "br":
			return c.defaultBeforeHTMLModeHandler(t)
		default:
			c.err(t, ErrUnexpectedEndTag)
			return false, beforeHTML
		}
	}
	return c.defaultBeforeHTMLModeHandler(t)
}

func (c *treeConstructor) defaultBeforeHeadModeHandler(t *Token) (bool, insertionMode) {
	c.head = c.insertSynthetic("head")
	return true, inHead
}

func (c *treeConstructor) beforeHeadModeHandler(t *Token) (bool, insertionMode) {
	switch t.Type {
	case characterToken:
		if t.isWhitespace() {
			return false, beforeHead
		}
	case commentToken:
		c.insertComment(t)
		return false, beforeHead
	case doctypeToken:
		c.err(t, ErrUnexpectedDoctype)
		return false, beforeHead
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inBody)
		case "head":
			c.head = c.insertHTMLElement(t)
			return false, inHead
		}
	case endTagToken:
		switch t.TagName {
		case "head", "body", "html", "br":
			return c.defaultBeforeHeadModeHandler(t)
		}
		c.err(t, ErrUnexpectedEndTag)
		return false, beforeHead
	}
	return c.defaultBeforeHeadModeHandler(t)
}

func (c *treeConstructor) defaultInHeadModeHandler(t *Token) (bool, insertionMode) {
	c.pop()
	return true, afterHead
}

func (c *treeConstructor) inHeadModeHandler(t *Token) (bool, insertionMode) {
	switch t.Type {
	case characterToken:
		if t.isWhitespace() {
			c.insertCharacter(t)
			return false, inHead
		}
	case commentToken:
		c.insertComment(t)
		return false, inHead
	case doctypeToken:
		c.err(t, ErrUnexpectedDoctype)
		return false, inHead
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inBody)
		case "base", "basefont", "bgsound", "link", "meta":
			c.insertHTMLElement(t)
			c.pop()
			return false, inHead
		case "title":
			return false, c.genericRCDATAParse(t)
		case "noscript":
			if c.scripting {
				return false, c.genericRawTextParse(t)
			}
			c.insertHTMLElement(t)
			return false, inHeadNoScript
		case "noframes", "style":
			return false, c.genericRawTextParse(t)
		case "script":
			c.insertHTMLElement(t)
			c.tk.switchTo(scriptDataState)
			c.originalMode = c.mode
			return false, text
		case "template":
			c.insertHTMLElement(t)
			c.afe = append(c.afe, afeEntry{marker: true, ref: dom.InvalidRef})
			c.framesetOK = false
			c.templateModes = append(c.templateModes, inTemplate)
			return false, inTemplate
		case "head":
			c.err(t, ErrUnexpectedStartTag)
			return false, inHead
		}
	case endTagToken:
		switch t.TagName {
		case "head":
			c.pop()
			return false, afterHead
		case "body", "html", "br":
			return c.defaultInHeadModeHandler(t)
		case "template":
			return c.closeTemplate(t)
		default:
			c.err(t, ErrUnexpectedEndTag)
			return false, inHead
		}
	}
	return c.defaultInHeadModeHandler(t)
}

func (c *treeConstructor) closeTemplate(t *Token) (bool, insertionMode) {
	if !c.oeContains("template") {
		c.err(t, ErrUnexpectedEndTag)
		return false, c.mode
	}
	c.generateAllImpliedEndTagsThoroughly()
	if !c.currentNodeIs("template") {
		c.err(t, ErrUnclosedElements)
	}
	c.popUntil("template")
	c.clearAFEToMarker()
	if len(c.templateModes) > 0 {
		c.templateModes = c.templateModes[:len(c.templateModes)-1]
	}
	c.resetInsertionMode()
	return false, c.mode
}

func (c *treeConstructor) defaultInHeadNoScriptModeHandler(t *Token) (bool, insertionMode) {
	c.err(t, ErrUnexpectedToken)
	c.pop()
	return true, inHead
}

func (c *treeConstructor) inHeadNoScriptModeHandler(t *Token) (bool, insertionMode) {
	switch t.Type {
	case characterToken:
		if t.isWhitespace() {
			return c.useRulesFor(t, inHead)
		}
	case commentToken:
		return c.useRulesFor(t, inHead)
	case doctypeToken:
		c.err(t, ErrUnexpectedDoctype)
		return false, inHeadNoScript
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inBody)
		case "basefont", "bgsound", "link", "meta", "noframes", "style":
			return c.useRulesFor(t, inHead)
		case "head", "noscript":
			c.err(t, ErrUnexpectedStartTag)
			return false, inHeadNoScript
		}
	case endTagToken:
		switch t.TagName {
		case "noscript":
			c.pop()
			return false, inHead
		case "br":
			return c.defaultInHeadNoScriptModeHandler(t)
		default:
			c.err(t, ErrUnexpectedEndTag)
			return false, inHeadNoScript
		}
	}
	return c.defaultInHeadNoScriptModeHandler(t)
}

func (c *treeConstructor) defaultAfterHeadModeHandler(t *Token) (bool, insertionMode) {
	c.insertSynthetic("body")
	return true, inBody
}

func (c *treeConstructor) afterHeadModeHandler(t *Token) (bool, insertionMode) {
	switch t.Type {
	case characterToken:
		if t.isWhitespace() {
			c.insertCharacter(t)
			return false, afterHead
		}
	case commentToken:
		c.insertComment(t)
		return false, afterHead
	case doctypeToken:
		c.err(t, ErrUnexpectedDoctype)
		return false, afterHead
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inBody)
		case "body":
			c.insertHTMLElement(t)
			c.framesetOK = false
			return false, inBody
		case "frameset":
			c.insertHTMLElement(t)
			return false, inFrameset
		case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
			c.err(t, ErrUnexpectedStartTag)
			c.oe = append(c.oe, c.head)
			reprocess, next := c.useRulesFor(t, inHead)
			c.removeFromOE(c.head)
			return reprocess, next
		case "head":
			c.err(t, ErrUnexpectedStartTag)
			return false, afterHead
		}
	case endTagToken:
		switch t.TagName {
		case "template":
			return c.useRulesFor(t, inHead)
		case "body", "html", "br":
			return c.defaultAfterHeadModeHandler(t)
		default:
			c.err(t, ErrUnexpectedEndTag)
			return false, afterHead
		}
	}
	return c.defaultAfterHeadModeHandler(t)
}

func (c *treeConstructor) textModeHandler(t *Token) (bool, insertionMode) {
	switch t.Type {
	case characterToken:
		c.insertCharacter(t)
		return false, text
	case endOfFileToken:
		c.err(t, ErrUnexpectedEOF)
		c.pop()
		return true, c.originalMode
	case endTagToken:
		if t.TagName == "script" {
			c.scriptReady = c.pop()
			return false, c.originalMode
		}
		c.pop()
		return false, c.originalMode
	}
	return false, text
}

func (c *treeConstructor) afterBodyModeHandler(t *Token) (bool, insertionMode) {
	switch t.Type {
	case characterToken:
		if t.isWhitespace() {
			return c.useRulesFor(t, inBody)
		}
	case commentToken:
		c.insertCommentAsLastChildOf(c.oe[0], t)
		return false, afterBody
	case doctypeToken:
		c.err(t, ErrUnexpectedDoctype)
		return false, afterBody
	case startTagToken:
		if t.TagName == "html" {
			return c.useRulesFor(t, inBody)
		}
	case endTagToken:
		if t.TagName == "html" {
			if c.fragment {
				c.err(t, ErrUnexpectedEndTag)
				return false, afterBody
			}
			return false, afterAfterBody
		}
	case endOfFileToken:
		c.stop()
		return false, afterBody
	}
	c.err(t, ErrUnexpectedToken)
	return true, inBody
}

func (c *treeConstructor) inFramesetModeHandler(t *Token) (bool, insertionMode) {
	switch t.Type {
	case characterToken:
		if t.isWhitespace() {
			c.insertCharacter(t)
			return false, inFrameset
		}
	case commentToken:
		c.insertComment(t)
		return false, inFrameset
	case doctypeToken:
		c.err(t, ErrUnexpectedDoctype)
		return false, inFrameset
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inBody)
		case "frameset":
			c.insertHTMLElement(t)
			return false, inFrameset
		case "frame":
			c.insertHTMLElement(t)
			c.pop()
			return false, inFrameset
		case "noframes":
			return c.useRulesFor(t, inHead)
		}
	case endTagToken:
		if t.TagName == "frameset" {
			if c.currentNodeIs("html") {
				c.err(t, ErrUnexpectedEndTag)
				return false, inFrameset
			}
			c.pop()
			if !c.fragment && !c.currentNodeIs("frameset") {
				return false, afterFrameset
			}
			return false, inFrameset
		}
	case endOfFileToken:
		if !c.currentNodeIs("html") {
			c.err(t, ErrUnexpectedEOF)
		}
		c.stop()
		return false, inFrameset
	}
	c.err(t, ErrUnexpectedToken)
	return false, inFrameset
}

func (c *treeConstructor) afterFramesetModeHandler(t *Token) (bool, insertionMode) {
	switch t.Type {
	case characterToken:
		if t.isWhitespace() {
			c.insertCharacter(t)
			return false, afterFrameset
		}
	case commentToken:
		c.insertComment(t)
		return false, afterFrameset
	case doctypeToken:
		c.err(t, ErrUnexpectedDoctype)
		return false, afterFrameset
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inBody)
		case "noframes":
			return c.useRulesFor(t, inHead)
		}
	case endTagToken:
		if t.TagName == "html" {
			return false, afterAfterFrameset
		}
	case endOfFileToken:
		c.stop()
		return false, afterFrameset
	}
	c.err(t, ErrUnexpectedToken)
	return false, afterFrameset
}

func (c *treeConstructor) afterAfterBodyModeHandler(t *Token) (bool, insertionMode) {
	switch t.Type {
	case commentToken:
		c.insertCommentAsLastChildOf(c.doc.Root(), t)
		return false, afterAfterBody
	case doctypeToken:
		return c.useRulesFor(t, inBody)
	case characterToken:
		if t.isWhitespace() {
			return c.useRulesFor(t, inBody)
		}
	case startTagToken:
		if t.TagName == "html" {
			return c.useRulesFor(t, inBody)
		}
	case endOfFileToken:
		c.stop()
		return false, afterAfterBody
	}
	c.err(t, ErrUnexpectedToken)
	return true, inBody
}

func (c *treeConstructor) afterAfterFramesetModeHandler(t *Token) (bool, insertionMode) {
	switch t.Type {
	case commentToken:
		c.insertCommentAsLastChildOf(c.doc.Root(), t)
		return false, afterAfterFrameset
	case doctypeToken:
		return c.useRulesFor(t, inBody)
	case characterToken:
		if t.isWhitespace() {
			return c.useRulesFor(t, inBody)
		}
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inBody)
		case "noframes":
			return c.useRulesFor(t, inHead)
		}
	case endOfFileToken:
		c.stop()
		return false, afterAfterFrameset
	}
	c.err(t, ErrUnexpectedToken)
	return false, afterAfterFrameset
}
