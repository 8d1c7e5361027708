// Package parser implements an error-tolerant HTML parser: a streaming
// tokenizer feeding a tree constructor that builds an arena-backed document
// while recording every recoverable parse error it encounters.
package parser

import (
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/jhendrix/webparse/parser/dom"
)

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithScripting controls the scripting flag. It decides whether <noscript>
// content is parsed as markup or as raw text.
func WithScripting(enabled bool) Option {
	return func(p *Parser) { p.tc.scripting = enabled }
}

// WithLogger replaces the package logger, which is silent by default.
func WithLogger(l *logrus.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			log = l
		}
	}
}

// WithScriptPause makes the parser pause after each completed <script>
// element. Feed and Finish then return ErrPaused; the caller inspects
// PendingScript, runs the script and calls ResumeAfterScript.
func WithScriptPause() Option {
	return func(p *Parser) { p.pauseOnScript = true }
}

// Parser drives the tokenizer and tree constructor over incrementally fed
// input. The zero value is not usable; construct with New.
type Parser struct {
	in   *inputStream
	tk   *Tokenizer
	tc   *treeConstructor
	sink *ErrorSink
	doc  *dom.Document

	pauseOnScript bool
	pendingScript dom.NodeRef

	paused    bool
	aborted   bool
	completed bool
}

// New returns a parser ready to accept input through Feed.
func New(opts ...Option) *Parser {
	sink := &ErrorSink{}
	in := newInputStream(sink)
	tk := newTokenizer(in, sink)
	doc := dom.NewDocument()
	p := &Parser{
		in:            in,
		tk:            tk,
		tc:            newTreeConstructor(doc, tk, sink),
		sink:          sink,
		doc:           doc,
		pendingScript: dom.InvalidRef,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads r to completion and parses it in one shot.
func Parse(r io.Reader, opts ...Option) (*dom.Document, []ParseError, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading input")
	}
	return ParseString(string(data), opts...)
}

// ParseString parses a complete document held in memory.
func ParseString(input string, opts ...Option) (*dom.Document, []ParseError, error) {
	p := New(opts...)
	if err := p.Feed(input); err != nil {
		return p.doc, p.sink.Errors(), err
	}
	return p.Finish()
}

// Feed appends a chunk of input and tokenizes as far as the buffered input
// allows. A tag or character reference split across chunk boundaries is
// carried over and completed by the next Feed. Returns ErrPaused when a
// script pause point was reached before the chunk was exhausted.
func (p *Parser) Feed(chunk string) error {
	if p.completed {
		return ErrFinished
	}
	if p.aborted {
		return ErrAborted
	}
	p.in.append(chunk)
	if p.paused {
		return ErrPaused
	}
	return p.pump()
}

// Finish marks the end of input, drives the parse to completion and returns
// the document together with the accumulated parse errors.
func (p *Parser) Finish() (*dom.Document, []ParseError, error) {
	if p.aborted {
		return p.doc, p.sink.Errors(), ErrAborted
	}
	if p.paused {
		return p.doc, p.sink.Errors(), ErrPaused
	}
	if !p.completed {
		p.in.markEOF()
		if err := p.pump(); err != nil {
			return p.doc, p.sink.Errors(), err
		}
		if err := invariant(p.completed, "input exhausted but tokenizer did not finish"); err != nil {
			return p.doc, p.sink.Errors(), err
		}
	}
	return p.doc, p.sink.Errors(), nil
}

// Abort stops the parse. The document built so far stays readable but is
// never marked complete.
func (p *Parser) Abort() {
	p.aborted = true
	p.paused = false
}

// PendingScript returns the <script> element the parser paused on, or an
// invalid reference when it is not paused.
func (p *Parser) PendingScript() dom.NodeRef {
	return p.pendingScript
}

// ResumeAfterScript continues parsing after a script pause. Input fed while
// paused has already been buffered and is processed now.
func (p *Parser) ResumeAfterScript() error {
	if p.aborted {
		return ErrAborted
	}
	if !p.paused {
		return errors.New("parser is not paused")
	}
	p.paused = false
	p.pendingScript = dom.InvalidRef
	return p.pump()
}

// Document returns the document under construction. It is valid to inspect
// at any time; Complete is only set once Finish succeeds.
func (p *Parser) Document() *dom.Document {
	return p.doc
}

// Errors returns the parse errors recorded so far.
func (p *Parser) Errors() []ParseError {
	return p.sink.Errors()
}

func (p *Parser) pump() error {
	for {
		tok, status := p.tk.next()
		switch status {
		case tokStarved:
			return nil
		case tokDone:
			p.completed = true
			p.doc.Complete = true
			return nil
		}
		p.tc.processToken(&tok)
		if p.tc.stopped && tok.Type == endOfFileToken {
			p.completed = true
			p.doc.Complete = true
			return nil
		}
		if p.pauseOnScript && p.tc.scriptReady.Valid() {
			p.pendingScript = p.tc.scriptReady
			p.tc.scriptReady = dom.InvalidRef
			p.paused = true
			return ErrPaused
		}
		p.tc.scriptReady = dom.InvalidRef
	}
}

// ParseFragment parses input in the context of an existing element, the way
// innerHTML does. contextTag is the lowercase tag name of an HTML-namespace
// context element; the returned refs are the parsed top-level children.
func ParseFragment(input, contextTag string, opts ...Option) (*dom.Document, []dom.NodeRef, []ParseError, error) {
	p := New(opts...)
	c := p.tc

	ctx := p.doc.CreateElement(contextTag, dom.HTMLNamespace, nil)
	c.fragment = true
	c.contextRef = ctx

	switch contextTag {
	case "title", "textarea":
		p.tk.switchTo(rcDataState)
	case "style", "xmp", "iframe", "noembed", "noframes":
		p.tk.switchTo(rawTextState)
	case "script":
		p.tk.switchTo(scriptDataState)
	case "noscript":
		if c.scripting {
			p.tk.switchTo(rawTextState)
		}
	case "plaintext":
		p.tk.switchTo(plaintextState)
	}
	p.tk.setLastStartTag(contextTag)

	root := p.doc.CreateElement("html", dom.HTMLNamespace, nil)
	p.doc.AppendChild(p.doc.Root(), root)
	c.oe = append(c.oe, root)
	if contextTag == "template" {
		c.templateModes = append(c.templateModes, inTemplate)
	}
	c.resetInsertionMode()
	for anc := ctx; anc.Valid(); anc = p.doc.ParentOf(anc) {
		if p.doc.Node(anc).IsElement("form") {
			c.form = anc
			break
		}
	}

	if err := p.Feed(input); err != nil {
		return p.doc, nil, p.sink.Errors(), err
	}
	if _, _, err := p.Finish(); err != nil {
		return p.doc, nil, p.sink.Errors(), err
	}
	children := append([]dom.NodeRef(nil), p.doc.ChildrenOf(root)...)
	return p.doc, children, p.sink.Errors(), nil
}
