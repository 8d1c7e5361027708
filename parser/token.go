package parser

import (
	"strings"

	"github.com/jhendrix/webparse/parser/dom"
)

type tokenType uint8

const (
	characterToken tokenType = iota
	startTagToken
	endTagToken
	commentToken
	doctypeToken
	endOfFileToken
)

func (t tokenType) String() string {
	switch t {
	case characterToken:
		return "character"
	case startTagToken:
		return "start-tag"
	case endTagToken:
		return "end-tag"
	case commentToken:
		return "comment"
	case doctypeToken:
		return "doctype"
	case endOfFileToken:
		return "eof"
	}
	return "unknown"
}

type tagType uint8

const (
	startTag tagType = iota
	endTag
)

// Token is one tokenizer output, consumed immediately by the tree
// constructor.
type Token struct {
	Type        tokenType
	Data        string // character and comment tokens
	TagName     string
	Attributes  []dom.Attribute // ordered, first occurrence wins
	SelfClosing bool

	// doctype tokens
	Name        string
	PublicID    string
	SystemID    string
	HasPublicID bool
	HasSystemID bool
	ForceQuirks bool

	Position Position
}

// Attr returns the value of the named attribute and whether it is present.
func (t *Token) Attr(name string) (string, bool) {
	for _, a := range t.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (t *Token) isWhitespace() bool {
	if t.Type != characterToken {
		return false
	}
	switch t.Data {
	case "\u0009", "\u000A", "\u000C", "\u000D", "\u0020":
		return true
	}
	return false
}

// tokenBuilder accumulates the pieces of the token under construction. One
// builder lives for the whole tokenization; Reset starts the next token.
type tokenBuilder struct {
	attributes    []dom.Attribute
	attrName      strings.Builder
	attrValue     strings.Builder
	name          strings.Builder
	data          strings.Builder
	tempBuffer    []rune
	publicID      strings.Builder
	systemID      strings.Builder
	hasPublicID   bool
	hasSystemID   bool
	selfClosing   bool
	forceQuirks   bool
	duplicateAttr bool
	curTagType    tagType
	charRef       int
	startPos      Position
}

func (b *tokenBuilder) reset(at Position) {
	b.attributes = nil
	b.attrName.Reset()
	b.attrValue.Reset()
	b.name.Reset()
	b.data.Reset()
	b.publicID.Reset()
	b.systemID.Reset()
	b.hasPublicID = false
	b.hasSystemID = false
	b.selfClosing = false
	b.forceQuirks = false
	b.duplicateAttr = false
	b.startPos = at
}

func (b *tokenBuilder) writeName(r rune)        { b.name.WriteRune(r) }
func (b *tokenBuilder) writeData(r rune)        { b.data.WriteRune(r) }
func (b *tokenBuilder) writeAttrName(r rune)    { b.attrName.WriteRune(r) }
func (b *tokenBuilder) writeAttrValue(r rune)   { b.attrValue.WriteRune(r) }
func (b *tokenBuilder) writePublicID(r rune)    { b.publicID.WriteRune(r) }
func (b *tokenBuilder) writeSystemID(r rune)    { b.systemID.WriteRune(r) }
func (b *tokenBuilder) markPublicID()           { b.hasPublicID = true }
func (b *tokenBuilder) markSystemID()           { b.hasSystemID = true }
func (b *tokenBuilder) enableSelfClosing()      { b.selfClosing = true }
func (b *tokenBuilder) enableForceQuirks()      { b.forceQuirks = true }
func (b *tokenBuilder) writeTempBuffer(r rune)  { b.tempBuffer = append(b.tempBuffer, r) }
func (b *tokenBuilder) resetTempBuffer()        { b.tempBuffer = b.tempBuffer[:0] }
func (b *tokenBuilder) tempBufferString() string { return string(b.tempBuffer) }

// startAttribute begins a fresh name/value pair, committing any pair still
// in flight.
func (b *tokenBuilder) startAttribute() {
	b.commitAttribute()
}

// markDuplicateAttribute flags the in-flight attribute for dropping when its
// name already appeared on this tag. It reports whether the name was a
// duplicate so the caller can record the parse error.
func (b *tokenBuilder) markDuplicateAttribute() bool {
	name := b.attrName.String()
	for _, a := range b.attributes {
		if a.Name == name {
			b.duplicateAttr = true
			return true
		}
	}
	return false
}

// commitAttribute finishes the current name/value pair. The first occurrence
// of a name wins; duplicates are discarded.
func (b *tokenBuilder) commitAttribute() {
	name := b.attrName.String()
	defer func() {
		b.attrName.Reset()
		b.attrValue.Reset()
		b.duplicateAttr = false
	}()
	if name == "" || b.duplicateAttr {
		return
	}
	for _, a := range b.attributes {
		if a.Name == name {
			return
		}
	}
	b.attributes = append(b.attributes, dom.Attribute{Name: name, Value: b.attrValue.String()})
}

func (b *tokenBuilder) setCharRef(v int)  { b.charRef = v }
// addCharRef and multCharRef saturate above the Unicode range so that
// arbitrarily long references cannot wrap the accumulator past the
// outside-unicode-range check.
func (b *tokenBuilder) addCharRef(v int) {
	if b.charRef += v; b.charRef > 0x110000 {
		b.charRef = 0x110000
	}
}

func (b *tokenBuilder) multCharRef(v int) {
	if b.charRef *= v; b.charRef > 0x110000 {
		b.charRef = 0x110000
	}
}

func (b *tokenBuilder) getCharRef() int { return b.charRef }

func (b *tokenBuilder) startTagToken() Token {
	return Token{
		Type:        startTagToken,
		TagName:     b.name.String(),
		Attributes:  b.attributes,
		SelfClosing: b.selfClosing,
		Position:    b.startPos,
	}
}

func (b *tokenBuilder) endTagToken() Token {
	return Token{
		Type:        endTagToken,
		TagName:     b.name.String(),
		Attributes:  b.attributes,
		SelfClosing: b.selfClosing,
		Position:    b.startPos,
	}
}

func (b *tokenBuilder) characterToken(r rune, at Position) Token {
	return Token{Type: characterToken, Data: string(r), Position: at}
}

func (b *tokenBuilder) commentToken() Token {
	return Token{Type: commentToken, Data: b.data.String(), Position: b.startPos}
}

func (b *tokenBuilder) doctypeToken() Token {
	return Token{
		Type:        doctypeToken,
		Name:        b.name.String(),
		PublicID:    b.publicID.String(),
		SystemID:    b.systemID.String(),
		HasPublicID: b.hasPublicID,
		HasSystemID: b.hasSystemID,
		ForceQuirks: b.forceQuirks,
		Position:    b.startPos,
	}
}

func (b *tokenBuilder) eofToken(at Position) Token {
	return Token{Type: endOfFileToken, Position: at}
}
