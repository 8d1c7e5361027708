package parser

import "strings"

type tokenizerState uint8

const (
	dataState tokenizerState = iota
	rcDataState
	rawTextState
	scriptDataState
	plaintextState
	tagOpenState
	endTagOpenState
	tagNameState
	rcDataLessThanSignState
	rcDataEndTagOpenState
	rcDataEndTagNameState
	rawTextLessThanSignState
	rawTextEndTagOpenState
	rawTextEndTagNameState
	scriptDataLessThanSignState
	scriptDataEndTagOpenState
	scriptDataEndTagNameState
	scriptDataEscapeStartState
	scriptDataEscapeStartDashState
	scriptDataEscapedState
	scriptDataEscapedDashState
	scriptDataEscapedDashDashState
	scriptDataEscapedLessThanSignState
	scriptDataEscapedEndTagOpenState
	scriptDataEscapedEndTagNameState
	scriptDataDoubleEscapeStartState
	scriptDataDoubleEscapedState
	scriptDataDoubleEscapedDashState
	scriptDataDoubleEscapedDashDashState
	scriptDataDoubleEscapedLessThanSignState
	scriptDataDoubleEscapeEndState
	beforeAttributeNameState
	attributeNameState
	afterAttributeNameState
	beforeAttributeValueState
	attributeValueDoubleQuotedState
	attributeValueSingleQuotedState
	attributeValueUnquotedState
	afterAttributeValueQuotedState
	selfClosingStartTagState
	bogusCommentState
	markupDeclarationOpenState
	commentStartState
	commentStartDashState
	commentState
	commentLessThanSignState
	commentLessThanSignBangState
	commentLessThanSignBangDashState
	commentLessThanSignBangDashDashState
	commentEndDashState
	commentEndState
	commentEndBangState
	doctypeState
	beforeDoctypeNameState
	doctypeNameState
	afterDoctypeNameState
	afterDoctypePublicKeywordState
	beforeDoctypePublicIdentifierState
	doctypePublicIdentifierDoubleQuotedState
	doctypePublicIdentifierSingleQuotedState
	afterDoctypePublicIdentifierState
	betweenDoctypePublicAndSystemIdentifiersState
	afterDoctypeSystemKeywordState
	beforeDoctypeSystemIdentifierState
	doctypeSystemIdentifierDoubleQuotedState
	doctypeSystemIdentifierSingleQuotedState
	afterDoctypeSystemIdentifierState
	bogusDoctypeState
	cdataSectionState
	cdataSectionBracketState
	cdataSectionEndState
	characterReferenceState
	namedCharacterReferenceState
	ambiguousAmpersandState
	numericCharacterReferenceState
	hexadecimalCharacterReferenceStartState
	decimalCharacterReferenceStartState
	hexadecimalCharacterReferenceState
	decimalCharacterReferenceState
)

var tokenizerStateNames = map[tokenizerState]string{
	dataState:                                "data",
	rcDataState:                              "rcdata",
	rawTextState:                             "rawtext",
	scriptDataState:                          "script-data",
	plaintextState:                           "plaintext",
	tagOpenState:                             "tag-open",
	endTagOpenState:                          "end-tag-open",
	tagNameState:                             "tag-name",
	rcDataLessThanSignState:                  "rcdata-less-than-sign",
	rcDataEndTagOpenState:                    "rcdata-end-tag-open",
	rcDataEndTagNameState:                    "rcdata-end-tag-name",
	rawTextLessThanSignState:                 "rawtext-less-than-sign",
	rawTextEndTagOpenState:                   "rawtext-end-tag-open",
	rawTextEndTagNameState:                   "rawtext-end-tag-name",
	scriptDataLessThanSignState:              "script-data-less-than-sign",
	scriptDataEndTagOpenState:                "script-data-end-tag-open",
	scriptDataEndTagNameState:                "script-data-end-tag-name",
	scriptDataEscapeStartState:               "script-data-escape-start",
	scriptDataEscapeStartDashState:           "script-data-escape-start-dash",
	scriptDataEscapedState:                   "script-data-escaped",
	scriptDataEscapedDashState:               "script-data-escaped-dash",
	scriptDataEscapedDashDashState:           "script-data-escaped-dash-dash",
	scriptDataEscapedLessThanSignState:       "script-data-escaped-less-than-sign",
	scriptDataEscapedEndTagOpenState:         "script-data-escaped-end-tag-open",
	scriptDataEscapedEndTagNameState:         "script-data-escaped-end-tag-name",
	scriptDataDoubleEscapeStartState:         "script-data-double-escape-start",
	scriptDataDoubleEscapedState:             "script-data-double-escaped",
	scriptDataDoubleEscapedDashState:         "script-data-double-escaped-dash",
	scriptDataDoubleEscapedDashDashState:     "script-data-double-escaped-dash-dash",
	scriptDataDoubleEscapedLessThanSignState: "script-data-double-escaped-less-than-sign",
	scriptDataDoubleEscapeEndState:           "script-data-double-escape-end",
	beforeAttributeNameState:                 "before-attribute-name",
	attributeNameState:                       "attribute-name",
	afterAttributeNameState:                  "after-attribute-name",
	beforeAttributeValueState:                "before-attribute-value",
	attributeValueDoubleQuotedState:          "attribute-value-double-quoted",
	attributeValueSingleQuotedState:          "attribute-value-single-quoted",
	attributeValueUnquotedState:              "attribute-value-unquoted",
	afterAttributeValueQuotedState:           "after-attribute-value-quoted",
	selfClosingStartTagState:                 "self-closing-start-tag",
	bogusCommentState:                        "bogus-comment",
	markupDeclarationOpenState:               "markup-declaration-open",
	commentStartState:                        "comment-start",
	commentStartDashState:                    "comment-start-dash",
	commentState:                             "comment",
	commentLessThanSignState:                 "comment-less-than-sign",
	commentLessThanSignBangState:             "comment-less-than-sign-bang",
	commentLessThanSignBangDashState:         "comment-less-than-sign-bang-dash",
	commentLessThanSignBangDashDashState:     "comment-less-than-sign-bang-dash-dash",
	commentEndDashState:                      "comment-end-dash",
	commentEndState:                          "comment-end",
	commentEndBangState:                      "comment-end-bang",
	doctypeState:                             "doctype",
	beforeDoctypeNameState:                   "before-doctype-name",
	doctypeNameState:                         "doctype-name",
	afterDoctypeNameState:                    "after-doctype-name",
	afterDoctypePublicKeywordState:           "after-doctype-public-keyword",
	beforeDoctypePublicIdentifierState:       "before-doctype-public-identifier",
	doctypePublicIdentifierDoubleQuotedState: "doctype-public-identifier-double-quoted",
	doctypePublicIdentifierSingleQuotedState: "doctype-public-identifier-single-quoted",
	afterDoctypePublicIdentifierState:        "after-doctype-public-identifier",
	betweenDoctypePublicAndSystemIdentifiersState: "between-doctype-public-and-system-identifiers",
	afterDoctypeSystemKeywordState:                "after-doctype-system-keyword",
	beforeDoctypeSystemIdentifierState:            "before-doctype-system-identifier",
	doctypeSystemIdentifierDoubleQuotedState:      "doctype-system-identifier-double-quoted",
	doctypeSystemIdentifierSingleQuotedState:      "doctype-system-identifier-single-quoted",
	afterDoctypeSystemIdentifierState:             "after-doctype-system-identifier",
	bogusDoctypeState:                             "bogus-doctype",
	cdataSectionState:                             "cdata-section",
	cdataSectionBracketState:                      "cdata-section-bracket",
	cdataSectionEndState:                          "cdata-section-end",
	characterReferenceState:                       "character-reference",
	namedCharacterReferenceState:                  "named-character-reference",
	ambiguousAmpersandState:                       "ambiguous-ampersand",
	numericCharacterReferenceState:                "numeric-character-reference",
	hexadecimalCharacterReferenceStartState:       "hexadecimal-character-reference-start",
	decimalCharacterReferenceStartState:           "decimal-character-reference-start",
	hexadecimalCharacterReferenceState:            "hexadecimal-character-reference",
	decimalCharacterReferenceState:                "decimal-character-reference",
}

func (s tokenizerState) String() string {
	if name, ok := tokenizerStateNames[s]; ok {
		return name
	}
	return "unknown"
}

func wasConsumedByAttribute(state tokenizerState) bool {
	switch state {
	case attributeValueDoubleQuotedState, attributeValueSingleQuotedState, attributeValueUnquotedState:
		return true
	}
	return false
}

type tokStatus uint8

const (
	tokOK tokStatus = iota
	tokStarved
	tokDone
)

type stateHandler func(r rune, eof bool) (bool, tokenizerState)

// Tokenizer walks the input stream one code point at a time, producing tokens
// for the tree constructor. Each named state has its own handler; a handler
// returns whether the current code point should be reconsumed and the state
// to process it in next.
type Tokenizer struct {
	in          *inputStream
	sink        *ErrorSink
	builder     tokenBuilder
	state       tokenizerState
	returnState tokenizerState
	out         []Token

	// lastEmittedStartTagName decides whether an end tag seen in RCDATA,
	// RAWTEXT or script data is the appropriate one.
	lastEmittedStartTagName string

	// starved is set by a handler that needs more buffered input than the
	// stream currently holds. The pump unreads the triggering code point and
	// reports starvation to the caller.
	starved bool
	done    bool

	// inForeignContent is consulted at "<![CDATA[". The tree constructor
	// wires it to the adjusted current node check.
	inForeignContent func() bool
}

func newTokenizer(in *inputStream, sink *ErrorSink) *Tokenizer {
	return &Tokenizer{
		in:               in,
		sink:             sink,
		state:            dataState,
		inForeignContent: func() bool { return false },
	}
}

// switchTo changes the tokenizer state from outside the state machine. The
// tree constructor uses it after seeing start tags such as <title>,
// <textarea>, <style>, <script> and <plaintext>.
func (t *Tokenizer) switchTo(state tokenizerState) {
	log.Tracef("tokenizer: external switch %s -> %s", t.state, state)
	t.state = state
}

// setLastStartTag seeds the appropriate end tag check for fragment parsing.
func (t *Tokenizer) setLastStartTag(name string) {
	t.lastEmittedStartTagName = name
}

// next returns the next token. tokStarved means the stream ran dry before a
// code point could be processed; feeding more input (or marking EOF) and
// calling next again resumes exactly where tokenization left off.
func (t *Tokenizer) next() (Token, tokStatus) {
	for {
		if len(t.out) > 0 {
			tok := t.out[0]
			t.out = t.out[1:]
			if tok.Type == endOfFileToken {
				t.done = true
			}
			return tok, tokOK
		}
		if t.done {
			return Token{}, tokDone
		}
		r, eof, ok := t.in.next()
		if !ok {
			return Token{}, tokStarved
		}
		t.process(r, eof)
		if t.starved {
			t.starved = false
			t.in.unread()
			return Token{}, tokStarved
		}
	}
}

func (t *Tokenizer) process(r rune, eof bool) {
	reconsume := true
	for reconsume {
		var next tokenizerState
		reconsume, next = t.stateToHandler(t.state)(r, eof)
		if t.starved {
			return
		}
		if next != t.state {
			log.Tracef("tokenizer: %s -> %s on %q", t.state, next, r)
		}
		t.state = next
	}
}

func (t *Tokenizer) stateToHandler(state tokenizerState) stateHandler {
	switch state {
	case dataState:
		return t.dataStateParser
	case rcDataState:
		return t.rcDataStateParser
	case rawTextState:
		return t.rawTextStateParser
	case scriptDataState:
		return t.scriptDataStateParser
	case plaintextState:
		return t.plaintextStateParser
	case tagOpenState:
		return t.tagOpenStateParser
	case endTagOpenState:
		return t.endTagOpenStateParser
	case tagNameState:
		return t.tagNameStateParser
	case rcDataLessThanSignState:
		return t.rcDataLessThanSignStateParser
	case rcDataEndTagOpenState:
		return t.rcDataEndTagOpenStateParser
	case rcDataEndTagNameState:
		return t.rcDataEndTagNameStateParser
	case rawTextLessThanSignState:
		return t.rawTextLessThanSignStateParser
	case rawTextEndTagOpenState:
		return t.rawTextEndTagOpenStateParser
	case rawTextEndTagNameState:
		return t.rawTextEndTagNameStateParser
	case scriptDataLessThanSignState:
		return t.scriptDataLessThanSignStateParser
	case scriptDataEndTagOpenState:
		return t.scriptDataEndTagOpenStateParser
	case scriptDataEndTagNameState:
		return t.scriptDataEndTagNameStateParser
	case scriptDataEscapeStartState:
		return t.scriptDataEscapeStartStateParser
	case scriptDataEscapeStartDashState:
		return t.scriptDataEscapeStartDashStateParser
	case scriptDataEscapedState:
		return t.scriptDataEscapedStateParser
	case scriptDataEscapedDashState:
		return t.scriptDataEscapedDashStateParser
	case scriptDataEscapedDashDashState:
		return t.scriptDataEscapedDashDashStateParser
	case scriptDataEscapedLessThanSignState:
		return t.scriptDataEscapedLessThanSignStateParser
	case scriptDataEscapedEndTagOpenState:
		return t.scriptDataEscapedEndTagOpenStateParser
	case scriptDataEscapedEndTagNameState:
		return t.scriptDataEscapedEndTagNameStateParser
	case scriptDataDoubleEscapeStartState:
		return t.scriptDataDoubleEscapeStartStateParser
	case scriptDataDoubleEscapedState:
		return t.scriptDataDoubleEscapedStateParser
	case scriptDataDoubleEscapedDashState:
		return t.scriptDataDoubleEscapedDashStateParser
	case scriptDataDoubleEscapedDashDashState:
		return t.scriptDataDoubleEscapedDashDashStateParser
	case scriptDataDoubleEscapedLessThanSignState:
		return t.scriptDataDoubleEscapedLessThanSignStateParser
	case scriptDataDoubleEscapeEndState:
		return t.scriptDataDoubleEscapeEndStateParser
	case beforeAttributeNameState:
		return t.beforeAttributeNameStateParser
	case attributeNameState:
		return t.attributeNameStateParser
	case afterAttributeNameState:
		return t.afterAttributeNameStateParser
	case beforeAttributeValueState:
		return t.beforeAttributeValueStateParser
	case attributeValueDoubleQuotedState:
		return t.attributeValueDoubleQuotedStateParser
	case attributeValueSingleQuotedState:
		return t.attributeValueSingleQuotedStateParser
	case attributeValueUnquotedState:
		return t.attributeValueUnquotedStateParser
	case afterAttributeValueQuotedState:
		return t.afterAttributeValueQuotedStateParser
	case selfClosingStartTagState:
		return t.selfClosingStartTagStateParser
	case bogusCommentState:
		return t.bogusCommentStateParser
	case markupDeclarationOpenState:
		return t.markupDeclarationOpenStateParser
	case commentStartState:
		return t.commentStartStateParser
	case commentStartDashState:
		return t.commentStartDashStateParser
	case commentState:
		return t.commentStateParser
	case commentLessThanSignState:
		return t.commentLessThanSignStateParser
	case commentLessThanSignBangState:
		return t.commentLessThanSignBangStateParser
	case commentLessThanSignBangDashState:
		return t.commentLessThanSignBangDashStateParser
	case commentLessThanSignBangDashDashState:
		return t.commentLessThanSignBangDashDashStateParser
	case commentEndDashState:
		return t.commentEndDashStateParser
	case commentEndState:
		return t.commentEndStateParser
	case commentEndBangState:
		return t.commentEndBangStateParser
	case doctypeState:
		return t.doctypeStateParser
	case beforeDoctypeNameState:
		return t.beforeDoctypeNameStateParser
	case doctypeNameState:
		return t.doctypeNameStateParser
	case afterDoctypeNameState:
		return t.afterDoctypeNameStateParser
	case afterDoctypePublicKeywordState:
		return t.afterDoctypePublicKeywordStateParser
	case beforeDoctypePublicIdentifierState:
		return t.beforeDoctypePublicIdentifierStateParser
	case doctypePublicIdentifierDoubleQuotedState:
		return t.doctypePublicIdentifierDoubleQuotedStateParser
	case doctypePublicIdentifierSingleQuotedState:
		return t.doctypePublicIdentifierSingleQuotedStateParser
	case afterDoctypePublicIdentifierState:
		return t.afterDoctypePublicIdentifierStateParser
	case betweenDoctypePublicAndSystemIdentifiersState:
		return t.betweenDoctypePublicAndSystemIdentifiersStateParser
	case afterDoctypeSystemKeywordState:
		return t.afterDoctypeSystemKeywordStateParser
	case beforeDoctypeSystemIdentifierState:
		return t.beforeDoctypeSystemIdentifierStateParser
	case doctypeSystemIdentifierDoubleQuotedState:
		return t.doctypeSystemIdentifierDoubleQuotedStateParser
	case doctypeSystemIdentifierSingleQuotedState:
		return t.doctypeSystemIdentifierSingleQuotedStateParser
	case afterDoctypeSystemIdentifierState:
		return t.afterDoctypeSystemIdentifierStateParser
	case bogusDoctypeState:
		return t.bogusDoctypeStateParser
	case cdataSectionState:
		return t.cdataSectionStateParser
	case cdataSectionBracketState:
		return t.cdataSectionBracketStateParser
	case cdataSectionEndState:
		return t.cdataSectionEndStateParser
	case characterReferenceState:
		return t.characterReferenceStateParser
	case namedCharacterReferenceState:
		return t.namedCharacterReferenceStateParser
	case ambiguousAmpersandState:
		return t.ambiguousAmpersandStateParser
	case numericCharacterReferenceState:
		return t.numericCharacterReferenceStateParser
	case hexadecimalCharacterReferenceStartState:
		return t.hexadecimalCharacterReferenceStartStateParser
	case decimalCharacterReferenceStartState:
		return t.decimalCharacterReferenceStartStateParser
	case hexadecimalCharacterReferenceState:
		return t.hexadecimalCharacterReferenceStateParser
	case decimalCharacterReferenceState:
		return t.decimalCharacterReferenceStateParser
	}
	return t.dataStateParser
}

func (t *Tokenizer) err(kind ErrorKind) {
	t.sink.add(t.in.position(), kind)
}

func (t *Tokenizer) charToken(r rune) Token {
	return t.builder.characterToken(r, t.in.position())
}

func (t *Tokenizer) emit(tokens ...Token) {
	for _, token := range tokens {
		if token.Type == startTagToken {
			t.lastEmittedStartTagName = token.TagName
		}
		t.out = append(t.out, token)
	}
}

// emitCurrentTag finishes the attribute in flight, applies the end tag
// restrictions and emits the built tag token.
func (t *Tokenizer) emitCurrentTag() tokenizerState {
	t.builder.commitAttribute()
	if t.builder.curTagType == endTag {
		tok := t.builder.endTagToken()
		if len(tok.Attributes) > 0 {
			t.err(ErrEndTagWithAttributes)
			tok.Attributes = nil
		}
		if tok.SelfClosing {
			t.err(ErrEndTagWithTrailingSolidus)
			tok.SelfClosing = false
		}
		t.emit(tok)
	} else {
		t.emit(t.builder.startTagToken())
	}
	return dataState
}

func (t *Tokenizer) isApprEndTagToken() bool {
	return t.lastEmittedStartTagName == t.builder.name.String()
}

// finishAttrName runs the duplicate check the moment an attribute name is
// complete.
func (t *Tokenizer) finishAttrName() {
	if t.builder.markDuplicateAttribute() {
		t.err(ErrDuplicateAttribute)
	}
}

func (t *Tokenizer) flushCodePointsAsCharacterReference() {
	if wasConsumedByAttribute(t.returnState) {
		for _, v := range t.builder.tempBuffer {
			t.builder.writeAttrValue(v)
		}
	} else {
		for _, v := range t.builder.tempBuffer {
			t.emit(t.charToken(v))
		}
	}
}

// starve signals that the current code point cannot be processed until more
// input arrives. The handler must return its own state unchanged.
func (t *Tokenizer) starve() (bool, tokenizerState) {
	t.starved = true
	return false, t.state
}

func (t *Tokenizer) dataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.emit(t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '&':
		t.returnState = dataState
		return false, characterReferenceState
	case '<':
		return false, tagOpenState
	case '\u0000':
		t.err(ErrUnexpectedNullCharacter)
		t.emit(t.charToken(r))
		return false, dataState
	default:
		t.emit(t.charToken(r))
		return false, dataState
	}
}

func (t *Tokenizer) rcDataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.emit(t.builder.eofToken(t.in.position()))
		return false, rcDataState
	}
	switch r {
	case '&':
		t.returnState = rcDataState
		return false, characterReferenceState
	case '<':
		return false, rcDataLessThanSignState
	case '\u0000':
		t.err(ErrUnexpectedNullCharacter)
		t.emit(t.charToken('\uFFFD'))
		return false, rcDataState
	default:
		t.emit(t.charToken(r))
		return false, rcDataState
	}
}

func (t *Tokenizer) rawTextStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.emit(t.builder.eofToken(t.in.position()))
		return false, rawTextState
	}
	switch r {
	case '<':
		return false, rawTextLessThanSignState
	case '\u0000':
		t.err(ErrUnexpectedNullCharacter)
		t.emit(t.charToken('\uFFFD'))
		return false, rawTextState
	default:
		t.emit(t.charToken(r))
		return false, rawTextState
	}
}

func (t *Tokenizer) scriptDataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.emit(t.builder.eofToken(t.in.position()))
		return false, scriptDataState
	}
	switch r {
	case '<':
		return false, scriptDataLessThanSignState
	case '\u0000':
		t.err(ErrUnexpectedNullCharacter)
		t.emit(t.charToken('\uFFFD'))
		return false, scriptDataState
	default:
		t.emit(t.charToken(r))
		return false, scriptDataState
	}
}

func (t *Tokenizer) plaintextStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.emit(t.builder.eofToken(t.in.position()))
		return false, plaintextState
	}
	switch r {
	case '\u0000':
		t.err(ErrUnexpectedNullCharacter)
		t.emit(t.charToken('\uFFFD'))
		return false, plaintextState
	default:
		t.emit(t.charToken(r))
		return false, plaintextState
	}
}

func (t *Tokenizer) tagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFBeforeTagName)
		t.emit(t.charToken('<'), t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '!':
		return false, markupDeclarationOpenState
	case '/':
		return false, endTagOpenState
	case 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z', 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z':
		t.builder.reset(t.in.position())
		t.builder.curTagType = startTag
		return true, tagNameState
	case '?':
		t.err(ErrUnexpectedQuestionMarkTagName)
		t.builder.reset(t.in.position())
		return true, bogusCommentState
	default:
		t.err(ErrInvalidFirstCharacterOfTagName)
		t.emit(t.charToken('<'))
		return true, dataState
	}
}

func (t *Tokenizer) endTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFBeforeTagName)
		t.emit(t.charToken('<'), t.charToken('/'), t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z', 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z':
		t.builder.reset(t.in.position())
		t.builder.curTagType = endTag
		return true, tagNameState
	case '>':
		t.err(ErrMissingEndTagName)
		return false, dataState
	default:
		t.err(ErrInvalidFirstCharacterOfTagName)
		t.builder.reset(t.in.position())
		return true, bogusCommentState
	}
}

func (t *Tokenizer) tagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInTag)
		t.emit(t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', '\u0020':
		return false, beforeAttributeNameState
	case '/':
		return false, selfClosingStartTagState
	case '>':
		return false, t.emitCurrentTag()
	case 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z':
		t.builder.writeName(r + 0x20)
		return false, tagNameState
	case '\u0000':
		t.err(ErrUnexpectedNullCharacter)
		t.builder.writeName('\uFFFD')
		return false, tagNameState
	default:
		t.builder.writeName(r)
		return false, tagNameState
	}
}

func (t *Tokenizer) rcDataLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.emit(t.charToken('<'))
		return true, rcDataState
	}
	switch r {
	case '/':
		t.builder.resetTempBuffer()
		return false, rcDataEndTagOpenState
	default:
		t.emit(t.charToken('<'))
		return true, rcDataState
	}
}

func (t *Tokenizer) defaultRcDataEndTagOpenCase() (bool, tokenizerState) {
	t.emit(t.charToken('<'), t.charToken('/'))
	return true, rcDataState
}

func (t *Tokenizer) rcDataEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return t.defaultRcDataEndTagOpenCase()
	}
	switch r {
	case 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z', 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z':
		t.builder.reset(t.in.position())
		t.builder.curTagType = endTag
		return true, rcDataEndTagNameState
	default:
		return t.defaultRcDataEndTagOpenCase()
	}
}

func (t *Tokenizer) defaultRcDataEndTagNameCase() (bool, tokenizerState) {
	t.emit(t.charToken('<'), t.charToken('/'))
	for _, v := range t.builder.tempBuffer {
		t.emit(t.charToken(v))
	}
	return true, rcDataState
}

func (t *Tokenizer) rcDataEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return t.defaultRcDataEndTagNameCase()
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', '\u0020':
		if t.isApprEndTagToken() {
			return false, beforeAttributeNameState
		}
		return t.defaultRcDataEndTagNameCase()
	case '/':
		if t.isApprEndTagToken() {
			return false, selfClosingStartTagState
		}
		return t.defaultRcDataEndTagNameCase()
	case '>':
		if t.isApprEndTagToken() {
			return false, t.emitCurrentTag()
		}
		return t.defaultRcDataEndTagNameCase()
	case 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z':
		t.builder.writeTempBuffer(r)
		t.builder.writeName(r + 0x20)
		return false, rcDataEndTagNameState
	case 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z':
		t.builder.writeTempBuffer(r)
		t.builder.writeName(r)
		return false, rcDataEndTagNameState
	default:
		return t.defaultRcDataEndTagNameCase()
	}
}

func (t *Tokenizer) rawTextLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.emit(t.charToken('<'))
		return true, rawTextState
	}
	switch r {
	case '/':
		t.builder.resetTempBuffer()
		return false, rawTextEndTagOpenState
	default:
		t.emit(t.charToken('<'))
		return true, rawTextState
	}
}

func (t *Tokenizer) defaultRawTextEndTagOpenCase() (bool, tokenizerState) {
	t.emit(t.charToken('<'), t.charToken('/'))
	return true, rawTextState
}

func (t *Tokenizer) rawTextEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return t.defaultRawTextEndTagOpenCase()
	}
	switch r {
	case 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z', 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z':
		t.builder.reset(t.in.position())
		t.builder.curTagType = endTag
		return true, rawTextEndTagNameState
	default:
		return t.defaultRawTextEndTagOpenCase()
	}
}

func (t *Tokenizer) defaultRawTextEndTagNameCase() (bool, tokenizerState) {
	t.emit(t.charToken('<'), t.charToken('/'))
	for _, v := range t.builder.tempBuffer {
		t.emit(t.charToken(v))
	}
	return true, rawTextState
}

func (t *Tokenizer) rawTextEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return t.defaultRawTextEndTagNameCase()
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', '\u0020':
		if t.isApprEndTagToken() {
			return false, beforeAttributeNameState
		}
		return t.defaultRawTextEndTagNameCase()
	case '/':
		if t.isApprEndTagToken() {
			return false, selfClosingStartTagState
		}
		return t.defaultRawTextEndTagNameCase()
	case '>':
		if t.isApprEndTagToken() {
			return false, t.emitCurrentTag()
		}
		return t.defaultRawTextEndTagNameCase()
	case 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z':
		t.builder.writeTempBuffer(r)
		t.builder.writeName(r + 0x20)
		return false, rawTextEndTagNameState
	case 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z':
		t.builder.writeTempBuffer(r)
		t.builder.writeName(r)
		return false, rawTextEndTagNameState
	default:
		return t.defaultRawTextEndTagNameCase()
	}
}

func (t *Tokenizer) scriptDataLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.emit(t.charToken('<'))
		return true, scriptDataState
	}
	switch r {
	case '/':
		t.builder.resetTempBuffer()
		return false, scriptDataEndTagOpenState
	case '!':
		t.emit(t.charToken('<'), t.charToken('!'))
		return false, scriptDataEscapeStartState
	default:
		t.emit(t.charToken('<'))
		return true, scriptDataState
	}
}

func (t *Tokenizer) scriptDataEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.emit(t.charToken('<'), t.charToken('/'))
		return true, scriptDataState
	}
	switch r {
	case 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z', 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z':
		t.builder.reset(t.in.position())
		t.builder.curTagType = endTag
		return true, scriptDataEndTagNameState
	default:
		t.emit(t.charToken('<'), t.charToken('/'))
		return true, scriptDataState
	}
}

func (t *Tokenizer) defaultScriptDataEndTagNameCase() (bool, tokenizerState) {
	t.emit(t.charToken('<'), t.charToken('/'))
	for _, v := range t.builder.tempBuffer {
		t.emit(t.charToken(v))
	}
	return true, scriptDataState
}

func (t *Tokenizer) scriptDataEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return t.defaultScriptDataEndTagNameCase()
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', '\u0020':
		if t.isApprEndTagToken() {
			return false, beforeAttributeNameState
		}
		return t.defaultScriptDataEndTagNameCase()
	case '/':
		if t.isApprEndTagToken() {
			return false, selfClosingStartTagState
		}
		return t.defaultScriptDataEndTagNameCase()
	case '>':
		if t.isApprEndTagToken() {
			return false, t.emitCurrentTag()
		}
		return t.defaultScriptDataEndTagNameCase()
	case 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z':
		t.builder.writeTempBuffer(r)
		t.builder.writeName(r + 0x20)
		return false, scriptDataEndTagNameState
	case 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z':
		t.builder.writeTempBuffer(r)
		t.builder.writeName(r)
		return false, scriptDataEndTagNameState
	default:
		return t.defaultScriptDataEndTagNameCase()
	}
}

func (t *Tokenizer) scriptDataEscapeStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, scriptDataState
	}
	switch r {
	case '-':
		t.emit(t.charToken('-'))
		return false, scriptDataEscapeStartDashState
	default:
		return true, scriptDataState
	}
}

func (t *Tokenizer) scriptDataEscapeStartDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, scriptDataState
	}
	switch r {
	case '-':
		t.emit(t.charToken('-'))
		return false, scriptDataEscapedDashDashState
	default:
		return true, scriptDataState
	}
}

func (t *Tokenizer) scriptDataEscapedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInScriptCommentLikeText)
		t.emit(t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '-':
		t.emit(t.charToken('-'))
		return false, scriptDataEscapedDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '\u0000':
		t.err(ErrUnexpectedNullCharacter)
		t.emit(t.charToken('\uFFFD'))
		return false, scriptDataEscapedState
	default:
		t.emit(t.charToken(r))
		return false, scriptDataEscapedState
	}
}

func (t *Tokenizer) scriptDataEscapedDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInScriptCommentLikeText)
		t.emit(t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '-':
		t.emit(t.charToken('-'))
		return false, scriptDataEscapedDashDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '\u0000':
		t.err(ErrUnexpectedNullCharacter)
		t.emit(t.charToken('\uFFFD'))
		return false, scriptDataEscapedState
	default:
		t.emit(t.charToken(r))
		return false, scriptDataEscapedState
	}
}

func (t *Tokenizer) scriptDataEscapedDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInScriptCommentLikeText)
		t.emit(t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '-':
		t.emit(t.charToken('-'))
		return false, scriptDataEscapedDashDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '>':
		t.emit(t.charToken('>'))
		return false, scriptDataState
	case '\u0000':
		t.err(ErrUnexpectedNullCharacter)
		t.emit(t.charToken('\uFFFD'))
		return false, scriptDataEscapedState
	default:
		t.emit(t.charToken(r))
		return false, scriptDataEscapedState
	}
}

func (t *Tokenizer) scriptDataEscapedLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.emit(t.charToken('<'))
		return true, scriptDataEscapedState
	}
	switch r {
	case '/':
		t.builder.resetTempBuffer()
		return false, scriptDataEscapedEndTagOpenState
	case 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z', 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z':
		t.builder.resetTempBuffer()
		t.emit(t.charToken('<'))
		return true, scriptDataDoubleEscapeStartState
	default:
		t.emit(t.charToken('<'))
		return true, scriptDataEscapedState
	}
}

func (t *Tokenizer) scriptDataEscapedEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.emit(t.charToken('<'), t.charToken('/'))
		return true, scriptDataEscapedState
	}
	switch r {
	case 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z', 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z':
		t.builder.reset(t.in.position())
		t.builder.curTagType = endTag
		return true, scriptDataEscapedEndTagNameState
	default:
		t.emit(t.charToken('<'), t.charToken('/'))
		return true, scriptDataEscapedState
	}
}

func (t *Tokenizer) defaultScriptDataEscapedEndTagNameCase() (bool, tokenizerState) {
	t.emit(t.charToken('<'), t.charToken('/'))
	for _, v := range t.builder.tempBuffer {
		t.emit(t.charToken(v))
	}
	return true, scriptDataEscapedState
}

func (t *Tokenizer) scriptDataEscapedEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return t.defaultScriptDataEscapedEndTagNameCase()
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', '\u0020':
		if t.isApprEndTagToken() {
			return false, beforeAttributeNameState
		}
		return t.defaultScriptDataEscapedEndTagNameCase()
	case '/':
		if t.isApprEndTagToken() {
			return false, selfClosingStartTagState
		}
		return t.defaultScriptDataEscapedEndTagNameCase()
	case '>':
		if t.isApprEndTagToken() {
			return false, t.emitCurrentTag()
		}
		return t.defaultScriptDataEscapedEndTagNameCase()
	case 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z':
		t.builder.writeTempBuffer(r)
		t.builder.writeName(r + 0x20)
		return false, scriptDataEscapedEndTagNameState
	case 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z':
		t.builder.writeTempBuffer(r)
		t.builder.writeName(r)
		return false, scriptDataEscapedEndTagNameState
	default:
		return t.defaultScriptDataEscapedEndTagNameCase()
	}
}

func (t *Tokenizer) scriptDataDoubleEscapeStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, scriptDataEscapedState
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', '\u0020', '/', '>':
		t.emit(t.charToken(r))
		if t.builder.tempBufferString() == "script" {
			return false, scriptDataDoubleEscapedState
		}
		return false, scriptDataEscapedState
	case 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z':
		t.builder.writeTempBuffer(r + 0x20)
		t.emit(t.charToken(r))
		return false, scriptDataDoubleEscapeStartState
	case 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z':
		t.builder.writeTempBuffer(r)
		t.emit(t.charToken(r))
		return false, scriptDataDoubleEscapeStartState
	default:
		return true, scriptDataEscapedState
	}
}

func (t *Tokenizer) scriptDataDoubleEscapedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInScriptCommentLikeText)
		t.emit(t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '-':
		t.emit(t.charToken('-'))
		return false, scriptDataDoubleEscapedDashState
	case '<':
		t.emit(t.charToken('<'))
		return false, scriptDataDoubleEscapedLessThanSignState
	case '\u0000':
		t.err(ErrUnexpectedNullCharacter)
		t.emit(t.charToken('\uFFFD'))
		return false, scriptDataDoubleEscapedState
	default:
		t.emit(t.charToken(r))
		return false, scriptDataDoubleEscapedState
	}
}

func (t *Tokenizer) scriptDataDoubleEscapedDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInScriptCommentLikeText)
		t.emit(t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '-':
		t.emit(t.charToken('-'))
		return false, scriptDataDoubleEscapedDashDashState
	case '<':
		t.emit(t.charToken('<'))
		return false, scriptDataDoubleEscapedLessThanSignState
	case '\u0000':
		t.err(ErrUnexpectedNullCharacter)
		t.emit(t.charToken('\uFFFD'))
		return false, scriptDataDoubleEscapedState
	default:
		t.emit(t.charToken(r))
		return false, scriptDataDoubleEscapedState
	}
}

func (t *Tokenizer) scriptDataDoubleEscapedDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInScriptCommentLikeText)
		t.emit(t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '-':
		t.emit(t.charToken('-'))
		return false, scriptDataDoubleEscapedDashDashState
	case '<':
		t.emit(t.charToken('<'))
		return false, scriptDataDoubleEscapedLessThanSignState
	case '>':
		t.emit(t.charToken('>'))
		return false, scriptDataState
	case '\u0000':
		t.err(ErrUnexpectedNullCharacter)
		t.emit(t.charToken('\uFFFD'))
		return false, scriptDataDoubleEscapedState
	default:
		t.emit(t.charToken(r))
		return false, scriptDataDoubleEscapedState
	}
}

func (t *Tokenizer) scriptDataDoubleEscapedLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, scriptDataDoubleEscapedState
	}
	switch r {
	case '/':
		t.builder.resetTempBuffer()
		t.emit(t.charToken('/'))
		return false, scriptDataDoubleEscapeEndState
	default:
		return true, scriptDataDoubleEscapedState
	}
}

func (t *Tokenizer) scriptDataDoubleEscapeEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, scriptDataDoubleEscapedState
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', '\u0020', '/', '>':
		t.emit(t.charToken(r))
		if t.builder.tempBufferString() == "script" {
			return false, scriptDataEscapedState
		}
		return false, scriptDataDoubleEscapedState
	case 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z':
		t.builder.writeTempBuffer(r + 0x20)
		t.emit(t.charToken(r))
		return false, scriptDataDoubleEscapeEndState
	case 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z':
		t.builder.writeTempBuffer(r)
		t.emit(t.charToken(r))
		return false, scriptDataDoubleEscapeEndState
	default:
		return true, scriptDataDoubleEscapedState
	}
}

func (t *Tokenizer) beforeAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, afterAttributeNameState
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', '\u0020':
		return false, beforeAttributeNameState
	case '/', '>':
		return true, afterAttributeNameState
	case '=':
		t.err(ErrUnexpectedEqualsSignBeforeAttrName)
		t.builder.startAttribute()
		t.builder.writeAttrName(r)
		return false, attributeNameState
	default:
		t.builder.startAttribute()
		return true, attributeNameState
	}
}

func (t *Tokenizer) attributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.finishAttrName()
		return true, afterAttributeNameState
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', '\u0020', '/', '>':
		t.finishAttrName()
		return true, afterAttributeNameState
	case '=':
		t.finishAttrName()
		return false, beforeAttributeValueState
	case 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z':
		t.builder.writeAttrName(r + 0x20)
		return false, attributeNameState
	case '\u0000':
		t.err(ErrUnexpectedNullCharacter)
		t.builder.writeAttrName('\uFFFD')
		return false, attributeNameState
	case '"', '\'', '<':
		t.err(ErrUnexpectedCharInAttributeName)
		t.builder.writeAttrName(r)
		return false, attributeNameState
	default:
		t.builder.writeAttrName(r)
		return false, attributeNameState
	}
}

func (t *Tokenizer) afterAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInTag)
		t.emit(t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', '\u0020':
		return false, afterAttributeNameState
	case '/':
		return false, selfClosingStartTagState
	case '=':
		return false, beforeAttributeValueState
	case '>':
		return false, t.emitCurrentTag()
	default:
		t.builder.startAttribute()
		return true, attributeNameState
	}
}

func (t *Tokenizer) beforeAttributeValueStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, attributeValueUnquotedState
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', '\u0020':
		return false, beforeAttributeValueState
	case '"':
		return false, attributeValueDoubleQuotedState
	case '\'':
		return false, attributeValueSingleQuotedState
	case '>':
		t.err(ErrMissingAttributeValue)
		return false, t.emitCurrentTag()
	default:
		return true, attributeValueUnquotedState
	}
}

func (t *Tokenizer) attributeValueDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInTag)
		t.emit(t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '"':
		return false, afterAttributeValueQuotedState
	case '&':
		t.returnState = attributeValueDoubleQuotedState
		return false, characterReferenceState
	case '\u0000':
		t.err(ErrUnexpectedNullCharacter)
		t.builder.writeAttrValue('\uFFFD')
		return false, attributeValueDoubleQuotedState
	default:
		t.builder.writeAttrValue(r)
		return false, attributeValueDoubleQuotedState
	}
}

func (t *Tokenizer) attributeValueSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInTag)
		t.emit(t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '\'':
		return false, afterAttributeValueQuotedState
	case '&':
		t.returnState = attributeValueSingleQuotedState
		return false, characterReferenceState
	case '\u0000':
		t.err(ErrUnexpectedNullCharacter)
		t.builder.writeAttrValue('\uFFFD')
		return false, attributeValueSingleQuotedState
	default:
		t.builder.writeAttrValue(r)
		return false, attributeValueSingleQuotedState
	}
}

func (t *Tokenizer) attributeValueUnquotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInTag)
		t.emit(t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', '\u0020':
		return false, beforeAttributeNameState
	case '&':
		t.returnState = attributeValueUnquotedState
		return false, characterReferenceState
	case '>':
		return false, t.emitCurrentTag()
	case '\u0000':
		t.err(ErrUnexpectedNullCharacter)
		t.builder.writeAttrValue('\uFFFD')
		return false, attributeValueUnquotedState
	case '"', '\'', '<', '=', '`':
		t.err(ErrUnexpectedCharInUnquotedValue)
		t.builder.writeAttrValue(r)
		return false, attributeValueUnquotedState
	default:
		t.builder.writeAttrValue(r)
		return false, attributeValueUnquotedState
	}
}

func (t *Tokenizer) afterAttributeValueQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInTag)
		t.emit(t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', '\u0020':
		return false, beforeAttributeNameState
	case '/':
		return false, selfClosingStartTagState
	case '>':
		return false, t.emitCurrentTag()
	default:
		t.err(ErrMissingWhitespaceBetweenAttributes)
		return true, beforeAttributeNameState
	}
}

func (t *Tokenizer) selfClosingStartTagStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInTag)
		t.emit(t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '>':
		t.builder.enableSelfClosing()
		return false, t.emitCurrentTag()
	default:
		t.err(ErrUnexpectedSolidusInTag)
		return true, beforeAttributeNameState
	}
}

func (t *Tokenizer) bogusCommentStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.emit(t.builder.commentToken(), t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '>':
		t.emit(t.builder.commentToken())
		return false, dataState
	case '\u0000':
		t.err(ErrUnexpectedNullCharacter)
		t.builder.writeData('\uFFFD')
		return false, bogusCommentState
	default:
		t.builder.writeData(r)
		return false, bogusCommentState
	}
}

// markupDeclarationOpenStateParser peeks ahead for the "--", "DOCTYPE" and
// "[CDATA[" openers. It starves rather than guess when the lookahead window
// is not buffered yet.
func (t *Tokenizer) markupDeclarationOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrIncorrectlyOpenedComment)
		t.builder.reset(t.in.position())
		return true, bogusCommentState
	}
	switch r {
	case '-':
		next, ok := t.in.peek(1)
		if !ok {
			return t.starve()
		}
		if next == "-" {
			t.in.discard(1)
			t.builder.reset(t.in.position())
			return false, commentStartState
		}
	case 'd', 'D':
		rest, ok := t.in.peek(6)
		if !ok {
			return t.starve()
		}
		if strings.EqualFold(string(r)+rest, "doctype") {
			t.in.discard(6)
			return false, doctypeState
		}
	case '[':
		rest, ok := t.in.peek(6)
		if !ok {
			return t.starve()
		}
		if rest == "CDATA[" {
			t.in.discard(6)
			if t.inForeignContent() {
				return false, cdataSectionState
			}
			t.err(ErrCdataInHTMLContent)
			t.builder.reset(t.in.position())
			for _, v := range "[CDATA[" {
				t.builder.writeData(v)
			}
			return false, bogusCommentState
		}
	}
	t.err(ErrIncorrectlyOpenedComment)
	t.builder.reset(t.in.position())
	return true, bogusCommentState
}

func (t *Tokenizer) commentStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, commentState
	}
	switch r {
	case '-':
		return false, commentStartDashState
	case '>':
		t.err(ErrAbruptClosingOfEmptyComment)
		t.emit(t.builder.commentToken())
		return false, dataState
	default:
		return true, commentState
	}
}

func (t *Tokenizer) commentStartDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInComment)
		t.emit(t.builder.commentToken(), t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '-':
		return false, commentEndState
	case '>':
		t.err(ErrAbruptClosingOfEmptyComment)
		t.emit(t.builder.commentToken())
		return false, dataState
	default:
		t.builder.writeData('-')
		return true, commentState
	}
}

func (t *Tokenizer) commentStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInComment)
		t.emit(t.builder.commentToken(), t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '<':
		t.builder.writeData(r)
		return false, commentLessThanSignState
	case '-':
		return false, commentEndDashState
	case '\u0000':
		t.err(ErrUnexpectedNullCharacter)
		t.builder.writeData('\uFFFD')
		return false, commentState
	default:
		t.builder.writeData(r)
		return false, commentState
	}
}

func (t *Tokenizer) commentLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, commentState
	}
	switch r {
	case '!':
		t.builder.writeData(r)
		return false, commentLessThanSignBangState
	case '<':
		t.builder.writeData(r)
		return false, commentLessThanSignState
	default:
		return true, commentState
	}
}

func (t *Tokenizer) commentLessThanSignBangStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, commentState
	}
	switch r {
	case '-':
		return false, commentLessThanSignBangDashState
	default:
		return true, commentState
	}
}

func (t *Tokenizer) commentLessThanSignBangDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, commentEndDashState
	}
	switch r {
	case '-':
		return false, commentLessThanSignBangDashDashState
	default:
		return true, commentEndDashState
	}
}

func (t *Tokenizer) commentLessThanSignBangDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, commentEndState
	}
	switch r {
	case '>':
		return true, commentEndState
	default:
		t.err(ErrNestedComment)
		return true, commentEndState
	}
}

func (t *Tokenizer) commentEndDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInComment)
		t.emit(t.builder.commentToken(), t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '-':
		return false, commentEndState
	default:
		t.builder.writeData('-')
		return true, commentState
	}
}

func (t *Tokenizer) commentEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInComment)
		t.emit(t.builder.commentToken(), t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '>':
		t.emit(t.builder.commentToken())
		return false, dataState
	case '!':
		return false, commentEndBangState
	case '-':
		t.builder.writeData('-')
		return false, commentEndState
	default:
		t.builder.writeData('-')
		t.builder.writeData('-')
		return true, commentState
	}
}

func (t *Tokenizer) commentEndBangStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInComment)
		t.emit(t.builder.commentToken(), t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '-':
		t.builder.writeData('-')
		t.builder.writeData('-')
		t.builder.writeData('!')
		return false, commentEndDashState
	case '>':
		t.err(ErrIncorrectlyClosedComment)
		t.emit(t.builder.commentToken())
		return false, dataState
	default:
		t.builder.writeData('-')
		t.builder.writeData('-')
		t.builder.writeData('!')
		return true, commentState
	}
}

func (t *Tokenizer) doctypeStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInDoctype)
		t.builder.reset(t.in.position())
		t.builder.enableForceQuirks()
		t.emit(t.builder.doctypeToken(), t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', '\u0020':
		return false, beforeDoctypeNameState
	case '>':
		return true, beforeDoctypeNameState
	default:
		t.err(ErrMissingWhitespaceBeforeDoctypeName)
		return true, beforeDoctypeNameState
	}
}

func (t *Tokenizer) beforeDoctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInDoctype)
		t.builder.reset(t.in.position())
		t.builder.enableForceQuirks()
		t.emit(t.builder.doctypeToken(), t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', '\u0020':
		return false, beforeDoctypeNameState
	case 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z':
		t.builder.reset(t.in.position())
		t.builder.writeName(r + 0x20)
		return false, doctypeNameState
	case '\u0000':
		t.err(ErrUnexpectedNullCharacter)
		t.builder.reset(t.in.position())
		t.builder.writeName('\uFFFD')
		return false, doctypeNameState
	case '>':
		t.err(ErrMissingDoctypeName)
		t.builder.reset(t.in.position())
		t.builder.enableForceQuirks()
		t.emit(t.builder.doctypeToken())
		return false, dataState
	default:
		t.builder.reset(t.in.position())
		t.builder.writeName(r)
		return false, doctypeNameState
	}
}

func (t *Tokenizer) doctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInDoctype)
		t.builder.enableForceQuirks()
		t.emit(t.builder.doctypeToken(), t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', '\u0020':
		return false, afterDoctypeNameState
	case '>':
		t.emit(t.builder.doctypeToken())
		return false, dataState
	case 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z':
		t.builder.writeName(r + 0x20)
		return false, doctypeNameState
	case '\u0000':
		t.err(ErrUnexpectedNullCharacter)
		t.builder.writeName('\uFFFD')
		return false, doctypeNameState
	default:
		t.builder.writeName(r)
		return false, doctypeNameState
	}
}

// afterDoctypeNameStateParser peeks for the PUBLIC and SYSTEM keywords.
func (t *Tokenizer) afterDoctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInDoctype)
		t.builder.enableForceQuirks()
		t.emit(t.builder.doctypeToken(), t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', '\u0020':
		return false, afterDoctypeNameState
	case '>':
		t.emit(t.builder.doctypeToken())
		return false, dataState
	case 'p', 'P', 's', 'S':
		rest, ok := t.in.peek(5)
		if !ok {
			return t.starve()
		}
		keyword := string(r) + rest
		if strings.EqualFold(keyword, "public") {
			t.in.discard(5)
			return false, afterDoctypePublicKeywordState
		}
		if strings.EqualFold(keyword, "system") {
			t.in.discard(5)
			return false, afterDoctypeSystemKeywordState
		}
	}
	t.err(ErrInvalidCharSequenceAfterDoctype)
	t.builder.enableForceQuirks()
	return true, bogusDoctypeState
}

func (t *Tokenizer) afterDoctypePublicKeywordStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInDoctype)
		t.builder.enableForceQuirks()
		t.emit(t.builder.doctypeToken(), t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', '\u0020':
		return false, beforeDoctypePublicIdentifierState
	case '"':
		t.err(ErrMissingWhitespaceAfterPublic)
		t.builder.markPublicID()
		return false, doctypePublicIdentifierDoubleQuotedState
	case '\'':
		t.err(ErrMissingWhitespaceAfterPublic)
		t.builder.markPublicID()
		return false, doctypePublicIdentifierSingleQuotedState
	case '>':
		t.err(ErrMissingDoctypePublicIdentifier)
		t.builder.enableForceQuirks()
		t.emit(t.builder.doctypeToken())
		return false, dataState
	default:
		t.err(ErrMissingQuoteBeforePublicIdentifier)
		t.builder.enableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (t *Tokenizer) beforeDoctypePublicIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInDoctype)
		t.builder.enableForceQuirks()
		t.emit(t.builder.doctypeToken(), t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', '\u0020':
		return false, beforeDoctypePublicIdentifierState
	case '"':
		t.builder.markPublicID()
		return false, doctypePublicIdentifierDoubleQuotedState
	case '\'':
		t.builder.markPublicID()
		return false, doctypePublicIdentifierSingleQuotedState
	case '>':
		t.err(ErrMissingDoctypePublicIdentifier)
		t.builder.enableForceQuirks()
		t.emit(t.builder.doctypeToken())
		return false, dataState
	default:
		t.err(ErrMissingQuoteBeforePublicIdentifier)
		t.builder.enableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (t *Tokenizer) doctypePublicIdentifierDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInDoctype)
		t.builder.enableForceQuirks()
		t.emit(t.builder.doctypeToken(), t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '"':
		return false, afterDoctypePublicIdentifierState
	case '\u0000':
		t.err(ErrUnexpectedNullCharacter)
		t.builder.writePublicID('\uFFFD')
		return false, doctypePublicIdentifierDoubleQuotedState
	case '>':
		t.err(ErrAbruptDoctypePublicIdentifier)
		t.builder.enableForceQuirks()
		t.emit(t.builder.doctypeToken())
		return false, dataState
	default:
		t.builder.writePublicID(r)
		return false, doctypePublicIdentifierDoubleQuotedState
	}
}

func (t *Tokenizer) doctypePublicIdentifierSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInDoctype)
		t.builder.enableForceQuirks()
		t.emit(t.builder.doctypeToken(), t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '\'':
		return false, afterDoctypePublicIdentifierState
	case '\u0000':
		t.err(ErrUnexpectedNullCharacter)
		t.builder.writePublicID('\uFFFD')
		return false, doctypePublicIdentifierSingleQuotedState
	case '>':
		t.err(ErrAbruptDoctypePublicIdentifier)
		t.builder.enableForceQuirks()
		t.emit(t.builder.doctypeToken())
		return false, dataState
	default:
		t.builder.writePublicID(r)
		return false, doctypePublicIdentifierSingleQuotedState
	}
}

func (t *Tokenizer) afterDoctypePublicIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInDoctype)
		t.builder.enableForceQuirks()
		t.emit(t.builder.doctypeToken(), t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', '\u0020':
		return false, betweenDoctypePublicAndSystemIdentifiersState
	case '>':
		t.emit(t.builder.doctypeToken())
		return false, dataState
	case '"':
		t.err(ErrMissingWhitespaceBetweenIdent)
		t.builder.markSystemID()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case '\'':
		t.err(ErrMissingWhitespaceBetweenIdent)
		t.builder.markSystemID()
		return false, doctypeSystemIdentifierSingleQuotedState
	default:
		t.err(ErrMissingQuoteBeforeSystemIdentifier)
		t.builder.enableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (t *Tokenizer) betweenDoctypePublicAndSystemIdentifiersStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInDoctype)
		t.builder.enableForceQuirks()
		t.emit(t.builder.doctypeToken(), t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', '\u0020':
		return false, betweenDoctypePublicAndSystemIdentifiersState
	case '>':
		t.emit(t.builder.doctypeToken())
		return false, dataState
	case '"':
		t.builder.markSystemID()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case '\'':
		t.builder.markSystemID()
		return false, doctypeSystemIdentifierSingleQuotedState
	default:
		t.err(ErrMissingQuoteBeforeSystemIdentifier)
		t.builder.enableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (t *Tokenizer) afterDoctypeSystemKeywordStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInDoctype)
		t.builder.enableForceQuirks()
		t.emit(t.builder.doctypeToken(), t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', '\u0020':
		return false, beforeDoctypeSystemIdentifierState
	case '"':
		t.err(ErrMissingWhitespaceAfterSystem)
		t.builder.markSystemID()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case '\'':
		t.err(ErrMissingWhitespaceAfterSystem)
		t.builder.markSystemID()
		return false, doctypeSystemIdentifierSingleQuotedState
	case '>':
		t.err(ErrMissingDoctypeSystemIdentifier)
		t.builder.enableForceQuirks()
		t.emit(t.builder.doctypeToken())
		return false, dataState
	default:
		t.err(ErrMissingQuoteBeforeSystemIdentifier)
		t.builder.enableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (t *Tokenizer) beforeDoctypeSystemIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInDoctype)
		t.builder.enableForceQuirks()
		t.emit(t.builder.doctypeToken(), t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', '\u0020':
		return false, beforeDoctypeSystemIdentifierState
	case '"':
		t.builder.markSystemID()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case '\'':
		t.builder.markSystemID()
		return false, doctypeSystemIdentifierSingleQuotedState
	case '>':
		t.err(ErrMissingDoctypeSystemIdentifier)
		t.builder.enableForceQuirks()
		t.emit(t.builder.doctypeToken())
		return false, dataState
	default:
		t.err(ErrMissingQuoteBeforeSystemIdentifier)
		t.builder.enableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (t *Tokenizer) doctypeSystemIdentifierDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInDoctype)
		t.builder.enableForceQuirks()
		t.emit(t.builder.doctypeToken(), t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '"':
		return false, afterDoctypeSystemIdentifierState
	case '\u0000':
		t.err(ErrUnexpectedNullCharacter)
		t.builder.writeSystemID('\uFFFD')
		return false, doctypeSystemIdentifierDoubleQuotedState
	case '>':
		t.err(ErrAbruptDoctypeSystemIdentifier)
		t.builder.enableForceQuirks()
		t.emit(t.builder.doctypeToken())
		return false, dataState
	default:
		t.builder.writeSystemID(r)
		return false, doctypeSystemIdentifierDoubleQuotedState
	}
}

func (t *Tokenizer) doctypeSystemIdentifierSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInDoctype)
		t.builder.enableForceQuirks()
		t.emit(t.builder.doctypeToken(), t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '\'':
		return false, afterDoctypeSystemIdentifierState
	case '\u0000':
		t.err(ErrUnexpectedNullCharacter)
		t.builder.writeSystemID('\uFFFD')
		return false, doctypeSystemIdentifierSingleQuotedState
	case '>':
		t.err(ErrAbruptDoctypeSystemIdentifier)
		t.builder.enableForceQuirks()
		t.emit(t.builder.doctypeToken())
		return false, dataState
	default:
		t.builder.writeSystemID(r)
		return false, doctypeSystemIdentifierSingleQuotedState
	}
}

func (t *Tokenizer) afterDoctypeSystemIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInDoctype)
		t.builder.enableForceQuirks()
		t.emit(t.builder.doctypeToken(), t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', '\u0020':
		return false, afterDoctypeSystemIdentifierState
	case '>':
		t.emit(t.builder.doctypeToken())
		return false, dataState
	default:
		t.err(ErrUnexpectedCharAfterSystemIdent)
		return true, bogusDoctypeState
	}
}

func (t *Tokenizer) bogusDoctypeStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.emit(t.builder.doctypeToken(), t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case '>':
		t.emit(t.builder.doctypeToken())
		return false, dataState
	case '\u0000':
		t.err(ErrUnexpectedNullCharacter)
		return false, bogusDoctypeState
	default:
		return false, bogusDoctypeState
	}
}

func (t *Tokenizer) cdataSectionStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrEOFInCdata)
		t.emit(t.builder.eofToken(t.in.position()))
		return false, dataState
	}
	switch r {
	case ']':
		return false, cdataSectionBracketState
	default:
		t.emit(t.charToken(r))
		return false, cdataSectionState
	}
}

func (t *Tokenizer) cdataSectionBracketStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.emit(t.charToken(']'))
		return true, cdataSectionState
	}
	switch r {
	case ']':
		return false, cdataSectionEndState
	default:
		t.emit(t.charToken(']'))
		return true, cdataSectionState
	}
}

func (t *Tokenizer) cdataSectionEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.emit(t.charToken(']'), t.charToken(']'))
		return true, cdataSectionState
	}
	switch r {
	case ']':
		t.emit(t.charToken(']'))
		return false, cdataSectionEndState
	case '>':
		return false, dataState
	default:
		t.emit(t.charToken(']'), t.charToken(']'))
		return true, cdataSectionState
	}
}

func (t *Tokenizer) characterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	t.builder.resetTempBuffer()
	t.builder.writeTempBuffer('&')
	if eof {
		t.flushCodePointsAsCharacterReference()
		return true, t.returnState
	}
	switch {
	case r == '#':
		t.builder.writeTempBuffer(r)
		return false, numericCharacterReferenceState
	case isASCIIAlphanumeric(r):
		return true, namedCharacterReferenceState
	default:
		t.flushCodePointsAsCharacterReference()
		return true, t.returnState
	}
}

// namedCharacterReferenceStateParser matches the longest entity name starting
// at the current code point. The current code point is the first name
// character; the rest is taken by lookahead so a partial match never consumes
// input it has to give back.
func (t *Tokenizer) namedCharacterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	rest, ok := t.in.peek(maxNamedCharRefLen - 1)
	if !ok {
		return t.starve()
	}
	candidate := string(r) + rest
	name, repl, found := lookupNamedCharRef(candidate)
	if !found {
		t.flushCodePointsAsCharacterReference()
		return true, ambiguousAmpersandState
	}

	endsInSemicolon := strings.HasSuffix(name, ";")
	if wasConsumedByAttribute(t.returnState) && !endsInSemicolon {
		// Historical quirk: "&not=" and friends inside attribute values
		// stay literal when followed by '=' or an alphanumeric.
		if len(candidate) > len(name) {
			after := rune(candidate[len(name)])
			if after == '=' || isASCIIAlphanumeric(after) {
				for _, v := range name {
					t.builder.writeTempBuffer(v)
				}
				t.in.discard(len(name) - 1)
				t.flushCodePointsAsCharacterReference()
				return false, t.returnState
			}
		}
	}

	t.in.discard(len(name) - 1)
	if !endsInSemicolon {
		t.err(ErrMissingSemicolonAfterCharRef)
	}
	t.builder.resetTempBuffer()
	for _, v := range repl {
		t.builder.writeTempBuffer(v)
	}
	t.flushCodePointsAsCharacterReference()
	return false, t.returnState
}

func (t *Tokenizer) ambiguousAmpersandStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, t.returnState
	}
	switch {
	case isASCIIAlphanumeric(r):
		if wasConsumedByAttribute(t.returnState) {
			t.builder.writeAttrValue(r)
		} else {
			t.emit(t.charToken(r))
		}
		return false, ambiguousAmpersandState
	case r == ';':
		t.err(ErrUnknownNamedCharacterReference)
		return true, t.returnState
	default:
		return true, t.returnState
	}
}

func (t *Tokenizer) numericCharacterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	t.builder.setCharRef(0)
	if eof {
		t.err(ErrAbsenceOfDigitsInNumericCharRef)
		t.flushCodePointsAsCharacterReference()
		return true, t.returnState
	}
	switch r {
	case 'x', 'X':
		t.builder.writeTempBuffer(r)
		return false, hexadecimalCharacterReferenceStartState
	default:
		return true, decimalCharacterReferenceStartState
	}
}

func (t *Tokenizer) hexadecimalCharacterReferenceStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIHexDigit(r) {
		return true, hexadecimalCharacterReferenceState
	}
	t.err(ErrAbsenceOfDigitsInNumericCharRef)
	t.flushCodePointsAsCharacterReference()
	return true, t.returnState
}

func (t *Tokenizer) decimalCharacterReferenceStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r >= '0' && r <= '9' {
		return true, decimalCharacterReferenceState
	}
	t.err(ErrAbsenceOfDigitsInNumericCharRef)
	t.flushCodePointsAsCharacterReference()
	return true, t.returnState
}

func (t *Tokenizer) hexadecimalCharacterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrMissingSemicolonAfterCharRef)
		t.numericCharacterReferenceEnd()
		return true, t.returnState
	}
	switch {
	case r >= '0' && r <= '9':
		t.builder.multCharRef(16)
		t.builder.addCharRef(int(r - '0'))
		return false, hexadecimalCharacterReferenceState
	case r >= 'A' && r <= 'F':
		t.builder.multCharRef(16)
		t.builder.addCharRef(int(r - 'A' + 10))
		return false, hexadecimalCharacterReferenceState
	case r >= 'a' && r <= 'f':
		t.builder.multCharRef(16)
		t.builder.addCharRef(int(r - 'a' + 10))
		return false, hexadecimalCharacterReferenceState
	case r == ';':
		t.numericCharacterReferenceEnd()
		return false, t.returnState
	default:
		t.err(ErrMissingSemicolonAfterCharRef)
		t.numericCharacterReferenceEnd()
		return true, t.returnState
	}
}

func (t *Tokenizer) decimalCharacterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.err(ErrMissingSemicolonAfterCharRef)
		t.numericCharacterReferenceEnd()
		return true, t.returnState
	}
	switch {
	case r >= '0' && r <= '9':
		t.builder.multCharRef(10)
		t.builder.addCharRef(int(r - '0'))
		return false, decimalCharacterReferenceState
	case r == ';':
		t.numericCharacterReferenceEnd()
		return false, t.returnState
	default:
		t.err(ErrMissingSemicolonAfterCharRef)
		t.numericCharacterReferenceEnd()
		return true, t.returnState
	}
}

// c1Remap translates the windows-1252 control range that numeric references
// historically pointed at.
var c1Remap = map[int]rune{
	0x80: '€', 0x82: '‚', 0x83: 'ƒ', 0x84: '„',
	0x85: '…', 0x86: '†', 0x87: '‡', 0x88: 'ˆ',
	0x89: '‰', 0x8A: 'Š', 0x8B: '‹', 0x8C: 'Œ',
	0x8E: 'Ž', 0x91: '‘', 0x92: '’', 0x93: '“',
	0x94: '”', 0x95: '•', 0x96: '–', 0x97: '—',
	0x98: '˜', 0x99: '™', 0x9A: 'š', 0x9B: '›',
	0x9C: 'œ', 0x9E: 'ž', 0x9F: 'Ÿ',
}

func (t *Tokenizer) numericCharacterReferenceEnd() {
	code := t.builder.getCharRef()
	switch {
	case code == 0:
		t.err(ErrNullCharacterReference)
		code = 0xFFFD
	case code > 0x10FFFF:
		t.err(ErrCharRefOutsideUnicodeRange)
		code = 0xFFFD
	case code >= 0xD800 && code <= 0xDFFF:
		t.err(ErrSurrogateCharacterReference)
		code = 0xFFFD
	case isNoncharacter(rune(code)):
		t.err(ErrNoncharacterCharacterReference)
	case code == 0x0D || (isControl(rune(code)) && !isASCIIWhitespace(rune(code))):
		t.err(ErrControlCharacterReference)
		if remapped, ok := c1Remap[code]; ok {
			code = int(remapped)
		}
	}
	t.builder.resetTempBuffer()
	t.builder.writeTempBuffer(rune(code))
	t.flushCodePointsAsCharacterReference()
}

func isASCIIAlphanumeric(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isASCIIHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
