package parser

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind names a recoverable parse error with its conformance identifier.
type ErrorKind string

const (
	ErrAbruptClosingOfEmptyComment        ErrorKind = "abrupt-closing-of-empty-comment"
	ErrAbruptDoctypePublicIdentifier      ErrorKind = "abrupt-doctype-public-identifier"
	ErrAbruptDoctypeSystemIdentifier      ErrorKind = "abrupt-doctype-system-identifier"
	ErrAbsenceOfDigitsInNumericCharRef    ErrorKind = "absence-of-digits-in-numeric-character-reference"
	ErrCdataInHTMLContent                 ErrorKind = "cdata-in-html-content"
	ErrCharRefOutsideUnicodeRange         ErrorKind = "character-reference-outside-unicode-range"
	ErrControlCharacterInInputStream      ErrorKind = "control-character-in-input-stream"
	ErrControlCharacterReference          ErrorKind = "control-character-reference"
	ErrDuplicateAttribute                 ErrorKind = "duplicate-attribute"
	ErrEndTagWithAttributes               ErrorKind = "end-tag-with-attributes"
	ErrEndTagWithTrailingSolidus          ErrorKind = "end-tag-with-trailing-solidus"
	ErrEOFBeforeTagName                   ErrorKind = "eof-before-tag-name"
	ErrEOFInCdata                         ErrorKind = "eof-in-cdata"
	ErrEOFInComment                       ErrorKind = "eof-in-comment"
	ErrEOFInDoctype                       ErrorKind = "eof-in-doctype"
	ErrEOFInScriptCommentLikeText         ErrorKind = "eof-in-script-html-comment-like-text"
	ErrEOFInTag                           ErrorKind = "eof-in-tag"
	ErrIncorrectlyClosedComment           ErrorKind = "incorrectly-closed-comment"
	ErrIncorrectlyOpenedComment           ErrorKind = "incorrectly-opened-comment"
	ErrInvalidCharSequenceAfterDoctype    ErrorKind = "invalid-character-sequence-after-doctype-name"
	ErrInvalidFirstCharacterOfTagName     ErrorKind = "invalid-first-character-of-tag-name"
	ErrMissingAttributeValue              ErrorKind = "missing-attribute-value"
	ErrMissingDoctypeName                 ErrorKind = "missing-doctype-name"
	ErrMissingDoctypePublicIdentifier     ErrorKind = "missing-doctype-public-identifier"
	ErrMissingDoctypeSystemIdentifier     ErrorKind = "missing-doctype-system-identifier"
	ErrMissingEndTagName                  ErrorKind = "missing-end-tag-name"
	ErrMissingQuoteBeforePublicIdentifier ErrorKind = "missing-quote-before-doctype-public-identifier"
	ErrMissingQuoteBeforeSystemIdentifier ErrorKind = "missing-quote-before-doctype-system-identifier"
	ErrMissingSemicolonAfterCharRef       ErrorKind = "missing-semicolon-after-character-reference"
	ErrMissingWhitespaceAfterPublic       ErrorKind = "missing-whitespace-after-doctype-public-keyword"
	ErrMissingWhitespaceAfterSystem       ErrorKind = "missing-whitespace-after-doctype-system-keyword"
	ErrMissingWhitespaceBeforeDoctypeName ErrorKind = "missing-whitespace-before-doctype-name"
	ErrMissingWhitespaceBetweenAttributes ErrorKind = "missing-whitespace-between-attributes"
	ErrMissingWhitespaceBetweenIdent      ErrorKind = "missing-whitespace-between-doctype-public-and-system-identifiers"
	ErrNestedComment                      ErrorKind = "nested-comment"
	ErrNoncharacterCharacterReference     ErrorKind = "noncharacter-character-reference"
	ErrNoncharacterInInputStream          ErrorKind = "noncharacter-in-input-stream"
	ErrNonVoidStartTagWithTrailingSolidus ErrorKind = "non-void-html-element-start-tag-with-trailing-solidus"
	ErrNullCharacterReference             ErrorKind = "null-character-reference"
	ErrSurrogateCharacterReference        ErrorKind = "surrogate-character-reference"
	ErrSurrogateInInputStream             ErrorKind = "surrogate-in-input-stream"
	ErrUnexpectedCharAfterSystemIdent     ErrorKind = "unexpected-character-after-doctype-system-identifier"
	ErrUnexpectedCharInAttributeName      ErrorKind = "unexpected-character-in-attribute-name"
	ErrUnexpectedCharInUnquotedValue      ErrorKind = "unexpected-character-in-unquoted-attribute-value"
	ErrUnexpectedEqualsSignBeforeAttrName ErrorKind = "unexpected-equals-sign-before-attribute-name"
	ErrUnexpectedNullCharacter            ErrorKind = "unexpected-null-character"
	ErrUnexpectedQuestionMarkTagName      ErrorKind = "unexpected-question-mark-instead-of-tag-name"
	ErrUnexpectedSolidusInTag             ErrorKind = "unexpected-solidus-in-tag"
	ErrUnknownNamedCharacterReference     ErrorKind = "unknown-named-character-reference"

	// Tree construction errors.
	ErrExpectedDoctype       ErrorKind = "expected-doctype-but-got-something-else"
	ErrUnexpectedToken       ErrorKind = "unexpected-token"
	ErrUnexpectedStartTag    ErrorKind = "unexpected-start-tag"
	ErrUnexpectedEndTag      ErrorKind = "unexpected-end-tag"
	ErrUnclosedElements      ErrorKind = "unclosed-elements"
	ErrMisnestedTag          ErrorKind = "misnested-tag"
	ErrFosteredContent       ErrorKind = "foster-parented-content"
	ErrUnexpectedEOF         ErrorKind = "unexpected-eof"
	ErrUnexpectedDoctype     ErrorKind = "unexpected-doctype"
	ErrNonSpaceInTableText   ErrorKind = "non-space-character-in-table-text"
	ErrImageStartTag         ErrorKind = "image-start-tag"
	ErrHeadingInHeading      ErrorKind = "heading-inside-heading"
	ErrUnclosedParagraph     ErrorKind = "unclosed-paragraph"
	ErrFormNestedInForm      ErrorKind = "form-nested-in-form"
	ErrUnexpectedCharInTable ErrorKind = "unexpected-character-in-table"
)

// ParseError is one recoverable error record. Position is one-based.
type ParseError struct {
	Line int
	Col  int
	Kind ErrorKind
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Kind)
}

// ErrorSink accumulates recoverable parse errors in the order they were
// raised. Recording is pure side-channel bookkeeping; it never affects
// control flow.
type ErrorSink struct {
	errs []ParseError
}

func (s *ErrorSink) add(pos Position, kind ErrorKind) {
	s.errs = append(s.errs, ParseError{Line: pos.Line, Col: pos.Col, Kind: kind})
}

// Errors returns the recorded errors in input order.
func (s *ErrorSink) Errors() []ParseError {
	return s.errs
}

// Len returns the number of recorded errors.
func (s *ErrorSink) Len() int {
	return len(s.errs)
}

// ErrAborted is returned by Finish after the caller aborted the parse. The
// partially built document accompanies it.
var ErrAborted = errors.New("parse aborted by caller")

// ErrPaused is returned when input processing cannot continue because the
// parser is suspended at a script boundary.
var ErrPaused = errors.New("parser is paused for script execution")

// ErrFinished is returned when more input arrives after Finish.
var ErrFinished = errors.New("parser already finished")

func invariant(cond bool, format string, args ...interface{}) error {
	if cond {
		return nil
	}
	return errors.Errorf("invariant violation: "+format, args...)
}
