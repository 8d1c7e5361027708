package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenize runs the tokenizer over the whole input and returns every token
// before the EOF token, together with the recorded errors.
func tokenize(t *testing.T, input string) ([]Token, []ParseError) {
	t.Helper()
	sink := &ErrorSink{}
	in := newInputStream(sink)
	tk := newTokenizer(in, sink)
	in.append(input)
	in.markEOF()

	var toks []Token
	for {
		tok, status := tk.next()
		switch status {
		case tokStarved:
			t.Fatalf("tokenizer starved after EOF on %q", input)
		case tokDone:
			return toks, sink.Errors()
		}
		if tok.Type != endOfFileToken {
			toks = append(toks, tok)
		}
	}
}

// textOf concatenates the data of every character token in order.
func textOf(toks []Token) string {
	var b strings.Builder
	for _, tok := range toks {
		if tok.Type == characterToken {
			b.WriteString(tok.Data)
		}
	}
	return b.String()
}

func errorKinds(errs []ParseError) []ErrorKind {
	kinds := make([]ErrorKind, len(errs))
	for i, e := range errs {
		kinds[i] = e.Kind
	}
	return kinds
}

type stateMachineTestCase struct {
	inRune            rune           // the rune handed to the starting state
	startingState     tokenizerState // the state under test
	shouldReconsume   bool           // whether the handler asks to reconsume
	nextExpectedState tokenizerState // the state the handler moves to
}

// TestStateParsers checks the basic transitions of the state machine, one
// handler at a time. Flows that need lookahead or builder state are covered
// by the stream-level tests below.
func TestStateParsers(t *testing.T) {
	stateParserTests := []stateMachineTestCase{
		{'&', dataState, false, characterReferenceState},
		{'<', dataState, false, tagOpenState},
		{'a', dataState, false, dataState},
		{'1', dataState, false, dataState},

		{'&', rcDataState, false, characterReferenceState},
		{'<', rcDataState, false, rcDataLessThanSignState},
		{'a', rcDataState, false, rcDataState},

		{'<', rawTextState, false, rawTextLessThanSignState},
		{'a', rawTextState, false, rawTextState},

		{'<', scriptDataState, false, scriptDataLessThanSignState},
		{'a', scriptDataState, false, scriptDataState},

		{'!', plaintextState, false, plaintextState},
		{'<', plaintextState, false, plaintextState},

		{'!', tagOpenState, false, markupDeclarationOpenState},
		{'/', tagOpenState, false, endTagOpenState},
		{'a', tagOpenState, true, tagNameState},
		{'Z', tagOpenState, true, tagNameState},
		{'?', tagOpenState, true, bogusCommentState},
		{'1', tagOpenState, true, dataState},

		{'a', endTagOpenState, true, tagNameState},
		{'>', endTagOpenState, false, dataState},
		{'1', endTagOpenState, true, bogusCommentState},

		{'\t', tagNameState, false, beforeAttributeNameState},
		{'\n', tagNameState, false, beforeAttributeNameState},
		{'/', tagNameState, false, selfClosingStartTagState},
		{'a', tagNameState, false, tagNameState},
		{'A', tagNameState, false, tagNameState},

		{'/', rcDataLessThanSignState, false, rcDataEndTagOpenState},
		{'a', rcDataLessThanSignState, true, rcDataState},
		{'/', rawTextLessThanSignState, false, rawTextEndTagOpenState},
		{'a', rawTextLessThanSignState, true, rawTextState},

		{'\t', beforeAttributeNameState, false, beforeAttributeNameState},
		{'/', beforeAttributeNameState, true, afterAttributeNameState},
		{'>', beforeAttributeNameState, true, afterAttributeNameState},
		{'a', beforeAttributeNameState, true, attributeNameState},

		{'=', attributeNameState, false, beforeAttributeValueState},
		{'a', attributeNameState, false, attributeNameState},

		{'"', beforeAttributeValueState, false, attributeValueDoubleQuotedState},
		{'\'', beforeAttributeValueState, false, attributeValueSingleQuotedState},
		{'a', beforeAttributeValueState, true, attributeValueUnquotedState},

		{'"', attributeValueDoubleQuotedState, false, afterAttributeValueQuotedState},
		{'&', attributeValueDoubleQuotedState, false, characterReferenceState},
		{'a', attributeValueDoubleQuotedState, false, attributeValueDoubleQuotedState},
		{'\'', attributeValueSingleQuotedState, false, afterAttributeValueQuotedState},
		{'a', attributeValueSingleQuotedState, false, attributeValueSingleQuotedState},

		{'\t', afterAttributeValueQuotedState, false, beforeAttributeNameState},
		{'/', afterAttributeValueQuotedState, false, selfClosingStartTagState},
		{'a', afterAttributeValueQuotedState, true, beforeAttributeNameState},

		{'#', characterReferenceState, false, numericCharacterReferenceState},
		{'-', characterReferenceState, true, dataState},

		{'x', numericCharacterReferenceState, false, hexadecimalCharacterReferenceStartState},
		{'X', numericCharacterReferenceState, false, hexadecimalCharacterReferenceStartState},
		{'5', numericCharacterReferenceState, true, decimalCharacterReferenceStartState},

		{'-', commentStartState, false, commentStartDashState},
		{'a', commentStartState, true, commentState},
		{'<', commentState, false, commentLessThanSignState},
		{'-', commentState, false, commentEndDashState},
		{'a', commentState, false, commentState},
		{'-', commentEndDashState, false, commentEndState},
		{'a', commentEndDashState, true, commentState},
		{'>', commentEndState, false, dataState},
		{'!', commentEndState, false, commentEndBangState},

		{'\t', beforeDoctypeNameState, false, beforeDoctypeNameState},
		{'a', beforeDoctypeNameState, true, doctypeNameState},
		{'\t', doctypeNameState, false, afterDoctypeNameState},
		{'>', bogusDoctypeState, false, dataState},
		{'a', bogusDoctypeState, false, bogusDoctypeState},
	}

	for _, tt := range stateParserTests {
		tt := tt
		t.Run(tt.startingState.String()+"/"+string(tt.inRune), func(t *testing.T) {
			t.Parallel()
			sink := &ErrorSink{}
			tk := newTokenizer(newInputStream(sink), sink)
			tk.state = tt.startingState
			tk.returnState = dataState
			reconsume, next := tk.stateToHandler(tt.startingState)(tt.inRune, false)
			assert.Equal(t, tt.shouldReconsume, reconsume, "reconsume")
			assert.Equal(t, tt.nextExpectedState, next, "next state")
		})
	}
}

func TestTokenizeSimpleDocument(t *testing.T) {
	toks, errs := tokenize(t, `<!DOCTYPE html><html lang="en"><!--x--><p>hi</p></html>`)
	require.Empty(t, errs)

	var types []tokenType
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []tokenType{
		doctypeToken, startTagToken, commentToken, startTagToken,
		characterToken, characterToken, endTagToken, endTagToken,
	}, types)

	assert.Equal(t, "html", toks[0].Name)
	assert.Equal(t, "html", toks[1].TagName)
	lang, ok := toks[1].Attr("lang")
	require.True(t, ok)
	assert.Equal(t, "en", lang)
	assert.Equal(t, "x", toks[2].Data)
	assert.Equal(t, "hi", textOf(toks))
}

type attributeAccuracyTestcase struct {
	inHTML string
	attrs  map[string]string
}

var attributeAccuracyTests = []attributeAccuracyTestcase{
	{"<script src='123' onload='test'></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<script src='123' src='456'></script>", map[string]string{
		"src": "123",
	}},
	{"<script src=123 onload=test></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<script =src='123'onload='test' ></script>", map[string]string{
		"=src":   "123",
		"onload": "test",
	}},
	{"<script src></script>", map[string]string{
		"src": "",
	}},
	{"<script src test></script>", map[string]string{
		"src":  "",
		"test": "",
	}},
	{"<script 'asd></script>", map[string]string{
		"'asd": "",
	}},
	{"<script <asd></script>", map[string]string{
		"<asd": "",
	}},
	{"<script ABC=123></script>", map[string]string{
		"abc": "123",
	}},
	{"<script abc=></script>", map[string]string{
		"abc": "",
	}},
	{"<script\tabc=123></script>", map[string]string{
		"abc": "123",
	}},
}

func TestTokenizerAttributeAccuracy(t *testing.T) {
	for _, tt := range attributeAccuracyTests {
		tt := tt
		t.Run(tt.inHTML, func(t *testing.T) {
			t.Parallel()
			toks, _ := tokenize(t, tt.inHTML)
			require.NotEmpty(t, toks)
			start := toks[0]
			require.Equal(t, startTagToken, start.Type)
			require.Len(t, start.Attributes, len(tt.attrs))
			for name, want := range tt.attrs {
				got, ok := start.Attr(name)
				require.True(t, ok, "missing attribute %q", name)
				assert.Equal(t, want, got)
			}
		})
	}
}

func TestDuplicateAttributeError(t *testing.T) {
	_, errs := tokenize(t, "<a href='1' href='2'>")
	assert.Contains(t, errorKinds(errs), ErrDuplicateAttribute)
}

func TestEndTagErrors(t *testing.T) {
	toks, errs := tokenize(t, "</p class='x'>")
	require.Len(t, toks, 1)
	assert.Equal(t, endTagToken, toks[0].Type)
	assert.Empty(t, toks[0].Attributes, "end tag attributes are dropped")
	assert.Contains(t, errorKinds(errs), ErrEndTagWithAttributes)

	toks, errs = tokenize(t, "</br/>")
	require.Len(t, toks, 1)
	assert.False(t, toks[0].SelfClosing)
	assert.Contains(t, errorKinds(errs), ErrEndTagWithTrailingSolidus)
}

func TestSelfClosingFlag(t *testing.T) {
	toks, errs := tokenize(t, "<br/><img />")
	require.Empty(t, errs)
	require.Len(t, toks, 2)
	assert.True(t, toks[0].SelfClosing)
	assert.True(t, toks[1].SelfClosing)
}

type charRefTestcase struct {
	in       string
	out      string
	wantErrs []ErrorKind
}

var charRefDataTests = []charRefTestcase{
	{"&amp;", "&", nil},
	{"&amp;x", "&x", nil},
	{"&AMP", "&", []ErrorKind{ErrMissingSemicolonAfterCharRef}},
	{"&ampx", "&x", []ErrorKind{ErrMissingSemicolonAfterCharRef}},
	{"&notit;", "\u00ACit;", []ErrorKind{ErrMissingSemicolonAfterCharRef}},
	{"&notin;", "\u2209", nil},
	{"&nbsp;", "\u00A0", nil},
	{"&starf;", "\u2605", nil},
	{"&CounterClockwiseContourIntegral;", "\u2233", nil},
	{"&nleqslant;", "\u2A7D\u0338", nil},
	{"&lt;&gt;", "<>", nil},
	{"&xyz;", "&xyz;", []ErrorKind{ErrUnknownNamedCharacterReference}},
	{"&xyz ", "&xyz ", nil},
	{"& b", "& b", nil},
	{"&#65;", "A", nil},
	{"&#x41;", "A", nil},
	{"&#X41;", "A", nil},
	{"&#65", "A", []ErrorKind{ErrMissingSemicolonAfterCharRef}},
	{"&#0;", "\uFFFD", []ErrorKind{ErrNullCharacterReference}},
	{"&#x110000;", "\uFFFD", []ErrorKind{ErrCharRefOutsideUnicodeRange}},
	{"&#x890000000000000041;", "\uFFFD", []ErrorKind{ErrCharRefOutsideUnicodeRange}},
	{"&#18446744073709551657;", "\uFFFD", []ErrorKind{ErrCharRefOutsideUnicodeRange}},
	{"&#xD800;", "\uFFFD", []ErrorKind{ErrSurrogateCharacterReference}},
	{"&#x80;", "\u20AC", []ErrorKind{ErrControlCharacterReference}},
	{"&#;", "&#;", []ErrorKind{ErrAbsenceOfDigitsInNumericCharRef}},
	{"&#x;", "&#x;", []ErrorKind{ErrAbsenceOfDigitsInNumericCharRef}},
}

func TestCharacterReferencesInData(t *testing.T) {
	for _, tt := range charRefDataTests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			toks, errs := tokenize(t, tt.in)
			assert.Equal(t, tt.out, textOf(toks))
			for _, kind := range tt.wantErrs {
				assert.Contains(t, errorKinds(errs), kind)
			}
			if tt.wantErrs == nil {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestCharacterReferencesInAttributes(t *testing.T) {
	cases := []struct {
		in    string
		value string
	}{
		{`<a b="&amp;x">`, "&x"},
		{`<a b="&ampx">`, "&ampx"},
		{`<a b="&amp=c">`, "&amp=c"},
		{`<a b="&amp">`, "&"},
		{`<a b="&notit;">`, "&notit;"},
		{`<a b="&#x41;">`, "A"},
	}
	for _, tc := range cases {
		toks, _ := tokenize(t, tc.in)
		require.NotEmpty(t, toks, tc.in)
		got, ok := toks[0].Attr("b")
		require.True(t, ok, tc.in)
		assert.Equal(t, tc.value, got, tc.in)
	}
}

func TestRCDataAppropriateEndTag(t *testing.T) {
	sink := &ErrorSink{}
	in := newInputStream(sink)
	tk := newTokenizer(in, sink)
	tk.switchTo(rcDataState)
	tk.setLastStartTag("title")
	in.append("a<b></other></title>")
	in.markEOF()

	var toks []Token
	for {
		tok, status := tk.next()
		if status != tokOK {
			break
		}
		if tok.Type != endOfFileToken {
			toks = append(toks, tok)
		}
	}
	assert.Equal(t, "a<b></other>", textOf(toks))
	last := toks[len(toks)-1]
	assert.Equal(t, endTagToken, last.Type)
	assert.Equal(t, "title", last.TagName)
}

func TestScriptDataEscaped(t *testing.T) {
	sink := &ErrorSink{}
	in := newInputStream(sink)
	tk := newTokenizer(in, sink)
	tk.switchTo(scriptDataState)
	tk.setLastStartTag("script")
	in.append("<!--a--></script>")
	in.markEOF()

	var toks []Token
	for {
		tok, status := tk.next()
		if status != tokOK {
			break
		}
		if tok.Type != endOfFileToken {
			toks = append(toks, tok)
		}
	}
	assert.Equal(t, "<!--a-->", textOf(toks))
	last := toks[len(toks)-1]
	assert.Equal(t, endTagToken, last.Type)
	assert.Equal(t, "script", last.TagName)
	assert.Empty(t, sink.Errors())
}

func TestCommentVariants(t *testing.T) {
	cases := []struct {
		in       string
		data     string
		wantErrs []ErrorKind
	}{
		{"<!--x-->", "x", nil},
		{"<!---->", "", nil},
		{"<!--->", "", []ErrorKind{ErrAbruptClosingOfEmptyComment}},
		{"<!-->", "", []ErrorKind{ErrAbruptClosingOfEmptyComment}},
		{"<!--a--!>", "a", []ErrorKind{ErrIncorrectlyClosedComment}},
		{"<!--a<!--b-->", "a<!--b", []ErrorKind{ErrNestedComment}},
		{"<!x>", "x", []ErrorKind{ErrIncorrectlyOpenedComment}},
		{"<?x>", "?x", []ErrorKind{ErrUnexpectedQuestionMarkTagName}},
	}
	for _, tc := range cases {
		toks, errs := tokenize(t, tc.in)
		require.NotEmpty(t, toks, tc.in)
		assert.Equal(t, commentToken, toks[0].Type, tc.in)
		assert.Equal(t, tc.data, toks[0].Data, tc.in)
		for _, kind := range tc.wantErrs {
			assert.Contains(t, errorKinds(errs), kind, tc.in)
		}
	}
}

func TestDoctypeVariants(t *testing.T) {
	toks, errs := tokenize(t, `<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01//EN"\u00A0"http://www.w3.org/TR/html4/strict.dtd">`)
	require.Empty(t, errs)
	require.Len(t, toks, 1)
	dt := toks[0]
	assert.Equal(t, doctypeToken, dt.Type)
	assert.Equal(t, "html", dt.Name)
	assert.True(t, dt.HasPublicID)
	assert.Equal(t, "-//W3C//DTD HTML 4.01//EN", dt.PublicID)
	assert.True(t, dt.HasSystemID)
	assert.Equal(t, "http://www.w3.org/TR/html4/strict.dtd", dt.SystemID)
	assert.False(t, dt.ForceQuirks)

	toks, errs = tokenize(t, "<!doctype HTML>")
	require.Len(t, toks, 1)
	assert.Equal(t, "html", toks[0].Name, "doctype names are lowercased")
	assert.Empty(t, errs)

	toks, errs = tokenize(t, "<!DOCTYPE>")
	require.Len(t, toks, 1)
	assert.True(t, toks[0].ForceQuirks)
	assert.Contains(t, errorKinds(errs), ErrMissingDoctypeName)

	toks, errs = tokenize(t, "<!DOCTYPE html SYSTEM 'about:legacy-compat'>")
	require.Len(t, toks, 1)
	assert.True(t, toks[0].HasSystemID)
	assert.Equal(t, "about:legacy-compat", toks[0].SystemID)
}

func TestCDataOutsideForeignContent(t *testing.T) {
	toks, errs := tokenize(t, "<![CDATA[x]]>")
	require.NotEmpty(t, toks)
	assert.Equal(t, commentToken, toks[0].Type)
	assert.Equal(t, "[CDATA[x]]", toks[0].Data)
	assert.Contains(t, errorKinds(errs), ErrCdataInHTMLContent)
}

func TestCDataInForeignContent(t *testing.T) {
	sink := &ErrorSink{}
	in := newInputStream(sink)
	tk := newTokenizer(in, sink)
	tk.inForeignContent = func() bool { return true }
	in.append("<![CDATA[a<b]]>")
	in.markEOF()

	var toks []Token
	for {
		tok, status := tk.next()
		if status != tokOK {
			break
		}
		if tok.Type != endOfFileToken {
			toks = append(toks, tok)
		}
	}
	assert.Equal(t, "a<b", textOf(toks))
	assert.Empty(t, sink.Errors())
}

// TestChunkedTokenizationMatchesWhole feeds the same input split at every
// position and checks the token stream never changes. This exercises the
// starvation paths for tags, comments, doctypes and character references
// crossing a chunk boundary.
func TestChunkedTokenizationMatchesWhole(t *testing.T) {
	input := `<!DOCTYPE html><p class="a&amp;b">x&notin;y<!--c--><br/></p>`
	whole, wholeErrs := tokenize(t, input)

	for split := 1; split < len(input); split++ {
		sink := &ErrorSink{}
		in := newInputStream(sink)
		tk := newTokenizer(in, sink)

		var toks []Token
		collect := func() {
			for {
				tok, status := tk.next()
				if status != tokOK {
					return
				}
				if tok.Type != endOfFileToken {
					toks = append(toks, tok)
				}
			}
		}
		in.append(input[:split])
		collect()
		in.append(input[split:])
		in.markEOF()
		collect()

		require.Equal(t, whole, toks, "split at %d", split)
		require.Equal(t, wholeErrs, sink.Errors(), "split at %d", split)
	}
}
