package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhendrix/webparse/parser/dom"
)

const streamingDoc = `<!DOCTYPE html><html lang="en"><head><title>t &amp; u</title>` +
	`<script>x < 1 && y;</script></head><body><p>a<b>b</b><table><tr><td>c` +
	`</table><svg><circle r="1"/></svg><!--done--></body></html>`

// Feeding one byte at a time must produce exactly the tree and errors of a
// single-shot parse, no matter where tags and character references split.
func TestStreamingMatchesSingleShot(t *testing.T) {
	t.Parallel()
	wantDoc, wantErrs, err := ParseString(streamingDoc)
	require.NoError(t, err)

	for _, chunkSize := range []int{1, 2, 3, 7, 16} {
		p := New()
		for i := 0; i < len(streamingDoc); i += chunkSize {
			end := i + chunkSize
			if end > len(streamingDoc) {
				end = len(streamingDoc)
			}
			require.NoError(t, p.Feed(streamingDoc[i:end]))
		}
		doc, errs, err := p.Finish()
		require.NoError(t, err)
		assert.Equal(t, wantDoc.String(), doc.String(), "chunk size %d", chunkSize)
		assert.Equal(t, wantErrs, errs, "chunk size %d", chunkSize)
	}
}

func TestStreamingSplitInsideCharacterReference(t *testing.T) {
	t.Parallel()
	p := New()
	require.NoError(t, p.Feed("<!DOCTYPE html>a&am"))
	require.NoError(t, p.Feed("p;b"))
	doc, errs, err := p.Finish()
	require.NoError(t, err)
	assert.Empty(t, errs)
	body := doc.FirstElement(doc.DocumentElement(), "body")
	require.True(t, body.Valid())
	children := doc.ChildrenOf(body)
	require.Len(t, children, 1)
	assert.Equal(t, "a&b", doc.Node(children[0]).Data)
}

func TestScriptPauseAndResume(t *testing.T) {
	t.Parallel()
	p := New(WithScriptPause())
	err := p.Feed("<!DOCTYPE html><script>first();</script><p>after</p>")
	require.ErrorIs(t, err, ErrPaused)

	script := p.PendingScript()
	require.True(t, script.Valid())
	assert.Equal(t, "script", p.Document().Node(script).Tag)

	// Input arriving while paused is buffered, not lost.
	err = p.Feed("<p>buffered</p>")
	require.ErrorIs(t, err, ErrPaused)
	_, _, err = p.Finish()
	require.ErrorIs(t, err, ErrPaused)

	require.NoError(t, p.ResumeAfterScript())
	assert.False(t, p.PendingScript().Valid())

	doc, _, err := p.Finish()
	require.NoError(t, err)
	assert.True(t, doc.Complete)
	assert.Contains(t, doc.String(), "\"after\"")
	assert.Contains(t, doc.String(), "\"buffered\"")
}

func TestScriptPauseFiresPerScript(t *testing.T) {
	t.Parallel()
	p := New(WithScriptPause())
	err := p.Feed("<!DOCTYPE html><script>a</script><script>b</script>")
	require.ErrorIs(t, err, ErrPaused)
	first := p.PendingScript()

	// The second script was already buffered, so resuming pauses again.
	require.ErrorIs(t, p.ResumeAfterScript(), ErrPaused)
	second := p.PendingScript()
	require.True(t, second.Valid())
	assert.NotEqual(t, first, second)

	require.NoError(t, p.ResumeAfterScript())
	doc, _, err := p.Finish()
	require.NoError(t, err)
	assert.True(t, doc.Complete)
}

func TestPauseRequiresOption(t *testing.T) {
	t.Parallel()
	p := New()
	require.NoError(t, p.Feed("<!DOCTYPE html><script>a</script>x"))
	doc, _, err := p.Finish()
	require.NoError(t, err)
	assert.True(t, doc.Complete)
}

func TestAbort(t *testing.T) {
	t.Parallel()
	p := New()
	require.NoError(t, p.Feed("<!DOCTYPE html><p>partial"))
	p.Abort()

	require.ErrorIs(t, p.Feed("more"), ErrAborted)
	doc, _, err := p.Finish()
	require.ErrorIs(t, err, ErrAborted)
	assert.False(t, doc.Complete)
	// The partial tree stays inspectable.
	assert.Contains(t, doc.String(), "<p>")
}

func TestFeedAfterFinish(t *testing.T) {
	t.Parallel()
	p := New()
	require.NoError(t, p.Feed("<!DOCTYPE html>x"))
	_, _, err := p.Finish()
	require.NoError(t, err)
	require.ErrorIs(t, p.Feed("y"), ErrFinished)

	// Finish is idempotent once the parse completed.
	doc, _, err := p.Finish()
	require.NoError(t, err)
	assert.True(t, doc.Complete)
}

func TestParseReader(t *testing.T) {
	t.Parallel()
	doc, errs, err := Parse(strings.NewReader("<!DOCTYPE html><p>hi"))
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Contains(t, doc.String(), "\"hi\"")
}

func TestErrorsCarryPositions(t *testing.T) {
	t.Parallel()
	_, errs, err := ParseString("<!DOCTYPE html>\n<p>a</wrong>")
	require.NoError(t, err)
	require.NotEmpty(t, errs)
	found := false
	for _, e := range errs {
		if e.Kind == ErrUnexpectedEndTag && e.Line == 2 {
			found = true
		}
	}
	assert.True(t, found, "expected an unexpected-end-tag error on line 2, got %v", errs)
}

func TestErrorPositionsWithCRLFNewlines(t *testing.T) {
	t.Parallel()
	_, errs, err := ParseString("<!DOCTYPE html>a\r\n</wrong>")
	require.NoError(t, err)
	require.NotEmpty(t, errs)
	found := false
	for _, e := range errs {
		if e.Kind == ErrUnexpectedEndTag {
			found = true
			assert.Equal(t, 2, e.Line)
		}
	}
	assert.True(t, found, "expected an unexpected-end-tag error, got %v", errs)
}

func TestImplicitParagraphCloseRecordsOneError(t *testing.T) {
	t.Parallel()
	doc, errs, err := ParseString("<!DOCTYPE html><p>1<p>2")
	require.NoError(t, err)

	expected := "#document\n" +
		"| <!DOCTYPE html>\n" +
		"| <html>\n" +
		"|   <head>\n" +
		"|   <body>\n" +
		"|     <p>\n" +
		"|       \"1\"\n" +
		"|     <p>\n" +
		"|       \"2\""
	assert.Equal(t, expected, doc.String())

	require.Len(t, errs, 1)
	assert.Equal(t, ErrUnclosedParagraph, errs[0].Kind)
}

func TestSerializeRoundTrip(t *testing.T) {
	t.Parallel()
	input := `<!DOCTYPE html><p class="x">a &amp; b</p><ul><li>1<li>2</ul>`
	doc, _, err := ParseString(input)
	require.NoError(t, err)

	html := doc.SerializeHTML(doc.Root())
	doc2, _, err := ParseString(html)
	require.NoError(t, err)
	assert.Equal(t, doc.String(), doc2.String())
}

func TestScriptingFlagControlsNoscript(t *testing.T) {
	t.Parallel()
	input := "<!DOCTYPE html><body><noscript><p>x</p></noscript>"

	on, _, err := ParseString(input, WithScripting(true))
	require.NoError(t, err)
	off, _, err := ParseString(input, WithScripting(false))
	require.NoError(t, err)

	// With scripting on the contents are raw text, off they are markup.
	assert.Contains(t, on.String(), "\"<p>x</p>\"")
	assert.Contains(t, off.String(), "<p>")
	assert.NotContains(t, off.String(), "\"<p>x</p>\"")
}

func TestFragmentDocumentIsIndependent(t *testing.T) {
	t.Parallel()
	doc, children, errs, err := ParseFragment("<b>x</b>y", "div")
	require.NoError(t, err)
	assert.Empty(t, errs)
	require.Len(t, children, 2)
	assert.Equal(t, dom.ElementNode, doc.Node(children[0]).Type)
	assert.Equal(t, dom.TextNode, doc.Node(children[1]).Type)
}
