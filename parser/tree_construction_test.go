package parser

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhendrix/webparse/parser/dom"
)

type treeCase struct {
	input    string
	expected string
}

// loadTreeCases reads a .dat conformance file: each case is a "#data"
// section with raw input lines, an "#errors" section we only count, and a
// "#document" section holding the expected "| "-prefixed tree dump.
func loadTreeCases(t *testing.T, path string) []treeCase {
	t.Helper()
	raw, err := ioutil.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(string(raw), "\n")
	var cases []treeCase
	i := 0
	for i < len(lines) {
		if lines[i] != "#data" {
			i++
			continue
		}
		i++
		var input []string
		for i < len(lines) && lines[i] != "#errors" {
			input = append(input, lines[i])
			i++
		}
		for i < len(lines) && lines[i] != "#document" {
			i++
		}
		i++
		var tree []string
		for i < len(lines) && strings.HasPrefix(lines[i], "| ") {
			tree = append(tree, lines[i])
			i++
		}
		cases = append(cases, treeCase{
			input:    strings.Join(input, "\n"),
			expected: "#document\n" + strings.Join(tree, "\n"),
		})
	}
	require.NotEmpty(t, cases, "no cases in %s", path)
	return cases
}

func TestTreeConstruction(t *testing.T) {
	t.Parallel()
	files, err := filepath.Glob(filepath.Join("testdata", "tree-construction", "*.dat"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		file := file
		t.Run(filepath.Base(file), func(t *testing.T) {
			t.Parallel()
			for i, tc := range loadTreeCases(t, file) {
				tc := tc
				t.Run(fmt.Sprintf("%02d", i), func(t *testing.T) {
					doc, _, err := ParseString(tc.input)
					require.NoError(t, err)
					got := doc.String()
					if got != tc.expected {
						dmp := diffmatchpatch.New()
						diffs := dmp.DiffMain(tc.expected, got, false)
						t.Errorf("tree mismatch for %q:\n%s", tc.input, dmp.DiffPrettyText(diffs))
					}
				})
			}
		})
	}
}

func TestParseFragment(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		input      string
		contextTag string
		expected   []string
	}{
		{
			name:       "cell in row context",
			input:      "<td>x</td>",
			contextTag: "tr",
			expected:   []string{"| <td>\n|   \"x\""},
		},
		{
			name:       "implied list item ends",
			input:      "<li>1<li>2",
			contextTag: "ul",
			expected:   []string{"| <li>\n|   \"1\"", "| <li>\n|   \"2\""},
		},
		{
			name:       "rcdata context keeps markup as text",
			input:      "a<b",
			contextTag: "title",
			expected:   []string{"| \"a<b\""},
		},
		{
			name:       "body context",
			input:      "<p>hi</p>",
			contextTag: "body",
			expected:   []string{"| <p>\n|   \"hi\""},
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			doc, children, _, err := ParseFragment(tc.input, tc.contextTag)
			require.NoError(t, err)
			require.Len(t, children, len(tc.expected))
			for i, ref := range children {
				assert.Equal(t, tc.expected[i], doc.DumpTree(ref))
			}
		})
	}
}

func TestQuirksModeSelection(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  dom.QuirksMode
	}{
		{"no doctype", "x", dom.Quirks},
		{"html5 doctype", "<!DOCTYPE html>x", dom.NoQuirks},
		{"empty doctype", "<!DOCTYPE>", dom.Quirks},
		{
			"html4 transitional without system id",
			`<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN">`,
			dom.Quirks,
		},
		{
			"html4 transitional with system id",
			`<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN" "http://www.w3.org/TR/html4/loose.dtd">`,
			dom.LimitedQuirks,
		},
		{
			"xhtml transitional",
			`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">`,
			dom.LimitedQuirks,
		},
		{"legacy html public id", `<!DOCTYPE html PUBLIC "HTML">`, dom.Quirks},
		{"legacy compat system id", `<!DOCTYPE html SYSTEM "about:legacy-compat">`, dom.NoQuirks},
		{"wrong name", "<!DOCTYPE foo>", dom.Quirks},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			doc, _, err := ParseString(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, doc.QuirksMode)
		})
	}
}
