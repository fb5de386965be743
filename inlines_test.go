// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package markdownextra

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAppendLine(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"Plain", "hello", "hello"},
		{"Strong", "**a**", "<strong>a</strong>"},
		{"StrongUnderscore", "__a__", "<strong>a</strong>"},
		{"EmphasisInsideStrong", "**a *b* c**", "<strong>a <em>b</em> c</strong>"},
		{"IntrawordUnderscore", "snake_case_name", "snake_case_name"},
		{"UnclosedEmphasis", "*a", "*a"},
		{"CodeSpan", "`a <b>`", "<code>a &lt;b&gt;</code>"},
		{"CodeSpanDoubleBackticks", "``a ` b``", "<code>a ` b</code>"},
		{"CodeSpanLineBreak", "`a  \nb`", "<code>a b</code>"},
		{"Strikethrough", "~~gone~~", "<del>gone</del>"},
		{"SingleTilde", "~a~", "~a~"},
		{"InlineLink", `[a](http://x.org/ "T")`, `<a href="http://x.org/" title="T">a</a>`},
		{"LinkSingleQuotedTitle", `[a](/b 'T')`, `<a href="/b" title="T">a</a>`},
		{"LinkNestedBrackets", "[a [b] c](/d)", `<a href="/d">a [b] c</a>`},
		{"LinkTextEmphasis", "[*a*](/b)", `<a href="/b"><em>a</em></a>`},
		{"LinkWithParens", "[a](/b(c))", `<a href="/b(c)">a</a>`},
		{"LinkDestinationEncoded", "[a](/é)", `<a href="/%C3%A9">a</a>`},
		{"LinkAttributes", "[a](/b){#c .d .e}", `<a href="/b" id="c" class="d e">a</a>`},
		{"LinkAttributesSpaced", "[a](/b) {#c}", `<a href="/b" id="c">a</a>`},
		{"UnmatchedBracket", "[a", "[a"},
		{"Image", `![a b](/i.png "T")`, `<img src="/i.png" alt="a b" title="T" />`},
		{"ImageAttributes", "![a](/i.png){#p}", `<img src="/i.png" alt="a" id="p" />`},
		{"LoneBang", "wow!", "wow!"},
		{"URLTag", "<http://x.org>", `<a href="http://x.org">http://x.org</a>`},
		{"EmailTag", "<a@b.c>", `<a href="mailto:a@b.c">a@b.c</a>`},
		{"EmailTagWithScheme", "<mailto:a@b.c>", `<a href="mailto:a@b.c">mailto:a@b.c</a>`},
		{"BareURLInsideLinkText", "[http://x.org](/y)", `<a href="/y">http://x.org</a>`},
		{"BareURLMidSentence", "go to http://x.org.", `go to <a href="http://x.org">http://x.org</a>.`},
		{"RawHTMLComment", "a <!-- c --> b", "a <!-- c --> b"},
		{"RawHTMLSpaceAfterBracket", "a < b >", "a &lt; b &gt;"},
		{"Entity", "&copy; &#169; & x", "&copy; &#169; &amp; x"},
		{"Quote", `say "hi"`, "say &quot;hi&quot;"},
		{"Escape", `\*a\* \_ \# \\`, `*a* _ # \`},
		{"EscapeNotEscapable", `\a`, `\a`},
		{"BackslashLineBreak", "a\\\nb", "a<br />\nb"},
		{"TrailingSpacesLineBreak", "a   \nb", "a<br />\nb"},
		{"SingleTrailingSpace", "a \nb", "a\nb"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := newRenderContext(new(Converter))
			got := string(c.appendLine(nil, test.text, nil))
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("appendLine(%q) (-want +got):\n%s", test.text, diff)
			}
			if c.err != nil {
				t.Errorf("appendLine(%q) recorded error: %v", test.text, c.err)
			}
		})
	}
}

func TestFootnoteMarker(t *testing.T) {
	c := newRenderContext(new(Converter))
	c.registry.DefineFootnote("n", "text")
	got := string(c.appendLine(nil, "a[^n] b[^n] c[^missing]", nil))
	want := `a<sup id="fnref1:n"><a href="#fn:n" class="footnote-ref">1</a></sup>` +
		` b<sup id="fnref2:n"><a href="#fn:n" class="footnote-ref">1</a></sup>` +
		` c[^missing]`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestReferenceLinks(t *testing.T) {
	c := newRenderContext(new(Converter))
	c.registry.DefineLink("Ref", LinkDefinition{Destination: "/r", Title: "R", TitlePresent: true})
	tests := []struct {
		text string
		want string
	}{
		{"[text][ref]", `<a href="/r" title="R">text</a>`},
		{"[text] [ref]", `<a href="/r" title="R">text</a>`},
		{"[ref][]", `<a href="/r" title="R">ref</a>`},
		{"[REF]", `<a href="/r" title="R">REF</a>`},
		{"[ref]{.x}", `<a href="/r" title="R" class="x">ref</a>`},
		{"![img][ref]", `<img src="/r" alt="img" title="R" />`},
		{"[text][nope]", "[text][nope]"},
	}
	for _, test := range tests {
		got := string(c.appendLine(nil, test.text, nil))
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("appendLine(%q) (-want +got):\n%s", test.text, diff)
		}
	}
}

func TestAbbreviationsInText(t *testing.T) {
	c := newRenderContext(new(Converter))
	c.registry.DefineAbbreviation("CSS", "Cascading Style Sheets")
	got := string(c.appendLine(nil, "CSS and *CSS* and `CSS`", nil))
	want := `<abbr title="Cascading Style Sheets">CSS</abbr> and ` +
		`<em><abbr title="Cascading Style Sheets">CSS</abbr></em> and <code>CSS</code>`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMatchBrackets(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"[a]", 3},
		{"[a]b", 3},
		{"[[a]]", 5},
		{"[a [b] c] d", 9},
		{"[a", -1},
		{"a]", -1},
	}
	for _, test := range tests {
		if got := matchBrackets(test.s); got != test.want {
			t.Errorf("matchBrackets(%q) = %d; want %d", test.s, got, test.want)
		}
	}
}

func TestIsEntity(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"&amp;", true},
		{"&#169; x", true},
		{"&x", false},
		{"&;", false},
		{"&#;", false},
		{"& amp;", false},
	}
	for _, test := range tests {
		if got := isEntity(test.s); got != test.want {
			t.Errorf("isEntity(%q) = %t; want %t", test.s, got, test.want)
		}
	}
}
