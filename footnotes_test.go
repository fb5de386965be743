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
	"zombiezen.com/go/markdownextra/internal/normhtml"
)

func TestAddBackReferences(t *testing.T) {
	const backref = `<a href="#fnref1:x" rev="footnote" class="footnote-backref">&#8617;</a>`
	tests := []struct {
		name string
		text string
		refs int
		want string
	}{
		{
			name: "Paragraph",
			text: "<p>Note.</p>",
			refs: 1,
			want: "<p>Note.&#160;" + backref + "</p>",
		},
		{
			name: "TwoReferences",
			text: "<p>Note.</p>",
			refs: 2,
			want: "<p>Note.&#160;" + backref +
				` <a href="#fnref2:x" rev="footnote" class="footnote-backref">&#8617;</a></p>`,
		},
		{
			name: "NotParagraph",
			text: "<pre><code>x</code></pre>",
			refs: 1,
			want: "<pre><code>x</code></pre>\n<p>" + backref + "</p>",
		},
		{
			name: "LastParagraph",
			text: "<p>One.</p>\n<p>Two.</p>",
			refs: 1,
			want: "<p>One.</p>\n<p>Two.&#160;" + backref + "</p>",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := addBackReferences(test.text, "x", test.refs)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestFootnoteBlocks(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "MultiParagraph",
			source: "a[^1]\n\n[^1]: First paragraph.\n\n    Second paragraph.",
			want: `<p>a<sup id="fnref1:1"><a href="#fn:1" class="footnote-ref">1</a></sup></p>` +
				`<div class="footnotes"><hr /><ol><li id="fn:1">` +
				`<p>First paragraph.</p><p>Second paragraph.&#160;` +
				`<a href="#fnref1:1" rev="footnote" class="footnote-backref">&#8617;</a></p>` +
				`</li></ol></div>`,
		},
		{
			name:   "LazyContinuation",
			source: "a[^n]\n\n[^n]: one\ntwo",
			want: `<p>a<sup id="fnref1:n"><a href="#fn:n" class="footnote-ref">1</a></sup></p>` +
				`<div class="footnotes"><hr /><ol><li id="fn:n">` +
				"<p>one\ntwo&#160;" +
				`<a href="#fnref1:n" rev="footnote" class="footnote-backref">&#8617;</a></p>` +
				`</li></ol></div>`,
		},
		{
			name:   "DefinitionEndsAtUnindentedLine",
			source: "[^n]: note\n\nafter[^n]",
			want: `<p>after<sup id="fnref1:n"><a href="#fn:n" class="footnote-ref">1</a></sup></p>` +
				`<div class="footnotes"><hr /><ol><li id="fn:n">` +
				`<p>note&#160;<a href="#fnref1:n" rev="footnote" class="footnote-backref">&#8617;</a></p>` +
				`</li></ol></div>`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := render(t, new(Converter), test.source)
			want := normhtml.String(test.want)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Input:\n%s\nOutput (-want +got):\n%s", test.source, diff)
			}
		})
	}
}
