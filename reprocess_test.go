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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"zombiezen.com/go/markdownextra/internal/normhtml"
)

func TestReprocessMarkup(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		tag    string
		want   string
	}{
		{
			name:   "MarkdownAttribute",
			markup: "<div markdown=\"1\">\n# Title\n\n*x*\n</div>",
			tag:    "div",
			want:   "<div>\n<h1>Title</h1>\n<p><em>x</em></p>\n</div>",
		},
		{
			name:   "MarkdownAttributeKeepsOthers",
			markup: "<section class=\"a\" markdown=\"1\">**b**</section>",
			tag:    "section",
			want:   "<section class=\"a\">\n<p><strong>b</strong></p>\n</section>",
		},
		{
			name:   "MarkdownAttributeOtherValue",
			markup: "<div markdown=\"0\">*x*</div>",
			tag:    "div",
			want:   "<div markdown=\"0\">*x*</div>",
		},
		{
			name:   "PlainUnchanged",
			markup: "<div class=\"x\">\n<p>*x*</p>\n</div>",
			tag:    "div",
			want:   "<div class=\"x\">\n<p>*x*</p>\n</div>",
		},
		{
			name:   "NestedMarker",
			markup: "<div>\n<aside markdown=\"1\">\n_y_\n</aside>\n</div>",
			tag:    "div",
			want:   "<div>\n<aside>\n<p><em>y</em></p>\n</aside>\n</div>",
		},
		{
			name:   "TextLevelChildrenNotSearched",
			markup: "<div><span markdown=\"1\">*z*</span></div>",
			tag:    "div",
			want:   "<div><span markdown=\"1\">*z*</span></div>",
		},
		{
			name:   "OpaqueChildren",
			markup: "<div>\n<pre markdown=\"1\">*p*</pre>\n</div>",
			tag:    "div",
			want:   "<div>\n<pre markdown=\"1\">*p*</pre>\n</div>",
		},
		{
			name:   "TrailingText",
			markup: "<div markdown=\"1\">*a*</div> tail",
			tag:    "div",
			want:   "<div>\n<p><em>a</em></p>\n</div> tail",
		},
		{
			name:   "RootMismatch",
			markup: "<td>x</td>",
			tag:    "td",
			want:   "<td>x</td>",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := newRenderContext(new(Converter))
			got := normhtml.String(c.reprocessMarkup(test.markup, test.tag))
			want := normhtml.String(test.want)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("reprocessMarkup(%q, %q) (-want +got):\n%s", test.markup, test.tag, diff)
			}
			if c.err != nil {
				t.Errorf("reprocessMarkup(%q, %q) recorded error: %v", test.markup, test.tag, c.err)
			}
		})
	}
}

func TestReprocessMarkupDepthLimit(t *testing.T) {
	c := newRenderContext(&Converter{MaxNestingDepth: 2})
	const markup = "<div><div><div markdown=\"1\">*x*</div></div></div>"
	if got := c.reprocessMarkup(markup, "div"); got != markup {
		t.Errorf("reprocessMarkup(%q) = %q; want unchanged", markup, got)
	}
	if !errors.Is(c.err, ErrNestingTooDeep) {
		t.Errorf("error = %v; want %v", c.err, ErrNestingTooDeep)
	}
}
