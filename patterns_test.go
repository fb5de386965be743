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

func TestFind(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want submatch
		ok   bool
	}{
		{
			name: "ASCII",
			s:    "[^note] rest",
			want: submatch{start: 0, end: 7, groups: []string{"[^note]", "note"}},
			ok:   true,
		},
		{
			name: "MultiByte",
			s:    "[^é] rest",
			want: submatch{start: 0, end: 5, groups: []string{"[^é]", "é"}},
			ok:   true,
		},
		{
			name: "NoMatch",
			s:    "[note]",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, ok := find(footnoteMarkerPattern, test.s)
			if ok != test.ok {
				t.Fatalf("find(%q) ok = %t; want %t", test.s, ok, test.ok)
			}
			if diff := cmp.Diff(test.want, got, cmp.AllowUnexported(submatch{})); diff != "" {
				t.Errorf("find(%q) (-want +got):\n%s", test.s, diff)
			}
		})
	}
}

func TestFindUnanchoredOffsets(t *testing.T) {
	const s = "ünïcödé http://x.org/ü after"
	m, ok := find(bareURLPattern, s)
	if !ok {
		t.Fatalf("find(%q) did not match", s)
	}
	if got, want := s[m.start:m.end], "http://x.org/ü"; got != want {
		t.Errorf("s[m.start:m.end] = %q; want %q", got, want)
	}
}

func TestFindOptionalGroup(t *testing.T) {
	m, ok := find(emailTagPattern, "<a@b.c>")
	if !ok {
		t.Fatal("no match")
	}
	if got := m.group(2); got != "" {
		t.Errorf("m.group(2) = %q; want empty", got)
	}
	if got := m.group(9); got != "" {
		t.Errorf("m.group(9) = %q; want empty", got)
	}
}

func TestAttributePatterns(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want string
	}{
		{"Heading", "Title {#a .b}", "#a .b"},
		{"HeadingClosingHashes", "Title ## {.b}", ".b"},
		{"HeadingTrailingSpace", "Title {#a}  ", "#a"},
		{"HeadingNotAtEnd", "Title {#a} more", ""},
		{"HeadingBadToken", "Title {a}", ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m, _ := find(headingAttributesPattern, test.s)
			if got := m.group(1); got != test.want {
				t.Errorf("attributes of %q = %q; want %q", test.s, got, test.want)
			}
		})
	}
}
