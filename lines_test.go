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

func TestSplitLines(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"", []string{""}},
		{"a", []string{"a"}},
		{"a\nb", []string{"a", "b"}},
		{"a\r\nb\rc", []string{"a", "b", "c"}},
		{"\n\na\n\nb\n\n", []string{"a", "", "b"}},
	}
	for _, test := range tests {
		got := splitLines(test.text)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("splitLines(%q) (-want +got):\n%s", test.text, diff)
		}
	}
}

func TestNewLine(t *testing.T) {
	tests := []struct {
		raw  string
		want sourceLine
	}{
		{"abc", sourceLine{Raw: "abc", Indent: 0, Body: "abc"}},
		{"  abc", sourceLine{Raw: "  abc", Indent: 2, Body: "abc"}},
		{"\tabc", sourceLine{Raw: "    abc", Indent: 4, Body: "abc"}},
		{"  \tabc", sourceLine{Raw: "    abc", Indent: 4, Body: "abc"}},
		{"a\tb", sourceLine{Raw: "a   b", Indent: 0, Body: "a   b"}},
		{"é\tb", sourceLine{Raw: "é   b", Indent: 0, Body: "é   b"}},
	}
	for _, test := range tests {
		got := newLine(test.raw)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("newLine(%q) (-want +got):\n%s", test.raw, diff)
		}
	}
}

func TestExpandTabsKeepsInvalidUTF8(t *testing.T) {
	const raw = "\xff\tx"
	if got, want := expandTabs(raw), "\xff   x"; got != want {
		t.Errorf("expandTabs(%q) = %q; want %q", raw, got, want)
	}
}

func TestIsBlankLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"", true},
		{"   ", true},
		{" \t ", true},
		{" x ", false},
		{"\u00a0", false},
	}
	for _, test := range tests {
		if got := isBlankLine(test.line); got != test.want {
			t.Errorf("isBlankLine(%q) = %t; want %t", test.line, got, test.want)
		}
	}
}

func TestChopChar(t *testing.T) {
	tests := []struct {
		s    string
		c    byte
		want bool
	}{
		{"===", '=', true},
		{"=== ", '=', true},
		{"---", '-', true},
		{"--=", '-', false},
		{"= =", '=', false},
	}
	for _, test := range tests {
		if got := chopChar(test.s, test.c); got != test.want {
			t.Errorf("chopChar(%q, %q) = %t; want %t", test.s, test.c, got, test.want)
		}
	}
}
