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
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseAttributes(t *testing.T) {
	tests := []struct {
		fragment string
		want     Attributes
	}{
		{"", nil},
		{"#intro", Attributes{{"id", "intro"}}},
		{".note", Attributes{{"class", "note"}}},
		{"#intro .note .wide", Attributes{{"id", "intro"}, {"class", "note wide"}}},
		{".note #intro", Attributes{{"id", "intro"}, {"class", "note"}}},
		{"#a #b", Attributes{{"id", "b"}}},
		{"  .x   .y  ", Attributes{{"class", "x y"}}},
		{"# . plain", nil},
	}
	for _, test := range tests {
		got := ParseAttributes(test.fragment)
		if diff := cmp.Diff(test.want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("ParseAttributes(%q) (-want +got):\n%s", test.fragment, diff)
		}
	}
}

func TestAttributesMerge(t *testing.T) {
	attrs := Attributes{{"href", "/"}, {"title", "Home"}}
	attrs.Merge(Attributes{{"id", "nav"}, {"href", "/other"}, {"class", "a b"}})
	want := Attributes{{"href", "/"}, {"title", "Home"}, {"id", "nav"}, {"class", "a b"}}
	if diff := cmp.Diff(want, attrs); diff != "" {
		t.Errorf("after Merge (-want +got):\n%s", diff)
	}
}

func TestAttributesSetDelete(t *testing.T) {
	var attrs Attributes
	attrs.Set("id", "x")
	attrs.Set("class", "c")
	attrs.Set("id", "y")
	if diff := cmp.Diff(Attributes{{"id", "y"}, {"class", "c"}}, attrs); diff != "" {
		t.Errorf("after Set (-want +got):\n%s", diff)
	}
	if got, ok := attrs.Get("class"); !ok || got != "c" {
		t.Errorf(`attrs.Get("class") = %q, %t; want "c", true`, got, ok)
	}

	attrs.Delete("id")
	attrs.Delete("missing")
	if diff := cmp.Diff(Attributes{{"class", "c"}}, attrs); diff != "" {
		t.Errorf("after Delete (-want +got):\n%s", diff)
	}
	if got, ok := attrs.Get("id"); ok {
		t.Errorf(`attrs.Get("id") = %q, true; want "", false`, got)
	}
}
