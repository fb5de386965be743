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

import "testing"

func TestNormalizeURI(t *testing.T) {
	tests := []struct {
		s    string
		want string
	}{
		{"", ""},
		{"https://example.com/a?b=c&d=e#f", "https://example.com/a?b=c&d=e#f"},
		{"/path with space", "/path%20with%20space"},
		{"/café", "/caf%C3%A9"},
		{"/already%20encoded", "/already%20encoded"},
		{"/lower%2fhex", "/lower%2fhex"},
		{"/bad%zz", "/bad%25zz"},
		{"/trailing%", "/trailing%25"},
		{"/short%2", "/short%252"},
		{"/quote\"<>", "/quote%22%3C%3E"},
		{"/brackets[]", "/brackets%5B%5D"},
	}
	for _, test := range tests {
		if got := NormalizeURI(test.s); got != test.want {
			t.Errorf("NormalizeURI(%q) = %q; want %q", test.s, got, test.want)
		}
	}
}
