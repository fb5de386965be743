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

import "strings"

// An Attribute is a single HTML attribute.
type Attribute struct {
	Key string
	Val string
}

// Attributes is an ordered set of HTML attributes.
// Keys are unique.
type Attributes []Attribute

// ParseAttributes parses an attribute annotation fragment
// like "#intro .note .wide" (the part between the braces of "{#intro .note .wide}").
// A "#name" token sets the id attribute, with the last one winning.
// Each ".name" token appends to the space-separated class attribute.
// Any other token is ignored.
func ParseAttributes(fragment string) Attributes {
	var id string
	var classes []string
	for _, tok := range strings.Fields(fragment) {
		switch {
		case len(tok) < 2:
		case tok[0] == '#':
			id = tok[1:]
		case tok[0] == '.':
			classes = append(classes, tok[1:])
		}
	}
	var attrs Attributes
	if id != "" {
		attrs = append(attrs, Attribute{Key: "id", Val: id})
	}
	if len(classes) > 0 {
		attrs = append(attrs, Attribute{Key: "class", Val: strings.Join(classes, " ")})
	}
	return attrs
}

// Get returns the value of the attribute with the given key.
func (attrs Attributes) Get(key string) (val string, ok bool) {
	for _, a := range attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Set sets the value of the attribute with the given key,
// appending it if it is not already present.
func (attrs *Attributes) Set(key, val string) {
	for i := range *attrs {
		if (*attrs)[i].Key == key {
			(*attrs)[i].Val = val
			return
		}
	}
	*attrs = append(*attrs, Attribute{Key: key, Val: val})
}

// Delete removes the attribute with the given key, if present.
func (attrs *Attributes) Delete(key string) {
	for i, a := range *attrs {
		if a.Key == key {
			*attrs = append((*attrs)[:i:i], (*attrs)[i+1:]...)
			return
		}
	}
}

// Merge adds the attributes in other whose keys are not already present.
// Existing attributes keep their values.
func (attrs *Attributes) Merge(other Attributes) {
	for _, a := range other {
		if _, exists := attrs.Get(a.Key); !exists {
			*attrs = append(*attrs, a)
		}
	}
}
