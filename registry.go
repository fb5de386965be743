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
	"html"

	"github.com/dlclark/regexp2"
)

// A Registry holds the definitions collected while rendering one document:
// footnotes, abbreviations, and link references.
// A Registry must not be shared between concurrent renders.
type Registry struct {
	footnotes     map[string]*footnote
	footnoteCount int

	abbreviations []*abbreviation
	links         ReferenceMap
}

type footnote struct {
	label string
	text  string
	// count is the number of references seen so far.
	count int
	// number is the footnote's position in the footnotes section,
	// assigned on first reference. Zero means unreferenced.
	number int
}

type abbreviation struct {
	term      string
	expansion string
	pattern   *regexp2.Regexp
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		footnotes: make(map[string]*footnote),
		links:     make(ReferenceMap),
	}
}

// DefineFootnote records the text of the footnote with the given label.
// Redefining a label replaces its text
// but keeps any number already assigned to it.
func (r *Registry) DefineFootnote(label, text string) {
	if fn := r.footnotes[label]; fn != nil {
		fn.text = text
		return
	}
	r.footnotes[label] = &footnote{label: label, text: text}
}

// ReferenceFootnote records a reference to the footnote with the given label.
// It reports false if no such footnote is defined.
// Otherwise it returns the footnote's number,
// assigned in first-reference order starting at 1,
// and the ordinal of this reference among the footnote's references,
// also starting at 1.
func (r *Registry) ReferenceFootnote(label string) (number, ordinal int, ok bool) {
	fn := r.footnotes[label]
	if fn == nil {
		return 0, 0, false
	}
	fn.count++
	if fn.number == 0 {
		r.footnoteCount++
		fn.number = r.footnoteCount
	}
	return fn.number, fn.count, true
}

// footnoteByNumber returns the footnote that was assigned the given number.
func (r *Registry) footnoteByNumber(n int) *footnote {
	for _, fn := range r.footnotes {
		if fn.number == n {
			return fn
		}
	}
	return nil
}

// DefineAbbreviation records the expansion of an abbreviation.
// Redefining a term replaces its expansion
// but keeps the term's original position in definition order.
func (r *Registry) DefineAbbreviation(term, expansion string) {
	for _, abbr := range r.abbreviations {
		if abbr.term == term {
			abbr.expansion = expansion
			return
		}
	}
	pattern, err := regexp2.Compile(`\b`+regexp2.Escape(term)+`\b`, 0)
	if err != nil {
		return
	}
	pattern.MatchTimeout = matchTimeout
	r.abbreviations = append(r.abbreviations, &abbreviation{
		term:      term,
		expansion: expansion,
		pattern:   pattern,
	})
}

// expandAbbreviations wraps each whole-word occurrence of every abbreviation
// in an abbr element.
// Terms are applied in definition order,
// each to the output of the previous substitution.
func (r *Registry) expandAbbreviations(text string) string {
	for _, abbr := range r.abbreviations {
		replacement := `<abbr title="` + html.EscapeString(abbr.expansion) + `">` + abbr.term + `</abbr>`
		result, err := abbr.pattern.ReplaceFunc(text, func(regexp2.Match) string {
			return replacement
		}, -1, -1)
		if err == nil {
			text = result
		}
	}
	return text
}

// DefineLink records a link reference definition.
// Redefining a label replaces the earlier definition.
func (r *Registry) DefineLink(label string, def LinkDefinition) {
	r.links[NormalizeLabel(label)] = def
}

// Link returns the link reference definition for the given label.
func (r *Registry) Link(label string) (LinkDefinition, bool) {
	def, ok := r.links[NormalizeLabel(label)]
	return def, ok
}
