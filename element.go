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
	"golang.org/x/net/html/atom"
)

// An Element is a node of the output tree:
// a tag name, an ordered set of attributes, and content.
// An Element with nil Content is a void element and renders as <name />.
type Element struct {
	Name    string
	Attrs   Attributes
	Content Content

	// nonNestables lists the inline kinds that must not be recognized
	// inside this element's Line content.
	nonNestables []inlineKind
}

// Content is the content of an [Element].
// It is one of [Text], [Line], [Markdown], [Lines], [ListItem],
// [Children], [Raw], or [Multiple].
type Content interface {
	isContent()
}

// Text is content that is escaped and written as-is.
type Text string

// Line is content that is parsed as a single run of inline Markdown.
type Line string

// Markdown is content that is parsed as block-level Markdown.
type Markdown string

// Lines is block-level Markdown that has already been split into lines.
type Lines []string

// ListItem is block-level Markdown for a list item.
// It renders like [Lines], except that a tight item
// has the paragraph tags around its first paragraph removed.
type ListItem []string

// Children is a sequence of child elements.
type Children []*Element

// Raw is pre-rendered HTML that is written verbatim.
type Raw string

// Multiple is a sequence of heterogeneous parts rendered back to back.
type Multiple []Part

func (Text) isContent()     {}
func (Line) isContent()     {}
func (Markdown) isContent() {}
func (Lines) isContent()    {}
func (ListItem) isContent() {}
func (Children) isContent() {}
func (Raw) isContent()      {}
func (Multiple) isContent() {}

// A Part is an item of [Multiple] content.
// It is either an *[Element] or a [Source].
type Part interface {
	isPart()
}

// Source is a [Part] of unparsed Markdown.
// It is rendered as block-level Markdown if it contains a line break
// and as inline Markdown otherwise.
type Source string

func (*Element) isPart() {}
func (Source) isPart()   {}

// textLevelElements is the set of tags that are never treated
// as the start of an HTML block and never reprocessed as one.
var textLevelElements = map[string]struct{}{
	atom.A.String():        {},
	atom.Br.String():       {},
	atom.Bdo.String():      {},
	atom.Abbr.String():     {},
	atom.Blink.String():    {},
	"nextid":               {},
	atom.Acronym.String():  {},
	atom.Basefont.String(): {},
	atom.B.String():        {},
	atom.Em.String():       {},
	atom.Big.String():      {},
	atom.Cite.String():     {},
	atom.Small.String():    {},
	atom.Spacer.String():   {},
	atom.Listing.String():  {},
	atom.I.String():        {},
	atom.Rp.String():       {},
	atom.Del.String():      {},
	atom.Code.String():     {},
	atom.Strike.String():   {},
	atom.Marquee.String():  {},
	atom.Q.String():        {},
	atom.Rt.String():       {},
	atom.Ins.String():      {},
	atom.Font.String():     {},
	atom.Strong.String():   {},
	atom.S.String():        {},
	atom.Tt.String():       {},
	atom.Kbd.String():      {},
	atom.Mark.String():     {},
	atom.U.String():        {},
	"xm":                   {},
	atom.Sub.String():      {},
	atom.Nobr.String():     {},
	atom.Sup.String():      {},
	atom.Ruby.String():     {},
	atom.Var.String():      {},
	atom.Span.String():     {},
	atom.Wbr.String():      {},
	atom.Time.String():     {},
}

// IsTextLevel reports whether the lowercased tag name
// is a text-level element.
// Text-level elements do not start HTML blocks
// and are left untouched when raw HTML is reprocessed.
func IsTextLevel(tag string) bool {
	_, ok := textLevelElements[tag]
	return ok
}

var voidElements = map[string]struct{}{
	atom.Area.String():    {},
	atom.Base.String():    {},
	atom.Br.String():      {},
	atom.Col.String():     {},
	atom.Command.String(): {},
	atom.Embed.String():   {},
	atom.Hr.String():      {},
	atom.Img.String():     {},
	atom.Input.String():   {},
	atom.Link.String():    {},
	atom.Meta.String():    {},
	atom.Param.String():   {},
	atom.Source.String():  {},
}

func isVoidElement(tag string) bool {
	_, ok := voidElements[tag]
	return ok
}
