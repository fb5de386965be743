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
	"strconv"
	"strings"
)

// codeBlockIndentLimit is the column width of an indent
// required to start an indented code block.
const codeBlockIndentLimit = 4

// installBaselineBlocks registers the core Markdown block recognizers.
func installBaselineBlocks() {
	blockRules = map[blockKind]blockRule{
		paragraphKind: {
			complete: completeParagraph,
		},
		indentedCodeKind: {
			start:         startIndentedCode,
			continueBlock: continueIndentedCode,
			complete:      completeIndentedCode,
		},
		fencedCodeKind: {
			start:         startFencedCode,
			continueBlock: continueFencedCode,
			complete:      completeFencedCode,
		},
		atxHeadingKind: {
			start:    startATXHeading,
			complete: completeHeading,
		},
		setextHeadingKind: {
			start:    startSetextHeading,
			complete: completeHeading,
		},
		listKind: {
			start:         startList,
			continueBlock: continueList,
			complete:      completeList,
		},
		thematicBreakKind: {
			start:    startThematicBreak,
			complete: completeThematicBreak,
		},
		htmlBlockKind: {
			start:         startHTMLBlock,
			continueBlock: continueHTMLBlock,
			complete:      completeHTMLBlock,
		},
		htmlCommentKind: {
			start:         startHTMLComment,
			continueBlock: continueHTMLComment,
			complete:      completeHTMLComment,
		},
		linkDefinitionKind: {
			start: startLinkDefinition,
		},
		tableKind: {
			start:    startTable,
			complete: completeTable,
		},
	}

	unmarkedBlockStarts = []blockKind{indentedCodeKind}
	blockStarts = map[byte][]blockKind{
		'#': {atxHeadingKind},
		'*': {thematicBreakKind, listKind},
		'+': {listKind},
		'-': {setextHeadingKind, tableKind, thematicBreakKind, listKind},
		':': {tableKind},
		'<': {htmlCommentKind, htmlBlockKind},
		'=': {setextHeadingKind},
		'[': {linkDefinitionKind},
		'_': {thematicBreakKind},
		'`': {fencedCodeKind},
		'|': {tableKind},
		'~': {fencedCodeKind},
	}
	for c := byte('0'); c <= '9'; c++ {
		blockStarts[c] = []blockKind{listKind}
	}
}

type paragraphData struct {
	text string
}

func completeParagraph(c *renderContext, b *block) {
	p := b.data.(*paragraphData)
	b.node = &Element{Name: "p", Content: Line(p.text)}
}

type codeData struct {
	text string
}

func startIndentedCode(c *renderContext, line sourceLine, prev *block) *block {
	if prev != nil && prev.kind == paragraphKind && !prev.interrupted {
		// Indented code cannot interrupt a paragraph.
		return nil
	}
	if line.Indent < codeBlockIndentLimit {
		return nil
	}
	return &block{data: &codeData{text: line.Raw[codeBlockIndentLimit:]}}
}

func continueIndentedCode(c *renderContext, line sourceLine, b *block) bool {
	if line.Indent < codeBlockIndentLimit {
		return false
	}
	code := b.data.(*codeData)
	if b.interrupted {
		code.text += "\n"
		b.interrupted = false
	}
	code.text += "\n" + line.Raw[codeBlockIndentLimit:]
	return true
}

func completeIndentedCode(c *renderContext, b *block) {
	code := b.data.(*codeData)
	b.node = &Element{
		Name:    "pre",
		Content: Multiple{&Element{Name: "code", Content: Text(code.text)}},
	}
}

type fencedCodeData struct {
	char     byte
	language string
	text     string
	closed   bool
}

// parseCodeFence returns the number of fence characters
// at the start of line, or zero if there are fewer than three.
func parseCodeFence(line string, char byte) int {
	n := 0
	for n < len(line) && line[n] == char {
		n++
	}
	if n < 3 {
		return 0
	}
	return n
}

func startFencedCode(c *renderContext, line sourceLine, prev *block) *block {
	char := line.Body[0]
	n := parseCodeFence(line.Body, char)
	if n == 0 {
		return nil
	}
	info := strings.Trim(line.Body[n:], " ")
	if strings.Contains(info, "`") {
		return nil
	}
	language := info
	if i := strings.IndexAny(info, " \t\n\f\r"); i >= 0 {
		language = info[:i]
	}
	return &block{data: &fencedCodeData{char: char, language: language}}
}

func continueFencedCode(c *renderContext, line sourceLine, b *block) bool {
	code := b.data.(*fencedCodeData)
	if code.closed {
		return false
	}
	if b.interrupted {
		code.text += "\n"
		b.interrupted = false
	}
	if n := parseCodeFence(line.Body, code.char); n > 0 && strings.Trim(line.Body[n:], " ") == "" {
		code.closed = true
		return true
	}
	code.text += "\n" + line.Raw
	return true
}

func completeFencedCode(c *renderContext, b *block) {
	code := b.data.(*fencedCodeData)
	elem := &Element{Name: "code", Content: Text(strings.TrimPrefix(code.text, "\n"))}
	if code.language != "" {
		elem.Attrs = Attributes{{Key: "class", Val: "language-" + code.language}}
	}
	b.node = &Element{Name: "pre", Content: Multiple{elem}}
}

type headingData struct {
	level int
	text  string
	attrs Attributes
}

func startATXHeading(c *renderContext, line sourceLine, prev *block) *block {
	if len(line.Body) < 2 {
		return nil
	}
	level := 0
	for level < len(line.Body) && line.Body[level] == '#' {
		level++
	}
	if level > 6 {
		return nil
	}
	return &block{data: &headingData{
		level: level,
		text:  strings.Trim(line.Body, "# "),
	}}
}

func startSetextHeading(c *renderContext, line sourceLine, prev *block) *block {
	if prev == nil || prev.kind != paragraphKind || prev.interrupted {
		return nil
	}
	if !chopChar(line.Body, line.Body[0]) {
		return nil
	}
	level := 2
	if line.Body[0] == '=' {
		level = 1
	}
	return &block{
		replacesPrevious: true,
		data: &headingData{
			level: level,
			text:  prev.data.(*paragraphData).text,
		},
	}
}

func completeHeading(c *renderContext, b *block) {
	h := b.data.(*headingData)
	b.node = &Element{
		Name:    "h" + strconv.Itoa(h.level),
		Attrs:   h.attrs,
		Content: Line(h.text),
	}
}

type listData struct {
	ordered bool
	indent  int
	// start is the number of the first item of an ordered list.
	start string
	items [][]string
	loose bool
}

// parseListMarker returns the end of the list item marker at the start of line,
// or -1 if there is none.
// Bullet markers are one of "*+-"; ordered markers are digits followed by a period.
func parseListMarker(line string, ordered bool) (end int) {
	if !ordered {
		if line != "" && strings.IndexByte("*+-", line[0]) >= 0 {
			return 1
		}
		return -1
	}
	n := 0
	for n < len(line) && isASCIIDigit(line[n]) {
		n++
	}
	if n == 0 || n >= len(line) || line[n] != '.' {
		return -1
	}
	return n + 1
}

func startList(c *renderContext, line sourceLine, prev *block) *block {
	ordered := line.Body[0] > '-'
	end := parseListMarker(line.Body, ordered)
	if end < 0 || end >= len(line.Body) || line.Body[end] != ' ' {
		return nil
	}
	list := &listData{
		ordered: ordered,
		indent:  line.Indent,
		items:   [][]string{{strings.TrimLeft(line.Body[end:], " ")}},
	}
	if ordered {
		if start := line.Body[:end-1]; start != "1" {
			list.start = start
		}
	}
	return &block{data: list}
}

func continueList(c *renderContext, line sourceLine, b *block) bool {
	list := b.data.(*listData)
	if line.Indent == list.indent {
		if end := parseListMarker(line.Body, list.ordered); end >= 0 {
			if rest := line.Body[end:]; rest == "" || rest[0] == ' ' {
				if b.interrupted {
					list.appendLine("")
					list.loose = true
					b.interrupted = false
				}
				list.items = append(list.items, []string{strings.TrimLeft(rest, " ")})
				return true
			}
		}
	}
	if line.Body[0] == '[' && !strings.HasPrefix(line.Body, "[^") && c.defineLink(line) {
		return true
	}
	if !b.interrupted {
		list.appendLine(trimIndent(line.Raw, 4))
		return true
	}
	if line.Indent > 0 {
		list.appendLine("")
		list.appendLine(trimIndent(line.Raw, 4))
		b.interrupted = false
		return true
	}
	return false
}

// appendLine adds a line to the last item of the list.
func (list *listData) appendLine(s string) {
	last := len(list.items) - 1
	list.items[last] = append(list.items[last], s)
}

func completeList(c *renderContext, b *block) {
	list := b.data.(*listData)
	items := make(Children, 0, len(list.items))
	for _, lines := range list.items {
		if list.loose && lines[len(lines)-1] != "" {
			lines = append(lines, "")
		}
		items = append(items, &Element{Name: "li", Content: ListItem(lines)})
	}
	node := &Element{Name: "ul", Content: items}
	if list.ordered {
		node.Name = "ol"
		if list.start != "" {
			node.Attrs = Attributes{{Key: "start", Val: list.start}}
		}
	}
	b.node = node
}

// isThematicBreak reports whether the line consists of three or more
// '*', '-', or '_' characters (all the same), optionally separated by spaces.
func isThematicBreak(line string) bool {
	want := line[0]
	if want != '*' && want != '-' && want != '_' {
		return false
	}
	n := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case want:
			n++
		case ' ':
			// Ignore
		default:
			return false
		}
	}
	return n >= 3
}

func startThematicBreak(c *renderContext, line sourceLine, prev *block) *block {
	if !isThematicBreak(line.Body) {
		return nil
	}
	return &block{}
}

func completeThematicBreak(c *renderContext, b *block) {
	b.node = &Element{Name: "hr"}
}

type htmlBlockData struct {
	name   string
	depth  int
	markup string
	closed bool
	void   bool
}

func startHTMLBlock(c *renderContext, line sourceLine, prev *block) *block {
	if c.opts.EscapeRaw {
		return nil
	}
	tag, ok := parseHTMLOpenTag(line.Body)
	if !ok {
		return nil
	}
	name := strings.ToLower(tag.name)
	if IsTextLevel(name) {
		return nil
	}
	data := &htmlBlockData{name: tag.name, markup: line.Body}
	void := tag.selfClosing || isVoidElement(name)
	if remainder := line.Body[tag.end:]; strings.TrimSpace(remainder) == "" {
		if void {
			data.closed = true
			data.void = true
		}
	} else {
		if void {
			return nil
		}
		if hasClosingTagSuffix(remainder, tag.name) {
			data.closed = true
		}
	}
	return &block{data: data}
}

func continueHTMLBlock(c *renderContext, line sourceLine, b *block) bool {
	data := b.data.(*htmlBlockData)
	if data.closed {
		return false
	}
	if tag, ok := parseHTMLOpenTag(line.Body); ok && !tag.selfClosing && strings.EqualFold(tag.name, data.name) {
		data.depth++
	}
	if hasClosingTagSuffix(line.Body, data.name) {
		if data.depth > 0 {
			data.depth--
		} else {
			data.closed = true
		}
	}
	if b.interrupted {
		data.markup += "\n"
		b.interrupted = false
	}
	data.markup += "\n" + line.Raw
	return true
}

func completeHTMLBlock(c *renderContext, b *block) {
	b.markup = b.data.(*htmlBlockData).markup
}

type htmlCommentData struct {
	markup string
	closed bool
}

func startHTMLComment(c *renderContext, line sourceLine, prev *block) *block {
	if c.opts.EscapeRaw || !strings.HasPrefix(line.Body, "<!--") {
		return nil
	}
	return &block{data: &htmlCommentData{
		markup: line.Raw,
		closed: strings.HasSuffix(line.Body, "-->"),
	}}
}

func continueHTMLComment(c *renderContext, line sourceLine, b *block) bool {
	comment := b.data.(*htmlCommentData)
	if comment.closed {
		return false
	}
	if b.interrupted {
		comment.markup += "\n"
		b.interrupted = false
	}
	comment.markup += "\n" + line.Raw
	comment.closed = strings.HasSuffix(line.Body, "-->")
	return true
}

func completeHTMLComment(c *renderContext, b *block) {
	b.markup = b.data.(*htmlCommentData).markup
}

func startLinkDefinition(c *renderContext, line sourceLine, prev *block) *block {
	if !c.defineLink(line) {
		return nil
	}
	return &block{hidden: true}
}

// defineLink registers the link reference definition on line, if any.
func (c *renderContext) defineLink(line sourceLine) bool {
	m, ok := find(linkDefinitionPattern, line.Body)
	if !ok {
		return false
	}
	def := LinkDefinition{Destination: m.group(2)}
	if title := m.group(3); title != "" {
		def.Title = title
		def.TitlePresent = true
	}
	c.registry.DefineLink(m.group(1), def)
	return true
}

type tableData struct {
	// alignments holds the text-align value for each column,
	// or the empty string for unaligned columns.
	alignments []string
	header     []*Element
	rows       []*Element
}

func startTable(c *renderContext, line sourceLine, prev *block) *block {
	if prev == nil || prev.kind != paragraphKind || prev.interrupted {
		return nil
	}
	headerText := prev.data.(*paragraphData).text
	if !strings.Contains(headerText, "|") || strings.TrimRight(line.Body, " -:|") != "" {
		return nil
	}

	table := new(tableData)
	divider := strings.Trim(strings.TrimSpace(line.Body), "|")
	for _, cell := range strings.Split(divider, "|") {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		var align string
		if cell[0] == ':' {
			align = "left"
		}
		if cell[len(cell)-1] == ':' {
			if align == "left" {
				align = "center"
			} else {
				align = "right"
			}
		}
		table.alignments = append(table.alignments, align)
	}

	for i, cell := range splitTableRow(headerText) {
		th := &Element{Name: "th", Content: Line(cell)}
		if align := table.alignment(i); align != "" {
			th.Attrs = Attributes{{Key: "style", Val: "text-align: " + align + ";"}}
		}
		table.header = append(table.header, th)
	}
	return &block{replacesPrevious: true, data: table}
}

func (table *tableData) alignment(column int) string {
	if column >= len(table.alignments) {
		return ""
	}
	return table.alignments[column]
}

// splitTableRow splits a table row into trimmed cells.
// A single leading and trailing pipe are ignored.
// Escaped pipes and pipes inside code spans do not separate cells.
func splitTableRow(row string) []string {
	row = strings.TrimPrefix(strings.TrimLeft(row, " "), "|")
	if trimmed := strings.TrimRight(row, " "); strings.HasSuffix(trimmed, "|") && !isEscaped(trimmed, len(trimmed)-1) {
		row = trimmed[:len(trimmed)-1]
	}
	var cells []string
	start := 0
	for i := 0; i < len(row); i++ {
		switch row[i] {
		case '\\':
			i++
		case '`':
			if j := strings.IndexByte(row[i+1:], '`'); j > 0 {
				i += j + 1
			}
		case '|':
			cells = append(cells, strings.TrimSpace(row[start:i]))
			start = i + 1
		}
	}
	return append(cells, strings.TrimSpace(row[start:]))
}

// isEscaped reports whether the byte at i is preceded
// by an odd number of backslashes.
func isEscaped(s string, i int) bool {
	n := 0
	for i-n-1 >= 0 && s[i-n-1] == '\\' {
		n++
	}
	return n%2 == 1
}

func completeTable(c *renderContext, b *block) {
	table := b.data.(*tableData)
	b.node = &Element{
		Name: "table",
		Content: Children{
			{Name: "thead", Content: Children{{Name: "tr", Content: Children(table.header)}}},
			{Name: "tbody", Content: Children(append([]*Element{}, table.rows...))},
		},
	}
}
