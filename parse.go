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
	"fmt"
	"slices"
)

// blockKind identifies a block recognizer.
type blockKind uint8

const (
	paragraphKind blockKind = iota
	indentedCodeKind
	fencedCodeKind
	atxHeadingKind
	setextHeadingKind
	listKind
	thematicBreakKind
	blockQuoteKind
	htmlBlockKind
	htmlCommentKind
	linkDefinitionKind
	tableKind
	footnoteDefinitionKind
	abbreviationDefinitionKind
	definitionListKind
	figureKind
)

// A block is a structural unit recognized from one or more consecutive lines.
// The kind-specific state lives in data,
// whose dynamic type is determined by kind.
type block struct {
	kind blockKind
	data any

	// node is the finished output of the block,
	// set by its rule's complete function.
	node *Element
	// markup is pre-rendered output used when node is nil.
	markup string

	// hidden blocks produce no output.
	hidden bool
	// interrupted is set when a blank line follows the block
	// and cleared by a continuation that accepts the interruption.
	interrupted bool
	// replacesPrevious is set by recognizers that absorb the preceding paragraph.
	replacesPrevious bool
	completed        bool
}

// A blockRule is the set of transitions for one kind of block.
type blockRule struct {
	// start attempts to begin a block of the kind with the given line.
	// prev is the block that precedes the line, if any.
	// It returns nil if the line does not start a block of the kind.
	start func(c *renderContext, line sourceLine, prev *block) *block
	// continueBlock attempts to add the line to b.
	// It reports false (without modifying b) if the line ends b.
	// A nil continueBlock means blocks of the kind span one line.
	continueBlock func(c *renderContext, line sourceLine, b *block) bool
	// complete finalizes b into its node or markup.
	complete func(c *renderContext, b *block)
}

var (
	// blockRules maps a kind to its transitions.
	blockRules map[blockKind]blockRule
	// blockStarts lists the kinds to try for a line, by the line's first character.
	blockStarts map[byte][]blockKind
	// unmarkedBlockStarts are tried for every line before blockStarts.
	unmarkedBlockStarts []blockKind
)

// parseBlocks splits lines into blocks.
func (c *renderContext) parseBlocks(lines []string) []*block {
	var blocks []*block
	var current *block
lineLoop:
	for _, raw := range lines {
		if isBlankLine(raw) {
			if current != nil {
				current.interrupted = true
			}
			continue
		}
		line := newLine(raw)

		if current != nil && !current.completed {
			if cont := blockRules[current.kind].continueBlock; cont != nil {
				if cont(c, line, current) {
					continue
				}
				c.completeBlock(current)
			}
		}

		kinds := append(slices.Clip(unmarkedBlockStarts), blockStarts[line.Body[0]]...)
		for _, kind := range kinds {
			next := blockRules[kind].start(c, line, current)
			if next == nil {
				continue
			}
			next.kind = kind
			if !next.replacesPrevious {
				blocks = c.appendBlock(blocks, current)
			}
			current = next
			continue lineLoop
		}

		if current != nil && current.kind == paragraphKind && !current.interrupted {
			p := current.data.(*paragraphData)
			p.text += "\n" + line.Body
			continue
		}
		blocks = c.appendBlock(blocks, current)
		current = &block{kind: paragraphKind, data: &paragraphData{text: line.Body}}
	}
	return c.appendBlock(blocks, current)
}

// appendBlock completes b and appends it to blocks.
// A nil b is ignored.
func (c *renderContext) appendBlock(blocks []*block, b *block) []*block {
	if b == nil {
		return blocks
	}
	c.completeBlock(b)
	return append(blocks, b)
}

func (c *renderContext) completeBlock(b *block) {
	if b.completed {
		return
	}
	b.completed = true
	if complete := blockRules[b.kind].complete; complete != nil {
		complete(c, b)
	}
}

// appendBlocks renders the visible blocks,
// each preceded by a newline, followed by a final newline.
// Definition lists that end up next to each other are merged first.
func (c *renderContext) appendBlocks(dst []byte, blocks []*block) []byte {
	for _, b := range mergeDefinitionLists(blocks) {
		if b.hidden {
			continue
		}
		dst = append(dst, '\n')
		if b.node != nil {
			dst = c.appendElement(dst, b.node)
		} else {
			dst = append(dst, b.markup...)
		}
	}
	return append(dst, '\n')
}

// mergeDefinitionLists joins consecutive definition list blocks
// (ignoring hidden blocks between them) into the first of the run.
func mergeDefinitionLists(blocks []*block) []*block {
	var merged []*block
	var last *block
	for _, b := range blocks {
		if b.hidden {
			merged = append(merged, b)
			continue
		}
		if isDefinitionList(b) && isDefinitionList(last) {
			children := last.node.Content.(Children)
			last.node.Content = append(slices.Clip(children), b.node.Content.(Children)...)
			continue
		}
		merged = append(merged, b)
		last = b
	}
	return merged
}

func isDefinitionList(b *block) bool {
	return b != nil && b.kind == definitionListKind && b.node != nil
}

// insertBlockStart registers kind for lines starting with marker,
// placing it immediately before the kind anchor.
// It panics if anchor is not registered for marker,
// since then the extension would be ordered incorrectly.
func insertBlockStart(marker byte, kind, anchor blockKind) {
	kinds := blockStarts[marker]
	i := slices.Index(kinds, anchor)
	if i < 0 {
		panic(fmt.Sprintf("markdownextra: no block recognizer %d registered for %q", anchor, marker))
	}
	blockStarts[marker] = slices.Insert(slices.Clip(kinds), i, kind)
}

// appendBlockStart registers kind for lines starting with marker,
// after all existing kinds.
func appendBlockStart(marker byte, kind blockKind) {
	blockStarts[marker] = append(blockStarts[marker], kind)
}
