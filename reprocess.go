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
	"bytes"
	"errors"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// markdownAttribute is the attribute that marks a raw HTML element
// whose content should be parsed as Markdown.
const markdownAttribute = "markdown"

// fragmentContext is the element that raw HTML blocks are parsed inside of.
var fragmentContext = &html.Node{
	Type:     html.ElementNode,
	Data:     atom.Body.String(),
	DataAtom: atom.Body,
}

// opaqueElements are rendered as parsed, without looking at their children.
// Their content is either raw text or whitespace-sensitive.
var opaqueElements = map[string]struct{}{
	atom.Iframe.String():    {},
	atom.Listing.String():   {},
	atom.Noembed.String():   {},
	atom.Noframes.String():  {},
	atom.Noscript.String():  {},
	atom.Plaintext.String(): {},
	atom.Pre.String():       {},
	atom.Script.String():    {},
	atom.Style.String():     {},
	atom.Textarea.String():  {},
	atom.Title.String():     {},
	atom.Xmp.String():       {},
}

// reprocessMarkup walks a raw HTML block whose opening tag is name.
// Elements marked with markdown="1" have their content rendered as Markdown.
// Other block-level elements are searched recursively for such markers.
// If the fragment cannot be reprocessed, it is returned unchanged.
func (c *renderContext) reprocessMarkup(markup string, name string) string {
	nodes, err := html.ParseFragment(strings.NewReader(markup), fragmentContext)
	if err != nil || len(nodes) == 0 {
		return markup
	}
	if root := nodes[0]; root.Type != html.ElementNode || root.Data != strings.ToLower(name) {
		// The parser moved or dropped the opening tag,
		// so the tree no longer matches the source.
		return markup
	}
	var out []byte
	for _, n := range nodes {
		if n.Type != html.ElementNode {
			out, err = appendNode(out, n)
		} else {
			out, err = c.reprocessElement(out, n, 0)
		}
		if err != nil {
			if errors.Is(err, ErrNestingTooDeep) && c.err == nil {
				c.err = err
			}
			return markup
		}
	}
	return string(out)
}

// reprocessElement renders n, reprocessing its content.
// depth is the number of elements above n in the fragment.
func (c *renderContext) reprocessElement(dst []byte, n *html.Node, depth int) ([]byte, error) {
	if depth >= c.maxDepth {
		return dst, ErrNestingTooDeep
	}
	if _, opaque := opaqueElements[n.Data]; opaque || isVoidElement(n.Data) || n.Namespace != "" {
		return appendNode(dst, n)
	}

	var content []byte
	var err error
	if val, ok := getAttribute(n, markdownAttribute); ok && val == "1" {
		var source []byte
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if source, err = appendNode(source, child); err != nil {
				return dst, err
			}
		}
		deleteAttribute(n, markdownAttribute)
		content = append(content, '\n')
		content = c.appendText(content, string(source))
		content = append(content, '\n')
	} else {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.ElementNode && !IsTextLevel(child.Data) {
				content, err = c.reprocessElement(content, child, depth+1)
			} else {
				content, err = appendNode(content, child)
			}
			if err != nil {
				return dst, err
			}
		}
	}

	dst = append(dst, '<')
	dst = append(dst, n.Data...)
	for _, attr := range n.Attr {
		dst = append(dst, ' ')
		if attr.Namespace != "" {
			dst = append(dst, attr.Namespace...)
			dst = append(dst, ':')
		}
		dst = append(dst, attr.Key...)
		dst = append(dst, `="`...)
		dst = appendEscapedAttribute(dst, attr.Val)
		dst = append(dst, '"')
	}
	dst = append(dst, '>')
	dst = append(dst, content...)
	dst = append(dst, "</"...)
	dst = append(dst, n.Data...)
	return append(dst, '>'), nil
}

// appendNode appends the HTML serialization of n.
func appendNode(dst []byte, n *html.Node) ([]byte, error) {
	buf := bytes.NewBuffer(dst)
	if err := html.Render(buf, n); err != nil {
		return dst, err
	}
	return buf.Bytes(), nil
}

func getAttribute(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

func deleteAttribute(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, attr := range n.Attr {
		if attr.Namespace != "" || attr.Key != key {
			attrs = append(attrs, attr)
		}
	}
	n.Attr = attrs
}
