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

// markdownextra converts Markdown Extra documents to HTML.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"zombiezen.com/go/markdownextra"
)

func main() {
	var (
		conv        markdownextra.Converter
		outPath     string
		frontMatter bool
		standalone  bool
	)
	flags := pflag.NewFlagSet("markdownextra", pflag.ContinueOnError)
	flags.BoolVar(&conv.BreaksEnabled, "breaks", false, "Render every line break as <br />")
	flags.BoolVar(&conv.EscapeRaw, "escape-html", false, "Escape raw HTML instead of passing it through")
	flags.BoolVar(&conv.NoURLLinks, "no-autolink", false, "Do not link bare URLs")
	flags.IntVar(&conv.MaxNestingDepth, "max-depth", markdownextra.DefaultMaxNestingDepth, "Maximum nesting depth")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.BoolVar(&frontMatter, "front-matter", false, "Strip a YAML or TOML front matter header")
	flags.BoolVar(&standalone, "standalone", false, "Wrap the output in a complete HTML document")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: markdownextra [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nIf no input is provided, Markdown is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		os.Exit(2)
	}
	if conv.MaxNestingDepth < 1 {
		fmt.Fprintf(os.Stderr, "invalid --max-depth %d: must be positive\n", conv.MaxNestingDepth)
		os.Exit(2)
	}

	args := flags.Args()
	if len(args) == 0 && isTerminal(os.Stdin) {
		flags.Usage()
		os.Exit(2)
	}
	source, err := readInputs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}

	var meta documentMeta
	if frontMatter {
		source, err = frontmatter.Parse(bytes.NewReader(source), &meta)
		if err != nil {
			fmt.Fprintf(os.Stderr, "parse front matter: %v\n", err)
			os.Exit(1)
		}
	}

	out, err := conv.Render(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if standalone {
		out = wrapDocument(out, meta.Title)
	} else {
		out = append(out, '\n')
	}

	if err := writeOutput(outPath, out); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		os.Exit(1)
	}
}

// documentMeta is the front matter used by the converter.
// Other keys are ignored.
type documentMeta struct {
	Title string `yaml:"title" toml:"title" json:"title"`
}

// readInputs concatenates the named files,
// separated by blank lines,
// or reads stdin if there are none.
func readInputs(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	var buf []byte
	for i, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			buf = append(buf, "\n\n"...)
		}
		buf = append(buf, data...)
	}
	return buf, nil
}

func wrapDocument(body []byte, title string) []byte {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	if title != "" {
		sb.WriteString("<title>")
		sb.WriteString(html.EscapeString(title))
		sb.WriteString("</title>\n")
	}
	sb.WriteString("</head>\n<body>\n")
	sb.Write(body)
	sb.WriteString("\n</body>\n</html>\n")
	return []byte(sb.String())
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o666)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
