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
	"strings"

	"golang.org/x/text/cases"
)

// LinkDefinition is the data of a link reference definition
// like `[label]: https://example.com "Title"`.
type LinkDefinition struct {
	Destination  string
	Title        string
	TitlePresent bool
}

// ReferenceMap is a mapping of normalized labels to link definitions.
type ReferenceMap map[string]LinkDefinition

// NormalizeLabel returns the case-folded form of a link label
// with surrounding whitespace removed,
// so that [Foo] and [foo] refer to the same definition.
func NormalizeLabel(label string) string {
	return cases.Fold().String(strings.TrimSpace(label))
}
