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

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadInputs(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.md")
	b := filepath.Join(dir, "b.md")
	if err := os.WriteFile(a, []byte("A[^1]\n"), 0o666); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("[^1]: Note.\n"), 0o666); err != nil {
		t.Fatal(err)
	}
	got, err := readInputs([]string{a, b})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("A[^1]\n\n\n[^1]: Note.\n", string(got)); diff != "" {
		t.Errorf("readInputs (-want +got):\n%s", diff)
	}

	if _, err := readInputs([]string{filepath.Join(dir, "missing.md")}); err == nil {
		t.Error("readInputs with missing file did not return an error")
	}
}

func TestWrapDocument(t *testing.T) {
	got := string(wrapDocument([]byte("<p>x</p>"), "A & B"))
	want := "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n" +
		"<title>A &amp; B</title>\n</head>\n<body>\n<p>x</p>\n</body>\n</html>\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wrapDocument (-want +got):\n%s", diff)
	}
}
