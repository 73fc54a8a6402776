// Copyright 2026 the r3bl-open-core authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import "testing"

func TestGraphemeWidth(t *testing.T) {
	tc := []struct {
		label    string
		grapheme string
		expect   int
	}{
		{"ascii", "A", 1},
		{"latin1", "ü", 1},
		{"cjk", "中", 2},
		{"hangul", "한", 2},
		{"combining mark", "́", 0},
		{"combined cluster", "é", 1},
		{"emoji", "😀", 2},
		{"flag pair clamps to two", "🇳🇱", 2},
	}

	for _, v := range tc {
		if got := GraphemeWidth(v.grapheme); got != v.expect {
			t.Errorf("%s: %q expect width %d, got %d\n",
				v.label, v.grapheme, v.expect, got)
		}
	}
}

func TestGraphemeCount(t *testing.T) {
	tc := []struct {
		label  string
		s      string
		expect int
	}{
		{"ascii", "abc", 3},
		{"decomposed cluster", "é", 1},
		{"mixed", "a中b", 3},
		{"empty", "", 0},
	}

	for _, v := range tc {
		if got := graphemeCount(v.s); got != v.expect {
			t.Errorf("%s: %q expect %d clusters, got %d\n", v.label, v.s, v.expect, got)
		}
	}
}
