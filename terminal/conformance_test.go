// Copyright 2026 the r3bl-open-core authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import (
	"os"
	"testing"

	"github.com/tidwall/gjson"
)

// The corpus in testdata/conformance.json is the decoder's acceptance
// contract: (input bytes, expected action sequence) pairs. The fixtures are
// data, never regenerated from the code under test; a behavior change means
// editing the corpus deliberately.
func TestConformanceCorpus(t *testing.T) {
	data, err := os.ReadFile("testdata/conformance.json")
	if err != nil {
		t.Fatalf("read corpus: %s\n", err)
	}
	doc := gjson.ParseBytes(data)

	if v := doc.Get("version").Int(); v != 1 {
		t.Fatalf("corpus version expect 1, got %d\n", v)
	}

	count := 0
	doc.Get("cases").ForEach(func(_, c gjson.Result) bool {
		count++
		name := c.Get("name").String()
		input := c.Get("input").String()

		var expect []string
		for _, a := range c.Get("actions").Array() {
			expect = append(expect, a.String())
		}

		p := NewParser()
		got := consumeAll(p, input)

		if len(got) != len(expect) {
			t.Errorf("%s: expect %d actions %v, got %d %q\n",
				name, len(expect), expect, len(got), actionStrings(got))
			return true
		}
		for i := range got {
			if got[i].String() != expect[i] {
				t.Errorf("%s: action %d expect %q, got %q\n",
					name, i, expect[i], got[i].String())
			}
		}
		return true
	})

	if count == 0 {
		t.Fatal("empty conformance corpus")
	}
}

// Every corpus case must decode identically under any chunk split.
func TestConformanceCorpusSplit(t *testing.T) {
	data, err := os.ReadFile("testdata/conformance.json")
	if err != nil {
		t.Fatalf("read corpus: %s\n", err)
	}

	gjson.ParseBytes(data).Get("cases").ForEach(func(_, c gjson.Result) bool {
		name := c.Get("name").String()
		input := c.Get("input").String()

		whole := NewParser()
		expect := actionStrings(consumeAll(whole, input))

		for split := 0; split <= len(input); split++ {
			p := NewParser()
			var acts []Action
			acts = append(acts, p.Consume([]byte(input[:split]))...)
			acts = append(acts, p.Consume([]byte(input[split:]))...)
			acts = append(acts, p.Flush()...)

			if got := actionStrings(acts); got != expect {
				t.Errorf("%s split at %d: expect %q, got %q\n",
					name, split, expect, got)
			}
		}
		return true
	})
}
