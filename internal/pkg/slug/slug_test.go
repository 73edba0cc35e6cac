package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Chapter 1":                  "chapter-1",
		"Data Structures & Algos":    "data-structures-algos",
		"  Operating   Systems  ":    "operating-systems",
		"C++ Programming":            "c-programming",
		"--Already--Sluggy--":        "already-sluggy",
		"UPPER case MiXeD":           "upper-case-mixed",
		"signals & systems (part 2)": "signals-systems-part-2",
		"":                           "",
		"!!!":                        "",
	}

	for input, want := range cases {
		assert.Equal(t, want, Make(input), "input %q", input)
	}
}

func TestMakeIdempotent(t *testing.T) {
	inputs := []string{
		"Chapter 1", "Advanced DBMS!!", "a--b  c", "Thermodynamics 101",
	}
	for _, in := range inputs {
		once := Make(in)
		assert.Equal(t, once, Make(once))
	}
}

func TestMakeOutputAlphabet(t *testing.T) {
	out := Make("Fluid Mechanics -- Lab #3 (v2.1)")
	for i, r := range out {
		valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
		assert.True(t, valid, "unexpected rune %q at %d in %q", r, i, out)
		if r == '-' {
			assert.NotEqual(t, 0, i)
			assert.NotEqual(t, len(out)-1, i)
			assert.NotEqual(t, byte('-'), out[i-1], "double hyphen in %q", out)
		}
	}
}
