package symset

import "fmt"

// Canonical renders c as a bracketed hex form "[\xHH...]", collapsing
// consecutive member bytes into ranges "\xHH-\xHH". Recompiling the
// result always yields a column equal to c: the canonical form never
// uses the `*`, `.`, `^`, or character-class shorthands, only literal
// hex escapes and ranges, so there is no ambiguity to round-trip
// through.
func Canonical(c Column) string {
	bytes := c.Bytes()
	if len(bytes) == 0 {
		return "[]"
	}

	out := "["
	i := 0
	for i < len(bytes) {
		lo := bytes[i]
		hi := lo
		j := i + 1
		for j < len(bytes) && bytes[j] == hi+1 {
			hi = bytes[j]
			j++
		}
		if lo == hi {
			out += fmt.Sprintf("\\x%02X", lo)
		} else {
			out += fmt.Sprintf("\\x%02X-\\x%02X", lo, hi)
		}
		i = j
	}
	out += "]"
	return out
}

// ComplexityScore estimates how many literal groups a Quine-McCluskey
// style minimizer would need to cover c: it counts the contiguous
// member-byte runs after the canonical coalescing pass. This is an
// informational, non-language-affecting statistic, not an exact
// logic-minimization result.
func ComplexityScore(c Column) int {
	bytes := c.Bytes()
	if len(bytes) == 0 {
		return 0
	}
	runs := 1
	for i := 1; i < len(bytes); i++ {
		if bytes[i] != bytes[i-1]+1 {
			runs++
		}
	}
	return runs
}
