package symset

import (
	"fmt"

	"github.com/sarchlab/automa/autoerr"
)

// classExpand holds the byte sets for the backslash character classes
// recognized inside brackets (\s \d \w).
func classExpand(c byte, col Column) bool {
	switch c {
	case 's':
		for _, b := range []byte{'\n', '\t', '\r', '\v', '\f', 0x20} {
			col.Set(b)
		}
		return true
	case 'd':
		col.SetRange('0', '9')
		return true
	case 'w':
		col.SetRange('0', '9')
		col.SetRange('a', 'z')
		col.SetRange('A', 'Z')
		col.Set('_')
		return true
	default:
		return false
	}
}

// shortEscape maps the recognized single-character escapes to bytes.
var shortEscape = map[byte]byte{
	'n': '\n', 'r': '\r', 't': '\t', 'a': 0x07, 'b': 0x08, 'f': 0x0C,
	'v': 0x0B, '\'': '\'', '"': '"', '\\': '\\', '-': '-',
}

func hexDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}

// Compile parses s, a regex-like symbol-set string, and returns its
// 256-bit membership column. Parsing proceeds left to right over a
// small state machine (escaped / inverting / rangePending / prevLiteral).
func Compile(s string) (Column, error) {
	col := NewColumn()

	if s == "*" {
		return Full(), nil
	}
	if s == "." {
		full := Full()
		full.Clear('\n')
		return full, nil
	}

	bracketed := len(s) > 0 && s[0] == '['
	body := s
	inverting := false
	if bracketed {
		if len(s) < 2 || s[len(s)-1] != ']' {
			return col, autoerr.Malformed("unbalanced bracket in symbol-set %q", s)
		}
		body = s[1 : len(s)-1]
		if len(body) > 0 && body[0] == '^' {
			inverting = true
			body = body[1:]
		}
	}

	var (
		escaped      bool
		rangePending bool
		havePrev     bool
		prev         byte
	)

	emit := func(b byte) {
		if rangePending {
			lo, hi := prev, b
			if lo > hi {
				lo, hi = hi, lo
			}
			col.SetRange(lo, hi)
			rangePending = false
			havePrev = false
			return
		}
		col.Set(b)
		prev = b
		havePrev = true
	}

	i := 0
	for i < len(body) {
		c := body[i]

		switch {
		case escaped:
			switch {
			case c == 'x':
				if i+2 >= len(body) {
					return col, autoerr.Malformed("truncated hex escape in %q", s)
				}
				hi, ok1 := hexDigit(body[i+1])
				lo, ok2 := hexDigit(body[i+2])
				if !ok1 || !ok2 {
					return col, autoerr.Malformed("invalid hex escape in %q", s)
				}
				emit(byte(hi<<4 | lo))
				i += 3
				escaped = false
				continue
			case classExpand(c, col):
				escaped = false
				i++
				continue
			default:
				if b, ok := shortEscape[c]; ok {
					emit(b)
				} else {
					emit(c)
				}
				escaped = false
				i++
				continue
			}
		case c == '\\':
			escaped = true
			i++
			continue
		case c == '-' && havePrev && !rangePending && i+1 < len(body):
			rangePending = true
			i++
			continue
		default:
			emit(c)
			i++
			continue
		}
	}

	if escaped {
		return col, autoerr.Malformed("dangling escape in symbol-set %q", s)
	}

	if inverting {
		col.Flip()
	}

	return col, nil
}

// MustCompile is Compile but panics on error, used for literal constants
// in tests and builders that already know their input is well-formed.
func MustCompile(s string) Column {
	col, err := Compile(s)
	if err != nil {
		panic(fmt.Sprintf("symset: MustCompile(%q): %v", s, err))
	}
	return col
}
