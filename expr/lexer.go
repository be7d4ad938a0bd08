package expr

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
	tokComma
	tokInvalid
)

type token struct {
	kind tokenKind
	text string
	pos  int
	num  float64
}

// lexer splits expression text into tokens. Besides ASCII operators it
// accepts the typographic forms ×, ÷, − and ·, and the letters π and θ as
// spellings of pi and theta.
type lexer struct {
	s string
	i int
}

func (l *lexer) next() token {
	for l.i < len(l.s) {
		r, w := utf8.DecodeRuneInString(l.s[l.i:])
		if !unicode.IsSpace(r) {
			break
		}
		l.i += w
	}
	if l.i >= len(l.s) {
		return token{kind: tokEOF, pos: l.i}
	}

	start := l.i
	r, w := utf8.DecodeRuneInString(l.s[l.i:])
	op := func(k tokenKind) token {
		l.i += w
		return token{kind: k, text: l.s[start:l.i], pos: start}
	}
	switch r {
	case '+':
		return op(tokPlus)
	case '-', '−':
		return op(tokMinus)
	case '*', '×', '·':
		return op(tokStar)
	case '/', '÷':
		return op(tokSlash)
	case '^':
		return op(tokCaret)
	case '(', '[':
		return op(tokLParen)
	case ')', ']':
		return op(tokRParen)
	case ',':
		return op(tokComma)
	case 'π':
		l.i += w
		return token{kind: tokIdent, text: "pi", pos: start}
	case 'θ':
		l.i += w
		return token{kind: tokIdent, text: "theta", pos: start}
	}

	if isIdentStart(r) {
		l.i += w
		for l.i < len(l.s) {
			r, w = utf8.DecodeRuneInString(l.s[l.i:])
			if !isIdentContinue(r) || r == 'π' || r == 'θ' {
				break
			}
			l.i += w
		}
		return token{kind: tokIdent, text: l.s[start:l.i], pos: start}
	}
	if r == '.' || isDigit(r) {
		l.i = scanNumber(l.s, l.i)
		txt := l.s[start:l.i]
		f, err := strconv.ParseFloat(txt, 64)
		if err != nil {
			return token{kind: tokInvalid, text: txt, pos: start}
		}
		return token{kind: tokNumber, text: txt, pos: start, num: f}
	}
	l.i += w
	return token{kind: tokInvalid, text: string(r), pos: start}
}

// scanNumber consumes digits, an optional fraction and an optional exponent.
// An 'e' not followed by digits is left alone, so "2e" reads as 2 times e.
func scanNumber(s string, i int) int {
	start := i
	for i < len(s) && isDigit(rune(s[i])) {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(rune(s[i])) {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(rune(s[k])) {
			k++
		}
		if k > j {
			i = k
		}
	}
	if i == start {
		return start + 1
	}
	return i
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}
