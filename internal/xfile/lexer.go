package xfile

import (
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokOpen
	tokClose
	tokSemi
	tokComma
	tokName
	tokNumber
	tokString
	tokGUID
)

type token struct {
	kind tokenKind
	text string
	line int
}

type lexer struct {
	src  string
	pos  int
	line int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1}
}

func (l *lexer) next() token {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line}
	}

	c := l.src[l.pos]
	switch c {
	case '{':
		l.pos++
		return token{kind: tokOpen, text: "{", line: l.line}
	case '}':
		l.pos++
		return token{kind: tokClose, text: "}", line: l.line}
	case ';':
		l.pos++
		return token{kind: tokSemi, text: ";", line: l.line}
	case ',':
		l.pos++
		return token{kind: tokComma, text: ",", line: l.line}
	case '"':
		end := strings.IndexByte(l.src[l.pos+1:], '"')
		if end < 0 {
			s := l.src[l.pos+1:]
			l.pos = len(l.src)
			return token{kind: tokString, text: s, line: l.line}
		}
		s := l.src[l.pos+1 : l.pos+1+end]
		l.pos += end + 2
		return token{kind: tokString, text: s, line: l.line}
	case '<':
		end := strings.IndexByte(l.src[l.pos:], '>')
		if end < 0 {
			end = len(l.src) - l.pos - 1
		}
		s := l.src[l.pos : l.pos+end+1]
		l.pos += end + 1
		return token{kind: tokGUID, text: s, line: l.line}
	}

	start := l.pos
	for l.pos < len(l.src) && !isDelim(l.src[l.pos]) {
		l.pos++
	}
	if l.pos == start {
		// stray character: skip it so the lexer always advances
		l.pos++
		return l.next()
	}
	text := l.src[start:l.pos]
	kind := tokName
	if isNumberStart(text[0]) {
		kind = tokNumber
	}
	return token{kind: kind, text: text, line: l.line}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == '#' || (c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/'):
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case unicode.IsSpace(rune(c)):
			l.pos++
		default:
			return
		}
	}
}

func isDelim(c byte) bool {
	switch c {
	case '{', '}', ';', ',', '"', '<', '#':
		return true
	}
	return unicode.IsSpace(rune(c))
}

func isNumberStart(c byte) bool {
	return (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.'
}
