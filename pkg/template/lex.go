package template

import (
	"strings"
	"unicode"
)

type tokenType int

const (
	tokenText tokenType = iota
	tokenVar
	tokenTag
	tokenComment
)

type token struct {
	typ       tokenType
	val       string
	line      int
	trimLeft  bool
	trimRight bool
}

var closers = map[byte]string{
	'{': "}}",
	'%': "%}",
	'#': "#}",
}

// lex splits src into text and tag tokens and applies whitespace control.
func lex(name, src string) ([]token, error) {
	var (
		tokens []token
		line   = 1
	)

	for len(src) > 0 {
		idx := nextDelimiter(src)
		if idx < 0 {
			tokens = append(tokens, token{typ: tokenText, val: src, line: line})
			break
		}
		if idx > 0 {
			text := src[:idx]
			tokens = append(tokens, token{typ: tokenText, val: text, line: line})
			line += strings.Count(text, "\n")
			src = src[idx:]
		}

		opener := src[1]
		closer := closers[opener]
		end := strings.Index(src[2:], closer)
		if end < 0 {
			return nil, malformed(name, line, "unclosed %q", src[:2])
		}
		raw := src[:2+end+len(closer)]
		inner := src[2 : 2+end]

		tok := token{line: line}
		switch opener {
		case '{':
			tok.typ = tokenVar
		case '%':
			tok.typ = tokenTag
		default:
			tok.typ = tokenComment
		}
		// comments ignore trim markers, as pongo2 does
		if tok.typ != tokenComment {
			if strings.HasPrefix(inner, "-") {
				tok.trimLeft = true
				inner = inner[1:]
			}
			if strings.HasSuffix(inner, "-") {
				tok.trimRight = true
				inner = inner[:len(inner)-1]
			}
		}
		tok.val = strings.TrimSpace(inner)
		tokens = append(tokens, tok)

		line += strings.Count(raw, "\n")
		src = src[len(raw):]
	}

	applyWhitespaceControl(tokens)
	return tokens, nil
}

func nextDelimiter(src string) int {
	offset := 0
	for {
		i := strings.IndexByte(src[offset:], '{')
		if i < 0 {
			return -1
		}
		pos := offset + i
		if pos+1 < len(src) {
			if _, ok := closers[src[pos+1]]; ok {
				return pos
			}
		}
		offset = pos + 1
	}
}

func applyWhitespaceControl(tokens []token) {
	for i, tok := range tokens {
		if tok.typ == tokenText {
			continue
		}
		if tok.trimLeft && i > 0 && tokens[i-1].typ == tokenText {
			tokens[i-1].val = strings.TrimRightFunc(tokens[i-1].val, unicode.IsSpace)
		}
		if tok.trimRight && i+1 < len(tokens) && tokens[i+1].typ == tokenText {
			tokens[i+1].val = strings.TrimLeftFunc(tokens[i+1].val, unicode.IsSpace)
		}
	}
}

// keywords cannot name a placeholder or loop variable.
var keywords = map[string]struct{}{
	"in": {}, "for": {}, "endfor": {}, "if": {}, "elif": {}, "else": {}, "endif": {},
	"and": {}, "or": {}, "not": {}, "is": {}, "as": {},
	"true": {}, "false": {}, "True": {}, "False": {}, "none": {}, "None": {},
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	if _, reserved := keywords[s]; reserved {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
