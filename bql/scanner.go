// Copyright 2026 The Bda Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bql

import (
	"strings"
	"unicode/utf8"
)

// TokenKind identifies the lexical class of a Token.
type TokenKind int

const (
	TokIllegal TokenKind = iota
	TokEOF
	TokWs
	TokComma
	TokLtBracket
	TokRtBracket
	TokLtParen
	TokRtParen
	TokIdent
	TokNumber
	TokBadNumber
	TokText
	TokUnclosedText
	TokBadRelation
	TokEq
	TokNe
	TokLt
	TokLte
	TokGt
	TokGte
	TokNone
	TokDefined
	TokTrue
	TokFalse
	TokIn
	TokAll
	TokAny
	TokAnd
	TokOr
	TokNot
)

// Token is one lexical unit produced by Scan, carrying its kind and the
// exact source text it was lexed from (needed to recover identifiers,
// numbers and text literal contents).
type Token struct {
	Kind TokenKind
	Text string
}

// keyword maps the upper-cased spelling of a keyword to its token kind.
// Keyword matching is case-insensitive; everything else (field paths) is
// case-sensitive.
var keyword = map[string]TokenKind{
	"NOT":     TokNot,
	"NULL":    TokNone,
	"NIL":     TokNone,
	"NOTHING": TokNone,
	"NONE":    TokNone,
	"DEFINED": TokDefined,
	"TRUE":    TokTrue,
	"YES":     TokTrue,
	"NO":      TokFalse,
	"FALSE":   TokFalse,
	"IN":      TokIn,
	"ALL":     TokAll,
	"ANY":     TokAny,
	"AND":     TokAnd,
	"OR":      TokOr,
	"EQ":      TokEq,
	"IS":      TokEq,
	"NE":      TokNe,
	"LT":      TokLt,
	"LTE":     TokLte,
	"GT":      TokGt,
	"GTE":     TokGte,
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '.' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || ('0' <= r && r <= '9')
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

// scanner is a rune-at-a-time cursor over the input, peekable by one rune.
type scanner struct {
	src []rune
	pos int
}

func newScanner(s string) *scanner { return &scanner{src: []rune(s)} }

func (s *scanner) peek() (rune, bool) {
	if s.pos >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos], true
}

func (s *scanner) peekAt(offset int) (rune, bool) {
	i := s.pos + offset
	if i >= len(s.src) {
		return 0, false
	}
	return s.src[i], true
}

func (s *scanner) next() (rune, bool) {
	r, ok := s.peek()
	if ok {
		s.pos++
	}
	return r, ok
}

// Scan lexes the whole of s into a slice of Tokens, stopping as soon as it
// produces an error token (TokIllegal, TokBadNumber, TokBadRelation or
// TokUnclosedText) so the caller sees exactly where scanning went wrong. A
// trailing TokEOF is always appended on success.
func Scan(s string) []Token {
	sc := newScanner(s)
	var toks []Token
	for {
		tok := sc.scanOne()
		toks = append(toks, tok)
		switch tok.Kind {
		case TokEOF, TokIllegal, TokBadNumber, TokBadRelation, TokUnclosedText:
			return toks
		}
	}
}

func (s *scanner) scanOne() Token {
	r, ok := s.peek()
	if !ok {
		return Token{Kind: TokEOF}
	}

	switch {
	case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		return s.scanWs()
	case r == ',':
		s.next()
		return Token{Kind: TokComma, Text: ","}
	case r == '[':
		s.next()
		return Token{Kind: TokLtBracket, Text: "["}
	case r == ']':
		s.next()
		return Token{Kind: TokRtBracket, Text: "]"}
	case r == '(':
		s.next()
		return Token{Kind: TokLtParen, Text: "("}
	case r == ')':
		s.next()
		return Token{Kind: TokRtParen, Text: ")"}
	case r == '"' || r == '\'':
		return s.scanText(r)
	case r == '&':
		return s.scanTwoRune('&', TokAnd, "&&")
	case r == '|':
		return s.scanTwoRune('|', TokOr, "||")
	case r == '#':
		s.next()
		return Token{Kind: TokIn, Text: "#"}
	case r == '@':
		s.next()
		return Token{Kind: TokIn, Text: "@"}
	case r == '!':
		return s.scanBang()
	case r == '=':
		return s.scanEquals()
	case r == '<':
		return s.scanLess()
	case r == '>':
		return s.scanGreater()
	case isDigit(r):
		return s.scanNumber("")
	case r == '-' || r == '+':
		return s.scanSignedNumber()
	case isIdentStart(r):
		return s.scanIdent()
	default:
		s.next()
		return Token{Kind: TokIllegal, Text: string(r)}
	}
}

func (s *scanner) scanWs() Token {
	var b strings.Builder
	for {
		r, ok := s.peek()
		if !ok || !(r == ' ' || r == '\t' || r == '\n' || r == '\r') {
			break
		}
		b.WriteRune(r)
		s.next()
	}
	return Token{Kind: TokWs, Text: b.String()}
}

func (s *scanner) scanTwoRune(want rune, kind TokenKind, text string) Token {
	start := s.pos
	s.next()
	r, ok := s.peek()
	if ok && r == want {
		s.next()
		return Token{Kind: kind, Text: text}
	}
	return Token{Kind: TokIllegal, Text: string(s.src[start:s.pos])}
}

func (s *scanner) scanBang() Token {
	s.next()
	if r, ok := s.peek(); ok && r == '=' {
		s.next()
		return Token{Kind: TokNe, Text: "!="}
	}
	return Token{Kind: TokNot, Text: "!"}
}

func (s *scanner) scanEquals() Token {
	s.next()
	if r, ok := s.peek(); ok && r == '=' {
		s.next()
		return Token{Kind: TokEq, Text: "=="}
	}
	return Token{Kind: TokBadRelation, Text: "="}
}

func (s *scanner) scanLess() Token {
	s.next()
	if r, ok := s.peek(); ok && r == '=' {
		s.next()
		return Token{Kind: TokLte, Text: "<="}
	}
	return Token{Kind: TokLt, Text: "<"}
}

func (s *scanner) scanGreater() Token {
	s.next()
	if r, ok := s.peek(); ok && r == '=' {
		s.next()
		return Token{Kind: TokGte, Text: ">="}
	}
	return Token{Kind: TokGt, Text: ">"}
}

func (s *scanner) scanIdent() Token {
	start := s.pos
	for {
		r, ok := s.peek()
		if !ok || !isIdentCont(r) {
			break
		}
		s.next()
	}
	text := string(s.src[start:s.pos])
	if kind, isKw := keyword[strings.ToUpper(text)]; isKw {
		return Token{Kind: kind, Text: text}
	}
	return Token{Kind: TokIdent, Text: text}
}

func (s *scanner) scanSignedNumber() Token {
	start := s.pos
	sign, _ := s.next()
	r, ok := s.peek()
	if !ok || !isDigit(r) {
		return Token{Kind: TokBadNumber, Text: string(s.src[start:s.pos])}
	}
	return s.scanNumber(string(sign))
}

// scanNumber scans digits, an optional single '.', more digits, and an
// optional exponent; prefix carries a sign already consumed by the caller.
func (s *scanner) scanNumber(prefix string) Token {
	start := s.pos
	sawDot := false
	for {
		r, ok := s.peek()
		if !ok {
			break
		}
		if isDigit(r) {
			s.next()
			continue
		}
		if r == '.' && !sawDot {
			if next, ok2 := s.peekAt(1); ok2 && isDigit(next) {
				sawDot = true
				s.next()
				continue
			}
		}
		if (r == 'e' || r == 'E') && s.pos > start {
			save := s.pos
			s.next()
			if sr, ok2 := s.peek(); ok2 && (sr == '+' || sr == '-') {
				s.next()
			}
			if dr, ok2 := s.peek(); ok2 && isDigit(dr) {
				for {
					dr2, ok3 := s.peek()
					if !ok3 || !isDigit(dr2) {
						break
					}
					s.next()
				}
				continue
			}
			s.pos = save
		}
		break
	}
	text := prefix + string(s.src[start:s.pos])
	if r, ok := s.peek(); ok && (isIdentStart(r) && r != '.') {
		// trailing garbage glued onto a number, e.g. "12abc"
		for {
			rr, ok2 := s.peek()
			if !ok2 || !isIdentCont(rr) {
				break
			}
			s.next()
		}
		return Token{Kind: TokBadNumber, Text: prefix + string(s.src[start:s.pos])}
	}
	return Token{Kind: TokNumber, Text: text}
}

// scanText scans a quoted text literal delimited by quote, honoring
// backslash escapes for the quote character and backslash itself. An EOF
// before the closing quote yields TokUnclosedText.
func (s *scanner) scanText(quote rune) Token {
	s.next()
	var b strings.Builder
	for {
		r, ok := s.next()
		if !ok {
			return Token{Kind: TokUnclosedText, Text: b.String()}
		}
		if r == '\\' {
			esc, ok2 := s.next()
			if !ok2 {
				return Token{Kind: TokUnclosedText, Text: b.String()}
			}
			switch esc {
			case quote, '\\':
				b.WriteRune(esc)
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			default:
				b.WriteRune('\\')
				b.WriteRune(esc)
			}
			continue
		}
		if r == quote {
			return Token{Kind: TokText, Text: b.String()}
		}
		b.WriteRune(r)
	}
}

// runeLen reports the number of runes in s, the unit the scanner's cursor
// counts in (rather than byte offsets).
func runeLen(s string) int { return utf8.RuneCountInString(s) }
