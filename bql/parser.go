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
	"fmt"
	"strconv"
)

// ParseError reports a problem found while scanning or parsing a filter
// expression, with the offending token's text for diagnostics.
type ParseError struct {
	Msg  string
	Text string
}

func (e *ParseError) Error() string {
	if e.Text == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %q", e.Msg, e.Text)
}

// Parse scans and parses s into an Ast. And binds tighter than Or;
// parentheses override both. An empty or all-whitespace s parses to All{}.
func Parse(s string) (Ast, error) {
	toks := Scan(s)
	p := &parser{toks: toks}
	p.skipWs()
	if p.at(TokEOF) {
		return All{}, nil
	}
	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	p.skipWs()
	if !p.at(TokEOF) {
		return nil, &ParseError{Msg: "unexpected trailing input", Text: p.cur().Text}
	}
	return node, nil
}

type parser struct {
	toks []Token
	pos  int
}

func (p *parser) cur() Token {
	if p.pos >= len(p.toks) {
		return Token{Kind: TokEOF}
	}
	return p.toks[p.pos]
}

func (p *parser) at(k TokenKind) bool { return p.cur().Kind == k }

func (p *parser) advance() Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) skipWs() {
	for p.at(TokWs) {
		p.advance()
	}
}

func (p *parser) expect(k TokenKind, what string) (Token, error) {
	p.skipWs()
	if !p.at(k) {
		return Token{}, &ParseError{Msg: "expected " + what, Text: p.cur().Text}
	}
	return p.advance(), nil
}

func errFromToken(t Token) error {
	switch t.Kind {
	case TokIllegal:
		return &ParseError{Msg: "illegal character", Text: t.Text}
	case TokBadNumber:
		return &ParseError{Msg: "malformed number", Text: t.Text}
	case TokBadRelation:
		return &ParseError{Msg: "malformed relation", Text: t.Text}
	case TokUnclosedText:
		return &ParseError{Msg: "unclosed text literal", Text: t.Text}
	default:
		return nil
	}
}

// parseOr parses a sequence of and-expressions joined by or/||.
func (p *parser) parseOr() (Ast, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		p.skipWs()
		if !p.at(TokOr) {
			return left, nil
		}
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Union{Left: left, Right: right}
	}
}

// parseAnd parses a sequence of unary expressions joined by and/&&.
func (p *parser) parseAnd() (Ast, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		p.skipWs()
		if !p.at(TokAnd) {
			return left, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = Intersection{Left: left, Right: right}
	}
}

// parseUnary handles a leading not/! prefix and parenthesized groups.
func (p *parser) parseUnary() (Ast, error) {
	p.skipWs()
	if p.at(TokNot) {
		p.advance()
		node, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return negate(node), nil
	}
	if p.at(TokLtParen) {
		p.advance()
		node, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRtParen, "')'"); err != nil {
			return nil, err
		}
		return node, nil
	}
	return p.parsePrimary()
}

// negate flips the negate flag on nodes that carry one, or falls back to
// a set complement (All minus node) for relational nodes that don't.
func negate(node Ast) Ast {
	switch n := node.(type) {
	case Defined:
		n.Negate = !n.Negate
		return n
	case Equal:
		n.Negate = !n.Negate
		return n
	case ContainsAll:
		n.Negate = !n.Negate
		return n
	case ContainsAny:
		n.Negate = !n.Negate
		return n
	default:
		return Difference{Left: All{}, Right: node}
	}
}

// parsePrimary parses the `all` keyword or a field test.
func (p *parser) parsePrimary() (Ast, error) {
	p.skipWs()
	tok := p.cur()
	if err := errFromToken(tok); err != nil {
		return nil, err
	}
	if p.at(TokAll) {
		p.advance()
		return All{}, nil
	}
	if !p.at(TokIdent) {
		return nil, &ParseError{Msg: "expected field path", Text: tok.Text}
	}
	field := p.advance().Text
	return p.parseFieldTest(field)
}

// parseFieldTest parses everything that can follow a bare field path: an
// optional run of postfix `not`/`!` tokens (each toggling negation, the
// form `field not in any [...]` and `field!@all[...]` use), then nothing
// (bare Defined), a relation + value, or an in-test.
func (p *parser) parseFieldTest(field string) (Ast, error) {
	negate := false
	p.skipWs()
	for p.at(TokNot) {
		p.advance()
		negate = !negate
		p.skipWs()
	}
	switch p.cur().Kind {
	case TokEq, TokNe:
		negate = negate != (p.advance().Kind == TokNe)
		return p.parseEqRhs(field, negate)
	case TokLt:
		p.advance()
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return LessThan{FieldName: field, FieldValue: v}, nil
	case TokLte:
		p.advance()
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return LessThanOrEqual{FieldName: field, FieldValue: v}, nil
	case TokGt:
		p.advance()
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return GreaterThan{FieldName: field, FieldValue: v}, nil
	case TokGte:
		p.advance()
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return GreaterThanOrEqual{FieldName: field, FieldValue: v}, nil
	case TokIn:
		return p.parseInTest(field, negate)
	default:
		return Defined{FieldName: field, Negate: negate}, nil
	}
}

// parseEqRhs parses the right-hand side of == / != : the `defined`
// keyword, a null literal, or a scalar value.
func (p *parser) parseEqRhs(field string, negate bool) (Ast, error) {
	p.skipWs()
	if p.at(TokDefined) {
		p.advance()
		return Defined{FieldName: field, Negate: negate}, nil
	}
	if p.at(TokNone) {
		p.advance()
		return Equal{FieldName: field, FieldValue: nil, Negate: negate}, nil
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	return Equal{FieldName: field, FieldValue: &v, Negate: negate}, nil
}

// parseInTest parses `in all [...]`, `in any [...]`, `# all [...]` and
// `@ any [...]` (and their no-space spellings `#all`/`@any`): `#` and `@`
// are interchangeable spellings of the `in` token itself, not shorthands
// for `all`/`any`, so an explicit `all`/`any` keyword always follows.
// Optionally prefixed by an already-consumed negation.
func (p *parser) parseInTest(field string, negate bool) (Ast, error) {
	if _, err := p.expect(TokIn, "'in', '#' or '@'"); err != nil {
		return nil, err
	}
	var wantAll bool
	p.skipWs()
	switch p.cur().Kind {
	case TokAll:
		p.advance()
		wantAll = true
	case TokAny:
		p.advance()
		wantAll = false
	default:
		return nil, &ParseError{Msg: "expected 'all' or 'any' after 'in'", Text: p.cur().Text}
	}
	values, err := p.parseValueList()
	if err != nil {
		return nil, err
	}
	if wantAll {
		return ContainsAll{FieldName: field, FieldValues: values, Negate: negate}, nil
	}
	return ContainsAny{FieldName: field, FieldValues: values, Negate: negate}, nil
}

// parseValueList parses a bracketed, comma-separated list of scalar
// values, where each element may also be a null literal.
func (p *parser) parseValueList() ([]*Value, error) {
	if _, err := p.expect(TokLtBracket, "'['"); err != nil {
		return nil, err
	}
	var out []*Value
	p.skipWs()
	if p.at(TokRtBracket) {
		p.advance()
		return out, nil
	}
	for {
		p.skipWs()
		if p.at(TokNone) {
			p.advance()
			out = append(out, nil)
		} else {
			v, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			out = append(out, &v)
		}
		p.skipWs()
		if p.at(TokComma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(TokRtBracket, "']'"); err != nil {
		return nil, err
	}
	return out, nil
}

// parseValue parses a single scalar literal: number, text, true/false.
func (p *parser) parseValue() (Value, error) {
	p.skipWs()
	tok := p.cur()
	if err := errFromToken(tok); err != nil {
		return Value{}, err
	}
	switch tok.Kind {
	case TokNumber:
		p.advance()
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return Value{}, &ParseError{Msg: "malformed number", Text: tok.Text}
		}
		if i, err := strconv.ParseInt(tok.Text, 10, 64); err == nil {
			return Integral(i), nil
		}
		return Rational(f), nil
	case TokText:
		p.advance()
		return Text(tok.Text), nil
	case TokTrue:
		p.advance()
		return Boolean(true), nil
	case TokFalse:
		p.advance()
		return Boolean(false), nil
	default:
		return Value{}, &ParseError{Msg: "expected a value", Text: tok.Text}
	}
}
