// Copyright ©2026 The redex Authors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package reduce

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// A SyntaxError describes a term that could not be parsed.
type SyntaxError struct {
	Offset int // Byte offset of the offending token.
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("reduce: syntax error at offset %d: %s", e.Offset, e.Msg)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokArrow
	tokLParen
	tokRParen
)

var tokenNames = []string{
	tokEOF:    "end of input",
	tokIdent:  "identifier",
	tokArrow:  `"=>"`,
	tokLParen: `"("`,
	tokRParen: `")"`,
}

type token struct {
	kind tokenKind
	text string
	off  int
}

func (t token) String() string {
	if t.kind == tokIdent {
		return fmt.Sprintf("identifier %q", t.text)
	}
	return tokenNames[t.kind]
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '\'' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func lex(src string) ([]token, error) {
	var toks []token
	for i := 0; i < len(src); {
		r, w := utf8.DecodeRuneInString(src[i:])
		switch {
		case unicode.IsSpace(r):
			i += w
		case r == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", off: i})
			i += w
		case r == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", off: i})
			i += w
		case r == '=':
			if i+1 >= len(src) || src[i+1] != '>' {
				return nil, &SyntaxError{Offset: i, Msg: `expected "=>"`}
			}
			toks = append(toks, token{kind: tokArrow, text: "=>", off: i})
			i += 2
		case isIdentRune(r):
			start := i
			for i < len(src) {
				r, w := utf8.DecodeRuneInString(src[i:])
				if !isIdentRune(r) {
					break
				}
				i += w
			}
			toks = append(toks, token{kind: tokIdent, text: src[start:i], off: start})
		default:
			return nil, &SyntaxError{Offset: i, Msg: fmt.Sprintf("unexpected character %q", r)}
		}
	}
	return append(toks, token{kind: tokEOF, off: len(src)}), nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek(n int) token {
	if p.pos+n < len(p.toks) {
		return p.toks[p.pos+n]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) next() token {
	t := p.peek(0)
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(k tokenKind) (token, error) {
	t := p.next()
	if t.kind != k {
		return t, &SyntaxError{Offset: t.off, Msg: fmt.Sprintf("expected %s, found %s", tokenNames[k], t)}
	}
	return t, nil
}

// Parse returns the term described by src.
//
// The grammar is
//
//	expr  = ident "=>" expr | apply
//	apply = atom { "(" expr ")" }
//	atom  = ident | "(" expr ")"
//
// where identifiers are runs of letters, digits, '_' and '\''.
func Parse(src string) (Expr, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokEOF); err != nil {
		return nil, err
	}
	return e, nil
}

func (p *parser) expr() (Expr, error) {
	if p.peek(0).kind == tokIdent && p.peek(1).kind == tokArrow {
		name := p.next().text
		p.next()
		body, err := p.expr()
		if err != nil {
			return nil, err
		}
		return Lam{Name: name, Body: body}, nil
	}
	return p.apply()
}

func (p *parser) apply() (Expr, error) {
	f, err := p.atom()
	if err != nil {
		return nil, err
	}
	for p.peek(0).kind == tokLParen {
		p.next()
		a, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		f = App{Func: f, Argm: a}
	}
	return f, nil
}

func (p *parser) atom() (Expr, error) {
	t := p.next()
	switch t.kind {
	case tokIdent:
		return Var{Name: t.text}, nil
	case tokLParen:
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, &SyntaxError{Offset: t.off, Msg: fmt.Sprintf("expected term, found %s", t)}
}
