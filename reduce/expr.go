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

// Package reduce implements substitution and weak head reduction of untyped
// lambda calculus terms, using persistent llrb Contexts as environments.
//
// Terms are written with arrow functions and call syntax:
//
//	n => f => x => f(n(f)(x))
package reduce

import (
	"strings"

	"github.com/redex/redex/llrb"
)

// An Expr is a lambda calculus term: a Var, a Lam or an App. Exprs are
// comparable and two Exprs are == when they have the same structure and names.
type Expr interface {
	String() string
	expr()
}

// A Var is a variable reference.
type Var struct {
	Name string
}

// A Lam is an abstraction binding Name in Body.
type Lam struct {
	Name string
	Body Expr
}

// An App is the application of Func to Argm.
type App struct {
	Func Expr
	Argm Expr
}

func (Var) expr() {}
func (Lam) expr() {}
func (App) expr() {}

// V returns a variable.
func V(name string) Expr { return Var{Name: name} }

// L returns an abstraction.
func L(name string, body Expr) Expr { return Lam{Name: name, Body: body} }

// A returns an application of f to each of args in turn.
func A(f Expr, args ...Expr) Expr {
	for _, a := range args {
		f = App{Func: f, Argm: a}
	}
	return f
}

func (v Var) String() string { return v.Name }

func (l Lam) String() string {
	var b strings.Builder
	writeExpr(&b, l)
	return b.String()
}

func (a App) String() string {
	var b strings.Builder
	writeExpr(&b, a)
	return b.String()
}

func writeExpr(b *strings.Builder, e Expr) {
	switch e := e.(type) {
	case Var:
		b.WriteString(e.Name)
	case Lam:
		b.WriteString(e.Name)
		b.WriteString(" => ")
		writeExpr(b, e.Body)
	case App:
		if _, ok := e.Func.(Lam); ok {
			b.WriteByte('(')
			writeExpr(b, e.Func)
			b.WriteByte(')')
		} else {
			writeExpr(b, e.Func)
		}
		b.WriteByte('(')
		writeExpr(b, e.Argm)
		b.WriteByte(')')
	}
}

// FreeVars returns the names occurring free in e in order of first occurrence.
func FreeVars(e Expr) []string {
	var (
		names []string
		seen  = llrb.Empty[struct{}]()
	)
	var walk func(Expr, llrb.Context[struct{}])
	walk = func(e Expr, bound llrb.Context[struct{}]) {
		switch e := e.(type) {
		case Var:
			if _, ok := bound.Lookup(e.Name); ok {
				return
			}
			if _, ok := seen.Lookup(e.Name); ok {
				return
			}
			seen = seen.Set(e.Name, struct{}{})
			names = append(names, e.Name)
		case Lam:
			walk(e.Body, bound.Set(e.Name, struct{}{}))
		case App:
			walk(e.Func, bound)
			walk(e.Argm, bound)
		}
	}
	walk(e, llrb.Empty[struct{}]())
	return names
}

// occursFree returns whether name occurs free in e.
func occursFree(name string, e Expr) bool {
	switch e := e.(type) {
	case Var:
		return e.Name == name
	case Lam:
		return e.Name != name && occursFree(name, e.Body)
	case App:
		return occursFree(name, e.Func) || occursFree(name, e.Argm)
	}
	return false
}
