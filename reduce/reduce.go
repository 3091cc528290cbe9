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
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/redex/redex/llrb"
)

// ErrStepLimit is returned when a reduction performs more beta steps than
// its Reducer allows.
var ErrStepLimit = errors.New("reduce: step limit exceeded")

// DefaultMaxSteps is the beta step limit of a Reducer made without WithMaxSteps.
const DefaultMaxSteps = 10000

// A Reducer performs weak head reduction of terms.
type Reducer struct {
	log      *zap.SugaredLogger
	maxSteps int
}

// An Option configures a Reducer.
type Option func(*Reducer)

// WithLogger sets the logger used to trace substitutions and beta steps
// at debug level.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(r *Reducer) {
		r.log = log
	}
}

// WithMaxSteps sets the number of beta steps allowed in a single call to
// Reduce. A limit of zero or less removes the limit.
func WithMaxSteps(n int) Option {
	return func(r *Reducer) {
		r.maxSteps = n
	}
}

// New returns a Reducer configured by opts.
func New(opts ...Option) *Reducer {
	r := &Reducer{
		log:      zap.NewNop().Sugar(),
		maxSteps: DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var std = New()

// Reduce reduces e with a default Reducer.
func Reduce(e Expr) (Expr, error) {
	return std.Reduce(e)
}

// Replace substitutes the bindings of env for the free variables of e.
func Replace(e Expr, env llrb.Context[Expr]) Expr {
	return std.Replace(e, env)
}

// Reduce returns the weak head normal form of e. Applications are reduced by
// reducing the function position and, when it is an abstraction, reducing the
// argument and substituting it into the body. Arguments of applications whose
// function position does not reduce to an abstraction are left as they are.
func (r *Reducer) Reduce(e Expr) (Expr, error) {
	m := &machine{Reducer: r}
	return m.reduce(e, llrb.Empty[Expr]())
}

type machine struct {
	*Reducer
	steps int
}

func (m *machine) reduce(e Expr, env llrb.Context[Expr]) (Expr, error) {
	app, ok := e.(App)
	if !ok {
		return e, nil
	}

	f, err := m.reduce(app.Func, env)
	if err != nil {
		return nil, err
	}
	lam, ok := f.(Lam)
	if !ok {
		return App{Func: f, Argm: app.Argm}, nil
	}

	m.steps++
	if m.maxSteps > 0 && m.steps > m.maxSteps {
		return nil, fmt.Errorf("%w: %d steps", ErrStepLimit, m.maxSteps)
	}
	a, err := m.reduce(app.Argm, env)
	if err != nil {
		return nil, err
	}
	body := m.Replace(lam.Body, env.Set(lam.Name, a))
	m.log.Debugw("beta", "step", m.steps, "name", lam.Name, "argm", a, "result", body)

	return m.reduce(body, env)
}

// Replace substitutes the bindings of env for the free variables of e.
// Variables without a binding are left in place and binders that would
// capture a free variable of a substituted term are renamed.
func (r *Reducer) Replace(e Expr, env llrb.Context[Expr]) Expr {
	r.log.Debugw("replace", "expr", e)

	switch e := e.(type) {
	case App:
		return App{Func: r.Replace(e.Func, env), Argm: r.Replace(e.Argm, env)}
	case Lam:
		env = env.Del(e.Name)
		if !captures(e.Name, e.Body, env) {
			return Lam{Name: e.Name, Body: r.Replace(e.Body, env)}
		}
		fresh := e.Name + "'"
		for occursFree(fresh, e.Body) || captures(fresh, e.Body, env) {
			fresh += "'"
		}
		r.log.Debugw("rename", "from", e.Name, "to", fresh)
		return Lam{Name: fresh, Body: r.Replace(e.Body, env.Set(e.Name, Var{Name: fresh}))}
	case Var:
		v, err := env.Get(e.Name)
		var knf *llrb.KeyNotFoundError
		if errors.As(err, &knf) {
			return e
		}
		return v
	}
	return e
}

// captures returns whether binding name over body would capture a free
// variable of a term that env substitutes into body.
func captures(name string, body Expr, env llrb.Context[Expr]) bool {
	if env.Len() == 0 {
		return false
	}
	for _, v := range FreeVars(body) {
		if s, ok := env.Lookup(v); ok && occursFree(name, s) {
			return true
		}
	}
	return false
}
