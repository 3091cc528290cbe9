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

package llrb

import "fmt"

// A KeyNotFoundError is returned by Get when the requested key is not held
// by the Context.
type KeyNotFoundError struct {
	Key string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("llrb: %q is not defined", e.Key)
}

// A Context is an immutable mapping from strings to values of type V. Set and
// Del return new Contexts and leave the receiver unchanged, so a Context may be
// retained, copied and read concurrently without synchronization.
//
// The zero value of a Context is an empty Context ready to use.
type Context[V any] struct {
	root  *node[V]
	count int
}

// Empty returns the empty Context. All empty Contexts are identical.
func Empty[V any]() Context[V] {
	return Context[V]{}
}

// Len returns the number of keys held by the Context.
func (c Context[V]) Len() int {
	return c.count
}

// Get returns the value associated with key. If key is not held by the
// Context, Get returns a *KeyNotFoundError.
func (c Context[V]) Get(key string) (V, error) {
	n := c.root.search(key)
	if n == nil {
		var zero V
		return zero, &KeyNotFoundError{Key: key}
	}
	return n.val, nil
}

// Lookup returns the value associated with key and whether the key was found.
func (c Context[V]) Lookup(key string) (V, bool) {
	n := c.root.search(key)
	if n == nil {
		var zero V
		return zero, false
	}
	return n.val, true
}

// Set returns a Context holding value at key in addition to the contents
// of c. An existing value for key is replaced.
func (c Context[V]) Set(key string, value V) Context[V] {
	root, d := c.root.insert(key, value)
	return Context[V]{root: root.withColor(Black), count: c.count + d}
}

// Del returns a Context holding the contents of c without key. If key is not
// held by c, c is returned. Del looks key up before deleting, so removing a
// held key walks the tree twice.
func (c Context[V]) Del(key string) Context[V] {
	if c.root.search(key) == nil {
		return c
	}
	return Context[V]{root: c.root.delete(key).withColor(Black), count: c.count - 1}
}

// Equal reports whether a and b hold the same key-value pairs, regardless of
// the shape of their trees.
func Equal[V comparable](a, b Context[V]) bool {
	return EqualFunc(a, b, func(x, y V) bool { return x == y })
}

// EqualFunc reports whether a and b hold the same keys with values that are
// equal according to eq.
func EqualFunc[V any](a, b Context[V], eq func(V, V) bool) bool {
	if a.count != b.count {
		return false
	}
	if a.root == b.root {
		return true
	}
	ia, ib := newInorder(a.root), newInorder(b.root)
	for {
		na, nb := ia.next(), ib.next()
		if na == nil || nb == nil {
			return na == nb
		}
		if na.key != nb.key || !eq(na.val, nb.val) {
			return false
		}
	}
}

// inorder walks a tree in ascending key order.
type inorder[V any] struct {
	stack []*node[V]
}

func newInorder[V any](n *node[V]) *inorder[V] {
	it := &inorder[V]{}
	it.push(n)
	return it
}

func (it *inorder[V]) push(n *node[V]) {
	for ; n != nil; n = n.left {
		it.stack = append(it.stack, n)
	}
}

func (it *inorder[V]) next() *node[V] {
	l := len(it.stack)
	if l == 0 {
		return nil
	}
	n := it.stack[l-1]
	it.stack = it.stack[:l-1]
	it.push(n.right)
	return n
}
