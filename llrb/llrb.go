// Copyright ©2012 Dan Kortschak <dan.kortschak@adelaide.edu.au>
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

// Package llrb implements a persistent string-keyed map on a Left-Leaning Red
// Black tree as described in
//
//	http://www.cs.princeton.edu/~rs/talks/LLRB/LLRB.pdf
//	http://www.cs.princeton.edu/~rs/talks/LLRB/Java/RedBlackBST.java
//
// Nodes are never modified after construction. Insertion and deletion copy the
// search path and share every other subtree with the previous version.
package llrb

import "strings"

// A Color represents the color of a node.
type Color bool

// String returns a string representation of a Color.
func (c Color) String() string {
	if c {
		return "Black"
	}
	return "Red"
}

const (
	// Red as false give us the defined behaviour that new nodes are red. Although this
	// is incorrect for the root node, that is resolved at the Context boundary.
	Red   Color = false
	Black Color = true
)

// A node is an immutable element of the tree. The nil *node is the empty tree.
type node[V any] struct {
	key         string
	val         V
	left, right *node[V]
	color       Color
}

// Helper methods

// getColor returns the effect color of a node. A nil node returns black.
func (self *node[V]) getColor() Color {
	if self == nil {
		return Black
	}
	return self.color
}

// withColor returns a node with the same contents as the receiver and color c.
// The receiver is returned if it already has color c.
func (self *node[V]) withColor(c Color) *node[V] {
	if self == nil || self.color == c {
		return self
	}
	return &node[V]{key: self.key, val: self.val, left: self.left, right: self.right, color: c}
}

func (self *node[V]) withLeft(l *node[V]) *node[V] {
	return &node[V]{key: self.key, val: self.val, left: l, right: self.right, color: self.color}
}

func (self *node[V]) withRight(r *node[V]) *node[V] {
	return &node[V]{key: self.key, val: self.val, left: self.left, right: r, color: self.color}
}

// (a,c)b -rotL-> ((a,)b,)c
func (self *node[V]) rotateLeft() *node[V] {
	// Assumes: self has a right child.
	r := self.right
	return &node[V]{
		key:   r.key,
		val:   r.val,
		left:  &node[V]{key: self.key, val: self.val, left: self.left, right: r.left, color: Red},
		right: r.right,
		color: self.color,
	}
}

// (a,c)b -rotR-> (,(,c)b)a
func (self *node[V]) rotateRight() *node[V] {
	// Assumes: self has a left child.
	l := self.left
	return &node[V]{
		key:   l.key,
		val:   l.val,
		left:  l.left,
		right: &node[V]{key: self.key, val: self.val, left: l.right, right: self.right, color: Red},
		color: self.color,
	}
}

// (aR,cR)bB -flipC-> (aB,cB)bR | (aB,cB)bR -flipC-> (aR,cR)bB
func (self *node[V]) flipColors() *node[V] {
	// Assumes: self has two children.
	return &node[V]{
		key:   self.key,
		val:   self.val,
		left:  self.left.withColor(!self.left.getColor()),
		right: self.right.withColor(!self.right.getColor()),
		color: !self.color,
	}
}

// balance returns a node holding k and v over the subtrees l and r, ensuring
// that red links lean left, that there are no consecutive red links and that
// 4-nodes are split. It is the only place invariants are repaired on the way
// back up from an insertion or deletion.
func balance[V any](c Color, k string, v V, l, r *node[V]) *node[V] {
	if l.getColor() == Red && r.getColor() == Red {
		// Flip colors.
		return &node[V]{key: k, val: v, left: l.withColor(Black), right: r.withColor(Black), color: !c}
	}
	if r.getColor() == Red {
		// Rotate left.
		k, v, l, r = r.key, r.val, &node[V]{key: k, val: v, left: l, right: r.left, color: Red}, r.right
	}
	if l.getColor() == Red && l.left.getColor() == Red {
		// Rotate right.
		k, v, l, r = l.key, l.val, l.left, &node[V]{key: k, val: v, left: l.right, right: r, color: Red}
	}
	if l.getColor() == Red && r.getColor() == Red {
		return &node[V]{key: k, val: v, left: l.withColor(Black), right: r.withColor(Black), color: !c}
	}
	return &node[V]{key: k, val: v, left: l, right: r, color: c}
}

// fixUp rebalances a node built by one of the move operations.
func (self *node[V]) fixUp() *node[V] {
	return balance(self.color, self.key, self.val, self.left, self.right)
}

func (self *node[V]) moveRedLeft() *node[V] {
	self = self.flipColors()
	if self.right.left.getColor() == Red {
		self = self.withRight(self.right.rotateRight()).rotateLeft().flipColors()
	}
	return self
}

func (self *node[V]) moveRedRight() *node[V] {
	self = self.flipColors()
	if self.left.left.getColor() == Red {
		self = self.rotateRight().flipColors()
	}
	return self
}

func (self *node[V]) search(k string) (n *node[V]) {
	n = self
	for n != nil {
		switch c := strings.Compare(k, n.key); {
		case c == 0:
			return n
		case c < 0:
			n = n.left
		default:
			n = n.right
		}
	}

	return
}

// insert returns the root of a tree holding v at k in addition to the
// contents of the receiver, and the change in the number of elements.
func (self *node[V]) insert(k string, v V) (root *node[V], d int) {
	if self == nil {
		return &node[V]{key: k, val: v}, 1
	}

	switch c := strings.Compare(k, self.key); {
	case c == 0:
		root = &node[V]{key: k, val: v, left: self.left, right: self.right, color: self.color}
	case c < 0:
		var l *node[V]
		l, d = self.left.insert(k, v)
		root = balance(self.color, self.key, self.val, l, self.right)
	default:
		var r *node[V]
		r, d = self.right.insert(k, v)
		root = balance(self.color, self.key, self.val, self.left, r)
	}

	return
}

func (self *node[V]) deleteMin() *node[V] {
	if self.left == nil {
		return nil
	}
	if self.left.getColor() == Black && self.left.left.getColor() == Black {
		self = self.moveRedLeft()
	}
	return balance(self.color, self.key, self.val, self.left.deleteMin(), self.right)
}

// delete returns the root of a tree without k. The key must be present in the
// tree rooted at the receiver.
func (self *node[V]) delete(k string) *node[V] {
	if k < self.key {
		if self.left != nil {
			if self.left.getColor() == Black && self.left.left.getColor() == Black {
				self = self.moveRedLeft()
			}
			self = self.withLeft(self.left.delete(k))
		}
	} else {
		if self.left.getColor() == Red {
			self = self.rotateRight()
		}
		if k == self.key && self.right == nil {
			return nil
		}
		if self.right != nil {
			if self.right.getColor() == Black && self.right.left.getColor() == Black {
				self = self.moveRedRight()
			}
			if k == self.key {
				m := self.right.min()
				self = &node[V]{key: m.key, val: m.val, left: self.left, right: self.right.deleteMin(), color: self.color}
			} else {
				self = self.withRight(self.right.delete(k))
			}
		}
	}

	return self.fixUp()
}

func (self *node[V]) min() (n *node[V]) {
	for n = self; n.left != nil; n = n.left {
	}
	return
}
