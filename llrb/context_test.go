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

import (
	"errors"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"
	check "gopkg.in/check.v1"
)

func (s *S) TestGetAfterSet(c *check.C) {
	ct := Empty[string]().Set("key", "value")
	v, err := ct.Get("key")
	c.Check(err, check.IsNil)
	c.Check(v, check.Equals, "value")

	again, err := ct.Get("key")
	c.Check(err, check.IsNil)
	c.Check(again, check.Equals, v)
}

func (s *S) TestSetDeterministic(c *check.C) {
	a := Empty[string]().Set("key", "value")
	b := Empty[string]().Set("key", "value").Set("key", "value")
	va, _ := a.Get("key")
	vb, _ := b.Get("key")
	c.Check(va, check.Equals, vb)
	c.Check(Equal(a, b), check.Equals, true)
}

func (s *S) TestSetReplaces(c *check.C) {
	a := Empty[string]().Set("key", "value")
	b := a.Set("key", "replacement")
	v, _ := b.Get("key")
	c.Check(v, check.Equals, "replacement")
	v, _ = a.Get("key")
	c.Check(v, check.Equals, "value")
	c.Check(b.Len(), check.Equals, 1)
}

func (s *S) TestAbsentGet(c *check.C) {
	_, err := Empty[string]().Get("missing")
	var knf *KeyNotFoundError
	c.Assert(errors.As(err, &knf), check.Equals, true)
	c.Check(knf.Key, check.Equals, "missing")
	c.Check(err, check.ErrorMatches, `llrb: "missing" is not defined`)

	wrapped := fmt.Errorf("lookup: %w", err)
	c.Check(errors.As(wrapped, &knf), check.Equals, true)
}

func (s *S) TestDelContent(c *check.C) {
	ct := Empty[string]().Set("k1", "a").Set("k2", "b").Set("k3", "c")
	c.Check(Equal(ct.Del("k1"), Empty[string]().Set("k2", "b").Set("k3", "c")), check.Equals, true)
	c.Check(Equal(ct.Del("k2"), Empty[string]().Set("k1", "a").Set("k3", "c")), check.Equals, true)
	c.Check(Equal(ct.Del("k3"), Empty[string]().Set("k1", "a").Set("k2", "b")), check.Equals, true)
	c.Check(ct.Len(), check.Equals, 3)
}

func (s *S) TestDelAbsent(c *check.C) {
	ct := Empty[string]().Set("key", "value")
	d := ct.Del("other")
	c.Check(Equal(d, ct), check.Equals, true)
	c.Check(d.root, check.Equals, ct.root)
}

func (s *S) TestDelToEmpty(c *check.C) {
	ct := Empty[string]().Set("key", "value").Del("key")
	c.Check(Equal(ct, Empty[string]()), check.Equals, true)
	c.Check(ct, check.DeepEquals, Empty[string]())
}

func (s *S) TestEqual(c *check.C) {
	var (
		asc  = Empty[int]()
		desc = Empty[int]()
	)
	for i := 0; i < 100; i++ {
		asc = asc.Set(key(i), i)
		desc = desc.Set(key(99-i), 99-i)
	}
	c.Check(Equal(asc, desc), check.Equals, true)
	c.Check(Equal(asc, desc.Set(key(50), -1)), check.Equals, false)
	c.Check(Equal(asc, desc.Del(key(50))), check.Equals, false)
	c.Check(Equal(asc, desc.Del(key(50)).Set(key(100), 50)), check.Equals, false)
	c.Check(EqualFunc(asc, desc.Set(key(50), -50), func(a, b int) bool {
		return a == b || a == -b
	}), check.Equals, true)
}

// Every retained version must report the contents it had when it was made.
func (s *S) TestPersistence(c *check.C) {
	type version struct {
		ct   Context[int]
		want map[int]int
	}
	var (
		count, max = 10000, 300
		ct         = Empty[int]()
		verify     = map[int]int{}
		versions   []version
	)
	for i := 0; i < count; i++ {
		r := rand.Intn(max)
		if rand.Float64() < 0.6 {
			ct = ct.Set(key(r), i)
			verify[r] = i
		} else {
			ct = ct.Del(key(r))
			delete(verify, r)
		}
		if i%97 == 0 {
			snap := make(map[int]int, len(verify))
			for k, v := range verify {
				snap[k] = v
			}
			versions = append(versions, version{ct: ct, want: snap})
		}
	}
	for i, v := range versions {
		c.Check(v.ct.Len(), check.Equals, len(v.want), check.Commentf("version %d", i))
		checkTree(v.ct, c, "version %d", i)
		for k := 0; k < max; k++ {
			got, ok := v.ct.Lookup(key(k))
			want, found := v.want[k]
			if !c.Check(ok, check.Equals, found, check.Commentf("version %d key %d", i, k)) {
				continue
			}
			c.Check(got, check.Equals, want, check.Commentf("version %d key %d", i, k))
		}
	}
}

func (s *S) TestStructuralSharing(c *check.C) {
	ct := Empty[int]()
	for i := 0; i < 1024; i++ {
		ct = ct.Set(key(i), i)
	}

	// Replacing a value copies only the search path.
	k := ct.root.left.key
	replaced := ct.Set(k, -1)
	c.Check(replaced.root, check.Not(check.Equals), ct.root)
	c.Check(replaced.root.right, check.Equals, ct.root.right)
	c.Check(replaced.root.left.left, check.Equals, ct.root.left.left)
	c.Check(replaced.root.left.right, check.Equals, ct.root.left.right)
	v, _ := ct.Get(k)
	c.Check(v, check.Not(check.Equals), -1)

	// Deleting from one side leaves the other side untouched.
	deleted := ct.Del(ct.root.min().key)
	c.Check(shared(deleted.root, ct.root) > ct.Len()/4, check.Equals, true)
}

// shared returns the number of nodes reachable from a that are also reachable from b.
func shared[V any](a, b *node[V]) int {
	seen := map[*node[V]]bool{}
	var mark func(*node[V])
	mark = func(n *node[V]) {
		if n == nil {
			return
		}
		seen[n] = true
		mark(n.left)
		mark(n.right)
	}
	mark(b)
	var count func(*node[V]) int
	count = func(n *node[V]) int {
		if n == nil {
			return 0
		}
		if seen[n] {
			return n.size()
		}
		return count(n.left) + count(n.right)
	}
	return count(a)
}

func (s *S) TestConcurrentReaders(c *check.C) {
	const n = 1000
	base := Empty[int]()
	for i := 0; i < n; i += 2 {
		base = base.Set(key(i), i)
	}

	var g errgroup.Group
	for w := 0; w < 8; w++ {
		w := w
		g.Go(func() error {
			local := base
			for i := 0; i < n; i++ {
				if i%8 == w {
					local = local.Set(key(i), -i).Del(key((i + 1) % n))
				}
				v, err := base.Get(key(i))
				switch {
				case i&1 == 0 && (err != nil || v != i):
					return fmt.Errorf("worker %d: key %d: got %d, %v", w, i, v, err)
				case i&1 == 1 && err == nil:
					return fmt.Errorf("worker %d: unexpected key %d", w, i)
				}
			}
			if !local.isBalanced() || !local.is23() || !local.isBST() {
				return fmt.Errorf("worker %d: invalid derived tree", w)
			}
			return nil
		})
	}
	c.Check(g.Wait(), check.IsNil)
	c.Check(base.Len(), check.Equals, n/2)
}
