// SPDX-License-Identifier: MIT
package arborist

import (
	"github.com/davecgh/go-spew/spew"
)

// Ancestors returns the chain from the record identified by id up to its root, the record
// itself first.
//
// An unknown id yields an empty chain. A walk that would revisit an identifier (the input holds a
// cycle) is truncated before the repeat & logged; use [Forester.HasCycle] to reject such input
// beforehand.
func (f *Forester[R, T]) Ancestors(nodes []R, id T) []R {
	return f.ancestors(f.index(nodes, false), id)
}

func (f *Forester[R, T]) ancestors(idx *index[R, T], id T) (chain []R) {
	chain = make([]R, 0)

	pos, ok := idx.lookup(id)
	if !ok {
		return
	}

	visited := make(map[T]struct{})
	for {
		visited[idx.ids[pos]] = struct{}{}
		chain = append(chain, idx.nodes[pos])

		next, ok := idx.parentPos(pos)
		if !ok {
			return
		}

		if _, seen := visited[idx.ids[next]]; seen {
			f.cfg.Logger.Warnf("ancestors of (%v): cycle at (%v), chain truncated", id, idx.ids[next])
			if f.cfg.Debug {
				f.cfg.Logger.Debugf("truncated chain: %s", spew.Sprint(chain))
			}

			return
		}

		pos = next
	}
}
