// SPDX-License-Identifier: MIT
package arborist

import (
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
)

// visitState tracks a record during cycle detection.
type visitState uint8

const (
	unvisited visitState = iota
	inProgress
	done
)

// Re-parenting errors.
var (
	ErrCycle          = errors.New("would create a cycle")
	ErrSelfParent     = errors.New("cannot be its own parent")
	ErrParentNotFound = errors.New("parent not found")
)

// HasCycle reports whether following parent identifiers ever leads back to a record already on
// the path.
//
// Parents missing from the input end a path cleanly.
func (f *Forester[R, T]) HasCycle(nodes []R) bool {
	idx := f.index(nodes, false)
	return f.hasCycle(idx, idx.parentPos)
}

// WouldCycle reports whether giving the record identified by id the parent identified by
// parent would create a cycle.
//
// An id absent from nodes is checked as a new record. Records are not copied or modified.
func (f *Forester[R, T]) WouldCycle(nodes []R, id, parent T) bool {
	return f.wouldCycle(f.index(nodes, false), id, parent)
}

// CheckReparent validates moving the record identified by id under parent.
//
// Returns ErrSelfParent, ErrParentNotFound or ErrCycle, wrapped with the offending identifiers.
func (f *Forester[R, T]) CheckReparent(nodes []R, id, parent T) error {
	if id == parent {
		return fmt.Errorf("(%v) %w", id, ErrSelfParent)
	}

	idx := f.index(nodes, false)
	if _, ok := idx.lookup(parent); !ok {
		return fmt.Errorf("(%v) %w", parent, ErrParentNotFound)
	}

	if f.wouldCycle(idx, id, parent) {
		return fmt.Errorf("moving (%v) under (%v) %w", id, parent, ErrCycle)
	}

	return nil
}

func (f *Forester[R, T]) wouldCycle(idx *index[R, T], id, parent T) bool {
	target, ok := idx.lookup(id)
	if !ok {
		target = idx.addSynthetic(id, parent)
	}

	return f.hasCycle(idx, func(pos int) (int, bool) {
		if pos == target {
			return idx.lookup(parent)
		}

		return idx.parentPos(pos)
	})
}

// hasCycle performs a three-state walk over the parent positions resolved by parentOf.
func (f *Forester[R, T]) hasCycle(idx *index[R, T], parentOf func(int) (int, bool)) bool {
	state := make([]visitState, len(idx.ids))

	for start := range state {
		var path []int

		pos, ok := start, true
		for ok && state[pos] == unvisited {
			state[pos] = inProgress
			path = append(path, pos)

			pos, ok = parentOf(pos)
		}

		if ok && state[pos] == inProgress {
			if f.cfg.Debug {
				cycle := make([]T, 0, len(path))
				for _, p := range path {
					cycle = append(cycle, idx.ids[p])
				}
				f.cfg.Logger.Debugf("cycle through (%v): %s", idx.ids[pos], spew.Sprint(cycle))
			}

			return true
		}

		for _, p := range path {
			state[p] = done
		}
	}

	return false
}
