// SPDX-License-Identifier: MIT
package arborist

// index holds the per-call lookups shared by every operation.
//
// Positions refer to the input slice. Duplicate identifiers resolve to the last record carrying
// them (last write wins).
type index[R any, T Constraint] struct {
	nodes []R

	ids       []T
	parents   []T
	hasParent []bool

	byID map[T]int

	// children maps a declared parent identifier to the positions declaring it, in input order.
	//
	// nil when the index was built without children.
	children map[T][]int
}

func newIndex[R any, T Constraint](keys Keys[R, T], nodes []R, withChildren bool) *index[R, T] {
	idx := &index[R, T]{
		nodes:     nodes,
		ids:       make([]T, len(nodes)),
		parents:   make([]T, len(nodes)),
		hasParent: make([]bool, len(nodes)),
		byID:      make(map[T]int, len(nodes)),
	}
	if withChildren {
		idx.children = make(map[T][]int)
	}

	for pos, node := range nodes {
		id := keys.ID(node)
		idx.ids[pos], idx.byID[id] = id, pos

		if keys.Parent == nil {
			continue
		}

		parent, ok := keys.Parent(node)
		if !ok {
			continue
		}
		idx.parents[pos], idx.hasParent[pos] = parent, true

		if withChildren {
			idx.children[parent] = append(idx.children[parent], pos)
		}
	}

	return idx
}

// lookup obtains the position of an identifier.
func (idx *index[R, T]) lookup(id T) (pos int, ok bool) {
	pos, ok = idx.byID[id]
	return
}

// parentPos obtains the position of the record's resolvable parent.
func (idx *index[R, T]) parentPos(pos int) (int, bool) {
	if !idx.hasParent[pos] {
		return 0, false
	}

	return idx.lookup(idx.parents[pos])
}

// addSynthetic appends a node-less entry, returning its position.
//
// The identifier is only registered when absent.
func (idx *index[R, T]) addSynthetic(id, parent T) (pos int) {
	pos = len(idx.ids)

	idx.ids = append(idx.ids, id)
	idx.parents = append(idx.parents, parent)
	idx.hasParent = append(idx.hasParent, true)

	if _, ok := idx.byID[id]; !ok {
		idx.byID[id] = pos
	}

	return
}
