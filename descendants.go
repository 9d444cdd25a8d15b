// SPDX-License-Identifier: MIT
package arborist

// Descendants returns every record below the one identified by id, excluding it.
//
// Traversal is breadth-first with siblings in input order. An unknown id yields an empty list, even
// when records declare it as their parent; no identifier is emitted twice.
func (f *Forester[R, T]) Descendants(nodes []R, id T) (descendants []R) {
	descendants = make([]R, 0)

	idx := f.index(nodes, true)
	if _, ok := idx.lookup(id); !ok {
		return
	}

	seen := map[T]struct{}{id: {}}
	queue := []T{id}

	var front T
	for len(queue) > 0 {
		front, queue = queue[0], queue[1:]

		for _, pos := range idx.children[front] {
			childID := idx.ids[pos]
			if _, ok := seen[childID]; ok {
				continue
			}
			seen[childID] = struct{}{}

			descendants = append(descendants, idx.nodes[pos])
			queue = append(queue, childID)
		}
	}

	if f.cfg.Debug {
		f.cfg.Logger.Debugf("descendants of (%v): %v", id, f.IDs(descendants))
	}

	return
}
