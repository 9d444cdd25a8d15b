// SPDX-License-Identifier: MIT
package arborist

import (
	"golang.org/x/exp/constraints"
)

// REF: https://www.geeksforgeeks.org/generic-tree-level-order-traversal
//
// REF: https://www.geeksforgeeks.org/serialize-deserialize-n-ary-tree

// Constraint is a wrapper interface containing comparable & constraints.Ordered.
type Constraint interface {
	comparable
	constraints.Ordered
}

type (
	// Hierarchy defines an n-array tree node produced by [Forester.Build].
	//
	// Synchronization is unnecessary, the type is never modified once built.
	Hierarchy[R any] struct {
		// parent contains a reference to the upper Hierarchy, nil for a root.
		parent *Hierarchy[R]

		// value contains the record, as supplied by the caller.
		value R

		// children holds references to nodes at a lower level, in input order.
		children List[R]
	}

	// List is a type wrapper for []*Hierarchy; a forest is a List of roots.
	List[R any] []*Hierarchy[R]

	// LevelList groups Hierarchy nodes by depth.
	LevelList[R any] []List[R]

	// WalkFunc is called for every node visited by [Hierarchy.Walk].
	//
	// newPeers is true for the first node of a level. Returning false stops the walk.
	WalkFunc[R any] func(node *Hierarchy[R], newPeers bool) bool
)

func newHierarchy[R any](value R, parent *Hierarchy[R]) *Hierarchy[R] {
	return &Hierarchy[R]{
		parent:   parent,
		value:    value,
		children: List[R]{},
	}
}

// Value retrieves the Hierarchy's record.
func (h *Hierarchy[R]) Value() R { return h.value }

// Parent retrieves a reference to the Hierarchy's parent.
//
// Value is nil for a root node.
func (h *Hierarchy[R]) Parent() *Hierarchy[R] { return h.parent }

// Children lists the immediate children of a Hierarchy.
func (h *Hierarchy[R]) Children() List[R] {
	children := make(List[R], len(h.children))
	copy(children, h.children)

	return children
}

// Len is the number of nodes in the Hierarchy, itself included.
func (h *Hierarchy[R]) Len() (n int) {
	h.Walk(func(*Hierarchy[R], bool) bool {
		n++
		return true
	})

	return
}

// Walk performs breadth-first traversal on a Hierarchy, children in input order.
func (h *Hierarchy[R]) Walk(fn WalkFunc[R]) {
	if h == nil {
		return
	}

	// Level order traversal.
	queue := List[R]{h}

	// Use a var for front to ensure the outer scope queue is modified.
	var front *Hierarchy[R]

	for len(queue) > 0 {
		newPeers := true

		for queueLen := len(queue); queueLen > 0; queueLen-- {
			front, queue = queue[0], queue[1:]

			if !fn(front, newPeers) {
				return
			}
			newPeers = false

			queue = append(queue, front.children...)
		}
	}
}

// AllChildren lists immediate and children-of children for a Hierarchy.
func (h *Hierarchy[R]) AllChildren() (children List[R]) {
	children = make(List[R], 0)
	h.Walk(func(node *Hierarchy[R], _ bool) bool {
		// Omit self from the list.
		if node != h {
			children = append(children, node)
		}

		return true
	})

	return
}

// AllChildrenByLevel lists immediate and children-of children for a Hierarchy by level.
func (h *Hierarchy[R]) AllChildrenByLevel() (children LevelList[R]) {
	children = make(LevelList[R], 0)

	var peers List[R]
	h.Walk(func(node *Hierarchy[R], newPeers bool) bool {
		if !newPeers {
			peers = append(peers, node)
			return true
		}

		if len(peers) > 0 {
			children = append(children, peers)
		}
		peers = List[R]{node}

		return true
	})

	if len(peers) > 0 {
		children = append(children, peers)
	}

	if len(children) > 0 {
		// Omit self from the list.
		children = children[1:]
	}

	return
}

// Leaves returns an array of terminal Hierarchy(ies).
func (h *Hierarchy[R]) Leaves() (termNodes List[R]) {
	termNodes = make(List[R], 0)
	h.Walk(func(node *Hierarchy[R], _ bool) bool {
		if len(node.children) < 1 {
			termNodes = append(termNodes, node)
		}

		return true
	})

	return
}

// Len is the number of nodes held by all trees in the List.
func (l List[R]) Len() (n int) {
	for _, h := range l {
		n += h.Len()
	}

	return
}

// Records returns the List's records, in List order.
func (l List[R]) Records() (records []R) {
	records = make([]R, len(l))
	for index := range l {
		records[index] = l[index].value
	}

	return
}
