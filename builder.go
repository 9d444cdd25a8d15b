// SPDX-License-Identifier: MIT
package arborist

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

type (
	// Forester performs the forest operations over records of type R identified by T.
	//
	// A Forester holds no data between calls, every lookup is built per call; it is safe for
	// concurrent use.
	Forester[R any, T Constraint] struct {
		settings

		keys Keys[R, T]
	}

	// Config defines logging options shared by Forester(s).
	Config struct {
		// Logger for Forester messages.
		//
		// Preferring a public field to allow for sharing.
		Logger logrus.FieldLogger
		Debug  bool
	}

	// Option defines the Forester functional option type.
	Option func(*settings)

	settings struct {
		cfg *Config

		// orphansAsRoots promotes records whose parent is missing from the input to roots.
		orphansAsRoots bool

		// pool runs [Forester.MappedAncestors] partitions when set.
		pool *ants.Pool
	}
)

var defConfig = DefConfig()

// DefConfig obtains the package's default Config.
func DefConfig() *Config {
	return &Config{
		Logger: logrus.New(),
		Debug:  false,
	}
}

// New instantiates a Forester.
//
// keys.ID must be set; a nil keys.Parent makes every record a root.
func New[R any, T Constraint](keys Keys[R, T], options ...Option) *Forester[R, T] {
	f := &Forester[R, T]{
		settings: settings{cfg: defConfig},
		keys:     keys,
	}

	for _, opt := range options {
		opt(&f.settings)
	}

	return f
}

// WithConfig configures the Forester's Config.
func WithConfig(cfg *Config) Option {
	return func(s *settings) {
		if cfg != nil && cfg.Logger != nil {
			s.cfg = cfg
		}
	}
}

// WithOrphansAsRoots makes [Forester.Build] promote records whose declared parent is missing
// from the input to roots, instead of dropping them.
func WithOrphansAsRoots() Option { return func(s *settings) { s.orphansAsRoots = true } }

// WithPool resolves [Forester.MappedAncestors] partitions on an ants.Pool.
//
// The pool is owned by the caller.
func WithPool(pool *ants.Pool) Option { return func(s *settings) { s.pool = pool } }

// Config retrieves the Forester's Config.
func (f *Forester[R, T]) Config() *Config { return f.cfg }

// Keys retrieves the Forester's accessors.
func (f *Forester[R, T]) Keys() Keys[R, T] { return f.keys }

func (f *Forester[R, T]) index(nodes []R, withChildren bool) *index[R, T] {
	return newIndex(f.keys, nodes, withChildren)
}

// Build generates a forest from a flat list of records.
//
// Roots are records without a parent, in input order; children follow input order too, so any
// permutation of the input yields the same nesting. Records whose declared parent is missing are
// dropped along with their subtrees unless [WithOrphansAsRoots] is set. Every record is placed at
// most once; records only reachable through a cycle are dropped.
func (f *Forester[R, T]) Build(nodes []R) (forest List[R]) {
	forest = make(List[R], 0)
	if len(nodes) < 1 {
		return
	}

	idx := f.index(nodes, true)
	placed := make([]bool, len(nodes))

	for pos := range nodes {
		if !f.isRoot(idx, pos) {
			continue
		}

		forest = append(forest, f.grow(idx, pos, placed))
	}

	var dropped []R
	for pos := range placed {
		if !placed[pos] {
			dropped = append(dropped, nodes[pos])
		}
	}

	if len(dropped) > 0 {
		f.cfg.Logger.Debugf("build dropped %d unrooted record(s)", len(dropped))
		if f.cfg.Debug {
			f.cfg.Logger.Debugf("dropped records: %s", spew.Sprint(dropped))
		}
	}

	return
}

func (f *Forester[R, T]) isRoot(idx *index[R, T], pos int) bool {
	if !idx.hasParent[pos] {
		return true
	}

	if !f.orphansAsRoots {
		return false
	}

	// A self-parented record resolves to itself & is never a root.
	_, ok := idx.lookup(idx.parents[pos])

	return !ok
}

// grow builds the tree rooted at pos, level by level.
func (f *Forester[R, T]) grow(idx *index[R, T], pos int, placed []bool) (root *Hierarchy[R]) {
	type pending struct {
		node *Hierarchy[R]
		pos  int
	}

	root, placed[pos] = newHierarchy(idx.nodes[pos], nil), true
	queue := []pending{{root, pos}}

	var front pending
	for len(queue) > 0 {
		front, queue = queue[0], queue[1:]

		for _, childPos := range idx.children[idx.ids[front.pos]] {
			if placed[childPos] {
				continue
			}
			placed[childPos] = true

			child := newHierarchy(idx.nodes[childPos], front.node)
			front.node.children = append(front.node.children, child)
			queue = append(queue, pending{child, childPos})
		}
	}

	return
}

// Values returns the identifiers of a List's roots.
func (f *Forester[R, T]) Values(l List[R], sortValues ...bool) (values []T) {
	values = make([]T, len(l))
	for index := range l {
		values[index] = f.keys.ID(l[index].value)
	}

	if len(sortValues) > 0 && sortValues[0] {
		slices.Sort(values)
	}

	return
}

// LevelValues returns the identifiers held by a LevelList, level by level.
func (f *Forester[R, T]) LevelValues(l LevelList[R], sortValues ...bool) (values [][]T) {
	values = make([][]T, len(l))
	for index := range l {
		values[index] = f.Values(l[index], sortValues...)
	}

	return
}

// IDs returns the identifiers of a slice of records, in order.
func (f *Forester[R, T]) IDs(records []R) (ids []T) {
	ids = make([]T, len(records))
	for index := range records {
		ids[index] = f.keys.ID(records[index])
	}

	return
}
