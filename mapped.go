// SPDX-License-Identifier: MIT
package arborist

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// Target identifies a record whose ancestors are requested by [Forester.MappedAncestors].
type Target[T Constraint] struct {
	ID    T
	Group T
}

// Batched resolution errors.
var (
	ErrResolveAncestors = errors.New("failed to resolve ancestors")
	ErrPanicked         = errors.New("recovery from panic")
)

// MapTargets reads batch targets off heterogeneous map records.
//
// The identifier is read from the mapped key ([DefaultMappedKey] unless configured), the group
// from the group key; a record without a group is its own group.
func MapTargets[T Constraint](records []map[string]any, options ...KeyOption) []Target[T] {
	return MapTargetsFunc(Assert[T], records, options...)
}

// MapTargetsFunc reads batch targets, converting field values with coerce.
func MapTargetsFunc[T Constraint](coerce func(any) (T, bool), records []map[string]any, options ...KeyOption) (targets []Target[T]) {
	names := newKeyNames(options...)

	targets = make([]Target[T], len(records))
	for index, record := range records {
		id, _ := coerce(record[names.mapped])
		targets[index] = Target[T]{ID: id, Group: id}

		if value, ok := ParentOf(record, names.group); ok {
			if group, ok := coerce(value); ok {
				targets[index].Group = group
			}
		}
	}

	return
}

// MappedAncestors computes [Forester.Ancestors] for every target against the candidates sharing
// its group, returning the chains in target order.
//
// The pool is partitioned by group once & each partition is indexed once, however many targets
// share it. Without a Keys.Group accessor the pool is a single partition. A target missing from
// its partition gets an empty chain.
//
// Partitions run on the Forester's ants.Pool when one is configured; the call still returns once
// every chain is resolved. A partition the pool rejects as overloaded is resolved on the calling
// goroutine. Errors report context cancellation, other pool failures or a panic raised while
// resolving a partition (ErrPanicked), with or without a pool.
func (f *Forester[R, T]) MappedAncestors(ctx context.Context, pool []R, targets []Target[T]) (chains [][]R, err error) {
	defer func() {
		if err != nil {
			chains = nil
			err = fmt.Errorf("%w: %w", ErrResolveAncestors, err)
		}
	}()

	if err = ctx.Err(); err != nil {
		return
	}

	chains = make([][]R, len(targets))
	partitions := f.partition(pool)

	groups := make([]T, 0)
	positions := make(map[T][]int)
	for pos := range targets {
		group := f.targetGroup(targets[pos])
		if _, ok := positions[group]; !ok {
			groups = append(groups, group)
		}
		positions[group] = append(positions[group], pos)
	}

	if f.cfg.Debug {
		f.cfg.Logger.Debugf("resolving %d target(s) over %d partition(s) of %d candidate(s)", len(targets), len(groups), len(pool))
	}

	var (
		failure error
		once    sync.Once
	)

	// A panicking partition fails the whole call, whichever goroutine resolves it.
	resolve := func(group T) {
		defer func() {
			if r := recover(); r != nil {
				once.Do(func() { failure = fmt.Errorf("(%v) %w: %v", group, ErrPanicked, r) })
			}
		}()

		idx := f.index(partitions[group], false)
		for _, pos := range positions[group] {
			chains[pos] = f.ancestors(idx, targets[pos].ID)
		}
	}

	if f.pool == nil {
		for _, group := range groups {
			resolve(group)
			if failure != nil {
				break
			}
		}

		err = failure

		return
	}

	// Each task writes to its own target positions only.
	wg := new(sync.WaitGroup)
	for _, group := range groups {
		if err = ctx.Err(); err != nil {
			break
		}

		wg.Add(1)
		task := func() {
			defer wg.Done()
			resolve(group)
		}

		if err = f.pool.Submit(task); err != nil {
			if !errors.Is(err, ants.ErrPoolOverload) {
				wg.Done()
				break
			}

			// A saturated non-blocking pool; resolve the partition here.
			err = nil
			task()
		}
	}
	wg.Wait()

	if err == nil {
		err = failure
	}

	return
}

// partition splits the candidate pool by group, preserving input order.
func (f *Forester[R, T]) partition(pool []R) (partitions map[T][]R) {
	partitions = make(map[T][]R)
	for _, node := range pool {
		group := f.groupOf(node)
		partitions[group] = append(partitions[group], node)
	}

	return
}

func (f *Forester[R, T]) groupOf(node R) (group T) {
	if f.keys.Group == nil {
		return
	}

	if group, ok := f.keys.Group(node); ok {
		return group
	}

	return f.keys.ID(node)
}

func (f *Forester[R, T]) targetGroup(target Target[T]) (group T) {
	if f.keys.Group == nil {
		return
	}

	return target.Group
}
