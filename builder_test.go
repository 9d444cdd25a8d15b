// SPDX-License-Identifier: MIT
package arborist

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

// shape is a comparable rendition of a Hierarchy.
type shape[T Constraint] struct {
	ID       T
	Children []shape[T]
}

func shapeOf[R any, T Constraint](f *Forester[R, T], forest List[R]) []shape[T] {
	shapes := make([]shape[T], len(forest))
	for index, h := range forest {
		shapes[index] = shape[T]{ID: f.keys.ID(h.value), Children: shapeOf(f, h.children)}
	}

	return shapes
}

func leaf[T Constraint](id T, children ...shape[T]) shape[T] {
	return shape[T]{ID: id, Children: children}
}

// sortShapes orders siblings by id, erasing input order.
var sortShapes = cmpopts.SortSlices(func(a, b shape[int]) bool { return a.ID < b.ID })

func scenarioA() []Record[int] {
	return []Record[int]{
		NewRecord(1),
		NewRecord(2, 1),
		NewRecord(3, 1),
		NewRecord(4, 2),
		NewRecord(5, 3),
		NewRecord(6),
	}
}

func TestForester_Build(t *testing.T) {
	tests := []struct {
		name    string
		nodes   []Record[int]
		options []Option
		want    []shape[int]
	}{
		{
			name:  "simple forest",
			nodes: scenarioA(),
			want: []shape[int]{
				leaf(1, leaf(2, leaf(4)), leaf(3, leaf(5))),
				leaf(6),
			},
		},
		{
			name:  "shuffled",
			nodes: []Record[int]{NewRecord(3, 2), NewRecord(2, 1), NewRecord(1)},
			want:  []shape[int]{leaf(1, leaf(2, leaf(3)))},
		},
		{
			name:  "no roots",
			nodes: []Record[int]{NewRecord(3, 2)},
			want:  []shape[int]{},
		},
		{
			name:    "orphans as roots",
			nodes:   []Record[int]{NewRecord(3, 2), NewRecord(4, 3), NewRecord(1)},
			options: []Option{WithOrphansAsRoots()},
			want:    []shape[int]{leaf(3, leaf(4)), leaf(1)},
		},
		{
			name:  "dangling subtree dropped",
			nodes: []Record[int]{NewRecord(3, 2), NewRecord(4, 3), NewRecord(1)},
			want:  []shape[int]{leaf(1)},
		},
		{
			name:  "empty",
			nodes: []Record[int]{},
			want:  []shape[int]{},
		},
		{
			name:    "self parented",
			nodes:   []Record[int]{NewRecord(1, 1), NewRecord(2)},
			options: []Option{WithOrphansAsRoots()},
			want:    []shape[int]{leaf(2)},
		},
		{
			name:  "cycle off the forest",
			nodes: []Record[int]{NewRecord(1), NewRecord(2, 3), NewRecord(3, 2)},
			want:  []shape[int]{leaf(1)},
		},
		{
			name:  "children keep input order",
			nodes: []Record[int]{NewRecord(1), NewRecord(9, 1), NewRecord(2, 1), NewRecord(5, 1)},
			want:  []shape[int]{leaf(1, leaf(9), leaf(2), leaf(5))},
		},
		{
			name:  "duplicate ids placed once",
			nodes: []Record[int]{NewRecord(1), NewRecord(1, 1), NewRecord(2, 1)},
			want:  []shape[int]{leaf(1, leaf(1), leaf(2))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(RecordKeys[int](), tt.options...)

			got := f.Build(tt.nodes)
			if got == nil {
				t.Fatal("Forester.Build() = nil, want a non-nil forest")
			}
			if diff := cmp.Diff(tt.want, shapeOf(f, got), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Forester.Build() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestForester_BuildCustomKey(t *testing.T) {
	nodes := []map[string]any{
		{"id": 3, "x": 1},
		{"id": 1, "x": nil},
	}
	f := New(MapKeys[int](WithParentKey("x")))

	got := f.Build(nodes)

	want := []shape[int]{leaf(1, leaf(3))}
	if diff := cmp.Diff(want, shapeOf(f, got), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Forester.Build() mismatch (-want +got):\n%s", diff)
	}

	// Records pass through untouched.
	if diff := cmp.Diff(nodes[1], got[0].Value()); diff != "" {
		t.Errorf("Hierarchy.Value() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(nodes[0], got[0].Children()[0].Value()); diff != "" {
		t.Errorf("Hierarchy.Value() mismatch (-want +got):\n%s", diff)
	}
	if _, ok := nodes[0]["children"]; ok {
		t.Error("Forester.Build() modified its input")
	}
}

func TestForester_BuildLogsDropped(t *testing.T) {
	tests := []struct {
		name    string
		debug   bool
		entries int
	}{
		{name: "count only", debug: false, entries: 1},
		{name: "count & dump", debug: true, entries: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, hook := logtest.NewNullLogger()
			logger.SetLevel(logrus.DebugLevel)

			f := New(RecordKeys[int](), WithConfig(&Config{Logger: logger, Debug: tt.debug}))
			if got := f.Build([]Record[int]{NewRecord(2, 1), NewRecord(3, 2)}); len(got) != 0 {
				t.Fatalf("Forester.Build() = %v, want an empty forest", got)
			}

			entries := hook.AllEntries()
			if len(entries) != tt.entries {
				t.Fatalf("logged %d entries, want %d", len(entries), tt.entries)
			}

			if want := "build dropped 2 unrooted record(s)"; entries[0].Message != want {
				t.Errorf("logged %q, want %q", entries[0].Message, want)
			}
		})
	}
}

func TestForester_BuildPermutations(t *testing.T) {
	nodes := scenarioA()
	f := New(RecordKeys[int]())
	want := shapeOf(f, f.Build(nodes))

	rnd := rand.New(rand.NewSource(1))
	for run := 0; run < 50; run++ {
		shuffled := make([]Record[int], len(nodes))
		copy(shuffled, nodes)
		rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		got := shapeOf(f, f.Build(shuffled))
		if diff := cmp.Diff(want, got, sortShapes); diff != "" {
			t.Fatalf("Forester.Build(%v) mismatch (-want +got):\n%s", f.IDs(shuffled), diff)
		}
	}
}

func TestForester_BuildParentLinks(t *testing.T) {
	f := New(RecordKeys[int]())
	forest := f.Build(scenarioA())

	if forest[0].Parent() != nil {
		t.Errorf("root Hierarchy.Parent() = %v, want nil", forest[0].Parent())
	}

	for _, child := range forest[0].Children() {
		if child.Parent() != forest[0] {
			t.Errorf("Hierarchy.Parent() of (%d) is not its root", child.Value().ID)
		}
	}

	if got := forest.Len(); got != 6 {
		t.Errorf("List.Len() = %d, want 6", got)
	}
}

func TestHierarchy_Traversal(t *testing.T) {
	f := New(RecordKeys[int]())
	root := f.Build(scenarioA())[0]

	if got, want := f.Values(root.AllChildren()), []int{2, 3, 4, 5}; !cmp.Equal(got, want) {
		t.Errorf("Hierarchy.AllChildren() = %v, want %v", got, want)
	}

	if got, want := f.LevelValues(root.AllChildrenByLevel()), [][]int{{2, 3}, {4, 5}}; !cmp.Equal(got, want) {
		t.Errorf("Hierarchy.AllChildrenByLevel() = %v, want %v", got, want)
	}

	if got, want := f.Values(root.Leaves(), true), []int{4, 5}; !cmp.Equal(got, want) {
		t.Errorf("Hierarchy.Leaves() = %v, want %v", got, want)
	}

	var visited []int
	root.Walk(func(node *Hierarchy[Record[int]], _ bool) bool {
		visited = append(visited, node.Value().ID)
		return len(visited) < 3
	})
	if want := []int{1, 2, 3}; !cmp.Equal(visited, want) {
		t.Errorf("Hierarchy.Walk() visited %v, want %v", visited, want)
	}

	if got := root.Len(); got != 5 {
		t.Errorf("Hierarchy.Len() = %d, want 5", got)
	}
}
