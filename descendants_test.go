// SPDX-License-Identifier: MIT
package arborist

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/exp/slices"
)

func TestForester_Descendants(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Record[int]
		id    int
		want  []int
	}{
		{
			name:  "root of simple forest",
			nodes: scenarioA(),
			id:    1,
			want:  []int{2, 3, 4, 5},
		},
		{
			name:  "inner node",
			nodes: scenarioA(),
			id:    2,
			want:  []int{4},
		},
		{
			name:  "leaf",
			nodes: scenarioA(),
			id:    6,
			want:  []int{},
		},
		{
			name:  "unknown",
			nodes: []Record[int]{NewRecord(2, 1)},
			id:    1,
			want:  []int{},
		},
		{
			name:  "declared parent missing",
			nodes: []Record[int]{NewRecord(2, 1), NewRecord(3, 2)},
			id:    1,
			want:  []int{},
		},
		{
			name:  "shuffled",
			nodes: []Record[int]{NewRecord(3, 2), NewRecord(2, 1), NewRecord(1)},
			id:    1,
			want:  []int{2, 3},
		},
		{
			name:  "cycle excludes the root",
			nodes: []Record[int]{NewRecord(1, 2), NewRecord(2, 1)},
			id:    1,
			want:  []int{2},
		},
		{
			name:  "self parented",
			nodes: []Record[int]{NewRecord(1, 1)},
			id:    1,
			want:  []int{},
		},
	}

	f := New(RecordKeys[int](), WithConfig(quietConfig()))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Descendants(tt.nodes, tt.id)
			if got == nil {
				t.Fatal("Forester.Descendants() = nil, want a non-nil list")
			}
			if diff := cmp.Diff(tt.want, f.IDs(got), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Forester.Descendants() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestForester_DescendantsProperties(t *testing.T) {
	nodes := scenarioA()
	f := New(RecordKeys[int]())

	for _, node := range nodes {
		got := f.Descendants(nodes, node.ID)

		if len(got)+1 > len(nodes) {
			t.Errorf("Forester.Descendants(%d) has %d record(s) out of %d", node.ID, len(got), len(nodes))
		}

		for _, d := range got {
			if d.ID == node.ID {
				t.Errorf("Forester.Descendants(%d) includes itself", node.ID)
			}
		}

		// Every descendant has the queried node in its ancestor chain.
		for _, d := range got {
			if !slices.Contains(f.IDs(f.Ancestors(nodes, d.ID)), node.ID) {
				t.Errorf("(%d) is a descendant of (%d) but not the reverse", d.ID, node.ID)
			}
		}
	}
}
