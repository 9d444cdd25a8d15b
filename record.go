// SPDX-License-Identifier: MIT
package arborist

type (
	// Builder defines an interface for entities that can be read into a forest.
	Builder[T Constraint] interface {
		// Value obtains the identifier stored by the Builder.
		Value() T
		// Parent obtains the parent stored by the Builder, false for a root.
		Parent() (T, bool)
	}

	// Record is the default Builder implementation.
	//
	// Fields carries caller data through every operation untouched.
	Record[T Constraint] struct {
		ID       T              `json:"id"`
		ParentID *T             `json:"parentId,omitempty"`
		GroupID  *T             `json:"familyId,omitempty"`
		Fields   map[string]any `json:"-"`
	}
)

// NewRecord instantiates a Record, parent is optional.
func NewRecord[T Constraint](id T, parent ...T) Record[T] {
	r := Record[T]{ID: id}
	if len(parent) > 0 {
		p := parent[0]
		r.ParentID = &p
	}

	return r
}

// InGroup returns a copy of the Record belonging to group.
func (r Record[T]) InGroup(group T) Record[T] {
	r.GroupID = &group
	return r
}

// Value obtains the Record's identifier.
func (r Record[T]) Value() T { return r.ID }

// Parent obtains the Record's parent identifier.
func (r Record[T]) Parent() (parent T, ok bool) {
	if r.ParentID == nil {
		return
	}

	return *r.ParentID, true
}

// Group obtains the Record's grouping key.
func (r Record[T]) Group() (group T, ok bool) {
	if r.GroupID == nil {
		return
	}

	return *r.GroupID, true
}

// BuilderKeys reads any Builder implementation.
func BuilderKeys[B Builder[T], T Constraint]() Keys[B, T] {
	return Keys[B, T]{
		ID:     func(b B) T { return b.Value() },
		Parent: func(b B) (T, bool) { return b.Parent() },
	}
}

// RecordKeys reads Records, including their grouping key.
func RecordKeys[T Constraint]() Keys[Record[T], T] {
	keys := BuilderKeys[Record[T], T]()
	keys.Group = Record[T].Group

	return keys
}
