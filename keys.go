// SPDX-License-Identifier: MIT
package arborist

import (
	"encoding/json"
	"strconv"
)

type (
	// Keys defines how identifiers are read off a record.
	//
	// Records are only ever read through these functions, never modified.
	Keys[R any, T Constraint] struct {
		// ID obtains the record's identifier.
		ID func(R) T

		// Parent obtains the record's parent identifier; false marks a record without a parent.
		Parent func(R) (T, bool)

		// Group obtains the record's grouping key, used to partition candidates for
		// [Forester.MappedAncestors].
		//
		// Optional. A record without a group belongs to the group named by its own identifier.
		Group func(R) (T, bool)
	}

	// KeyOption defines the functional option type for map record field names.
	KeyOption func(*keyNames)

	keyNames struct {
		id     string
		parent string
		group  string
		mapped string
	}
)

// Default map record field names.
const (
	DefaultIDKey     = "id"
	DefaultParentKey = "parentId"
	DefaultGroupKey  = "familyId"
	DefaultMappedKey = "groupId"
)

func newKeyNames(options ...KeyOption) *keyNames {
	names := &keyNames{
		id:     DefaultIDKey,
		parent: DefaultParentKey,
		group:  DefaultGroupKey,
		mapped: DefaultMappedKey,
	}

	for _, opt := range options {
		opt(names)
	}

	return names
}

// WithIDKey configures the identifier field name.
func WithIDKey(key string) KeyOption { return func(k *keyNames) { k.id = key } }

// WithParentKey configures the parent identifier field name.
func WithParentKey(key string) KeyOption { return func(k *keyNames) { k.parent = key } }

// WithGroupKey configures the grouping key field name.
func WithGroupKey(key string) KeyOption { return func(k *keyNames) { k.group = key } }

// WithMappedKey configures the field holding a batch target's identifier.
func WithMappedKey(key string) KeyOption { return func(k *keyNames) { k.mapped = key } }

// ParentOf reads the declared parent of a map record.
//
// An absent field, a nil value and an empty string all mean "no parent". An empty key reads
// [DefaultParentKey].
func ParentOf(record map[string]any, key string) (parent any, ok bool) {
	if key == "" {
		key = DefaultParentKey
	}

	if parent, ok = record[key]; !ok || parent == nil {
		return nil, false
	}

	if str, isStr := parent.(string); isStr && str == "" {
		return nil, false
	}

	return
}

// Assert coerces a field value to T by type assertion.
func Assert[T Constraint](value any) (id T, ok bool) {
	id, ok = value.(T)
	return
}

// StringID coerces JSON scalars to their string form.
//
// Numbers decoded with or without [json.Decoder.UseNumber] yield the same identifier.
func StringID(value any) (id string, ok bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

// MapKeys reads map records whose identifier fields hold T values.
func MapKeys[T Constraint](options ...KeyOption) Keys[map[string]any, T] {
	return MapKeysFunc(Assert[T], options...)
}

// MapKeysFunc reads map records, converting field values with coerce.
//
// A parent or group value that coerce rejects counts as absent.
func MapKeysFunc[T Constraint](coerce func(any) (T, bool), options ...KeyOption) Keys[map[string]any, T] {
	names := newKeyNames(options...)

	declared := func(record map[string]any, key string) (id T, ok bool) {
		value, ok := ParentOf(record, key)
		if !ok {
			return
		}

		return coerce(value)
	}

	return Keys[map[string]any, T]{
		ID: func(record map[string]any) (id T) {
			id, _ = coerce(record[names.id])
			return
		},
		Parent: func(record map[string]any) (T, bool) { return declared(record, names.parent) },
		Group:  func(record map[string]any) (T, bool) { return declared(record, names.group) },
	}
}
