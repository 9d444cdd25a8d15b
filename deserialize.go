// SPDX-License-Identifier: MIT
package arborist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gitlab.com/fisherprime/arborist/lexer"
)

// Deserialization errors.
var (
	ErrInvalidHierarchySrc = errors.New("invalid hierarchy source")
	ErrExcessiveValues     = errors.New("the deserialization source has excessive values")
	ErrExcessiveEndMarkers = errors.New("the deserialization source has excessive end markers")
)

// Deserialize transforms a serialized forest into flat Records, in serialization order.
//
// Values are decoded with encoding/json; for string identifiers the raw value is used. The
// source is configured through lexer.WithSource.
func Deserialize[T Constraint](ctx context.Context, opts ...lexer.Option) (records []Record[T], err error) {
	l := lexer.New(opts...)
	go l.Lex(ctx)
	defer l.Drain()

	defer func() {
		if err != nil {
			records = nil
			err = fmt.Errorf("%w: %w", ErrInvalidHierarchySrc, err)
		}
	}()

	records = make([]Record[T], 0)
	for {
		item, proceed := l.Item()
		if !proceed {
			return
		}

		switch item.ID {
		case lexer.ItemEOF:
			l.Logger().Debugf("deserialized %d record(s)", len(records))
			return
		case lexer.ItemError:
			err = item.Err
			return
		case lexer.ItemSplitter:
			continue
		case lexer.ItemEndMarker:
			err = fmt.Errorf("%w: %s", ErrExcessiveEndMarkers, string(l.EndMarker()))
			return
		}

		var root T
		if root, err = decodeValue[T](item.Val); err != nil {
			return
		}
		records = append(records, Record[T]{ID: root})

		if records, err = deserialize(ctx, l, root, records); err != nil {
			return
		}
	}
}

// deserialize performs the deserialization grunt work, consuming the children of parent up to
// & including its end marker.
func deserialize[T Constraint](ctx context.Context, l *lexer.Lexer, parent T, records []Record[T]) ([]Record[T], error) {
	for {
		item, proceed := l.Item()
		if !proceed {
			return records, ctx.Err()
		}

		switch item.ID {
		case lexer.ItemEOF:
			return records, fmt.Errorf("%w: +%d", ErrExcessiveValues, l.ValueCounter()-l.EndCounter())
		case lexer.ItemError:
			return records, item.Err
		case lexer.ItemSplitter:
			continue
		case lexer.ItemEndMarker:
			return records, nil
		}

		child, err := decodeValue[T](item.Val)
		if err != nil {
			return records, err
		}
		records = append(records, NewRecord(child, parent))

		if records, err = deserialize(ctx, l, child, records); err != nil {
			return records, err
		}
	}
}

func decodeValue[T Constraint](val []byte) (dest T, err error) {
	if str, ok := any(&dest).(*string); ok {
		*str = string(val)
		return
	}

	err = json.Unmarshal(val, &dest)

	return
}
