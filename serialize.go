// SPDX-License-Identifier: MIT
package arborist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gitlab.com/fisherprime/arborist/lexer"
)

// ErrUnserializableValue is returned for identifiers the lexer cannot read back.
var ErrUnserializableValue = errors.New("identifier cannot be serialized")

// Serialize transforms a forest into a string, e.g. `1,2,4)),3))6)`.
//
// Every value is followed by its children & an end marker; values after the first are preceded by
// the splitter. Children keep their List order.
func (f *Forester[R, T]) Serialize(ctx context.Context, forest List[R], opts ...lexer.Option) (output string, err error) {
	// Only the marker configuration is used.
	l := lexer.New(opts...)

	var buffer strings.Builder
	for _, root := range forest {
		if err = f.serialize(ctx, l, root, &buffer); err != nil {
			return
		}
	}

	output = buffer.String()

	return
}

// serialize performs the serialization grunt work.
func (f *Forester[R, T]) serialize(ctx context.Context, l *lexer.Lexer, h *Hierarchy[R], buffer *strings.Builder) (err error) {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	value := fmt.Sprint(f.keys.ID(h.value))
	if value == "" || strings.IndexFunc(value, func(r rune) bool { return !lexer.IsValue(r) }) > -1 {
		return fmt.Errorf("(%q) %w", value, ErrUnserializableValue)
	}

	if buffer.Len() > 0 {
		buffer.WriteRune(l.Splitter())
	}
	buffer.WriteString(value)

	for _, child := range h.children {
		if err = f.serialize(ctx, l, child, buffer); err != nil {
			return
		}
	}
	buffer.WriteRune(l.EndMarker())

	return
}
