// SPDX-License-Identifier: MIT
package lexer

// REF: https://github.com/sh4t/sql-parser
// REF: https://gitlab.com/fisherprime/go-ddbms/-/blob/master/internal/v1/lexer.go

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
)

type (
	// NextOperation type for the next function to be executed
	NextOperation func(context.Context) NextOperation

	// Lexer tokenizes serialized forests, e.g. `1,2,4)),3))6)`.
	Lexer struct {
		debug     bool
		endMarker rune
		splitter  rune
		logger    logrus.FieldLogger

		// c is a channel for communicating lexed Items.
		c chan Item

		// source is the input source.
		source io.RuneReader

		// token holds the runes of the value being lexed.
		token []rune

		// backup holds a rune read past the end of a value.
		backup    rune
		hasBackup bool

		valueCounter int
		endCounter   int
	}

	// Option defines the Lexer functional option type
	Option func(*Lexer)
)

const (
	// DefaultEndMarker a `rune` indicating the end of a node's children.
	DefaultEndMarker = ')'

	// DefaultSplitter is the character used to split the serialization output.
	DefaultSplitter = ','

	defBufferSize = 10
)

// Lexing errors.
var (
	ErrUnknownTokens = errors.New("unknown tokens")
)

// Improves on performance compared to ORs.
var (
	whitespace = [256]bool{
		' ':  true,
		'\t': true,
		'\r': true,
		'\n': true,
	}

	valueSymbols = [256]bool{
		'_': true,
		'-': true,
		'.': true,
	}
)

// New creates a new Lexer, reading from an empty source unless configured.
func New(opts ...Option) *Lexer {
	l := &Lexer{
		endMarker: DefaultEndMarker,
		splitter:  DefaultSplitter,
		logger:    logrus.New(),

		c: make(chan Item, defBufferSize),

		token:  make([]rune, 0, defBufferSize),
		source: strings.NewReader(""),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(l *Lexer) { l.debug = debug } }

// WithEndMarker configures the endMarker option.
func WithEndMarker(r rune) Option { return func(l *Lexer) { l.endMarker = r } }

// WithSplitter configures the splitter option.
func WithSplitter(r rune) Option { return func(l *Lexer) { l.splitter = r } }

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(l *Lexer) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithSource configures the source option.
func WithSource(source io.RuneReader) Option { return func(l *Lexer) { l.source = source } }

// EndMarker obtains the configured end marker.
func (l *Lexer) EndMarker() rune { return l.endMarker }

// Splitter obtains the configured value splitter.
func (l *Lexer) Splitter() rune { return l.splitter }

// ValueCounter obtains the number of values lexed.
//
// Only consistent once ItemEOF has been received.
func (l *Lexer) ValueCounter() int { return l.valueCounter }

// EndCounter obtains the number of end markers lexed.
//
// Only consistent once ItemEOF has been received.
func (l *Lexer) EndCounter() int { return l.endCounter }

// Logger obtains the logger.
func (l *Lexer) Logger() logrus.FieldLogger { return l.logger }

// Lex lexes the input by executing state functions, closing the Item channel when done.
func (l *Lexer) Lex(ctx context.Context) {
	for stateFunction := l.LexWhitespace; stateFunction != nil; {
		stateFunction = stateFunction(ctx)
	}

	close(l.c)
}

// LexWhitespace discards whitespace & dispatches on the next rune.
func (l *Lexer) LexWhitespace(ctx context.Context) NextOperation {
	select {
	case <-ctx.Done():
		l.EmitError(ctx.Err())
		return nil
	default:
	}

	r, err := l.next()
	for err == nil && isWhitespace(r) {
		r, err = l.next()
	}
	if err != nil {
		l.EmitError(err)
		return nil
	}

	switch {
	case r == l.endMarker:
		l.endCounter++
		l.emit(ItemEndMarker, []rune{r})
	case r == l.splitter:
		l.emit(ItemSplitter, []rune{r})
	case IsValue(r):
		l.token = append(l.token[:0], r)
		return l.LexValue
	default:
		l.EmitError(fmt.Errorf("%w: %q", ErrUnknownTokens, r))
		return nil
	}

	return l.LexWhitespace
}

// LexValue consumes a value's runes.
func (l *Lexer) LexValue(_ context.Context) NextOperation {
	for {
		r, err := l.next()
		if err != nil {
			break
		}

		if !IsValue(r) {
			l.backup, l.hasBackup = r, true
			break
		}
		l.token = append(l.token, r)
	}

	l.valueCounter++
	l.emit(ItemValue, l.token)

	return l.LexWhitespace
}

// next returns the next rune in the input.
func (l *Lexer) next() (r rune, err error) {
	if l.hasBackup {
		l.hasBackup = false
		return l.backup, nil
	}

	r, _, err = l.source.ReadRune()

	return
}

// emit sends an Item over the communication channel.
func (l *Lexer) emit(t ItemID, runes []rune) {
	val := []byte(string(runes))

	if l.debug {
		l.logger.Debugf("lexer emit %s: %s", t, val)
	}

	l.c <- Item{ID: t, Val: val}
}

// EmitEOF sends an ItemEOF Item over the communication channel.
func (l *Lexer) EmitEOF() { l.c <- Item{ID: ItemEOF} }

// EmitError sends an error over the Lexer's channel.
//
// This terminates the scan process with an error or an ItemEOF for io.EOF.
func (l *Lexer) EmitError(err error) {
	if errors.Is(err, io.EOF) {
		l.EmitEOF()
		return
	}

	l.c <- Item{ID: ItemError, Err: err}
}

// Item return a lexed Item from the input.
func (l *Lexer) Item() (i Item, ok bool) {
	i, ok = <-l.c
	return
}

// Drain discards the remaining Items, releasing the Lex goroutine.
func (l *Lexer) Drain() {
	for range l.c {
	}
}

// IsValue reports whether a rune may be part of a serialized value.
func IsValue(r rune) bool {
	if r < 256 && valueSymbols[r] {
		return true
	}

	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isWhitespace return true for whitespace, newline & carrier return.
func isWhitespace(r rune) bool { return r < 256 && whitespace[r] }
