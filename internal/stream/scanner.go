// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package stream owns the caller side of the matching engine's refill
// protocol: a Buffer with the consumed/filled cursors and a Scanner
// that batches dispatch calls, relocates the unconsumed tail on every
// refill, and pads the final short read so the lookahead invariant
// holds all the way to the sentinel.
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.microglot.org/clex/internal/exc"
	"gopkg.microglot.org/clex/internal/lex"
	"gopkg.microglot.org/clex/internal/source"
)

// Scanner drives the matching engine over a single byte source. It is
// not safe for concurrent use; the buffer is exclusively owned by one
// logical cursor at a time.
type Scanner struct {
	uri       string
	body      source.Body
	buf       *Buffer
	reporter  exc.Reporter
	exhausted bool
	err       error
}

type Option func(*Scanner)

// WithCapacity sets the backing storage size. The capacity bounds the
// largest token the scanner can resolve.
func WithCapacity(n int) Option {
	return func(s *Scanner) {
		s.buf = NewBuffer(n)
	}
}

// WithReporter installs a shared reporter so failures across several
// inputs accumulate into one set.
func WithReporter(r exc.Reporter) Option {
	return func(s *Scanner) {
		s.reporter = r
	}
}

// New returns a Scanner reading from body. The uri is only used to
// locate diagnostics.
func New(uri string, body source.Body, opts ...Option) *Scanner {
	s := &Scanner{
		uri:  uri,
		body: body,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.buf == nil {
		s.buf = NewBuffer(DefaultCapacity)
	}
	if s.reporter == nil {
		s.reporter = exc.NewReporter(nil)
	}
	return s
}

// Reporter returns the reporter accumulating this scanner's failures.
func (s *Scanner) Reporter() exc.Reporter {
	return s.reporter
}

// Read fills out with consecutive tokens and returns how many were
// produced. It stops early on the first failure, returning the
// exception, and returns io.EOF once the sentinel has been reached and
// every token handed out. A short final batch with a nil error is
// normal; call again for the EOF.
func (s *Scanner) Read(ctx context.Context, out []lex.Token) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n := 0
	for n < len(out) {
		if s.buf.filled < lex.LookaheadMin {
			if err := s.ensure(ctx); err != nil {
				s.err = err
				return n, err
			}
		}
		category, match := lex.Dispatch(s.buf.Window())
		switch match.State {
		case lex.StateSuccess:
			out[n] = lex.Token{
				Category: category,
				Offset:   s.buf.Consumed(),
				Length:   match.Length,
			}
			n++
			s.buf.advance(match.Length)

		case lex.StateEnd:
			s.err = io.EOF
			if n > 0 {
				return n, nil
			}
			return 0, io.EOF

		case lex.StateFail:
			e := exc.New(s.loc(), exc.CodeUnrecognizedByte,
				fmt.Sprintf("cannot tokenize byte 0x%02x attempted as %s", s.buf.Window()[0], category))
			_ = s.reporter.Report(e)
			s.err = e
			return n, e

		case lex.StateUndecided:
			// The unmatched prefix stays in place; the retry dispatches
			// from the same window start against a larger window. A full
			// window can never grow, not even by the end-of-input
			// sentinel, so it takes precedence over exhaustion.
			if s.buf.full() {
				e := exc.New(s.loc(), exc.CodeTokenOverflow,
					fmt.Sprintf("%s token does not fit the %d byte buffer", category, len(s.buf.back)))
				_ = s.reporter.Report(e)
				s.err = e
				return n, e
			}
			if s.exhausted {
				e := exc.New(s.loc(), exc.CodeUnexpectedEOF,
					fmt.Sprintf("end of input inside an unterminated %s token", category))
				_ = s.reporter.Report(e)
				s.err = e
				return n, e
			}
			if err := s.refill(ctx); err != nil {
				s.err = err
				return n, err
			}
		}
	}
	return n, nil
}

// Next produces a single token. It is a convenience wrapper over Read
// for pull-based consumers.
func (s *Scanner) Next(ctx context.Context) (lex.Token, error) {
	var out [1]lex.Token
	n, err := s.Read(ctx, out[:])
	if n == 1 {
		return out[0], nil
	}
	return lex.Token{}, err
}

// ensure restores the lookahead floor before a dispatch, either by
// refilling from the source or, once it is exhausted, by re-padding
// with the sentinel.
func (s *Scanner) ensure(ctx context.Context) error {
	if s.exhausted {
		s.buf.compact()
		s.buf.pad()
		return nil
	}
	return s.refill(ctx)
}

// refill relocates the unconsumed tail to the start of the backing
// storage and appends newly obtained bytes after it. A zero-length
// read marks the source exhausted, at which point the window is padded
// up to the lookahead floor with the \0 sentinel.
func (s *Scanner) refill(ctx context.Context) error {
	s.buf.compact()
	for !s.exhausted {
		free := len(s.buf.back) - s.buf.filled
		chunk, err := s.body.Read(ctx, int32(free))
		s.buf.append(chunk)
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.exhausted = true
				break
			}
			return exc.WrapUnknown(s.loc(), err)
		}
		if len(chunk) == 0 {
			s.exhausted = true
			break
		}
		if s.buf.filled >= lex.LookaheadMin {
			break
		}
	}
	if s.exhausted {
		s.buf.pad()
	}
	return nil
}

func (s *Scanner) loc() exc.Location {
	return exc.Location{URI: s.uri, Offset: s.buf.Consumed()}
}
