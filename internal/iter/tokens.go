// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package iter

import (
	"context"

	"gopkg.microglot.org/clex/internal/lex"
	"gopkg.microglot.org/clex/internal/optional"
	"gopkg.microglot.org/clex/internal/stream"
)

// NewTokens adapts a stream.Scanner into an Iterator of tokens.
// Tokens are pulled from the scanner in batches of up to batch at a
// time and handed out one by one. The iterator ends on End or on the
// first failure; failures are already accumulated in the scanner's
// reporter, so consumers that need the reason inspect that.
func NewTokens(s *stream.Scanner, batch int) Iterator[lex.Token] {
	if batch < 1 {
		batch = 1
	}
	return &tokens{
		scanner: s,
		batch:   make([]lex.Token, batch),
	}
}

type tokens struct {
	scanner *stream.Scanner
	batch   []lex.Token
	held    int
	next    int
	done    bool
}

func (self *tokens) Next(ctx context.Context) optional.Optional[lex.Token] {
	if self.next < self.held {
		t := self.batch[self.next]
		self.next = self.next + 1
		return optional.Some(t)
	}
	if self.done {
		return optional.None[lex.Token]()
	}
	n, err := self.scanner.Read(ctx, self.batch)
	self.held = n
	self.next = 0
	if err != nil {
		self.done = true
	}
	if n < 1 {
		return optional.None[lex.Token]()
	}
	t := self.batch[0]
	self.next = 1
	return optional.Some(t)
}

func (self *tokens) Close(ctx context.Context) error {
	return nil
}
