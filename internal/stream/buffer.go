// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"fmt"

	"gopkg.microglot.org/clex/internal/lex"
)

// DefaultCapacity is the backing storage size used when the caller
// does not pick one.
const DefaultCapacity = 4096

// Buffer owns the backing storage behind the active window. consumed
// counts bytes already turned into tokens since the start of the
// stream and never decreases; start and filled delimit the valid bytes
// within back. Matchers always index relative to the window start, so
// the unconsumed tail must be relocated to the front of back before
// new bytes are appended.
type Buffer struct {
	back     []byte
	start    int
	filled   int
	consumed int64
}

// NewBuffer allocates backing storage of the given capacity. A
// capacity below the lookahead floor can never satisfy the window
// invariant and is a configuration error.
func NewBuffer(capacity int) *Buffer {
	if capacity < lex.LookaheadMin {
		panic(fmt.Sprintf("stream: buffer capacity %d is below the %d-byte lookahead floor", capacity, lex.LookaheadMin))
	}
	return &Buffer{back: make([]byte, capacity)}
}

// Window returns the active window: the unconsumed valid bytes.
func (b *Buffer) Window() lex.Window {
	return lex.Window(b.back[b.start : b.start+b.filled])
}

// Consumed returns the absolute stream offset of the window start.
func (b *Buffer) Consumed() int64 {
	return b.consumed
}

// advance marks length bytes at the window start as tokenized. The
// bytes stay in place until the next compact.
func (b *Buffer) advance(length int) {
	b.start += length
	b.filled -= length
	b.consumed += int64(length)
}

// compact relocates the unconsumed tail to the front of the backing
// storage so that appended bytes extend the window.
func (b *Buffer) compact() {
	if b.start > 0 {
		copy(b.back, b.back[b.start:b.start+b.filled])
		b.start = 0
	}
}

// append copies fresh bytes in after the unconsumed tail. compact must
// run first. It returns the number of bytes accepted.
func (b *Buffer) append(p []byte) int {
	n := copy(b.back[b.start+b.filled:], p)
	b.filled += n
	return n
}

// pad extends the window with \0 sentinels: one past the real tail so
// a trailing run token can resolve, and then up to the lookahead
// floor. Only valid once the source is known to be exhausted: the
// sentinel is what turns the final window into a clean End. compact
// must run first so the padding fits. When the real bytes already span
// the whole backing storage no sentinel fits and the overflow path
// applies instead.
func (b *Buffer) pad() {
	if b.filled > 0 && b.back[b.start+b.filled-1] != 0 && b.start+b.filled < len(b.back) {
		b.back[b.start+b.filled] = 0
		b.filled++
	}
	for b.filled < lex.LookaheadMin {
		b.back[b.start+b.filled] = 0
		b.filled++
	}
}

// full reports whether no further bytes can be appended even after a
// compact, meaning the current window already spans the whole backing
// storage.
func (b *Buffer) full() bool {
	return b.filled == len(b.back)
}
