// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package lex

// LookaheadMin is the number of bytes every matcher may read from the
// start of a window without a bounds check. The refill protocol keeps
// at least this many bytes available, padding with the \0 sentinel
// once the byte source is exhausted.
const LookaheadMin = 4

// Window is the unconsumed portion of the caller's buffer, beginning
// at the first byte of the next token. Matchers index relative to the
// window start and never read past its length.
type Window []byte
