// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.microglot.org/clex/internal/exc"
	"gopkg.microglot.org/clex/internal/lex"
	"gopkg.microglot.org/clex/internal/source"
)

// chunkBody feeds at most chunk bytes per read so refill boundaries
// can be forced at arbitrary positions.
type chunkBody struct {
	data  []byte
	chunk int
	pos   int
}

func (self *chunkBody) Read(ctx context.Context, size int32) ([]byte, error) {
	if self.pos >= len(self.data) {
		return nil, exc.Wrap(exc.Location{}, exc.CodeEOF, io.EOF)
	}
	n := self.chunk
	if n > int(size) {
		n = int(size)
	}
	if self.pos+n > len(self.data) {
		n = len(self.data) - self.pos
	}
	out := self.data[self.pos : self.pos+n]
	self.pos = self.pos + n
	return out, nil
}

func (self *chunkBody) Close(ctx context.Context) error {
	return nil
}

// scanAll drains a scanner built over input with the given buffer
// capacity, batch size, and source chunk size. A clean End comes back
// as a nil error.
func scanAll(input string, capacity int, batch int, chunk int) ([]lex.Token, error) {
	ctx := context.Background()
	s := New("test.c", &chunkBody{data: []byte(input), chunk: chunk}, WithCapacity(capacity))
	var all []lex.Token
	out := make([]lex.Token, batch)
	for {
		n, err := s.Read(ctx, out)
		all = append(all, out[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return all, nil
			}
			return all, err
		}
	}
}

func TestScannerTokenSequence(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	input := "int main() { return x; }\n"
	body, err := source.NewFileString("main.c", input).Body(ctx)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, body.Close(ctx))
	}()

	s := New("main.c", body)
	expected := []lex.Token{
		{Category: lex.CategoryIdentifier, Offset: 0, Length: 3},
		{Category: lex.CategoryWhitespace, Offset: 3, Length: 1},
		{Category: lex.CategoryIdentifier, Offset: 4, Length: 4},
		{Category: lex.CategoryPunctuation, Offset: 8, Length: 1},
		{Category: lex.CategoryPunctuation, Offset: 9, Length: 1},
		{Category: lex.CategoryWhitespace, Offset: 10, Length: 1},
		{Category: lex.CategoryPunctuation, Offset: 11, Length: 1},
		{Category: lex.CategoryWhitespace, Offset: 12, Length: 1},
		{Category: lex.CategoryIdentifier, Offset: 13, Length: 6},
		{Category: lex.CategoryWhitespace, Offset: 19, Length: 1},
		{Category: lex.CategoryIdentifier, Offset: 20, Length: 1},
		{Category: lex.CategoryPunctuation, Offset: 21, Length: 1},
		{Category: lex.CategoryWhitespace, Offset: 22, Length: 1},
		{Category: lex.CategoryPunctuation, Offset: 23, Length: 1},
		{Category: lex.CategoryWhitespace, Offset: 24, Length: 1},
	}
	for _, want := range expected {
		tok, err := s.Next(ctx)
		require.NoError(t, err)
		require.Equal(t, want, tok)
	}
	_, err = s.Next(ctx)
	require.ErrorIs(t, err, io.EOF)
}

const reconstructionInput = "#define PI x\n" +
	"// area of a circle\n" +
	"char c = 'q';\n" +
	"const char *s = \"a\\\"b\";\n" +
	"if (a <<= b) { s->n = a ?: b; }\n" +
	"f(a, ...);\n"

// Concatenating the (offset, length) windows of consecutive tokens
// must reconstruct the consumed prefix exactly: no gaps, no overlaps.
func TestScannerReconstruction(t *testing.T) {
	t.Parallel()

	for _, chunk := range []int{1, 2, 3, 5, 7, 64, len(reconstructionInput)} {
		for _, capacity := range []int{32, DefaultCapacity} {
			toks, err := scanAll(reconstructionInput, capacity, 8, chunk)
			require.NoError(t, err, "chunk=%d capacity=%d", chunk, capacity)
			require.NotEmpty(t, toks)
			var next int64
			for _, tok := range toks {
				require.Equal(t, next, tok.Offset, "chunk=%d capacity=%d", chunk, capacity)
				require.Greater(t, tok.Length, 0)
				next = next + int64(tok.Length)
			}
			require.Equal(t, int64(len(reconstructionInput)), next)
		}
	}
}

// Splitting the same input at any byte boundary and feeding it through
// refills must produce the identical token sequence as one chunk.
func TestScannerChunkIdempotence(t *testing.T) {
	t.Parallel()

	baseline, err := scanAll(reconstructionInput, DefaultCapacity, 8, len(reconstructionInput))
	require.NoError(t, err)
	for chunk := 1; chunk < len(reconstructionInput); chunk++ {
		toks, err := scanAll(reconstructionInput, DefaultCapacity, 8, chunk)
		require.NoError(t, err, "chunk=%d", chunk)
		require.Equal(t, baseline, toks, "chunk=%d", chunk)
	}
}

func TestScannerEmptyInput(t *testing.T) {
	t.Parallel()

	toks, err := scanAll("", DefaultCapacity, 4, 1)
	require.NoError(t, err)
	require.Empty(t, toks)
}

func TestScannerPadsFinalShortRead(t *testing.T) {
	t.Parallel()

	toks, err := scanAll("ab", DefaultCapacity, 4, 1)
	require.NoError(t, err)
	require.Equal(t, []lex.Token{
		{Category: lex.CategoryIdentifier, Offset: 0, Length: 2},
	}, toks)
}

// A \0 inside the stream is the sentinel: everything after it is
// unreachable.
func TestScannerMidStreamSentinel(t *testing.T) {
	t.Parallel()

	toks, err := scanAll("ab\x00cd", DefaultCapacity, 4, 2)
	require.NoError(t, err)
	require.Equal(t, []lex.Token{
		{Category: lex.CategoryIdentifier, Offset: 0, Length: 2},
	}, toks)
}

func TestScannerUnrecognizedByte(t *testing.T) {
	t.Parallel()

	toks, err := scanAll("ab @", DefaultCapacity, 4, 4)
	require.Len(t, toks, 2)
	var e exc.Exception
	require.ErrorAs(t, err, &e)
	require.Equal(t, exc.CodeUnrecognizedByte, e.Code())
	require.Equal(t, int64(3), e.Location().Offset)
	require.Contains(t, e.Message(), "0x40")
}

func TestScannerNumberStubFails(t *testing.T) {
	t.Parallel()

	toks, err := scanAll("x = 9;\n", DefaultCapacity, 4, 4)
	require.Len(t, toks, 4)
	var e exc.Exception
	require.ErrorAs(t, err, &e)
	require.Equal(t, exc.CodeUnrecognizedByte, e.Code())
	require.Equal(t, int64(4), e.Location().Offset)
	require.Contains(t, e.Message(), "Number")
}

func TestScannerUnterminatedLiterals(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input string
	}{
		{name: "string", input: `x "abc`},
		{name: "character", input: `x 'a`},
		{name: "comment", input: "x // trailing"},
		{name: "directive", input: "x #pragma once"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := scanAll(tc.input, DefaultCapacity, 4, 4)
			var e exc.Exception
			require.ErrorAs(t, err, &e)
			require.Equal(t, exc.CodeUnexpectedEOF, e.Code())
			require.Equal(t, int64(2), e.Location().Offset)
		})
	}
}

// A buffer at the lookahead floor still tokenizes correctly as long
// as no single token outgrows it: every dispatch sees a window of
// exactly four bytes.
func TestScannerMinimalCapacity(t *testing.T) {
	t.Parallel()

	for chunk := 1; chunk <= 4; chunk++ {
		toks, err := scanAll("a bc + ;\n", lex.LookaheadMin, 4, chunk)
		require.NoError(t, err, "chunk=%d", chunk)
		require.Equal(t, []lex.Token{
			{Category: lex.CategoryIdentifier, Offset: 0, Length: 1},
			{Category: lex.CategoryWhitespace, Offset: 1, Length: 1},
			{Category: lex.CategoryIdentifier, Offset: 2, Length: 2},
			{Category: lex.CategoryWhitespace, Offset: 4, Length: 1},
			{Category: lex.CategoryPunctuation, Offset: 5, Length: 1},
			{Category: lex.CategoryWhitespace, Offset: 6, Length: 1},
			{Category: lex.CategoryPunctuation, Offset: 7, Length: 1},
			{Category: lex.CategoryWhitespace, Offset: 8, Length: 1},
		}, toks, "chunk=%d", chunk)
	}
}

// A run token touching end of input must still resolve: exhaustion
// places a sentinel past the real tail, not just up to the lookahead
// floor, so the run finds its terminator.
func TestScannerTrailingRun(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		category lex.Category
	}{
		{name: "identifier at the floor", input: "abcd", category: lex.CategoryIdentifier},
		{name: "identifier just past the floor", input: "abcde", category: lex.CategoryIdentifier},
		{name: "long identifier", input: "a_much_longer_trailing_name", category: lex.CategoryIdentifier},
		{name: "whitespace", input: " \t  \r\n", category: lex.CategoryWhitespace},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for chunk := 1; chunk <= len(tc.input); chunk++ {
				toks, err := scanAll(tc.input, DefaultCapacity, 4, chunk)
				require.NoError(t, err, "chunk=%d", chunk)
				require.Equal(t, []lex.Token{
					{Category: tc.category, Offset: 0, Length: len(tc.input)},
				}, toks, "chunk=%d", chunk)
			}
		})
	}
}

func TestScannerTokenOverflow(t *testing.T) {
	t.Parallel()

	_, err := scanAll("abcdefgh ", 4, 4, 8)
	var e exc.Exception
	require.ErrorAs(t, err, &e)
	require.Equal(t, exc.CodeTokenOverflow, e.Code())

	// A run spanning the whole backing storage at end of input leaves
	// no room for the sentinel; resolving it would need a larger
	// buffer, so it is an overflow rather than an unexpected EOF.
	_, err = scanAll("abcd", lex.LookaheadMin, 4, 8)
	require.ErrorAs(t, err, &e)
	require.Equal(t, exc.CodeTokenOverflow, e.Code())
}

func TestScannerBatching(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := New("test.c", &chunkBody{data: []byte("a b"), chunk: 3})
	out := make([]lex.Token, 2)

	n, err := s.Read(ctx, out)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = s.Read(ctx, out)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = s.Read(ctx, out)
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, 0, n)
}

func TestScannerReportsToSharedReporter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reporter := exc.NewReporter(nil)
	s := New("bad.c", &chunkBody{data: []byte("@"), chunk: 1}, WithReporter(reporter))
	_, err := s.Next(ctx)
	require.Error(t, err)
	require.Len(t, reporter.Reported(), 1)
	require.Equal(t, "bad.c", reporter.Reported()[0].Location().URI)
}

func TestNewBufferBelowFloorPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		_ = NewBuffer(lex.LookaheadMin - 1)
	})
}
