// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// Body is an open byte stream feeding the tokenizer's refill protocol.
// Read returns at most size bytes; end of source is signaled with an
// exception wrapping io.EOF, after which the caller pads to the
// lookahead floor.
type Body interface {
	Read(ctx context.Context, size int32) ([]byte, error)
	Close(ctx context.Context) error
}

// File is a named byte source.
type File interface {
	Path(ctx context.Context) string
	Body(ctx context.Context) (Body, error)
}

// NewFileString wraps static string content in File.
func NewFileString(path string, content string) File {
	return NewFileFN(path, func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(content)), nil
	})
}

type fileIOFunc struct {
	path string
	body func() (io.ReadCloser, error)
}

// NewFileFN is intended to wrap actual file based content in the File
// interface. The given body function is used each time there is a call
// to the File.Body method so it must return a new io.ReadCloser handle.
// There is no guarantee that only one output of the body function will
// be used at a time.
func NewFileFN(path string, body func() (io.ReadCloser, error)) File {
	return &fileIOFunc{
		path: path,
		body: body,
	}
}

func (f *fileIOFunc) Path(ctx context.Context) string {
	return f.path
}

func (f *fileIOFunc) Body(ctx context.Context) (Body, error) {
	rc, err := f.body()
	if err != nil {
		return nil, err
	}
	rcb := bufio.NewReader(rc)
	rcbc := &bufioReaderCloser{
		Reader: rcb,
		Closer: rc,
	}
	return bodyFromIO(rcbc), nil
}

type bufioReaderCloser struct {
	*bufio.Reader
	io.Closer
}
