// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"io"

	"gopkg.microglot.org/clex/internal/exc"
)

func bodyFromIO(v io.ReadCloser) Body {
	return &ioBody{rc: v}
}

type ioBody struct {
	rc io.ReadCloser
	b  []byte
}

func (self *ioBody) Read(ctx context.Context, size int32) ([]byte, error) {
	if len(self.b) < int(size) {
		self.b = make([]byte, size)
	}
	count, err := self.rc.Read(self.b[:size])
	if err != nil && err != io.EOF {
		return nil, exc.WrapUnknown(exc.Location{}, err)
	}
	if err == io.EOF {
		return self.b[:count], exc.Wrap(exc.Location{}, exc.CodeEOF, err)
	}
	return self.b[:count], nil
}

func (self *ioBody) Close(ctx context.Context) error {
	return self.rc.Close()
}
