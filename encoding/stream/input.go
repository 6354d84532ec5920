/**
 * Copyright 2024 Confluent Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package stream

import (
	"io"
)

// InputBuffer yields bytes one at a time from a block-producing source.
// The unconsumed window is buf[scan:end].
type InputBuffer struct {
	r    io.Reader
	buf  []byte
	scan int
	end  int
	err  error
}

// NewInputBuffer wraps a source with the default block size.
func NewInputBuffer(r io.Reader) *InputBuffer {
	return NewInputBufferSize(r, defaultBufferSize)
}

// NewInputBufferSize wraps a source with the given block size.
func NewInputBufferSize(r io.Reader, size int) *InputBuffer {
	if size <= 0 {
		size = defaultBufferSize
	}
	return &InputBuffer{r: r, buf: make([]byte, size)}
}

func (b *InputBuffer) fill() error {
	if b.err != nil {
		return b.err
	}
	b.scan = 0
	b.end = 0
	for {
		n, err := b.r.Read(b.buf)
		if n > 0 {
			b.end = n
			return nil
		}
		if err != nil {
			b.err = err
			return err
		}
	}
}

// ReadByte returns the next byte, refilling from the source as needed.
// At the end of input it returns io.EOF.
func (b *InputBuffer) ReadByte() (byte, error) {
	if b.scan == b.end {
		if err := b.fill(); err != nil {
			return 0, err
		}
	}
	c := b.buf[b.scan]
	b.scan++
	return c, nil
}

// PeekByte returns the next byte without consuming it.
func (b *InputBuffer) PeekByte() (byte, error) {
	if b.scan == b.end {
		if err := b.fill(); err != nil {
			return 0, err
		}
	}
	return b.buf[b.scan], nil
}

// ReadFull fills p completely or fails with io.ErrUnexpectedEOF.
func (b *InputBuffer) ReadFull(p []byte) error {
	for len(p) > 0 {
		if b.scan == b.end {
			if err := b.fill(); err != nil {
				if err == io.EOF {
					return io.ErrUnexpectedEOF
				}
				return err
			}
		}
		n := copy(p, b.buf[b.scan:b.end])
		b.scan += n
		p = p[n:]
	}
	return nil
}

// Skip discards n bytes, failing with io.ErrUnexpectedEOF when the
// source ends first.
func (b *InputBuffer) Skip(n int64) error {
	for n > 0 {
		if b.scan == b.end {
			if err := b.fill(); err != nil {
				if err == io.EOF {
					return io.ErrUnexpectedEOF
				}
				return err
			}
		}
		avail := int64(b.end - b.scan)
		if avail > n {
			avail = n
		}
		b.scan += int(avail)
		n -= avail
	}
	return nil
}
