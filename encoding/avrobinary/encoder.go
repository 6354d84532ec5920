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

// Package avrobinary implements the Avro binary wire format.
package avrobinary

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/confluentinc/avro-go/encoding"
	"github.com/confluentinc/avro-go/encoding/stream"
)

// Encoder writes the Avro binary encoding to a byte stream. Records and
// unions have no framing of their own, so the structural methods other
// than the array/map item protocol are no-ops.
type Encoder struct {
	out     *stream.OutputBuffer
	scratch [10]byte
}

var _ encoding.Encoder = (*Encoder)(nil)

// NewEncoder creates a binary encoder over a sink.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{out: stream.NewOutputBuffer(w)}
}

// writeVarint writes v seven bits per byte, little-endian, with the high
// bit carrying continuation.
func (e *Encoder) writeVarint(v uint64) error {
	n := 0
	for v >= 0x80 {
		e.scratch[n] = byte(v) | 0x80
		v >>= 7
		n++
	}
	e.scratch[n] = byte(v)
	_, err := e.out.Write(e.scratch[:n+1])
	return err
}

// WriteNull encodes null as zero bytes.
func (e *Encoder) WriteNull() error {
	return nil
}

// WriteBool encodes a boolean as a single 0 or 1 byte.
func (e *Encoder) WriteBool(v bool) error {
	if v {
		return e.out.WriteByte(1)
	}
	return e.out.WriteByte(0)
}

// WriteInt encodes a 32-bit integer as a zig-zagged varint.
func (e *Encoder) WriteInt(v int32) error {
	return e.writeVarint(uint64(ZigZagInt(v)))
}

// WriteLong encodes a 64-bit integer as a zig-zagged varint.
func (e *Encoder) WriteLong(v int64) error {
	return e.writeVarint(ZigZagLong(v))
}

// WriteFloat encodes an IEEE-754 single, little-endian.
func (e *Encoder) WriteFloat(v float32) error {
	binary.LittleEndian.PutUint32(e.scratch[:4], math.Float32bits(v))
	_, err := e.out.Write(e.scratch[:4])
	return err
}

// WriteDouble encodes an IEEE-754 double, little-endian.
func (e *Encoder) WriteDouble(v float64) error {
	binary.LittleEndian.PutUint64(e.scratch[:8], math.Float64bits(v))
	_, err := e.out.Write(e.scratch[:8])
	return err
}

// WriteBytes encodes a long length followed by the raw bytes.
func (e *Encoder) WriteBytes(v []byte) error {
	if err := e.WriteLong(int64(len(v))); err != nil {
		return err
	}
	_, err := e.out.Write(v)
	return err
}

// WriteString encodes the UTF-8 bytes of the string as bytes.
func (e *Encoder) WriteString(v string) error {
	if err := e.WriteLong(int64(len(v))); err != nil {
		return err
	}
	_, err := e.out.Write([]byte(v))
	return err
}

// WriteFixed encodes exactly the given bytes, with no length prefix.
func (e *Encoder) WriteFixed(v []byte) error {
	_, err := e.out.Write(v)
	return err
}

// WriteEnum encodes the symbol's ordinal as an int.
func (e *Encoder) WriteEnum(ordinal int, _ string) error {
	return e.WriteInt(int32(ordinal))
}

// WriteRecordStart is a no-op; a record is the concatenation of its
// fields.
func (e *Encoder) WriteRecordStart() error {
	return nil
}

// WriteRecordField is a no-op.
func (e *Encoder) WriteRecordField(string) error {
	return nil
}

// WriteRecordEnd is a no-op.
func (e *Encoder) WriteRecordEnd() error {
	return nil
}

// WriteArrayStart is a no-op; the item runs carry the framing.
func (e *Encoder) WriteArrayStart() error {
	return nil
}

// SetItemCount emits the count of the next block when it is non-empty.
func (e *Encoder) SetItemCount(n int64) error {
	if n == 0 {
		return nil
	}
	return e.WriteLong(n)
}

// StartItem is a no-op marker.
func (e *Encoder) StartItem() error {
	return nil
}

// WriteArrayEnd emits the zero-count terminating block.
func (e *Encoder) WriteArrayEnd() error {
	return e.WriteLong(0)
}

// WriteMapStart is a no-op; map framing mirrors arrays.
func (e *Encoder) WriteMapStart() error {
	return nil
}

// WriteMapKey encodes a map key as a string.
func (e *Encoder) WriteMapKey(key string) error {
	return e.WriteString(key)
}

// WriteMapEnd emits the zero-count terminating block.
func (e *Encoder) WriteMapEnd() error {
	return e.WriteLong(0)
}

// WriteUnionStart encodes the chosen branch index as an int.
func (e *Encoder) WriteUnionStart(index int, _ string) error {
	return e.WriteInt(int32(index))
}

// WriteUnionEnd is a no-op.
func (e *Encoder) WriteUnionEnd() error {
	return nil
}

// Flush pushes buffered output to the sink.
func (e *Encoder) Flush() error {
	return e.out.Flush()
}
