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

package avrobinary

import (
	"encoding/binary"
	"io"
	"math"

	avro "github.com/confluentinc/avro-go"
	"github.com/confluentinc/avro-go/encoding"
	"github.com/confluentinc/avro-go/encoding/stream"
)

// maxVarintBytes bounds a long varint; a continuation bit on the tenth
// byte makes the encoding malformed.
const maxVarintBytes = 10

// Decoder reads the Avro binary encoding from a byte stream.
type Decoder struct {
	in      *stream.InputBuffer
	scratch [8]byte
}

var _ encoding.Decoder = (*Decoder)(nil)

// NewDecoder creates a binary decoder over a source.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{in: stream.NewInputBuffer(r)}
}

func eofErr(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return avro.WrapRuntimeError(err, "unexpected end of input")
	}
	return avro.WrapRuntimeError(err, "read failed")
}

func (d *Decoder) readVarint() (uint64, error) {
	var v uint64
	var shift uint
	for i := 0; i < maxVarintBytes; i++ {
		c, err := d.in.ReadByte()
		if err != nil {
			return 0, eofErr(err)
		}
		v |= uint64(c&0x7f) << shift
		if c&0x80 == 0 {
			return v, nil
		}
		shift += 7
	}
	return 0, avro.NewInvalidNumberEncodingError("varint exceeds %d bytes", maxVarintBytes)
}

// ReadNull consumes nothing; null occupies zero bytes.
func (d *Decoder) ReadNull() error {
	return nil
}

// ReadBool decodes a single 0 or 1 byte.
func (d *Decoder) ReadBool() (bool, error) {
	c, err := d.in.ReadByte()
	if err != nil {
		return false, eofErr(err)
	}
	switch c {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, avro.NewRuntimeError("invalid boolean byte 0x%02x", c)
}

// ReadInt decodes a zig-zagged varint and checks the 32-bit range.
func (d *Decoder) ReadInt() (int32, error) {
	u, err := d.readVarint()
	if err != nil {
		return 0, err
	}
	v := UnZigZagLong(u)
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, avro.NewRuntimeError("int value %d out of 32-bit range", v)
	}
	return int32(v), nil
}

// ReadLong decodes a zig-zagged varint.
func (d *Decoder) ReadLong() (int64, error) {
	u, err := d.readVarint()
	if err != nil {
		return 0, err
	}
	return UnZigZagLong(u), nil
}

// ReadFloat decodes an IEEE-754 single, little-endian.
func (d *Decoder) ReadFloat() (float32, error) {
	if err := d.in.ReadFull(d.scratch[:4]); err != nil {
		return 0, eofErr(err)
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(d.scratch[:4])), nil
}

// ReadDouble decodes an IEEE-754 double, little-endian.
func (d *Decoder) ReadDouble() (float64, error) {
	if err := d.in.ReadFull(d.scratch[:8]); err != nil {
		return 0, eofErr(err)
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(d.scratch[:8])), nil
}

// ReadBytes decodes a long length followed by that many raw bytes.
func (d *Decoder) ReadBytes() ([]byte, error) {
	n, err := d.ReadLong()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, avro.NewRuntimeError("negative bytes length %d", n)
	}
	buf := make([]byte, n)
	if err := d.in.ReadFull(buf); err != nil {
		return nil, eofErr(err)
	}
	return buf, nil
}

// ReadString decodes a bytes value as UTF-8 text.
func (d *Decoder) ReadString() (string, error) {
	b, err := d.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadFixed decodes exactly size raw bytes.
func (d *Decoder) ReadFixed(size int) ([]byte, error) {
	buf := make([]byte, size)
	if err := d.in.ReadFull(buf); err != nil {
		return nil, eofErr(err)
	}
	return buf, nil
}

// ReadEnum decodes the ordinal as an int.
func (d *Decoder) ReadEnum() (int, string, error) {
	v, err := d.ReadInt()
	if err != nil {
		return 0, "", err
	}
	return int(v), "", nil
}

// ReadRecordStart is a no-op.
func (d *Decoder) ReadRecordStart() error {
	return nil
}

// ReadRecordField is a no-op.
func (d *Decoder) ReadRecordField(string) error {
	return nil
}

// ReadRecordEnd is a no-op.
func (d *Decoder) ReadRecordEnd() error {
	return nil
}

// readBlockCount reads the next block count; a negative count is
// followed by a byte size, which is consumed and dropped since the items
// are about to be read anyway.
func (d *Decoder) readBlockCount() (int64, error) {
	n, err := d.ReadLong()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		if _, err := d.ReadLong(); err != nil {
			return 0, err
		}
		n = -n
	}
	return n, nil
}

// ReadArrayStart returns the first block's item count.
func (d *Decoder) ReadArrayStart() (int64, error) {
	return d.readBlockCount()
}

// ReadArrayNext returns the next block's item count, zero at the
// terminator.
func (d *Decoder) ReadArrayNext() (int64, error) {
	return d.readBlockCount()
}

// ReadMapStart returns the first block's item count.
func (d *Decoder) ReadMapStart() (int64, error) {
	return d.readBlockCount()
}

// ReadMapNext returns the next block's item count, zero at the
// terminator.
func (d *Decoder) ReadMapNext() (int64, error) {
	return d.readBlockCount()
}

// ReadMapKey decodes a map key as a string.
func (d *Decoder) ReadMapKey() (string, error) {
	return d.ReadString()
}

// ReadUnionStart decodes the branch index as an int.
func (d *Decoder) ReadUnionStart() (int, string, error) {
	v, err := d.ReadInt()
	if err != nil {
		return 0, "", err
	}
	if v < 0 {
		return 0, "", avro.NewRuntimeError("negative union branch index %d", v)
	}
	return int(v), "", nil
}

// ReadUnionEnd is a no-op.
func (d *Decoder) ReadUnionEnd() error {
	return nil
}

// SkipBytes discards a bytes value without materializing it.
func (d *Decoder) SkipBytes() error {
	n, err := d.ReadLong()
	if err != nil {
		return err
	}
	if n < 0 {
		return avro.NewRuntimeError("negative bytes length %d", n)
	}
	if err := d.in.Skip(n); err != nil {
		return eofErr(err)
	}
	return nil
}

// SkipString discards a string value.
func (d *Decoder) SkipString() error {
	return d.SkipBytes()
}

// SkipFixed discards exactly size bytes.
func (d *Decoder) SkipFixed(size int) error {
	if err := d.in.Skip(int64(size)); err != nil {
		return eofErr(err)
	}
	return nil
}

// skipBlocks discards block-framed items. Blocks written with a byte
// size are skipped wholesale; otherwise skipItem runs once per item.
func (d *Decoder) skipBlocks(skipItem func() error) error {
	for {
		n, err := d.ReadLong()
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		if n < 0 {
			size, err := d.ReadLong()
			if err != nil {
				return err
			}
			if err := d.in.Skip(size); err != nil {
				return eofErr(err)
			}
			continue
		}
		for ; n > 0; n-- {
			if err := skipItem(); err != nil {
				return err
			}
		}
	}
}

// SkipArray discards an array.
func (d *Decoder) SkipArray(skipItem func() error) error {
	return d.skipBlocks(skipItem)
}

// SkipMap discards a map; skipItem must consume one key and one value.
func (d *Decoder) SkipMap(skipItem func() error) error {
	return d.skipBlocks(skipItem)
}
