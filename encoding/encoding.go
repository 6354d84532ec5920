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

// Package encoding defines the Encoder and Decoder contracts shared by
// the Avro binary and JSON wire formats. An encoder or decoder is owned
// by a single caller for its lifetime, and its state after an error is
// undefined.
package encoding

// Encoder is the schema-driven write surface of a wire format. Callers
// (normally a generic writer) invoke the structural methods in the order
// the schema dictates; a format that has no use for a structural event
// implements it as a no-op.
//
// Arrays and maps share one item protocol: WriteArrayStart (or
// WriteMapStart), then for each run of items SetItemCount followed by
// StartItem before every item, then WriteArrayEnd (or WriteMapEnd).
type Encoder interface {
	// WriteNull encodes a null value.
	WriteNull() error
	// WriteBool encodes a boolean value.
	WriteBool(v bool) error
	// WriteInt encodes a 32-bit signed integer.
	WriteInt(v int32) error
	// WriteLong encodes a 64-bit signed integer.
	WriteLong(v int64) error
	// WriteFloat encodes a single-precision float.
	WriteFloat(v float32) error
	// WriteDouble encodes a double-precision float.
	WriteDouble(v float64) error
	// WriteBytes encodes a variable-length byte sequence.
	WriteBytes(v []byte) error
	// WriteString encodes a UTF-8 string.
	WriteString(v string) error
	// WriteFixed encodes a constant-length byte sequence.
	WriteFixed(v []byte) error
	// WriteEnum encodes an enum value, given both its ordinal and its
	// symbol; each format uses the representation it needs.
	WriteEnum(ordinal int, symbol string) error

	// WriteRecordStart opens a record value.
	WriteRecordStart() error
	// WriteRecordField introduces the next record field.
	WriteRecordField(name string) error
	// WriteRecordEnd closes a record value.
	WriteRecordEnd() error

	// WriteArrayStart opens an array value.
	WriteArrayStart() error
	// SetItemCount announces how many items the next run holds.
	SetItemCount(n int64) error
	// StartItem marks the start of the next array or map item.
	StartItem() error
	// WriteArrayEnd closes an array value.
	WriteArrayEnd() error

	// WriteMapStart opens a map value.
	WriteMapStart() error
	// WriteMapKey encodes the key of the current map item.
	WriteMapKey(key string) error
	// WriteMapEnd closes a map value.
	WriteMapEnd() error

	// WriteUnionStart selects the union branch about to be encoded,
	// given its position and its branch name.
	WriteUnionStart(index int, branch string) error
	// WriteUnionEnd closes the union value.
	WriteUnionEnd() error

	// Flush pushes everything buffered to the underlying stream.
	Flush() error
}

// Decoder is the schema-driven read surface of a wire format.
//
// ReadArrayStart and ReadMapStart return the number of items in the
// first run, zero when the container is empty; ReadArrayNext and
// ReadMapNext do the same for each following run.
//
// ReadEnum and ReadUnionStart return either an authoritative ordinal or
// a symbol/branch name, depending on what the format carries; a non-""
// name means the caller resolves it against the schema.
type Decoder interface {
	// ReadNull decodes a null value.
	ReadNull() error
	// ReadBool decodes a boolean value.
	ReadBool() (bool, error)
	// ReadInt decodes a 32-bit signed integer.
	ReadInt() (int32, error)
	// ReadLong decodes a 64-bit signed integer.
	ReadLong() (int64, error)
	// ReadFloat decodes a single-precision float.
	ReadFloat() (float32, error)
	// ReadDouble decodes a double-precision float.
	ReadDouble() (float64, error)
	// ReadBytes decodes a variable-length byte sequence.
	ReadBytes() ([]byte, error)
	// ReadString decodes a UTF-8 string.
	ReadString() (string, error)
	// ReadFixed decodes exactly size bytes.
	ReadFixed(size int) ([]byte, error)
	// ReadEnum decodes an enum value as an ordinal or a symbol.
	ReadEnum() (ordinal int, symbol string, err error)

	// ReadRecordStart opens a record value.
	ReadRecordStart() error
	// ReadRecordField consumes the introduction of the named field.
	ReadRecordField(name string) error
	// ReadRecordEnd closes a record value.
	ReadRecordEnd() error

	// ReadArrayStart opens an array and returns the first run's item
	// count.
	ReadArrayStart() (int64, error)
	// ReadArrayNext returns the next run's item count, zero at the end.
	ReadArrayNext() (int64, error)
	// ReadMapStart opens a map and returns the first run's item count.
	ReadMapStart() (int64, error)
	// ReadMapNext returns the next run's item count, zero at the end.
	ReadMapNext() (int64, error)
	// ReadMapKey decodes the key of the current map item.
	ReadMapKey() (string, error)

	// ReadUnionStart decodes the union branch selector as an index or a
	// branch name.
	ReadUnionStart() (index int, branch string, err error)
	// ReadUnionEnd closes the union value.
	ReadUnionEnd() error

	// SkipBytes discards a bytes value.
	SkipBytes() error
	// SkipString discards a string value.
	SkipString() error
	// SkipFixed discards exactly size bytes.
	SkipFixed(size int) error
	// SkipArray discards an array, calling skipItem once per item that
	// cannot be skipped wholesale.
	SkipArray(skipItem func() error) error
	// SkipMap discards a map, calling skipItem once per key/value pair
	// that cannot be skipped wholesale.
	SkipMap(skipItem func() error) error
}
