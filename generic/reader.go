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

package generic

import (
	avro "github.com/confluentinc/avro-go"
	"github.com/confluentinc/avro-go/encoding"
	"github.com/confluentinc/avro-go/schema"
)

// Reader walks a schema and consumes a decoder, building a datum in
// place. The writer schema and the reader schema must agree; resolving
// two different schemas against each other is a future extension.
type Reader struct {
	writerSchema schema.Schema
	readerSchema schema.Schema
}

// NewReader creates a reader that decodes data written with the same
// schema it reads into.
func NewReader(s schema.Schema) *Reader {
	return &Reader{writerSchema: s, readerSchema: s}
}

// NewReaderWithSchemas creates a reader with distinct writer and reader
// schemas. Until schema resolution lands the schemas must be equal.
func NewReaderWithSchemas(writer, reader schema.Schema) (*Reader, error) {
	if !writer.Equal(reader) {
		return nil, avro.NewRuntimeError("schema resolution between different writer and reader schemas is not supported")
	}
	return &Reader{writerSchema: writer, readerSchema: reader}, nil
}

// Schema returns the reader's target schema.
func (r *Reader) Schema() schema.Schema {
	return r.readerSchema
}

// Read decodes one value into the given datum, which must have been
// built from the reader's schema.
func (r *Reader) Read(d *Datum, dec encoding.Decoder) error {
	return readDatum(r.readerSchema, d, dec)
}

// ReadNew decodes one value into a fresh datum.
func (r *Reader) ReadNew(dec encoding.Decoder) (*Datum, error) {
	d := NewDatum(r.readerSchema)
	if err := r.Read(d, dec); err != nil {
		return nil, err
	}
	return d, nil
}

func readDatum(s schema.Schema, d *Datum, dec encoding.Decoder) error {
	switch s.Type() {
	case schema.TypeNull:
		return dec.ReadNull()
	case schema.TypeBoolean:
		v, err := dec.ReadBool()
		if err != nil {
			return err
		}
		return d.SetBool(v)
	case schema.TypeInt:
		v, err := dec.ReadInt()
		if err != nil {
			return err
		}
		return d.SetInt(v)
	case schema.TypeLong:
		v, err := dec.ReadLong()
		if err != nil {
			return err
		}
		return d.SetLong(v)
	case schema.TypeFloat:
		v, err := dec.ReadFloat()
		if err != nil {
			return err
		}
		return d.SetFloat(v)
	case schema.TypeDouble:
		v, err := dec.ReadDouble()
		if err != nil {
			return err
		}
		return d.SetDouble(v)
	case schema.TypeBytes:
		v, err := dec.ReadBytes()
		if err != nil {
			return err
		}
		return d.SetBytes(v)
	case schema.TypeString:
		v, err := dec.ReadString()
		if err != nil {
			return err
		}
		return d.SetString(v)
	case schema.TypeRecord:
		return readRecord(s.(*schema.RecordSchema), d, dec)
	case schema.TypeEnum:
		return readEnum(s.(*schema.EnumSchema), d, dec)
	case schema.TypeArray:
		return readArray(s.(*schema.ArraySchema), d, dec)
	case schema.TypeMap:
		return readMap(s.(*schema.MapSchema), d, dec)
	case schema.TypeUnion:
		return readUnion(s.(*schema.UnionSchema), d, dec)
	case schema.TypeFixed:
		fs := s.(*schema.FixedSchema)
		b, err := dec.ReadFixed(fs.Size())
		if err != nil {
			return err
		}
		f, err := d.Fixed()
		if err != nil {
			return err
		}
		return f.SetBytes(b)
	}
	return avro.NewRuntimeError("cannot read schema type %s", s.Type())
}

func readRecord(rs *schema.RecordSchema, d *Datum, dec encoding.Decoder) error {
	rec, err := d.Record()
	if err != nil {
		return err
	}
	if err := dec.ReadRecordStart(); err != nil {
		return err
	}
	for i, f := range rs.Fields() {
		if err := dec.ReadRecordField(f.Name()); err != nil {
			return err
		}
		fd, err := rec.FieldAt(i)
		if err != nil {
			return err
		}
		if err := readDatum(f.Schema(), fd, dec); err != nil {
			return err
		}
	}
	return dec.ReadRecordEnd()
}

func readEnum(es *schema.EnumSchema, d *Datum, dec encoding.Decoder) error {
	ordinal, symbol, err := dec.ReadEnum()
	if err != nil {
		return err
	}
	e, err := d.Enum()
	if err != nil {
		return err
	}
	if symbol != "" {
		return e.SetSymbol(symbol)
	}
	return e.SetOrdinal(ordinal)
}

func readArray(as *schema.ArraySchema, d *Datum, dec encoding.Decoder) error {
	arr, err := d.Array()
	if err != nil {
		return err
	}
	arr.Clear()
	n, err := dec.ReadArrayStart()
	for err == nil && n > 0 {
		for ; n > 0; n-- {
			elem := NewDatum(as.Items())
			if err := readDatum(as.Items(), elem, dec); err != nil {
				return err
			}
			arr.Append(elem)
		}
		n, err = dec.ReadArrayNext()
	}
	return err
}

func readMap(ms *schema.MapSchema, d *Datum, dec encoding.Decoder) error {
	m, err := d.Map()
	if err != nil {
		return err
	}
	m.Clear()
	n, err := dec.ReadMapStart()
	for err == nil && n > 0 {
		for ; n > 0; n-- {
			key, err := dec.ReadMapKey()
			if err != nil {
				return err
			}
			vd := NewDatum(ms.Values())
			if err := readDatum(ms.Values(), vd, dec); err != nil {
				return err
			}
			m.Set(key, vd)
		}
		n, err = dec.ReadMapNext()
	}
	return err
}

func readUnion(us *schema.UnionSchema, d *Datum, dec encoding.Decoder) error {
	idx, branch, err := dec.ReadUnionStart()
	if err != nil {
		return err
	}
	if branch != "" {
		idx = us.IndexOf(branch)
		if idx < 0 {
			return avro.NewRuntimeError("union has no branch named %q", branch)
		}
	}
	bs, err := us.Branch(idx)
	if err != nil {
		return err
	}
	if err := d.SelectBranch(idx); err != nil {
		return err
	}
	inner, err := d.Branch()
	if err != nil {
		return err
	}
	if err := readDatum(bs, inner, dec); err != nil {
		return err
	}
	return dec.ReadUnionEnd()
}
