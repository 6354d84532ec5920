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

// Writer walks a schema and a datum together and emits the datum
// through an encoder. One writer serves one schema and may write many
// datums.
type Writer struct {
	schema schema.Schema
}

// NewWriter creates a writer for the given schema.
func NewWriter(s schema.Schema) *Writer {
	return &Writer{schema: s}
}

// Schema returns the writer's schema.
func (w *Writer) Schema() schema.Schema {
	return w.schema
}

// Write encodes one datum and flushes the encoder.
func (w *Writer) Write(d *Datum, enc encoding.Encoder) error {
	if err := writeDatum(w.schema, d, enc); err != nil {
		return err
	}
	return enc.Flush()
}

func writeDatum(s schema.Schema, d *Datum, enc encoding.Encoder) error {
	switch s.Type() {
	case schema.TypeNull:
		return enc.WriteNull()
	case schema.TypeBoolean:
		v, err := d.Bool()
		if err != nil {
			return err
		}
		return enc.WriteBool(v)
	case schema.TypeInt:
		v, err := d.Int()
		if err != nil {
			return err
		}
		return enc.WriteInt(v)
	case schema.TypeLong:
		v, err := d.Long()
		if err != nil {
			return err
		}
		return enc.WriteLong(v)
	case schema.TypeFloat:
		v, err := d.Float()
		if err != nil {
			return err
		}
		return enc.WriteFloat(v)
	case schema.TypeDouble:
		v, err := d.Double()
		if err != nil {
			return err
		}
		return enc.WriteDouble(v)
	case schema.TypeBytes:
		v, err := d.Bytes()
		if err != nil {
			return err
		}
		return enc.WriteBytes(v)
	case schema.TypeString:
		v, err := d.Str()
		if err != nil {
			return err
		}
		return enc.WriteString(v)
	case schema.TypeRecord:
		return writeRecord(s.(*schema.RecordSchema), d, enc)
	case schema.TypeEnum:
		e, err := d.Enum()
		if err != nil {
			return err
		}
		symbol, err := e.Symbol()
		if err != nil {
			return err
		}
		return enc.WriteEnum(e.Ordinal(), symbol)
	case schema.TypeArray:
		return writeArray(s.(*schema.ArraySchema), d, enc)
	case schema.TypeMap:
		return writeMap(s.(*schema.MapSchema), d, enc)
	case schema.TypeUnion:
		return writeUnion(s.(*schema.UnionSchema), d, enc)
	case schema.TypeFixed:
		f, err := d.Fixed()
		if err != nil {
			return err
		}
		return enc.WriteFixed(f.Bytes())
	}
	return avro.NewRuntimeError("cannot write schema type %s", s.Type())
}

func writeRecord(rs *schema.RecordSchema, d *Datum, enc encoding.Encoder) error {
	rec, err := d.Record()
	if err != nil {
		return err
	}
	if err := enc.WriteRecordStart(); err != nil {
		return err
	}
	for i, f := range rs.Fields() {
		if err := enc.WriteRecordField(f.Name()); err != nil {
			return err
		}
		fd, err := rec.FieldAt(i)
		if err != nil {
			return err
		}
		if err := writeDatum(f.Schema(), fd, enc); err != nil {
			return err
		}
	}
	return enc.WriteRecordEnd()
}

func writeArray(as *schema.ArraySchema, d *Datum, enc encoding.Encoder) error {
	arr, err := d.Array()
	if err != nil {
		return err
	}
	if err := enc.WriteArrayStart(); err != nil {
		return err
	}
	if n := arr.Len(); n > 0 {
		if err := enc.SetItemCount(int64(n)); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := enc.StartItem(); err != nil {
				return err
			}
			elem, err := arr.At(i)
			if err != nil {
				return err
			}
			if err := writeDatum(as.Items(), elem, enc); err != nil {
				return err
			}
		}
	}
	return enc.WriteArrayEnd()
}

func writeMap(ms *schema.MapSchema, d *Datum, enc encoding.Encoder) error {
	m, err := d.Map()
	if err != nil {
		return err
	}
	if err := enc.WriteMapStart(); err != nil {
		return err
	}
	if n := m.Len(); n > 0 {
		if err := enc.SetItemCount(int64(n)); err != nil {
			return err
		}
		for _, key := range m.Keys() {
			if err := enc.StartItem(); err != nil {
				return err
			}
			if err := enc.WriteMapKey(key); err != nil {
				return err
			}
			md, _ := m.Get(key)
			if err := writeDatum(ms.Values(), md, enc); err != nil {
				return err
			}
		}
	}
	return enc.WriteMapEnd()
}

func writeUnion(us *schema.UnionSchema, d *Datum, enc encoding.Encoder) error {
	idx, err := d.UnionIndex()
	if err != nil {
		return err
	}
	if idx < 0 {
		return avro.NewRuntimeError("cannot write union datum with no branch selected")
	}
	branch, err := us.Branch(idx)
	if err != nil {
		return err
	}
	inner, err := d.Branch()
	if err != nil {
		return err
	}
	if err := enc.WriteUnionStart(idx, schema.BranchName(branch)); err != nil {
		return err
	}
	if err := writeDatum(branch, inner, enc); err != nil {
		return err
	}
	return enc.WriteUnionEnd()
}
