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
	orderedmap "github.com/wk8/go-ordered-map/v2"

	avro "github.com/confluentinc/avro-go"
	"github.com/confluentinc/avro-go/schema"
)

// Record holds a record datum's fields in schema-declared order.
type Record struct {
	schema *schema.RecordSchema
	fields []*Datum
}

func newRecord(rs *schema.RecordSchema) *Record {
	fields := make([]*Datum, rs.NumFields())
	for i, f := range rs.Fields() {
		fields[i] = NewDatum(f.Schema())
	}
	return &Record{schema: rs, fields: fields}
}

// Schema returns the record's schema.
func (r *Record) Schema() *schema.RecordSchema {
	return r.schema
}

// NumFields returns the field count.
func (r *Record) NumFields() int {
	return len(r.fields)
}

// Field returns the datum of the named field.
func (r *Record) Field(name string) (*Datum, error) {
	i := r.schema.FieldIndex(name)
	if i < 0 {
		return nil, avro.NewRuntimeError("record %q has no field %q", r.schema.Fullname(), name)
	}
	return r.fields[i], nil
}

// FieldAt returns the datum at field position i.
func (r *Record) FieldAt(i int) (*Datum, error) {
	if i < 0 || i >= len(r.fields) {
		return nil, avro.NewRuntimeError("field index %d out of range [0,%d) in record %q", i, len(r.fields), r.schema.Fullname())
	}
	return r.fields[i], nil
}

func (r *Record) equal(other *Record) bool {
	if len(r.fields) != len(other.fields) {
		return false
	}
	for i := range r.fields {
		if !r.fields[i].Equal(other.fields[i]) {
			return false
		}
	}
	return true
}

// Array holds a growable ordered sequence of datums sharing one element
// schema.
type Array struct {
	items  schema.Schema
	values []*Datum
}

// ItemSchema returns the element schema.
func (a *Array) ItemSchema() schema.Schema {
	return a.items
}

// Len returns the element count.
func (a *Array) Len() int {
	return len(a.values)
}

// At returns the i-th element.
func (a *Array) At(i int) (*Datum, error) {
	if i < 0 || i >= len(a.values) {
		return nil, avro.NewRuntimeError("array index %d out of range [0,%d)", i, len(a.values))
	}
	return a.values[i], nil
}

// Append adds a datum to the end of the array.
func (a *Array) Append(d *Datum) {
	a.values = append(a.values, d)
}

// AppendValue boxes a primitive value into a fresh element datum and
// appends it.
func (a *Array) AppendValue(v interface{}) (*Datum, error) {
	d := NewDatum(a.items)
	if err := setAny(d, v); err != nil {
		return nil, err
	}
	a.values = append(a.values, d)
	return d, nil
}

// Clear drops every element.
func (a *Array) Clear() {
	a.values = a.values[:0]
}

func (a *Array) equal(other *Array) bool {
	if len(a.values) != len(other.values) {
		return false
	}
	for i := range a.values {
		if !a.values[i].Equal(other.values[i]) {
			return false
		}
	}
	return true
}

// Map holds string-keyed datums sharing one value schema. Iteration
// follows insertion order, so encoding is deterministic for a caller
// that inserts deterministically.
type Map struct {
	values  schema.Schema
	entries *orderedmap.OrderedMap[string, *Datum]
}

func newMap(values schema.Schema) *Map {
	return &Map{values: values, entries: orderedmap.New[string, *Datum]()}
}

// ValueSchema returns the value schema.
func (m *Map) ValueSchema() schema.Schema {
	return m.values
}

// Len returns the entry count.
func (m *Map) Len() int {
	return m.entries.Len()
}

// Get returns the datum under key.
func (m *Map) Get(key string) (*Datum, bool) {
	return m.entries.Get(key)
}

// Set stores a datum under key.
func (m *Map) Set(key string, d *Datum) {
	m.entries.Set(key, d)
}

// SetValue boxes a primitive value into a fresh value datum and stores
// it under key.
func (m *Map) SetValue(key string, v interface{}) (*Datum, error) {
	d := NewDatum(m.values)
	if err := setAny(d, v); err != nil {
		return nil, err
	}
	m.entries.Set(key, d)
	return d, nil
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, m.entries.Len())
	for p := m.entries.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Clear drops every entry.
func (m *Map) Clear() {
	m.entries = orderedmap.New[string, *Datum]()
}

func (m *Map) equal(other *Map) bool {
	if m.entries.Len() != other.entries.Len() {
		return false
	}
	for p := m.entries.Oldest(); p != nil; p = p.Next() {
		od, ok := other.entries.Get(p.Key)
		if !ok || !p.Value.Equal(od) {
			return false
		}
	}
	return true
}

// Enum holds an ordinal into its schema's symbol list.
type Enum struct {
	schema  *schema.EnumSchema
	ordinal int
}

// Schema returns the enum's schema.
func (e *Enum) Schema() *schema.EnumSchema {
	return e.schema
}

// Ordinal returns the current ordinal.
func (e *Enum) Ordinal() int {
	return e.ordinal
}

// SetOrdinal selects a symbol by position.
func (e *Enum) SetOrdinal(i int) error {
	if i < 0 || i >= e.schema.NumSymbols() {
		return avro.NewRuntimeError("enum %q ordinal %d out of range [0,%d)", e.schema.Fullname(), i, e.schema.NumSymbols())
	}
	e.ordinal = i
	return nil
}

// Symbol returns the current symbol.
func (e *Enum) Symbol() (string, error) {
	return e.schema.Symbol(e.ordinal)
}

// SetSymbol selects a symbol by name.
func (e *Enum) SetSymbol(symbol string) error {
	i, ok := e.schema.Ordinal(symbol)
	if !ok {
		return avro.NewRuntimeError("enum %q has no symbol %q", e.schema.Fullname(), symbol)
	}
	e.ordinal = i
	return nil
}

// Fixed holds a byte array of exactly its schema's size.
type Fixed struct {
	schema *schema.FixedSchema
	value  []byte
}

// Schema returns the fixed's schema.
func (f *Fixed) Schema() *schema.FixedSchema {
	return f.schema
}

// Bytes returns the current value.
func (f *Fixed) Bytes() []byte {
	return f.value
}

// SetBytes replaces the value; the length must match the schema's size.
func (f *Fixed) SetBytes(b []byte) error {
	if len(b) != f.schema.Size() {
		return avro.NewTypeError("fixed %q wants %d bytes, got %d", f.schema.Fullname(), f.schema.Size(), len(b))
	}
	f.value = b
	return nil
}
