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

// Package generic provides a schema-shaped dynamic value, Datum, and the
// Reader and Writer that move datums through a wire codec.
package generic

import (
	"math"

	avro "github.com/confluentinc/avro-go"
	"github.com/confluentinc/avro-go/schema"
)

// Datum is a value whose runtime shape matches the schema it was built
// from. Primitives are held directly; records, enums, arrays, maps,
// unions and fixeds are held through their container types. A Datum is
// not safe for concurrent mutation.
type Datum struct {
	schema schema.Schema
	value  interface{}
}

// union is the boxed wrapper holding a union datum's selected branch. A
// fresh union has no branch selected; writing one is an error until a
// branch is chosen.
type union struct {
	schema *schema.UnionSchema
	branch int
	inner  *Datum
}

// NewDatum builds a datum from a schema, initializing every sub-datum to
// the identity value of its kind: zero numbers, empty strings and
// containers, ordinal zero enums, zero-filled fixeds and unselected
// unions.
func NewDatum(s schema.Schema) *Datum {
	d := &Datum{schema: s}
	switch s.Type() {
	case schema.TypeNull:
		d.value = nil
	case schema.TypeBoolean:
		d.value = false
	case schema.TypeInt:
		d.value = int32(0)
	case schema.TypeLong:
		d.value = int64(0)
	case schema.TypeFloat:
		d.value = float32(0)
	case schema.TypeDouble:
		d.value = float64(0)
	case schema.TypeBytes:
		d.value = []byte{}
	case schema.TypeString:
		d.value = ""
	case schema.TypeRecord:
		d.value = newRecord(s.(*schema.RecordSchema))
	case schema.TypeEnum:
		d.value = &Enum{schema: s.(*schema.EnumSchema)}
	case schema.TypeArray:
		d.value = &Array{items: s.(*schema.ArraySchema).Items()}
	case schema.TypeMap:
		d.value = newMap(s.(*schema.MapSchema).Values())
	case schema.TypeUnion:
		d.value = &union{schema: s.(*schema.UnionSchema), branch: -1}
	case schema.TypeFixed:
		fs := s.(*schema.FixedSchema)
		d.value = &Fixed{schema: fs, value: make([]byte, fs.Size())}
	}
	return d
}

// Schema returns the schema the datum was built from.
func (d *Datum) Schema() schema.Schema {
	return d.schema
}

// resolve dereferences a union to its selected branch datum. An
// unselected union resolves to nil.
func (d *Datum) resolve() *Datum {
	if u, ok := d.value.(*union); ok {
		if u.inner == nil {
			return nil
		}
		return u.inner.resolve()
	}
	return d
}

// Type returns the datum's effective type: a union reports its selected
// branch's type, and null before any branch is selected.
func (d *Datum) Type() schema.Type {
	r := d.resolve()
	if r == nil {
		return schema.TypeNull
	}
	return r.schema.Type()
}

// IsUnion reports whether the datum's declared schema is a union.
func (d *Datum) IsUnion() bool {
	_, ok := d.value.(*union)
	return ok
}

// UnionIndex returns the selected branch of a union datum; -1 means no
// branch has been selected yet.
func (d *Datum) UnionIndex() (int, error) {
	u, ok := d.value.(*union)
	if !ok {
		return 0, avro.NewRuntimeError("datum of type %s is not a union", d.schema.Type())
	}
	return u.branch, nil
}

// SelectBranch points a union datum at branch i, reallocating the nested
// datum from that branch's schema. Re-selecting the current branch keeps
// the nested datum untouched.
func (d *Datum) SelectBranch(i int) error {
	u, ok := d.value.(*union)
	if !ok {
		return avro.NewRuntimeError("datum of type %s is not a union", d.schema.Type())
	}
	if i == u.branch {
		return nil
	}
	branch, err := u.schema.Branch(i)
	if err != nil {
		return err
	}
	u.branch = i
	u.inner = NewDatum(branch)
	return nil
}

// Branch returns the nested datum of a union; an error before a branch
// is selected.
func (d *Datum) Branch() (*Datum, error) {
	u, ok := d.value.(*union)
	if !ok {
		return nil, avro.NewRuntimeError("datum of type %s is not a union", d.schema.Type())
	}
	if u.inner == nil {
		return nil, avro.NewRuntimeError("union datum has no branch selected")
	}
	return u.inner, nil
}

func (d *Datum) typeError(want schema.Type) error {
	return avro.NewTypeError("datum holds %s, not %s", d.Type(), want)
}

// resolveAs dereferences unions and checks the effective kind, so the
// typed accessors share one error path.
func resolveAs(d *Datum, want schema.Type) (*Datum, error) {
	r := d.resolve()
	if r == nil {
		return nil, avro.NewTypeError("union datum has no branch selected, want %s", want)
	}
	if r.schema.Type() != want {
		return nil, r.typeError(want)
	}
	return r, nil
}

// Bool returns a boolean datum's value.
func (d *Datum) Bool() (bool, error) {
	r, err := resolveAs(d, schema.TypeBoolean)
	if err != nil {
		return false, err
	}
	return r.value.(bool), nil
}

// SetBool stores a boolean value.
func (d *Datum) SetBool(v bool) error {
	r, err := resolveAs(d, schema.TypeBoolean)
	if err != nil {
		return err
	}
	r.value = v
	return nil
}

// Int returns an int datum's value.
func (d *Datum) Int() (int32, error) {
	r, err := resolveAs(d, schema.TypeInt)
	if err != nil {
		return 0, err
	}
	return r.value.(int32), nil
}

// SetInt stores an int value.
func (d *Datum) SetInt(v int32) error {
	r, err := resolveAs(d, schema.TypeInt)
	if err != nil {
		return err
	}
	r.value = v
	return nil
}

// Long returns a long datum's value.
func (d *Datum) Long() (int64, error) {
	r, err := resolveAs(d, schema.TypeLong)
	if err != nil {
		return 0, err
	}
	return r.value.(int64), nil
}

// SetLong stores a long value.
func (d *Datum) SetLong(v int64) error {
	r, err := resolveAs(d, schema.TypeLong)
	if err != nil {
		return err
	}
	r.value = v
	return nil
}

// Float returns a float datum's value.
func (d *Datum) Float() (float32, error) {
	r, err := resolveAs(d, schema.TypeFloat)
	if err != nil {
		return 0, err
	}
	return r.value.(float32), nil
}

// SetFloat stores a float value.
func (d *Datum) SetFloat(v float32) error {
	r, err := resolveAs(d, schema.TypeFloat)
	if err != nil {
		return err
	}
	r.value = v
	return nil
}

// Double returns a double datum's value.
func (d *Datum) Double() (float64, error) {
	r, err := resolveAs(d, schema.TypeDouble)
	if err != nil {
		return 0, err
	}
	return r.value.(float64), nil
}

// SetDouble stores a double value.
func (d *Datum) SetDouble(v float64) error {
	r, err := resolveAs(d, schema.TypeDouble)
	if err != nil {
		return err
	}
	r.value = v
	return nil
}

// Bytes returns a bytes datum's value.
func (d *Datum) Bytes() ([]byte, error) {
	r, err := resolveAs(d, schema.TypeBytes)
	if err != nil {
		return nil, err
	}
	return r.value.([]byte), nil
}

// SetBytes stores a bytes value.
func (d *Datum) SetBytes(v []byte) error {
	r, err := resolveAs(d, schema.TypeBytes)
	if err != nil {
		return err
	}
	r.value = v
	return nil
}

// Str returns a string datum's value.
func (d *Datum) Str() (string, error) {
	r, err := resolveAs(d, schema.TypeString)
	if err != nil {
		return "", err
	}
	return r.value.(string), nil
}

// SetString stores a string value.
func (d *Datum) SetString(v string) error {
	r, err := resolveAs(d, schema.TypeString)
	if err != nil {
		return err
	}
	r.value = v
	return nil
}

// Record returns the record container.
func (d *Datum) Record() (*Record, error) {
	r, err := resolveAs(d, schema.TypeRecord)
	if err != nil {
		return nil, err
	}
	return r.value.(*Record), nil
}

// Array returns the array container.
func (d *Datum) Array() (*Array, error) {
	r, err := resolveAs(d, schema.TypeArray)
	if err != nil {
		return nil, err
	}
	return r.value.(*Array), nil
}

// Map returns the map container.
func (d *Datum) Map() (*Map, error) {
	r, err := resolveAs(d, schema.TypeMap)
	if err != nil {
		return nil, err
	}
	return r.value.(*Map), nil
}

// Enum returns the enum container.
func (d *Datum) Enum() (*Enum, error) {
	r, err := resolveAs(d, schema.TypeEnum)
	if err != nil {
		return nil, err
	}
	return r.value.(*Enum), nil
}

// Fixed returns the fixed container.
func (d *Datum) Fixed() (*Fixed, error) {
	r, err := resolveAs(d, schema.TypeFixed)
	if err != nil {
		return nil, err
	}
	return r.value.(*Fixed), nil
}

// Field is the string-indexing shortcut for records and maps: it
// returns the contained datum under the name. Field access on any other
// kind is a RuntimeError.
func (d *Datum) Field(name string) (*Datum, error) {
	r := d.resolve()
	if r != nil {
		switch v := r.value.(type) {
		case *Record:
			return v.Field(name)
		case *Map:
			if md, ok := v.Get(name); ok {
				return md, nil
			}
			return nil, avro.NewRuntimeError("map has no key %q", name)
		}
	}
	return nil, avro.NewRuntimeError("field access on a datum of type %s", d.Type())
}

// At is the indexing shortcut for arrays.
func (d *Datum) At(i int) (*Datum, error) {
	arr, err := d.Array()
	if err != nil {
		return nil, avro.NewRuntimeError("index access on a datum of type %s", d.Type())
	}
	return arr.At(i)
}

// Len reports the element count of an array or map datum.
func (d *Datum) Len() (int, error) {
	r := d.resolve()
	if r == nil {
		return 0, avro.NewTypeError("union datum has no branch selected")
	}
	switch v := r.value.(type) {
	case *Array:
		return v.Len(), nil
	case *Map:
		return v.Len(), nil
	}
	return 0, avro.NewTypeError("datum of type %s has no length", r.schema.Type())
}

// Equal compares two datums under schema value-equality: unions compare
// through their selected branch, and NaN equals NaN.
func (d *Datum) Equal(other *Datum) bool {
	a, b := d.resolve(), other.resolve()
	if a == nil || b == nil {
		return a == b
	}
	if a.schema.Type() != b.schema.Type() {
		return false
	}
	switch av := a.value.(type) {
	case nil:
		return true
	case bool, int32, int64, string:
		return av == b.value
	case float32:
		bv, ok := b.value.(float32)
		if !ok {
			return false
		}
		return av == bv || (math.IsNaN(float64(av)) && math.IsNaN(float64(bv)))
	case float64:
		bv, ok := b.value.(float64)
		if !ok {
			return false
		}
		return av == bv || (math.IsNaN(av) && math.IsNaN(bv))
	case []byte:
		bv, ok := b.value.([]byte)
		return ok && bytesEqual(av, bv)
	case *Record:
		bv, ok := b.value.(*Record)
		return ok && av.equal(bv)
	case *Array:
		bv, ok := b.value.(*Array)
		return ok && av.equal(bv)
	case *Map:
		bv, ok := b.value.(*Map)
		return ok && av.equal(bv)
	case *Enum:
		bv, ok := b.value.(*Enum)
		return ok && av.ordinal == bv.ordinal
	case *Fixed:
		bv, ok := b.value.(*Fixed)
		return ok && bytesEqual(av.value, bv.value)
	}
	return false
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
