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

package schema

import (
	"strings"

	avro "github.com/confluentinc/avro-go"
)

// Order is a record field's sort order.
type Order int

const (
	// Ascending is the default sort order
	Ascending Order = iota
	// Descending inverts comparisons on the field
	Descending
	// Ignore excludes the field from comparisons
	Ignore
)

// ParseOrder maps an "order" attribute string onto an Order,
// case-insensitively.
func ParseOrder(s string) (Order, error) {
	switch strings.ToUpper(s) {
	case "ASCENDING":
		return Ascending, nil
	case "DESCENDING":
		return Descending, nil
	case "IGNORE":
		return Ignore, nil
	}
	return Ascending, avro.NewSchemaParseError("invalid field order %q", s)
}

func (o Order) String() string {
	switch o {
	case Descending:
		return "descending"
	case Ignore:
		return "ignore"
	}
	return "ascending"
}

// Field is one member of a record schema. Its position is assigned when
// the fields are attached to the record and is unique within it. The
// default value, when present, is kept as JSON; interpretation is
// deferred and validation is syntactic.
type Field struct {
	name       string
	schema     Schema
	position   int
	doc        string
	hasDefault bool
	defVal     Value
	order      Order
	aliases    []string
	attrs      *Attributes
}

// FieldOption customizes a field at construction.
type FieldOption func(*Field)

// WithDoc attaches a docstring to the field.
func WithDoc(doc string) FieldOption {
	return func(f *Field) {
		f.doc = doc
	}
}

// WithDefault attaches a JSON default value to the field.
func WithDefault(v Value) FieldOption {
	return func(f *Field) {
		f.hasDefault = true
		f.defVal = v
	}
}

// WithOrder sets the field's sort order.
func WithOrder(o Order) FieldOption {
	return func(f *Field) {
		f.order = o
	}
}

// WithAliases sets the field's alias names.
func WithAliases(aliases ...string) FieldOption {
	return func(f *Field) {
		f.aliases = aliases
	}
}

// NewField builds a record field. The name must be a well-formed Avro
// name.
func NewField(name string, s Schema, opts ...FieldOption) (*Field, error) {
	if !IsValidName(name) {
		return nil, avro.NewSchemaParseError("invalid field name %q", name)
	}
	f := &Field{
		name:     name,
		schema:   s,
		position: -1,
		attrs:    NewAttributes(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Name returns the field name.
func (f *Field) Name() string {
	return f.name
}

// Schema returns the field's contained schema.
func (f *Field) Schema() Schema {
	return f.schema
}

// Position returns the field's 0-based position within its record, or -1
// before the field has been attached.
func (f *Field) Position() int {
	return f.position
}

// Doc returns the docstring, or "".
func (f *Field) Doc() string {
	return f.doc
}

// HasDefault reports whether the field carries a default value.
func (f *Field) HasDefault() bool {
	return f.hasDefault
}

// Default returns the JSON default value; meaningful only when
// HasDefault reports true.
func (f *Field) Default() Value {
	return f.defVal
}

// Order returns the field's sort order.
func (f *Field) Order() Order {
	return f.order
}

// Aliases returns the field's alias names.
func (f *Field) Aliases() []string {
	return f.aliases
}

// Attributes returns the field's non-reserved JSON attributes.
func (f *Field) Attributes() *Attributes {
	return f.attrs
}

func (f *Field) equal(other *Field, seen map[string]struct{}) bool {
	if f.name != other.name || f.order != other.order || f.hasDefault != other.hasDefault {
		return false
	}
	if f.hasDefault && !f.defVal.Equal(other.defVal) {
		return false
	}
	return f.schema.equal(other.schema, seen)
}
