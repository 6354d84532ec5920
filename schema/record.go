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
	avro "github.com/confluentinc/avro-go"
)

// RecordSchema represents an Avro record (or error) type. A record is
// created empty so it can be registered under its name before its fields
// are parsed, which is what lets recursive types resolve; the fields are
// then attached exactly once with SetFields.
type RecordSchema struct {
	properties
	name    Name
	doc     string
	isError bool
	fields  []*Field
	byName  map[string]int
	aliases []Name
}

// RecordOption customizes a record schema at construction.
type RecordOption func(*RecordSchema)

// WithRecordDoc attaches a docstring.
func WithRecordDoc(doc string) RecordOption {
	return func(r *RecordSchema) {
		r.doc = doc
	}
}

// AsError marks the record as an Avro error type.
func AsError() RecordOption {
	return func(r *RecordSchema) {
		r.isError = true
	}
}

// NewRecordSchema builds a record schema with no fields attached yet.
func NewRecordSchema(name Name, opts ...RecordOption) *RecordSchema {
	r := &RecordSchema{properties: newProperties(), name: name}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Type implements Schema.
func (s *RecordSchema) Type() Type {
	return TypeRecord
}

// Name implements NamedSchema.
func (s *RecordSchema) Name() Name {
	return s.name
}

// Fullname implements NamedSchema.
func (s *RecordSchema) Fullname() string {
	return s.name.Fullname()
}

// Doc implements NamedSchema.
func (s *RecordSchema) Doc() string {
	return s.doc
}

// IsError reports whether the record was declared with type "error".
func (s *RecordSchema) IsError() bool {
	return s.isError
}

// Aliases implements NamedSchema.
func (s *RecordSchema) Aliases() []Name {
	return s.aliases
}

// AddAlias attaches a qualified alias name.
func (s *RecordSchema) AddAlias(alias Name) {
	s.aliases = append(s.aliases, alias)
}

// SetFields attaches the record's fields, assigning positions 0..n-1 in
// order. Fields can be set at most once; duplicate field names are
// rejected.
func (s *RecordSchema) SetFields(fields []*Field) error {
	if s.byName != nil {
		return avro.NewRuntimeError("fields of record %q are already set", s.Fullname())
	}
	byName := make(map[string]int, len(fields))
	for i, f := range fields {
		if _, ok := byName[f.name]; ok {
			return avro.NewSchemaParseError("duplicate field %q in record %q", f.name, s.Fullname())
		}
		f.position = i
		byName[f.name] = i
	}
	s.fields = fields
	s.byName = byName
	return nil
}

// NumFields returns the field count.
func (s *RecordSchema) NumFields() int {
	return len(s.fields)
}

// Fields returns the fields in declaration order.
func (s *RecordSchema) Fields() []*Field {
	return s.fields
}

// FieldAt returns the i-th field.
func (s *RecordSchema) FieldAt(i int) (*Field, error) {
	if i < 0 || i >= len(s.fields) {
		return nil, avro.NewRuntimeError("field index %d out of range [0,%d) in record %q", i, len(s.fields), s.Fullname())
	}
	return s.fields[i], nil
}

// Field looks a field up by name.
func (s *RecordSchema) Field(name string) (*Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return s.fields[i], true
}

// FieldIndex returns the position of the named field, or -1.
func (s *RecordSchema) FieldIndex(name string) int {
	if i, ok := s.byName[name]; ok {
		return i
	}
	return -1
}

// Equal implements Schema.
func (s *RecordSchema) Equal(other Schema) bool {
	return s.equal(other, make(map[string]struct{}))
}

func (s *RecordSchema) equal(other Schema, seen map[string]struct{}) bool {
	o, ok := other.(*RecordSchema)
	if !ok || s.Fullname() != o.Fullname() || len(s.fields) != len(o.fields) {
		return false
	}
	// Recursive records terminate on the revisit.
	key := s.Fullname() + "|" + o.Fullname()
	if _, ok := seen[key]; ok {
		return true
	}
	seen[key] = struct{}{}
	for i := range s.fields {
		if !s.fields[i].equal(o.fields[i], seen) {
			return false
		}
	}
	return true
}

func (s *RecordSchema) String() string {
	return schemaString(s)
}
