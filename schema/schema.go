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
	jsoniter "github.com/json-iterator/go"

	avro "github.com/confluentinc/avro-go"
)

// Schema is one node of an Avro schema tree. Concrete kinds are
// PrimitiveSchema, ArraySchema, MapSchema, UnionSchema, RecordSchema,
// EnumSchema and FixedSchema. A schema is immutable once the parser has
// returned it and may be shared across goroutines for reading.
type Schema interface {
	// Type returns the schema kind.
	Type() Type
	// Attributes returns the non-reserved JSON attributes, in the order
	// the schema text declared them.
	Attributes() *Attributes
	// LogicalType returns the textual "logicalType" attribute, or ""
	// when there is none. The core records it but does not act on it.
	LogicalType() string
	// Equal compares two schema trees structurally; named schemas
	// compare by fullname plus definition.
	Equal(other Schema) bool
	// String renders the canonical JSON form of the schema.
	String() string

	writeJSON(stream *jsoniter.Stream, table *SchemaTable) error
	equal(other Schema, seen map[string]struct{}) bool
}

// NamedSchema is the extra surface of record, enum and fixed schemas.
type NamedSchema interface {
	Schema
	// Name returns the schema's qualified name.
	Name() Name
	// Fullname returns the fully-qualified name.
	Fullname() string
	// Doc returns the docstring, or "".
	Doc() string
	// Aliases returns the qualified alias names.
	Aliases() []Name
}

// properties is the attribute carrier embedded in every schema kind.
type properties struct {
	attrs *Attributes
}

func newProperties() properties {
	return properties{attrs: NewAttributes()}
}

func (p *properties) Attributes() *Attributes {
	return p.attrs
}

func (p *properties) LogicalType() string {
	if v, ok := p.attrs.Get("logicalType"); ok && v.Kind() == KindString {
		return v.Str()
	}
	return ""
}

// PrimitiveSchema represents one of the eight primitive kinds. Two
// primitive schemas of the same kind are interchangeable.
type PrimitiveSchema struct {
	properties
	typ Type
}

// NewPrimitiveSchema builds a primitive schema; t must be a primitive
// kind.
func NewPrimitiveSchema(t Type) (*PrimitiveSchema, error) {
	if !t.IsPrimitive() {
		return nil, avro.NewRuntimeError("%s is not a primitive type", t)
	}
	return &PrimitiveSchema{properties: newProperties(), typ: t}, nil
}

// MustPrimitive is NewPrimitiveSchema for known-good kinds.
func MustPrimitive(t Type) *PrimitiveSchema {
	s, err := NewPrimitiveSchema(t)
	if err != nil {
		panic(err)
	}
	return s
}

// Type returns the primitive kind.
func (s *PrimitiveSchema) Type() Type {
	return s.typ
}

// Equal implements Schema.
func (s *PrimitiveSchema) Equal(other Schema) bool {
	return s.equal(other, make(map[string]struct{}))
}

func (s *PrimitiveSchema) equal(other Schema, _ map[string]struct{}) bool {
	return other != nil && other.Type() == s.typ
}

func (s *PrimitiveSchema) String() string {
	return schemaString(s)
}

// ArraySchema represents an Avro array with a single element schema.
type ArraySchema struct {
	properties
	items Schema
}

// NewArraySchema builds an array schema over the given element schema.
func NewArraySchema(items Schema) *ArraySchema {
	return &ArraySchema{properties: newProperties(), items: items}
}

// Type implements Schema.
func (s *ArraySchema) Type() Type {
	return TypeArray
}

// Items returns the element schema.
func (s *ArraySchema) Items() Schema {
	return s.items
}

// Equal implements Schema.
func (s *ArraySchema) Equal(other Schema) bool {
	return s.equal(other, make(map[string]struct{}))
}

func (s *ArraySchema) equal(other Schema, seen map[string]struct{}) bool {
	o, ok := other.(*ArraySchema)
	return ok && s.items.equal(o.items, seen)
}

func (s *ArraySchema) String() string {
	return schemaString(s)
}

// MapSchema represents an Avro map; keys are always strings.
type MapSchema struct {
	properties
	values Schema
}

// NewMapSchema builds a map schema over the given value schema.
func NewMapSchema(values Schema) *MapSchema {
	return &MapSchema{properties: newProperties(), values: values}
}

// Type implements Schema.
func (s *MapSchema) Type() Type {
	return TypeMap
}

// Values returns the value schema.
func (s *MapSchema) Values() Schema {
	return s.values
}

// Equal implements Schema.
func (s *MapSchema) Equal(other Schema) bool {
	return s.equal(other, make(map[string]struct{}))
}

func (s *MapSchema) equal(other Schema, seen map[string]struct{}) bool {
	o, ok := other.(*MapSchema)
	return ok && s.values.equal(o.values, seen)
}

func (s *MapSchema) String() string {
	return schemaString(s)
}

// UnionSchema represents an ordered list of alternative schemas. A union
// may not contain another union, every branch must have a defined name,
// and no two branches may share a fully-qualified name.
type UnionSchema struct {
	properties
	branches []Schema
	byName   map[string]int
}

// NewUnionSchema builds a union over the given branches, enforcing the
// union invariants.
func NewUnionSchema(branches []Schema) (*UnionSchema, error) {
	byName := make(map[string]int, len(branches))
	for i, b := range branches {
		if b.Type() == TypeUnion {
			return nil, avro.NewRuntimeError("union may not contain another union")
		}
		name := BranchName(b)
		if name == "" {
			return nil, avro.NewRuntimeError("union branch %d has no name", i)
		}
		if prev, ok := byName[name]; ok {
			return nil, avro.NewRuntimeError("duplicate union branch %q at %d and %d", name, prev, i)
		}
		byName[name] = i
	}
	return &UnionSchema{properties: newProperties(), branches: branches, byName: byName}, nil
}

// BranchName returns the name a schema goes by inside a union: the
// fullname for named schemas, the type name otherwise. Unions have no
// branch name.
func BranchName(s Schema) string {
	if named, ok := s.(NamedSchema); ok {
		return named.Fullname()
	}
	if s.Type() == TypeUnion {
		return ""
	}
	return s.Type().String()
}

// Type implements Schema.
func (s *UnionSchema) Type() Type {
	return TypeUnion
}

// Branches returns the ordered branch schemas.
func (s *UnionSchema) Branches() []Schema {
	return s.branches
}

// NumBranches returns the branch count.
func (s *UnionSchema) NumBranches() int {
	return len(s.branches)
}

// Branch returns the i-th branch schema.
func (s *UnionSchema) Branch(i int) (Schema, error) {
	if i < 0 || i >= len(s.branches) {
		return nil, avro.NewRuntimeError("union branch index %d out of range [0,%d)", i, len(s.branches))
	}
	return s.branches[i], nil
}

// IndexOf returns the position of the branch with the given name, or -1.
func (s *UnionSchema) IndexOf(name string) int {
	if i, ok := s.byName[name]; ok {
		return i
	}
	return -1
}

// Equal implements Schema.
func (s *UnionSchema) Equal(other Schema) bool {
	return s.equal(other, make(map[string]struct{}))
}

func (s *UnionSchema) equal(other Schema, seen map[string]struct{}) bool {
	o, ok := other.(*UnionSchema)
	if !ok || len(s.branches) != len(o.branches) {
		return false
	}
	for i := range s.branches {
		if !s.branches[i].equal(o.branches[i], seen) {
			return false
		}
	}
	return true
}

func (s *UnionSchema) String() string {
	return schemaString(s)
}

func schemaString(s Schema) string {
	text, err := ToJSON(s)
	if err != nil {
		return "<invalid schema>"
	}
	return text
}
