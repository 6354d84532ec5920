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

// FixedSchema represents an Avro fixed: a named byte array of a constant
// size.
type FixedSchema struct {
	properties
	name    Name
	doc     string
	size    int
	aliases []Name
}

// FixedOption customizes a fixed schema at construction.
type FixedOption func(*FixedSchema)

// WithFixedDoc attaches a docstring.
func WithFixedDoc(doc string) FixedOption {
	return func(f *FixedSchema) {
		f.doc = doc
	}
}

// NewFixedSchema builds a fixed schema of the given byte size.
func NewFixedSchema(name Name, size int, opts ...FixedOption) (*FixedSchema, error) {
	if size < 0 {
		return nil, avro.NewSchemaParseError("fixed %q has negative size %d", name.Fullname(), size)
	}
	f := &FixedSchema{properties: newProperties(), name: name, size: size}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Type implements Schema.
func (s *FixedSchema) Type() Type {
	return TypeFixed
}

// Name implements NamedSchema.
func (s *FixedSchema) Name() Name {
	return s.name
}

// Fullname implements NamedSchema.
func (s *FixedSchema) Fullname() string {
	return s.name.Fullname()
}

// Doc implements NamedSchema.
func (s *FixedSchema) Doc() string {
	return s.doc
}

// Aliases implements NamedSchema.
func (s *FixedSchema) Aliases() []Name {
	return s.aliases
}

// AddAlias attaches a qualified alias name.
func (s *FixedSchema) AddAlias(alias Name) {
	s.aliases = append(s.aliases, alias)
}

// Size returns the byte size.
func (s *FixedSchema) Size() int {
	return s.size
}

// Equal implements Schema.
func (s *FixedSchema) Equal(other Schema) bool {
	return s.equal(other, make(map[string]struct{}))
}

func (s *FixedSchema) equal(other Schema, _ map[string]struct{}) bool {
	o, ok := other.(*FixedSchema)
	return ok && s.Fullname() == o.Fullname() && s.size == o.size
}

func (s *FixedSchema) String() string {
	return schemaString(s)
}
