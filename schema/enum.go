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

// EnumSchema represents an Avro enum: a named, ordered set of symbols.
type EnumSchema struct {
	properties
	name       Name
	doc        string
	symbols    []string
	ordinals   map[string]int
	defSymbol  string
	hasDefault bool
	aliases    []Name
}

// EnumOption customizes an enum schema at construction.
type EnumOption func(*EnumSchema)

// WithEnumDoc attaches a docstring.
func WithEnumDoc(doc string) EnumOption {
	return func(e *EnumSchema) {
		e.doc = doc
	}
}

// WithEnumDefault sets the default symbol.
func WithEnumDefault(symbol string) EnumOption {
	return func(e *EnumSchema) {
		e.defSymbol = symbol
		e.hasDefault = true
	}
}

// NewEnumSchema builds an enum schema. Symbols must be well-formed Avro
// names with no duplicates, and a default symbol must be one of them.
func NewEnumSchema(name Name, symbols []string, opts ...EnumOption) (*EnumSchema, error) {
	if len(symbols) == 0 {
		return nil, avro.NewSchemaParseError("enum %q has no symbols", name.Fullname())
	}
	ordinals := make(map[string]int, len(symbols))
	for i, sym := range symbols {
		if !IsValidName(sym) {
			return nil, avro.NewSchemaParseError("invalid enum symbol %q in %q", sym, name.Fullname())
		}
		if _, ok := ordinals[sym]; ok {
			return nil, avro.NewSchemaParseError("duplicate enum symbol %q in %q", sym, name.Fullname())
		}
		ordinals[sym] = i
	}
	e := &EnumSchema{
		properties: newProperties(),
		name:       name,
		symbols:    symbols,
		ordinals:   ordinals,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.hasDefault {
		if _, ok := ordinals[e.defSymbol]; !ok {
			return nil, avro.NewSchemaParseError("enum %q default %q is not a symbol", name.Fullname(), e.defSymbol)
		}
	}
	return e, nil
}

// Type implements Schema.
func (s *EnumSchema) Type() Type {
	return TypeEnum
}

// Name implements NamedSchema.
func (s *EnumSchema) Name() Name {
	return s.name
}

// Fullname implements NamedSchema.
func (s *EnumSchema) Fullname() string {
	return s.name.Fullname()
}

// Doc implements NamedSchema.
func (s *EnumSchema) Doc() string {
	return s.doc
}

// Aliases implements NamedSchema.
func (s *EnumSchema) Aliases() []Name {
	return s.aliases
}

// AddAlias attaches a qualified alias name.
func (s *EnumSchema) AddAlias(alias Name) {
	s.aliases = append(s.aliases, alias)
}

// Symbols returns the symbols in declaration order.
func (s *EnumSchema) Symbols() []string {
	return s.symbols
}

// NumSymbols returns the symbol count.
func (s *EnumSchema) NumSymbols() int {
	return len(s.symbols)
}

// Symbol maps an ordinal to its symbol.
func (s *EnumSchema) Symbol(ordinal int) (string, error) {
	if ordinal < 0 || ordinal >= len(s.symbols) {
		return "", avro.NewRuntimeError("enum %q ordinal %d out of range [0,%d)", s.Fullname(), ordinal, len(s.symbols))
	}
	return s.symbols[ordinal], nil
}

// Ordinal maps a symbol to its ordinal.
func (s *EnumSchema) Ordinal(symbol string) (int, bool) {
	i, ok := s.ordinals[symbol]
	return i, ok
}

// DefaultSymbol returns the default symbol and whether one is set.
func (s *EnumSchema) DefaultSymbol() (string, bool) {
	return s.defSymbol, s.hasDefault
}

// Equal implements Schema.
func (s *EnumSchema) Equal(other Schema) bool {
	return s.equal(other, make(map[string]struct{}))
}

func (s *EnumSchema) equal(other Schema, _ map[string]struct{}) bool {
	o, ok := other.(*EnumSchema)
	if !ok || s.Fullname() != o.Fullname() || len(s.symbols) != len(o.symbols) {
		return false
	}
	for i := range s.symbols {
		if s.symbols[i] != o.symbols[i] {
			return false
		}
	}
	return true
}

func (s *EnumSchema) String() string {
	return schemaString(s)
}
