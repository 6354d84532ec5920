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
	"github.com/confluentinc/avro-go/cache"
)

// SchemaTable maps fully-qualified names to named schemas and carries
// the default namespace of the current scope. The parser registers named
// schemas here so that forward and backward references resolve; the JSON
// emitter uses a table the same way to emit each named schema once. A
// table belongs to one parser (across all of its parses) or one emission
// and is not safe for concurrent use.
//
// Primitive-type names are never stored: looking one up synthesizes a
// fresh primitive schema.
type SchemaTable struct {
	entries cache.Cache[string, NamedSchema]
	defNS   string
	nsStack []string
}

// NewSchemaTable returns an empty table with no default namespace.
func NewSchemaTable() *SchemaTable {
	return &SchemaTable{entries: cache.NewMapCache[string, NamedSchema]()}
}

// Register adds a named schema under its fullname. Redefining a
// primitive name or an already-registered name fails.
func (t *SchemaTable) Register(s NamedSchema) error {
	full := s.Fullname()
	if _, ok := PrimitiveTypeByName(full); ok {
		return avro.NewSchemaParseError("cannot redefine primitive type %q", full)
	}
	if _, ok := t.entries.Get(full); ok {
		return avro.NewSchemaParseError("redefinition of schema %q", full)
	}
	t.entries.Put(full, s)
	return nil
}

// RegisterAlias makes a schema reachable under an additional
// fully-qualified name.
func (t *SchemaTable) RegisterAlias(alias Name, s NamedSchema) error {
	full := alias.Fullname()
	if existing, ok := t.entries.Get(full); ok && existing != s {
		return avro.NewSchemaParseError("alias %q collides with schema %q", full, existing.Fullname())
	}
	t.entries.Put(full, s)
	return nil
}

// Lookup resolves a name to a schema. Primitive names synthesize a
// primitive schema. An unqualified name resolves against the current
// default namespace first, then bare.
func (t *SchemaTable) Lookup(name string) (Schema, bool) {
	if prim, ok := PrimitiveTypeByName(name); ok {
		return MustPrimitive(prim), true
	}
	if !strings.Contains(name, ".") && t.defNS != "" {
		if s, ok := t.entries.Get(t.defNS + "." + name); ok {
			return s, true
		}
	}
	s, ok := t.entries.Get(name)
	if !ok {
		return nil, false
	}
	return s, true
}

// Contains reports whether the exact fully-qualified name is registered.
func (t *SchemaTable) Contains(fullname string) bool {
	_, ok := t.entries.Get(fullname)
	return ok
}

// Len returns the number of registered names, aliases included.
func (t *SchemaTable) Len() int {
	return t.entries.Len()
}

// DefaultNamespace returns the namespace unqualified names currently
// resolve against.
func (t *SchemaTable) DefaultNamespace() string {
	return t.defNS
}

// PushDefaultNamespace enters the scope of a named schema: the previous
// default is saved and ns becomes current.
func (t *SchemaTable) PushDefaultNamespace(ns string) {
	t.nsStack = append(t.nsStack, t.defNS)
	t.defNS = ns
}

// PopDefaultNamespace restores the default namespace saved by the
// matching push.
func (t *SchemaTable) PopDefaultNamespace() {
	if n := len(t.nsStack); n > 0 {
		t.defNS = t.nsStack[n-1]
		t.nsStack = t.nsStack[:n-1]
	}
}
