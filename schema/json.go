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
)

// ToJSON renders a schema as canonical JSON with a fresh table, so every
// named schema is defined at its first appearance and referenced by name
// afterwards.
func ToJSON(s Schema) (string, error) {
	return ToJSONWithTable(s, NewSchemaTable())
}

// ToJSONWithTable renders a schema as canonical JSON. Named schemas
// already present in the table are written as bare name references; the
// table's default namespace is set and restored around nested named
// types exactly the way the parser scopes them.
func ToJSONWithTable(s Schema, table *SchemaTable) (string, error) {
	stream := jsoniter.ConfigDefault.BorrowStream(nil)
	defer jsoniter.ConfigDefault.ReturnStream(stream)
	if err := s.writeJSON(stream, table); err != nil {
		return "", err
	}
	return string(stream.Buffer()), nil
}

func (s *PrimitiveSchema) writeJSON(stream *jsoniter.Stream, _ *SchemaTable) error {
	if s.attrs.Len() == 0 {
		stream.WriteString(s.typ.String())
		return nil
	}
	stream.WriteObjectStart()
	stream.WriteObjectField("type")
	stream.WriteString(s.typ.String())
	s.attrs.writeJSON(stream, false)
	stream.WriteObjectEnd()
	return nil
}

func (s *ArraySchema) writeJSON(stream *jsoniter.Stream, table *SchemaTable) error {
	stream.WriteObjectStart()
	stream.WriteObjectField("type")
	stream.WriteString("array")
	stream.WriteMore()
	stream.WriteObjectField("items")
	if err := s.items.writeJSON(stream, table); err != nil {
		return err
	}
	s.attrs.writeJSON(stream, false)
	stream.WriteObjectEnd()
	return nil
}

func (s *MapSchema) writeJSON(stream *jsoniter.Stream, table *SchemaTable) error {
	stream.WriteObjectStart()
	stream.WriteObjectField("type")
	stream.WriteString("map")
	stream.WriteMore()
	stream.WriteObjectField("values")
	if err := s.values.writeJSON(stream, table); err != nil {
		return err
	}
	s.attrs.writeJSON(stream, false)
	stream.WriteObjectEnd()
	return nil
}

func (s *UnionSchema) writeJSON(stream *jsoniter.Stream, table *SchemaTable) error {
	stream.WriteArrayStart()
	for i, b := range s.branches {
		if i > 0 {
			stream.WriteMore()
		}
		if err := b.writeJSON(stream, table); err != nil {
			return err
		}
	}
	stream.WriteArrayEnd()
	return nil
}

// beginNamed handles the shared head of a named schema definition:
// reference emission on revisits, registration, and the name/namespace
// keys. It reports whether a full definition follows (false means a bare
// reference was written) and leaves the table's default namespace set to
// the schema's own; endNamed restores it.
func beginNamed(stream *jsoniter.Stream, table *SchemaTable, s NamedSchema, kind string) (bool, error) {
	if table.Contains(s.Fullname()) {
		stream.WriteString(s.Fullname())
		return false, nil
	}
	if err := table.Register(s); err != nil {
		return false, err
	}
	stream.WriteObjectStart()
	stream.WriteObjectField("type")
	stream.WriteString(kind)
	stream.WriteMore()
	stream.WriteObjectField("name")
	stream.WriteString(s.Name().Simple())
	if ns := s.Name().Namespace(); ns != table.DefaultNamespace() {
		stream.WriteMore()
		stream.WriteObjectField("namespace")
		stream.WriteString(ns)
	}
	if doc := s.Doc(); doc != "" {
		stream.WriteMore()
		stream.WriteObjectField("doc")
		stream.WriteString(doc)
	}
	table.PushDefaultNamespace(s.Name().Namespace())
	return true, nil
}

func endNamed(stream *jsoniter.Stream, table *SchemaTable, s NamedSchema, attrs *Attributes) {
	if aliases := s.Aliases(); len(aliases) > 0 {
		stream.WriteMore()
		stream.WriteObjectField("aliases")
		stream.WriteArrayStart()
		for i, a := range aliases {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteString(a.Fullname())
		}
		stream.WriteArrayEnd()
	}
	attrs.writeJSON(stream, false)
	table.PopDefaultNamespace()
	stream.WriteObjectEnd()
}

func (s *RecordSchema) writeJSON(stream *jsoniter.Stream, table *SchemaTable) error {
	kind := "record"
	if s.isError {
		kind = "error"
	}
	full, err := beginNamed(stream, table, s, kind)
	if err != nil || !full {
		return err
	}
	stream.WriteMore()
	stream.WriteObjectField("fields")
	stream.WriteArrayStart()
	for i, f := range s.fields {
		if i > 0 {
			stream.WriteMore()
		}
		if err := f.writeJSON(stream, table); err != nil {
			return err
		}
	}
	stream.WriteArrayEnd()
	endNamed(stream, table, s, s.attrs)
	return nil
}

func (f *Field) writeJSON(stream *jsoniter.Stream, table *SchemaTable) error {
	stream.WriteObjectStart()
	stream.WriteObjectField("name")
	stream.WriteString(f.name)
	stream.WriteMore()
	stream.WriteObjectField("type")
	if err := f.schema.writeJSON(stream, table); err != nil {
		return err
	}
	if f.doc != "" {
		stream.WriteMore()
		stream.WriteObjectField("doc")
		stream.WriteString(f.doc)
	}
	if f.hasDefault {
		stream.WriteMore()
		stream.WriteObjectField("default")
		f.defVal.write(stream)
	}
	if f.order != Ascending {
		stream.WriteMore()
		stream.WriteObjectField("order")
		stream.WriteString(f.order.String())
	}
	if len(f.aliases) > 0 {
		stream.WriteMore()
		stream.WriteObjectField("aliases")
		stream.WriteArrayStart()
		for i, a := range f.aliases {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteString(a)
		}
		stream.WriteArrayEnd()
	}
	f.attrs.writeJSON(stream, false)
	stream.WriteObjectEnd()
	return nil
}

func (s *EnumSchema) writeJSON(stream *jsoniter.Stream, table *SchemaTable) error {
	full, err := beginNamed(stream, table, s, "enum")
	if err != nil || !full {
		return err
	}
	stream.WriteMore()
	stream.WriteObjectField("symbols")
	stream.WriteArrayStart()
	for i, sym := range s.symbols {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteString(sym)
	}
	stream.WriteArrayEnd()
	if s.hasDefault {
		stream.WriteMore()
		stream.WriteObjectField("default")
		stream.WriteString(s.defSymbol)
	}
	endNamed(stream, table, s, s.attrs)
	return nil
}

func (s *FixedSchema) writeJSON(stream *jsoniter.Stream, table *SchemaTable) error {
	full, err := beginNamed(stream, table, s, "fixed")
	if err != nil || !full {
		return err
	}
	stream.WriteMore()
	stream.WriteObjectField("size")
	stream.WriteInt(s.size)
	endNamed(stream, table, s, s.attrs)
	return nil
}
