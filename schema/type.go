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

// Type identifies an Avro schema kind. The eight primitive kinds map
// one-to-one onto their lowercase Avro names; the six complex kinds are
// record, enum, array, map, union and fixed.
type Type int

const (
	// TypeNull is the Avro null type
	TypeNull Type = iota
	// TypeBoolean is the Avro boolean type
	TypeBoolean
	// TypeInt is the Avro 32-bit signed int type
	TypeInt
	// TypeLong is the Avro 64-bit signed long type
	TypeLong
	// TypeFloat is the Avro single-precision float type
	TypeFloat
	// TypeDouble is the Avro double-precision double type
	TypeDouble
	// TypeBytes is the Avro variable-length bytes type
	TypeBytes
	// TypeString is the Avro UTF-8 string type
	TypeString
	// TypeRecord is the Avro record type
	TypeRecord
	// TypeEnum is the Avro enum type
	TypeEnum
	// TypeArray is the Avro array type
	TypeArray
	// TypeMap is the Avro map type
	TypeMap
	// TypeUnion is the Avro union type
	TypeUnion
	// TypeFixed is the Avro fixed type
	TypeFixed

	numTypes int = iota
)

var typeNames = [numTypes]string{
	"null", "boolean", "int", "long", "float", "double", "bytes", "string",
	"record", "enum", "array", "map", "union", "fixed",
}

var primitiveTypes = map[string]Type{
	"null":    TypeNull,
	"boolean": TypeBoolean,
	"int":     TypeInt,
	"long":    TypeLong,
	"float":   TypeFloat,
	"double":  TypeDouble,
	"bytes":   TypeBytes,
	"string":  TypeString,
}

// String returns the lowercase Avro name of the type.
func (t Type) String() string {
	if t < 0 || int(t) >= numTypes {
		return "unknown"
	}
	return typeNames[t]
}

// IsPrimitive reports whether t is one of the eight primitive kinds.
func (t Type) IsPrimitive() bool {
	return t >= TypeNull && t <= TypeString
}

// IsComplex reports whether t is one of the six complex kinds.
func (t Type) IsComplex() bool {
	return t >= TypeRecord && t <= TypeFixed
}

// IsNamed reports whether schemas of this kind carry a fully-qualified
// name.
func (t Type) IsNamed() bool {
	return t == TypeRecord || t == TypeEnum || t == TypeFixed
}

// PrimitiveTypeByName maps a lowercase primitive name to its Type.
// Primitive names may not be redefined, so a hit here always wins over a
// named-schema lookup.
func PrimitiveTypeByName(name string) (Type, bool) {
	t, ok := primitiveTypes[name]
	return t, ok
}
