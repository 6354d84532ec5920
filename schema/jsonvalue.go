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
	"io"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	avro "github.com/confluentinc/avro-go"
)

// ValueKind discriminates the JSON value kinds carried by Value.
type ValueKind int

const (
	// KindNull is the JSON null literal
	KindNull ValueKind = iota
	// KindBool is a JSON true/false literal
	KindBool
	// KindLong is a JSON integer literal
	KindLong
	// KindDouble is a JSON number literal with a fraction or exponent
	KindDouble
	// KindString is a JSON string
	KindString
	// KindArray is a JSON array
	KindArray
	// KindObject is a JSON object with insertion-ordered keys
	KindObject
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindLong:
		return "integer"
	case KindDouble:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "invalid"
}

// Value is a parsed JSON value. Objects keep their keys in document
// order, which is what lets unknown schema attributes survive a round
// trip in their original order. Integer and non-integer number literals
// are kept apart because default-value validation distinguishes them.
type Value struct {
	kind   ValueKind
	b      bool
	l      int64
	d      float64
	s      string
	items  []Value
	fields *orderedmap.OrderedMap[string, Value]
}

// NullVal returns the JSON null value.
func NullVal() Value {
	return Value{kind: KindNull}
}

// BoolVal wraps a JSON boolean.
func BoolVal(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// LongVal wraps a JSON integer literal.
func LongVal(l int64) Value {
	return Value{kind: KindLong, l: l}
}

// DoubleVal wraps a JSON non-integer number literal.
func DoubleVal(d float64) Value {
	return Value{kind: KindDouble, d: d}
}

// StringVal wraps a JSON string.
func StringVal(s string) Value {
	return Value{kind: KindString, s: s}
}

// ArrayVal wraps a JSON array.
func ArrayVal(items ...Value) Value {
	return Value{kind: KindArray, items: items}
}

// ObjectVal returns an empty JSON object.
func ObjectVal() Value {
	return Value{kind: KindObject, fields: orderedmap.New[string, Value]()}
}

// Kind returns the value's JSON kind.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsNull reports whether the value is the JSON null literal.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Bool returns the boolean payload; valid only for KindBool.
func (v Value) Bool() bool {
	return v.b
}

// Long returns the integer payload; valid only for KindLong.
func (v Value) Long() int64 {
	return v.l
}

// Double returns the number payload; valid only for KindDouble.
func (v Value) Double() float64 {
	return v.d
}

// Number returns the payload of either number kind as a float64.
func (v Value) Number() float64 {
	if v.kind == KindLong {
		return float64(v.l)
	}
	return v.d
}

// Str returns the string payload; valid only for KindString.
func (v Value) Str() string {
	return v.s
}

// Items returns the elements of a KindArray value.
func (v Value) Items() []Value {
	return v.items
}

// Len returns the element count of an array or the key count of an
// object, and zero for every other kind.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return v.fields.Len()
	}
	return 0
}

// Field looks up a key of a KindObject value.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	return v.fields.Get(key)
}

// SetField sets a key of a KindObject value, keeping the key's original
// position when it already exists. It does nothing for other kinds.
func (v Value) SetField(key string, val Value) {
	if v.kind != KindObject {
		return
	}
	v.fields.Set(key, val)
}

// Keys returns the keys of a KindObject value in insertion order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, v.fields.Len())
	for p := v.fields.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Append adds an element to a KindArray value and returns the result.
func (v Value) Append(items ...Value) Value {
	v.items = append(v.items, items...)
	return v
}

// Equal compares two values structurally. Object comparison ignores key
// order.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindLong:
		return v.l == other.l
	case KindDouble:
		return v.d == other.d
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if v.fields.Len() != other.fields.Len() {
			return false
		}
		for p := v.fields.Oldest(); p != nil; p = p.Next() {
			ov, ok := other.fields.Get(p.Key)
			if !ok || !p.Value.Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders the value as compact JSON.
func (v Value) String() string {
	stream := jsoniter.ConfigDefault.BorrowStream(nil)
	defer jsoniter.ConfigDefault.ReturnStream(stream)
	v.write(stream)
	return string(stream.Buffer())
}

func (v Value) write(stream *jsoniter.Stream) {
	switch v.kind {
	case KindNull:
		stream.WriteNil()
	case KindBool:
		stream.WriteBool(v.b)
	case KindLong:
		stream.WriteInt64(v.l)
	case KindDouble:
		stream.WriteFloat64(v.d)
	case KindString:
		stream.WriteString(v.s)
	case KindArray:
		stream.WriteArrayStart()
		for i, item := range v.items {
			if i > 0 {
				stream.WriteMore()
			}
			item.write(stream)
		}
		stream.WriteArrayEnd()
	case KindObject:
		stream.WriteObjectStart()
		first := true
		for p := v.fields.Oldest(); p != nil; p = p.Next() {
			if !first {
				stream.WriteMore()
			}
			first = false
			stream.WriteObjectField(p.Key)
			p.Value.write(stream)
		}
		stream.WriteObjectEnd()
	}
}

// ParseValue decodes JSON text into a Value tree, preserving object key
// order.
func ParseValue(data []byte) (Value, error) {
	iter := jsoniter.ParseBytes(jsoniter.ConfigDefault, data)
	v := readValue(iter)
	if iter.Error != nil && iter.Error != io.EOF {
		return Value{}, avro.NewSchemaParseError("malformed JSON: %s", iter.Error)
	}
	if iter.WhatIsNext() != jsoniter.InvalidValue {
		return Value{}, avro.NewSchemaParseError("trailing content after JSON value")
	}
	return v, nil
}

func readValue(iter *jsoniter.Iterator) Value {
	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		iter.ReadNil()
		return NullVal()
	case jsoniter.BoolValue:
		return BoolVal(iter.ReadBool())
	case jsoniter.NumberValue:
		raw := string(iter.ReadNumber())
		if strings.ContainsAny(raw, ".eE") {
			d, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				iter.ReportError("number", err.Error())
				return Value{}
			}
			return DoubleVal(d)
		}
		l, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			// Out of int64 range; fall back to a double literal.
			d, ferr := strconv.ParseFloat(raw, 64)
			if ferr != nil {
				iter.ReportError("number", ferr.Error())
				return Value{}
			}
			return DoubleVal(d)
		}
		return LongVal(l)
	case jsoniter.StringValue:
		return StringVal(iter.ReadString())
	case jsoniter.ArrayValue:
		var items []Value
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			items = append(items, readValue(it))
			return it.Error == nil
		})
		return Value{kind: KindArray, items: items}
	case jsoniter.ObjectValue:
		obj := ObjectVal()
		iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
			obj.fields.Set(key, readValue(it))
			return it.Error == nil
		})
		return obj
	default:
		iter.ReportError("value", "invalid JSON value")
		return Value{}
	}
}
