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
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Attributes is the insertion-ordered string-to-JSON mapping that carries
// the non-reserved keys of a schema or field object. Overwriting an
// existing key keeps the key's original position, so attributes come back
// out in the order the schema text declared them.
type Attributes struct {
	m *orderedmap.OrderedMap[string, Value]
}

// NewAttributes returns an empty attribute map.
func NewAttributes() *Attributes {
	return &Attributes{m: orderedmap.New[string, Value]()}
}

// Set inserts or overwrites a key.
func (a *Attributes) Set(key string, value Value) {
	a.m.Set(key, value)
}

// Get looks up a key.
func (a *Attributes) Get(key string) (Value, bool) {
	return a.m.Get(key)
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	return a.m.Len()
}

// Keys returns the keys in insertion order.
func (a *Attributes) Keys() []string {
	keys := make([]string, 0, a.m.Len())
	for p := a.m.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Range calls fn for each attribute in insertion order until fn returns
// false.
func (a *Attributes) Range(fn func(key string, value Value) bool) {
	for p := a.m.Oldest(); p != nil; p = p.Next() {
		if !fn(p.Key, p.Value) {
			return
		}
	}
}

// Equal compares two attribute maps; order is part of the comparison.
func (a *Attributes) Equal(other *Attributes) bool {
	if a.m.Len() != other.m.Len() {
		return false
	}
	q := other.m.Oldest()
	for p := a.m.Oldest(); p != nil; p = p.Next() {
		if q == nil || p.Key != q.Key || !p.Value.Equal(q.Value) {
			return false
		}
		q = q.Next()
	}
	return true
}

// writeJSON appends every attribute to an already-open JSON object.
// first tells whether the object has no members yet.
func (a *Attributes) writeJSON(stream *jsoniter.Stream, first bool) bool {
	for p := a.m.Oldest(); p != nil; p = p.Next() {
		if !first {
			stream.WriteMore()
		}
		first = false
		stream.WriteObjectField(p.Key)
		p.Value.write(stream)
	}
	return first
}

// MarshalJSON renders the attributes as a JSON object in insertion order.
func (a *Attributes) MarshalJSON() ([]byte, error) {
	stream := jsoniter.ConfigDefault.BorrowStream(nil)
	defer jsoniter.ConfigDefault.ReturnStream(stream)
	stream.WriteObjectStart()
	a.writeJSON(stream, true)
	stream.WriteObjectEnd()
	buf := make([]byte, len(stream.Buffer()))
	copy(buf, stream.Buffer())
	return buf, nil
}
