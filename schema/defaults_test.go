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
	"errors"
	"testing"

	avro "github.com/confluentinc/avro-go"
)

func TestValidateDefault(t *testing.T) {
	cases := []struct {
		schema string
		def    string
		ok     bool
	}{
		{`"string"`, `"abc"`, true},
		{`"string"`, `5`, false},
		{`"bytes"`, `"\u00ff\u0000"`, true},
		{`"bytes"`, `17`, false},
		{`{"type": "enum", "name": "E", "symbols": ["A"]}`, `"A"`, true},
		{`{"type": "enum", "name": "E2", "symbols": ["A"]}`, `0`, false},
		{`{"type": "fixed", "name": "F", "size": 2}`, `"ab"`, true},
		{`"int"`, `5`, true},
		{`"int"`, `-2147483648`, true},
		{`"int"`, `2147483648`, false},
		{`"int"`, `"5"`, false},
		{`"int"`, `5.0`, false},
		{`"long"`, `9223372036854775807`, true},
		{`"long"`, `1.5`, false},
		{`"float"`, `1.5`, true},
		{`"float"`, `5`, false},
		{`"double"`, `-0.25`, true},
		{`"double"`, `true`, false},
		{`"boolean"`, `true`, true},
		{`"boolean"`, `"true"`, false},
		{`"null"`, `null`, true},
		{`"null"`, `0`, false},
		{`{"type": "array", "items": "int"}`, `[1, 2, 3]`, true},
		{`{"type": "array", "items": "int"}`, `[1, "two"]`, false},
		{`{"type": "array", "items": "int"}`, `{}`, false},
		{`{"type": "map", "values": "long"}`, `{"a": 1, "b": 2}`, true},
		{`{"type": "map", "values": "long"}`, `{"a": "1"}`, false},
		{`["int", "null"]`, `5`, true},
		{`["int", "null"]`, `"x"`, false},
		{`["null", "int"]`, `5`, false},
		// A JSON null means "no default" and passes for every type.
		{`"int"`, `null`, true},
		{`{"type": "array", "items": "int"}`, `null`, true},
	}
	for _, c := range cases {
		s, err := Parse(c.schema)
		if err != nil {
			t.Fatalf("parse %s: %v", c.schema, err)
		}
		v, err := ParseValue([]byte(c.def))
		if err != nil {
			t.Fatalf("parse default %s: %v", c.def, err)
		}
		err = ValidateDefault("f", s, v)
		if c.ok && err != nil {
			t.Errorf("ValidateDefault(%s, %s) = %v, want nil", c.schema, c.def, err)
		}
		if !c.ok {
			var typeErr *avro.TypeError
			if !errors.As(err, &typeErr) {
				t.Errorf("ValidateDefault(%s, %s) = %v, want TypeError", c.schema, c.def, err)
			}
		}
	}
}

func TestValidateDefaultRecord(t *testing.T) {
	s, err := Parse(`{"type": "record", "name": "R", "fields": [
		{"name": "a", "type": "int"},
		{"name": "b", "type": "string", "default": "fallback"}
	]}`)
	if err != nil {
		t.Fatal(err)
	}

	// Explicit value for a, fallback default for b.
	v, _ := ParseValue([]byte(`{"a": 1}`))
	if err := ValidateDefault("f", s, v); err != nil {
		t.Errorf("record default with fallback: %v", err)
	}

	// a has no default of its own, so omitting it fails.
	v, _ = ParseValue([]byte(`{"b": "x"}`))
	var typeErr *avro.TypeError
	if err := ValidateDefault("f", s, v); !errors.As(err, &typeErr) {
		t.Errorf("missing required field: got %v, want TypeError", err)
	}

	// A wrong inner type fails too.
	v, _ = ParseValue([]byte(`{"a": "one"}`))
	if err := ValidateDefault("f", s, v); !errors.As(err, &typeErr) {
		t.Errorf("wrong inner type: got %v, want TypeError", err)
	}
}
