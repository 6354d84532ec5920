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
	"testing"

	"github.com/confluentinc/avro-go/internal/testhelpers"
)

// reparse asserts the canonical JSON of a parsed schema parses back to
// an equivalent schema.
func reparse(t *testing.T, text string) (Schema, string) {
	t.Helper()
	s, err := Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := ToJSON(s)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	again, err := Parse(out)
	if err != nil {
		t.Fatalf("reparse %s: %v", out, err)
	}
	if !s.Equal(again) {
		t.Fatalf("round trip changed the schema:\n in: %s\nout: %s", text, out)
	}
	return s, out
}

func TestJSONRoundTrip(t *testing.T) {
	for _, text := range []string{
		`"int"`,
		`"string"`,
		`{"type": "array", "items": "long"}`,
		`{"type": "map", "values": ["null", "double"]}`,
		`{"type": "fixed", "name": "ns.MD5", "size": 16}`,
		`{"type": "enum", "name": "Suit", "symbols": ["SPADES", "HEARTS"], "default": "SPADES"}`,
		userSchema,
		nodeSchema,
		`{"type": "record", "name": "WithDefaults", "fields": [
			{"name": "s", "type": "string", "default": "hi"},
			{"name": "n", "type": ["null", "int"], "default": null},
			{"name": "arr", "type": {"type": "array", "items": "int"}, "default": [1, 2]}
		]}`,
	} {
		reparse(t, text)
	}
}

func TestJSONPrimitiveCanonicalForm(t *testing.T) {
	maybeFail := testhelpers.InitFailFunc(t)
	out, err := ToJSON(MustPrimitive(TypeInt))
	maybeFail("bare", err, testhelpers.Expect(out, `"int"`))

	s, err := Parse(`{"type": "long", "logicalType": "timestamp-millis"}`)
	maybeFail("parse", err)
	out, err = ToJSON(s)
	maybeFail("logical", err,
		testhelpers.Expect(out, `{"type":"long","logicalType":"timestamp-millis"}`))
}

func TestJSONNamedSchemaEmittedOnce(t *testing.T) {
	s, err := Parse(`{"type": "record", "name": "Outer", "fields": [
		{"name": "a", "type": {"type": "record", "name": "Inner", "fields": [
			{"name": "x", "type": "int"}]}},
		{"name": "b", "type": "Inner"}
	]}`)
	if err != nil {
		t.Fatal(err)
	}
	out, err := ToJSON(s)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(out, `"type":"record"`); got != 2 {
		t.Errorf("expected exactly 2 record definitions, got %d in %s", got, out)
	}
	if !strings.Contains(out, `"b","type":"Inner"`) {
		t.Errorf("second occurrence should be a name reference: %s", out)
	}
	if _, err := Parse(out); err != nil {
		t.Fatalf("canonical JSON does not reparse: %v", err)
	}
}

func TestJSONRecursiveReference(t *testing.T) {
	s, _ := Parse(nodeSchema)
	out, err := ToJSON(s)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"nextNode","type":["Node","null"]`) {
		t.Errorf("recursive branch should be a bare reference: %s", out)
	}
}

func TestJSONNamespaceElision(t *testing.T) {
	s, err := Parse(`{"type": "record", "name": "Outer", "namespace": "com.acme", "fields": [
		{"name": "inner", "type": {"type": "record", "name": "Inner", "fields": []}}
	]}`)
	if err != nil {
		t.Fatal(err)
	}
	out, err := ToJSON(s)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(out, `"namespace":"com.acme"`) != 1 {
		t.Errorf("inner schema should inherit the namespace silently: %s", out)
	}
	reparsed, err := Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	inner, _ := reparsed.(*RecordSchema).Field("inner")
	if inner.Schema().(*RecordSchema).Fullname() != "com.acme.Inner" {
		t.Errorf("inner fullname lost: %s", out)
	}
}

func TestJSONAttributeOrderPreserved(t *testing.T) {
	s, err := Parse(`{"type": "record", "name": "R",
		"zebra": 1, "alpha": 2, "middle": 3, "fields": []}`)
	if err != nil {
		t.Fatal(err)
	}
	out, err := ToJSON(s)
	if err != nil {
		t.Fatal(err)
	}
	z, a, m := strings.Index(out, `"zebra"`), strings.Index(out, `"alpha"`), strings.Index(out, `"middle"`)
	if z < 0 || a < 0 || m < 0 || !(z < a && a < m) {
		t.Errorf("attribute order lost: %s", out)
	}
}

func TestJSONFieldExtras(t *testing.T) {
	_, out := reparse(t, `{"type": "record", "name": "R", "fields": [
		{"name": "a", "type": "int", "doc": "a doc", "order": "descending", "aliases": ["aa"], "default": 4}
	]}`)
	for _, want := range []string{`"doc":"a doc"`, `"order":"descending"`, `"aliases":["aa"]`, `"default":4`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in %s", want, out)
		}
	}
}
