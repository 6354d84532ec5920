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

package generic

import (
	"bytes"
	"errors"
	"math"
	"testing"

	avro "github.com/confluentinc/avro-go"
	"github.com/confluentinc/avro-go/encoding/avrobinary"
	"github.com/confluentinc/avro-go/encoding/avrojson"
	"github.com/confluentinc/avro-go/internal/testhelpers"
	"github.com/confluentinc/avro-go/schema"
)

func encodeBinary(t *testing.T, s schema.Schema, d *Datum) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := NewWriter(s).Write(d, avrobinary.NewEncoder(&buf)); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func decodeBinary(t *testing.T, s schema.Schema, data []byte) *Datum {
	t.Helper()
	d, err := NewReader(s).ReadNew(avrobinary.NewDecoder(bytes.NewReader(data)))
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func encodeJSON(t *testing.T, s schema.Schema, d *Datum) string {
	t.Helper()
	var buf bytes.Buffer
	if err := NewWriter(s).Write(d, avrojson.NewEncoder(&buf)); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func decodeJSON(t *testing.T, s schema.Schema, text string) *Datum {
	t.Helper()
	d, err := NewReader(s).ReadNew(avrojson.NewDecoder(bytes.NewReader([]byte(text))))
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func buildUser(t *testing.T, s schema.Schema) *Datum {
	t.Helper()
	d := NewDatum(s)
	name, _ := d.Field("name")
	if err := name.SetString("bob"); err != nil {
		t.Fatal(err)
	}
	num, _ := d.Field("favorite_number")
	if err := num.SelectBranch(0); err != nil {
		t.Fatal(err)
	}
	if err := num.SetInt(8); err != nil {
		t.Fatal(err)
	}
	col, _ := d.Field("favorite_color")
	if err := col.SelectBranch(0); err != nil {
		t.Fatal(err)
	}
	if err := col.SetString("blue"); err != nil {
		t.Fatal(err)
	}
	return d
}

func TestUserRecordBinary(t *testing.T) {
	maybeFail := testhelpers.InitFailFunc(t)
	s := schema.MustParse(userSchema)
	d := buildUser(t, s)

	got := encodeBinary(t, s, d)
	want := []byte{
		0x06, 0x62, 0x6f, 0x62,
		0x00, 0x10,
		0x00, 0x08, 0x62, 0x6c, 0x75, 0x65,
	}
	maybeFail("wire bytes", testhelpers.Expect(got, want))

	back := decodeBinary(t, s, got)
	if !d.Equal(back) {
		t.Fatal("binary round trip changed the datum")
	}
	idx, _ := mustField(t, back, "favorite_number").UnionIndex()
	maybeFail("branch", testhelpers.Expect(idx, 0))
}

func mustField(t *testing.T, d *Datum, name string) *Datum {
	t.Helper()
	f, err := d.Field(name)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestUserRecordJSON(t *testing.T) {
	maybeFail := testhelpers.InitFailFunc(t)
	s := schema.MustParse(userSchema)
	d := buildUser(t, s)

	text := encodeJSON(t, s, d)
	maybeFail("json", testhelpers.Expect(text,
		`{"name":"bob","favorite_number":{"int":8},"favorite_color":{"string":"blue"}}`))

	back := decodeJSON(t, s, text)
	if !d.Equal(back) {
		t.Fatal("JSON round trip changed the datum")
	}
}

const staffSchema = `{
  "type": "record",
  "name": "Staff",
  "fields": [
    {"name": "e", "type": {"type": "enum", "name": "Shift", "symbols": ["FULLTIME", "PARTTIME"]}},
    {"name": "a", "type": {"type": "array", "items": "float"}},
    {"name": "m", "type": {"type": "map", "values": "long"}},
    {"name": "f", "type": {"type": "fixed", "name": "F4", "size": 4}}
  ]
}`

func buildStaff(t *testing.T, s schema.Schema) *Datum {
	t.Helper()
	d := NewDatum(s)
	e, _ := mustField(t, d, "e").Enum()
	if err := e.SetSymbol("PARTTIME"); err != nil {
		t.Fatal(err)
	}
	arr, _ := mustField(t, d, "a").Array()
	if _, err := arr.AppendValue(float32(1.23)); err != nil {
		t.Fatal(err)
	}
	if _, err := arr.AppendValue(float32(4.56)); err != nil {
		t.Fatal(err)
	}
	m, _ := mustField(t, d, "m").Map()
	if _, err := m.SetValue("m1", int64(10)); err != nil {
		t.Fatal(err)
	}
	if _, err := m.SetValue("m2", int64(20)); err != nil {
		t.Fatal(err)
	}
	f, _ := mustField(t, d, "f").Fixed()
	if err := f.SetBytes([]byte{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}
	return d
}

func TestStaffRecordBinary(t *testing.T) {
	maybeFail := testhelpers.InitFailFunc(t)
	s := schema.MustParse(staffSchema)
	d := buildStaff(t, s)

	got := encodeBinary(t, s, d)
	want := []byte{
		0x02,                                           // enum ordinal 1
		0x04, 0xa4, 0x70, 0x9d, 0x3f, 0x85, 0xeb, 0x91, 0x40, 0x00, // array block
		0x04, 0x04, 0x6d, 0x31, 0x14, 0x04, 0x6d, 0x32, 0x28, 0x00, // map block
		0x01, 0x02, 0x03, 0x04, // fixed
	}
	maybeFail("wire bytes", testhelpers.Expect(got, want))

	back := decodeBinary(t, s, got)
	if !d.Equal(back) {
		t.Fatal("binary round trip changed the datum")
	}
}

func TestStaffRecordJSONRoundTrip(t *testing.T) {
	s := schema.MustParse(staffSchema)
	d := buildStaff(t, s)
	text := encodeJSON(t, s, d)
	back := decodeJSON(t, s, text)
	if !d.Equal(back) {
		t.Fatalf("JSON round trip changed the datum: %s", text)
	}
}

const nodeSchema = `{
  "type": "record",
  "name": "Node",
  "fields": [
    {"name": "value", "type": {"type": "record", "name": "Value", "fields": [
      {"name": "a", "type": "int"}
    ]}},
    {"name": "nextNode", "type": ["Node", "null"]}
  ]
}`

func TestRecursiveRecordRoundTrip(t *testing.T) {
	s := schema.MustParse(nodeSchema)

	head := NewDatum(s)
	val, _ := mustField(t, head, "value").Field("a")
	val.SetInt(1)
	next := mustField(t, head, "nextNode")
	if err := next.SelectBranch(0); err != nil {
		t.Fatal(err)
	}
	second, _ := next.Branch()
	sval, _ := mustField(t, second, "value").Field("a")
	sval.SetInt(2)
	tail := mustField(t, second, "nextNode")
	if err := tail.SelectBranch(1); err != nil {
		t.Fatal(err)
	}

	data := encodeBinary(t, s, head)
	back := decodeBinary(t, s, data)
	if !head.Equal(back) {
		t.Fatal("recursive round trip changed the datum")
	}

	// Walk the decoded list to be sure the shape survived.
	a1, _ := mustField(t, back, "value").Field("a")
	if v, _ := a1.Int(); v != 1 {
		t.Fatal("first node lost")
	}
	n2, _ := mustField(t, back, "nextNode").Branch()
	a2, _ := mustField(t, n2, "value").Field("a")
	if v, _ := a2.Int(); v != 2 {
		t.Fatal("second node lost")
	}
}

func TestEmptyRecordEncodesToNothing(t *testing.T) {
	s := schema.MustParse(`{"type": "record", "name": "Empty", "fields": []}`)
	d := NewDatum(s)
	got := encodeBinary(t, s, d)
	if len(got) != 0 {
		t.Fatalf("empty record encoded to % x", got)
	}
	back := decodeBinary(t, s, nil)
	if !d.Equal(back) {
		t.Fatal("empty record should decode from zero bytes")
	}
}

func TestNestedRecordInUnionInArray(t *testing.T) {
	s := schema.MustParse(`{"type": "array", "items": ["null", {"type": "record", "name": "P", "fields": [
		{"name": "x", "type": "long"}]}]}`)
	d := NewDatum(s)
	arr, _ := d.Array()

	first := NewDatum(s.(*schema.ArraySchema).Items())
	first.SelectBranch(1)
	inner, _ := first.Branch()
	x, _ := inner.Field("x")
	x.SetLong(999)
	arr.Append(first)

	second := NewDatum(s.(*schema.ArraySchema).Items())
	second.SelectBranch(0)
	arr.Append(second)

	for _, codec := range []string{"binary", "json"} {
		var back *Datum
		if codec == "binary" {
			back = decodeBinary(t, s, encodeBinary(t, s, d))
		} else {
			back = decodeJSON(t, s, encodeJSON(t, s, d))
		}
		if !d.Equal(back) {
			t.Fatalf("%s round trip changed the datum", codec)
		}
	}
}

func TestNumericBoundariesRoundTrip(t *testing.T) {
	intSchema := schema.MustPrimitive(schema.TypeInt)
	for _, v := range []int32{math.MinInt32, math.MaxInt32, 0, -1, 1} {
		d := NewDatum(intSchema)
		d.SetInt(v)
		back := decodeBinary(t, intSchema, encodeBinary(t, intSchema, d))
		if got, _ := back.Int(); got != v {
			t.Errorf("int %d → %d", v, got)
		}
	}
	longSchema := schema.MustPrimitive(schema.TypeLong)
	for _, v := range []int64{math.MinInt64, math.MaxInt64, 0, -1, 1} {
		d := NewDatum(longSchema)
		d.SetLong(v)
		back := decodeBinary(t, longSchema, encodeBinary(t, longSchema, d))
		if got, _ := back.Long(); got != v {
			t.Errorf("long %d → %d", v, got)
		}
	}
}

func TestEmptyContainersRoundTrip(t *testing.T) {
	for _, text := range []string{
		`"bytes"`,
		`"string"`,
		`{"type": "array", "items": "int"}`,
		`{"type": "map", "values": "string"}`,
	} {
		s := schema.MustParse(text)
		d := NewDatum(s)
		back := decodeBinary(t, s, encodeBinary(t, s, d))
		if !d.Equal(back) {
			t.Errorf("%s: empty value round trip failed", text)
		}
		jback := decodeJSON(t, s, encodeJSON(t, s, d))
		if !d.Equal(jback) {
			t.Errorf("%s: empty value JSON round trip failed", text)
		}
	}
}

func TestJSONSpecialFloatsRoundTrip(t *testing.T) {
	maybeFail := testhelpers.InitFailFunc(t)
	s := schema.MustPrimitive(schema.TypeDouble)
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		d := NewDatum(s)
		d.SetDouble(v)
		text := encodeJSON(t, s, d)
		back := decodeJSON(t, s, text)
		if !d.Equal(back) {
			t.Errorf("special float %v round trip failed via %s", v, text)
		}
	}
	d := NewDatum(s)
	d.SetDouble(math.Inf(1))
	maybeFail("rendering", testhelpers.Expect(encodeJSON(t, s, d), "Infinity"))
}

func TestWriteUnselectedUnionFails(t *testing.T) {
	s := schema.MustParse(`["int", "null"]`)
	d := NewDatum(s)
	var rtErr *avro.RuntimeError
	var buf bytes.Buffer
	err := NewWriter(s).Write(d, avrobinary.NewEncoder(&buf))
	if !errors.As(err, &rtErr) {
		t.Fatalf("expected RuntimeError, got %v", err)
	}
}

func TestReaderWithSchemasRequiresEquality(t *testing.T) {
	a := schema.MustPrimitive(schema.TypeInt)
	b := schema.MustPrimitive(schema.TypeLong)
	if _, err := NewReaderWithSchemas(a, b); err == nil {
		t.Fatal("different schemas should be rejected until resolution exists")
	}
	r, err := NewReaderWithSchemas(a, schema.MustPrimitive(schema.TypeInt))
	if err != nil {
		t.Fatal(err)
	}
	if r.Schema().Type() != schema.TypeInt {
		t.Fatal("reader schema lost")
	}
}
