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

package avro_test

import (
	"bytes"
	"testing"

	hamba "github.com/hamba/avro/v2"

	"github.com/confluentinc/avro-go/encoding/avrobinary"
	"github.com/confluentinc/avro-go/generic"
	"github.com/confluentinc/avro-go/schema"
)

// The binary format is bit-exact across implementations, so the same
// record must produce the same bytes here and in hamba/avro.
func TestBinaryInteropWithHamba(t *testing.T) {
	const schemaText = `{
	  "type": "record",
	  "name": "Person",
	  "fields": [
	    {"name": "s", "type": "string"},
	    {"name": "i", "type": "int"},
	    {"name": "l", "type": "long"},
	    {"name": "b", "type": "boolean"}
	  ]
	}`
	want := []byte{
		0x06, 0x62, 0x6f, 0x62, // "bob"
		0x10, // int 8
		0x28, // long 20
		0x01, // true
	}

	s := schema.MustParse(schemaText)
	d := generic.NewDatum(s)
	fs, _ := d.Field("s")
	fs.SetString("bob")
	fi, _ := d.Field("i")
	fi.SetInt(8)
	fl, _ := d.Field("l")
	fl.SetLong(20)
	fb, _ := d.Field("b")
	fb.SetBool(true)

	var buf bytes.Buffer
	if err := generic.NewWriter(s).Write(d, avrobinary.NewEncoder(&buf)); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("encoded % x, want % x", buf.Bytes(), want)
	}

	hs, err := hamba.Parse(schemaText)
	if err != nil {
		t.Fatal(err)
	}
	theirs, err := hamba.Marshal(hs, map[string]interface{}{
		"s": "bob", "i": 8, "l": int64(20), "b": true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(theirs, want) {
		t.Fatalf("hamba encoded % x, want % x", theirs, want)
	}

	// And their bytes decode with our reader.
	back, err := generic.NewReader(s).ReadNew(avrobinary.NewDecoder(bytes.NewReader(theirs)))
	if err != nil {
		t.Fatal(err)
	}
	if !d.Equal(back) {
		t.Fatal("hamba bytes should decode to the same datum")
	}
}
