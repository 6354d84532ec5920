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

package avrojson

import (
	"io"
	"math"

	avro "github.com/confluentinc/avro-go"
	"github.com/confluentinc/avro-go/encoding"
	"github.com/confluentinc/avro-go/encoding/stream"
)

// Decoder reads the Avro JSON encoding: a pull lexer underneath, plus a
// small stack remembering whether each open union was branch-tagged.
type Decoder struct {
	lex    *Lexer
	unions []bool
}

var _ encoding.Decoder = (*Decoder)(nil)

// NewDecoder creates a JSON decoder over a source.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{lex: NewLexer(stream.NewInputBuffer(r))}
}

func (d *Decoder) expect(want Token) error {
	tok, err := d.lex.Advance()
	if err != nil {
		return err
	}
	if tok != want {
		return avro.NewJSONLexError("expected %s, got %s", want, tok)
	}
	return nil
}

// ReadNull consumes a null literal.
func (d *Decoder) ReadNull() error {
	return d.expect(TokenNull)
}

// ReadBool consumes a boolean literal.
func (d *Decoder) ReadBool() (bool, error) {
	if err := d.expect(TokenBool); err != nil {
		return false, err
	}
	return d.lex.Bool(), nil
}

// ReadInt consumes an integer literal and checks the 32-bit range.
func (d *Decoder) ReadInt() (int32, error) {
	if err := d.expect(TokenLong); err != nil {
		return 0, err
	}
	v := d.lex.Long()
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, avro.NewRuntimeError("int value %d out of 32-bit range", v)
	}
	return int32(v), nil
}

// ReadLong consumes an integer literal.
func (d *Decoder) ReadLong() (int64, error) {
	if err := d.expect(TokenLong); err != nil {
		return 0, err
	}
	return d.lex.Long(), nil
}

// ReadFloat consumes a number.
func (d *Decoder) ReadFloat() (float32, error) {
	v, err := d.ReadDouble()
	return float32(v), err
}

// ReadDouble consumes a number. Integers promote, and the strings "NaN",
// "Infinity" and "-Infinity" promote to the matching double.
func (d *Decoder) ReadDouble() (float64, error) {
	tok, err := d.lex.Advance()
	if err != nil {
		return 0, err
	}
	switch tok {
	case TokenDouble, TokenLong:
		return d.lex.Double(), nil
	case TokenString:
		switch d.lex.RawString() {
		case "NaN":
			return math.NaN(), nil
		case "Infinity":
			return math.Inf(1), nil
		case "-Infinity":
			return math.Inf(-1), nil
		}
	}
	return 0, avro.NewJSONLexError("expected number, got %s", tok)
}

// ReadBytes consumes a latin-1 string and maps its characters back to
// bytes.
func (d *Decoder) ReadBytes() ([]byte, error) {
	if err := d.expect(TokenString); err != nil {
		return nil, err
	}
	s, err := d.lex.StringValue()
	if err != nil {
		return nil, err
	}
	return latin1Bytes(s)
}

// ReadString consumes a string literal.
func (d *Decoder) ReadString() (string, error) {
	if err := d.expect(TokenString); err != nil {
		return "", err
	}
	return d.lex.StringValue()
}

// ReadFixed consumes a latin-1 string of exactly size characters.
func (d *Decoder) ReadFixed(size int) ([]byte, error) {
	b, err := d.ReadBytes()
	if err != nil {
		return nil, err
	}
	if len(b) != size {
		return nil, avro.NewTypeError("fixed value has %d bytes, schema wants %d", len(b), size)
	}
	return b, nil
}

// ReadEnum consumes the symbol string; the caller resolves the ordinal.
func (d *Decoder) ReadEnum() (int, string, error) {
	if err := d.expect(TokenString); err != nil {
		return 0, "", err
	}
	sym, err := d.lex.StringValue()
	if err != nil {
		return 0, "", err
	}
	return -1, sym, nil
}

// ReadRecordStart consumes the object opener.
func (d *Decoder) ReadRecordStart() error {
	return d.expect(TokenObjectStart)
}

// ReadRecordField consumes the key of the named field, which must appear
// in schema order.
func (d *Decoder) ReadRecordField(name string) error {
	if err := d.expect(TokenString); err != nil {
		return err
	}
	key, err := d.lex.StringValue()
	if err != nil {
		return err
	}
	if key != name {
		return avro.NewJSONLexError("expected field %q, got %q", name, key)
	}
	return nil
}

// ReadRecordEnd consumes the object closer.
func (d *Decoder) ReadRecordEnd() error {
	return d.expect(TokenObjectEnd)
}

// ReadArrayStart consumes the array opener and reports whether a first
// item follows.
func (d *Decoder) ReadArrayStart() (int64, error) {
	if err := d.expect(TokenArrayStart); err != nil {
		return 0, err
	}
	return d.moreItems(TokenArrayEnd)
}

// ReadArrayNext reports whether another item follows.
func (d *Decoder) ReadArrayNext() (int64, error) {
	return d.moreItems(TokenArrayEnd)
}

// ReadMapStart consumes the object opener and reports whether a first
// item follows.
func (d *Decoder) ReadMapStart() (int64, error) {
	if err := d.expect(TokenObjectStart); err != nil {
		return 0, err
	}
	return d.moreItems(TokenObjectEnd)
}

// ReadMapNext reports whether another item follows.
func (d *Decoder) ReadMapNext() (int64, error) {
	return d.moreItems(TokenObjectEnd)
}

// moreItems peeks for the closing token; hitting it consumes it and
// reports zero, anything else reports one.
func (d *Decoder) moreItems(closer Token) (int64, error) {
	tok, err := d.lex.Peek()
	if err != nil {
		return 0, err
	}
	if tok == closer {
		if _, err := d.lex.Advance(); err != nil {
			return 0, err
		}
		return 0, nil
	}
	return 1, nil
}

// ReadMapKey consumes the item's key.
func (d *Decoder) ReadMapKey() (string, error) {
	if err := d.expect(TokenString); err != nil {
		return "", err
	}
	return d.lex.StringValue()
}

// ReadUnionStart consumes the branch selector: a bare null selects the
// null branch, an object opener is followed by the branch name key.
func (d *Decoder) ReadUnionStart() (int, string, error) {
	tok, err := d.lex.Peek()
	if err != nil {
		return 0, "", err
	}
	switch tok {
	case TokenNull:
		d.unions = append(d.unions, false)
		return -1, "null", nil
	case TokenObjectStart:
		if _, err := d.lex.Advance(); err != nil {
			return 0, "", err
		}
		if err := d.expect(TokenString); err != nil {
			return 0, "", err
		}
		branch, err := d.lex.StringValue()
		if err != nil {
			return 0, "", err
		}
		d.unions = append(d.unions, true)
		return -1, branch, nil
	}
	return 0, "", avro.NewJSONLexError("expected union value, got %s", tok)
}

// ReadUnionEnd consumes the closer of a tagged union.
func (d *Decoder) ReadUnionEnd() error {
	n := len(d.unions)
	if n == 0 {
		return avro.NewRuntimeError("union end without union start")
	}
	tagged := d.unions[n-1]
	d.unions = d.unions[:n-1]
	if tagged {
		return d.expect(TokenObjectEnd)
	}
	return nil
}

// skipValue consumes one complete value by token balance.
func (d *Decoder) skipValue() error {
	depth := 0
	for {
		tok, err := d.lex.Advance()
		if err != nil {
			return err
		}
		switch tok {
		case TokenArrayStart, TokenObjectStart:
			depth++
		case TokenArrayEnd, TokenObjectEnd:
			depth--
			if depth < 0 {
				return avro.NewJSONLexError("unbalanced %s", tok)
			}
		}
		if depth == 0 {
			return nil
		}
	}
}

// SkipBytes discards a string value.
func (d *Decoder) SkipBytes() error {
	return d.expect(TokenString)
}

// SkipString discards a string value.
func (d *Decoder) SkipString() error {
	return d.expect(TokenString)
}

// SkipFixed discards a string value.
func (d *Decoder) SkipFixed(int) error {
	return d.expect(TokenString)
}

// SkipArray discards an array by token balance; items never need the
// callback.
func (d *Decoder) SkipArray(func() error) error {
	if tok, err := d.lex.Peek(); err != nil {
		return err
	} else if tok != TokenArrayStart {
		return avro.NewJSONLexError("expected [, got %s", tok)
	}
	return d.skipValue()
}

// SkipMap discards an object by token balance.
func (d *Decoder) SkipMap(func() error) error {
	if tok, err := d.lex.Peek(); err != nil {
		return err
	} else if tok != TokenObjectStart {
		return avro.NewJSONLexError("expected {, got %s", tok)
	}
	return d.skipValue()
}

// latin1Bytes maps the characters of s back onto bytes; every rune must
// fit in one byte.
func latin1Bytes(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xff {
			return nil, avro.NewRuntimeError("character %q out of byte range in bytes value", r)
		}
		out = append(out, byte(r))
	}
	return out, nil
}
