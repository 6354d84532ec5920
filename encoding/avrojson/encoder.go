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
	"strconv"

	"github.com/confluentinc/avro-go/encoding"
	"github.com/confluentinc/avro-go/encoding/stream"
)

type ctxKind int

const (
	ctxRecord ctxKind = iota
	ctxArray
	ctxMap
	ctxUnionTagged
	ctxUnionBare
)

type ctx struct {
	kind  ctxKind
	first bool
}

// Encoder writes the Avro JSON encoding. A stack of states tracks the
// open containers so commas land before every item but the first.
type Encoder struct {
	out   *stream.OutputBuffer
	stack []ctx
}

var _ encoding.Encoder = (*Encoder)(nil)

// NewEncoder creates a JSON encoder over a sink.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{out: stream.NewOutputBuffer(w)}
}

func (e *Encoder) push(kind ctxKind) {
	e.stack = append(e.stack, ctx{kind: kind, first: true})
}

func (e *Encoder) pop() ctxKind {
	n := len(e.stack)
	if n == 0 {
		return ctxUnionBare
	}
	kind := e.stack[n-1].kind
	e.stack = e.stack[:n-1]
	return kind
}

func (e *Encoder) top() *ctx {
	if len(e.stack) == 0 {
		return nil
	}
	return &e.stack[len(e.stack)-1]
}

// separate writes the comma before a member, except the first.
func (e *Encoder) separate() error {
	t := e.top()
	if t == nil || t.first {
		if t != nil {
			t.first = false
		}
		return nil
	}
	return e.out.WriteByte(',')
}

func (e *Encoder) writeRaw(s string) error {
	_, err := e.out.Write([]byte(s))
	return err
}

// WriteNull writes the null literal.
func (e *Encoder) WriteNull() error {
	return e.writeRaw("null")
}

// WriteBool writes a true or false literal.
func (e *Encoder) WriteBool(v bool) error {
	if v {
		return e.writeRaw("true")
	}
	return e.writeRaw("false")
}

// WriteInt writes an integer literal.
func (e *Encoder) WriteInt(v int32) error {
	return e.writeRaw(strconv.FormatInt(int64(v), 10))
}

// WriteLong writes an integer literal.
func (e *Encoder) WriteLong(v int64) error {
	return e.writeRaw(strconv.FormatInt(v, 10))
}

// WriteFloat writes a number literal; NaN and the infinities come out as
// the barewords NaN, Infinity and -Infinity.
func (e *Encoder) WriteFloat(v float32) error {
	return e.writeFloatBits(float64(v), 32)
}

// WriteDouble writes a number literal; NaN and the infinities come out
// as the barewords NaN, Infinity and -Infinity.
func (e *Encoder) WriteDouble(v float64) error {
	return e.writeFloatBits(v, 64)
}

func (e *Encoder) writeFloatBits(v float64, bits int) error {
	switch {
	case math.IsNaN(v):
		return e.writeRaw("NaN")
	case math.IsInf(v, 1):
		return e.writeRaw("Infinity")
	case math.IsInf(v, -1):
		return e.writeRaw("-Infinity")
	}
	return e.writeRaw(strconv.FormatFloat(v, 'g', -1, bits))
}

// WriteBytes writes a string whose characters are the latin-1 mapping of
// the bytes.
func (e *Encoder) WriteBytes(v []byte) error {
	return e.writeLatin1(v)
}

// WriteString writes a JSON-escaped string literal.
func (e *Encoder) WriteString(v string) error {
	return e.writeEscaped(v)
}

// WriteFixed writes the bytes as a latin-1 string.
func (e *Encoder) WriteFixed(v []byte) error {
	return e.writeLatin1(v)
}

// WriteEnum writes the symbol as a string.
func (e *Encoder) WriteEnum(_ int, symbol string) error {
	return e.writeEscaped(symbol)
}

// WriteRecordStart opens a JSON object.
func (e *Encoder) WriteRecordStart() error {
	if err := e.out.WriteByte('{'); err != nil {
		return err
	}
	e.push(ctxRecord)
	return nil
}

// WriteRecordField writes the field's key; the first member of the
// object carries no preceding comma.
func (e *Encoder) WriteRecordField(name string) error {
	if err := e.separate(); err != nil {
		return err
	}
	if err := e.writeEscaped(name); err != nil {
		return err
	}
	return e.out.WriteByte(':')
}

// WriteRecordEnd closes the JSON object.
func (e *Encoder) WriteRecordEnd() error {
	e.pop()
	return e.out.WriteByte('}')
}

// WriteArrayStart opens a JSON array.
func (e *Encoder) WriteArrayStart() error {
	if err := e.out.WriteByte('['); err != nil {
		return err
	}
	e.push(ctxArray)
	return nil
}

// SetItemCount is a no-op; JSON containers carry no counts.
func (e *Encoder) SetItemCount(int64) error {
	return nil
}

// StartItem separates array items; map items separate at their key.
func (e *Encoder) StartItem() error {
	if t := e.top(); t != nil && t.kind == ctxArray {
		return e.separate()
	}
	return nil
}

// WriteArrayEnd closes the JSON array.
func (e *Encoder) WriteArrayEnd() error {
	e.pop()
	return e.out.WriteByte(']')
}

// WriteMapStart opens a JSON object.
func (e *Encoder) WriteMapStart() error {
	if err := e.out.WriteByte('{'); err != nil {
		return err
	}
	e.push(ctxMap)
	return nil
}

// WriteMapKey writes the item's key; the first member of the object
// carries no preceding comma.
func (e *Encoder) WriteMapKey(key string) error {
	if err := e.separate(); err != nil {
		return err
	}
	if err := e.writeEscaped(key); err != nil {
		return err
	}
	return e.out.WriteByte(':')
}

// WriteMapEnd closes the JSON object.
func (e *Encoder) WriteMapEnd() error {
	e.pop()
	return e.out.WriteByte('}')
}

// WriteUnionStart encodes the branch selector: the null branch is a bare
// null, every other branch opens a single-key object tagged with the
// branch name.
func (e *Encoder) WriteUnionStart(_ int, branch string) error {
	if branch == "null" {
		e.push(ctxUnionBare)
		return nil
	}
	if err := e.out.WriteByte('{'); err != nil {
		return err
	}
	if err := e.writeEscaped(branch); err != nil {
		return err
	}
	if err := e.out.WriteByte(':'); err != nil {
		return err
	}
	e.push(ctxUnionTagged)
	return nil
}

// WriteUnionEnd closes a tagged union object.
func (e *Encoder) WriteUnionEnd() error {
	if e.pop() == ctxUnionTagged {
		return e.out.WriteByte('}')
	}
	return nil
}

// Flush pushes buffered output to the sink.
func (e *Encoder) Flush() error {
	return e.out.Flush()
}

const hexDigits = "0123456789abcdef"

// writeEscaped writes a quoted string, escaping the quote, the
// backslash and control characters.
func (e *Encoder) writeEscaped(s string) error {
	if err := e.out.WriteByte('"'); err != nil {
		return err
	}
	for i := 0; i < len(s); i++ {
		if err := e.escapeByte(s[i], false); err != nil {
			return err
		}
	}
	return e.out.WriteByte('"')
}

// writeLatin1 writes a quoted string whose characters are the byte
// values; bytes beyond ASCII are written as \u00xx escapes so the text
// stays valid UTF-8.
func (e *Encoder) writeLatin1(b []byte) error {
	if err := e.out.WriteByte('"'); err != nil {
		return err
	}
	for _, c := range b {
		if err := e.escapeByte(c, true); err != nil {
			return err
		}
	}
	return e.out.WriteByte('"')
}

func (e *Encoder) escapeByte(c byte, latin1 bool) error {
	switch c {
	case '"':
		return e.writeRaw(`\"`)
	case '\\':
		return e.writeRaw(`\\`)
	case '\b':
		return e.writeRaw(`\b`)
	case '\f':
		return e.writeRaw(`\f`)
	case '\n':
		return e.writeRaw(`\n`)
	case '\r':
		return e.writeRaw(`\r`)
	case '\t':
		return e.writeRaw(`\t`)
	}
	if c < 0x20 || (latin1 && c >= 0x7f) {
		return e.writeRaw("\\u00" + string(hexDigits[c>>4]) + string(hexDigits[c&0xf]))
	}
	return e.out.WriteByte(c)
}
