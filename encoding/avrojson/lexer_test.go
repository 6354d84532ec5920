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
	"errors"
	"math"
	"strings"
	"testing"

	avro "github.com/confluentinc/avro-go"
	"github.com/confluentinc/avro-go/encoding/stream"
	"github.com/confluentinc/avro-go/internal/testhelpers"
)

func newLexer(text string) *Lexer {
	return NewLexer(stream.NewInputBuffer(strings.NewReader(text)))
}

func TestLexerTokenStream(t *testing.T) {
	maybeFail := testhelpers.InitFailFunc(t)
	l := newLexer(`{"a": [1, 2.5, true, null, "x"]}`)

	want := []Token{
		TokenObjectStart, TokenString, TokenArrayStart, TokenLong,
		TokenDouble, TokenBool, TokenNull, TokenString,
		TokenArrayEnd, TokenObjectEnd,
	}
	for i, w := range want {
		tok, err := l.Advance()
		if err != nil {
			t.Fatalf("token %d: %v", i, err)
		}
		maybeFail("token", testhelpers.Expect(tok, w))
	}
}

func TestLexerPeek(t *testing.T) {
	l := newLexer(`[17]`)
	if tok, err := l.Peek(); err != nil || tok != TokenArrayStart {
		t.Fatalf("peek = %v, %v", tok, err)
	}
	// Peek is stable and Advance consumes the same token.
	if tok, _ := l.Peek(); tok != TokenArrayStart {
		t.Fatal("second peek differs")
	}
	if tok, _ := l.Advance(); tok != TokenArrayStart {
		t.Fatal("advance after peek differs")
	}
	if tok, _ := l.Advance(); tok != TokenLong {
		t.Fatal("lexer lost position")
	}
}

func TestLexerNumbers(t *testing.T) {
	cases := []struct {
		text   string
		tok    Token
		long   int64
		double float64
	}{
		{"0", TokenLong, 0, 0},
		{"-0", TokenLong, 0, 0},
		{"17", TokenLong, 17, 0},
		{"-42", TokenLong, -42, 0},
		{"2.5", TokenDouble, 0, 2.5},
		{"-0.25", TokenDouble, 0, -0.25},
		{"1.23e+20", TokenDouble, 0, 1.23e+20},
		{"1E3", TokenDouble, 0, 1000},
		{"5e-1", TokenDouble, 0, 0.5},
		{"9223372036854775807", TokenLong, math.MaxInt64, 0},
	}
	for _, c := range cases {
		l := newLexer(c.text)
		tok, err := l.Advance()
		if err != nil {
			t.Fatalf("%s: %v", c.text, err)
		}
		if tok != c.tok {
			t.Errorf("%s: token %s, want %s", c.text, tok, c.tok)
			continue
		}
		if tok == TokenLong && l.Long() != c.long {
			t.Errorf("%s: long %d, want %d", c.text, l.Long(), c.long)
		}
		if tok == TokenDouble && l.Double() != c.double {
			t.Errorf("%s: double %v, want %v", c.text, l.Double(), c.double)
		}
	}
}

func TestLexerRejectsBadNumbers(t *testing.T) {
	var lexErr *avro.JSONLexError
	for _, text := range []string{"01", "-01", "1.", "1e", "1e+", "-", "--1", "00"} {
		l := newLexer(text + " ")
		if _, err := l.Advance(); !errors.As(err, &lexErr) {
			t.Errorf("%q: expected JSONLexError, got %v", text, err)
		}
	}
}

func TestLexerLongPromotesToDouble(t *testing.T) {
	l := newLexer("42")
	if _, err := l.Advance(); err != nil {
		t.Fatal(err)
	}
	if l.Double() != 42.0 {
		t.Errorf("Double() on a long = %v", l.Double())
	}
}

func TestLexerBarewords(t *testing.T) {
	for text, check := range map[string]func(float64) bool{
		"NaN":       math.IsNaN,
		"Infinity":  func(v float64) bool { return math.IsInf(v, 1) },
		"-Infinity": func(v float64) bool { return math.IsInf(v, -1) },
	} {
		l := newLexer(text)
		tok, err := l.Advance()
		if err != nil || tok != TokenDouble {
			t.Fatalf("%s: %v %v", text, tok, err)
		}
		if !check(l.Double()) {
			t.Errorf("%s lexed to %v", text, l.Double())
		}
	}
}

func TestLexerStringEscapes(t *testing.T) {
	maybeFail := testhelpers.InitFailFunc(t)
	l := newLexer(`"a\"b\\c\/d\b\f\n\r\tAé"`)
	tok, err := l.Advance()
	maybeFail("advance", err, testhelpers.Expect(tok, TokenString))

	// The raw form keeps the escapes.
	maybeFail("raw", testhelpers.Expect(l.RawString(), `a\"b\\c\/d\b\f\n\r\tAé`))

	s, err := l.StringValue()
	maybeFail("decoded", err, testhelpers.Expect(s, "a\"b\\c/d\b\f\n\r\tAé"))
}

func TestLexerSurrogatePair(t *testing.T) {
	l := newLexer(`"\ud83d\ude00"`)
	if _, err := l.Advance(); err != nil {
		t.Fatal(err)
	}
	s, err := l.StringValue()
	if err != nil {
		t.Fatal(err)
	}
	if s != "😀" {
		t.Errorf("surrogate pair decoded to %q", s)
	}
}

func TestLexerErrors(t *testing.T) {
	var lexErr *avro.JSONLexError
	for _, text := range []string{`"unterminated`, "tru", "nul ", "@", `"bad \q escape"`} {
		l := newLexer(text)
		_, err := l.Advance()
		if err == nil && l.tok == TokenString {
			_, err = l.StringValue()
		}
		if !errors.As(err, &lexErr) {
			t.Errorf("%q: expected JSONLexError, got %v", text, err)
		}
	}
}
