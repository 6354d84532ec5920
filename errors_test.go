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

package avro

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	err := NewSchemaParseError("missing %q", "type")
	if !strings.Contains(err.Error(), `missing "type"`) {
		t.Errorf("message lost: %s", err)
	}
	if !strings.Contains(NewTypeError("bad").Error(), "type") {
		t.Error("TypeError should identify itself")
	}
}

func TestRuntimeErrorWrapping(t *testing.T) {
	cause := io.ErrUnexpectedEOF
	err := WrapRuntimeError(cause, "reading block")
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("wrapped cause should be reachable with errors.Is")
	}
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) {
		t.Error("errors.As should match the RuntimeError itself")
	}
}

func TestCodecErrorsUnwrapToRuntime(t *testing.T) {
	var rtErr *RuntimeError

	numErr := NewInvalidNumberEncodingError("varint exceeds %d bytes", 10)
	if !errors.As(numErr, &rtErr) {
		t.Error("InvalidNumberEncodingError should unwrap to RuntimeError")
	}

	lexErr := NewJSONLexError("unexpected character %q", '@')
	if !errors.As(lexErr, &rtErr) {
		t.Error("JSONLexError should unwrap to RuntimeError")
	}
}

func TestErrorsSurviveFmtWrapping(t *testing.T) {
	inner := NewTypeError("datum holds %s, not %s", "int", "long")
	wrapped := fmt.Errorf("while writing field %q: %w", "age", inner)
	var typeErr *TypeError
	if !errors.As(wrapped, &typeErr) {
		t.Error("TypeError should survive fmt wrapping")
	}
}
