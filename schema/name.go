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
	"regexp"
	"strings"

	avro "github.com/confluentinc/avro-go"
)

var nameRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsValidName reports whether s is a well-formed Avro simple name.
func IsValidName(s string) bool {
	return nameRegexp.MatchString(s)
}

// Name is a (simple name, namespace) pair. Equality and hashing are over
// the fully-qualified form "namespace.simple", or the bare simple name
// when there is no namespace. An empty namespace means "no namespace".
type Name struct {
	simple    string
	namespace string
}

// NewName builds a Name from a simple name and a namespace. The simple
// name must be well-formed; when the namespace is non-empty, every
// dot-separated part of it must be well-formed too.
func NewName(simple, namespace string) (Name, error) {
	if !IsValidName(simple) {
		return Name{}, avro.NewSchemaParseError("invalid name %q", simple)
	}
	if namespace != "" {
		for _, part := range strings.Split(namespace, ".") {
			if !IsValidName(part) {
				return Name{}, avro.NewSchemaParseError("invalid namespace %q", namespace)
			}
		}
	}
	return Name{simple: simple, namespace: namespace}, nil
}

// NewNameFromFull builds a Name from a possibly-dotted string. A string
// containing dots splits at the last dot into (namespace, simple name);
// otherwise enclosing is used as the namespace.
func NewNameFromFull(full, enclosing string) (Name, error) {
	if i := strings.LastIndex(full, "."); i != -1 {
		return NewName(full[i+1:], full[:i])
	}
	return NewName(full, enclosing)
}

// Simple returns the unqualified part of the name.
func (n Name) Simple() string {
	return n.simple
}

// Namespace returns the namespace, or "" when there is none.
func (n Name) Namespace() string {
	return n.namespace
}

// Fullname returns "namespace.simple", or the bare simple name when the
// namespace is empty.
func (n Name) Fullname() string {
	if n.namespace == "" {
		return n.simple
	}
	return n.namespace + "." + n.simple
}

// Equal reports whether two names have the same fully-qualified form.
func (n Name) Equal(other Name) bool {
	return n.simple == other.simple && n.namespace == other.namespace
}

func (n Name) String() string {
	return n.Fullname()
}
