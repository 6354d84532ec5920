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
	"testing"
)

func TestTableSynthesizesPrimitives(t *testing.T) {
	table := NewSchemaTable()
	s, ok := table.Lookup("double")
	if !ok || s.Type() != TypeDouble {
		t.Fatal("primitive lookup should synthesize a schema")
	}
	if table.Len() != 0 {
		t.Fatal("primitive lookups must not be stored")
	}
}

func TestTableRegisterAndResolve(t *testing.T) {
	table := NewSchemaTable()
	rec := NewRecordSchema(mustName(t, "com.acme.T"))
	if err := table.Register(rec); err != nil {
		t.Fatal(err)
	}
	if err := table.Register(rec); err == nil {
		t.Fatal("re-registration should fail")
	}

	if s, ok := table.Lookup("com.acme.T"); !ok || s != Schema(rec) {
		t.Fatal("qualified lookup failed")
	}
	if _, ok := table.Lookup("T"); ok {
		t.Fatal("bare lookup should miss without a default namespace")
	}
	table.PushDefaultNamespace("com.acme")
	if s, ok := table.Lookup("T"); !ok || s != Schema(rec) {
		t.Fatal("unqualified lookup should resolve against the default namespace")
	}
	table.PopDefaultNamespace()
	if table.DefaultNamespace() != "" {
		t.Fatal("pop should restore the previous default")
	}
}

func TestTableNamespaceStack(t *testing.T) {
	table := NewSchemaTable()
	table.PushDefaultNamespace("a")
	table.PushDefaultNamespace("b")
	if table.DefaultNamespace() != "b" {
		t.Fatal("push should replace the default")
	}
	table.PopDefaultNamespace()
	if table.DefaultNamespace() != "a" {
		t.Fatal("pop should restore the saved default")
	}
	table.PopDefaultNamespace()
	table.PopDefaultNamespace() // extra pops are harmless
	if table.DefaultNamespace() != "" {
		t.Fatal("empty stack should leave no namespace")
	}
}

func TestTableRejectsPrimitiveNames(t *testing.T) {
	table := NewSchemaTable()
	rec := NewRecordSchema(Name{simple: "int"})
	if err := table.Register(rec); err == nil {
		t.Fatal("registering a primitive name should fail")
	}
}

func TestTableAliasCollision(t *testing.T) {
	table := NewSchemaTable()
	a := NewRecordSchema(mustName(t, "ns.A"))
	b := NewRecordSchema(mustName(t, "ns.B"))
	if err := table.Register(a); err != nil {
		t.Fatal(err)
	}
	if err := table.Register(b); err != nil {
		t.Fatal(err)
	}
	if err := table.RegisterAlias(mustName(t, "ns.A"), b); err == nil {
		t.Fatal("alias over a different schema should fail")
	}
	if err := table.RegisterAlias(mustName(t, "ns.Alias"), b); err != nil {
		t.Fatal(err)
	}
	if s, ok := table.Lookup("ns.Alias"); !ok || s != Schema(b) {
		t.Fatal("alias lookup failed")
	}
}
