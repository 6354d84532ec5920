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
	"math"

	avro "github.com/confluentinc/avro-go"
)

// ValidateDefault checks a field's JSON default value against the
// field's schema. A JSON null is accepted for every schema kind and
// means "no default". Union defaults validate against the first branch
// only. Record defaults recurse field by field, falling back to each
// field's own default when the object omits the key. Any mismatch is a
// TypeError.
func ValidateDefault(fieldName string, s Schema, v Value) error {
	if v.IsNull() {
		return nil
	}
	switch s.Type() {
	case TypeString, TypeBytes, TypeEnum, TypeFixed:
		if v.Kind() == KindString {
			return nil
		}
	case TypeInt:
		if v.Kind() == KindLong && v.Long() >= math.MinInt32 && v.Long() <= math.MaxInt32 {
			return nil
		}
	case TypeLong:
		if v.Kind() == KindLong {
			return nil
		}
	case TypeFloat, TypeDouble:
		if v.Kind() == KindDouble {
			return nil
		}
	case TypeBoolean:
		if v.Kind() == KindBool {
			return nil
		}
	case TypeArray:
		if v.Kind() != KindArray {
			break
		}
		items := s.(*ArraySchema).Items()
		for _, item := range v.Items() {
			if err := ValidateDefault(fieldName, items, item); err != nil {
				return err
			}
		}
		return nil
	case TypeMap:
		if v.Kind() != KindObject {
			break
		}
		values := s.(*MapSchema).Values()
		for _, key := range v.Keys() {
			mv, _ := v.Field(key)
			if err := ValidateDefault(fieldName, values, mv); err != nil {
				return err
			}
		}
		return nil
	case TypeUnion:
		u := s.(*UnionSchema)
		if u.NumBranches() == 0 {
			break
		}
		return ValidateDefault(fieldName, u.branches[0], v)
	case TypeRecord:
		if v.Kind() != KindObject {
			break
		}
		rec := s.(*RecordSchema)
		for _, f := range rec.Fields() {
			fv, ok := v.Field(f.Name())
			if !ok {
				if !f.HasDefault() {
					return avro.NewTypeError("default for field %q omits %q, which has no default of its own", fieldName, f.Name())
				}
				fv = f.Default()
			}
			if err := ValidateDefault(f.Name(), f.Schema(), fv); err != nil {
				return err
			}
		}
		return nil
	}
	return avro.NewTypeError("invalid default for field %q: %s does not conform to schema type %s", fieldName, fragment(v), s.Type())
}
