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
	avro "github.com/confluentinc/avro-go"
	"github.com/confluentinc/avro-go/schema"
)

// Get reads a datum's value with the static type T. The supported
// instantiations are the primitive Go representations plus the container
// pointers; anything else, or a datum of a different kind, is a
// TypeError.
func Get[T any](d *Datum) (T, error) {
	var zero T
	var err error
	switch p := any(&zero).(type) {
	case *bool:
		*p, err = d.Bool()
	case *int32:
		*p, err = d.Int()
	case *int64:
		*p, err = d.Long()
	case *float32:
		*p, err = d.Float()
	case *float64:
		*p, err = d.Double()
	case *[]byte:
		*p, err = d.Bytes()
	case *string:
		*p, err = d.Str()
	case **Record:
		*p, err = d.Record()
	case **Array:
		*p, err = d.Array()
	case **Map:
		*p, err = d.Map()
	case **Enum:
		*p, err = d.Enum()
	case **Fixed:
		*p, err = d.Fixed()
	default:
		err = avro.NewTypeError("unsupported value type %T", zero)
	}
	return zero, err
}

// Set writes a datum's value with the static type T; a mismatch with
// the datum's kind is a TypeError.
func Set[T any](d *Datum, v T) error {
	return setAny(d, v)
}

// setAny stores a dynamically-typed value, autoboxing plain Go ints onto
// whichever integer kind the datum holds.
func setAny(d *Datum, v interface{}) error {
	switch tv := v.(type) {
	case nil:
		r := d.resolve()
		if r == nil || r.Schema().Type() != schema.TypeNull {
			return avro.NewTypeError("cannot store nil in a datum of type %s", d.Type())
		}
		return nil
	case bool:
		return d.SetBool(tv)
	case int32:
		return d.SetInt(tv)
	case int64:
		return d.SetLong(tv)
	case int:
		if d.Type() == schema.TypeLong {
			return d.SetLong(int64(tv))
		}
		return d.SetInt(int32(tv))
	case float32:
		return d.SetFloat(tv)
	case float64:
		return d.SetDouble(tv)
	case []byte:
		if d.Type() == schema.TypeFixed {
			f, err := d.Fixed()
			if err != nil {
				return err
			}
			return f.SetBytes(tv)
		}
		return d.SetBytes(tv)
	case string:
		if d.Type() == schema.TypeEnum {
			e, err := d.Enum()
			if err != nil {
				return err
			}
			return e.SetSymbol(tv)
		}
		return d.SetString(tv)
	case *Datum:
		return avro.NewTypeError("cannot store a datum inside a datum; use the container API")
	}
	return avro.NewTypeError("unsupported value type %T", v)
}
