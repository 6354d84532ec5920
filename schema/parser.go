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
	"strconv"

	"go.uber.org/zap"

	avro "github.com/confluentinc/avro-go"
)

// reservedKeys are consumed by the parser on schema objects; every other
// key is preserved verbatim as an attribute.
var reservedKeys = map[string]bool{
	"type":      true,
	"name":      true,
	"namespace": true,
	"doc":       true,
	"fields":    true,
	"items":     true,
	"size":      true,
	"symbols":   true,
	"values":    true,
	"aliases":   true,
	"default":   true,
}

// reservedFieldKeys are consumed by the parser on field objects.
var reservedFieldKeys = map[string]bool{
	"name":    true,
	"type":    true,
	"doc":     true,
	"default": true,
	"order":   true,
	"aliases": true,
}

// ParserConfig holds the tunables of a Parser.
type ParserConfig struct {
	// MaxDepth bounds schema nesting, as a guard against runaway
	// recursion on adversarial input.
	MaxDepth int
	// ValidateDefaults controls whether field defaults are checked
	// against their field's schema.
	ValidateDefaults bool
	// Logger receives debug events for named-schema registration and
	// namespace scoping.
	Logger *zap.Logger
}

// NewParserConfig returns the default parser configuration.
func NewParserConfig() *ParserConfig {
	return &ParserConfig{
		MaxDepth:         256,
		ValidateDefaults: true,
		Logger:           zap.NewNop(),
	}
}

// ParserOption customizes a Parser.
type ParserOption func(*ParserConfig)

// WithLogger routes parser debug events to the given logger.
func WithLogger(logger *zap.Logger) ParserOption {
	return func(c *ParserConfig) {
		c.Logger = logger
	}
}

// WithMaxDepth overrides the nesting bound.
func WithMaxDepth(depth int) ParserOption {
	return func(c *ParserConfig) {
		c.MaxDepth = depth
	}
}

// WithoutDefaultValidation turns off default-value checking.
func WithoutDefaultValidation() ParserOption {
	return func(c *ParserConfig) {
		c.ValidateDefaults = false
	}
}

// Parser turns schema JSON into Schema trees. Named schemas from every
// parse stay registered in the parser's table, so a later parse may
// refer to them by name. A Parser is bound to a single goroutine.
type Parser struct {
	table *SchemaTable
	conf  *ParserConfig
}

// NewParser creates a Parser with a fresh SchemaTable.
func NewParser(opts ...ParserOption) *Parser {
	return NewParserWithTable(NewSchemaTable(), opts...)
}

// NewParserWithTable creates a Parser over an existing table, so named
// schemas registered by earlier parses resolve.
func NewParserWithTable(table *SchemaTable, opts ...ParserOption) *Parser {
	conf := NewParserConfig()
	for _, opt := range opts {
		opt(conf)
	}
	return &Parser{table: table, conf: conf}
}

// Table exposes the parser's schema table.
func (p *Parser) Table() *SchemaTable {
	return p.table
}

// Parse parses schema JSON text.
func (p *Parser) Parse(text string) (Schema, error) {
	return p.ParseBytes([]byte(text))
}

// ParseBytes parses schema JSON text.
func (p *Parser) ParseBytes(data []byte) (Schema, error) {
	v, err := ParseValue(data)
	if err != nil {
		return nil, err
	}
	return p.ParseValue(v)
}

// ParseValue parses a pre-parsed JSON tree.
func (p *Parser) ParseValue(v Value) (Schema, error) {
	return p.parse(v, 0)
}

// Parse parses schema JSON with a one-shot parser and default options.
func Parse(text string) (Schema, error) {
	return NewParser().Parse(text)
}

// MustParse is Parse, panicking on error. Intended for schema literals.
func MustParse(text string) Schema {
	s, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return s
}

func (p *Parser) parse(v Value, depth int) (Schema, error) {
	if depth > p.conf.MaxDepth {
		return nil, avro.NewSchemaParseError("schema nesting exceeds %d levels", p.conf.MaxDepth)
	}
	switch v.Kind() {
	case KindString:
		name := v.Str()
		s, ok := p.table.Lookup(name)
		if !ok {
			return nil, avro.NewSchemaParseError("unknown type reference %q", name)
		}
		return s, nil
	case KindArray:
		branches := make([]Schema, 0, v.Len())
		for _, item := range v.Items() {
			b, err := p.parse(item, depth+1)
			if err != nil {
				return nil, err
			}
			branches = append(branches, b)
		}
		return NewUnionSchema(branches)
	case KindObject:
		return p.parseObject(v, depth)
	}
	return nil, avro.NewSchemaParseError("schema must be a string, array or object, got %s", fragment(v))
}

func (p *Parser) parseObject(v Value, depth int) (Schema, error) {
	typeStr, err := requireString(v, "type")
	if err != nil {
		return nil, err
	}
	if prim, ok := PrimitiveTypeByName(typeStr); ok {
		s := MustPrimitive(prim)
		applyAttributes(s.Attributes(), v, reservedKeys)
		return s, nil
	}
	switch typeStr {
	case "record", "error":
		return p.parseRecord(v, typeStr == "error", depth)
	case "enum":
		return p.parseEnum(v)
	case "array":
		items, ok := v.Field("items")
		if !ok {
			return nil, avro.NewSchemaParseError("array schema missing \"items\": %s", fragment(v))
		}
		elem, err := p.parse(items, depth+1)
		if err != nil {
			return nil, err
		}
		s := NewArraySchema(elem)
		applyAttributes(s.Attributes(), v, reservedKeys)
		return s, nil
	case "map":
		values, ok := v.Field("values")
		if !ok {
			return nil, avro.NewSchemaParseError("map schema missing \"values\": %s", fragment(v))
		}
		val, err := p.parse(values, depth+1)
		if err != nil {
			return nil, err
		}
		s := NewMapSchema(val)
		applyAttributes(s.Attributes(), v, reservedKeys)
		return s, nil
	case "fixed":
		return p.parseFixed(v)
	}
	// Not a keyword: maybe a reference to a name in the default
	// namespace.
	if s, ok := p.table.Lookup(typeStr); ok {
		return s, nil
	}
	return nil, avro.NewSchemaParseError("unknown type %q in %s", typeStr, fragment(v))
}

// parseName assembles the qualified name of a record/enum/fixed object:
// an explicit namespace key overrides the enclosing default, and a
// dotted name overrides both.
func (p *Parser) parseName(v Value) (Name, error) {
	nameStr, err := requireString(v, "name")
	if err != nil {
		return Name{}, err
	}
	enclosing := p.table.DefaultNamespace()
	if nsVal, ok := v.Field("namespace"); ok {
		if nsVal.Kind() != KindString {
			return Name{}, avro.NewSchemaParseError("\"namespace\" must be a string in %s", fragment(v))
		}
		enclosing = nsVal.Str()
	}
	return NewNameFromFull(nameStr, enclosing)
}

func (p *Parser) parseRecord(v Value, isError bool, depth int) (Schema, error) {
	name, err := p.parseName(v)
	if err != nil {
		return nil, err
	}
	var opts []RecordOption
	if doc, ok := v.Field("doc"); ok && doc.Kind() == KindString {
		opts = append(opts, WithRecordDoc(doc.Str()))
	}
	if isError {
		opts = append(opts, AsError())
	}
	rec := NewRecordSchema(name, opts...)

	// Register before the fields are parsed so the record can refer to
	// itself.
	if err := p.table.Register(rec); err != nil {
		return nil, err
	}
	p.conf.Logger.Debug("registered named schema",
		zap.String("fullname", rec.Fullname()),
		zap.String("kind", "record"))

	p.table.PushDefaultNamespace(name.Namespace())
	p.conf.Logger.Debug("entered namespace scope",
		zap.String("namespace", name.Namespace()))
	defer p.table.PopDefaultNamespace()

	fieldsVal, ok := v.Field("fields")
	if !ok || fieldsVal.Kind() != KindArray {
		return nil, avro.NewSchemaParseError("record %q missing \"fields\" array", rec.Fullname())
	}
	fields := make([]*Field, 0, fieldsVal.Len())
	for _, fv := range fieldsVal.Items() {
		f, err := p.parseField(fv, depth)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	if err := rec.SetFields(fields); err != nil {
		return nil, err
	}
	if err := p.registerAliases(v, rec); err != nil {
		return nil, err
	}
	applyAttributes(rec.Attributes(), v, reservedKeys)
	return rec, nil
}

func (p *Parser) parseField(v Value, depth int) (*Field, error) {
	if v.Kind() != KindObject {
		return nil, avro.NewSchemaParseError("record field must be an object, got %s", fragment(v))
	}
	name, err := requireString(v, "name")
	if err != nil {
		return nil, err
	}
	typeVal, ok := v.Field("type")
	if !ok {
		return nil, avro.NewSchemaParseError("field %q missing \"type\"", name)
	}
	// A plain string type must resolve to an already-defined name;
	// forward references work only through named schemas.
	fschema, err := p.parse(typeVal, depth+1)
	if err != nil {
		return nil, err
	}
	var opts []FieldOption
	if doc, ok := v.Field("doc"); ok && doc.Kind() == KindString {
		opts = append(opts, WithDoc(doc.Str()))
	}
	if dv, ok := v.Field("default"); ok {
		opts = append(opts, WithDefault(coerceDefault(fschema, dv)))
	}
	if ov, ok := v.Field("order"); ok {
		if ov.Kind() != KindString {
			return nil, avro.NewSchemaParseError("field %q \"order\" must be a string", name)
		}
		order, err := ParseOrder(ov.Str())
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithOrder(order))
	}
	if av, ok := v.Field("aliases"); ok {
		aliases, err := stringArray(av)
		if err != nil {
			return nil, avro.NewSchemaParseError("field %q \"aliases\" must be an array of strings", name)
		}
		opts = append(opts, WithAliases(aliases...))
	}
	f, err := NewField(name, fschema, opts...)
	if err != nil {
		return nil, err
	}
	applyAttributes(f.Attributes(), v, reservedFieldKeys)
	if p.conf.ValidateDefaults && f.HasDefault() {
		if err := ValidateDefault(name, fschema, f.Default()); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (p *Parser) parseEnum(v Value) (Schema, error) {
	name, err := p.parseName(v)
	if err != nil {
		return nil, err
	}
	symsVal, ok := v.Field("symbols")
	if !ok {
		return nil, avro.NewSchemaParseError("enum %q missing \"symbols\"", name.Fullname())
	}
	symbols, err := stringArray(symsVal)
	if err != nil {
		return nil, avro.NewSchemaParseError("enum %q \"symbols\" must be an array of strings", name.Fullname())
	}
	var opts []EnumOption
	if doc, ok := v.Field("doc"); ok && doc.Kind() == KindString {
		opts = append(opts, WithEnumDoc(doc.Str()))
	}
	if dv, ok := v.Field("default"); ok {
		if dv.Kind() != KindString {
			return nil, avro.NewSchemaParseError("enum %q \"default\" must be a string", name.Fullname())
		}
		opts = append(opts, WithEnumDefault(dv.Str()))
	}
	enum, err := NewEnumSchema(name, symbols, opts...)
	if err != nil {
		return nil, err
	}
	if err := p.table.Register(enum); err != nil {
		return nil, err
	}
	p.conf.Logger.Debug("registered named schema",
		zap.String("fullname", enum.Fullname()),
		zap.String("kind", "enum"))
	if err := p.registerAliases(v, enum); err != nil {
		return nil, err
	}
	applyAttributes(enum.Attributes(), v, reservedKeys)
	return enum, nil
}

func (p *Parser) parseFixed(v Value) (Schema, error) {
	name, err := p.parseName(v)
	if err != nil {
		return nil, err
	}
	sizeVal, ok := v.Field("size")
	if !ok || sizeVal.Kind() != KindLong {
		return nil, avro.NewSchemaParseError("fixed %q missing integer \"size\"", name.Fullname())
	}
	var opts []FixedOption
	if doc, ok := v.Field("doc"); ok && doc.Kind() == KindString {
		opts = append(opts, WithFixedDoc(doc.Str()))
	}
	fixed, err := NewFixedSchema(name, int(sizeVal.Long()), opts...)
	if err != nil {
		return nil, err
	}
	if err := p.table.Register(fixed); err != nil {
		return nil, err
	}
	p.conf.Logger.Debug("registered named schema",
		zap.String("fullname", fixed.Fullname()),
		zap.String("kind", "fixed"))
	if err := p.registerAliases(v, fixed); err != nil {
		return nil, err
	}
	applyAttributes(fixed.Attributes(), v, reservedKeys)
	return fixed, nil
}

// aliasAdder is the alias surface shared by the named schema kinds.
type aliasAdder interface {
	NamedSchema
	AddAlias(Name)
}

// registerAliases reads an optional "aliases" array and attaches each
// name, qualified with the schema's own namespace unless it already
// contains a dot.
func (p *Parser) registerAliases(v Value, s aliasAdder) error {
	av, ok := v.Field("aliases")
	if !ok {
		return nil
	}
	aliases, err := stringArray(av)
	if err != nil {
		return avro.NewSchemaParseError("%q \"aliases\" must be an array of strings", s.Fullname())
	}
	for _, alias := range aliases {
		qualified, err := NewNameFromFull(alias, s.Name().Namespace())
		if err != nil {
			return err
		}
		s.AddAlias(qualified)
		if err := p.table.RegisterAlias(qualified, s); err != nil {
			return err
		}
	}
	return nil
}

// coerceDefault turns a string default into a number when the field's
// schema calls for a float or double (the first union branch decides for
// unions). Anything else passes through untouched.
func coerceDefault(s Schema, v Value) Value {
	if v.Kind() != KindString {
		return v
	}
	target := s
	if u, ok := s.(*UnionSchema); ok && u.NumBranches() > 0 {
		target = u.branches[0]
	}
	if t := target.Type(); t != TypeFloat && t != TypeDouble {
		return v
	}
	d, err := strconv.ParseFloat(v.Str(), 64)
	if err != nil {
		return v
	}
	return DoubleVal(d)
}

func requireString(v Value, key string) (string, error) {
	sv, ok := v.Field(key)
	if !ok {
		return "", avro.NewSchemaParseError("missing %q in %s", key, fragment(v))
	}
	if sv.Kind() != KindString {
		return "", avro.NewSchemaParseError("%q must be a string in %s", key, fragment(v))
	}
	return sv.Str(), nil
}

func stringArray(v Value) ([]string, error) {
	if v.Kind() != KindArray {
		return nil, avro.NewSchemaParseError("expected array of strings, got %s", fragment(v))
	}
	out := make([]string, 0, v.Len())
	for _, item := range v.Items() {
		if item.Kind() != KindString {
			return nil, avro.NewSchemaParseError("expected array of strings, got %s", fragment(v))
		}
		out = append(out, item.Str())
	}
	return out, nil
}

func applyAttributes(attrs *Attributes, v Value, reserved map[string]bool) {
	for _, key := range v.Keys() {
		if reserved[key] {
			continue
		}
		val, _ := v.Field(key)
		attrs.Set(key, val)
	}
}

// fragment renders a JSON value for error messages, truncated so a
// pathological schema cannot flood them.
func fragment(v Value) string {
	s := v.String()
	if len(s) > 120 {
		s = s[:117] + "..."
	}
	return s
}
