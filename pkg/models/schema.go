package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// FieldType is declared scalar type of a real-time log field.
type FieldType string

const (
	FieldString FieldType = "str"
	FieldInt    FieldType = "int"
	FieldFloat  FieldType = "float"
)

// schemaWrapperKey is top level key of field mapping file deployed with the log processor.
const schemaWrapperKey = "cf_realtime_log_fields"

// ParseFieldType converts a type name in the mapping file to FieldType.
func ParseFieldType(s string) (FieldType, error) {
	switch FieldType(s) {
	case FieldString, FieldInt, FieldFloat:
		return FieldType(s), nil
	default:
		return "", fmt.Errorf("Unsupported field type: '%s'", s)
	}
}

// FieldDef is one entry of FieldSchema.
type FieldDef struct {
	Name string
	Type FieldType
}

// FieldSchema is ordered declaration of tab-delimited log fields. The order is positional
// contract with tokens of a log line. FieldSchema must not be modified after creation.
type FieldSchema struct {
	fields []FieldDef
}

// NewFieldSchema validates definitions and creates FieldSchema.
func NewFieldSchema(defs ...FieldDef) (*FieldSchema, error) {
	if len(defs) == 0 {
		return nil, errors.New("Field schema has no field")
	}

	seen := map[string]struct{}{}
	fields := make([]FieldDef, len(defs))
	for i, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("Empty field name at #%d", i)
		}
		if _, ok := seen[def.Name]; ok {
			return nil, fmt.Errorf("Duplicated field name: %s", def.Name)
		}
		if _, err := ParseFieldType(string(def.Type)); err != nil {
			return nil, errors.Wrapf(err, "Invalid type of field %s", def.Name)
		}

		seen[def.Name] = struct{}{}
		fields[i] = def
	}

	return &FieldSchema{fields: fields}, nil
}

// Len returns number of fields
func (x *FieldSchema) Len() int { return len(x.fields) }

// Fields returns copy of field definitions in declared order.
func (x *FieldSchema) Fields() []FieldDef {
	out := make([]FieldDef, len(x.fields))
	copy(out, x.fields)
	return out
}

// Names returns field names in declared order.
func (x *FieldSchema) Names() []string {
	names := make([]string, len(x.fields))
	for i, f := range x.fields {
		names[i] = f.Name
	}
	return names
}

// ParseFieldSchema decodes JSON field mapping. Both of bare object ({"timestamp": "float", ...})
// and wrapped object ({"cf_realtime_log_fields": {...}}) are acceptable. Key order of the JSON
// object is kept as field order.
func ParseFieldSchema(raw []byte) (*FieldSchema, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, errors.Wrap(err, "Failed to parse field schema")
	}

	body := raw
	if wrapped, ok := top[schemaWrapperKey]; ok {
		body = wrapped
	}

	defs, err := decodeOrderedFields(body)
	if err != nil {
		return nil, err
	}

	return NewFieldSchema(defs...)
}

// decodeOrderedFields reads a flat JSON object token by token because map decoding drops key order.
func decodeOrderedFields(raw []byte) ([]FieldDef, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read field schema")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("Field schema must be JSON object, but got %v", tok)
	}

	var defs []FieldDef
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrap(err, "Failed to read field name")
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("Invalid field name: %v", keyTok)
		}

		var typeName string
		if err := dec.Decode(&typeName); err != nil {
			return nil, errors.Wrapf(err, "Type of field %s must be string", name)
		}

		fieldType, err := ParseFieldType(typeName)
		if err != nil {
			return nil, errors.Wrapf(err, "Invalid type of field %s", name)
		}

		defs = append(defs, FieldDef{Name: name, Type: fieldType})
	}

	if _, err := dec.Token(); err != nil {
		return nil, errors.Wrap(err, "Field schema is not closed")
	}

	return defs, nil
}
