package transform

import (
	"strconv"

	"github.com/m-mizutani/cflogs/pkg/models"
)

// Sentinel means the value is not present in the log line.
const Sentinel = "-"

// Header fields contain newline-delimited sub records. They are not stored as dimensions.
const (
	FieldHeaders     = "cs-headers"
	FieldHeaderNames = "cs-header-names"
)

var strippedFields = []string{FieldHeaders, FieldHeaderNames}

// TypeFields converts tokens to typed values by schema and removes header fields.
func TypeFields(tokens []string, schema *models.FieldSchema) (*models.TypedFields, error) {
	fields, err := TypeAllFields(tokens, schema)
	if err != nil {
		return nil, err
	}

	StripHeaders(fields)
	return fields, nil
}

// TypeAllFields converts tokens to typed values by schema. tokens[i] is mapped to i-th field
// of the schema and extra tokens are ignored.
func TypeAllFields(tokens []string, schema *models.FieldSchema) (*models.TypedFields, error) {
	fields := models.NewTypedFields()

	for i, def := range schema.Fields() {
		if len(tokens) <= i {
			return nil, models.NewPipelineError(models.SchemaMismatchError,
				"Log line has %d fields, but field schema requires %d (missing '%s')",
				len(tokens), schema.Len(), def.Name)
		}

		v, err := typeToken(trimSpace(tokens[i]), def)
		if err != nil {
			return nil, err
		}
		fields.Set(def.Name, v)
	}

	return fields, nil
}

func typeToken(token string, def models.FieldDef) (interface{}, error) {
	if token == Sentinel {
		return token, nil
	}

	switch def.Type {
	case models.FieldInt:
		v, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return nil, models.WrapPipelineError(models.TypeConversionError, err,
				"Field '%s' is declared as int, but got '%s'", def.Name, token)
		}
		return v, nil

	case models.FieldFloat:
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, models.WrapPipelineError(models.TypeConversionError, err,
				"Field '%s' is declared as float, but got '%s'", def.Name, token)
		}
		return v, nil

	default:
		return token, nil
	}
}
