package transform

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/m-mizutani/cflogs/pkg/models"
)

const (
	// MeasureField is byte count sent to viewer. It becomes measure of DataPoint.
	MeasureField = "sc-bytes"
	// MeasureName is name of the measure in Timestream table.
	MeasureName = "sc_bytes"
	// TimeField is unix time (seconds, with millisecond fraction) of the request.
	TimeField = "timestamp"
)

// DimensionName replaces dash with underscore to adhere to Timestream naming requirements.
func DimensionName(field string) string {
	return strings.ReplaceAll(field, "-", "_")
}

// Shape builds DataPoint from typed fields. All fields become dimensions in field order.
func Shape(fields *models.TypedFields) (*models.DataPoint, error) {
	measure, ok := fields.Get(MeasureField)
	if !ok {
		return nil, models.NewPipelineError(models.SchemaMismatchError, "Measure field '%s' is not found", MeasureField)
	}
	ts, ok := fields.Get(TimeField)
	if !ok {
		return nil, models.NewPipelineError(models.SchemaMismatchError, "Time field '%s' is not found", TimeField)
	}

	timeValue, err := toUnixSeconds(ts)
	if err != nil {
		return nil, err
	}

	dims := make([]models.Dimension, 0, fields.Len())
	seen := make(map[string]string, fields.Len())
	var dimErr error
	fields.Each(func(name string, value interface{}) {
		if dimErr != nil {
			return
		}

		dimName := DimensionName(name)
		if other, ok := seen[dimName]; ok {
			dimErr = models.NewPipelineError(models.SchemaMismatchError,
				"Dimension name '%s' collides between '%s' and '%s'", dimName, other, name)
			return
		}
		seen[dimName] = name

		dims = append(dims, models.Dimension{
			Name:  dimName,
			Value: FormatValue(value),
		})
	})
	if dimErr != nil {
		return nil, dimErr
	}

	return &models.DataPoint{
		Dimensions:       dims,
		MeasureName:      MeasureName,
		MeasureValue:     FormatValue(measure),
		MeasureValueType: models.MeasureValueTypeBigint,
		Time:             timeValue,
		TimeUnit:         models.TimeUnitSeconds,
	}, nil
}

func toUnixSeconds(v interface{}) (string, error) {
	switch t := v.(type) {
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return "", models.NewPipelineError(models.TypeConversionError, "Time field '%s' is not finite: %v", TimeField, t)
		}
		// float64(math.MaxInt64) is 2^63 and not representable as int64
		if t < math.MinInt64 || t >= math.MaxInt64 {
			return "", models.NewPipelineError(models.TypeConversionError, "Time field '%s' is out of int64 range: %v", TimeField, t)
		}
		return strconv.FormatInt(int64(t), 10), nil
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return "", models.WrapPipelineError(models.TypeConversionError, err, "Time field '%s' is not integer: '%s'", TimeField, t)
		}
		return strconv.FormatInt(n, 10), nil
	default:
		return "", models.NewPipelineError(models.TypeConversionError, "Unsupported type of time field: %T", v)
	}
}

// FormatValue stringifies typed value. float64 keeps a decimal point ("1.0") and switches to
// exponent notation for very large or small values, same as log analysis tools show them.
func FormatValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return formatFloat(t)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	exp := strconv.FormatFloat(f, 'e', -1, 64)
	if f != 0 {
		e, err := strconv.Atoi(exp[strings.IndexByte(exp, 'e')+1:])
		if err == nil && (e < -4 || 16 <= e) {
			return exp
		}
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
