package transform

import (
	"encoding/base64"
	"strings"
	"unicode"

	"github.com/m-mizutani/cflogs/pkg/models"
)

const fieldDelimiter = "\t"

// DecodeFunc converts one transport payload to raw tokens of a log line.
type DecodeFunc func(data []byte) ([]string, error)

// DecodeRecord decodes base64 text of a Kinesis record and splits the log line.
func DecodeRecord(data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, models.NewPipelineError(models.DecodeError, "Empty record payload")
	}

	payload := make([]byte, base64.StdEncoding.DecodedLen(len(data)))
	n, err := base64.StdEncoding.Decode(payload, data)
	if err != nil {
		return nil, models.WrapPipelineError(models.DecodeError, err, "Failed to decode base64 payload")
	}

	return SplitPayload(payload[:n])
}

// SplitPayload converts bytes to text one byte per character (ISO-8859-1) and splits it
// by tab after trimming the whole line. Multi-byte characters are not decoded.
func SplitPayload(payload []byte) ([]string, error) {
	if len(payload) == 0 {
		return nil, models.NewPipelineError(models.DecodeError, "Empty log line")
	}

	line := trimSpace(latin1ToString(payload))
	return strings.Split(line, fieldDelimiter), nil
}

func latin1ToString(b []byte) string {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}

// isLineSpace includes information separators (0x1c-0x1f) that are treated as whitespace
// by log shipping side in addition to unicode.IsSpace.
func isLineSpace(r rune) bool {
	return unicode.IsSpace(r) || (0x1c <= r && r <= 0x1f)
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isLineSpace)
}
