package transform

import (
	"strings"

	"github.com/m-mizutani/cflogs/pkg/models"
)

// Header is one entry of cs-headers
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RequestHeaders is parsed content of header fields that are stripped from dimensions.
type RequestHeaders struct {
	Headers []Header `json:"headers,omitempty"`
	Names   []string `json:"names,omitempty"`
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// unquote decodes each valid %XX escape and keeps malformed ones as they are.
// Invalid UTF-8 byte sequences become U+FFFD.
func unquote(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}

	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) {
			hi, ok1 := unhex(s[i+1])
			lo, ok2 := unhex(s[i+2])
			if ok1 && ok2 {
				buf = append(buf, hi<<4|lo)
				i += 2
				continue
			}
		}
		buf = append(buf, s[i])
	}

	return strings.ToValidUTF8(string(buf), "\uFFFD")
}

func unescapeHeaders(blob string) []string {
	var lines []string
	for _, line := range strings.Split(unquote(blob), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// ParseHeaders parses URL encoded cs-headers field. Lines without colon are skipped.
func ParseHeaders(blob string) []Header {
	var headers []Header
	for _, line := range unescapeHeaders(blob) {
		kv := strings.SplitN(line, ":", 2)
		if len(kv) != 2 {
			continue
		}
		headers = append(headers, Header{Name: kv[0], Value: kv[1]})
	}
	return headers
}

// ParseHeaderNames parses URL encoded cs-header-names field.
func ParseHeaderNames(blob string) []string {
	return unescapeHeaders(blob)
}

func headerBlob(fields *models.TypedFields, name string) (string, bool) {
	v, ok := fields.Get(name)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == Sentinel {
		return "", false
	}
	return s, true
}

// ExtractHeaders parses header fields of typed fields. Missing fields and sentinel values are skipped.
func ExtractHeaders(fields *models.TypedFields) *RequestHeaders {
	var hdr RequestHeaders
	if blob, ok := headerBlob(fields, FieldHeaders); ok {
		hdr.Headers = ParseHeaders(blob)
	}
	if blob, ok := headerBlob(fields, FieldHeaderNames); ok {
		hdr.Names = ParseHeaderNames(blob)
	}
	return &hdr
}

// StripHeaders removes header fields from typed fields.
func StripHeaders(fields *models.TypedFields) {
	for _, name := range strippedFields {
		fields.Delete(name)
	}
}
