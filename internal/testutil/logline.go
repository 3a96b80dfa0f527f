package testutil

import (
	"strconv"
	"strings"
)

// logFields is a CloudFront real-time log line following config/cf_realtime_log_field_mappings.json
var logFields = [][2]string{
	{"timestamp", "1600000000.123"},
	{"c-ip", "192.0.2.1"},
	{"time-to-first-byte", "0.002"},
	{"sc-status", "200"},
	{"sc-bytes", "1234"},
	{"cs-method", "GET"},
	{"cs-protocol", "https"},
	{"cs-host", "d111111abcdef8.cloudfront.net"},
	{"cs-uri-stem", "/index.html"},
	{"cs-bytes", "78"},
	{"x-edge-location", "NRT57-C1"},
	{"x-edge-request-id", "Ab1Cd2Ef3Gh4Ij5Kl6Mn7Op8Qr9St0Uv"},
	{"x-host-header", "example.com"},
	{"time-taken", "0.003"},
	{"cs-protocol-version", "HTTP/2.0"},
	{"c-ip-version", "IPv4"},
	{"cs-user-agent", "curl/7.64.1"},
	{"cs-referer", "-"},
	{"cs-cookie", "-"},
	{"cs-uri-query", "-"},
	{"x-edge-response-result-type", "Hit"},
	{"x-forwarded-for", "-"},
	{"ssl-protocol", "TLSv1.3"},
	{"ssl-cipher", "TLS_AES_128_GCM_SHA256"},
	{"x-edge-result-type", "Hit"},
	{"fle-encrypted-fields", "-"},
	{"fle-status", "-"},
	{"sc-content-type", "text/html"},
	{"sc-content-len", "1024"},
	{"sc-range-start", "-"},
	{"sc-range-end", "-"},
	{"c-port", "50000"},
	{"x-edge-detailed-result-type", "Hit"},
	{"c-country", "JP"},
	{"cs-accept-encoding", "gzip"},
	{"cs-accept", "*/*"},
	{"cache-behavior-path-pattern", "*"},
	{"cs-headers", "Host:example.com%0AUser-Agent:curl/7.64.1%0A"},
	{"cs-header-names", "Host%0AUser-Agent%0A"},
	{"cs-headers-count", "2"},
}

// LogLine returns tab delimited CloudFront real-time log line. Values in replace override
// default values of the fields.
func LogLine(replace map[string]string) string {
	values := make([]string, len(logFields))
	for i, kv := range logFields {
		values[i] = kv[1]
		if v, ok := replace[kv[0]]; ok {
			values[i] = v
		}
	}
	return strings.Join(values, "\t")
}

// LogLines returns n log lines that have different sc-bytes (0 to n-1).
func LogLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = LogLine(map[string]string{"sc-bytes": strconv.Itoa(i)})
	}
	return lines
}
