package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"gopkg.in/yaml.v3"
)

// OutputFormat selects the serialization of a parsed record
type OutputFormat string

const (
	FORMAT_JSON OutputFormat = "json"
	FORMAT_YAML OutputFormat = "yaml"
)

func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FORMAT_JSON, nil
	case "yaml", "yml":
		return FORMAT_YAML, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

func (f OutputFormat) ContentType() string {
	if f == FORMAT_YAML {
		return "application/yaml"
	}
	return "application/json"
}

// Encode serializes v in the given format. JSON is written on a single line.
func Encode(v any, format OutputFormat) ([]byte, error) {
	switch format {
	case FORMAT_JSON:
		out, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize to JSON: %w", err)
		}
		return out, nil
	case FORMAT_YAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("failed to serialize to YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to serialize to YAML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// DecodePayload turns scanner output into text. UTF-8 input is kept as is,
// anything else is read as ISO 8859-1.
func DecodePayload(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode payload as latin-1: %w", err)
	}
	return string(decoded), nil
}

// UnescapeNewlines replaces literal "\n" sequences, as produced by scanners
// that emit the payload on one line, with real newlines.
func UnescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
