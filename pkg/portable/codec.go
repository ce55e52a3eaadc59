package portable

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format names an export encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMermaid Format = "mermaid"
	FormatPNG     Format = "png"
)

// Formats lists every supported export format.
var Formats = []Format{FormatJSON, FormatYAML, FormatMermaid, FormatPNG}

// ParseFormat converts a string into a Format. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatJSON, nil
	}
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q", s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatMermaid:
		return "text/vnd.mermaid"
	case FormatPNG:
		return "image/png"
	default:
		return "application/json"
	}
}

// Extension returns the file extension used when writing the format to disk.
func (f Format) Extension() string {
	switch f {
	case FormatYAML:
		return ".yaml"
	case FormatMermaid:
		return ".mmd"
	case FormatPNG:
		return ".png"
	default:
		return ".json"
	}
}

// EncodeJSON writes the structural export: indented JSON with the portable field names.
func EncodeJSON(doc domain.Document) ([]byte, error) {
	doc = normalize(doc)
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return b, nil
}

// DecodeJSON parses a structural export. It does not validate.
func DecodeJSON(data []byte) (domain.Document, error) {
	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Document{}, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}
	return normalize(doc), nil
}

// EncodeYAML writes the document as YAML.
func EncodeYAML(doc domain.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(normalize(doc)); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeYAML parses a YAML document. It does not validate.
func DecodeYAML(data []byte) (domain.Document, error) {
	var doc domain.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.Document{}, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}
	return normalize(doc), nil
}

// Decode parses data in the given format. Only json and yaml are readable.
func Decode(f Format, data []byte) (domain.Document, error) {
	switch f {
	case FormatJSON:
		return DecodeJSON(data)
	case FormatYAML:
		return DecodeYAML(data)
	}
	return domain.Document{}, fmt.Errorf("format %q cannot be imported", f)
}

// normalize returns a copy whose slices are never nil, so exports always carry [] rather than null.
func normalize(doc domain.Document) domain.Document {
	return doc.Clone()
}
