// Package artifact serializes a selected record and delivers it as a named file.
package artifact

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/woozymasta/placefetch/internal/geo"

	"gopkg.in/yaml.v3"
)

// DefaultFilename is used when the user leaves the filename empty.
const DefaultFilename = "resultat.json"

// Serialization formats.
const (
	FormatJSON       = "json"
	FormatJSONIndent = "json-indent"
	FormatYAML       = "yaml"
)

// Artifact is a serialized record ready for delivery.
type Artifact struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ResolveFilename trims raw and falls back to fallback (or DefaultFilename) when empty.
// No extension is added.
func ResolveFilename(raw, fallback string) string {
	if name := strings.TrimSpace(raw); name != "" {
		return name
	}
	if name := strings.TrimSpace(fallback); name != "" {
		return name
	}

	return DefaultFilename
}

// New serializes record in the given format under the resolved filename.
func New(record geo.Record, filename, fallback, format string) (*Artifact, error) {
	content, err := Marshal(record, format)
	if err != nil {
		return nil, err
	}

	name := ResolveFilename(filename, fallback)

	return &Artifact{
		Filename:    name,
		ContentType: contentType(name, format),
		Content:     content,
	}, nil
}

// Marshal encodes record. An empty format means compact JSON.
func Marshal(record geo.Record, format string) ([]byte, error) {
	switch format {
	case "", FormatJSON:
		return json.Marshal(record)
	case FormatJSONIndent:
		return json.MarshalIndent(record, "", "  ")
	case FormatYAML:
		return yaml.Marshal(record)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// Unmarshal is the inverse of Marshal.
func Unmarshal(data []byte, format string) (geo.Record, error) {
	var record geo.Record
	var err error
	switch format {
	case "", FormatJSON, FormatJSONIndent:
		err = json.Unmarshal(data, &record)
	case FormatYAML:
		err = yaml.Unmarshal(data, &record)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, err
	}

	return record, nil
}

func contentType(filename, format string) string {
	if format == FormatYAML {
		return "application/yaml"
	}
	if strings.EqualFold(path.Ext(filename), ".geojson") {
		return "application/geo+json"
	}

	return "application/json"
}
