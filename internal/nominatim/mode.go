// Package nominatim builds search requests against a Nominatim endpoint,
// fetches the response and selects the first candidate.
package nominatim

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mode selects the query and response shape of a search.
type Mode int

const (
	// Boundary asks for the administrative boundary polygon (jsonv2 array).
	Boundary Mode = iota
	// Position asks for the point coordinates (GeoJSON FeatureCollection).
	Position
)

// ParseMode converts a textual mode name. "layout" is accepted as an alias of boundary.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "boundary", "layout", "polygon":
		return Boundary, nil
	case "position", "point":
		return Position, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

func (m Mode) String() string {
	switch m {
	case Boundary:
		return "boundary"
	case Position:
		return "position"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// UnmarshalFlag implements flags.Unmarshaler.
func (m *Mode) UnmarshalFlag(value string) error {
	v, err := ParseMode(value)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// MarshalFlag implements flags.Marshaler.
func (m Mode) MarshalFlag() (string, error) {
	return m.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Mode) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return m.UnmarshalFlag(s)
}

// MarshalYAML implements yaml.Marshaler.
func (m Mode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}
