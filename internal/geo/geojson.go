// Package geo holds the loosely typed geographic records returned by the search service.
package geo

// Record is a single search candidate. Its shape is owned by the remote
// service, so it is kept as a generic JSON object.
type Record map[string]interface{}

// FeatureCollection represents a GeoJSON collection of candidate features.
type FeatureCollection struct {
	Type     string   `json:"type" yaml:"type"`
	Features []Record `json:"features" yaml:"features"`
}

// Label returns a human readable name for logging, or an empty string.
func (r Record) Label() string {
	if s, ok := r["display_name"].(string); ok && s != "" {
		return s
	}
	if s, ok := r["name"].(string); ok && s != "" {
		return s
	}
	// GeoJSON features carry the name in properties
	if props, ok := r["properties"].(map[string]interface{}); ok {
		if s, ok := props["display_name"].(string); ok {
			return s
		}
	}

	return ""
}
