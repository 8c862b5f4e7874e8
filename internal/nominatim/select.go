package nominatim

import "github.com/woozymasta/placefetch/internal/geo"

// Select returns the first candidate of the payload.
func Select(p Payload) (geo.Record, error) {
	candidates := p.Places
	if p.Mode == Position {
		candidates = p.Collection.Features
	}

	if len(candidates) == 0 {
		return nil, ErrNoResults
	}

	return candidates[0], nil
}
