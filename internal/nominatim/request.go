package nominatim

import (
	"net/url"
	"strings"
)

// DefaultEndpoint is the public OpenStreetMap search endpoint.
const DefaultEndpoint = "https://nominatim.openstreetmap.org/search.php"

// RequestSpec is a fully specified search request before execution.
type RequestSpec struct {
	Endpoint string
	params   url.Values
}

// Build returns the request for mode and query. It performs no validation,
// callers reject empty queries beforehand.
func Build(endpoint string, mode Mode, query string) RequestSpec {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	params := url.Values{}
	params.Set("q", query)
	switch mode {
	case Position:
		params.Set("polygon_geojson", "0")
		params.Set("format", "geojson")
	default:
		params.Set("polygon_geojson", "1")
		params.Set("format", "jsonv2")
	}

	return RequestSpec{Endpoint: endpoint, params: params}
}

// Params returns a copy of the query parameters.
func (r RequestSpec) Params() map[string]string {
	out := make(map[string]string, len(r.params))
	for k := range r.params {
		out[k] = r.params.Get(k)
	}
	return out
}

// URL returns the endpoint with the parameters encoded as a query string.
// Parameters already present on the endpoint are kept unless overridden.
func (r RequestSpec) URL() (string, error) {
	u, err := url.Parse(r.Endpoint)
	if err != nil {
		return "", err
	}

	q := u.Query()
	for k, v := range r.params {
		q[k] = append([]string(nil), v...)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Query returns the free text part of the request.
func (r RequestSpec) Query() string {
	return strings.TrimSpace(r.params.Get("q"))
}
