package nominatim

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Boundary(t *testing.T) {
	for _, q := range []string{"Paris", "Saint-Étienne", "New York City", "  x  "} {
		spec := Build("", Boundary, q)

		assert.Equal(t, DefaultEndpoint, spec.Endpoint)
		assert.Equal(t, map[string]string{
			"polygon_geojson": "1",
			"format":          "jsonv2",
			"q":               q,
		}, spec.Params())
	}
}

func TestBuild_Position(t *testing.T) {
	for _, q := range []string{"Paris", "Lyon 3e", "北京"} {
		spec := Build("", Position, q)

		assert.Equal(t, map[string]string{
			"polygon_geojson": "0",
			"format":          "geojson",
			"q":               q,
		}, spec.Params())
	}
}

func TestRequestSpec_ParamsIsCopy(t *testing.T) {
	spec := Build("", Boundary, "Paris")
	p := spec.Params()
	p["q"] = "Berlin"

	assert.Equal(t, "Paris", spec.Params()["q"])
}

func TestRequestSpec_URL(t *testing.T) {
	spec := Build("https://example.org/search.php?key=abc", Position, "Rue de Rivoli & Co")

	raw, err := spec.URL()
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "example.org", u.Host)
	assert.Equal(t, "/search.php", u.Path)
	assert.Equal(t, "abc", u.Query().Get("key"))
	assert.Equal(t, "Rue de Rivoli & Co", u.Query().Get("q"))
	assert.Equal(t, "geojson", u.Query().Get("format"))
	assert.Equal(t, "0", u.Query().Get("polygon_geojson"))
}

func TestRequestSpec_URLInvalidEndpoint(t *testing.T) {
	spec := Build("://bad", Boundary, "Paris")
	_, err := spec.URL()
	assert.Error(t, err)
}

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"boundary": Boundary,
		"Layout":   Boundary,
		" polygon": Boundary,
		"position": Position,
		"POINT":    Position,
	}
	for in, want := range cases {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMode("both")
	assert.Error(t, err)
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "boundary", Boundary.String())
	assert.Equal(t, "position", Position.String())
	assert.Equal(t, "mode(7)", Mode(7).String())
}
