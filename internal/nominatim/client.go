package nominatim

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/woozymasta/placefetch/internal/geo"

	"github.com/rs/zerolog/log"
)

// DefaultUserAgent identifies the client, the public endpoint rejects anonymous requests.
const DefaultUserAgent = "placefetch/1.0 (+https://github.com/woozymasta/placefetch)"

// Payload is a decoded search response. Places is set in Boundary mode,
// Collection in Position mode.
type Payload struct {
	Collection geo.FeatureCollection
	Places     []geo.Record
	Mode       Mode
}

// Client performs search requests.
type Client struct {
	HTTP      *http.Client
	UserAgent string
}

// NewClient returns a client with the given timeout, zero means no timeout.
func NewClient(timeout time.Duration, userAgent string) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		HTTP:      &http.Client{Timeout: timeout},
		UserAgent: userAgent,
	}
}

// Fetch issues a single GET for spec and decodes the body according to mode.
// There is no retry.
func (c *Client) Fetch(ctx context.Context, spec RequestSpec, mode Mode) (Payload, error) {
	target, err := spec.URL()
	if err != nil {
		return Payload{}, &TransportError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Payload{}, &TransportError{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.UserAgent)

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	log.Debug().
		Str("mode", mode.String()).
		Str("url", target).
		Msg("Sending search request")

	resp, err := client.Do(req)
	if err != nil {
		return Payload{}, &TransportError{Err: err}
	}
	// Explicitly ignore close error as it's a read-only operation
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Payload{}, &RemoteRequestError{StatusCode: resp.StatusCode}
	}

	payload := Payload{Mode: mode}
	dec := json.NewDecoder(resp.Body)
	if mode == Position {
		err = dec.Decode(&payload.Collection)
	} else {
		err = dec.Decode(&payload.Places)
	}
	if err != nil {
		return Payload{}, &TransportError{Err: err}
	}

	return payload, nil
}
