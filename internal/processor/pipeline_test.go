package processor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/woozymasta/placefetch/internal/artifact"
	"github.com/woozymasta/placefetch/internal/config"
	"github.com/woozymasta/placefetch/internal/geo"
	"github.com/woozymasta/placefetch/internal/nominatim"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	payload nominatim.Payload
	err     error
	calls   atomic.Int32
}

func (f *fakeFetcher) Fetch(_ context.Context, _ nominatim.RequestSpec, mode nominatim.Mode) (nominatim.Payload, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nominatim.Payload{}, f.err
	}
	p := f.payload
	p.Mode = mode
	return p, nil
}

type memorySink struct {
	mu        sync.Mutex
	artifacts []*artifact.Artifact
	err       error
}

func (s *memorySink) Deliver(_ context.Context, a *artifact.Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.artifacts = append(s.artifacts, a)
	return nil
}

type memoryNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *memoryNotifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func newTestPipeline(f Fetcher) (*Pipeline, *memorySink, *memoryNotifier) {
	sink := &memorySink{}
	notifier := &memoryNotifier{}
	return New(config.Default(), f, sink, notifier), sink, notifier
}

func TestRun_EmptyQuery(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n"} {
		fetcher := &fakeFetcher{}
		p, sink, notifier := newTestPipeline(fetcher)

		a, err := p.Run(context.Background(), nominatim.Boundary, Input{Query: q})

		assert.Nil(t, a)
		assert.ErrorIs(t, err, nominatim.ErrEmptyQuery)
		assert.Zero(t, fetcher.calls.Load(), "fetcher must not be called")
		assert.Empty(t, sink.artifacts)
		assert.Equal(t, []string{config.DefaultEmptyQueryMessage}, notifier.messages)
	}
}

func TestRun_BoundarySuccess(t *testing.T) {
	fetcher := &fakeFetcher{payload: nominatim.Payload{
		Places: []geo.Record{{"id": 1.0}, {"id": 2.0}},
	}}
	p, sink, notifier := newTestPipeline(fetcher)

	a, err := p.Run(context.Background(), nominatim.Boundary, Input{Query: "Paris", Filename: " mytown.json "})

	require.NoError(t, err)
	assert.Equal(t, "mytown.json", a.Filename)
	assert.JSONEq(t, `{"id":1}`, string(a.Content))
	require.Len(t, sink.artifacts, 1)
	assert.Same(t, a, sink.artifacts[0])
	assert.Empty(t, notifier.messages)
}

func TestRun_PositionSuccess(t *testing.T) {
	fetcher := &fakeFetcher{payload: nominatim.Payload{
		Collection: geo.FeatureCollection{Features: []geo.Record{{"id": "a"}}},
	}}
	p, _, _ := newTestPipeline(fetcher)

	a, err := p.Run(context.Background(), nominatim.Position, Input{Query: "Paris", Filename: "  "})

	require.NoError(t, err)
	assert.Equal(t, artifact.DefaultFilename, a.Filename)
	assert.JSONEq(t, `{"id":"a"}`, string(a.Content))
}

func TestRun_NoResults(t *testing.T) {
	p, sink, notifier := newTestPipeline(&fakeFetcher{})

	_, err := p.Run(context.Background(), nominatim.Position, Input{Query: "Nowhere"})

	assert.ErrorIs(t, err, nominatim.ErrNoResults)
	assert.Empty(t, sink.artifacts)
	assert.Equal(t, []string{config.DefaultFailureMessage}, notifier.messages)
}

func TestRun_DeliveryFailureIsNotNotified(t *testing.T) {
	fetcher := &fakeFetcher{payload: nominatim.Payload{Places: []geo.Record{{"id": 1.0}}}}
	p, sink, notifier := newTestPipeline(fetcher)
	sink.err = errors.New("disk full")

	_, err := p.Run(context.Background(), nominatim.Boundary, Input{Query: "Paris"})

	assert.ErrorIs(t, err, ErrDelivery)
	assert.Empty(t, notifier.messages)
}

func TestRun_EndToEndBoundary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Paris", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`[{"name":"Paris","boundary":[[2.22,48.81],[2.46,48.90]]},{"name":"Paris, TX"}]`))
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Endpoint = server.URL
	sink := &memorySink{}
	notifier := &memoryNotifier{}
	p := New(cfg, nominatim.NewClient(0, ""), sink, notifier)

	a, err := p.Run(context.Background(), nominatim.Boundary, Input{Query: " Paris "})
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(a.Content, &got))
	assert.Equal(t, "Paris", got["name"])
	assert.Len(t, got["boundary"], 2)
	assert.Equal(t, artifact.DefaultFilename, a.Filename)
	assert.Empty(t, notifier.messages)
}

func TestRun_EndToEndServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Endpoint = server.URL
	sink := &memorySink{}
	notifier := &memoryNotifier{}
	p := New(cfg, nominatim.NewClient(0, ""), sink, notifier)

	a, err := p.Run(context.Background(), nominatim.Boundary, Input{Query: "Paris"})

	assert.Nil(t, a)
	var remoteErr *nominatim.RemoteRequestError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, 500, remoteErr.StatusCode)
	assert.Empty(t, sink.artifacts)
	assert.Equal(t, []string{config.DefaultFailureMessage}, notifier.messages)
}

func TestPipeline_With(t *testing.T) {
	p, sink, _ := newTestPipeline(&fakeFetcher{})
	other := &memorySink{}
	n := &memoryNotifier{}

	cp := p.With(other, n)

	assert.Same(t, sink, p.Sink)
	assert.Same(t, other, cp.Sink)
	assert.Same(t, n, cp.Notifier)
	assert.Equal(t, p.Endpoint, cp.Endpoint)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, outcomeRemoteFailed, outcome(&nominatim.RemoteRequestError{StatusCode: 503}))
	assert.Equal(t, outcomeTransport, outcome(&nominatim.TransportError{Err: errors.New("eof")}))
	assert.Equal(t, outcomeNoResults, outcome(nominatim.ErrNoResults))
	assert.Equal(t, outcomeError, outcome(errors.New("other")))
}
