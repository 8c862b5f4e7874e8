// Package processor runs the search pipeline: build the request, fetch,
// select the first candidate and deliver it as a file.
package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/woozymasta/placefetch/internal/artifact"
	"github.com/woozymasta/placefetch/internal/config"
	"github.com/woozymasta/placefetch/internal/nominatim"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrDelivery wraps failures of the artifact sink.
var ErrDelivery = errors.New("artifact delivery failed")

// Fetcher performs the remote search.
type Fetcher interface {
	Fetch(ctx context.Context, spec nominatim.RequestSpec, mode nominatim.Mode) (nominatim.Payload, error)
}

// Input is what the user typed.
type Input struct {
	Query    string
	Filename string
}

// Pipeline holds the collaborators of a run. It has no mutable state,
// so one value may serve concurrent runs.
type Pipeline struct {
	Fetcher         Fetcher
	Sink            artifact.Sink
	Notifier        Notifier
	Messages        config.Messages
	Endpoint        string
	DefaultFilename string
	Format          string
}

// New builds a pipeline from the configuration.
func New(cfg *config.Config, fetcher Fetcher, sink artifact.Sink, notifier Notifier) *Pipeline {
	return &Pipeline{
		Fetcher:         fetcher,
		Sink:            sink,
		Notifier:        notifier,
		Messages:        cfg.Messages,
		Endpoint:        cfg.Endpoint,
		DefaultFilename: cfg.DefaultFilename,
		Format:          cfg.Format,
	}
}

// With returns a copy bound to other delivery collaborators.
func (p *Pipeline) With(sink artifact.Sink, notifier Notifier) *Pipeline {
	cp := *p
	cp.Sink = sink
	cp.Notifier = notifier
	return &cp
}

// Run executes one search. Failures before delivery are logged and reported
// to the user with a single generic message.
func (p *Pipeline) Run(ctx context.Context, mode nominatim.Mode, in Input) (*artifact.Artifact, error) {
	logger := log.With().
		Str("run_id", uuid.NewString()).
		Str("mode", mode.String()).
		Logger()

	query := strings.TrimSpace(in.Query)
	if query == "" {
		logger.Warn().Msg("Rejected empty query")
		runsTotal.WithLabelValues(mode.String(), outcomeEmptyQuery).Inc()
		p.notify(p.Messages.EmptyQuery, config.DefaultEmptyQueryMessage)
		return nil, nominatim.ErrEmptyQuery
	}

	logger.Info().Str("query", query).Msg("Processing search")

	a, err := p.search(ctx, mode, in)
	if err != nil {
		logger.Error().Err(err).Str("query", query).Msg("Search failed")
		runsTotal.WithLabelValues(mode.String(), outcome(err)).Inc()
		p.notify(p.Messages.Failure, config.DefaultFailureMessage)
		return nil, err
	}

	if err := p.Sink.Deliver(ctx, a); err != nil {
		logger.Error().Err(err).Str("filename", a.Filename).Msg("Failed to deliver artifact")
		runsTotal.WithLabelValues(mode.String(), outcomeDeliverFailed).Inc()
		return nil, fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	logger.Info().
		Str("filename", a.Filename).
		Int("bytes", len(a.Content)).
		Msg("Search completed")
	runsTotal.WithLabelValues(mode.String(), outcomeSuccess).Inc()

	return a, nil
}

// search is the part of the chain whose errors are shown to the user.
func (p *Pipeline) search(ctx context.Context, mode nominatim.Mode, in Input) (*artifact.Artifact, error) {
	spec := nominatim.Build(p.Endpoint, mode, strings.TrimSpace(in.Query))

	start := time.Now()
	payload, err := p.Fetcher.Fetch(ctx, spec, mode)
	fetchDuration.WithLabelValues(mode.String()).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	record, err := nominatim.Select(payload)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("mode", mode.String()).
		Str("label", record.Label()).
		Msg("Selected first candidate")

	return artifact.New(record, in.Filename, p.DefaultFilename, p.Format)
}

func (p *Pipeline) notify(message, fallback string) {
	if p.Notifier == nil {
		return
	}
	if message == "" {
		message = fallback
	}
	p.Notifier.Notify(message)
}

func outcome(err error) string {
	switch {
	case errors.Is(err, nominatim.ErrRemoteRequestFailed):
		return outcomeRemoteFailed
	case errors.Is(err, nominatim.ErrTransport):
		return outcomeTransport
	case errors.Is(err, nominatim.ErrNoResults):
		return outcomeNoResults
	default:
		return outcomeError
	}
}
