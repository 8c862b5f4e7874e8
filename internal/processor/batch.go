package processor

import (
	"context"
	"sync/atomic"

	"github.com/woozymasta/placefetch/internal/config"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// RunJobs processes jobs concurrently and returns the number of failed jobs.
// Each job is an independent run, a failure never stops the others.
func (p *Pipeline) RunJobs(ctx context.Context, jobs []config.Job, concurrency int) int {
	if concurrency <= 0 {
		concurrency = 1
	}

	var failed atomic.Int32
	g := new(errgroup.Group)
	g.SetLimit(concurrency)

	for _, job := range jobs {
		g.Go(func() error {
			if _, err := p.Run(ctx, job.Mode, Input{Query: job.Query, Filename: job.Filename}); err != nil {
				failed.Add(1)
			}
			return nil
		})
	}

	// goroutines never return an error
	_ = g.Wait()

	n := int(failed.Load())
	log.Info().
		Int("jobs", len(jobs)).
		Int("failed", n).
		Msg("Batch finished")

	return n
}
