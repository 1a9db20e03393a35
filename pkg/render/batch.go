package render

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-benchtmpl/pkg/params"
	"github.com/goliatone/go-benchtmpl/pkg/template"
)

// Job is one render request in a batch.
type Job struct {
	Template *template.Template
	Params   params.Binder
}

// RenderAll renders every job with r, in parallel, and returns the results in
// job order. Templates are immutable and each job carries its own binder, so
// no locking is involved. The first failure cancels jobs that have not
// started yet and is returned wrapped with the job index.
func RenderAll(ctx context.Context, r Renderer, jobs []Job, opts ...BatchOption) ([]Result, error) {
	if r == nil {
		return nil, fmt.Errorf("render: renderer is required")
	}
	cfg := &batchConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	if cfg.concurrency > 0 {
		g.SetLimit(cfg.concurrency)
	}

	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.Render(job.Template, job.Params)
			if err != nil {
				return fmt.Errorf("render: job %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
