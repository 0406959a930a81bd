package batch

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"artalign/internal/article"
	"artalign/internal/logging"
)

// ErrBookCountMismatch is returned when the three inputs do not hold the same
// number of books.
var ErrBookCountMismatch = errors.New("inputs hold different numbers of books")

// Job is one book of a multi-book input, paired across the three roles.
type Job struct {
	Name       string
	TargetName string
	Input      Input
}

// BookResult is the outcome of aligning one Job.
type BookResult struct {
	Job    Job
	Result Result
}

// PairBooks lines up books by position.
func PairBooks(source, translation, target []article.Book) ([]Job, error) {
	if len(source) != len(translation) || len(source) != len(target) {
		return nil, fmt.Errorf("%w: %d source, %d translation, %d target",
			ErrBookCountMismatch, len(source), len(translation), len(target))
	}
	jobs := make([]Job, len(source))
	for i := range source {
		jobs[i] = Job{
			Name:       source[i].Name,
			TargetName: target[i].Name,
			Input: Input{
				Source:      source[i].Articles,
				Translation: translation[i].Articles,
				Target:      target[i].Articles,
			},
		}
	}
	return jobs, nil
}

// RunBooks aligns every job. Books run in parallel up to the worker limit;
// with more than one book the batches inside a book run one at a time.
// Results keep the order of jobs.
func (c *Controller) RunBooks(ctx context.Context, jobs []Job) ([]BookResult, error) {
	inner := c
	if len(jobs) > 1 {
		opts := c.opts
		opts.Workers = 1
		inner = &Controller{opts: opts, logger: c.logger, observer: c.observer}
	}

	results := make([]BookResult, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Workers)
	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			bookCtx := logging.WithBook(gctx, job.Name)
			res, err := inner.Run(bookCtx, job.Input)
			if err != nil {
				return fmt.Errorf("book %s: %w", job.Name, err)
			}
			results[i] = BookResult{Job: job, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
