package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// BatchRequest is one password to generate
type BatchRequest struct {
	Memorable string
	Length    int
}

// BatchResult holds the outcome for the request at Index
type BatchResult struct {
	Index    int
	Password string
	Err      error
}

// BatchService runs independent pipelines concurrently
type BatchService struct {
	passwords *PasswordService
	sem       *semaphore.Weighted
}

// NewBatchService creates a batch service allowing up to concurrency
// pipelines in flight. Values below 1 are treated as 1.
func NewBatchService(passwords *PasswordService, concurrency int) *BatchService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &BatchService{
		passwords: passwords,
		sem:       semaphore.NewWeighted(int64(concurrency)),
	}
}

// GenerateMany returns one result per request in request order. A failing
// request does not affect the others. If ctx is cancelled, requests that have
// not started carry the context error and GenerateMany returns it as well;
// pipelines already running finish normally.
func (b *BatchService) GenerateMany(ctx context.Context, reqs []BatchRequest) ([]BatchResult, error) {
	results := make([]BatchResult, len(reqs))

	// Only cancellation is returned to the group, so gctx is done exactly when ctx is
	g, gctx := errgroup.WithContext(ctx)
	var scheduleErr error
	for i, req := range reqs {
		err := gctx.Err()
		if err == nil {
			err = b.sem.Acquire(gctx, 1)
		}
		if err != nil {
			for j := i; j < len(reqs); j++ {
				results[j] = BatchResult{Index: j, Err: err}
			}
			scheduleErr = fmt.Errorf("batch interrupted after %d of %d requests: %w", i, len(reqs), err)
			break
		}

		g.Go(func() error {
			defer b.sem.Release(1)
			if err := gctx.Err(); err != nil {
				results[i] = BatchResult{Index: i, Err: err}
				return err
			}
			pw, err := b.passwords.GeneratePassword(req.Memorable, req.Length)
			results[i] = BatchResult{Index: i, Password: pw, Err: err}
			return nil
		})
	}

	waitErr := g.Wait()
	if scheduleErr != nil {
		return results, scheduleErr
	}
	if waitErr != nil {
		return results, fmt.Errorf("batch interrupted: %w", waitErr)
	}
	return results, nil
}
