package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/vanshika/airnet/internal/domain"
)

// TaskError accumulates multiple errors produced during bulk ingestion.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := "multiple errors:"
	for _, err := range e.Errors {
		msg += " " + err.Error() + ";"
	}
	return msg
}

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// RouteWriter stores airport and route records.
type RouteWriter interface {
	UpsertAirports(ctx context.Context, airports []domain.Airport) (int, error)
	UpsertRoutes(ctx context.Context, routes []domain.RouteRecord) error
}

// DefaultBatchSize is the number of records sent per write when none is set.
const DefaultBatchSize = 500

// BulkIngestor writes large airport and route tables in batches using a
// worker pool.
type BulkIngestor struct {
	store     RouteWriter
	workers   int
	batchSize int
}

// NewBulkIngestor creates a new BulkIngestor instance with the provided
// concurrency and batch size.
func NewBulkIngestor(store RouteWriter, workers, batchSize int) *BulkIngestor {
	if workers <= 0 {
		workers = 4
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &BulkIngestor{
		store:     store,
		workers:   workers,
		batchSize: batchSize,
	}
}

// IngestAirports stores airports concurrently and returns how many were
// written. Airports without a code are not counted.
func (bi *BulkIngestor) IngestAirports(ctx context.Context, airports []domain.Airport) (int, error) {
	var stored atomic.Int64
	err := bi.run(ctx, batches(len(airports), bi.batchSize), func(idx int) error {
		lo, hi := bounds(idx, bi.batchSize, len(airports))
		n, err := bi.store.UpsertAirports(ctx, airports[lo:hi])
		if err != nil {
			return fmt.Errorf("airports batch %d: %w", idx, err)
		}
		stored.Add(int64(n))
		return nil
	})
	return int(stored.Load()), err
}

// IngestRoutes stores route records concurrently. Records with an empty
// endpoint are dropped before writing; the number dropped is returned.
func (bi *BulkIngestor) IngestRoutes(ctx context.Context, routes []domain.RouteRecord) (int, error) {
	valid := make([]domain.RouteRecord, 0, len(routes))
	for _, r := range routes {
		if r.Source == "" || r.Destination == "" {
			continue
		}
		valid = append(valid, r)
	}
	dropped := len(routes) - len(valid)

	err := bi.run(ctx, batches(len(valid), bi.batchSize), func(idx int) error {
		lo, hi := bounds(idx, bi.batchSize, len(valid))
		if err := bi.store.UpsertRoutes(ctx, valid[lo:hi]); err != nil {
			return fmt.Errorf("routes batch %d: %w", idx, err)
		}
		return nil
	})
	return dropped, err
}

func batches(total, size int) int {
	return (total + size - 1) / size
}

func bounds(idx, size, total int) (int, int) {
	lo := idx * size
	hi := lo + size
	if hi > total {
		hi = total
	}
	return lo, hi
}

func (bi *BulkIngestor) run(ctx context.Context, total int, workerFn func(idx int) error) error {
	if total == 0 {
		return nil
	}
	indexCh := make(chan int)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range indexCh {
			if err := workerFn(idx); err != nil {
				select {
				case errCh <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}

	for i := 0; i < bi.workers; i++ {
		wg.Add(1)
		go worker()
	}

	dispatched := 0
Loop:
	for ; dispatched < total; dispatched++ {
		if ctx.Err() != nil {
			break
		}
		select {
		case indexCh <- dispatched:
		case <-ctx.Done():
			break Loop
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	var taskErr TaskError
	for err := range errCh {
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		taskErr.append(err)
	}
	if dispatched < total {
		return fmt.Errorf("stopped after %d of %d batches: %w", dispatched, total, ctx.Err())
	}
	return taskErr.asError()
}
