package service

import (
	"context"
	"errors"
	"sync"

	"github.com/ldurand/paydash/backend/internal/domain"
)

// TransactionSink receives transactions written during bulk ingestion.
type TransactionSink interface {
	Upsert(ctx context.Context, tx domain.Transaction) error
}

// TaskError accumulates the individual errors produced during bulk ingestion.
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

// BulkIngestor loads transaction datasets into a sink using a bounded worker
// pool. It backs the offline ingest tool; the serving path never writes.
type BulkIngestor struct {
	sink    TransactionSink
	workers int
}

// NewBulkIngestor creates a BulkIngestor with the provided concurrency.
func NewBulkIngestor(sink TransactionSink, workers int) *BulkIngestor {
	if workers <= 0 {
		workers = 4
	}
	return &BulkIngestor{
		sink:    sink,
		workers: workers,
	}
}

// IngestTransactions writes the provided transactions concurrently. Record
// failures are collected into a TaskError; cancellation aborts early.
func (bi *BulkIngestor) IngestTransactions(ctx context.Context, txs []domain.Transaction) error {
	total := len(txs)
	if total == 0 {
		return nil
	}

	indexCh := make(chan int)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range indexCh {
			if err := bi.sink.Upsert(ctx, txs[idx]); err != nil {
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

Loop:
	for i := 0; i < total; i++ {
		select {
		case indexCh <- i:
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
	return taskErr.asError()
}
