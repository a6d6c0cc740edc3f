package app

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"statscope/domain/analysis"
	"statscope/domain/dataset"
)

// BatchService analyzes several datasets concurrently. Every run uses an
// independent dataset instance and produces an independent result, so no
// synchronization is needed beyond bounding the concurrency.
type BatchService struct {
	service *AnalysisService
	sem     *semaphore.Weighted
}

// BatchItem pairs one dataset's result with its error, in input order
type BatchItem struct {
	DatasetName string
	Result      *analysis.AnalysisResult
	Err         error
}

// NewBatchService creates a batch runner bounded to maxConcurrent runs
func NewBatchService(service *AnalysisService, maxConcurrent int64) *BatchService {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &BatchService{
		service: service,
		sem:     semaphore.NewWeighted(maxConcurrent),
	}
}

// AnalyzeAll runs the pipeline over each dataset. A failed run records its
// error on the item; it never aborts the sibling runs.
func (b *BatchService) AnalyzeAll(ctx context.Context, datasets []*dataset.Dataset) []BatchItem {
	items := make([]BatchItem, len(datasets))

	var wg sync.WaitGroup
	for i, ds := range datasets {
		name := ""
		if ds != nil {
			name = ds.Name
		}
		items[i] = BatchItem{DatasetName: name}

		if err := b.sem.Acquire(ctx, 1); err != nil {
			items[i].Err = err
			continue
		}

		wg.Add(1)
		go func(idx int, ds *dataset.Dataset) {
			defer wg.Done()
			defer b.sem.Release(1)
			result, err := b.service.Analyze(ctx, ds)
			items[idx].Result = result
			items[idx].Err = err
		}(i, ds)
	}

	wg.Wait()
	return items
}
