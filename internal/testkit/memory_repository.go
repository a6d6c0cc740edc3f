package testkit

import (
	"context"
	"fmt"
	"sync"

	"statscope/domain/analysis"
	"statscope/domain/core"
	"statscope/ports"
)

// InMemoryReportRepository is a thread-safe ReportRepository backed by a map.
// It serves tests and database-less deployments.
type InMemoryReportRepository struct {
	mu      sync.RWMutex
	reports map[core.ReportID]analysis.StoredReport
	order   []core.ReportID
}

// NewInMemoryReportRepository creates an empty in-memory repository
func NewInMemoryReportRepository() *InMemoryReportRepository {
	return &InMemoryReportRepository{
		reports: make(map[core.ReportID]analysis.StoredReport),
	}
}

var _ ports.ReportRepository = (*InMemoryReportRepository)(nil)

// Save stores a report, newest last
func (r *InMemoryReportRepository) Save(ctx context.Context, report analysis.StoredReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.reports[report.ID]; !exists {
		r.order = append(r.order, report.ID)
	}
	r.reports[report.ID] = report
	return nil
}

// GetByID retrieves a stored report
func (r *InMemoryReportRepository) GetByID(ctx context.Context, id core.ReportID) (*analysis.StoredReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	report, ok := r.reports[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrReportNotFound, id)
	}
	return &report, nil
}

// List returns stored reports newest-first with pagination
func (r *InMemoryReportRepository) List(ctx context.Context, limit, offset int) ([]analysis.StoredReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	out := make([]analysis.StoredReport, 0, limit)
	for i := len(r.order) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.reports[r.order[i]])
	}
	return out, nil
}

// Delete removes a stored report
func (r *InMemoryReportRepository) Delete(ctx context.Context, id core.ReportID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reports[id]; !ok {
		return fmt.Errorf("%w: %s", core.ErrReportNotFound, id)
	}
	delete(r.reports, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
