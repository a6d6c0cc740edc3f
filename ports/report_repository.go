package ports

import (
	"context"

	"statscope/domain/analysis"
	"statscope/domain/core"
)

// ReportRepository persists finished analysis reports for later retrieval.
// Implementations must treat stored results as immutable.
type ReportRepository interface {
	Save(ctx context.Context, report analysis.StoredReport) error
	GetByID(ctx context.Context, id core.ReportID) (*analysis.StoredReport, error)
	List(ctx context.Context, limit, offset int) ([]analysis.StoredReport, error)
	Delete(ctx context.Context, id core.ReportID) error
}
