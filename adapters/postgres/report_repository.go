package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"statscope/domain/analysis"
	"statscope/domain/core"
	"statscope/ports"
)

// reportRepository implements ports.ReportRepository on Postgres, storing
// each result as a JSONB document keyed by report ID.
type reportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sqlx.DB) ports.ReportRepository {
	return &reportRepository{db: db}
}

// Migrate creates the reports table when it does not exist yet
func Migrate(ctx context.Context, db *sqlx.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS analysis_reports (
		id TEXT PRIMARY KEY,
		dataset_name TEXT NOT NULL,
		row_count INTEGER NOT NULL,
		column_count INTEGER NOT NULL,
		result JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create analysis_reports table: %w", err)
	}
	return nil
}

// Save inserts a finished report
func (r *reportRepository) Save(ctx context.Context, report analysis.StoredReport) error {
	resultJSON, err := json.Marshal(report.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	query := `INSERT INTO analysis_reports (
		id, dataset_name, row_count, column_count, result, created_at
	) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.db.ExecContext(ctx, query,
		report.ID, report.Result.DatasetName, report.Result.RowCount,
		report.Result.ColumnCount, resultJSON, report.CreatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// GetByID retrieves a stored report by its ID
func (r *reportRepository) GetByID(ctx context.Context, id core.ReportID) (*analysis.StoredReport, error) {
	query := `SELECT id, result, created_at FROM analysis_reports WHERE id = $1`

	var report analysis.StoredReport
	var resultJSON []byte
	var createdAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(&report.ID, &resultJSON, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", core.ErrReportNotFound, id)
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	if err := json.Unmarshal(resultJSON, &report.Result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	if createdAt.Valid {
		report.CreatedAt = core.NewTimestamp(createdAt.Time)
	}
	return &report, nil
}

// List returns stored reports newest-first with pagination
func (r *reportRepository) List(ctx context.Context, limit, offset int) ([]analysis.StoredReport, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, result, created_at FROM analysis_reports
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := make([]analysis.StoredReport, 0, limit)
	for rows.Next() {
		var report analysis.StoredReport
		var resultJSON []byte
		var createdAt sql.NullTime

		if err := rows.Scan(&report.ID, &resultJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		if err := json.Unmarshal(resultJSON, &report.Result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}
		if createdAt.Valid {
			report.CreatedAt = core.NewTimestamp(createdAt.Time)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// Delete removes a stored report
func (r *reportRepository) Delete(ctx context.Context, id core.ReportID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM analysis_reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%w: %s", core.ErrReportNotFound, id)
	}
	return nil
}
