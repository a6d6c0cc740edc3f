package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Structural errors that abort an analysis run
	ErrEmptyDataset   = errors.New("dataset has no rows or no columns")
	ErrDatasetShape   = errors.New("dataset columns have mismatched lengths")
	ErrReportNotFound = errors.New("report not found")

	// Column-level errors absorbed during classification
	ErrUnsupportedColumn = errors.New("column values cannot be classified")

	// Degeneracies represented as undefined values, never raised mid-run
	ErrInsufficientData = errors.New("insufficient data for analysis")
)

// NewEmptyDatasetError reports the structural problem with the shape included
func NewEmptyDatasetError(rows, columns int) error {
	return fmt.Errorf("%w: %d rows, %d columns", ErrEmptyDataset, rows, columns)
}

// NewShapeError reports a column whose length disagrees with the dataset row count
func NewShapeError(column string, got, want int) error {
	return fmt.Errorf("%w: column %q has %d values, expected %d", ErrDatasetShape, column, got, want)
}

// IsStructuralError reports whether err should abort a run before any stage executes
func IsStructuralError(err error) bool {
	return errors.Is(err, ErrEmptyDataset) || errors.Is(err, ErrDatasetShape)
}
