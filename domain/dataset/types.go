package dataset

import (
	"statscope/domain/core"
)

// Column is a named, ordered sequence of typed cells
type Column struct {
	Name  string `json:"name"`
	Cells []Cell `json:"cells"`
}

// NonMissing returns the cells that carry a value, preserving order
func (c Column) NonMissing() []Cell {
	out := make([]Cell, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if !cell.Missing {
			out = append(out, cell)
		}
	}
	return out
}

// MissingCount returns the number of absent cells
func (c Column) MissingCount() int {
	count := 0
	for _, cell := range c.Cells {
		if cell.Missing {
			count++
		}
	}
	return count
}

// NumericValues returns the parsed numbers of non-missing numeric cells in order
func (c Column) NumericValues() []float64 {
	out := make([]float64, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if !cell.Missing && cell.IsNumeric() {
			out = append(out, *cell.Number)
		}
	}
	return out
}

// Dataset is an immutable ordered sequence of named columns sharing one row count.
// It is owned by the orchestrator for the duration of a single analysis run.
type Dataset struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
	rows    int
}

// New builds a dataset from columns, validating the shared row count.
// A zero-row or zero-column dataset is a structural error and aborts the
// run before any stage executes.
func New(name string, columns []Column) (*Dataset, error) {
	if len(columns) == 0 {
		return nil, core.NewEmptyDatasetError(0, 0)
	}

	rows := len(columns[0].Cells)
	for _, col := range columns {
		if len(col.Cells) != rows {
			return nil, core.NewShapeError(col.Name, len(col.Cells), rows)
		}
	}
	if rows == 0 {
		return nil, core.NewEmptyDatasetError(0, len(columns))
	}

	return &Dataset{Name: name, Columns: columns, rows: rows}, nil
}

// FromRecords builds a dataset from a header row plus raw string records,
// coercing every cell exactly once. This is the shape file loaders hand over.
func FromRecords(name string, header []string, records [][]string) (*Dataset, error) {
	if len(header) == 0 || len(records) == 0 {
		return nil, core.NewEmptyDatasetError(len(records), len(header))
	}

	columns := make([]Column, len(header))
	for i, colName := range header {
		cells := make([]Cell, len(records))
		for r, record := range records {
			if i < len(record) {
				cells[r] = ParseCell(record[i])
			} else {
				// Short records pad out with missing cells
				cells[r] = NewMissingCell()
			}
		}
		columns[i] = Column{Name: colName, Cells: cells}
	}

	return New(name, columns)
}

// RowCount returns the shared row count
func (d *Dataset) RowCount() int {
	return d.rows
}

// ColumnCount returns the number of columns
func (d *Dataset) ColumnCount() int {
	return len(d.Columns)
}

// ColumnNames returns the ordered column names
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		names[i] = col.Name
	}
	return names
}

// Column returns the named column, or false when absent
func (d *Dataset) Column(name string) (Column, bool) {
	for _, col := range d.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}
