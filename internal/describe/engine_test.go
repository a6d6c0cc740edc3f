package describe

import (
	"math"
	"testing"

	"statscope/domain/analysis"
	"statscope/domain/dataset"
)

func newTestEngine() *Engine {
	return NewEngine(analysis.DefaultAnalyzerConfig())
}

func numericColumn(name string, values ...float64) dataset.Column {
	cells := make([]dataset.Cell, len(values))
	for i, v := range values {
		cells[i] = dataset.NewNumericCell(v)
	}
	return dataset.Column{Name: name, Cells: cells}
}

func TestNumericSummary(t *testing.T) {
	col := numericColumn("age", 20, 21, 22, 23, 1000)
	summary := newTestEngine().numericSummary(col)

	if !summary.Defined {
		t.Fatal("expected a defined summary")
	}
	if math.Abs(summary.Mean-217.2) > 1e-9 {
		t.Errorf("expected mean 217.2, got %v", summary.Mean)
	}
	if summary.Median != 22 {
		t.Errorf("expected median 22, got %v", summary.Median)
	}
	if summary.Min != 20 || summary.Max != 1000 {
		t.Errorf("expected min 20 max 1000, got %v and %v", summary.Min, summary.Max)
	}
	if summary.OutlierCount != 1 {
		t.Errorf("expected 1 outlier, got %d", summary.OutlierCount)
	}
	if summary.UpperFence != 26 {
		t.Errorf("expected upper fence 26, got %v", summary.UpperFence)
	}
}

func TestNumericSummarySkipsMissing(t *testing.T) {
	col := dataset.Column{Name: "score", Cells: []dataset.Cell{
		dataset.NewNumericCell(10),
		dataset.NewMissingCell(),
		dataset.NewNumericCell(20),
	}}
	summary := newTestEngine().numericSummary(col)

	if !summary.Defined {
		t.Fatal("expected a defined summary")
	}
	if summary.Mean != 15 {
		t.Errorf("expected mean 15 over non-missing values, got %v", summary.Mean)
	}
}

func TestNumericSummaryUndefined(t *testing.T) {
	col := dataset.Column{Name: "empty", Cells: []dataset.Cell{
		dataset.NewMissingCell(),
		dataset.NewMissingCell(),
	}}
	summary := newTestEngine().numericSummary(col)
	if summary.Defined {
		t.Error("expected undefined summary for a column with no values")
	}
}

func TestNumericSummarySingleValue(t *testing.T) {
	summary := newTestEngine().numericSummary(numericColumn("one", 42))
	if !summary.Defined {
		t.Fatal("expected a defined summary")
	}
	if summary.StdDev != 0 {
		t.Errorf("single observation expected zero spread, got %v", summary.StdDev)
	}
	if summary.OutlierCount != 0 {
		t.Errorf("expected zero outliers, got %d", summary.OutlierCount)
	}
}

func TestCategoricalSummaryTieBreak(t *testing.T) {
	col := dataset.Column{Name: "color", Cells: []dataset.Cell{
		dataset.NewTextCell("blue"),
		dataset.NewTextCell("red"),
		dataset.NewTextCell("red"),
		dataset.NewTextCell("blue"),
	}}
	summary := newTestEngine().categoricalSummary(col)

	if summary.DistinctCount != 2 {
		t.Errorf("expected 2 distinct values, got %d", summary.DistinctCount)
	}
	// Ties break toward the value seen first in column order
	if summary.TopValue != "blue" {
		t.Errorf("expected tie to break to 'blue', got %q", summary.TopValue)
	}
	if summary.TopShare != 0.5 {
		t.Errorf("expected top share 0.5, got %v", summary.TopShare)
	}
}

func TestCategoricalSummaryAllMissing(t *testing.T) {
	col := dataset.Column{Name: "empty", Cells: []dataset.Cell{
		dataset.NewMissingCell(),
		dataset.NewMissingCell(),
	}}
	summary := newTestEngine().categoricalSummary(col)

	if summary.DistinctCount != 0 {
		t.Errorf("expected 0 distinct values, got %d", summary.DistinctCount)
	}
	if summary.TopValue != "" || summary.TopShare != 0 {
		t.Error("all-missing column should report no top value")
	}
}

func TestDateSummarySpan(t *testing.T) {
	col := dataset.Column{Name: "when", Cells: []dataset.Cell{
		dataset.ParseCell("2024-01-01"),
		dataset.ParseCell("2024-01-31"),
		dataset.ParseCell("2024-01-15"),
	}}
	summary := newTestEngine().dateSummary(col)

	if !summary.Defined {
		t.Fatal("expected a defined summary")
	}
	if summary.SpanDays != 30 {
		t.Errorf("expected span of 30 days, got %d", summary.SpanDays)
	}
	if summary.Earliest.Day() != 1 || summary.Latest.Day() != 31 {
		t.Errorf("wrong extent: %v to %v", summary.Earliest, summary.Latest)
	}
}

func TestDateSummaryUndefinedBelowTwoDates(t *testing.T) {
	col := dataset.Column{Name: "when", Cells: []dataset.Cell{
		dataset.ParseCell("2024-01-01"),
		dataset.NewMissingCell(),
	}}
	if summary := newTestEngine().dateSummary(col); summary.Defined {
		t.Error("expected undefined summary with a single date")
	}
}

func TestSummarizeSkipsIdentifiers(t *testing.T) {
	ds, err := dataset.New("t", []dataset.Column{
		{Name: "order_id", Cells: []dataset.Cell{dataset.NewTextCell("a"), dataset.NewTextCell("b")}},
		numericColumn("amount", 10, 20),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	profiles := []analysis.ColumnProfile{
		{Name: "order_id", Role: analysis.RoleIdentifier},
		{Name: "amount", Role: analysis.RoleNumeric},
	}

	summaries := newTestEngine().Summarize(ds, profiles)
	if _, ok := summaries["order_id"]; ok {
		t.Error("identifier column must not receive a summary")
	}
	if s, ok := summaries["amount"]; !ok || s.Numeric == nil {
		t.Error("numeric column expected a numeric summary")
	}
}
