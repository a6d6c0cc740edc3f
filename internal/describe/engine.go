// Package describe computes per-column descriptive statistics from
// classifier output. The engine is a pure function of the dataset and the
// column profiles: degenerate columns produce undefined summaries, never
// errors.
package describe

import (
	"github.com/montanaflynn/stats"

	"statscope/domain/analysis"
	"statscope/domain/dataset"
)

// Engine computes type-specific summaries per column
type Engine struct {
	config analysis.AnalyzerConfig
}

// NewEngine creates a statistics engine with the given thresholds
func NewEngine(config analysis.AnalyzerConfig) *Engine {
	return &Engine{config: config.Normalize()}
}

// Summarize computes one summary per non-identifier column, keyed by column
// name. Identifier columns never receive statistics.
func (e *Engine) Summarize(ds *dataset.Dataset, profiles []analysis.ColumnProfile) map[string]analysis.ColumnSummary {
	summaries := make(map[string]analysis.ColumnSummary, len(profiles))

	for _, profile := range profiles {
		col, ok := ds.Column(profile.Name)
		if !ok {
			continue
		}

		switch profile.Role {
		case analysis.RoleNumeric:
			s := e.numericSummary(col)
			summaries[profile.Name] = analysis.ColumnSummary{Numeric: &s}
		case analysis.RoleCategorical:
			s := e.categoricalSummary(col)
			summaries[profile.Name] = analysis.ColumnSummary{Categorical: &s}
		case analysis.RoleDate:
			s := e.dateSummary(col)
			summaries[profile.Name] = analysis.ColumnSummary{Date: &s}
		}
	}

	return summaries
}

// numericSummary computes mean, median, min, max and standard deviation over
// non-missing values, plus IQR outlier fences. A column with zero usable
// values reports every statistic as undefined, not zero.
func (e *Engine) numericSummary(col dataset.Column) analysis.NumericSummary {
	values := col.NumericValues()
	if len(values) == 0 {
		return analysis.NumericSummary{}
	}

	mean, err := stats.Mean(values)
	if err != nil {
		return analysis.NumericSummary{}
	}
	median, err := stats.Median(values)
	if err != nil {
		return analysis.NumericSummary{}
	}
	min, err := stats.Min(values)
	if err != nil {
		return analysis.NumericSummary{}
	}
	max, err := stats.Max(values)
	if err != nil {
		return analysis.NumericSummary{}
	}

	// Sample standard deviation; a single observation has no spread
	stdDev := 0.0
	if len(values) > 1 {
		if sd, err := stats.StandardDeviationSample(values); err == nil {
			stdDev = sd
		}
	}

	summary := analysis.NumericSummary{
		Defined: true,
		Mean:    mean,
		Median:  median,
		Min:     min,
		Max:     max,
		StdDev:  stdDev,
	}

	if report := DetectOutliers(values, e.config.OutlierFenceMultiplier, e.config.MinOutlierSample); report.Ok {
		summary.OutlierCount = report.Count
		summary.LowerFence = report.LowerFence
		summary.UpperFence = report.UpperFence
	}

	return summary
}

// categoricalSummary counts distinct non-missing values and finds the most
// frequent one. Ties break toward the first-encountered value in original
// column order, keeping output deterministic.
func (e *Engine) categoricalSummary(col dataset.Column) analysis.CategoricalSummary {
	counts := make(map[string]int)
	order := make([]string, 0)

	nonMissing := 0
	for _, cell := range col.Cells {
		if cell.Missing {
			continue
		}
		nonMissing++
		if _, seen := counts[cell.Raw]; !seen {
			order = append(order, cell.Raw)
		}
		counts[cell.Raw]++
	}

	summary := analysis.CategoricalSummary{DistinctCount: len(order)}
	if nonMissing == 0 {
		return summary
	}

	top := ""
	topCount := 0
	for _, value := range order {
		if counts[value] > topCount {
			top = value
			topCount = counts[value]
		}
	}

	summary.TopValue = top
	summary.TopShare = float64(topCount) / float64(nonMissing)
	return summary
}

// dateSummary finds the temporal extent of a date column in whole days.
// Fewer than 2 parsed dates leaves the summary undefined.
func (e *Engine) dateSummary(col dataset.Column) analysis.DateSummary {
	summary := analysis.DateSummary{}

	seen := 0
	for _, cell := range col.Cells {
		if cell.Missing || !cell.IsDate() {
			continue
		}
		t := *cell.Date
		if seen == 0 {
			summary.Earliest = t
			summary.Latest = t
		} else {
			if t.Before(summary.Earliest) {
				summary.Earliest = t
			}
			if t.After(summary.Latest) {
				summary.Latest = t
			}
		}
		seen++
	}

	if seen < 2 {
		return analysis.DateSummary{}
	}

	summary.Defined = true
	summary.SpanDays = int(summary.Latest.Sub(summary.Earliest).Hours() / 24)
	return summary
}
