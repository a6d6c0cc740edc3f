// Package classify assigns each dataset column a semantic role.
package classify

import (
	"strings"

	"statscope/domain/analysis"
	"statscope/domain/dataset"
	internal "statscope/internal"
)

// identifierTerms are matched case-insensitively as substrings of column names
var identifierTerms = []string{"id", "uuid", "key", "code"}

// Classifier inspects columns and assigns exactly one role per column.
// Classification runs once per column per run and is never re-derived.
type Classifier struct {
	config analysis.AnalyzerConfig
	logger *internal.Logger
}

// NewClassifier creates a classifier with the given thresholds
func NewClassifier(config analysis.AnalyzerConfig) *Classifier {
	return &Classifier{config: config.Normalize(), logger: internal.DefaultLogger}
}

// ClassifyAll profiles every column in original order
func (c *Classifier) ClassifyAll(ds *dataset.Dataset) []analysis.ColumnProfile {
	profiles := make([]analysis.ColumnProfile, len(ds.Columns))
	for i, col := range ds.Columns {
		profiles[i] = c.Classify(col, ds.RowCount())
	}
	return profiles
}

// Classify returns the profile for a single column.
// Policy, in priority order: identifier by name or full uniqueness, date,
// numeric, categorical fallback. An all-missing column is categorical with
// zero distinct values and must not crash downstream stages.
func (c *Classifier) Classify(col dataset.Column, rowCount int) analysis.ColumnProfile {
	missing := col.MissingCount()
	profile := analysis.ColumnProfile{
		Name:         col.Name,
		MissingCount: missing,
		MissingRatio: ratio(missing, rowCount),
	}

	counts := countEvidence(col)
	if counts.nonMissing == 0 {
		profile.Role = analysis.RoleCategorical
		return profile
	}

	profile.Role = c.roleFor(col.Name, counts)
	if profile.Role == "" {
		// Reserved for malformed input; demote rather than abort the run
		c.logger.Warn("column %q could not be classified, demoting to categorical", col.Name)
		profile.Role = analysis.RoleCategorical
	}
	return profile
}

// evidence aggregates the per-cell parse outcomes for one column
type evidence struct {
	nonMissing int
	numeric    int
	dates      int
	distinct   int
}

func countEvidence(col dataset.Column) evidence {
	seen := make(map[string]bool)
	ev := evidence{}
	for _, cell := range col.Cells {
		if cell.Missing {
			continue
		}
		ev.nonMissing++
		if cell.IsNumeric() {
			ev.numeric++
		}
		if cell.IsDate() {
			ev.dates++
		}
		if !seen[cell.Raw] {
			seen[cell.Raw] = true
			ev.distinct++
		}
	}
	return ev
}

func (c *Classifier) roleFor(name string, counts evidence) analysis.ColumnRole {
	dateRatio := ratio(counts.dates, counts.nonMissing)
	numericRatio := ratio(counts.numeric, counts.nonMissing)
	uniqueRatio := ratio(counts.distinct, counts.nonMissing)
	temporal := dateRatio >= c.config.TypeParseThreshold

	if hasIdentifierName(name) {
		return analysis.RoleIdentifier
	}
	// Fully unique non-temporal columns carry no distributional signal
	if uniqueRatio >= c.config.IdentifierUniquenessRatio && !temporal {
		return analysis.RoleIdentifier
	}
	if temporal {
		return analysis.RoleDate
	}
	if numericRatio >= c.config.TypeParseThreshold {
		return analysis.RoleNumeric
	}
	return analysis.RoleCategorical
}

func hasIdentifierName(name string) bool {
	lower := strings.ToLower(name)
	for _, term := range identifierTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func ratio(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}
