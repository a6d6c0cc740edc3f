// Package correlate computes pairwise Pearson correlations between numeric
// columns over pairwise-complete observations.
package correlate

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"statscope/domain/analysis"
	"statscope/domain/dataset"
)

// Analyzer computes correlation pairs for one dataset
type Analyzer struct {
	config analysis.AnalyzerConfig
}

// NewAnalyzer creates a correlation analyzer with the given thresholds
func NewAnalyzer(config analysis.AnalyzerConfig) *Analyzer {
	return &Analyzer{config: config.Normalize()}
}

// Pairs computes the Pearson coefficient for every unordered pair of numeric
// columns. Each pair appears once and self-pairs are never produced. Pairs
// with fewer jointly non-missing rows than the configured minimum, or with a
// degenerate (constant) side, are omitted rather than reported as zero.
func (a *Analyzer) Pairs(ds *dataset.Dataset, profiles []analysis.ColumnProfile) []analysis.CorrelationPair {
	numeric := make([]dataset.Column, 0, len(profiles))
	for _, profile := range profiles {
		if profile.Role != analysis.RoleNumeric {
			continue
		}
		if col, ok := ds.Column(profile.Name); ok {
			numeric = append(numeric, col)
		}
	}

	pairs := make([]analysis.CorrelationPair, 0)
	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			if pair, ok := a.correlate(numeric[i], numeric[j]); ok {
				pairs = append(pairs, pair)
			}
		}
	}
	return pairs
}

// StrongPairs filters computed pairs to the user-facing strong subset.
// Weak and moderate pairs stay available to callers of Pairs.
func (a *Analyzer) StrongPairs(pairs []analysis.CorrelationPair) []analysis.CorrelationPair {
	strong := make([]analysis.CorrelationPair, 0, len(pairs))
	for _, pair := range pairs {
		if pair.Strength == analysis.StrengthStrong {
			strong = append(strong, pair)
		}
	}
	return strong
}

// correlate computes one pair over rows where both values are present
func (a *Analyzer) correlate(colA, colB dataset.Column) (analysis.CorrelationPair, bool) {
	x, y := jointValues(colA, colB)
	if len(x) < a.config.MinCorrelationSample {
		return analysis.CorrelationPair{}, false
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		// Constant column on either side leaves Pearson undefined
		return analysis.CorrelationPair{}, false
	}

	pair := analysis.CorrelationPair{
		ColumnA:     colA.Name,
		ColumnB:     colB.Name,
		Coefficient: r,
		Strength:    a.labelStrength(r),
		Direction:   analysis.DirectionPositive,
	}
	if r < 0 {
		pair.Direction = analysis.DirectionNegative
	}
	return pair, true
}

// labelStrength buckets a coefficient magnitude into weak/moderate/strong
func (a *Analyzer) labelStrength(r float64) analysis.CorrelationStrength {
	abs := math.Abs(r)
	switch {
	case abs >= a.config.StrongCorrelationThreshold:
		return analysis.StrengthStrong
	case abs >= a.config.ModerateCorrelationThreshold:
		return analysis.StrengthModerate
	default:
		return analysis.StrengthWeak
	}
}

// jointValues extracts the pairwise-complete observations of two columns
func jointValues(colA, colB dataset.Column) ([]float64, []float64) {
	n := len(colA.Cells)
	if len(colB.Cells) < n {
		n = len(colB.Cells)
	}

	x := make([]float64, 0, n)
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		ca, cb := colA.Cells[i], colB.Cells[i]
		if ca.Missing || cb.Missing || !ca.IsNumeric() || !cb.IsNumeric() {
			continue
		}
		x = append(x, *ca.Number)
		y = append(y, *cb.Number)
	}
	return x, y
}
