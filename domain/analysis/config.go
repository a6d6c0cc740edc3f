package analysis

// ExplainMode selects how insight sentences render statistical terms
type ExplainMode string

const (
	// ExplainTechnical uses statistical vocabulary directly
	ExplainTechnical ExplainMode = "technical"
	// ExplainPlain paraphrases terms for non-technical readers
	ExplainPlain ExplainMode = "plain"
)

// AnalyzerConfig defines the thresholds for one analysis run. The config is
// threaded explicitly through every stage so concurrent runs with different
// modes cannot interfere.
type AnalyzerConfig struct {
	ExplainMode                  ExplainMode `json:"explain_mode"`
	MissingnessThreshold         float64     `json:"missingness_threshold"`
	StrongCorrelationThreshold   float64     `json:"strong_correlation_threshold"`
	ModerateCorrelationThreshold float64     `json:"moderate_correlation_threshold"`
	OutlierFenceMultiplier       float64     `json:"outlier_fence_multiplier"`
	IdentifierUniquenessRatio    float64     `json:"identifier_uniqueness_ratio"`
	TypeParseThreshold           float64     `json:"type_parse_threshold"`
	MinOutlierSample             int         `json:"min_outlier_sample"`
	MinCorrelationSample         int         `json:"min_correlation_sample"`
}

// DefaultAnalyzerConfig returns sensible defaults
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		ExplainMode:                  ExplainTechnical,
		MissingnessThreshold:         0.05, // flag columns missing > 5% of rows
		StrongCorrelationThreshold:   0.7,
		ModerateCorrelationThreshold: 0.4,
		OutlierFenceMultiplier:       1.5,
		IdentifierUniquenessRatio:    1.0, // fully unique
		TypeParseThreshold:           0.9, // 90% of values must parse as the type
		MinOutlierSample:             4,   // IQR needs meaningful quartiles
		MinCorrelationSample:         3,
	}
}

// Normalize fills zero-valued fields with defaults so a partially populated
// config (e.g. decoded from JSON) stays usable.
func (c AnalyzerConfig) Normalize() AnalyzerConfig {
	def := DefaultAnalyzerConfig()
	if c.ExplainMode != ExplainTechnical && c.ExplainMode != ExplainPlain {
		c.ExplainMode = def.ExplainMode
	}
	if c.MissingnessThreshold <= 0 {
		c.MissingnessThreshold = def.MissingnessThreshold
	}
	if c.StrongCorrelationThreshold <= 0 {
		c.StrongCorrelationThreshold = def.StrongCorrelationThreshold
	}
	if c.ModerateCorrelationThreshold <= 0 {
		c.ModerateCorrelationThreshold = def.ModerateCorrelationThreshold
	}
	if c.OutlierFenceMultiplier <= 0 {
		c.OutlierFenceMultiplier = def.OutlierFenceMultiplier
	}
	if c.IdentifierUniquenessRatio <= 0 {
		c.IdentifierUniquenessRatio = def.IdentifierUniquenessRatio
	}
	if c.TypeParseThreshold <= 0 {
		c.TypeParseThreshold = def.TypeParseThreshold
	}
	if c.MinOutlierSample <= 0 {
		c.MinOutlierSample = def.MinOutlierSample
	}
	if c.MinCorrelationSample <= 0 {
		c.MinCorrelationSample = def.MinCorrelationSample
	}
	return c
}
