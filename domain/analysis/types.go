package analysis

import (
	"encoding/json"
	"time"

	"statscope/domain/core"
)

// ColumnRole is the semantic role the classifier assigns to a column
type ColumnRole string

const (
	RoleIdentifier  ColumnRole = "identifier"
	RoleNumeric     ColumnRole = "numeric"
	RoleCategorical ColumnRole = "categorical"
	RoleDate        ColumnRole = "date"
)

// ColumnProfile describes one column after classification.
// Exactly one profile exists per column per run; it is read-only afterward.
type ColumnProfile struct {
	Name         string     `json:"name"`
	Role         ColumnRole `json:"role"`
	MissingCount int        `json:"missing_count"`
	MissingRatio float64    `json:"missing_ratio"`
}

// NumericSummary holds descriptive statistics for one numeric column.
// Defined is false when the column has no non-missing values; the numeric
// fields are then meaningless and must not be rendered.
type NumericSummary struct {
	Defined      bool    `json:"defined"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	StdDev       float64 `json:"std_dev"`
	OutlierCount int     `json:"outlier_count"`
	LowerFence   float64 `json:"lower_fence"`
	UpperFence   float64 `json:"upper_fence"`
}

// CategoricalSummary holds frequency statistics for one categorical column
type CategoricalSummary struct {
	DistinctCount int     `json:"distinct_count"`
	TopValue      string  `json:"top_value"`
	TopShare      float64 `json:"top_share"`
}

// DateSummary holds the temporal extent of one date column.
// Defined is false when fewer than 2 non-missing dates exist.
type DateSummary struct {
	Defined  bool      `json:"defined"`
	Earliest time.Time `json:"earliest"`
	Latest   time.Time `json:"latest"`
	SpanDays int       `json:"span_days"`
}

// ColumnSummary carries the type-specific summary for one column.
// Exactly one of the pointers is set for non-identifier columns.
type ColumnSummary struct {
	Numeric     *NumericSummary     `json:"numeric,omitempty"`
	Categorical *CategoricalSummary `json:"categorical,omitempty"`
	Date        *DateSummary        `json:"date,omitempty"`
}

// CorrelationStrength is the qualitative bucket for a coefficient magnitude
type CorrelationStrength string

const (
	StrengthWeak     CorrelationStrength = "weak"
	StrengthModerate CorrelationStrength = "moderate"
	StrengthStrong   CorrelationStrength = "strong"
)

// CorrelationDirection indicates the sign of a relationship
type CorrelationDirection string

const (
	DirectionPositive CorrelationDirection = "positive"
	DirectionNegative CorrelationDirection = "negative"
)

// CorrelationPair is one unordered pair of numeric columns with its
// Pearson coefficient. Pairs appear once, never as self-pairs.
type CorrelationPair struct {
	ColumnA     string               `json:"column_a"`
	ColumnB     string               `json:"column_b"`
	Coefficient float64              `json:"coefficient"`
	Strength    CorrelationStrength  `json:"strength"`
	Direction   CorrelationDirection `json:"direction"`
}

// InsightTopic tags an insight with the finding category it describes
type InsightTopic string

const (
	TopicOverview    InsightTopic = "overview"
	TopicMissingness InsightTopic = "missingness"
	TopicNumeric     InsightTopic = "numeric"
	TopicCategorical InsightTopic = "categorical"
	TopicCorrelation InsightTopic = "correlation"
)

// Insight is a single plain-language finding with a priority rank.
// Lower priority sorts first so the most informative findings surface first.
type Insight struct {
	Text     string       `json:"text"`
	Priority int          `json:"priority"`
	Topic    InsightTopic `json:"topic"`
}

// AnalysisResult is the aggregate root of one analysis run. It is read-only
// after construction and safe to share across concurrent consumers. The
// result is a pure function of dataset and config: re-running an unchanged
// input yields a byte-identical serialization, which Fingerprint captures.
type AnalysisResult struct {
	DatasetName  string                   `json:"dataset_name"`
	RowCount     int                      `json:"row_count"`
	ColumnCount  int                      `json:"column_count"`
	Profiles     []ColumnProfile          `json:"profiles"`
	Summaries    map[string]ColumnSummary `json:"summaries"`
	Correlations []CorrelationPair        `json:"correlations"`
	Insights     []Insight                `json:"insights"`
}

// Fingerprint hashes the canonical JSON serialization of the result.
// Two runs over the same dataset and config produce equal fingerprints.
func (r *AnalysisResult) Fingerprint() core.ResultFingerprint {
	data, err := json.Marshal(r)
	if err != nil {
		return ""
	}
	return core.NewResultFingerprint(data)
}

// StoredReport wraps a result with storage metadata. The identifier and
// creation time live here so they never disturb result determinism.
type StoredReport struct {
	ID        core.ReportID  `json:"id"`
	CreatedAt core.Timestamp `json:"created_at"`
	Result    AnalysisResult `json:"result"`
}

// NewStoredReport assigns a fresh report ID to a finished result
func NewStoredReport(result AnalysisResult) StoredReport {
	return StoredReport{
		ID:        core.ReportID(core.NewID()),
		CreatedAt: core.Now(),
		Result:    result,
	}
}

// Profile returns the profile for the named column, or false when absent
func (r *AnalysisResult) Profile(name string) (ColumnProfile, bool) {
	for _, p := range r.Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return ColumnProfile{}, false
}

// NumericColumns returns the names of columns classified numeric, in order
func (r *AnalysisResult) NumericColumns() []string {
	names := make([]string, 0, len(r.Profiles))
	for _, p := range r.Profiles {
		if p.Role == RoleNumeric {
			names = append(names, p.Name)
		}
	}
	return names
}
