package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statscope/domain/analysis"
	"statscope/domain/core"
	"statscope/domain/dataset"
	"statscope/internal/testkit"
)

func newTestService() *AnalysisService {
	return NewAnalysisService(analysis.DefaultAnalyzerConfig())
}

func TestAnalyzeSampleDataset(t *testing.T) {
	result, err := newTestService().Analyze(context.Background(), testkit.SampleDataset())
	require.NoError(t, err)

	assert.Equal(t, "sample_orders", result.DatasetName)
	assert.Equal(t, 60, result.RowCount)
	assert.Equal(t, 5, result.ColumnCount)

	// Every column gets exactly one profile, in original order
	require.Len(t, result.Profiles, 5)
	assert.Equal(t, []string{"order_id", "order_date", "region", "units", "revenue"},
		profileNames(result.Profiles))

	idProfile, ok := result.Profile("order_id")
	require.True(t, ok)
	assert.Equal(t, analysis.RoleIdentifier, idProfile.Role)

	dateProfile, ok := result.Profile("order_date")
	require.True(t, ok)
	assert.Equal(t, analysis.RoleDate, dateProfile.Role)

	assert.Equal(t, []string{"units", "revenue"}, result.NumericColumns())
}

func TestAnalyzeExcludesIdentifiersFromStatistics(t *testing.T) {
	result, err := newTestService().Analyze(context.Background(), testkit.SampleDataset())
	require.NoError(t, err)

	_, hasSummary := result.Summaries["order_id"]
	assert.False(t, hasSummary, "identifier columns never receive statistics")

	for _, pair := range result.Correlations {
		assert.NotEqual(t, "order_id", pair.ColumnA)
		assert.NotEqual(t, "order_id", pair.ColumnB)
	}
}

func TestAnalyzeFindsExpectedSignals(t *testing.T) {
	result, err := newTestService().Analyze(context.Background(), testkit.SampleDataset())
	require.NoError(t, err)

	units := result.Summaries["units"].Numeric
	require.NotNil(t, units)
	assert.True(t, units.Defined)
	assert.GreaterOrEqual(t, units.OutlierCount, 1, "the planted wild value must be flagged")

	require.Len(t, result.Correlations, 1)
	pair := result.Correlations[0]
	assert.Equal(t, analysis.StrengthStrong, pair.Strength)
	assert.Equal(t, analysis.DirectionPositive, pair.Direction)
	assert.Greater(t, pair.Coefficient, 0.7)

	assert.NotEmpty(t, result.Insights)
	assert.Equal(t, analysis.TopicOverview, result.Insights[0].Topic)
}

// Re-running an unchanged dataset yields a byte-identical result
func TestAnalyzeDeterministic(t *testing.T) {
	service := newTestService()

	first, err := service.Analyze(context.Background(), testkit.SampleDataset())
	require.NoError(t, err)
	second, err := service.Analyze(context.Background(), testkit.SampleDataset())
	require.NoError(t, err)

	assert.Equal(t, first.Fingerprint(), second.Fingerprint())
}

func TestAnalyzeEmptyDataset(t *testing.T) {
	service := newTestService()

	_, err := service.Analyze(context.Background(), nil)
	assert.ErrorIs(t, err, core.ErrEmptyDataset)
	assert.True(t, core.IsStructuralError(err))
}

func TestAnalyzeCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestService().Analyze(ctx, testkit.SampleDataset())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzePlainModeSentences(t *testing.T) {
	config := analysis.DefaultAnalyzerConfig()
	config.ExplainMode = analysis.ExplainPlain
	service := NewAnalysisService(config)

	result, err := service.Analyze(context.Background(), testkit.SampleDataset())
	require.NoError(t, err)

	for _, ins := range result.Insights {
		assert.NotContains(t, ins.Text, "mean")
		assert.NotContains(t, ins.Text, "outlier")
		assert.NotContains(t, ins.Text, "r=")
	}
}

func TestAnalyzeAllMissingColumnDoesNotAbort(t *testing.T) {
	ds, err := dataset.New("sparse", []dataset.Column{
		{Name: "empty", Cells: []dataset.Cell{
			dataset.NewMissingCell(), dataset.NewMissingCell(), dataset.NewMissingCell(),
		}},
		{Name: "amount", Cells: []dataset.Cell{
			dataset.NewNumericCell(1), dataset.NewNumericCell(2), dataset.NewNumericCell(2),
		}},
	})
	require.NoError(t, err)

	result, err := newTestService().Analyze(context.Background(), ds)
	require.NoError(t, err)

	profile, ok := result.Profile("empty")
	require.True(t, ok)
	assert.Equal(t, analysis.RoleCategorical, profile.Role)
	assert.Equal(t, 1.0, profile.MissingRatio)
}

func profileNames(profiles []analysis.ColumnProfile) []string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	return names
}
