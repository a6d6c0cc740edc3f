package app

import (
	"context"

	"statscope/domain/analysis"
	"statscope/domain/core"
	"statscope/domain/dataset"
	internal "statscope/internal"
	"statscope/internal/classify"
	"statscope/internal/correlate"
	"statscope/internal/describe"
	"statscope/internal/insight"
)

// AnalysisService orchestrates one analysis run: classification, summaries,
// outliers, correlations, then insight synthesis. The stages execute
// strictly sequentially; each depends on the full output of its predecessor.
// The service holds no mutable state between runs, so one instance may serve
// concurrent callers as long as each run gets its own dataset.
type AnalysisService struct {
	config      analysis.AnalyzerConfig
	classifier  *classify.Classifier
	statsEngine *describe.Engine
	correlator  *correlate.Analyzer
	synthesizer *insight.Synthesizer
	logger      *internal.Logger
}

// NewAnalysisService creates an analysis service with the given thresholds
func NewAnalysisService(config analysis.AnalyzerConfig) *AnalysisService {
	config = config.Normalize()
	return &AnalysisService{
		config:      config,
		classifier:  classify.NewClassifier(config),
		statsEngine: describe.NewEngine(config),
		correlator:  correlate.NewAnalyzer(config),
		synthesizer: insight.NewSynthesizer(config),
		logger:      internal.DefaultLogger,
	}
}

// Config returns the normalized configuration of this service
func (s *AnalysisService) Config() analysis.AnalyzerConfig {
	return s.config
}

// Analyze runs the full pipeline over one dataset and assembles the result.
// The run is atomic: either a complete result is produced or the run fails
// outright with a structural error. Stage-local degeneracies never abort.
func (s *AnalysisService) Analyze(ctx context.Context, ds *dataset.Dataset) (*analysis.AnalysisResult, error) {
	if ds == nil || ds.RowCount() == 0 || ds.ColumnCount() == 0 {
		rows, cols := 0, 0
		if ds != nil {
			rows, cols = ds.RowCount(), ds.ColumnCount()
		}
		return nil, core.NewEmptyDatasetError(rows, cols)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.Debug("analyzing dataset %q (%d rows, %d columns)", ds.Name, ds.RowCount(), ds.ColumnCount())

	profiles := s.classifier.ClassifyAll(ds)
	summaries := s.statsEngine.Summarize(ds, profiles)
	pairs := s.correlator.Pairs(ds, profiles)
	strong := s.correlator.StrongPairs(pairs)

	insights := s.synthesizer.Synthesize(insight.Input{
		DatasetName: ds.Name,
		RowCount:    ds.RowCount(),
		ColumnCount: ds.ColumnCount(),
		Profiles:    profiles,
		Summaries:   summaries,
		StrongPairs: strong,
	})

	result := &analysis.AnalysisResult{
		DatasetName:  ds.Name,
		RowCount:     ds.RowCount(),
		ColumnCount:  ds.ColumnCount(),
		Profiles:     profiles,
		Summaries:    summaries,
		Correlations: strong,
		Insights:     insights,
	}

	s.logger.Info("analysis of %q complete: %d insights, %d strong correlations",
		ds.Name, len(insights), len(strong))
	return result, nil
}
