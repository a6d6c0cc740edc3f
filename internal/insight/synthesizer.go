// Package insight converts structured analysis results into ranked
// plain-language statements. Generation is deterministic: the same inputs
// and mode always produce the same sentences in the same order.
package insight

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"statscope/domain/analysis"
)

// Topic priorities rank insights so the most informative findings surface
// first. Within a topic, original column order is preserved.
const (
	priorityOverview = iota
	priorityMissingness
	priorityNumeric
	priorityCategorical
	priorityCorrelation
)

// Synthesizer renders insight sentences in a single explain mode. The mode
// is fixed per run; sentences from different modes never mix in one result.
type Synthesizer struct {
	config analysis.AnalyzerConfig
}

// NewSynthesizer creates a synthesizer with the given config
func NewSynthesizer(config analysis.AnalyzerConfig) *Synthesizer {
	return &Synthesizer{config: config.Normalize()}
}

// Input carries everything the synthesizer reads. All fields are treated as
// read-only.
type Input struct {
	DatasetName string
	RowCount    int
	ColumnCount int
	Profiles    []analysis.ColumnProfile
	Summaries   map[string]analysis.ColumnSummary
	StrongPairs []analysis.CorrelationPair
}

// Synthesize produces the ordered insight sequence for one analysis run
func (s *Synthesizer) Synthesize(in Input) []analysis.Insight {
	plain := s.config.ExplainMode == analysis.ExplainPlain

	insights := make([]analysis.Insight, 0, len(in.Profiles)+len(in.StrongPairs)+1)
	insights = append(insights, s.overview(in, plain))
	insights = append(insights, s.missingness(in, plain)...)
	insights = append(insights, s.numeric(in, plain)...)
	insights = append(insights, s.categorical(in, plain)...)
	insights = append(insights, s.correlation(in, plain)...)

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Priority < insights[j].Priority
	})
	return insights
}

func (s *Synthesizer) overview(in Input, plain bool) analysis.Insight {
	var b strings.Builder
	if plain {
		fmt.Fprintf(&b, "Your data has %d rows and %d columns.", in.RowCount, in.ColumnCount)
	} else {
		fmt.Fprintf(&b, "Dataset %q contains %d rows and %d columns.", in.DatasetName, in.RowCount, in.ColumnCount)
	}

	if dateCount, span, ok := dateExtent(in); ok {
		if plain {
			fmt.Fprintf(&b, " It includes %s covering about %d days.", plural(dateCount, "date column"), span)
		} else {
			fmt.Fprintf(&b, " It includes %s spanning %d days in total.", plural(dateCount, "date column"), span)
		}
	}

	return analysis.Insight{Text: b.String(), Priority: priorityOverview, Topic: analysis.TopicOverview}
}

func (s *Synthesizer) missingness(in Input, plain bool) []analysis.Insight {
	out := make([]analysis.Insight, 0)
	for _, profile := range in.Profiles {
		if profile.MissingRatio <= s.config.MissingnessThreshold {
			continue
		}
		var text string
		if plain {
			text = fmt.Sprintf("Column %q has no value for %.1f%% of its rows.", profile.Name, profile.MissingRatio*100)
		} else {
			text = fmt.Sprintf("Column %q is missing %d of %d values (%.1f%%).", profile.Name, profile.MissingCount, in.RowCount, profile.MissingRatio*100)
		}
		out = append(out, analysis.Insight{Text: text, Priority: priorityMissingness, Topic: analysis.TopicMissingness})
	}
	return out
}

func (s *Synthesizer) numeric(in Input, plain bool) []analysis.Insight {
	out := make([]analysis.Insight, 0)
	for _, profile := range in.Profiles {
		if profile.Role != analysis.RoleNumeric {
			continue
		}
		summary := in.Summaries[profile.Name].Numeric
		if summary == nil || !summary.Defined {
			continue
		}

		var text string
		if plain {
			text = fmt.Sprintf("Most values in %s sit around %.1f, usually falling between %.1f and %.1f.",
				profile.Name, summary.Mean, summary.Min, summary.Max)
		} else {
			text = fmt.Sprintf("For %s, the mean is %.2f and the median is %.2f, with values ranging from %.2f to %.2f (std dev %.2f).",
				profile.Name, summary.Mean, summary.Median, summary.Min, summary.Max, summary.StdDev)
		}
		out = append(out, analysis.Insight{Text: text, Priority: priorityNumeric, Topic: analysis.TopicNumeric})

		if summary.OutlierCount > 0 {
			if plain {
				text = fmt.Sprintf("%s contains %s.", profile.Name, plural(summary.OutlierCount, "unusually high or low value"))
			} else {
				text = fmt.Sprintf("%s has %s outside the fences [%.2f, %.2f].",
					profile.Name, plural(summary.OutlierCount, "outlier"), summary.LowerFence, summary.UpperFence)
			}
			out = append(out, analysis.Insight{Text: text, Priority: priorityNumeric, Topic: analysis.TopicNumeric})
		}
	}
	return out
}

func (s *Synthesizer) categorical(in Input, plain bool) []analysis.Insight {
	out := make([]analysis.Insight, 0)
	for _, profile := range in.Profiles {
		if profile.Role != analysis.RoleCategorical {
			continue
		}
		summary := in.Summaries[profile.Name].Categorical
		if summary == nil || summary.DistinctCount == 0 {
			continue
		}

		var text string
		if plain {
			text = fmt.Sprintf("%q is the most common value in %s, appearing in %.1f%% of rows.",
				summary.TopValue, profile.Name, summary.TopShare*100)
		} else {
			text = fmt.Sprintf("The most frequent value in %s is %q, accounting for %.1f%% of rows across %d distinct values.",
				profile.Name, summary.TopValue, summary.TopShare*100, summary.DistinctCount)
		}
		out = append(out, analysis.Insight{Text: text, Priority: priorityCategorical, Topic: analysis.TopicCategorical})
	}
	return out
}

func (s *Synthesizer) correlation(in Input, plain bool) []analysis.Insight {
	out := make([]analysis.Insight, 0, len(in.StrongPairs))
	for _, pair := range in.StrongPairs {
		var text string
		if plain {
			if pair.Direction == analysis.DirectionNegative {
				text = fmt.Sprintf("As %s goes up, %s tends to go down.", pair.ColumnA, pair.ColumnB)
			} else {
				text = fmt.Sprintf("%s and %s tend to rise and fall together.", pair.ColumnA, pair.ColumnB)
			}
		} else {
			text = fmt.Sprintf("%s and %s have a %s %s correlation (r=%.2f).",
				pair.ColumnA, pair.ColumnB, pair.Strength, pair.Direction, pair.Coefficient)
		}
		out = append(out, analysis.Insight{Text: text, Priority: priorityCorrelation, Topic: analysis.TopicCorrelation})
	}
	return out
}

// dateExtent returns the date column count and the combined span in whole
// days across every defined date summary.
func dateExtent(in Input) (count, spanDays int, ok bool) {
	var earliest, latest time.Time
	for _, profile := range in.Profiles {
		if profile.Role != analysis.RoleDate {
			continue
		}
		summary := in.Summaries[profile.Name].Date
		if summary == nil || !summary.Defined {
			continue
		}
		if count == 0 {
			earliest, latest = summary.Earliest, summary.Latest
		} else {
			if summary.Earliest.Before(earliest) {
				earliest = summary.Earliest
			}
			if summary.Latest.After(latest) {
				latest = summary.Latest
			}
		}
		count++
	}
	if count == 0 {
		return 0, 0, false
	}
	return count, int(latest.Sub(earliest).Hours() / 24), true
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
