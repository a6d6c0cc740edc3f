// Package report renders a finished analysis into a markdown document and
// an HTML page for the export collaborator. Chart images and PDF layout are
// owned by other collaborators; this package only deals in text.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"statscope/domain/analysis"
)

// Markdown renders the result as a markdown report: overview, insight
// sentences verbatim, the numeric summary table, and strong correlations.
func Markdown(result *analysis.AnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Statscope Report\n\n")
	fmt.Fprintf(&b, "*Dataset: %s*\n\n", result.DatasetName)
	fmt.Fprintf(&b, "- Rows: %d\n- Columns: %d\n\n", result.RowCount, result.ColumnCount)

	b.WriteString("## Insights\n\n")
	for _, ins := range result.Insights {
		fmt.Fprintf(&b, "- %s\n", ins.Text)
	}
	b.WriteString("\n")

	if table := numericTable(result); table != "" {
		b.WriteString("## Numeric Summaries\n\n")
		b.WriteString(table)
		b.WriteString("\n")
	}

	if len(result.Correlations) > 0 {
		b.WriteString("## Strong Correlations\n\n")
		b.WriteString("| Column A | Column B | Coefficient | Direction |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, pair := range result.Correlations {
			fmt.Fprintf(&b, "| %s | %s | %.2f | %s |\n",
				pair.ColumnA, pair.ColumnB, pair.Coefficient, pair.Direction)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// HTML converts the markdown report into a standalone HTML fragment
func HTML(result *analysis.AnalysisResult) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(Markdown(result)))

	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}

// numericTable renders one row per defined numeric summary, in column order
func numericTable(result *analysis.AnalysisResult) string {
	var b strings.Builder
	rows := 0

	for _, profile := range result.Profiles {
		if profile.Role != analysis.RoleNumeric {
			continue
		}
		summary := result.Summaries[profile.Name].Numeric
		if summary == nil || !summary.Defined {
			continue
		}
		if rows == 0 {
			b.WriteString("| Column | Mean | Median | Min | Max | Std Dev | Outliers |\n")
			b.WriteString("|---|---|---|---|---|---|---|\n")
		}
		fmt.Fprintf(&b, "| %s | %.2f | %.2f | %.2f | %.2f | %.2f | %d |\n",
			profile.Name, summary.Mean, summary.Median, summary.Min,
			summary.Max, summary.StdDev, summary.OutlierCount)
		rows++
	}

	if rows == 0 {
		return ""
	}
	return b.String()
}
