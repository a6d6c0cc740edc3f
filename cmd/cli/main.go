// Command cli analyzes one or more CSV/Excel files and prints markdown
// reports to stdout. Several files are analyzed concurrently.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"statscope/adapters/loader"
	"statscope/app"
	"statscope/domain/analysis"
	"statscope/domain/dataset"
	internal "statscope/internal"
	"statscope/report"
)

func main() {
	explainMode := flag.String("explain", "technical", "insight wording: technical or plain")
	concurrency := flag.Int64("concurrency", 4, "max files analyzed at once")
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: cli [flags] <file.csv|file.xlsx> ...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	internal.DefaultLogger.SetLevel(internal.ParseLogLevel(*logLevel))

	config := analysis.DefaultAnalyzerConfig()
	config.ExplainMode = analysis.ExplainMode(*explainMode)
	service := app.NewAnalysisService(config)

	datasets := make([]*dataset.Dataset, 0, flag.NArg())
	for _, path := range flag.Args() {
		ds, err := loader.NewDataReader(path).ReadDataset()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", path, err)
			os.Exit(1)
		}
		datasets = append(datasets, ds)
	}

	batch := app.NewBatchService(service, *concurrency)
	items := batch.AnalyzeAll(context.Background(), datasets)

	failed := 0
	for _, item := range items {
		if item.Err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", item.DatasetName, item.Err)
			failed++
			continue
		}
		fmt.Print(report.Markdown(item.Result))
		fmt.Println()
	}
	if failed > 0 {
		os.Exit(1)
	}
}
