// Package testkit provides deterministic fixtures: a synthetic sample
// dataset for demos and tests, and an in-memory report repository for
// database-less runs.
package testkit

import (
	"fmt"
	"math/rand"
	"time"

	"statscope/domain/dataset"
)

// sampleSeed keeps the generated dataset identical across runs
const sampleSeed = 42

// SampleDataset builds the built-in demo dataset: a small retail orders
// table with an identifier column, a date column, a categorical region, and
// two correlated numeric columns with a few missing cells and one outlier.
func SampleDataset() *dataset.Dataset {
	const rows = 60
	rng := rand.New(rand.NewSource(sampleSeed))

	regions := []string{"north", "south", "east", "west"}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	orderID := make([]dataset.Cell, rows)
	orderDate := make([]dataset.Cell, rows)
	region := make([]dataset.Cell, rows)
	units := make([]dataset.Cell, rows)
	revenue := make([]dataset.Cell, rows)

	for i := 0; i < rows; i++ {
		orderID[i] = dataset.NewTextCell(fmt.Sprintf("ORD-%04d", i+1))
		orderDate[i] = dataset.NewDateCell(start.AddDate(0, 0, i*3))
		region[i] = dataset.NewTextCell(regions[rng.Intn(len(regions))])

		u := float64(5 + rng.Intn(20))
		units[i] = dataset.NewNumericCell(u)
		// Revenue tracks units closely so the pair correlates strongly.
		// The noise term repeats values; a fully unique column would read
		// as an identifier instead of a numeric signal.
		revenue[i] = dataset.NewNumericCell(u*9.5 + float64(rng.Intn(3)))
	}

	// A handful of missing cells exercises the missingness insight
	for _, i := range []int{7, 19, 33, 41} {
		region[i] = dataset.NewMissingCell()
	}
	// One wild value exercises the outlier fences
	units[rows-1] = dataset.NewNumericCell(500)
	revenue[rows-1] = dataset.NewNumericCell(4750)

	ds, err := dataset.New("sample_orders", []dataset.Column{
		{Name: "order_id", Cells: orderID},
		{Name: "order_date", Cells: orderDate},
		{Name: "region", Cells: region},
		{Name: "units", Cells: units},
		{Name: "revenue", Cells: revenue},
	})
	if err != nil {
		// The fixture is fully controlled; a shape error is a programmer bug
		panic(err)
	}
	return ds
}
