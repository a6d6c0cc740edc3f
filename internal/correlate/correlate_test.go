package correlate

import (
	"math"
	"testing"

	"statscope/domain/analysis"
	"statscope/domain/dataset"
)

func newTestAnalyzer() *Analyzer {
	return NewAnalyzer(analysis.DefaultAnalyzerConfig())
}

func numericColumn(name string, values ...float64) dataset.Column {
	cells := make([]dataset.Cell, len(values))
	for i, v := range values {
		cells[i] = dataset.NewNumericCell(v)
	}
	return dataset.Column{Name: name, Cells: cells}
}

func numericProfiles(names ...string) []analysis.ColumnProfile {
	profiles := make([]analysis.ColumnProfile, len(names))
	for i, name := range names {
		profiles[i] = analysis.ColumnProfile{Name: name, Role: analysis.RoleNumeric}
	}
	return profiles
}

func TestPairsPerfectCorrelation(t *testing.T) {
	ds, err := dataset.New("t", []dataset.Column{
		numericColumn("x", 1, 2, 3, 4, 5),
		numericColumn("y", 2, 4, 6, 8, 10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pairs := newTestAnalyzer().Pairs(ds, numericProfiles("x", "y"))
	if len(pairs) != 1 {
		t.Fatalf("expected exactly 1 pair, got %d", len(pairs))
	}

	pair := pairs[0]
	if math.Abs(pair.Coefficient-1.0) > 1e-9 {
		t.Errorf("expected r=1, got %v", pair.Coefficient)
	}
	if pair.Strength != analysis.StrengthStrong {
		t.Errorf("expected strong, got %s", pair.Strength)
	}
	if pair.Direction != analysis.DirectionPositive {
		t.Errorf("expected positive, got %s", pair.Direction)
	}
}

func TestPairsNegativeCorrelation(t *testing.T) {
	ds, err := dataset.New("t", []dataset.Column{
		numericColumn("x", 1, 2, 3, 4, 5),
		numericColumn("y", 10, 8, 6, 4, 2),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pairs := newTestAnalyzer().Pairs(ds, numericProfiles("x", "y"))
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
	if pairs[0].Direction != analysis.DirectionNegative {
		t.Errorf("expected negative direction, got %s", pairs[0].Direction)
	}
	if pairs[0].Coefficient >= 0 {
		t.Errorf("expected negative coefficient, got %v", pairs[0].Coefficient)
	}
}

func TestPairsNoSelfOrDuplicatePairs(t *testing.T) {
	ds, err := dataset.New("t", []dataset.Column{
		numericColumn("a", 1, 2, 3, 4),
		numericColumn("b", 2, 3, 5, 7),
		numericColumn("c", 9, 7, 4, 2),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pairs := newTestAnalyzer().Pairs(ds, numericProfiles("a", "b", "c"))
	if len(pairs) != 3 {
		t.Fatalf("expected 3 unordered pairs from 3 columns, got %d", len(pairs))
	}

	seen := make(map[string]bool)
	for _, pair := range pairs {
		if pair.ColumnA == pair.ColumnB {
			t.Errorf("self-pair produced: %s", pair.ColumnA)
		}
		key := pair.ColumnA + "|" + pair.ColumnB
		reversed := pair.ColumnB + "|" + pair.ColumnA
		if seen[key] || seen[reversed] {
			t.Errorf("duplicate pair: %s", key)
		}
		seen[key] = true
	}
}

func TestPairsPairwiseCompleteObservations(t *testing.T) {
	ds, err := dataset.New("t", []dataset.Column{
		{Name: "x", Cells: []dataset.Cell{
			dataset.NewNumericCell(1),
			dataset.NewMissingCell(),
			dataset.NewNumericCell(3),
			dataset.NewNumericCell(4),
			dataset.NewNumericCell(5),
		}},
		{Name: "y", Cells: []dataset.Cell{
			dataset.NewNumericCell(2),
			dataset.NewNumericCell(9),
			dataset.NewNumericCell(6),
			dataset.NewMissingCell(),
			dataset.NewNumericCell(10),
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Only rows 0, 2 and 4 are jointly present; they are perfectly linear
	pairs := newTestAnalyzer().Pairs(ds, numericProfiles("x", "y"))
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
	if math.Abs(pairs[0].Coefficient-1.0) > 1e-9 {
		t.Errorf("expected r=1 over joint rows, got %v", pairs[0].Coefficient)
	}
}

func TestPairsSkipsInsufficientJointRows(t *testing.T) {
	ds, err := dataset.New("t", []dataset.Column{
		{Name: "x", Cells: []dataset.Cell{
			dataset.NewNumericCell(1),
			dataset.NewNumericCell(2),
			dataset.NewMissingCell(),
			dataset.NewMissingCell(),
		}},
		{Name: "y", Cells: []dataset.Cell{
			dataset.NewNumericCell(3),
			dataset.NewNumericCell(4),
			dataset.NewNumericCell(5),
			dataset.NewNumericCell(6),
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pairs := newTestAnalyzer().Pairs(ds, numericProfiles("x", "y")); len(pairs) != 0 {
		t.Errorf("2 joint rows are below the minimum, expected no pairs, got %d", len(pairs))
	}
}

func TestPairsSkipsConstantColumn(t *testing.T) {
	ds, err := dataset.New("t", []dataset.Column{
		numericColumn("flat", 5, 5, 5, 5),
		numericColumn("y", 1, 2, 3, 4),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pairs := newTestAnalyzer().Pairs(ds, numericProfiles("flat", "y")); len(pairs) != 0 {
		t.Errorf("constant column leaves Pearson undefined, expected no pairs, got %d", len(pairs))
	}
}

func TestPairsIgnoresNonNumericRoles(t *testing.T) {
	ds, err := dataset.New("t", []dataset.Column{
		numericColumn("id", 1, 2, 3, 4),
		numericColumn("amount", 2, 4, 6, 8),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	profiles := []analysis.ColumnProfile{
		{Name: "id", Role: analysis.RoleIdentifier},
		{Name: "amount", Role: analysis.RoleNumeric},
	}

	if pairs := newTestAnalyzer().Pairs(ds, profiles); len(pairs) != 0 {
		t.Errorf("a single numeric column has no pairs, got %d", len(pairs))
	}
}

// Swapping column order flips the pair orientation but never the coefficient
func TestPairsSymmetric(t *testing.T) {
	x := numericColumn("x", 1, 3, 2, 5, 4)
	y := numericColumn("y", 2, 5, 5, 9, 7)

	forward, err := dataset.New("t", []dataset.Column{x, y})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reversed, err := dataset.New("t", []dataset.Column{y, x})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := newTestAnalyzer().Pairs(forward, numericProfiles("x", "y"))
	b := newTestAnalyzer().Pairs(reversed, numericProfiles("y", "x"))
	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("expected 1 pair each, got %d and %d", len(a), len(b))
	}
	if math.Abs(a[0].Coefficient-b[0].Coefficient) > 1e-12 {
		t.Errorf("coefficient not symmetric: %v vs %v", a[0].Coefficient, b[0].Coefficient)
	}
}

func TestStrongPairsFilter(t *testing.T) {
	pairs := []analysis.CorrelationPair{
		{ColumnA: "a", ColumnB: "b", Coefficient: 0.85, Strength: analysis.StrengthStrong},
		{ColumnA: "a", ColumnB: "c", Coefficient: 0.5, Strength: analysis.StrengthModerate},
		{ColumnA: "b", ColumnB: "c", Coefficient: -0.9, Strength: analysis.StrengthStrong},
		{ColumnA: "c", ColumnB: "d", Coefficient: 0.1, Strength: analysis.StrengthWeak},
	}

	strong := newTestAnalyzer().StrongPairs(pairs)
	if len(strong) != 2 {
		t.Fatalf("expected 2 strong pairs, got %d", len(strong))
	}
	if strong[0].ColumnB != "b" || strong[1].ColumnA != "b" {
		t.Error("strong pairs should keep computation order")
	}
}

func TestLabelStrengthBoundaries(t *testing.T) {
	a := newTestAnalyzer()
	tests := []struct {
		r        float64
		expected analysis.CorrelationStrength
	}{
		{0.7, analysis.StrengthStrong},
		{-0.7, analysis.StrengthStrong},
		{0.69, analysis.StrengthModerate},
		{0.4, analysis.StrengthModerate},
		{0.39, analysis.StrengthWeak},
		{0, analysis.StrengthWeak},
	}
	for _, tt := range tests {
		if got := a.labelStrength(tt.r); got != tt.expected {
			t.Errorf("labelStrength(%v) = %s, expected %s", tt.r, got, tt.expected)
		}
	}
}
