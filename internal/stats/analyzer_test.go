package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/longbridgeapp/assert"
	"gonum.org/v1/gonum/stat"
)

func mustIngest(t *testing.T, vals ...float64) *Analyzer {
	t.Helper()
	a := NewAnalyzer()
	if err := a.Ingest(vals); err != nil {
		t.Fatalf("ingest %v: %v", vals, err)
	}
	return a
}

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestAnalyzer_TextbookVariance(t *testing.T) {
	a := mustIngest(t, 2, 4, 4, 4, 5, 5, 7, 9)

	checks := []struct {
		name string
		get  func() (float64, error)
		want float64
	}{
		{"mean", a.Mean, 5},
		{"median", a.Median, 4.5},
		{"variance", a.Variance, 32.0 / 7.0},
		{"pop_variance", a.PopVariance, 4},
		{"std_deviation", a.StdDeviation, math.Sqrt(32.0 / 7.0)},
		{"pop_std_deviation", a.PopStdDeviation, 2},
	}
	for _, c := range checks {
		got, err := c.get()
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if !almostEqual(got, c.want, 1e-12) {
			t.Errorf("%s: got %v want %v", c.name, got, c.want)
		}
	}
	n, err := a.SetSize()
	if err != nil || n != 8 {
		t.Fatalf("set size: got %d, %v", n, err)
	}
}

func TestAnalyzer_MatchesGonum(t *testing.T) {
	vals := []float64{12.5, -3, 0.25, 1e3, 42, 42, 7.75, -18.5, 3}
	a := mustIngest(t, vals...)

	mean, _ := a.Mean()
	variance, _ := a.Variance()
	pop, _ := a.PopVariance()
	if !almostEqual(mean, stat.Mean(vals, nil), 1e-9) {
		t.Errorf("mean %v != gonum %v", mean, stat.Mean(vals, nil))
	}
	if !almostEqual(variance, stat.Variance(vals, nil), 1e-6) {
		t.Errorf("variance %v != gonum %v", variance, stat.Variance(vals, nil))
	}
	if !almostEqual(pop, stat.PopVariance(vals, nil), 1e-6) {
		t.Errorf("pop variance %v != gonum %v", pop, stat.PopVariance(vals, nil))
	}
}

func TestAnalyzer_Median(t *testing.T) {
	cases := []struct {
		name string
		in   []float64
		want float64
	}{
		{"even", []float64{1, 2, 3, 4}, 2.5},
		{"odd", []float64{1, 2, 3}, 2},
		{"single", []float64{7}, 7},
		{"unsorted even", []float64{10, 9, 1, 2}, 5.5},
		{"numeric not lexical", []float64{10, 9, 100}, 10},
	}
	for _, c := range cases {
		a := mustIngest(t, c.in...)
		got, err := a.Median()
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if got != c.want {
			t.Errorf("%s: median got %v want %v", c.name, got, c.want)
		}
	}
}

func TestAnalyzer_BoundsProperties(t *testing.T) {
	sets := [][]float64{
		{5},
		{3, 1, 2},
		{-4, -4, 10, 0.5},
		{1e6, -1e6, 3, 3, 3},
		{9, 10, 11, 100, 2},
		{0.1, 0.1, 0.1},
		{1.7e308, 1.7e308},
		{-1.7e308, -1.5e308, -1.7e308},
	}
	for _, set := range sets {
		a := mustIngest(t, set...)
		lo, _ := a.Min()
		hi, _ := a.Max()
		med, _ := a.Median()
		mean, _ := a.Mean()
		if lo > med || med > hi {
			t.Errorf("%v: median %v outside [%v,%v]", set, med, lo, hi)
		}
		if lo > mean || mean > hi {
			t.Errorf("%v: mean %v outside [%v,%v]", set, mean, lo, hi)
		}
		total := 0
		for _, c := range a.Frequencies() {
			total += c
		}
		if total != len(set) {
			t.Errorf("%v: frequency counts sum %d != %d", set, total, len(set))
		}
	}
}

func TestAnalyzer_OrderInvariantAndIdempotent(t *testing.T) {
	ref := mustIngest(t, 1, 2, 3)
	for _, perm := range [][]float64{{3, 1, 2}, {2, 3, 1}, {1, 2, 3}} {
		a := mustIngest(t, perm...)
		assert.Equal(t, ref.Stats(), a.Stats())
		assert.Equal(t, ref.Frequencies(), a.Frequencies())
		assert.Equal(t, ref.Values(), a.Values())
	}

	a := mustIngest(t, 4, 8, 15, 16, 23, 42)
	first := a.Stats()
	if err := a.Ingest([]float64{42, 23, 16, 15, 8, 4}); err != nil {
		t.Fatalf("re-ingest: %v", err)
	}
	assert.Equal(t, first, a.Stats())
}

func TestAnalyzer_IngestDoesNotAliasInput(t *testing.T) {
	in := []float64{3, 1, 2}
	a := mustIngest(t, in...)
	if in[0] != 3 || in[1] != 1 || in[2] != 2 {
		t.Fatalf("input was mutated: %v", in)
	}
	in[0] = 99
	if hi, _ := a.Max(); hi != 3 {
		t.Fatalf("dataset shares storage with caller slice, max=%v", hi)
	}
}

func TestAnalyzer_Replacement(t *testing.T) {
	a := mustIngest(t, 1, 1, 1, 50)
	if err := a.Ingest([]float64{2, 3}); err != nil {
		t.Fatal(err)
	}
	if f := a.Frequency(1, false); f != 0 {
		t.Fatalf("stale frequency for 1: %v", f)
	}
	if hi, _ := a.Max(); hi != 3 {
		t.Fatalf("stale max: %v", hi)
	}
}

func TestAnalyzer_FailedIngestKeepsPriorState(t *testing.T) {
	a := mustIngest(t, 1, 2, 3)
	before := a.Stats()

	if err := a.Ingest(nil); !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
	if err := a.Ingest([]float64{1, math.NaN()}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for NaN, got %v", err)
	}
	if err := a.IngestWeighted(map[float64]int{1: 2, 5: -1}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for negative count, got %v", err)
	}
	assert.Equal(t, before, a.Stats())
}

func TestAnalyzer_IngestWeighted(t *testing.T) {
	a := NewAnalyzer()
	if err := a.IngestWeighted(map[float64]int{1: 2, 2: 2, 3: 1, 4: 0}); err != nil {
		t.Fatalf("ingest weighted: %v", err)
	}
	assert.Equal(t, []float64{1, 1, 2, 2, 3}, a.Values())
	assert.Equal(t, 0.0, a.Frequency(4, false))

	if err := a.IngestWeighted(map[float64]int{7: 0}); !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset for all-zero counts, got %v", err)
	}
}

func TestAnalyzer_IngestWeightedCountOverflow(t *testing.T) {
	a := mustIngest(t, 4, 8)
	before := a.Stats()
	huge := []map[float64]int{
		{1: math.MaxInt, 2: 2},
		{1: math.MaxInt / 2, 2: math.MaxInt / 2, 3: 5},
		{1: maxExpandedValues, 2: 1},
	}
	for _, counts := range huge {
		if err := a.IngestWeighted(counts); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("IngestWeighted(%v): expected ErrInvalidArgument, got %v", counts, err)
		}
	}
	assert.Equal(t, before, a.Stats())
}

func TestAnalyzer_MeanNearFloatLimit(t *testing.T) {
	a := mustIngest(t, 1.7e308, 1.7e308)
	mean, err := a.Mean()
	assert.Nil(t, err)
	assert.Equal(t, 1.7e308, mean)
	pv, _ := a.PopVariance()
	assert.Equal(t, 0.0, pv)

	a = mustIngest(t, 1.61e308, 1.79e308)
	mean, _ = a.Mean()
	if math.IsInf(mean, 0) || !almostEqual(mean, 1.7e308, 1e295) {
		t.Fatalf("mean = %v, want 1.7e308", mean)
	}
}

func TestAnalyzer_Frequency(t *testing.T) {
	a := mustIngest(t, 1, 1, 2, 2, 3)
	cases := []struct {
		value float64
		pct   bool
		want  float64
	}{
		{1, false, 2},
		{3, false, 1},
		{1, true, 0.4},
		{3, true, 0.2},
		{42, false, 0},
		{42, true, 0},
	}
	for _, c := range cases {
		if got := a.Frequency(c.value, c.pct); !almostEqual(got, c.want, 1e-12) {
			t.Errorf("Frequency(%v, %v) = %v, want %v", c.value, c.pct, got, c.want)
		}
	}
	if got := NewAnalyzer().Frequency(1, true); got != 0 {
		t.Errorf("frequency before ingest = %v, want 0", got)
	}
}

func TestAnalyzer_MostAndLeastFrequent(t *testing.T) {
	a := mustIngest(t, 1, 1, 2, 2, 3)

	most, err := a.MostFrequent(1)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, []FrequencyBucket{{Count: 2, Values: []float64{1, 2}}}, most)

	least, err := a.LeastFrequent(1)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, []FrequencyBucket{{Count: 1, Values: []float64{3}}}, least)

	most, _ = a.MostFrequent(3)
	assert.Equal(t, []FrequencyBucket{
		{Count: 2, Values: []float64{1, 2}},
		{Count: 1, Values: []float64{3}},
	}, most)

	// asking for more than exists returns every bucket
	least, _ = a.LeastFrequent(10)
	assert.Equal(t, []FrequencyBucket{
		{Count: 1, Values: []float64{3}},
		{Count: 2, Values: []float64{1, 2}},
	}, least)
}

func TestAnalyzer_FrequencyBucketsAreCopies(t *testing.T) {
	a := mustIngest(t, 5, 5, 6)
	most, _ := a.MostFrequent(1)
	most[0].Values[0] = -1
	again, _ := a.MostFrequent(1)
	assert.Equal(t, []float64{5}, again[0].Values)
}

func TestAnalyzer_Errors(t *testing.T) {
	fresh := NewAnalyzer()
	if _, err := fresh.Variance(); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("variance before ingest: got %v", err)
	}
	if _, err := fresh.Min(); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("min before ingest: got %v", err)
	}
	if _, err := fresh.Max(); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("max before ingest: got %v", err)
	}
	if _, err := fresh.SetSize(); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("set size before ingest: got %v", err)
	}
	if _, err := fresh.MostFrequent(1); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("most frequent before ingest: got %v", err)
	}
	if fresh.Stats() != nil || fresh.Values() != nil {
		t.Errorf("expected nil snapshot copies before ingest")
	}
	if err := fresh.Ingest([]float64{}); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("empty ingest: got %v", err)
	}

	single := mustIngest(t, 7)
	if _, err := single.Variance(); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("sample variance of one value: got %v", err)
	}
	if _, err := single.StdDeviation(); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("sample std deviation of one value: got %v", err)
	}
	if v, err := single.PopVariance(); err != nil || v != 0 {
		t.Errorf("pop variance of one value: got %v, %v", v, err)
	}
	if _, err := single.MostFrequent(0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("most frequent(0): got %v", err)
	}
}

func TestAnalyzer_StatAliases(t *testing.T) {
	a := mustIngest(t, 2, 4, 4, 4, 5, 5, 7, 9)
	cases := []struct {
		names []string
		want  float64
	}{
		{[]string{"mean", "average", "getMean", "get_average"}, 5},
		{[]string{"set_size", "setSize", "setCount", "set_count", "getSetSize"}, 8},
		{[]string{"std_deviation", "stdDeviation", "stdDev", "std_dev"}, math.Sqrt(32.0 / 7.0)},
		{[]string{"pop_std_deviation", "popStdDeviation", "popStdDev", "pop_std_dev"}, 2},
		{[]string{"pop_variance", "popVariance"}, 4},
		{[]string{"median", "Median"}, 4.5},
	}
	for _, c := range cases {
		for _, name := range c.names {
			got, err := a.Stat(name)
			if err != nil {
				t.Fatalf("Stat(%q): %v", name, err)
			}
			if !almostEqual(got, c.want, 1e-12) {
				t.Errorf("Stat(%q) = %v, want %v", name, got, c.want)
			}
		}
	}

	_, err := a.Stat("kurtosis")
	if !errors.Is(err, ErrUnknownStatistic) || !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("unknown statistic: got %v", err)
	}
}
