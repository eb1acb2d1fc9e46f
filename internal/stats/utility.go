package stats

import (
	"math"
	"sort"

	"github.com/hyp3rd/ewrap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// The functions below are one-shot counterparts of Analyzer that keep no state.

// ValueCount is one row of a frequency table.
type ValueCount struct {
	Value float64
	Count int
}

func requireValues(op string, values []float64) error {
	if len(values) == 0 {
		return ewrap.Wrap(ErrEmptyDataset, op)
	}
	return nil
}

// Sum returns the sum of values.
func Sum(values []float64) (float64, error) {
	if err := requireValues("sum", values); err != nil {
		return 0, err
	}
	return floats.Sum(values), nil
}

// Min returns the smallest of values.
func Min(values []float64) (float64, error) {
	if err := requireValues("min", values); err != nil {
		return 0, err
	}
	return floats.Min(values), nil
}

// Max returns the largest of values.
func Max(values []float64) (float64, error) {
	if err := requireValues("max", values); err != nil {
		return 0, err
	}
	return floats.Max(values), nil
}

// Mean returns the arithmetic mean of values.
func Mean(values []float64) (float64, error) {
	if err := requireValues("mean", values); err != nil {
		return 0, err
	}
	return stat.Mean(values, nil), nil
}

// Frequencies counts the occurrences of each distinct value.
func Frequencies(values []float64) map[float64]int {
	freq := make(map[float64]int)
	for _, v := range values {
		freq[v]++
	}
	return freq
}

// FrequencyTable returns the distinct values with their counts, ordered ascending by
// count and by value within equal counts.
func FrequencyTable(values []float64) []ValueCount {
	freq := Frequencies(values)
	table := make([]ValueCount, 0, len(freq))
	for v, c := range freq {
		table = append(table, ValueCount{Value: v, Count: c})
	}
	sort.Slice(table, func(i, j int) bool {
		if table[i].Count == table[j].Count {
			return table[i].Value < table[j].Value
		}
		return table[i].Count < table[j].Count
	})
	return table
}

// Mode returns the single most common value. It fails with ErrAmbiguousMode when two or
// more values share the highest count.
func Mode(values []float64) (float64, error) {
	if err := requireValues("mode", values); err != nil {
		return 0, err
	}
	table := FrequencyTable(values)
	if len(table) == 1 {
		return table[0].Value, nil
	}
	last, prev := table[len(table)-1], table[len(table)-2]
	if last.Count != prev.Count {
		return last.Value, nil
	}
	return 0, ewrap.Wrapf(ErrAmbiguousMode, "%d values occur %d times", countAt(table, last.Count), last.Count)
}

func countAt(table []ValueCount, count int) int {
	n := 0
	for _, vc := range table {
		if vc.Count == count {
			n++
		}
	}
	return n
}

// Variance returns the sample variance (n-1 denominator) when sample is true and the
// population variance otherwise.
func Variance(values []float64, sample bool) (float64, error) {
	if err := requireValues("variance", values); err != nil {
		return 0, err
	}
	if !sample {
		return stat.PopVariance(values, nil), nil
	}
	if len(values) < 2 {
		return 0, ewrap.Wrap(ErrInsufficientData, "sample variance needs at least 2 values")
	}
	return stat.Variance(values, nil), nil
}

// StandardDeviation is the square root of Variance.
func StandardDeviation(values []float64, sample bool) (float64, error) {
	v, err := Variance(values, sample)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}
