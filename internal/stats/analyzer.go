package stats

import (
	"math"
	"sort"

	"github.com/hyp3rd/ewrap"
)

// FrequencyBucket groups the distinct values that occur exactly Count times.
type FrequencyBucket struct {
	Count  int
	Values []float64
}

// snapshot is everything derived from one ingested dataset.
type snapshot struct {
	set         []float64
	data        map[string]float64
	freqByValue map[float64]int
	freqByCount map[int][]float64
	counts      []int // distinct occurrence counts, ascending
}

// Analyzer holds a dataset and the statistics derived from it.
//
// An Analyzer is not safe for concurrent use. Ingest swaps the whole snapshot in one
// assignment, but callers sharing an instance across goroutines must hold an exclusive
// lock around Ingest and IngestWeighted.
type Analyzer struct {
	snap *snapshot
}

// NewAnalyzer returns an Analyzer with no dataset.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Ingest replaces the current dataset with values and recomputes every derived statistic.
// On error the previous dataset is left untouched.
func (a *Analyzer) Ingest(values []float64) error {
	s, err := buildSnapshot(values)
	if err != nil {
		return err
	}
	a.snap = s
	return nil
}

// maxExpandedValues bounds the dataset IngestWeighted is willing to materialize.
const maxExpandedValues = math.MaxInt32

// IngestWeighted expands a value -> occurrence count mapping and ingests the result.
// Counts summing past maxExpandedValues are rejected with ErrInvalidArgument.
func (a *Analyzer) IngestWeighted(valueCounts map[float64]int) error {
	total := 0
	for v, n := range valueCounts {
		if n < 0 {
			return ewrap.Wrapf(ErrInvalidArgument, "negative occurrence count %d for value %g", n, v)
		}
		if n > math.MaxInt-total {
			return ewrap.Wrapf(ErrInvalidArgument, "total occurrence count overflows")
		}
		total += n
	}
	if total > maxExpandedValues {
		return ewrap.Wrapf(ErrInvalidArgument, "total occurrence count %d exceeds %d", total, maxExpandedValues)
	}
	values := make([]float64, 0, total)
	for v, n := range valueCounts {
		for i := 0; i < n; i++ {
			values = append(values, v)
		}
	}
	return a.Ingest(values)
}

func buildSnapshot(values []float64) (*snapshot, error) {
	if len(values) == 0 {
		return nil, ewrap.Wrap(ErrEmptyDataset, "ingest")
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ewrap.Wrapf(ErrInvalidArgument, "value at index %d is not finite", i)
		}
	}

	s := &snapshot{data: make(map[string]float64, len(StatNames))}
	s.set = make([]float64, len(values))
	copy(s.set, values)
	sort.Float64s(s.set)

	n := len(s.set)
	s.data[StatSetSize] = float64(n)
	s.calcDeviations()
	s.calcMean()
	s.calcMedian()
	s.setFreqs()
	return s, nil
}

// calcDeviations fills the variance family using the mean-centered two-pass form.
func (s *snapshot) calcDeviations() {
	n := float64(len(s.set))
	mean := s.mean()
	var ss float64
	for _, x := range s.set {
		d := x - mean
		ss += d * d
	}
	s.data[StatPopVariance] = ss / n
	s.data[StatPopStdDeviation] = math.Sqrt(ss / n)
	if len(s.set) > 1 {
		s.data[StatVariance] = ss / (n - 1)
		s.data[StatStdDeviation] = math.Sqrt(ss / (n - 1))
	}
}

func (s *snapshot) calcMean() {
	s.data[StatMean] = s.mean()
}

// mean of the sorted set, kept within [min, max]. Sums that overflow fall back
// to accumulating x/n.
func (s *snapshot) mean() float64 {
	n := float64(len(s.set))
	var sum float64
	for _, x := range s.set {
		sum += x
	}
	m := sum / n
	if math.IsInf(sum, 0) {
		m = 0
		for _, x := range s.set {
			m += x / n
		}
	}
	return math.Max(s.set[0], math.Min(m, s.set[len(s.set)-1]))
}

func (s *snapshot) calcMedian() {
	n := len(s.set)
	mid := n / 2
	if n%2 == 0 {
		s.data[StatMedian] = (s.set[mid-1] + s.set[mid]) / 2
		return
	}
	s.data[StatMedian] = s.set[mid]
}

// setFreqs builds both frequency indexes from the sorted set in one run-length pass.
func (s *snapshot) setFreqs() {
	s.freqByValue = make(map[float64]int)
	s.freqByCount = make(map[int][]float64)
	for i := 0; i < len(s.set); {
		j := i
		for j < len(s.set) && s.set[j] == s.set[i] {
			j++
		}
		v, c := s.set[i], j-i
		s.freqByValue[v] = c
		s.freqByCount[c] = append(s.freqByCount[c], v)
		i = j
	}
	s.counts = make([]int, 0, len(s.freqByCount))
	for c := range s.freqByCount {
		s.counts = append(s.counts, c)
	}
	sort.Ints(s.counts)
}

// Frequency returns how often value occurs, or its share of the dataset when asPercentage
// is set. Values not in the dataset have frequency 0.
func (a *Analyzer) Frequency(value float64, asPercentage bool) float64 {
	if a.snap == nil {
		return 0
	}
	count := float64(a.snap.freqByValue[value])
	if asPercentage {
		return count / float64(len(a.snap.set))
	}
	return count
}

// MostFrequent returns whole frequency buckets, highest count first, until at least count
// values have been collected. Values tied at the cutoff count are all returned.
func (a *Analyzer) MostFrequent(count int) ([]FrequencyBucket, error) {
	return a.rankFrequencies(count, true)
}

// LeastFrequent is MostFrequent walking from the lowest occurrence count upward.
func (a *Analyzer) LeastFrequent(count int) ([]FrequencyBucket, error) {
	return a.rankFrequencies(count, false)
}

func (a *Analyzer) rankFrequencies(count int, desc bool) ([]FrequencyBucket, error) {
	if count < 1 {
		return nil, ewrap.Wrapf(ErrInvalidArgument, "count must be >= 1, got %d", count)
	}
	if a.snap == nil {
		return nil, ewrap.Wrap(ErrEmptyDataset, "frequency ranking")
	}
	counts := a.snap.counts
	var out []FrequencyBucket
	collected := 0
	for i := range counts {
		c := counts[i]
		if desc {
			c = counts[len(counts)-1-i]
		}
		vals := a.snap.freqByCount[c]
		bucket := FrequencyBucket{Count: c, Values: make([]float64, len(vals))}
		copy(bucket.Values, vals)
		out = append(out, bucket)
		collected += len(vals)
		if collected >= count {
			break
		}
	}
	return out, nil
}

// Min returns the smallest value in the dataset.
func (a *Analyzer) Min() (float64, error) {
	if a.snap == nil {
		return 0, ewrap.Wrap(ErrEmptyDataset, "min")
	}
	return a.snap.set[0], nil
}

// Max returns the largest value in the dataset.
func (a *Analyzer) Max() (float64, error) {
	if a.snap == nil {
		return 0, ewrap.Wrap(ErrEmptyDataset, "max")
	}
	return a.snap.set[len(a.snap.set)-1], nil
}

// SetSize returns the number of values in the dataset.
func (a *Analyzer) SetSize() (int, error) {
	v, err := a.lookup(StatSetSize)
	return int(v), err
}

// Mean returns the arithmetic mean.
func (a *Analyzer) Mean() (float64, error) { return a.lookup(StatMean) }

// Median returns the middle value, averaging the two middle values for even sizes.
func (a *Analyzer) Median() (float64, error) { return a.lookup(StatMedian) }

// Variance returns the sample variance (n-1 divisor). It needs at least 2 values.
func (a *Analyzer) Variance() (float64, error) { return a.lookup(StatVariance) }

// PopVariance returns the population variance (n divisor).
func (a *Analyzer) PopVariance() (float64, error) { return a.lookup(StatPopVariance) }

// StdDeviation returns the square root of Variance. It needs at least 2 values.
func (a *Analyzer) StdDeviation() (float64, error) { return a.lookup(StatStdDeviation) }

// PopStdDeviation returns the square root of PopVariance.
func (a *Analyzer) PopStdDeviation() (float64, error) { return a.lookup(StatPopStdDeviation) }

// Stat looks up a derived statistic by name. Synonyms such as "average", "setCount",
// "stdDev" and "popStdDev" resolve to their canonical statistic.
func (a *Analyzer) Stat(name string) (float64, error) {
	canonical, err := ResolveStatName(name)
	if err != nil {
		return 0, err
	}
	return a.lookup(canonical)
}

func (a *Analyzer) lookup(name string) (float64, error) {
	if a.snap == nil {
		return 0, ewrap.Wrap(ErrEmptyDataset, name)
	}
	v, ok := a.snap.data[name]
	if !ok {
		// only the sample variance family is ever missing
		return 0, ewrap.Wrapf(ErrInsufficientData, "%s needs at least 2 values", name)
	}
	return v, nil
}

// Stats returns a copy of the derived statistics, or nil before the first ingest.
func (a *Analyzer) Stats() map[string]float64 {
	if a.snap == nil {
		return nil
	}
	out := make(map[string]float64, len(a.snap.data))
	for k, v := range a.snap.data {
		out[k] = v
	}
	return out
}

// Values returns a copy of the dataset in ascending order.
func (a *Analyzer) Values() []float64 {
	if a.snap == nil {
		return nil
	}
	out := make([]float64, len(a.snap.set))
	copy(out, a.snap.set)
	return out
}

// Frequencies returns a copy of the value -> occurrence count index.
func (a *Analyzer) Frequencies() map[float64]int {
	if a.snap == nil {
		return nil
	}
	out := make(map[float64]int, len(a.snap.freqByValue))
	for k, v := range a.snap.freqByValue {
		out[k] = v
	}
	return out
}
