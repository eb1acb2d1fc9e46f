package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/longbridgeapp/assert"
)

func TestMode(t *testing.T) {
	cases := []struct {
		name    string
		in      []float64
		want    float64
		wantErr error
	}{
		{"unique", []float64{1, 1, 2, 3}, 1, nil},
		{"unique last", []float64{3, 2, 9, 9, 9, 2}, 9, nil},
		{"single", []float64{5}, 5, nil},
		{"all same", []float64{4, 4, 4}, 4, nil},
		{"tie", []float64{1, 1, 2, 2}, 0, ErrAmbiguousMode},
		{"all distinct", []float64{1, 2, 3}, 0, ErrAmbiguousMode},
		{"empty", nil, 0, ErrEmptyDataset},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Mode(c.in)
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("expected %v, got %v", c.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("mode: %v", err)
			}
			if got != c.want {
				t.Fatalf("mode got %v want %v", got, c.want)
			}
		})
	}
}

func TestFrequencyTable(t *testing.T) {
	table := FrequencyTable([]float64{3, 1, 1, 2, 2, 2, 0.5})
	assert.Equal(t, []ValueCount{
		{Value: 0.5, Count: 1},
		{Value: 3, Count: 1},
		{Value: 1, Count: 2},
		{Value: 2, Count: 3},
	}, table)
	assert.Equal(t, 0, len(FrequencyTable(nil)))
}

func TestStatelessBasics(t *testing.T) {
	vals := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	sum, err := Sum(vals)
	assert.Nil(t, err)
	assert.Equal(t, 40.0, sum)

	lo, _ := Min(vals)
	hi, _ := Max(vals)
	mean, _ := Mean(vals)
	assert.Equal(t, 2.0, lo)
	assert.Equal(t, 9.0, hi)
	assert.Equal(t, 5.0, mean)

	sample, err := Variance(vals, true)
	if err != nil || !almostEqual(sample, 32.0/7.0, 1e-12) {
		t.Fatalf("sample variance: got %v, %v", sample, err)
	}
	pop, err := Variance(vals, false)
	if err != nil || !almostEqual(pop, 4, 1e-12) {
		t.Fatalf("population variance: got %v, %v", pop, err)
	}
	sd, _ := StandardDeviation(vals, true)
	if !almostEqual(sd, math.Sqrt(32.0/7.0), 1e-12) {
		t.Fatalf("sample std: got %v", sd)
	}
	psd, _ := StandardDeviation(vals, false)
	if !almostEqual(psd, 2, 1e-12) {
		t.Fatalf("population std: got %v", psd)
	}
}

func TestStatelessErrors(t *testing.T) {
	for name, fn := range map[string]func([]float64) (float64, error){
		"sum":  Sum,
		"min":  Min,
		"max":  Max,
		"mean": Mean,
	} {
		if _, err := fn(nil); !errors.Is(err, ErrEmptyDataset) {
			t.Errorf("%s(nil): expected ErrEmptyDataset, got %v", name, err)
		}
	}
	if _, err := Variance([]float64{1}, true); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("sample variance of one value: got %v", err)
	}
	if v, err := Variance([]float64{1}, false); err != nil || v != 0 {
		t.Errorf("population variance of one value: got %v, %v", v, err)
	}
	if _, err := StandardDeviation(nil, false); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("std of nil: got %v", err)
	}
}

func TestModeDiffersFromFrequencyRanking(t *testing.T) {
	vals := []float64{1, 1, 2, 2, 3}
	if _, err := Mode(vals); !errors.Is(err, ErrAmbiguousMode) {
		t.Fatalf("expected ambiguous mode, got %v", err)
	}
	a := mustIngest(t, vals...)
	most, err := a.MostFrequent(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(most) != 1 || len(most[0].Values) != 2 {
		t.Fatalf("expected both tied values, got %+v", most)
	}
}

func TestResolveStatName(t *testing.T) {
	cases := map[string]string{
		"average":       StatMean,
		"setCount":      StatSetSize,
		"stdDev":        StatStdDeviation,
		"popStdDev":     StatPopStdDeviation,
		"get_variance":  StatVariance,
		" POP-VARIANCE": StatPopVariance,
	}
	for in, want := range cases {
		got, err := ResolveStatName(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got != want {
			t.Errorf("%q: got %q want %q", in, got, want)
		}
	}
	if _, err := ResolveStatName("get"); !errors.Is(err, ErrUnknownStatistic) {
		t.Errorf("bare get prefix: got %v", err)
	}
}
