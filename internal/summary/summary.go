// Package summary renders the statistics of an analyzed dataset as a compact text block.
package summary

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/statkit-cli/internal/dataset"
	"github.com/KaramelBytes/statkit-cli/internal/stats"
)

// Options controls which sections are included and how numbers are printed.
type Options struct {
	// Precision is the number of significant digits; 0 prints the shortest exact form.
	Precision int
	// Top is how many values the most/least frequent sections should cover; 0 omits them.
	Top int
}

// Summary is a rendered-ready view of an Analyzer.
type Summary struct {
	Name     string
	Column   string
	Unit     string
	Rows     int
	Skipped  int
	Size     int
	Min, Max float64
	// Stats is keyed by canonical statistic name. Missing entries are not applicable.
	Stats         map[string]float64
	MostFrequent  []stats.FrequencyBucket
	LeastFrequent []stats.FrequencyBucket
	Warnings      []string
	opt           Options
}

// Build collects everything the report shows. ds may be nil for inline values.
func Build(a *stats.Analyzer, ds *dataset.Dataset, opt Options) (*Summary, error) {
	size, err := a.SetSize()
	if err != nil {
		return nil, err
	}
	s := &Summary{Size: size, Stats: a.Stats(), opt: opt}
	if s.Min, err = a.Min(); err != nil {
		return nil, err
	}
	if s.Max, err = a.Max(); err != nil {
		return nil, err
	}
	if ds != nil {
		s.Name, s.Column, s.Unit = ds.Name, ds.Column, ds.Unit
		s.Rows, s.Skipped = ds.Rows, ds.Skipped
		s.Warnings = append(s.Warnings, ds.Warnings...)
	}
	if _, err := a.Variance(); errors.Is(err, stats.ErrInsufficientData) {
		s.Warnings = append(s.Warnings, "sample variance needs at least 2 values")
	}
	if opt.Top > 0 {
		if s.MostFrequent, err = a.MostFrequent(opt.Top); err != nil {
			return nil, err
		}
		if s.LeastFrequent, err = a.LeastFrequent(opt.Top); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// FormatFloat prints v with the given number of significant digits (0 = shortest exact).
func FormatFloat(v float64, precision int) string {
	if precision <= 0 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', precision, 64)
}

// FormatBuckets renders frequency buckets as "2×: 1, 2; 1×: 3".
func FormatBuckets(buckets []stats.FrequencyBucket, precision int) string {
	parts := make([]string, 0, len(buckets))
	for _, b := range buckets {
		vals := make([]string, len(b.Values))
		for i, v := range b.Values {
			vals[i] = FormatFloat(v, precision)
		}
		parts = append(parts, fmt.Sprintf("%d×: %s", b.Count, strings.Join(vals, ", ")))
	}
	return strings.Join(parts, "; ")
}

var statLabels = map[string]string{
	stats.StatSetSize:         "Size",
	stats.StatMean:            "Mean",
	stats.StatMedian:          "Median",
	stats.StatVariance:        "Variance (sample)",
	stats.StatPopVariance:     "Variance (population)",
	stats.StatStdDeviation:    "Std deviation (sample)",
	stats.StatPopStdDeviation: "Std deviation (population)",
}

// Text renders the summary.
func (s *Summary) Text() string {
	p := s.opt.Precision
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if s.Name != "" {
		b.WriteString(fmt.Sprintf("Source: %s\n", s.Name))
	}
	if s.Column != "" {
		col := s.Column
		if s.Unit != "" {
			col = fmt.Sprintf("%s [%s]", col, s.Unit)
		}
		b.WriteString(fmt.Sprintf("Column: %s\n", col))
	}
	if s.Rows > 0 {
		b.WriteString(fmt.Sprintf("Rows: %d (skipped %d)\n", s.Rows, s.Skipped))
	}

	b.WriteString("\n[STATISTICS]\n")
	b.WriteString(fmt.Sprintf("- Min: %s\n", FormatFloat(s.Min, p)))
	b.WriteString(fmt.Sprintf("- Max: %s\n", FormatFloat(s.Max, p)))
	for _, name := range stats.StatNames {
		label := statLabels[name]
		v, ok := s.Stats[name]
		switch {
		case !ok:
			b.WriteString(fmt.Sprintf("- %s: n/a\n", label))
		case name == stats.StatSetSize:
			b.WriteString(fmt.Sprintf("- %s: %d\n", label, s.Size))
		default:
			b.WriteString(fmt.Sprintf("- %s: %s\n", label, FormatFloat(v, p)))
		}
	}

	if len(s.MostFrequent) > 0 || len(s.LeastFrequent) > 0 {
		b.WriteString("\n[FREQUENCY]\n")
		b.WriteString(fmt.Sprintf("- Most frequent: %s\n", FormatBuckets(s.MostFrequent, p)))
		b.WriteString(fmt.Sprintf("- Least frequent: %s\n", FormatBuckets(s.LeastFrequent, p)))
	}
	if len(s.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range s.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}
