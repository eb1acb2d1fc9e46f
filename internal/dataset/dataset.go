// Package dataset loads numeric samples from plain text, CSV and TSV sources.
package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// maxWarnings caps how many per-cell warnings a Dataset keeps.
const maxWarnings = 10

// Options controls how values are located and parsed.
type Options struct {
	// Column selects the value column by header name or 1-based index. Empty means the first column.
	Column string
	// CountColumn selects the occurrence-count column for weighted input. Empty means the column after Column.
	CountColumn string
	// Delimiter for CSV. If 0, it is chosen from the file extension.
	Delimiter rune
	// Numeric parsing locale. If DecimalSeparator is 0, auto-detect per value.
	DecimalSeparator   rune
	ThousandsSeparator rune
	// MaxRows limits rows processed; 0 means unlimited.
	MaxRows int
}

// DefaultOptions returns the loader defaults.
func DefaultOptions() Options {
	return Options{}
}

// Dataset is the result of loading a source.
type Dataset struct {
	Name   string
	Column string
	Unit   string
	// Values holds the parsed samples for plain input.
	Values []float64
	// Weights holds value -> occurrence count for weighted input.
	Weights  map[float64]int
	Rows     int
	Skipped  int
	Warnings []string
}

func (d *Dataset) warnf(format string, args ...any) {
	d.Skipped++
	if len(d.Warnings) < maxWarnings {
		d.Warnings = append(d.Warnings, fmt.Sprintf(format, args...))
	} else if len(d.Warnings) == maxWarnings {
		d.Warnings = append(d.Warnings, "further skipped cells not listed")
	}
}

// Load reads plain values from path. A path of "-" reads standard input.
func Load(path string, opt Options) (*Dataset, error) {
	return open(path, opt, false)
}

// LoadWeighted reads value,count pairs from path. A path of "-" reads standard input.
func LoadWeighted(path string, opt Options) (*Dataset, error) {
	return open(path, opt, true)
}

func open(path string, opt Options, weighted bool) (*Dataset, error) {
	if path == "-" {
		return read(os.Stdin, "stdin", opt, weighted, opt.Delimiter != 0)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	if opt.Delimiter == 0 {
		opt.Delimiter = sniffDelimiter(path)
	}
	return read(f, filepath.Base(path), opt, weighted, opt.Delimiter != 0)
}

// Read parses plain values from r. When tabular is false the input is treated as free
// text with one or more numbers per line.
func Read(r io.Reader, name string, opt Options, tabular bool) (*Dataset, error) {
	return read(r, name, opt, false, tabular)
}

// ReadWeighted parses value,count pairs from r.
func ReadWeighted(r io.Reader, name string, opt Options, tabular bool) (*Dataset, error) {
	return read(r, name, opt, true, tabular)
}

func read(r io.Reader, name string, opt Options, weighted, tabular bool) (*Dataset, error) {
	ds := &Dataset{Name: name}
	if weighted {
		ds.Weights = make(map[float64]int)
	}
	var err error
	if tabular {
		if opt.Delimiter == 0 {
			opt.Delimiter = ','
		}
		err = readTable(r, ds, opt, weighted)
	} else {
		err = readText(r, ds, opt, weighted)
	}
	if err != nil {
		return nil, err
	}
	if len(ds.Values) == 0 && len(ds.Weights) == 0 {
		return nil, fmt.Errorf("%s: no numeric values found", name)
	}
	return ds, nil
}

func sniffDelimiter(path string) rune {
	name := strings.ToLower(path)
	switch {
	case strings.HasSuffix(name, ".tsv"):
		return '\t'
	case strings.HasSuffix(name, ".csv"):
		return ','
	}
	return 0
}

func readTable(r io.Reader, ds *Dataset, opt Options, weighted bool) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comma = opt.Delimiter
	cr.Comment = '#'

	first, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("read header: %w", err)
	}
	valIdx, cntIdx, header, err := resolveColumns(first, opt, weighted)
	if err != nil {
		return err
	}
	if header {
		ds.Column, ds.Unit = splitUnits(first[valIdx])
	} else {
		ds.Column = fmt.Sprintf("column %d", valIdx+1)
		if err := addRecord(ds, first, 1, valIdx, cntIdx, opt, weighted); err != nil {
			return err
		}
	}

	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("read row %d: %w", row, err)
		}
		if ds.Rows >= maxRows {
			continue
		}
		if err := addRecord(ds, rec, row, valIdx, cntIdx, opt, weighted); err != nil {
			return err
		}
	}
	return nil
}

// resolveColumns picks the value and count column indexes and reports whether the first
// record is a header. A first record is a header when its value cell is not numeric.
func resolveColumns(first []string, opt Options, weighted bool) (valIdx, cntIdx int, header bool, err error) {
	_, numeric := parseNumeric(cellAt(first, indexOrZero(opt.Column)), opt)
	header = !numeric

	valIdx, err = columnIndex(first, opt.Column, 0, header)
	if err != nil {
		return 0, 0, false, err
	}
	cntIdx = -1
	if weighted {
		cntIdx, err = columnIndex(first, opt.CountColumn, valIdx+1, header)
		if err != nil {
			return 0, 0, false, err
		}
		if cntIdx == valIdx {
			return 0, 0, false, fmt.Errorf("count column must differ from value column")
		}
	}
	return valIdx, cntIdx, header, nil
}

func indexOrZero(sel string) int {
	if n, err := strconv.Atoi(strings.TrimSpace(sel)); err == nil && n >= 1 {
		return n - 1
	}
	return 0
}

func columnIndex(first []string, sel string, def int, header bool) (int, error) {
	sel = strings.TrimSpace(sel)
	if sel == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(sel); err == nil {
		if n < 1 {
			return 0, fmt.Errorf("column index must be >= 1, got %d", n)
		}
		return n - 1, nil
	}
	if !header {
		return 0, fmt.Errorf("column %q requested but input has no header row", sel)
	}
	want := strings.ToLower(sel)
	for i, h := range first {
		clean, _ := splitUnits(h)
		if strings.ToLower(strings.TrimSpace(h)) == want || strings.ToLower(clean) == want {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q not found", sel)
}

func cellAt(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func addRecord(ds *Dataset, rec []string, row, valIdx, cntIdx int, opt Options, weighted bool) error {
	ds.Rows++
	cell := cellAt(rec, valIdx)
	if cell == "" {
		ds.Skipped++
		return nil
	}
	x, ok := parseNumeric(cell, opt)
	if !ok {
		ds.warnf("row %d: %q is not numeric", row, cell)
		return nil
	}
	if !weighted {
		ds.Values = append(ds.Values, x)
		return nil
	}
	return addWeight(ds, x, cellAt(rec, cntIdx), row)
}

func addWeight(ds *Dataset, x float64, countCell string, row int) error {
	n, ok := parseCount(countCell)
	if !ok {
		ds.warnf("row %d: count %q is not an integer", row, countCell)
		return nil
	}
	if n < 0 {
		return fmt.Errorf("row %d: negative occurrence count %d", row, n)
	}
	if n > math.MaxInt-ds.Weights[x] {
		return fmt.Errorf("row %d: occurrence count for %g overflows", row, x)
	}
	ds.Weights[x] += n
	return nil
}

func readText(r io.Reader, ds *Dataset, opt Options, weighted bool) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	split := func(c rune) bool {
		if c == ' ' || c == '\t' || c == ';' {
			return true
		}
		// commas separate values unless they are the decimal separator
		return c == ',' && opt.DecimalSeparator != ','
	}
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.FieldsFunc(text, split)
		if len(fields) == 0 {
			continue
		}
		if opt.MaxRows > 0 && ds.Rows >= opt.MaxRows {
			continue
		}
		ds.Rows++
		if weighted {
			if len(fields) != 2 {
				ds.warnf("line %d: expected value and count, got %d fields", line, len(fields))
				continue
			}
			x, ok := parseNumeric(fields[0], opt)
			if !ok {
				ds.warnf("line %d: %q is not numeric", line, fields[0])
				continue
			}
			if err := addWeight(ds, x, fields[1], line); err != nil {
				return err
			}
			continue
		}
		for _, f := range fields {
			x, ok := parseNumeric(f, opt)
			if !ok {
				ds.warnf("line %d: %q is not numeric", line, f)
				continue
			}
			ds.Values = append(ds.Values, x)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read text: %w", err)
	}
	return nil
}
