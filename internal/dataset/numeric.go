package dataset

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// parseNumeric parses a locale-formatted number such as "1.234,5" or "12 %". Separators
// left unset in opt are inferred per value.
func parseNumeric(s string, opt Options) (float64, bool) {
	raw := stripDecorations(s)
	if raw == "" {
		return 0, false
	}
	dec, thou := separators(raw, opt)
	raw = strings.Map(func(r rune) rune {
		switch {
		case r == dec:
			return '.'
		case r == thou, thou == 0 && isGroupingRune(r):
			return -1
		}
		return r
	}, raw)
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// stripDecorations trims the cell and removes percent signs. Non-breaking spaces
// become plain spaces so they group digits like ' ' does.
func stripDecorations(s string) string {
	s = strings.NewReplacer("%", "", "\u00A0", " ").Replace(s)
	return strings.TrimSpace(s)
}

// separators returns the decimal and thousands runes for raw. An unset decimal
// separator is whichever of ',' and '.' appears last; a comma alone is decimal.
// A zero thousands rune means any grouping rune is dropped.
func separators(raw string, opt Options) (dec, thou rune) {
	dec, thou = opt.DecimalSeparator, opt.ThousandsSeparator
	if dec != 0 {
		return dec, thou
	}
	comma, dot := strings.LastIndexByte(raw, ','), strings.LastIndexByte(raw, '.')
	switch {
	case comma > dot && dot >= 0:
		return ',', '.'
	case dot > comma && comma >= 0:
		return '.', ','
	case comma >= 0:
		return ',', thou
	}
	return '.', thou
}

func isGroupingRune(r rune) bool {
	return r == ',' || r == '.' || r == ' '
}

// parseCount parses a non-negative-looking integer occurrence count. Sign is kept so that
// callers can report negative counts instead of silently skipping them.
func parseCount(s string) (int, bool) {
	raw := strings.TrimSpace(s)
	n, err := strconv.Atoi(raw)
	if err == nil {
		return n, true
	}
	// accept "3.0" style integers from spreadsheets
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

var unitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(.*)\s*\(([^)]+)\)\s*$`),  // e.g., Alpha (%)
	regexp.MustCompile(`^(.*)\s*\[([^\]]+)\]\s*$`), // e.g., Mass [mg/L]
	regexp.MustCompile(`^(.*?)[_\s-]+(mg/L|g/L|ug/L|°[CF]|ms|s|kg|g|%|ppm|ppb)$`),
}

// splitUnits separates a header like "latency (ms)" into its name and unit.
func splitUnits(name string) (clean string, unit string) {
	s := strings.TrimSpace(name)
	for _, re := range unitPatterns {
		if m := re.FindStringSubmatch(s); len(m) >= 3 {
			base := strings.TrimSpace(m[1])
			u := strings.TrimSpace(m[2])
			if base != "" && u != "" {
				return base, u
			}
		}
	}
	return s, ""
}
