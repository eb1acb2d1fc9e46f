package stats

import (
	"strings"

	"github.com/hyp3rd/ewrap"
)

// Canonical names of the derived statistics.
const (
	StatSetSize         = "set_size"
	StatMean            = "mean"
	StatMedian          = "median"
	StatVariance        = "variance"
	StatPopVariance     = "pop_variance"
	StatStdDeviation    = "std_deviation"
	StatPopStdDeviation = "pop_std_deviation"
)

// StatNames lists the canonical statistic names in report order.
var StatNames = []string{
	StatSetSize,
	StatMean,
	StatMedian,
	StatVariance,
	StatPopVariance,
	StatStdDeviation,
	StatPopStdDeviation,
}

// statAliases maps a folded name (lower case, no underscores) to its canonical statistic.
var statAliases = map[string]string{
	"setsize":         StatSetSize,
	"setcount":        StatSetSize,
	"mean":            StatMean,
	"average":         StatMean,
	"median":          StatMedian,
	"variance":        StatVariance,
	"popvariance":     StatPopVariance,
	"stddeviation":    StatStdDeviation,
	"stddev":          StatStdDeviation,
	"popstddeviation": StatPopStdDeviation,
	"popstddev":       StatPopStdDeviation,
}

func foldName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "_", "")
	return strings.ReplaceAll(s, "-", "")
}

// ResolveStatName maps a statistic name or one of its synonyms to the canonical name.
// Snake case, camel case and a leading "get" (getSetSize, get_mean) are accepted.
func ResolveStatName(name string) (string, error) {
	key := foldName(name)
	if canonical, ok := statAliases[key]; ok {
		return canonical, nil
	}
	if rest, ok := strings.CutPrefix(key, "get"); ok {
		if canonical, ok := statAliases[rest]; ok {
			return canonical, nil
		}
	}
	return "", ewrap.Wrapf(ErrUnknownStatistic, "%q", name)
}
