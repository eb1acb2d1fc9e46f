package stats

import "github.com/hyp3rd/ewrap"

var (
	// ErrEmptyDataset is returned when no dataset has been ingested or an empty sequence is given.
	ErrEmptyDataset = ewrap.New("empty dataset")

	// ErrInsufficientData is returned when sample variance is requested with fewer than 2 values.
	ErrInsufficientData = ewrap.New("insufficient data")

	// ErrAmbiguousMode is returned when more than one value shares the highest frequency.
	ErrAmbiguousMode = ewrap.New("there is not exactly one most common value")

	// ErrInvalidArgument is returned for malformed input such as negative occurrence counts.
	ErrInvalidArgument = ewrap.New("invalid argument")

	// ErrUnknownStatistic is returned by Analyzer.Stat for names outside the alias table.
	ErrUnknownStatistic = ewrap.Wrap(ErrInvalidArgument, "unknown statistic")
)
