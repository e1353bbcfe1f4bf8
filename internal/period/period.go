// Package period turns named presets and explicit date bounds into ledger
// periods. The ledger core only sees the resolved Period.
package period

import (
	"errors"
	"fmt"
	"time"

	"github.com/cleared-dev/tally/internal/ledger"
)

// DateFormat is the layout of explicit period bounds.
const DateFormat = "2006-01-02"

// Preset names.
const (
	Today       = "today"
	ThisMonth   = "this-month"
	LastMonth   = "last-month"
	ThisQuarter = "this-quarter"
	LastQuarter = "last-quarter"
	ThisYear    = "this-year"
	LastYear    = "last-year"
	FiscalYear  = "fiscal-year"
	YearToDate  = "year-to-date"
	All         = "all"
)

// Presets lists every preset name Resolve accepts.
var Presets = []string{
	Today, ThisMonth, LastMonth, ThisQuarter, LastQuarter,
	ThisYear, LastYear, FiscalYear, YearToDate, All,
}

var (
	// ErrUnknownPreset is returned for a preset name not in Presets.
	ErrUnknownPreset = errors.New("unknown period preset")
	// ErrInvalidBound is returned when an explicit bound cannot be parsed.
	ErrInvalidBound = errors.New("invalid period bound")
)

// Resolve returns the period a preset names, relative to now. yearStart is
// the fiscal year start in MM-DD form and only matters for FiscalYear.
func Resolve(name string, now time.Time, yearStart string) (ledger.Period, error) {
	today := day(now.Year(), now.Month(), now.Day())
	y, m := today.Year(), today.Month()

	switch name {
	case Today:
		return ledger.Period{Start: today, End: today}, nil
	case ThisMonth:
		start := day(y, m, 1)
		return ledger.Period{Start: start, End: start.AddDate(0, 1, -1)}, nil
	case LastMonth:
		start := day(y, m-1, 1)
		return ledger.Period{Start: start, End: start.AddDate(0, 1, -1)}, nil
	case ThisQuarter:
		start := quarterStart(y, m)
		return ledger.Period{Start: start, End: start.AddDate(0, 3, -1)}, nil
	case LastQuarter:
		start := quarterStart(y, m).AddDate(0, -3, 0)
		return ledger.Period{Start: start, End: start.AddDate(0, 3, -1)}, nil
	case ThisYear:
		return ledger.Period{Start: day(y, time.January, 1), End: day(y, time.December, 31)}, nil
	case LastYear:
		return ledger.Period{Start: day(y-1, time.January, 1), End: day(y-1, time.December, 31)}, nil
	case YearToDate:
		return ledger.Period{Start: day(y, time.January, 1), End: today}, nil
	case FiscalYear:
		fm, fd, err := ParseYearStart(yearStart)
		if err != nil {
			return ledger.Period{}, err
		}
		start := day(y, fm, fd)
		if today.Before(start) {
			start = day(y-1, fm, fd)
		}
		return ledger.Period{Start: start, End: start.AddDate(1, 0, -1)}, nil
	case All, "":
		return ledger.Period{}, nil
	}
	return ledger.Period{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// Parse builds a period from explicit YYYY-MM-DD bounds. An empty bound
// leaves that side open.
func Parse(from, to string) (ledger.Period, error) {
	var p ledger.Period
	var err error
	if from != "" {
		if p.Start, err = time.Parse(DateFormat, from); err != nil {
			return ledger.Period{}, fmt.Errorf("%w: from %q", ErrInvalidBound, from)
		}
	}
	if to != "" {
		if p.End, err = time.Parse(DateFormat, to); err != nil {
			return ledger.Period{}, fmt.Errorf("%w: to %q", ErrInvalidBound, to)
		}
	}
	if !p.Start.IsZero() && !p.End.IsZero() && p.Start.After(p.End) {
		return ledger.Period{}, fmt.Errorf("%w: from %s is after to %s", ErrInvalidBound, from, to)
	}
	return p, nil
}

// Select resolves a preset or explicit bounds, whichever is given. Naming a
// preset together with a bound is an error.
func Select(preset, from, to string, now time.Time, yearStart string) (ledger.Period, error) {
	if preset != "" {
		if from != "" || to != "" {
			return ledger.Period{}, fmt.Errorf("%w: use either a preset or from/to, not both", ErrInvalidBound)
		}
		return Resolve(preset, now, yearStart)
	}
	return Parse(from, to)
}

// ParseYearStart parses a fiscal year start such as "07-01".
func ParseYearStart(s string) (time.Month, int, error) {
	if s == "" {
		return time.January, 1, nil
	}
	t, err := time.Parse("01-02", s)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing fiscal year start %q: %w", s, err)
	}
	if t.Month() == time.February && t.Day() == 29 {
		return 0, 0, fmt.Errorf("parsing fiscal year start %q: February 29 does not occur every year", s)
	}
	return t.Month(), t.Day(), nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func quarterStart(y int, m time.Month) time.Time {
	return day(y, m-(m-1)%3, 1)
}
