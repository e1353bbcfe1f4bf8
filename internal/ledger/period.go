package ledger

import (
	"time"

	"github.com/cleared-dev/tally/internal/model"
)

const dayFormat = "2006-01-02"

// Period is an inclusive range of calendar days. A zero Start or End leaves
// that side unbounded.
type Period struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether the period is unbounded on both sides.
func (p Period) IsZero() bool {
	return p.Start.IsZero() && p.End.IsZero()
}

// Contains reports whether t falls on a calendar day within the period.
// Time of day is ignored on all three values; each is read in its own location.
func (p Period) Contains(t time.Time) bool {
	d := day(t)
	if !p.Start.IsZero() && d.Before(day(p.Start)) {
		return false
	}
	if !p.End.IsZero() && d.After(day(p.End)) {
		return false
	}
	return true
}

// Filter returns a new slice holding the transactions dated within the period,
// in their original order. A period whose start is after its end keeps nothing.
func (p Period) Filter(txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		if p.Contains(txn.Date) {
			out = append(out, txn)
		}
	}
	return out
}

func (p Period) String() string {
	switch {
	case p.IsZero():
		return "all time"
	case p.Start.IsZero():
		return "through " + p.End.Format(dayFormat)
	case p.End.IsZero():
		return "from " + p.Start.Format(dayFormat)
	}
	return p.Start.Format(dayFormat) + " to " + p.End.Format(dayFormat)
}

// FilterPeriod keeps the transactions dated from start's calendar day through
// end's calendar day inclusive.
func FilterPeriod(txns []model.Transaction, start, end time.Time) []model.Transaction {
	return Period{Start: start, End: end}.Filter(txns)
}

// day maps t to midnight UTC of its calendar date so days from different
// locations compare by date alone.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
