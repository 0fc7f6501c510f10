package domain

import (
	"iter"
	"time"

	"github.com/m04kA/SMC-PetSittingService/pkg/types"
)

// ClosureKind tells why a business-hours block exists
type ClosureKind string

const (
	ClosureClosed      ClosureKind = "closed"
	ClosureBeforeHours ClosureKind = "before_hours"
	ClosureAfterHours  ClosureKind = "after_hours"
)

const (
	midnight types.TimeString = "00:00"
	endOfDay types.TimeString = "23:59"
)

// DayHours is the opening schedule of one weekday
type DayHours struct {
	Closed    bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// BusinessHours maps weekdays to schedules. A weekday without an entry is always open;
// a nil or empty map means no business-hours restriction at all.
type BusinessHours map[time.Weekday]DayHours

// Closure is one blocked interval derived from business hours
type Closure struct {
	Date  time.Time
	Kind  ClosureKind
	Start time.Time
	End   time.Time
}

// IsConfigured reports whether any weekday has a schedule
func (b BusinessHours) IsConfigured() bool {
	return len(b) > 0
}

// Closures yields the blocked intervals of every calendar day from from's date to to's date inclusive.
// A closed day is blocked from midnight to the next midnight. An open day yields
// midnight->open unless it opens at 00:00, and close->next midnight unless it closes at 23:59 or later.
func (b BusinessHours) Closures(from, to time.Time) iter.Seq[Closure] {
	return func(yield func(Closure) bool) {
		if !b.IsConfigured() {
			return
		}
		EachDay(from, to, func(day time.Time) bool {
			hours, ok := b[day.Weekday()]
			if !ok {
				return true
			}
			next := NextDay(day)

			if hours.Closed {
				return yield(Closure{Date: day, Kind: ClosureClosed, Start: day, End: next})
			}

			if hours.OpenTime.IsAfter(midnight) {
				if !yield(Closure{Date: day, Kind: ClosureBeforeHours, Start: day, End: hours.OpenTime.On(day)}) {
					return false
				}
			}
			if hours.CloseTime.IsBefore(endOfDay) {
				if !yield(Closure{Date: day, Kind: ClosureAfterHours, Start: hours.CloseTime.On(day), End: next}) {
					return false
				}
			}
			return true
		})
	}
}
