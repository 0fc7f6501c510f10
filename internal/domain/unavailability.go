package domain

import (
	"iter"
	"time"

	"github.com/m04kA/SMC-PetSittingService/pkg/types"
)

// Unavailability is a one-off blackout period shared by every service
type Unavailability struct {
	ID        int64
	Start     time.Time
	End       time.Time
	Reason    *string
	CreatedAt time.Time
}

// RecurringUnavailability blocks the same time of day on one weekday
// between StartDate and EndDate (nil EndDate = open-ended).
type RecurringUnavailability struct {
	ID        int64
	Weekday   time.Weekday // 0 = Sunday
	StartTime types.TimeString
	EndTime   types.TimeString
	StartDate time.Time
	EndDate   *time.Time
	Reason    *string
	CreatedAt time.Time
}

// Occurrence is one concrete interval produced by a recurring rule
type Occurrence struct {
	RuleID int64
	Date   time.Time
	Start  time.Time
	End    time.Time
}

// CoversDate reports whether day is inside the rule's date range
func (r *RecurringUnavailability) CoversDate(day time.Time) bool {
	if DateBefore(day, r.StartDate) {
		return false
	}
	if r.EndDate != nil && DateBefore(*r.EndDate, day) {
		return false
	}
	return true
}

// Occurrences expands the rule over every calendar day from from's date to to's date inclusive.
// The sequence is recomputed on each iteration and holds no shared state.
func (r *RecurringUnavailability) Occurrences(from, to time.Time) iter.Seq[Occurrence] {
	return func(yield func(Occurrence) bool) {
		EachDay(from, to, func(day time.Time) bool {
			if day.Weekday() != r.Weekday || !r.CoversDate(day) {
				return true
			}
			return yield(Occurrence{
				RuleID: r.ID,
				Date:   day,
				Start:  r.StartTime.On(day),
				End:    r.EndTime.On(day),
			})
		})
	}
}

// Title returns the display title of an occurrence
func (r *RecurringUnavailability) Title() string {
	if r.Reason != nil && *r.Reason != "" {
		return *r.Reason
	}
	return TitleUnavailable
}

// Title returns the display title of the blackout
func (u *Unavailability) Title() string {
	if u.Reason != nil && *u.Reason != "" {
		return *u.Reason
	}
	return TitleUnavailable
}
