package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetSittingService/pkg/ptr"
)

func TestRecurringUnavailability_Occurrences_MondaysOfMarch(t *testing.T) {
	loc := mustLoc(t)
	rule := RecurringUnavailability{
		ID:        7,
		Weekday:   time.Monday,
		StartTime: "09:00",
		EndTime:   "12:00",
		StartDate: at(loc, 2024, 1, 1, 0, 0),
	}

	var got []Occurrence
	for occ := range rule.Occurrences(at(loc, 2024, 3, 1, 0, 0), at(loc, 2024, 3, 31, 0, 0)) {
		got = append(got, occ)
	}

	require.Len(t, got, 4)
	for i, day := range []int{4, 11, 18, 25} {
		assert.Equal(t, int64(7), got[i].RuleID)
		assert.Equal(t, time.Monday, got[i].Date.Weekday())
		assert.True(t, at(loc, 2024, 3, day, 9, 0).Equal(got[i].Start))
		assert.True(t, at(loc, 2024, 3, day, 12, 0).Equal(got[i].End))
	}
}

func TestRecurringUnavailability_Occurrences_DateRange(t *testing.T) {
	loc := mustLoc(t)
	rule := RecurringUnavailability{
		ID:        1,
		Weekday:   time.Sunday,
		StartTime: "00:00",
		EndTime:   "23:00",
		StartDate: at(loc, 2024, 3, 10, 0, 0),
		EndDate:   ptr.Ptr(at(loc, 2024, 3, 24, 0, 0)),
	}

	var dates []string
	for occ := range rule.Occurrences(at(loc, 2024, 3, 1, 0, 0), at(loc, 2024, 3, 31, 0, 0)) {
		dates = append(dates, occ.Date.Format(DateFormat))
	}

	assert.Equal(t, []string{"2024-03-10", "2024-03-17", "2024-03-24"}, dates)
}

func TestRecurringUnavailability_Occurrences_Restartable(t *testing.T) {
	loc := mustLoc(t)
	rule := RecurringUnavailability{ID: 2, Weekday: time.Friday, StartTime: "10:00", EndTime: "11:00", StartDate: at(loc, 2024, 1, 1, 0, 0)}
	seq := rule.Occurrences(at(loc, 2024, 5, 1, 0, 0), at(loc, 2024, 5, 31, 0, 0))

	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	assert.Equal(t, 5, count())
	assert.Equal(t, 5, count())

	// early stop
	n := 0
	for range seq {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestUnavailability_Title(t *testing.T) {
	assert.Equal(t, TitleUnavailable, (&Unavailability{}).Title())
	assert.Equal(t, "Vet", (&Unavailability{Reason: ptr.Ptr("Vet")}).Title())
	assert.Equal(t, TitleUnavailable, (&RecurringUnavailability{Reason: ptr.Ptr("")}).Title())
}
