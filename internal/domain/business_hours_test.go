package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessHours_Closures(t *testing.T) {
	loc := mustLoc(t)
	hours := BusinessHours{
		time.Monday:   {OpenTime: "08:00", CloseTime: "18:00"},
		time.Tuesday:  {OpenTime: "00:00", CloseTime: "23:59"},
		time.Sunday:   {Closed: true},
		time.Saturday: {OpenTime: "10:00", CloseTime: "23:59"},
	}

	// 2024-03-02 Saturday .. 2024-03-05 Tuesday
	var got []Closure
	for c := range hours.Closures(at(loc, 2024, 3, 2, 0, 0), at(loc, 2024, 3, 5, 12, 0)) {
		got = append(got, c)
	}

	require.Len(t, got, 4)

	assert.Equal(t, ClosureBeforeHours, got[0].Kind)
	assert.True(t, at(loc, 2024, 3, 2, 0, 0).Equal(got[0].Start))
	assert.True(t, at(loc, 2024, 3, 2, 10, 0).Equal(got[0].End))

	assert.Equal(t, ClosureClosed, got[1].Kind)
	assert.True(t, at(loc, 2024, 3, 3, 0, 0).Equal(got[1].Start))
	assert.True(t, at(loc, 2024, 3, 4, 0, 0).Equal(got[1].End))

	assert.Equal(t, ClosureBeforeHours, got[2].Kind)
	assert.True(t, at(loc, 2024, 3, 4, 8, 0).Equal(got[2].End))

	assert.Equal(t, ClosureAfterHours, got[3].Kind)
	assert.True(t, at(loc, 2024, 3, 4, 18, 0).Equal(got[3].Start))
	assert.True(t, at(loc, 2024, 3, 5, 0, 0).Equal(got[3].End))
}

func TestBusinessHours_NotConfigured(t *testing.T) {
	loc := mustLoc(t)
	var hours BusinessHours

	n := 0
	for range hours.Closures(at(loc, 2024, 3, 1, 0, 0), at(loc, 2024, 3, 31, 0, 0)) {
		n++
	}
	assert.Zero(t, n)
	assert.False(t, hours.IsConfigured())
}
