package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	return loc
}

func at(loc *time.Location, y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, loc)
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := func(min int) time.Time { return base.Add(time.Duration(min) * time.Minute) }

	tests := []struct {
		name           string
		a1, a2, b1, b2 int
		want           bool
	}{
		{name: "touching", a1: 0, a2: 10, b1: 10, b2: 20, want: false},
		{name: "partial", a1: 0, a2: 15, b1: 10, b2: 20, want: true},
		{name: "contained", a1: 0, a2: 30, b1: 10, b2: 20, want: true},
		{name: "disjoint", a1: 0, a2: 5, b1: 10, b2: 20, want: false},
		{name: "identical", a1: 10, a2: 20, b1: 10, b2: 20, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(p(tt.a1), p(tt.a2), p(tt.b1), p(tt.b2))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Overlaps(p(tt.b1), p(tt.b2), p(tt.a1), p(tt.a2)), "symmetry")
		})
	}
}

func TestOverlaps_SelfOverlap(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	for _, d := range []time.Duration{time.Second, time.Minute, 3 * time.Hour, 48 * time.Hour} {
		assert.True(t, Overlaps(start, start.Add(d), start, start.Add(d)))
	}
}

func TestParseDateTime(t *testing.T) {
	loc := mustLoc(t)

	tests := []struct {
		input string
		want  time.Time
	}{
		{input: "2024-06-01 10:30:00", want: at(loc, 2024, 6, 1, 10, 30)},
		{input: "2024-06-01 10:30", want: at(loc, 2024, 6, 1, 10, 30)},
		{input: "2024-06-01T10:30:00", want: at(loc, 2024, 6, 1, 10, 30)},
		{input: "2024-06-01T10:30", want: at(loc, 2024, 6, 1, 10, 30)},
		{input: "2024-06-01", want: at(loc, 2024, 6, 1, 0, 0)},
		{input: "2024-06-01T08:30:00Z", want: at(loc, 2024, 6, 1, 10, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDateTime(tt.input, loc)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, loc, got.Location())
		})
	}

	for _, bad := range []string{"", "tomorrow", "2024-13-01", "01/06/2024"} {
		_, err := ParseDateTime(bad, loc)
		assert.ErrorIs(t, err, ErrInvalidDateTime, bad)
	}
}

func TestWallDuration_AcrossDST(t *testing.T) {
	loc := mustLoc(t)
	// 2024-03-31 02:00 Paris springs forward
	start := at(loc, 2024, 3, 30, 0, 0)
	end := at(loc, 2024, 4, 1, 0, 0)

	assert.Equal(t, 47*time.Hour, end.Sub(start))
	assert.Equal(t, 48*time.Hour, WallDuration(start, end))
}

func TestEachDay(t *testing.T) {
	loc := mustLoc(t)
	var days []string
	EachDay(at(loc, 2024, 2, 27, 15, 0), at(loc, 2024, 3, 2, 0, 0), func(day time.Time) bool {
		days = append(days, day.Format(DateFormat))
		return true
	})
	assert.Equal(t, []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}, days)
}

func TestWallClockIn(t *testing.T) {
	loc := mustLoc(t)
	stored := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

	got := WallClockIn(stored, loc)
	assert.Equal(t, "2024-06-01 10:30:00", FormatDateTime(got))
	assert.Equal(t, loc, got.Location())
}
