package valueobject

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodOf(t *testing.T) {
	cases := []struct {
		month   time.Month
		name    string
		quarter Quarter
	}{
		{time.January, "January", Q1},
		{time.February, "February", Q1},
		{time.March, "March", Q1},
		{time.April, "April", Q2},
		{time.May, "May", Q2},
		{time.June, "June", Q2},
		{time.July, "July", Q3},
		{time.August, "August", Q3},
		{time.September, "September", Q3},
		{time.October, "October", Q4},
		{time.November, "November", Q4},
		{time.December, "December", Q4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			date := time.Date(2026, tc.month, 15, 12, 0, 0, 0, time.UTC)
			p := PeriodOf(date)
			assert.Equal(t, tc.name, p.Month)
			assert.Equal(t, int(tc.month), p.MonthNumber)
			assert.Equal(t, 2026, p.Year)
			assert.Equal(t, tc.quarter, p.Quarter)
			assert.True(t, p.Quarter.IsValid())
		})
	}
}

func TestPeriodOfMonthBoundaries(t *testing.T) {
	// First and last instants of a quarter classify into that quarter.
	start := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.June, 30, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, Q2, PeriodOf(start).Quarter)
	assert.Equal(t, Q2, PeriodOf(end).Quarter)
}

func TestPeriodString(t *testing.T) {
	p := PeriodOf(time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "March 2026 (Q1)", p.String())
}
