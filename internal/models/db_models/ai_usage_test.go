package db_models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthStartNormalizesToFirstOfMonthUTC(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)

	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"mid month utc",
			time.Date(2025, 6, 17, 14, 30, 12, 0, time.UTC),
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"already first",
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"non utc zone converts first",
			time.Date(2025, 5, 31, 22, 0, 0, 0, loc), // June 1st 02:00 UTC
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MonthStart(tc.in))
		})
	}
}

func TestUsedByKind(t *testing.T) {
	usage := &AIUsage{MealUsed: 2, HealthUsed: 1}

	assert.Equal(t, 2, usage.Used(KindMeal))
	assert.Equal(t, 1, usage.Used(KindHealth))
}

func TestIsResetNeeded(t *testing.T) {
	now := time.Date(2025, 7, 10, 9, 0, 0, 0, time.UTC)

	current := &AIUsage{Month: MonthStart(now)}
	assert.False(t, current.IsResetNeeded(now))

	stale := &AIUsage{Month: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
	assert.True(t, stale.IsResetNeeded(now))
}

func TestResetClearsCountersAndRekeysMonth(t *testing.T) {
	now := time.Date(2025, 7, 10, 9, 0, 0, 0, time.UTC)
	usage := &AIUsage{
		Month:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		MealUsed:   3,
		HealthUsed: 1,
	}

	usage.Reset(now)

	assert.Equal(t, MonthStart(now), usage.Month)
	assert.Zero(t, usage.MealUsed)
	assert.Zero(t, usage.HealthUsed)
}
