package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/calltracker-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLoc = time.FixedZone("UTC+2", 2*60*60)

func at(day, hour, minute int) time.Time {
	return time.Date(2026, time.October, day, hour, minute, 0, 0, testLoc)
}

func ptr(t time.Time) *time.Time {
	return &t
}

func newCall(status domain.CallStatus, callDate time.Time, nextAction *time.Time) domain.Call {
	call := domain.Call{
		Status:         status,
		CallDate:       callDate,
		NextActionDate: nextAction,
	}
	call.ID = uuid.New()
	return call
}

func TestDayBounds(t *testing.T) {
	start, end := domain.DayBounds(at(14, 10, 0), testLoc)

	assert.Equal(t, at(14, 0, 0), start)
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
	assert.Equal(t, 59, end.Second())
	assert.True(t, end.Before(at(15, 0, 0)))
	assert.True(t, end.After(time.Date(2026, time.October, 14, 23, 59, 59, 998_000_000, testLoc)))
}

func TestIsDueToday(t *testing.T) {
	now := at(14, 10, 0)

	tests := []struct {
		name     string
		call     domain.Call
		expected bool
	}{
		{"scheduled today", newCall(domain.CallStatusScheduled, at(14, 15, 0), nil), true},
		{"scheduled at start of day", newCall(domain.CallStatusScheduled, at(14, 0, 0), nil), true},
		{"scheduled at last millisecond", newCall(domain.CallStatusScheduled, time.Date(2026, time.October, 14, 23, 59, 59, 999_000_000, testLoc), nil), true},
		{"scheduled tomorrow", newCall(domain.CallStatusScheduled, at(15, 0, 0), nil), false},
		{"completed today without follow-up", newCall(domain.CallStatusCompleted, at(14, 9, 0), nil), false},
		{"in progress today", newCall(domain.CallStatusInProgress, at(14, 9, 0), nil), false},
		{"completed with follow-up today", newCall(domain.CallStatusCompleted, at(10, 9, 0), ptr(at(14, 16, 0))), true},
		{"follow-up yesterday", newCall(domain.CallStatusScheduled, at(10, 9, 0), ptr(at(13, 16, 0))), false},
		{"zero call date", newCall(domain.CallStatusScheduled, time.Time{}, nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.IsDueToday(&tt.call, now, testLoc))
		})
	}
}

func TestFilterToday(t *testing.T) {
	now := at(14, 10, 0)

	t.Run("both dates today appears once", func(t *testing.T) {
		call := newCall(domain.CallStatusScheduled, at(14, 9, 0), ptr(at(14, 17, 0)))

		result := domain.FilterToday([]domain.Call{call}, now, testLoc)

		require.Len(t, result, 1)
		assert.Equal(t, call.ID, result[0].ID)
	})

	t.Run("duplicate entries are collapsed", func(t *testing.T) {
		call := newCall(domain.CallStatusScheduled, at(14, 9, 0), nil)

		result := domain.FilterToday([]domain.Call{call, call}, now, testLoc)

		assert.Len(t, result, 1)
	})

	t.Run("completed call with same date is excluded", func(t *testing.T) {
		open := newCall(domain.CallStatusScheduled, at(14, 11, 0), nil)
		done := newCall(domain.CallStatusCompleted, at(14, 11, 0), nil)

		result := domain.FilterToday([]domain.Call{open, done}, now, testLoc)

		require.Len(t, result, 1)
		assert.Equal(t, open.ID, result[0].ID)
	})

	t.Run("ordered by display time", func(t *testing.T) {
		late := newCall(domain.CallStatusScheduled, at(14, 18, 0), nil)
		followUp := newCall(domain.CallStatusCompleted, at(1, 8, 0), ptr(at(14, 12, 0)))
		early := newCall(domain.CallStatusScheduled, at(14, 8, 0), nil)

		result := domain.FilterToday([]domain.Call{late, followUp, early}, now, testLoc)

		require.Len(t, result, 3)
		assert.Equal(t, early.ID, result[0].ID)
		assert.Equal(t, followUp.ID, result[1].ID)
		assert.Equal(t, late.ID, result[2].ID)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, domain.FilterToday(nil, now, testLoc))
	})
}

func TestDisplayTime(t *testing.T) {
	now := at(14, 10, 0)

	t.Run("call date today wins", func(t *testing.T) {
		call := newCall(domain.CallStatusScheduled, at(14, 9, 0), ptr(at(14, 17, 0)))
		assert.Equal(t, at(14, 9, 0), domain.DisplayTime(&call, now, testLoc))
	})

	t.Run("next action today when call date is not", func(t *testing.T) {
		call := newCall(domain.CallStatusScheduled, at(2, 9, 0), ptr(at(14, 17, 0)))
		assert.Equal(t, at(14, 17, 0), domain.DisplayTime(&call, now, testLoc))
	})

	t.Run("falls back to call date", func(t *testing.T) {
		call := newCall(domain.CallStatusScheduled, at(20, 9, 0), ptr(at(21, 17, 0)))
		assert.Equal(t, at(20, 9, 0), domain.DisplayTime(&call, now, testLoc))
	})

	t.Run("falls back to next action when call date is zero", func(t *testing.T) {
		call := newCall(domain.CallStatusScheduled, time.Time{}, ptr(at(21, 17, 0)))
		assert.Equal(t, at(21, 17, 0), domain.DisplayTime(&call, now, testLoc))
	})
}

func TestFilterUpcoming(t *testing.T) {
	now := at(14, 10, 0)

	t.Run("caps at five sorted ascending", func(t *testing.T) {
		var calls []domain.Call
		for day := 22; day >= 15; day-- {
			calls = append(calls, newCall(domain.CallStatusScheduled, at(day, 9, 0), nil))
		}

		result := domain.FilterUpcoming(calls, now, 0)

		require.Len(t, result, domain.DefaultUpcomingLimit)
		for i := 1; i < len(result); i++ {
			assert.True(t, result[i-1].CallDate.Before(result[i].CallDate))
		}
		assert.Equal(t, at(15, 9, 0), result[0].CallDate)
	})

	t.Run("next action in the future is preferred", func(t *testing.T) {
		past := newCall(domain.CallStatusInProgress, at(10, 9, 0), ptr(at(16, 9, 0)))
		soon := newCall(domain.CallStatusScheduled, at(15, 9, 0), nil)

		result := domain.FilterUpcoming([]domain.Call{past, soon}, now, 5)

		require.Len(t, result, 2)
		assert.Equal(t, soon.ID, result[0].ID)
		assert.Equal(t, past.ID, result[1].ID)
	})

	t.Run("past next action falls back to call date", func(t *testing.T) {
		call := newCall(domain.CallStatusScheduled, at(18, 9, 0), ptr(at(12, 9, 0)))

		chosen, ok := domain.UpcomingTime(&call, now)

		assert.True(t, ok)
		assert.Equal(t, at(18, 9, 0), chosen)
	})

	t.Run("exactly now is not upcoming", func(t *testing.T) {
		call := newCall(domain.CallStatusScheduled, now, nil)
		_, ok := domain.UpcomingTime(&call, now)
		assert.False(t, ok)
	})

	t.Run("closed statuses are excluded", func(t *testing.T) {
		calls := []domain.Call{
			newCall(domain.CallStatusCompleted, at(15, 9, 0), nil),
			newCall(domain.CallStatusCancelled, at(15, 9, 0), nil),
			newCall(domain.CallStatusFailed, at(15, 9, 0), nil),
		}
		assert.Empty(t, domain.FilterUpcoming(calls, now, 5))
	})

	t.Run("custom limit", func(t *testing.T) {
		calls := []domain.Call{
			newCall(domain.CallStatusScheduled, at(15, 9, 0), nil),
			newCall(domain.CallStatusScheduled, at(16, 9, 0), nil),
			newCall(domain.CallStatusScheduled, at(17, 9, 0), nil),
		}
		assert.Len(t, domain.FilterUpcoming(calls, now, 2), 2)
	})
}

func TestIsCallSoon(t *testing.T) {
	now := at(14, 10, 0)

	tests := []struct {
		name     string
		callDate time.Time
		expected bool
	}{
		{"in thirty minutes", at(14, 10, 30), true},
		{"exactly now", now, true},
		{"exactly one hour ahead", at(14, 11, 0), true},
		{"just over an hour", at(14, 11, 1), false},
		{"already passed", at(14, 9, 59), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call := newCall(domain.CallStatusScheduled, tt.callDate, nil)
			assert.Equal(t, tt.expected, domain.IsCallSoon(&call, now, testLoc))
		})
	}

	t.Run("no dates", func(t *testing.T) {
		call := newCall(domain.CallStatusScheduled, time.Time{}, nil)
		assert.False(t, domain.IsCallSoon(&call, now, testLoc))
	})
}

func TestCalendarMonth(t *testing.T) {
	t.Run("call appears on both its days", func(t *testing.T) {
		call := newCall(domain.CallStatusScheduled, at(5, 9, 0), ptr(at(12, 14, 0)))

		days := domain.CalendarMonth([]domain.Call{call}, 2026, time.October, testLoc)

		require.Len(t, days, 2)
		assert.Equal(t, 5, days[0].Date.Day())
		assert.Equal(t, domain.CalendarEntryCall, days[0].Entries[0].Kind)
		assert.Equal(t, 12, days[1].Date.Day())
		assert.Equal(t, domain.CalendarEntryNextAction, days[1].Entries[0].Kind)
	})

	t.Run("buckets by local day", func(t *testing.T) {
		// 23:30 UTC on the 5th is 01:30 on the 6th in UTC+2
		late := newCall(domain.CallStatusScheduled, time.Date(2026, time.October, 5, 23, 30, 0, 0, time.UTC), nil)

		days := domain.CalendarMonth([]domain.Call{late}, 2026, time.October, testLoc)

		require.Len(t, days, 1)
		assert.Equal(t, 6, days[0].Date.Day())
	})

	t.Run("other months are ignored", func(t *testing.T) {
		call := newCall(domain.CallStatusScheduled, time.Date(2026, time.November, 1, 9, 0, 0, 0, testLoc), nil)
		assert.Empty(t, domain.CalendarMonth([]domain.Call{call}, 2026, time.October, testLoc))
	})

	t.Run("entries within a day are ordered", func(t *testing.T) {
		second := newCall(domain.CallStatusScheduled, at(7, 15, 0), nil)
		first := newCall(domain.CallStatusScheduled, at(7, 8, 0), nil)

		days := domain.CalendarMonth([]domain.Call{second, first}, 2026, time.October, testLoc)

		require.Len(t, days, 1)
		require.Len(t, days[0].Entries, 2)
		assert.Equal(t, first.ID, days[0].Entries[0].Call.ID)
	})
}

func TestCallsOnDay(t *testing.T) {
	call := newCall(domain.CallStatusScheduled, at(9, 9, 0), nil)

	assert.Len(t, domain.CallsOnDay([]domain.Call{call}, at(9, 12, 0), testLoc), 1)
	assert.Empty(t, domain.CallsOnDay([]domain.Call{call}, at(10, 12, 0), testLoc))
}

func TestMonthBounds(t *testing.T) {
	start, end := domain.MonthBounds(2026, time.February, testLoc)

	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, testLoc), start)
	assert.Equal(t, 28, end.Day())
	assert.Equal(t, time.February, end.Month())
}
