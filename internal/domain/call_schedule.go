package domain

import (
	"sort"
	"time"

	jnow "github.com/jinzhu/now"
)

const (
	// DefaultUpcomingLimit caps the upcoming calls list when today has nothing due
	DefaultUpcomingLimit = 5

	// CallSoonWindow is how far ahead a call counts as "soon"
	CallSoonWindow = time.Hour
)

// CalendarEntryKind tells which date field placed a call on a calendar day
type CalendarEntryKind string

const (
	CalendarEntryCall       CalendarEntryKind = "call"
	CalendarEntryNextAction CalendarEntryKind = "nextAction"
)

// CalendarEntry is one appearance of a call on a calendar day
type CalendarEntry struct {
	Call *Call
	Kind CalendarEntryKind
	Time time.Time
}

// CalendarDay groups the entries that fall on one local day
type CalendarDay struct {
	Date    time.Time
	Entries []CalendarEntry
}

// DayBounds returns the first and last instant of the local day containing t
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	n := jnow.With(t.In(location(loc)))
	return n.BeginningOfDay(), n.EndOfDay()
}

// inWindow is inclusive on both ends; nil and zero times never match
func inWindow(t *time.Time, start, end time.Time) bool {
	if t == nil || t.IsZero() {
		return false
	}
	return !t.Before(start) && !t.After(end)
}

// IsDueToday reports whether a call belongs in today's list: a scheduled call
// whose callDate is today, or any call whose nextActionDate is today.
func IsDueToday(call *Call, now time.Time, loc *time.Location) bool {
	start, end := DayBounds(now, loc)
	if call.Status.IsScheduled() && inWindow(&call.CallDate, start, end) {
		return true
	}
	return inWindow(call.NextActionDate, start, end)
}

// DisplayTime picks the time shown for a call in today's list:
// callDate when it is today, else nextActionDate when it is today,
// else callDate, else nextActionDate.
func DisplayTime(call *Call, now time.Time, loc *time.Location) time.Time {
	start, end := DayBounds(now, loc)
	switch {
	case inWindow(&call.CallDate, start, end):
		return call.CallDate
	case inWindow(call.NextActionDate, start, end):
		return *call.NextActionDate
	case !call.CallDate.IsZero():
		return call.CallDate
	case call.NextActionDate != nil:
		return *call.NextActionDate
	}
	return time.Time{}
}

// FilterToday returns the calls due today, each once, ordered by display time
func FilterToday(calls []Call, now time.Time, loc *time.Location) []Call {
	seen := make(map[string]bool, len(calls))
	result := make([]Call, 0)
	for i := range calls {
		call := &calls[i]
		id := call.ID.String()
		if seen[id] || !IsDueToday(call, now, loc) {
			continue
		}
		seen[id] = true
		result = append(result, *call)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return DisplayTime(&result[i], now, loc).Before(DisplayTime(&result[j], now, loc))
	})
	return result
}

// UpcomingTime returns the date an active call is next due: nextActionDate
// when set and after now, otherwise callDate. The bool is false when the
// call is not active or the chosen date is not strictly after now.
func UpcomingTime(call *Call, now time.Time) (time.Time, bool) {
	if !call.Status.IsActive() {
		return time.Time{}, false
	}
	chosen := call.CallDate
	if call.NextActionDate != nil && call.NextActionDate.After(now) {
		chosen = *call.NextActionDate
	}
	if chosen.IsZero() || !chosen.After(now) {
		return time.Time{}, false
	}
	return chosen, true
}

// FilterUpcoming returns at most limit active calls due after now, soonest first.
// A non-positive limit uses DefaultUpcomingLimit.
func FilterUpcoming(calls []Call, now time.Time, limit int) []Call {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}

	type upcoming struct {
		call Call
		at   time.Time
	}
	candidates := make([]upcoming, 0)
	for i := range calls {
		if at, ok := UpcomingTime(&calls[i], now); ok {
			candidates = append(candidates, upcoming{call: calls[i], at: at})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].at.Before(candidates[j].at)
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	result := make([]Call, len(candidates))
	for i, c := range candidates {
		result[i] = c.call
	}
	return result
}

// IsCallSoon reports whether the call's display time lies within the next hour
func IsCallSoon(call *Call, now time.Time, loc *time.Location) bool {
	at := DisplayTime(call, now, loc)
	if at.IsZero() {
		return false
	}
	return !at.Before(now) && !at.After(now.Add(CallSoonWindow))
}

// MonthBounds returns the first and last instant of the given local month
func MonthBounds(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	n := jnow.With(time.Date(year, month, 1, 12, 0, 0, 0, location(loc)))
	return n.BeginningOfMonth(), n.EndOfMonth()
}

// CalendarMonth buckets calls onto the local days of year/month. A call shows up
// once per date field that falls in the month, so it can appear on two days.
func CalendarMonth(calls []Call, year int, month time.Month, loc *time.Location) []CalendarDay {
	loc = location(loc)
	byDay := make(map[int]*CalendarDay)

	add := func(call *Call, at time.Time, kind CalendarEntryKind) {
		local := at.In(loc)
		if local.Year() != year || local.Month() != month {
			return
		}
		day, ok := byDay[local.Day()]
		if !ok {
			day = &CalendarDay{Date: time.Date(year, month, local.Day(), 0, 0, 0, 0, loc)}
			byDay[local.Day()] = day
		}
		day.Entries = append(day.Entries, CalendarEntry{Call: call, Kind: kind, Time: at})
	}

	for i := range calls {
		call := &calls[i]
		if !call.CallDate.IsZero() {
			add(call, call.CallDate, CalendarEntryCall)
		}
		if call.NextActionDate != nil && !call.NextActionDate.IsZero() {
			add(call, *call.NextActionDate, CalendarEntryNextAction)
		}
	}

	days := make([]CalendarDay, 0, len(byDay))
	for _, day := range byDay {
		sort.SliceStable(day.Entries, func(i, j int) bool {
			return day.Entries[i].Time.Before(day.Entries[j].Time)
		})
		days = append(days, *day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}

// CallsOnDay returns the calendar entries for a single local date
func CallsOnDay(calls []Call, date time.Time, loc *time.Location) []CalendarEntry {
	local := date.In(location(loc))
	for _, day := range CalendarMonth(calls, local.Year(), local.Month(), loc) {
		if day.Date.Day() == local.Day() {
			return day.Entries
		}
	}
	return []CalendarEntry{}
}

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
