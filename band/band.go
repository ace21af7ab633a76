package band

import (
	"github.com/icodeforyou/fasce-go/holiday"
	"github.com/icodeforyou/fasce-go/hours"
)

// Band is an Italian time-of-use tariff band. F1 covers peak weekday
// hours, F2 the shoulder hours, F3 nights, weekends and holidays. F0 is
// the derived whole-period aggregate and is never assigned to a single
// hour.
type Band string

const (
	F0 Band = "F0"
	F1 Band = "F1"
	F2 Band = "F2"
	F3 Band = "F3"
)

// All lists the assignable bands in reporting order.
var All = []Band{F1, F2, F3}

// Classify maps an hour to its band. Weekday uses Monday=0..Sunday=6 and
// hour must already be normalized to 0-23. The rule is total: every
// weekday/hour combination lands in exactly one band.
//
// ARERA's table, with its asymmetric boundary at hour 7: on weekdays
// hour 7 is F2, on Saturdays everything before 7 is F3.
func Classify(weekday int, hour int, isHoliday bool) Band {
	if weekday == 6 || isHoliday {
		return F3
	}
	if weekday == 5 {
		if hour >= 7 && hour < 23 {
			return F2
		}
		return F3
	}
	if hour >= 8 && hour < 19 {
		return F1
	}
	if hour == 7 || (hour >= 19 && hour < 23) {
		return F2
	}
	return F3
}

// ForHour classifies a calendar hour using the calendar's holiday set
// for the hour's year.
func ForHour(cal *holiday.Calendar, dh hours.DateHour) Band {
	return Classify(dh.Weekday(), int(dh.Hour), cal.IsHoliday(dh))
}
