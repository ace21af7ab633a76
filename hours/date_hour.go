package hours

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	hourLayout = "2006-01-02 15"
)

// GME extracts carry dates as compact YYYYMMDD strings.
const gmeDateLayout = "20060102"

var guiLocation *time.Location = time.UTC

func SetGuiTimezone(timezone string) error {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("failed to load timezone %s: %v", timezone, err)
	}
	guiLocation = loc
	return nil
}

// DateHour is a calendar date plus an hour in the 0-23 interval-start
// convention. Timestamps are local calendar time, never shifted between
// timezones.
type DateHour struct {
	Date string
	Hour uint8
}

func (dh DateHour) String() string {
	return fmt.Sprintf("%s %02d", dh.Date, dh.Hour)
}

func (dh DateHour) IsoString() string {
	return fmt.Sprintf("%sT%02d:00:00Z", dh.Date, dh.Hour)
}

func (dh DateHour) Add(hours int) DateHour {
	t, err := time.ParseInLocation(hourLayout, dh.String(), time.UTC)
	if err != nil {
		return dh
	}

	t = t.Add(time.Duration(hours) * time.Hour)
	return DateHour{
		Date: t.Format(dateLayout),
		Hour: uint8(t.Hour()),
	}
}

func (dh DateHour) Sub(hours int) DateHour {
	return dh.Add(-hours)
}

func (dh DateHour) Compare(other DateHour) int {
	if dh == other {
		return 0
	}
	if dh.Date < other.Date {
		return -1
	}
	if dh.Date > other.Date {
		return 1
	}
	if dh.Hour < other.Hour {
		return -1
	}
	return 1
}

func (dh DateHour) IsZero() bool {
	return dh.Date == "" && dh.Hour == 0
}

func (dh DateHour) Time() time.Time {
	t, err := time.ParseInLocation(hourLayout, dh.String(), time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Weekday returns the day of week with Monday=0 and Sunday=6, the
// convention tariff band classification works in.
func (dh DateHour) Weekday() int {
	return (int(dh.Time().Weekday()) + 6) % 7
}

func (dh DateHour) Year() int {
	return dh.Time().Year()
}

func (dh DateHour) Month() time.Month {
	return dh.Time().Month()
}

// InMonth reports whether the hour falls inside the given reporting period.
func (dh DateHour) InMonth(year int, month time.Month) bool {
	t := dh.Time()
	return t.Year() == year && t.Month() == month
}

func FromTime(t time.Time) DateHour {
	if t.IsZero() {
		return DateHour{}
	}
	t = t.UTC()
	return DateHour{
		Date: t.Format(dateLayout),
		Hour: uint8(t.Hour()),
	}
}

func FromNow() DateHour {
	now := time.Now().UTC()
	return DateHour{
		Date: now.Format(dateLayout),
		Hour: uint8(now.Hour()),
	}
}

// ParseDate accepts the compact GME form (20250131) as well as ISO
// (2025-01-31) and returns the canonical ISO form.
func ParseDate(str string) (string, error) {
	str = strings.TrimSpace(str)
	if t, err := time.ParseInLocation(gmeDateLayout, str, time.UTC); err == nil {
		return t.Format(dateLayout), nil
	}
	if t, err := time.ParseInLocation(dateLayout, str, time.UTC); err == nil {
		return t.Format(dateLayout), nil
	}
	return "", fmt.Errorf("unparseable date %q", str)
}

// FromHourEnding builds a DateHour from an hour in the 1-24 "hour-ending"
// convention used by GME price extracts, where value N labels the interval
// ending at hour N. Values outside 1-24 are rejected so that a stray "25"
// (or a zero) never lands in the wrong band; callers drop the row.
func FromHourEnding(date string, hourEnding int) (DateHour, error) {
	if hourEnding < 1 || hourEnding > 24 {
		return DateHour{}, fmt.Errorf("hour-ending value %d outside 1-24", hourEnding)
	}
	return DateHour{Date: date, Hour: uint8(hourEnding - 1)}, nil
}

// FromIntervalStart builds a DateHour from a quarter-hour interval label
// such as "00:15-00:30", keeping the hour the interval starts in.
func FromIntervalStart(date string, interval string) (DateHour, error) {
	start, _, found := strings.Cut(interval, "-")
	if !found {
		return DateHour{}, fmt.Errorf("interval %q has no start-end separator", interval)
	}
	hh, _, found := strings.Cut(strings.TrimSpace(start), ":")
	if !found {
		return DateHour{}, fmt.Errorf("interval start %q is not HH:MM", start)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return DateHour{}, fmt.Errorf("interval start hour %q outside 0-23", hh)
	}
	return DateHour{Date: date, Hour: uint8(h)}, nil
}

func FormatTimeInGuiTimezone(t time.Time) string {
	return t.In(guiLocation).Format("2006-01-02 15:04:05")
}
