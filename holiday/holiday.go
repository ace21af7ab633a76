package holiday

import (
	"time"
)

// EasterSunday computes Easter Sunday for a year using the anonymous
// Gregorian (Gauss/Butcher) congruential algorithm. All divisions are
// integer divisions; changing any of them to floating point silently
// shifts the result into the wrong week.
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func EasterMonday(year int) time.Time {
	return EasterSunday(year).AddDate(0, 0, 1)
}

// For returns the 11 Italian national holidays of a year: the ten fixed
// dates plus Easter Monday (Lunedì dell'Angelo).
func For(year int) []time.Time {
	fixed := []struct {
		month time.Month
		day   int
	}{
		{time.January, 1},   // Capodanno
		{time.January, 6},   // Epifania
		{time.April, 25},    // Liberazione
		{time.May, 1},       // Festa del Lavoro
		{time.June, 2},      // Festa della Repubblica
		{time.August, 15},   // Ferragosto
		{time.November, 1},  // Ognissanti
		{time.December, 8},  // Immacolata
		{time.December, 25}, // Natale
		{time.December, 26}, // Santo Stefano
	}

	days := make([]time.Time, 0, len(fixed)+1)
	for _, f := range fixed {
		days = append(days, time.Date(year, f.month, f.day, 0, 0, 0, 0, time.UTC))
	}
	days = append(days, EasterMonday(year))
	return days
}
