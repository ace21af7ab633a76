package www

import (
	"net/url"
	"strconv"
	"time"
)

func intOrDefault(u *url.URL, key string, defaultValue int) int {
	if v := u.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

// periodFromQuery reads the year and month selection, falling back to
// the given defaults. An out of range month snaps to the default.
func periodFromQuery(u *url.URL, defaultYear int, defaultMonth time.Month) (int, time.Month) {
	year := intOrDefault(u, "year", defaultYear)
	month := time.Month(intOrDefault(u, "month", int(defaultMonth)))
	if month < time.January || month > time.December {
		month = defaultMonth
	}
	return year, month
}
