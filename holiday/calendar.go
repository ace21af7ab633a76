package holiday

import (
	"sync"

	"github.com/icodeforyou/fasce-go/hours"
)

/** A memoized per-year holiday set. The set for a closed year never
changes, so entries are computed once and never evicted. */
type Calendar struct {
	mu    sync.RWMutex
	years map[int]map[string]bool
}

func NewCalendar() *Calendar {
	return &Calendar{
		years: make(map[int]map[string]bool),
	}
}

// IsHoliday reports whether the hour's date is an Italian national
// holiday, computing and caching the year's set on first use.
func (c *Calendar) IsHoliday(dh hours.DateHour) bool {
	year := dh.Year()

	c.mu.RLock()
	set, ok := c.years[year]
	c.mu.RUnlock()

	if !ok {
		set = make(map[string]bool, 11)
		for _, d := range For(year) {
			set[d.Format("2006-01-02")] = true
		}
		c.mu.Lock()
		c.years[year] = set
		c.mu.Unlock()
	}

	return set[dh.Date]
}
