package meter

import (
	"sync"

	"github.com/icodeforyou/fasce-go/hours"
)

/** In-memory buffer of quarter-hour readings keyed by the hour they
fall in. The rollup task drains completed hours into the database. */
type Buffer struct {
	mu      sync.RWMutex
	samples map[hours.DateHour][]float64
}

func NewBuffer() *Buffer {
	return &Buffer{
		samples: make(map[hours.DateHour][]float64),
	}
}

// Add records one reading under the calendar hour it belongs to.
func (b *Buffer) Add(r Reading) {
	if r.Ts.IsZero() {
		return
	}
	dh := hours.FromTime(r.Ts)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples[dh] = append(b.samples[dh], r.KWh)
}

// HourTotal sums the buffered quarter readings of one hour.
func (b *Buffer) HourTotal(dh hours.DateHour) (float64, int) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	total := 0.0
	for _, v := range b.samples[dh] {
		total += v
	}
	return total, len(b.samples[dh])
}

// DrainBefore removes all hours strictly before the cutoff and returns
// their summed energy. Hours still in progress stay buffered.
func (b *Buffer) DrainBefore(cutoff hours.DateHour) map[hours.DateHour]float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	drained := make(map[hours.DateHour]float64)
	for dh, values := range b.samples {
		if dh.Compare(cutoff) >= 0 {
			continue
		}
		total := 0.0
		for _, v := range values {
			total += v
		}
		drained[dh] = total
		delete(b.samples, dh)
	}
	return drained
}
