package meter

import (
	"math"
	"testing"
	"time"

	"github.com/icodeforyou/fasce-go/hours"
)

func TestBufferAddAndHourTotal(t *testing.T) {
	b := NewBuffer()
	base := time.Date(2025, time.January, 8, 10, 0, 0, 0, time.UTC)
	for q := 0; q < 4; q++ {
		b.Add(Reading{Ts: base.Add(time.Duration(q) * 15 * time.Minute), KWh: 0.5})
	}

	total, n := b.HourTotal(hours.DateHour{Date: "2025-01-08", Hour: 10})
	if n != 4 {
		t.Errorf("expected 4 buffered quarters, got %d", n)
	}
	if math.Abs(total-2.0) > 1e-9 {
		t.Errorf("expected hour total 2.0, got %f", total)
	}
}

func TestBufferIgnoresZeroTimestamps(t *testing.T) {
	b := NewBuffer()
	b.Add(Reading{KWh: 1.0})

	if _, n := b.HourTotal(hours.DateHour{}); n != 0 {
		t.Errorf("zero timestamp reading should be ignored")
	}
}

func TestBufferDrainBefore(t *testing.T) {
	b := NewBuffer()
	b.Add(Reading{Ts: time.Date(2025, time.January, 8, 9, 15, 0, 0, time.UTC), KWh: 0.3})
	b.Add(Reading{Ts: time.Date(2025, time.January, 8, 9, 30, 0, 0, time.UTC), KWh: 0.2})
	b.Add(Reading{Ts: time.Date(2025, time.January, 8, 10, 15, 0, 0, time.UTC), KWh: 0.7})

	drained := b.DrainBefore(hours.DateHour{Date: "2025-01-08", Hour: 10})
	if len(drained) != 1 {
		t.Fatalf("expected 1 drained hour, got %d", len(drained))
	}
	if v := drained[hours.DateHour{Date: "2025-01-08", Hour: 9}]; math.Abs(v-0.5) > 1e-9 {
		t.Errorf("expected drained total 0.5, got %f", v)
	}

	// The in-progress hour stays buffered.
	if _, n := b.HourTotal(hours.DateHour{Date: "2025-01-08", Hour: 10}); n != 1 {
		t.Errorf("in-progress hour should not be drained")
	}
	// The drained hour is gone.
	if _, n := b.HourTotal(hours.DateHour{Date: "2025-01-08", Hour: 9}); n != 0 {
		t.Errorf("drained hour should be emptied")
	}
}
