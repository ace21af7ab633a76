package www

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/icodeforyou/fasce-go/database"
	"github.com/icodeforyou/fasce-go/hours"
)

func TestLogEntriesRenderInGuiTimezone(t *testing.T) {
	if err := hours.SetGuiTimezone("Europe/Rome"); err != nil {
		t.Fatalf("setting timezone: %v", err)
	}
	defer func() {
		if err := hours.SetGuiTimezone("UTC"); err != nil {
			t.Fatalf("restoring timezone: %v", err)
		}
	}()

	tm, err := NewTemplateManager(slog.Default(), nil)
	if err != nil {
		t.Fatalf("loading templates: %v", err)
	}

	data := struct {
		Page     int
		PageSize int
		Entries  []database.LogEntryRow
	}{
		Page:     2,
		PageSize: 25,
		Entries: []database.LogEntryRow{{
			Timestamp: time.Date(2025, 1, 8, 10, 30, 0, 0, time.UTC),
			Level:     0,
			Message:   "refresh task done",
		}},
	}

	buf, err := tm.Execute("log_entries.html", data)
	if err != nil {
		t.Fatalf("executing template: %v", err)
	}

	// Rome is UTC+1 in January.
	if !strings.Contains(buf.String(), "2025-01-08 11:30:00") {
		t.Errorf("expected timestamp rendered in Europe/Rome, got:\n%s", buf.String())
	}
}
