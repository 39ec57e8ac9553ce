package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn, &buf)

	l.Debug("debug message", nil)
	l.Info("info message", nil)
	l.Warn("warn message", nil)
	l.Error("error message", nil, errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 entries at warn level, got %d: %s", len(lines), buf.String())
	}

	var warn LogEntry
	if err := json.Unmarshal([]byte(lines[0]), &warn); err != nil {
		t.Fatalf("entry is not JSON: %v", err)
	}
	if warn.Level != "WARN" || warn.Message != "warn message" {
		t.Errorf("unexpected first entry: %+v", warn)
	}

	var errEntry LogEntry
	if err := json.Unmarshal([]byte(lines[1]), &errEntry); err != nil {
		t.Fatalf("entry is not JSON: %v", err)
	}
	if errEntry.Error != "boom" {
		t.Errorf("expected error field 'boom', got %q", errEntry.Error)
	}
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf)

	l.Info("parsed referee", Fields{"referee_id": "714", "games": 31})

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("entry is not JSON: %v", err)
	}
	if entry.Fields["referee_id"] != "714" {
		t.Errorf("expected referee_id field, got %+v", entry.Fields)
	}
}

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()
	m.IncrCounter("geocode.lookups")
	m.IncrCounter("geocode.lookups")
	m.IncrCounter("geocode.cache_hits")

	snapshot := m.GetSnapshot()
	if snapshot["geocode.lookups"] != 2 || snapshot["geocode.cache_hits"] != 1 {
		t.Errorf("unexpected snapshot: %+v", snapshot)
	}

	// Snapshot is a copy.
	snapshot["geocode.lookups"] = 99
	if m.GetSnapshot()["geocode.lookups"] != 2 {
		t.Error("mutating a snapshot must not affect the tracker")
	}

	m.Reset()
	if len(m.GetSnapshot()) != 0 {
		t.Error("expected empty snapshot after reset")
	}
}
