package escalation

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func sampleRecord(id string) Record {
	return Record{
		Timestamp:   time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		TicketID:    id,
		Subject:     "Charged twice",
		Description: "I was charged twice this month",
		Category:    "Billing",
		Reason:      "Maximum processing attempts (2) exceeded",
	}
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse log: %v", err)
	}
	return rows
}

func TestCSVLog_WritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "escalation_log.csv")
	log := NewCSVLog(path)
	ctx := context.Background()

	if err := log.Append(ctx, sampleRecord("TICKET-1")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := log.Append(ctx, sampleRecord("TICKET-2")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	rows := readRows(t, path)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2 records", len(rows))
	}
	if rows[0][0] != "timestamp" || rows[0][5] != "escalation_reason" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][1] != "TICKET-1" || rows[2][1] != "TICKET-2" {
		t.Errorf("record ticket ids = %q, %q", rows[1][1], rows[2][1])
	}
	if rows[1][0] != "2026-03-14T10:30:00Z" {
		t.Errorf("timestamp = %q, want RFC3339", rows[1][0])
	}
}

func TestCSVLog_ReusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "escalation_log.csv")
	ctx := context.Background()

	if err := NewCSVLog(path).Append(ctx, sampleRecord("TICKET-1")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	// A fresh CSVLog over the same non-empty file must not repeat the header.
	if err := NewCSVLog(path).Append(ctx, sampleRecord("TICKET-2")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	rows := readRows(t, path)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2 records", len(rows))
	}
}

func TestCSVLog_EmptyCategoryBecomesUnknown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "escalation_log.csv")
	rec := sampleRecord("TICKET-1")
	rec.Category = ""

	if err := NewCSVLog(path).Append(context.Background(), rec); err != nil {
		t.Fatalf("Append: %v", err)
	}

	rows := readRows(t, path)
	if rows[1][4] != "Unknown" {
		t.Errorf("category = %q, want Unknown", rows[1][4])
	}
}

func TestCSVLog_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "logs", "escalation_log.csv")

	if err := NewCSVLog(path).Append(context.Background(), sampleRecord("TICKET-1")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if len(readRows(t, path)) != 2 {
		t.Error("expected header + 1 record")
	}
}

func TestCSVLog_ConcurrentAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "escalation_log.csv")
	log := NewCSVLog(path)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := log.Append(ctx, sampleRecord(fmt.Sprintf("TICKET-%d", i))); err != nil {
				t.Errorf("Append: %v", err)
			}
		}(i)
	}
	wg.Wait()

	rows := readRows(t, path)
	if len(rows) != n+1 {
		t.Fatalf("rows = %d, want %d", len(rows), n+1)
	}
	for _, row := range rows {
		if len(row) != 6 {
			t.Fatalf("row has %d fields, want 6: %v", len(row), row)
		}
	}
}

func TestCSVLog_CanceledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "escalation_log.csv")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewCSVLog(path).Append(ctx, sampleRecord("TICKET-1")); err == nil {
		t.Error("expected context error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("canceled append should not create the file")
	}
}

func TestMemory_Append(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Append(ctx, sampleRecord("TICKET-1")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if m.Len() != 1 {
		t.Fatalf("Len = %d, want 1", m.Len())
	}

	recs := m.Records()
	recs[0].TicketID = "mutated"
	if m.Records()[0].TicketID != "TICKET-1" {
		t.Error("Records should return a copy")
	}
}
