package escalation

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// csvHeader is the column order of the escalation log.
var csvHeader = []string{
	"timestamp", "ticket_id", "subject", "description", "category", "escalation_reason",
}

// CSVLog appends escalation records to a CSV file. The header row is written
// once, when the destination is new or empty; every later append adds rows
// only. Appends are serialized with a mutex and flushed in a single write,
// so concurrent escalations never interleave inside a row.
type CSVLog struct {
	path string
	mu   sync.Mutex
}

// NewCSVLog creates a CSV escalation log at path. The file is created
// lazily on first append.
func NewCSVLog(path string) *CSVLog {
	return &CSVLog{path: path}
}

// Path returns the log destination.
func (l *CSVLog) Path() string {
	return l.path
}

// Append implements Sink.
func (l *CSVLog) Append(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	needHeader, err := l.needsHeader()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create escalation log dir: %w", err)
		}
	}

	// Build the full payload (header included when fresh) in memory so the
	// file sees exactly one write per append.
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if needHeader {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("encode escalation header: %w", err)
		}
	}
	if err := w.Write(recordRow(rec)); err != nil {
		return fmt.Errorf("encode escalation record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encode escalation record: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open escalation log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("append escalation record: %w", err)
	}
	return f.Sync()
}

// needsHeader reports whether the destination is missing or empty.
func (l *CSVLog) needsHeader() (bool, error) {
	info, err := os.Stat(l.path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat escalation log: %w", err)
	}
	return info.Size() == 0, nil
}

func recordRow(rec Record) []string {
	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	category := rec.Category
	if category == "" {
		category = "Unknown"
	}
	return []string{
		ts.Format(time.RFC3339),
		rec.TicketID,
		rec.Subject,
		rec.Description,
		category,
		rec.Reason,
	}
}
