package activity

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Action names recorded by a session.
const (
	ActionAdd       = "add"
	ActionUpdate    = "update"
	ActionDelete    = "delete"
	ActionBeginEdit = "edit"
	ActionCancel    = "cancel"
)

// Outcome of an operation.
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not-found"
	OutcomeNoop     = "noop"
)

// Entry is one row in the activity log.
type Entry struct {
	Timestamp     time.Time
	Action        string
	Outcome       string
	TransactionID int // zero when the operation never reached a record
	Details       string
}

// Header is the CSV header for the activity log.
const Header = "timestamp,action,outcome,transaction_id,details"

const (
	numFields    = 5
	colTimestamp = 0
	colAction    = 1
	colOutcome   = 2
	colTxnID     = 3
	colDetails   = 4
)

// Log collects entries in memory for the lifetime of a session.
type Log struct {
	entries []Entry
	now     func() time.Time
}

// NewLog returns an empty Log. A nil clock means time.Now.
func NewLog(now func() time.Time) *Log {
	if now == nil {
		now = time.Now
	}
	return &Log{now: now}
}

// Record appends an entry stamped with the log's clock.
func (l *Log) Record(action, outcome string, txnID int, details string) Entry {
	e := Entry{
		Timestamp:     l.now().UTC(),
		Action:        action,
		Outcome:       outcome,
		TransactionID: txnID,
		Details:       details,
	}
	l.entries = append(l.entries, e)
	return e
}

// Entries returns a copy of everything recorded so far.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colAction] = e.Action
	row[colOutcome] = e.Outcome
	if e.TransactionID != 0 {
		row[colTxnID] = strconv.Itoa(e.TransactionID)
	}
	row[colDetails] = e.Details
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	var txnID int
	if record[colTxnID] != "" {
		txnID, err = strconv.Atoi(record[colTxnID])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing transaction_id %q: %w", record[colTxnID], err)
		}
	}

	return Entry{
		Timestamp:     ts,
		Action:        record[colAction],
		Outcome:       record[colOutcome],
		TransactionID: txnID,
		Details:       record[colDetails],
	}, nil
}

// Write writes entries as CSV, optionally preceded by the header.
func Write(w io.Writer, entries []Entry, header bool) error {
	cw := csv.NewWriter(w)

	if header {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Append writes entries to the CSV file at path, creating it (and its header) if needed.
func Append(path string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating activity log dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	return Write(f, entries, needsHeader)
}

// Read returns all entries from the CSV file at path.
// Returns an empty slice if the file does not exist.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading activity log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
