package ledger

import (
	"fmt"
	"math"
	"strings"

	"github.com/cleared-dev/sneakerbook/internal/id"
	"github.com/cleared-dev/sneakerbook/internal/model"
)

// Mode is the edit-mode state of a Ledger.
type Mode int

const (
	// Idle means the draft describes a new, not yet added record.
	Idle Mode = iota
	// Editing means the draft mirrors an existing record pending commit.
	Editing
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// State is a snapshot of the edit cursor.
type State struct {
	Mode      Mode
	EditingID int // zero unless Mode == Editing
}

// Ledger owns the ordered transaction records, the edit cursor and the
// in-progress draft. It is not safe for concurrent use; one session owns it.
type Ledger struct {
	records []model.Transaction
	seq     id.Sequence
	editing int // 0 when idle
	draft   model.Draft
}

// New returns an empty Ledger in the Idle state.
func New() *Ledger {
	return &Ledger{draft: model.BlankDraft()}
}

// NewWithRecords returns a Ledger holding records in the given order.
// Records must be valid and carry unique positive IDs; new IDs continue
// after the highest one seen.
func NewWithRecords(records []model.Transaction) (*Ledger, error) {
	l := New()
	seen := make(map[int]bool, len(records))
	for i, rec := range records {
		if err := ValidateRecord(rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		if rec.ID == math.MaxInt {
			return nil, fmt.Errorf("record %d: transaction ID %s leaves no room for new IDs", i+1, id.Format(rec.ID))
		}
		if seen[rec.ID] {
			return nil, fmt.Errorf("record %d: duplicate transaction ID %s", i+1, id.Format(rec.ID))
		}
		seen[rec.ID] = true
		l.seq.Observe(rec.ID)
	}
	l.records = append([]model.Transaction(nil), records...)
	return l, nil
}

// Add validates d and appends it as a new record with a fresh ID.
// On success the draft is blanked and the ledger returns to Idle.
func (l *Ledger) Add(d model.Draft) (model.Transaction, error) {
	txn, err := ValidateDraft(d)
	if err != nil {
		return model.Transaction{}, err
	}
	next, err := l.seq.Next()
	if err != nil {
		return model.Transaction{}, err
	}
	txn.ID = next
	l.records = append(l.records, txn)
	l.reset()
	return txn, nil
}

// Update replaces every field but the ID of record txnID with d.
// The record keeps its position. On success the edit cursor is cleared
// and the draft blanked.
func (l *Ledger) Update(txnID int, d model.Draft) (model.Transaction, error) {
	i := l.index(txnID)
	if i < 0 {
		return model.Transaction{}, NotFoundError{ID: txnID}
	}
	txn, err := ValidateDraft(d)
	if err != nil {
		return model.Transaction{}, err
	}
	txn.ID = txnID
	l.records[i] = txn
	l.reset()
	return txn, nil
}

// Delete removes record txnID and reports whether it existed. Deleting a
// missing ID is a no-op. Deleting the record under edit cancels the edit.
func (l *Ledger) Delete(txnID int) bool {
	if l.editing != 0 && l.editing == txnID {
		l.reset()
	}
	i := l.index(txnID)
	if i < 0 {
		return false
	}
	l.records = append(l.records[:i], l.records[i+1:]...)
	return true
}

// BeginEdit loads record txnID into the draft and enters Editing mode.
func (l *Ledger) BeginEdit(txnID int) (model.Draft, error) {
	i := l.index(txnID)
	if i < 0 {
		return model.Draft{}, NotFoundError{ID: txnID}
	}
	l.draft = DraftOf(l.records[i])
	l.editing = txnID
	return l.draft, nil
}

// Commit applies the current draft: Update of the edited record when
// Editing, Add otherwise.
func (l *Ledger) Commit() (model.Transaction, error) {
	if l.editing != 0 {
		return l.Update(l.editing, l.draft)
	}
	return l.Add(l.draft)
}

// Cancel abandons any edit in progress and blanks the draft.
// Records are never touched.
func (l *Ledger) Cancel() {
	l.reset()
}

// Draft returns the current draft values.
func (l *Ledger) Draft() model.Draft {
	return l.draft
}

// SetDraft replaces the draft wholesale. Values are checked on commit.
func (l *Ledger) SetDraft(d model.Draft) {
	l.draft = d
}

// SetField updates one draft field by name. Type values are checked
// immediately; everything else is checked on commit.
func (l *Ledger) SetField(name, value string) error {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FieldDate:
		l.draft.Date = value
	case FieldAmount:
		l.draft.Amount = value
	case FieldType:
		t, err := model.ParseType(value)
		if err != nil {
			return ValidationError{Fields: []FieldError{{Field: FieldType, Description: "must be income or expense"}}}
		}
		l.draft.Type = t
	case FieldCategory, "brand":
		l.draft.Category = value
	default:
		return fmt.Errorf("unknown field %q", name)
	}
	return nil
}

// State returns the current edit mode and cursor.
func (l *Ledger) State() State {
	if l.editing != 0 {
		return State{Mode: Editing, EditingID: l.editing}
	}
	return State{Mode: Idle}
}

// Get returns record txnID.
func (l *Ledger) Get(txnID int) (model.Transaction, bool) {
	i := l.index(txnID)
	if i < 0 {
		return model.Transaction{}, false
	}
	return l.records[i], true
}

// List returns a copy of all records in insertion order.
func (l *Ledger) List() []model.Transaction {
	out := make([]model.Transaction, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of live records.
func (l *Ledger) Len() int {
	return len(l.records)
}

func (l *Ledger) index(txnID int) int {
	for i, rec := range l.records {
		if rec.ID == txnID {
			return i
		}
	}
	return -1
}

func (l *Ledger) reset() {
	l.editing = 0
	l.draft = model.BlankDraft()
}
