package session

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/sneakerbook/internal/activity"
	"github.com/cleared-dev/sneakerbook/internal/ledger"
	"github.com/cleared-dev/sneakerbook/internal/model"
)

func newTestSession(t *testing.T, opts Options) (*Session, *ledger.Ledger, *activity.Log, *bytes.Buffer) {
	t.Helper()
	l := ledger.Seeded()
	log := activity.NewLog(func() time.Time { return time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC) })
	var out bytes.Buffer
	return New(l, log, &out, opts), l, log, &out
}

func run(t *testing.T, s *Session, lines ...string) {
	t.Helper()
	require.NoError(t, s.Run(strings.NewReader(strings.Join(lines, "\n")+"\n")))
}

func TestRun_RendersInitialTable(t *testing.T) {
	s, _, _, out := newTestSession(t, Options{})
	run(t, s)

	for _, want := range []string{"Date", "Brand", "2024-03-01", "$150.00", "Adidas", "$200.00", "Jordan", "$180.00"} {
		assert.Contains(t, out.String(), want)
	}
}

func TestAddTransaction(t *testing.T) {
	s, l, log, out := newTestSession(t, Options{})
	run(t, s,
		"set date 2024-03-15",
		"set amount 75",
		"set type expense",
		"set brand Yeezy",
		"save",
	)

	txns := l.List()
	require.Len(t, txns, 4)
	assert.Equal(t, model.Transaction{ID: 4, Date: "2024-03-15", Amount: 75, Type: model.TypeExpense, Category: "Yeezy"}, txns[3])
	assert.Contains(t, out.String(), "Transaction added successfully")
	assert.Contains(t, out.String(), "$75.00")

	entries := log.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, activity.ActionAdd, entries[0].Action)
	assert.Equal(t, activity.OutcomeOK, entries[0].Outcome)
	assert.Equal(t, 4, entries[0].TransactionID)
}

func TestAddTransaction_MissingFields(t *testing.T) {
	s, l, log, out := newTestSession(t, Options{})
	run(t, s,
		"amount 75",
		"brand Yeezy",
		"save",
	)

	assert.Equal(t, 3, l.Len())
	assert.Contains(t, out.String(), MissingFieldsNotice)
	assert.Contains(t, out.String(), "date: required")
	assert.NotContains(t, out.String(), "successfully")

	entries := log.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, activity.OutcomeInvalid, entries[0].Outcome)

	// The draft survives the failure so the user can fix it.
	assert.Equal(t, "75", l.Draft().Amount)
}

func TestEditAndSave(t *testing.T) {
	s, l, _, out := newTestSession(t, Options{})
	run(t, s,
		"edit 2",
		"date 2024-03-06",
		"amount 250",
		"save",
	)

	txns := l.List()
	require.Len(t, txns, 3)
	assert.Equal(t, model.Transaction{ID: 2, Date: "2024-03-06", Amount: 250, Type: model.TypeIncome, Category: "Adidas"}, txns[1])
	assert.Equal(t, ledger.State{Mode: ledger.Idle}, l.State())
	assert.Contains(t, out.String(), `Editing #2: date="2024-03-05" amount="200" type="income" brand="Adidas"`)
	assert.Contains(t, out.String(), "Transaction updated successfully")
}

func TestEdit_NotFound(t *testing.T) {
	s, l, _, out := newTestSession(t, Options{})
	run(t, s, "edit #9")

	assert.Contains(t, out.String(), "Transaction #9 not found")
	assert.Equal(t, ledger.State{Mode: ledger.Idle}, l.State())
}

func TestDeleteTwice(t *testing.T) {
	s, l, log, out := newTestSession(t, Options{})
	run(t, s, "delete 1", "delete 1")

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, 1, strings.Count(out.String(), "Transaction deleted successfully"))
	assert.Contains(t, out.String(), "No transaction #1; nothing to delete")

	entries := log.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, activity.OutcomeOK, entries[0].Outcome)
	assert.Equal(t, activity.OutcomeNoop, entries[1].Outcome)
}

func TestDeleteWhileEditing(t *testing.T) {
	s, l, _, out := newTestSession(t, Options{})
	run(t, s, "edit 3", "delete 3", "draft")

	assert.Equal(t, ledger.State{Mode: ledger.Idle}, l.State())
	assert.Contains(t, out.String(), "New transaction:")
}

func TestDelete_Confirmation(t *testing.T) {
	var asked []string
	deny := func(q string) (bool, error) {
		asked = append(asked, q)
		return false, nil
	}
	s, l, _, out := newTestSession(t, Options{ConfirmDelete: true, Confirm: deny})
	run(t, s, "delete 2", "delete 42")

	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []string{"Delete transaction #2?"}, asked, "missing IDs are not confirmed")
	assert.Contains(t, out.String(), "Kept #2")
}

func TestDelete_ConfirmationError(t *testing.T) {
	fail := func(string) (bool, error) { return false, errors.New("no tty") }
	s, l, _, out := newTestSession(t, Options{ConfirmDelete: true, Confirm: fail})
	run(t, s, "delete 2")

	assert.Equal(t, 3, l.Len())
	assert.Contains(t, out.String(), "no tty")
}

func TestCancel(t *testing.T) {
	s, l, log, out := newTestSession(t, Options{})
	run(t, s, "edit 1", "amount 1", "cancel")

	assert.Equal(t, ledger.SeedRecords(), l.List())
	assert.Contains(t, out.String(), "Edit of #1 cancelled")
	entries := log.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, activity.ActionCancel, entries[1].Action)
}

func TestSet_InvalidType(t *testing.T) {
	s, l, _, out := newTestSession(t, Options{})
	run(t, s, "type refund", "set colour red", "set")

	assert.Equal(t, model.TypeExpense, l.Draft().Type)
	assert.Contains(t, out.String(), "type: must be income or expense")
	assert.Contains(t, out.String(), `unknown field "colour"`)
	assert.Contains(t, out.String(), "usage: set")
}

func TestSet_KeepsInnerSpacing(t *testing.T) {
	s, l, _, _ := newTestSession(t, Options{})

	run(t, s, "set brand New  Balance")
	assert.Equal(t, "New  Balance", l.Draft().Category)

	run(t, s, "brand   Air\tMax  90  ")
	assert.Equal(t, "Air\tMax  90", l.Draft().Category)

	run(t, s, "set  date\t2024-03-15", "set amount 75", "save")
	txns := l.List()
	require.Len(t, txns, 4)
	assert.Equal(t, "Air\tMax  90", txns[3].Category)
	assert.Equal(t, "2024-03-15", txns[3].Date)
}

func TestRun_SkipsOverlongLine(t *testing.T) {
	s, l, _, out := newTestSession(t, Options{})
	input := "set brand " + strings.Repeat("x", 70*1024) + "\n" +
		"set brand Nike\n" +
		"delete 1\n"

	require.NoError(t, s.Run(strings.NewReader(input)))
	assert.Contains(t, out.String(), "line longer than 65536 bytes ignored")
	assert.Equal(t, "Nike", l.Draft().Category)
	assert.Equal(t, 2, l.Len())
}

func TestRun_LastLineWithoutNewline(t *testing.T) {
	s, l, _, _ := newTestSession(t, Options{})
	require.NoError(t, s.Run(strings.NewReader("delete 1\r\ndelete 2")))
	assert.Equal(t, 1, l.Len())
}

func TestExport(t *testing.T) {
	s, _, _, out := newTestSession(t, Options{})
	s.Exec("export")

	assert.Equal(t, ledger.Header+"\n"+
		"1,2024-03-01,150,expense,Nike\n"+
		"2,2024-03-05,200,income,Adidas\n"+
		"3,2024-03-10,180,expense,Jordan\n", out.String())
}

func TestQuitStopsReading(t *testing.T) {
	s, l, _, _ := newTestSession(t, Options{})
	run(t, s, "quit", "delete 1")

	assert.Equal(t, 3, l.Len())
}

func TestMiscCommands(t *testing.T) {
	s, _, _, out := newTestSession(t, Options{Brands: []string{"Nike", "Asics"}})
	run(t, s, "brands", "history", "help", "frobnicate", "edit", "edit x")

	got := out.String()
	assert.Contains(t, got, "Suggested brands: Nike, Asics")
	assert.Contains(t, got, "No activity yet.")
	assert.Contains(t, got, "Commands:")
	assert.Contains(t, got, `unknown command "frobnicate"`)
	assert.Contains(t, got, "expected exactly one transaction ID")
	assert.Contains(t, got, `invalid transaction ID "x"`)
}

func TestHistory(t *testing.T) {
	s, _, _, out := newTestSession(t, Options{})
	run(t, s, "delete 1", "history")

	assert.Contains(t, out.String(), "09:00:00  delete ok        #1")
}

func TestPrompt(t *testing.T) {
	s, _, _, out := newTestSession(t, Options{Prompt: true})
	run(t, s, "edit 2")

	assert.Contains(t, out.String(), "sneakerbook> ")
	assert.Contains(t, out.String(), "sneakerbook[edit #2]> ")
}

func TestRenderTable_Empty(t *testing.T) {
	var out bytes.Buffer
	RenderTable(&out, nil)
	assert.Contains(t, out.String(), "No transactions yet.")
}
