// Package session is the interactive front end of a ledger: it turns typed
// commands into field changes and ledger operations, then re-renders the
// records and reports the outcome.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/cleared-dev/sneakerbook/internal/activity"
	"github.com/cleared-dev/sneakerbook/internal/id"
	"github.com/cleared-dev/sneakerbook/internal/ledger"
)

// MissingFieldsNotice is shown for every validation failure.
const MissingFieldsNotice = "Please fill in all fields"

// Options configures a Session.
type Options struct {
	Brands        []string
	ConfirmDelete bool
	Confirm       ConfirmFunc // nil skips confirmation
	Prompt        bool        // print a prompt before each command
}

// Session drives one Ledger from line-oriented input.
type Session struct {
	ledger *ledger.Ledger
	log    *activity.Log
	out    io.Writer
	opts   Options
}

// New returns a Session writing to out.
func New(l *ledger.Ledger, log *activity.Log, out io.Writer, opts Options) *Session {
	if len(opts.Brands) == 0 {
		opts.Brands = ledger.DefaultBrands()
	}
	return &Session{ledger: l, log: log, out: out, opts: opts}
}

// MaxLineLen is the longest command line a Session accepts. Longer lines
// are reported and skipped.
const MaxLineLen = 64 * 1024

// Run reads commands from in until EOF or quit.
func (s *Session) Run(in io.Reader) error {
	RenderTable(s.out, s.ledger.List())

	r := bufio.NewReaderSize(in, MaxLineLen)
	for {
		if s.opts.Prompt {
			_, _ = fmt.Fprint(s.out, s.prompt())
		}
		line, tooLong, err := readLine(r)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		if tooLong {
			printError(s.out, fmt.Sprintf("line longer than %d bytes ignored", MaxLineLen))
			continue
		}
		if quit := s.Exec(line); quit {
			return nil
		}
	}
}

// readLine returns the next line of r without its line ending. A line that
// does not fit the reader's buffer is drained and reported as tooLong.
func readLine(r *bufio.Reader) (line string, tooLong bool, err error) {
	buf, isPrefix, err := r.ReadLine()
	if err != nil {
		return "", false, err
	}
	if !isPrefix {
		return string(buf), false, nil
	}
	for isPrefix {
		_, isPrefix, err = r.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", false, err
		}
	}
	return "", true, nil
}

// Exec runs a single command line and reports whether the session should end.
// Everything after the command word (or after the field name for set) is
// taken verbatim as the value, bar surrounding whitespace.
func (s *Session) Exec(line string) bool {
	word, rest := cutWord(line)
	if word == "" {
		return false
	}
	cmd := strings.ToLower(word)

	switch cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		s.help()
	case "set":
		field, value := cutWord(rest)
		if field == "" {
			printError(s.out, "usage: set <date|amount|type|brand> <value>")
			return false
		}
		s.set(field, value)
	case ledger.FieldDate, ledger.FieldAmount, ledger.FieldType, ledger.FieldCategory, "brand":
		s.set(cmd, rest)
	case "draft":
		s.showDraft()
	case "save", "add":
		s.save()
	case "edit":
		if txnID, ok := s.idArg(strings.Fields(rest)); ok {
			s.edit(txnID)
		}
	case "cancel":
		s.cancel()
	case "delete", "rm":
		if txnID, ok := s.idArg(strings.Fields(rest)); ok {
			s.delete(txnID)
		}
	case "list", "ls":
		RenderTable(s.out, s.ledger.List())
	case "export":
		if err := ledger.WriteRecords(s.out, s.ledger.List()); err != nil {
			printError(s.out, err.Error())
		}
	case "brands":
		printInfof(s.out, "Suggested brands: %s", strings.Join(s.opts.Brands, ", "))
	case "history":
		s.history()
	default:
		printError(s.out, fmt.Sprintf("unknown command %q (try help)", cmd))
	}
	return false
}

// cutWord splits s into its first whitespace-delimited word and the trimmed
// remainder, whose inner spacing is kept.
func cutWord(s string) (word, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func (s *Session) prompt() string {
	if st := s.ledger.State(); st.Mode == ledger.Editing {
		return fmt.Sprintf("sneakerbook[edit %s]> ", id.Format(st.EditingID))
	}
	return "sneakerbook> "
}

func (s *Session) set(field, value string) {
	if err := s.ledger.SetField(field, value); err != nil {
		var ve ledger.ValidationError
		if errors.As(err, &ve) {
			printError(s.out, ve.Fields[0].Error())
			return
		}
		printError(s.out, err.Error())
	}
}

func (s *Session) showDraft() {
	st := s.ledger.State()
	if st.Mode == ledger.Editing {
		printInfof(s.out, "Editing %s: %s", id.Format(st.EditingID), describeDraft(s.ledger.Draft()))
		return
	}
	printInfof(s.out, "New transaction: %s", describeDraft(s.ledger.Draft()))
}

func (s *Session) save() {
	st := s.ledger.State()
	action := activity.ActionAdd
	if st.Mode == ledger.Editing {
		action = activity.ActionUpdate
	}

	txn, err := s.ledger.Commit()
	if err != nil {
		s.reportFailure(action, st.EditingID, err)
		return
	}

	s.log.Record(action, activity.OutcomeOK, txn.ID, describeTransaction(txn))
	RenderTable(s.out, s.ledger.List())
	if action == activity.ActionUpdate {
		printSuccess(s.out, "Transaction updated successfully")
	} else {
		printSuccess(s.out, "Transaction added successfully")
	}
}

func (s *Session) edit(txnID int) {
	d, err := s.ledger.BeginEdit(txnID)
	if err != nil {
		s.reportFailure(activity.ActionBeginEdit, txnID, err)
		return
	}
	s.log.Record(activity.ActionBeginEdit, activity.OutcomeOK, txnID, "")
	printInfof(s.out, "Editing %s: %s", id.Format(txnID), describeDraft(d))
}

func (s *Session) cancel() {
	st := s.ledger.State()
	s.ledger.Cancel()
	s.log.Record(activity.ActionCancel, activity.OutcomeOK, st.EditingID, "")
	if st.Mode == ledger.Editing {
		printInfof(s.out, "Edit of %s cancelled", id.Format(st.EditingID))
		return
	}
	printInfof(s.out, "Draft cleared")
}

func (s *Session) delete(txnID int) {
	if _, ok := s.ledger.Get(txnID); ok && s.opts.ConfirmDelete && s.opts.Confirm != nil {
		confirmed, err := s.opts.Confirm(fmt.Sprintf("Delete transaction %s?", id.Format(txnID)))
		if err != nil {
			printError(s.out, err.Error())
			return
		}
		if !confirmed {
			printInfof(s.out, "Kept %s", id.Format(txnID))
			return
		}
	}

	if !s.ledger.Delete(txnID) {
		s.log.Record(activity.ActionDelete, activity.OutcomeNoop, txnID, "")
		printInfof(s.out, "No transaction %s; nothing to delete", id.Format(txnID))
		return
	}
	s.log.Record(activity.ActionDelete, activity.OutcomeOK, txnID, "")
	RenderTable(s.out, s.ledger.List())
	printSuccess(s.out, "Transaction deleted successfully")
}

func (s *Session) history() {
	entries := s.log.Entries()
	if len(entries) == 0 {
		printInfof(s.out, "No activity yet.")
		return
	}
	for _, e := range entries {
		target := "-"
		if e.TransactionID != 0 {
			target = id.Format(e.TransactionID)
		}
		_, _ = fmt.Fprintf(s.out, "%s  %-6s %-9s %-4s %s\n",
			e.Timestamp.Format("15:04:05"), e.Action, e.Outcome, target, e.Details)
	}
}

func (s *Session) reportFailure(action string, txnID int, err error) {
	var ve ledger.ValidationError
	var nf ledger.NotFoundError
	switch {
	case errors.As(err, &ve):
		s.log.Record(action, activity.OutcomeInvalid, txnID, ve.Error())
		printError(s.out, MissingFieldsNotice)
		for _, fe := range ve.Fields {
			printInfof(s.out, "%s", fe.Error())
		}
	case errors.As(err, &nf):
		s.log.Record(action, activity.OutcomeNotFound, nf.ID, "")
		printError(s.out, fmt.Sprintf("Transaction %s not found", id.Format(nf.ID)))
	default:
		printError(s.out, err.Error())
	}
}

func (s *Session) idArg(args []string) (int, bool) {
	if len(args) != 1 {
		printError(s.out, "expected exactly one transaction ID")
		return 0, false
	}
	txnID, err := id.Parse(args[0])
	if err != nil {
		printError(s.out, err.Error())
		return 0, false
	}
	return txnID, true
}

func (s *Session) help() {
	_, _ = fmt.Fprint(s.out, `Commands:
  set <field> <value>   change a draft field (date, amount, type, brand)
  date|amount|type|brand <value>
                        shorthand for set
  draft                 show the draft and edit mode
  save                  add the draft, or save the edit in progress
  edit <id>             load a transaction into the draft
  cancel                abandon the edit and clear the draft
  delete <id>           remove a transaction
  list                  show all transactions
  export                print transactions as CSV
  brands                show suggested brands
  history               show what happened this session
  quit                  leave
`)
}
