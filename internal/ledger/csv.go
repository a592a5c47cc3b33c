package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cleared-dev/sneakerbook/internal/model"
)

// Header is the CSV header for exported transactions.
const Header = "id,date,amount,type,category"

const (
	numFields   = 5
	colID       = 0
	colDate     = 1
	colAmount   = 2
	colType     = 3
	colCategory = 4
)

// ReadRecords reads transactions from CSV. The first row must be the header.
func ReadRecords(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteRecords writes transactions as CSV, header first.
func WriteRecords(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalRecord(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRecord converts a Transaction to a CSV row.
func MarshalRecord(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = strconv.Itoa(txn.ID)
	row[colDate] = txn.Date
	row[colAmount] = FormatAmount(txn.Amount)
	row[colType] = string(txn.Type)
	row[colCategory] = txn.Category
	return row
}

// UnmarshalRecord converts a CSV row to a Transaction.
func UnmarshalRecord(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	txnID, err := strconv.Atoi(strings.TrimSpace(record[colID]))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing id %q: %w", record[colID], err)
	}

	amount, fe := parseAmount(record[colAmount])
	if fe != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %s", record[colAmount], fe.Description)
	}

	txnType, err := model.ParseType(record[colType])
	if err != nil {
		return model.Transaction{}, err
	}

	return model.Transaction{
		ID:       txnID,
		Date:     strings.TrimSpace(record[colDate]),
		Amount:   amount,
		Type:     txnType,
		Category: strings.TrimSpace(record[colCategory]),
	}, nil
}

// Load builds a Ledger from a transactions CSV file.
func Load(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening transactions: %w", err)
	}
	defer f.Close()

	txns, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("reading transactions %s: %w", path, err)
	}
	l, err := NewWithRecords(txns)
	if err != nil {
		return nil, fmt.Errorf("loading transactions %s: %w", path, err)
	}
	return l, nil
}
