package model

import (
	"fmt"
	"strings"
)

// Type classifies a transaction as money in or money out.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Types lists every valid transaction type in display order.
var Types = []Type{TypeIncome, TypeExpense}

// Valid reports whether t is one of the known types.
func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// ParseType converts user input ("income", "Expense") into a Type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
	return t, nil
}

// Transaction is one committed ledger record.
type Transaction struct {
	ID       int
	Date     string // YYYY-MM-DD
	Amount   float64
	Type     Type
	Category string // brand, e.g. "Nike"
}

// Draft holds field values that have not been committed yet.
// Amount stays as the raw text the user typed until commit.
type Draft struct {
	Date     string
	Amount   string
	Type     Type
	Category string
}

// BlankDraft returns the empty form state for a new record.
func BlankDraft() Draft {
	return Draft{Type: TypeExpense}
}
