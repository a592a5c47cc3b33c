package ledger

import "github.com/cleared-dev/sneakerbook/internal/model"

// DefaultBrands is the category vocabulary offered to users. Categories
// outside it are still accepted.
func DefaultBrands() []string {
	return []string{"Nike", "Adidas", "Jordan", "Yeezy", "Other"}
}

// SeedRecords returns the starter records a new session opens with.
func SeedRecords() []model.Transaction {
	return []model.Transaction{
		{ID: 1, Date: "2024-03-01", Amount: 150, Type: model.TypeExpense, Category: "Nike"},
		{ID: 2, Date: "2024-03-05", Amount: 200, Type: model.TypeIncome, Category: "Adidas"},
		{ID: 3, Date: "2024-03-10", Amount: 180, Type: model.TypeExpense, Category: "Jordan"},
	}
}

// Seeded returns a Ledger holding SeedRecords.
func Seeded() *Ledger {
	l, err := NewWithRecords(SeedRecords())
	if err != nil {
		panic("invalid seed records: " + err.Error())
	}
	return l
}
