package ledger

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/sneakerbook/internal/model"
)

// DateFormat is the layout a draft date must use.
const DateFormat = "2006-01-02"

// Amounts are typed by hand, so anything longer or further from 1 than
// float64 can hold is rejected before conversion.
const (
	maxAmountLen      = 64
	maxAmountExponent = 310
	minAmountExponent = -400
)

// Field names reported in FieldError.
const (
	FieldDate     = "date"
	FieldAmount   = "amount"
	FieldType     = "type"
	FieldCategory = "category"
)

// ValidateDraft checks every field of d and returns the record it would
// produce (ID unset). All failing fields are reported together.
func ValidateDraft(d model.Draft) (model.Transaction, error) {
	var errs []FieldError

	date := strings.TrimSpace(d.Date)
	if date == "" {
		errs = append(errs, FieldError{Field: FieldDate, Description: "required"})
	} else if _, err := time.Parse(DateFormat, date); err != nil {
		errs = append(errs, FieldError{Field: FieldDate, Description: "must be a date like 2024-03-01"})
	}

	amount, fe := parseAmount(d.Amount)
	if fe != nil {
		errs = append(errs, *fe)
	}

	if d.Type == "" {
		errs = append(errs, FieldError{Field: FieldType, Description: "required"})
	} else if !d.Type.Valid() {
		errs = append(errs, FieldError{Field: FieldType, Description: "must be income or expense"})
	}

	category := strings.TrimSpace(d.Category)
	if category == "" {
		errs = append(errs, FieldError{Field: FieldCategory, Description: "required"})
	}

	if len(errs) > 0 {
		return model.Transaction{}, ValidationError{Fields: errs}
	}

	return model.Transaction{
		Date:     date,
		Amount:   amount,
		Type:     d.Type,
		Category: category,
	}, nil
}

// ValidateRecord checks an already committed record, e.g. one read from CSV.
func ValidateRecord(t model.Transaction) error {
	var errs []FieldError
	if t.ID <= 0 {
		errs = append(errs, FieldError{Field: "id", Description: "must be positive"})
	}
	var ve ValidationError
	if _, err := ValidateDraft(DraftOf(t)); errors.As(err, &ve) {
		errs = append(errs, ve.Fields...)
	}
	if len(errs) > 0 {
		return ValidationError{Fields: errs}
	}
	return nil
}

// DraftOf converts a record back into editable field values.
// ValidateDraft(DraftOf(t)) yields t's fields unchanged.
func DraftOf(t model.Transaction) model.Draft {
	return model.Draft{
		Date:     t.Date,
		Amount:   FormatAmount(t.Amount),
		Type:     t.Type,
		Category: t.Category,
	}
}

// FormatAmount renders the shortest text that parses back to f.
func FormatAmount(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// FormatMoney renders f with two decimal places and a dollar sign, as shown in the table.
func FormatMoney(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "$?"
	}
	d := decimal.NewFromFloat(f)
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

func parseAmount(raw string) (float64, *FieldError) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0, &FieldError{Field: FieldAmount, Description: "required"}
	}
	if len(text) > maxAmountLen {
		return 0, &FieldError{Field: FieldAmount, Description: "out of range"}
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return 0, &FieldError{Field: FieldAmount, Description: "must be a number"}
	}
	// Float64 materialises 10^|exponent| as a big.Rat.
	exp := int64(d.Exponent())
	if exp < minAmountExponent || exp+int64(d.NumDigits()) > maxAmountExponent {
		return 0, &FieldError{Field: FieldAmount, Description: "out of range"}
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, &FieldError{Field: FieldAmount, Description: "out of range"}
	}
	return f, nil
}
