package session

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cleared-dev/sneakerbook/internal/ledger"
	"github.com/cleared-dev/sneakerbook/internal/model"
)

var (
	successSymbol = "✓"
	errorSymbol   = "✗"
	infoSymbol    = "→"

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00AF5F", Dark: "#00D787"})
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F87"})
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

const colAmount = 2

func printSuccess(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		successStyle.Render(successSymbol),
		message,
	)
}

func printError(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		errorStyle.Render(errorSymbol),
		errorStyle.Render(message),
	)
}

func printInfof(w io.Writer, format string, args ...interface{}) {
	formatted := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(w, "%s %s\n",
		infoStyle.Render(infoSymbol),
		formatted,
	)
}

// RenderTable writes txns as a bordered table in display order.
func RenderTable(w io.Writer, txns []model.Transaction) {
	if len(txns) == 0 {
		printInfof(w, "No transactions yet.")
		return
	}

	rows := make([][]string, len(txns))
	for i, txn := range txns {
		rows[i] = []string{
			strconv.Itoa(txn.ID),
			txn.Date,
			ledger.FormatMoney(txn.Amount),
			typeLabel(txn.Type),
			txn.Category,
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("ID", "Date", "Amount", "Type", "Brand").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == colAmount {
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		})

	_, _ = fmt.Fprintln(w, t.Render())
}

func typeLabel(t model.Type) string {
	switch t {
	case model.TypeIncome:
		return incomeStyle.Render(string(t))
	case model.TypeExpense:
		return expenseStyle.Render(string(t))
	default:
		return string(t)
	}
}

func describeDraft(d model.Draft) string {
	return fmt.Sprintf("date=%q amount=%q type=%q brand=%q", d.Date, d.Amount, d.Type, d.Category)
}

func describeTransaction(t model.Transaction) string {
	return fmt.Sprintf("%s %s %s %s", t.Date, ledger.FormatAmount(t.Amount), t.Type, t.Category)
}
