package session

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(question string) (bool, error)

// TerminalConfirm prompts on the controlling terminal. Callers must only
// use it when stdin is a terminal.
func TerminalConfirm(question string) (bool, error) {
	var confirm bool

	form := huh.NewConfirm().
		Title(question).
		Affirmative("Delete").
		Negative("Keep").
		WithButtonAlignment(lipgloss.Left).
		Value(&confirm)

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}
	return confirm, nil
}
