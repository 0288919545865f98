package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mvbarbosa/capex/internal/cli/formatter"
	"github.com/mvbarbosa/capex/internal/money"
)

// capexHuhTheme returns a custom huh theme using the formatter palette.
func capexHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := money.ParseDate(strings.TrimSpace(s))
	return err
}

func validateRequiredDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("a date is required")
	}
	return validateOptionalDate(s)
}

func validateAmount(s string) error {
	d, err := money.ParseBRL(s)
	if err != nil {
		return fmt.Errorf("enter an amount like 1.234.567,89")
	}
	if d.IsNegative() {
		return fmt.Errorf("amount must be zero or positive")
	}
	return nil
}

func validateYear(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err != nil || n < 1900 || n > 2200 {
		return fmt.Errorf("enter a four-digit year")
	}
	return nil
}

// dateInput returns a huh.Input for a date field with YYYY-MM-DD validation.
func dateInput(title string, value *string, required bool) *huh.Input {
	v := validateOptionalDate
	if required {
		v = validateRequiredDate
	}
	return huh.NewInput().
		Title(title).
		Placeholder("2026-06-30").
		Value(value).
		Validate(v)
}

// amountInput returns a huh.Input for a non-negative currency amount.
func amountInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("1.234.567,89").
		Value(value).
		Validate(validateAmount)
}

// runForm executes a huh form with the application theme.
func runForm(groups ...*huh.Group) error {
	return huh.NewForm(groups...).WithTheme(capexHuhTheme()).Run()
}
