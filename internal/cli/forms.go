package cli

import (
	"fmt"
	"strconv"

	"github.com/avelinecarr/dealsense/internal/cli/formatter"
	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// dealsenseHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func dealsenseHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
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

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validateRequired rejects the empty string with a field-specific message.
func validateRequired(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// validateOptionalValue accepts empty or a non-negative number.
func validateOptionalValue(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}

// stageOptions builds huh select options over the open pipeline stages.
func stageOptions() []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(domain.PipelineStages))
	for _, s := range domain.PipelineStages {
		options = append(options, huh.NewOption(string(s), string(s)))
	}
	return options
}

// dealAddForm collects the fields for a new deal interactively.
func dealAddForm(name, value, stage *string) *huh.Form {
	*stage = string(domain.StageDiscovery)
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Deal Name").
				Placeholder("Acme Renewal").
				Value(name).
				Validate(validateRequired("name")),
			huh.NewInput().
				Title("Value (USD, blank for 0)").
				Placeholder("50000").
				Value(value).
				Validate(validateOptionalValue),
			huh.NewSelect[string]().
				Title("Stage").
				Options(stageOptions()...).
				Value(stage),
		),
	).WithTheme(dealsenseHuhTheme()).WithShowHelp(false)
}

// confirmForm builds a yes/no confirmation prompt.
func confirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(dealsenseHuhTheme()).WithShowHelp(false)
}

// parseValue converts a validated value string, treating empty as zero.
func parseValue(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
