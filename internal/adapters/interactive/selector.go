package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/zapswap/zapdeploy/internal/domain/config"
	"github.com/zapswap/zapdeploy/internal/domain/models"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectDeployment selects a deployment record from a list
func (s *SelectorAdapter) SelectDeployment(ctx context.Context, records []*models.DeploymentRecord, prompt string) (*models.DeploymentRecord, error) {
	// In non-interactive mode, we can't select
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no deployments provided for selection")
	}

	// If only one match, return it directly
	if len(records) == 1 {
		return records[0], nil
	}

	options := FormatDeploymentOptions(records)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          FuzzySearchFunc(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return records[index], nil
}

// Confirm asks a yes/no question; non-interactive mode answers defaultYes
func (s *SelectorAdapter) Confirm(ctx context.Context, message string, defaultYes bool) (bool, error) {
	if s.config.NonInteractive {
		return defaultYes, nil
	}

	defaultValue := "n"
	if defaultYes {
		defaultValue = "y"
	}

	prompt := promptui.Prompt{
		Label:     message,
		IsConfirm: true,
		Default:   defaultValue,
	}

	if _, err := prompt.Run(); err != nil {
		if err == promptui.ErrAbort {
			return false, nil
		}
		return false, fmt.Errorf("confirmation cancelled: %w", err)
	}
	return true, nil
}

// FormatDeploymentOptions creates display strings for record selection
func FormatDeploymentOptions(records []*models.DeploymentRecord) []string {
	options := make([]string, len(records))
	for i, rec := range records {
		// Format as "namespace/chain Name at 0x... [state]"
		name := color.New(color.FgWhite, color.Bold).Sprint(rec.GetDisplayName())
		env := color.New(color.FgBlue).Sprintf("%s/%d", rec.Namespace, rec.ChainID)
		state := color.New(color.FgYellow).Sprintf("[%s]", strings.ToLower(string(rec.State)))
		options[i] = fmt.Sprintf("%s %s at %s %s", env, name, rec.Address, state)
	}
	return options
}

// FuzzySearchFunc creates a fuzzy search function for promptui
func FuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		// Empty search shows all items
		if input == "" {
			return true
		}

		// Convert to lowercase for case-insensitive search
		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		// First try simple substring match
		if strings.Contains(item, input) {
			return true
		}

		// Then try fuzzy match
		pattern := fuzzy.Find(input, []string{item})
		return len(pattern) > 0
	}
}

// Ensure the adapter implements the interface
var (
	_ usecase.DeploymentSelector = (*SelectorAdapter)(nil)
	_ usecase.Confirmer          = (*SelectorAdapter)(nil)
)
