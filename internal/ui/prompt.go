// Package ui provides the interactive capabilities injected into the
// lifecycle manager: a confirmation gate and a prompt source. Production
// implementations are huh forms; tests and non-interactive runs use the
// static implementations.
package ui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// ErrCancelled indicates the user aborted an interactive form.
var ErrCancelled = errors.New("ui: cancelled")

// Confirmer is the confirmation gate used before destructive operations.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// PromptSource supplies values for fields omitted on the command line.
type PromptSource interface {
	Input(title, placeholder string) (string, error)
}

// IsInteractive reports whether stdin is attached to a terminal.
func IsInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// --- huh-backed implementations ---

// HuhConfirmer asks via a themed huh confirm form.
type HuhConfirmer struct{}

// Confirm implements Confirmer.
func (HuhConfirmer) Confirm(prompt string) (bool, error) {
	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(prompt).Affirmative("Yes").Negative("No").Value(&ok),
	)).WithTheme(newTheme())
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, ErrCancelled
		}
		return false, fmt.Errorf("ui: confirm: %w", err)
	}
	return ok, nil
}

// HuhPrompts asks via themed huh input forms.
type HuhPrompts struct{}

// Input implements PromptSource.
func (HuhPrompts) Input(title, placeholder string) (string, error) {
	var value string
	input := huh.NewInput().Title(title).Value(&value)
	if placeholder != "" {
		input = input.Placeholder(placeholder)
	}
	form := huh.NewForm(huh.NewGroup(input)).WithTheme(newTheme())
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("ui: input: %w", err)
	}
	if value == "" {
		return placeholder, nil
	}
	return value, nil
}

// --- deterministic implementations ---

// StaticConfirmer answers every confirmation the same way.
type StaticConfirmer bool

// Confirm implements Confirmer.
func (s StaticConfirmer) Confirm(string) (bool, error) {
	return bool(s), nil
}

// StaticPrompts answers prompts from a fixed map, falling back to the
// placeholder. Used in tests and non-interactive mode.
type StaticPrompts map[string]string

// Input implements PromptSource.
func (s StaticPrompts) Input(title, placeholder string) (string, error) {
	if v, ok := s[title]; ok {
		return v, nil
	}
	return placeholder, nil
}
