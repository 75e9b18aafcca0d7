// Package ui holds the interactive prompt helpers. Everything here
// degrades cleanly when stdout is not a terminal: prompts are refused
// rather than hanging a pipeline.
package ui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// ErrNotInteractive is returned when a confirmation is required but no
// terminal is attached. Callers should suggest the --force flag.
var ErrNotInteractive = errors.New("confirmation required but no terminal is attached (use --force)")

// interactive is swappable in tests.
var interactive = func() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// runForm is swappable in tests.
var runForm = func(form *huh.Form) error {
	return form.Run()
}

// Confirm asks a yes/no question and reports the answer. Declining is not
// an error.
func Confirm(title string) (bool, error) {
	if !interactive() {
		return false, ErrNotInteractive
	}

	var approved bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Value(&approved),
	))
	if err := runForm(form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return approved, nil
}

// ConfirmTyped asks the user to type an exact phrase, typically a resource
// name, before a destructive action proceeds. A mismatch is a decline, not
// an error.
func ConfirmTyped(title, phrase string) (bool, error) {
	if !interactive() {
		return false, ErrNotInteractive
	}

	var typed string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Description(fmt.Sprintf("Type %q to confirm", phrase)).
			Value(&typed),
	))
	if err := runForm(form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return typed == phrase, nil
}
