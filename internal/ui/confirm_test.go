package ui

import (
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withInteractive(t *testing.T, value bool) {
	t.Helper()
	prev := interactive
	interactive = func() bool { return value }
	t.Cleanup(func() { interactive = prev })
}

func withFormError(t *testing.T, err error) {
	t.Helper()
	prev := runForm
	runForm = func(*huh.Form) error { return err }
	t.Cleanup(func() { runForm = prev })
}

func TestConfirmRequiresTerminal(t *testing.T) {
	withInteractive(t, false)

	_, err := Confirm("Proceed?")
	require.ErrorIs(t, err, ErrNotInteractive)

	_, err = ConfirmTyped("Delete project?", "my-project")
	require.ErrorIs(t, err, ErrNotInteractive)
}

func TestConfirmUserAbortIsDecline(t *testing.T) {
	withInteractive(t, true)
	withFormError(t, huh.ErrUserAborted)

	ok, err := Confirm("Proceed?")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = ConfirmTyped("Delete project?", "my-project")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConfirmTypedEmptyInputIsDecline(t *testing.T) {
	withInteractive(t, true)
	withFormError(t, nil)

	// The form ran but nothing was typed; only the exact phrase confirms.
	ok, err := ConfirmTyped("Delete project?", "my-project")
	require.NoError(t, err)
	assert.False(t, ok)
}
