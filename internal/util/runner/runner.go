// Package runner provides subprocess execution for the external CLIs the
// tool drives (gcloud, terraform, docker).
//
// All cloud-side mutations go through one of these binaries, so every call
// site takes a [Runner] rather than invoking os/exec directly. Tests swap in
// a [Fake] to script outputs without touching the real tools.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
)

// Runner executes an external command and returns its output.
type Runner interface {
	// Run executes the command and returns combined stdout+stderr.
	// A non-zero exit status is returned as an error wrapping the
	// captured output.
	Run(ctx context.Context, name string, args ...string) (string, error)

	// RunStreaming executes the command with stdout/stderr attached to the
	// process streams. Used for long-running calls (terraform apply,
	// docker build) where the operator wants live output.
	RunStreaming(ctx context.Context, name string, args ...string) error
}

// ExitError reports a command that ran but exited non-zero, carrying the
// captured output for the operator.
type ExitError struct {
	Command string
	Output  string
	Err     error
}

func (e *ExitError) Error() string {
	out := strings.TrimSpace(e.Output)
	if out == "" {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Command, e.Err, out)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Exec is the default Runner backed by os/exec.
type Exec struct {
	// Verbose logs every invocation with its full argument list.
	Verbose bool

	// Dir, when set, is the working directory for every command.
	Dir string

	// Env entries are appended to the inherited environment.
	Env []string
}

var _ Runner = (*Exec)(nil)

// Run implements Runner.
func (e *Exec) Run(ctx context.Context, name string, args ...string) (string, error) {
	if e.Verbose {
		log.Printf("+ %s %s", name, strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.Dir
	cmd.Env = append(os.Environ(), e.Env...)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	if err := cmd.Run(); err != nil {
		return buf.String(), &ExitError{
			Command: name + " " + strings.Join(args, " "),
			Output:  buf.String(),
			Err:     err,
		}
	}
	return buf.String(), nil
}

// RunStreaming implements Runner.
func (e *Exec) RunStreaming(ctx context.Context, name string, args ...string) error {
	if e.Verbose {
		log.Printf("+ %s %s", name, strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.Dir
	cmd.Env = append(os.Environ(), e.Env...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return &ExitError{
			Command: name + " " + strings.Join(args, " "),
			Err:     err,
		}
	}
	return nil
}
