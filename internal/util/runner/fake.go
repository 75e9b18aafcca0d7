package runner

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Call records a single invocation made against a Fake.
type Call struct {
	Name string
	Args []string
}

// String returns the invocation as a single command line.
func (c Call) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Response scripts the result for a matching invocation.
type Response struct {
	Output string
	Err    error
}

// Fake is a scripted Runner for tests. Responses are matched by substring
// against the full command line; the first match wins. Unmatched commands
// succeed with empty output so tests only script what they care about.
type Fake struct {
	mu        sync.Mutex
	responses []fakeResponse
	calls     []Call
}

type fakeResponse struct {
	match string
	resp  Response
}

var _ Runner = (*Fake)(nil)

// Respond scripts a response for any command line containing match.
func (f *Fake) Respond(match string, resp Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, fakeResponse{match: match, resp: resp})
}

// FailWith scripts an error for any command line containing match.
func (f *Fake) FailWith(match, message string) {
	f.Respond(match, Response{Err: errors.New(message)})
}

// Calls returns all recorded invocations.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallLines returns every invocation as a command-line string.
func (f *Fake) CallLines() []string {
	calls := f.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.String()
	}
	return lines
}

// Run implements Runner.
func (f *Fake) Run(_ context.Context, name string, args ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := Call{Name: name, Args: args}
	f.calls = append(f.calls, call)

	line := call.String()
	for _, r := range f.responses {
		if strings.Contains(line, r.match) {
			return r.resp.Output, r.resp.Err
		}
	}
	return "", nil
}

// RunStreaming implements Runner.
func (f *Fake) RunStreaming(ctx context.Context, name string, args ...string) error {
	_, err := f.Run(ctx, name, args...)
	return err
}
