package stage

import (
	"fmt"
	"time"
)

// Stage is one named step of a workflow.
type Stage interface {
	Name() string
	Run(ctx *Context) error
}

// Run executes the stages in order, stopping at the first failure.
func Run(ctx *Context, stages []Stage) error {
	start := time.Now()
	ctx.Observer.Printf("Running %d stages...", len(stages))

	for i, s := range stages {
		stageStart := time.Now()
		label := fmt.Sprintf("%s (%d/%d)", s.Name(), i+1, len(stages))

		ctx.Observer.Event(Event{Type: EventStageStarted, Stage: s.Name(), Timestamp: stageStart})
		ctx.Observer.Printf("[%s] starting", label)

		if err := s.Run(ctx); err != nil {
			ctx.Observer.Event(Event{Type: EventStageFailed, Stage: s.Name(), Message: err.Error(), Timestamp: time.Now()})
			return fmt.Errorf("%s stage failed: %w", s.Name(), err)
		}

		ctx.Observer.Event(Event{Type: EventStageCompleted, Stage: s.Name(), Timestamp: time.Now()})
		ctx.Observer.Printf("[%s] completed in %v", label, time.Since(stageStart).Round(time.Millisecond))
	}

	ctx.Observer.Printf("All stages completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}

// funcStage adapts a function to the Stage interface.
type funcStage struct {
	name string
	run  func(ctx *Context) error
}

func (s funcStage) Name() string           { return s.name }
func (s funcStage) Run(ctx *Context) error { return s.run(ctx) }
