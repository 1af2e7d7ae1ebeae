package domain

import (
	"context"
	"fmt"
	"time"
)

// Saga step statuses.
const (
	SagaStepPending       = "pending"
	SagaStepCompleted     = "completed"
	SagaStepFailed        = "failed"
	SagaStepCompensated   = "compensated"
	SagaStepUncompensated = "uncompensated"
)

// Checkout saga step names.
const (
	SagaStepCreateOrderHeader = "create_order_header"
	SagaStepCreateLineItems   = "create_line_items"
)

// SagaStep records the outcome of one step.
type SagaStep struct {
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	ExecutedAt time.Time `json:"executed_at,omitempty"`
}

func (s *SagaStep) mark(status string) {
	s.Status = status
	s.ExecutedAt = time.Now().UTC()
}

// SagaAction is one executable step. A nil Compensate means the step has no
// undo; if a later step fails it is recorded as uncompensated.
type SagaAction struct {
	Name       string
	Execute    func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga runs actions in order and keeps the trail of what happened.
type Saga struct {
	Steps []SagaStep `json:"steps"`
}

// SagaError reports the step that failed.
type SagaError struct {
	Step string
	Err  error
}

func (e *SagaError) Error() string {
	return fmt.Sprintf("saga step %s: %v", e.Step, e.Err)
}

func (e *SagaError) Unwrap() error { return e.Err }

// Run executes actions sequentially. When one fails, earlier completed steps
// are compensated in reverse order where possible and a *SagaError is returned.
func (s *Saga) Run(ctx context.Context, actions []SagaAction) error {
	s.Steps = make([]SagaStep, len(actions))
	for i, a := range actions {
		s.Steps[i] = SagaStep{Name: a.Name, Status: SagaStepPending}
	}

	for i, a := range actions {
		if err := a.Execute(ctx); err != nil {
			s.Steps[i].Error = err.Error()
			s.Steps[i].mark(SagaStepFailed)
			s.rollback(ctx, actions[:i])
			return &SagaError{Step: a.Name, Err: err}
		}
		s.Steps[i].mark(SagaStepCompleted)
	}
	return nil
}

func (s *Saga) rollback(ctx context.Context, done []SagaAction) {
	for i := len(done) - 1; i >= 0; i-- {
		step := &s.Steps[i]
		if done[i].Compensate == nil {
			step.mark(SagaStepUncompensated)
			continue
		}
		if err := done[i].Compensate(ctx); err != nil {
			step.Error = err.Error()
			step.mark(SagaStepFailed)
			continue
		}
		step.mark(SagaStepCompensated)
	}
}

// Uncompensated lists steps left in place after a failure.
func (s *Saga) Uncompensated() []string {
	var out []string
	for _, st := range s.Steps {
		if st.Status == SagaStepUncompensated {
			out = append(out, st.Name)
		}
	}
	return out
}
