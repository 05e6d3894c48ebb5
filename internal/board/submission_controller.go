package board

import (
	"context"
	"errors"
)

// Sender issues the creation request for payload.
type Sender[P, R any] func(ctx context.Context, payload P) (R, error)

type SubmissionOptions[P any] struct {
	// Field names the payload in validation errors.
	Field string
	// IsEmpty rejects a payload before any request is made.
	IsEmpty func(P) bool
	// EmptyMessage is shown when IsEmpty rejects a payload.
	EmptyMessage string
	// FailureMessage is shown when the request fails.
	FailureMessage string
}

// SubmissionController posts one item at a time. While a submission is in
// flight further Submit calls are ignored.
type SubmissionController[P, R any] struct {
	send  Sender[P, R]
	opts  SubmissionOptions[P]
	state SubmissionState
	seq   uint64
	scope requestScope
}

type SubmitRequest[P, R any] struct {
	Payload P
	seq     uint64
	send    Sender[P, R]
	scope   requestScope
}

type SubmitResult[P, R any] struct {
	Payload P
	Value   R
	Err     error
	seq     uint64
}

func NewSubmissionController[P, R any](send Sender[P, R], opts SubmissionOptions[P]) *SubmissionController[P, R] {
	if opts.Field == "" {
		opts.Field = "payload"
	}
	return &SubmissionController[P, R]{
		send:  send,
		opts:  opts,
		scope: newRequestScope(),
	}
}

// Submit validates payload and starts its request. It returns (nil, nil)
// when a submission is already in flight or the controller is closed, and a
// *ValidationError without starting a request when the payload is empty.
func (c *SubmissionController[P, R]) Submit(payload P) (*SubmitRequest[P, R], error) {
	if c == nil || !c.scope.alive() || c.state.Submitting {
		return nil, nil
	}
	if c.opts.IsEmpty != nil && c.opts.IsEmpty(payload) {
		err := &ValidationError{Field: c.opts.Field}
		c.state.Error = c.opts.EmptyMessage
		if c.state.Error == "" {
			c.state.Error = err.Error()
		}
		c.state.Err = err
		return nil, err
	}
	c.seq++
	c.state.Submitting = true
	c.state.Error = ""
	c.state.Err = nil
	return &SubmitRequest[P, R]{
		Payload: payload,
		seq:     c.seq,
		send:    c.send,
		scope:   c.scope,
	}, nil
}

// Apply settles the outstanding submission and reports whether it created an
// item. On failure the error state is set and the caller keeps its input.
func (c *SubmissionController[P, R]) Apply(result SubmitResult[P, R]) (R, bool) {
	var zero R
	if c == nil || !c.scope.alive() || !c.state.Submitting || result.seq != c.seq {
		return zero, false
	}
	c.state.Submitting = false
	if result.Err != nil {
		c.state.Error = c.opts.FailureMessage
		c.state.Err = result.Err
		return zero, false
	}
	c.state.Error = ""
	c.state.Err = nil
	return result.Value, true
}

func (c *SubmissionController[P, R]) State() SubmissionState {
	if c == nil {
		return SubmissionState{}
	}
	return c.state
}

func (c *SubmissionController[P, R]) Submitting() bool {
	return c != nil && c.state.Submitting
}

// ClearError drops a stale message, typically once the user edits the input.
func (c *SubmissionController[P, R]) ClearError() {
	if c == nil || c.state.Submitting {
		return
	}
	c.state.Error = ""
	c.state.Err = nil
}

func (c *SubmissionController[P, R]) Alive() bool {
	return c != nil && c.scope.alive()
}

func (c *SubmissionController[P, R]) Close() {
	if c == nil {
		return
	}
	c.scope.close()
}

// Run performs the request. It is safe to call off the owning goroutine.
func (r *SubmitRequest[P, R]) Run(ctx context.Context) SubmitResult[P, R] {
	result := SubmitResult[P, R]{Payload: r.Payload, seq: r.seq}
	if r.send == nil {
		result.Err = errors.New("sender is not configured")
		return result
	}
	ctx, cancel := r.scope.bind(ctx)
	defer cancel()
	result.Value, result.Err = r.send(ctx, r.Payload)
	return result
}
