package board

import "context"

// requestScope ties in-flight work to the lifetime of its owning controller.
// Closing the scope cancels outstanding requests and makes later results
// inapplicable.
type requestScope struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func newRequestScope() requestScope {
	ctx, cancel := context.WithCancel(context.Background())
	return requestScope{ctx: ctx, cancel: cancel}
}

func (s requestScope) alive() bool {
	return s.ctx != nil && s.ctx.Err() == nil
}

func (s requestScope) close() {
	if s.cancel != nil {
		s.cancel()
	}
}

// bind derives a context that ends when either parent or the scope ends.
func (s requestScope) bind(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	if s.ctx == nil {
		return ctx, cancel
	}
	if s.ctx.Err() != nil {
		cancel()
		return ctx, cancel
	}
	stop := context.AfterFunc(s.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
