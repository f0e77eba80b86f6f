package render

// Middleware wraps Render calls.
type Middleware interface {
	// Handle processes the render and optionally calls next.
	// Return nil without calling next to skip the render.
	Handle(ctx *Context, next func() error) error
}

// MiddlewareFunc is a function adapter for Middleware.
type MiddlewareFunc func(ctx *Context, next func() error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(ctx *Context, next func() error) error {
	return f(ctx, next)
}

// ComposeMiddleware runs mw in order (first to last) with handler at the end.
func ComposeMiddleware(ctx *Context, mw []Middleware, handler func() error) error {
	if len(mw) == 0 {
		return handler()
	}

	chain := handler
	for i := len(mw) - 1; i >= 0; i-- {
		m := mw[i]
		next := chain
		chain = func() error {
			return m.Handle(ctx, next)
		}
	}

	return chain()
}

// Chain combines middleware into one, run in order.
func Chain(middleware ...Middleware) Middleware {
	return MiddlewareFunc(func(ctx *Context, next func() error) error {
		return ComposeMiddleware(ctx, middleware, next)
	})
}
