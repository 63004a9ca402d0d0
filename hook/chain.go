package hook

import "context"

// Func is a synchronous hook callback. It must return quickly and must not
// perform blocking I/O; use AsyncFunc for anything that can stall.
type Func[T any] func(T) error

// AsyncFunc is a hook callback that may perform blocking I/O. It receives the
// context of the run that fired it and should honor cancellation.
type AsyncFunc[T any] func(context.Context, T) error

// Chain is an ordered collection of callbacks for a single lifecycle event,
// split into a synchronous and an asynchronous sub-chain. The zero value is
// ready to use. A Chain is not safe for concurrent registration; register all
// callbacks before the run starts.
type Chain[T any] struct {
	sync  []Func[T]
	async []AsyncFunc[T]
}

// On appends fn to the synchronous sub-chain and returns the chain for
// fluent registration.
func (c *Chain[T]) On(fn Func[T]) *Chain[T] {
	c.sync = append(c.sync, fn)
	return c
}

// OnAsync appends fn to the asynchronous sub-chain and returns the chain for
// fluent registration.
func (c *Chain[T]) OnAsync(fn AsyncFunc[T]) *Chain[T] {
	c.async = append(c.async, fn)
	return c
}

// Len returns the total number of registered callbacks across both sub-chains.
func (c *Chain[T]) Len() int {
	return len(c.sync) + len(c.async)
}

// Fire invokes the synchronous sub-chain fully, then the asynchronous
// sub-chain fully, each in registration order, passing v to every callback.
// The first non-nil error aborts the remaining callbacks and is returned.
// Firing an empty chain is a no-op.
func (c *Chain[T]) Fire(ctx context.Context, v T) error {
	for _, fn := range c.sync {
		if err := fn(v); err != nil {
			return err
		}
	}
	for _, fn := range c.async {
		if err := fn(ctx, v); err != nil {
			return err
		}
	}
	return nil
}
