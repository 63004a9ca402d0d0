// Package hook provides the ordered callback chain used at every lifecycle
// event of a watcher run.
//
// A Chain holds two independently ordered sub-chains: synchronous callbacks
// and asynchronous callbacks. Firing a chain invokes the synchronous sub-chain
// fully, in registration order, and then the asynchronous sub-chain fully, in
// registration order. The same context value is passed to every callback; no
// chain short-circuits on value predicates. A callback that returns a non-nil
// error aborts the remainder of the chain and propagates the error to the
// caller; whether that failure is isolated or fatal is the caller's decision.
//
// # Basic Usage
//
//	var ch hook.Chain[string]
//	ch.On(func(msg string) error {
//	    fmt.Println("sync:", msg)
//	    return nil
//	})
//	ch.OnAsync(func(ctx context.Context, msg string) error {
//	    return publish(ctx, msg)
//	})
//
//	err := ch.Fire(ctx, "service degraded")
//
// The zero value of Chain is an empty chain and firing it is a no-op.
package hook
