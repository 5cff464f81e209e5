// Package effects is a small effect system built on goroutines, channels and context.
//
// Side effects, such as logging or reaching a memo table, are delegated to
// handlers registered in a context.Context. Business logic performs an effect
// by enum and payload and never holds the handler itself, so the same code
// runs against a real handler, a test handler, or none.
//
// # What is an Effect?
//
// An effect is any logic that:
//   - depends on runtime context,
//   - causes external interaction,
//   - or violates pure function guarantees.
//
// # How does it work?
//
// Handlers are registered via `WithXxxEffectHandler(ctx)` and return the
// derived context plus an end function. Effects are performed through
// `PerformResumableEffect` (one result per effect) or `FireAndForgetEffect`.
//
// Each handler runs a fixed pool of workers. Payloads are routed to a worker
// by PartitionKey(), so effects sharing a key are handled in order.
// Ending a handler settles every effect it accepted: resumable effects still
// queued fail with ErrHandlerClosed, fire-and-forget effects are flushed.
//
// Built-in handlers live in sub-packages:
//   - log: structured logging through zap
//   - memo: lookups and invalidations on a purefn.MemoCache
//
// Example:
//
//	ctx, endLog := log.WithZapEffectHandler(ctx, 16, logger)
//	defer endLog()
//	ctx, endMemo := memo.WithEffectHandler(ctx, 16, 4, cache)
//	defer endMemo()
//
//	v, err := memo.Effect[int, int](ctx, 12)
package effects
