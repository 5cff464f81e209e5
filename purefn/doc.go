// Package purefn memoizes pure computations by their input.
//
// Memoizing is not just a performance trick.
// It forces the developer to ask:
//
//	→ "Is this function really pure?"
//	→ "Can this computation be treated as a lazy table?"
//
// The centerpiece is MemoCache, which wraps a Computation (a single-method
// strategy: given a key, produce a value) and evaluates it lazily, the first
// time a key is requested. Later requests for the same key reuse the result.
//
// Guarantees:
//   - At most one computation per key while the key stays memoized, even with
//     many goroutines racing on the same miss. Late callers wait for the
//     in-flight computation instead of starting their own.
//   - Keys are independent: the table is sharded with xxhash and no lock is
//     held while computing, so a slow key never blocks another one.
//   - Failures are not memoized. The computation's error reaches the caller
//     unchanged and the key can be retried.
//   - Memoization is monotonic. Only Invalidate, or the optional LRU capacity,
//     removes an entry.
//
// Optional extensions are configured through Options: an LRU Capacity, a
// second tier Store (see package purefn/store), Metrics (see package
// purefn/prom), an OnEvict hook and a zap Logger.
//
// The Tableize family keeps the lightweight form for infallible functions of
// one to four arguments:
//
//	square := purefn.TableizeI1O1(func(x int) int { return x * x }, 128)
//	square(3) // computed
//	square(3) // memoized
//
// WARNING: Do not memoize impure functions (e.g., those depending on time, I/O, etc).
// The first observed result is pinned for the key.
package purefn
