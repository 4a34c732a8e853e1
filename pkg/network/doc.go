// Package network implements the ownership network aggregate and its
// engines: Section 754 basis adjustment, recursive tax-liability
// attribution, and upstream ownership propagation.
//
// A Network is a single-owner, in-memory value. ApplyTransaction never
// mutates its input: it works on a deep clone and returns the clone only
// when the whole pipeline succeeds, so a rejected transaction leaves the
// caller's state untouched. Callers evaluating transaction sequences in
// parallel must give each goroutine its own Network (see Clone); the
// package provides no internal synchronization.
package network
