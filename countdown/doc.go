// Package countdown implements the resend-cooldown timer: a single ticking
// value that gates verification-code dispatch for a fixed window.
//
// The tick loop is a cancellable goroutine bound to the owning [Timer];
// Close tears it down so a disposed timer can never mutate state afterwards.
// Nothing is persisted: a process restart resets the countdown to inactive,
// a deliberate acceptance of imprecision that keeps server-side rate limits
// out of this layer.
package countdown
