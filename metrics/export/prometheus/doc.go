// Package prometheus renders controller metrics for Prometheus scrapes.
//
// [NewPrometheusExporter] accepts a [consoleauth.Controller] and exposes an
// [net/http.Handler] that renders every counter and the guard latency
// histogram in text exposition format. Counter names are prefixed
// consoleauth_*_total.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate controller state.
package prometheus
