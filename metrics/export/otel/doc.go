// Package otel provides OpenTelemetry metric bindings for controller
// counters and the guard latency histogram.
//
// [NewOTelExporter] registers Int64ObservableCounter instruments per counter
// and Int64ObservableGauge per histogram bucket. A single callback reads
// [consoleauth.Controller.MetricsSnapshot] on each collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider — callers supply the Meter.
//   - Mutate controller state.
package otel
