package internaldefs

import (
	consoleauth "github.com/connectai/consoleauth"
)

// CounterDef binds a metric ID to its stable exported name and help text.
type CounterDef struct {
	ID   consoleauth.MetricID
	Name string
	Help string
}

// HistogramDef binds a histogram metric ID to its stable exported name.
type HistogramDef struct {
	ID   consoleauth.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in a fixed order.
var CounterDefs = []CounterDef{
	{ID: consoleauth.MetricLoginSuccess, Name: "consoleauth_login_success_total", Help: "Successful password logins."},
	{ID: consoleauth.MetricLoginFailure, Name: "consoleauth_login_failure_total", Help: "Failed password logins."},
	{ID: consoleauth.MetricLoginStale, Name: "consoleauth_login_stale_total", Help: "Login completions discarded as superseded."},
	{ID: consoleauth.MetricTelLoginSuccess, Name: "consoleauth_tel_login_success_total", Help: "Successful mobile-code logins."},
	{ID: consoleauth.MetricTelLoginFailure, Name: "consoleauth_tel_login_failure_total", Help: "Failed mobile-code logins."},
	{ID: consoleauth.MetricTelLoginUnregistered, Name: "consoleauth_tel_login_unregistered_total", Help: "Mobile logins steered to registration."},
	{ID: consoleauth.MetricRegisterSuccess, Name: "consoleauth_register_success_total", Help: "Accepted registrations."},
	{ID: consoleauth.MetricRegisterFailure, Name: "consoleauth_register_failure_total", Help: "Failed registrations."},
	{ID: consoleauth.MetricPasswordResetSuccess, Name: "consoleauth_password_reset_success_total", Help: "Accepted password resets."},
	{ID: consoleauth.MetricPasswordResetFailure, Name: "consoleauth_password_reset_failure_total", Help: "Failed password resets."},
	{ID: consoleauth.MetricCodeSendSuccess, Name: "consoleauth_code_send_success_total", Help: "Dispatched verification codes."},
	{ID: consoleauth.MetricCodeSendFailure, Name: "consoleauth_code_send_failure_total", Help: "Failed verification-code dispatches."},
	{ID: consoleauth.MetricCodeSendRejected, Name: "consoleauth_code_send_rejected_total", Help: "Verification-code sends rejected locally."},
	{ID: consoleauth.MetricRedirectFallback, Name: "consoleauth_redirect_fallback_total", Help: "Post-login redirects that failed re-validation."},
	{ID: consoleauth.MetricLogout, Name: "consoleauth_logout_total", Help: "Explicit logouts."},
	{ID: consoleauth.MetricForcedExpiry, Name: "consoleauth_forced_expiry_total", Help: "Sessions cleared by the 401/403 interceptor."},
	{ID: consoleauth.MetricSessionRestored, Name: "consoleauth_session_restored_total", Help: "Sessions re-seeded from a persisted token."},
	{ID: consoleauth.MetricSessionRestoreFailure, Name: "consoleauth_session_restore_failure_total", Help: "Failed session restore attempts."},
	{ID: consoleauth.MetricTokenRefresh, Name: "consoleauth_token_refresh_total", Help: "Successful token-pair refreshes."},
	{ID: consoleauth.MetricGuardAllowed, Name: "consoleauth_guard_allowed_total", Help: "Navigation attempts allowed."},
	{ID: consoleauth.MetricGuardRedirected, Name: "consoleauth_guard_redirected_total", Help: "Navigation attempts redirected."},
	{ID: consoleauth.MetricGuardDenied, Name: "consoleauth_guard_denied_total", Help: "Navigation attempts denied to the forbidden page."},
	{ID: consoleauth.MetricGuardCompleted, Name: "consoleauth_guard_completed_total", Help: "Transitions reported as landed."},
}

// HistogramDefs lists every exported histogram in a fixed order.
var HistogramDefs = []HistogramDef{
	{ID: consoleauth.MetricGuardLatency, Name: "consoleauth_guard_latency_microseconds", Help: "Guard decision latency histogram."},
}

// HistogramBounds are the upper bounds of the latency buckets in
// microseconds, matching the core snapshot layout.
var HistogramBounds = []string{
	"5",
	"10",
	"25",
	"50",
	"100",
	"250",
	"500",
	"+Inf",
}

// HistogramBoundSuffix holds instrument-name-safe forms of HistogramBounds.
var HistogramBoundSuffix = []string{
	"5",
	"10",
	"25",
	"50",
	"100",
	"250",
	"500",
	"inf",
}

// NormalizeBuckets pads or truncates a raw snapshot slice to the fixed
// bucket count.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts to the cumulative form both
// exporters emit.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
