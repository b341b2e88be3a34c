package consoleauth

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	internalaudit "github.com/connectai/consoleauth/internal/audit"
	"github.com/connectai/consoleauth/countdown"
	"github.com/connectai/consoleauth/session"
	"github.com/connectai/consoleauth/token"
	"github.com/connectai/consoleauth/vault"
)

// User-facing messages. The server's message takes precedence whenever it is
// present; these are the generic fallbacks and confirmations.
const (
	msgLoginSuccess    = "Login successful"
	msgLoginFailed     = "Login failed"
	msgRegisterSuccess = "Registration successful"
	msgPasswordReset   = "Password has been reset"
	msgRequestFailed   = "Request failed"
	msgCodeSent        = "Verification code sent"
	msgCodeSendFailed  = "Failed to send verification code"
	msgPhoneRequired   = "Please enter your mobile phone number"
	msgLoginExpired    = "Login expired, please sign in again"
)

// Controller orchestrates the auth flows: login, mobile-code login,
// registration, password reset, code dispatch, logout, and session restore.
// It is the only writer of the session store; the [Guard] and the request
// transport read it.
//
// All operations return a success boolean plus a sentinel error usable with
// errors.Is. The boolean is the answer of record: a distinguished outcome such
// as [ErrNotRegistered] is still false.
type Controller struct {
	config    Config
	store     *session.Store
	vault     *vault.Vault
	cooldown  *countdown.Timer
	inspector *token.Inspector
	client    AuthClient
	resolver  RouteResolver
	nav       Navigator
	notify    Notifier
	audit     *internalaudit.Dispatcher
	metrics   *Metrics

	busy    atomic.Bool
	sending atomic.Bool

	// attemptMu orders session writes from login-family completions and
	// protects the current attempt stamp.
	attemptMu sync.Mutex
	attemptID string

	redirectMu    sync.Mutex
	redirectTimer *time.Timer

	closed atomic.Bool
}

// Close tears down the cooldown timer, any pending delayed redirect, and the
// audit dispatcher. The controller is unusable afterwards.
func (c *Controller) Close() {
	if c == nil || !c.closed.CompareAndSwap(false, true) {
		return
	}
	c.redirectMu.Lock()
	if c.redirectTimer != nil {
		c.redirectTimer.Stop()
		c.redirectTimer = nil
	}
	c.redirectMu.Unlock()
	c.cooldown.Close()
	c.audit.Close()
}

// Loading reports whether a login-family call is in flight. The UI binds
// this to its busy indicator to serialize submissions.
func (c *Controller) Loading() bool {
	return c.busy.Load()
}

// SendingCode reports whether a verification-code dispatch is in flight.
func (c *Controller) SendingCode() bool {
	return c.sending.Load()
}

// Countdown returns the seconds left in the resend cooldown.
func (c *Controller) Countdown() int {
	return c.cooldown.Remaining()
}

// CountdownActive reports whether the resend cooldown is running.
func (c *Controller) CountdownActive() bool {
	return c.cooldown.Active()
}

// CountdownText returns the cooldown display string, empty when inactive.
func (c *Controller) CountdownText() string {
	return c.cooldown.Text()
}

// HasPermission reports whether the session holds the capability code.
func (c *Controller) HasPermission(code string) bool {
	return c.store.HasPermission(code)
}

// HasAnyPermission reports whether the session holds any of the codes.
func (c *Controller) HasAnyPermission(codes []string) bool {
	return c.store.HasAnyPermission(codes)
}

// IsAdmin reports whether the session belongs to an administrator.
func (c *Controller) IsAdmin() bool {
	return c.store.IsAdmin()
}

// AccessToken returns the current bearer token for request authorization
// headers, empty when unauthenticated.
func (c *Controller) AccessToken() string {
	return c.store.AccessToken()
}

// Session returns an immutable snapshot of the current session.
func (c *Controller) Session() session.Session {
	return c.store.Snapshot()
}

// RememberedCredentials recalls the remember-me pair for prefilling the
// login form. It never fails; a missing or undecryptable password comes back
// empty with RememberMe false.
func (c *Controller) RememberedCredentials(ctx context.Context) Credentials {
	return c.vault.Recall(ctx)
}

// Logout unconditionally clears the session and navigates to the login
// screen. Safe to call with no session; calling it twice leaves the same
// cleared state as once.
func (c *Controller) Logout() {
	c.invalidateAttempts()
	c.store.Clear()
	c.metrics.Inc(MetricLogout)
	c.emit(AuditEvent{EventType: "logout", Success: true})
	c.nav.Push(c.config.Routes.Login)
}

// ForceExpire is the entry point for the transport's global 401/403
// interceptor: it clears the session, surfaces the login-expired notice, and
// navigates to login. Safe to call at any time, including concurrently with
// an in-flight login, whose completion will then be discarded as stale.
func (c *Controller) ForceExpire() {
	c.invalidateAttempts()
	c.store.Clear()
	c.metrics.Inc(MetricForcedExpiry)
	c.emit(AuditEvent{EventType: "session_expired", Success: false})
	c.notify.Error(msgLoginExpired)
	c.nav.Push(c.config.Routes.Login)
}

// Metrics exposes the in-process counters for exporters.
func (c *Controller) MetricsSnapshot() MetricsSnapshot {
	return c.metrics.Snapshot()
}

// AuditDropped returns the number of audit events dropped by a full buffer.
func (c *Controller) AuditDropped() uint64 {
	return c.audit.Dropped()
}

func (c *Controller) emit(event AuditEvent) {
	if c.audit == nil {
		return
	}
	c.audit.Emit(context.Background(), event)
}

func (c *Controller) defaultRoute() string {
	if c.store.IsAdmin() {
		return c.config.Routes.Dashboard
	}
	return c.config.Routes.Agents
}

// serverMessage prefers the server-provided text over the generic fallback.
func serverMessage(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
