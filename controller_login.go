package consoleauth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Login authenticates with username and password. On success it writes the
// session store atomically, persists or forgets the remembered credentials
// per rememberMe, and navigates to the re-validated destination. On any
// failure the store is untouched and exactly one error message is surfaced.
func (c *Controller) Login(ctx context.Context, username, password string, rememberMe bool) (bool, error) {
	if c == nil || c.client == nil {
		return false, ErrControllerNotReady
	}

	attemptID := c.beginAttempt()
	c.busy.Store(true)
	defer c.busy.Store(false)

	res, err := c.client.Login(ctx, username, password)
	if err != nil {
		c.metrics.Inc(MetricLoginFailure)
		c.emit(AuditEvent{EventType: "login_failure", Username: username, AttemptID: attemptID,
			Error: err.Error(), Metadata: map[string]string{"reason": "transport"}})
		c.notify.Error(msgLoginFailed)
		return false, fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	if res.Code != CodeOK || res.Data == nil {
		c.metrics.Inc(MetricLoginFailure)
		c.emit(AuditEvent{EventType: "login_failure", Username: username, AttemptID: attemptID,
			Metadata: map[string]string{"reason": "rejected", "code": fmt.Sprint(res.Code)}})
		c.notify.Error(serverMessage(res.Message, msgLoginFailed))
		return false, ErrLoginFailed
	}

	if !c.commitSession(attemptID, res.Data) {
		c.metrics.Inc(MetricLoginStale)
		c.emit(AuditEvent{EventType: "login_stale", Username: username, AttemptID: attemptID})
		return false, ErrStaleAttempt
	}

	if rememberMe {
		if err := c.vault.Remember(ctx, username, password); err != nil {
			// Remember-me is a convenience; its storage failing must not
			// fail an otherwise successful login.
			c.emit(AuditEvent{EventType: "vault_write_failed", Username: username, Error: err.Error()})
		}
	} else {
		if err := c.vault.Forget(ctx); err != nil {
			c.emit(AuditEvent{EventType: "vault_clear_failed", Username: username, Error: err.Error()})
		}
	}

	c.metrics.Inc(MetricLoginSuccess)
	c.emit(AuditEvent{EventType: "login_success", UserID: userID(res.Data), Username: username,
		AttemptID: attemptID, Success: true})
	c.notify.Success(msgLoginSuccess)
	c.nav.Push(c.resolveDestination())
	return true, nil
}

// TelLogin authenticates with a phone number and verification code. The
// success path matches [Controller.Login], including redirect re-validation.
// The distinguished not-registered response navigates to the registration
// screen with the server's guidance message and leaves the session empty.
func (c *Controller) TelLogin(ctx context.Context, tel, code string) (bool, error) {
	if c == nil || c.client == nil {
		return false, ErrControllerNotReady
	}

	attemptID := c.beginAttempt()
	c.busy.Store(true)
	defer c.busy.Store(false)

	res, err := c.client.TelLogin(ctx, tel, code)
	if err != nil {
		c.metrics.Inc(MetricTelLoginFailure)
		c.emit(AuditEvent{EventType: "tel_login_failure", Username: tel, AttemptID: attemptID,
			Error: err.Error(), Metadata: map[string]string{"reason": "transport"}})
		c.notify.Error(msgLoginFailed)
		return false, fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	switch {
	case res.Code == CodeOK && res.Data != nil:
		if !c.commitSession(attemptID, res.Data) {
			c.metrics.Inc(MetricLoginStale)
			c.emit(AuditEvent{EventType: "tel_login_stale", Username: tel, AttemptID: attemptID})
			return false, ErrStaleAttempt
		}
		c.metrics.Inc(MetricTelLoginSuccess)
		c.emit(AuditEvent{EventType: "tel_login_success", UserID: userID(res.Data), Username: tel,
			AttemptID: attemptID, Success: true})
		c.notify.Success(msgLoginSuccess)
		c.nav.Push(c.resolveDestination())
		return true, nil

	case res.Code == CodeNotRegistered:
		// Not an error: steer to registration. No session mutation.
		c.metrics.Inc(MetricTelLoginUnregistered)
		c.emit(AuditEvent{EventType: "tel_login_unregistered", Username: tel, AttemptID: attemptID})
		c.notify.Warn(serverMessage(res.Message, msgLoginFailed))
		c.nav.Push(c.config.Routes.Register)
		return false, ErrNotRegistered

	default:
		c.metrics.Inc(MetricTelLoginFailure)
		c.emit(AuditEvent{EventType: "tel_login_failure", Username: tel, AttemptID: attemptID,
			Metadata: map[string]string{"reason": "rejected", "code": fmt.Sprint(res.Code)}})
		c.notify.Error(serverMessage(res.Message, msgLoginFailed))
		return false, ErrLoginFailed
	}
}

// beginAttempt stamps a new login-family attempt and supersedes any earlier
// one still in flight.
func (c *Controller) beginAttempt() string {
	id := uuid.NewString()
	c.attemptMu.Lock()
	c.attemptID = id
	c.attemptMu.Unlock()
	return id
}

// invalidateAttempts makes every in-flight login-family completion stale.
// Called by Logout and ForceExpire so a slow response cannot resurrect a
// session that was deliberately cleared.
func (c *Controller) invalidateAttempts() {
	c.attemptMu.Lock()
	c.attemptID = ""
	c.attemptMu.Unlock()
}

// commitSession writes the payload into the store iff attemptID is still the
// current attempt. The stamp check and the store write happen under the same
// lock, so a newer attempt's write can never be overwritten by an older
// completion.
func (c *Controller) commitSession(attemptID string, data *LoginPayload) bool {
	c.attemptMu.Lock()
	defer c.attemptMu.Unlock()
	if c.attemptID != attemptID {
		return false
	}
	c.store.Set(data.User, data.Permissions, data.Role, data.Token, data.RefreshToken)
	return true
}

// resolveDestination computes where a successful login lands. A pending
// redirect parameter is honored only after re-validation against the freshly
// written session: admin-only, single-permission, and any-of checks run in
// that order and any failure falls back to the default route. This is what
// keeps a bookmarked URL from leaking access through the login round trip.
func (c *Controller) resolveDestination() string {
	def := c.defaultRoute()

	redirect := c.nav.CurrentQuery().Get(c.config.Routes.RedirectParam)
	if redirect == "" || redirect == def {
		return def
	}

	meta, ok := c.resolver.Resolve(redirect)
	if !ok {
		// Unknown to the metadata table: keep the redirect and let the
		// guard rule on it during the actual transition.
		return redirect
	}

	switch {
	case meta.AdminOnly && !c.store.IsAdmin():
	case meta.Permission != "" && !c.store.HasPermission(meta.Permission):
	case meta.Permission == "" && len(meta.AnyOf) > 0 && !c.store.HasAnyPermission(meta.AnyOf):
	default:
		return redirect
	}

	c.metrics.Inc(MetricRedirectFallback)
	c.emit(AuditEvent{EventType: "redirect_fallback", Path: redirect,
		Metadata: map[string]string{"fallback": def}})
	return def
}

func userID(data *LoginPayload) string {
	if data == nil || data.User == nil {
		return ""
	}
	return data.User.UserID
}
