package consoleauth

import (
	"context"
	"fmt"
	"time"
)

// Register submits the registration form. Success surfaces a confirmation
// and, after the configured delay, navigates back to the login screen so the
// user can sign in with the new account. No session is created either way.
func (c *Controller) Register(ctx context.Context, form RegisterForm) (bool, error) {
	if c == nil || c.client == nil {
		return false, ErrControllerNotReady
	}

	c.busy.Store(true)
	defer c.busy.Store(false)

	res, err := c.client.Register(ctx, form)
	if err != nil {
		c.metrics.Inc(MetricRegisterFailure)
		c.emit(AuditEvent{EventType: "register_failure", Username: form.Username,
			Error: err.Error(), Metadata: map[string]string{"reason": "transport"}})
		c.notify.Error(msgRequestFailed)
		return false, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	if res.Code != CodeOK {
		c.metrics.Inc(MetricRegisterFailure)
		c.emit(AuditEvent{EventType: "register_failure", Username: form.Username,
			Metadata: map[string]string{"reason": "rejected", "code": fmt.Sprint(res.Code)}})
		c.notify.Error(serverMessage(res.Message, msgRequestFailed))
		return false, ErrRequestFailed
	}

	c.metrics.Inc(MetricRegisterSuccess)
	c.emit(AuditEvent{EventType: "register_success", Username: form.Username, Success: true})
	c.notify.Success(msgRegisterSuccess)
	c.scheduleRedirect(c.config.Routes.Login)
	return true, nil
}

// ResetPassword submits the password-reset form. The shape mirrors
// [Controller.Register]: confirmation plus a delayed hop back to login on
// success, a single error message on failure.
func (c *Controller) ResetPassword(ctx context.Context, form ResetPasswordForm) (bool, error) {
	if c == nil || c.client == nil {
		return false, ErrControllerNotReady
	}

	c.busy.Store(true)
	defer c.busy.Store(false)

	res, err := c.client.ResetPassword(ctx, form)
	if err != nil {
		c.metrics.Inc(MetricPasswordResetFailure)
		c.emit(AuditEvent{EventType: "password_reset_failure", Username: form.Email,
			Error: err.Error(), Metadata: map[string]string{"reason": "transport"}})
		c.notify.Error(msgRequestFailed)
		return false, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	if res.Code != CodeOK {
		c.metrics.Inc(MetricPasswordResetFailure)
		c.emit(AuditEvent{EventType: "password_reset_failure", Username: form.Email,
			Metadata: map[string]string{"reason": "rejected", "code": fmt.Sprint(res.Code)}})
		c.notify.Error(serverMessage(res.Message, msgRequestFailed))
		return false, ErrRequestFailed
	}

	c.metrics.Inc(MetricPasswordResetSuccess)
	c.emit(AuditEvent{EventType: "password_reset_success", Username: form.Email, Success: true})
	c.notify.Success(msgPasswordReset)
	c.scheduleRedirect(c.config.Routes.Login)
	return true, nil
}

// scheduleRedirect pushes target after the configured delay, giving the
// success notice time to be seen. A later schedule replaces an earlier
// pending one, and [Controller.Close] cancels whatever is pending.
func (c *Controller) scheduleRedirect(target string) {
	delay := c.config.Flow.RedirectDelay
	if delay <= 0 {
		c.nav.Push(target)
		return
	}

	c.redirectMu.Lock()
	defer c.redirectMu.Unlock()
	if c.redirectTimer != nil {
		c.redirectTimer.Stop()
	}
	c.redirectTimer = time.AfterFunc(delay, func() {
		if c.closed.Load() {
			return
		}
		c.nav.Push(target)
	})
}
