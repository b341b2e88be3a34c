package consoleauth

import (
	"context"
	"fmt"
)

// RestoreSession revalidates a persisted access token at startup and, when
// the server still honors it, re-seeds the session store from the response.
// With expiry inspection enabled, a token that is decodable and already
// expired is dropped without a network round trip. Restore failures clear
// whatever partial state exists; they are quiet, no notification fires.
func (c *Controller) RestoreSession(ctx context.Context, accessToken string) (bool, error) {
	if c == nil || c.client == nil {
		return false, ErrControllerNotReady
	}
	if accessToken == "" {
		return false, nil
	}

	if c.config.Flow.InspectTokenExpiry && c.inspector.Stale(accessToken) {
		c.metrics.Inc(MetricSessionRestoreFailure)
		c.emit(AuditEvent{EventType: "session_restore_failure",
			Metadata: map[string]string{"reason": "token_expired"}})
		c.store.Clear()
		return false, ErrSessionExpired
	}

	res, err := c.client.CheckToken(ctx, accessToken)
	if err != nil {
		c.metrics.Inc(MetricSessionRestoreFailure)
		c.emit(AuditEvent{EventType: "session_restore_failure", Error: err.Error(),
			Metadata: map[string]string{"reason": "transport"}})
		c.store.Clear()
		return false, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if res.Code != CodeOK || res.Data == nil {
		c.metrics.Inc(MetricSessionRestoreFailure)
		c.emit(AuditEvent{EventType: "session_restore_failure",
			Metadata: map[string]string{"reason": "rejected", "code": fmt.Sprint(res.Code)}})
		c.store.Clear()
		return false, ErrSessionExpired
	}

	c.store.Set(res.Data.User, res.Data.Permissions, res.Data.Role, res.Data.Token, res.Data.RefreshToken)
	c.metrics.Inc(MetricSessionRestored)
	c.emit(AuditEvent{EventType: "session_restored", UserID: userID(res.Data), Success: true})
	return true, nil
}

// RefreshTokens exchanges the current refresh token for a new token pair and
// swaps the pair into the store without touching the rest of the session.
// A missing refresh token or a server rejection reports [ErrSessionExpired];
// the caller decides whether that escalates to [Controller.ForceExpire].
func (c *Controller) RefreshTokens(ctx context.Context) (bool, error) {
	if c == nil || c.client == nil {
		return false, ErrControllerNotReady
	}

	refresh := c.store.RefreshToken()
	if refresh == "" {
		return false, ErrSessionExpired
	}

	res, err := c.client.RefreshToken(ctx, refresh)
	if err != nil {
		c.emit(AuditEvent{EventType: "token_refresh_failure", Error: err.Error(),
			Metadata: map[string]string{"reason": "transport"}})
		return false, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if res.Code != CodeOK || res.Data == nil {
		c.emit(AuditEvent{EventType: "token_refresh_failure",
			Metadata: map[string]string{"reason": "rejected", "code": fmt.Sprint(res.Code)}})
		return false, ErrSessionExpired
	}

	c.store.SetTokens(res.Data.Token, res.Data.RefreshToken)
	c.metrics.Inc(MetricTokenRefresh)
	c.emit(AuditEvent{EventType: "token_refresh", Success: true})
	return true, nil
}
