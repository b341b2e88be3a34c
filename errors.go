package consoleauth

import "errors"

var (
	// ErrControllerNotReady is returned when a Controller is used before
	// Builder.Build wired its collaborators.
	ErrControllerNotReady = errors.New("controller not initialized")
	// ErrLoginFailed covers credential rejection and any non-success login
	// response. The server's message, when present, is wrapped around it.
	ErrLoginFailed = errors.New("login failed")
	// ErrNotRegistered is the distinguished tel-login outcome for an unknown
	// phone number. It still counts as false for the boolean contract, but
	// callers may detect it to distinguish the register redirect.
	ErrNotRegistered = errors.New("phone number not registered")
	// ErrRequestFailed covers non-success responses from register, reset,
	// and code-send endpoints.
	ErrRequestFailed = errors.New("request failed")
	// ErrPhoneRequired is the local validation failure for an empty phone
	// number before a code send. No network call is made.
	ErrPhoneRequired = errors.New("phone number required")
	// ErrSendInFlight rejects a code send while a previous one has not
	// completed.
	ErrSendInFlight = errors.New("verification code send already in flight")
	// ErrSendCooldown rejects a code send while the resend countdown is
	// active.
	ErrSendCooldown = errors.New("verification code resend cooling down")
	// ErrStaleAttempt marks a login-family completion that was superseded by
	// a newer attempt; the session store was left untouched.
	ErrStaleAttempt = errors.New("stale login attempt discarded")
	// ErrSessionExpired is surfaced when a persisted token no longer passes
	// the check-token call during session restore.
	ErrSessionExpired = errors.New("session expired")
)
