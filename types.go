package consoleauth

import (
	"context"
	"io"
	"net/url"

	internalaudit "github.com/connectai/consoleauth/internal/audit"
	"github.com/connectai/consoleauth/session"
	"github.com/connectai/consoleauth/vault"
)

// Response status codes returned by the auth endpoints. Anything other than
// CodeOK (or CodeNotRegistered on the tel-login path) is a failure.
const (
	// CodeOK marks a successful response.
	CodeOK = 200
	// CodeNotRegistered is the distinguished tel-login response for a phone
	// number without an account. It is not an error: the caller is steered
	// to registration instead.
	CodeNotRegistered = 201
)

// User is the operator identity stored in the session.
type User = session.User

// Credentials is the remembered username/password pair handed to the login
// form by [Controller.RememberedCredentials].
type Credentials = vault.Credentials

// LoginPayload is the data half of a successful login, tel-login, check-token,
// or refresh response.
type LoginPayload struct {
	User         *User    `json:"user"`
	Permissions  []string `json:"permissions"`
	Role         string   `json:"role"`
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
}

// LoginResponse is the envelope for login-family endpoints.
type LoginResponse struct {
	Code    int           `json:"code"`
	Message string        `json:"message"`
	Data    *LoginPayload `json:"data"`
}

// Response is the envelope for endpoints that return no session payload
// (register, reset password, send code).
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RegisterForm carries the registration fields forwarded to the server.
type RegisterForm struct {
	Name       string
	Username   string
	Email      string
	Tel        string
	Password   string
	VerifyCode string
}

// ResetPasswordForm carries the password-reset fields forwarded to the server.
type ResetPasswordForm struct {
	Email    string
	Code     string
	Password string
}

// AuthClient is the contract for the platform's auth endpoints. It is
// transport glue: implementations attach the bearer token, encode forms, and
// map HTTP failures to errors. A non-nil error means the call never produced
// a usable response (taxonomy: transport failure); business failures arrive
// as a response with a non-success code.
type AuthClient interface {
	Login(ctx context.Context, username, password string) (*LoginResponse, error)
	TelLogin(ctx context.Context, tel, code string) (*LoginResponse, error)
	Register(ctx context.Context, form RegisterForm) (*Response, error)
	ResetPassword(ctx context.Context, form ResetPasswordForm) (*Response, error)
	SendSMSCode(ctx context.Context, tel, purpose string) (*Response, error)
	CheckToken(ctx context.Context, accessToken string) (*LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*LoginResponse, error)
}

// Navigator binds the Controller to the host router. Push requests a
// transition to target, a path with an optional query string
// ("/login?redirect=/user"); the Guard is expected to run inside the host
// router on every push, including these. CurrentQuery exposes the query of
// the route currently displayed, which is where a pending redirect parameter
// lives when the login screen was reached through a guard redirect.
type Navigator interface {
	Push(target string)
	CurrentQuery() url.Values
}

// Notifier surfaces user-facing messages. Every failure path produces exactly
// one call; success paths produce one confirmation.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Warn(msg string)
}

// NoOpNotifier discards all messages.
type NoOpNotifier struct{}

// Success implements [Notifier].
func (NoOpNotifier) Success(string) {}

// Error implements [Notifier].
func (NoOpNotifier) Error(string) {}

// Warn implements [Notifier].
func (NoOpNotifier) Warn(string) {}

// AuditEvent is a structured audit record emitted by the controller and guard.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// io.Writer.
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
