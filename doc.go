// Package consoleauth is the session and navigation-authorization layer for
// the Connect AI admin console. It authenticates an operator against the
// platform's auth endpoints, holds the resulting token pair and permission
// set in a single session store, and gates every route transition — including
// post-login redirect targets — against that state.
//
// The package is a client-side engine: it calls the server, it never
// validates credentials itself. Construction goes through [Builder.Build];
// after Build, [Controller] and [Guard] methods are safe to call from
// multiple goroutines.
//
// # Architecture boundaries
//
// consoleauth is the public surface. It exposes [Controller], [Guard],
// [Builder], [Config], and value types. Session state lives in the session
// subpackage, credential persistence in vault, the resend cooldown in
// countdown, and audit dispatch under internal/.
//
// # What this package must NOT do
//
//   - Implement the HTTP transport. The [AuthClient], [Navigator], and
//     [Notifier] contracts are injected; the transport's global 401/403
//     interceptor calls [Controller.ForceExpire] and is otherwise external.
//   - Cache authorization decisions. The Guard re-reads the session store on
//     every navigation attempt.
//   - Treat the remembered-password codec as a security boundary; it is a
//     local convenience transform.
package consoleauth
