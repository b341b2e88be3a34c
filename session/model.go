package session

// AdminFlag is the server-side value of User.IsAdmin that marks an
// administrator account. Any other value, including empty, is a regular user.
const AdminFlag = "1"

// User is the identity slice of a session as returned by the login endpoint.
//
// User instances are treated as immutable once stored; mutating a User after
// passing it to [Store.Set] has no effect on the stored state.
type User struct {
	UserID   string
	Username string
	Name     string
	Email    string
	Tel      string

	// IsAdmin carries the server's tri-state admin flag verbatim.
	// Compare against [AdminFlag]; do not parse it as a boolean.
	IsAdmin string
}

// Session is an immutable point-in-time snapshot of the store, returned by
// [Store.Snapshot]. The Permissions slice is a copy owned by the caller.
type Session struct {
	User         *User
	Role         string
	Permissions  []string
	AccessToken  string
	RefreshToken string
}

// Authenticated reports whether the snapshot carries an access token.
// Token presence is the single definition of "authenticated" in this layer.
func (s Session) Authenticated() bool {
	return s.AccessToken != ""
}
