package models

// Session is a server-side record mapping an opaque token to an
// authenticated identity. Only the identity projection is stored here,
// never the password hash.
type Session struct {
	// Token is the opaque session id (UUID). The cookie carries a signed
	// envelope around this value, not the identity itself.
	Token string

	UserID int64
	Name   string
	Email  string

	// ExpiresAt is the Unix timestamp after which the session is dead.
	ExpiresAt int64

	// CreatedAt is the Unix timestamp when the session was established.
	CreatedAt int64
}

// Identity returns the identity carried by the session.
func (s *Session) Identity() Identity {
	return Identity{ID: s.UserID, Name: s.Name, Email: s.Email}
}
