package models

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user, assigned by the database.
	ID int64

	// Name is the display name of the user.
	Name string

	// Email is the user's email address (unique). Used as the login key.
	Email string

	// PasswordHash is the bcrypt digest of the user's password.
	// It never leaves the storage and auth layers.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}

// Identity is the minimal projection of a User carried by a session.
// It deliberately excludes the password hash; the users table remains
// the only source of credentials.
type Identity struct {
	ID    int64
	Name  string
	Email string
}

// Identity returns the session-safe projection of the user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email}
}
