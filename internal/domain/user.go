package domain

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Email string `db:"email"`
	Hash  string `db:"password_hash"`
	Role  Role   `db:"role"`
}

// AuthContext is the resolved identity behind a session token. It is the only
// caller information the authorization policy ever sees.
type AuthContext struct {
	UserID string
	Role   Role
}
