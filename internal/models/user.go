package models

// AccessAuth is the access kind stamped on tokens issued at registration and login.
const AccessAuth = "auth"

// User is a registered account.
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // don’t expose hash
}

// TokenRecord is one entry in a user's active-token set. A token is valid
// only while its record exists; revoking a token deletes the record.
type TokenRecord struct {
	UserID int64
	Access string
	Token  string
}
