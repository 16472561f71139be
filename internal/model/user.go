package model

import "time"

// User represents an application user record as stored in the `users`
// table.  PasswordHash holds the bcrypt digest and is never serialized.
type User struct {
	UserID       string    `db:"user_id" json:"user_id"`
	Username     string    `db:"username" json:"username"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Email        string    `db:"email" json:"email"`
	BirthDate    Date      `db:"birth_date" json:"birth_date"`
	PasswordHash string    `db:"hashed_password" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Token is the body returned by a successful login.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// TokenTypeBearer is the only token type issued.
const TokenTypeBearer = "bearer"
