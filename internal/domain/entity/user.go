package entity

import "time"

// User is the aggregate root for the identity domain.
// PasswordDigest holds a salted bcrypt hash; the plaintext is never stored.
type User struct {
	ID             int64
	Email          string
	PasswordDigest string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
