package identity

import "time"

// Admin is a dashboard administrator account.
type Admin struct {
	ID           string    // Unique identifier for the admin
	Email        string    // Login email, unique
	PasswordHash string    // Hashed password (base 64 encoded)
	PasswordSalt string    // Salt used for hashing the password (base 64 encoded)
	CreatedAt    time.Time // Timestamp when the admin was created
	UpdatedAt    time.Time // Timestamp when the admin was last updated
}
