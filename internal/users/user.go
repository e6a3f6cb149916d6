package users

import "time"

// User represents a platform end user account
type User struct {
	ID         int64
	Email      string
	Username   string
	FirstName  string
	LastName   string
	Country    string
	IsVerified bool
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Sort columns accepted by UserQuery
const (
	SortByCreatedAt = "created_at"
	SortByEmail     = "email"
	SortByUsername  = "username"
)

// UserQuery describes a filtered, sorted, paginated user listing
type UserQuery struct {
	// Search matches email, username, first name and last name
	// (case-insensitive substring)
	Search string
	// SortBy is one of the SortBy* constants. Empty defaults to created_at.
	SortBy string
	// SortDir is "asc" or "desc". Empty defaults to desc.
	SortDir string
	// Page is 1-based. Values below 1 are treated as 1.
	Page int
	// PageSize caps the number of rows returned. Values below 1 use the default.
	PageSize int
}

// UserPage is one page of a user listing along with the unfiltered total
type UserPage struct {
	Users []*User
	Total int
}
