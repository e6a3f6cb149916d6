package users

import "fmt"

type UserNotFoundError struct {
	ID int64
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("User not found: %d", e.ID)
}

func IsUserNotFoundError(err error) bool {
	_, ok := err.(*UserNotFoundError)
	return ok
}

func NewUserNotFoundError(id int64) error {
	return &UserNotFoundError{ID: id}
}
