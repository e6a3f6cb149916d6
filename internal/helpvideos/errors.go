package helpvideos

// Error types for the upload workflow

type ItemNotFoundError struct {
	ID string
}

type SubmissionInProgressError struct{}

type ValidationError struct {
	Message string
}

func (e *ItemNotFoundError) Error() string {
	return "upload item not found: " + e.ID
}

func (e *SubmissionInProgressError) Error() string {
	return "a submission is already in progress"
}

func (e *ValidationError) Error() string {
	return e.Message
}

// helper functions for error handling

func IsItemNotFoundError(err error) bool {
	_, ok := err.(*ItemNotFoundError)
	return ok
}

func IsSubmissionInProgressError(err error) bool {
	_, ok := err.(*SubmissionInProgressError)
	return ok
}

func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

func NewItemNotFoundError(id string) error {
	return &ItemNotFoundError{ID: id}
}

func NewSubmissionInProgressError() error {
	return &SubmissionInProgressError{}
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
