package identity

// Error types for admin account operations

type AdminAlreadyExistsError struct {
	Email string
}

type InvalidCredentialsError struct{}

type TooManyAttemptsError struct {
	Email string
}

type SetupValidationError struct {
	Reason string
}

func (e *AdminAlreadyExistsError) Error() string {
	return "Admin already exists: " + e.Email
}

func (e *InvalidCredentialsError) Error() string {
	return "Invalid email or password"
}

func (e *TooManyAttemptsError) Error() string {
	return "Too many failed login attempts for: " + e.Email
}

func (e *SetupValidationError) Error() string {
	return "Invalid setup request: " + e.Reason
}

// helper functions for error handling

func IsAdminAlreadyExistsError(err error) bool {
	_, ok := err.(*AdminAlreadyExistsError)
	return ok
}

func IsInvalidCredentialsError(err error) bool {
	_, ok := err.(*InvalidCredentialsError)
	return ok
}

func IsTooManyAttemptsError(err error) bool {
	_, ok := err.(*TooManyAttemptsError)
	return ok
}

func IsSetupValidationError(err error) bool {
	_, ok := err.(*SetupValidationError)
	return ok
}

func NewAdminAlreadyExistsError(email string) error {
	return &AdminAlreadyExistsError{Email: email}
}

func NewInvalidCredentialsError() error {
	return &InvalidCredentialsError{}
}

func NewTooManyAttemptsError(email string) error {
	return &TooManyAttemptsError{Email: email}
}

func NewSetupValidationError(reason string) error {
	return &SetupValidationError{Reason: reason}
}
