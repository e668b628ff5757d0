package usecase

// DomainError is a caller-visible failure with a stable code. Codes in use:
// VALIDATION_ERROR, CAPTCHA_FAILED, RATE_LIMIT_EXCEEDED, INVALID_CODE,
// CODE_EXPIRED, INVALID_CREDENTIALS, UNAUTHORIZED, NOT_FOUND, EMAIL_EXISTS,
// INVALID_STATUS, EMPTY_NOTE.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError is an infrastructure failure (DATABASE_ERROR, EMAIL_ERROR);
// callers see a generic message, the details go to the log.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
