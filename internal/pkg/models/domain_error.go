package models

// DomainError carries a stable machine-readable code next to the message
// surfaced in {success:false, error} envelopes.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) ErrorCode() string {
	return e.Code
}

const (
	CodeValidation       = "ValidationError"
	CodeEligibility      = "EligibilityError"
	CodeInvalidState     = "InvalidStateError"
	CodeScheduleNotFound = "ScheduleNotFoundError"
	CodeMissingData      = "MissingDataError"
	CodeNotFound         = "NotFoundError"
	CodeConflict         = "ConflictError"
)

func NewValidationError(msg string) *DomainError {
	return &DomainError{Code: CodeValidation, Message: msg}
}

func NewEligibilityError(msg string) *DomainError {
	return &DomainError{Code: CodeEligibility, Message: msg}
}

func NewInvalidStateError(msg string) *DomainError {
	return &DomainError{Code: CodeInvalidState, Message: msg}
}

func NewScheduleNotFoundError(msg string) *DomainError {
	return &DomainError{Code: CodeScheduleNotFound, Message: msg}
}

func NewMissingDataError(msg string) *DomainError {
	return &DomainError{Code: CodeMissingData, Message: msg}
}

func NewNotFoundError(msg string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: msg}
}

func NewConflictError(msg string) *DomainError {
	return &DomainError{Code: CodeConflict, Message: msg}
}

// ErrorCode extracts the domain code from any error, defaulting to an
// internal marker for non-domain failures.
func ErrorCode(err error) string {
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr.ErrorCode()
	}
	return "InternalError"
}
