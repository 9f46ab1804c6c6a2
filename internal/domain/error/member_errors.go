package error

import "errors"

// Member domain errors.
var (
	// ErrMemberNotFound is returned when the member does not exist or was deleted.
	ErrMemberNotFound = errors.New("member not found")

	// ErrMemberForbidden is returned when the request targets another member's ledger.
	ErrMemberForbidden = errors.New("member does not match the authenticated member")
)

// MemberErrorCode defines error codes for member errors.
// Format: MBR-XXYYYY where XX is category and YYYY is specific error.
type MemberErrorCode string

const (
	// Lookup errors (02XXXX)
	ErrCodeMemberNotFound MemberErrorCode = "MBR-020001"

	// Access errors (03XXXX)
	ErrCodeMemberForbidden MemberErrorCode = "MBR-030001"
)

// MemberError represents a member precondition failure.
type MemberError struct {
	Code    MemberErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *MemberError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *MemberError) Unwrap() error {
	return e.Err
}

// NewMemberError creates a new MemberError with the given code and message.
func NewMemberError(code MemberErrorCode, message string, err error) *MemberError {
	return &MemberError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
