// Package error defines domain-specific errors for the ledger service.
package error

import "errors"

// Ledger validation errors.
var (
	// ErrMissingMemberID is returned when the member identifier is absent.
	ErrMissingMemberID = errors.New("member_id is required")

	// ErrIncompleteDateRange is returned when only one of start_date/end_date is given.
	ErrIncompleteDateRange = errors.New("start_date and end_date must be provided together")

	// ErrInconsistentDateType is returned when dates are given without a search date type.
	ErrInconsistentDateType = errors.New("search_date_type is required when a date range is given")

	// ErrInvalidDateType is returned when the search date type is unknown.
	ErrInvalidDateType = errors.New("search_date_type must be one of: CUSTOM, WEEK, MONTH, THREE_MONTHS, SIX_MONTHS, YEAR")

	// ErrInvalidDateFormat is returned when a date cannot be parsed.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidDateRange is returned when start_date is after end_date.
	ErrInvalidDateRange = errors.New("start_date must not be after end_date")

	// ErrInvalidCategory is returned when a category does not belong to its kind.
	ErrInvalidCategory = errors.New("category is not valid for the entry kind")

	// ErrInvalidKind is returned when the entry kind is unknown.
	ErrInvalidKind = errors.New("kind must be: income, expenditure, or transfer")

	// ErrInvalidMonth is returned when the statistics month is outside 1..12.
	ErrInvalidMonth = errors.New("month must be between 1 and 12")

	// ErrInvalidAmount is returned when an amount is negative or fractional.
	ErrInvalidAmount = errors.New("amount must be a non-negative whole number")

	// ErrMissingOccurredAt is returned when the occurrence timestamp is absent.
	ErrMissingOccurredAt = errors.New("occurred_at is required")

	// ErrDescriptionTooLong is returned when an entry description exceeds the column size.
	ErrDescriptionTooLong = errors.New("description is too long")
)

// LedgerErrorCode defines error codes for ledger errors.
// Format: LDG-XXYYYY where XX is category and YYYY is specific error.
type LedgerErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingMemberID      LedgerErrorCode = "LDG-010001"
	ErrCodeIncompleteDateRange  LedgerErrorCode = "LDG-010002"
	ErrCodeInconsistentDateType LedgerErrorCode = "LDG-010003"
	ErrCodeInvalidDateType      LedgerErrorCode = "LDG-010004"
	ErrCodeInvalidDateFormat    LedgerErrorCode = "LDG-010005"
	ErrCodeInvalidDateRange     LedgerErrorCode = "LDG-010006"
	ErrCodeInvalidCategory      LedgerErrorCode = "LDG-010007"
	ErrCodeInvalidKind          LedgerErrorCode = "LDG-010008"
	ErrCodeInvalidMonth         LedgerErrorCode = "LDG-010009"
	ErrCodeInvalidAmount        LedgerErrorCode = "LDG-010010"
	ErrCodeMissingOccurredAt    LedgerErrorCode = "LDG-010011"
	ErrCodeInvalidRequest       LedgerErrorCode = "LDG-010012"

	// Infrastructure errors (99XXXX)
	ErrCodeStoreUnavailable LedgerErrorCode = "LDG-990001"
	ErrCodeLedgerInternal   LedgerErrorCode = "LDG-990002"
)

// ValidationError reports a malformed or incomplete request.
// It is always raised before the store is touched.
type ValidationError struct {
	Code    LedgerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError with the given code and message.
func NewValidationError(code LedgerErrorCode, message string, err error) *ValidationError {
	return &ValidationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
