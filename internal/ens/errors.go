package ens

import (
	"fmt"
	"net/http"
)

// Stable machine-readable error codes. Callers branch on these, never on
// message text.
const (
	CodeDomainNotFound    = "DOMAIN_NOT_FOUND"
	CodeAddressNotFound   = "ADDRESS_NOT_FOUND"
	CodeInvalidAddress    = "INVALID_ADDRESS"
	CodeInvalidParameters = "INVALID_PARAMETERS"
	CodeProcessingError   = "PROCESSING_ERROR"
	CodeUnexpectedError   = "UNEXPECTED_ERROR"
)

// LookupError classifies a failed lookup with a stable code, an HTTP status
// and a caller-facing message. Details carry operator diagnostics.
type LookupError struct {
	Code    string
	Status  int
	Message string
	Details string
	Err     error
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LookupError) Unwrap() error { return e.Err }

func errDomainNotFound(name string) *LookupError {
	return &LookupError{
		Code:    CodeDomainNotFound,
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("Domain not found: %s", name),
		Details: "The requested ENS domain was not found on Base.",
	}
}

func errAddressNotFound(address string) *LookupError {
	return &LookupError{
		Code:    CodeAddressNotFound,
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("No ENS name found for address: %s", address),
		Details: "The provided Ethereum address does not have an associated ENS name on Base.",
	}
}

func errInvalidAddress() *LookupError {
	return &LookupError{
		Code:    CodeInvalidAddress,
		Status:  http.StatusBadRequest,
		Message: "Invalid Ethereum address format",
		Details: "The provided address is not a valid Ethereum address.",
	}
}

func errInvalidParameters(details string) *LookupError {
	return &LookupError{
		Code:    CodeInvalidParameters,
		Status:  http.StatusBadRequest,
		Message: "Invalid request parameters",
		Details: details,
	}
}

func errProcessing(op string, err error) *LookupError {
	return &LookupError{
		Code:    CodeProcessingError,
		Status:  http.StatusInternalServerError,
		Message: fmt.Sprintf("Error processing ENS %s", op),
		Details: err.Error(),
		Err:     err,
	}
}
