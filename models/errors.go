package models

import "fmt"

// ErrorType classifies a scrape failure in the ScrapingResult.
type ErrorType string

const (
	// ErrTypeLogin is reserved for login-stage failures. The login path
	// currently reports ErrTypeGeneral; the value is kept so callers can
	// switch on it without a breaking change if classification tightens.
	ErrTypeLogin ErrorType = "LoginError"

	// ErrTypeNetwork covers connectivity failures, in particular the
	// post-login redirect never arriving.
	ErrTypeNetwork ErrorType = "NetworkError"

	// ErrTypeGeneral covers everything else: account discovery,
	// transaction fetches, and any uncaught failure during a scrape.
	ErrTypeGeneral ErrorType = "GeneralError"
)

// ScraperError is the internal error type carrying an error classification.
// It implements the error interface and supports error wrapping via Unwrap.
type ScraperError struct {
	Type    ErrorType
	Message string
	Err     error // wrapped original error
}

func (e *ScraperError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *ScraperError) Unwrap() error {
	return e.Err
}

// NewScraperError creates a new ScraperError.
func NewScraperError(errType ErrorType, message string, err error) *ScraperError {
	return &ScraperError{Type: errType, Message: message, Err: err}
}
