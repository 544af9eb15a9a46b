package models

import "errors"

// ScrapingResult is the top-level output of one scrape invocation.
// Exactly one of the success fields (CurrentBalance, Accounts) or the
// error fields (ErrorMessage, ErrorType) is populated, never both.
type ScrapingResult struct {
	Success        bool                  `json:"success"`
	CurrentBalance string                `json:"currentBalance,omitempty"`
	Accounts       []TransactionsAccount `json:"accounts,omitempty"`
	ErrorMessage   string                `json:"errorMessage,omitempty"`
	ErrorType      ErrorType             `json:"errorType,omitempty"`
}

// FailureResult converts an internal error into the error-shaped
// ScrapingResult. Errors without a ScraperError in their chain are
// classified as GeneralError.
func FailureResult(err error) ScrapingResult {
	errType := ErrTypeGeneral
	var scraperErr *ScraperError
	if errors.As(err, &scraperErr) {
		errType = scraperErr.Type
	}
	return ScrapingResult{
		Success:      false,
		ErrorMessage: err.Error(),
		ErrorType:    errType,
	}
}
