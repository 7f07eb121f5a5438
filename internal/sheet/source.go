// Package sheet acquires the raw stat grid from its external home, a
// hand-maintained spreadsheet published as CSV. The engine never fetches
// anything itself; everything time-based or network-shaped lives here.
package sheet

import "context"

// GridSource defines the interface for fetching the raw stat grid
type GridSource interface {
	// FetchGrid retrieves the current grid snapshot as rows of cells.
	// Rows may be ragged; the scanner tolerates that.
	FetchGrid(ctx context.Context) ([][]string, error)

	// Name returns the name of the grid source
	Name() string

	// IsEnabled returns whether this source is currently enabled
	IsEnabled() bool
}

// SheetError represents errors from grid source operations
type SheetError struct {
	Source  string // Grid source name
	Code    string // Error code (e.g., "network_error")
	Message string // Error message
	Err     error  // Underlying error
}

func (e SheetError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e SheetError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeNetworkError         = "network_error"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeServerError          = "server_error"
	ErrCodeDisabled             = "source_disabled"
)

// NewSheetError creates a new grid source error
func NewSheetError(source, code, message string, err error) SheetError {
	return SheetError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
