package models

// ErrorResponse is the standard error body of the API.
type ErrorResponse struct {
	Status  int              `json:"status"`           // HTTP status code
	Message string           `json:"message"`          // user-facing message
	Errors  ValidationErrors `json:"errors,omitempty"` // per-field validation errors
}
