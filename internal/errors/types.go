package errors

// represents a standardized error response
type ErrorResponse struct {
	Error   string `json:"error"`             // error code (e.g., "unauthorized", "not_found")
	Message string `json:"message"`           // user-friendly message
	Details string `json:"details,omitempty"` // optional details (sanitized in production)
}

// wraps an APIErrorBody under the "error" key
type APIErrorEnvelope struct {
	Error APIErrorBody `json:"error"`
}

// error payload used by the admin cache surface
type APIErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorInfo struct {
	category  string
	sanitized string
}
