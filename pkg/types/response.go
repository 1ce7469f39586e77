package types

// SuccessEnvelope wraps every successful JSON response body. Handlers
// never write bare payloads, so clients can always look under "data".
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing error body. Code mirrors the internal
// error code, Details carries optional field-level context such as the
// offending query parameter.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every error response body.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
