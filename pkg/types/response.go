// Package types declares the wire shapes every endpoint responds with.
package types

// SuccessEnvelope wraps every successful payload under a data key, so
// clients never have to sniff whether a body is a result or an error.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public face of a coded error. Details carries the
// per-field validation map when the error code allows it.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps an APIError under an error key.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
