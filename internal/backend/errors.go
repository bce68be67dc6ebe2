package backend

import "errors"

var (
	// ErrUnavailable indicates the backend could not be reached.
	ErrUnavailable = errors.New("evaluation backend unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("evaluation backend request timed out")

	// ErrUnauthorized indicates the token was missing, expired or refused.
	ErrUnauthorized = errors.New("evaluation backend rejected credentials")

	// ErrRejected indicates the backend refused the request body.
	ErrRejected = errors.New("evaluation backend rejected request")

	// ErrInvalidResponse indicates a response body that could not be decoded.
	ErrInvalidResponse = errors.New("invalid evaluation backend response")
)
