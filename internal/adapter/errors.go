package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")

	// ErrServerUnreachable marks transport-level failures: the request never
	// produced an HTTP response, so the client must treat itself as offline.
	ErrServerUnreachable = errors.New("server unreachable")
)
