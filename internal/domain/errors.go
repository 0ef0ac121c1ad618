package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist (a trip, a catalog attraction, or a city the
// places API cannot resolve).
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. empty folder name, malformed invite email).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnauthenticated is returned when an operation that needs a signed-in
// user is called without a user id.
// Handlers should map this to HTTP 401.
var ErrUnauthenticated = errors.New("unauthenticated")
