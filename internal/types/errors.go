package types

import "errors"

// Sentinel errors shared across the service layers. Handlers translate these
// into HTTP responses with errors.Is; repositories produce the storage-level
// ones.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrDuplicateKey       = errors.New("duplicate key violation")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyRegistered  = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid token")
	ErrAuditWrite         = errors.New("audit write failed")
)
