package service

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto
// HTTP statuses; everything else counts as an internal failure.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)

// requireOwner is the single ownership gate for mutations. Keeping it in one
// place stops the per-operation checks from drifting apart.
func requireOwner(ownerID, userID string) error {
	if ownerID != userID {
		return ErrForbidden
	}
	return nil
}
