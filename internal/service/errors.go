package service

import "errors"

// Sentinel errors returned by the service layer. Handlers map these to HTTP
// status codes and safe response bodies; raw store errors never cross this
// boundary with internal detail attached for the client.
var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords: login failures are indistinguishable by design.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrWeakCredential rejects a permanent password below the policy minimum.
	ErrWeakCredential = errors.New("password does not meet minimum length")

	// ErrUnknownAccount means a user id did not resolve during password setup.
	ErrUnknownAccount = errors.New("account not found")

	// ErrDuplicateEntity means a VAT number or username is already taken.
	ErrDuplicateEntity = errors.New("entity already exists")

	// ErrNotFound means the target entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the requester is not allowed to act on the target.
	ErrForbidden = errors.New("forbidden")

	// ErrStorageFailure means a blob write or read failed.
	ErrStorageFailure = errors.New("storage failure")

	// ErrProvisioningFailed means client provisioning aborted; compensating
	// cleanup has been attempted so no partial entities remain visible.
	ErrProvisioningFailed = errors.New("provisioning failed")

	// ErrCascadeFailed means a client cascade delete stopped before touching
	// metadata because the blob namespace could not be removed.
	ErrCascadeFailed = errors.New("cascade delete failed")

	// Input validation sentinels.
	ErrIDRequired = errors.New("id is required")
	ErrReaderNil  = errors.New("reader is nil")
)
