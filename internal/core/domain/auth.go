package domain

import "errors"

// Authentication failures are coarse on purpose: a caller learns that the
// credential was missing, rejected, or carried a malformed subject, and
// nothing more. Signature, structure, and expiry failures all collapse into
// ErrTokenInvalid.
var ErrMissingCredential = errors.New("authorization header is missing or invalid")
var ErrTokenInvalid = errors.New("invalid token")
var ErrMalformedIdentity = errors.New("invalid user identity in token")
