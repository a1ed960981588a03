// Package services contains server-side business logic: credential
// verification and session issuance, member registration and listing,
// contact-form messages, and portfolio projects. Every operation that
// touches the backing store first ensures it is provisioned, then runs the
// storage call under the bounded retry policy.
package services

import (
	"errors"

	"github.com/ronin-designs/studiokeeper/internal/common"
	"github.com/ronin-designs/studiokeeper/internal/retryx"
)

// classifyStorageError maps repository errors onto the retry policy. Known
// sentinel errors describe definitive outcomes and must surface on the
// first attempt; anything else is assumed to be a transient backend fault.
func classifyStorageError(err error) retryx.Classification {
	switch {
	case errors.Is(err, common.ErrNotFound),
		errors.Is(err, common.ErrAlreadyExists),
		errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrStorageUnavailable):
		return retryx.Terminal
	}
	return retryx.Retryable
}
