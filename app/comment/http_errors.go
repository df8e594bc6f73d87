package comment

import (
	"comments/pkg/httperror"
	"errors"
)

// toHTTPError maps service errors onto API errors. op is the code prefix,
// e.g. "comments.create". An empty notFoundMessage marks an operation that
// never looks a comment up, so ErrNotFound there is unexpected.
func toHTTPError(op string, err error, notFoundMessage string) error {
	var ve *ValidationError

	switch {
	case errors.As(err, &ve):
		return httperror.UnprocessableEntity(
			op+".validation_failed",
			"Validation failed for the request",
			map[string]any{"fields": ve.Fields},
		)
	case errors.Is(err, ErrNotFound) && notFoundMessage != "":
		return httperror.NotFound(op+".not_found", notFoundMessage, nil)
	case errors.Is(err, ErrStoreUnavailable):
		return httperror.ServiceUnavailable(op+".store_unavailable", "Comment store is unavailable", err)
	default:
		return httperror.InternalServerError(op+".failed", "An unexpected error occurred", err)
	}
}
