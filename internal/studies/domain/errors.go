package domain

import "github.com/r2c-platform/admin-backend/internal/apierr"

var (
	ErrMalformedIdentifier = apierr.New(apierr.MalformedIdentifier, "invalid study ID format")
	ErrStudyNotFound       = apierr.New(apierr.ResourceNotFound, "study not found")
	ErrNotOwner            = apierr.New(apierr.Forbidden, "user not authorized to delete this study")
	ErrInvalidApproval     = apierr.New(apierr.InvalidPayload, "the 'approved' field must be a boolean")
)
