package domain

import "github.com/r2c-platform/admin-backend/internal/apierr"

var (
	ErrMissingCredential = apierr.New(apierr.MissingCredential, "no token provided")
	ErrInvalidCredential = apierr.New(apierr.InvalidCredential, "invalid or expired token")
	ErrCredentialExpired = apierr.New(apierr.CredentialExpired, "token expired, please sign in again")
	ErrPrincipalNotFound = apierr.New(apierr.PrincipalNotFound, "user not found")
	ErrNotAdmin          = apierr.New(apierr.Forbidden, "access denied: admins only")
	ErrNotProvisioned    = apierr.New(apierr.Forbidden, "access denied: only existing admin users can sign in, please contact the system administrator")
	ErrMissingEmail      = apierr.New(apierr.InvalidPayload, "email not available from identity token")
)
