package auth

import (
	"context"
	"fmt"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/r2c-platform/admin-backend/internal/auth/domain"
)

// TokenVerifier is the slice of the Firebase Auth client the verifier needs.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// Verifier turns an opaque ID token into a verified identity.
type Verifier struct {
	tokens  TokenVerifier
	expired func(error) bool
}

func NewVerifier(tokens TokenVerifier) *Verifier {
	return &Verifier{
		tokens:  tokens,
		expired: fbauth.IsIDTokenExpired,
	}
}

// Verify checks credential with the identity provider. An empty credential
// fails without calling the provider. Expiry is reported as
// domain.ErrCredentialExpired; every other rejection collapses to
// domain.ErrInvalidCredential.
func (v *Verifier) Verify(ctx context.Context, credential string) (*domain.Identity, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return nil, domain.ErrMissingCredential
	}

	token, err := v.tokens.VerifyIDToken(ctx, credential)
	if err != nil {
		if v.expired(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrCredentialExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCredential, err)
	}
	if token == nil || token.UID == "" {
		return nil, domain.ErrInvalidCredential
	}

	return &domain.Identity{
		SubjectID:   token.UID,
		Email:       strings.ToLower(strings.TrimSpace(stringClaim(token.Claims, "email"))),
		DisplayName: stringClaim(token.Claims, "name"),
		AvatarURL:   stringClaim(token.Claims, "picture"),
	}, nil
}

func stringClaim(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

// IdentityVerifier is satisfied by *Verifier and by test doubles.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (*domain.Identity, error)
}
