package domain

import "time"

const RoleAdmin = "admin"

// Principal is a stored operator record keyed by the Firebase UID.
type Principal struct {
	SubjectID   string     `json:"subjectId"`
	Email       string     `json:"email"`
	DisplayName string     `json:"displayName,omitempty"`
	AvatarURL   string     `json:"avatarUrl,omitempty"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// View returns the minimal principal shape handed to downstream handlers.
func (p *Principal) View() PrincipalView {
	return PrincipalView{
		SubjectID:   p.SubjectID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		AvatarURL:   p.AvatarURL,
		Role:        p.Role,
	}
}

// PrincipalView is the authorized caller attached to a request.
type PrincipalView struct {
	SubjectID   string `json:"subjectId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	Role        string `json:"role"`
}

// Identity is what the identity provider vouches for after verifying a credential.
type Identity struct {
	SubjectID   string
	Email       string
	DisplayName string
	AvatarURL   string
}

// SignInUpdate is the profile refresh persisted on a successful sign-in.
// LastLoginAt is set by the store.
type SignInUpdate struct {
	Email       string
	DisplayName string
	AvatarURL   string
}

// SignInResult is returned to the client after a successful sign-in.
type SignInResult struct {
	SubjectID string    `json:"subjectId"`
	Profile   Principal `json:"principalProfile"`
}
