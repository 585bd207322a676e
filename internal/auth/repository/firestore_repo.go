package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/r2c-platform/admin-backend/internal/auth/domain"
)

// firestorePrincipal mirrors a document in the users collection.
type firestorePrincipal struct {
	Email       string    `firestore:"email"`
	DisplayName string    `firestore:"displayName"`
	PhotoURL    string    `firestore:"photoURL"`
	Role        string    `firestore:"role"`
	LastLoginAt time.Time `firestore:"lastLoginAt"`
}

func (d firestorePrincipal) toDomain(subjectID string) domain.Principal {
	p := domain.Principal{
		SubjectID:   subjectID,
		Email:       d.Email,
		DisplayName: d.DisplayName,
		AvatarURL:   d.PhotoURL,
		Role:        d.Role,
	}
	if !d.LastLoginAt.IsZero() {
		t := d.LastLoginAt
		p.LastLoginAt = &t
	}
	return p
}

type FirestorePrincipalRepository struct {
	client     *firestore.Client
	collection string
}

func NewFirestorePrincipalRepository(client *firestore.Client, collection string) *FirestorePrincipalRepository {
	if collection == "" {
		collection = "users"
	}
	return &FirestorePrincipalRepository{client: client, collection: collection}
}

// GetBySubjectID reads the users/{uid} document.
func (r *FirestorePrincipalRepository) GetBySubjectID(ctx context.Context, subjectID string) (*domain.Principal, error) {
	snap, err := r.client.Collection(r.collection).Doc(subjectID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, domain.ErrPrincipalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get principal: %w", err)
	}

	var doc firestorePrincipal
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode principal: %w", err)
	}
	p := doc.toDomain(snap.Ref.ID)
	return &p, nil
}

func (r *FirestorePrincipalRepository) List(ctx context.Context) ([]domain.Principal, error) {
	snaps, err := r.client.Collection(r.collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list principals: %w", err)
	}

	out := make([]domain.Principal, 0, len(snaps))
	for _, snap := range snaps {
		var doc firestorePrincipal
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode principal %s: %w", snap.Ref.ID, err)
		}
		out = append(out, doc.toDomain(snap.Ref.ID))
	}
	return out, nil
}

// RecordSignIn updates an existing document; Update fails with NotFound
// rather than creating one.
func (r *FirestorePrincipalRepository) RecordSignIn(ctx context.Context, subjectID string, upd domain.SignInUpdate) error {
	_, err := r.client.Collection(r.collection).Doc(subjectID).Update(ctx, []firestore.Update{
		{Path: "lastLoginAt", Value: firestore.ServerTimestamp},
		{Path: "displayName", Value: upd.DisplayName},
		{Path: "photoURL", Value: upd.AvatarURL},
		{Path: "email", Value: upd.Email},
	})
	if status.Code(err) == codes.NotFound {
		return domain.ErrPrincipalNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to record sign-in: %w", err)
	}
	return nil
}
