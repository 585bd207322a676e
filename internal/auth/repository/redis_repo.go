package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/r2c-platform/admin-backend/internal/auth/domain"
)

const (
	principalKeyPrefix = "principal:" // JSON record: principal:{uid}
	principalSetKey    = "principals" // set of every provisioned uid
)

// RedisPrincipalRepository keeps principals as JSON values keyed by UID.
type RedisPrincipalRepository struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisPrincipalRepository(client *redis.Client) *RedisPrincipalRepository {
	return &RedisPrincipalRepository{
		client: client,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *RedisPrincipalRepository) GetBySubjectID(ctx context.Context, subjectID string) (*domain.Principal, error) {
	data, err := r.client.Get(ctx, r.principalKey(subjectID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrPrincipalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get principal: %w", err)
	}

	return decodePrincipal(subjectID, data)
}

func (r *RedisPrincipalRepository) List(ctx context.Context) ([]domain.Principal, error) {
	ids, err := r.client.SMembers(ctx, principalSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list principals: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Principal{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.principalKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load principals: %w", err)
	}

	out := make([]domain.Principal, 0, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			// set member without a record
			continue
		}
		p, err := decodePrincipal(ids[i], []byte(s))
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

// RecordSignIn rewrites the record under WATCH so a concurrent removal is
// observed as not found instead of resurrecting the key.
func (r *RedisPrincipalRepository) RecordSignIn(ctx context.Context, subjectID string, upd domain.SignInUpdate) error {
	key := r.principalKey(subjectID)

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return domain.ErrPrincipalNotFound
		}
		if err != nil {
			return err
		}

		p, err := decodePrincipal(subjectID, data)
		if err != nil {
			return err
		}
		now := r.now()
		p.Email = upd.Email
		p.DisplayName = upd.DisplayName
		p.AvatarURL = upd.AvatarURL
		p.LastLoginAt = &now

		encoded, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to marshal principal: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, redis.KeepTTL)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, domain.ErrPrincipalNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to record sign-in: %w", err)
	}
	return nil
}

func (r *RedisPrincipalRepository) principalKey(subjectID string) string {
	return principalKeyPrefix + subjectID
}

func decodePrincipal(subjectID string, data []byte) (*domain.Principal, error) {
	var p domain.Principal
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal principal: %w", err)
	}
	p.SubjectID = subjectID
	return &p, nil
}
