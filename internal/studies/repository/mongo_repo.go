package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/r2c-platform/admin-backend/internal/studies/domain"
)

type MongoStudyRepository struct {
	coll *mongo.Collection
}

func NewMongoStudyRepository(coll *mongo.Collection) *MongoStudyRepository {
	return &MongoStudyRepository{coll: coll}
}

// idFilter matches a study under any of its stored ID representations.
func idFilter(id domain.ResourceID) bson.M {
	return bson.M{"_id": bson.M{"$in": id.Candidates()}}
}

// listFilter translates a domain filter into a Mongo query document.
func listFilter(f domain.Filter) bson.M {
	q := bson.M{}

	switch f.Approval {
	case domain.ApprovalApproved:
		q["approved"] = true
	case domain.ApprovalUnapproved:
		// unset counts as not approved
		q["approved"] = bson.M{"$ne": true}
	}

	if len(f.Genres) > 0 {
		patterns := make([]primitive.Regex, 0, len(f.Genres))
		for _, g := range f.Genres {
			patterns = append(patterns, containsPattern(g))
		}
		q["genres"] = bson.M{"$in": patterns}
	}

	if f.Title != "" {
		q["title"] = containsPattern(f.Title)
	}

	return q
}

func containsPattern(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func (r *MongoStudyRepository) Find(ctx context.Context, filter domain.Filter, page domain.Pagination) ([]domain.Study, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))

	cur, err := r.coll.Find(ctx, listFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find studies: %w", err)
	}

	studies := []domain.Study{}
	if err := cur.All(ctx, &studies); err != nil {
		return nil, fmt.Errorf("failed to decode studies: %w", err)
	}
	return studies, nil
}

func (r *MongoStudyRepository) Count(ctx context.Context, filter domain.Filter) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, listFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count studies: %w", err)
	}
	return n, nil
}

func (r *MongoStudyRepository) FindByID(ctx context.Context, id domain.ResourceID) (*domain.Study, error) {
	var s domain.Study
	err := r.coll.FindOne(ctx, idFilter(id)).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrStudyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get study: %w", err)
	}
	return &s, nil
}

// SetApproved overwrites the approval flag and returns the updated record.
func (r *MongoStudyRepository) SetApproved(ctx context.Context, id domain.ResourceID, approved bool) (*domain.Study, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var s domain.Study
	err := r.coll.FindOneAndUpdate(ctx, idFilter(id), bson.M{"$set": bson.M{"approved": approved}}, opts).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrStudyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update study: %w", err)
	}
	return &s, nil
}

// Delete removes the record stored under exactly id, in its own representation.
func (r *MongoStudyRepository) Delete(ctx context.Context, id domain.ResourceID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete study: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrStudyNotFound
	}
	return nil
}

func (r *MongoStudyRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}
