package mongo

import (
	"context"
	"errors"

	"github.com/courseworks/peer-review-service/internal/domain"
	"go.mongodb.org/mongo-driver/mongo"
)

type submissionRepository struct {
	collection *mongo.Collection
}

// Exists runs the whole-document equality lookup the dedup rule is defined
// by. It is a plain findOne, not an atomic reservation; see the ledger's
// race note.
func (r *submissionRepository) Exists(ctx context.Context, sub domain.Submission) (bool, error) {
	err := r.collection.FindOne(ctx, submissionEqualityFilter(sub)).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *submissionRepository) Insert(ctx context.Context, sub domain.Submission) error {
	_, err := r.collection.InsertOne(ctx, sub)
	return err
}

func (r *submissionRepository) ListAddressedTo(ctx context.Context, courseID string, assignmentID int, teamID string) ([]domain.Submission, error) {
	cursor, err := r.collection.Find(ctx, addressedToFilter(courseID, assignmentID, teamID))
	if err != nil {
		return nil, err
	}
	var subs []domain.Submission
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}
