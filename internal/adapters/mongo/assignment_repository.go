package mongo

import (
	"context"
	"errors"

	"github.com/courseworks/peer-review-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type assignmentRepository struct {
	collection *mongo.Collection
}

func (r *assignmentRepository) GetByCourseAndID(ctx context.Context, courseID string, assignmentID int) (domain.Assignment, error) {
	var assignment domain.Assignment
	err := r.collection.FindOne(ctx, assignmentFilter(courseID, assignmentID)).Decode(&assignment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Assignment{}, domain.ErrNotFound
		}
		return domain.Assignment{}, err
	}
	return assignment, nil
}

func (r *assignmentRepository) ListByCourse(ctx context.Context, courseID string) ([]domain.Assignment, error) {
	cursor, err := r.collection.Find(ctx, courseFilter(courseID))
	if err != nil {
		return nil, err
	}
	var assignments []domain.Assignment
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// ReplaceAssignedTeams overwrites the assigned_teams field with the given
// pairing; prior pairing data for the assignment is discarded.
func (r *assignmentRepository) ReplaceAssignedTeams(ctx context.Context, courseID string, assignmentID int, pairing map[string][]string) error {
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "assigned_teams", Value: pairing}}}}
	result, err := r.collection.UpdateOne(ctx, assignmentFilter(courseID, assignmentID), update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
