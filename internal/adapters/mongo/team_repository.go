package mongo

import (
	"context"
	"errors"

	"github.com/courseworks/peer-review-service/internal/domain"
	"go.mongodb.org/mongo-driver/mongo"
)

type teamRepository struct {
	collection *mongo.Collection
}

func (r *teamRepository) GetByCourseAndID(ctx context.Context, courseID, teamID string) (domain.Team, error) {
	var team domain.Team
	err := r.collection.FindOne(ctx, teamFilter(courseID, teamID)).Decode(&team)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Team{}, domain.ErrNotFound
		}
		return domain.Team{}, err
	}
	return team, nil
}

func (r *teamRepository) ListByCourse(ctx context.Context, courseID string) ([]domain.Team, error) {
	cursor, err := r.collection.Find(ctx, courseFilter(courseID))
	if err != nil {
		return nil, err
	}
	var teams []domain.Team
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}
