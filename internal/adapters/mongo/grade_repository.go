package mongo

import (
	"context"

	"github.com/courseworks/peer-review-service/internal/domain"
	"go.mongodb.org/mongo-driver/mongo"
)

type gradeRepository struct {
	collection *mongo.Collection
}

// InsertMany writes the batch in one call. The insert is not transactional:
// a partial failure leaves the records written so far in place. An empty
// batch is a no-op rather than a driver error.
func (r *gradeRepository) InsertMany(ctx context.Context, records []domain.GradeRecord) error {
	if len(records) == 0 {
		return nil
	}
	docs := make([]any, len(records))
	for i, record := range records {
		docs[i] = record
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}
