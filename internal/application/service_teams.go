package application

import (
	"context"

	"github.com/courseworks/peer-review-service/internal/domain"
)

// ListTeams returns the team ids of a course in the store's natural
// iteration order. The order is not guaranteed stable across calls.
func (s *Service) ListTeams(ctx context.Context, courseID string) ([]string, error) {
	if err := domain.ValidateCourseID(courseID); err != nil {
		return nil, err
	}
	teams, err := s.teams.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(teams))
	for _, team := range teams {
		ids = append(ids, team.TeamID)
	}
	return ids, nil
}
