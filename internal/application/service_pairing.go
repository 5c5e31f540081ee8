package application

import (
	"context"
	"fmt"

	"github.com/courseworks/peer-review-service/internal/domain"
)

// SetAssignedTeams stores who reviews whom for one assignment. The pairing
// replaces the assignment's prior assigned_teams field wholesale; callers
// must send the complete mapping every time, partial updates do not merge.
// An empty pairing is valid and clears the assignment's pairing.
func (s *Service) SetAssignedTeams(ctx context.Context, req SetAssignedTeamsRequest) (PairingResponse, error) {
	if err := domain.ValidateCourseID(req.CourseID); err != nil {
		return PairingResponse{}, err
	}
	if req.Pairing == nil {
		req.Pairing = map[string][]string{}
	}
	for reviewer := range req.Pairing {
		if err := domain.ValidateTeamID(reviewer); err != nil {
			return PairingResponse{}, err
		}
	}

	// The assignment is located by scanning the course's assignments rather
	// than a point lookup; assignment ids are only unique within a course.
	assignments, err := s.assignments.ListByCourse(ctx, req.CourseID)
	if err != nil {
		return PairingResponse{}, err
	}
	found := false
	for _, assignment := range assignments {
		if assignment.AssignmentID == req.AssignmentID {
			found = true
			break
		}
	}
	if !found {
		return PairingResponse{}, fmt.Errorf("%w: assignment %d in course %s", domain.ErrNotFound, req.AssignmentID, req.CourseID)
	}

	if err := s.assignments.ReplaceAssignedTeams(ctx, req.CourseID, req.AssignmentID, req.Pairing); err != nil {
		return PairingResponse{}, err
	}
	return PairingResponse{
		CourseID:      req.CourseID,
		AssignmentID:  req.AssignmentID,
		AssignedTeams: req.Pairing,
	}, nil
}
