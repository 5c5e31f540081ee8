package application

import (
	"context"
	"fmt"

	"github.com/courseworks/peer-review-service/internal/domain"
)

// AddSubmission validates and persists one peer-review submission authored
// by the reviewer team. The submission's members list is a snapshot of the
// team roster at submission time, not a live reference.
func (s *Service) AddSubmission(ctx context.Context, req AddSubmissionRequest) error {
	if err := domain.ValidateCourseID(req.CourseID); err != nil {
		return err
	}
	if err := domain.ValidateTeamID(req.ReviewerTeamID); err != nil {
		return err
	}
	if err := domain.ValidateSubmissionName(req.SubmissionName); err != nil {
		return err
	}
	if err := domain.ValidateGrade(req.Grade); err != nil {
		return err
	}

	team, err := s.teams.GetByCourseAndID(ctx, req.CourseID, req.ReviewerTeamID)
	if err != nil {
		return err
	}
	if team.Members == nil {
		return fmt.Errorf("%w: members not defined in team %s", domain.ErrInvalidState, req.ReviewerTeamID)
	}

	grade := req.Grade
	sub := domain.Submission{
		CourseID:       req.CourseID,
		AssignmentID:   req.AssignmentID,
		TeamName:       team.TeamID,
		SubmissionName: req.SubmissionName,
		Grade:          &grade,
		Members:        append([]string(nil), team.Members...),
		Path:           domain.SubmissionPath(req.CourseID, req.AssignmentID, req.SubmissionName),
		Type:           domain.SubmissionTypePeerReview,
	}
	if reviewee, ok := domain.RevieweeFromName(req.SubmissionName); ok {
		sub.RevieweeTeamID = reviewee
	}

	// Whole-document dedup: a candidate matching an existing submission on
	// every field is rejected, while a single differing field (a re-graded
	// review, say) stores a second document. The check and the insert are
	// two store calls, so concurrent identical submissions can race past it.
	exists, err := s.submissions.Exists(ctx, sub)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: submission already exists", domain.ErrConflict)
	}

	if req.File != nil {
		if err := s.files.Put(ctx, sub.Path, req.File); err != nil {
			return fmt.Errorf("%w: write submission file: %v", domain.ErrStorageUnavailable, err)
		}
	}
	if err := s.submissions.Insert(ctx, sub); err != nil {
		return err
	}

	s.publishSubmissionReceived(ctx, sub)
	return nil
}
