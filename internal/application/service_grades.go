package application

import (
	"context"
	"fmt"

	"github.com/courseworks/peer-review-service/internal/domain"
)

// MakeGrades scans every submission addressed to each team of the course and
// synthesizes one grade record per team member, all written in a single
// batch. A single malformed submission aborts the whole aggregation before
// anything is inserted. Re-running for the same assignment appends duplicate
// records; callers own any cleanup between runs.
func (s *Service) MakeGrades(ctx context.Context, courseID string, assignmentID int) (GradesCreatedResponse, error) {
	if err := domain.ValidateCourseID(courseID); err != nil {
		return GradesCreatedResponse{}, err
	}

	assignment, err := s.assignments.GetByCourseAndID(ctx, courseID, assignmentID)
	if err != nil {
		return GradesCreatedResponse{}, err
	}
	if assignment.Points == nil {
		return GradesCreatedResponse{}, fmt.Errorf("%w: no points defined in assignment %d", domain.ErrInvalidState, assignmentID)
	}
	points := *assignment.Points
	answerPath := domain.AnswerPath(courseID, assignmentID)

	teams, err := s.teams.ListByCourse(ctx, courseID)
	if err != nil {
		return GradesCreatedResponse{}, err
	}

	var records []domain.GradeRecord
	for _, team := range teams {
		subs, err := s.submissions.ListAddressedTo(ctx, courseID, assignmentID, team.TeamID)
		if err != nil {
			return GradesCreatedResponse{}, err
		}
		reviews := make([]domain.Review, 0, len(subs))
		for _, sub := range subs {
			if sub.SubmissionName == "" || sub.Grade == nil {
				return GradesCreatedResponse{}, fmt.Errorf("%w: submission for team %s lacks a name or grade", domain.ErrMalformedSubmission, team.TeamID)
			}
			reviews = append(reviews, domain.Review{SubmissionName: sub.SubmissionName, Grade: *sub.Grade})
		}
		for _, member := range team.Members {
			// Each record owns its own copy of the reviews; mutating one
			// student's record must never leak into a teammate's.
			reviewsCopy := make([]domain.Review, len(reviews))
			copy(reviewsCopy, reviews)
			records = append(records, domain.GradeRecord{
				CourseID:     courseID,
				AssignmentID: assignmentID,
				StudentID:    member,
				AnswerPath:   answerPath,
				Points:       points,
				Reviews:      reviewsCopy,
			})
		}
	}

	// One batch insert, not transactional: a partial failure leaves the
	// already-written records in place.
	if err := s.grades.InsertMany(ctx, records); err != nil {
		return GradesCreatedResponse{}, err
	}

	s.publishGradesCreated(ctx, courseID, assignmentID, answerPath, len(records))
	return GradesCreatedResponse{
		CourseID:     courseID,
		AssignmentID: assignmentID,
		RecordCount:  len(records),
	}, nil
}
