package application

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/courseworks/peer-review-service/internal/contracts"
	"github.com/courseworks/peer-review-service/internal/domain"
	"github.com/google/uuid"
)

// Event publication is best-effort: a broker outage must never fail the
// store write that already happened.

func (s *Service) publishSubmissionReceived(ctx context.Context, sub domain.Submission) {
	s.publish(ctx, contracts.EventTypeSubmissionReceived,
		fmt.Sprintf("%s/%d", sub.CourseID, sub.AssignmentID),
		contracts.SubmissionReceivedPayload{
			CourseID:       sub.CourseID,
			AssignmentID:   sub.AssignmentID,
			ReviewerTeamID: sub.TeamName,
			RevieweeTeamID: sub.RevieweeTeamID,
			SubmissionName: sub.SubmissionName,
			Path:           sub.Path,
		})
}

func (s *Service) publishGradesCreated(ctx context.Context, courseID string, assignmentID int, answerPath string, count int) {
	s.publish(ctx, contracts.EventTypeGradesCreated,
		fmt.Sprintf("%s/%d", courseID, assignmentID),
		contracts.GradesCreatedPayload{
			CourseID:     courseID,
			AssignmentID: assignmentID,
			RecordCount:  count,
			AnswerPath:   answerPath,
		})
}

func (s *Service) publish(ctx context.Context, eventType, partitionKey string, payload any) {
	if s.publisher == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = s.publisher.Publish(ctx, contracts.EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		OccurredAt:    s.nowFn(),
		PartitionKey:  partitionKey,
		SourceService: s.cfg.ServiceName,
		SchemaVersion: "1.0",
		Data:          data,
	})
}
