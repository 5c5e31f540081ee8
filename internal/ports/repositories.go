package ports

import (
	"context"

	"github.com/courseworks/peer-review-service/internal/domain"
)

// TeamRepository reads the course roster's team documents. All methods
// re-query the store on every call; nothing is cached in process.
type TeamRepository interface {
	// GetByCourseAndID returns domain.ErrNotFound when no team matches.
	GetByCourseAndID(ctx context.Context, courseID, teamID string) (domain.Team, error)
	ListByCourse(ctx context.Context, courseID string) ([]domain.Team, error)
}

// AssignmentRepository reads assignment documents and replaces their review
// pairing. ReplaceAssignedTeams overwrites the assigned_teams field in its
// entirety; callers supply the complete pairing every time.
type AssignmentRepository interface {
	// GetByCourseAndID returns domain.ErrNotFound when no assignment matches.
	GetByCourseAndID(ctx context.Context, courseID string, assignmentID int) (domain.Assignment, error)
	ListByCourse(ctx context.Context, courseID string) ([]domain.Assignment, error)
	ReplaceAssignedTeams(ctx context.Context, courseID string, assignmentID int, pairing map[string][]string) error
}

// SubmissionRepository persists peer-review submissions. Exists matches the
// entire candidate document field-for-field; it is not a natural-key check,
// and the read-then-insert pair is not atomic.
type SubmissionRepository interface {
	Exists(ctx context.Context, sub domain.Submission) (bool, error)
	Insert(ctx context.Context, sub domain.Submission) error
	// ListAddressedTo returns every peer-review submission of the assignment
	// addressed to teamID, matching both the structured reviewee_team_id
	// field and the legacy to-<team> naming convention.
	ListAddressedTo(ctx context.Context, courseID string, assignmentID int, teamID string) ([]domain.Submission, error)
}

// GradeRepository appends synthesized grade records. InsertMany is a single
// batch call with no transactional guarantee across records.
type GradeRepository interface {
	InsertMany(ctx context.Context, records []domain.GradeRecord) error
}
