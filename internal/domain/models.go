package domain

// SubmissionTypePeerReview is the discriminator stored on every document the
// ledger writes into the submissions collection.
const SubmissionTypePeerReview = "peer_review"

// Team is owned by course roster management; this service only reads it.
type Team struct {
	CourseID string   `bson:"course_id" json:"course_id"`
	TeamID   string   `bson:"team_id" json:"team_id"`
	Members  []string `bson:"team_members" json:"team_members"`
}

// Assignment is owned by course roster management. Points is a pointer so a
// document without the field decodes as unset rather than zero.
type Assignment struct {
	CourseID      string              `bson:"course_id" json:"course_id"`
	AssignmentID  int                 `bson:"assignment_id" json:"assignment_id"`
	Points        *int                `bson:"points,omitempty" json:"points,omitempty"`
	AssignedTeams map[string][]string `bson:"assigned_teams,omitempty" json:"assigned_teams,omitempty"`
}

// Submission records one peer review authored by TeamName. Members is a
// snapshot of the reviewer team's roster taken at submission time.
// RevieweeTeamID is the structured address; documents written before the
// field existed carry only the to-<team> convention in SubmissionName.
type Submission struct {
	CourseID       string   `bson:"course_id" json:"course_id"`
	AssignmentID   int      `bson:"assignment_id" json:"assignment_id"`
	TeamName       string   `bson:"team_name" json:"team_name"`
	SubmissionName string   `bson:"submission_name" json:"submission_name"`
	RevieweeTeamID string   `bson:"reviewee_team_id,omitempty" json:"reviewee_team_id,omitempty"`
	Grade          *int     `bson:"grade,omitempty" json:"grade,omitempty"`
	Members        []string `bson:"members" json:"members"`
	Path           string   `bson:"path" json:"path"`
	Type           string   `bson:"type" json:"type"`
}

// Review is one entry in a grade record's received-reviews sequence.
type Review struct {
	SubmissionName string `bson:"submission_name" json:"submission_name"`
	Grade          int    `bson:"grade" json:"grade"`
}

// GradeRecord is the per-student aggregate the grade aggregator synthesizes.
// Records are append-only; nothing in this service mutates them after insert.
type GradeRecord struct {
	CourseID     string   `bson:"course_id" json:"course_id"`
	AssignmentID int      `bson:"assignment_id" json:"assignment_id"`
	StudentID    string   `bson:"student_id" json:"student_id"`
	AnswerPath   string   `bson:"answer_path" json:"answer_path"`
	Points       int      `bson:"points" json:"points"`
	Reviews      []Review `bson:"reviews" json:"reviews"`
}
