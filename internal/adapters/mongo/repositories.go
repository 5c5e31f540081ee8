package mongo

import (
	"github.com/courseworks/peer-review-service/internal/ports"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	collectionTeams       = "teams"
	collectionAssignments = "assignments"
	collectionSubmissions = "submissions"
	collectionGrades      = "grades"
)

type Repositories struct {
	Teams       ports.TeamRepository
	Assignments ports.AssignmentRepository
	Submissions ports.SubmissionRepository
	Grades      ports.GradeRepository
}

// NewRepositories wires the four collection-backed repositories off one
// database handle. The handle's lifecycle stays with the caller.
func NewRepositories(db *mongo.Database) Repositories {
	return Repositories{
		Teams:       &teamRepository{collection: db.Collection(collectionTeams)},
		Assignments: &assignmentRepository{collection: db.Collection(collectionAssignments)},
		Submissions: &submissionRepository{collection: db.Collection(collectionSubmissions)},
		Grades:      &gradeRepository{collection: db.Collection(collectionGrades)},
	}
}
