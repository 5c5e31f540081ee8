package application

import (
	"time"

	"github.com/courseworks/peer-review-service/internal/ports"
)

type Config struct {
	ServiceName string
}

// Service orchestrates the peer-review workflow over its ports. It holds no
// mutable state between calls; every operation re-queries the store.
type Service struct {
	cfg         Config
	teams       ports.TeamRepository
	assignments ports.AssignmentRepository
	submissions ports.SubmissionRepository
	grades      ports.GradeRepository
	files       ports.FileStore
	publisher   ports.EventPublisher
	nowFn       func() time.Time
}

type Dependencies struct {
	Config      Config
	Teams       ports.TeamRepository
	Assignments ports.AssignmentRepository
	Submissions ports.SubmissionRepository
	Grades      ports.GradeRepository
	Files       ports.FileStore
	Publisher   ports.EventPublisher
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "peer-review-service"
	}
	return &Service{
		cfg:         cfg,
		teams:       deps.Teams,
		assignments: deps.Assignments,
		submissions: deps.Submissions,
		grades:      deps.Grades,
		files:       deps.Files,
		publisher:   deps.Publisher,
		nowFn:       func() time.Time { return time.Now().UTC() },
	}
}
