package application_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/courseworks/peer-review-service/internal/application"
	"github.com/courseworks/peer-review-service/internal/contracts"
	"github.com/courseworks/peer-review-service/internal/domain"
)

type fakeTeams struct {
	teams []domain.Team
}

func (f *fakeTeams) GetByCourseAndID(_ context.Context, courseID, teamID string) (domain.Team, error) {
	for _, team := range f.teams {
		if team.CourseID == courseID && team.TeamID == teamID {
			return team, nil
		}
	}
	return domain.Team{}, domain.ErrNotFound
}

func (f *fakeTeams) ListByCourse(_ context.Context, courseID string) ([]domain.Team, error) {
	var out []domain.Team
	for _, team := range f.teams {
		if team.CourseID == courseID {
			out = append(out, team)
		}
	}
	return out, nil
}

type fakeAssignments struct {
	assignments []domain.Assignment
}

func (f *fakeAssignments) GetByCourseAndID(_ context.Context, courseID string, assignmentID int) (domain.Assignment, error) {
	for _, a := range f.assignments {
		if a.CourseID == courseID && a.AssignmentID == assignmentID {
			return a, nil
		}
	}
	return domain.Assignment{}, domain.ErrNotFound
}

func (f *fakeAssignments) ListByCourse(_ context.Context, courseID string) ([]domain.Assignment, error) {
	var out []domain.Assignment
	for _, a := range f.assignments {
		if a.CourseID == courseID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignments) ReplaceAssignedTeams(_ context.Context, courseID string, assignmentID int, pairing map[string][]string) error {
	for i, a := range f.assignments {
		if a.CourseID == courseID && a.AssignmentID == assignmentID {
			f.assignments[i].AssignedTeams = pairing
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeSubmissions struct {
	subs []domain.Submission
}

func (f *fakeSubmissions) Exists(_ context.Context, sub domain.Submission) (bool, error) {
	for _, existing := range f.subs {
		if reflect.DeepEqual(existing, sub) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSubmissions) Insert(_ context.Context, sub domain.Submission) error {
	f.subs = append(f.subs, sub)
	return nil
}

func (f *fakeSubmissions) ListAddressedTo(_ context.Context, courseID string, assignmentID int, teamID string) ([]domain.Submission, error) {
	var out []domain.Submission
	for _, sub := range f.subs {
		if sub.CourseID != courseID || sub.AssignmentID != assignmentID || sub.Type != domain.SubmissionTypePeerReview {
			continue
		}
		if domain.AddressedTo(sub, teamID) {
			out = append(out, sub)
		}
	}
	return out, nil
}

type fakeGrades struct {
	records    []domain.GradeRecord
	insertErr  error
	batchCalls int
}

func (f *fakeGrades) InsertMany(_ context.Context, records []domain.GradeRecord) error {
	f.batchCalls++
	if f.insertErr != nil {
		return f.insertErr
	}
	f.records = append(f.records, records...)
	return nil
}

type fakeFiles struct {
	files map[string][]byte
}

func (f *fakeFiles) Put(_ context.Context, path string, contents io.Reader) error {
	data, err := io.ReadAll(contents)
	if err != nil {
		return err
	}
	if f.files == nil {
		f.files = map[string][]byte{}
	}
	f.files[path] = data
	return nil
}

type fakePublisher struct {
	envelopes []contracts.EventEnvelope
}

func (f *fakePublisher) Publish(_ context.Context, envelope contracts.EventEnvelope) error {
	f.envelopes = append(f.envelopes, envelope)
	return nil
}

type fixture struct {
	service     *application.Service
	teams       *fakeTeams
	assignments *fakeAssignments
	submissions *fakeSubmissions
	grades      *fakeGrades
	files       *fakeFiles
	publisher   *fakePublisher
}

func newFixture() *fixture {
	f := &fixture{
		teams:       &fakeTeams{},
		assignments: &fakeAssignments{},
		submissions: &fakeSubmissions{},
		grades:      &fakeGrades{},
		files:       &fakeFiles{},
		publisher:   &fakePublisher{},
	}
	f.service = application.NewService(application.Dependencies{
		Teams:       f.teams,
		Assignments: f.assignments,
		Submissions: f.submissions,
		Grades:      f.grades,
		Files:       f.files,
		Publisher:   f.publisher,
	})
	return f
}

func intPtr(v int) *int { return &v }

func (f *fixture) seedScenario() {
	f.teams.teams = []domain.Team{
		{CourseID: "CSC101", TeamID: "A", Members: []string{"s1", "s2"}},
		{CourseID: "CSC101", TeamID: "B", Members: []string{"s3"}},
	}
	f.assignments.assignments = []domain.Assignment{
		{CourseID: "CSC101", AssignmentID: 1, Points: intPtr(10)},
	}
}

func (f *fixture) addSubmission(t *testing.T, team, name string, grade int) {
	t.Helper()
	err := f.service.AddSubmission(context.Background(), application.AddSubmissionRequest{
		CourseID:       "CSC101",
		AssignmentID:   1,
		ReviewerTeamID: team,
		Grade:          grade,
		SubmissionName: name,
		File:           bytes.NewReader([]byte("review content")),
	})
	if err != nil {
		t.Fatalf("add submission %s/%s: %v", team, name, err)
	}
}

func TestListTeams(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedScenario()

	teams, err := f.service.ListTeams(context.Background(), "CSC101")
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if !reflect.DeepEqual(teams, []string{"A", "B"}) {
		t.Fatalf("unexpected teams: %v", teams)
	}
}

func TestSetAssignedTeamsReplacesPairing(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedScenario()
	f.assignments.assignments[0].AssignedTeams = map[string][]string{"A": {"B"}, "C": {"A"}}

	pairing := map[string][]string{"A": {"B"}, "B": {"A"}}
	resp, err := f.service.SetAssignedTeams(context.Background(), application.SetAssignedTeamsRequest{
		CourseID:     "CSC101",
		AssignmentID: 1,
		Pairing:      pairing,
	})
	if err != nil {
		t.Fatalf("set assigned teams: %v", err)
	}
	if !reflect.DeepEqual(resp.AssignedTeams, pairing) {
		t.Fatalf("response pairing mismatch: %v", resp.AssignedTeams)
	}
	stored := f.assignments.assignments[0].AssignedTeams
	if !reflect.DeepEqual(stored, pairing) {
		t.Fatalf("stored pairing not replaced wholesale: %v", stored)
	}
	if _, kept := stored["C"]; kept {
		t.Fatalf("prior pairing entry survived replacement")
	}
}

func TestSetAssignedTeamsEmptyPairingClears(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedScenario()
	f.assignments.assignments[0].AssignedTeams = map[string][]string{"A": {"B"}}

	resp, err := f.service.SetAssignedTeams(context.Background(), application.SetAssignedTeamsRequest{
		CourseID:     "CSC101",
		AssignmentID: 1,
	})
	if err != nil {
		t.Fatalf("clearing the pairing should be valid: %v", err)
	}
	if len(resp.AssignedTeams) != 0 || resp.AssignedTeams == nil {
		t.Fatalf("response pairing = %v, want empty map", resp.AssignedTeams)
	}
	stored := f.assignments.assignments[0].AssignedTeams
	if len(stored) != 0 {
		t.Fatalf("prior pairing survived the clear: %v", stored)
	}
}

func TestSetAssignedTeamsUnknownAssignment(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedScenario()

	_, err := f.service.SetAssignedTeams(context.Background(), application.SetAssignedTeamsRequest{
		CourseID:     "CSC101",
		AssignmentID: 99,
		Pairing:      map[string][]string{"A": {"B"}},
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddSubmissionTeamNotFound(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedScenario()

	err := f.service.AddSubmission(context.Background(), application.AddSubmissionRequest{
		CourseID:       "CSC101",
		AssignmentID:   1,
		ReviewerTeamID: "Z",
		Grade:          5,
		SubmissionName: "to-A.pdf",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddSubmissionTeamWithoutMembers(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.teams.teams = []domain.Team{{CourseID: "CSC101", TeamID: "A"}}

	err := f.service.AddSubmission(context.Background(), application.AddSubmissionRequest{
		CourseID:       "CSC101",
		AssignmentID:   1,
		ReviewerTeamID: "A",
		Grade:          5,
		SubmissionName: "to-B.pdf",
	})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
}

func TestAddSubmissionWholeDocumentDedup(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedScenario()

	f.addSubmission(t, "A", "to-B.pdf", 8)

	err := f.service.AddSubmission(context.Background(), application.AddSubmissionRequest{
		CourseID:       "CSC101",
		AssignmentID:   1,
		ReviewerTeamID: "A",
		Grade:          8,
		SubmissionName: "to-B.pdf",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict for identical submission, got %v", err)
	}
	if len(f.submissions.subs) != 1 {
		t.Fatalf("duplicate was stored")
	}

	// A single differing field makes it a distinct document.
	f.addSubmission(t, "A", "to-B.pdf", 9)
	if len(f.submissions.subs) != 2 {
		t.Fatalf("re-graded submission should coexist, have %d", len(f.submissions.subs))
	}
}

func TestAddSubmissionRecordsSnapshotAndAddress(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedScenario()
	f.addSubmission(t, "A", "to-B.pdf", 8)

	sub := f.submissions.subs[0]
	if sub.TeamName != "A" || sub.Type != domain.SubmissionTypePeerReview {
		t.Fatalf("unexpected submission identity: %+v", sub)
	}
	if sub.RevieweeTeamID != "B" {
		t.Fatalf("structured address not derived, got %q", sub.RevieweeTeamID)
	}
	wantPath := "courses/CSC101/1/peer-review-submissions/to-B.pdf"
	if sub.Path != wantPath {
		t.Fatalf("path = %q, want %q", sub.Path, wantPath)
	}
	if _, ok := f.files.files[wantPath]; !ok {
		t.Fatalf("file bytes were not handed to the store")
	}

	// Members is a snapshot, not a live reference to the roster.
	f.teams.teams[0].Members[0] = "someone-else"
	if sub.Members[0] != "s1" {
		t.Fatalf("member snapshot aliased the roster")
	}
}

func TestMakeGradesAssignmentNotFound(t *testing.T) {
	t.Parallel()

	f := newFixture()

	_, err := f.service.MakeGrades(context.Background(), "CSC101", 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMakeGradesPointsUnset(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedScenario()
	f.assignments.assignments[0].Points = nil

	_, err := f.service.MakeGrades(context.Background(), "CSC101", 1)
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
	if len(f.grades.records) != 0 || f.grades.batchCalls != 0 {
		t.Fatalf("grades were written despite unset points")
	}
}

func TestMakeGradesAggregatesPerStudent(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedScenario()
	f.addSubmission(t, "A", "to-B", 8)
	f.addSubmission(t, "B", "to-A", 9)

	resp, err := f.service.MakeGrades(context.Background(), "CSC101", 1)
	if err != nil {
		t.Fatalf("make grades: %v", err)
	}
	if resp.RecordCount != 3 {
		t.Fatalf("record count = %d, want 3", resp.RecordCount)
	}
	if len(f.grades.records) != 3 {
		t.Fatalf("stored %d records, want 3", len(f.grades.records))
	}
	if f.grades.batchCalls != 1 {
		t.Fatalf("expected a single batch insert, got %d", f.grades.batchCalls)
	}

	byStudent := map[string]domain.GradeRecord{}
	for _, record := range f.grades.records {
		byStudent[record.StudentID] = record
	}
	wantAnswerPath := "courses/CSC101/1/peer-review-submissions"
	for _, studentID := range []string{"s1", "s2"} {
		record, ok := byStudent[studentID]
		if !ok {
			t.Fatalf("missing record for %s", studentID)
		}
		if record.Points != 10 || record.AnswerPath != wantAnswerPath {
			t.Fatalf("record for %s malformed: %+v", studentID, record)
		}
		if !reflect.DeepEqual(record.Reviews, []domain.Review{{SubmissionName: "to-A", Grade: 9}}) {
			t.Fatalf("reviews for %s = %+v", studentID, record.Reviews)
		}
	}
	record, ok := byStudent["s3"]
	if !ok {
		t.Fatalf("missing record for s3")
	}
	if !reflect.DeepEqual(record.Reviews, []domain.Review{{SubmissionName: "to-B", Grade: 8}}) {
		t.Fatalf("reviews for s3 = %+v", record.Reviews)
	}
}

func TestMakeGradesMalformedSubmissionAbortsAll(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedScenario()
	f.addSubmission(t, "A", "to-B", 8)
	// A document missing its grade, as legacy data could carry.
	f.submissions.subs = append(f.submissions.subs, domain.Submission{
		CourseID:       "CSC101",
		AssignmentID:   1,
		TeamName:       "B",
		SubmissionName: "to-A",
		Type:           domain.SubmissionTypePeerReview,
	})

	_, err := f.service.MakeGrades(context.Background(), "CSC101", 1)
	if !errors.Is(err, domain.ErrMalformedSubmission) {
		t.Fatalf("expected malformed submission, got %v", err)
	}
	if len(f.grades.records) != 0 || f.grades.batchCalls != 0 {
		t.Fatalf("aggregation wrote records despite malformed input")
	}
}

func TestMakeGradesRerunDuplicatesRecords(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedScenario()
	f.addSubmission(t, "A", "to-B", 8)

	for run := 0; run < 2; run++ {
		if _, err := f.service.MakeGrades(context.Background(), "CSC101", 1); err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
	}
	if len(f.grades.records) != 6 {
		t.Fatalf("expected duplicated records on rerun, have %d", len(f.grades.records))
	}
}

func TestMakeGradesReviewsAreValueCopies(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedScenario()
	f.addSubmission(t, "B", "to-A", 9)

	if _, err := f.service.MakeGrades(context.Background(), "CSC101", 1); err != nil {
		t.Fatalf("make grades: %v", err)
	}

	var s1, s2 *domain.GradeRecord
	for i := range f.grades.records {
		switch f.grades.records[i].StudentID {
		case "s1":
			s1 = &f.grades.records[i]
		case "s2":
			s2 = &f.grades.records[i]
		}
	}
	if s1 == nil || s2 == nil {
		t.Fatalf("missing teammate records")
	}
	s1.Reviews[0].Grade = 0
	if s2.Reviews[0].Grade != 9 {
		t.Fatalf("mutating one student's reviews leaked into a teammate's record")
	}
}

func TestMakeGradesMatchesLegacyAndStructuredAddresses(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedScenario()
	f.addSubmission(t, "B", "to-A", 9)
	// Legacy document: free-text address only, no structured field.
	f.submissions.subs = append(f.submissions.subs, domain.Submission{
		CourseID:       "CSC101",
		AssignmentID:   1,
		TeamName:       "C",
		SubmissionName: "review-to-A-final.pdf",
		Grade:          intPtr(7),
		Members:        []string{"s9"},
		Path:           "courses/CSC101/1/peer-review-submissions/review-to-A-final.pdf",
		Type:           domain.SubmissionTypePeerReview,
	})

	if _, err := f.service.MakeGrades(context.Background(), "CSC101", 1); err != nil {
		t.Fatalf("make grades: %v", err)
	}
	for _, record := range f.grades.records {
		if record.StudentID != "s1" {
			continue
		}
		if len(record.Reviews) != 2 {
			t.Fatalf("expected both address variants aggregated, got %+v", record.Reviews)
		}
	}
}

func TestMakeGradesPublishesEvent(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedScenario()

	if _, err := f.service.MakeGrades(context.Background(), "CSC101", 1); err != nil {
		t.Fatalf("make grades: %v", err)
	}
	var found *contracts.EventEnvelope
	for i := range f.publisher.envelopes {
		if f.publisher.envelopes[i].EventType == "peer_review.grades_created" {
			found = &f.publisher.envelopes[i]
		}
	}
	if found == nil {
		t.Fatalf("grades_created event not published, got %v", f.publisher.envelopes)
	}
	if found.EventID == "" || found.PartitionKey != "CSC101/1" || len(found.Data) == 0 {
		t.Fatalf("envelope incomplete: %+v", found)
	}
}

func TestMakeGradesBatchInsertFailureSurfaces(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedScenario()
	f.grades.insertErr = fmt.Errorf("write concern failed")

	_, err := f.service.MakeGrades(context.Background(), "CSC101", 1)
	if err == nil || !strings.Contains(err.Error(), "write concern failed") {
		t.Fatalf("expected insert failure to surface, got %v", err)
	}
}
