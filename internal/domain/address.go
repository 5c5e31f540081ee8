package domain

import (
	"fmt"
	"path"
	"strings"
)

// ReviewPrefix is the naming convention that addresses a submission to the
// team it evaluates: a submission named "to-<team_id>..." reviews that team.
const ReviewPrefix = "to-"

const submissionsSegment = "peer-review-submissions"

// SubmissionAddress identifies the reviewee team a submission is addressed
// to. Two variants exist: the structured reviewee_team_id field written by
// this service, and the legacy free-text naming convention carried by
// documents that predate the field.
type SubmissionAddress interface {
	// Reviewee returns the team id the address points at.
	Reviewee() string
	// Matches reports whether the submission is addressed to Reviewee.
	Matches(s Submission) bool
}

// StructuredAddress matches on the reviewee_team_id field written by this
// service.
type StructuredAddress string

func (a StructuredAddress) Reviewee() string { return string(a) }

func (a StructuredAddress) Matches(s Submission) bool {
	return s.RevieweeTeamID == string(a)
}

// LegacyAddress matches documents that predate the structured field by the
// naming convention alone.
type LegacyAddress string

func (a LegacyAddress) Reviewee() string { return string(a) }

// Matches mirrors the unanchored pattern match legacy data was queried with:
// any submission whose name contains "to-<team>" counts. Documents carrying
// the structured field are left to StructuredAddress.
func (a LegacyAddress) Matches(s Submission) bool {
	return s.RevieweeTeamID == "" && strings.Contains(s.SubmissionName, ReviewPrefix+string(a))
}

// AddressesFor returns both lookup variants for a team, structured first.
func AddressesFor(teamID string) []SubmissionAddress {
	return []SubmissionAddress{StructuredAddress(teamID), LegacyAddress(teamID)}
}

// AddressedTo reports whether the submission is addressed to the team under
// either variant.
func AddressedTo(s Submission, teamID string) bool {
	for _, addr := range AddressesFor(teamID) {
		if addr.Matches(s) {
			return true
		}
	}
	return false
}

// RevieweeFromName extracts the reviewee team id from a submission name
// following the to-<team> convention. The team id runs to the first path or
// extension separator so "to-teamB.pdf" resolves to "teamB". Returns false
// when the name does not follow the convention.
func RevieweeFromName(name string) (string, bool) {
	base := path.Base(name)
	if !strings.HasPrefix(base, ReviewPrefix) {
		return "", false
	}
	reviewee := strings.TrimPrefix(base, ReviewPrefix)
	if i := strings.IndexByte(reviewee, '.'); i >= 0 {
		reviewee = reviewee[:i]
	}
	if reviewee == "" {
		return "", false
	}
	return reviewee, true
}

// SubmissionPath is the deterministic storage location for a submission's
// file bytes.
func SubmissionPath(courseID string, assignmentID int, submissionName string) string {
	return path.Join("courses", courseID, fmt.Sprint(assignmentID), submissionsSegment, submissionName)
}

// AnswerPath is the shared location recorded on every grade record of an
// assignment, independent of team.
func AnswerPath(courseID string, assignmentID int) string {
	return path.Join("courses", courseID, fmt.Sprint(assignmentID), submissionsSegment)
}
