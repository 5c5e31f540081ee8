package mongo

import (
	"regexp"

	"github.com/courseworks/peer-review-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Filters are restricted to field-equality and regex predicates; nothing
// here relies on indexes or server-side aggregation.

func courseFilter(courseID string) bson.D {
	return bson.D{{Key: "course_id", Value: courseID}}
}

func assignmentFilter(courseID string, assignmentID int) bson.D {
	return bson.D{
		{Key: "course_id", Value: courseID},
		{Key: "assignment_id", Value: assignmentID},
	}
}

func teamFilter(courseID, teamID string) bson.D {
	return bson.D{
		{Key: "course_id", Value: courseID},
		{Key: "team_id", Value: teamID},
	}
}

// submissionEqualityFilter matches the entire candidate document
// field-for-field. It deliberately includes every field the ledger writes,
// so two submissions differing in any single one are distinct documents.
func submissionEqualityFilter(sub domain.Submission) bson.D {
	filter := bson.D{
		{Key: "course_id", Value: sub.CourseID},
		{Key: "assignment_id", Value: sub.AssignmentID},
		{Key: "team_name", Value: sub.TeamName},
		{Key: "submission_name", Value: sub.SubmissionName},
		{Key: "grade", Value: sub.Grade},
		{Key: "members", Value: sub.Members},
		{Key: "path", Value: sub.Path},
		{Key: "type", Value: sub.Type},
	}
	if sub.RevieweeTeamID != "" {
		filter = append(filter, bson.E{Key: "reviewee_team_id", Value: sub.RevieweeTeamID})
	}
	return filter
}

// addressedToFilter selects the peer-review submissions that reviewed a
// team. Each domain.AddressesFor variant contributes one $or branch: the
// structured reviewee_team_id field matched exactly, and the unanchored
// to-<team> pattern for legacy documents without the field.
func addressedToFilter(courseID string, assignmentID int, teamID string) bson.D {
	var branches bson.A
	for _, addr := range domain.AddressesFor(teamID) {
		branches = append(branches, addressPredicate(addr))
	}
	return bson.D{
		{Key: "course_id", Value: courseID},
		{Key: "assignment_id", Value: assignmentID},
		{Key: "type", Value: domain.SubmissionTypePeerReview},
		{Key: "$or", Value: branches},
	}
}

func addressPredicate(addr domain.SubmissionAddress) bson.D {
	switch addr.(type) {
	case domain.StructuredAddress:
		return bson.D{{Key: "reviewee_team_id", Value: addr.Reviewee()}}
	default:
		return bson.D{
			{Key: "reviewee_team_id", Value: bson.D{{Key: "$exists", Value: false}}},
			{Key: "submission_name", Value: primitive.Regex{Pattern: domain.ReviewPrefix + regexp.QuoteMeta(addr.Reviewee())}},
		}
	}
}
