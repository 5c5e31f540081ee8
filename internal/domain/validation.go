package domain

import (
	"fmt"
	"strings"
)

const maxNameLength = 128

// ValidateCourseID rejects empty ids and ids carrying path separators, which
// would escape the computed storage layout.
func ValidateCourseID(courseID string) error {
	return validateIdentifier("course_id", courseID)
}

func ValidateTeamID(teamID string) error {
	return validateIdentifier("team_id", teamID)
}

// ValidateSubmissionName covers the uploaded file name that doubles as the
// submission's identity inside the ledger.
func ValidateSubmissionName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: submission_name is required", ErrInvalidInput)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: submission_name exceeds %d characters", ErrInvalidInput, maxNameLength)
	}
	if strings.ContainsAny(name, "/\\") || name == "." || name == ".." {
		return fmt.Errorf("%w: submission_name must not contain path separators", ErrInvalidInput)
	}
	return nil
}

func ValidateGrade(grade int) error {
	if grade < 0 {
		return fmt.Errorf("%w: grade must not be negative", ErrInvalidInput)
	}
	return nil
}

func validateIdentifier(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	if len(value) > maxNameLength {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidInput, field, maxNameLength)
	}
	if strings.ContainsAny(value, "/\\") {
		return fmt.Errorf("%w: %s must not contain path separators", ErrInvalidInput, field)
	}
	return nil
}
