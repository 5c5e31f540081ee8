package application

import "io"

type AddSubmissionRequest struct {
	CourseID       string
	AssignmentID   int
	ReviewerTeamID string
	Grade          int
	SubmissionName string
	File           io.Reader
}

type SetAssignedTeamsRequest struct {
	CourseID     string
	AssignmentID int
	Pairing      map[string][]string
}

type PairingResponse struct {
	CourseID      string              `json:"course_id"`
	AssignmentID  int                 `json:"assignment_id"`
	AssignedTeams map[string][]string `json:"assigned_teams"`
}

type GradesCreatedResponse struct {
	CourseID     string `json:"course_id"`
	AssignmentID int    `json:"assignment_id"`
	RecordCount  int    `json:"record_count"`
}
