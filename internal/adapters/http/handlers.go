package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/courseworks/peer-review-service/internal/application"
	"github.com/go-chi/chi/v5"
)

const maxSubmissionBytes = 32 << 20

func (h *Handler) listTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.service.ListTeams(r.Context(), chi.URLParam(r, "courseID"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", teams)
}

func (h *Handler) setAssignedTeams(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := assignmentIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "assignment id must be an integer", requestIDFromContext(r.Context()))
		return
	}
	var pairing map[string][]string
	if err := json.NewDecoder(r.Body).Decode(&pairing); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid json body", requestIDFromContext(r.Context()))
		return
	}
	resp, err := h.service.SetAssignedTeams(r.Context(), application.SetAssignedTeamsRequest{
		CourseID:     chi.URLParam(r, "courseID"),
		AssignmentID: assignmentID,
		Pairing:      pairing,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "assigned teams stored", resp)
}

// addSubmission accepts a multipart form with the review document under
// "file" and the awarded grade under "grade". The uploaded file's name is
// the submission name and carries the to-<team> address.
func (h *Handler) addSubmission(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := assignmentIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "assignment id must be an integer", requestIDFromContext(r.Context()))
		return
	}
	if err := r.ParseMultipartForm(maxSubmissionBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid multipart form", requestIDFromContext(r.Context()))
		return
	}
	grade, err := strconv.Atoi(r.FormValue("grade"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "grade must be an integer", requestIDFromContext(r.Context()))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "file part is required", requestIDFromContext(r.Context()))
		return
	}
	defer file.Close()

	err = h.service.AddSubmission(r.Context(), application.AddSubmissionRequest{
		CourseID:       chi.URLParam(r, "courseID"),
		AssignmentID:   assignmentID,
		ReviewerTeamID: chi.URLParam(r, "teamID"),
		Grade:          grade,
		SubmissionName: header.Filename,
		File:           file,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "submission recorded", nil)
}

func (h *Handler) makeGrades(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := assignmentIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "assignment id must be an integer", requestIDFromContext(r.Context()))
		return
	}
	resp, err := h.service.MakeGrades(r.Context(), chi.URLParam(r, "courseID"), assignmentID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "grades created", resp)
}

func assignmentIDParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "assignmentID"))
}
