package http

import (
	"log/slog"
	"net/http"

	"github.com/courseworks/peer-review-service/internal/application"
	"github.com/courseworks/peer-review-service/internal/ports"
	"github.com/go-chi/chi/v5"
)

const (
	roleProfessor = "professor"
	roleAdmin     = "admin"
)

type Handler struct {
	service  *application.Service
	verifier ports.TokenVerifier
}

func NewHandler(service *application.Service, verifier ports.TokenVerifier) *Handler {
	return &Handler{service: service, verifier: verifier}
}

func NewRouter(handler *Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { writeSuccess(w, http.StatusOK, "ok", nil) })
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) { writeSuccess(w, http.StatusOK, "ready", nil) })

	r.Route("/v1", func(r chi.Router) {
		r.Use(handler.authMiddleware)
		r.Route("/courses/{courseID}", func(r chi.Router) {
			r.Get("/teams", handler.listTeams)
			r.Route("/assignments/{assignmentID}/peer-review", func(r chi.Router) {
				r.Post("/submissions/{teamID}", handler.addSubmission)
				r.Group(func(r chi.Router) {
					r.Use(requireRole(roleProfessor, roleAdmin))
					r.Put("/teams", handler.setAssignedTeams)
					r.Post("/grades", handler.makeGrades)
				})
			})
		})
	})
	return r
}
