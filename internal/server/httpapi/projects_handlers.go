package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ronin-designs/studiokeeper/internal/common"
)

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.projects.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

type createProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Image       string `json:"image"`
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ErrValidation)
		return
	}

	project, err := s.projects.Create(r.Context(), req.Title, req.Description, req.Category, req.Image)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, common.ErrValidation)
		return
	}

	if err := s.projects.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	if admin, ok := memberFromContext(r.Context()); ok {
		s.logger.Info(r.Context(), "project deleted by admin", "project_id", id, "admin_email", admin.Email)
	}
	w.WriteHeader(http.StatusNoContent)
}
