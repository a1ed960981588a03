package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/ronin-designs/studiokeeper/internal/common"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ErrValidation)
		return
	}
	if req.Subject == "" {
		req.Subject = "No subject"
	}

	msg, err := s.messages.Create(r.Context(), req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := s.messages.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

type setReadRequest struct {
	ID   string `json:"id"`
	Read bool   `json:"read"`
}

func (s *Server) handleSetMessageRead(w http.ResponseWriter, r *http.Request) {
	var req setReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ErrValidation)
		return
	}
	if req.ID == "" {
		writeError(w, common.ErrValidation)
		return
	}

	msg, err := s.messages.SetRead(r.Context(), req.ID, req.Read)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}
