package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/ronin-designs/studiokeeper/internal/common"
	"github.com/ronin-designs/studiokeeper/internal/server/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Member  models.SafeMember `json:"member"`
	Token   string            `json:"token"`
	IsAdmin bool              `json:"isAdmin"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ErrValidation)
		return
	}

	res, err := s.auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Member:  res.Member,
		Token:   res.Token,
		IsAdmin: res.IsAdmin,
	})
}
