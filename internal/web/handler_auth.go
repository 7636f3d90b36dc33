package web

import (
	"net/http"

	"github.com/vbonduro/officepantry/internal/auth"
	"github.com/vbonduro/officepantry/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := s.svc.Auth.Login(r.Context(), req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

type resetRequest struct {
	Email string `json:"email"`
}

func (s *Server) handlePasswordReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.svc.Auth.RequestPasswordReset(r.Context(), req.Email); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{
		"message": "If an account exists for that address, reset instructions have been sent.",
	})
}

type meResponse struct {
	UserID   int64  `json:"userId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Redirect string `json:"redirect"`
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	c := claimsFrom(r.Context())
	writeJSON(w, http.StatusOK, meResponse{
		UserID:   c.UserID,
		Name:     c.Name,
		Email:    c.Email,
		Role:     string(c.Role),
		Redirect: auth.DashboardPath(c.Role),
	})
}
