// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/samhaengsi/auth"
	"github.com/danielhkuo/samhaengsi/middleware"
	"github.com/danielhkuo/samhaengsi/models"
)

type AdminHandler struct {
	authn auth.Authenticator
}

func NewAdminHandler(authn auth.Authenticator) *AdminHandler {
	return &AdminHandler{authn: authn}
}

// Login handles POST /api/admin/login
// It only checks the password; the client sends it again with every admin
// request.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := h.authn.Authenticate(req.Password)
	if errors.Is(err, auth.ErrMissingPassword) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "비밀번호를 입력해주세요.")
		return
	}
	if err != nil {
		slog.Warn("admin login failed", "remote", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	slog.Info("admin login", "remote", middleware.GetClientIP(r))
	w.WriteHeader(http.StatusNoContent)
}
