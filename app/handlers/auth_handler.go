package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/unrolled/render"

	"github.com/mobstermerch/storefront/app/helpers"
	"github.com/mobstermerch/storefront/app/services"
	"github.com/mobstermerch/storefront/app/utils/sessions"
)

type AuthHandler struct {
	authService *services.AuthService
	session     sessions.SessionStore
	rnd         *render.Render
}

func NewAuthHandler(authService *services.AuthService, session sessions.SessionStore, rnd *render.Render) *AuthHandler {
	return &AuthHandler{authService: authService, session: session, rnd: rnd}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,min=7,max=20"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		WriteValidationError(h.rnd, w, err)
		return
	}

	user, err := h.authService.Register(r.Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		WriteServiceError(h.rnd, w, err)
		return
	}

	log.Printf("INFO: AuthHandler: registered user %s (%s)", user.ID, user.Email)
	h.rnd.JSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         any    `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		WriteValidationError(h.rnd, w, err)
		return
	}

	user, access, refresh, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteServiceError(h.rnd, w, err)
		return
	}

	// Browser clients get a cookie session alongside the token pair.
	if err := h.session.SetUserID(w, r, user.ID); err != nil {
		log.Printf("WARNING: AuthHandler: failed to set session for %s: %v", user.ID, err)
	}

	h.rnd.JSON(w, http.StatusOK, loginResponse{AccessToken: access, RefreshToken: refresh, User: user})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		WriteValidationError(h.rnd, w, err)
		return
	}

	access, refresh, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.rnd.JSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid refresh token"})
		return
	}

	h.rnd.JSON(w, http.StatusOK, map[string]string{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.RefreshToken != "" {
		if err := h.authService.Logout(r.Context(), req.RefreshToken); err != nil {
			log.Printf("WARNING: AuthHandler: logout revoke failed: %v", err)
		}
	}
	if err := h.session.ClearSession(w, r); err != nil {
		log.Printf("WARNING: AuthHandler: failed to clear session: %v", err)
	}

	h.rnd.JSON(w, http.StatusOK, messageResponse{Message: "logged out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.GetProfile(r.Context(), UserIDFromContext(r))
	if err != nil {
		WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Phone        string `json:"phone" validate:"omitempty,min=7,max=20"`
	ProfileImage string `json:"profile_image" validate:"omitempty,url"`
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		WriteValidationError(h.rnd, w, err)
		return
	}

	user, err := h.authService.UpdateProfile(r.Context(), UserIDFromContext(r), req.Name, req.Phone, req.ProfileImage)
	if err != nil {
		WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, user)
}
