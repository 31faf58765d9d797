package handler

import (
	"errors"
	"net/http"

	"labtrack/internal/application/auth"
	"labtrack/internal/delivery/http/cookie"
	domain "labtrack/internal/domain/auth"
	"labtrack/internal/domain/user"
	"labtrack/internal/logging"
)

type AuthHandler struct {
	service auth.Service
	cookies *cookie.Codec
	logger  logging.Logger
}

func NewAuthHandler(service auth.Service, cookies *cookie.Codec, logger logging.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		cookies: cookies,
		logger:  logger,
	}
}

// Signup handles POST /signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := decodeBody(w, r, &req); err != nil {
		SendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	newUser, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrMissingCredentials):
			SendError(w, "Email and password are required", http.StatusBadRequest)
		case errors.Is(err, user.ErrPasswordMismatch):
			SendError(w, "Passwords do not match", http.StatusBadRequest)
		case errors.Is(err, user.ErrPasswordTooLong):
			SendError(w, "Password must be at most 72 bytes", http.StatusBadRequest)
		case errors.Is(err, user.ErrAccountExists):
			SendError(w, "Account already exists", http.StatusBadRequest)
		default:
			SendInternalError(w, r, h.logger, "signup failed", err)
		}
		return
	}

	logging.FromContext(r.Context(), h.logger).Info(r.Context(), "account created", "user_id", newUser.ID)
	SendCreated(w, "Account created successfully", newUser.ToResponse())
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logging.FromContext(ctx, h.logger)

	var req domain.LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		SendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		SendError(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	result, err := h.service.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		SendInternalError(w, r, h.logger, "authentication failed", err)
		return
	}
	if !result.OK() {
		log.Info(ctx, "login rejected", "reason", result.Reason)
		SendError(w, "Invalid email or password", http.StatusBadRequest)
		return
	}

	// drop whatever session id the client arrived with
	if sid, err := h.cookies.Read(r); err == nil {
		if err := h.service.EndSession(ctx, sid); err != nil {
			SendInternalError(w, r, h.logger, "discard previous session", err)
			return
		}
	}

	session, err := h.service.StartSession(ctx, result.User)
	if err != nil {
		SendInternalError(w, r, h.logger, "start session", err)
		return
	}

	if err := h.cookies.Write(w, session.ID, session.ExpiresAt); err != nil {
		SendInternalError(w, r, h.logger, "write session cookie", err)
		return
	}

	log.Info(ctx, "login succeeded", "user_id", result.User.ID)
	SendSuccess(w, "Login successful", result.User.ToResponse())
}

// Logout handles DELETE /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if s := GetSessionFromContext(r.Context()); s != nil {
		if err := h.service.EndSession(r.Context(), s.ID); err != nil {
			SendInternalError(w, r, h.logger, "logout failed", err)
			return
		}
	}

	h.cookies.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
