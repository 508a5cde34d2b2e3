package main

import (
	"errors"
	"net/http"

	"ai-coding-school-go/internal/auth"
	"ai-coding-school-go/internal/database"
	log "github.com/sirupsen/logrus"
)

// authStatus picks the HTTP status for an error returned by auth.Service.
func authStatus(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidEmail), errors.Is(err, auth.ErrWeakPassword):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrEmailAlreadyInUse), errors.Is(err, auth.ErrAccountExists):
		return http.StatusConflict
	case errors.Is(err, auth.ErrTooManyRequests):
		return http.StatusTooManyRequests
	case errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, auth.ErrWrongPassword),
		errors.Is(err, auth.ErrInvalidCredential),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrPopupClosed):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeAuthError(w http.ResponseWriter, err error) {
	status := authStatus(err)
	if status == http.StatusInternalServerError {
		log.Errorf("auth: %v", err)
	}
	writeError(w, status, auth.Message(err), "")
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", validationDetails(err))
		return
	}

	user, err := s.auth.SignUp(req.Email, req.Password, req.DisplayName)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	if err := s.notifier.SendRegistrationEmail(user.Email, user.DisplayName); err != nil {
		log.Errorf("sending registration email to %s: %v", user.Email, err)
	}

	writeJSON(w, http.StatusCreated, CreateUserResponse{ID: user.ID})
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", validationDetails(err))
		return
	}

	token, user, err := s.auth.SignIn(req.Email, req.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token, User: user})
}

func (s *Server) getMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userFrom(r))
}

func (s *Server) updateMe(w http.ResponseWriter, r *http.Request) {
	me := userFrom(r)

	var req UpdateProfileRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", validationDetails(err))
		return
	}

	user, err := s.db.UpdateProfile(me.ID, req.DisplayName, req.Bio)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User not found", "")
		return
	}
	if err != nil {
		log.Errorf("updating profile of %s: %v", me.ID, err)
		writeError(w, http.StatusInternalServerError, "Could not update profile", "")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) updateSettings(w http.ResponseWriter, r *http.Request) {
	me := userFrom(r)

	var req UpdateSettingsRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", validationDetails(err))
		return
	}

	user, err := s.db.UpdateSettings(me.ID, req.Notifications, req.Privacy)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User not found", "")
		return
	}
	if err != nil {
		log.Errorf("updating settings of %s: %v", me.ID, err)
		writeError(w, http.StatusInternalServerError, "Could not update settings", "")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", validationDetails(err))
		return
	}

	user, token, err := s.auth.ForgotPassword(req.Email)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	resetURL := s.publicURL + "/reset-password?token=" + token
	if err := s.notifier.SendPasswordResetEmail(user.Email, resetURL); err != nil {
		log.Errorf("sending password reset email to %s: %v", user.Email, err)
		writeError(w, http.StatusInternalServerError, "비밀번호 재설정 이메일을 보내지 못했습니다.", "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", validationDetails(err))
		return
	}

	if err := s.auth.ResetPassword(req.Token, req.Password); err != nil {
		writeAuthError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
