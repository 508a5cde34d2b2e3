package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"ai-coding-school-go/internal/auth"
	"ai-coding-school-go/internal/database"
	"ai-coding-school-go/internal/model"
	log "github.com/sirupsen/logrus"
)

type ctxKey int

const userKey ctxKey = iota

// userFrom returns the account loaded by authenticate. Role and email come
// from the store, not from the token.
func userFrom(r *http.Request) model.User {
	user, _ := r.Context().Value(userKey).(model.User)
	return user
}

func (s *Server) authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenHeader := r.Header.Get("Authorization")
		if tokenHeader == "" {
			writeError(w, http.StatusUnauthorized, "Missing token", "")
			return
		}

		splitToken := strings.Split(tokenHeader, "Bearer ")
		if len(splitToken) != 2 {
			writeError(w, http.StatusUnauthorized, "Invalid token", "")
			return
		}
		requestToken := splitToken[1]

		claims, err := s.auth.Tokens().Parse(requestToken)
		if err != nil {
			writeError(w, http.StatusUnauthorized, auth.Message(err), "")
			return
		}

		user, err := s.db.GetUserByID(claims.UserID)
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, auth.Message(auth.ErrInvalidToken), "")
			return
		}
		if err != nil {
			log.Errorf("loading user %s: %v", claims.UserID, err)
			writeError(w, http.StatusInternalServerError, serverError, "")
			return
		}
		if !s.auth.Tokens().Current(claims, user) {
			writeError(w, http.StatusUnauthorized, auth.Message(auth.ErrInvalidToken), "")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	}
}

func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !userFrom(r).IsAdmin() {
			writeError(w, http.StatusForbidden, "관리자 권한이 필요합니다.", "")
			return
		}

		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}
