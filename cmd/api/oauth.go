package main

import (
	"net/http"

	"ai-coding-school-go/internal/auth"
	"ai-coding-school-go/internal/model"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

func (s *Server) provider(r *http.Request) (*auth.Provider, bool) {
	p, ok := s.providers[model.Provider(mux.Vars(r)["provider"])]
	return p, ok
}

func (s *Server) oauthLogin(w http.ResponseWriter, r *http.Request) {
	p, ok := s.provider(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown provider", "")
		return
	}

	state, err := s.auth.Tokens().IssueState(p.Name())
	if err != nil {
		log.Errorf("issuing %s state: %v", p.Name(), err)
		writeAuthError(w, err)
		return
	}

	http.Redirect(w, r, p.AuthCodeURL(state), http.StatusFound)
}

func (s *Server) oauthCallback(w http.ResponseWriter, r *http.Request) {
	p, ok := s.provider(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown provider", "")
		return
	}

	query := r.URL.Query()
	if code := query.Get("error"); code != "" {
		err := auth.CallbackError(code)
		log.WithField("provider", p.Name()).Warnf("login aborted: %v", err)
		writeError(w, http.StatusUnauthorized, auth.Message(err), "")
		return
	}
	if err := s.auth.Tokens().VerifyState(query.Get("state"), p.Name()); err != nil {
		writeAuthError(w, err)
		return
	}

	profile, err := p.Exchange(r.Context(), query.Get("code"))
	if err != nil {
		writeAuthError(w, err)
		return
	}

	token, user, err := s.auth.SignInWithProfile(profile)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token, User: user})
}
