package main

import (
	"errors"
	"net/http"
	"strconv"

	"ai-coding-school-go/internal/database"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

func (s *Server) adminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.Stats()
	if err != nil {
		log.Errorf("computing stats: %v", err)
		writeError(w, http.StatusInternalServerError, serverError, "")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) adminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.db.ListUsers(r.URL.Query().Get("q"))
	if err != nil {
		log.Errorf("listing users: %v", err)
		writeError(w, http.StatusInternalServerError, serverError, "")
		return
	}

	writeJSON(w, http.StatusOK, users)
}

func (s *Server) adminUpdateRole(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req UpdateRoleRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid role", validationDetails(err))
		return
	}

	err := s.db.UpdateUserRole(id, req.Role)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User not found", "")
		return
	}
	if err != nil {
		log.Errorf("updating role of %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, serverError, "")
		return
	}

	log.WithFields(log.Fields{"user": id, "role": req.Role, "by": userFrom(r).ID}).Info("role changed")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) adminListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.db.ListReviews(r.URL.Query().Get("q"), 0)
	if err != nil {
		log.Errorf("listing reviews: %v", err)
		writeError(w, http.StatusInternalServerError, serverError, "")
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}

// adminDeleteReview removes the stored images before the review itself. A
// failed image delete is logged and does not stop the review from going.
func (s *Server) adminDeleteReview(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	review, err := s.db.GetReview(id)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Review not found", "")
		return
	}
	if err != nil {
		log.Errorf("loading review %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, serverError, "")
		return
	}

	for i, url := range review.Images {
		objectPath := ""
		if i < len(review.ImagePaths) {
			objectPath = review.ImagePaths[i]
		}
		if objectPath == "" {
			objectPath = s.store.PathFromURL(url)
		}
		if objectPath == "" {
			continue
		}
		if err := s.store.Delete(r.Context(), objectPath); err != nil {
			log.Errorf("deleting image %s of review %s: %v", objectPath, id, err)
		}
	}

	if err := s.db.DeleteReview(id); err != nil {
		log.Errorf("deleting review %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, serverError, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) adminDeleteReviewImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid image index", "")
		return
	}

	review, err := s.db.GetReview(id)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Review not found", "")
		return
	}
	if err != nil {
		log.Errorf("loading review %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, serverError, "")
		return
	}

	url := ""
	if index >= 0 && index < len(review.Images) {
		url = review.Images[index]
	}
	objectPath, ok := review.RemoveImage(index)
	if !ok {
		writeError(w, http.StatusNotFound, "Image not found", "")
		return
	}
	if objectPath == "" {
		objectPath = s.store.PathFromURL(url)
	}

	if err := s.db.UpdateReviewImages(review.ID, review.Images, review.ImagePaths); err != nil {
		log.Errorf("detaching image %d from review %s: %v", index, id, err)
		writeError(w, http.StatusInternalServerError, serverError, "")
		return
	}
	if objectPath != "" {
		if err := s.store.Delete(r.Context(), objectPath); err != nil {
			log.Errorf("deleting image %s of review %s: %v", objectPath, id, err)
		}
	}

	writeJSON(w, http.StatusOK, review)
}
