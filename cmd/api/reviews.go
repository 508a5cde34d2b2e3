package main

import (
	"errors"
	"net/http"
	"strconv"

	"ai-coding-school-go/internal/database"
	"ai-coding-school-go/internal/model"
	"ai-coding-school-go/internal/storage"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const (
	reviewFieldsMissing = "모든 필드를 입력해주세요."
	reviewCreated       = "리뷰가 성공적으로 등록되었습니다!"

	multipartMemory = 1 << 20
)

func (s *Server) listReviews(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit", "")
			return
		}
		limit = n
	}

	reviews, err := s.db.ListReviews("", limit)
	if err != nil {
		log.Errorf("listing reviews: %v", err)
		writeError(w, http.StatusInternalServerError, "Could not fetch reviews", "")
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}

func (s *Server) createReview(w http.ResponseWriter, r *http.Request) {
	me := userFrom(r)

	var req CreateReviewRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, reviewFieldsMissing, validationDetails(err))
		return
	}

	review, err := s.db.CreateReview(model.Review{
		UserID:         me.ID,
		CourseName:     req.CourseName,
		InstructorName: req.InstructorName,
		StudentName:    req.StudentName,
		Rating:         req.Rating,
		Content:        req.Content,
	})
	if err != nil {
		log.Errorf("creating review: %v", err)
		writeError(w, http.StatusInternalServerError, "리뷰 등록 중 오류가 발생했습니다.", "")
		return
	}

	writeJSON(w, http.StatusCreated, CreateReviewResponse{Message: reviewCreated, Review: review})
}

func (s *Server) uploadReviewImage(w http.ResponseWriter, r *http.Request) {
	me := userFrom(r)
	id := mux.Vars(r)["id"]

	review, err := s.db.GetReview(id)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Review not found", "")
		return
	}
	if err != nil {
		log.Errorf("loading review %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Could not load review", "")
		return
	}
	if review.UserID != me.ID && !me.IsAdmin() {
		writeError(w, http.StatusForbidden, "Forbidden", "")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxImageSize+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, storage.ErrFileTooLarge.Error(), err.Error())
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Warnf("removing multipart temp files: %v", err)
		}
	}()

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, storage.ErrNoFile.Error(), "")
		return
	}
	defer file.Close()

	uploaded, err := storage.UploadReviewImage(r.Context(), s.store, file, header.Size,
		header.Header.Get("Content-Type"), review.UserID, review.ID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, storage.ErrNoFile) || errors.Is(err, storage.ErrFileTooLarge) ||
			errors.Is(err, storage.ErrUnsupportedType) || errors.Is(err, storage.ErrInvalidImage) {
			status = http.StatusBadRequest
		} else {
			log.Errorf("uploading image for review %s: %v", id, err)
		}
		writeError(w, status, err.Error(), "")
		return
	}

	review.Images = append(review.Images, uploaded.URL)
	review.ImagePaths = append(review.ImagePaths, uploaded.Path)
	if err := s.db.UpdateReviewImages(review.ID, review.Images, review.ImagePaths); err != nil {
		log.Errorf("attaching image to review %s: %v", id, err)
		if derr := s.store.Delete(r.Context(), uploaded.Path); derr != nil {
			log.Errorf("removing orphaned image %s: %v", uploaded.Path, derr)
		}
		writeError(w, http.StatusInternalServerError, "이미지 업로드 중 오류가 발생했습니다.", "")
		return
	}

	writeJSON(w, http.StatusCreated, uploaded)
}
