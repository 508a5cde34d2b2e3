package main

import (
	"errors"
	"net/http"

	"ai-coding-school-go/internal/catalog"
	"ai-coding-school-go/internal/database"
	"ai-coding-school-go/internal/model"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

func (s *Server) listCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.db.GetCourses()
	if err != nil {
		log.Errorf("listing courses: %v", err)
		writeError(w, http.StatusInternalServerError, "Could not fetch courses", "")
		return
	}

	writeJSON(w, http.StatusOK, courses)
}

func (s *Server) getCourse(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	course, err := s.db.GetCourseByID(id)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Course not found", "")
		return
	}
	if err != nil {
		log.Errorf("loading course %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Could not fetch course", "")
		return
	}

	lessons, err := s.db.GetCurriculum(id)
	if err != nil {
		log.Errorf("loading curriculum of %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Could not fetch course", "")
		return
	}

	writeJSON(w, http.StatusOK, model.CourseDetail{Course: course, Curriculum: lessons})
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	courses, err := s.db.GetCourses()
	if err != nil {
		log.Errorf("listing courses: %v", err)
		writeError(w, http.StatusInternalServerError, "Could not fetch courses", "")
		return
	}

	writeJSON(w, http.StatusOK, catalog.Home(courses))
}
