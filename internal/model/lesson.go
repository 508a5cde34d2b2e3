package model

// Lesson is one week of a course curriculum.
type Lesson struct {
	ID       int    `json:"id"`
	CourseID string `json:"course_id"`
	Week     int    `json:"week"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
}
