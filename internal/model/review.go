package model

import "time"

type Review struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id,omitempty"`
	CourseName     string    `json:"course_name"`
	InstructorName string    `json:"instructor_name"`
	StudentName    string    `json:"student_name"`
	Rating         int       `json:"rating"`
	Content        string    `json:"content"`
	Images         []string  `json:"images"`
	ImagePaths     []string  `json:"image_paths"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// RemoveImage drops the image at index from both index-aligned slices and
// returns the storage path that was removed.
func (r *Review) RemoveImage(index int) (string, bool) {
	if index < 0 || index >= len(r.Images) {
		return "", false
	}

	var path string
	if index < len(r.ImagePaths) {
		path = r.ImagePaths[index]
		r.ImagePaths = append(r.ImagePaths[:index:index], r.ImagePaths[index+1:]...)
	}
	r.Images = append(r.Images[:index:index], r.Images[index+1:]...)

	return path, true
}
