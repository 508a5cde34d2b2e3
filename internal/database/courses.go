package database

import (
	"database/sql"
	"errors"
	"fmt"

	"ai-coding-school-go/internal/model"
	"github.com/lib/pq"
)

const courseColumns = `id, title, description, level, duration, price, image, tags, instructor, rating, students`

func scanCourse(row scanner) (model.Course, error) {
	var course model.Course
	err := row.Scan(&course.ID, &course.Title, &course.Description, &course.Level, &course.Duration,
		&course.Price, &course.Image, pq.Array(&course.Tags), &course.Instructor, &course.Rating, &course.Students)
	return course, err
}

func (c *client) GetCourses() ([]model.Course, error) {
	rows, err := c.db.Query(`SELECT ` + courseColumns + ` FROM courses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying courses: %w", err)
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning course: %w", err)
		}
		courses = append(courses, course)
	}

	return courses, rows.Err()
}

func (c *client) GetCourseByID(id string) (model.Course, error) {
	course, err := scanCourse(c.db.QueryRow(`SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Course{}, notFound("course", "id: "+id)
		}
		return model.Course{}, fmt.Errorf("querying for course by id: %w", err)
	}

	return course, nil
}

func (c *client) GetCurriculum(courseID string) ([]model.Lesson, error) {
	rows, err := c.db.Query(
		`SELECT id, course_id, week, title, duration FROM lessons WHERE course_id = $1 ORDER BY week`,
		courseID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying curriculum: %w", err)
	}
	defer rows.Close()

	lessons := []model.Lesson{}
	for rows.Next() {
		var lesson model.Lesson
		if err := rows.Scan(&lesson.ID, &lesson.CourseID, &lesson.Week, &lesson.Title, &lesson.Duration); err != nil {
			return nil, fmt.Errorf("scanning lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	return lessons, rows.Err()
}
