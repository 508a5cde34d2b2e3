package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ai-coding-school-go/internal/model"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const reviewColumns = `id, user_id, course_name, instructor_name, student_name, rating, content, images, image_paths, created_at, updated_at`

func scanReview(row scanner) (model.Review, error) {
	var review model.Review
	err := row.Scan(&review.ID, &review.UserID, &review.CourseName, &review.InstructorName, &review.StudentName,
		&review.Rating, &review.Content, pq.Array(&review.Images), pq.Array(&review.ImagePaths),
		&review.CreatedAt, &review.UpdatedAt)
	return review, err
}

func (c *client) CreateReview(review model.Review) (model.Review, error) {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if review.Images == nil {
		review.Images = []string{}
	}
	if review.ImagePaths == nil {
		review.ImagePaths = []string{}
	}
	now := time.Now().UTC()

	created, err := scanReview(c.db.QueryRow(
		`INSERT INTO reviews (id, user_id, course_name, instructor_name, student_name, rating, content, images, image_paths, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING `+reviewColumns,
		review.ID, review.UserID, review.CourseName, review.InstructorName, review.StudentName,
		review.Rating, review.Content, pq.Array(review.Images), pq.Array(review.ImagePaths), now,
	))
	if err != nil {
		return model.Review{}, fmt.Errorf("unable to add review: %w", err)
	}

	return created, nil
}

func (c *client) GetReview(id string) (model.Review, error) {
	review, err := scanReview(c.db.QueryRow(`SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Review{}, notFound("review", "id: "+id)
		}
		return model.Review{}, fmt.Errorf("unable to get review: %w", err)
	}

	return review, nil
}

// ListReviews returns reviews newest first. A zero limit returns all of them.
func (c *client) ListReviews(search string, limit int) ([]model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews`
	var args []interface{}
	if search != "" {
		args = append(args, containsPattern(search))
		query += ` WHERE course_name ILIKE $1 ESCAPE '\' OR student_name ILIKE $1 ESCAPE '\'`
	}
	query += ` ORDER BY created_at DESC`
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying reviews: %w", err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning review: %w", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}

func (c *client) UpdateReviewImages(id string, images, imagePaths []string) error {
	res, err := c.db.Exec(
		`UPDATE reviews SET images = $1, image_paths = $2, updated_at = $3 WHERE id = $4`,
		pq.Array(images), pq.Array(imagePaths), time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("unable to update review images: %w", err)
	}

	return checkAffected(res, "review", "id: "+id)
}

func (c *client) DeleteReview(id string) error {
	res, err := c.db.Exec(`DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("unable to delete review: %w", err)
	}

	return checkAffected(res, "review", "id: "+id)
}
