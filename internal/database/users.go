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

const userColumns = `id, email, password, display_name, photo_url, bio, role, provider, provider_id,
	enrolled_courses, completed_courses, total_learning_hours,
	notify_email, notify_push, notify_sms, profile_visible, show_progress, show_certificates,
	created_at, updated_at`

func scanUser(row scanner) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &user.DisplayName, &user.PhotoURL, &user.Bio,
		&user.Role, &user.Provider, &user.ProviderID,
		pq.Array(&user.EnrolledCourses), pq.Array(&user.CompletedCourses), &user.TotalLearningHours,
		&user.Notifications.Email, &user.Notifications.Push, &user.Notifications.SMS,
		&user.Privacy.ProfileVisible, &user.Privacy.ShowProgress, &user.Privacy.ShowCertificates,
		&user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}

func (c *client) CreateUser(user model.User) (model.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	if user.Provider == "" {
		user.Provider = model.ProviderPassword
	}
	now := time.Now().UTC()

	query := `INSERT INTO users (id, email, password, display_name, photo_url, role, provider, provider_id,
			notify_email, notify_push, notify_sms, profile_visible, show_progress, show_certificates,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)
		RETURNING ` + userColumns

	created, err := scanUser(c.db.QueryRow(query,
		user.ID, user.Email, user.Password, user.DisplayName, user.PhotoURL, user.Role, user.Provider, user.ProviderID,
		model.DefaultNotifications.Email, model.DefaultNotifications.Push, model.DefaultNotifications.SMS,
		model.DefaultPrivacy.ProfileVisible, model.DefaultPrivacy.ShowProgress, model.DefaultPrivacy.ShowCertificates,
		now,
	))
	if err != nil {
		return model.User{}, fmt.Errorf("executing user insert and returning data: %w", err)
	}

	return created, nil
}

func (c *client) getUser(where string, arg interface{}, what string) (model.User, error) {
	user, err := scanUser(c.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, notFound("user", what)
		}
		return model.User{}, fmt.Errorf("querying for user by %s: %w", what, err)
	}

	return user, nil
}

func (c *client) GetUserByID(id string) (model.User, error) {
	return c.getUser("id = $1", id, "id: "+id)
}

func (c *client) GetUserByEmail(email string) (model.User, error) {
	return c.getUser("LOWER(email) = LOWER($1)", email, "email: "+email)
}

func (c *client) GetUserByProvider(provider model.Provider, providerID string) (model.User, error) {
	user, err := scanUser(c.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE provider = $1 AND provider_id = $2`,
		provider, providerID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, notFound("user", fmt.Sprintf("%s id: %s", provider, providerID))
		}
		return model.User{}, fmt.Errorf("querying for user by provider: %w", err)
	}

	return user, nil
}

func (c *client) ListUsers(search string) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	var args []interface{}
	if search != "" {
		query += ` WHERE display_name ILIKE $1 ESCAPE '\' OR email ILIKE $1 ESCAPE '\'`
		args = append(args, containsPattern(search))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (c *client) UpdateUserRole(id string, role model.Role) error {
	res, err := c.db.Exec(`UPDATE users SET role = $1, updated_at = $2 WHERE id = $3`, role, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating user role: %w", err)
	}

	return checkAffected(res, "user", "id: "+id)
}

func (c *client) UpdateProfile(id, displayName, bio string) (model.User, error) {
	user, err := scanUser(c.db.QueryRow(
		`UPDATE users SET display_name = $1, bio = $2, updated_at = $3 WHERE id = $4 RETURNING `+userColumns,
		displayName, bio, time.Now().UTC(), id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, notFound("user", "id: "+id)
		}
		return model.User{}, fmt.Errorf("updating user profile: %w", err)
	}

	return user, nil
}

func (c *client) UpdateSettings(id string, n model.NotificationSettings, p model.PrivacySettings) (model.User, error) {
	user, err := scanUser(c.db.QueryRow(
		`UPDATE users
		SET notify_email = $1, notify_push = $2, notify_sms = $3,
			profile_visible = $4, show_progress = $5, show_certificates = $6, updated_at = $7
		WHERE id = $8
		RETURNING `+userColumns,
		n.Email, n.Push, n.SMS, p.ProfileVisible, p.ShowProgress, p.ShowCertificates, time.Now().UTC(), id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, notFound("user", "id: "+id)
		}
		return model.User{}, fmt.Errorf("updating user settings: %w", err)
	}

	return user, nil
}

func (c *client) UpdatePassword(id, passwordHash string) error {
	res, err := c.db.Exec(`UPDATE users SET password = $1, updated_at = $2 WHERE id = $3`, passwordHash, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating user password: %w", err)
	}

	return checkAffected(res, "user", "id: "+id)
}

// LinkProvider attaches an OAuth identity to an existing account so later
// provider logins find it.
func (c *client) LinkProvider(id string, provider model.Provider, providerID string) (model.User, error) {
	user, err := scanUser(c.db.QueryRow(
		`UPDATE users SET provider = $1, provider_id = $2, updated_at = $3 WHERE id = $4 RETURNING `+userColumns,
		provider, providerID, time.Now().UTC(), id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, notFound("user", "id: "+id)
		}
		return model.User{}, fmt.Errorf("linking %s identity: %w", provider, err)
	}

	return user, nil
}

// EnrollCourse adds courseID to the user's enrolled courses once.
func (c *client) EnrollCourse(userID, courseID string) error {
	res, err := c.db.Exec(
		`UPDATE users
		SET enrolled_courses = CASE WHEN $1 = ANY(enrolled_courses) THEN enrolled_courses ELSE array_append(enrolled_courses, $1) END,
			updated_at = $2
		WHERE id = $3`,
		courseID, time.Now().UTC(), userID,
	)
	if err != nil {
		return fmt.Errorf("enrolling user in course: %w", err)
	}

	return checkAffected(res, "user", "id: "+userID)
}
