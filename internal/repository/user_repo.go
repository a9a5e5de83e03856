package repository

import (
	"database/sql"
	"fmt"
	"time"

	"littlestar/internal/database"
	"littlestar/internal/models"
)

// UserRepository handles database operations for registered learners.
// Per-username write serialization is guaranteed by the UNIQUE constraint
// on the username column, so two concurrent registrations with the same
// username cannot both succeed.
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, username, password_hash, age, parent_name, parent_email,
	email_notifications, preferred_language, created_at, updated_at`

// CreateUser inserts a new learner and returns the stored record.
func (r *UserRepository) CreateUser(user *models.User) (*models.User, error) {
	now := time.Now()
	query := `
		INSERT INTO users (name, username, password_hash, age, parent_name, parent_email,
			email_notifications, preferred_language, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		user.Name, user.Username, user.PasswordHash, user.Age,
		user.ParentName, user.ParentEmail, user.EmailNotifications,
		string(user.PreferredLanguage), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	stored := *user
	stored.ID = id
	stored.CreatedAt = now
	stored.UpdatedAt = now
	return &stored, nil
}

// GetUserByUsername retrieves a learner by exact, case-sensitive username.
// Returns (nil, nil) when no such user exists.
func (r *UserRepository) GetUserByUsername(username string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE username = ?"
	return r.scanUser(r.db.QueryRow(query, username))
}

// GetUserByName retrieves a learner by display name, the key activity
// logs carry. Returns (nil, nil) when missing; with duplicate names the
// earliest registration wins.
func (r *UserRepository) GetUserByName(name string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE name = ? ORDER BY id LIMIT 1"
	return r.scanUser(r.db.QueryRow(query, name))
}

// GetUserByID retrieves a learner by id. Returns (nil, nil) when missing.
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ?"
	return r.scanUser(r.db.QueryRow(query, id))
}

// UsernameExists reports whether a learner with this exact username is
// already registered.
func (r *UserRepository) UsernameExists(username string) (bool, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", username).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return count > 0, nil
}

// GetAllUsers returns every registered learner in registration order.
func (r *UserRepository) GetAllUsers() ([]models.User, error) {
	query := "SELECT " + userColumns + " FROM users ORDER BY id"
	return r.queryUsers(query)
}

// GetUsersWithEmailNotifications returns learners opted in to daily
// parent reports with a parent email on file.
func (r *UserRepository) GetUsersWithEmailNotifications() ([]models.User, error) {
	query := "SELECT " + userColumns + ` FROM users
		WHERE email_notifications = ? AND parent_email <> '' ORDER BY id`
	return r.queryUsers(query, true)
}

// UpdateParentPreferences overwrites the parent contact fields and the
// notification flag in place. The learner's identity fields are never
// touched here.
func (r *UserRepository) UpdateParentPreferences(username string, parentName, parentEmail string, emailNotifications bool, language models.Language) error {
	query := `
		UPDATE users
		SET parent_name = ?, parent_email = ?, email_notifications = ?,
			preferred_language = ?, updated_at = ?
		WHERE username = ?
	`
	result, err := r.db.Exec(query, parentName, parentEmail, emailNotifications,
		string(language), time.Now(), username)
	if err != nil {
		return fmt.Errorf("failed to update preferences: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Stats returns the aggregate user counters shown on the admin dashboard.
func (r *UserRepository) Stats() (map[string]int, error) {
	stats := map[string]int{}
	queries := map[string]struct {
		query string
		args  []interface{}
	}{
		"totalUsers":           {"SELECT COUNT(*) FROM users", nil},
		"usersWithEmail":       {"SELECT COUNT(*) FROM users WHERE parent_email <> ''", nil},
		"notificationsEnabled": {"SELECT COUNT(*) FROM users WHERE email_notifications = ?", []interface{}{true}},
		"englishUsers":         {"SELECT COUNT(*) FROM users WHERE preferred_language = ?", []interface{}{string(models.LanguageEnglish)}},
		"burmeseUsers":         {"SELECT COUNT(*) FROM users WHERE preferred_language = ?", []interface{}{string(models.LanguageBurmese)}},
	}

	for name, q := range queries {
		var count int
		if err := r.db.QueryRow(q.query, q.args...).Scan(&count); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", name, err)
		}
		stats[name] = count
	}
	return stats, nil
}

func (r *UserRepository) queryUsers(query string, args ...interface{}) ([]models.User, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		var language string
		err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.PasswordHash, &u.Age,
			&u.ParentName, &u.ParentEmail, &u.EmailNotifications, &language,
			&u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.PreferredLanguage = models.ParseLanguage(language)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var language string
	err := row.Scan(&u.ID, &u.Name, &u.Username, &u.PasswordHash, &u.Age,
		&u.ParentName, &u.ParentEmail, &u.EmailNotifications, &language,
		&u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	u.PreferredLanguage = models.ParseLanguage(language)
	return u, nil
}
