package repository

import (
	"fmt"
	"time"

	"littlestar/internal/database"
	"littlestar/internal/models"
)

// ActivityRepository handles database operations for the append-only
// activity log. Entries are inserted and pruned by age cutoff, never
// updated.
type ActivityRepository struct {
	db *database.DB
}

// NewActivityRepository creates a new activity repository.
func NewActivityRepository(db *database.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

const activityColumns = `id, child_name, child_age, activity_type, activity_id,
	activity_title, activity_description, timestamp, time_spent_seconds, language, session_id`

// Insert appends an activity entry and returns it with its assigned id.
func (r *ActivityRepository) Insert(entry *models.ActivityLog) (*models.ActivityLog, error) {
	query := `
		INSERT INTO activity_logs (child_name, child_age, activity_type, activity_id,
			activity_title, activity_description, timestamp, time_spent_seconds, language, session_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		entry.ChildName, entry.ChildAge, string(entry.ActivityType), entry.ActivityID,
		entry.ActivityTitle, entry.ActivityDescription, entry.Timestamp,
		entry.TimeSpentSeconds, entry.Language, entry.SessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert activity: %w", err)
	}

	stored := *entry
	stored.ID = id
	return &stored, nil
}

// GetForDate returns a child's entries for one calendar day in insertion
// order. Matching is by child name; two learners sharing a name share a
// log history.
func (r *ActivityRepository) GetForDate(childName string, date time.Time) ([]models.ActivityLog, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := "SELECT " + activityColumns + ` FROM activity_logs
		WHERE child_name = ? AND timestamp >= ? AND timestamp < ?
		ORDER BY id`
	rows, err := r.db.Query(query, childName, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	entries := []models.ActivityLog{}
	for rows.Next() {
		var e models.ActivityLog
		var activityType string
		err := rows.Scan(&e.ID, &e.ChildName, &e.ChildAge, &activityType, &e.ActivityID,
			&e.ActivityTitle, &e.ActivityDescription, &e.Timestamp,
			&e.TimeSpentSeconds, &e.Language, &e.SessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		e.ActivityType = models.ActivityType(activityType)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}
	return entries, nil
}

// DeleteOlderThan removes entries with a timestamp before cutoff and
// returns how many were pruned.
func (r *ActivityRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec("DELETE FROM activity_logs WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune activities: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned activities: %w", err)
	}
	return deleted, nil
}

// Count returns the total number of logged activities.
func (r *ActivityRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM activity_logs").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count activities: %w", err)
	}
	return count, nil
}
