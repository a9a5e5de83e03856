package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"littlestar/internal/models"
	"littlestar/internal/repository"
)

var ErrUnknownActivityType = errors.New("activity type must be Topic, Question or Blog")

// ActivityService records learner activity and turns it into daily
// summaries and parent emails.
type ActivityService struct {
	activityRepo *repository.ActivityRepository
	userRepo     *repository.UserRepository
	email        *EmailService
}

// NewActivityService creates an activity service.
func NewActivityService(activityRepo *repository.ActivityRepository, userRepo *repository.UserRepository, email *EmailService) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		userRepo:     userRepo,
		email:        email,
	}
}

// LogInput is a single viewed topic/question/blog to record.
type LogInput struct {
	ChildName           string
	ChildAge            int
	ActivityType        string
	ActivityID          string
	ActivityTitle       string
	ActivityDescription string
	TimeSpentSeconds    int
	Language            string
}

// Log appends an activity entry stamped with the current time and the
// hour-bucketed session id.
func (s *ActivityService) Log(input LogInput) (*models.ActivityLog, error) {
	if !models.ValidActivityType(input.ActivityType) {
		return nil, ErrUnknownActivityType
	}

	now := time.Now()
	entry := &models.ActivityLog{
		ChildName:           input.ChildName,
		ChildAge:            input.ChildAge,
		ActivityType:        models.ActivityType(input.ActivityType),
		ActivityID:          input.ActivityID,
		ActivityTitle:       input.ActivityTitle,
		ActivityDescription: input.ActivityDescription,
		Timestamp:           now,
		TimeSpentSeconds:    input.TimeSpentSeconds,
		Language:            input.Language,
		SessionID:           models.SessionIDAt(now),
	}
	return s.activityRepo.Insert(entry)
}

// TodayActivities returns a child's entries for the current calendar
// day. Matching is by child name.
func (s *ActivityService) TodayActivities(childName string) ([]models.ActivityLog, error) {
	return s.activityRepo.GetForDate(childName, time.Now())
}

// DailySummaryFor builds today's summary for a registered learner.
func (s *ActivityService) DailySummaryFor(user *models.User) (models.DailySummary, error) {
	activities, err := s.TodayActivities(user.Name)
	if err != nil {
		return models.DailySummary{}, err
	}
	return models.BuildDailySummary(user, startOfDay(time.Now()), activities), nil
}

// startOfDay returns midnight of t's calendar day in t's location, the
// same day bounds the activity repository queries with.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SendDailyLogToParent emails today's summary to the user's parent. The
// outcome is a (sent, message) pair: opting out, a missing parent email,
// an empty day and delivery failures all come back as sent=false with a
// human-readable reason. Delivery is attempted once; retries are the
// mail provider's concern, not ours.
func (s *ActivityService) SendDailyLogToParent(ctx context.Context, user *models.User) (bool, string) {
	if !user.WantsDailyReport() {
		return false, "Daily reports are not enabled for this account."
	}

	activities, err := s.TodayActivities(user.Name)
	if err != nil {
		log.Printf("Failed to load today's activities for %s: %v", user.Name, err)
		return false, "Could not load today's activities."
	}
	if len(activities) == 0 {
		return false, "No activities to report today."
	}

	summary := models.BuildDailySummary(user, startOfDay(time.Now()), activities)

	if err := s.email.SendDailyReport(ctx, summary); err != nil {
		log.Printf("Daily report delivery failed for %s: %v", user.Username, err)
		return false, "Daily report could not be delivered."
	}
	return true, fmt.Sprintf("Daily log sent successfully to %s!", user.ParentEmail)
}

// SweepResult summarizes one daily report sweep.
type SweepResult struct {
	RunID   string `json:"runId"`
	Users   int    `json:"users"`
	Sent    int    `json:"sent"`
	Skipped int    `json:"skipped"`
}

// SendDailyLogsToAllParents runs the daily sweep over every opted-in
// user. Users are processed concurrently and independently; one user's
// failure never blocks or fails the others, so the group members always
// return nil and outcomes are counted instead.
func (s *ActivityService) SendDailyLogsToAllParents(ctx context.Context) (SweepResult, error) {
	users, err := s.userRepo.GetUsersWithEmailNotifications()
	if err != nil {
		return SweepResult{}, fmt.Errorf("failed to load opted-in users: %w", err)
	}

	result := SweepResult{
		RunID: uuid.New().String(),
		Users: len(users),
	}
	log.Printf("Daily report sweep starting: run=%s users=%d", result.RunID, len(users))

	sent := make([]bool, len(users))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i := range users {
		g.Go(func() error {
			ok, msg := s.SendDailyLogToParent(gctx, &users[i])
			sent[i] = ok
			if !ok {
				log.Printf("Daily report skipped: run=%s user=%s reason=%q", result.RunID, users[i].Username, msg)
			}
			return nil
		})
	}
	// Members never return errors; Wait is only a join point.
	_ = g.Wait()

	for _, ok := range sent {
		if ok {
			result.Sent++
		} else {
			result.Skipped++
		}
	}
	log.Printf("Daily report sweep finished: run=%s sent=%d skipped=%d", result.RunID, result.Sent, result.Skipped)
	return result, nil
}

// PruneOldLogs deletes activity entries older than daysToKeep days.
func (s *ActivityService) PruneOldLogs(daysToKeep int) (int64, error) {
	if daysToKeep <= 0 {
		return 0, fmt.Errorf("daysToKeep must be positive, got %d", daysToKeep)
	}
	cutoff := time.Now().AddDate(0, 0, -daysToKeep)
	return s.activityRepo.DeleteOlderThan(cutoff)
}
