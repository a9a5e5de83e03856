package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"littlestar/internal/database"
	"littlestar/internal/models"
	"littlestar/internal/repository"
)

func newTestActivityService(t *testing.T) (*ActivityService, *repository.UserRepository, *repository.ActivityRepository) {
	t.Helper()

	db, err := database.Open("sqlite", database.ConnConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	email, err := NewEmailService(context.Background(), "us-east-1", "", "")
	if err != nil {
		t.Fatalf("Failed to create email service: %v", err)
	}
	return NewActivityService(activityRepo, userRepo, email), userRepo, activityRepo
}

func mustCreateUser(t *testing.T, repo *repository.UserRepository, name, username string, notifications bool, parentEmail string) *models.User {
	t.Helper()
	user, err := repo.CreateUser(&models.User{
		Name:               name,
		Username:           username,
		PasswordHash:       "x",
		Age:                10,
		ParentEmail:        parentEmail,
		EmailNotifications: notifications,
		PreferredLanguage:  models.LanguageEnglish,
	})
	if err != nil {
		t.Fatalf("CreateUser(%s) error = %v", username, err)
	}
	return user
}

func TestLogRejectsUnknownType(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	svc, _, _ := newTestActivityService(t)

	_, err := svc.Log(LogInput{ChildName: "Mya", ActivityType: "Video"})
	if err != ErrUnknownActivityType {
		t.Errorf("Log() error = %v, want ErrUnknownActivityType", err)
	}
}

func TestLogStampsSession(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	svc, _, _ := newTestActivityService(t)

	entry, err := svc.Log(LogInput{
		ChildName:        "Mya",
		ChildAge:         10,
		ActivityType:     "Topic",
		ActivityTitle:    "Body Parts",
		TimeSpentSeconds: 30,
	})
	if err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if entry.ID == 0 {
		t.Error("entry id not assigned")
	}
	if entry.SessionID != models.SessionIDAt(entry.Timestamp) {
		t.Errorf("SessionID = %q, want hour bucket of %v", entry.SessionID, entry.Timestamp)
	}
}

func TestStartOfDayUsesLocalCalendarDay(t *testing.T) {
	zone := time.FixedZone("UTC+7", 7*60*60)

	// Early local morning: the UTC day is still yesterday, but the
	// summary date must name the local day the repository queries.
	ts := time.Date(2025, time.March, 7, 1, 30, 0, 0, zone)
	got := startOfDay(ts)
	want := time.Date(2025, time.March, 7, 0, 0, 0, 0, zone)
	if !got.Equal(want) {
		t.Errorf("startOfDay() = %v, want %v", got, want)
	}
	if got.Day() != ts.Day() {
		t.Errorf("startOfDay() day = %d, want the local day %d", got.Day(), ts.Day())
	}
}

func TestDailySummaryDateMatchesToday(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	svc, userRepo, _ := newTestActivityService(t)

	user := mustCreateUser(t, userRepo, "Mya", "mya_star", true, "parent@gmail.com")
	if _, err := svc.Log(LogInput{ChildName: "Mya", ChildAge: 10, ActivityType: "Topic", TimeSpentSeconds: 60}); err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	summary, err := svc.DailySummaryFor(user)
	if err != nil {
		t.Fatalf("DailySummaryFor() error = %v", err)
	}

	now := time.Now()
	if summary.Date.Year() != now.Year() || summary.Date.Month() != now.Month() || summary.Date.Day() != now.Day() {
		t.Errorf("summary Date = %v, want today's local calendar day", summary.Date)
	}
	if len(summary.Activities) != 1 {
		t.Errorf("summary lists %d activities, want 1", len(summary.Activities))
	}
}

func TestSendDailyLogToParentOutcomes(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	svc, userRepo, _ := newTestActivityService(t)
	ctx := context.Background()

	optedOut := mustCreateUser(t, userRepo, "Ko Ko", "koko_99", false, "parent@gmail.com")
	noActivity := mustCreateUser(t, userRepo, "Su Su", "susu_11", true, "parent2@gmail.com")
	active := mustCreateUser(t, userRepo, "Mya", "mya_star", true, "parent3@gmail.com")

	if _, err := svc.Log(LogInput{ChildName: "Mya", ChildAge: 10, ActivityType: "Topic", TimeSpentSeconds: 60}); err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	if sent, msg := svc.SendDailyLogToParent(ctx, optedOut); sent {
		t.Errorf("opted-out user reported sent (message %q)", msg)
	} else if msg != "Daily reports are not enabled for this account." {
		t.Errorf("message = %q", msg)
	}

	if sent, msg := svc.SendDailyLogToParent(ctx, noActivity); sent {
		t.Errorf("empty-day user reported sent (message %q)", msg)
	} else if msg != "No activities to report today." {
		t.Errorf("message = %q", msg)
	}

	// The disabled email service accepts sends without delivering.
	if sent, msg := svc.SendDailyLogToParent(ctx, active); !sent {
		t.Errorf("active user not sent: %q", msg)
	}
}

func TestSendDailyLogsToAllParents(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	svc, userRepo, _ := newTestActivityService(t)

	mustCreateUser(t, userRepo, "Mya", "mya_star", true, "parent@gmail.com")
	mustCreateUser(t, userRepo, "Su Su", "susu_11", true, "parent2@gmail.com")
	mustCreateUser(t, userRepo, "Ko Ko", "koko_99", false, "parent3@gmail.com")

	if _, err := svc.Log(LogInput{ChildName: "Mya", ChildAge: 10, ActivityType: "Topic", TimeSpentSeconds: 60}); err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	result, err := svc.SendDailyLogsToAllParents(context.Background())
	if err != nil {
		t.Fatalf("SendDailyLogsToAllParents() error = %v", err)
	}

	// Only opted-in users enter the sweep; the one without activity is
	// skipped, never failed.
	if result.Users != 2 {
		t.Errorf("Users = %d, want 2", result.Users)
	}
	if result.Sent != 1 {
		t.Errorf("Sent = %d, want 1", result.Sent)
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
	if result.RunID == "" {
		t.Error("RunID is empty")
	}
}

func TestPruneOldLogs(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	svc, _, activityRepo := newTestActivityService(t)

	old := &models.ActivityLog{
		ChildName:    "Mya",
		ChildAge:     10,
		ActivityType: models.ActivityTopic,
		Timestamp:    time.Now().AddDate(0, 0, -40),
	}
	if _, err := activityRepo.Insert(old); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if _, err := svc.Log(LogInput{ChildName: "Mya", ChildAge: 10, ActivityType: "Topic"}); err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	deleted, err := svc.PruneOldLogs(30)
	if err != nil {
		t.Fatalf("PruneOldLogs() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	remaining, err := activityRepo.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if remaining != 1 {
		t.Errorf("remaining = %d, want 1", remaining)
	}

	if _, err := svc.PruneOldLogs(0); err == nil {
		t.Error("PruneOldLogs(0) should fail")
	}
}
