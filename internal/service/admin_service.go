package service

import (
	"errors"

	"littlestar/internal/models"
	"littlestar/internal/repository"
	"littlestar/internal/security"
)

var ErrAdminDisabled = errors.New("admin access is not configured")

// AdminService backs the JWT-protected admin endpoints: credential
// checks, dashboard stats and the user listing.
type AdminService struct {
	userRepo     *repository.UserRepository
	activityRepo *repository.ActivityRepository
	username     string
	passwordHash string
}

// NewAdminService creates an admin service. An empty password hash
// disables admin login entirely.
func NewAdminService(userRepo *repository.UserRepository, activityRepo *repository.ActivityRepository, username, passwordHash string) *AdminService {
	return &AdminService{
		userRepo:     userRepo,
		activityRepo: activityRepo,
		username:     username,
		passwordHash: passwordHash,
	}
}

// Authenticate verifies admin credentials.
func (s *AdminService) Authenticate(username, password string) error {
	if s.passwordHash == "" {
		return ErrAdminDisabled
	}
	if username != s.username || !security.CheckPassword(s.passwordHash, password) {
		return ErrInvalidCredentials
	}
	return nil
}

// Users returns every registered learner.
func (s *AdminService) Users() ([]models.User, error) {
	return s.userRepo.GetAllUsers()
}

// Stats returns the dashboard counters: the user aggregates plus the
// total number of logged activities.
func (s *AdminService) Stats() (map[string]int, error) {
	stats, err := s.userRepo.Stats()
	if err != nil {
		return nil, err
	}
	activities, err := s.activityRepo.Count()
	if err != nil {
		return nil, err
	}
	stats["totalActivities"] = activities
	return stats, nil
}
