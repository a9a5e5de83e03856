package service

import (
	"errors"
	"fmt"

	"littlestar/internal/credentials"
	"littlestar/internal/models"
	"littlestar/internal/repository"
	"littlestar/internal/security"
	"littlestar/internal/validation"
)

var ErrInvalidCredentials = errors.New("Invalid username or password.")

// DuplicateUsernameError is returned when the requested username is
// already registered. Suggestion carries a generated free alternative.
type DuplicateUsernameError struct {
	Username   string
	Suggestion string
}

func (e *DuplicateUsernameError) Error() string {
	return fmt.Sprintf("Username '%s' is already taken. Please choose a different username.", e.Username)
}

// RegistrationInput is the raw registration form.
type RegistrationInput struct {
	Name               string
	Username           string
	Password           string
	Age                int
	ParentName         string
	ParentEmail        string
	EmailNotifications bool
	PreferredLanguage  string
}

// RegistrationResult is a successful registration plus any non-blocking
// advice for the caller.
type RegistrationResult struct {
	User *models.User
	// Recommendation is set when the parent email is valid but not a
	// Gmail address; registration proceeds regardless.
	Recommendation string
}

// RegistrationService validates registration input and creates learner
// accounts. Validation runs in a fixed order and the first failure wins;
// nothing is written before every rule has passed.
type RegistrationService struct {
	userRepo *repository.UserRepository
}

// NewRegistrationService creates a registration service.
func NewRegistrationService(userRepo *repository.UserRepository) *RegistrationService {
	return &RegistrationService{userRepo: userRepo}
}

// Register validates the input and stores a new learner. Validation
// failures come back as *validation.Error or *DuplicateUsernameError,
// both carrying user-facing messages.
func (s *RegistrationService) Register(input RegistrationInput) (*RegistrationResult, error) {
	if err := validation.ValidateName(input.Name); err != nil {
		return nil, err
	}
	if err := validation.ValidateUsername(input.Username); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	taken, err := s.userRepo.UsernameExists(input.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}
	if taken {
		suggestion, _ := credentials.SuggestUsername()
		return nil, &DuplicateUsernameError{Username: input.Username, Suggestion: suggestion}
	}

	if err := validation.ValidateAge(input.Age); err != nil {
		return nil, err
	}

	var recommendation string
	if input.ParentEmail != "" {
		if err := validation.ValidateEmail(input.ParentEmail); err != nil {
			return nil, err
		}
		if !validation.IsGmailAddress(input.ParentEmail) {
			recommendation = validation.GmailRecommendation(input.ParentEmail)
		}
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.CreateUser(&models.User{
		Name:               input.Name,
		Username:           input.Username,
		PasswordHash:       passwordHash,
		Age:                input.Age,
		ParentName:         input.ParentName,
		ParentEmail:        input.ParentEmail,
		EmailNotifications: input.EmailNotifications,
		PreferredLanguage:  models.ParseLanguage(input.PreferredLanguage),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &RegistrationResult{User: user, Recommendation: recommendation}, nil
}

// Login checks a learner's credentials and returns the account.
func (s *RegistrationService) Login(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !security.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// UpdateParentPreferences overwrites a learner's parent contact fields
// and notification settings. The parent email, when provided, must be
// syntactically valid.
func (s *RegistrationService) UpdateParentPreferences(username, parentName, parentEmail string, emailNotifications bool, language string) error {
	if parentEmail != "" {
		if err := validation.ValidateEmail(parentEmail); err != nil {
			return err
		}
	}
	return s.userRepo.UpdateParentPreferences(username, parentName, parentEmail,
		emailNotifications, models.ParseLanguage(language))
}
