package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"littlestar/internal/content"
	"littlestar/internal/models"
	"littlestar/internal/nlp"
	"littlestar/internal/service"
	"littlestar/internal/validation"
)

const ageRangeMessage = "Age must be between 8 and 15 years old."

// ChatHandler serves the learner-facing API: registration, the content
// catalog and the free-text ask endpoint.
type ChatHandler struct {
	contentService *content.Service
	router         *nlp.Router
	registration   *service.RegistrationService
}

// NewChatHandler creates a chat handler.
func NewChatHandler(contentService *content.Service, router *nlp.Router, registration *service.RegistrationService) *ChatHandler {
	return &ChatHandler{
		contentService: contentService,
		router:         router,
		registration:   registration,
	}
}

type registerRequest struct {
	Name               string `json:"name"`
	Username           string `json:"username"`
	Password           string `json:"password"`
	Age                int    `json:"age"`
	ParentName         string `json:"parentName"`
	ParentEmail        string `json:"parentEmail"`
	EmailNotifications bool   `json:"emailNotificationsEnabled"`
	PreferredLanguage  string `json:"preferredLanguage"`
}

// Register handles POST /api/chat/register.
func (h *ChatHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.", err)
		return
	}

	result, err := h.registration.Register(service.RegistrationInput{
		Name:               req.Name,
		Username:           req.Username,
		Password:           req.Password,
		Age:                req.Age,
		ParentName:         req.ParentName,
		ParentEmail:        req.ParentEmail,
		EmailNotifications: req.EmailNotifications,
		PreferredLanguage:  req.PreferredLanguage,
	})
	if err != nil {
		var dup *service.DuplicateUsernameError
		if errors.As(err, &dup) {
			respondJSON(w, http.StatusBadRequest, map[string]string{
				"error":      dup.Error(),
				"suggestion": dup.Suggestion,
			})
			return
		}
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			respondError(w, http.StatusBadRequest, vErr.Message, nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Registration failed. Please try again.", err)
		return
	}

	body := map[string]string{
		"message": fmt.Sprintf("Welcome %s! You can now start learning about safe and healthy topics.", result.User.Name),
	}
	if result.Recommendation != "" {
		body["recommendation"] = result.Recommendation
	}
	respondJSON(w, http.StatusOK, body)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/chat/login.
func (h *ChatHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.", err)
		return
	}

	user, err := h.registration.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Invalid username or password.", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Login failed. Please try again.", err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// GetTopics handles GET /api/chat/topics/{age}.
func (h *ChatHandler) GetTopics(w http.ResponseWriter, r *http.Request) {
	age, ok := parseAge(w, r.PathValue("age"))
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, h.contentService.TopicsForAge(age))
}

// GetQuestions handles GET /api/chat/questions/{topicId}/{age}.
// An unknown topic id yields an empty list, not an error.
func (h *ChatHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	topicID, err := strconv.Atoi(r.PathValue("topicId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid topic id.", nil)
		return
	}
	age, ok := parseAge(w, r.PathValue("age"))
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, h.contentService.QuestionsForTopic(topicID, age))
}

// GetAnswer handles GET /api/chat/answer/{questionId}.
func (h *ChatHandler) GetAnswer(w http.ResponseWriter, r *http.Request) {
	questionID, err := strconv.Atoi(r.PathValue("questionId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid question id.", nil)
		return
	}

	question := h.contentService.QuestionByID(questionID)
	if question == nil {
		respondError(w, http.StatusNotFound, "Question not found.", nil)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"question": question.QuestionText,
		"answer":   question.Answer,
	})
}

type askRequest struct {
	Question string `json:"question"`
	Age      int    `json:"age"`
	Language string `json:"language"`
}

// Ask handles POST /api/chat/ask, routing free text through the keyword
// router.
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.", err)
		return
	}
	if req.Age < validation.MinAge || req.Age > validation.MaxAge {
		respondError(w, http.StatusBadRequest, ageRangeMessage, nil)
		return
	}

	response := h.router.Route(req.Question, req.Age, models.ParseLanguage(req.Language))
	respondJSON(w, http.StatusOK, map[string]string{"response": response})
}

// GetBlogs handles GET /api/chat/blogs.
func (h *ChatHandler) GetBlogs(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.contentService.Blogs())
}

type preferencesRequest struct {
	ParentName         string `json:"parentName"`
	ParentEmail        string `json:"parentEmail"`
	EmailNotifications bool   `json:"emailNotificationsEnabled"`
	PreferredLanguage  string `json:"preferredLanguage"`
}

// UpdatePreferences handles PUT /api/chat/users/{username}/preferences.
func (h *ChatHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	var req preferencesRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.", err)
		return
	}

	err := h.registration.UpdateParentPreferences(username, req.ParentName,
		req.ParentEmail, req.EmailNotifications, req.PreferredLanguage)
	if err != nil {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			respondError(w, http.StatusBadRequest, vErr.Message, nil)
			return
		}
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "User not found.", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not update preferences.", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Preferences updated."})
}

// parseAge parses and bounds-checks an age path segment, writing the
// fixed range message on failure.
func parseAge(w http.ResponseWriter, raw string) (int, bool) {
	age, err := strconv.Atoi(raw)
	if err != nil || age < validation.MinAge || age > validation.MaxAge {
		respondError(w, http.StatusBadRequest, ageRangeMessage, nil)
		return 0, false
	}
	return age, true
}
