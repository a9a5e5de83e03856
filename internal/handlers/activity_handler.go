package handlers

import (
	"errors"
	"net/http"

	"littlestar/internal/models"
	"littlestar/internal/repository"
	"littlestar/internal/service"
)

// ActivityHandler serves the activity log API: recording viewed content
// and reading back today's entries and summaries.
type ActivityHandler struct {
	activities *service.ActivityService
	userRepo   *repository.UserRepository
}

// NewActivityHandler creates an activity handler.
func NewActivityHandler(activities *service.ActivityService, userRepo *repository.UserRepository) *ActivityHandler {
	return &ActivityHandler{activities: activities, userRepo: userRepo}
}

type logActivityRequest struct {
	ChildName           string `json:"childName"`
	ChildAge            int    `json:"childAge"`
	ActivityType        string `json:"activityType"`
	ActivityID          string `json:"activityId"`
	ActivityTitle       string `json:"activityTitle"`
	ActivityDescription string `json:"activityDescription"`
	TimeSpentSeconds    int    `json:"timeSpentSeconds"`
	Language            string `json:"language"`
}

// LogActivity handles POST /api/activity/log.
func (h *ActivityHandler) LogActivity(w http.ResponseWriter, r *http.Request) {
	var req logActivityRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.", err)
		return
	}
	if req.ChildName == "" {
		respondError(w, http.StatusBadRequest, "Child name is required.", nil)
		return
	}

	entry, err := h.activities.Log(service.LogInput{
		ChildName:           req.ChildName,
		ChildAge:            req.ChildAge,
		ActivityType:        req.ActivityType,
		ActivityID:          req.ActivityID,
		ActivityTitle:       req.ActivityTitle,
		ActivityDescription: req.ActivityDescription,
		TimeSpentSeconds:    req.TimeSpentSeconds,
		Language:            req.Language,
	})
	if err != nil {
		if errors.Is(err, service.ErrUnknownActivityType) {
			respondError(w, http.StatusBadRequest, "Activity type must be Topic, Question or Blog.", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not record activity.", err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

// TodayActivities handles GET /api/activity/today/{childName}. An
// unknown child yields an empty list.
func (h *ActivityHandler) TodayActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activities.TodayActivities(r.PathValue("childName"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not load activities.", err)
		return
	}
	respondJSON(w, http.StatusOK, activities)
}

// DailySummary handles GET /api/activity/summary/{childName}.
func (h *ActivityHandler) DailySummary(w http.ResponseWriter, r *http.Request) {
	user, ok := h.lookupChild(w, r.PathValue("childName"))
	if !ok {
		return
	}

	summary, err := h.activities.DailySummaryFor(user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not build summary.", err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

type sendDailyLogRequest struct {
	ChildName string `json:"childName"`
}

// SendDailyLog handles POST /api/activity/send-daily-log, delivering
// today's report to one child's parent on demand.
func (h *ActivityHandler) SendDailyLog(w http.ResponseWriter, r *http.Request) {
	var req sendDailyLogRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.", err)
		return
	}

	user, ok := h.lookupChild(w, req.ChildName)
	if !ok {
		return
	}

	sent, message := h.activities.SendDailyLogToParent(r.Context(), user)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sent":    sent,
		"message": message,
	})
}

func (h *ActivityHandler) lookupChild(w http.ResponseWriter, childName string) (*models.User, bool) {
	u, err := h.userRepo.GetUserByName(childName)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not look up user.", err)
		return nil, false
	}
	if u == nil {
		respondError(w, http.StatusNotFound, "User not found.", nil)
		return nil, false
	}
	return u, true
}
