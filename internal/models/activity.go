package models

import (
	"fmt"
	"time"
)

// ActivityType classifies what a learner viewed.
type ActivityType string

const (
	ActivityTopic    ActivityType = "Topic"
	ActivityQuestion ActivityType = "Question"
	ActivityBlog     ActivityType = "Blog"
)

// ValidActivityType reports whether s is one of the known activity types.
func ValidActivityType(s string) bool {
	switch ActivityType(s) {
	case ActivityTopic, ActivityQuestion, ActivityBlog:
		return true
	}
	return false
}

// ActivityLog is an append-only record of a learner viewing a topic,
// question or blog. Entries are never mutated; retention pruning deletes
// by age cutoff only.
type ActivityLog struct {
	ID                  int64        `json:"id"`
	ChildName           string       `json:"childName"`
	ChildAge            int          `json:"childAge"`
	ActivityType        ActivityType `json:"activityType"`
	ActivityID          string       `json:"activityId"`
	ActivityTitle       string       `json:"activityTitle"`
	ActivityDescription string       `json:"activityDescription"`
	Timestamp           time.Time    `json:"timestamp"`
	TimeSpentSeconds    int          `json:"timeSpentSeconds"`
	Language            string       `json:"language"`
	SessionID           string       `json:"sessionId"`
}

// SessionIDAt derives the hour-bucketed session identifier used to group
// activities recorded close together.
func SessionIDAt(t time.Time) string {
	return fmt.Sprintf("session_%s", t.Format("20060102_15"))
}

// DailySummary aggregates one learner's activity for a single calendar day.
// It is derived on demand and never persisted.
type DailySummary struct {
	ChildName             string        `json:"childName"`
	ChildAge              int           `json:"childAge"`
	ParentName            string        `json:"parentName"`
	ParentEmail           string        `json:"parentEmail"`
	Date                  time.Time     `json:"date"`
	Activities            []ActivityLog `json:"activities"`
	TotalTimeSpentMinutes int           `json:"totalTimeSpentMinutes"`
	TopicsViewed          int           `json:"topicsViewed"`
	QuestionsAsked        int           `json:"questionsAsked"`
	BlogsRead             int           `json:"blogsRead"`
	Language              Language      `json:"language"`
}

// BuildDailySummary computes the per-type counts and total minutes for the
// given activities. Seconds are converted to minutes with integer
// truncation, so partial minutes are dropped.
func BuildDailySummary(user *User, date time.Time, activities []ActivityLog) DailySummary {
	summary := DailySummary{
		ChildName:   user.Name,
		ChildAge:    user.Age,
		ParentName:  user.ParentName,
		ParentEmail: user.ParentEmail,
		Date:        date,
		Activities:  activities,
		Language:    user.PreferredLanguage,
	}

	totalSeconds := 0
	for _, a := range activities {
		totalSeconds += a.TimeSpentSeconds
		switch a.ActivityType {
		case ActivityTopic:
			summary.TopicsViewed++
		case ActivityQuestion:
			summary.QuestionsAsked++
		case ActivityBlog:
			summary.BlogsRead++
		}
	}
	summary.TotalTimeSpentMinutes = totalSeconds / 60

	return summary
}
