package models

import "time"

// Language is a learner's preferred content language.
type Language string

const (
	LanguageEnglish Language = "English"
	LanguageBurmese Language = "Burmese"
)

// ParseLanguage maps a request value to a supported language,
// defaulting to English for anything unrecognized.
func ParseLanguage(s string) Language {
	if s == string(LanguageBurmese) {
		return LanguageBurmese
	}
	return LanguageEnglish
}

// User represents a registered learner. The password is stored only as a
// bcrypt hash; the parent fields drive the daily report emails.
type User struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Username           string    `json:"username"`
	PasswordHash       string    `json:"-"`
	Age                int       `json:"age"`
	ParentName         string    `json:"parentName"`
	ParentEmail        string    `json:"parentEmail"`
	EmailNotifications bool      `json:"emailNotificationsEnabled"`
	PreferredLanguage  Language  `json:"preferredLanguage"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// WantsDailyReport reports whether this user is opted in to parent emails.
func (u *User) WantsDailyReport() bool {
	return u.EmailNotifications && u.ParentEmail != ""
}
