package models

// Topic is an age-gated subject area containing questions.
// Topics are immutable after catalog initialization.
type Topic struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	MinAge      int        `json:"minAge"`
	MaxAge      int        `json:"maxAge"`
	Questions   []Question `json:"questions"`
}

// ContainsAge reports whether age falls inside the topic's age range.
func (t *Topic) ContainsAge(age int) bool {
	return age >= t.MinAge && age <= t.MaxAge
}

// Question is a single Q/A pair belonging to one topic, itself age-gated.
// Question IDs are unique across the whole catalog, not just within a topic.
type Question struct {
	ID           int    `json:"id"`
	TopicID      int    `json:"topicId"`
	QuestionText string `json:"questionText"`
	Answer       string `json:"answer"`
	MinAge       int    `json:"minAge"`
	MaxAge       int    `json:"maxAge"`
}

// ContainsAge reports whether age falls inside the question's age range.
func (q *Question) ContainsAge(age int) bool {
	return age >= q.MinAge && age <= q.MaxAge
}

// Blog is a standalone article learners can read. Blogs are not age-gated.
type Blog struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
	Content     string `json:"content"`
}
