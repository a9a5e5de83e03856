package content

import "littlestar/internal/models"

// Service answers age-scoped content queries against the catalog.
// All methods are pure reads over immutable data.
type Service struct {
	catalog *Catalog
}

// NewService creates a content service over the given catalog.
func NewService(catalog *Catalog) *Service {
	return &Service{catalog: catalog}
}

// TopicsForAge returns every topic whose age range contains age, in
// catalog order. An age outside every range yields an empty slice, not an
// error; callers are expected to have validated the 8..15 bound already.
func (s *Service) TopicsForAge(age int) []models.Topic {
	topics := []models.Topic{}
	for _, t := range s.catalog.Topics() {
		if t.ContainsAge(age) {
			topics = append(topics, t)
		}
	}
	return topics
}

// QuestionsForTopic returns the identified topic's questions filtered by
// age containment. An unknown topic id yields an empty slice.
func (s *Service) QuestionsForTopic(topicID, age int) []models.Question {
	questions := []models.Question{}
	for _, t := range s.catalog.Topics() {
		if t.ID != topicID {
			continue
		}
		for _, q := range t.Questions {
			if q.ContainsAge(age) {
				questions = append(questions, q)
			}
		}
		break
	}
	return questions
}

// QuestionByID finds a question by its catalog-wide id. Returns nil when
// not found; callers translate nil to a not-found response.
func (s *Service) QuestionByID(questionID int) *models.Question {
	for _, t := range s.catalog.Topics() {
		for i := range t.Questions {
			if t.Questions[i].ID == questionID {
				q := t.Questions[i]
				return &q
			}
		}
	}
	return nil
}

// TopicByID finds a topic by id. Returns nil when not found.
func (s *Service) TopicByID(topicID int) *models.Topic {
	for i := range s.catalog.Topics() {
		if s.catalog.Topics()[i].ID == topicID {
			t := s.catalog.Topics()[i]
			return &t
		}
	}
	return nil
}

// Blogs returns the full blog list.
func (s *Service) Blogs() []models.Blog {
	return s.catalog.Blogs()
}

// BlogByID finds a blog by id. Returns nil when not found.
func (s *Service) BlogByID(blogID int) *models.Blog {
	for _, b := range s.catalog.Blogs() {
		if b.ID == blogID {
			blog := b
			return &blog
		}
	}
	return nil
}
