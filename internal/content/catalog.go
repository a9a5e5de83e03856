// Package content holds the fixed learning catalog and the age-scoped
// queries over it. The catalog is initialized once at startup and is
// read-only afterwards, so it is safe to share across requests.
package content

import (
	"fmt"

	"littlestar/internal/models"
)

// Catalog is the immutable set of topics, questions and blogs served to
// learners. Construct it with NewCatalog, which validates the content
// invariants.
type Catalog struct {
	topics []models.Topic
	blogs  []models.Blog
}

// NewCatalog builds the default catalog and verifies its invariants:
// minAge <= maxAge everywhere, unique topic ids, globally unique question
// ids, and every question referencing its owning topic.
func NewCatalog() (*Catalog, error) {
	c := &Catalog{
		topics: defaultTopics(),
		blogs:  defaultBlogs(),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) validate() error {
	topicIDs := make(map[int]bool)
	questionIDs := make(map[int]bool)

	for _, t := range c.topics {
		if t.MinAge > t.MaxAge {
			return fmt.Errorf("topic %d: minAge %d > maxAge %d", t.ID, t.MinAge, t.MaxAge)
		}
		if topicIDs[t.ID] {
			return fmt.Errorf("duplicate topic id %d", t.ID)
		}
		topicIDs[t.ID] = true

		for _, q := range t.Questions {
			if q.MinAge > q.MaxAge {
				return fmt.Errorf("question %d: minAge %d > maxAge %d", q.ID, q.MinAge, q.MaxAge)
			}
			if q.TopicID != t.ID {
				return fmt.Errorf("question %d: topicId %d does not match owning topic %d", q.ID, q.TopicID, t.ID)
			}
			if questionIDs[q.ID] {
				return fmt.Errorf("duplicate question id %d", q.ID)
			}
			questionIDs[q.ID] = true
		}
	}
	return nil
}

// Topics returns all topics in catalog order.
func (c *Catalog) Topics() []models.Topic {
	return c.topics
}

// Blogs returns all blogs in catalog order.
func (c *Catalog) Blogs() []models.Blog {
	return c.blogs
}

func defaultTopics() []models.Topic {
	return []models.Topic{
		{
			ID:          1,
			Title:       "Body Parts",
			Description: "Learn about different parts of your body",
			MinAge:      8,
			MaxAge:      15,
			Questions: []models.Question{
				{ID: 1, TopicID: 1, MinAge: 8, MaxAge: 12,
					QuestionText: "What are the main parts of the human body?",
					Answer:       "The human body has many parts including the head, torso, arms, and legs. Each part has an important job to keep you healthy and strong."},
				{ID: 2, TopicID: 1, MinAge: 8, MaxAge: 15,
					QuestionText: "Why is it important to keep our bodies clean?",
					Answer:       "Keeping our bodies clean helps prevent germs and keeps us healthy. It's important to wash regularly and take care of our skin."},
				{ID: 3, TopicID: 1, MinAge: 10, MaxAge: 15,
					QuestionText: "What are private parts?",
					Answer:       "Private parts are the parts of our body that are covered by underwear or swimsuits. These are special parts that should be kept private and only touched by yourself or a doctor when needed."},
			},
		},
		{
			ID:          2,
			Title:       "Personal Safety",
			Description: "Understanding personal boundaries and safety",
			MinAge:      8,
			MaxAge:      15,
			Questions: []models.Question{
				{ID: 4, TopicID: 2, MinAge: 8, MaxAge: 15,
					QuestionText: "What should you do if someone makes you feel uncomfortable?",
					Answer:       "If someone makes you feel uncomfortable, you should tell a trusted adult like a parent, teacher, or family member immediately. It's never your fault."},
				{ID: 5, TopicID: 2, MinAge: 8, MaxAge: 12,
					QuestionText: "What are good touch and bad touch?",
					Answer:       "Good touch makes you feel safe and comfortable, like hugs from family or a doctor's gentle examination. Bad touch makes you feel scared, uncomfortable, or confused."},
				{ID: 6, TopicID: 2, MinAge: 10, MaxAge: 15,
					QuestionText: "Who can you trust to talk about personal problems?",
					Answer:       "You can trust parents, teachers, school counselors, doctors, and other trusted adults who care about your safety and well-being."},
			},
		},
		{
			ID:          3,
			Title:       "Growing Up",
			Description: "Understanding changes as you grow",
			MinAge:      10,
			MaxAge:      15,
			Questions: []models.Question{
				{ID: 7, TopicID: 3, MinAge: 10, MaxAge: 15,
					QuestionText: "What changes happen during puberty?",
					Answer:       "Puberty is when your body starts changing from a child to an adult. You might grow taller, develop new body features, and experience emotional changes."},
				{ID: 8, TopicID: 3, MinAge: 10, MaxAge: 15,
					QuestionText: "Is it normal to feel confused about changes in my body?",
					Answer:       "Yes, it's completely normal to feel confused or worried about changes in your body. Everyone goes through these changes at their own pace."},
				{ID: 9, TopicID: 3, MinAge: 10, MaxAge: 15,
					QuestionText: "When should I talk to someone about body changes?",
					Answer:       "You should talk to a trusted adult whenever you have questions or concerns about changes in your body. It's always okay to ask questions."},
			},
		},
		{
			ID:          4,
			Title:       "Healthy Relationships",
			Description: "Learning about friendships and relationships",
			MinAge:      8,
			MaxAge:      15,
			Questions: []models.Question{
				{ID: 10, TopicID: 4, MinAge: 8, MaxAge: 15,
					QuestionText: "What makes a good friend?",
					Answer:       "A good friend is someone who is kind, respectful, honest, and makes you feel happy and safe. They listen to you and support you."},
				{ID: 11, TopicID: 4, MinAge: 8, MaxAge: 12,
					QuestionText: "How do you know if someone is being mean to you?",
					Answer:       "If someone is calling you names, excluding you, hurting you physically or emotionally, or making you feel bad about yourself, they are being mean."},
				{ID: 12, TopicID: 4, MinAge: 8, MaxAge: 15,
					QuestionText: "What should you do if someone is bullying you?",
					Answer:       "Tell a trusted adult immediately. Bullying is never okay, and adults can help stop it. You are not alone, and it's not your fault."},
			},
		},
	}
}
