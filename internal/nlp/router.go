// Package nlp implements the keyword router: a stateless matcher that maps
// free-text learner input to an age-appropriate content excerpt. Matching
// is a deterministic keyword-overlap heuristic over the fixed catalog,
// not a classifier, and holds no per-call state.
package nlp

import (
	"fmt"
	"strings"

	"littlestar/internal/content"
	"littlestar/internal/i18n"
	"littlestar/internal/models"
)

// blockedTerms force an immediate redirect response. The screen is a
// substring check over the whole lowercased input, so it fires even when
// a blocked term is embedded in a longer word. It takes priority over
// all topic matching.
var blockedTerms = []string{
	"sex", "sexual", "nude", "naked", "adult", "porn",
	"explicit", "intimate", "romance", "love",
}

var stopWords = map[string]bool{
	"what": true, "how": true, "why": true, "when": true, "where": true,
	"is": true, "are": true, "do": true, "does": true, "can": true,
	"could": true, "should": true, "the": true, "a": true, "an": true,
	"and": true, "or": true, "but": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "of": true, "with": true, "by": true,
}

// topicKeywords maps topic ids to their fixed keyword sets. Keying by id
// rather than by title avoids any coupling to display strings.
var topicKeywords = map[int][]string{
	1: {"body", "parts", "clean", "wash", "skin", "private"},
	2: {"safe", "safety", "touch", "uncomfortable", "trust", "boundaries"},
	3: {"grow", "growing", "change", "puberty", "adult", "teen"},
	4: {"friend", "friendship", "relationship", "bully", "mean", "kind"},
}

// maxSuggestedQuestions bounds the excerpt returned for a matched topic.
const maxSuggestedQuestions = 3

// Router scores learner input against the age-filtered catalog.
type Router struct {
	contentService *content.Service
}

// NewRouter creates a router over the given content service.
func NewRouter(contentService *content.Service) *Router {
	return &Router{contentService: contentService}
}

// Route maps free-text input to a response string. Every input path
// yields a string; no errors are surfaced. Logging the interaction is the
// caller's responsibility.
func (r *Router) Route(text string, age int, lang models.Language) string {
	if containsBlockedTerm(text) {
		return i18n.Text(lang, i18n.KeyBlockedInput)
	}

	keywords := extractKeywords(text)
	topics := r.contentService.TopicsForAge(age)

	best, bestScore := bestTopicMatch(keywords, topics)
	if best == nil || bestScore == 0 {
		return i18n.Text(lang, i18n.KeyNoMatch)
	}

	questions := r.contentService.QuestionsForTopic(best.ID, age)
	if len(questions) == 0 {
		return i18n.Text(lang, i18n.KeyNoMatch)
	}
	if len(questions) > maxSuggestedQuestions {
		questions = questions[:maxSuggestedQuestions]
	}

	var b strings.Builder
	fmt.Fprintf(&b, i18n.Text(lang, i18n.KeyTopicMatch), strings.ToLower(best.Title))
	for i, q := range questions {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("• " + q.QuestionText)
	}
	return b.String()
}

func containsBlockedTerm(input string) bool {
	lowered := strings.ToLower(input)
	for _, term := range blockedTerms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

// extractKeywords lowercases the input, splits on whitespace, and drops
// short tokens and stop words.
func extractKeywords(input string) []string {
	var keywords []string
	for _, token := range strings.Fields(strings.ToLower(input)) {
		if len(token) <= 2 || stopWords[token] {
			continue
		}
		keywords = append(keywords, token)
	}
	return keywords
}

// bestTopicMatch scores each topic by the number of extracted keywords
// present in its keyword set. Ties resolve to the lowest topic id: topics
// arrive in catalog (ascending id) order and a strictly-greater score is
// required to displace the current winner.
func bestTopicMatch(keywords []string, topics []models.Topic) (*models.Topic, int) {
	var best *models.Topic
	bestScore := -1

	for i := range topics {
		score := topicScore(keywords, topics[i].ID)
		if score > bestScore {
			best = &topics[i]
			bestScore = score
		}
	}
	if best == nil {
		return nil, 0
	}
	return best, bestScore
}

func topicScore(keywords []string, topicID int) int {
	set := topicKeywords[topicID]
	score := 0
	for _, k := range keywords {
		for _, tk := range set {
			if k == tk {
				score++
				break
			}
		}
	}
	return score
}
