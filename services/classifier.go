package services

import (
	"math/rand"
	"strings"

	"evervital-bot/models"
)

// PatternRule pairs a match predicate with a responder. Rules are evaluated
// in declaration order and the first match wins. The order is part of the
// contract: later patterns overlap earlier, more specific ones, so
// reordering changes which answer a message gets.
type PatternRule struct {
	Match   func(text string) bool
	Respond func(text string) models.ResponsePayload
}

func containsAny(text string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

var womensTerms = []string{"women", "woman", "female", "wife", "her "}

// patternRules are scanned first-match-wins. The women's hormone rule sits
// above the generic TRT rule because its trigger terms are a superset:
// "do you offer trt for women" must get the women's answer, not the
// generic TRT one.
var patternRules = []PatternRule{
	{
		Match: func(t string) bool {
			return containsAny(t, womensTerms...) &&
				containsAny(t, "trt", "testosterone", "hormone", "estrogen", "menopause")
		},
		Respond: func(t string) models.ResponsePayload {
			if strings.Contains(t, "menopause") {
				return topicResponses["menopause"]
			}
			return topicResponses["womens_hormones"]
		},
	},
	{
		Match: func(t string) bool {
			return containsAny(t, "trt", "testosterone")
		},
		Respond: func(t string) models.ResponsePayload {
			if containsAny(t, "price", "cost", "how much") {
				return topicResponses["trt_pricing"]
			}
			return topicResponses["trt"]
		},
	},
	{
		Match: func(t string) bool {
			return containsAny(t, "price", "cost", "how much", "subscription", "membership", "plan")
		},
		Respond: func(t string) models.ResponsePayload {
			return topicResponses["membership"]
		},
	},
	{
		Match: func(t string) bool {
			return containsAny(t, "what test", "which test", "blood test", "panel", "lab")
		},
		Respond: func(t string) models.ResponsePayload {
			return topicResponses["testing"]
		},
	},
	{
		Match: func(t string) bool {
			return containsAny(t, "ship", "deliver", "how long", "when will")
		},
		Respond: func(t string) models.ResponsePayload {
			return topicResponses["shipping"]
		},
	},
	{
		Match: func(t string) bool {
			return containsAny(t, "cancel", "unsubscribe", "stop my")
		},
		Respond: func(t string) models.ResponsePayload {
			return topicResponses["cancel"]
		},
	},
	{
		Match: func(t string) bool {
			return t == "hi" || t == "hey" || t == "hello" ||
				strings.HasPrefix(t, "hi ") || strings.HasPrefix(t, "hey ") || strings.HasPrefix(t, "hello ")
		},
		Respond: func(t string) models.ResponsePayload {
			return topicResponses["greeting"]
		},
	},
}

// defaultPool holds the generic prompts returned when nothing matches.
// They are interchangeable, so one is picked at random.
var defaultPool = []models.ResponsePayload{
	{Message: "I can help with questions about our lab tests, hormone programs, membership, shipping, and results. What would you like to know?"},
	{Message: "Not sure I caught that - are you asking about testing, TRT, women's health, or your membership?"},
	{Message: "Happy to help! Try asking about a specific test, our hormone programs, or how the membership works."},
}

// Classify maps raw user text to a canned response. It never fails: if no
// pattern rule or fallback keyword matches, a generic prompt from the
// default pool is returned.
func Classify(rawText string) models.ResponsePayload {
	text := strings.ToLower(strings.TrimSpace(rawText))

	for _, rule := range patternRules {
		if rule.Match(text) {
			return rule.Respond(text)
		}
	}

	for _, kt := range keywordTopics {
		if strings.Contains(text, kt.Keyword) {
			if payload, ok := topicResponses[kt.Topic]; ok {
				return payload
			}
		}
	}

	return defaultPool[rand.Intn(len(defaultPool))]
}
