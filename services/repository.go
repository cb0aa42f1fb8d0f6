package services

import "evervital-bot/models"

// KeywordTopic associates a lowercase substring with a response topic.
// The slice is scanned in order and the first match wins, so entries are
// listed most-specific first.
type KeywordTopic struct {
	Keyword string
	Topic   string
}

// topicResponses maps topic keys to their canned answers. Populated once at
// process start and never mutated.
var topicResponses = map[string]models.ResponsePayload{
	"trt": {
		Message: "TRT (testosterone replacement therapy) at Evervital starts with a baseline blood panel. " +
			"Once your results are in, a licensed clinician reviews them and builds a plan around your levels. " +
			"Most members start with our testosterone panel below.",
		TestRefs: []string{"total-testosterone", "free-testosterone"},
	},
	"trt_pricing": {
		Message: "TRT membership is billed monthly and includes clinician visits, prescriptions when appropriate, " +
			"and quarterly follow-up labs. The baseline testosterone panel is a one-time purchase before you enroll.",
		TestRefs: []string{"total-testosterone"},
	},
	"womens_hormones": {
		Message: "Hormone support at Evervital isn't just for men. Our women's program covers estradiol, " +
			"thyroid, and full-panel hormone testing, with a clinician reviewing every result.",
		TestRefs: []string{"female-hormone-panel", "estradiol", "thyroid-panel"},
	},
	"menopause": {
		Message: "For perimenopause and menopause we recommend starting with the female hormone panel plus thyroid, " +
			"since symptoms overlap. A clinician walks you through the results and options.",
		TestRefs: []string{"female-hormone-panel", "thyroid-panel"},
	},
	"membership": {
		Message: "Membership is a flat monthly fee with no contracts. It covers unlimited messaging with your " +
			"care team, clinician reviews of every lab result, and member pricing on all test kits.",
	},
	"testing": {
		Message: "All our tests are at-home collection kits: we ship the kit, you collect a small sample, " +
			"and results land in your dashboard in 2-5 days after the lab receives it. Popular starting points:",
		TestRefs: []string{"total-testosterone", "thyroid-panel", "vitamin-d"},
	},
	"shipping": {
		Message: "Kits ship free within 1-2 business days in discreet packaging, with a prepaid return label " +
			"included. Results are typically ready 2-5 days after the lab receives your sample.",
	},
	"results": {
		Message: "Results appear in your member dashboard as soon as the lab releases them, with reference " +
			"ranges and a plain-language summary. A clinician flags anything that needs follow-up.",
	},
	"cancel": {
		Message: "You can cancel anytime from your account settings - no calls, no cancellation fees. " +
			"Your membership stays active through the end of the current billing period.",
	},
	"greeting": {
		Message: "Hi! I'm the Evervital assistant. Ask me anything about our at-home lab tests, " +
			"hormone programs, or membership.",
	},
}

// keywordTopics is the fallback keyword scan consulted when no pattern rule
// matches. Order is match priority: first substring hit wins.
var keywordTopics = []KeywordTopic{
	{"menopause", "menopause"},
	{"estrogen", "womens_hormones"},
	{"testosterone", "trt"},
	{"hormone", "trt"},
	{"price", "membership"},
	{"cost", "membership"},
	{"subscription", "membership"},
	{"membership", "membership"},
	{"blood", "testing"},
	{"lab", "testing"},
	{"test", "testing"},
	{"ship", "shipping"},
	{"deliver", "shipping"},
	{"result", "results"},
	{"cancel", "cancel"},
	{"refund", "cancel"},
	{"hello", "greeting"},
	{"good morning", "greeting"},
}

// ResponseByTopic returns the canned payload for a topic key
func ResponseByTopic(topic string) (models.ResponsePayload, bool) {
	p, ok := topicResponses[topic]
	return p, ok
}

// KeywordTopics returns the ordered keyword fallback associations
func KeywordTopics() []KeywordTopic {
	return keywordTopics
}
