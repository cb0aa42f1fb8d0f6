package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyWomensQuestionsBeforeGenericTRT(t *testing.T) {
	womens := topicResponses["womens_hormones"]
	generic := topicResponses["trt"]

	inputs := []string{
		"do you offer trt for women",
		"can my wife get trt",
		"is trt available for female patients",
		"testosterone therapy for a woman",
	}
	for _, input := range inputs {
		got := Classify(input)
		assert.Equal(t, womens, got, "input %q should get the women's answer", input)
		assert.NotEqual(t, generic, got, "input %q must not fall through to the generic TRT answer", input)
	}
}

func TestClassifyMenopauseVariant(t *testing.T) {
	got := Classify("trt options for women going through menopause")
	assert.Equal(t, topicResponses["menopause"], got)
}

func TestClassifyGenericTRT(t *testing.T) {
	assert.Equal(t, topicResponses["trt"], Classify("tell me about trt"))
	assert.Equal(t, topicResponses["trt_pricing"], Classify("how much does trt cost"))
}

func TestClassifyNormalizesInput(t *testing.T) {
	assert.Equal(t, topicResponses["trt"], Classify("  Tell Me About TRT  "))
}

func TestClassifyKeywordFallback(t *testing.T) {
	// Neither input matches a pattern rule; both should resolve through
	// the keyword scan.
	assert.Equal(t, topicResponses["cancel"], Classify("refund please"))
	assert.Equal(t, topicResponses["womens_hormones"], Classify("estrogen?"))
}

func TestClassifyUnmatchedReturnsDefaultPoolMember(t *testing.T) {
	inputs := []string{"zxcv qwer", "42", "", "???"}
	for _, input := range inputs {
		got := Classify(input)
		require.NotEmpty(t, got.Message, "classification must always produce a payload")
		assert.Contains(t, defaultPool, got, "input %q should get a default-pool payload", input)
	}
}

func TestClassifyGreeting(t *testing.T) {
	assert.Equal(t, topicResponses["greeting"], Classify("hi"))
	assert.Equal(t, topicResponses["greeting"], Classify("Hello there"))
}
