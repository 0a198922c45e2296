package question_test

import (
	"strings"
	"testing"

	"github.com/quizline/quizline/internal/question"
)

func TestValidateDraftRejectsBlankQuestion(t *testing.T) {
	err := question.ValidateDraft(question.Raw{
		Question: "   ",
		Options:  []question.RawOption{{Text: "A", IsCorrect: true}, {Text: "B"}},
	})
	if err == nil || !strings.Contains(err.Error(), "question text") {
		t.Fatalf("expected question-text reason, got %v", err)
	}
}

func TestValidateDraftRejectsTooFewOptions(t *testing.T) {
	err := question.ValidateDraft(question.Raw{
		Question:      "q",
		OptionA:       "only",
		CorrectAnswer: "only",
	})
	if err == nil || !strings.Contains(err.Error(), "two distinct") {
		t.Fatalf("expected option-count reason, got %v", err)
	}
}

func TestValidateDraftRejectsNoCorrect(t *testing.T) {
	err := question.ValidateDraft(question.Raw{
		Question: "q",
		Options:  []question.RawOption{{Text: "A"}, {Text: "B"}},
	})
	if err == nil || !strings.Contains(err.Error(), "correct") {
		t.Fatalf("expected no-correct reason, got %v", err)
	}
}

func TestValidateDraftRejectsMultipleCorrect(t *testing.T) {
	err := question.ValidateDraft(question.Raw{
		Question: "q",
		Options:  []question.RawOption{{Text: "A", IsCorrect: true}, {Text: "B", IsCorrect: true}},
	})
	if err == nil || !strings.Contains(err.Error(), "only one") {
		t.Fatalf("expected single-correct reason, got %v", err)
	}
}

func TestValidateDraftRejectsBlankCorrectOption(t *testing.T) {
	// The flagged option is all whitespace; normalization drops it, so the
	// draft would persist with no correct option at all.
	err := question.ValidateDraft(question.Raw{
		Question: "q",
		Options:  []question.RawOption{{Text: "A"}, {Text: "B"}, {Text: "   ", IsCorrect: true}},
	})
	if err == nil || !strings.Contains(err.Error(), "distinct, non-empty") {
		t.Fatalf("expected blank-correct rejection, got %v", err)
	}
}

func TestValidateDraftRejectsDuplicateCorrectOption(t *testing.T) {
	// The flagged option duplicates an earlier unflagged one; dedupe keeps
	// the first occurrence and the flag is lost.
	err := question.ValidateDraft(question.Raw{
		Question: "q",
		Options:  []question.RawOption{{Text: "A"}, {Text: "A", IsCorrect: true}, {Text: "B"}},
	})
	if err == nil || !strings.Contains(err.Error(), "distinct, non-empty") {
		t.Fatalf("expected duplicate-correct rejection, got %v", err)
	}
}

func TestValidateDraftRejectsLegacyMismatchedAnswer(t *testing.T) {
	err := question.ValidateDraft(question.Raw{
		Question:      "q",
		OptionA:       "A",
		OptionB:       "B",
		CorrectAnswer: "Z",
	})
	if err == nil || !strings.Contains(err.Error(), "match one of the options") {
		t.Fatalf("expected mismatch reason, got %v", err)
	}
}

func TestValidateDraftAcceptsGoodDrafts(t *testing.T) {
	cases := []question.Raw{
		{
			Question: "structured",
			Options:  []question.RawOption{{Text: "A", IsCorrect: true}, {Text: "B"}},
		},
		{
			Question:      "legacy",
			OptionA:       "A",
			OptionB:       "B",
			OptionC:       "C",
			CorrectAnswer: "B",
		},
		{
			// Blank slot A carried by the correct answer.
			Question:      "legacy fallback",
			OptionB:       "B",
			CorrectAnswer: "A",
		},
	}
	for _, raw := range cases {
		if err := question.ValidateDraft(raw); err != nil {
			t.Fatalf("%s: unexpected rejection: %v", raw.Question, err)
		}
	}
}
