package question

import "strings"

// ValidationError carries a user-facing reason for rejecting a draft.
// The message is shown inline in the admin editor, so keep it specific.
type ValidationError struct{ Reason string }

func (e *ValidationError) Error() string { return e.Reason }

// ValidateDraft enforces the authoring rules before a record reaches the
// store: non-blank question text, at least two distinct non-empty options,
// exactly one marked correct. Externally-synced records bypass this path,
// which is why Normalize re-trims defensively.
func ValidateDraft(raw Raw) error {
	if strings.TrimSpace(raw.Question) == "" {
		return &ValidationError{Reason: "question text is required"}
	}

	if raw.Structured() {
		n := Normalize(raw)
		if len(n.Options) < 2 {
			return &ValidationError{Reason: "at least two distinct answer options are required"}
		}
		correct := 0
		for _, o := range raw.Options {
			if o.IsCorrect {
				correct++
			}
		}
		if correct == 0 {
			return &ValidationError{Reason: "mark one option as the correct answer"}
		}
		if correct > 1 {
			return &ValidationError{Reason: "only one option can be marked correct"}
		}
		// The flag must survive normalization: a blank or duplicate correct
		// option would otherwise persist as an unscoreable question.
		if n.CorrectAnswer == "" {
			return &ValidationError{Reason: "the correct option needs a distinct, non-empty text"}
		}
		return nil
	}

	// Legacy drafts: slots plus the correct answer text.
	if strings.TrimSpace(raw.CorrectAnswer) == "" {
		return &ValidationError{Reason: "correct answer is required"}
	}
	n := Normalize(raw)
	if len(n.Options) < 2 {
		return &ValidationError{Reason: "at least two distinct answer options are required"}
	}
	if n.CorrectAnswer == "" {
		return &ValidationError{Reason: "correct answer must match one of the options"}
	}
	return nil
}
