package question

// Difficulty partitions the question bank and drives session composition.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties in display order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty maps unknown tiers to Easy, matching how legacy records
// without a valid difficulty are bucketed.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(s) {
	case Easy, Medium, Hard:
		return Difficulty(s)
	default:
		return Easy
	}
}

// RawOption is one entry of the structured storage shape.
type RawOption struct {
	ID        string `json:"id,omitempty"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Raw is a question record as persisted. Two shapes share this struct:
// the structured shape carries Options (>=2 entries); the legacy shape
// carries the fixed OptionA/B/C slots plus CorrectAnswer. JSON field names
// match the stored payload verbatim.
type Raw struct {
	ID            string      `json:"id"`
	Question      string      `json:"question"`
	Difficulty    string      `json:"difficulty"`
	Options       []RawOption `json:"options,omitempty"`
	OptionA       string      `json:"optionA,omitempty"`
	OptionB       string      `json:"optionB,omitempty"`
	OptionC       string      `json:"optionC,omitempty"`
	CorrectAnswer string      `json:"correctAnswer,omitempty"`
	CreatedAt     int64       `json:"created_at,omitempty"`
}

// Structured reports whether the record uses the structured options shape.
func (r Raw) Structured() bool { return len(r.Options) >= 2 }

// Option is a canonical answer option. Within one normalized question the
// option texts are unique and non-empty, and at most one option is correct.
type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Normalized is the canonical in-memory question shape, independent of the
// storage variant. CorrectAnswer duplicates the correct option's text for
// scoring convenience; it is empty when the record carries no identifiable
// correct option (such questions are presentable but unscoreable).
type Normalized struct {
	ID            string     `json:"id"`
	Question      string     `json:"question"`
	Difficulty    Difficulty `json:"difficulty"`
	Options       []Option   `json:"options"`
	CorrectAnswer string     `json:"correctAnswer"`
}

// Bank is a read-only snapshot of the question bank, grouped by difficulty.
// Sessions materialize from a Bank once at start time and never re-read it.
type Bank map[Difficulty][]Raw
