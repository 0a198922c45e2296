package question

import (
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// Normalize converts a stored record into the canonical shape. Pure: the
// input is never mutated and repeated calls yield equivalent output (option
// ids are regenerated only for entries that lack one).
//
// Structured records (>=2 options): texts are trimmed, empties dropped and
// duplicates collapsed onto the first occurrence. Correctness comes from the
// options' own flags; if none is flagged, the option whose text equals the
// record's correctAnswer is promoted. A record where that also fails
// normalizes to a question with no correct option rather than an error --
// that is a data-quality defect to catch at authoring time, not read time.
//
// Legacy records: the A/B/C slots become options, with correctAnswer riding
// in A's slot when A is blank (older records were written that way). The
// slot equal to correctAnswer is marked correct.
func Normalize(raw Raw) Normalized {
	n := Normalized{
		ID:         raw.ID,
		Question:   strings.TrimSpace(raw.Question),
		Difficulty: ParseDifficulty(raw.Difficulty),
	}
	want := strings.TrimSpace(raw.CorrectAnswer)

	if raw.Structured() {
		seen := map[string]bool{}
		for _, o := range raw.Options {
			text := strings.TrimSpace(o.Text)
			if text == "" || seen[text] {
				continue
			}
			seen[text] = true
			id := o.ID
			if id == "" {
				id = uuid.NewString()
			}
			n.Options = append(n.Options, Option{ID: id, Text: text, IsCorrect: o.IsCorrect})
		}
		if !hasCorrect(n.Options) && want != "" {
			for i := range n.Options {
				if n.Options[i].Text == want {
					n.Options[i].IsCorrect = true
					break
				}
			}
		}
	} else {
		slotA := strings.TrimSpace(raw.OptionA)
		if slotA == "" {
			slotA = want
		}
		seen := map[string]bool{}
		for _, text := range []string{slotA, strings.TrimSpace(raw.OptionB), strings.TrimSpace(raw.OptionC)} {
			if text == "" || seen[text] {
				continue
			}
			seen[text] = true
			n.Options = append(n.Options, Option{
				ID:        uuid.NewString(),
				Text:      text,
				IsCorrect: text == want && want != "",
			})
		}
	}

	n.CorrectAnswer = correctText(n.Options)
	return n
}

// ShuffleOptions returns a copy of q with its options uniformly permuted.
// CorrectAnswer is recomputed from the shuffled options rather than copied,
// so it stays consistent with whatever the permutation surfaces as correct.
func ShuffleOptions(rng *rand.Rand, q Normalized) Normalized {
	opts := make([]Option, len(q.Options))
	copy(opts, q.Options)
	rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	q.Options = opts
	q.CorrectAnswer = correctText(opts)
	return q
}

func hasCorrect(opts []Option) bool {
	for _, o := range opts {
		if o.IsCorrect {
			return true
		}
	}
	return false
}

func correctText(opts []Option) string {
	for _, o := range opts {
		if o.IsCorrect {
			return o.Text
		}
	}
	return ""
}
