// Package quiz builds practice questions from a saved card set.
// Question construction is deterministic for a given card list, mode, and
// seed so that a client can re-render the same quiz.
package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"unicode/utf8"

	"github.com/studyflash/studyflash-api/internal/domain"
)

// Mode selects the question format.
type Mode string

// Supported quiz modes.
const (
	ModeMultipleChoice Mode = "multiple_choice"
	ModeFillBlank      Mode = "fill_blank"
	ModeTrueFalse      Mode = "true_false"
)

// Common quiz errors
var (
	// ErrInvalidMode is returned for an unrecognized quiz mode.
	ErrInvalidMode = errors.New("invalid quiz mode")

	// ErrNoQuestions is returned when the card set yields no questions,
	// e.g. fill-blank over cards with no blankable words.
	ErrNoQuestions = errors.New("card set yields no questions")
)

// maxQuestions caps the number of questions per quiz.
const maxQuestions = 5

// blank replaces the hidden word in fill-blank statements.
const blank = "____"

// fallbackDistractors pad multiple-choice options when the set has too few
// cards to supply three distractors.
var fallbackDistractors = []string{
	"None of the above",
	"Not covered in these notes",
	"The opposite is true",
}

// Question is a single quiz item. Options is populated for multiple-choice
// only. For true-false questions the answer is "true" or "false".
type Question struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options,omitempty"`
	Answer  string   `json:"answer"`
}

// Valid reports whether the mode is one of the supported quiz modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeMultipleChoice, ModeFillBlank, ModeTrueFalse:
		return true
	default:
		return false
	}
}

// Build constructs quiz questions from the given cards.
// The seed drives option shuffling so the same inputs produce the same quiz.
// Returns ErrInvalidMode for an unknown mode and ErrNoQuestions when the
// cards cannot support the requested mode.
func Build(cards []domain.Card, mode Mode, seed int64) ([]Question, error) {
	if !mode.Valid() {
		return nil, ErrInvalidMode
	}

	if len(cards) > maxQuestions {
		cards = cards[:maxQuestions]
	}

	var questions []Question
	switch mode {
	case ModeMultipleChoice:
		questions = buildMultipleChoice(cards, rand.New(rand.NewSource(seed)))
	case ModeFillBlank:
		questions = buildFillBlank(cards)
	case ModeTrueFalse:
		questions = buildTrueFalse(cards)
	}

	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return questions, nil
}

// buildMultipleChoice produces one question per card. The options are the
// correct back plus three distractors drawn from other cards' backs, padded
// from the fallback list for small sets.
func buildMultipleChoice(cards []domain.Card, rng *rand.Rand) []Question {
	questions := make([]Question, 0, len(cards))

	for i, card := range cards {
		if card.Front == "" || card.Back == "" {
			continue
		}

		others := make([]string, 0, len(cards)-1)
		for j, other := range cards {
			if j != i && other.Back != "" && other.Back != card.Back {
				others = append(others, other.Back)
			}
		}
		rng.Shuffle(len(others), func(a, b int) {
			others[a], others[b] = others[b], others[a]
		})

		if len(others) > 3 {
			others = others[:3]
		}
		for k := 0; len(others) < 3; k++ {
			others = append(others, fallbackDistractors[k%len(fallbackDistractors)])
		}

		options := append([]string{card.Back}, others...)
		rng.Shuffle(len(options), func(a, b int) {
			options[a], options[b] = options[b], options[a]
		})

		questions = append(questions, Question{
			Prompt:  card.Front,
			Options: options,
			Answer:  card.Back,
		})
	}

	return questions
}

// buildFillBlank blanks the longest word (more than three letters) out of
// each card's back. Cards with no blankable word are skipped.
func buildFillBlank(cards []domain.Card) []Question {
	var questions []Question

	for _, card := range cards {
		word := longestWord(card.Back)
		if word == "" {
			continue
		}

		questions = append(questions, Question{
			Prompt: strings.Replace(card.Back, word, blank, 1),
			Answer: word,
		})
	}

	return questions
}

// buildTrueFalse pairs even-indexed cards with their own back (true) and
// odd-indexed cards with the next card's back (false). A single-card set
// produces one true statement.
func buildTrueFalse(cards []domain.Card) []Question {
	var questions []Question

	for i, card := range cards {
		if card.Front == "" || card.Back == "" {
			continue
		}

		back := card.Back
		answer := "true"
		if i%2 == 1 && len(cards) > 1 {
			next := cards[(i+1)%len(cards)]
			if next.Back != "" && next.Back != card.Back {
				back = next.Back
				answer = "false"
			}
		}

		questions = append(questions, Question{
			Prompt: fmt.Sprintf("True or false: %s %s", card.Front, back),
			Answer: answer,
		})
	}

	return questions
}

// longestWord returns the longest word of more than three letters,
// ignoring surrounding punctuation. Length is counted in runes so
// multi-byte words are not over-weighted. Ties keep the earliest word.
func longestWord(text string) string {
	var longest string
	longestLen := 0
	for _, field := range strings.Fields(text) {
		word := strings.Trim(field, ".,;:!?\"'()")
		if n := utf8.RuneCountInString(word); n > 3 && n > longestLen {
			longest = word
			longestLen = n
		}
	}
	return longest
}
