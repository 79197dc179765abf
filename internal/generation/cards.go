package generation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/studyflash/studyflash-api/internal/domain"
)

const (
	// MaxCardsPerGeneration caps the number of cards produced per request.
	MaxCardsPerGeneration = 5

	// conceptCardFront is the front of the lead card backed by the model answer.
	conceptCardFront = "What are the key concepts from this text?"

	// fallbackCardFront is used when neither the model answer nor the
	// sentence pass yields any cards.
	fallbackCardFront = "What is the main topic of this text?"

	// minSentenceLength filters out fragments after the sentence split.
	minSentenceLength = 10

	// minCardSentenceLength is the threshold for a sentence to become a card.
	minCardSentenceLength = 20

	// maxSentenceCards bounds how many sentences are considered.
	maxSentenceCards = 4

	// frontExcerptLength is how much of a sentence appears on the card front.
	frontExcerptLength = 50

	// fallbackExcerptLength is how much of the notes the fallback card quotes.
	fallbackExcerptLength = 200
)

var sentenceDelimiters = regexp.MustCompile(`[.!?]+`)

// BuildCards derives flashcards from the user's notes and the model answer.
//
// The lead card carries the model answer when one is available. Up to four
// further cards quote individual sentences from the notes. When neither
// source yields a card, a single fallback card quoting the start of the
// notes guarantees a non-empty result. The output never exceeds
// MaxCardsPerGeneration cards, and every card carries the given subject
// label (or "General" when none is provided).
func BuildCards(notes, answer, subject string) []domain.Card {
	if subject == "" {
		subject = domain.DefaultSubjectLabel
	}

	cards := make([]domain.Card, 0, MaxCardsPerGeneration)

	if strings.TrimSpace(answer) != "" {
		cards = append(cards, domain.Card{
			Front:   conceptCardFront,
			Back:    answer,
			Subject: subject,
		})
	}

	sentences := splitSentences(notes)
	if len(sentences) > maxSentenceCards {
		sentences = sentences[:maxSentenceCards]
	}
	for _, sentence := range sentences {
		if len([]rune(sentence)) <= minCardSentenceLength {
			continue
		}
		cards = append(cards, domain.Card{
			Front:   fmt.Sprintf("What does this statement mean: \"%s...\"?", truncateRunes(sentence, frontExcerptLength)),
			Back:    sentence,
			Subject: subject,
		})
	}

	if len(cards) == 0 {
		back := truncateRunes(notes, fallbackExcerptLength)
		if len([]rune(notes)) > fallbackExcerptLength {
			back += "..."
		}
		cards = append(cards, domain.Card{
			Front:   fallbackCardFront,
			Back:    back,
			Subject: subject,
		})
	}

	if len(cards) > MaxCardsPerGeneration {
		cards = cards[:MaxCardsPerGeneration]
	}
	return cards
}

// splitSentences breaks the notes on runs of sentence punctuation and keeps
// the trimmed fragments long enough to be meaningful.
func splitSentences(text string) []string {
	var sentences []string
	for _, fragment := range sentenceDelimiters.Split(text, -1) {
		trimmed := strings.TrimSpace(fragment)
		if len([]rune(trimmed)) > minSentenceLength {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

// truncateRunes returns at most n runes of s, never splitting a multi-byte
// character.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
