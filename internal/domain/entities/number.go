// Package entities contains domain entities used across the application.
package entities

// NumberWord pairs a number from 1 to 100 with its English word.
// The Thai word is derived from Value on demand and never stored.
type NumberWord struct {
	Value int    `json:"value"` // number from 1 to 100
	Word  string `json:"word"`  // lowercase English cardinal, e.g. "twenty one"
}

// Card is a flashcard as shown to the learner.
type Card struct {
	Number   NumberWord
	Thai     string // Thai cardinal for Number.Value
	Position int    // zero-based position in the catalog
	Total    int    // catalog size
}
