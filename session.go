/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"strings"
	"unicode"
)

const (
	statusInProgress = "in-progress"
	statusWon        = "won"
	statusLost       = "lost"
)

const defaultCategory = "General"

// attemptsFor maps a difficulty label to the initial guess budget.
// Unrecognized values fall back to easy.
func attemptsFor(difficulty string) int {
	switch strings.ToLower(difficulty) {
	case "medium":
		return 5
	case "hard":
		return 4
	case "advanced":
		return 3
	default:
		return 6
	}
}

type guessOutcome int

const (
	guessIgnored guessOutcome = iota
	guessCorrect
	guessWrong
	guessWon
	guessLost
)

// Session holds one round of guessing state. A session with an empty word is
// awaiting the chooser's submission; guesses are not accepted until it is set.
type Session struct {
	Word      string
	Category  string
	Correct   []string
	Wrong     []string
	Remaining int
	Status    string
}

func newSession(attempts int) *Session {
	return &Session{
		Category:  defaultCategory,
		Remaining: attempts,
		Status:    statusInProgress,
	}
}

func (s *Session) awaitingWord() bool {
	return s.Word == ""
}

func (s *Session) terminal() bool {
	return s.Status == statusWon || s.Status == statusLost
}

// setWord opens the round: the word is uppercased, letter sets are cleared,
// and non-letter characters (spaces, punctuation) are revealed for free.
func (s *Session) setWord(word, category string, attempts int) {
	s.Word = strings.ToUpper(word)
	s.Category = strings.TrimSpace(category)
	if s.Category == "" {
		s.Category = defaultCategory
	}
	s.Correct = nil
	s.Wrong = nil
	s.Remaining = attempts
	s.Status = statusInProgress

	for _, r := range s.Word {
		if !unicode.IsLetter(r) && !hasLetter(s.Correct, string(r)) {
			s.Correct = append(s.Correct, string(r))
		}
	}
}

// guess resolves a single uppercased letter against the word. Redundant
// guesses, guesses before a word is set, and guesses after the round has
// ended are ignored rather than treated as errors.
func (s *Session) guess(letter string) guessOutcome {
	if s.awaitingWord() || s.terminal() {
		return guessIgnored
	}
	if hasLetter(s.Correct, letter) || hasLetter(s.Wrong, letter) {
		return guessIgnored
	}

	if strings.Contains(s.Word, letter) {
		s.Correct = append(s.Correct, letter)
		if s.solved() {
			s.Status = statusWon
			return guessWon
		}
		return guessCorrect
	}

	s.Wrong = append(s.Wrong, letter)
	s.Remaining--
	if s.Remaining <= 0 {
		s.Remaining = 0
		s.Status = statusLost
		return guessLost
	}
	return guessWrong
}

// solved reports whether every letter of the word has been guessed.
// Non-letter characters count as revealed.
func (s *Session) solved() bool {
	for _, r := range s.Word {
		if !unicode.IsLetter(r) {
			continue
		}
		if !hasLetter(s.Correct, string(r)) {
			return false
		}
	}
	return true
}

func hasLetter(list []string, letter string) bool {
	for _, l := range list {
		if l == letter {
			return true
		}
	}
	return false
}
