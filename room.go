/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"crypto/rand"
	"fmt"
	"unicode"
)

type Member struct {
	ID       string
	Username string
}

// Room is the authoritative state for one game room. All transitions are
// synchronous and return the messages to deliver, so the whole lifecycle can
// be exercised without a live connection; the room actor in hub.go serializes
// calls and handles delivery.
type Room struct {
	Code      string
	CreatorID string
	Members   []Member // insertion order, used for promotion fallback
	ChooserID string
	handoff   bool // ChooserID was pre-assigned by a mid-round chooser departure
	Attempts  int // guess budget chosen at start_game, applied at submit_word
	Session   *Session
}

// emission is one outbound message: addressed when to is set, room-wide
// otherwise.
type emission struct {
	to  string
	msg any
}

func newRoom(code, creatorID, username string) *Room {
	return &Room{
		Code:      code,
		CreatorID: creatorID,
		Members:   []Member{{ID: creatorID, Username: username}},
	}
}

func (r *Room) member(id string) (Member, bool) {
	for _, m := range r.Members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

// Join appends a member, rejecting duplicate usernames without mutating
// membership. Members joining mid-round also get the current round snapshot.
func (r *Room) Join(id, username string) ([]emission, error) {
	for _, m := range r.Members {
		if m.Username == username {
			return nil, errUsernameTaken
		}
	}

	r.Members = append(r.Members, Member{ID: id, Username: username})

	out := []emission{
		{msg: LogMessage{Type: "log", Message: username + " has joined the room!"}},
		{msg: r.playerList()},
	}

	if r.Session != nil && !r.Session.awaitingWord() {
		out = append(out,
			emission{to: id, msg: r.gameStarted()},
			emission{to: id, msg: r.gameState()},
		)
	}

	return out, nil
}

// Leave removes a member and rewires the room around the departure: the first
// remaining member inherits the creator role, and a chooser who leaves
// mid-round hands the role to the first remaining member for the next round.
// Reports deleted=true when the last member departs.
func (r *Room) Leave(id string) (out []emission, deleted bool) {
	idx := -1
	for i, m := range r.Members {
		if m.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}

	departed := r.Members[idx]
	r.Members = append(r.Members[:idx], r.Members[idx+1:]...)

	if len(r.Members) == 0 {
		return nil, true
	}

	out = append(out, emission{msg: LogMessage{Type: "log", Message: departed.Username + " has left the room."}})

	if r.CreatorID == id {
		r.CreatorID = r.Members[0].ID
		out = append(out, emission{msg: LogMessage{Type: "log", Message: r.Members[0].Username + " is now the host."}})
	}

	if r.ChooserID == id {
		if r.Session != nil && !r.Session.awaitingWord() {
			// Mid-round: the round stays frozen, and the promoted member
			// chooses the next round's word.
			r.ChooserID = r.Members[0].ID
			r.handoff = true
			out = append(out, emission{
				to:  r.ChooserID,
				msg: SimpleMessage{Type: "chooser_promoted", Message: "The word chooser left. You will choose the next word."},
			})
		} else {
			r.ChooserID = ""
			r.handoff = false
		}
	}

	out = append(out, emission{msg: r.playerList()})

	return out, false
}

// StartGame resets the session to an empty awaiting-word state and picks the
// chooser for the round: a member promoted by a mid-round chooser departure
// keeps the role, otherwise the pick is random and never repeats the previous
// chooser while more than one member remains. Only the creator may start;
// anything else is a no-op.
func (r *Room) StartGame(requesterID, difficulty string) []emission {
	if requesterID != r.CreatorID {
		return nil
	}

	r.Attempts = attemptsFor(difficulty)

	pick, ok := r.member(r.ChooserID)
	if r.handoff && ok {
		r.handoff = false
	} else {
		previous := r.ChooserID
		pick = r.Members[randomIndex(len(r.Members))]
		for len(r.Members) > 1 && pick.ID == previous {
			pick = r.Members[randomIndex(len(r.Members))]
		}
	}
	r.ChooserID = pick.ID

	r.Session = newSession(r.Attempts)

	out := make([]emission, 0, len(r.Members)+1)
	for _, m := range r.Members {
		if m.ID == r.ChooserID {
			out = append(out, emission{to: m.ID, msg: SimpleMessage{Type: "choose_word", Message: "You are the word chooser!"}})
		} else {
			out = append(out, emission{to: m.ID, msg: SimpleMessage{Type: "wait_for_word", Message: "Waiting for the chooser to pick a word..."}})
		}
	}
	out = append(out, emission{msg: LogMessage{Type: "log", Message: pick.Username + " is choosing a word."}})

	return out
}

// SubmitWord opens the round. Valid only from the current chooser while the
// session is awaiting a word; everything else is ignored.
func (r *Room) SubmitWord(requesterID, word, category string) []emission {
	if requesterID != r.ChooserID || requesterID == "" {
		return nil
	}
	if r.Session == nil || !r.Session.awaitingWord() {
		return nil
	}
	if word == "" {
		return nil
	}

	r.Session.setWord(word, category, r.Attempts)

	return []emission{
		{msg: r.gameStarted()},
		{msg: r.gameState()},
		{msg: LogMessage{Type: "log", Message: "A word has been chosen! Category: " + r.Session.Category}},
	}
}

// Guess resolves one letter from a non-chooser member. Redundant and
// out-of-turn guesses are dropped silently per the fire-and-forget model.
func (r *Room) Guess(requesterID, letter string) []emission {
	if requesterID == r.ChooserID {
		return nil
	}
	guesser, ok := r.member(requesterID)
	if !ok || r.Session == nil {
		return nil
	}

	letter = normalizeLetter(letter)
	if letter == "" {
		return nil
	}

	outcome := r.Session.guess(letter)
	if outcome == guessIgnored {
		return nil
	}

	var text string
	switch outcome {
	case guessCorrect, guessWon:
		text = fmt.Sprintf("%s guessed %q correctly!", guesser.Username, letter)
	default:
		text = fmt.Sprintf("%s guessed %q. Not in the word!", guesser.Username, letter)
	}

	out := []emission{
		{msg: r.gameState()},
		{msg: LogMessage{Type: "log", Message: text}},
	}

	switch outcome {
	case guessWon:
		out = append(out, emission{msg: LogMessage{Type: "log", Message: "Players won! The word was " + r.Session.Word + "."}})
	case guessLost:
		out = append(out, emission{msg: LogMessage{Type: "log", Message: "Players lost! The word was " + r.Session.Word + "."}})
	}

	return out
}

func (r *Room) playerList() PlayerListMessage {
	players := make([]PlayerInfo, 0, len(r.Members))
	for _, m := range r.Members {
		players = append(players, PlayerInfo{ID: m.ID, Username: m.Username})
	}
	return PlayerListMessage{
		Type:      "player_list",
		Players:   players,
		CreatorID: r.CreatorID,
	}
}

func (r *Room) gameStarted() GameStartedMessage {
	return GameStartedMessage{
		Type:       "game_started",
		Word:       r.Session.Word,
		WordLength: len([]rune(r.Session.Word)),
		Category:   r.Session.Category,
		Chooser:    r.ChooserID,
	}
}

func (r *Room) gameState() GameStateMessage {
	s := r.Session
	return GameStateMessage{
		Type:              "game_state",
		Word:              s.Word,
		Category:          s.Category,
		CorrectLetters:    append([]string{}, s.Correct...),
		WrongLetters:      append([]string{}, s.Wrong...),
		RemainingAttempts: s.Remaining,
		Status:            s.Status,
	}
}

// normalizeLetter uppercases a single-letter guess, returning "" for anything
// that is not exactly one letter.
func normalizeLetter(letter string) string {
	runes := []rune(letter)
	if len(runes) != 1 || !unicode.IsLetter(runes[0]) {
		return ""
	}
	return string(unicode.ToUpper(runes[0]))
}

func randomIndex(n int) int {
	if n <= 1 {
		return 0
	}
	var b [1]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0
	}
	return int(b[0]) % n
}
