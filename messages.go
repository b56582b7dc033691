/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

// ClientMessage covers every event a client may send. Room-addressed events
// carry the room code, matching the callback-free fire-and-forget model.
type ClientMessage struct {
	Type       string `json:"type"`                 // "create_room", "join_room", "leave_room", "start_game", "submit_word", "guess"
	Room       string `json:"room,omitempty"`       // all but create_room
	Username   string `json:"username,omitempty"`   // create_room / join_room
	Difficulty string `json:"difficulty,omitempty"` // start_game
	Word       string `json:"word,omitempty"`       // submit_word
	Category   string `json:"category,omitempty"`   // submit_word
	Letter     string `json:"letter,omitempty"`     // guess
}

// RoomCreatedMessage acknowledges create_room with the fresh room code.
type RoomCreatedMessage struct {
	Type string `json:"type"` // "room_created"
	Room string `json:"room"`
}

// JoinResultMessage acknowledges join_room, successful or not.
type JoinResultMessage struct {
	Type    string `json:"type"` // "join_result"
	Success bool   `json:"success"`
	Room    string `json:"room,omitempty"`
	Message string `json:"message,omitempty"` // user-facing text on failure
}

// SimpleMessage is for generic single-recipient notifications
// ("choose_word", "wait_for_word", "chooser_promoted", "room_left", "room_closed").
type SimpleMessage struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

type PlayerInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// PlayerListMessage broadcasts current membership with the creator marked.
type PlayerListMessage struct {
	Type      string       `json:"type"` // "player_list"
	Players   []PlayerInfo `json:"players"`
	CreatorID string       `json:"creator_id"`
}

// GameStartedMessage announces a submitted word and opens the round.
type GameStartedMessage struct {
	Type       string `json:"type"` // "game_started"
	Word       string `json:"word"`
	WordLength int    `json:"word_length"`
	Category   string `json:"category"`
	Chooser    string `json:"chooser"`
}

// GameStateMessage is the authoritative session snapshot sent after every
// resolved guess and to members joining mid-round.
type GameStateMessage struct {
	Type              string   `json:"type"` // "game_state"
	Word              string   `json:"word"`
	Category          string   `json:"category"`
	CorrectLetters    []string `json:"correct_letters"`
	WrongLetters      []string `json:"wrong_letters"`
	RemainingAttempts int      `json:"remaining_attempts"`
	Status            string   `json:"status"`
}

// LogMessage feeds the room activity log.
type LogMessage struct {
	Type    string `json:"type"` // "log"
	Message string `json:"message"`
}
