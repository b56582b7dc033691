/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// msgsTo filters emissions by recipient; the empty id selects broadcasts.
func msgsTo(ems []emission, to string) []any {
	var out []any
	for _, em := range ems {
		if em.to == to {
			out = append(out, em.msg)
		}
	}
	return out
}

func joinAll(t *testing.T, r *Room, members ...[2]string) {
	t.Helper()
	for _, m := range members {
		_, err := r.Join(m[0], m[1])
		require.NoError(t, err)
	}
}

func TestJoinTracksMembership(t *testing.T) {
	r := newRoom("ABC123", "conn-1", "alice")
	joinAll(t, r, [2]string{"conn-2", "bob"}, [2]string{"conn-3", "carol"})

	require.Len(t, r.Members, 3)

	_, deleted := r.Leave("conn-2")
	assert.False(t, deleted)
	assert.Len(t, r.Members, 2)

	_, deleted = r.Leave("conn-3")
	assert.False(t, deleted)
	assert.Len(t, r.Members, 1)
}

func TestJoinRejectsDuplicateUsername(t *testing.T) {
	r := newRoom("ABC123", "conn-1", "alice")
	joinAll(t, r, [2]string{"conn-2", "bob"})

	ems, err := r.Join("conn-3", "bob")
	assert.ErrorIs(t, err, errUsernameTaken)
	assert.Nil(t, ems)
	assert.Len(t, r.Members, 2)
}

func TestJoinBroadcastsPlayerList(t *testing.T) {
	r := newRoom("ABC123", "conn-1", "alice")

	ems, err := r.Join("conn-2", "bob")
	require.NoError(t, err)

	var list *PlayerListMessage
	for _, msg := range msgsTo(ems, "") {
		if m, ok := msg.(PlayerListMessage); ok {
			list = &m
		}
	}
	require.NotNil(t, list)
	assert.Equal(t, "conn-1", list.CreatorID)
	require.Len(t, list.Players, 2)
	assert.Equal(t, "alice", list.Players[0].Username)
	assert.Equal(t, "bob", list.Players[1].Username)
}

func TestJoinMidRoundReceivesSnapshot(t *testing.T) {
	r := newRoom("ABC123", "conn-1", "alice")
	require.NotNil(t, r.StartGame("conn-1", "medium"))
	require.NotNil(t, r.SubmitWord(r.ChooserID, "HELLO WORLD", "Test"))

	ems, err := r.Join("conn-2", "bob")
	require.NoError(t, err)

	private := msgsTo(ems, "conn-2")
	require.Len(t, private, 2)

	started, ok := private[0].(GameStartedMessage)
	require.True(t, ok)
	assert.Equal(t, "HELLO WORLD", started.Word)
	assert.Equal(t, 11, started.WordLength)
	assert.Equal(t, "Test", started.Category)

	state, ok := private[1].(GameStateMessage)
	require.True(t, ok)
	assert.Equal(t, statusInProgress, state.Status)
	assert.Contains(t, state.CorrectLetters, " ")
}

func TestStartGameRequiresCreator(t *testing.T) {
	r := newRoom("ABC123", "conn-1", "alice")
	joinAll(t, r, [2]string{"conn-2", "bob"})

	assert.Nil(t, r.StartGame("conn-2", "easy"))
	assert.Empty(t, r.ChooserID)
	assert.Nil(t, r.Session)
}

func TestStartGamePicksExactlyOneChooser(t *testing.T) {
	r := newRoom("ABC123", "conn-1", "alice")
	joinAll(t, r, [2]string{"conn-2", "bob"}, [2]string{"conn-3", "carol"})

	ems := r.StartGame("conn-1", "easy")
	require.NotNil(t, ems)

	_, isMember := r.member(r.ChooserID)
	assert.True(t, isMember)

	var choosePrompts, waitPrompts int
	for _, em := range ems {
		if m, ok := em.msg.(SimpleMessage); ok {
			switch m.Type {
			case "choose_word":
				choosePrompts++
				assert.Equal(t, r.ChooserID, em.to)
			case "wait_for_word":
				waitPrompts++
				assert.NotEqual(t, r.ChooserID, em.to)
			}
		}
	}
	assert.Equal(t, 1, choosePrompts)
	assert.Equal(t, 2, waitPrompts)
}

func TestStartGameNeverRepeatsChooser(t *testing.T) {
	r := newRoom("ABC123", "conn-1", "alice")
	joinAll(t, r, [2]string{"conn-2", "bob"}, [2]string{"conn-3", "carol"})

	previous := ""
	for i := 0; i < 50; i++ {
		require.NotNil(t, r.StartGame("conn-1", "easy"))
		assert.NotEqual(t, previous, r.ChooserID, "round %d", i)
		previous = r.ChooserID
	}
}

func TestStartGameSoloMemberIsChooser(t *testing.T) {
	r := newRoom("ABC123", "conn-1", "alice")

	require.NotNil(t, r.StartGame("conn-1", "easy"))
	assert.Equal(t, "conn-1", r.ChooserID)

	// A lone member may keep the role across rounds.
	require.NotNil(t, r.StartGame("conn-1", "easy"))
	assert.Equal(t, "conn-1", r.ChooserID)
}

func TestStartGameResetsTerminalSession(t *testing.T) {
	r := newRoom("ABC123", "conn-1", "alice")
	joinAll(t, r, [2]string{"conn-2", "bob"})

	require.NotNil(t, r.StartGame("conn-1", "advanced"))
	require.NotNil(t, r.SubmitWord(r.ChooserID, "CAT", ""))

	require.NotNil(t, r.StartGame("conn-1", "hard"))
	assert.True(t, r.Session.awaitingWord())
	assert.Equal(t, 4, r.Attempts)
	assert.Equal(t, statusInProgress, r.Session.Status)
}

func TestSubmitWordRequiresChooserAwaitingWord(t *testing.T) {
	r := newRoom("ABC123", "conn-1", "alice")
	joinAll(t, r, [2]string{"conn-2", "bob"})

	assert.Nil(t, r.SubmitWord("conn-1", "CAT", ""), "no session yet")

	require.NotNil(t, r.StartGame("conn-1", "medium"))
	chooser := r.ChooserID
	other := "conn-1"
	if chooser == "conn-1" {
		other = "conn-2"
	}

	assert.Nil(t, r.SubmitWord(other, "CAT", ""), "non-chooser")
	assert.Nil(t, r.SubmitWord(chooser, "", ""), "empty word")

	require.NotNil(t, r.SubmitWord(chooser, "cat", ""))
	assert.Equal(t, "CAT", r.Session.Word)
	assert.Equal(t, defaultCategory, r.Session.Category)
	assert.Equal(t, 5, r.Session.Remaining)

	assert.Nil(t, r.SubmitWord(chooser, "DOG", ""), "word already set")
}

func TestGuessIgnoresChooserAndStrangers(t *testing.T) {
	r := newRoom("ABC123", "conn-1", "alice")
	joinAll(t, r, [2]string{"conn-2", "bob"})

	require.NotNil(t, r.StartGame("conn-1", "easy"))
	chooser := r.ChooserID
	require.NotNil(t, r.SubmitWord(chooser, "CAT", ""))

	assert.Nil(t, r.Guess(chooser, "C"), "chooser may not guess")
	assert.Nil(t, r.Guess("conn-99", "C"), "non-member may not guess")
	assert.Empty(t, r.Session.Correct)
}

func TestGuessBroadcastsSnapshotAndLog(t *testing.T) {
	r := newRoom("ABC123", "conn-1", "alice")
	joinAll(t, r, [2]string{"conn-2", "bob"})

	require.NotNil(t, r.StartGame("conn-1", "easy"))
	chooser := r.ChooserID
	guesser := "conn-1"
	if chooser == "conn-1" {
		guesser = "conn-2"
	}
	require.NotNil(t, r.SubmitWord(chooser, "CAT", "Animals"))

	ems := r.Guess(guesser, "c")
	require.NotNil(t, ems)

	broadcastMsgs := msgsTo(ems, "")
	require.Len(t, broadcastMsgs, 2)

	state, ok := broadcastMsgs[0].(GameStateMessage)
	require.True(t, ok)
	assert.Contains(t, state.CorrectLetters, "C")
	assert.Equal(t, 6, state.RemainingAttempts)

	logLine, ok := broadcastMsgs[1].(LogMessage)
	require.True(t, ok)
	assert.Contains(t, logLine.Message, "correctly")
}

func TestGuessTerminalOutcomeLogsWord(t *testing.T) {
	r := newRoom("ABC123", "conn-1", "alice")
	joinAll(t, r, [2]string{"conn-2", "bob"})

	require.NotNil(t, r.StartGame("conn-1", "advanced"))
	chooser := r.ChooserID
	guesser := "conn-1"
	if chooser == "conn-1" {
		guesser = "conn-2"
	}
	require.NotNil(t, r.SubmitWord(chooser, "A", ""))

	ems := r.Guess(guesser, "A")
	require.NotNil(t, ems)
	assert.Equal(t, statusWon, r.Session.Status)

	broadcastMsgs := msgsTo(ems, "")
	final, ok := broadcastMsgs[len(broadcastMsgs)-1].(LogMessage)
	require.True(t, ok)
	assert.Contains(t, final.Message, "won")
	assert.Contains(t, final.Message, "A")
}

func TestLeavePromotesFirstRemainingMember(t *testing.T) {
	r := newRoom("ABC123", "conn-1", "alice")
	joinAll(t, r, [2]string{"conn-2", "bob"}, [2]string{"conn-3", "carol"})

	ems, deleted := r.Leave("conn-1")
	require.False(t, deleted)
	assert.Equal(t, "conn-2", r.CreatorID)

	var list *PlayerListMessage
	var promoted bool
	for _, msg := range msgsTo(ems, "") {
		switch m := msg.(type) {
		case PlayerListMessage:
			list = &m
		case LogMessage:
			if m.Message == "bob is now the host." {
				promoted = true
			}
		}
	}
	require.NotNil(t, list)
	assert.Equal(t, "conn-2", list.CreatorID)
	assert.True(t, promoted)
}

func TestLeaveLastMemberDeletesRoom(t *testing.T) {
	r := newRoom("ABC123", "conn-1", "alice")

	ems, deleted := r.Leave("conn-1")
	assert.True(t, deleted)
	assert.Empty(t, ems)
	assert.Empty(t, r.Members)
}

func TestLeaveUnknownMemberIsNoop(t *testing.T) {
	r := newRoom("ABC123", "conn-1", "alice")

	ems, deleted := r.Leave("conn-99")
	assert.Nil(t, ems)
	assert.False(t, deleted)
	assert.Len(t, r.Members, 1)
}

func TestChooserLeaveMidRoundFreezesRound(t *testing.T) {
	r := newRoom("ABC123", "conn-1", "alice")
	joinAll(t, r, [2]string{"conn-2", "bob"}, [2]string{"conn-3", "carol"})

	require.NotNil(t, r.StartGame("conn-1", "easy"))
	chooser := r.ChooserID
	require.NotNil(t, r.SubmitWord(chooser, "CAT", ""))

	ems, deleted := r.Leave(chooser)
	require.False(t, deleted)

	// First remaining member inherits the role for the next round.
	assert.Equal(t, r.Members[0].ID, r.ChooserID)

	notices := msgsTo(ems, r.ChooserID)
	require.Len(t, notices, 1)
	notice, ok := notices[0].(SimpleMessage)
	require.True(t, ok)
	assert.Equal(t, "chooser_promoted", notice.Type)

	// The frozen round accepts no replacement word.
	assert.Nil(t, r.SubmitWord(r.ChooserID, "DOG", ""))
	assert.Equal(t, "CAT", r.Session.Word)
}

func TestStartGameHonorsMidRoundPromotion(t *testing.T) {
	// Fresh room per iteration so both the chooser-is-creator and
	// chooser-is-guest departures get exercised.
	for i := 0; i < 10; i++ {
		r := newRoom("ABC123", "conn-1", "alice")
		joinAll(t, r, [2]string{"conn-2", "bob"}, [2]string{"conn-3", "carol"})

		require.NotNil(t, r.StartGame("conn-1", "easy"))
		chooser := r.ChooserID
		require.NotNil(t, r.SubmitWord(chooser, "CAT", ""))

		_, deleted := r.Leave(chooser)
		require.False(t, deleted)
		promoted := r.ChooserID

		require.NotNil(t, r.StartGame(r.CreatorID, "easy"), "iteration %d", i)
		assert.Equal(t, promoted, r.ChooserID, "iteration %d: the notified member must choose the next round", i)

		// Once the handoff round has run, rotation resumes as usual.
		require.NotNil(t, r.SubmitWord(promoted, "DOG", ""))
		require.NotNil(t, r.StartGame(r.CreatorID, "easy"))
		assert.NotEqual(t, promoted, r.ChooserID, "iteration %d", i)
	}
}

func TestChooserLeaveAwaitingWordClearsRole(t *testing.T) {
	r := newRoom("ABC123", "conn-1", "alice")
	joinAll(t, r, [2]string{"conn-2", "bob"})

	require.NotNil(t, r.StartGame("conn-1", "easy"))
	chooser := r.ChooserID

	_, deleted := r.Leave(chooser)
	require.False(t, deleted)
	assert.Empty(t, r.ChooserID)
}
