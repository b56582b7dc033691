/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

type joinRequest struct {
	client   *Client
	username string
	reply    chan error
}

type leaveRequest struct {
	client    *Client
	voluntary bool
}

type startRequest struct {
	client     *Client
	difficulty string
}

type wordRequest struct {
	client   *Client
	word     string
	category string
}

type guessRequest struct {
	client *Client
	letter string
}

// roomActor owns one Room. A single goroutine consumes the event channels,
// so room state needs no locking; cross-room operations never share state.
// done is closed when the room is deleted, unblocking any pending senders.
type roomActor struct {
	code  string
	store *RoomStore

	room    *Room
	clients map[string]*Client

	joins   chan joinRequest
	leaves  chan leaveRequest
	starts  chan startRequest
	words   chan wordRequest
	guesses chan guessRequest
	done    chan struct{}
}

// newRoomActor seeds the room with its creator and acknowledges the creation
// before the event loop starts, so no lock is needed for the initial sends.
func newRoomActor(code string, store *RoomStore, creator *Client, username string) *roomActor {
	a := &roomActor{
		code:    code,
		store:   store,
		room:    newRoom(code, creator.id, username),
		clients: map[string]*Client{creator.id: creator},
		joins:   make(chan joinRequest),
		leaves:  make(chan leaveRequest),
		starts:  make(chan startRequest),
		words:   make(chan wordRequest),
		guesses: make(chan guessRequest),
		done:    make(chan struct{}),
	}

	a.push(creator, RoomCreatedMessage{Type: "room_created", Room: code})
	a.push(creator, a.room.playerList())

	return a
}

func (a *roomActor) run(cfg *Config) {
	for {
		select {
		case jr := <-a.joins:
			a.handleJoin(cfg, jr)

		case lr := <-a.leaves:
			if a.handleLeave(cfg, lr) {
				return
			}

		case sr := <-a.starts:
			ems := a.room.StartGame(sr.client.id, sr.difficulty)
			if ems == nil {
				logf(cfg, "ROOMS: Ignoring start_game from non-host %s in %s", sr.client.id, a.code)
				continue
			}
			logf(cfg, "ROOMS: Round started in %s (difficulty %q)", a.code, sr.difficulty)
			a.deliver(cfg, ems)

		case wr := <-a.words:
			ems := a.room.SubmitWord(wr.client.id, wr.word, wr.category)
			if ems == nil {
				logf(cfg, "ROOMS: Ignoring submit_word from %s in %s", wr.client.id, a.code)
				continue
			}
			logf(cfg, "ROOMS: Word submitted in %s (category %q)", a.code, a.room.Session.Category)
			a.deliver(cfg, ems)

		case gr := <-a.guesses:
			a.deliver(cfg, a.room.Guess(gr.client.id, gr.letter))
		}
	}
}

func (a *roomActor) handleJoin(cfg *Config, jr joinRequest) {
	ems, err := a.room.Join(jr.client.id, jr.username)
	jr.reply <- err

	if err != nil {
		a.push(jr.client, JoinResultMessage{
			Type:    "join_result",
			Success: false,
			Message: "Username already taken",
		})
		return
	}

	a.clients[jr.client.id] = jr.client
	a.push(jr.client, JoinResultMessage{
		Type:    "join_result",
		Success: true,
		Room:    a.code,
	})
	a.deliver(cfg, ems)

	logf(cfg, "ROOMS: %q joined %s", jr.username, a.code)
}

// handleLeave reconciles a voluntary leave or a dropped connection and
// reports whether the room was deleted.
func (a *roomActor) handleLeave(cfg *Config, lr leaveRequest) bool {
	delete(a.clients, lr.client.id)

	ems, deleted := a.room.Leave(lr.client.id)

	if deleted {
		a.push(lr.client, SimpleMessage{Type: "room_closed", Message: "Room " + a.code + " closed."})
		a.store.delete(a.code)
		close(a.done)
		logf(cfg, "ROOMS: Deleted empty room %s", a.code)
		return true
	}

	if lr.voluntary {
		a.push(lr.client, SimpleMessage{Type: "room_left"})
	}
	a.deliver(cfg, ems)

	return false
}

func (a *roomActor) deliver(cfg *Config, ems []emission) {
	for _, em := range ems {
		if em.to != "" {
			if c, ok := a.clients[em.to]; ok && !a.push(c, em.msg) {
				logf(cfg, "ROOMS: Dropped message to slow client %s in %s", em.to, a.code)
			}
			continue
		}
		for id, c := range a.clients {
			if !a.push(c, em.msg) {
				logf(cfg, "ROOMS: Dropped broadcast to slow client %s in %s", id, a.code)
			}
		}
	}
}

// push never blocks; a client whose send buffer is full misses the message
// and will resync from the next snapshot.
func (a *roomActor) push(c *Client, msg any) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// join submits a join request and waits for the membership verdict.
func (a *roomActor) join(c *Client, username string) error {
	jr := joinRequest{client: c, username: username, reply: make(chan error, 1)}
	select {
	case a.joins <- jr:
		return <-jr.reply
	case <-a.done:
		return errRoomNotFound
	}
}

func (a *roomActor) leave(c *Client, voluntary bool) {
	select {
	case a.leaves <- leaveRequest{client: c, voluntary: voluntary}:
	case <-a.done:
	}
}

func (a *roomActor) startGame(c *Client, difficulty string) {
	select {
	case a.starts <- startRequest{client: c, difficulty: difficulty}:
	case <-a.done:
	}
}

func (a *roomActor) submitWord(c *Client, word, category string) {
	select {
	case a.words <- wordRequest{client: c, word: word, category: category}:
	case <-a.done:
	}
}

func (a *roomActor) guess(c *Client, letter string) {
	select {
	case a.guesses <- guessRequest{client: c, letter: letter}:
	case <-a.done:
	}
}
