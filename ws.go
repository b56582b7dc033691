/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one live websocket connection. The id is opaque and lives only as
// long as the connection; done is closed when the read loop exits.
type Client struct {
	conn *websocket.Conn
	send chan any
	done chan struct{}
	id   string
}

func serveWS(cfg *Config, store *RoomStore, reg *connRegistry) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "CONNS: Upgrade failed for %s: %v", realIP(r), err)
			return
		}

		client := &Client{
			conn: conn,
			send: make(chan any, 8),
			done: make(chan struct{}),
			id:   uuid.NewString(),
		}

		logf(cfg, "CONNS: %s connected from %s", client.id, realIP(r))

		go client.writePump()
		client.readPump(cfg, store, reg)

		logf(cfg, "CONNS: %s disconnected", client.id)
	}
}

func (c *Client) readPump(cfg *Config, store *RoomStore, reg *connRegistry) {
	defer func() {
		// A dropped connection is an implicit leave.
		if actor := reg.release(c.id); actor != nil {
			actor.leave(c, false)
		}
		close(c.done)
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "create_room":
			c.handleCreate(cfg, store, reg, msg)

		case "join_room":
			c.handleJoin(cfg, store, reg, msg)

		case "leave_room":
			c.handleLeave(reg, msg)

		case "start_game":
			if actor := c.roomFor(reg, msg.Room); actor != nil {
				actor.startGame(c, msg.Difficulty)
			}

		case "submit_word":
			if actor := c.roomFor(reg, msg.Room); actor != nil {
				actor.submitWord(c, msg.Word, msg.Category)
			}

		case "guess":
			if actor := c.roomFor(reg, msg.Room); actor != nil {
				actor.guess(c, msg.Letter)
			}

		default:
			// ignore unknown types
		}
	}
}

func (c *Client) handleCreate(cfg *Config, store *RoomStore, reg *connRegistry, msg ClientMessage) {
	if msg.Username == "" {
		return
	}
	if reg.lookup(c.id) != nil {
		c.reply(LogMessage{Type: "log", Message: "You are already in a room."})
		return
	}

	actor := store.create(cfg, c, msg.Username)
	reg.bind(c.id, actor)

	logf(cfg, "ROOMS: %q created room %s", msg.Username, actor.code)
}

func (c *Client) handleJoin(cfg *Config, store *RoomStore, reg *connRegistry, msg ClientMessage) {
	if msg.Username == "" || msg.Room == "" {
		return
	}
	if reg.lookup(c.id) != nil {
		c.reply(JoinResultMessage{Type: "join_result", Success: false, Message: errAlreadyInRoom.Error()})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(msg.Room))

	actor, ok := store.get(code)
	if !ok {
		c.reply(JoinResultMessage{Type: "join_result", Success: false, Message: "Room not found"})
		return
	}

	switch err := actor.join(c, msg.Username); err {
	case nil:
		reg.bind(c.id, actor)
	case errRoomNotFound:
		// The room emptied out between lookup and join.
		c.reply(JoinResultMessage{Type: "join_result", Success: false, Message: "Room not found"})
	default:
		// The actor already answered (e.g. username taken).
	}
}

func (c *Client) handleLeave(reg *connRegistry, msg ClientMessage) {
	actor := reg.lookup(c.id)
	if actor == nil || !strings.EqualFold(msg.Room, actor.code) {
		c.reply(LogMessage{Type: "log", Message: "Room not found."})
		return
	}

	reg.release(c.id)
	actor.leave(c, true)
}

// roomFor resolves a room-addressed event against the connection's own room.
// Unknown or foreign room codes are surfaced to the requester only.
func (c *Client) roomFor(reg *connRegistry, code string) *roomActor {
	actor := reg.lookup(c.id)
	if actor == nil || !strings.EqualFold(code, actor.code) {
		c.reply(LogMessage{Type: "log", Message: "Room not found."})
		return nil
	}
	return actor
}

// reply queues a message for this connection, dropping it if the writer is
// backed up.
func (c *Client) reply(msg any) {
	select {
	case c.send <- msg:
	default:
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for {
		select {
		case msg := <-c.send:
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
