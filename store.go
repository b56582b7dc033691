/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"crypto/rand"
	"sync"
)

// RoomStore holds the live room actors keyed by room code. Codes are unique
// while a room is live and are released on deletion.
type RoomStore struct {
	mu    sync.Mutex
	rooms map[string]*roomActor
}

func newRoomStore() *RoomStore {
	return &RoomStore{
		rooms: make(map[string]*roomActor),
	}
}

// create generates an unused code, seeds the room with its creator as sole
// member, and starts the actor. The collision loop never surfaces as an error.
func (s *RoomStore) create(cfg *Config, creator *Client, username string) *roomActor {
	s.mu.Lock()
	defer s.mu.Unlock()

	var code string
	for {
		code = newRoomCode()
		if _, exists := s.rooms[code]; !exists {
			break
		}
	}

	actor := newRoomActor(code, s, creator, username)
	s.rooms[code] = actor
	go actor.run(cfg)

	return actor
}

func (s *RoomStore) get(code string) (*roomActor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	actor, ok := s.rooms[code]
	return actor, ok
}

func (s *RoomStore) delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
}

func (s *RoomStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}

// newRoomCode returns a crypto-random 6-character code. Codes are uppercase
// so they survive clients that uppercase user input before sending.
func newRoomCode() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		panic("crypto/rand failure: " + err.Error())
	}
	out := make([]byte, len(buf))
	for i := range out {
		out[i] = letters[int(buf[i])%len(letters)]
	}
	return string(out)
}

// connRegistry tracks which room, if any, each connection belongs to.
// A connection belongs to at most one room at a time; create and join are
// refused while a binding exists. Entries are only mutated from the owning
// connection's read loop, but the map itself is shared.
type connRegistry struct {
	mu    sync.Mutex
	rooms map[string]*roomActor
}

func newConnRegistry() *connRegistry {
	return &connRegistry{
		rooms: make(map[string]*roomActor),
	}
}

func (cr *connRegistry) bind(connID string, actor *roomActor) bool {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	if _, bound := cr.rooms[connID]; bound {
		return false
	}
	cr.rooms[connID] = actor
	return true
}

func (cr *connRegistry) lookup(connID string) *roomActor {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return cr.rooms[connID]
}

// release removes the binding and returns the actor it pointed at, if any.
func (cr *connRegistry) release(connID string) *roomActor {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	actor := cr.rooms[connID]
	delete(cr.rooms, connID)
	return actor
}
