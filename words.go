/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/julienschmidt/httprouter"
)

type wordEntry struct {
	Word     string `json:"word"`
	Category string `json:"category"`
}

// fallbackWords keeps the chooser UI populated when no upstream source is
// configured or reachable.
var fallbackWords = []wordEntry{
	{Word: "ELEPHANT", Category: "Animals"},
	{Word: "PYTHON", Category: "Programming"},
	{Word: "PIZZA", Category: "Food"},
	{Word: "GUITAR", Category: "Music"},
}

// wordService caches the upstream word list for a fixed freshness window,
// refreshing lazily on the first access after expiry. It is a convenience
// path for the chooser UI and never authoritative for game state.
type wordService struct {
	mu        sync.Mutex
	url       string
	ttl       time.Duration
	client    *http.Client
	cached    []wordEntry
	fetchedAt time.Time
	now       func() time.Time
}

func newWordService(url string, ttl time.Duration) *wordService {
	return &wordService{
		url: url,
		ttl: ttl,
		client: &http.Client{
			Timeout: timeout,
		},
		now: time.Now,
	}
}

// words returns the freshest list available: the cache inside its window,
// then a refetch, then the stale cache, then the static fallback.
func (ws *wordService) words() []wordEntry {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.cached != nil && ws.now().Sub(ws.fetchedAt) < ws.ttl {
		return ws.cached
	}

	if ws.url != "" {
		entries, err := ws.fetch()
		if err == nil && len(entries) > 0 {
			ws.cached = entries
			ws.fetchedAt = ws.now()
			return ws.cached
		}
	}

	if ws.cached != nil {
		return ws.cached
	}

	return fallbackWords
}

func (ws *wordService) fetch() ([]wordEntry, error) {
	resp, err := ws.client.Get(ws.url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("word api status %d", resp.StatusCode)
	}

	var entries []wordEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func serveWords(cfg *Config, svc *wordService, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		data, err := json.Marshal(svc.words())
		if err != nil {
			errs <- err

			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		securityHeaders(cfg, w)

		written, err := w.Write(data)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Word list (%s) to %s in %s",
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}
