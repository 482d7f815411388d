// Package leaderboard keeps the local top-100 score list. The whole list is
// stored as one JSON array under a single key and rewritten on every record.
package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/abhisek/signalquiz/internal/kv"
)

const (
	// Key is the storage key holding the serialized entries.
	Key = "signal-quiz-leaderboard"

	// Capacity is the maximum number of entries kept.
	Capacity = 100
)

// Entry is one leaderboard row. Timestamp is unix milliseconds.
type Entry struct {
	Username       string `json:"username"`
	Score          int    `json:"score"`
	Timestamp      int64  `json:"timestamp"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	FID            uint64 `json:"fid,omitempty"`
}

// IdentityKey identifies the player behind an entry: the platform id when
// known, otherwise the display name.
func (e Entry) IdentityKey() string {
	return IdentityKey(e.FID, e.Username)
}

// IdentityKey builds the key Rank matches on.
func IdentityKey(fid uint64, username string) string {
	if fid != 0 {
		return "fid:" + strconv.FormatUint(fid, 10)
	}
	return "name:" + username
}

// Board is a leaderboard over a key-value store. Writes are last-writer-wins;
// the board assumes a single local client.
type Board struct {
	store kv.Store
	now   func() time.Time
}

// Option configures a Board.
type Option func(*Board)

// WithClock overrides the clock used to stamp recorded entries.
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// New creates a Board persisting into store.
func New(store kv.Store, opts ...Option) *Board {
	b := &Board{store: store, now: time.Now}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Load returns the stored entries. A missing key, a read failure or
// malformed data all yield an empty list.
func (b *Board) Load(ctx context.Context) []Entry {
	raw, ok, err := b.store.Get(ctx, Key)
	if err != nil || !ok || raw == "" {
		return []Entry{}
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil || entries == nil {
		return []Entry{}
	}
	return entries
}

// Record appends e, re-sorts descending by score, keeps the top Capacity
// entries and overwrites the stored list. A zero Timestamp is stamped with
// the board's clock. The stored entry is returned so callers can Rank it.
func (b *Board) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.Timestamp == 0 {
		e.Timestamp = b.now().UnixMilli()
	}

	entries := append(b.Load(ctx), e)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > Capacity {
		entries = entries[:Capacity]
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return e, fmt.Errorf("marshal leaderboard: %w", err)
	}
	if err := b.store.Set(ctx, Key, string(data)); err != nil {
		return e, fmt.Errorf("save leaderboard: %w", err)
	}
	return e, nil
}

// Rank returns the 1-based position of the first entry matching both
// identityKey and timestamp, or 0 when there is none. Entries sharing an
// identity and timestamp resolve to the first match.
func (b *Board) Rank(ctx context.Context, identityKey string, timestamp int64) int {
	for i, e := range b.Load(ctx) {
		if e.IdentityKey() == identityKey && e.Timestamp == timestamp {
			return i + 1
		}
	}
	return 0
}

// Top returns at most n entries from the head of the list.
func (b *Board) Top(ctx context.Context, n int) []Entry {
	entries := b.Load(ctx)
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
