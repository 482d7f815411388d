package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/signalquiz/internal/store"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("SIGNALQUIZ_CONFIG", "")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return out.String()
}

func seededDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quiz.db")
	s, err := store.Open(path)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	repo := s.EventRepo()
	require.NoError(t, repo.AppendPayment(ctx, store.PaymentEventData{
		SessionID: "sess-1234", From: "idle", To: "connecting",
	}))
	require.NoError(t, repo.AppendResult(ctx, store.ResultEventData{
		SessionID: "quiz-1", Score: 33, Category: "signal-builder", Revealed: true, DisplayName: "dana",
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "insight", InputTokens: 7, OutputTokens: 3, Success: true,
	}))
	return path
}

func TestVersion(t *testing.T) {
	out := execute(t, "version")
	assert.Contains(t, out, "signalquiz")
	assert.Contains(t, out, version)
}

func TestHistory(t *testing.T) {
	db := seededDB(t)
	out := execute(t, "history", "--db", db)
	assert.Contains(t, out, "33/40")
	assert.Contains(t, out, "signal-builder")
	assert.Contains(t, out, "dana")
}

func TestPayments(t *testing.T) {
	db := seededDB(t)
	out := execute(t, "payments", "--db", db, "--session", "sess-1234")
	assert.Contains(t, out, "idle -> connecting")

	out = execute(t, "payments", "--db", db, "--session", "other")
	assert.Contains(t, out, "No payment events found.")
}

func TestLLMStats(t *testing.T) {
	db := seededDB(t)
	out := execute(t, "llm", "stats", "--db", db)
	assert.Contains(t, out, "insight")
	assert.Contains(t, out, "TOTAL")
}

func TestLeaderboardEmpty(t *testing.T) {
	t.Setenv("SIGNALQUIZ_KV_BACKEND", "memory")
	out := execute(t, "leaderboard", "--db", filepath.Join(t.TempDir(), "q.db"))
	assert.Contains(t, out, "No scores recorded yet.")
}
