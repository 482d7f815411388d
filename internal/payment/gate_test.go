package payment

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/signalquiz/internal/config"
	"github.com/abhisek/signalquiz/internal/host"
	"github.com/abhisek/signalquiz/internal/store"
	"github.com/abhisek/signalquiz/internal/wallet"
)

const (
	testRecipient = "0x1A73665e17bFb07a8A9cE4Ab0bc2db71b36B38e4"
	testAddress   = "0x00000000000000000000000000000000000000Aa"
)

func testConfig() GateConfig {
	return GateConfig{
		Recipient:      testRecipient,
		AmountWei:      big.NewInt(10_000_000_000_000),
		ChainID:        8453,
		NetworkName:    "Base",
		ConnectTimeout: time.Second,
		ConfirmTimeout: time.Second,
	}
}

func connectedWallet() *wallet.Mock {
	return &wallet.Mock{
		Current: wallet.Account{Address: testAddress, ChainID: 8453, Connected: true},
		Receipt: wallet.Receipt{Success: true},
	}
}

var embedded = host.Environment{Embedded: true}

type memJournal struct {
	mu     sync.Mutex
	events []store.PaymentEventData
}

func (j *memJournal) AppendPayment(_ context.Context, d store.PaymentEventData) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, d)
	return nil
}

func (j *memJournal) path() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []string
	for _, e := range j.events {
		out = append(out, e.From+">"+e.To)
	}
	return out
}

// stateWatcher lets a test wait for the gate to reach a state.
type stateWatcher struct {
	ch chan State
}

func newStateWatcher() *stateWatcher {
	return &stateWatcher{ch: make(chan State, 32)}
}

func (w *stateWatcher) observe(s Snapshot) { w.ch <- s.State }

func (w *stateWatcher) waitFor(t *testing.T, want State) {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case s := <-w.ch:
			if s == want {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for state %s", want)
		}
	}
}

func TestRevealSuccess(t *testing.T) {
	w := connectedWallet()
	j := &memJournal{}
	g := NewGate(testConfig(), w, embedded, WithJournal(j))

	require.NoError(t, g.Reveal(context.Background()))

	snap := g.Snapshot()
	assert.Equal(t, StateSuccess, snap.State)
	assert.True(t, snap.Revealed)
	assert.Empty(t, snap.Error)
	assert.NotEmpty(t, snap.TxHash)
	assert.Equal(t, testAddress, snap.Address)

	sent := w.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, testRecipient, sent[0].To)
	assert.Equal(t, "10000000000000", sent[0].Value.String())
	assert.Equal(t, uint64(8453), sent[0].ChainID)

	assert.Equal(t, []string{"idle>ready", "ready>pending", "pending>confirming", "confirming>success"}, j.path())
	for _, e := range j.events {
		assert.Equal(t, snap.SessionID, e.SessionID)
	}
}

func TestResetAfterSuccessKeepsRevealed(t *testing.T) {
	w := connectedWallet()
	g := NewGate(testConfig(), w, embedded)
	ctx := context.Background()

	require.NoError(t, g.Reveal(ctx))
	g.Reset(ctx)

	snap := g.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	assert.True(t, snap.Revealed)

	w.SetAccount(wallet.Account{})
	g.Reset(ctx)
	snap = g.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.True(t, snap.Revealed)

	require.NoError(t, g.Reveal(ctx), "reveal after success is a no-op")
	assert.Len(t, w.Sent(), 1)
}

func TestRevealWhilePendingDoesNotResubmit(t *testing.T) {
	w := connectedWallet()
	w.SendGate = make(chan struct{})
	watch := newStateWatcher()
	g := NewGate(testConfig(), w, embedded, WithObserver(watch.observe))
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- g.Reveal(ctx) }()
	watch.waitFor(t, StatePending)

	assert.True(t, g.Snapshot().Loading)
	assert.ErrorIs(t, g.Reveal(ctx), ErrBusy)
	assert.ErrorIs(t, g.Reveal(ctx), ErrBusy)

	g.Reset(ctx)
	assert.Equal(t, StatePending, g.Snapshot().State, "reset is ignored while loading")

	close(w.SendGate)
	require.NoError(t, <-done)
	assert.Len(t, w.Sent(), 1)
	assert.True(t, g.Revealed())
}

func TestRevealWhileConfirmingIsBusy(t *testing.T) {
	w := connectedWallet()
	w.ReceiptGate = make(chan struct{})
	watch := newStateWatcher()
	g := NewGate(testConfig(), w, embedded, WithObserver(watch.observe))
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- g.Reveal(ctx) }()
	watch.waitFor(t, StateConfirming)

	assert.ErrorIs(t, g.Reveal(ctx), ErrBusy)
	close(w.ReceiptGate)
	require.NoError(t, <-done)
	assert.Len(t, w.Sent(), 1)
}

func TestSubmitFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"insufficient funds", errors.New("insufficient funds for gas * price + value"), "Insufficient funds for transaction"},
		{"rejected message", errors.New("User rejected the request."), "Transaction cancelled by user"},
		{"rejected code", &wallet.Error{Kind: wallet.FailureRejected, Code: wallet.CodeUserRejected, Err: errors.New("denied")}, "Transaction cancelled by user"},
		{"generic", errors.New("nonce too low"), "Transaction failed. Please try again."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := connectedWallet()
			w.SendErr = tt.err
			g := NewGate(testConfig(), w, embedded)

			require.NoError(t, g.Reveal(context.Background()))
			snap := g.Snapshot()
			assert.Equal(t, StateError, snap.State)
			assert.Equal(t, tt.want, snap.Error)
			assert.False(t, snap.Revealed)
		})
	}
}

func TestConfirmationFailures(t *testing.T) {
	t.Run("receipt error", func(t *testing.T) {
		w := connectedWallet()
		w.ReceiptErr = errors.New("header not found")
		g := NewGate(testConfig(), w, embedded)
		require.NoError(t, g.Reveal(context.Background()))
		assert.Equal(t, MsgConfirmFailed, g.Snapshot().Error)
		assert.False(t, g.Revealed())
	})

	t.Run("reverted", func(t *testing.T) {
		w := connectedWallet()
		w.Receipt = wallet.Receipt{Success: false}
		g := NewGate(testConfig(), w, embedded)
		require.NoError(t, g.Reveal(context.Background()))
		snap := g.Snapshot()
		assert.Equal(t, StateError, snap.State)
		assert.Equal(t, MsgConfirmFailed, snap.Error)
		assert.NotEmpty(t, snap.TxHash)
	})

	t.Run("timeout", func(t *testing.T) {
		w := connectedWallet()
		w.ReceiptGate = make(chan struct{})
		cfg := testConfig()
		cfg.ConfirmTimeout = 20 * time.Millisecond
		g := NewGate(cfg, w, embedded)
		require.NoError(t, g.Reveal(context.Background()))
		assert.Equal(t, MsgConfirmFailed, g.Snapshot().Error)
	})
}

func TestWrongNetwork(t *testing.T) {
	w := connectedWallet()
	w.Current.ChainID = 1
	g := NewGate(testConfig(), w, embedded)

	require.NoError(t, g.Reveal(context.Background()))
	snap := g.Snapshot()
	assert.Equal(t, StateError, snap.State)
	assert.Equal(t, "Please switch to Base network", snap.Error)
	assert.Empty(t, w.Sent())
}

// peekWallet runs peek before every Account lookup.
type peekWallet struct {
	*wallet.Mock
	peek func()
}

func (p peekWallet) Account(ctx context.Context) (wallet.Account, error) {
	if p.peek != nil {
		p.peek()
	}
	return p.Mock.Account(ctx)
}

func TestRevealFromErrorKeepsMessageUntilTransition(t *testing.T) {
	w := connectedWallet()
	w.Current.ChainID = 1
	j := &memJournal{}
	pw := peekWallet{Mock: w}
	g := NewGate(testConfig(), &pw, embedded, WithJournal(j))

	require.NoError(t, g.Reveal(context.Background()))
	require.Equal(t, StateError, g.Snapshot().State)

	w.SetAccount(wallet.Account{Address: testAddress, ChainID: 8453, Connected: true})
	var during Snapshot
	pw.peek = func() { during = g.Snapshot() }

	require.NoError(t, g.Reveal(context.Background()))
	assert.Equal(t, StateError, during.State)
	assert.Equal(t, "Please switch to Base network", during.Error)
	assert.Equal(t, StateSuccess, g.Snapshot().State)

	var cleared bool
	for _, e := range j.events {
		if e.From == string(StateError) && e.To == string(StateReady) {
			cleared = e.Error == ""
		}
	}
	assert.True(t, cleared, "transition out of error journals the cleared message")
}

func TestUnconfiguredRecipient(t *testing.T) {
	for _, addr := range []string{"", config.PlaceholderRecipient, "0x1234"} {
		t.Run(fmt.Sprintf("%q", addr), func(t *testing.T) {
			cfg := testConfig()
			cfg.Recipient = addr
			w := connectedWallet()
			g := NewGate(cfg, w, embedded)

			require.NoError(t, g.Reveal(context.Background()))
			assert.Equal(t, MsgNotConfigured, g.Snapshot().Error)
			assert.Empty(t, w.Sent())
		})
	}
}

func TestNotConnectedStandalone(t *testing.T) {
	w := &wallet.Mock{}
	j := &memJournal{}
	g := NewGate(testConfig(), w, host.Environment{}, WithJournal(j))

	require.NoError(t, g.Reveal(context.Background()))
	snap := g.Snapshot()
	assert.Equal(t, StateError, snap.State)
	assert.Equal(t, MsgConnectFirst, snap.Error)
	assert.Zero(t, w.Connects())
	assert.Equal(t, []string{"idle>error"}, j.path())
}

func TestConnectThenPay(t *testing.T) {
	w := &wallet.Mock{
		ConnectAccount: wallet.Account{Address: testAddress, ChainID: 8453},
		Receipt:        wallet.Receipt{Success: true},
	}
	j := &memJournal{}
	g := NewGate(testConfig(), w, embedded, WithJournal(j))
	ctx := context.Background()

	require.NoError(t, g.Reveal(ctx))
	snap := g.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	assert.Equal(t, testAddress, snap.Address)
	assert.Equal(t, 1, w.Connects())
	assert.Empty(t, w.Sent(), "connecting does not pay")

	require.NoError(t, g.Reveal(ctx))
	assert.True(t, g.Revealed())
	assert.Equal(t, []string{
		"idle>connecting", "connecting>ready",
		"ready>pending", "pending>confirming", "confirming>success",
	}, j.path())
}

func TestConnectFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"no connector", wallet.ErrNoConnector, MsgConnectFirst},
		{"declined", &wallet.Error{Kind: wallet.FailureRejected, Code: wallet.CodeUserRejected, Err: errors.New("denied")}, MsgConnectCancelled},
		{"other", errors.New("boom"), MsgConnectFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &wallet.Mock{ConnectErr: tt.err}
			g := NewGate(testConfig(), w, embedded)
			require.NoError(t, g.Reveal(context.Background()))
			snap := g.Snapshot()
			assert.Equal(t, StateError, snap.State)
			assert.Equal(t, tt.want, snap.Error)
		})
	}
}

func TestConnectTimeout(t *testing.T) {
	w := &wallet.Mock{ConnectGate: make(chan struct{})}
	cfg := testConfig()
	cfg.ConnectTimeout = 20 * time.Millisecond
	g := NewGate(cfg, w, embedded)

	start := time.Now()
	require.NoError(t, g.Reveal(context.Background()))
	assert.Less(t, time.Since(start), time.Second)

	snap := g.Snapshot()
	assert.Equal(t, StateError, snap.State)
	assert.Equal(t, MsgConnectTimeout, snap.Error)
	assert.False(t, snap.Loading)
}

func TestResetAfterError(t *testing.T) {
	ctx := context.Background()

	w := connectedWallet()
	w.SendErr = errors.New("nonce too low")
	g := NewGate(testConfig(), w, embedded)
	require.NoError(t, g.Reveal(ctx))
	require.Equal(t, StateError, g.Snapshot().State)

	g.Reset(ctx)
	snap := g.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	assert.Empty(t, snap.Error)

	w.SendErr = nil
	require.NoError(t, g.Reveal(ctx))
	assert.True(t, g.Revealed())
	assert.Len(t, w.Sent(), 2)
}

func TestResetDisconnectedGoesIdle(t *testing.T) {
	ctx := context.Background()
	g := NewGate(testConfig(), &wallet.Mock{}, host.Environment{})
	require.NoError(t, g.Reveal(ctx))
	g.Reset(ctx)
	assert.Equal(t, StateIdle, g.Snapshot().State)
}

func TestSync(t *testing.T) {
	ctx := context.Background()

	g := NewGate(testConfig(), &wallet.Mock{}, embedded)
	g.Sync(ctx)
	assert.Equal(t, StateIdle, g.Snapshot().State)

	w := connectedWallet()
	g = NewGate(testConfig(), w, embedded)
	g.Sync(ctx)
	snap := g.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	assert.Equal(t, testAddress, snap.Address)
}

func TestGateConfigFrom(t *testing.T) {
	gc, err := GateConfigFrom(config.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "10000000000000", gc.AmountWei.String())
	assert.Equal(t, uint64(8453), gc.ChainID)
	assert.Equal(t, 60*time.Second, gc.ConnectTimeout)

	bad := config.DefaultConfig()
	bad.Payment.AmountETH = "free"
	_, err = GateConfigFrom(bad)
	assert.Error(t, err)
}

func TestStateLoading(t *testing.T) {
	loading := map[State]bool{
		StateIdle: false, StateConnecting: true, StateReady: false,
		StatePending: true, StateConfirming: true, StateSuccess: false, StateError: false,
	}
	for s, want := range loading {
		assert.Equal(t, want, s.Loading(), s)
	}
}

func TestJournalWithStore(t *testing.T) {
	s, err := store.Open("file:payment_journal?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	repo := s.EventRepo()
	g := NewGate(testConfig(), connectedWallet(), embedded, WithJournal(repo))
	require.NoError(t, g.Reveal(context.Background()))

	events, err := repo.Payments(context.Background(), store.QueryOpts{SessionID: g.Snapshot().SessionID})
	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, "success", events[0].To)
	assert.NotEmpty(t, events[0].TxHash)
}
