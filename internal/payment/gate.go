// Package payment implements the pay-to-reveal gate: a per-results-screen
// session that connects a wallet, sends a fixed transfer and waits for it
// to be mined before the score may be shown.
package payment

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/signalquiz/internal/config"
	"github.com/abhisek/signalquiz/internal/host"
	"github.com/abhisek/signalquiz/internal/store"
	"github.com/abhisek/signalquiz/internal/wallet"
)

// ErrBusy is returned when a wallet call is already in flight.
var ErrBusy = errors.New("payment: operation in progress")

// GateConfig is the fixed transaction the gate asks for.
type GateConfig struct {
	Recipient      string
	AmountWei      *big.Int
	ChainID        uint64
	NetworkName    string
	ConnectTimeout time.Duration
	ConfirmTimeout time.Duration
}

// GateConfigFrom derives a GateConfig from application config.
func GateConfigFrom(c config.Config) (GateConfig, error) {
	wei, err := c.Payment.AmountWei()
	if err != nil {
		return GateConfig{}, err
	}
	return GateConfig{
		Recipient:      c.Payment.RecipientAddress,
		AmountWei:      wei,
		ChainID:        c.Network.ChainID,
		NetworkName:    c.Network.Name,
		ConnectTimeout: c.Payment.ConnectTimeout,
		ConfirmTimeout: c.Payment.ConfirmTimeout,
	}, nil
}

// RecipientConfigured reports whether addr is a usable payment address.
func RecipientConfigured(addr string) bool {
	return addr != "" && addr != config.PlaceholderRecipient && common.IsHexAddress(addr)
}

// Journal records gate transitions. store.EventRepo satisfies it.
type Journal interface {
	AppendPayment(ctx context.Context, data store.PaymentEventData) error
}

// Option configures a Gate.
type Option func(*Gate)

// WithJournal records every transition to j.
func WithJournal(j Journal) Option {
	return func(g *Gate) { g.journal = j }
}

// WithLogger sets the debug logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Gate) { g.log = l }
}

// WithObserver calls fn with a snapshot after every transition. fn runs on
// the goroutine driving the gate and must not block.
func WithObserver(fn func(Snapshot)) Option {
	return func(g *Gate) { g.observer = fn }
}

// Gate is one payment session. All methods are safe for concurrent use;
// only one wallet operation runs at a time.
type Gate struct {
	cfg      GateConfig
	wallet   wallet.Wallet
	env      host.Environment
	journal  Journal
	log      *zap.Logger
	observer func(Snapshot)

	mu       sync.Mutex
	id       string
	busy     bool
	state    State
	address  string
	txHash   string
	errMsg   string
	revealed bool
}

// NewGate starts a payment session in StateIdle.
func NewGate(cfg GateConfig, w wallet.Wallet, env host.Environment, opts ...Option) *Gate {
	g := &Gate{
		cfg:    cfg,
		wallet: w,
		env:    env,
		log:    zap.NewNop(),
		id:     uuid.NewString(),
		state:  StateIdle,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Snapshot returns the current session state.
func (g *Gate) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

// Revealed reports whether the payment has been confirmed.
func (g *Gate) Revealed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.revealed
}

func (g *Gate) snapshotLocked() Snapshot {
	return Snapshot{
		SessionID: g.id,
		State:     g.state,
		Address:   g.address,
		TxHash:    g.txHash,
		Error:     g.errMsg,
		Revealed:  g.revealed,
		Loading:   g.state.Loading(),
	}
}

// acquire claims the gate for one operation.
func (g *Gate) acquire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy || g.state.Loading() {
		return false
	}
	g.busy = true
	return true
}

func (g *Gate) release() {
	g.mu.Lock()
	g.busy = false
	g.mu.Unlock()
}

// transition moves to state to after applying mutate, then reports the
// change to the journal, the logger and the observer.
func (g *Gate) transition(ctx context.Context, to State, mutate func()) {
	g.mu.Lock()
	from := g.state
	g.state = to
	if mutate != nil {
		mutate()
	}
	snap := g.snapshotLocked()
	g.mu.Unlock()

	g.log.Debug("payment transition",
		zap.String("session", snap.SessionID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("tx", snap.TxHash),
		zap.String("error", snap.Error),
	)

	if g.journal != nil {
		err := g.journal.AppendPayment(context.WithoutCancel(ctx), store.PaymentEventData{
			SessionID: snap.SessionID,
			From:      string(from),
			To:        string(to),
			Address:   snap.Address,
			TxHash:    snap.TxHash,
			Error:     snap.Error,
		})
		if err != nil {
			g.log.Warn("journal payment transition", zap.Error(err))
		}
	}

	if g.observer != nil {
		g.observer(snap)
	}
}

func (g *Gate) fail(ctx context.Context, msg string) {
	g.transition(ctx, StateError, func() { g.errMsg = msg })
}

// Sync moves an idle session to ready when the wallet is already
// connected. It does nothing while another operation runs.
func (g *Gate) Sync(ctx context.Context) {
	if !g.acquire() {
		return
	}
	defer g.release()

	if g.Snapshot().State != StateIdle {
		return
	}
	acct, err := g.wallet.Account(ctx)
	if err != nil || !acct.Connected {
		return
	}
	g.transition(ctx, StateReady, func() { g.address = acct.Address })
}

// Reveal runs the next step of the payment flow and blocks until it
// settles. When the wallet is not connected it connects and stops in
// StateReady; otherwise it checks the network and recipient, submits the
// transfer and waits for the receipt. Failures land in StateError with a
// user-facing message and are not returned. Reveal returns ErrBusy while
// another operation is in flight and nil once the result is revealed.
func (g *Gate) Reveal(ctx context.Context) error {
	if g.Revealed() {
		return nil
	}
	if !g.acquire() {
		return ErrBusy
	}
	defer g.release()

	acct, err := g.wallet.Account(ctx)
	if err != nil {
		g.log.Debug("wallet account lookup failed", zap.Error(err))
		acct = wallet.Account{}
	}

	if !acct.Connected {
		g.connect(ctx)
		return nil
	}

	if g.Snapshot().State != StateReady {
		g.transition(ctx, StateReady, func() {
			g.address = acct.Address
			g.errMsg = ""
		})
	}

	if acct.ChainID != g.cfg.ChainID {
		g.fail(ctx, wrongNetworkMessage(g.cfg.NetworkName))
		return nil
	}
	if !RecipientConfigured(g.cfg.Recipient) {
		g.fail(ctx, MsgNotConfigured)
		return nil
	}

	g.pay(ctx, acct)
	return nil
}

func (g *Gate) connect(ctx context.Context) {
	if !g.env.Embedded {
		g.fail(ctx, MsgConnectFirst)
		return
	}

	g.transition(ctx, StateConnecting, func() { g.errMsg = "" })

	cctx := ctx
	if g.cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, g.cfg.ConnectTimeout)
		defer cancel()
	}

	acct, err := g.wallet.Connect(cctx)
	if err != nil {
		timedOut := errors.Is(cctx.Err(), context.DeadlineExceeded) && ctx.Err() == nil
		g.log.Debug("wallet connect failed", zap.Error(err), zap.Bool("timed_out", timedOut))
		g.fail(ctx, connectMessage(err, timedOut))
		return
	}
	g.transition(ctx, StateReady, func() { g.address = acct.Address })
}

func (g *Gate) pay(ctx context.Context, acct wallet.Account) {
	g.transition(ctx, StatePending, func() { g.errMsg = "" })

	hash, err := g.wallet.SendTransaction(ctx, wallet.Tx{
		From:    acct.Address,
		To:      g.cfg.Recipient,
		Value:   new(big.Int).Set(g.cfg.AmountWei),
		ChainID: g.cfg.ChainID,
	})
	if err != nil {
		g.log.Debug("send transaction failed", zap.Error(err), zap.Stringer("kind", wallet.KindOf(err)))
		g.fail(ctx, submitMessage(err))
		return
	}

	g.transition(ctx, StateConfirming, func() { g.txHash = hash })

	wctx := ctx
	if g.cfg.ConfirmTimeout > 0 {
		var cancel context.CancelFunc
		wctx, cancel = context.WithTimeout(ctx, g.cfg.ConfirmTimeout)
		defer cancel()
	}

	rcpt, err := g.wallet.WaitForReceipt(wctx, hash)
	if err == nil && !rcpt.Success {
		err = fmt.Errorf("transaction %s reverted", hash)
	}
	if err != nil {
		g.log.Debug("confirmation failed", zap.Error(err))
		g.fail(ctx, MsgConfirmFailed)
		return
	}

	g.transition(ctx, StateSuccess, func() {
		g.revealed = true
		g.errMsg = ""
	})
}

// Reset clears an error for retry: the session returns to StateReady when
// the wallet is connected and StateIdle otherwise. The revealed flag is
// kept. Reset does nothing while an operation is in flight.
func (g *Gate) Reset(ctx context.Context) {
	if !g.acquire() {
		return
	}
	defer g.release()

	acct, err := g.wallet.Account(ctx)
	connected := err == nil && acct.Connected

	to := StateIdle
	if connected {
		to = StateReady
	}
	g.transition(ctx, to, func() {
		g.errMsg = ""
		if connected {
			g.address = acct.Address
		}
	})
}
