package wallet

import (
	"context"
	"fmt"
	"sync"
)

// Mock is a scripted Wallet for tests. Set the exported fields before use.
// Gate channels, when non-nil, make the matching call block until the
// channel is closed or ctx ends.
type Mock struct {
	mu sync.Mutex

	// Current is returned by Account and, once connected, by Connect.
	Current Account
	// ConnectAccount becomes Current on a successful Connect.
	ConnectAccount Account
	ConnectErr     error
	ConnectGate    chan struct{}

	Hash     string
	SendErr  error
	SendGate chan struct{}

	Receipt     Receipt
	ReceiptErr  error
	ReceiptGate chan struct{}

	connects int
	sent     []Tx
}

var _ Wallet = (*Mock)(nil)

func wait(ctx context.Context, gate chan struct{}) error {
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Mock) Connect(ctx context.Context) (Account, error) {
	m.mu.Lock()
	m.connects++
	gate := m.ConnectGate
	m.mu.Unlock()

	if err := wait(ctx, gate); err != nil {
		return Account{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ConnectErr != nil {
		return Account{}, m.ConnectErr
	}
	m.Current = m.ConnectAccount
	m.Current.Connected = true
	return m.Current, nil
}

func (m *Mock) Account(context.Context) (Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Current, nil
}

func (m *Mock) SendTransaction(ctx context.Context, tx Tx) (string, error) {
	m.mu.Lock()
	m.sent = append(m.sent, tx)
	gate := m.SendGate
	m.mu.Unlock()

	if err := wait(ctx, gate); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return "", m.SendErr
	}
	if m.Hash != "" {
		return m.Hash, nil
	}
	return fmt.Sprintf("0x%064x", len(m.sent)), nil
}

func (m *Mock) WaitForReceipt(ctx context.Context, hash string) (Receipt, error) {
	m.mu.Lock()
	gate := m.ReceiptGate
	m.mu.Unlock()

	if err := wait(ctx, gate); err != nil {
		return Receipt{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReceiptErr != nil {
		return Receipt{}, m.ReceiptErr
	}
	r := m.Receipt
	if r.TxHash == "" {
		r.TxHash = hash
	}
	return r, nil
}

// SetAccount replaces the current account, as if the user switched it in
// the wallet.
func (m *Mock) SetAccount(a Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Current = a
}

// Connects returns how many times Connect was called.
func (m *Mock) Connects() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connects
}

// Sent returns the transactions submitted so far.
func (m *Mock) Sent() []Tx {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Tx(nil), m.sent...)
}
