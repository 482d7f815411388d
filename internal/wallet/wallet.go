// Package wallet is the payment gate's view of a crypto wallet: connect,
// observe the account, send a native-currency transfer and wait for it to
// be mined.
package wallet

import (
	"context"
	"math/big"
)

// Account is the wallet's current connection state.
type Account struct {
	Address   string
	ChainID   uint64
	Connected bool
}

// Tx is a native-currency transfer.
type Tx struct {
	From    string
	To      string
	Value   *big.Int // wei
	ChainID uint64
}

// Receipt is the outcome of a mined transaction.
type Receipt struct {
	TxHash      string
	Success     bool
	BlockNumber uint64
}

// Wallet is implemented by wallet connectors.
type Wallet interface {
	// Connect asks the user to connect an account.
	Connect(ctx context.Context) (Account, error)

	// Account reports the current connection without prompting.
	Account(ctx context.Context) (Account, error)

	// SendTransaction submits tx and returns its hash once the wallet has
	// accepted it.
	SendTransaction(ctx context.Context, tx Tx) (string, error)

	// WaitForReceipt blocks until the transaction is mined or ctx ends.
	WaitForReceipt(ctx context.Context, hash string) (Receipt, error)
}

// Unavailable is the connector used when no wallet endpoint is configured.
type Unavailable struct{}

var _ Wallet = Unavailable{}

func (Unavailable) Connect(context.Context) (Account, error) {
	return Account{}, ErrNoConnector
}

func (Unavailable) Account(context.Context) (Account, error) {
	return Account{}, nil
}

func (Unavailable) SendTransaction(context.Context, Tx) (string, error) {
	return "", ErrNoConnector
}

func (Unavailable) WaitForReceipt(context.Context, string) (Receipt, error) {
	return Receipt{}, ErrNoConnector
}
