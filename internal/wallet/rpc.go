package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// RPC is a Wallet speaking the EIP-1193 JSON-RPC methods to a wallet
// endpoint (a browser-extension bridge, a signer such as Clef or a dev node
// with unlocked accounts).
type RPC struct {
	client *rpc.Client
	eth    *ethclient.Client
	poll   time.Duration
}

var _ Wallet = (*RPC)(nil)

// RPCOption configures an RPC wallet.
type RPCOption func(*RPC)

// WithPollInterval sets how often WaitForReceipt polls for the receipt.
func WithPollInterval(d time.Duration) RPCOption {
	return func(r *RPC) {
		if d > 0 {
			r.poll = d
		}
	}
}

// DialRPC connects to the wallet endpoint at url.
func DialRPC(ctx context.Context, url string, opts ...RPCOption) (*RPC, error) {
	c, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial wallet %s: %w", url, err)
	}
	return NewRPC(c, opts...), nil
}

// NewRPC wraps an existing JSON-RPC client.
func NewRPC(c *rpc.Client, opts ...RPCOption) *RPC {
	r := &RPC{
		client: c,
		eth:    ethclient.NewClient(c),
		poll:   2 * time.Second,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Close closes the underlying connection.
func (r *RPC) Close() {
	r.client.Close()
}

func (r *RPC) Connect(ctx context.Context) (Account, error) {
	var accounts []common.Address
	if err := r.client.CallContext(ctx, &accounts, "eth_requestAccounts"); err != nil {
		return Account{}, classify(fmt.Errorf("request accounts: %w", err))
	}
	if len(accounts) == 0 {
		return Account{}, &Error{Kind: FailureRejected, Err: errors.New("wallet returned no accounts")}
	}
	return r.account(ctx, accounts)
}

func (r *RPC) Account(ctx context.Context) (Account, error) {
	var accounts []common.Address
	if err := r.client.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return Account{}, classify(fmt.Errorf("list accounts: %w", err))
	}
	return r.account(ctx, accounts)
}

func (r *RPC) account(ctx context.Context, accounts []common.Address) (Account, error) {
	var chainID hexutil.Uint64
	if err := r.client.CallContext(ctx, &chainID, "eth_chainId"); err != nil {
		return Account{}, classify(fmt.Errorf("chain id: %w", err))
	}
	acct := Account{ChainID: uint64(chainID)}
	if len(accounts) > 0 {
		acct.Address = accounts[0].Hex()
		acct.Connected = true
	}
	return acct, nil
}

func (r *RPC) SendTransaction(ctx context.Context, tx Tx) (string, error) {
	if !common.IsHexAddress(tx.To) {
		return "", &Error{Kind: FailureGeneric, Err: fmt.Errorf("invalid recipient %q", tx.To)}
	}
	args := map[string]any{
		"from":  common.HexToAddress(tx.From),
		"to":    common.HexToAddress(tx.To),
		"value": (*hexutil.Big)(tx.Value),
	}
	if tx.ChainID != 0 {
		args["chainId"] = hexutil.Uint64(tx.ChainID)
	}

	var hash common.Hash
	if err := r.client.CallContext(ctx, &hash, "eth_sendTransaction", args); err != nil {
		return "", classify(fmt.Errorf("send transaction: %w", err))
	}
	return hash.Hex(), nil
}

func (r *RPC) WaitForReceipt(ctx context.Context, hash string) (Receipt, error) {
	h := common.HexToHash(hash)
	ticker := time.NewTicker(r.poll)
	defer ticker.Stop()

	for {
		rcpt, err := r.eth.TransactionReceipt(ctx, h)
		switch {
		case err == nil:
			out := Receipt{
				TxHash:  rcpt.TxHash.Hex(),
				Success: rcpt.Status == types.ReceiptStatusSuccessful,
			}
			if rcpt.BlockNumber != nil {
				out.BlockNumber = rcpt.BlockNumber.Uint64()
			}
			return out, nil
		case !errors.Is(err, ethereum.NotFound):
			return Receipt{}, classify(fmt.Errorf("transaction receipt %s: %w", hash, err))
		}

		select {
		case <-ctx.Done():
			return Receipt{}, ctx.Err()
		case <-ticker.C:
		}
	}
}
