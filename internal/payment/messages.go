package payment

import (
	"errors"

	"github.com/abhisek/signalquiz/internal/wallet"
)

// User-facing messages.
const (
	MsgConnectFirst     = "Please connect your wallet first"
	MsgConnectTimeout   = "Wallet connection timed out. Please try again."
	MsgConnectCancelled = "Wallet connection cancelled by user"
	MsgConnectFailed    = "Could not connect wallet. Please try again."
	MsgNotConfigured    = "Payment address not configured. Please contact the developer."
	MsgConfirmFailed    = "Transaction confirmation failed. Please check the transaction and try again."
)

// submitMessages maps a submission failure kind to what the user sees.
var submitMessages = map[wallet.FailureKind]string{
	wallet.FailureRejected:          "Transaction cancelled by user",
	wallet.FailureInsufficientFunds: "Insufficient funds for transaction",
	wallet.FailureGeneric:           "Transaction failed. Please try again.",
}

func submitMessage(err error) string {
	return submitMessages[wallet.KindOf(err)]
}

func wrongNetworkMessage(network string) string {
	return "Please switch to " + network + " network"
}

func connectMessage(err error, timedOut bool) string {
	switch {
	case timedOut:
		return MsgConnectTimeout
	case errors.Is(err, wallet.ErrNoConnector):
		return MsgConnectFirst
	case wallet.KindOf(err) == wallet.FailureRejected:
		return MsgConnectCancelled
	default:
		return MsgConnectFailed
	}
}
