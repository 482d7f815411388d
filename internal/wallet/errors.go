package wallet

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/rpc"
)

// ErrNoConnector is returned when no wallet connector is available.
var ErrNoConnector = errors.New("wallet: no connector available")

// FailureKind buckets wallet failures into what the user is told.
type FailureKind int

const (
	FailureGeneric FailureKind = iota
	FailureRejected
	FailureInsufficientFunds
)

func (k FailureKind) String() string {
	switch k {
	case FailureRejected:
		return "rejected"
	case FailureInsufficientFunds:
		return "insufficient_funds"
	default:
		return "generic"
	}
}

// EIP-1193 provider error codes.
const (
	CodeUserRejected    = 4001
	CodeUnauthorized    = 4100
	CodeUnsupported     = 4200
	CodeDisconnected    = 4900
	CodeChainDisconnect = 4901
)

// Error is a classified wallet failure.
type Error struct {
	Kind FailureKind
	Code int // provider error code, 0 when unknown
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// classify wraps err with its failure kind and provider code.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var we *Error
	if errors.As(err, &we) {
		return err
	}
	code := 0
	var re rpc.Error
	if errors.As(err, &re) {
		code = re.ErrorCode()
	}
	return &Error{Kind: KindOf(err), Code: code, Err: err}
}

// messagePatterns is the fallback for providers that report failures only
// as text. Patterns are matched against the lowercased message.
var messagePatterns = []struct {
	substr string
	kind   FailureKind
}{
	{"user rejected", FailureRejected},
	{"user denied", FailureRejected},
	{"rejected by user", FailureRejected},
	{"insufficient funds", FailureInsufficientFunds},
	{"insufficient balance", FailureInsufficientFunds},
}

// KindOf classifies err. A structured *Error or a provider error code
// wins; otherwise the message is matched against known patterns.
func KindOf(err error) FailureKind {
	if err == nil {
		return FailureGeneric
	}
	var we *Error
	if errors.As(err, &we) {
		return we.Kind
	}
	var re rpc.Error
	if errors.As(err, &re) && re.ErrorCode() == CodeUserRejected {
		return FailureRejected
	}
	msg := strings.ToLower(err.Error())
	for _, p := range messagePatterns {
		if strings.Contains(msg, p.substr) {
			return p.kind
		}
	}
	return FailureGeneric
}
