package payment

// State is a payment session state.
type State string

const (
	StateIdle       State = "idle"
	StateConnecting State = "connecting"
	StateReady      State = "ready"
	StatePending    State = "pending"
	StateConfirming State = "confirming"
	StateSuccess    State = "success"
	StateError      State = "error"
)

// Loading reports whether a wallet call is in flight in this state.
func (s State) Loading() bool {
	switch s {
	case StateConnecting, StatePending, StateConfirming:
		return true
	}
	return false
}

// Snapshot is a read-only copy of a payment session.
type Snapshot struct {
	SessionID string
	State     State
	Address   string
	TxHash    string
	Error     string
	Revealed  bool
	Loading   bool
}
