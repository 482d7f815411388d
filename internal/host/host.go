// Package host talks to the social platform embedding the app. Every call
// is best-effort: without a host the app still runs, minus identity and
// host-native sharing.
package host

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotEmbedded is returned by host actions when the app is not embedded.
var ErrNotEmbedded = errors.New("host: not embedded")

// Identity is the platform user the host reports.
type Identity struct {
	FID         uint64 `json:"fid"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	PFPURL      string `json:"pfpUrl"`
}

// Name returns the best display label for the user.
func (i Identity) Name() string {
	switch {
	case i.DisplayName != "":
		return i.DisplayName
	case i.Username != "":
		return i.Username
	default:
		return "anonymous"
	}
}

// Post is a compose request handed to the host.
type Post struct {
	Text   string   `json:"text"`
	Embeds []string `json:"embeds,omitempty"`
}

// Host is the embedding environment.
type Host interface {
	IsEmbedded(ctx context.Context) (bool, error)
	// Ready tells the host the app has rendered and its splash can go.
	Ready(ctx context.Context) error
	User(ctx context.Context) (*Identity, error)
	ComposePost(ctx context.Context, p Post) error
}

// Environment is the result of the startup detection step.
type Environment struct {
	Embedded bool
	Identity *Identity
	// Err is the detection failure, if any. It is informational only.
	Err error
}

// Detect checks whether the app runs inside a host, loads the user
// identity when it does, and then signals Ready. Detection and identity
// lookups are bounded by timeout when it is positive; failures degrade to
// a standalone Environment. A Ready failure is reported in Err only when
// detection itself succeeded.
func Detect(ctx context.Context, h Host, timeout time.Duration) Environment {
	var env Environment

	dctx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		dctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	embedded, err := h.IsEmbedded(dctx)
	if err != nil {
		env.Err = err
	}
	env.Embedded = embedded && err == nil

	if env.Embedded {
		if id, err := h.User(dctx); err == nil && id != nil {
			env.Identity = id
		}
	}

	if err := h.Ready(ctx); err != nil && env.Err == nil {
		env.Err = fmt.Errorf("signal ready: %w", err)
	}
	return env
}

// Standalone is the Host used when no host bridge is configured.
type Standalone struct{}

var _ Host = Standalone{}

func (Standalone) IsEmbedded(context.Context) (bool, error) { return false, nil }
func (Standalone) Ready(context.Context) error              { return nil }
func (Standalone) User(context.Context) (*Identity, error)  { return nil, ErrNotEmbedded }
func (Standalone) ComposePost(context.Context, Post) error  { return ErrNotEmbedded }
