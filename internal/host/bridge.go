package host

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Bridge is a Host reached over the launcher's local HTTP bridge:
//
//	GET  /v1/context  -> {"embedded": bool, "user": Identity}
//	POST /v1/ready
//	POST /v1/compose  <- Post
type Bridge struct {
	baseURL string
	client  *http.Client
}

var _ Host = (*Bridge)(nil)

// NewBridge creates a Bridge for baseURL. A nil client gets a default
// client with a 10s timeout.
func NewBridge(baseURL string, client *http.Client) *Bridge {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Bridge{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

type contextResponse struct {
	Embedded bool      `json:"embedded"`
	User     *Identity `json:"user"`
}

func (b *Bridge) context(ctx context.Context) (*contextResponse, error) {
	var out contextResponse
	if err := b.do(ctx, http.MethodGet, "/v1/context", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *Bridge) IsEmbedded(ctx context.Context) (bool, error) {
	c, err := b.context(ctx)
	if err != nil {
		return false, err
	}
	return c.Embedded, nil
}

func (b *Bridge) User(ctx context.Context) (*Identity, error) {
	c, err := b.context(ctx)
	if err != nil {
		return nil, err
	}
	if !c.Embedded {
		return nil, ErrNotEmbedded
	}
	return c.User, nil
}

func (b *Bridge) Ready(ctx context.Context) error {
	return b.do(ctx, http.MethodPost, "/v1/ready", nil, nil)
}

func (b *Bridge) ComposePost(ctx context.Context, p Post) error {
	return b.do(ctx, http.MethodPost, "/v1/compose", p, nil)
}

func (b *Bridge) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("host bridge %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("host bridge %s: HTTP %d", path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
