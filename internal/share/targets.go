package share

import (
	"context"
	"errors"
	"net/url"
	"os"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"

	"github.com/abhisek/signalquiz/internal/host"
)

// HostComposer shares through the host's compose action. It only applies
// when the app is embedded.
type HostComposer struct {
	Host     host.Host
	Embedded bool
}

func (HostComposer) Method() Method { return MethodHost }

func (h HostComposer) Share(ctx context.Context, m Message) error {
	if !h.Embedded || h.Host == nil {
		return host.ErrNotEmbedded
	}
	return h.Host.ComposePost(ctx, host.Post{Text: m.Text, Embeds: m.Embeds})
}

// DefaultComposeURL is the web compose intent used by SystemShare.
const DefaultComposeURL = "https://farcaster.xyz/~/compose"

var errNoOpener = errors.New("no system opener available")

// SystemShare opens a compose-intent URL with the OS URL handler.
type SystemShare struct {
	ComposeURL string
	// Open launches url; nil uses the platform opener.
	Open func(url string) error
}

func (SystemShare) Method() Method { return MethodSystem }

func (s SystemShare) Share(_ context.Context, m Message) error {
	open := s.Open
	if open == nil {
		open = openURL
	}
	return open(ComposeIntentURL(s.ComposeURL, m))
}

// ComposeIntentURL encodes m as a compose-intent URL on base.
func ComposeIntentURL(base string, m Message) string {
	if base == "" {
		base = DefaultComposeURL
	}
	q := url.Values{}
	q.Set("text", m.Text)
	for _, e := range m.Embeds {
		q.Add("embeds[]", e)
	}
	return base + "?" + q.Encode()
}

func openerCommand(goos string, getenv func(string) string) (string, []string, bool) {
	switch goos {
	case "darwin":
		return "open", nil, true
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}, true
	default:
		if getenv("DISPLAY") == "" && getenv("WAYLAND_DISPLAY") == "" {
			return "", nil, false
		}
		return "xdg-open", nil, true
	}
}

func openURL(u string) error {
	name, args, ok := openerCommand(runtime.GOOS, os.Getenv)
	if !ok {
		return errNoOpener
	}
	cmd := exec.Command(name, append(args, u)...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// Clipboard copies the message text to the system clipboard.
type Clipboard struct {
	// Write replaces clipboard.WriteAll when set.
	Write func(text string) error
}

func (Clipboard) Method() Method { return MethodClipboard }

func (c Clipboard) Share(_ context.Context, m Message) error {
	if c.Write != nil {
		return c.Write(m.Text)
	}
	if clipboard.Unsupported {
		return errors.New("clipboard unsupported on this system")
	}
	return clipboard.WriteAll(m.Text)
}
