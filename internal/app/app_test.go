package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/signalquiz/internal/host"
	"github.com/abhisek/signalquiz/internal/quiz"
	"github.com/abhisek/signalquiz/internal/router"
	"github.com/abhisek/signalquiz/internal/screens"
)

type fakeHost struct {
	embedded bool
	user     *host.Identity
	ready    int
	readyErr error
}

func (f *fakeHost) IsEmbedded(context.Context) (bool, error) { return f.embedded, nil }
func (f *fakeHost) Ready(context.Context) error              { f.ready++; return f.readyErr }
func (f *fakeHost) User(context.Context) (*host.Identity, error) {
	if f.user == nil {
		return nil, host.ErrNotEmbedded
	}
	return f.user, nil
}
func (f *fakeHost) ComposePost(context.Context, host.Post) error { return nil }

func boot(t *testing.T, h host.Host) (Model, *host.Environment) {
	t.Helper()
	var seen host.Environment
	m := New(Options{
		Name:          "Signal Creator Quiz",
		Host:          h,
		DetectTimeout: time.Second,
		Build: func(env host.Environment) *screens.Services {
			seen = env
			return &screens.Services{Bank: quiz.DefaultBank(), Flow: quiz.DefaultFlow()}
		},
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	updated, _ = updated.Update(m.Init()())
	return updated.(Model), &seen
}

func TestDetectionBuildsServices(t *testing.T) {
	h := &fakeHost{embedded: true, user: &host.Identity{FID: 1, Username: "alice"}}
	m, env := boot(t, h)

	if !env.Embedded || env.Identity == nil || env.Identity.Username != "alice" {
		t.Fatalf("env = %+v", env)
	}
	if h.ready != 1 {
		t.Fatalf("ready called %d times", h.ready)
	}
	if m.router == nil || m.router.Depth() != 1 {
		t.Fatal("router not initialised")
	}
	if m.status() != "@alice" {
		t.Fatalf("status = %q", m.status())
	}
}

func TestSplashBeforeDetection(t *testing.T) {
	m := New(Options{Name: "Signal Creator Quiz"})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	if !strings.Contains(updated.(Model).render(), "Connecting to host") {
		t.Fatal("expected splash while detecting")
	}
}

func TestStandaloneStatus(t *testing.T) {
	m, _ := boot(t, host.Standalone{})
	if m.status() != "standalone" {
		t.Fatalf("status = %q", m.status())
	}
}

func TestEscPopsOnlyAboveRoot(t *testing.T) {
	m, _ := boot(t, host.Standalone{})
	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		t.Fatal("esc on the root screen should do nothing")
	}

	updated, _ := m.Update(router.PushScreenMsg{Screen: m.router.Active()})
	m = updated.(Model)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("expected PopScreenMsg")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m, _ := boot(t, host.Standalone{})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected QuitMsg")
	}
}

func TestDetectionErrorLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	h := &fakeHost{embedded: true, readyErr: errors.New("bridge gone")}
	m := New(Options{
		Host:          h,
		DetectTimeout: time.Second,
		Build: func(env host.Environment) *screens.Services {
			return &screens.Services{Bank: quiz.DefaultBank(), Flow: quiz.DefaultFlow(), Log: zap.New(core)}
		},
	})
	m.Update(m.Init()())

	entries := logs.FilterMessage("host detection").All()
	if len(entries) != 1 {
		t.Fatalf("got %d host detection log entries, want 1", len(entries))
	}
}
