// Package app is the root Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/signalquiz/internal/host"
	"github.com/abhisek/signalquiz/internal/router"
	"github.com/abhisek/signalquiz/internal/screen"
	"github.com/abhisek/signalquiz/internal/screens"
	"github.com/abhisek/signalquiz/internal/screens/start"
	"github.com/abhisek/signalquiz/internal/ui/components"
	"github.com/abhisek/signalquiz/internal/ui/layout"
	"github.com/abhisek/signalquiz/internal/ui/theme"
)

// Options wire the app to its collaborators.
type Options struct {
	Name          string
	Host          host.Host
	DetectTimeout time.Duration
	// Build assembles the screen services once the host environment is
	// known.
	Build func(env host.Environment) *screens.Services
}

// envMsg carries the result of host detection.
type envMsg host.Environment

// Model is the root model. Until host detection finishes it shows a
// splash; afterwards it delegates to the router.
type Model struct {
	opts   Options
	env    host.Environment
	router *router.Router
	width  int
	height int
}

func New(opts Options) Model {
	if opts.Host == nil {
		opts.Host = host.Standalone{}
	}
	return Model{opts: opts}
}

func (m Model) Init() tea.Cmd {
	h, timeout := m.opts.Host, m.opts.DetectTimeout
	return func() tea.Msg {
		return envMsg(host.Detect(context.Background(), h, timeout))
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case envMsg:
		m.env = host.Environment(msg)
		svc := m.opts.Build(m.env)
		if m.env.Err != nil {
			svc.Logger().Warn("host detection", zap.Error(m.env.Err))
		}
		root := start.New(svc)
		m.router = router.New(root)
		return m, root.Init()

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router != nil && m.router.Depth() > 1 && !m.busy() {
				return m, router.Pop
			}
			return m, nil
		}
	}

	if m.router == nil {
		return m, nil
	}
	return m, m.router.Update(msg)
}

func (m Model) busy() bool {
	g, ok := m.router.Active().(screen.Guard)
	return ok && g.Busy()
}

func (m Model) status() string {
	switch {
	case m.router == nil:
		return ""
	case m.env.Identity != nil && m.env.Identity.Username != "":
		return "@" + m.env.Identity.Username
	case m.env.Identity != nil:
		return m.env.Identity.Name()
	case m.env.Embedded:
		return "in host"
	default:
		return "standalone"
	}
}

func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	var (
		title string
		hints = []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	)
	if m.router != nil {
		active := m.router.Active()
		title = active.Title()
		if hp, ok := active.(screen.KeyHintProvider); ok {
			hints = hp.KeyHints()
		}
	}

	header := layout.RenderHeader(m.opts.Name, title, m.status(), m.width)
	footer := layout.RenderFooter(hints, m.width)
	ch := layout.ContentHeight(header, footer, m.height)

	var content string
	if m.router == nil {
		content = components.Center(theme.Hint.Render("Connecting to host..."), m.width, ch)
	} else {
		content = m.router.View(m.width, ch)
	}
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
