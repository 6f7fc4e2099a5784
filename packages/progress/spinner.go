package progress

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// DefaultInterval is how often the spinner advances a frame.
const DefaultInterval = 100 * time.Millisecond

var styleSpinner = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#04B575"))

var styleMessage = lipgloss.NewStyle().
	PaddingLeft(1).
	Faint(true)

type options struct {
	enabled  bool
	force    bool
	interval time.Duration
}

type Option func(*options)

// WithEnabled turns the spinner on or off regardless of the terminal.
func WithEnabled(enabled bool) Option {
	return func(o *options) {
		o.enabled = enabled
	}
}

// WithForce draws the spinner even when out is not a terminal.
func WithForce(force bool) Option {
	return func(o *options) {
		o.force = force
	}
}

func WithInterval(d time.Duration) Option {
	return func(o *options) {
		o.interval = d
	}
}

// IsTerminal reports whether w is attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// StopFunc stops a spinner and clears its line. Calling it more than once
// is a no-op.
type StopFunc func()

// Start begins drawing a spinner with msg on out and returns the function
// that stops it. Stop waits for the drawing goroutine to exit.
func Start(ctx context.Context, out io.Writer, msg string, opts ...Option) StopFunc {
	o := options{enabled: true, interval: DefaultInterval}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.enabled || (!o.force && !IsTerminal(out)) {
		return func() {}
	}

	s := spinner.New(spinner.WithSpinner(spinner.Spinner{
		Frames: spinner.Dot.Frames,
		FPS:    o.interval,
	}))
	s.Style = styleSpinner

	m := &model{spinner: s, message: msg}
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.Run()
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.Send(stopMsg{})
			<-done
		})
	}
}

// Run calls fn with a spinner on out. The spinner is stopped before Run
// returns, including when fn panics.
func Run(ctx context.Context, out io.Writer, msg string, fn func() error, opts ...Option) error {
	stop := Start(ctx, out, msg, opts...)
	defer stop()
	return fn()
}

type stopMsg struct{}

type model struct {
	spinner  spinner.Model
	message  string
	quitting bool
}

func (m *model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stopMsg:
		m.quitting = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders nothing once quitting so the final frame clears the line.
func (m *model) View() string {
	if m.quitting {
		return ""
	}
	return m.spinner.View() + styleMessage.Render(m.message)
}
