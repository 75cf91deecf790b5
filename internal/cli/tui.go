package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/structviz/pkg/backend"
	"github.com/matzehuels/structviz/pkg/errors"
	"github.com/matzehuels/structviz/pkg/highlight"
	"github.com/matzehuels/structviz/pkg/render"
	"github.com/matzehuels/structviz/pkg/script"
	"github.com/matzehuels/structviz/pkg/session"
	"github.com/matzehuels/structviz/pkg/snapshot"
)

var (
	tabActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	promptStyle    = lipgloss.NewStyle().Foreground(colorCyan)
)

// visibleMessages is how many log lines the TUI shows.
const visibleMessages = 8

// headerRow is the row index lipgloss tables pass for the header.
const headerRow = -1

// =============================================================================
// Messages
// =============================================================================

type readyTickMsg struct{}

type sessionReadyMsg struct {
	sess *session.Session
	err  error
}

func readyTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg { return readyTickMsg{} })
}

// =============================================================================
// SessionModel - interactive session
// =============================================================================

// SessionModel is the bubbletea model for an interactive session. It polls
// the backend until it is ready, then accepts typed commands.
type SessionModel struct {
	ctx      context.Context
	module   backend.Module
	policy   backend.Policy
	opts     []session.Option
	renderer *render.Orchestrator

	attempts int
	sess     *session.Session
	err      error

	input  string
	notice string
	width  int
}

// NewSessionModel creates the model. The session is created once m is ready.
func NewSessionModel(ctx context.Context, m backend.Module, policy backend.Policy, renderer *render.Orchestrator, opts ...session.Option) *SessionModel {
	if policy.Attempts <= 0 || policy.Interval <= 0 {
		policy = backend.DefaultPolicy
	}
	return &SessionModel{ctx: ctx, module: m, policy: policy, renderer: renderer, opts: opts, width: 80}
}

// Session returns the live session, or nil before the backend is ready.
func (m *SessionModel) Session() *session.Session { return m.sess }

// Err returns the error that ended the model, if any.
func (m *SessionModel) Err() error { return m.err }

func (m *SessionModel) Init() tea.Cmd {
	return m.checkReady()
}

func (m *SessionModel) checkReady() tea.Cmd {
	if m.module.Ready() {
		return func() tea.Msg {
			s, err := session.New(m.module, m.opts...)
			return sessionReadyMsg{sess: s, err: err}
		}
	}
	m.attempts++
	if m.attempts >= m.policy.Attempts {
		m.err = errors.New(errors.ErrCodeBackendUnavailable,
			"structure backend did not load after %d checks (%s)", m.policy.Attempts, m.policy.Timeout())
		return tea.Quit
	}
	return readyTick(m.policy.Interval)
}

func (m *SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case readyTickMsg:
		return m, m.checkReady()
	case sessionReadyMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.sess = msg.sess
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *SessionModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	}
	if m.sess == nil {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyTab:
		m.cycle()
	case tea.KeyEnter:
		line := strings.TrimSpace(m.input)
		m.input = ""
		if line == "quit" || line == "exit" {
			return m, tea.Quit
		}
		m.exec(line)
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m, nil
}

func (m *SessionModel) cycle() {
	for i, s := range session.Structures {
		if s == m.sess.Active() {
			_ = m.sess.Select(session.Structures[(i+1)%len(session.Structures)])
			return
		}
	}
}

// exec runs one command line against the session.
func (m *SessionModel) exec(line string) {
	m.notice = ""
	switch {
	case line == "":
		return
	case line == "help":
		m.notice = commandHelp
		return
	case strings.HasPrefix(line, "save"):
		m.save(strings.TrimSpace(strings.TrimPrefix(line, "save")))
		return
	}

	steps, err := parseCommand(line)
	if err != nil {
		m.notice = StyleError.Render(errors.UserMessage(err))
		return
	}
	for _, st := range steps {
		// Failures are already in the message log.
		if script.Apply(m.ctx, m.sess, st) != nil {
			return
		}
	}
}

func (m *SessionModel) save(path string) {
	if path == "" {
		path = string(m.sess.Active()) + ".svg"
	}
	frame, err := m.renderer.Render(m.ctx, m.sess)
	if err == nil {
		err = os.WriteFile(path, frame.SVG, 0o644)
	}
	if err != nil {
		m.notice = StyleError.Render("save failed: " + errors.UserMessage(err))
		return
	}
	m.notice = styleIconSuccess.Render(iconSuccess) + " wrote " + path
}

func (m *SessionModel) View() string {
	if m.err != nil {
		return StyleError.Render(errors.UserMessage(m.err)) + "\n"
	}
	if m.sess == nil {
		frame := spinnerFrames[m.attempts%len(spinnerFrames)]
		return styleIconSpinner.Render(frame) + " " + StyleDim.Render("Loading structure backend...") + "\n"
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("structviz"))
	b.WriteString("  ")
	for _, s := range session.Structures {
		if s == m.sess.Active() {
			b.WriteString(tabActiveStyle.Render(s.Title()))
		} else {
			b.WriteString(tabStyle.Render(s.Title()))
		}
	}
	b.WriteString("\n")

	b.WriteString(panelStyle.Width(max(m.width-4, 40)).Render(stateView(m.sess)))
	b.WriteString("\n")

	msgs := m.sess.Messages()
	if len(msgs) > visibleMessages {
		msgs = msgs[len(msgs)-visibleMessages:]
	}
	for _, msg := range msgs {
		b.WriteString(formatMessage(msg))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(m.notice)
		b.WriteString("\n")
	}
	b.WriteString(promptStyle.Render("> ") + m.input + StyleDim.Render("█"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("help · tab switch structure · esc quit"))
	return b.String()
}

// stateView describes the active structure as text.
func stateView(s *session.Session) string {
	switch s.Active() {
	case session.Heap:
		kind := "Max Heap"
		if s.HeapHandle().IsMinHeap() {
			kind = "Min Heap"
		}
		return fmt.Sprintf("%s\n%s", kind, s.HeapHandle().Array())
	case session.AVL:
		out := s.TreeHandle().Tree()
		if rot := s.LastRotation(); rot != "" && rot != backend.NoRotation {
			out += "\n" + StyleDim.Render("Last rotation: "+rot)
		}
		return out
	case session.Graph:
		return graphView(s)
	case session.Hash:
		return hashView(s)
	}
	return ""
}

func graphView(s *session.Session) string {
	topo := s.Topology()
	if !topo.Initialized() {
		return StyleDim.Render("Graph not initialized")
	}
	n := topo.VertexCount()
	headers := []string{""}
	for v := range n {
		headers = append(headers, fmt.Sprint(v))
	}
	w := topo.Weights()
	rows := make([][]string, n)
	for i := range n {
		rows[i] = append(rows[i], fmt.Sprint(i))
		for j := range n {
			cell := "·"
			if w[i][j] != 0 {
				cell = fmt.Sprint(w[i][j])
			}
			rows[i] = append(rows[i], cell)
		}
	}

	set, start := s.Highlight()
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == headerRow, col == 0:
				return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			case set.HasEdge(row, col-1):
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			return lipgloss.NewStyle()
		})

	kind := "Undirected"
	if topo.Directed() {
		kind = "Directed"
	}
	out := fmt.Sprintf("Nodes: %d | Type: %s\n%s", n, kind, t.Render())
	if !set.Empty() {
		out += "\n" + highlight.Summary(set, start)
	}
	return out
}

func hashView(s *session.Session) string {
	buckets, err := snapshot.ParseBuckets(s.HashHandle().Table())
	if err != nil {
		return StyleError.Render("Error visualizing hash table")
	}
	var b strings.Builder
	for i, bucket := range buckets {
		items := StyleDim.Render("Empty")
		if len(bucket) > 0 {
			items = strings.Join(bucket, "  ")
		}
		fmt.Fprintf(&b, "%s %s\n", styleKey.Render(fmt.Sprintf("Bucket %d", i)), items)
	}
	if r := s.LastSearch(); r != nil {
		if r.Found {
			fmt.Fprintf(&b, "Last search: key %d = %d", r.Key, r.Value)
		} else {
			fmt.Fprintf(&b, "Last search: key %d not found", r.Key)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
