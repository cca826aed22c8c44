package cli

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/raphaelgruber/wordrel/internal/metrics"
	"github.com/raphaelgruber/wordrel/internal/service"
)

// Theme holds the color scheme for the progress display.
type Theme struct {
	Status  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Status:  lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

func (t Theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Status)
}

func (t Theme) completedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// loadProgressMsg carries corpus bytes read for one relation graph.
type loadProgressMsg struct {
	relation service.Relation
	read     int64
	total    int64
}

// runDoneMsg carries the outcome of the detection run.
type runDoneMsg struct {
	result *service.RunResult
	err    error
}

// progressModel is the bubbletea model shown while a run is in flight.
type progressModel struct {
	progress progress.Model
	theme    Theme
	cancel   context.CancelFunc

	relation service.Relation
	read     int64
	total    int64

	result   *service.RunResult
	err      error
	done     bool
	quitting bool
}

func newProgressModel(cancel context.CancelFunc) progressModel {
	prog := progress.New(
		progress.WithDefaultBlend(),
		progress.WithWidth(40),
	)

	return progressModel{
		progress: prog,
		theme:    defaultTheme,
		cancel:   cancel,
	}
}

// Init returns the initial command.
func (m progressModel) Init() tea.Cmd {
	return m.progress.Init()
}

// Update handles messages and returns the updated model.
func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}

	case loadProgressMsg:
		m.relation = msg.relation
		m.read = msg.read
		m.total = msg.total
		return m, nil

	case runDoneMsg:
		m.result = msg.result
		m.err = msg.err
		m.done = true
		return m, tea.Quit

	case progress.FrameMsg:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the progress display.
func (m progressModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m progressModel) renderContent() string {
	if m.done || m.quitting {
		return ""
	}
	if m.relation == "" {
		return m.theme.statusStyle().Render("[starting]") + "\n"
	}

	var pct float64
	if m.total > 0 {
		pct = float64(m.read) / float64(m.total)
	}

	status := m.theme.statusStyle().Render(fmt.Sprintf("[%s graph]", m.relation))
	bar := m.progress.ViewAs(pct)
	counts := fmt.Sprintf("%s/%s", formatBytes(m.read), formatBytes(m.total))
	hint := m.theme.hintStyle().Render("Press Ctrl+C to cancel")

	return fmt.Sprintf("%s %s %s\n%s\n", status, bar, counts, hint)
}

// progressThrottle forwards load progress only when the whole percentage
// changes.
type progressThrottle struct {
	last map[service.Relation]int64
	send func(tea.Msg)
}

func (t *progressThrottle) report(relation service.Relation, read, total int64) {
	if total <= 0 {
		return
	}
	pct := read * 100 / total
	if last, ok := t.last[relation]; ok && last == pct {
		return
	}
	t.last[relation] = pct
	t.send(loadProgressMsg{relation: relation, read: read, total: total})
}

// runWithProgress calls run with an interactive progress display. Ctrl+C
// cancels the run; the output file may then be incomplete.
func runWithProgress(ctx context.Context, run func(context.Context, service.RunOptions) (*service.RunResult, error)) (*service.RunResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newProgressModel(cancel))
	throttle := &progressThrottle{last: make(map[service.Relation]int64), send: p.Send}

	finished := make(chan runDoneMsg, 1)
	go func() {
		result, err := run(ctx, service.RunOptions{OnLoadProgress: throttle.report})
		msg := runDoneMsg{result: result, err: err}
		finished <- msg
		p.Send(msg)
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-finished
		return nil, fmt.Errorf("progress UI error: %w", err)
	}

	// The run goroutine owns the outcome; the model may have quit early.
	msg := <-finished
	return msg.result, msg.err
}

// renderSummary builds the completion message for a finished run.
func renderSummary(theme Theme, result *service.RunResult, output string, withMetrics bool) string {
	var sb strings.Builder
	sb.WriteString(theme.completedStyle().Render("✓ Completed") + "\n\n")
	fmt.Fprintf(&sb, "  Wordpacks:      %d\n", result.Wordpacks)
	fmt.Fprintf(&sb, "  Terms:          %d\n", result.Terms)
	fmt.Fprintf(&sb, "  Flagged terms:  %d\n", result.FlaggedTerms)
	fmt.Fprintf(&sb, "  Collisions:     %d\n", result.Collisions)
	fmt.Fprintf(&sb, "  Output:         %s\n", output)

	skipped := 0
	for _, stats := range result.Graphs {
		skipped += stats.Skipped + stats.DroppedTerms
	}
	if skipped > 0 {
		sb.WriteString(theme.hintStyle().Render(fmt.Sprintf("\n%d corpus lines or terms were skipped, see the log for details", skipped)) + "\n")
	}

	if withMetrics {
		sb.WriteString("\n" + renderMetrics(theme, result.Metrics))
	}
	return sb.String()
}

// renderMetrics formats per-operation timings.
func renderMetrics(theme Theme, snap metrics.Snapshot) string {
	var sb strings.Builder
	sb.WriteString(theme.statusStyle().Render(fmt.Sprintf("Timings (%.2fs total)", snap.ElapsedSeconds)) + "\n")
	for _, op := range metrics.Operations {
		s, ok := snap.Ops[op]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "  %-16s %6d calls  avg %8.2fms  max %6dms\n", op, s.Count, s.AvgTimeMs, s.MaxTimeMs)
	}
	return sb.String()
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
