package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hintlayout/pkg/pipeline"
	"github.com/matzehuels/hintlayout/pkg/placement"
	"github.com/matzehuels/hintlayout/pkg/scenario"
)

var (
	previewDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
	previewLineStyle = lipgloss.NewStyle().Foreground(colorGray)
	previewMarkStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
)

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		path    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "preview [scenario]",
		Short: "Move the anchor line interactively and watch the placement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sc, err := scenario.Load(args[0])
			if err != nil {
				return fmt.Errorf("load scenario %s: %w", args[0], err)
			}
			cfg, err := c.loadConfig(path)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			m := NewPreviewModel(sc, runnerPlanFunc(ctx, runner, cfg.Planner))
			if _, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(cmd.OutOrStdout())).Run(); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "config file (TOML)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// PlanFunc plans sc and reports the pipeline result.
type PlanFunc func(sc *scenario.Scenario) (*pipeline.Result, error)

func runnerPlanFunc(ctx context.Context, runner *pipeline.Runner, opts placement.Options) PlanFunc {
	return func(sc *scenario.Scenario) (*pipeline.Result, error) {
		return runner.Place(ctx, pipeline.Options{Scenario: sc, Planner: opts})
	}
}

// placedMsg carries the result of planning one anchor line.
type placedMsg struct {
	anchor int
	result *pipeline.Result
	err    error
}

// =============================================================================
// PreviewModel - Interactive anchor navigation
// =============================================================================

// PreviewModel is the bubbletea model for the preview command.
type PreviewModel struct {
	Scenario *scenario.Scenario
	Anchor   int
	Result   *pipeline.Result
	Err      error
	Height   int

	plan PlanFunc
}

// NewPreviewModel creates a preview model starting at the scenario's anchor.
func NewPreviewModel(sc *scenario.Scenario, plan PlanFunc) PreviewModel {
	return PreviewModel{
		Scenario: sc,
		Anchor:   sc.AnchorLine,
		Height:   15,
		plan:     plan,
	}
}

func (m PreviewModel) Init() tea.Cmd {
	return m.planCmd(m.Anchor)
}

func (m PreviewModel) planCmd(anchor int) tea.Cmd {
	sc := m.Scenario.WithAnchor(anchor)
	plan := m.plan
	return func() tea.Msg {
		res, err := plan(sc)
		return placedMsg{anchor: anchor, result: res, err: err}
	}
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			return m.moveTo(m.Anchor - 1)
		case "down", "j":
			return m.moveTo(m.Anchor + 1)
		case "pgup":
			return m.moveTo(m.Anchor - m.Height)
		case "pgdown":
			return m.moveTo(m.Anchor + m.Height)
		case "home", "g":
			return m.moveTo(1)
		case "end", "G":
			return m.moveTo(m.Scenario.LineCount())
		}
	case placedMsg:
		// Results for lines the user already moved past are stale.
		if msg.anchor == m.Anchor {
			m.Result, m.Err = msg.result, msg.err
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-16, 5)
	}
	return m, nil
}

func (m PreviewModel) moveTo(anchor int) (tea.Model, tea.Cmd) {
	anchor = min(max(anchor, 1), m.Scenario.LineCount())
	if anchor == m.Anchor {
		return m, nil
	}
	m.Anchor = anchor
	m.Result, m.Err = nil, nil
	return m, m.planCmd(anchor)
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Placement Preview"))
	b.WriteString("\n")
	b.WriteString(previewDimStyle.Render("↑/↓ move anchor  pgup/pgdn jump  g/G first/last  q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.linesView())
	b.WriteString("\n")

	switch {
	case m.Err != nil:
		b.WriteString(StyleWarning.Render(iconError + " " + m.Err.Error()))
	case m.Result == nil:
		b.WriteString(previewDimStyle.Render("planning..."))
	case !m.Result.Placed:
		b.WriteString(StyleWarning.Render(iconWarning + " no placement"))
	default:
		p := m.Result.Placement
		line := fmt.Sprintf("line %d", p.PlacedLine)
		if p.Fallback {
			line = "fallback"
		}
		t := newTable("", "Value").Rows(
			[]string{"Placed", line},
			[]string{"Widget", formatRect(p.WidgetRect)},
			[]string{"Editor", formatRect(p.EditorRect)},
			[]string{"Outer size", p.OuterSize.String()},
			[]string{"Scroll left", fmt.Sprintf("%g", p.DesiredInternalScrollLeft)},
		)
		b.WriteString(t.Render())
	}
	b.WriteString("\n")
	b.WriteString(previewDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Anchor, m.Scenario.LineCount())))

	return b.String()
}

// linesView draws the lines around the anchor as bars scaled to their width.
func (m PreviewModel) linesView() string {
	count := m.Scenario.LineCount()
	doc := scenario.NewDocument(m.Scenario)

	widest := 0.0
	for line := 1; line <= count; line++ {
		widest = max(widest, doc.ContentWidth(line))
	}

	first := max(1, m.Anchor-m.Height/2)
	last := min(count, first+m.Height-1)
	placed := 0
	if m.Result != nil && m.Result.Placed && !m.Result.Placement.Fallback {
		placed = m.Result.Placement.PlacedLine
	}

	const barWidth = 40
	var b strings.Builder
	for line := first; line <= last; line++ {
		n := 0
		if widest > 0 {
			n = int(doc.ContentWidth(line) / widest * barWidth)
		}
		bar := fmt.Sprintf("%4d %-*s", line, barWidth, strings.Repeat("▆", n))
		switch line {
		case m.Anchor:
			b.WriteString(previewMarkStyle.Render("▸" + bar))
		default:
			b.WriteString(previewLineStyle.Render(" " + bar))
		}
		if line == placed {
			b.WriteString(" " + StyleSuccess.Render(iconArrow+" widget"))
		}
		b.WriteString("\n")
	}
	return b.String()
}
