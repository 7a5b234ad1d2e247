package main

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/phanxgames/liquidglass/timeline"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	firedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	futureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

// runInspect opens a read-only terminal browser over a timeline document:
// the event table, a frame scrubber, and the resolved visual state of each
// component at the scrubbed frame. Editing happens elsewhere; this tool only
// answers "what does the document say at frame N".
func runInspect(cmd *cobra.Command, args []string) error {
	doc, err := timeline.Load(args[0])
	if err != nil {
		return err
	}
	var reg *timeline.Registry
	if registryFile != "" {
		reg, err = timeline.LoadRegistry(registryFile)
		if err != nil {
			return err
		}
	}
	m := newInspectModel(args[0], doc, reg)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

type inspectModel struct {
	path       string
	doc        *timeline.Document
	reg        *timeline.Registry
	classes    *timeline.Classifier
	components []string
	events     []timeline.Event

	frame  int
	cursor int
	width  int
	height int
}

func newInspectModel(path string, doc *timeline.Document, reg *timeline.Registry) inspectModel {
	events := make([]timeline.Event, len(doc.Events))
	copy(events, doc.Events)
	sort.SliceStable(events, func(i, j int) bool { return events[i].Frame < events[j].Frame })
	return inspectModel{
		path:       path,
		doc:        doc,
		reg:        reg,
		classes:    timeline.DefaultClassifier(),
		components: doc.ComponentIDs(),
		events:     events,
		width:      80,
		height:     24,
	}
}

func (m inspectModel) Init() tea.Cmd { return nil }

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.frame = clampFrame(m.frame-1, m.doc.DurationFrames)
		case "right", "l":
			m.frame = clampFrame(m.frame+1, m.doc.DurationFrames)
		case "pgdown", "L":
			m.frame = clampFrame(m.frame+m.doc.FPS, m.doc.DurationFrames)
		case "pgup", "H":
			m.frame = clampFrame(m.frame-m.doc.FPS, m.doc.DurationFrames)
		case "home", "0":
			m.frame = 0
		case "end", "$":
			m.frame = m.doc.DurationFrames
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.components)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func clampFrame(f, max int) int {
	if f < 0 {
		return 0
	}
	if f > max {
		return max
	}
	return f
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.path))
	b.WriteString(labelStyle.Render(fmt.Sprintf("  %d events, %d frames at %d fps\n\n",
		len(m.events), m.doc.DurationFrames, m.doc.FPS)))

	// Frame scrubber.
	barWidth := m.width - 20
	if barWidth < 10 {
		barWidth = 10
	}
	pos := 0
	if m.doc.DurationFrames > 0 {
		pos = m.frame * (barWidth - 1) / m.doc.DurationFrames
	}
	bar := strings.Repeat("─", pos) + "●" + strings.Repeat("─", barWidth-1-pos)
	b.WriteString(labelStyle.Render("frame "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%5d ", m.frame)))
	b.WriteString(barStyle.Render(bar))
	b.WriteString(labelStyle.Render(fmt.Sprintf(" %.2fs\n\n", float64(m.frame)/float64(m.doc.FPS))))

	// Resolved state per component.
	b.WriteString(titleStyle.Render("components\n"))
	for i, id := range m.components {
		st := timeline.Resolve(m.doc, id, float64(m.frame), m.classes, timeline.ResolveOptions{})
		marker := "  "
		style := valueStyle
		if i == m.cursor {
			marker = "> "
			style = cursorStyle
		}
		line := fmt.Sprintf("%s%-16s progress %.3f  size x%.3f  expanded %-5v", marker, id,
			st.Progress, st.SizeMultiplier, st.IsExpanded)
		if st.HasPosition {
			line += fmt.Sprintf("  pos (%.1f, %.1f)", st.X, st.Y)
		}
		b.WriteString(style.Render(line))
		if m.reg != nil {
			if rc := m.reg.Component(id); rc != nil && rc.DisplayName != "" {
				b.WriteString(labelStyle.Render("  " + rc.DisplayName))
			}
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Event table for the selected component, past events highlighted.
	b.WriteString(titleStyle.Render("events\n"))
	selected := ""
	if len(m.components) > 0 {
		selected = m.components[m.cursor]
	}
	shown := 0
	for _, e := range m.events {
		if e.ComponentID != selected {
			continue
		}
		style := futureStyle
		if float64(e.Frame) <= float64(m.frame) {
			style = firedStyle
		}
		spring := e.SpringOrDefault()
		b.WriteString(style.Render(fmt.Sprintf("  %5d  %-12s %-10s k=%g c=%g m=%g",
			e.Frame, e.Action, e.ID, spring.Stiffness, spring.Damping, spring.Mass)))
		b.WriteString("\n")
		shown++
	}
	if shown == 0 {
		b.WriteString(futureStyle.Render("  (none)\n"))
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("←/→ scrub  H/L ±1s  0/$ ends  ↑/↓ component  q quit"))
	return b.String()
}
