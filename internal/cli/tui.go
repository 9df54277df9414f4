package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/firegrid/firegrid/pkg/pipeline"
	"github.com/firegrid/firegrid/pkg/rules"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseFindings opens the interactive finding browser over the pipeline
// result. It blocks until the user quits.
func browseFindings(ctx context.Context, result *pipeline.Result) error {
	model := newFindingListModel(result.Violations, result.Report.OverallStatus, result.Report.CompliancePercent)
	_, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	return err
}

// FindingListModel is the bubbletea model for browsing findings.
type FindingListModel struct {
	Findings []rules.Violation
	Status   string
	Percent  float64
	Cursor   int
	Height   int
	Offset   int
	Expanded bool
}

// newFindingListModel creates a finding browser over the given findings.
func newFindingListModel(findings []rules.Violation, status string, percent float64) FindingListModel {
	return FindingListModel{
		Findings: findings,
		Status:   status,
		Percent:  percent,
		Height:   15,
	}
}

func (m FindingListModel) Init() tea.Cmd {
	return nil
}

func (m FindingListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				m.Expanded = false
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Findings)-1 {
				m.Cursor++
				m.Expanded = false
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			m.Expanded = !m.Expanded
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m FindingListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Compliance Findings"))
	b.WriteString("  ")
	statusStyle := StyleSuccess
	if m.Status != "COMPLIANT" {
		statusStyle = StyleViolation
	}
	b.WriteString(statusStyle.Render(fmt.Sprintf("%s · %.1f%%", m.Status, m.Percent)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Findings) {
		end = len(m.Findings)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		v := m.Findings[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		subject := v.DeviceID
		if subject == "" {
			subject = v.CircuitID
		}
		if subject == "" {
			subject = "system"
		}

		section := v.Section
		if section == "" {
			section = "—"
		}

		rows = append(rows, []string{cursor, string(v.Severity), v.RuleID, subject, section, v.Description})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Severity", "Rule", "Subject", "Section", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Findings) {
				return lipgloss.NewStyle()
			}
			v := m.Findings[actualIdx]

			base := lipgloss.NewStyle()
			if col == 1 {
				base = base.Foreground(severityColor(v.Severity))
			}
			if actualIdx == m.Cursor {
				return base.Bold(true)
			}
			if col != 1 {
				return base.Foreground(colorGray)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if m.Expanded && m.Cursor < len(m.Findings) {
		v := m.Findings[m.Cursor]
		b.WriteString("\n")
		b.WriteString(listSelectedStyle.Render(v.RuleID))
		if v.Section != "" {
			b.WriteString(listDimStyle.Render("  NFPA 72 § " + v.Section))
		}
		b.WriteString("\n")
		b.WriteString("  " + StyleValue.Render(v.Description) + "\n")
		if v.Location != "" {
			b.WriteString("  " + listDimStyle.Render("Location: "+v.Location) + "\n")
		}
		if v.Remediation != "" {
			b.WriteString("  " + StyleHighlight.Render(iconArrow+" "+v.Remediation) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Findings))))

	return b.String()
}

// severityColor maps a severity to its palette color.
func severityColor(sev rules.Severity) lipgloss.Color {
	switch sev {
	case rules.SeverityCritical, rules.SeverityViolation:
		return colorRed
	default:
		return colorYellow
	}
}
