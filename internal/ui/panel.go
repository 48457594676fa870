package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jscyril/freesound_cli/api"
)

const (
	panelTagCount  = 5
	panelDescWidth = 100
)

var (
	panelLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	panelTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	panelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("4")).
				Padding(0, 1)
)

// FormatPanel renders the detail view for a single sound.
func FormatPanel(s *api.Sound) string {
	desc := s.Description
	if desc == "" {
		desc = "No description"
	} else if len([]rune(desc)) > panelDescWidth {
		desc = Truncate(desc, panelDescWidth) + "..."
	}

	tags := "No tags"
	if len(s.Tags) > 0 {
		tags = tagList(s.Tags, panelTagCount)
	}

	preview := "Available - type p # to play"
	if _, ok := s.PreviewURL(); !ok {
		preview = "Not available"
	}

	rows := []struct{ label, value string }{
		{"ID", fmt.Sprintf("%d", s.ID)},
		{"Name", s.Name},
		{"Created", s.Created.Format("2006-01-02 15:04:05")},
		{"Type", s.Type},
		{"Duration", fmt.Sprintf("%.2fs", s.Duration)},
		{"Tags", tags},
		{"Preview", preview},
		{"Description", desc},
		{"License", s.License},
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, panelLabelStyle.Render(r.label+":")+" "+r.value)
	}

	title := panelTitleStyle.Render(s.Username) + "'s Sound"
	return title + "\n" + panelBorderStyle.Render(strings.Join(lines, "\n"))
}
