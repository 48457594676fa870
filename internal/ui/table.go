package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jscyril/freesound_cli/api"
)

const (
	tableNameWidth = 40
	tableTagCount  = 3
)

var (
	tableTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// FormatTable renders a result page as a fixed-column listing. The #
// column is the 1-based position within this page, which is what the
// play/inspect/download commands take.
func FormatTable(page *api.ResultPage) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("4"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Headers("#", "ID", "Name", "Dur.", "Upload Date", "User", "Tags")

	for i := range page.Sounds {
		t.Row(tableRow(i, &page.Sounds[i])...)
	}

	title := fmt.Sprintf("FreeSound.org Search Results - Page %d/%d", page.Page, page.TotalPages)
	return tableTitleStyle.Render(title) + "\n" + t.Render()
}

// tableRow builds the display cells for the sound at 0-based position i
// on the current page. The # cell is always the page-relative position,
// whatever the absolute page number.
func tableRow(i int, s *api.Sound) []string {
	return []string{
		strconv.Itoa(i + 1),
		strconv.FormatInt(s.ID, 10),
		Truncate(s.Name, tableNameWidth),
		fmt.Sprintf("%.1fs", s.Duration),
		s.Created.Format("2006-01"),
		s.Username,
		tagList(s.Tags, tableTagCount),
	}
}

// Truncate cuts a string to at most n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func tagList(tags []string, n int) string {
	if len(tags) == 0 {
		return "No tags"
	}
	if len(tags) > n {
		tags = tags[:n]
	}
	return strings.Join(tags, ", ")
}
