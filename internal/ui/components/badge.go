package components

import (
	"strings"

	"github.com/abhisek/mathmate/internal/achievements"
	"github.com/abhisek/mathmate/internal/ui/theme"
)

// BadgeGrid renders achievement badges in rows, earned ones highlighted.
type BadgeGrid struct {
	Badges  []achievements.Achievement
	PerRow  int
	CellGap string
}

// NewBadgeGrid creates a grid with the given badges per row.
func NewBadgeGrid(badges []achievements.Achievement, perRow int) BadgeGrid {
	if perRow < 1 {
		perRow = 1
	}
	return BadgeGrid{
		Badges:  badges,
		PerRow:  perRow,
		CellGap: "   ",
	}
}

// View renders the grid.
func (g BadgeGrid) View() string {
	var rows []string
	for start := 0; start < len(g.Badges); start += g.PerRow {
		end := start + g.PerRow
		if end > len(g.Badges) {
			end = len(g.Badges)
		}

		cells := make([]string, 0, end-start)
		for _, badge := range g.Badges[start:end] {
			cells = append(cells, renderBadge(badge))
		}
		rows = append(rows, strings.Join(cells, g.CellGap))
	}
	return strings.Join(rows, "\n")
}

func renderBadge(a achievements.Achievement) string {
	if a.Earned {
		return theme.BadgeEarned.Render("★ " + a.Name)
	}
	return theme.BadgeLocked.Render("☆ " + a.Name)
}
