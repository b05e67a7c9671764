package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathmate/internal/ui/layout"
)

// Screen is one full-terminal view managed by the router's stack.
type Screen interface {
	// Init returns a command to run when the screen is first pushed,
	// typically a load from the store.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	// Besides user input, screens receive broadcast RefreshMsg ticks and
	// focus events even while covered, so time-derived views (streak,
	// day buckets) roll over midnight without becoming active.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content for the area between the header
	// and footer.
	View(width, height int) string

	// Title is shown in the header, next to the level and streak badges.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
