package components

import (
	"github.com/abhisek/learnpath/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for stacked sections so
// boxes line up.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return theme.Card.
		Width(cw).
		Render(content)
}
