package tui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/danmaku/internal/core"
)

// styles caches one lipgloss style per 256-color index. SSH sessions render
// concurrently, so access is locked.
var styles = struct {
	sync.RWMutex
	m map[core.Color]lipgloss.Style
}{m: map[core.Color]lipgloss.Style{core.ColorDefault: lipgloss.NewStyle()}}

// styleFor returns the foreground style of c.
func styleFor(c core.Color) lipgloss.Style {
	styles.RLock()
	st, ok := styles.m[c]
	styles.RUnlock()
	if ok {
		return st
	}

	st = lipgloss.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(int(c))))
	styles.Lock()
	styles.m[c] = st
	styles.Unlock()
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(styleFor(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
