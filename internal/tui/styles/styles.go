// Package styles holds the theme and derived lipgloss styles for the
// TUI. A single theme is active for the life of the program.
package styles

import (
	"image/color"
	"strconv"
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme is a named color palette.
type Theme struct {
	Name   string
	IsDark bool

	Primary   color.Color
	Secondary color.Color
	Tertiary  color.Color
	Accent    color.Color

	BgBase    color.Color
	BgSubtle  color.Color
	BgOverlay color.Color

	FgBase   color.Color
	FgMuted  color.Color
	FgSubtle color.Color

	Border      color.Color
	BorderFocus color.Color

	Success color.Color
	Error   color.Color
	Warning color.Color
	Info    color.Color

	styles     *StyleSet
	stylesOnce sync.Once
}

// StyleSet is the set of ready-to-use styles derived from a theme.
type StyleSet struct {
	Base     lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Subtle   lipgloss.Style
	Primary  lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
}

// S returns the style set for the theme, built on first use.
func (t *Theme) S() *StyleSet {
	t.stylesOnce.Do(func() {
		t.styles = &StyleSet{
			Base:     lipgloss.NewStyle().Foreground(t.FgBase),
			Title:    lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
			Subtitle: lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
			Text:     lipgloss.NewStyle().Foreground(t.FgBase),
			Muted:    lipgloss.NewStyle().Foreground(t.FgMuted),
			Subtle:   lipgloss.NewStyle().Foreground(t.FgSubtle),
			Primary:  lipgloss.NewStyle().Foreground(t.Primary),
			Success:  lipgloss.NewStyle().Foreground(t.Success),
			Error:    lipgloss.NewStyle().Foreground(t.Error),
			Warning:  lipgloss.NewStyle().Foreground(t.Warning),
			Info:     lipgloss.NewStyle().Foreground(t.Info),
		}
	})
	return t.styles
}

// ParseHex converts a "#rrggbb" string into a color. Malformed input
// falls back to white rather than panicking at render time.
func ParseHex(s string) color.Color {
	s = strings.TrimPrefix(s, "#")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || len(s) != 6 {
		return color.White
	}
	return color.RGBA{
		R: uint8(v >> 16), //nolint:gosec // 6-digit hex, each byte fits
		G: uint8(v >> 8),  //nolint:gosec
		B: uint8(v),       //nolint:gosec
		A: 0xff,
	}
}

var (
	managerMu sync.Mutex
	current   *Theme
)

// NewManager installs the default theme as the active one.
func NewManager() {
	managerMu.Lock()
	defer managerMu.Unlock()
	current = NewDefaultTheme()
}

// CurrentTheme returns the active theme, installing the default if no
// manager was initialized (as in tests).
func CurrentTheme() *Theme {
	managerMu.Lock()
	defer managerMu.Unlock()
	if current == nil {
		current = NewDefaultTheme()
	}
	return current
}
