package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/mpdash/mpdash/internal/config"
)

// styleState is the running style accumulator threaded through a Texts
// fold. Styled nodes fold onto a copy, leaving sibling spans untouched.
// The zero value is the terminal default.
type styleState struct {
	fg         config.Color
	bg         config.Color
	bold       bool
	dim        bool
	italic     bool
	underlined bool
	slowBlink  bool
	rapidBlink bool
	reversed   bool
	hidden     bool
	crossedOut bool
}

func (s styleState) apply(styles []config.Style) styleState {
	for _, st := range styles {
		switch st.Kind {
		case config.StyleFg:
			s.fg = st.Color
		case config.StyleBg:
			s.bg = st.Color
		case config.StyleBold:
			s.bold = true
		case config.StyleNoBold:
			s.bold = false
		case config.StyleDim:
			s.dim = true
		case config.StyleNoDim:
			s.dim = false
		case config.StyleItalic:
			s.italic = true
		case config.StyleNoItalic:
			s.italic = false
		case config.StyleUnderlined:
			s.underlined = true
		case config.StyleNoUnderlined:
			s.underlined = false
		case config.StyleSlowBlink:
			s.slowBlink = true
		case config.StyleNoSlowBlink:
			s.slowBlink = false
		case config.StyleRapidBlink:
			s.rapidBlink = true
		case config.StyleNoRapidBlink:
			s.rapidBlink = false
		case config.StyleReversed:
			s.reversed = true
		case config.StyleNoReversed:
			s.reversed = false
		case config.StyleHidden:
			s.hidden = true
		case config.StyleNoHidden:
			s.hidden = false
		case config.StyleCrossedOut:
			s.crossedOut = true
		case config.StyleNoCrossedOut:
			s.crossedOut = false
		}
	}
	return s
}

// render styles text for the terminal. Hidden spans keep their width
// but show blanks, since lipgloss carries no conceal attribute.
func (s styleState) render(text string) string {
	if s.hidden {
		text = strings.Repeat(" ", runewidth.StringWidth(text))
	}
	if s == (styleState{}) {
		return text
	}
	return s.lipgloss().Render(text)
}

func (s styleState) lipgloss() lipgloss.Style {
	st := lipgloss.NewStyle()
	if c, ok := termColor(s.fg); ok {
		st = st.Foreground(c)
	}
	if c, ok := termColor(s.bg); ok {
		st = st.Background(c)
	}
	if s.bold {
		st = st.Bold(true)
	}
	if s.dim {
		st = st.Faint(true)
	}
	if s.italic {
		st = st.Italic(true)
	}
	if s.underlined {
		st = st.Underline(true)
	}
	if s.slowBlink || s.rapidBlink {
		st = st.Blink(true)
	}
	if s.reversed {
		st = st.Reverse(true)
	}
	if s.crossedOut {
		st = st.Strikethrough(true)
	}
	return st
}

func termColor(c config.Color) (lipgloss.TerminalColor, bool) {
	switch c.Kind {
	case config.ColorIndexed:
		return lipgloss.Color(strconv.Itoa(int(c.Index))), true
	case config.ColorRGB:
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)), true
	}
	return nil, false
}
