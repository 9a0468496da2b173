package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/mpdash/mpdash/internal/config"
	"github.com/mpdash/mpdash/internal/state"
)

// line is one terminal row of styled spans, exactly as wide as the area
// it was rendered into.
type line []span

func (l line) plain() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.text)
	}
	return b.String()
}

// renderFrame renders the widget tree into height rows of width cells
// each. A non-positive area yields an empty frame.
func renderFrame(w *config.Widget, snap *state.Snapshot, width, height, scroll int) []line {
	if width <= 0 || height <= 0 {
		return nil
	}
	return renderWidget(w, snap, width, height, scroll)
}

func renderWidget(w *config.Widget, snap *state.Snapshot, width, height, scroll int) []line {
	switch w.Kind {
	case config.WidgetRows:
		return renderRows(w, snap, width, height, scroll)
	case config.WidgetColumns:
		return renderColumns(w, snap, width, height, scroll)
	case config.WidgetTextbox:
		return renderTextbox(w, snap, width, height)
	case config.WidgetQueue:
		return renderQueue(w, snap, width, height, scroll)
	}
	return blankLines(width, height)
}

func renderRows(w *config.Widget, snap *state.Snapshot, width, height, scroll int) []line {
	if len(w.Children) == 0 {
		return blankLines(width, height)
	}
	segs := Resolve(childConstraints(w.Children), height)
	lines := make([]line, 0, height)
	for i := range w.Children {
		if segs[i].Length <= 0 {
			continue
		}
		lines = append(lines, renderWidget(&w.Children[i].Widget, snap, width, segs[i].Length, scroll)...)
	}
	return fillLines(lines, width, height)
}

func renderColumns(w *config.Widget, snap *state.Snapshot, width, height, scroll int) []line {
	if len(w.Children) == 0 {
		return blankLines(width, height)
	}
	segs := Resolve(childConstraints(w.Children), width)
	cols := make([][]line, 0, len(w.Children))
	for i := range w.Children {
		if segs[i].Length <= 0 {
			continue
		}
		cols = append(cols, renderWidget(&w.Children[i].Widget, snap, segs[i].Length, height, scroll))
	}
	lines := make([]line, height)
	for r := 0; r < height; r++ {
		for _, col := range cols {
			if r < len(col) {
				lines[r] = append(lines[r], col[r]...)
			}
		}
	}
	return lines
}

func renderTextbox(w *config.Widget, snap *state.Snapshot, width, height int) []line {
	spans := evalTexts(&w.Content, snap, rowContext{}, styleState{}, nil)
	lines := []line{fitLine(spans, width, w.Align, styleState{})}
	return fillLines(lines, width, height)
}

// renderQueue draws the visible window of the filtered queue. Column
// widths are resolved once and shared by every row; the scroll offset
// is re-clamped against the selection so it stays in view even if the
// caller's offset went stale.
func renderQueue(w *config.Widget, snap *state.Snapshot, width, height, scroll int) []line {
	n := len(snap.Filtered)
	if n == 0 || len(w.Columns) == 0 {
		return blankLines(width, height)
	}

	cons := make([]config.Constraint, len(w.Columns))
	for i := range w.Columns {
		cons[i] = w.Columns[i].Constraint
	}
	segs := Resolve(cons, width)

	off := clampScroll(scroll, snap.Selected, n, height)

	lines := make([]line, 0, height)
	for v := off; v < n && len(lines) < height; v++ {
		i := snap.Filtered[v]
		row := rowContext{
			song:       &snap.Queue[i],
			isCurrent:  i == snap.Status.Song,
			isSelected: v == snap.Selected,
		}
		var l line
		for ci := range w.Columns {
			if segs[ci].Length <= 0 {
				continue
			}
			col := &w.Columns[ci]
			base := styleState{}.apply(col.Style)
			if row.isSelected {
				base = styleState{}.apply(col.SelectedStyle)
			}
			spans := evalTexts(&col.Item, snap, row, base, nil)
			l = append(l, fitLine(spans, segs[ci].Length, config.AlignLeft, base)...)
		}
		lines = append(lines, l)
	}
	return fillLines(lines, width, height)
}

// fitLine clips or pads spans to exactly width cells. Padding follows
// the alignment and carries the base style; overflowing content is cut
// on the right regardless of alignment.
func fitLine(spans []span, width int, align config.Align, base styleState) line {
	if width <= 0 {
		return nil
	}
	var out line
	w := 0
	truncated := false
	for _, s := range spans {
		tw := runewidth.StringWidth(s.text)
		if w+tw > width {
			s.text = runewidth.Truncate(s.text, width-w, "")
			if tw = runewidth.StringWidth(s.text); tw > 0 {
				out = append(out, s)
				w += tw
			}
			truncated = true
			break
		}
		out = append(out, s)
		w += tw
	}
	pad := width - w
	if pad <= 0 {
		return out
	}
	if truncated {
		// A wide rune straddled the edge; the gap stays at the end.
		return append(out, span{text: strings.Repeat(" ", pad), style: base})
	}
	switch align {
	case config.AlignRight:
		out = append(line{span{text: strings.Repeat(" ", pad), style: base}}, out...)
	case config.AlignCenter:
		left := pad / 2
		if left > 0 {
			out = append(line{span{text: strings.Repeat(" ", left), style: base}}, out...)
		}
		out = append(out, span{text: strings.Repeat(" ", pad-left), style: base})
	default:
		out = append(out, span{text: strings.Repeat(" ", pad), style: base})
	}
	return out
}

func blankLine(width int) line {
	return line{span{text: strings.Repeat(" ", width)}}
}

func blankLines(width, height int) []line {
	lines := make([]line, 0, height)
	return fillLines(lines, width, height)
}

func fillLines(lines []line, width, height int) []line {
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, blankLine(width))
	}
	return lines
}
