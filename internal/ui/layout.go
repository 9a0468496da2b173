package ui

import "github.com/mpdash/mpdash/internal/config"

// Segment is one resolved slot along a single axis.
type Segment struct {
	Offset int
	Length int
}

// Resolve splits available cells among the given constraints. Fixed
// entries take exactly their size, Min its minimum and Max its maximum;
// the remaining space is divided among Ratio entries proportionally to
// their weights using integer division, with the division remainder
// going to the last Ratio entry. Without any Ratio entry the leftover
// goes to the last Min entry, or failing that to the last entry, so the
// segments always cover the full axis. When the requested lengths
// exceed the available space the overflowing entry is cut short and
// every entry after it collapses to zero; earlier entries never shrink.
func Resolve(constraints []config.Constraint, available int) []Segment {
	segs := make([]Segment, len(constraints))
	if available < 0 {
		available = 0
	}
	if len(constraints) == 0 {
		return segs
	}

	fixed, weight := 0, 0
	lastRatio, lastMin := -1, -1
	for i, c := range constraints {
		switch c.Kind {
		case config.ConstraintRatio:
			weight += c.N
			lastRatio = i
		case config.ConstraintMin:
			fixed += c.N
			lastMin = i
		default:
			fixed += c.N
		}
	}

	slack := available - fixed
	if slack < 0 {
		slack = 0
	}

	lengths := make([]int, len(constraints))
	left := slack
	for i, c := range constraints {
		if c.Kind != config.ConstraintRatio {
			lengths[i] = c.N
			continue
		}
		n := 0
		if weight > 0 {
			n = slack * c.N / weight
		}
		if i == lastRatio {
			n = left
		}
		lengths[i] = n
		left -= n
	}
	if lastRatio < 0 && slack > 0 {
		grow := len(constraints) - 1
		if lastMin >= 0 {
			grow = lastMin
		}
		lengths[grow] += slack
	}

	offset := 0
	for i, n := range lengths {
		if offset+n > available {
			n = available - offset
		}
		segs[i] = Segment{Offset: offset, Length: n}
		offset += n
	}
	return segs
}

func childConstraints(children []config.ConstrainedWidget) []config.Constraint {
	cs := make([]config.Constraint, len(children))
	for i := range children {
		cs[i] = children[i].Constraint
	}
	return cs
}

// queueArea walks the layout and returns the height of the first Queue
// widget's resolved area for the given window size, or 0 when the
// layout has none. Constraints are static, so this only changes on
// resize.
func queueArea(w *config.Widget, width, height int) int {
	switch w.Kind {
	case config.WidgetQueue:
		return height
	case config.WidgetRows:
		segs := Resolve(childConstraints(w.Children), height)
		for i := range w.Children {
			if h := queueArea(&w.Children[i].Widget, width, segs[i].Length); h > 0 {
				return h
			}
		}
	case config.WidgetColumns:
		segs := Resolve(childConstraints(w.Children), width)
		for i := range w.Children {
			if h := queueArea(&w.Children[i].Widget, segs[i].Length, height); h > 0 {
				return h
			}
		}
	}
	return 0
}

// clampScroll reconciles a scroll offset against the selection so the
// selected row stays inside a window of h rows over n rows total. The
// offset moves as little as possible.
func clampScroll(off, sel, n, h int) int {
	if h <= 0 || n <= 0 {
		return 0
	}
	if max := n - h; off > max {
		off = max
	}
	if off < 0 {
		off = 0
	}
	if sel >= 0 {
		if sel < off {
			off = sel
		}
		if sel >= off+h {
			off = sel - h + 1
		}
	}
	return off
}
