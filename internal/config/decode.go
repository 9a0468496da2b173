package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MaxDepth bounds layout tree nesting. Files deeper than this are
// rejected while decoding; trees built in code are checked by Validate.
const MaxDepth = 100

// Sum types decode from three YAML shapes: a bare scalar names a unit
// variant ("CurrentTitle", "Bold", "Searching"), a single-key mapping
// names a parameterized one ({Fixed: [1, ...]}, {Fg: 113}), and inside
// Texts a sequence is shorthand for Parts. The decoder walks yaml.Node
// directly so every error can carry the path and line that produced it.

var textsUnits = map[string]TextsKind{
	"Empty":           TextsEmpty,
	"CurrentElapsed":  TextsCurrentElapsed,
	"CurrentDuration": TextsCurrentDuration,
	"CurrentFile":     TextsCurrentFile,
	"CurrentTitle":    TextsCurrentTitle,
	"CurrentArtist":   TextsCurrentArtist,
	"CurrentAlbum":    TextsCurrentAlbum,
	"QueueDuration":   TextsQueueDuration,
	"QueueFile":       TextsQueueFile,
	"QueueTitle":      TextsQueueTitle,
	"QueueArtist":     TextsQueueArtist,
	"QueueAlbum":      TextsQueueAlbum,
	"Query":           TextsQuery,
}

var condUnits = map[string]CondKind{
	"Repeat":          CondRepeat,
	"Random":          CondRandom,
	"Single":          CondSingle,
	"Oneshot":         CondOneshot,
	"Consume":         CondConsume,
	"Playing":         CondPlaying,
	"Paused":          CondPaused,
	"Stopped":         CondStopped,
	"TitleExist":      CondTitleExist,
	"ArtistExist":     CondArtistExist,
	"AlbumExist":      CondAlbumExist,
	"QueueCurrent":    CondQueueCurrent,
	"QueueTitleExist": CondQueueTitleExist,
	"Selected":        CondSelected,
	"Searching":       CondSearching,
	"Filtered":        CondFiltered,
}

var styleUnits = map[string]StyleKind{
	"Bold":         StyleBold,
	"NoBold":       StyleNoBold,
	"Dim":          StyleDim,
	"NoDim":        StyleNoDim,
	"Italic":       StyleItalic,
	"NoItalic":     StyleNoItalic,
	"Underlined":   StyleUnderlined,
	"NoUnderlined": StyleNoUnderlined,
	"SlowBlink":    StyleSlowBlink,
	"NoSlowBlink":  StyleNoSlowBlink,
	"RapidBlink":   StyleRapidBlink,
	"NoRapidBlink": StyleNoRapidBlink,
	"Reversed":     StyleReversed,
	"NoReversed":   StyleNoReversed,
	"Hidden":       StyleHidden,
	"NoHidden":     StyleNoHidden,
	"CrossedOut":   StyleCrossedOut,
	"NoCrossedOut": StyleNoCrossedOut,
}

// Named palette colors, matched case-insensitively.
var colorNames = map[string]uint8{
	"black":        0,
	"red":          1,
	"green":        2,
	"yellow":       3,
	"blue":         4,
	"magenta":      5,
	"cyan":         6,
	"gray":         7,
	"grey":         7,
	"darkgray":     8,
	"darkgrey":     8,
	"lightred":     9,
	"lightgreen":   10,
	"lightyellow":  11,
	"lightblue":    12,
	"lightmagenta": 13,
	"lightcyan":    14,
	"white":        15,
}

// DecodeLayout parses a layout document into a widget tree. The result
// still needs Validate to check queue-scoped expressions.
func DecodeLayout(data []byte) (Widget, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Widget{}, &Error{Path: "layout", Reason: err.Error()}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return Widget{}, &Error{Path: "layout", Reason: "document is empty"}
	}
	return decodeWidget(doc.Content[0], "layout", 0)
}

func deref(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func nodeErr(path string, node *yaml.Node, format string, args ...any) *Error {
	reason := fmt.Sprintf(format, args...)
	if node != nil && node.Line > 0 {
		reason = fmt.Sprintf("%s (line %d)", reason, node.Line)
	}
	return &Error{Path: path, Reason: reason}
}

// unionKey unwraps a single-key mapping into its variant name and value.
func unionKey(node *yaml.Node, path string) (string, *yaml.Node, error) {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return "", nil, nodeErr(path, node, "expected a single-key mapping")
	}
	return node.Content[0].Value, deref(node.Content[1]), nil
}

func decodeWidget(node *yaml.Node, path string, depth int) (Widget, error) {
	if depth > MaxDepth {
		return Widget{}, nodeErr(path, node, "nested deeper than %d levels", MaxDepth)
	}
	node = deref(node)
	name, value, err := unionKey(node, path)
	if err != nil {
		return Widget{}, err
	}
	switch name {
	case "Rows", "Columns":
		children, err := decodeConstrained(value, path+"."+name, depth)
		if err != nil {
			return Widget{}, err
		}
		if name == "Rows" {
			return Rows(children...), nil
		}
		return Columns(children...), nil
	case "Textbox", "TextboxC", "TextboxR":
		content, err := decodeTexts(value, path+"."+name, depth+1)
		if err != nil {
			return Widget{}, err
		}
		switch name {
		case "TextboxC":
			return TextboxC(content), nil
		case "TextboxR":
			return TextboxR(content), nil
		}
		return Textbox(content), nil
	case "Queue":
		columns, err := decodeColumns(value, path+".Queue", depth)
		if err != nil {
			return Widget{}, err
		}
		return Queue(columns...), nil
	}
	return Widget{}, nodeErr(path, node, "unknown widget %q", name)
}

func decodeConstrained(node *yaml.Node, path string, depth int) ([]ConstrainedWidget, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, nodeErr(path, node, "expected a sequence of constrained widgets")
	}
	children := make([]ConstrainedWidget, 0, len(node.Content))
	for i, item := range node.Content {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		constraint, value, err := decodeConstraint(deref(item), itemPath)
		if err != nil {
			return nil, err
		}
		w, err := decodeWidget(value, itemPath, depth+1)
		if err != nil {
			return nil, err
		}
		children = append(children, ConstrainedWidget{Constraint: constraint, Widget: w})
	}
	return children, nil
}

// decodeConstraint unwraps {Fixed: [n, x]} into the constraint and the
// node for x, shared by widget children and queue column items.
func decodeConstraint(node *yaml.Node, path string) (Constraint, *yaml.Node, error) {
	name, value, err := unionKey(node, path)
	if err != nil {
		return Constraint{}, nil, err
	}
	var kind ConstraintKind
	switch name {
	case "Max":
		kind = ConstraintMax
	case "Min":
		kind = ConstraintMin
	case "Fixed":
		kind = ConstraintFixed
	case "Ratio":
		kind = ConstraintRatio
	default:
		return Constraint{}, nil, nodeErr(path, node, "unknown constraint %q", name)
	}
	if value.Kind != yaml.SequenceNode || len(value.Content) != 2 {
		return Constraint{}, nil, nodeErr(path, value, "%s wants [n, content]", name)
	}
	n, err := decodeInt(deref(value.Content[0]), path+"."+name)
	if err != nil {
		return Constraint{}, nil, err
	}
	if n < 0 {
		return Constraint{}, nil, nodeErr(path, value.Content[0], "%s size must not be negative", name)
	}
	return Constraint{Kind: kind, N: n}, deref(value.Content[1]), nil
}

func decodeColumns(node *yaml.Node, path string, depth int) ([]Column, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, nodeErr(path, node, "expected a sequence of columns")
	}
	columns := make([]Column, 0, len(node.Content))
	for i, item := range node.Content {
		col, err := decodeColumn(deref(item), fmt.Sprintf("%s[%d]", path, i), depth)
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
	}
	return columns, nil
}

func decodeColumn(node *yaml.Node, path string, depth int) (Column, error) {
	if node.Kind != yaml.MappingNode {
		return Column{}, nodeErr(path, node, "expected a column mapping")
	}
	var col Column
	haveItem := false
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := deref(node.Content[i+1])
		switch key {
		case "item":
			constraint, itemNode, err := decodeConstraint(value, path+".item")
			if err != nil {
				return Column{}, err
			}
			item, err := decodeTexts(itemNode, path+".item", depth+1)
			if err != nil {
				return Column{}, err
			}
			col.Constraint, col.Item = constraint, item
			haveItem = true
		case "style":
			styles, err := decodeStyles(value, path+".style")
			if err != nil {
				return Column{}, err
			}
			col.Style = styles
		case "selected_style":
			styles, err := decodeStyles(value, path+".selected_style")
			if err != nil {
				return Column{}, err
			}
			col.SelectedStyle = styles
		default:
			return Column{}, nodeErr(path, node.Content[i], "unknown column key %q", key)
		}
	}
	if !haveItem {
		return Column{}, nodeErr(path, node, "column needs an item")
	}
	return col, nil
}

func decodeTexts(node *yaml.Node, path string, depth int) (Texts, error) {
	if depth > MaxDepth {
		return Texts{}, nodeErr(path, node, "nested deeper than %d levels", MaxDepth)
	}
	node = deref(node)
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return Empty(), nil
		}
		if kind, ok := textsUnits[node.Value]; ok {
			return Texts{Kind: kind}, nil
		}
		// Any other scalar is a literal.
		return Text(node.Value), nil
	case yaml.SequenceNode:
		return decodeParts(node, path, depth)
	case yaml.MappingNode:
		name, value, err := unionKey(node, path)
		if err != nil {
			return Texts{}, err
		}
		switch name {
		case "Text":
			if value.Kind != yaml.ScalarNode {
				return Texts{}, nodeErr(path, value, "Text wants a string")
			}
			return Text(value.Value), nil
		case "Styled":
			if value.Kind != yaml.SequenceNode || len(value.Content) != 2 {
				return Texts{}, nodeErr(path, value, "Styled wants [[styles], texts]")
			}
			styles, err := decodeStyles(deref(value.Content[0]), path+".Styled")
			if err != nil {
				return Texts{}, err
			}
			body, err := decodeTexts(value.Content[1], path+".Styled", depth+1)
			if err != nil {
				return Texts{}, err
			}
			return Styled(styles, body), nil
		case "Parts":
			if value.Kind != yaml.SequenceNode {
				return Texts{}, nodeErr(path, value, "Parts wants a sequence")
			}
			return decodeParts(value, path+".Parts", depth)
		case "If":
			return decodeIf(value, path+".If", depth)
		default:
			if kind, ok := textsUnits[name]; ok && value.Tag == "!!null" {
				return Texts{Kind: kind}, nil
			}
			return Texts{}, nodeErr(path, node, "unknown text expression %q", name)
		}
	}
	return Texts{}, nodeErr(path, node, "expected a text expression")
}

func decodeParts(node *yaml.Node, path string, depth int) (Texts, error) {
	parts := make([]Texts, 0, len(node.Content))
	for i, item := range node.Content {
		part, err := decodeTexts(item, fmt.Sprintf("%s[%d]", path, i), depth+1)
		if err != nil {
			return Texts{}, err
		}
		parts = append(parts, part)
	}
	return Parts(parts...), nil
}

func decodeIf(node *yaml.Node, path string, depth int) (Texts, error) {
	if node.Kind != yaml.SequenceNode || len(node.Content) < 2 || len(node.Content) > 3 {
		return Texts{}, nodeErr(path, node, "If wants [condition, then] or [condition, then, else]")
	}
	cond, err := decodeCondition(node.Content[0], path, depth+1)
	if err != nil {
		return Texts{}, err
	}
	then, err := decodeTexts(node.Content[1], path, depth+1)
	if err != nil {
		return Texts{}, err
	}
	if len(node.Content) == 2 {
		return If(cond, then), nil
	}
	els, err := decodeTexts(node.Content[2], path, depth+1)
	if err != nil {
		return Texts{}, err
	}
	return IfElse(cond, then, els), nil
}

func decodeCondition(node *yaml.Node, path string, depth int) (Condition, error) {
	if depth > MaxDepth {
		return Condition{}, nodeErr(path, node, "nested deeper than %d levels", MaxDepth)
	}
	node = deref(node)
	switch node.Kind {
	case yaml.ScalarNode:
		if kind, ok := condUnits[node.Value]; ok {
			return Condition{Kind: kind}, nil
		}
		return Condition{}, nodeErr(path, node, "unknown condition %q", node.Value)
	case yaml.MappingNode:
		name, value, err := unionKey(node, path)
		if err != nil {
			return Condition{}, err
		}
		switch name {
		case "Not":
			inner, err := decodeCondition(value, path+".Not", depth+1)
			if err != nil {
				return Condition{}, err
			}
			return Not(inner), nil
		case "And", "Or", "Xor":
			if value.Kind != yaml.SequenceNode || len(value.Content) != 2 {
				return Condition{}, nodeErr(path, value, "%s wants [condition, condition]", name)
			}
			l, err := decodeCondition(value.Content[0], path+"."+name, depth+1)
			if err != nil {
				return Condition{}, err
			}
			r, err := decodeCondition(value.Content[1], path+"."+name, depth+1)
			if err != nil {
				return Condition{}, err
			}
			switch name {
			case "And":
				return And(l, r), nil
			case "Or":
				return Or(l, r), nil
			}
			return Xor(l, r), nil
		default:
			if kind, ok := condUnits[name]; ok && value.Tag == "!!null" {
				return Condition{Kind: kind}, nil
			}
			return Condition{}, nodeErr(path, node, "unknown condition %q", name)
		}
	}
	return Condition{}, nodeErr(path, node, "expected a condition")
}

func decodeStyles(node *yaml.Node, path string) ([]Style, error) {
	node = deref(node)
	if node.Kind != yaml.SequenceNode {
		return nil, nodeErr(path, node, "expected a sequence of styles")
	}
	styles := make([]Style, 0, len(node.Content))
	for i, item := range node.Content {
		style, err := decodeStyle(deref(item), fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		styles = append(styles, style)
	}
	return styles, nil
}

func decodeStyle(node *yaml.Node, path string) (Style, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if kind, ok := styleUnits[node.Value]; ok {
			return Style{Kind: kind}, nil
		}
		return Style{}, nodeErr(path, node, "unknown style %q", node.Value)
	case yaml.MappingNode:
		name, value, err := unionKey(node, path)
		if err != nil {
			return Style{}, err
		}
		switch name {
		case "Fg", "Bg":
			color, err := decodeColor(value, path+"."+name)
			if err != nil {
				return Style{}, err
			}
			if name == "Fg" {
				return Fg(color), nil
			}
			return Bg(color), nil
		default:
			if kind, ok := styleUnits[name]; ok && value.Tag == "!!null" {
				return Style{Kind: kind}, nil
			}
			return Style{}, nodeErr(path, node, "unknown style %q", name)
		}
	}
	return Style{}, nodeErr(path, node, "expected a style")
}

func decodeColor(node *yaml.Node, path string) (Color, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!int" {
			n, err := decodeInt(node, path)
			if err != nil {
				return Color{}, err
			}
			if n < 0 || n > 255 {
				return Color{}, nodeErr(path, node, "palette index %d out of range", n)
			}
			return Indexed(uint8(n)), nil
		}
		s := node.Value
		if s == "Reset" {
			return Color{}, nil
		}
		if hex, ok := strings.CutPrefix(s, "#"); ok && len(hex) == 6 {
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return Color{}, nodeErr(path, node, "bad hex color %q", s)
			}
			return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
		}
		if idx, ok := colorNames[strings.ToLower(s)]; ok {
			return Indexed(idx), nil
		}
		return Color{}, nodeErr(path, node, "unknown color %q", s)
	case yaml.MappingNode:
		name, value, err := unionKey(node, path)
		if err != nil {
			return Color{}, err
		}
		switch name {
		case "Indexed":
			n, err := decodeInt(deref(value), path+".Indexed")
			if err != nil {
				return Color{}, err
			}
			if n < 0 || n > 255 {
				return Color{}, nodeErr(path, value, "palette index %d out of range", n)
			}
			return Indexed(uint8(n)), nil
		case "Rgb":
			if value.Kind != yaml.SequenceNode || len(value.Content) != 3 {
				return Color{}, nodeErr(path, value, "Rgb wants [r, g, b]")
			}
			var rgb [3]uint8
			for i, item := range value.Content {
				n, err := decodeInt(deref(item), path+".Rgb")
				if err != nil {
					return Color{}, err
				}
				if n < 0 || n > 255 {
					return Color{}, nodeErr(path, item, "channel %d out of range", n)
				}
				rgb[i] = uint8(n)
			}
			return RGB(rgb[0], rgb[1], rgb[2]), nil
		}
		return Color{}, nodeErr(path, node, "unknown color %q", name)
	}
	return Color{}, nodeErr(path, node, "expected a color")
}

func decodeInt(node *yaml.Node, path string) (int, error) {
	if node.Kind != yaml.ScalarNode {
		return 0, nodeErr(path, node, "expected a number")
	}
	n, err := strconv.Atoi(node.Value)
	if err != nil {
		return 0, nodeErr(path, node, "expected a number, got %q", node.Value)
	}
	return n, nil
}
