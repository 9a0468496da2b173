package config

import "fmt"

// Validate checks the rules the decoder cannot see locally: queue-scoped
// expressions staying inside Queue column items, the nesting bound for
// trees built in code, and the numeric settings the update loop divides
// by. Loading and validating are separate steps so flag overrides are
// covered too.
func (c Config) Validate() error {
	if c.UPS <= 0 {
		return &Error{Path: "ups", Reason: fmt.Sprintf("updates per second must be positive, got %g", c.UPS)}
	}
	if c.JumpLines < 0 {
		return &Error{Path: "jump_lines", Reason: fmt.Sprintf("must not be negative, got %d", c.JumpLines)}
	}
	if c.SeekSecs < 0 {
		return &Error{Path: "seek_secs", Reason: fmt.Sprintf("must not be negative, got %g", c.SeekSecs)}
	}
	return validateWidget(&c.Layout, "layout", 0)
}

func validateWidget(w *Widget, path string, depth int) error {
	if depth > MaxDepth {
		return &Error{Path: path, Reason: fmt.Sprintf("nested deeper than %d levels", MaxDepth)}
	}
	switch w.Kind {
	case WidgetRows, WidgetColumns:
		for i := range w.Children {
			child := &w.Children[i]
			childPath := fmt.Sprintf("%s.%s[%d]", path, w.Kind, i)
			if child.Constraint.N < 0 {
				return &Error{Path: childPath, Reason: "constraint size must not be negative"}
			}
			if err := validateWidget(&child.Widget, childPath, depth+1); err != nil {
				return err
			}
		}
	case WidgetTextbox:
		return validateTexts(&w.Content, path+".Textbox", depth+1, false)
	case WidgetQueue:
		for i := range w.Columns {
			col := &w.Columns[i]
			colPath := fmt.Sprintf("%s.Queue[%d]", path, i)
			if col.Constraint.N < 0 {
				return &Error{Path: colPath, Reason: "constraint size must not be negative"}
			}
			if err := validateTexts(&col.Item, colPath+".item", depth+1, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateTexts(t *Texts, path string, depth int, inQueue bool) error {
	if depth > MaxDepth {
		return &Error{Path: path, Reason: fmt.Sprintf("nested deeper than %d levels", MaxDepth)}
	}
	switch t.Kind {
	case TextsQueueDuration, TextsQueueFile, TextsQueueTitle, TextsQueueArtist, TextsQueueAlbum:
		if !inQueue {
			return &Error{Path: path, Reason: fmt.Sprintf("%s only works inside a Queue column", t.Kind)}
		}
	case TextsStyled:
		return validateTexts(t.Body, path+".Styled", depth+1, inQueue)
	case TextsParts:
		for i := range t.List {
			if err := validateTexts(&t.List[i], fmt.Sprintf("%s.Parts[%d]", path, i), depth+1, inQueue); err != nil {
				return err
			}
		}
	case TextsIf:
		if err := validateCondition(t.Cond, path+".If", depth+1, inQueue); err != nil {
			return err
		}
		if err := validateTexts(t.Then, path+".If", depth+1, inQueue); err != nil {
			return err
		}
		if t.Else != nil {
			return validateTexts(t.Else, path+".If", depth+1, inQueue)
		}
	}
	return nil
}

func validateCondition(c *Condition, path string, depth int, inQueue bool) error {
	if depth > MaxDepth {
		return &Error{Path: path, Reason: fmt.Sprintf("nested deeper than %d levels", MaxDepth)}
	}
	switch c.Kind {
	case CondQueueCurrent, CondQueueTitleExist, CondSelected:
		if !inQueue {
			return &Error{Path: path, Reason: fmt.Sprintf("%s only works inside a Queue column", c.Kind)}
		}
	case CondNot:
		return validateCondition(c.L, path+".Not", depth+1, inQueue)
	case CondAnd, CondOr, CondXor:
		if err := validateCondition(c.L, path+"."+c.Kind.String(), depth+1, inQueue); err != nil {
			return err
		}
		return validateCondition(c.R, path+"."+c.Kind.String(), depth+1, inQueue)
	}
	return nil
}
