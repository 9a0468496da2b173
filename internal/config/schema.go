package config

// The layout grammar: a recursive tree of widgets sized by constraints,
// whose leaves evaluate text expressions against live player state.
// Every sum type is a kind-tagged struct walked by recursive descent;
// the variant sets are closed.

// WidgetKind discriminates Widget.
type WidgetKind uint8

const (
	WidgetRows WidgetKind = iota
	WidgetColumns
	WidgetTextbox
	WidgetQueue
)

var widgetKindNames = [...]string{
	WidgetRows:    "Rows",
	WidgetColumns: "Columns",
	WidgetTextbox: "Textbox",
	WidgetQueue:   "Queue",
}

func (k WidgetKind) String() string {
	if int(k) < len(widgetKindNames) {
		return widgetKindNames[k]
	}
	return "Widget?"
}

// Align is a Textbox's horizontal alignment.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Widget is one node of the layout tree.
type Widget struct {
	Kind     WidgetKind
	Children []ConstrainedWidget // Rows, Columns
	Align    Align               // Textbox
	Content  Texts               // Textbox
	Columns  []Column            // Queue
}

// ConstraintKind discriminates Constraint.
type ConstraintKind uint8

const (
	ConstraintMax ConstraintKind = iota
	ConstraintMin
	ConstraintFixed
	ConstraintRatio
)

var constraintKindNames = [...]string{
	ConstraintMax:   "Max",
	ConstraintMin:   "Min",
	ConstraintFixed: "Fixed",
	ConstraintRatio: "Ratio",
}

func (k ConstraintKind) String() string {
	if int(k) < len(constraintKindNames) {
		return constraintKindNames[k]
	}
	return "Constraint?"
}

// Constraint sizes one slot of a Rows/Columns/Queue sequence. N is a
// length in cells for Max/Min/Fixed and a weight for Ratio; it is never
// negative.
type Constraint struct {
	Kind ConstraintKind
	N    int
}

// ConstrainedWidget pairs a child widget with its size constraint.
type ConstrainedWidget struct {
	Constraint Constraint
	Widget     Widget
}

// Column is one column of a Queue widget. Item is evaluated per visible
// row; SelectedStyle replaces Style entirely on the selected row.
type Column struct {
	Constraint    Constraint
	Item          Texts
	Style         []Style
	SelectedStyle []Style
}

// TextsKind discriminates Texts.
type TextsKind uint8

const (
	TextsEmpty TextsKind = iota
	TextsLiteral
	TextsCurrentElapsed
	TextsCurrentDuration
	TextsCurrentFile
	TextsCurrentTitle
	TextsCurrentArtist
	TextsCurrentAlbum
	TextsQueueDuration
	TextsQueueFile
	TextsQueueTitle
	TextsQueueArtist
	TextsQueueAlbum
	TextsQuery
	TextsStyled
	TextsParts
	TextsIf
)

var textsKindNames = [...]string{
	TextsEmpty:           "Empty",
	TextsLiteral:         "Text",
	TextsCurrentElapsed:  "CurrentElapsed",
	TextsCurrentDuration: "CurrentDuration",
	TextsCurrentFile:     "CurrentFile",
	TextsCurrentTitle:    "CurrentTitle",
	TextsCurrentArtist:   "CurrentArtist",
	TextsCurrentAlbum:    "CurrentAlbum",
	TextsQueueDuration:   "QueueDuration",
	TextsQueueFile:       "QueueFile",
	TextsQueueTitle:      "QueueTitle",
	TextsQueueArtist:     "QueueArtist",
	TextsQueueAlbum:      "QueueAlbum",
	TextsQuery:           "Query",
	TextsStyled:          "Styled",
	TextsParts:           "Parts",
	TextsIf:              "If",
}

func (k TextsKind) String() string {
	if int(k) < len(textsKindNames) {
		return textsKindNames[k]
	}
	return "Texts?"
}

// Texts is a text expression evaluated against a state snapshot into a
// sequence of styled spans.
type Texts struct {
	Kind   TextsKind
	Str    string     // TextsLiteral
	Styles []Style    // TextsStyled
	Body   *Texts     // TextsStyled
	List   []Texts    // TextsParts
	Cond   *Condition // TextsIf
	Then   *Texts     // TextsIf
	Else   *Texts     // TextsIf, nil when the branch is absent
}

// CondKind discriminates Condition.
type CondKind uint8

const (
	CondRepeat CondKind = iota
	CondRandom
	CondSingle
	CondOneshot
	CondConsume
	CondPlaying
	CondPaused
	CondStopped
	CondTitleExist
	CondArtistExist
	CondAlbumExist
	CondQueueCurrent
	CondQueueTitleExist
	CondSelected
	CondSearching
	CondFiltered
	CondNot
	CondAnd
	CondOr
	CondXor
)

var condKindNames = [...]string{
	CondRepeat:          "Repeat",
	CondRandom:          "Random",
	CondSingle:          "Single",
	CondOneshot:         "Oneshot",
	CondConsume:         "Consume",
	CondPlaying:         "Playing",
	CondPaused:          "Paused",
	CondStopped:         "Stopped",
	CondTitleExist:      "TitleExist",
	CondArtistExist:     "ArtistExist",
	CondAlbumExist:      "AlbumExist",
	CondQueueCurrent:    "QueueCurrent",
	CondQueueTitleExist: "QueueTitleExist",
	CondSelected:        "Selected",
	CondSearching:       "Searching",
	CondFiltered:        "Filtered",
	CondNot:             "Not",
	CondAnd:             "And",
	CondOr:              "Or",
	CondXor:             "Xor",
}

func (k CondKind) String() string {
	if int(k) < len(condKindNames) {
		return condKindNames[k]
	}
	return "Condition?"
}

// Condition is a boolean expression over player, song, queue-row, and
// search state. Combinators do not short-circuit; predicates are pure.
type Condition struct {
	Kind CondKind
	L, R *Condition // Not uses L; And/Or/Xor use both
}

// StyleKind discriminates Style.
type StyleKind uint8

const (
	StyleFg StyleKind = iota
	StyleBg
	StyleBold
	StyleNoBold
	StyleDim
	StyleNoDim
	StyleItalic
	StyleNoItalic
	StyleUnderlined
	StyleNoUnderlined
	StyleSlowBlink
	StyleNoSlowBlink
	StyleRapidBlink
	StyleNoRapidBlink
	StyleReversed
	StyleNoReversed
	StyleHidden
	StyleNoHidden
	StyleCrossedOut
	StyleNoCrossedOut
)

var styleKindNames = [...]string{
	StyleFg:           "Fg",
	StyleBg:           "Bg",
	StyleBold:         "Bold",
	StyleNoBold:       "NoBold",
	StyleDim:          "Dim",
	StyleNoDim:        "NoDim",
	StyleItalic:       "Italic",
	StyleNoItalic:     "NoItalic",
	StyleUnderlined:   "Underlined",
	StyleNoUnderlined: "NoUnderlined",
	StyleSlowBlink:    "SlowBlink",
	StyleNoSlowBlink:  "NoSlowBlink",
	StyleRapidBlink:   "RapidBlink",
	StyleNoRapidBlink: "NoRapidBlink",
	StyleReversed:     "Reversed",
	StyleNoReversed:   "NoReversed",
	StyleHidden:       "Hidden",
	StyleNoHidden:     "NoHidden",
	StyleCrossedOut:   "CrossedOut",
	StyleNoCrossedOut: "NoCrossedOut",
}

func (k StyleKind) String() string {
	if int(k) < len(styleKindNames) {
		return styleKindNames[k]
	}
	return "Style?"
}

// Style is one idempotent toggle applied to a running style accumulator.
type Style struct {
	Kind  StyleKind
	Color Color // Fg, Bg
}

// ColorKind discriminates Color.
type ColorKind uint8

const (
	// ColorDefault is the terminal's own color ("Reset").
	ColorDefault ColorKind = iota
	ColorIndexed
	ColorRGB
)

// Color is a named/indexed 0-255 color or a 24-bit RGB triple. The zero
// value is the terminal default.
type Color struct {
	Kind    ColorKind
	Index   uint8
	R, G, B uint8
}

// Indexed returns a palette color.
func Indexed(n uint8) Color { return Color{Kind: ColorIndexed, Index: n} }

// RGB returns a 24-bit color.
func RGB(r, g, b uint8) Color { return Color{Kind: ColorRGB, R: r, G: g, B: b} }

// Constructors for building layout trees in code, used by the built-in
// default layout and by tests. Loaded layouts come through the decoder
// instead.

func Fixed(n int) Constraint { return Constraint{Kind: ConstraintFixed, N: n} }
func Min(n int) Constraint { return Constraint{Kind: ConstraintMin, N: n} }
func Max(n int) Constraint { return Constraint{Kind: ConstraintMax, N: n} }
func Ratio(w int) Constraint { return Constraint{Kind: ConstraintRatio, N: w} }

func Rows(children ...ConstrainedWidget) Widget {
	return Widget{Kind: WidgetRows, Children: children}
}

func Columns(children ...ConstrainedWidget) Widget {
	return Widget{Kind: WidgetColumns, Children: children}
}

func Textbox(content Texts) Widget {
	return Widget{Kind: WidgetTextbox, Align: AlignLeft, Content: content}
}

func TextboxC(content Texts) Widget {
	return Widget{Kind: WidgetTextbox, Align: AlignCenter, Content: content}
}

func TextboxR(content Texts) Widget {
	return Widget{Kind: WidgetTextbox, Align: AlignRight, Content: content}
}

func Queue(columns ...Column) Widget {
	return Widget{Kind: WidgetQueue, Columns: columns}
}

func Empty() Texts { return Texts{Kind: TextsEmpty} }
func Text(s string) Texts { return Texts{Kind: TextsLiteral, Str: s} }
func CurrentElapsed() Texts { return Texts{Kind: TextsCurrentElapsed} }
func CurrentDuration() Texts {
	return Texts{Kind: TextsCurrentDuration}
}
func CurrentFile() Texts { return Texts{Kind: TextsCurrentFile} }
func CurrentTitle() Texts { return Texts{Kind: TextsCurrentTitle} }
func CurrentArtist() Texts { return Texts{Kind: TextsCurrentArtist} }
func CurrentAlbum() Texts { return Texts{Kind: TextsCurrentAlbum} }
func QueueDuration() Texts { return Texts{Kind: TextsQueueDuration} }
func QueueFile() Texts { return Texts{Kind: TextsQueueFile} }
func QueueTitle() Texts { return Texts{Kind: TextsQueueTitle} }
func QueueArtist() Texts { return Texts{Kind: TextsQueueArtist} }
func QueueAlbum() Texts { return Texts{Kind: TextsQueueAlbum} }
func Query() Texts { return Texts{Kind: TextsQuery} }

func Styled(styles []Style, body Texts) Texts {
	return Texts{Kind: TextsStyled, Styles: styles, Body: &body}
}

func Parts(parts ...Texts) Texts {
	return Texts{Kind: TextsParts, List: parts}
}

func If(cond Condition, then Texts) Texts {
	return Texts{Kind: TextsIf, Cond: &cond, Then: &then}
}

func IfElse(cond Condition, then, els Texts) Texts {
	return Texts{Kind: TextsIf, Cond: &cond, Then: &then, Else: &els}
}

func Repeat() Condition { return Condition{Kind: CondRepeat} }
func Random() Condition { return Condition{Kind: CondRandom} }
func Single() Condition { return Condition{Kind: CondSingle} }
func Oneshot() Condition { return Condition{Kind: CondOneshot} }
func Consume() Condition { return Condition{Kind: CondConsume} }
func Playing() Condition { return Condition{Kind: CondPlaying} }
func Paused() Condition { return Condition{Kind: CondPaused} }
func Stopped() Condition { return Condition{Kind: CondStopped} }
func TitleExist() Condition { return Condition{Kind: CondTitleExist} }
func ArtistExist() Condition { return Condition{Kind: CondArtistExist} }
func AlbumExist() Condition { return Condition{Kind: CondAlbumExist} }
func QueueCurrent() Condition { return Condition{Kind: CondQueueCurrent} }
func QueueTitleExist() Condition { return Condition{Kind: CondQueueTitleExist} }
func Selected() Condition { return Condition{Kind: CondSelected} }
func Searching() Condition { return Condition{Kind: CondSearching} }
func Filtered() Condition { return Condition{Kind: CondFiltered} }

func Not(c Condition) Condition {
	return Condition{Kind: CondNot, L: &c}
}

func And(l, r Condition) Condition {
	return Condition{Kind: CondAnd, L: &l, R: &r}
}

func Or(l, r Condition) Condition {
	return Condition{Kind: CondOr, L: &l, R: &r}
}

func Xor(l, r Condition) Condition {
	return Condition{Kind: CondXor, L: &l, R: &r}
}

func Fg(c Color) Style { return Style{Kind: StyleFg, Color: c} }
func Bg(c Color) Style { return Style{Kind: StyleBg, Color: c} }
func Bold() Style { return Style{Kind: StyleBold} }
func NoBold() Style { return Style{Kind: StyleNoBold} }
func Dim() Style { return Style{Kind: StyleDim} }
func NoDim() Style { return Style{Kind: StyleNoDim} }
func Italic() Style { return Style{Kind: StyleItalic} }
func NoItalic() Style { return Style{Kind: StyleNoItalic} }
func Underlined() Style { return Style{Kind: StyleUnderlined} }
func NoUnderlined() Style { return Style{Kind: StyleNoUnderlined} }
func SlowBlink() Style { return Style{Kind: StyleSlowBlink} }
func NoSlowBlink() Style { return Style{Kind: StyleNoSlowBlink} }
func RapidBlink() Style { return Style{Kind: StyleRapidBlink} }
func NoRapidBlink() Style { return Style{Kind: StyleNoRapidBlink} }
func Reversed() Style { return Style{Kind: StyleReversed} }
func NoReversed() Style { return Style{Kind: StyleNoReversed} }
func Hidden() Style { return Style{Kind: StyleHidden} }
func NoHidden() Style { return Style{Kind: StyleNoHidden} }
func CrossedOut() Style { return Style{Kind: StyleCrossedOut} }
func NoCrossedOut() Style { return Style{Kind: StyleNoCrossedOut} }
