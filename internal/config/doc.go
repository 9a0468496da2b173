// Package config loads mpdash's settings and screen layout.
//
// # Files
//
// Two files, both optional. Settings live in TOML at
// ~/.config/mpdash/mpdash.toml:
//
//	address = "192.168.1.4:6600"
//	jump_lines = 24
//	seek_secs = 5.0
//	ups = 1.0
//	cycle = false
//	clear_query_on_play = false
//	layout = "~/.config/mpdash/layout.yaml"
//
//	[search_fields]
//	file = false
//	title = true
//	artist = true
//	album = true
//
// The screen layout lives in YAML, by default at
// ~/.config/mpdash/layout.yaml. When either file is missing at its
// default location the built-ins apply; a path the user named must
// exist.
//
// # Layout grammar
//
// A layout is a tree of widgets. Rows and Columns split their area
// among constrained children, Queue renders the play queue as columns,
// and Textbox (left aligned), TextboxC, and TextboxR render one text
// expression:
//
//	Rows:
//	  - Fixed: [1, {Textbox: {Styled: [[Bold], "mpdash"]}}]
//	  - Min: [0, {Queue: [{item: {Ratio: [1, QueueTitle]}}]}]
//
// Constraints are Fixed, Min, Max (cell counts) and Ratio (a weight
// over the space left once the fixed-size slots are placed).
//
// Text expressions compose literals, accessors such as CurrentTitle or
// QueueArtist, the live search Query, Styled, Parts (a bare sequence
// means the same), and If with an optional else branch:
//
//	If: [{And: [Playing, Repeat]}, "looping", {Styled: [[Dim], "idle"]}]
//
// Conditions cover the option flags (Repeat, Random, Single, Oneshot,
// Consume), playback state (Playing, Paused, Stopped), current-song
// tags (TitleExist, ArtistExist, AlbumExist), search state (Searching,
// Filtered), per-row queue state (QueueCurrent, QueueTitleExist,
// Selected), and the combinators Not, And, Or, Xor.
//
// Styles are Fg and Bg with a color (a palette index, a name such as
// "LightBlue", "#rrggbb", or Reset) plus attribute toggles like Bold,
// Italic, NoUnderlined. A column's selected_style replaces its style
// entirely on the selected row.
//
// Queue accessors and the row conditions only make sense inside a
// Queue column item; Validate rejects them anywhere else.
//
// # Precedence
//
// Command-line flags override the settings file, which overrides the
// built-in defaults. The layout path follows the same chain: --layout,
// then the settings file's layout key, then the default location.
package config
