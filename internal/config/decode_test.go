package config

import (
	"reflect"
	"strings"
	"testing"
)

func TestDecodeLayout_DefaultShape(t *testing.T) {
	layout, err := DecodeLayout([]byte(`
Rows:
  - Fixed:
      - 1
      - Columns:
          - Ratio: [12, {Textbox: {Styled: [[{Fg: 122}, Bold], Title]}}]
          - Ratio: [10, {Textbox: {Styled: [[{Fg: 158}, Bold], Artist]}}]
  - Min:
      - 0
      - Queue:
          - item: {Ratio: [12, {If: [QueueCurrent, {Styled: [[Italic], QueueTitle]}, QueueTitle]}]}
            style: [{Fg: 75}]
            selected_style: [{Fg: Black}, {Bg: 75}, Bold]
`))
	if err != nil {
		t.Fatalf("DecodeLayout returned error: %v", err)
	}

	want := Rows(
		child(Fixed(1), Columns(
			child(Ratio(12), Textbox(Styled([]Style{Fg(Indexed(122)), Bold()}, Text("Title")))),
			child(Ratio(10), Textbox(Styled([]Style{Fg(Indexed(158)), Bold()}, Text("Artist")))),
		)),
		child(Min(0), Queue(Column{
			Constraint:    Ratio(12),
			Item:          IfElse(QueueCurrent(), Styled([]Style{Italic()}, QueueTitle()), QueueTitle()),
			Style:         []Style{Fg(Indexed(75))},
			SelectedStyle: []Style{Fg(Indexed(0)), Bg(Indexed(75)), Bold()},
		})),
	)
	if !reflect.DeepEqual(layout, want) {
		t.Fatalf("DecodeLayout = %+v, want %+v", layout, want)
	}
}

func TestDecodeLayout_TextScalars(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want Texts
	}{
		{"literal string", `{Textbox: "now playing"}`, Text("now playing")},
		{"accessor unit", `{Textbox: CurrentTitle}`, CurrentTitle()},
		{"query unit", `{Textbox: Query}`, Query()},
		{"null is empty", `{Textbox: ~}`, Empty()},
		{"unknown name is a literal", `{Textbox: Subtitle}`, Text("Subtitle")},
		{"explicit text wrapper", `{Textbox: {Text: CurrentTitle}}`, Text("CurrentTitle")},
		{"sequence is parts", `{Textbox: ["a", CurrentFile]}`, Parts(Text("a"), CurrentFile())},
		{"unit as single-key map", `{Textbox: {CurrentArtist: ~}}`, CurrentArtist()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := DecodeLayout([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("DecodeLayout returned error: %v", err)
			}
			if !reflect.DeepEqual(layout.Content, tt.want) {
				t.Fatalf("content = %+v, want %+v", layout.Content, tt.want)
			}
		})
	}
}

func TestDecodeLayout_IfForms(t *testing.T) {
	layout, err := DecodeLayout([]byte(`
Textbox:
  If:
    - {Xor: [Repeat, {Not: Random}]}
    - "on"
`))
	if err != nil {
		t.Fatalf("DecodeLayout returned error: %v", err)
	}
	want := If(Xor(Repeat(), Not(Random())), Text("on"))
	if !reflect.DeepEqual(layout.Content, want) {
		t.Fatalf("content = %+v, want %+v", layout.Content, want)
	}

	layout, err = DecodeLayout([]byte(`{Textbox: {If: [Playing, "play", "idle"]}}`))
	if err != nil {
		t.Fatalf("DecodeLayout returned error: %v", err)
	}
	want = IfElse(Playing(), Text("play"), Text("idle"))
	if !reflect.DeepEqual(layout.Content, want) {
		t.Fatalf("content = %+v, want %+v", layout.Content, want)
	}
}

func TestDecodeLayout_Colors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want Color
	}{
		{"indexed", `{Fg: 208}`, Indexed(208)},
		{"named", `{Fg: LightBlue}`, Indexed(12)},
		{"named case-insensitive", `{Fg: darkgray}`, Indexed(8)},
		{"hex", `{Fg: "#1db954"}`, RGB(0x1d, 0xb9, 0x54)},
		{"reset", `{Fg: Reset}`, Color{}},
		{"rgb triple", `{Fg: {Rgb: [30, 215, 96]}}`, RGB(30, 215, 96)},
		{"indexed wrapper", `{Fg: {Indexed: 99}}`, Indexed(99)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := DecodeLayout([]byte(`{Textbox: {Styled: [[` + tt.yaml + `], x]}}`))
			if err != nil {
				t.Fatalf("DecodeLayout returned error: %v", err)
			}
			got := layout.Content.Styles[0].Color
			if got != tt.want {
				t.Fatalf("color = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeLayout_Anchors(t *testing.T) {
	layout, err := DecodeLayout([]byte(`
Rows:
  - Fixed: [1, {Textbox: &cell {Styled: [[Bold], CurrentTitle]}}]
  - Fixed: [1, {Textbox: *cell}]
`))
	if err != nil {
		t.Fatalf("DecodeLayout returned error: %v", err)
	}
	first := layout.Children[0].Widget.Content
	second := layout.Children[1].Widget.Content
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("aliased content = %+v, want %+v", second, first)
	}
}

func TestDecodeLayout_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown widget", `{Grid: []}`, `unknown widget "Grid"`},
		{"unknown constraint", `{Rows: [{Exactly: [1, {Textbox: x}]}]}`, `unknown constraint "Exactly"`},
		{"negative size", `{Rows: [{Fixed: [-1, {Textbox: x}]}]}`, "must not be negative"},
		{"two-key mapping", `{Rows: [], Columns: []}`, "single-key mapping"},
		{"unknown condition", `{Textbox: {If: [Shuffling, x]}}`, `unknown condition "Shuffling"`},
		{"unknown style", `{Textbox: {Styled: [[Blinking], x]}}`, `unknown style "Blinking"`},
		{"unknown color", `{Textbox: {Styled: [[{Fg: Crimson}], x]}}`, `unknown color "Crimson"`},
		{"index out of range", `{Textbox: {Styled: [[{Fg: 256}], x]}}`, "out of range"},
		{"bad hex", `{Textbox: {Styled: [[{Fg: "#12345g"}], x]}}`, "bad hex color"},
		{"column without item", `{Queue: [{style: [Bold]}]}`, "needs an item"},
		{"unknown column key", `{Queue: [{item: {Ratio: [1, QueueTitle]}, width: 3}]}`, `unknown column key "width"`},
		{"if arity", `{Textbox: {If: [Playing]}}`, "If wants"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeLayout([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("DecodeLayout returned nil error, want %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestDecodeLayout_ErrorCarriesPathAndLine(t *testing.T) {
	_, err := DecodeLayout([]byte(`
Rows:
  - Fixed:
      - 1
      - Columns:
          - Ratio: [1, {Textbox: {Styled: [[Shiny], x]}}]
`))
	if err == nil {
		t.Fatal("DecodeLayout returned nil error, want style error")
	}
	msg := err.Error()
	for _, part := range []string{"layout.Rows[0].Columns[0].Textbox.Styled[0]", "line 6"} {
		if !strings.Contains(msg, part) {
			t.Fatalf("error = %q, want it to mention %q", msg, part)
		}
	}
}

func TestDecodeLayout_DepthBound(t *testing.T) {
	doc := `{Textbox: ` + strings.Repeat(`{Parts: [`, MaxDepth+5) + `Query` +
		strings.Repeat(`]}`, MaxDepth+5) + `}`
	_, err := DecodeLayout([]byte(doc))
	if err == nil {
		t.Fatal("DecodeLayout returned nil error, want depth error")
	}
	if !strings.Contains(err.Error(), "nested deeper") {
		t.Fatalf("error = %q, want it to mention nesting depth", err)
	}
}
