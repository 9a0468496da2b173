package config

// DefaultLayout is the built-in screen: a header row, the queue filling
// the middle, and a one-line status bar showing playback position, the
// current song, and the option flags.
func DefaultLayout() Widget {
	return Rows(
		child(Fixed(1), defaultHeader()),
		child(Min(0), defaultQueue()),
		child(Fixed(1), defaultStatusLine()),
	)
}

func child(c Constraint, w Widget) ConstrainedWidget {
	return ConstrainedWidget{Constraint: c, Widget: w}
}

func defaultHeader() Widget {
	head := func(weight int, color uint8, title string) ConstrainedWidget {
		return child(Ratio(weight), Textbox(Styled([]Style{Fg(Indexed(color)), Bold()}, Text(title))))
	}
	return Columns(
		head(12, 122, "Title"),
		head(10, 158, "Artist"),
		head(10, 194, "Album"),
		head(1, 230, "Time"),
	)
}

func defaultQueue() Widget {
	col := func(weight int, color uint8, item Texts) Column {
		return Column{
			Constraint:    Ratio(weight),
			Item:          IfElse(QueueCurrent(), Styled([]Style{Italic()}, item), item),
			Style:         []Style{Fg(Indexed(color))},
			SelectedStyle: []Style{Fg(Indexed(0)), Bg(Indexed(color)), Bold()},
		}
	}
	return Queue(
		col(12, 75, QueueTitle()),
		col(10, 111, QueueArtist()),
		col(10, 147, QueueAlbum()),
		col(1, 183, QueueDuration()),
	)
}

func defaultStatusLine() Widget {
	searching := Parts(
		Styled([]Style{Fg(Indexed(113))}, Text("Searching: ")),
		Styled([]Style{Fg(Indexed(185))}, Query()),
		Styled([]Style{Fg(Indexed(185))}, Text("⎸")),
	)
	clock := Styled([]Style{Fg(Indexed(113))}, Parts(
		IfElse(Playing(), Text("[playing: "), Text("[paused:  ")),
		CurrentElapsed(),
		Text("/"),
		CurrentDuration(),
		Text("] "),
	))
	song := IfElse(TitleExist(),
		Parts(
			Styled([]Style{Fg(Indexed(149))}, CurrentTitle()),
			If(ArtistExist(), Parts(
				Styled([]Style{Fg(Indexed(216))}, Text(" ◆ ")),
				Styled([]Style{Fg(Indexed(185))}, CurrentArtist()),
				If(AlbumExist(), Parts(
					Styled([]Style{Fg(Indexed(216))}, Text(" ◆ ")),
					Styled([]Style{Fg(Indexed(221))}, CurrentAlbum()),
				)),
			)),
		),
		Styled([]Style{Fg(Indexed(185))}, CurrentFile()),
	)
	flags := Styled([]Style{Fg(Indexed(81))}, Parts(
		Text("["),
		If(Repeat(), Text("@")),
		If(Random(), Text("#")),
		IfElse(Single(), Text("^"), If(Oneshot(), Text("!"))),
		If(Consume(), Text("*")),
		Text("]"),
	))
	return Columns(
		child(Min(0), Textbox(Styled([]Style{Bold()},
			IfElse(Searching(), searching, If(Not(Stopped()), Parts(clock, song)))))),
		child(Fixed(7), TextboxR(flags)),
	)
}
