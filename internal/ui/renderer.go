package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/deadzone/internal/gamedata"
)

// Tone picks the colour of a log line.
type Tone int

const (
	ToneNormal Tone = iota
	ToneInput
	ToneGood
	ToneWarning
	ToneError
)

// Line is one entry of the message log.
type Line struct {
	Text string
	Tone Tone
}

// Foe is an enemy shown in the encounter panel.
type Foe struct {
	Name    string
	Health  int
	Max     int
	Color   tcell.Color
	Engaged bool
}

// View is everything drawn in one frame.
type View struct {
	Title   string // Location and chapter
	Status  string // Vitals line
	Alert   bool   // Status is drawn in the warning colour
	Panel   []string
	Foes    []Foe
	Log     []Line
	Prompt  string
	Options []string
	Input   string
	Cursor  int
}

var palette = struct {
	title, status, alert, panel, prompt, option, input, good, warning, err tcell.Color
}{
	title:   gamedata.MustParseHexColor("#E0C068"),
	status:  gamedata.MustParseHexColor("#9ACD32"),
	alert:   gamedata.MustParseHexColor("#FF6347"),
	panel:   gamedata.MustParseHexColor("#B0B0B0"),
	prompt:  gamedata.MustParseHexColor("#87CEEB"),
	option:  gamedata.MustParseHexColor("#D8BFD8"),
	input:   gamedata.MustParseHexColor("#FFFFFF"),
	good:    gamedata.MustParseHexColor("#7CFC00"),
	warning: gamedata.MustParseHexColor("#FFD700"),
	err:     gamedata.MustParseHexColor("#FF4500"),
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws a frame: header, panel, log and prompt from top to bottom.
func (r *Renderer) Render(v View) {
	r.screen.Clear()
	w, h := r.screen.Size()

	y := 0
	r.screen.SetString(0, y, v.Title, style(palette.title).Bold(true))
	y++
	statusColor := palette.status
	if v.Alert {
		statusColor = palette.alert
	}
	r.screen.SetString(0, y, v.Status, style(statusColor))
	y++
	r.rule(y, w)
	y++

	for _, line := range v.Panel {
		r.screen.SetString(0, y, line, style(palette.panel))
		y++
	}
	for _, f := range v.Foes {
		x := r.screen.SetString(0, y, marker(f.Engaged), style(palette.panel))
		x = r.screen.SetString(x, y, f.Name, style(f.Color).Bold(f.Engaged))
		r.screen.SetString(x, y, fmt.Sprintf("  %d/%d HP", f.Health, f.Max), style(palette.panel))
		y++
	}
	if len(v.Panel)+len(v.Foes) > 0 {
		r.rule(y, w)
		y++
	}

	// The prompt, its options and the input line sit at the bottom.
	bottom := h - 2 - len(v.Options)
	logRows := bottom - y
	if logRows > 0 {
		lines := v.Log
		if len(lines) > logRows {
			lines = lines[len(lines)-logRows:]
		}
		for _, l := range lines {
			r.screen.SetString(0, y, l.Text, style(toneColor(l.Tone)))
			y++
		}
	}

	y = max(y, bottom)
	for i, opt := range v.Options {
		r.screen.SetString(2, y, fmt.Sprintf("%d. %s", i+1, opt), style(palette.option))
		y++
	}
	r.screen.SetString(0, y, v.Prompt, style(palette.prompt))
	y++
	x := r.screen.SetString(0, y, "> ", style(palette.prompt))
	r.screen.SetString(x, y, v.Input, style(palette.input))
	r.screen.ShowCursor(x+v.Cursor, y)

	r.screen.Show()
}

func (r *Renderer) rule(y, w int) {
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, tcell.RuneHLine, tcell.StyleDefault.Foreground(tcell.ColorDarkGray))
	}
}

func marker(engaged bool) string {
	if engaged {
		return "> "
	}
	return "  "
}

func style(c tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(c)
}

func toneColor(t Tone) tcell.Color {
	switch t {
	case ToneInput:
		return palette.prompt
	case ToneGood:
		return palette.good
	case ToneWarning:
		return palette.warning
	case ToneError:
		return palette.err
	default:
		return palette.input
	}
}
