package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/deadzone/internal/logger"
	"github.com/samdwyer/deadzone/internal/session"
	"github.com/samdwyer/deadzone/internal/telemetry"
	"github.com/samdwyer/deadzone/internal/ui"
)

// maxLog bounds the scrollback kept in memory.
const maxLog = 500

// Game holds the terminal side of a running session.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	sess     *session.Session
	editor   *ui.LineEditor
	lines    []ui.Line
	state    State
	running  bool
	log      *logrus.Entry
}

// New creates a game on the real terminal.
func New(sess *session.Session) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	return newGame(screen, sess), nil
}

func newGame(screen *ui.Screen, sess *session.Session) *Game {
	g := &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		sess:     sess,
		editor:   ui.NewLineEditor(),
		state:    stateOf(sess.Pending()),
		running:  true,
		log:      logger.For("game").WithField("session", sess.ID()),
	}
	loc := sess.Explorer().Current().Location
	g.say(ui.ToneGood, fmt.Sprintf("You wake in %s. Type help for commands.", loc.Name))
	if loc.Description != "" {
		g.say(ui.ToneNormal, loc.Description)
	}
	return g
}

// Run executes the main loop until the player quits.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("session.id", g.sess.ID()),
		attribute.Int64("session.seed", g.sess.Seed()),
	)

	g.log.WithField("seed", g.sess.Seed()).Info("game started")
	for g.running {
		g.renderer.Render(g.view())
		g.handleInput(ctx)
	}
	g.screen.Close()

	span.SetAttributes(attribute.String("session.ending", g.sess.Ending().String()))
	g.log.WithField("ending", g.sess.Ending().String()).Info("game closed")
	return nil
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	switch ev := g.screen.PollEvent().(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	case nil:
		// The screen was finalized underneath us.
		g.running = false
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false
	case tcell.KeyEnter:
		g.submit(ctx, g.editor.Take())
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		g.editor.Backspace()
	case tcell.KeyDelete:
		g.editor.Delete()
	case tcell.KeyLeft:
		g.editor.Left()
	case tcell.KeyRight:
		g.editor.Right()
	case tcell.KeyHome, tcell.KeyCtrlA:
		g.editor.Home()
	case tcell.KeyEnd, tcell.KeyCtrlE:
		g.editor.End()
	case tcell.KeyUp:
		g.editor.Prev()
	case tcell.KeyDown:
		g.editor.Next()
	case tcell.KeyRune:
		g.editor.Insert(ev.Rune())
	}
}

// submit hands one line to the session and logs what came back.
func (g *Game) submit(ctx context.Context, input string) {
	g.say(ui.ToneInput, "> "+input)
	if g.state == StateOver {
		g.running = false
		return
	}

	rep, err := g.sess.Submit(ctx, input)
	if err != nil {
		tone := ui.ToneError
		if errors.Is(err, session.ErrInvalidInput) {
			tone = ui.ToneWarning
		}
		g.say(tone, err.Error())
		return
	}
	for _, m := range rep.Messages {
		g.say(ui.ToneNormal, m)
	}
	if rep.Ending != session.EndingNone {
		g.say(ui.ToneGood, "Press Enter to leave.")
	}
	g.state = stateOf(g.sess.Pending())
	if rep.Quit {
		g.running = false
	}
}

func (g *Game) say(tone ui.Tone, text string) {
	g.lines = append(g.lines, ui.Line{Text: text, Tone: tone})
	if len(g.lines) > maxLog {
		g.lines = g.lines[len(g.lines)-maxLog:]
	}
}

// view assembles the frame from the session.
func (g *Game) view() ui.View {
	p := g.sess.Survivor()
	cur := g.sess.Explorer().Current()
	j := g.sess.Journal()
	pending := g.sess.Pending()

	v := ui.View{
		Title: fmt.Sprintf("%s | Chapter %d: %s", cur.Location.Name, cur.Location.Chapter.Number, cur.Location.Chapter.Title),
		Status: fmt.Sprintf("%s  Lv %d  HP %d/%d  Hunger %d/%d  Infection %d%%  XP %d/%d  Clues %d/%d",
			p.Name(), p.Level(), p.Health(), p.MaxHealth(), p.Hunger(), p.MaxHunger(),
			p.Infection(), p.Experience(), p.ExperienceToNext(), j.Count(), j.Total()),
		Alert:   p.HealthRatio() < 0.3 || p.Feverish(),
		Log:     g.lines,
		Prompt:  pending.Prompt,
		Options: pending.Options,
		Input:   g.editor.Text(),
		Cursor:  g.editor.Cursor(),
	}

	switch enc := g.sess.Encounter(); {
	case enc != nil:
		if enc.MaxWaves() > 1 {
			v.Panel = append(v.Panel, fmt.Sprintf("Wave %d of %d", enc.Wave(), enc.MaxWaves()))
		}
		if c := enc.Current(); c != nil {
			v.Foes = append(v.Foes, ui.Foe{Name: c.Name(), Health: c.Health(), Max: c.MaxHealth(), Color: c.Color(), Engaged: true})
		}
		for _, e := range enc.Queue() {
			v.Foes = append(v.Foes, ui.Foe{Name: e.Name(), Health: e.Health(), Max: e.MaxHealth(), Color: e.Color()})
		}
	default:
		line := fmt.Sprintf("Explored %d%%  Encounters left %d  Moves %d", cur.Progress(), cur.Quota, g.sess.Explorer().TotalMoves())
		if cur.ReadyToTravel {
			line += "  Ready to travel"
		}
		v.Panel = append(v.Panel, line)
		if cur.BossPending() {
			v.Panel = append(v.Panel, fmt.Sprintf("%s waits here.", cur.Location.Boss.Name))
		}
	}
	return v
}
