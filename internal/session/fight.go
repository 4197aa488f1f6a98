package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/samdwyer/deadzone/internal/combat"
	"github.com/samdwyer/deadzone/internal/command"
	"github.com/samdwyer/deadzone/internal/explore"
	"github.com/samdwyer/deadzone/internal/gamedata"
	"github.com/samdwyer/deadzone/internal/ledger"
)

var combatOptions = []string{"attack", "dodge", "item", "flee"}

func combatDecision() Decision {
	return Decision{Kind: KindCombatAction, Prompt: "Attack, dodge, item or flee?", Options: combatOptions}
}

func (s *Session) startFight(ctx context.Context, req explore.Encounter, rep *Report) {
	enc, err := s.resolver.Start(ctx, req.Options)
	if err != nil {
		s.log.WithError(err).Warn("encounter could not start")
		rep.add("Something stirs in the dark, then moves on.")
		s.pending = s.commandDecision()
		return
	}
	s.fight = &fight{enc: enc, request: req}

	switch {
	case req.Options.Boss != nil:
		rep.add(fmt.Sprintf("%s attacks!", req.Options.Boss.Name))
	case enc.MaxWaves() > 1:
		rep.add(fmt.Sprintf("Infected close in: %d of them, %d waves.", len(enc.Queue())+1, enc.MaxWaves()))
	default:
		rep.add(fmt.Sprintf("Infected close in: %d of them.", len(enc.Queue())+1))
	}
	rep.add(engageLine(enc))
	s.pending = combatDecision()
}

func engageLine(enc *combat.Encounter) string {
	cur := enc.Current()
	if cur == nil {
		return ""
	}
	return fmt.Sprintf("Facing %s (%d/%d HP), %d waiting.", cur.Name(), cur.Health(), cur.MaxHealth(), len(enc.Queue()))
}

func (s *Session) combatAction(ctx context.Context, input string) (Report, error) {
	cmd, err := command.Parse(input, command.ModeCombat)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	var action combat.Action
	switch cmd.Verb {
	case command.Attack:
		action.Kind = combat.ActionAttack
	case command.Dodge:
		action.Kind = combat.ActionDodge
	case command.Flee:
		action.Kind = combat.ActionFlee
	case command.Item:
		if len(cmd.Args) > 0 {
			action = combat.Action{Kind: combat.ActionUseItem, Item: cmd.Arg()}
			break
		}
		stacks := s.usableStacks()
		if len(stacks) == 0 {
			return Report{}, invalid("you carry nothing you can use")
		}
		options := make([]string, len(stacks))
		for i, st := range stacks {
			options[i] = fmt.Sprintf("%s x%d", st.Name, st.Quantity)
		}
		s.pending = Decision{Kind: KindCombatItem, Prompt: "Use which item? (number, name or back)", Options: options}
		return Report{}, nil
	case command.Help:
		var rep Report
		rep.add(helpLines(command.ModeCombat)...)
		return rep, nil
	default:
		return Report{}, invalid("%s is not available in a fight", cmd.Verb)
	}
	return s.act(ctx, action)
}

// usableStacks lists what can be used mid-fight, in inventory order.
func (s *Session) usableStacks() []ledger.Stack {
	var out []ledger.Stack
	for _, st := range s.survivor.Inventory().Stacks() {
		def := s.survivor.ItemDef(st.ItemID)
		if def != nil && (def.Usable || def.Category == gamedata.CategoryWeapon) {
			out = append(out, st)
		}
	}
	return out
}

func (s *Session) combatItem(ctx context.Context, input string) (Report, error) {
	if isBack(input) {
		s.pending = combatDecision()
		return Report{}, nil
	}
	key := strings.TrimSpace(input)
	if n, err := strconv.Atoi(key); err == nil {
		stacks := s.usableStacks()
		if n < 1 || n > len(stacks) {
			return Report{}, invalid("no item #%d", n)
		}
		key = stacks[n-1].ItemID
	}
	return s.act(ctx, combat.Action{Kind: combat.ActionUseItem, Item: key})
}

func (s *Session) act(ctx context.Context, action combat.Action) (Report, error) {
	enc := s.fight.enc
	before := enc.Current()

	turn, err := s.resolver.Act(ctx, enc, s.survivor, action)
	if err != nil {
		return Report{}, err
	}

	var rep Report
	rep.add(turn.Messages...)
	if turn.LevelsGained > 0 {
		rep.add(fmt.Sprintf("Level up! You are level %d with %d skill points.",
			s.survivor.Level(), s.survivor.SkillPoints()))
	}
	if !enc.Over() {
		if cur := enc.Current(); cur != nil && cur != before {
			rep.add(engageLine(enc))
		}
		s.pending = combatDecision()
		return rep, nil
	}
	s.endFight(ctx, &rep)
	return rep, nil
}

// endFight books the outcome and decides whether the story is over.
func (s *Session) endFight(ctx context.Context, rep *Report) {
	f := s.fight
	s.fight = nil
	res := f.enc.Result()
	s.explorer.ResolveEncounter(f.request, res.Won)

	if f.enc.Phase() == combat.PhaseDefeat || !s.survivor.IsAlive() {
		s.finish(EndingBad, rep)
		return
	}
	switch {
	case res.Won:
		rep.add(fmt.Sprintf("Victory: %d down, %d XP.", res.Kills, res.Experience))
	case res.Fled:
		rep.add(fmt.Sprintf("You got away. %d infected still roam.", res.Remaining))
	}

	boss := f.request.Options.Boss
	if e := endingFor(boss, res, s.journal.Complete()); e != EndingNone {
		s.finish(e, rep)
		return
	}
	if boss != nil && res.Won && s.explorer.Current().ReadyToTravel {
		rep.add("The way onward is clear.")
	}
	s.advance(ctx, rep)
}

// endingFor decides whether a finished fight ends the story. Only the
// final boss can: beating it ends the game, and so does escaping it once
// every clue is in hand.
func endingFor(boss *combat.Boss, res combat.Result, allClues bool) Ending {
	if boss == nil || !boss.Final {
		return EndingNone
	}
	switch {
	case res.Won && allClues:
		return EndingTrue
	case res.Won:
		return EndingNormal
	case res.Fled && allClues:
		return EndingPerfectionist
	default:
		return EndingNone
	}
}
