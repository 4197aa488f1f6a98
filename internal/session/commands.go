package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/samdwyer/deadzone/internal/command"
	"github.com/samdwyer/deadzone/internal/explore"
	"github.com/samdwyer/deadzone/internal/ledger"
	"github.com/samdwyer/deadzone/internal/world"
)

func (s *Session) command(ctx context.Context, input string) (Report, error) {
	cmd, err := command.Parse(input, command.ModeExplore)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	var rep Report
	switch cmd.Verb {
	case command.Go:
		return s.move(ctx, cmd.Args[0])
	case command.Travel:
		return s.travel(ctx, cmd.Arg())
	case command.Craft:
		return s.craft(ctx, cmd.Arg())
	case command.Learn:
		return s.learn(cmd.Arg())
	case command.Use:
		return s.use(cmd.Arg())
	case command.Drop:
		return s.drop(cmd.Args)
	case command.Save:
		return s.saveCommand(ctx, cmd.Arg())
	case command.Load:
		return s.loadCommand(ctx, cmd.Arg())
	case command.Equip:
		if err := s.survivor.Equip(cmd.Arg()); err != nil {
			return Report{}, err
		}
		w := s.survivor.Weapon()
		rep.add(fmt.Sprintf("You wield the %s (damage %d).", w.Name, s.survivor.Damage()))
	case command.Unequip:
		s.survivor.Unequip()
		rep.add(fmt.Sprintf("You put your weapon away (damage %d).", s.survivor.Damage()))
	case command.Rest:
		healed := s.survivor.Heal(RestHeal)
		rep.add(fmt.Sprintf("You rest and recover %d HP (%d/%d).", healed, s.survivor.Health(), s.survivor.MaxHealth()))
	case command.Status:
		rep.add(s.statusLines()...)
	case command.Inventory:
		rep.add(s.inventoryLines()...)
	case command.Clues:
		rep.add(s.clueLines()...)
	case command.Skills:
		rep.add(s.skillLines()...)
	case command.Saves:
		lines, err := s.saveLines(ctx)
		if err != nil {
			return Report{}, err
		}
		rep.add(lines...)
	case command.Menu:
		s.pending = menuDecision()
		rep.add("Paused.")
	case command.Help:
		rep.add(helpLines(command.ModeExplore)...)
	case command.Quit:
		rep.Quit = true
	default:
		return Report{}, invalid("%s is not available here", cmd.Verb)
	}
	return rep, nil
}

func (s *Session) move(ctx context.Context, word string) (Report, error) {
	dir, err := explore.ParseDirection(word)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	step, err := s.explorer.MoveInDirection(ctx, dir)
	if err != nil {
		return Report{}, err
	}

	var rep Report
	rep.add(step.Messages...)
	if !s.survivor.IsAlive() {
		s.finish(EndingBad, &rep)
		return rep, nil
	}
	s.offers = step.Offers
	s.queued = step.Encounter
	s.advance(ctx, &rep)
	return rep, nil
}

func offerDecision(offer explore.LootEntry, free int) Decision {
	prompt := fmt.Sprintf("Take %s x%d? It needs %d space, %d free. (y/n)",
		offer.Item.Name, offer.Quantity, offer.Item.Space*offer.Quantity, free)
	return Decision{Kind: KindLootOffer, Prompt: prompt, Options: []string{"yes", "no"}}
}

func (s *Session) answerOffer(ctx context.Context, input string) (Report, error) {
	offer := s.offers[0]

	var rep Report
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes", "1", "take":
		entry, err := s.explorer.TakeLoot(offer.ID)
		if err != nil {
			return Report{}, err
		}
		rep.add(fmt.Sprintf("You take %s x%d.", entry.Item.Name, entry.Quantity))
	case "n", "no", "2", "leave":
		rep.add(fmt.Sprintf("You leave the %s where it is.", offer.Item.Name))
	default:
		return Report{}, invalid("answer yes or no")
	}

	s.offers = s.offers[1:]
	s.advance(ctx, &rep)
	return rep, nil
}

func (s *Session) travel(ctx context.Context, arg string) (Report, error) {
	cur := s.explorer.Current()
	if !cur.ReadyToTravel {
		return Report{}, fmt.Errorf("%w: %s is %d%% explored", explore.ErrNotReadyToTravel, cur.Location.Name, cur.Progress())
	}
	if arg == "" {
		dests := s.explorer.Destinations()
		options := make([]string, len(dests))
		for i, d := range dests {
			options[i] = d.Name
			if s.explorer.Visited(d.ID) {
				options[i] += " (visited)"
			}
		}
		s.pending = Decision{Kind: KindTravelChoice, Prompt: "Travel where? (number, name or back)", Options: options}
		return Report{}, nil
	}
	return s.travelTo(ctx, arg)
}

func (s *Session) chooseTravel(ctx context.Context, input string) (Report, error) {
	if isBack(input) {
		s.pending = s.commandDecision()
		return Report{}, nil
	}
	return s.travelTo(ctx, input)
}

func (s *Session) travelTo(ctx context.Context, key string) (Report, error) {
	dests := s.explorer.Destinations()
	dest := pickLocation(dests, key)
	if dest == nil {
		return Report{}, invalid("no route to %q", key)
	}

	from := s.explorer.Current().Location
	if err := s.explorer.Travel(ctx, dest.ID); err != nil {
		return Report{}, err
	}

	var rep Report
	if dest.Chapter.Number != from.Chapter.Number {
		rep.add(fmt.Sprintf("Chapter %d: %s", dest.Chapter.Number, dest.Chapter.Title))
	}
	rep.add(s.locationLines()...)
	s.pending = s.commandDecision()
	return rep, nil
}

// pickLocation resolves a 1-based index, an id or a name.
func pickLocation(locs []*world.Location, key string) *world.Location {
	key = strings.TrimSpace(key)
	if n, err := strconv.Atoi(key); err == nil {
		if n >= 1 && n <= len(locs) {
			return locs[n-1]
		}
		return nil
	}
	for _, l := range locs {
		if l.ID == key || strings.EqualFold(l.Name, key) {
			return l
		}
	}
	return nil
}

func (s *Session) craft(ctx context.Context, arg string) (Report, error) {
	if arg != "" {
		return s.craftRecipe(ctx, arg)
	}
	recipes := s.crafter.Recipes()
	options := make([]string, len(recipes))
	for i, r := range recipes {
		options[i] = r.Name
		if short := s.crafter.Missing(r, s.survivor.Inventory()); len(short) > 0 {
			parts := make([]string, len(short))
			for j, sf := range short {
				parts[j] = sf.String()
			}
			options[i] += " (missing " + strings.Join(parts, ", ") + ")"
		}
	}
	s.pending = Decision{Kind: KindCraftChoice, Prompt: "Craft what? (number, name or back)", Options: options}
	return Report{}, nil
}

func (s *Session) chooseCraft(ctx context.Context, input string) (Report, error) {
	if isBack(input) {
		s.pending = s.commandDecision()
		return Report{}, nil
	}
	return s.craftRecipe(ctx, input)
}

func (s *Session) craftRecipe(ctx context.Context, key string) (Report, error) {
	res, err := s.crafter.Craft(ctx, key, s.survivor)
	if err != nil {
		return Report{}, err
	}
	var rep Report
	msg := fmt.Sprintf("You craft a %s.", res.Item.Name)
	if res.Potency > 1 {
		msg = fmt.Sprintf("You craft a %s (potency %.2f).", res.Item.Name, res.Potency)
	}
	rep.add(msg)
	s.pending = s.commandDecision()
	return rep, nil
}

func (s *Session) learn(key string) (Report, error) {
	id := key
	for _, n := range s.survivor.Skills().Nodes() {
		if strings.EqualFold(n.Def.ID, key) || strings.EqualFold(n.Def.Name, key) {
			id = n.Def.ID
			break
		}
	}
	if err := s.survivor.LearnSkill(id); err != nil {
		return Report{}, err
	}
	var rep Report
	rep.add(fmt.Sprintf("Learned %s (level %d). %d skill points left.",
		id, s.survivor.Skills().Level(id), s.survivor.SkillPoints()))
	return rep, nil
}

func (s *Session) use(key string) (Report, error) {
	stack, ok := s.survivor.Inventory().Find(key)
	if !ok {
		return Report{}, fmt.Errorf("%w: %s", ledger.ErrNotCarried, key)
	}
	if def := s.survivor.ItemDef(stack.ItemID); def != nil && def.AreaDamage > 0 {
		return Report{}, invalid("%s is only any use in a fight", stack.Name)
	}
	res, err := s.survivor.UseItem(key)
	if err != nil {
		return Report{}, err
	}
	var rep Report
	rep.add(describeUse(res))
	return rep, nil
}

func describeUse(res ledger.UseResult) string {
	if res.Equipped {
		return fmt.Sprintf("You wield the %s.", res.ItemName)
	}
	var parts []string
	if res.Healed > 0 {
		parts = append(parts, fmt.Sprintf("+%d HP", res.Healed))
	}
	if res.Fed > 0 {
		parts = append(parts, fmt.Sprintf("+%d food", res.Fed))
	}
	if res.Cured > 0 {
		parts = append(parts, fmt.Sprintf("-%d infection", res.Cured))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("You use the %s. Nothing happens.", res.ItemName)
	}
	return fmt.Sprintf("You use the %s (%s).", res.ItemName, strings.Join(parts, ", "))
}

// drop reads "drop <item> [quantity]"; no quantity drops the whole stack.
func (s *Session) drop(args []string) (Report, error) {
	quantity := 0
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[len(args)-1]); err == nil {
			if n <= 0 {
				return Report{}, invalid("quantity must be positive")
			}
			quantity = n
			args = args[:len(args)-1]
		}
	}
	key := strings.Join(args, " ")
	stack, ok := s.survivor.Inventory().Find(key)
	if !ok {
		return Report{}, fmt.Errorf("%w: %s", ledger.ErrNotCarried, key)
	}
	if err := s.survivor.Drop(key, quantity); err != nil {
		return Report{}, err
	}
	var rep Report
	left := s.survivor.Inventory().Count(stack.ItemID)
	rep.add(fmt.Sprintf("You drop %s x%d.", stack.Name, stack.Quantity-left))
	return rep, nil
}

func (s *Session) saveCommand(ctx context.Context, arg string) (Report, error) {
	slot, err := slotArg(arg)
	if err != nil {
		return Report{}, err
	}
	if err := s.Save(ctx, slot); err != nil {
		return Report{}, err
	}
	var rep Report
	rep.add(fmt.Sprintf("Saved to slot %d.", slot))
	return rep, nil
}

func (s *Session) loadCommand(ctx context.Context, arg string) (Report, error) {
	slot, err := slotArg(arg)
	if err != nil {
		return Report{}, err
	}
	if err := s.Load(ctx, slot); err != nil {
		return Report{}, err
	}
	var rep Report
	rep.add(fmt.Sprintf("Loaded slot %d.", slot))
	rep.add(s.locationLines()...)
	return rep, nil
}

func slotArg(arg string) (int, error) {
	if strings.TrimSpace(arg) == "" {
		return DefaultSlot, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, invalid("slot must be a number")
	}
	return n, nil
}

func isBack(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "back", "cancel", "b", "0":
		return true
	}
	return false
}

var menuOptions = []string{"resume", "save", "load", "saves", "help", "quit"}

func menuDecision() Decision {
	return Decision{Kind: KindMenu, Prompt: "Menu (number or word, save/load take a slot):", Options: menuOptions}
}

func (s *Session) menu(ctx context.Context, input string) (Report, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return Report{}, invalid("choose a menu entry")
	}
	choice := fields[0]
	if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(menuOptions) {
		choice = menuOptions[n-1]
	}
	arg := strings.Join(fields[1:], " ")

	var rep Report
	switch choice {
	case "resume", "back":
		s.pending = s.commandDecision()
	case "save":
		return s.saveCommand(ctx, arg)
	case "load":
		return s.loadCommand(ctx, arg)
	case "saves":
		lines, err := s.saveLines(ctx)
		if err != nil {
			return Report{}, err
		}
		rep.add(lines...)
	case "help":
		rep.add(helpLines(command.ModeExplore)...)
	case "quit":
		rep.Quit = true
	default:
		return Report{}, invalid("no menu entry %q", fields[0])
	}
	return rep, nil
}
