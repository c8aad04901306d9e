package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/nathoo/questlogic/engine"
	"github.com/nathoo/questlogic/engine/save"
	"github.com/nathoo/questlogic/engine/state"
)

// Tracker is an interactive session following one player through a run:
// items received, locations checked, and what that opens up.
type Tracker struct {
	World     *engine.World
	State     *state.CollectionState
	Store     save.Store
	Session   string
	In        io.Reader
	Out       io.Writer
	EchoInput bool // echo each input line after the prompt (for script playback)

	checked []string
}

// NewTracker creates a tracker with an empty state.
func NewTracker(w *engine.World, store save.Store, session string) *Tracker {
	return &Tracker{
		World:   w,
		State:   state.New(),
		Store:   store,
		Session: session,
		In:      os.Stdin,
		Out:     os.Stdout,
	}
}

// Checked returns the checked locations in check order.
func (t *Tracker) Checked() []string {
	return append([]string(nil), t.checked...)
}

// Resume replaces the tracker's state with a stored session.
func (t *Tracker) Resume(ctx context.Context, id string) error {
	sess, err := t.Store.Get(ctx, id)
	if err != nil {
		return err
	}
	if sess.Game != t.World.Def.Game.Title {
		return fmt.Errorf("session %s is for %q, not %q", id, sess.Game, t.World.Def.Game.Title)
	}
	if sess.Player != t.World.Player {
		return fmt.Errorf("session %s is for player %d, not %d", id, sess.Player, t.World.Player)
	}
	t.State = save.Apply(sess)
	t.checked = append([]string(nil), sess.Checked...)
	t.Session = id
	return nil
}

// Run shows the banner, then loops: prompt, input, dispatch, output. It
// returns when input ends or on /quit.
func (t *Tracker) Run(ctx context.Context) error {
	t.printLine(fmt.Sprintf("%s tracker, player %d", t.World.Def.Game.Title, t.World.Player))
	t.printSystem(fmt.Sprintf("Session %s. Type /help for commands.", t.Session))

	scanner := bufio.NewScanner(t.In)
	for {
		t.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" || strings.HasPrefix(input, "#") {
			continue
		}
		if t.EchoInput {
			t.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if t.handleMeta(ctx, input) {
				return nil
			}
			continue
		}
		t.handle(input)
	}
	t.printLine("")
	return scanner.Err()
}

func (t *Tracker) handle(input string) {
	verb, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(verb) {
	case "collect", "c":
		t.cmdCollect(arg)
	case "remove", "r":
		t.cmdRemove(arg)
	case "check", "x":
		t.cmdCheck(arg)
	case "uncheck":
		t.cmdUncheck(arg)
	case "reach":
		writeReach(t.Out, buildReach(t.World, t.State))
	case "missing", "m":
		writeMissing(t.Out, buildMissing(t.World, t.State, t.checked))
	case "goal", "g":
		t.printSystem(fmt.Sprintf("Goal: %s.", goalStatus(t.World, t.State)))
	default:
		t.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for commands.", verb))
	}
}

// handleMeta dispatches meta-commands. Returns true if the tracker should exit.
func (t *Tracker) handleMeta(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		t.printSystem("Goodbye.")
		return true
	case "/save":
		t.cmdSave(ctx, arg)
	case "/load":
		t.cmdLoad(ctx, arg)
	case "/state":
		t.cmdState()
	case "/help":
		t.cmdHelp()
	default:
		t.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for commands.", cmd))
	}
	return false
}

func (t *Tracker) cmdCollect(arg string) {
	name, n, err := parseItem(arg)
	if err != nil {
		t.printSystem(capitalize(err.Error()) + ".")
		return
	}
	if _, ok := t.World.Catalog.Item(name); !ok {
		t.printSystem(fmt.Sprintf("Unknown item: %s.", name))
		return
	}
	t.State.Add(t.World.Player, name, n)
	t.printSystem(fmt.Sprintf("Collected %s (%d).", name, t.State.Count(t.World.Player, name)))
}

func (t *Tracker) cmdRemove(arg string) {
	name, n, err := parseItem(arg)
	if err != nil {
		t.printSystem(capitalize(err.Error()) + ".")
		return
	}
	if !t.State.Has(t.World.Player, name) {
		t.printSystem(fmt.Sprintf("No %s held.", name))
		return
	}
	t.State.Remove(t.World.Player, name, n)
	t.printSystem(fmt.Sprintf("Removed %s (%d left).", name, t.State.Count(t.World.Player, name)))
}

// Check marks a non-event location checked.
func (t *Tracker) Check(name string) error {
	if l, ok := t.World.Graph.Location(name); !ok || l.Event {
		return fmt.Errorf("unknown location: %s", name)
	}
	if slices.Contains(t.checked, name) {
		return fmt.Errorf("%s is already checked", name)
	}
	t.checked = append(t.checked, name)
	return nil
}

func (t *Tracker) cmdCheck(name string) {
	if err := t.Check(name); err != nil {
		t.printSystem(capitalize(err.Error()) + ".")
		return
	}
	t.printSystem(fmt.Sprintf("Checked %s.", name))
}

func (t *Tracker) cmdUncheck(name string) {
	i := slices.Index(t.checked, name)
	if i < 0 {
		t.printSystem(fmt.Sprintf("%s is not checked.", name))
		return
	}
	t.checked = slices.Delete(t.checked, i, i+1)
	t.printSystem(fmt.Sprintf("Unchecked %s.", name))
}

func (t *Tracker) cmdSave(ctx context.Context, id string) {
	if id == "" {
		id = t.Session
	}
	game := t.World.Def.Game
	sess := save.Capture(id, game.Title, game.Version, t.World.Player, t.State, t.checked)
	if err := t.Store.Put(ctx, sess); err != nil {
		t.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	t.Session = id
	t.printSystem(fmt.Sprintf("Session saved as %s.", id))
}

func (t *Tracker) cmdLoad(ctx context.Context, id string) {
	if id == "" {
		t.printSystem("Usage: /load <session-id>")
		return
	}
	if err := t.Resume(ctx, id); err != nil {
		if errors.Is(err, save.ErrSessionNotFound) {
			t.printSystem(fmt.Sprintf("No session %s.", id))
			return
		}
		t.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	t.printSystem(fmt.Sprintf("Session %s loaded: %d items, %d checked.",
		id, t.State.Total(t.World.Player), len(t.checked)))
}

func (t *Tracker) cmdState() {
	var items []string
	for _, name := range t.State.Names(t.World.Player) {
		items = append(items, fmt.Sprintf("%s x%d", name, t.State.Count(t.World.Player, name)))
	}
	t.printSystem("Items: " + joinOrNone(items))
	t.printSystem("Checked: " + joinOrNone(t.checked))
}

func (t *Tracker) cmdHelp() {
	help := []string{
		"Tracking:",
		"  collect <item>[:n]   (c) Add received items",
		"  remove <item>[:n]    (r) Remove items",
		"  check <location>     (x) Mark a location checked",
		"  uncheck <location>   Clear a check",
		"  reach                List reachable regions and locations",
		"  missing              (m) Show what is left to check",
		"  goal                 (g) Show goal progress",
		"",
		"System:",
		"  /save [id]   Save the session (default: current id)",
		"  /load <id>   Load a saved session",
		"  /state       Show held items and checks",
		"  /help        Show this help",
		"  /quit        Exit",
	}
	for _, line := range help {
		t.printLine(line)
	}
}

func joinOrNone(s []string) string {
	if len(s) == 0 {
		return "(none)"
	}
	return strings.Join(s, ", ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (t *Tracker) printLine(text string) {
	fmt.Fprintln(t.Out, text)
}

func (t *Tracker) print(text string) {
	fmt.Fprint(t.Out, text)
}

func (t *Tracker) printSystem(text string) {
	fmt.Fprintf(t.Out, "[%s]\n", text)
}
