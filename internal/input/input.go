// Package input defines the command tokens the simulation understands and
// maps terminal key events onto them.
package input

import (
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Command is one abstract input token.
type Command uint8

const (
	None Command = iota
	RotateLeft
	RotateRight
	Thrust
	ActivateModule1
	ActivateModule2
	ActivateModule3
	ActivateModule4
	Shoot
	Pause
	Confirm
	Cancel
)

var commandNames = [...]string{
	None:            "none",
	RotateLeft:      "rotate_left",
	RotateRight:     "rotate_right",
	Thrust:          "thrust",
	ActivateModule1: "activate_module_1",
	ActivateModule2: "activate_module_2",
	ActivateModule3: "activate_module_3",
	ActivateModule4: "activate_module_4",
	Shoot:           "shoot",
	Pause:           "pause",
	Confirm:         "confirm",
	Cancel:          "cancel",
}

func (c Command) String() string {
	if int(c) < len(commandNames) {
		return commandNames[c]
	}
	return "unknown"
}

// Continuous reports whether the command stays on while its key is held.
// Everything else fires once per key press.
func (c Command) Continuous() bool {
	return c == RotateLeft || c == RotateRight || c == Thrust
}

// ModuleIndex returns the 0-based rack slot an ActivateModule command targets.
func (c Command) ModuleIndex() (int, bool) {
	if c >= ActivateModule1 && c <= ActivateModule4 {
		return int(c - ActivateModule1), true
	}
	return 0, false
}

// Commands is the set of commands issued for one tick.
type Commands uint16

// Of builds a set from individual commands.
func Of(cmds ...Command) Commands {
	var s Commands
	for _, c := range cmds {
		s = s.With(c)
	}
	return s
}

// With returns s plus c.
func (s Commands) With(c Command) Commands {
	if c == None {
		return s
	}
	return s | 1<<c
}

// Has reports whether c is in the set.
func (s Commands) Has(c Command) bool { return c != None && s&(1<<c) != 0 }

// List returns the commands in declaration order.
func (s Commands) List() []Command {
	var out []Command
	for c := RotateLeft; c <= Cancel; c++ {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s Commands) String() string {
	parts := make([]string, 0, 4)
	for _, c := range s.List() {
		parts = append(parts, c.String())
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// FromKey maps a terminal key event onto a command.
func FromKey(ev *tcell.EventKey) Command {
	switch ev.Key() {
	case tcell.KeyLeft:
		return RotateLeft
	case tcell.KeyRight:
		return RotateRight
	case tcell.KeyUp:
		return Thrust
	case tcell.KeyEscape:
		return Pause
	case tcell.KeyEnter:
		return Confirm
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Cancel
	}

	switch ev.Rune() {
	case 'a', 'A':
		return RotateLeft
	case 'd', 'D':
		return RotateRight
	case 'w', 'W':
		return Thrust
	case '1':
		return ActivateModule1
	case '2':
		return ActivateModule2
	case '3':
		return ActivateModule3
	case '4':
		return ActivateModule4
	case ' ':
		return Shoot
	case 'p', 'P':
		return Pause
	}
	return None
}

// DefaultHold is how long a continuous command stays down after its last key
// event. Terminals report key repeats but never key releases.
const DefaultHold = 250 * time.Millisecond

// Keyboard turns a stream of key presses into per-tick command sets.
type Keyboard struct {
	Hold time.Duration

	lastSeen map[Command]time.Time
	pending  Commands
}

// NewKeyboard returns a Keyboard with the given hold window.
func NewKeyboard(hold time.Duration) *Keyboard {
	return &Keyboard{Hold: hold, lastSeen: make(map[Command]time.Time)}
}

// Press records c at time now.
func (k *Keyboard) Press(c Command, now time.Time) {
	if c == None {
		return
	}
	if c.Continuous() {
		k.lastSeen[c] = now
		return
	}
	k.pending = k.pending.With(c)
}

// HandleKey maps ev and records it. Returns the mapped command.
func (k *Keyboard) HandleKey(ev *tcell.EventKey, now time.Time) Command {
	c := FromKey(ev)
	k.Press(c, now)
	return c
}

// Poll returns the commands active at now: continuous commands still inside
// their hold window plus every one-shot pressed since the last Poll.
func (k *Keyboard) Poll(now time.Time) Commands {
	out := k.pending
	k.pending = 0
	for c, at := range k.lastSeen {
		if now.Sub(at) <= k.Hold {
			out = out.With(c)
		} else {
			delete(k.lastSeen, c)
		}
	}
	return out
}

// Release drops every held command, e.g. when the game is paused.
func (k *Keyboard) Release() {
	clear(k.lastSeen)
	k.pending = 0
}
