package game

import "github.com/gdamore/tcell/v2"

// hostAction is a key the host handles itself instead of passing to the sim.
type hostAction uint8

const (
	hostNone hostAction = iota
	hostEndRun
	hostQuit
	hostNewRun
)

// keyToHost maps host-level keys. Everything else goes to the keyboard.
func keyToHost(ev *tcell.EventKey) hostAction {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return hostQuit
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModCtrl != 0 && (ev.Rune() == 'c' || ev.Rune() == 'C') {
			return hostQuit
		}
		switch ev.Rune() {
		case 'q', 'Q':
			return hostEndRun
		case 'r', 'R':
			return hostNewRun
		}
	}
	return hostNone
}
