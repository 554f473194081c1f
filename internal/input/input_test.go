package input

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestFromKey(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want Command
	}{
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), RotateLeft},
		{tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), RotateRight},
		{tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModNone), Thrust},
		{tcell.NewEventKey(tcell.KeyRune, '3', tcell.ModNone), ActivateModule3},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), Shoot},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), Pause},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), Confirm},
		{tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), None},
	}
	for _, tc := range cases {
		if got := FromKey(tc.ev); got != tc.want {
			t.Errorf("FromKey(%v) = %v, want %v", tc.ev.Name(), got, tc.want)
		}
	}
}

func TestCommandsSet(t *testing.T) {
	s := Of(Thrust, ActivateModule2, None)
	if !s.Has(Thrust) || !s.Has(ActivateModule2) || s.Has(RotateLeft) || s.Has(None) {
		t.Fatalf("set = %v", s)
	}
	if got := s.List(); len(got) != 2 || got[0] != Thrust || got[1] != ActivateModule2 {
		t.Fatalf("List() = %v", got)
	}
	if i, ok := ActivateModule2.ModuleIndex(); !ok || i != 1 {
		t.Fatalf("ModuleIndex = %d,%v", i, ok)
	}
	if _, ok := Shoot.ModuleIndex(); ok {
		t.Fatal("Shoot is not a module command")
	}
}

func TestKeyboardHoldWindow(t *testing.T) {
	k := NewKeyboard(200 * time.Millisecond)
	t0 := time.Unix(0, 0)

	k.Press(Thrust, t0)
	k.Press(ActivateModule1, t0)

	first := k.Poll(t0.Add(50 * time.Millisecond))
	if !first.Has(Thrust) || !first.Has(ActivateModule1) {
		t.Fatalf("first poll = %v", first)
	}
	second := k.Poll(t0.Add(150 * time.Millisecond))
	if !second.Has(Thrust) {
		t.Fatal("thrust should still be held inside the window")
	}
	if second.Has(ActivateModule1) {
		t.Fatal("one-shot commands fire once")
	}
	if k.Poll(t0.Add(300 * time.Millisecond)).Has(Thrust) {
		t.Fatal("thrust should release after the hold window")
	}
}

func TestKeyboardRelease(t *testing.T) {
	k := NewKeyboard(time.Second)
	now := time.Unix(10, 0)
	k.Press(RotateLeft, now)
	k.Press(Shoot, now)
	k.Release()
	if got := k.Poll(now); got != 0 {
		t.Fatalf("poll after release = %v", got)
	}
}
