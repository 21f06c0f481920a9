package taskbar

import "testing"

func TestNormalizeLevel(t *testing.T) {
	tests := map[string]Level{
		"2x":  Level2x,
		"1x":  Level1x,
		"3x":  Level1x,
		"2X":  Level1x,
		"":    Level1x,
		" 2x": Level1x,
	}
	for in, want := range tests {
		if got := NormalizeLevel(in); got != want {
			t.Errorf("NormalizeLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolveSnappedLevel(t *testing.T) {
	const threshold = 40
	tests := []struct {
		name   string
		base   Level
		deltaY float64
		factor float64
		want   Level
	}{
		{"bottom drag up past threshold", Level1x, -40, -1, Level2x},
		{"bottom drag up short", Level1x, -39, -1, Level1x},
		{"bottom drag down from 1x", Level1x, 200, -1, Level1x},
		{"bottom 2x drag down past threshold", Level2x, 40, -1, Level1x},
		{"bottom 2x drag down short", Level2x, 20, -1, Level2x},
		{"bottom 2x drag up", Level2x, -200, -1, Level2x},
		{"top drag down grows", Level1x, 50, 1, Level2x},
		{"top 2x drag up shrinks", Level2x, -50, 1, Level1x},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveSnappedLevel(tt.base, tt.deltaY, tt.factor, threshold); got != tt.want {
				t.Errorf("ResolveSnappedLevel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDragScenario(t *testing.T) {
	var changes []Level
	s := New(Config{
		Mount:             MountBottom,
		DiscreteHeight:    true,
		SwitchThresholdPx: 40,
		OnLevelChange:     func(l Level) { changes = append(changes, l) },
	})
	s.SetOpen(true)

	if !s.PointerDown(1, 500) {
		t.Fatal("PointerDown() = false")
	}
	s.PointerMove(1, 470)
	if s.Level() != Level1x {
		t.Errorf("preview below threshold = %q, want 1x", s.Level())
	}
	s.PointerMove(1, 450)
	if s.Level() != Level2x {
		t.Errorf("preview past threshold = %q, want 2x", s.Level())
	}
	s.PointerUp(1, 450)
	if s.Level() != Level2x || s.Height() != DefaultHeight2x {
		t.Errorf("Level() = %q Height() = %v after release", s.Level(), s.Height())
	}

	s.PointerDown(1, 450)
	s.PointerMove(1, 480)
	if s.Level() != Level2x {
		t.Errorf("2x preview short of threshold = %q, want 2x", s.Level())
	}
	s.PointerUp(1, 495)
	if s.Level() != Level1x {
		t.Errorf("Level() = %q after dragging back down, want 1x", s.Level())
	}
	if len(changes) != 2 {
		t.Errorf("OnLevelChange calls = %v, want two", changes)
	}
}

func TestDragIgnoresOtherPointers(t *testing.T) {
	s := New(Config{DiscreteHeight: true, SwitchThresholdPx: 10})
	s.SetOpen(true)
	s.PointerDown(1, 100)
	s.PointerMove(2, 0)
	s.PointerUp(2, 0)

	if !s.Dragging() || s.Level() != Level1x {
		t.Errorf("foreign pointer changed the drag: dragging=%v level=%q", s.Dragging(), s.Level())
	}
	s.PointerCancel(1)
	if s.Dragging() {
		t.Error("Dragging() after cancel")
	}
}

func TestDragRequiresOpenAndEnabled(t *testing.T) {
	disabled := New(Config{})
	disabled.SetOpen(true)
	if disabled.PointerDown(1, 0) {
		t.Error("drag started with discrete height disabled")
	}

	closed := New(Config{DiscreteHeight: true})
	if closed.PointerDown(1, 0) {
		t.Error("drag started while closed")
	}
}

func TestToggle(t *testing.T) {
	var opens []bool
	s := New(Config{OnOpenChange: func(o bool) { opens = append(opens, o) }})

	if !s.KeyDown("enter") || !s.Open() {
		t.Fatal("Enter did not open the start menu")
	}
	if s.KeyDown("a") {
		t.Error("KeyDown(a) reported handled")
	}
	s.KeyDown("space")
	s.Toggle()
	s.SetOpen(true)

	want := []bool{true, false, true}
	if len(opens) != len(want) {
		t.Fatalf("OnOpenChange = %v, want %v", opens, want)
	}
	for i := range want {
		if opens[i] != want[i] {
			t.Errorf("OnOpenChange[%d] = %v, want %v", i, opens[i], want[i])
		}
	}
}

func TestSetLevelNormalizes(t *testing.T) {
	s := New(Config{InitialLevel: "huge"})
	if s.Level() != Level1x {
		t.Errorf("initial Level() = %q, want 1x", s.Level())
	}
	s.SetLevel("2x")
	if s.Level() != Level2x {
		t.Errorf("Level() = %q, want 2x", s.Level())
	}
	if ParseMount("TOP").DirectionFactor() != 1 || ParseMount("").DirectionFactor() != -1 {
		t.Error("unexpected direction factors")
	}
}
