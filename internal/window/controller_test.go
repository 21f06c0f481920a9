package window

import (
	"errors"
	"testing"

	"github.com/Gaurav-Gosain/deskui/internal/dock"
	"github.com/Gaurav-Gosain/deskui/internal/frame"
	"github.com/Gaurav-Gosain/deskui/internal/geom"
	"github.com/Gaurav-Gosain/deskui/internal/stacking"
)

type fakeSurface struct {
	captured   map[int]bool
	failSet    bool
	failRelease bool
	released   int
}

func newFakeSurface() *fakeSurface { return &fakeSurface{captured: map[int]bool{}} }

func (f *fakeSurface) SetPointerCapture(id int) error {
	if f.failSet {
		return errors.New("surface detached")
	}
	f.captured[id] = true
	return nil
}

func (f *fakeSurface) ReleasePointerCapture(id int) error {
	f.released++
	delete(f.captured, id)
	if f.failRelease {
		return errors.New("surface detached")
	}
	return nil
}

type recorder struct {
	moveStart   []geom.Point
	moving      []geom.Point
	moveEnd     []geom.Point
	resizeStart []Geometry
	resizing    []Geometry
	resizeEnd   []Geometry
	active      int
	preview     []string
	commit      []DockCommit
	leave       int
}

func (r *recorder) events() Events {
	return Events{
		OnMoveStart:   func(p geom.Point) { r.moveStart = append(r.moveStart, p) },
		OnMoving:      func(p geom.Point) { r.moving = append(r.moving, p) },
		OnMoveEnd:     func(p geom.Point) { r.moveEnd = append(r.moveEnd, p) },
		OnResizeStart: func(g Geometry) { r.resizeStart = append(r.resizeStart, g) },
		OnResizing:    func(g Geometry) { r.resizing = append(r.resizing, g) },
		OnResizeEnd:   func(g Geometry) { r.resizeEnd = append(r.resizeEnd, g) },
		OnActive:      func() { r.active++ },
		OnDockPreview: func(id string) { r.preview = append(r.preview, id) },
		OnDockCommit:  func(d DockCommit) { r.commit = append(r.commit, d) },
		OnDockLeave:   func() { r.leave++ },
	}
}

type harness struct {
	ctrl  *Controller
	loop  *frame.Loop
	stack *stacking.Registry
	rec   *recorder
	surf  *fakeSurface
}

func newHarness(t *testing.T, edit func(*Config)) *harness {
	t.Helper()
	h := &harness{loop: frame.NewLoop(), stack: stacking.New(), rec: &recorder{}, surf: newFakeSurface()}
	cfg := DefaultConfig()
	cfg.ID = "win"
	cfg.InitialPosition = geom.Point{X: 100, Y: 100}
	cfg.InitialSize = geom.Size{Width: 300, Height: 200}
	cfg.GrabEdge = 30
	cfg.Viewport = func() geom.Size { return geom.Size{Width: 800, Height: 600} }
	cfg.Scheduler = h.loop
	cfg.Stack = h.stack
	cfg.Events = h.rec.events()
	if edit != nil {
		edit(&cfg)
	}
	h.ctrl = New(cfg)
	h.ctrl.Mount()
	return h
}

func (h *harness) ev(x, y float64) PointerEvent {
	return PointerEvent{PointerID: 1, Point: geom.Point{X: x, Y: y}, Target: h.surf}
}

func TestMoveScenario(t *testing.T) {
	h := newHarness(t, nil)

	if !h.ctrl.TitlePointerDown(h.ev(120, 120)) {
		t.Fatal("TitlePointerDown() = false, want gesture")
	}
	if !h.surf.captured[1] {
		t.Error("pointer not captured")
	}
	h.ctrl.PointerMove(h.ev(140, 150))
	h.loop.Flush()

	want := geom.Point{X: 120, Y: 130}
	if len(h.rec.moving) != 1 || h.rec.moving[0] != want {
		t.Fatalf("OnMoving = %v, want [%v]", h.rec.moving, want)
	}

	h.ctrl.PointerUp(h.ev(140, 150))
	if len(h.rec.moveEnd) != 1 || h.rec.moveEnd[0] != want {
		t.Errorf("OnMoveEnd = %v, want [%v]", h.rec.moveEnd, want)
	}
	if h.ctrl.Position() != want {
		t.Errorf("Position() = %v, want %v", h.ctrl.Position(), want)
	}
	if h.surf.captured[1] || h.surf.released != 1 {
		t.Errorf("capture not released: %+v", h.surf)
	}
	if h.ctrl.Interacting() {
		t.Error("Interacting() = true after pointer up")
	}
}

func TestMoveClampedToViewport(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.TitlePointerDown(h.ev(120, 120))
	h.ctrl.PointerMove(h.ev(5000, -5000))
	h.loop.Flush()
	h.ctrl.PointerUp(h.ev(5000, -5000))

	want := geom.Point{X: 770, Y: -170}
	if got := h.ctrl.Position(); got != want {
		t.Errorf("Position() = %v, want %v", got, want)
	}
}

func TestResizeScenario(t *testing.T) {
	h := newHarness(t, func(c *Config) { c.MinWidth = 200 })

	if !h.ctrl.HandlePointerDown(geom.DirSE, h.ev(300, 200)) {
		t.Fatal("HandlePointerDown() = false")
	}
	h.ctrl.PointerMove(h.ev(350, 240))
	h.loop.Flush()

	want := geom.Size{Width: 350, Height: 240}
	if len(h.rec.resizing) != 1 || h.rec.resizing[0].Size != want {
		t.Fatalf("OnResizing = %+v, want size %v", h.rec.resizing, want)
	}
	if h.ctrl.Size() != want {
		t.Errorf("follow mode Size() = %v, want live %v", h.ctrl.Size(), want)
	}
	h.ctrl.PointerUp(h.ev(350, 240))
	if len(h.rec.resizeEnd) != 1 || h.rec.resizeEnd[0].Size != want {
		t.Errorf("OnResizeEnd = %+v, want size %v", h.rec.resizeEnd, want)
	}
}

func TestStaticResizePreviewsThenCommits(t *testing.T) {
	h := newHarness(t, func(c *Config) { c.Mode = Static })

	h.ctrl.HandlePointerDown(geom.DirSE, h.ev(300, 200))
	h.ctrl.PointerMove(h.ev(360, 250))
	h.loop.Flush()

	want := geom.Size{Width: 360, Height: 250}
	if len(h.rec.resizing) != 1 || h.rec.resizing[0].Size != want {
		t.Fatalf("OnResizing = %+v, want size %v", h.rec.resizing, want)
	}
	if h.ctrl.Size() != (geom.Size{Width: 300, Height: 200}) {
		t.Errorf("static mode changed committed size to %v", h.ctrl.Size())
	}
	if p, ok := h.ctrl.Preview(); !ok || p.Size() != want {
		t.Errorf("Preview() = %v, %v, want %v", p, ok, want)
	}

	h.ctrl.PointerUp(h.ev(360, 250))
	if len(h.rec.resizeEnd) != 1 || h.rec.resizeEnd[0].Size != want {
		t.Errorf("OnResizeEnd = %+v, want size %v", h.rec.resizeEnd, want)
	}
	if h.ctrl.Size() != want {
		t.Errorf("Size() after release = %v, want %v", h.ctrl.Size(), want)
	}
	if _, ok := h.ctrl.Preview(); ok {
		t.Error("Preview() still visible after release")
	}
}

func TestStaticMoveCommitsPreviewOnRelease(t *testing.T) {
	h := newHarness(t, func(c *Config) { c.Mode = Static })

	h.ctrl.TitlePointerDown(h.ev(120, 120))
	h.ctrl.PointerMove(h.ev(150, 160))
	h.loop.Flush()
	if h.ctrl.Position() != (geom.Point{X: 100, Y: 100}) {
		t.Errorf("Position() during static move = %v, want unchanged", h.ctrl.Position())
	}
	h.ctrl.PointerUp(h.ev(150, 160))
	if want := (geom.Point{X: 130, Y: 140}); h.ctrl.Position() != want {
		t.Errorf("Position() = %v, want %v", h.ctrl.Position(), want)
	}
}

func TestResizeMinimum(t *testing.T) {
	h := newHarness(t, func(c *Config) {
		c.MinWidth = 200
		c.MinHeight = 120
	})
	h.ctrl.HandlePointerDown(geom.DirNW, h.ev(100, 100))
	h.ctrl.PointerMove(h.ev(900, 900))
	h.loop.Flush()
	h.ctrl.PointerUp(h.ev(900, 900))

	want := geom.Rect{X: 200, Y: 180, Width: 200, Height: 120}
	if got := h.ctrl.Rect(); got != want {
		t.Errorf("Rect() = %+v, want %+v", got, want)
	}
}

func TestMovesCoalescePerFrame(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.TitlePointerDown(h.ev(120, 120))
	for i := range 10 {
		h.ctrl.PointerMove(h.ev(120+float64(i), 120+float64(i)))
	}
	if h.loop.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", h.loop.Pending())
	}
	h.loop.Flush()

	want := geom.Point{X: 109, Y: 109}
	if len(h.rec.moving) != 1 || h.rec.moving[0] != want {
		t.Errorf("OnMoving = %v, want [%v]", h.rec.moving, want)
	}
}

func TestPointerUpAppliesPendingFrame(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.TitlePointerDown(h.ev(120, 120))
	h.ctrl.PointerMove(h.ev(130, 125))
	h.ctrl.PointerUp(h.ev(130, 125))

	if h.loop.Pending() != 0 {
		t.Errorf("Pending() = %d after pointer up, want 0", h.loop.Pending())
	}
	if want := (geom.Point{X: 110, Y: 105}); h.ctrl.Position() != want {
		t.Errorf("Position() = %v, want %v", h.ctrl.Position(), want)
	}
}

func TestRejectedPointerDowns(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
		ev   func(h *harness) PointerEvent
	}{
		{"secondary button", nil, func(h *harness) PointerEvent {
			e := h.ev(120, 120)
			e.Button = ButtonSecondary
			return e
		}},
		{"inside controls", nil, func(h *harness) PointerEvent {
			e := h.ev(120, 120)
			e.InControls = true
			return e
		}},
		{"not movable", func(c *Config) { c.Movable = false }, func(h *harness) PointerEvent { return h.ev(120, 120) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.edit)
			if h.ctrl.TitlePointerDown(tt.ev(h)) {
				t.Error("TitlePointerDown() started a gesture")
			}
			if len(h.rec.moveStart) != 0 {
				t.Errorf("OnMoveStart fired %d times", len(h.rec.moveStart))
			}
		})
	}
}

func TestOtherPointersIgnored(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.TitlePointerDown(h.ev(120, 120))

	other := h.ev(400, 400)
	other.PointerID = 2
	h.ctrl.PointerMove(other)
	h.ctrl.PointerUp(other)

	if h.loop.Pending() != 0 || !h.ctrl.Interacting() {
		t.Error("a foreign pointer affected the gesture")
	}
	if h.ctrl.TitlePointerDown(h.ev(120, 120)) {
		t.Error("second gesture started while one is active")
	}
}

func TestPointerCancelCleansUp(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.HandlePointerDown(geom.DirE, h.ev(400, 150))
	h.ctrl.PointerMove(h.ev(420, 150))
	h.ctrl.PointerCancel(h.ev(420, 150))

	if h.ctrl.Interacting() || h.surf.released != 1 {
		t.Errorf("cancel did not clean up: interacting=%v released=%d", h.ctrl.Interacting(), h.surf.released)
	}
	if len(h.rec.resizeEnd) != 1 {
		t.Errorf("OnResizeEnd fired %d times, want 1", len(h.rec.resizeEnd))
	}
}

func TestCaptureFailuresDoNotBreakGesture(t *testing.T) {
	h := newHarness(t, nil)
	h.surf.failSet = true
	if !h.ctrl.TitlePointerDown(h.ev(120, 120)) {
		t.Fatal("gesture did not start after capture failure")
	}
	h.ctrl.PointerUp(h.ev(120, 120))
	if h.surf.released != 0 {
		t.Errorf("released %d captures that were never taken", h.surf.released)
	}

	h.surf.failSet = false
	h.surf.failRelease = true
	h.ctrl.TitlePointerDown(h.ev(120, 120))
	h.ctrl.PointerUp(h.ev(120, 120))
	if h.ctrl.Interacting() {
		t.Error("gesture stuck after release failure")
	}
}

func TestUnmountMidGesture(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.TitlePointerDown(h.ev(120, 120))
	h.ctrl.PointerMove(h.ev(200, 200))
	h.ctrl.Unmount()

	if h.loop.Flush() != 0 {
		t.Error("frame callback survived unmount")
	}
	if len(h.rec.moving) != 0 || len(h.rec.moveEnd) != 0 {
		t.Errorf("callbacks fired after unmount: moving=%v end=%v", h.rec.moving, h.rec.moveEnd)
	}
	if h.surf.released != 1 {
		t.Errorf("released = %d, want 1", h.surf.released)
	}
	if _, ok := h.stack.Order(stacking.Base, "win"); ok {
		t.Error("window still registered in stacking after unmount")
	}
}

func dockingHarness(t *testing.T, mode dock.Mode) *harness {
	return newHarness(t, func(c *Config) {
		c.Docking = Docking{
			Enabled: true,
			Zones:   []dock.Zone{{ID: "right", ColumnStart: 3, ColumnEnd: 4, RowStart: 1, RowEnd: 4}},
			Policy:  dock.Policy{ThresholdPx: 10, Mode: mode},
		}
	})
}

func TestDockReleaseSnapsIntoZone(t *testing.T) {
	h := dockingHarness(t, dock.ModeRelease)
	h.ctrl.TitlePointerDown(h.ev(120, 120))

	h.ctrl.PointerMove(h.ev(700, 300))
	h.loop.Flush()
	h.ctrl.PointerMove(h.ev(710, 310))
	h.loop.Flush()

	if len(h.rec.preview) != 1 || h.rec.preview[0] != "right" {
		t.Fatalf("OnDockPreview = %v, want [right] once", h.rec.preview)
	}
	if m, ok := h.ctrl.DockPreview(); !ok || m.ZoneID != "right" {
		t.Errorf("DockPreview() = %v, %v", m, ok)
	}

	h.ctrl.PointerUp(h.ev(710, 310))
	wantRect := geom.Rect{X: 1600.0 / 3, Y: 0, Width: 800.0 / 3, Height: 600}
	if len(h.rec.commit) != 1 || h.rec.commit[0].ZoneID != "right" {
		t.Fatalf("OnDockCommit = %+v", h.rec.commit)
	}
	if h.ctrl.Rect() != wantRect {
		t.Errorf("Rect() = %+v, want %+v", h.ctrl.Rect(), wantRect)
	}
	if h.rec.leave != 1 {
		t.Errorf("OnDockLeave fired %d times, want 1", h.rec.leave)
	}
}

func TestDockFollowKeepsDropPosition(t *testing.T) {
	h := dockingHarness(t, dock.ModeFollow)
	h.ctrl.TitlePointerDown(h.ev(120, 120))
	h.ctrl.PointerMove(h.ev(700, 300))
	h.ctrl.PointerUp(h.ev(700, 300))

	if len(h.rec.commit) != 0 {
		t.Errorf("OnDockCommit fired in follow mode: %+v", h.rec.commit)
	}
	if want := (geom.Point{X: 680, Y: 280}); h.ctrl.Position() != want {
		t.Errorf("Position() = %v, want %v", h.ctrl.Position(), want)
	}
	if h.rec.leave != 1 {
		t.Errorf("OnDockLeave fired %d times, want 1", h.rec.leave)
	}
}

func TestDockLeaveOnExit(t *testing.T) {
	h := dockingHarness(t, dock.ModeRelease)
	h.ctrl.TitlePointerDown(h.ev(120, 120))
	h.ctrl.PointerMove(h.ev(700, 300))
	h.loop.Flush()
	h.ctrl.PointerMove(h.ev(300, 300))
	h.loop.Flush()
	h.ctrl.PointerUp(h.ev(300, 300))

	if h.rec.leave != 1 {
		t.Errorf("OnDockLeave fired %d times, want 1", h.rec.leave)
	}
	if len(h.rec.commit) != 0 {
		t.Errorf("OnDockCommit fired after leaving the zone")
	}
}

func TestPointerActivationFiresOnce(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.TitlePointerDown(h.ev(120, 120))
	h.ctrl.PointerUp(h.ev(120, 120))

	if h.rec.active != 1 {
		t.Errorf("OnActive fired %d times, want 1", h.rec.active)
	}
	h.ctrl.SetActive(true)
	if h.rec.active != 1 {
		t.Errorf("host confirmation fired OnActive again (%d)", h.rec.active)
	}
}

func TestPointerActivationWithHostConfirming(t *testing.T) {
	var ctrl *Controller
	active := 0
	h := newHarness(t, func(c *Config) {
		c.Events.OnActive = func() {
			active++
			ctrl.SetActive(true)
		}
	})
	ctrl = h.ctrl

	h.ctrl.TitlePointerDown(h.ev(120, 120))
	if active != 1 || !h.ctrl.Active() {
		t.Errorf("OnActive = %d, Active() = %v, want 1, true", active, h.ctrl.Active())
	}
}

func TestKeyboardActivation(t *testing.T) {
	h := newHarness(t, nil)
	h.stack.Register(stacking.Base, "other")

	if h.ctrl.KeyDown("enter", true) {
		t.Error("KeyDown inside controls activated the window")
	}
	if !h.ctrl.KeyDown("space", false) {
		t.Fatal("KeyDown(space) = false")
	}
	if h.rec.active != 1 {
		t.Errorf("OnActive fired %d times, want 1", h.rec.active)
	}
	if h.ctrl.KeyDown("enter", false) {
		t.Error("KeyDown on active window reported activation")
	}

	snap := h.stack.Snapshot(stacking.Base)
	if snap["win"] <= snap["other"] {
		t.Errorf("activated window not in front: %v", snap)
	}
}

func TestActivationBringsToFrontOncePerTransition(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.SetActive(true)
	first, _ := h.stack.Order(stacking.Base, "win")
	h.ctrl.SetActive(true)
	second, _ := h.stack.Order(stacking.Base, "win")
	if second != first {
		t.Errorf("order changed without a transition: %d -> %d", first, second)
	}
	h.ctrl.SetActive(false)
	h.ctrl.SetActive(true)
	third, _ := h.stack.Order(stacking.Base, "win")
	if third <= second {
		t.Errorf("order after re-activation = %d, want > %d", third, second)
	}
	if h.rec.active != 2 {
		t.Errorf("OnActive fired %d times, want 2", h.rec.active)
	}
}

func TestMeasureFallback(t *testing.T) {
	measured := false
	h := newHarness(t, func(c *Config) {
		c.Measure = func() (geom.Rect, bool) {
			if !measured {
				return geom.Rect{}, false
			}
			return geom.Rect{X: 10, Y: 20, Width: 320, Height: 240}, true
		}
	})

	h.ctrl.TitlePointerDown(h.ev(0, 0))
	if got := h.ctrl.Interaction().StartRect; got != h.ctrl.Rect() {
		t.Errorf("StartRect = %+v, want last known %+v", got, h.ctrl.Rect())
	}
	h.ctrl.PointerUp(h.ev(0, 0))

	measured = true
	h.ctrl.TitlePointerDown(h.ev(0, 0))
	if got := h.ctrl.Interaction().StartRect; got.Width != 320 || got.X != 10 {
		t.Errorf("StartRect = %+v, want measured rect", got)
	}
}

func TestDragWindowMode(t *testing.T) {
	h := newHarness(t, func(c *Config) { c.DragMode = DragWindow })
	if !h.ctrl.BodyPointerDown(h.ev(200, 200)) {
		t.Error("BodyPointerDown() did not start a move in window drag mode")
	}

	h2 := newHarness(t, nil)
	if h2.ctrl.BodyPointerDown(h2.ev(200, 200)) {
		t.Error("BodyPointerDown() started a move in title bar drag mode")
	}
	if !h2.ctrl.Active() {
		t.Error("BodyPointerDown() did not activate the window")
	}
}
