package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/column-clearer/internal/core"
)

// Device reports the per-frame input the window reads.
type Device interface {
	KeyJustPressed(k ebiten.Key) bool
	KeyJustReleased(k ebiten.Key) bool
	// Pointer returns the active touch or left-button cursor position in
	// logical screen pixels.
	Pointer() (x, y int, ok bool)
}

// ebitenDevice reads input through ebiten and inpututil.
type ebitenDevice struct {
	touches []ebiten.TouchID
}

func (d *ebitenDevice) KeyJustPressed(k ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(k)
}

func (d *ebitenDevice) KeyJustReleased(k ebiten.Key) bool {
	return inpututil.IsKeyJustReleased(k)
}

func (d *ebitenDevice) Pointer() (int, int, bool) {
	d.touches = ebiten.AppendTouchIDs(d.touches[:0])
	if len(d.touches) > 0 {
		x, y := ebiten.TouchPosition(d.touches[0])
		return x, y, true
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return x, y, true
	}
	return 0, 0, false
}

// KeyMap binds window keys to actions.
type KeyMap struct {
	Left    []ebiten.Key
	Right   []ebiten.Key
	Pause   []ebiten.Key
	Restart []ebiten.Key
	Quit    []ebiten.Key
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:    []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA},
		Right:   []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD},
		Pause:   []ebiten.Key{ebiten.KeyP, ebiten.KeyEscape},
		Restart: []ebiten.Key{ebiten.KeyR},
		Quit:    []ebiten.Key{ebiten.KeyQ},
	}
}

// Input translates device input into input frames. A direction bound to
// several keys stays pressed until the last of them is released.
type Input struct {
	keys KeyMap
	held [2]int // Keys down per direction: left, right
}

// NewInput creates a translator for keys.
func NewInput(keys KeyMap) *Input {
	return &Input{keys: keys}
}

var (
	pressAction   = [2]core.Action{core.ActionLeftPress, core.ActionRightPress}
	releaseAction = [2]core.Action{core.ActionLeftRelease, core.ActionRightRelease}
)

// Read appends this frame's actions from dev to frame.
func (in *Input) Read(dev Device, frame *core.InputFrame) {
	for d, keys := range [2][]ebiten.Key{in.keys.Left, in.keys.Right} {
		for _, k := range keys {
			if dev.KeyJustPressed(k) {
				if in.held[d] == 0 {
					frame.Set(pressAction[d])
				}
				in.held[d]++
			}
			if dev.KeyJustReleased(k) && in.held[d] > 0 {
				in.held[d]--
				if in.held[d] == 0 {
					frame.Set(releaseAction[d])
				}
			}
		}
	}

	if x, _, ok := dev.Pointer(); ok {
		frame.SetPointer(float64(x))
	}

	if anyJustPressed(dev, in.keys.Pause) {
		frame.Set(core.ActionPause)
	}
	if anyJustPressed(dev, in.keys.Restart) {
		frame.Set(core.ActionRestart)
	}
	if anyJustPressed(dev, in.keys.Quit) {
		frame.Set(core.ActionQuit)
	}
}

// Resume re-presses directions still held, for a freshly reset game.
func (in *Input) Resume(frame *core.InputFrame) {
	for d := range in.held {
		if in.held[d] > 0 {
			frame.Set(pressAction[d])
		}
	}
}

func anyJustPressed(dev Device, keys []ebiten.Key) bool {
	for _, k := range keys {
		if dev.KeyJustPressed(k) {
			return true
		}
	}
	return false
}
