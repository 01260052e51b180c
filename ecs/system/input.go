package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/dustbunnies/ecs"
	"github.com/milk9111/dustbunnies/ecs/component"
)

// mouseAxisScale converts cursor pixels into look axis units.
const mouseAxisScale = 0.1

// LookScaler applies user look preferences to a raw look sample.
type LookScaler interface {
	ScaleLook(dx, dy float64) (float64, float64)
}

// InputSystem samples keyboard, mouse and the first gamepad into every Input
// component.
type InputSystem struct {
	scaler LookScaler

	lastX, lastY int
	hasLast      bool
}

func NewInputSystem(scaler LookScaler) *InputSystem {
	return &InputSystem{scaler: scaler}
}

// Reset forgets the last cursor position so the next frame reports no look
// delta. Hosts call it after releasing and recapturing the cursor.
func (i *InputSystem) Reset() {
	i.hasLast = false
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	const stickDeadzone = 0.2
	const stickLookScale = 2.0

	moveX, moveZ := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		moveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		moveZ += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		moveZ -= 1
	}

	lookLeft := ebiten.IsKeyPressed(ebiten.KeyQ)
	lookRight := ebiten.IsKeyPressed(ebiten.KeyE)

	cx, cy := ebiten.CursorPosition()
	lookX, lookY := 0.0, 0.0
	if i.hasLast {
		lookX = float64(cx-i.lastX) * mouseAxisScale
		// Screen Y grows downward; look input is positive looking up.
		lookY = -float64(cy-i.lastY) * mouseAxisScale
	}
	i.lastX, i.lastY, i.hasLast = cx, cy, true

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			moveX = lx
			moveZ = -ly
		}

		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			lookX += rx * stickLookScale
			lookY -= ry * stickLookScale
		}

		lookLeft = lookLeft || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontTopLeft)
		lookRight = lookRight || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontTopRight)
	}

	if i.scaler != nil {
		lookX, lookY = i.scaler.ScaleLook(lookX, lookY)
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.MoveX = moveX
		input.MoveZ = moveZ
		input.LookX = lookX
		input.LookY = lookY
		input.SetLookButtons(lookLeft, lookRight)
	})
}

// PausePressed reports whether the pause toggle went down this frame.
func PausePressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return true
	}
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight) {
			return true
		}
	}
	return false
}
