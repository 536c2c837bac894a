package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/soldane/ballistic/control"
)

// Input polls the keyboard and mouse once per frame and forwards the
// results to a movement state. Each logical control accepts both WASD
// and the arrow keys.
type Input struct {
	lastX, lastY int
	hasLast      bool
}

// Poll reads the held movement keys and the jump edge into move.
func (in *Input) Poll(move *control.Movement) {
	forward := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	backward := ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)

	move.Apply(control.KeyForward, forward)
	move.Apply(control.KeyBackward, backward)
	move.Apply(control.KeyLeft, left)
	move.Apply(control.KeyRight, right)
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		move.Apply(control.KeyJump, true)
	}
}

// LookDelta returns the cursor movement since the previous call. The
// first call after a reset returns zero so capturing the pointer does
// not produce a view jump.
func (in *Input) LookDelta() (dx, dy float64) {
	x, y := ebiten.CursorPosition()
	if !in.hasLast {
		in.lastX, in.lastY = x, y
		in.hasLast = true
		return 0, 0
	}
	dx = float64(x - in.lastX)
	dy = float64(y - in.lastY)
	in.lastX, in.lastY = x, y
	return dx, dy
}

// ResetLook discards the stored cursor position so the next LookDelta
// starts fresh.
func (in *Input) ResetLook() {
	in.hasLast = false
}
