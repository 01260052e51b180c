package system

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/dustbunnies/ecs"
	"github.com/milk9111/dustbunnies/ecs/component"
	"golang.org/x/image/colornames"
)

const (
	defaultPixelsPerUnit = 48
	lookRayLength        = 1.5
)

// RenderSystem draws a top-down debug view of the ground plane centred on the
// player, with the camera rig's state printed in the corner. World +X is
// screen right and world +Z is screen up.
type RenderSystem struct {
	PixelsPerUnit float64
	physics       *PhysicsSystem
}

// NewRenderSystem takes the physics system, if any, so faced zones the
// player overlaps can be highlighted.
func NewRenderSystem(physics *PhysicsSystem) *RenderSystem {
	return &RenderSystem{PixelsPerUnit: defaultPixelsPerUnit, physics: physics}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil {
		return
	}
	screen.Fill(colornames.Black)

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		ebitenutil.DebugPrint(screen, "no player")
		return
	}
	centre := mgl64.Vec3{}
	if tr, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
		centre = tr.Position
	}

	b := screen.Bounds()
	view := viewport{
		cx:    float64(b.Dx()) / 2,
		cy:    float64(b.Dy()) / 2,
		scale: r.PixelsPerUnit,
		focus: centre,
	}
	if view.scale <= 0 {
		view.scale = defaultPixelsPerUnit
	}

	ecs.ForEach2(w,
		component.OverlookZoneComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, zone *component.OverlookZone, tr *component.Transform) {
			x, y := view.project(tr.Position.X()-zone.Width/2, tr.Position.Z()+zone.Depth/2)
			wdt, hgt := float32(zone.Width*view.scale), float32(zone.Depth*view.scale)
			fill := color.RGBA{R: 80, G: 160, B: 255, A: 40}
			if r.physics != nil && r.physics.Overlapping(player, e) {
				fill = color.RGBA{R: 80, G: 160, B: 255, A: 110}
			}
			vector.FillRect(screen, x, y, wdt, hgt, fill, false)
			vector.StrokeRect(screen, x, y, wdt, hgt, 1, colornames.Cornflowerblue, false)
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %.0f..%.0f", zone.Name, zone.MinAngle, zone.MaxAngle), int(x)+4, int(y)+4)
		})

	ecs.ForEach(w, component.WallComponent.Kind(), func(e ecs.Entity, wall *component.Wall) {
		x1, y1 := view.project(wall.X1, wall.Z1)
		x2, y2 := view.project(wall.X2, wall.Z2)
		width := float32(wall.Radius * 2 * view.scale)
		if width < 2 {
			width = 2
		}
		vector.StrokeLine(screen, x1, y1, x2, y2, width, colornames.Lightgrey, true)
	})

	r.drawPlayer(w, screen, player, view)
	r.drawHUD(w, screen, player)
}

func (r *RenderSystem) drawPlayer(w *ecs.World, screen *ebiten.Image, e ecs.Entity, view viewport) {
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	radius := 0.35
	if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && pb.Radius > 0 {
		radius = pb.Radius
	}
	px, py := view.project(tr.Position.X(), tr.Position.Z())
	vector.FillCircle(screen, px, py, float32(radius*view.scale), colornames.Crimson, true)

	facing := tr.TransformDirection(mgl64.Vec3{0, 0, 1})
	fx, fy := view.project(tr.Position.X()+facing.X(), tr.Position.Z()+facing.Z())
	vector.StrokeLine(screen, px, py, fx, fy, 2, colornames.Gold, true)

	// The head offset shows where the rig has pushed the camera; the look
	// ray shortens as the head pitches toward the floor.
	if head, ok := ecs.Get(w, e, component.HeadComponent.Kind()); ok {
		off := tr.TransformDirection(head.LocalPosition)
		hx, hy := view.project(tr.Position.X()+off.X(), tr.Position.Z()+off.Z())
		vector.StrokeCircle(screen, hx, hy, 4, 1, colornames.Lime, true)

		look := head.LookDirection(*tr).Mul(lookRayLength)
		lx, ly := view.project(tr.Position.X()+off.X()+look.X(), tr.Position.Z()+off.Z()+look.Z())
		vector.StrokeLine(screen, hx, hy, lx, ly, 1, colornames.Lime, true)
	}
}

func (r *RenderSystem) drawHUD(w *ecs.World, screen *ebiten.Image, e ecs.Entity) {
	mode := component.CameraFree
	if rig, ok := ecs.Get(w, e, component.CameraRigComponent.Kind()); ok {
		mode = rig.Mode
	}
	var tr component.Transform
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		tr = *t
	}
	var head component.Head
	if h, ok := ecs.Get(w, e, component.HeadComponent.Kind()); ok {
		head = *h
	}
	fov := 0.0
	if lens, ok := ecs.Get(w, e, component.LensComponent.Kind()); ok {
		fov = lens.FOV
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS %.1f  tick %d\nmode %s\npos %.2f %.2f %.2f  yaw %.1f\npitch %.1f  roll %.1f  fov %.1f",
		ebiten.ActualFPS(), w.Tick(),
		mode,
		tr.Position.X(), tr.Position.Y(), tr.Position.Z(), tr.Yaw,
		head.Pitch, head.Roll, fov,
	))
}

type viewport struct {
	cx, cy float64
	scale  float64
	focus  mgl64.Vec3
}

func (v viewport) project(x, z float64) (float32, float32) {
	return float32(v.cx + (x-v.focus.X())*v.scale), float32(v.cy - (z-v.focus.Z())*v.scale)
}
