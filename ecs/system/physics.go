package system

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/dustbunnies/ecs"
	"github.com/milk9111/dustbunnies/ecs/component"
	"github.com/rs/zerolog/log"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeWall
	collisionTypeZone
)

const (
	defaultPlayerRadius = 0.35
	defaultWallRadius   = 0.05
)

// PhysicsSystem runs a Chipmunk2D space over the ground plane. World X maps
// to cp X and world Z to cp Y; height is left to the transform. It moves the
// player circle, blocks it on wall segments and reports zone sensor overlaps
// as ZoneContact events.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
	players  map[*cp.Shape]bool
	pending  map[ecs.Entity]mgl64.Vec3

	overlaps map[zonePair]struct{}
	exited   []zonePair
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

type zonePair struct {
	player ecs.Entity
	zone   ecs.Entity
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:    newSpace(),
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
		players:  make(map[*cp.Shape]bool),
		pending:  make(map[ecs.Entity]mgl64.Vec3),
		overlaps: make(map[zonePair]struct{}),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Move queues a planar velocity for the next step. The vertical component is
// ignored.
func (ps *PhysicsSystem) Move(w *ecs.World, e ecs.Entity, velocity mgl64.Vec3) {
	if ps == nil {
		return
	}
	ps.pending[e] = velocity
}

// Overlapping reports whether player currently overlaps zone.
func (ps *PhysicsSystem) Overlapping(player, zone ecs.Entity) bool {
	if ps == nil {
		return false
	}
	_, ok := ps.overlaps[zonePair{player: player, zone: zone}]
	return ok
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = newSpace()
		ps.handlersReady = false
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.applyVelocities()

	dt := w.DeltaTime()
	if dt > 0 {
		ps.space.Step(dt)
	}

	ps.syncTransforms(w)
	ps.emitContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	zoneHandler := ps.space.NewCollisionHandler(collisionTypePlayer, collisionTypeZone)
	zoneHandler.UserData = ps
	zoneHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		if pair, ok := sys.pairFor(arb); ok {
			sys.overlaps[pair] = struct{}{}
		}
		return true
	}
	zoneHandler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return
		}
		pair, ok := sys.pairFor(arb)
		if !ok {
			return
		}
		if _, was := sys.overlaps[pair]; was {
			delete(sys.overlaps, pair)
			sys.exited = append(sys.exited, pair)
		}
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) pairFor(arb *cp.Arbiter) (zonePair, bool) {
	shapeA, shapeB := arb.Shapes()
	if !ps.players[shapeA] {
		shapeA, shapeB = shapeB, shapeA
	}
	player, okA := ps.shapes[shapeA]
	zone, okB := ps.shapes[shapeB]
	if !okA || !okB {
		return zonePair{}, false
	}
	return zonePair{player: player, zone: zone}, true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.removeBody(e, info)
	}

	ecs.ForEach2(w,
		component.PhysicsBodyComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, pb *component.PhysicsBody, tr *component.Transform) {
			if _, ok := ps.entities[e]; ok {
				return
			}
			info := ps.createBody(w, e, pb, tr)
			if info == nil {
				return
			}
			ps.entities[e] = info
			for _, s := range info.shapes {
				ps.shapes[s] = e
			}
		})
}

func (ps *PhysicsSystem) createBody(w *ecs.World, e ecs.Entity, pb *component.PhysicsBody, tr *component.Transform) *bodyInfo {
	switch {
	case ecs.Has(w, e, component.PlayerTagComponent.Kind()):
		return ps.createPlayer(e, pb, tr)
	case ecs.Has(w, e, component.OverlookZoneComponent.Kind()):
		zone, _ := ecs.Get(w, e, component.OverlookZoneComponent.Kind())
		return ps.createZone(pb, tr, zone)
	case ecs.Has(w, e, component.WallComponent.Kind()):
		wall, _ := ecs.Get(w, e, component.WallComponent.Kind())
		return ps.createWall(pb, wall)
	default:
		log.Warn().Str("entity", e.String()).Msg("physics body without player, zone or wall; skipped")
		return nil
	}
}

func (ps *PhysicsSystem) createPlayer(e ecs.Entity, pb *component.PhysicsBody, tr *component.Transform) *bodyInfo {
	mass := pb.Mass
	if mass <= 0 {
		mass = 1
	}
	radius := pb.Radius
	if radius <= 0 {
		radius = defaultPlayerRadius
	}

	// infinite moment keeps the circle from spinning on wall contact
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: tr.Position.X(), Y: tr.Position.Z()})

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(pb.Friction)
	shape.SetCollisionType(collisionTypePlayer)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	ps.players[shape] = true

	pb.Body = body
	pb.Shape = shape
	return &bodyInfo{body: body, shapes: []*cp.Shape{shape}}
}

func (ps *PhysicsSystem) createZone(pb *component.PhysicsBody, tr *component.Transform, zone *component.OverlookZone) *bodyInfo {
	width, depth := pb.Width, pb.Depth
	if zone != nil {
		if zone.Width > 0 {
			width = zone.Width
		}
		if zone.Depth > 0 {
			depth = zone.Depth
		}
	}
	if width <= 0 || depth <= 0 {
		return nil
	}

	cx, cz := tr.Position.X(), tr.Position.Z()
	bb := cp.BB{L: cx - width/2, B: cz - depth/2, R: cx + width/2, T: cz + depth/2}
	shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypeZone)
	ps.space.AddShape(shape)

	pb.Body = ps.space.StaticBody
	pb.Shape = shape
	pb.Static = true
	pb.Sensor = true
	return &bodyInfo{body: ps.space.StaticBody, shapes: []*cp.Shape{shape}, static: true}
}

func (ps *PhysicsSystem) createWall(pb *component.PhysicsBody, wall *component.Wall) *bodyInfo {
	if wall == nil {
		return nil
	}
	radius := wall.Radius
	if radius <= 0 {
		radius = defaultWallRadius
	}
	shape := cp.NewSegment(ps.space.StaticBody, cp.Vector{X: wall.X1, Y: wall.Z1}, cp.Vector{X: wall.X2, Y: wall.Z2}, radius)
	shape.SetFriction(pb.Friction)
	shape.SetCollisionType(collisionTypeWall)
	ps.space.AddShape(shape)

	pb.Body = ps.space.StaticBody
	pb.Shape = shape
	pb.Static = true
	return &bodyInfo{body: ps.space.StaticBody, shapes: []*cp.Shape{shape}, static: true}
}

func (ps *PhysicsSystem) removeBody(e ecs.Entity, info *bodyInfo) {
	for _, s := range info.shapes {
		ps.space.RemoveShape(s)
		delete(ps.shapes, s)
		delete(ps.players, s)
	}
	if !info.static && info.body != nil {
		ps.space.RemoveBody(info.body)
	}
	for pair := range ps.overlaps {
		if pair.player == e || pair.zone == e {
			delete(ps.overlaps, pair)
		}
	}
	delete(ps.entities, e)
	delete(ps.pending, e)
}

func (ps *PhysicsSystem) applyVelocities() {
	for e, info := range ps.entities {
		if info.static || info.body == nil {
			continue
		}
		v := ps.pending[e]
		info.body.SetVelocity(v.X(), v.Z())
	}
	clear(ps.pending)
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static || info.body == nil {
			continue
		}
		tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		tr.Position[0] = pos.X
		tr.Position[2] = pos.Y
	}
}

// emitContacts queues exits from this step first, then one stay per live
// overlap, ordered by entity so replays are deterministic.
func (ps *PhysicsSystem) emitContacts(w *ecs.World) {
	events := w.Events()
	for _, pair := range ps.exited {
		events.Push(ecs.Event{Type: ecs.EventZoneContact, Data: ecs.ZoneContact{Player: pair.player, Zone: pair.zone, Exiting: true}})
	}
	ps.exited = ps.exited[:0]

	if len(ps.overlaps) == 0 {
		return
	}
	pairs := make([]zonePair, 0, len(ps.overlaps))
	for pair := range ps.overlaps {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].player != pairs[j].player {
			return pairs[i].player < pairs[j].player
		}
		return pairs[i].zone < pairs[j].zone
	})
	for _, pair := range pairs {
		events.Push(ecs.Event{Type: ecs.EventZoneContact, Data: ecs.ZoneContact{Player: pair.player, Zone: pair.zone}})
	}
}
