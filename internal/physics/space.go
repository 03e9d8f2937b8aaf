// Package physics provides the simulated-body space managed by the
// physics bridge. Bodies are axis-aligned boxes with a velocity; sensor
// bodies report overlaps without colliding. The space integrates enabled
// bodies, clamps actors to world bounds, and pumps an overlap callback
// for every configured group pair each step.
package physics

// BodyID is an opaque handle to a simulated body. 0 is "unset".
type BodyID uint64

// Group is a coarse collision-filter category.
type Group int

const (
	GroupNone Group = iota
	GroupPlayer
	GroupEnemy
	GroupPlayerHitbox
	GroupEnemyHitbox
)

// String returns the group name.
func (g Group) String() string {
	switch g {
	case GroupPlayer:
		return "player"
	case GroupEnemy:
		return "enemy"
	case GroupPlayerHitbox:
		return "player-hitbox"
	case GroupEnemyHitbox:
		return "enemy-hitbox"
	default:
		return "none"
	}
}

// Body is a simulated rigid body. X/Y is the entity anchor; the
// collision box is Offset + Size relative to it.
type Body struct {
	id BodyID

	X, Y    float64
	VX, VY  float64
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64

	Group   Group
	Sensor  bool
	Enabled bool
}

// ID returns the body handle.
func (b *Body) ID() BodyID { return b.id }

// SetVelocity sets the body velocity in pixels/sec.
func (b *Body) SetVelocity(vx, vy float64) {
	b.VX = vx
	b.VY = vy
}

// SetPosition teleports the body.
func (b *Body) SetPosition(x, y float64) {
	b.X = x
	b.Y = y
}

// rect returns the collision box in world coordinates.
func (b *Body) rect() (x, y, w, h float64) {
	return b.X + b.OffsetX, b.Y + b.OffsetY, b.Width, b.Height
}

// OverlapFunc is invoked once per overlapping body pair per step.
type OverlapFunc func(a, b *Body)

// Space owns all simulated bodies.
type Space struct {
	nextID  BodyID
	bodies  map[BodyID]*Body
	order   []BodyID // stable iteration for deterministic overlap order
	pairs   []groupPair
	onHit   OverlapFunc
	boundsW float64
	boundsH float64
}

type groupPair struct {
	a, b Group
}

// NewSpace creates a space with the given world bounds in pixels.
func NewSpace(width, height float64) *Space {
	s := &Space{
		nextID:  1,
		bodies:  make(map[BodyID]*Body),
		boundsW: width,
		boundsH: height,
	}
	// Hitboxes only ever test against the opposing actor category.
	s.pairs = []groupPair{
		{GroupPlayerHitbox, GroupEnemy},
		{GroupEnemyHitbox, GroupPlayer},
	}
	return s
}

// SetOverlapFunc registers the overlap callback.
func (s *Space) SetOverlapFunc(fn OverlapFunc) {
	s.onHit = fn
}

// CreateBody allocates a new body and returns it.
func (s *Space) CreateBody(x, y, w, h, offX, offY float64, group Group, sensor bool) *Body {
	b := &Body{
		id:      s.nextID,
		X:       x,
		Y:       y,
		Width:   w,
		Height:  h,
		OffsetX: offX,
		OffsetY: offY,
		Group:   group,
		Sensor:  sensor,
		Enabled: true,
	}
	s.nextID++
	s.bodies[b.id] = b
	s.order = append(s.order, b.id)
	return b
}

// Body resolves a handle, or nil when the body does not exist.
func (s *Space) Body(id BodyID) *Body {
	return s.bodies[id]
}

// DestroyBody removes a body from the space.
func (s *Space) DestroyBody(id BodyID) {
	if _, ok := s.bodies[id]; !ok {
		return
	}
	delete(s.bodies, id)
	for i, bid := range s.order {
		if bid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Count returns the number of live bodies.
func (s *Space) Count() int { return len(s.bodies) }

// Step integrates all enabled bodies by dtMs milliseconds, clamps actor
// bodies to world bounds, and runs the overlap pump.
func (s *Space) Step(dtMs float64) {
	dt := dtMs / 1000.0

	for _, id := range s.order {
		b := s.bodies[id]
		if !b.Enabled {
			continue
		}
		b.X += b.VX * dt
		b.Y += b.VY * dt

		if b.Sensor {
			continue
		}
		// World-bound collision for actor bodies.
		bx, by, bw, bh := b.rect()
		if bx < 0 {
			b.X -= bx
			b.VX = 0
		} else if bx+bw > s.boundsW {
			b.X -= bx + bw - s.boundsW
			b.VX = 0
		}
		if by < 0 {
			b.Y -= by
			b.VY = 0
		} else if by+bh > s.boundsH {
			b.Y -= by + bh - s.boundsH
			b.VY = 0
		}
	}

	s.pumpOverlaps()
}

func (s *Space) pumpOverlaps() {
	if s.onHit == nil {
		return
	}
	for i := 0; i < len(s.order); i++ {
		a := s.bodies[s.order[i]]
		if !a.Enabled {
			continue
		}
		for j := i + 1; j < len(s.order); j++ {
			b := s.bodies[s.order[j]]
			if !b.Enabled {
				continue
			}
			if !s.pairEnabled(a.Group, b.Group) {
				continue
			}
			ax, ay, aw, ah := a.rect()
			bx, by, bw, bh := b.rect()
			if rectsOverlap(ax, ay, aw, ah, bx, by, bw, bh) {
				s.onHit(a, b)
			}
		}
	}
}

func (s *Space) pairEnabled(a, b Group) bool {
	for _, p := range s.pairs {
		if (p.a == a && p.b == b) || (p.a == b && p.b == a) {
			return true
		}
	}
	return false
}

func rectsOverlap(x1, y1, w1, h1, x2, y2, w2, h2 float64) bool {
	return x1 < x2+w2 && x1+w1 > x2 && y1 < y2+h2 && y1+h1 > y2
}
