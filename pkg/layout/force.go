package layout

import (
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
)

// Simulation parameters.
const (
	DefaultTicks   = 1000 // tick budget per layout pass
	DefaultSeed    = uint64(42)
	linkDistance   = 75.0
	linkStrength   = 1.0
	friction       = 0.9
	gravity        = 0.1
	alphaStart     = 0.1
	alphaDecay     = 0.99
	alphaThreshold = 0.005
)

// Phase is the lifecycle state of a Simulation.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseFrozen
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseFrozen:
		return "frozen"
	}
	return "unknown"
}

// ParsePhase is the inverse of Phase.String.
func ParsePhase(s string) (Phase, bool) {
	for _, p := range []Phase{PhaseIdle, PhaseRunning, PhaseFrozen} {
		if p.String() == s {
			return p, true
		}
	}
	return PhaseIdle, false
}

// Body is one simulated node. Charge is negative for repulsion.
type Body struct {
	X, Y   float64
	Placed bool // X and Y hold a starting position
	Fixed  bool
	Charge float64

	px, py float64
	weight float64
}

// TickFunc runs after every integration step with the current alpha. It may
// move bodies directly.
type TickFunc func(alpha float64, bodies []Body)

// SimulationStats summarizes a finished run.
type SimulationStats struct {
	SessionID uuid.UUID
	Budget    int     // ticks requested
	Ticks     int     // ticks that moved anything
	Alpha     float64 // alpha at the last active tick
	Phase     Phase
}

// Simulation is a single force layout session over its own copy of the
// bodies. It is not safe for concurrent use; create one per pass.
type Simulation struct {
	ID uuid.UUID

	width, height float64
	bodies        []Body
	links         []Link // Source and Target index bodies
	neighbors     [][]int
	onTick        TickFunc
	rng           *rand.Rand

	alpha float64
	phase Phase
	ticks int
}

// NewSimulation creates an idle simulation over a width x height area. The
// seed drives the starting position of bodies with no placed neighbor.
func NewSimulation(width, height float64, seed uint64) *Simulation {
	return &Simulation{
		ID:     uuid.New(),
		width:  width,
		height: height,
		rng:    rand.New(rand.NewPCG(seed, seed^0xdeadbeef)),
	}
}

// Add appends a body and returns its index.
func (s *Simulation) Add(b Body) int {
	s.bodies = append(s.bodies, b)
	return len(s.bodies) - 1
}

// Link connects two bodies with a spring. Out-of-range indices are ignored.
func (s *Simulation) Link(source, target int) {
	n := len(s.bodies)
	if source < 0 || source >= n || target < 0 || target >= n {
		return
	}
	s.links = append(s.links, Link{Source: source, Target: target})
}

// OnTick registers the per-tick constraint pass.
func (s *Simulation) OnTick(fn TickFunc) {
	s.onTick = fn
}

// Bodies returns the working copy of the bodies.
func (s *Simulation) Bodies() []Body {
	return s.bodies
}

// Phase reports the lifecycle state.
func (s *Simulation) Phase() Phase {
	return s.phase
}

// Alpha reports the current cooling parameter.
func (s *Simulation) Alpha() float64 {
	return s.alpha
}

// Start computes link weights, places unplaced bodies and heats the
// simulation to the starting alpha.
func (s *Simulation) Start() {
	n := len(s.bodies)
	s.neighbors = make([][]int, n)
	for i := range s.bodies {
		s.bodies[i].weight = 0
	}
	for _, l := range s.links {
		s.bodies[l.Source].weight++
		s.bodies[l.Target].weight++
		s.neighbors[l.Source] = append(s.neighbors[l.Source], l.Target)
		s.neighbors[l.Target] = append(s.neighbors[l.Target], l.Source)
	}

	for i := range s.bodies {
		b := &s.bodies[i]
		if !b.Placed {
			b.X = s.initial(i, func(o *Body) float64 { return o.X }, s.width)
			b.Y = s.initial(i, func(o *Body) float64 { return o.Y }, s.height)
			b.Placed = true
		}
		b.px, b.py = b.X, b.Y
	}

	s.alpha = alphaStart
	s.phase = PhaseRunning
}

// initial takes the coordinate of the first placed neighbor, else a random
// point in [0, size).
func (s *Simulation) initial(i int, coord func(*Body) float64, size float64) float64 {
	for _, j := range s.neighbors[i] {
		if o := &s.bodies[j]; o.Placed {
			return coord(o)
		}
	}
	return s.rng.Float64() * size
}

// Step advances one tick. It reports false once the simulation is frozen,
// in which case nothing moves.
func (s *Simulation) Step() bool {
	if s.phase != PhaseRunning {
		return false
	}
	s.alpha *= alphaDecay
	if s.alpha < alphaThreshold {
		s.alpha = 0
		s.phase = PhaseFrozen
		return false
	}

	s.applyLinks()
	s.applyGravity()
	s.applyCharge()
	s.integrate()
	s.ticks++

	if s.onTick != nil {
		s.onTick(s.alpha, s.bodies)
	}
	return true
}

// Run starts the simulation if needed and spends the tick budget. Ticks
// after the freeze are no-ops.
func (s *Simulation) Run(budget int) SimulationStats {
	if s.phase == PhaseIdle {
		s.Start()
	}
	last := s.alpha
	for range budget {
		if !s.Step() {
			break
		}
		last = s.alpha
	}
	return SimulationStats{
		SessionID: s.ID,
		Budget:    budget,
		Ticks:     s.ticks,
		Alpha:     last,
		Phase:     s.phase,
	}
}

// applyLinks pulls linked bodies toward the rest distance, moving the
// lighter end more.
func (s *Simulation) applyLinks() {
	for _, l := range s.links {
		src, dst := &s.bodies[l.Source], &s.bodies[l.Target]
		x, y := dst.X-src.X, dst.Y-src.Y
		d2 := x*x + y*y
		if d2 == 0 {
			continue
		}
		d := math.Sqrt(d2)
		f := s.alpha * linkStrength * (d - linkDistance) / d
		x, y = x*f, y*f

		k := 0.5
		if w := src.weight + dst.weight; w > 0 {
			k = src.weight / w
		}
		dst.X -= x * k
		dst.Y -= y * k
		src.X += x * (1 - k)
		src.Y += y * (1 - k)
	}
}

func (s *Simulation) applyGravity() {
	k := s.alpha * gravity
	cx, cy := s.width/2, s.height/2
	for i := range s.bodies {
		b := &s.bodies[i]
		b.X += (cx - b.X) * k
		b.Y += (cy - b.Y) * k
	}
}

// applyCharge adds pairwise repulsion to the velocity of every free body by
// shifting its previous position.
func (s *Simulation) applyCharge() {
	for i := range s.bodies {
		b := &s.bodies[i]
		if b.Fixed {
			continue
		}
		for j := range s.bodies {
			if i == j {
				continue
			}
			o := &s.bodies[j]
			dx, dy := o.X-b.X, o.Y-b.Y
			d2 := dx*dx + dy*dy
			if d2 == 0 || o.Charge == 0 {
				continue
			}
			k := s.alpha * o.Charge / d2
			b.px -= dx * k
			b.py -= dy * k
		}
	}
}

func (s *Simulation) integrate() {
	for i := range s.bodies {
		b := &s.bodies[i]
		if b.Fixed {
			b.X, b.Y = b.px, b.py
			continue
		}
		x, y := b.X, b.Y
		b.X -= (b.px - x) * friction
		b.Y -= (b.py - y) * friction
		b.px, b.py = x, y
	}
}

// chargeFor is the repulsion of a node of radius size.
func chargeFor(size float64) float64 {
	return -math.Pow(size*2, 2)
}
