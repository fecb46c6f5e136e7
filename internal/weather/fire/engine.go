package fire

import (
	"github.com/zeusync/weather/internal/core/observability/log"
	"github.com/zeusync/weather/internal/core/systems/physics"
	"github.com/zeusync/weather/internal/core/world"
)

const (
	DefaultStrikeRadius = 200.0
	DefaultSpreadRadius = 300.0
)

// Ignition records one actor set on fire during a strike.
type Ignition struct {
	ActorID  string
	Category Category
	// Source is the ID of the burning actor the fire came from; empty for
	// actors hit directly by the strike.
	Source string
}

// Result summarizes one strike or spread pass.
type Result struct {
	Ignited []Ignition
	// Examined counts distance checks performed, for observability.
	Examined int
}

// NotifyFunc receives one advisory message per ignition.
type NotifyFunc func(ig Ignition)

// Engine ignites actors around a strike and propagates fire between flammable
// neighbours. Each pass owns a fresh ignited set: no actor is ignited twice in
// one pass, so spread always terminates.
type Engine struct {
	world        world.World
	classifier   Classifier
	strikeRadius float64
	spreadRadius float64
	notify       NotifyFunc
	logger       log.Log
}

type Option func(*Engine)

func WithClassifier(c Classifier) Option { return func(e *Engine) { e.classifier = c } }

func WithRadii(strike, spread float64) Option {
	return func(e *Engine) {
		if strike > 0 {
			e.strikeRadius = strike
		}
		if spread > 0 {
			e.spreadRadius = spread
		}
	}
}

func WithNotify(fn NotifyFunc) Option { return func(e *Engine) { e.notify = fn } }

func WithLogger(l log.Log) Option { return func(e *Engine) { e.logger = l } }

// NewEngine creates an engine over w with the stock radii and TagClassifier.
func NewEngine(w world.World, opts ...Option) *Engine {
	e := &Engine{
		world:        w,
		classifier:   TagClassifier{},
		strikeRadius: DefaultStrikeRadius,
		spreadRadius: DefaultSpreadRadius,
		logger:       log.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Strike ignites every flammable actor strictly within the strike radius of
// point, then spreads from each of them. All of it counts as one event.
func (e *Engine) Strike(point physics.Vec3) Result {
	p := e.newPass()
	for _, a := range p.actors {
		if a == nil {
			continue
		}
		p.res.Examined++
		if !physics.Within(a.Position(), point, e.strikeRadius) {
			continue
		}
		p.ignite(a, "")
	}
	p.spread()
	return p.res
}

// Ignite spreads fire outward from origin, which the caller has already set
// burning. The origin is never re-ignited. A nil or destroyed origin is a no-op.
func (e *Engine) Ignite(origin world.Actor) Result {
	if !world.IsValid(origin) {
		return Result{}
	}
	p := e.newPass()
	p.visited[origin.ID()] = struct{}{}
	p.queue = append(p.queue, origin)
	p.spread()
	return p.res
}

func (e *Engine) newPass() *pass {
	return &pass{
		engine:  e,
		actors:  e.world.Actors(),
		visited: make(map[string]struct{}),
	}
}

// pass holds the working set of one ignition event.
type pass struct {
	engine  *Engine
	actors  []world.Actor
	visited map[string]struct{}
	queue   []world.Actor
	res     Result
}

// ignite marks a as burning if it is flammable and unseen, and queues it for spread.
func (p *pass) ignite(a world.Actor, source string) {
	if !world.IsValid(a) {
		return
	}
	if _, seen := p.visited[a.ID()]; seen {
		return
	}
	cat := p.engine.classifier.Classify(a)
	if cat == CategoryNone {
		return
	}
	p.visited[a.ID()] = struct{}{}
	p.engine.world.Ignite(a)

	ig := Ignition{ActorID: a.ID(), Category: cat, Source: source}
	p.res.Ignited = append(p.res.Ignited, ig)
	p.queue = append(p.queue, a)
	if p.engine.notify != nil {
		p.engine.notify(ig)
	}
	p.engine.logger.Debug("actor ignited",
		log.String("actor", ig.ActorID),
		log.String("category", cat.String()),
		log.String("source", source),
	)
}

// spread drains the queue breadth-first. Each burning actor is expanded once.
func (p *pass) spread() {
	for len(p.queue) > 0 {
		src := p.queue[0]
		p.queue = p.queue[1:]
		if !world.IsValid(src) {
			continue
		}
		from := src.Position()
		for _, a := range p.actors {
			if a == nil || a.ID() == src.ID() {
				continue
			}
			p.res.Examined++
			if physics.Within(a.Position(), from, p.engine.spreadRadius) {
				p.ignite(a, src.ID())
			}
		}
	}
}
