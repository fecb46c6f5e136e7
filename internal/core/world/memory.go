package world

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/zeusync/weather/internal/core/systems/physics"
)

var _ World = (*Memory)(nil)

// Entity is an actor stored in a Memory world.
type Entity struct {
	id       string
	kind     string
	material string
	pos      physics.Vec3
	owner    *Memory
}

func (e *Entity) ID() string             { return e.id }
func (e *Entity) Position() physics.Vec3 {
	e.owner.mu.RLock()
	defer e.owner.mu.RUnlock()
	return e.pos
}

func (e *Entity) Kind() string           { return e.kind }
func (e *Entity) Material() string       { return e.material }

func (e *Entity) Valid() bool {
	e.owner.mu.RLock()
	defer e.owner.mu.RUnlock()
	_, ok := e.owner.entities[e.id]
	return ok
}

// entityState is the mutable gameplay state the weather callbacks touch.
type entityState struct {
	burning     bool
	igniteCalls int
	frozen      bool
	health      float64
	winter      bool
}

// Memory is an in-process World used by the simulator binary and tests.
type Memory struct {
	mu       sync.RWMutex
	entities map[string]*Entity
	state    map[string]*entityState
	order    []string
	playerID string
}

// NewMemory creates an empty world.
func NewMemory() *Memory {
	return &Memory{
		entities: make(map[string]*Entity),
		state:    make(map[string]*entityState),
	}
}

// Spawn adds an actor with a generated ID.
func (m *Memory) Spawn(kind, material string, pos physics.Vec3) *Entity {
	return m.SpawnWithID(uuid.NewString(), kind, material, pos)
}

// SpawnWithID adds an actor with a caller-chosen ID, replacing any actor with that ID.
func (m *Memory) SpawnWithID(id, kind, material string, pos physics.Vec3) *Entity {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := &Entity{id: id, kind: kind, material: material, pos: pos, owner: m}
	if _, exists := m.entities[id]; !exists {
		m.order = append(m.order, id)
	}
	m.entities[id] = e
	m.state[id] = &entityState{health: 100}
	if kind == KindPlayer && m.playerID == "" {
		m.playerID = id
	}
	return e
}

// SpawnPlayer adds the player actor.
func (m *Memory) SpawnPlayer(pos physics.Vec3, health float64, winterProtection bool) *Entity {
	e := m.SpawnWithID(uuid.NewString(), KindPlayer, "", pos)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playerID = e.id
	m.state[e.id].health = health
	m.state[e.id].winter = winterProtection
	return e
}

// Destroy removes an actor; handles held elsewhere become invalid.
func (m *Memory) Destroy(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entities, id)
	delete(m.state, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if m.playerID == id {
		m.playerID = ""
	}
}

// MovePlayer teleports the player.
func (m *Memory) MovePlayer(pos physics.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entities[m.playerID]; ok {
		e.pos = pos
	}
}

// SetWinterProtection toggles the player's protective equipment.
func (m *Memory) SetWinterProtection(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.state[m.playerID]; ok {
		s.winter = on
	}
}

func (m *Memory) Player() (Actor, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entities[m.playerID]
	if !ok {
		return nil, false
	}
	return e, true
}

func (m *Memory) Actors() []Actor {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Actor, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.entities[id])
	}
	return out
}

func (m *Memory) ActorsOfType(kind string) []Actor {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Actor, 0)
	for _, id := range m.order {
		if e := m.entities[id]; e.kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func (m *Memory) Ignite(a Actor) {
	m.withState(a, func(s *entityState) {
		s.burning = true
		s.igniteCalls++
	})
}

func (m *Memory) SetFrozen(a Actor, frozen bool) {
	m.withState(a, func(s *entityState) { s.frozen = frozen })
}

func (m *Memory) ApplyDamage(a Actor, amount float64) {
	m.withState(a, func(s *entityState) {
		s.health -= amount
		if s.health < 0 {
			s.health = 0
		}
	})
}

func (m *Memory) HasWinterProtection(a Actor) bool {
	var winter bool
	m.withState(a, func(s *entityState) { winter = s.winter })
	return winter
}

// Burning reports whether the actor has been ignited.
func (m *Memory) Burning(id string) bool {
	var burning bool
	m.withID(id, func(s *entityState) { burning = s.burning })
	return burning
}

// IgniteCalls returns how many times Ignite was invoked on the actor.
func (m *Memory) IgniteCalls(id string) int {
	var n int
	m.withID(id, func(s *entityState) { n = s.igniteCalls })
	return n
}

// Frozen reports the actor's frozen flag.
func (m *Memory) Frozen(id string) bool {
	var frozen bool
	m.withID(id, func(s *entityState) { frozen = s.frozen })
	return frozen
}

// Health returns the actor's remaining health.
func (m *Memory) Health(id string) float64 {
	var hp float64
	m.withID(id, func(s *entityState) { hp = s.health })
	return hp
}

// BurningIDs lists burning actors in sorted order.
func (m *Memory) BurningIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0)
	for id, s := range m.state {
		if s.burning {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func (m *Memory) withState(a Actor, fn func(*entityState)) {
	if a == nil {
		return
	}
	m.withID(a.ID(), fn)
}

func (m *Memory) withID(id string, fn func(*entityState)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.state[id]; ok {
		fn(s)
	}
}
