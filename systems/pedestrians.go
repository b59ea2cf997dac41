package systems

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/raincity/components"
	"github.com/pthm-cable/raincity/config"
)

// PedestrianSystem walks pedestrians along the sidewalks. A pedestrian that
// passes its range limit while walking outward turns around in place.
type PedestrianSystem struct {
	cfg config.PedestrianConfig

	mapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Lane,
		components.Facing,
		components.Pedestrian,
	]
	filter *ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Lane,
		components.Facing,
		components.Pedestrian,
	]

	entities        []ecs.Entity
	nextID          uint32
	umbrellaVisible bool
}

// NewPedestrianSystem creates a pedestrian system on the given world.
func NewPedestrianSystem(w *ecs.World, cfg config.PedestrianConfig) (*PedestrianSystem, error) {
	if cfg.Count <= 0 {
		return nil, fmt.Errorf("pedestrian count must be positive, got %d: %w", cfg.Count, config.ErrInvalid)
	}
	if cfg.RangeLimit <= 0 {
		return nil, fmt.Errorf("pedestrian range limit must be positive: %w", config.ErrInvalid)
	}
	if cfg.SpeedMin > cfg.SpeedMax {
		return nil, fmt.Errorf("pedestrian speed range [%g, %g] is inverted: %w", cfg.SpeedMin, cfg.SpeedMax, config.ErrInvalid)
	}

	return &PedestrianSystem{
		cfg: cfg,
		mapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Lane,
			components.Facing,
			components.Pedestrian,
		](w),
		filter: ecs.NewFilter5[
			components.Position,
			components.Velocity,
			components.Lane,
			components.Facing,
			components.Pedestrian,
		](w),
		entities: make([]ecs.Entity, 0, cfg.Count),
	}, nil
}

// Spawn creates the configured number of pedestrians on random sidewalks.
// Umbrellas start hidden.
func (s *PedestrianSystem) Spawn(rng *rand.Rand) {
	span := float32(s.cfg.SpawnSpan)
	offset := float32(s.cfg.SidewalkOffset)
	for i := 0; i < s.cfg.Count; i++ {
		axis := components.Axis(rng.Intn(2))
		lateral := randSign(rng) * offset
		along := randRange(rng, -span, span)
		speed := randRange(rng, float32(s.cfg.SpeedMin), float32(s.cfg.SpeedMax))
		s.SpawnPedestrian(axis, lateral, along, randSign(rng)*speed)
	}
}

// SpawnPedestrian creates one pedestrian walking along axis at the given
// lateral coordinate. velocity is signed along the axis.
func (s *PedestrianSystem) SpawnPedestrian(axis components.Axis, lateral, along, velocity float32) ecs.Entity {
	pos := components.Position{}
	vel := components.Velocity{}
	if axis == components.AxisX {
		pos.X, pos.Z = along, lateral
		vel.X = velocity
	} else {
		pos.X, pos.Z = lateral, along
		vel.Z = velocity
	}

	lane := components.Lane{Axis: axis, Lateral: lateral}
	facing := components.Facing{Yaw: components.YawFromVelocity(vel.X, vel.Z)}
	ped := components.Pedestrian{
		ID:              s.nextID,
		RangeLimit:      float32(s.cfg.RangeLimit),
		UmbrellaVisible: s.umbrellaVisible,
	}
	s.nextID++

	e := s.mapper.NewEntity(&pos, &vel, &lane, &facing, &ped)
	s.entities = append(s.entities, e)
	return e
}

// Update walks every pedestrian and reflects those past their range limit.
// Returns the number of reflections this frame.
func (s *PedestrianSystem) Update(delta float64) int {
	if delta <= 0 {
		return 0
	}
	dt := float32(delta)
	reflections := 0

	query := s.filter.Query()
	for query.Next() {
		pos, vel, lane, facing, ped := query.Get()

		pos.X += vel.X * dt
		pos.Z += vel.Z * dt

		p, v := &pos.X, &vel.X
		if lane.Axis == components.AxisZ {
			p, v = &pos.Z, &vel.Z
		}

		// Only outbound walkers turn around, so an agent still past the
		// limit on its way back does not flip again.
		if abs32(*p) > ped.RangeLimit && (*p)*(*v) > 0 {
			*v = -*v
			facing.Yaw = components.YawFromVelocity(vel.X, vel.Z)
			reflections++
		}
	}

	return reflections
}

// SetUmbrellaVisibility shows or hides every pedestrian's umbrella.
func (s *PedestrianSystem) SetUmbrellaVisibility(visible bool) {
	s.umbrellaVisible = visible

	query := s.filter.Query()
	for query.Next() {
		_, _, _, _, ped := query.Get()
		ped.UmbrellaVisible = visible
	}
}

// UmbrellaVisible returns the last broadcast umbrella state.
func (s *PedestrianSystem) UmbrellaVisible() bool {
	return s.umbrellaVisible
}

// Count returns the number of pedestrians.
func (s *PedestrianSystem) Count() int {
	return len(s.entities)
}

// Entities returns pedestrian entities in spawn order.
func (s *PedestrianSystem) Entities() []ecs.Entity {
	return s.entities
}

// Velocity returns the velocity of a pedestrian entity.
func (s *PedestrianSystem) Velocity(e ecs.Entity) components.Velocity {
	_, vel, _, _, _ := s.mapper.Get(e)
	return *vel
}

// Transforms returns the current pedestrian transforms in spawn order.
func (s *PedestrianSystem) Transforms() []AgentTransform {
	return s.AppendTransforms(make([]AgentTransform, 0, len(s.entities)))
}

// AppendTransforms appends pedestrian transforms to dst.
func (s *PedestrianSystem) AppendTransforms(dst []AgentTransform) []AgentTransform {
	for _, e := range s.entities {
		pos, _, _, facing, ped := s.mapper.Get(e)
		dst = append(dst, AgentTransform{
			ID:              ped.ID,
			Kind:            components.KindPedestrian,
			Position:        *pos,
			Yaw:             facing.Yaw,
			UmbrellaVisible: ped.UmbrellaVisible,
		})
	}
	return dst
}
