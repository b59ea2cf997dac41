package systems

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/raincity/components"
	"github.com/pthm-cable/raincity/config"
)

// TrafficSystem moves vehicles along the two road axes with toroidal wraparound.
// Vehicles may overlap; there is no collision handling.
type TrafficSystem struct {
	cfg config.TrafficConfig

	mapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Lane,
		components.Facing,
		components.Vehicle,
	]
	filter *ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Lane,
		components.Facing,
		components.Vehicle,
	]

	// Spawn order, for stable transform output
	entities []ecs.Entity
	nextID   uint32
	limit    float32
}

// NewTrafficSystem creates a traffic system on the given world.
func NewTrafficSystem(w *ecs.World, cfg config.TrafficConfig) (*TrafficSystem, error) {
	if cfg.Count <= 0 {
		return nil, fmt.Errorf("traffic count must be positive, got %d: %w", cfg.Count, config.ErrInvalid)
	}
	if cfg.Limit <= 0 {
		return nil, fmt.Errorf("traffic limit must be positive: %w", config.ErrInvalid)
	}
	if cfg.SpeedMin > cfg.SpeedMax {
		return nil, fmt.Errorf("traffic speed range [%g, %g] is inverted: %w", cfg.SpeedMin, cfg.SpeedMax, config.ErrInvalid)
	}

	return &TrafficSystem{
		cfg: cfg,
		mapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Lane,
			components.Facing,
			components.Vehicle,
		](w),
		filter: ecs.NewFilter5[
			components.Position,
			components.Velocity,
			components.Lane,
			components.Facing,
			components.Vehicle,
		](w),
		entities: make([]ecs.Entity, 0, cfg.Count),
		limit:    float32(cfg.Limit),
	}, nil
}

// Spawn creates the configured number of vehicles with random axis, direction,
// speed and position. Lanes follow right-hand traffic.
func (s *TrafficSystem) Spawn(rng *rand.Rand) {
	span := float32(s.cfg.SpawnSpan)
	for i := 0; i < s.cfg.Count; i++ {
		axis := components.Axis(rng.Intn(2))
		heading := components.HeadingFor(axis, rng.Intn(2) == 0)
		speed := randRange(rng, float32(s.cfg.SpeedMin), float32(s.cfg.SpeedMax))
		along := randRange(rng, -span, span)
		color := components.Color{
			R: uint8(rng.Intn(256)),
			G: uint8(rng.Intn(256)),
			B: uint8(rng.Intn(256)),
		}
		s.SpawnVehicle(heading, along, speed, color)
	}
}

// SpawnVehicle creates one vehicle at longitudinal coordinate along.
// speed is a magnitude; the sign comes from heading.
func (s *TrafficSystem) SpawnVehicle(heading components.Heading, along, speed float32, color components.Color) ecs.Entity {
	axis := heading.Axis()
	lateral := heading.RightHandOffset(float32(s.cfg.LaneOffset))
	signed := heading.Sign() * speed

	pos := components.Position{Y: float32(s.cfg.Height)}
	vel := components.Velocity{}
	if axis == components.AxisX {
		pos.X, pos.Z = along, lateral
		vel.X = signed
	} else {
		pos.X, pos.Z = lateral, along
		vel.Z = signed
	}

	lane := components.Lane{Axis: axis, Lateral: lateral}
	facing := components.Facing{Yaw: heading.Yaw()}
	veh := components.Vehicle{ID: s.nextID, Heading: heading, Color: color}
	s.nextID++

	e := s.mapper.NewEntity(&pos, &vel, &lane, &facing, &veh)
	s.entities = append(s.entities, e)
	return e
}

// Update advances every vehicle along its lane axis.
// Returns the number of wraparounds this frame.
func (s *TrafficSystem) Update(delta float64) int {
	if delta <= 0 {
		return 0
	}
	limit := float64(s.limit)
	wraps := 0

	query := s.filter.Query()
	for query.Next() {
		pos, vel, lane, _, _ := query.Get()

		// Fold in float64 so huge deltas keep the exact overshoot
		var p float64
		var wrapped bool
		if lane.Axis == components.AxisX {
			p, wrapped = wrapToroidal(float64(pos.X)+float64(vel.X)*delta, limit)
			pos.X = float32(p)
		} else {
			p, wrapped = wrapToroidal(float64(pos.Z)+float64(vel.Z)*delta, limit)
			pos.Z = float32(p)
		}
		if wrapped {
			wraps++
		}
	}

	return wraps
}

// Count returns the number of vehicles.
func (s *TrafficSystem) Count() int {
	return len(s.entities)
}

// Entities returns vehicle entities in spawn order.
func (s *TrafficSystem) Entities() []ecs.Entity {
	return s.entities
}

// Transforms returns the current vehicle transforms in spawn order.
func (s *TrafficSystem) Transforms() []AgentTransform {
	return s.AppendTransforms(make([]AgentTransform, 0, len(s.entities)))
}

// AppendTransforms appends vehicle transforms to dst, so a frame loop can reuse one slice.
func (s *TrafficSystem) AppendTransforms(dst []AgentTransform) []AgentTransform {
	for _, e := range s.entities {
		pos, _, _, facing, veh := s.mapper.Get(e)
		dst = append(dst, AgentTransform{
			ID:       veh.ID,
			Kind:     components.KindVehicle,
			Position: *pos,
			Yaw:      facing.Yaw,
			Color:    veh.Color,
		})
	}
	return dst
}

// MeanSpeed returns the average absolute speed of all vehicles.
func (s *TrafficSystem) MeanSpeed() float64 {
	if len(s.entities) == 0 {
		return 0
	}
	var sum float64
	for _, e := range s.entities {
		_, vel, _, _, _ := s.mapper.Get(e)
		sum += float64(abs32(vel.X) + abs32(vel.Z))
	}
	return sum / float64(len(s.entities))
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
