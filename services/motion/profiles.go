// Package motion generates the velocity commands of the preset motions.
package motion

import (
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"

	"motion-logger/models"
	"motion-logger/utils"
)

// Kind selects a preset motion.
type Kind int

const (
	Unset Kind = iota
	Circle
	Spiral
	Line
)

var kindNames = map[Kind]string{
	Circle: "circle",
	Spiral: "spiral",
	Line:   "line",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unset"
}

// ParseKind maps a case-insensitive name to a Kind. Unknown names map to
// Circle with ok=false so callers can warn and carry on.
func ParseKind(name string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "circle":
		return Circle, true
	case "spiral":
		return Spiral, true
	case "line":
		return Line, true
	default:
		return Circle, false
	}
}

// Profile produces one twist per control tick.
type Profile interface {
	Name() string
	Next() models.Twist
}

// NewProfile builds the profile for kind. period is the control tick length.
func NewProfile(kind Kind, cfg utils.MotionConfig, period time.Duration) (Profile, error) {
	switch kind {
	case Circle:
		return &CircleProfile{Linear: cfg.Circle.Linear, Angular: cfg.Circle.Angular}, nil
	case Spiral:
		return &SpiralProfile{
			Linear:        cfg.Spiral.Linear,
			Shrink:        cfg.Spiral.Shrink,
			InitialRadius: cfg.Spiral.InitialRadius,
			Period:        period,
		}, nil
	case Line:
		return &LineProfile{
			Initial:      cfg.Line.Initial,
			Acceleration: cfg.Line.Acceleration,
			Max:          cfg.Line.Max,
			Period:       period,
		}, nil
	default:
		return nil, errors.Errorf("motion type not set: %v (want circle, spiral or line)", kind)
	}
}

// CircleProfile drives at constant speed and yaw rate.
type CircleProfile struct {
	Linear  float64
	Angular float64
}

func (c *CircleProfile) Name() string { return Circle.String() }

func (c *CircleProfile) Next() models.Twist {
	return models.PlanarTwist(c.Linear, c.Angular)
}

// Radii at or below minRadius stop the spiral.
const minRadius = 1e-9

// SpiralProfile keeps forward speed constant while the turning radius
// shrinks linearly with time. It stops once the radius reaches zero.
type SpiralProfile struct {
	Linear        float64
	Shrink        float64 // m/s
	InitialRadius float64
	Period        time.Duration

	elapsed float64
}

func (s *SpiralProfile) Name() string { return Spiral.String() }

func (s *SpiralProfile) Next() models.Twist {
	r := s.InitialRadius - s.Shrink*s.elapsed
	s.elapsed += s.Period.Seconds()
	if r <= minRadius {
		return models.Twist{}
	}
	return models.PlanarTwist(s.Linear, s.Linear/r)
}

// LineProfile drives straight, ramping speed from Initial by Acceleration
// up to Max. With zero acceleration it holds Initial.
type LineProfile struct {
	Initial      float64
	Acceleration float64
	Max          float64
	Period       time.Duration

	elapsed float64
}

func (l *LineProfile) Name() string { return Line.String() }

func (l *LineProfile) Next() models.Twist {
	v := l.Initial + l.Acceleration*l.elapsed
	if l.Max > 0 {
		v = math.Min(v, l.Max)
	}
	l.elapsed += l.Period.Seconds()
	return models.PlanarTwist(v, 0)
}
