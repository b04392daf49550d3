// Package sim provides a simulated differential-drive base that stands in
// for the robot middleware's velocity-command sink and pose source.
package sim

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r3"
)

// State is a snapshot of the base's kinematics in the odometry frame.
type State struct {
	Time    time.Time
	X, Y    float64 // m
	Theta   float64 // rad, in [-π, π]
	Linear  float64 // forward speed, m/s
	Angular float64 // yaw rate, rad/s
	AccX    float64 // forward acceleration, m/s²
	AccY    float64 // lateral (centripetal) acceleration, m/s²
}

// Base integrates velocity commands on the unicycle model. Only the
// forward component of the linear command and the vertical component of
// the angular command are used.
type Base struct {
	mu      sync.Mutex
	clk     clock.Clock
	state   State
	lastCmd time.Time
	// accFor is how long AccX stays set after a command: the interval the
	// velocity change was spread over.
	accFor time.Duration
}

// NewBase returns a base at rest at the origin. A nil clock uses wall time.
func NewBase(clk clock.Clock) *Base {
	if clk == nil {
		clk = clock.New()
	}
	now := clk.Now()
	return &Base{
		clk:     clk,
		state:   State{Time: now},
		lastCmd: now,
	}
}

// SetVelocity applies a new command from now on.
func (b *Base) SetVelocity(ctx context.Context, linear, angular r3.Vector) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clk.Now()
	b.advance(now)

	b.accFor = now.Sub(b.lastCmd)
	if b.accFor > 0 {
		b.state.AccX = (linear.X - b.state.Linear) / b.accFor.Seconds()
	} else {
		b.state.AccX = 0
	}
	b.lastCmd = now
	b.state.Linear = linear.X
	b.state.Angular = angular.Z
	b.state.AccY = b.state.Linear * b.state.Angular
	return nil
}

// Stop commands zero velocity.
func (b *Base) Stop(ctx context.Context) error {
	return b.SetVelocity(ctx, r3.Vector{}, r3.Vector{})
}

// State advances the simulation to now and returns the result.
func (b *Base) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance(b.clk.Now())
	return b.state
}

// advance integrates the current command exactly along its arc. Once a
// command has been held longer than the interval it was reached over,
// the speed is steady and AccX reads zero.
func (b *Base) advance(now time.Time) {
	if now.Sub(b.lastCmd) > b.accFor {
		b.state.AccX = 0
	}
	dt := now.Sub(b.state.Time).Seconds()
	if dt <= 0 {
		return
	}
	v, w, th := b.state.Linear, b.state.Angular, b.state.Theta
	if math.Abs(w) < 1e-9 {
		b.state.X += v * math.Cos(th) * dt
		b.state.Y += v * math.Sin(th) * dt
	} else {
		b.state.X += v / w * (math.Sin(th+w*dt) - math.Sin(th))
		b.state.Y -= v / w * (math.Cos(th+w*dt) - math.Cos(th))
	}
	b.state.Theta = math.Remainder(th+w*dt, 2*math.Pi)
	b.state.Time = now
}
