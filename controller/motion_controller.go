package controller

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r3"

	"motion-logger/services/motion"
	"motion-logger/utils"
)

// CommandSink accepts velocity commands. *sim.Base satisfies it; so would
// an adapter around a real base.
type CommandSink interface {
	SetVelocity(ctx context.Context, linear, angular r3.Vector) error
	Stop(ctx context.Context) error
}

// ControlPeriod converts a control rate to a tick length, defaulting to 10 Hz.
func ControlPeriod(rateHz int) time.Duration {
	if rateHz <= 0 {
		rateHz = 10
	}
	return time.Second / time.Duration(rateHz)
}

// MotionController runs the fixed-rate control loop: every tick it asks
// the profile for a twist and sends it to the sink.
type MotionController struct {
	profile motion.Profile
	sink    CommandSink
	ready   func() bool
	clk     clock.Clock
	period  time.Duration

	commands uint64
	wg       sync.WaitGroup
}

// NewMotionController wires a profile to a sink. Ticks are skipped while
// ready returns false. A nil clock uses wall time.
func NewMotionController(profile motion.Profile, sink CommandSink, ready func() bool, period time.Duration, clk clock.Clock) *MotionController {
	if clk == nil {
		clk = clock.New()
	}
	if ready == nil {
		ready = func() bool { return true }
	}
	return &MotionController{
		profile: profile,
		sink:    sink,
		ready:   ready,
		clk:     clk,
		period:  period,
	}
}

// Start launches the control loop. The base is stopped when ctx ends.
func (mc *MotionController) Start(ctx context.Context) {
	mc.wg.Add(1)
	go mc.run(ctx)
	utils.L().Info("motion controller started (profile=%s, period=%v)", mc.profile.Name(), mc.period)
}

func (mc *MotionController) run(ctx context.Context) {
	defer mc.wg.Done()

	ticker := mc.clk.Ticker(mc.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := mc.sink.Stop(context.Background()); err != nil {
				utils.L().Error("stop base: %v", err)
			}
			utils.L().Info("motion controller stopped (commands=%d)", mc.Commands())
			return
		case <-ticker.C:
			if !mc.ready() {
				continue
			}
			tw := mc.profile.Next()
			if err := mc.sink.SetVelocity(ctx, tw.Linear, tw.Angular); err != nil {
				if ctx.Err() != nil {
					continue
				}
				utils.L().Error("send velocity command: %v", err)
				continue
			}
			atomic.AddUint64(&mc.commands, 1)
		}
	}
}

// Wait blocks until the control loop has exited.
func (mc *MotionController) Wait() {
	mc.wg.Wait()
}

// Commands returns the number of commands delivered.
func (mc *MotionController) Commands() uint64 {
	return atomic.LoadUint64(&mc.commands)
}
