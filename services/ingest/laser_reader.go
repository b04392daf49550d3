package ingest

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"motion-logger/models"
	"motion-logger/utils"
)

// LaserReader ray-casts a planar range scan against a square arena
// centred on the odometry origin.
type LaserReader struct {
	cfg      utils.LaserConfig
	src      StateSource
	Out      chan *models.LaserScan
	started  atomic.Bool
	dropped  uint64
	produced uint64
}

func NewLaserReader(cfg utils.LaserConfig, src StateSource) *LaserReader {
	buf := cfg.ChannelBuffer
	if buf <= 0 {
		buf = 64
	}
	if cfg.NumBeams <= 0 {
		cfg.NumBeams = 360
	}
	if cfg.RangeMax <= 0 {
		cfg.RangeMax = math.Inf(1)
	}
	return &LaserReader{
		cfg: cfg,
		src: src,
		Out: make(chan *models.LaserScan, buf),
	}
}

func (r *LaserReader) Start(ctx context.Context) {
	go r.run(ctx)
	r.started.Store(true)
	utils.L().Info("laser reader started   (rate=%dHz, beams=%d, buffer=%d)",
		r.cfg.UpdateRateHz, r.cfg.NumBeams, cap(r.Out))
}

func (r *LaserReader) run(ctx context.Context) {
	defer close(r.Out)

	ticker := time.NewTicker(tickInterval(r.cfg.UpdateRateHz, 5))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			utils.L().Info("laser reader stopped   (produced=%d, dropped=%d)",
				atomic.LoadUint64(&r.produced), atomic.LoadUint64(&r.dropped))
			return
		case <-ticker.C:
			scan := r.read()
			select {
			case r.Out <- scan:
				atomic.AddUint64(&r.produced, 1)
			default:
				atomic.AddUint64(&r.dropped, 1)
			}
		}
	}
}

func (r *LaserReader) read() *models.LaserScan {
	s := r.src.State()
	inc := 2 * math.Pi / float64(r.cfg.NumBeams)
	ranges := make([]float64, r.cfg.NumBeams)
	for i := range ranges {
		d := castRay(s.X, s.Y, s.Theta+float64(i)*inc, r.cfg.ArenaHalfWidth)
		if d > r.cfg.RangeMax {
			d = math.Inf(1)
		}
		ranges[i] = d
	}
	return &models.LaserScan{
		StampNs:        utils.TimeToNano(s.Time),
		Ranges:         ranges,
		AngleIncrement: inc,
	}
}

// castRay returns the distance from (x, y) along heading phi to the walls
// of the square [-h, h]², or +Inf if the ray never reaches one.
func castRay(x, y, phi, h float64) float64 {
	c, s := math.Cos(phi), math.Sin(phi)
	d := math.Inf(1)
	if c > 1e-12 {
		d = math.Min(d, (h-x)/c)
	} else if c < -1e-12 {
		d = math.Min(d, (-h-x)/c)
	}
	if s > 1e-12 {
		d = math.Min(d, (h-y)/s)
	} else if s < -1e-12 {
		d = math.Min(d, (-h-y)/s)
	}
	if d < 0 {
		return math.Inf(1)
	}
	return d
}

// Started reports whether Start has been called.
func (r *LaserReader) Started() bool { return r.started.Load() }

func (r *LaserReader) Stats() (uint64, uint64) {
	return atomic.LoadUint64(&r.produced), atomic.LoadUint64(&r.dropped)
}
