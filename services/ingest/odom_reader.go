package ingest

import (
	"context"
	"sync/atomic"
	"time"

	"motion-logger/models"
	"motion-logger/utils"
)

// OdomReader samples the base's pose as wheel odometry would report it.
type OdomReader struct {
	cfg      utils.OdomConfig
	src      StateSource
	Out      chan *models.OdomReading
	started  atomic.Bool
	dropped  uint64
	produced uint64
}

func NewOdomReader(cfg utils.OdomConfig, src StateSource) *OdomReader {
	buf := cfg.ChannelBuffer
	if buf <= 0 {
		buf = 256
	}
	return &OdomReader{
		cfg: cfg,
		src: src,
		Out: make(chan *models.OdomReading, buf),
	}
}

func (r *OdomReader) Start(ctx context.Context) {
	go r.run(ctx)
	r.started.Store(true)
	utils.L().Info("odom reader started    (rate=%dHz, buffer=%d)",
		r.cfg.UpdateRateHz, cap(r.Out))
}

func (r *OdomReader) run(ctx context.Context) {
	defer close(r.Out)

	ticker := time.NewTicker(tickInterval(r.cfg.UpdateRateHz, 20))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			utils.L().Info("odom reader stopped    (produced=%d, dropped=%d)",
				atomic.LoadUint64(&r.produced), atomic.LoadUint64(&r.dropped))
			return
		case <-ticker.C:
			d := r.read()
			select {
			case r.Out <- d:
				atomic.AddUint64(&r.produced, 1)
			default:
				atomic.AddUint64(&r.dropped, 1)
			}
		}
	}
}

func (r *OdomReader) read() *models.OdomReading {
	s := r.src.State()
	return &models.OdomReading{
		StampNs:     utils.TimeToNano(s.Time),
		X:           s.X,
		Y:           s.Y,
		Orientation: models.QuaternionFromYaw(s.Theta),
	}
}

// Started reports whether Start has been called.
func (r *OdomReader) Started() bool { return r.started.Load() }

func (r *OdomReader) Stats() (uint64, uint64) {
	return atomic.LoadUint64(&r.produced), atomic.LoadUint64(&r.dropped)
}
