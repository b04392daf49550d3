package ingest

import (
	"context"
	"math/rand"
	"sync/atomic"
	"time"

	"motion-logger/models"
	"motion-logger/utils"
)

// IMUReader samples planar accelerations and yaw rate from the base.
type IMUReader struct {
	cfg      utils.IMUConfig
	src      StateSource
	Out      chan *models.IMUReading
	started  atomic.Bool
	dropped  uint64
	produced uint64
}

func NewIMUReader(cfg utils.IMUConfig, src StateSource) *IMUReader {
	buf := cfg.ChannelBuffer
	if buf <= 0 {
		buf = 512
	}
	return &IMUReader{
		cfg: cfg,
		src: src,
		Out: make(chan *models.IMUReading, buf),
	}
}

func (r *IMUReader) Start(ctx context.Context) {
	go r.run(ctx)
	r.started.Store(true)
	utils.L().Info("imu reader started     (rate=%dHz, buffer=%d)",
		r.cfg.UpdateRateHz, cap(r.Out))
}

func (r *IMUReader) run(ctx context.Context) {
	defer close(r.Out)

	ticker := time.NewTicker(tickInterval(r.cfg.UpdateRateHz, 50))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			utils.L().Info("imu reader stopped     (produced=%d, dropped=%d)",
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

func (r *IMUReader) read() *models.IMUReading {
	s := r.src.State()
	return &models.IMUReading{
		StampNs:  utils.TimeToNano(s.Time),
		AccX:     s.AccX + rand.NormFloat64()*r.cfg.AccelNoise,
		AccY:     s.AccY + rand.NormFloat64()*r.cfg.AccelNoise,
		AngularZ: s.Angular + rand.NormFloat64()*r.cfg.GyroNoise,
	}
}

// Started reports whether Start has been called.
func (r *IMUReader) Started() bool { return r.started.Load() }

func (r *IMUReader) Stats() (uint64, uint64) {
	return atomic.LoadUint64(&r.produced), atomic.LoadUint64(&r.dropped)
}
