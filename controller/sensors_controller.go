package controller

import (
	"context"

	"motion-logger/models"
	"motion-logger/services/ingest"
	"motion-logger/utils"
)

// SensorsController owns the lifecycle of every sensor reader goroutine.
// It exposes typed output channels that the recording controller consumes.
type SensorsController struct {
	imu   *ingest.IMUReader
	odom  *ingest.OdomReader
	laser *ingest.LaserReader

	IMUCh   <-chan *models.IMUReading
	OdomCh  <-chan *models.OdomReading
	LaserCh <-chan *models.LaserScan
}

// NewSensorsController creates reader instances for every enabled sensor,
// all sampling src.
func NewSensorsController(cfg utils.SensorsConfig, src ingest.StateSource) *SensorsController {
	sc := &SensorsController{}

	if cfg.IMU.Enabled {
		sc.imu = ingest.NewIMUReader(cfg.IMU, src)
		sc.IMUCh = sc.imu.Out
	}
	if cfg.Odom.Enabled {
		sc.odom = ingest.NewOdomReader(cfg.Odom, src)
		sc.OdomCh = sc.odom.Out
	}
	if cfg.Laser.Enabled {
		sc.laser = ingest.NewLaserReader(cfg.Laser, src)
		sc.LaserCh = sc.laser.Out
	}

	return sc
}

// Start launches all enabled sensor goroutines. Their channels close when
// ctx is cancelled.
func (sc *SensorsController) Start(ctx context.Context) {
	if sc.imu != nil {
		sc.imu.Start(ctx)
	}
	if sc.odom != nil {
		sc.odom.Start(ctx)
	}
	if sc.laser != nil {
		sc.laser.Start(ctx)
	}
	utils.L().Info("sensors controller: all enabled readers launched")
}

// Ready reports whether every enabled reader has been started. Motion
// commands are held back until it does.
func (sc *SensorsController) Ready() bool {
	if sc.imu != nil && !sc.imu.Started() {
		return false
	}
	if sc.odom != nil && !sc.odom.Started() {
		return false
	}
	if sc.laser != nil && !sc.laser.Started() {
		return false
	}
	return true
}

// LogStats prints current produce/drop counters for each active sensor.
func (sc *SensorsController) LogStats() {
	if sc.imu != nil {
		p, d := sc.imu.Stats()
		utils.L().Info("  imu      produced=%d  dropped=%d", p, d)
	}
	if sc.odom != nil {
		p, d := sc.odom.Stats()
		utils.L().Info("  odom     produced=%d  dropped=%d", p, d)
	}
	if sc.laser != nil {
		p, d := sc.laser.Stats()
		utils.L().Info("  laser    produced=%d  dropped=%d", p, d)
	}
}
