package controller

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"motion-logger/services/motion"
	"motion-logger/services/sim"
	"motion-logger/utils"
	"motion-logger/views"
)

type recordingSink struct {
	mu      sync.Mutex
	cmds    []r3.Vector
	stopped bool
}

func (s *recordingSink) SetVelocity(_ context.Context, linear, angular r3.Vector) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cmds = append(s.cmds, r3.Vector{X: linear.X, Z: angular.Z})
	return nil
}

func (s *recordingSink) Stop(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cmds)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestControlPeriod(t *testing.T) {
	test.That(t, ControlPeriod(10), test.ShouldEqual, 100*time.Millisecond)
	test.That(t, ControlPeriod(0), test.ShouldEqual, 100*time.Millisecond)
	test.That(t, ControlPeriod(50), test.ShouldEqual, 20*time.Millisecond)
}

func TestMotionControllerSendsProfile(t *testing.T) {
	sink := &recordingSink{}
	profile, err := motion.NewProfile(motion.Circle, utils.DefaultConfig().Motion, 5*time.Millisecond)
	test.That(t, err, test.ShouldBeNil)

	mc := NewMotionController(profile, sink, nil, 5*time.Millisecond, nil)
	ctx, cancel := context.WithCancel(context.Background())
	mc.Start(ctx)
	waitFor(t, func() bool { return sink.count() >= 3 })
	cancel()
	mc.Wait()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	test.That(t, sink.stopped, test.ShouldBeTrue)
	test.That(t, sink.cmds[0], test.ShouldResemble, r3.Vector{X: 0.3, Z: 0.6})
	test.That(t, mc.Commands(), test.ShouldEqual, uint64(len(sink.cmds)))
}

func TestMotionControllerWaitsForReady(t *testing.T) {
	sink := &recordingSink{}
	profile, err := motion.NewProfile(motion.Line, utils.DefaultConfig().Motion, 5*time.Millisecond)
	test.That(t, err, test.ShouldBeNil)

	var mu sync.Mutex
	ready := false
	isReady := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return ready
	}

	mc := NewMotionController(profile, sink, isReady, 5*time.Millisecond, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mc.Start(ctx)

	time.Sleep(50 * time.Millisecond)
	test.That(t, sink.count(), test.ShouldEqual, 0)

	mu.Lock()
	ready = true
	mu.Unlock()
	waitFor(t, func() bool { return sink.count() >= 1 })

	cancel()
	mc.Wait()
}

func TestRecordingSessionEndToEnd(t *testing.T) {
	cfg := utils.DefaultConfig()
	cfg.Storage.BaseDir = t.TempDir()
	cfg.Sensors.IMU.UpdateRateHz = 200
	cfg.Sensors.Odom.UpdateRateHz = 200
	cfg.Sensors.Laser.UpdateRateHz = 100
	cfg.Sensors.Laser.NumBeams = 36

	base := sim.NewBase(nil)
	sc := NewSensorsController(cfg.Sensors, base)
	test.That(t, sc.Ready(), test.ShouldBeFalse)

	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rc, err := NewRecordingController(cfg.Storage, cfg.Sensors, "circle", now)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, filepath.Base(rc.SessionDir()), test.ShouldEqual, "session_circle_20240102_030405")

	profile, err := motion.NewProfile(motion.Circle, cfg.Motion, 10*time.Millisecond)
	test.That(t, err, test.ShouldBeNil)
	mc := NewMotionController(profile, base, sc.Ready, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	sc.Start(ctx)
	test.That(t, sc.Ready(), test.ShouldBeTrue)
	rc.Start(sc)
	mc.Start(ctx)

	waitFor(t, func() bool { return rc.RowsWritten() >= 30 && mc.Commands() >= 3 })
	cancel()
	mc.Wait()
	test.That(t, rc.Stop(), test.ShouldBeNil)
	sc.LogStats()

	paths := rc.LogPaths()
	test.That(t, len(paths), test.ShouldEqual, 3)
	test.That(t, filepath.Base(paths[views.StreamIMU]), test.ShouldEqual, "imu_content_circle.csv")

	odom, err := views.ReadLog(paths[views.StreamOdom])
	test.That(t, err, test.ShouldBeNil)
	test.That(t, odom.Headers, test.ShouldResemble, views.SchemaColumns[views.StreamOdom])
	for _, row := range odom.Rows {
		test.That(t, len(row), test.ShouldEqual, 5)
	}

	laser, err := views.ReadLog(paths[views.StreamLaser])
	test.That(t, err, test.ShouldBeNil)
	for _, row := range laser.Rows {
		test.That(t, len(row), test.ShouldEqual, 36+2)
	}

	imu, err := views.ReadLog(paths[views.StreamIMU])
	test.That(t, err, test.ShouldBeNil)
	test.That(t, imu.Headers, test.ShouldResemble, []string{"acc_x", "acc_y", "angular_z", "stamp"})

	total := len(odom.Rows) + len(laser.Rows) + len(imu.Rows)
	test.That(t, uint64(total), test.ShouldEqual, rc.RowsWritten())
}

func TestRecordingRefusesExistingSession(t *testing.T) {
	cfg := utils.DefaultConfig()
	cfg.Storage.BaseDir = t.TempDir()
	cfg.Sensors.Laser.Enabled = false
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	rc, err := NewRecordingController(cfg.Storage, cfg.Sensors, "line", now)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(rc.LogPaths()), test.ShouldEqual, 2)

	_, err = NewRecordingController(cfg.Storage, cfg.Sensors, "line", now)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "already exists")

	cfg.Storage.Overwrite = true
	_, err = NewRecordingController(cfg.Storage, cfg.Sensors, "line", now)
	test.That(t, err, test.ShouldBeNil)

	_, err = os.Stat(filepath.Join(rc.SessionDir(), "laser_content_line.csv"))
	test.That(t, os.IsNotExist(err), test.ShouldBeTrue)
}

func TestRecordingStopReportsRowsPerStream(t *testing.T) {
	prev := utils.L()
	logger, logs := utils.NewObservedLogger(utils.INFO)
	utils.ReplaceGlobal(logger)
	defer utils.ReplaceGlobal(prev)

	cfg := utils.DefaultConfig()
	cfg.Storage.BaseDir = t.TempDir()
	cfg.Sensors.Laser.Enabled = false

	rc, err := NewRecordingController(cfg.Storage, cfg.Sensors, "line", time.Now())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rc.Stop(), test.ShouldBeNil)

	test.That(t, logs.FilterMessageSnippet("0 rows → imu_content_line.csv").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessageSnippet("0 rows → odom_content_line.csv").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessageSnippet("laser_content_line.csv").Len(), test.ShouldEqual, 0)
}
