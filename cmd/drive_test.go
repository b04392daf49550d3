package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.viam.com/test"
	"go.uber.org/zap/zapcore"

	"motion-logger/services/motion"
	"motion-logger/utils"
	"motion-logger/views"
)

func TestRunSessionAndPlot(t *testing.T) {
	cfg := utils.DefaultConfig()
	cfg.Storage.BaseDir = t.TempDir()
	cfg.Sensors.Laser.UpdateRateHz = 50
	cfg.Sensors.Laser.NumBeams = 90

	rc, err := runSession(context.Background(), cfg, motion.Spiral, 500*time.Millisecond)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rc.RowsWritten(), test.ShouldBeGreaterThan, 0)

	odom, err := views.ReadLog(rc.LogPaths()[views.StreamOdom])
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(odom.Rows), test.ShouldBeGreaterThan, 0)

	test.That(t, plotSession(rc), test.ShouldBeNil)
	for stream, kind := range map[views.Stream]string{
		views.StreamIMU:   "sensors",
		views.StreamOdom:  "trajectory",
		views.StreamLaser: "laser",
	} {
		_, err := os.Stat(plotOutputPath(rc.LogPaths()[stream], "", kind))
		test.That(t, err, test.ShouldBeNil)
	}
}

func TestRunSessionUnsetMotion(t *testing.T) {
	cfg := utils.DefaultConfig()
	cfg.Storage.BaseDir = t.TempDir()
	_, err := runSession(context.Background(), cfg, motion.Unset, time.Second)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "motion type not set")
}

func TestSelectMotionWarnsOnUnknownName(t *testing.T) {
	prev := utils.L()
	logger, logs := utils.NewObservedLogger(utils.DEBUG)
	utils.ReplaceGlobal(logger)
	defer utils.ReplaceGlobal(prev)

	test.That(t, selectMotion("spiral"), test.ShouldEqual, motion.Spiral)
	test.That(t, logs.Len(), test.ShouldEqual, 0)

	test.That(t, selectMotion("zigzag"), test.ShouldEqual, motion.Circle)
	warnings := logs.FilterLevelExact(zapcore.WarnLevel)
	test.That(t, warnings.Len(), test.ShouldEqual, 1)
	test.That(t, warnings.All()[0].Message, test.ShouldEqual, `we don't have "zigzag" motion type, using circle`)
}

func TestDriveUnknownMotionRecordsCircle(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "motion.yaml")
	logsDir := t.TempDir()
	test.That(t, os.WriteFile(cfgPath, []byte("storage:\n  base_dir: "+logsDir+"\n"), 0o644), test.ShouldBeNil)

	err := newApp().Run([]string{"motion-logger", "drive",
		"--motion", "zigzag", "--config", cfgPath, "--duration", "300ms"})
	test.That(t, err, test.ShouldBeNil)

	sessions, err := filepath.Glob(filepath.Join(logsDir, "*_circle_*", "odom_content_circle.csv"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(sessions), test.ShouldEqual, 1)
}
