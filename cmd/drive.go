package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"motion-logger/controller"
	"motion-logger/services/motion"
	"motion-logger/services/sim"
	"motion-logger/utils"
)

func driveAction(c *cli.Context) error {
	// ── Logger ───────────────────────────────────────────────────────
	logger := utils.InitLogger(utils.INFO, c.String(flagLog))
	defer logger.Close()

	utils.L().Info("motion-logger drive  ·  GOMAXPROCS=%d  ·  PID=%d", runtime.GOMAXPROCS(0), os.Getpid())

	// ── Motion selection ─────────────────────────────────────────────
	kind := selectMotion(c.String(flagMotion))

	// ── Load config ──────────────────────────────────────────────────
	cfg, err := utils.LoadConfig(c.String(flagConfig))
	if err != nil {
		return err
	}
	if !filepath.IsAbs(cfg.Storage.BaseDir) {
		abs, _ := filepath.Abs(cfg.Storage.BaseDir)
		cfg.Storage.BaseDir = abs
	}

	duration := c.Duration(flagDuration)
	if duration <= 0 && cfg.Simulation.DurationSeconds > 0 {
		duration = time.Duration(cfg.Simulation.DurationSeconds) * time.Second
	}

	session, err := runSession(c.Context, cfg, kind, duration)
	if err != nil {
		return err
	}

	if c.Bool(flagPlot) {
		if err := plotSession(session); err != nil {
			return err
		}
	}

	fmt.Println("\n✓ motion-logger finished. Logs at:", session.SessionDir())
	return nil
}

// selectMotion maps a --motion value to a profile kind, warning and
// falling back to circle when the name is unknown.
func selectMotion(name string) motion.Kind {
	kind, ok := motion.ParseKind(name)
	if !ok {
		utils.L().Warn("we don't have %q motion type, using %s", name, kind)
	}
	return kind
}

// runSession drives kind until ctx ends, a signal arrives or duration
// elapses, recording every enabled stream.
func runSession(ctx context.Context, cfg *utils.Config, kind motion.Kind, duration time.Duration) (*controller.RecordingController, error) {
	period := controller.ControlPeriod(cfg.Motion.ControlRateHz)
	profile, err := motion.NewProfile(kind, cfg.Motion, period)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	if duration > 0 {
		var timerCancel context.CancelFunc
		ctx, timerCancel = context.WithTimeout(ctx, duration)
		defer timerCancel()
		utils.L().Info("recording will auto-stop after %v", duration)
	}

	// ── Pipeline assembly ────────────────────────────────────────────
	//
	//  MotionController ──twist──► sim.Base ◄──state── sensor goroutines
	//                                                        │
	//                                                 buffered channels
	//                                                        │
	//                                              RecordingController
	//                                                        │
	//                                        imu / odom / laser logs

	base := sim.NewBase(nil)

	sensorCtrl := controller.NewSensorsController(cfg.Sensors, base)
	recordCtrl, err := controller.NewRecordingController(cfg.Storage, cfg.Sensors, profile.Name(), time.Now())
	if err != nil {
		return nil, errors.Wrap(err, "init recording controller")
	}
	motionCtrl := controller.NewMotionController(profile, base, sensorCtrl.Ready, period, nil)

	sensorCtrl.Start(ctx)
	recordCtrl.Start(sensorCtrl)
	motionCtrl.Start(ctx)

	utils.L().Info("pipeline running — press Ctrl+C to stop")

	// ── Stats ticker ─────────────────────────────────────────────────
	statsTicker := time.NewTicker(5 * time.Second)
	defer statsTicker.Stop()

	// ── Main event loop ──────────────────────────────────────────────
loop:
	for {
		select {
		case sig := <-sigCh:
			utils.L().Info("received signal: %v — shutting down…", sig)
			break loop
		case <-ctx.Done():
			break loop
		case <-statsTicker.C:
			utils.L().Info("── stats ─────────────────────────")
			sensorCtrl.LogStats()
			utils.L().Info("  commands sent: %d  rows written: %d", motionCtrl.Commands(), recordCtrl.RowsWritten())
		}
	}
	cancel()

	motionCtrl.Wait()
	if err := recordCtrl.Stop(); err != nil {
		return recordCtrl, errors.Wrap(err, "recording")
	}
	utils.L().Info("total rows: %d", recordCtrl.RowsWritten())
	return recordCtrl, nil
}
