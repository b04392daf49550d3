package controller

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"motion-logger/models"
	"motion-logger/utils"
	"motion-logger/views"
)

// RecordingController is the final pipeline stage. It owns one log per
// enabled stream inside a fresh session directory and appends every
// reading it receives, one row per reading.
type RecordingController struct {
	sessionDir string
	writers    map[views.Stream]*views.LogWriter

	rowsWritten uint64
	errMu       sync.Mutex
	errs        error
	wg          sync.WaitGroup
}

// NewRecordingController creates the session directory and the log of
// every enabled stream, headers included.
func NewRecordingController(storage utils.StorageConfig, sensors utils.SensorsConfig, motionName string, now time.Time) (*RecordingController, error) {
	sessionDir := filepath.Join(storage.BaseDir, utils.SessionName(storage.SessionPrefix, motionName, now))

	if !storage.Overwrite {
		if _, err := os.Stat(sessionDir); err == nil {
			return nil, errors.Errorf("session dir %s already exists (overwrite=false)", sessionDir)
		}
	}
	if err := os.MkdirAll(sessionDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create session dir")
	}

	rc := &RecordingController{
		sessionDir: sessionDir,
		writers:    map[views.Stream]*views.LogWriter{},
	}

	enabled := map[views.Stream]bool{
		views.StreamIMU:   sensors.IMU.Enabled,
		views.StreamOdom:  sensors.Odom.Enabled,
		views.StreamLaser: sensors.Laser.Enabled,
	}
	for _, s := range views.Streams {
		if !enabled[s] {
			continue
		}
		path := filepath.Join(sessionDir, views.LogFileName(s, motionName))
		w, err := views.NewLogWriter(path, views.SchemaColumns[s])
		if err != nil {
			return nil, err
		}
		rc.writers[s] = w
	}

	utils.L().Info("recording controller ready  session=%s", sessionDir)
	return rc, nil
}

// Start drains each sensor channel into its log until the channel closes.
func (rc *RecordingController) Start(sc *SensorsController) {
	if w := rc.writers[views.StreamIMU]; w != nil && sc.IMUCh != nil {
		rc.wg.Add(1)
		go drain(rc, sc.IMUCh, w)
	}
	if w := rc.writers[views.StreamOdom]; w != nil && sc.OdomCh != nil {
		rc.wg.Add(1)
		go drain(rc, sc.OdomCh, w)
	}
	if w := rc.writers[views.StreamLaser]; w != nil && sc.LaserCh != nil {
		rc.wg.Add(1)
		go drain(rc, sc.LaserCh, w)
	}
	utils.L().Info("recording controller started (streams=%d)", len(rc.writers))
}

func drain[T models.Loggable](rc *RecordingController, ch <-chan T, w *views.LogWriter) {
	defer rc.wg.Done()
	for reading := range ch {
		if err := w.Log(reading); err != nil {
			utils.L().Error("log %s: %v", filepath.Base(w.Path()), err)
			rc.errMu.Lock()
			rc.errs = multierr.Append(rc.errs, err)
			rc.errMu.Unlock()
			continue
		}
		atomic.AddUint64(&rc.rowsWritten, 1)
	}
}

// Stop waits for every drain goroutine (the sensor channels must be
// closing) and returns all append failures combined.
func (rc *RecordingController) Stop() error {
	rc.wg.Wait()

	for _, s := range views.Streams {
		if w := rc.writers[s]; w != nil {
			utils.L().Info("  %-6s %d rows → %s", s, w.Rows(), filepath.Base(w.Path()))
		}
	}
	rows := atomic.LoadUint64(&rc.rowsWritten)
	utils.L().Info("recording controller stopped  (rows_written=%d, session=%s)", rows, rc.sessionDir)

	rc.errMu.Lock()
	defer rc.errMu.Unlock()
	return rc.errs
}

// SessionDir returns the path to the active session directory.
func (rc *RecordingController) SessionDir() string {
	return rc.sessionDir
}

// LogPaths returns the log file of each recorded stream.
func (rc *RecordingController) LogPaths() map[views.Stream]string {
	out := make(map[views.Stream]string, len(rc.writers))
	for s, w := range rc.writers {
		out[s] = w.Path()
	}
	return out
}

// RowsWritten returns the total number of rows persisted across streams.
func (rc *RecordingController) RowsWritten() uint64 {
	return atomic.LoadUint64(&rc.rowsWritten)
}
