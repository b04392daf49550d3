package views

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"motion-logger/models"
)

// ─── Plot rendering ─────────────────────────────────────────────────────
//
// Each function renders one log table into one PNG (or any extension
// gonum/plot knows) at out.

const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 5 * vg.Inch
)

// skipColumns are plotted by no time-series chart.
var skipColumns = map[string]bool{"th_deg": true}

// PlotOptions labels a time-series chart. Empty Legend entries fall back
// to the column header.
type PlotOptions struct {
	Title  string
	XLabel string
	YLabel string
	Legend []string
}

// DefaultPlotOptions picks labels by recognising the stream from its header.
func DefaultPlotOptions(headers []string) PlotOptions {
	opts := PlotOptions{XLabel: "Time (s)"}
	switch {
	case hasHeader(headers, "acc_x"):
		opts.Title = "IMU Data"
		opts.YLabel = "Acceleration (X, Y), Velocity (θ)"
		opts.Legend = []string{"X Acceleration [m/s^2]", "Y Acceleration [m/s^2]", "Angular Velocity [rad/s]"}
	case hasHeader(headers, "th"):
		opts.Title = "ODOM Data"
		opts.YLabel = "Position"
		opts.Legend = []string{"X Position [m]", "Y Position [m]", "Orientation [rad]"}
	default:
		opts.Title = "Sensor Data"
	}
	return opts
}

func hasHeader(headers []string, name string) bool {
	for _, h := range headers {
		if h == name {
			return true
		}
	}
	return false
}

// PlotSensorLog plots every data column except the trailing stamp against
// time since the first row.
func PlotSensorLog(table *LogTable, opts PlotOptions, out string) error {
	if len(table.Rows) == 0 {
		return errors.New("sensor plot: log has no rows")
	}
	secs := table.StampsSeconds()

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.Add(plotter.NewGrid())

	var lines []interface{}
	legend := 0
	for col := 0; col < len(table.Headers)-1; col++ {
		if skipColumns[table.Headers[col]] {
			continue
		}
		pts := make(plotter.XYs, 0, len(table.Rows))
		for i, row := range table.Rows {
			if col < len(row) {
				pts = append(pts, plotter.XY{X: secs[i], Y: row[col]})
			}
		}
		name := table.Headers[col]
		if legend < len(opts.Legend) && opts.Legend[legend] != "" {
			name = opts.Legend[legend]
		}
		legend++
		lines = append(lines, name, pts)
	}
	if err := plotutil.AddLines(p, lines...); err != nil {
		return errors.Wrap(err, "sensor plot")
	}
	return errors.Wrapf(p.Save(plotWidth, plotHeight, out), "save %s", out)
}

// PlotTrajectory plots the x column against the y column.
func PlotTrajectory(table *LogTable, out string) error {
	xs, okX := table.Column("x")
	ys, okY := table.Column("y")
	if !okX || !okY {
		return errors.New("trajectory plot: log has no x and y columns")
	}
	pts := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
	}
	if len(pts) == 0 {
		return errors.New("trajectory plot: log has no x/y rows")
	}

	p := plot.New()
	p.Title.Text = "2D Top View Trajectory"
	p.X.Label.Text = "X [m]"
	p.Y.Label.Text = "Y [m]"
	p.Add(plotter.NewGrid())
	if err := plotutil.AddLines(p, "2D Top View Trajectory (x vs y)", pts); err != nil {
		return errors.Wrap(err, "trajectory plot")
	}
	return errors.Wrapf(p.Save(plotWidth, plotHeight, out), "save %s", out)
}

// PlotLaserScan converts one logged scan to Cartesian points and scatters
// them.
func PlotLaserScan(table *LogTable, rowIndex int, out string) error {
	if rowIndex < 0 || rowIndex >= len(table.Rows) {
		return errors.Errorf("laser plot: row %d out of range (%d rows)", rowIndex, len(table.Rows))
	}
	scan, err := models.LaserScanFromValues(table.Rows[rowIndex])
	if err != nil {
		return errors.Wrap(err, "laser plot")
	}

	pts := make(plotter.XYs, 0, len(scan.Ranges))
	for _, v := range scan.Points() {
		pts = append(pts, plotter.XY{X: v.X, Y: v.Y})
	}

	p := plot.New()
	p.Title.Text = "Cartesian Pose Data from Single Laser Scan"
	p.X.Label.Text = "X [m]"
	p.Y.Label.Text = "Y [m]"
	p.Add(plotter.NewGrid())

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "laser plot")
	}
	s.GlyphStyle.Radius = vg.Points(2)
	p.Add(s)
	p.Legend.Add("Laser scan points (x vs y)", s)

	return errors.Wrapf(p.Save(plotWidth, plotHeight, out), "save %s", out)
}
