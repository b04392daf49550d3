package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"motion-logger/controller"
	"motion-logger/utils"
	"motion-logger/views"
)

// plotOutputPath names the chart of log as <log base>_<kind>.png in
// outDir, or next to the log if outDir is empty.
func plotOutputPath(log, outDir, kind string) string {
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(log)
	}
	base := strings.TrimSuffix(filepath.Base(log), filepath.Ext(log))
	return filepath.Join(dir, fmt.Sprintf("%s_%s.png", base, kind))
}

// plotFiles renders every file with render, carrying on past failures so
// one bad log does not hide the others.
func plotFiles(files []string, outDir, kind string, render func(*views.LogTable, string) error) error {
	utils.L().Info("plotting the files %v", files)
	var errs error
	for _, f := range files {
		table, err := views.ReadLog(f)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		out := plotOutputPath(f, outDir, kind)
		if err := render(table, out); err != nil {
			errs = multierr.Append(errs, errors.Wrap(err, f))
			continue
		}
		utils.L().Info("wrote %s", out)
	}
	// cli exits the process on errors exposing Errors(), so hide the multierr.
	return errors.Wrapf(errs, "plot %s", kind)
}

func plotSensorsAction(c *cli.Context) error {
	title := c.String(flagTitle)
	return plotFiles(c.StringSlice(flagFiles), c.String(flagOutDir), "sensors",
		func(table *views.LogTable, out string) error {
			opts := views.DefaultPlotOptions(table.Headers)
			if title != "" {
				opts.Title = title
			}
			return views.PlotSensorLog(table, opts, out)
		})
}

func plotTrajectoryAction(c *cli.Context) error {
	return plotFiles(c.StringSlice(flagFiles), c.String(flagOutDir), "trajectory", views.PlotTrajectory)
}

func plotLaserAction(c *cli.Context) error {
	row := c.Int(flagRow)
	return plotFiles(c.StringSlice(flagFiles), c.String(flagOutDir), "laser",
		func(table *views.LogTable, out string) error {
			return views.PlotLaserScan(table, row, out)
		})
}

func defaultSensorChart(table *views.LogTable, out string) error {
	return views.PlotSensorLog(table, views.DefaultPlotOptions(table.Headers), out)
}

// plotSession renders the default charts of a finished drive session.
func plotSession(rc *controller.RecordingController) error {
	paths := rc.LogPaths()
	streams := make([]views.Stream, 0, len(paths))
	for s := range paths {
		streams = append(streams, s)
	}
	sort.Slice(streams, func(i, j int) bool { return streams[i] < streams[j] })

	var errs error
	for _, s := range streams {
		path := paths[s]
		switch s {
		case views.StreamIMU:
			errs = multierr.Append(errs, plotFiles([]string{path}, "", "sensors", defaultSensorChart))
		case views.StreamOdom:
			errs = multierr.Append(errs, plotFiles([]string{path}, "", "sensors", defaultSensorChart))
			errs = multierr.Append(errs, plotFiles([]string{path}, "", "trajectory", views.PlotTrajectory))
		case views.StreamLaser:
			errs = multierr.Append(errs, plotFiles([]string{path}, "", "laser",
				func(table *views.LogTable, out string) error {
					// the last scan, since a short run may not reach row 20
					return views.PlotLaserScan(table, len(table.Rows)-1, out)
				}))
		}
	}
	return errors.Wrap(errs, "plot session")
}
