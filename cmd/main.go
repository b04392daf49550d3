package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"motion-logger/utils"
)

const (
	// Flags.
	flagMotion   = "motion"
	flagConfig   = "config"
	flagDuration = "duration"
	flagLog      = "log"
	flagPlot     = "plot"
	flagFiles    = "files"
	flagOutDir   = "out-dir"
	flagTitle    = "title"
	flagRow      = "row"
)

func filesFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:     flagFiles,
		Usage:    "log files to plot, one chart each",
		Required: true,
	}
}

func outDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  flagOutDir,
		Usage: "directory for the rendered PNGs (defaults to each log's directory)",
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "motion-logger",
		Usage: "drive a robot through preset motions, log its sensors and plot the logs",
		Commands: []*cli.Command{
			{
				Name:  "drive",
				Usage: "run a motion profile and record imu, odom and laser logs",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  flagMotion,
						Usage: "motion profile: circle, spiral or line",
						Value: "circle",
					},
					&cli.StringFlag{
						Name:  flagConfig,
						Usage: "path to motion.yaml (empty for built-in defaults)",
						Value: "config/motion.yaml",
					},
					&cli.DurationFlag{
						Name:  flagDuration,
						Usage: "stop after this long (overrides simulation.duration_seconds)",
					},
					&cli.StringFlag{
						Name:  flagLog,
						Usage: "optional log file path (stdout is always included)",
					},
					&cli.BoolFlag{
						Name:  flagPlot,
						Usage: "render plots of the session's logs when the run ends",
					},
				},
				Action: driveAction,
			},
			{
				Name:  "plot",
				Usage: "render logged data as PNG charts",
				Subcommands: []*cli.Command{
					{
						Name:  "sensors",
						Usage: "plot every column of imu or odom logs against time",
						Flags: []cli.Flag{
							filesFlag(),
							outDirFlag(),
							&cli.StringFlag{
								Name:  flagTitle,
								Usage: "chart title (defaults by stream)",
							},
						},
						Action: plotSensorsAction,
					},
					{
						Name:   "trajectory",
						Usage:  "plot x against y of odom logs",
						Flags:  []cli.Flag{filesFlag(), outDirFlag()},
						Action: plotTrajectoryAction,
					},
					{
						Name:  "laser",
						Usage: "plot one scan of laser logs in Cartesian coordinates",
						Flags: []cli.Flag{
							filesFlag(),
							outDirFlag(),
							&cli.IntFlag{
								Name:  flagRow,
								Usage: "index of the scan to plot",
								Value: 20,
							},
						},
						Action: plotLaserAction,
					},
				},
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		utils.L().Fatal("%v", err)
	}
}
