package models

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// LaserScan holds one sweep of a planar range finder. Beam i points at
// i*AngleIncrement radians from the sensor's forward axis.
type LaserScan struct {
	StampNs        int64     `json:"stamp"`
	Ranges         []float64 `json:"ranges"` // m; +Inf when nothing was hit
	AngleIncrement float64   `json:"angle_increment"`
}

func (LaserScan) LogHeader() []string {
	return []string{"ranges", "angle_increment", "stamp"}
}

func (s *LaserScan) LogRow() Row {
	return Row{Sequence(s.Ranges), Scalar(s.AngleIncrement), Integer(s.StampNs)}
}

// LaserScanFromValues rebuilds a scan from a flattened log row: the last
// value is the stamp, the one before it the angle increment, and the rest
// are ranges.
func LaserScanFromValues(values []float64) (*LaserScan, error) {
	if len(values) < 2 {
		return nil, errors.Errorf("laser row too short: %d values", len(values))
	}
	n := len(values)
	ranges := make([]float64, n-2)
	copy(ranges, values[:n-2])
	return &LaserScan{
		StampNs:        int64(values[n-1]),
		AngleIncrement: values[n-2],
		Ranges:         ranges,
	}, nil
}

// Points converts the scan from polar to Cartesian coordinates in the
// sensor frame, starting at angle zero. NaN and infinite ranges produce no
// point but still advance the angle.
func (s *LaserScan) Points() []r3.Vector {
	pts := make([]r3.Vector, 0, len(s.Ranges))
	theta := 0.0
	for _, r := range s.Ranges {
		if !math.IsNaN(r) && !math.IsInf(r, 0) {
			pts = append(pts, r3.Vector{X: r * math.Cos(theta), Y: r * math.Sin(theta)})
		}
		theta += s.AngleIncrement
	}
	return pts
}
