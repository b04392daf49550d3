package models

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestFieldTokens(t *testing.T) {
	test.That(t, Scalar(1.5).Tokens(), test.ShouldResemble, []string{"1.5"})
	test.That(t, Scalar(2).Tokens(), test.ShouldResemble, []string{"2"})
	test.That(t, Scalar(math.Inf(1)).Tokens(), test.ShouldResemble, []string{"+Inf"})
	test.That(t, Scalar(math.NaN()).Tokens(), test.ShouldResemble, []string{"NaN"})
	test.That(t, Integer(1700000000123456789).Tokens(), test.ShouldResemble, []string{"1700000000123456789"})
	test.That(t, Sequence([]float64{0.1, 0.2, 0.3}).Tokens(), test.ShouldResemble, []string{"0.1", "0.2", "0.3"})
	test.That(t, Sequence(nil).Tokens(), test.ShouldBeEmpty)
}

func TestRowTokensFlattensSequences(t *testing.T) {
	row := Row{Sequence([]float64{0.1, 0.2, 0.3}), Scalar(0.5), Integer(5000)}
	test.That(t, row.Tokens(), test.ShouldResemble, []string{"0.1", "0.2", "0.3", "0.5", "5000"})
}

func TestReadingRowsMatchHeaders(t *testing.T) {
	imu := &IMUReading{StampNs: 10, AccX: 1, AccY: 2, AngularZ: 3}
	test.That(t, len(imu.LogRow()), test.ShouldEqual, len(imu.LogHeader()))

	odom := &OdomReading{StampNs: 20, X: 1, Y: 2, Orientation: QuaternionFromYaw(math.Pi / 2)}
	row := odom.LogRow()
	test.That(t, len(row), test.ShouldEqual, len(odom.LogHeader()))
	test.That(t, row[2].Scalar, test.ShouldAlmostEqual, math.Pi/2)
	test.That(t, row[3].Scalar, test.ShouldAlmostEqual, 90.0)
	test.That(t, row[4].Integer, test.ShouldEqual, int64(20))

	scan := &LaserScan{StampNs: 30, Ranges: []float64{1, 2}, AngleIncrement: 0.1}
	test.That(t, len(scan.LogRow()), test.ShouldEqual, len(scan.LogHeader()))
	test.That(t, scan.LogRow().Tokens(), test.ShouldResemble, []string{"1", "2", "0.1", "30"})
}
