package models

// OdomReading holds one pose estimate from wheel odometry.
type OdomReading struct {
	StampNs     int64      `json:"stamp"`
	X           float64    `json:"x"` // m
	Y           float64    `json:"y"`
	Orientation Quaternion `json:"orientation"`
}

func (OdomReading) LogHeader() []string {
	return []string{"x", "y", "th", "th_deg", "stamp"}
}

// LogRow logs the heading as yaw in both radians and degrees.
func (o *OdomReading) LogRow() Row {
	th := EulerFromQuaternion(o.Orientation)
	return Row{
		Scalar(o.X),
		Scalar(o.Y),
		Scalar(th),
		Scalar(ConvertToDegrees(th)),
		Integer(o.StampNs),
	}
}
