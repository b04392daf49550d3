package models

// IMUReading holds the planar part of one inertial measurement.
type IMUReading struct {
	StampNs  int64   `json:"stamp"`
	AccX     float64 `json:"acc_x"` // m/s²
	AccY     float64 `json:"acc_y"`
	AngularZ float64 `json:"angular_z"` // rad/s
}

func (IMUReading) LogHeader() []string {
	return []string{"acc_x", "acc_y", "angular_z", "stamp"}
}

func (d *IMUReading) LogRow() Row {
	return Row{Scalar(d.AccX), Scalar(d.AccY), Scalar(d.AngularZ), Integer(d.StampNs)}
}
