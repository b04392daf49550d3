package views

import "fmt"

// Stream identifies one logged sensor stream.
type Stream int

const (
	StreamIMU Stream = iota
	StreamOdom
	StreamLaser
)

var streamNames = map[Stream]string{
	StreamIMU:   "imu",
	StreamOdom:  "odom",
	StreamLaser: "laser",
}

func (s Stream) String() string {
	if n, ok := streamNames[s]; ok {
		return n
	}
	return "unknown"
}

// Streams lists every stream in logging order.
var Streams = []Stream{StreamIMU, StreamOdom, StreamLaser}

// SchemaColumns is the header each stream's log is created with. It must
// agree with the LogHeader method of the matching model.
var SchemaColumns = map[Stream][]string{
	StreamIMU:   {"acc_x", "acc_y", "angular_z", "stamp"},
	StreamOdom:  {"x", "y", "th", "th_deg", "stamp"},
	StreamLaser: {"ranges", "angle_increment", "stamp"},
}

// LogFileName returns the file a stream is logged to for a motion, e.g.
// "imu_content_circle.csv".
func LogFileName(s Stream, motion string) string {
	return fmt.Sprintf("%s_content_%s.csv", s, motion)
}
