package gazetribe

// Tracker device states reported in [ServerState].TrackerState.
const (
	TrackerConnected = iota
	TrackerNotConnected
	TrackerConnectedBadFW
	TrackerConnectedNoUSB3
	TrackerConnectedNoStream
)

// Bits of [GazeData].State. A frame can carry several at once, e.g. a frame
// tracked through a blink sets presence but not gaze.
const (
	StateTrackingGaze = 1 << iota
	StateTrackingEyes
	StateTrackingPresence
	StateTrackingFail
	StateTrackingLost
)

// ServerState describes the tracker server: protocol version, device
// connection state, frame rate, and calibration flags.
type ServerState struct {
	Version       int  `json:"version"`
	TrackerState  int  `json:"trackerstate"`
	FrameRate     int  `json:"framerate"`
	IsCalibrated  bool `json:"iscalibrated"`
	IsCalibrating bool `json:"iscalibrating"`
}

// Point2D is a coordinate in screen pixels.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Eye holds per-eye tracking data for one frame.
type Eye struct {
	Raw         Point2D `json:"raw"`
	Avg         Point2D `json:"avg"`
	PupilSize   float64 `json:"psize"`
	PupilCenter Point2D `json:"pcenter"`
}

// GazeData is one gaze frame. State is a bitmask of the StateTracking*
// constants; Raw is the instantaneous estimate and Avg the smoothed one.
type GazeData struct {
	Timestamp string  `json:"timestamp"`
	Time      int64   `json:"time"`
	Fix       bool    `json:"fix"`
	State     int     `json:"state"`
	Raw       Point2D `json:"raw"`
	Avg       Point2D `json:"avg"`
	LeftEye   Eye     `json:"lefteye"`
	RightEye  Eye     `json:"righteye"`
}

// Tracking reports whether all of the given state bits are set on the frame.
func (g GazeData) Tracking(bits int) bool {
	return g.State&bits == bits
}

// Accuracy is an angular accuracy triple in degrees (combined, left, right).
type Accuracy struct {
	Average float64 `json:"ad"`
	Left    float64 `json:"adl"`
	Right   float64 `json:"adr"`
}

// MeanError is a mean error triple in pixels (combined, left, right).
type MeanError struct {
	Average float64 `json:"mep"`
	Left    float64 `json:"mepl"`
	Right   float64 `json:"mepr"`
}

// StdDeviation is a standard deviation triple in pixels (combined, left,
// right).
type StdDeviation struct {
	Average float64 `json:"asd"`
	Left    float64 `json:"asdl"`
	Right   float64 `json:"asdr"`
}

// CalibPoint is the per-point quality data of a calibration run.
type CalibPoint struct {
	State         int          `json:"state"`
	Coordinates   Point2D      `json:"cp"`
	MeanEstimated Point2D      `json:"mecp"`
	Accuracy      Accuracy     `json:"acd"`
	MeanError     MeanError    `json:"mepix"`
	StdDeviation  StdDeviation `json:"asdp"`
}

// CalibResult is the outcome of a calibration run.
type CalibResult struct {
	Result   bool         `json:"result"`
	Deg      float64      `json:"deg"`
	DegLeft  float64      `json:"degl"`
	DegRight float64      `json:"degr"`
	Points   []CalibPoint `json:"calibpoints"`
}

// Screen describes the screen the tracker maps gaze coordinates onto.
// Physical dimensions are in meters.
type Screen struct {
	Index          int     `json:"screenindex"`
	WidthPx        int     `json:"screenresw"`
	HeightPx       int     `json:"screenresh"`
	PhysicalWidth  float64 `json:"screenpsyw"`
	PhysicalHeight float64 `json:"screenpsyh"`
}
