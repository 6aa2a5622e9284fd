package gazetribe

import "encoding/json"

// Protocol categories.
const (
	CategoryTracker     = "tracker"
	CategoryCalibration = "calibration"
)

// Request kinds within a category.
const (
	RequestGet        = "get"
	RequestSet        = "set"
	RequestStart      = "start"
	RequestPointStart = "pointstart"
	RequestPointEnd   = "pointend"
	RequestAbort      = "abort"
	RequestClear      = "clear"
)

// Status codes carried on replies. 200 acknowledges a request; the 8xx codes
// are unsolicited notifications that carry no payload and must be answered
// with a follow-up get. Everything else is an error.
const (
	StatusOK                  = 200
	StatusCalibrationChanged  = 800
	StatusDisplayChanged      = 801
	StatusTrackerStateChanged = 802
)

// --- Requests (Client -> Server) ---

// Request represents a request sent to the server. ID is empty on
// fire-and-forget requests; the server echoes it on the correlated reply.
type Request struct {
	ID       string `json:"id,omitempty"`
	Category string `json:"category"`
	Request  string `json:"request"`
	Values   any    `json:"values,omitempty"`
}

type versionValues struct {
	Version int `json:"version"`
}

type pointCountValues struct {
	PointCount int `json:"pointcount"`
}

type pointValues struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// trackerStateValues is the full value set of the baseline state query.
var trackerStateValues = []string{
	"version",
	"trackerstate",
	"framerate",
	"iscalibrated",
	"iscalibrating",
	"calibresult",
	"frame",
	"screenindex",
	"screenresw",
	"screenresh",
	"screenpsyw",
	"screenpsyh",
}

// Value sets requested in response to each notification status.
var (
	calibrationChangedValues  = []string{"calibresult", "iscalibrated", "iscalibrating"}
	displayChangedValues      = []string{"screenindex", "screenresw", "screenresh", "screenpsyw", "screenpsyh"}
	trackerStateChangedValues = []string{"trackerstate"}
)

// NewGetValuesRequest creates a tracker get request for the named values.
func NewGetValuesRequest(id string, values ...string) *Request {
	return &Request{
		ID:       id,
		Category: CategoryTracker,
		Request:  RequestGet,
		Values:   values,
	}
}

// NewVersionProbeRequest creates the uncorrelated version query sent during
// the handshake. It deliberately carries no id: servers speaking protocol
// version 1 do not echo ids.
func NewVersionProbeRequest() *Request {
	return NewGetValuesRequest("", "version")
}

// NewTrackerStateRequest creates the baseline query for the full server
// state, including the latest frame, calibration result, and screen.
func NewTrackerStateRequest(id string) *Request {
	return NewGetValuesRequest(id, trackerStateValues...)
}

// NewSetVersionRequest creates a request switching the session to the given
// protocol version.
func NewSetVersionRequest(id string, version int) *Request {
	return &Request{
		ID:       id,
		Category: CategoryTracker,
		Request:  RequestSet,
		Values:   versionValues{Version: version},
	}
}

// NewSetScreenRequest creates a request reporting the active screen
// geometry.
func NewSetScreenRequest(id string, screen Screen) *Request {
	return &Request{
		ID:       id,
		Category: CategoryTracker,
		Request:  RequestSet,
		Values:   screen,
	}
}

// NewCalibrationStartRequest creates a request starting a calibration run
// with the given number of points.
func NewCalibrationStartRequest(id string, points int) *Request {
	return &Request{
		ID:       id,
		Category: CategoryCalibration,
		Request:  RequestStart,
		Values:   pointCountValues{PointCount: points},
	}
}

// NewCalibrationPointStartRequest creates a request announcing that the user
// is fixating the calibration point at (x, y).
func NewCalibrationPointStartRequest(id string, x, y int) *Request {
	return &Request{
		ID:       id,
		Category: CategoryCalibration,
		Request:  RequestPointStart,
		Values:   pointValues{X: x, Y: y},
	}
}

// NewCalibrationPointEndRequest creates the fire-and-forget request marking
// the current calibration point as sampled.
func NewCalibrationPointEndRequest() *Request {
	return &Request{Category: CategoryCalibration, Request: RequestPointEnd}
}

// NewCalibrationAbortRequest creates the fire-and-forget request canceling
// an in-progress calibration run.
func NewCalibrationAbortRequest() *Request {
	return &Request{Category: CategoryCalibration, Request: RequestAbort}
}

// NewCalibrationClearRequest creates the fire-and-forget request removing
// the server's stored calibration.
func NewCalibrationClearRequest() *Request {
	return &Request{Category: CategoryCalibration, Request: RequestClear}
}

// --- Replies (Server -> Client) ---

// Response represents a message received from the server: a correlated
// reply, an unsolicited push, or a payload-less notification.
type Response struct {
	ID          string          `json:"id,omitempty"`
	Category    string          `json:"category"`
	Request     string          `json:"request,omitempty"`
	StatusCode  *int            `json:"statuscode,omitempty"`
	Description string          `json:"statusmessage,omitempty"`
	Values      json.RawMessage `json:"values,omitempty"`
}

// Status returns the reply's status code, or -1 if the field was missing.
func (r *Response) Status() int {
	if r.StatusCode == nil {
		return -1
	}
	return *r.StatusCode
}

// IsOK returns true if the reply acknowledges success.
func (r *Response) IsOK() bool {
	return r.Status() == StatusOK
}

// IsNotification returns true for the three payload-less change
// notifications.
func (r *Response) IsNotification() bool {
	switch r.Status() {
	case StatusCalibrationChanged, StatusDisplayChanged, StatusTrackerStateChanged:
		return true
	}
	return false
}

// IsError returns true if the reply carries an error status.
func (r *Response) IsError() bool {
	return !r.IsOK() && !r.IsNotification()
}

func knownCategory(category string) bool {
	return category == CategoryTracker || category == CategoryCalibration
}

// trackerValues is the payload of a tracker get reply. Every field is
// optional; pointers distinguish "absent" from zero values.
type trackerValues struct {
	Version       *int         `json:"version"`
	TrackerState  *int         `json:"trackerstate"`
	FrameRate     *int         `json:"framerate"`
	IsCalibrated  *bool        `json:"iscalibrated"`
	IsCalibrating *bool        `json:"iscalibrating"`
	CalibResult   *CalibResult `json:"calibresult"`
	Frame         *GazeData    `json:"frame"`
	ScreenIndex   *int         `json:"screenindex"`
	ScreenResW    *int         `json:"screenresw"`
	ScreenResH    *int         `json:"screenresh"`
	ScreenPsyW    *float64     `json:"screenpsyw"`
	ScreenPsyH    *float64     `json:"screenpsyh"`
}

// calibrationValues is the payload of a calibration pointend reply, which
// carries the final result once the last point is processed.
type calibrationValues struct {
	CalibResult *CalibResult `json:"calibresult"`
}
