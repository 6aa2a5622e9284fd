package gazetribe

import (
	"encoding/json"
	"testing"
)

func TestNewSetVersionRequest_MarshalJSON(t *testing.T) {
	req := NewSetVersionRequest("test-id", 2)

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	if parsed["category"] != "tracker" {
		t.Errorf("category = %v, want tracker", parsed["category"])
	}
	if parsed["request"] != "set" {
		t.Errorf("request = %v, want set", parsed["request"])
	}
	if parsed["id"] != "test-id" {
		t.Errorf("id = %v, want test-id", parsed["id"])
	}

	values := parsed["values"].(map[string]interface{})
	if values["version"].(float64) != 2 {
		t.Errorf("values.version = %v, want 2", values["version"])
	}
}

func TestNewSetScreenRequest_MarshalJSON(t *testing.T) {
	screen := Screen{Index: 1, WidthPx: 1920, HeightPx: 1080, PhysicalWidth: 0.52, PhysicalHeight: 0.29}
	req := NewSetScreenRequest("scr-1", screen)

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	values := parsed["values"].(map[string]interface{})
	if values["screenindex"].(float64) != 1 {
		t.Errorf("screenindex = %v, want 1", values["screenindex"])
	}
	if values["screenresw"].(float64) != 1920 {
		t.Errorf("screenresw = %v, want 1920", values["screenresw"])
	}
	if values["screenpsyh"].(float64) != 0.29 {
		t.Errorf("screenpsyh = %v, want 0.29", values["screenpsyh"])
	}
}

func TestNewCalibrationStartRequest_MarshalJSON(t *testing.T) {
	req := NewCalibrationStartRequest("cal-1", 9)

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	if parsed["category"] != "calibration" {
		t.Errorf("category = %v, want calibration", parsed["category"])
	}
	if parsed["request"] != "start" {
		t.Errorf("request = %v, want start", parsed["request"])
	}

	values := parsed["values"].(map[string]interface{})
	if values["pointcount"].(float64) != 9 {
		t.Errorf("values.pointcount = %v, want 9", values["pointcount"])
	}
}

func TestNewCalibrationPointStartRequest_MarshalJSON(t *testing.T) {
	req := NewCalibrationPointStartRequest("pt-1", 960, 540)

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	if parsed["request"] != "pointstart" {
		t.Errorf("request = %v, want pointstart", parsed["request"])
	}
	values := parsed["values"].(map[string]interface{})
	if values["x"].(float64) != 960 || values["y"].(float64) != 540 {
		t.Errorf("values = %v, want x=960 y=540", values)
	}
}

func TestFireAndForgetRequests_OmitID(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
		kind string
	}{
		{"point end", NewCalibrationPointEndRequest(), "pointend"},
		{"abort", NewCalibrationAbortRequest(), "abort"},
		{"clear", NewCalibrationClearRequest(), "clear"},
		{"version probe", NewVersionProbeRequest(), "get"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.req)
			if err != nil {
				t.Fatalf("marshal error: %v", err)
			}

			var parsed map[string]interface{}
			if err := json.Unmarshal(data, &parsed); err != nil {
				t.Fatalf("unmarshal error: %v", err)
			}

			if _, ok := parsed["id"]; ok {
				t.Errorf("id present on fire-and-forget request: %s", data)
			}
			if parsed["request"] != tt.kind {
				t.Errorf("request = %v, want %s", parsed["request"], tt.kind)
			}
		})
	}
}

func TestResponse_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(*Response) bool
	}{
		{
			name:  "ok reply",
			input: `{"id":"abc","category":"tracker","request":"set","statuscode":200}`,
			check: func(r *Response) bool {
				return r.IsOK() && !r.IsNotification() && r.ID == "abc"
			},
		},
		{
			name:  "error reply",
			input: `{"category":"tracker","request":"get","statuscode":400,"statusmessage":"bad request"}`,
			check: func(r *Response) bool {
				return r.IsError() && r.Description == "bad request" && r.Status() == 400
			},
		},
		{
			name:  "calibration change notification",
			input: `{"category":"calibration","statuscode":800}`,
			check: func(r *Response) bool {
				return r.IsNotification() && !r.IsError() && !r.IsOK()
			},
		},
		{
			name:  "display change notification",
			input: `{"category":"tracker","statuscode":801}`,
			check: func(r *Response) bool {
				return r.IsNotification()
			},
		},
		{
			name:  "tracker state change notification",
			input: `{"category":"tracker","statuscode":802}`,
			check: func(r *Response) bool {
				return r.IsNotification()
			},
		},
		{
			name:  "missing status code",
			input: `{"category":"tracker","request":"get"}`,
			check: func(r *Response) bool {
				return r.StatusCode == nil && r.Status() == -1 && r.IsError()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp Response
			if err := json.Unmarshal([]byte(tt.input), &resp); err != nil {
				t.Fatalf("unmarshal error: %v", err)
			}
			if !tt.check(&resp) {
				t.Errorf("check failed for %s", tt.name)
			}
		})
	}
}

func TestTrackerValues_Unmarshal(t *testing.T) {
	input := `{
		"version": 2,
		"trackerstate": 0,
		"framerate": 30,
		"iscalibrated": true,
		"iscalibrating": false,
		"frame": {
			"timestamp": "2016-03-23 10:07:32.523",
			"time": 1458727652523,
			"fix": true,
			"state": 7,
			"raw": {"x": 440.1, "y": 250.3},
			"avg": {"x": 441.0, "y": 251.0},
			"lefteye": {"raw": {"x": 430, "y": 249}, "avg": {"x": 431, "y": 250}, "psize": 11.2, "pcenter": {"x": 0.4, "y": 0.5}},
			"righteye": {"raw": {"x": 450, "y": 251}, "avg": {"x": 451, "y": 252}, "psize": 11.0, "pcenter": {"x": 0.6, "y": 0.5}}
		},
		"calibresult": {
			"result": true,
			"deg": 0.45,
			"degl": 0.5,
			"degr": 0.4,
			"calibpoints": [
				{"state": 2, "cp": {"x": 100, "y": 100}, "mecp": {"x": 101, "y": 99},
				 "acd": {"ad": 0.4, "adl": 0.5, "adr": 0.3},
				 "mepix": {"mep": 5.1, "mepl": 5.5, "mepr": 4.7},
				 "asdp": {"asd": 2.0, "asdl": 2.1, "asdr": 1.9}}
			]
		},
		"screenindex": 0,
		"screenresw": 1920,
		"screenresh": 1080,
		"screenpsyw": 0.52,
		"screenpsyh": 0.29
	}`

	var values trackerValues
	if err := json.Unmarshal([]byte(input), &values); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	if values.Version == nil || *values.Version != 2 {
		t.Error("version not parsed")
	}
	if values.Frame == nil {
		t.Fatal("frame not parsed")
	}
	if values.Frame.Time != 1458727652523 {
		t.Errorf("frame time = %d", values.Frame.Time)
	}
	if values.Frame.LeftEye.PupilSize != 11.2 {
		t.Errorf("left pupil size = %v, want 11.2", values.Frame.LeftEye.PupilSize)
	}
	if values.CalibResult == nil {
		t.Fatal("calibresult not parsed")
	}
	if len(values.CalibResult.Points) != 1 {
		t.Fatalf("calib points = %d, want 1", len(values.CalibResult.Points))
	}
	if values.CalibResult.Points[0].Accuracy.Left != 0.5 {
		t.Errorf("point accuracy left = %v, want 0.5", values.CalibResult.Points[0].Accuracy.Left)
	}
	if values.ScreenResW == nil || *values.ScreenResW != 1920 {
		t.Error("screenresw not parsed")
	}

	// A sparse payload leaves the other fields absent.
	var sparse trackerValues
	if err := json.Unmarshal([]byte(`{"trackerstate":1}`), &sparse); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if sparse.TrackerState == nil || *sparse.TrackerState != 1 {
		t.Error("trackerstate not parsed")
	}
	if sparse.Version != nil || sparse.Frame != nil || sparse.ScreenResW != nil {
		t.Error("absent fields parsed as present")
	}
}
