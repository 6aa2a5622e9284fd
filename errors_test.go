package gazetribe

import (
	"errors"
	"strings"
	"testing"
)

func TestConnectionError(t *testing.T) {
	inner := errors.New("connection refused")
	err := &ConnectionError{Op: "dial", Addr: "127.0.0.1:6555", Err: inner}

	msg := err.Error()
	if !strings.Contains(msg, "dial") || !strings.Contains(msg, "127.0.0.1:6555") {
		t.Errorf("Error() = %q", msg)
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is failed to unwrap")
	}

	// Without an address
	err = &ConnectionError{Op: "read", Err: inner}
	if strings.Contains(err.Error(), "  ") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestSendError(t *testing.T) {
	inner := errors.New("broken pipe")
	err := &SendError{Op: "write", Err: inner}

	if !strings.Contains(err.Error(), "write") {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is failed to unwrap")
	}
}

func TestRequestError(t *testing.T) {
	err := &RequestError{
		Category:    "calibration",
		Request:     "start",
		StatusCode:  400,
		Description: "calibration already running",
	}

	msg := err.Error()
	for _, want := range []string{"calibration/start", "400", "calibration already running"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}

	// Description is optional.
	err = &RequestError{Category: "tracker", Request: "set", StatusCode: 500}
	if !strings.Contains(err.Error(), "status 500") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestNewRequestError(t *testing.T) {
	resp := &Response{
		Category:    CategoryTracker,
		Request:     RequestSet,
		StatusCode:  statusPtr(403),
		Description: "denied",
	}

	err := newRequestError(resp)
	if err.StatusCode != 403 || err.Description != "denied" {
		t.Errorf("newRequestError = %+v", err)
	}
}
