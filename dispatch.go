package gazetribe

import (
	"context"
	"encoding/json"
)

// dispatch classifies one incoming message, applies its listener and
// snapshot effects, and finally unblocks any caller waiting on its
// correlation id. Effects land in the snapshot store before the waiter
// resumes, so a caller returning from roundTrip sees the state its reply
// produced.
func (c *Client) dispatch(ctx context.Context, resp *Response) {
	c.apply(ctx, resp)

	if resp.ID == "" {
		return
	}

	c.mu.Lock()
	ch, ok := c.pending[resp.ID]
	c.mu.Unlock()
	if ok {
		select {
		case ch <- resp:
		default:
		}
	}
}

// apply performs the side effects of one message. Messages with an unknown
// category or a missing status code are dropped; their waiters, if any, are
// still unblocked by dispatch and observe the error status.
func (c *Client) apply(ctx context.Context, resp *Response) {
	if !knownCategory(resp.Category) || resp.StatusCode == nil {
		return
	}

	if resp.IsNotification() {
		// The notification carries no payload; ask for exactly the fields
		// it invalidated. The reply re-enters dispatch like any other
		// message. Sent without waiting: blocking here would stall the read
		// loop that has to deliver the reply.
		var values []string
		switch resp.Status() {
		case StatusCalibrationChanged:
			values = calibrationChangedValues
		case StatusDisplayChanged:
			values = displayChangedValues
		case StatusTrackerStateChanged:
			values = trackerStateChangedValues
		}
		_ = c.send(ctx, NewGetValuesRequest("", values...))
		return
	}

	if !resp.IsOK() {
		return
	}

	switch resp.Category {
	case CategoryTracker:
		c.applyTracker(resp)
	case CategoryCalibration:
		c.applyCalibration(resp)
	}
}

func (c *Client) applyTracker(resp *Response) {
	switch resp.Request {
	case RequestSet:
		// Acknowledgement only; the correlator unblocking is the effect.
	case RequestGet:
		var values trackerValues
		if len(resp.Values) == 0 {
			return
		}
		if err := json.Unmarshal(resp.Values, &values); err != nil {
			return
		}
		c.applyTrackerValues(&values)
	}
}

// applyTrackerValues folds a tracker get payload into the snapshots and
// notifies listeners of whatever actually changed or arrived.
func (c *Client) applyTrackerValues(v *trackerValues) {
	prev := c.store.serverState()
	state := prev
	if v.Version != nil {
		state.Version = *v.Version
	}
	if v.TrackerState != nil {
		state.TrackerState = *v.TrackerState
	}
	if v.FrameRate != nil {
		state.FrameRate = *v.FrameRate
	}
	if v.IsCalibrated != nil {
		state.IsCalibrated = *v.IsCalibrated
	}
	if v.IsCalibrating != nil {
		state.IsCalibrating = *v.IsCalibrating
	}

	trackerChanged := state.TrackerState != prev.TrackerState
	c.store.setServerState(state)

	// A Connect in progress waits on the first reported version.
	if v.Version != nil {
		c.mu.Lock()
		versionCh := c.versionCh
		c.mu.Unlock()
		if versionCh != nil {
			select {
			case versionCh <- *v.Version:
			default:
			}
		}
	}

	if v.Frame != nil {
		frame := *v.Frame
		c.store.setFrame(frame)
		c.gazeListeners.notify(func(l GazeListener) {
			l.OnGazeData(frame)
		})
	}

	if v.CalibResult != nil {
		result := *v.CalibResult
		c.store.setCalibResult(result)
		c.resultListeners.notify(func(l CalibrationResultListener) {
			l.OnCalibrationChanged(result.Result, result)
		})
	}

	prevScreen := c.store.screen()
	screen := prevScreen
	if v.ScreenIndex != nil {
		screen.Index = *v.ScreenIndex
	}
	if v.ScreenResW != nil {
		screen.WidthPx = *v.ScreenResW
	}
	if v.ScreenResH != nil {
		screen.HeightPx = *v.ScreenResH
	}
	if v.ScreenPsyW != nil {
		screen.PhysicalWidth = *v.ScreenPsyW
	}
	if v.ScreenPsyH != nil {
		screen.PhysicalHeight = *v.ScreenPsyH
	}
	if screen != prevScreen {
		c.store.setScreen(screen)
		c.trackerListeners.notify(func(l TrackerStateListener) {
			l.OnScreenChanged(screen)
		})
	}

	if trackerChanged {
		c.trackerListeners.notify(func(l TrackerStateListener) {
			l.OnTrackerConnectionChanged(prev.TrackerState, state.TrackerState)
		})
	}
}

func (c *Client) applyCalibration(resp *Response) {
	switch resp.Request {
	case RequestStart:
		c.processListeners.notify(func(h CalibrationProcessHandler) {
			h.OnCalibrationStarted()
		})

	case RequestPointEnd:
		progress := c.progress.pointEnd()
		c.processListeners.notify(func(h CalibrationProcessHandler) {
			h.OnCalibrationProgress(progress)
		})

		if len(resp.Values) == 0 {
			return
		}
		var values calibrationValues
		if err := json.Unmarshal(resp.Values, &values); err != nil {
			return
		}
		if values.CalibResult == nil {
			return
		}

		result := *values.CalibResult
		if result.Result {
			c.store.setCalibResult(result)
			c.resultListeners.notify(func(l CalibrationResultListener) {
				l.OnCalibrationChanged(true, result)
			})
			c.progress.reset()
		}
		c.processListeners.notify(func(h CalibrationProcessHandler) {
			h.OnCalibrationResult(result.Result, result)
		})

	case RequestAbort:
		c.progress.reset()

	case RequestClear:
		c.store.clearCalibResult()
	}
}
