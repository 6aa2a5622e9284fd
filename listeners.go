package gazetribe

import "sync"

// GazeListener receives every gaze frame the server pushes.
type GazeListener interface {
	OnGazeData(data GazeData)
}

// CalibrationResultListener is notified whenever the server reports a
// calibration result, solicited or not.
type CalibrationResultListener interface {
	OnCalibrationChanged(ok bool, result CalibResult)
}

// TrackerStateListener is notified of tracker device and screen geometry
// changes.
type TrackerStateListener interface {
	OnTrackerConnectionChanged(oldState, newState int)
	OnScreenChanged(screen Screen)
}

// CalibrationProcessHandler follows an active calibration run.
type CalibrationProcessHandler interface {
	OnCalibrationStarted()
	OnCalibrationProgress(progress float64)
	OnCalibrationResult(ok bool, result CalibResult)
}

// ConnectionStateListener is notified when the session to the server is
// established or lost.
type ConnectionStateListener interface {
	OnConnectionStateChanged(connected bool)
}

// registry is an ordered collection of listeners of one category. Adding a
// listener twice and removing an unregistered listener are no-ops.
// Notification runs synchronously in registration order on the goroutine
// that triggered it; listeners must not block.
type registry[T comparable] struct {
	mu    sync.Mutex
	items []T
}

func (r *registry[T]) add(l T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it == l {
			return
		}
	}
	r.items = append(r.items, l)
}

func (r *registry[T]) remove(l T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, it := range r.items {
		if it == l {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return
		}
	}
}

func (r *registry[T]) notify(fn func(T)) {
	r.mu.Lock()
	snapshot := make([]T, len(r.items))
	copy(snapshot, r.items)
	r.mu.Unlock()

	for _, l := range snapshot {
		fn(l)
	}
}
