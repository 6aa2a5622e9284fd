package gazetribe

import "sync"

// store holds the last known values reported by the server. Each entry has
// its own guard and is replaced whole, never mutated in place, so readers
// always observe one fully-formed value.
type store struct {
	stateMu sync.Mutex
	state   ServerState

	frameMu sync.Mutex
	fr      GazeData

	calibMu sync.Mutex
	calib   CalibResult

	screenMu sync.Mutex
	scr      Screen
}

func (s *store) serverState() ServerState {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.state
}

func (s *store) setServerState(state ServerState) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.state = state
}

func (s *store) frame() GazeData {
	s.frameMu.Lock()
	defer s.frameMu.Unlock()
	return s.fr
}

func (s *store) setFrame(frame GazeData) {
	s.frameMu.Lock()
	defer s.frameMu.Unlock()
	s.fr = frame
}

func (s *store) calibResult() CalibResult {
	s.calibMu.Lock()
	defer s.calibMu.Unlock()
	return s.calib
}

func (s *store) setCalibResult(result CalibResult) {
	s.calibMu.Lock()
	defer s.calibMu.Unlock()
	s.calib = result
}

func (s *store) clearCalibResult() {
	s.calibMu.Lock()
	defer s.calibMu.Unlock()
	s.calib = CalibResult{}
}

func (s *store) screen() Screen {
	s.screenMu.Lock()
	defer s.screenMu.Unlock()
	return s.scr
}

func (s *store) setScreen(screen Screen) {
	s.screenMu.Lock()
	defer s.screenMu.Unlock()
	s.scr = screen
}

// reset zeroes every snapshot; called when a new connection is established.
func (s *store) reset() {
	s.setServerState(ServerState{})
	s.setFrame(GazeData{})
	s.clearCalibResult()
	s.setScreen(Screen{})
}
