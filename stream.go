package gazetribe

import (
	"context"
	"errors"
	"iter"
	"sync"
)

// FrameStream delivers gaze frames in arrival order as a pull-based
// alternative to a GazeListener callback. It should be consumed by a single
// goroutine.
type FrameStream struct {
	client *Client
	frames chan GazeData
	done   chan struct{}

	closeOnce sync.Once
}

// Frames registers an internal gaze listener and returns a stream of
// frames. When the buffer is full new frames are dropped rather than
// stalling the dispatcher, so size the buffer for the consumer's pace.
// A buffer of 0 or less selects a default of 64.
//
// Close the stream to unregister it from the client.
func (c *Client) Frames(buffer int) *FrameStream {
	if buffer <= 0 {
		buffer = 64
	}
	s := &FrameStream{
		client: c,
		frames: make(chan GazeData, buffer),
		done:   make(chan struct{}),
	}
	c.AddGazeListener(s)
	return s
}

// OnGazeData implements GazeListener. Frames are dropped rather than
// blocking the dispatch goroutine when the buffer is full.
func (s *FrameStream) OnGazeData(data GazeData) {
	select {
	case <-s.done:
	case s.frames <- data:
	default:
	}
}

// Next blocks until the next frame arrives, the context is done, or the
// stream is closed.
func (s *FrameStream) Next(ctx context.Context) (GazeData, error) {
	select {
	case <-ctx.Done():
		return GazeData{}, ctx.Err()
	case frame := <-s.frames:
		return frame, nil
	case <-s.done:
		// Drain anything buffered before reporting closure.
		select {
		case frame := <-s.frames:
			return frame, nil
		default:
		}
		return GazeData{}, ErrClosed
	}
}

// Iter returns an iterator over frames. It ends cleanly when the stream is
// closed; a context error is yielded before the iterator stops.
func (s *FrameStream) Iter(ctx context.Context) iter.Seq2[GazeData, error] {
	return func(yield func(GazeData, error) bool) {
		for {
			frame, err := s.Next(ctx)
			if err != nil {
				if errors.Is(err, ErrClosed) {
					return
				}
				yield(GazeData{}, err)
				return
			}
			if !yield(frame, nil) {
				return
			}
		}
	}
}

// Close unregisters the stream from the client. It is safe to call more
// than once.
func (s *FrameStream) Close() {
	s.closeOnce.Do(func() {
		s.client.RemoveGazeListener(s)
		close(s.done)
	})
}
