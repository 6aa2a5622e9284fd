// Package gazetribe provides a Go client for EyeTribe-style gaze tracking
// servers.
//
// The server speaks a line-oriented JSON protocol over TCP (port 6555 by
// default): clients send requests, the server answers with correlated
// replies and additionally pushes gaze frames and payload-less change
// notifications at any time. The client hides that asynchrony behind a
// typed API: synchronous calls for control operations, listener interfaces
// and a pull-based [FrameStream] for the data that streams in, and
// snapshots of the last known server state, screen geometry, gaze frame,
// and calibration result.
//
// # Thread Safety
//
// [Client] is safe for concurrent use by multiple goroutines. Listener
// callbacks run on the client's receive goroutine in registration order and
// must not block.
//
// # Basic Usage
//
//	ctx := context.Background()
//
//	client := gazetribe.New()
//	if err := client.Connect(ctx, gazetribe.DefaultAddr); err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Disconnect()
//
//	frames := client.Frames(0)
//	defer frames.Close()
//
//	for frame, err := range frames.Iter(ctx) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if frame.Tracking(gazetribe.StateTrackingGaze) {
//	        fmt.Printf("gaze at %.0f,%.0f\n", frame.Avg.X, frame.Avg.Y)
//	    }
//	}
//
// # Calibration
//
// A calibration run is driven point by point: [Client.StartCalibration]
// with the number of points, then for each point
// [Client.StartCalibrationPoint] and [Client.EndCalibrationPoint] while the
// user fixates it. Registered [CalibrationProcessHandler] values receive
// progress updates and the final result.
//
// # Connection Loss
//
// The client does not reconnect. When the transport drops, the session
// transitions to disconnected and [ConnectionStateListener] values are
// notified with false; call [Client.Connect] again to establish a new
// session.
//
// # Observability
//
// Use [WithLogger], [WithOnSend], and [WithOnReceive] to add logging and
// monitoring to the client.
package gazetribe
