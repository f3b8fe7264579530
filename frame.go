//////////////////////////////////////////////////////////////////////////////
//
// Frame is the unit of work flowing through the capture pipeline
//
// Copyright 2026 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package camsim

import "time"

// A Frame is one captured image, identified by a monotonically increasing
// sequence number assigned by the producer. Frames are never aliased: at any
// moment a frame is owned by exactly one of the producer, the queue, or the
// consumer that popped it, and ownership passes along with the value. The
// payload bytes must not be modified once the frame has been pushed.
type Frame struct {
	// Seq is the capture sequence number, starting at 0.
	Seq uint64

	// Data is the raw payload, produced by a PayloadFactory. Its format
	// (e.g. packed RGB) is a contract between factory and sink; the
	// pipeline itself never inspects it.
	Data []byte

	// CapturedAt is the wall-clock instant the payload was generated.
	CapturedAt time.Time
}
