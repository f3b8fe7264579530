//////////////////////////////////////////////////////////////////////////////
//
// External collaborator interfaces: payload generation and persistence
//
// Copyright 2026 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package camsim

// A PayloadFactory produces raw frame payloads. The pipeline measures its
// latency but otherwise treats the payload as opaque bytes.
type PayloadFactory interface {
	Generate(width, height int) []byte
}

// A FrameSink persists one frame. Save is called outside the queue lock and
// may be slow; its errors are recoverable — the consumer counts and logs
// them and keeps draining.
type FrameSink interface {
	Save(f Frame) error
}
