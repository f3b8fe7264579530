//////////////////////////////////////////////////////////////////////////////
//
// Frame payload factories for the simulated camera
//
// Copyright 2026 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

// Package payload generates raw frame payloads for the capture pipeline.
// Payloads are packed RGB, 3 bytes per pixel, row-major.
package payload

import (
	"math/rand"
	"time"
)

// RandomRGB fills every frame with random pixel noise, mimicking a sensor
// with no lens cap. Not safe for concurrent use: a factory belongs to the
// single producer that calls it.
type RandomRGB struct {
	rnd *rand.Rand
}

func NewRandomRGB() *RandomRGB {
	return &RandomRGB{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (g *RandomRGB) Generate(width, height int) []byte {
	data := make([]byte, width*height*3)
	g.rnd.Read(data)
	return data
}

// SolidRGB emits the same flat color every frame. Generation cost is one
// allocation plus a fill, which makes it the factory of choice for tests
// and dry runs where payload content is irrelevant.
type SolidRGB struct {
	R, G, B byte
}

func (g *SolidRGB) Generate(width, height int) []byte {
	data := make([]byte, width*height*3)
	for i := 0; i < len(data); i += 3 {
		data[i] = g.R
		data[i+1] = g.G
		data[i+2] = g.B
	}
	return data
}
