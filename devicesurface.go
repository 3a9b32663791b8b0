// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggrender

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// ErrNilProvider is returned by NewDeviceSurface when no device provider is
// supplied.
var ErrNilProvider = errors.New("ggrender: nil device provider")

// DeviceSurface adapts a shared GPU device to the SurfaceContext interface.
// WebGPU-style devices have no current/not-current notion, so currency is a
// no-op; the handoff discipline of ContextHolder still applies and keeps
// frame brackets balanced.
type DeviceSurface struct {
	provider gpucontext.DeviceProvider
	size     func() (int, int)
	present  func() error
	scale    float64
}

// NewDeviceSurface wraps provider as a render surface. size reports the
// drawable size in physical pixels; present pushes the finished frame to the
// swapchain and may be nil when the canvas presents on flush.
func NewDeviceSurface(provider gpucontext.DeviceProvider, size func() (int, int), present func() error, scale float64) (*DeviceSurface, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if size == nil {
		return nil, errors.New("ggrender: nil size callback")
	}
	if scale <= 0 {
		scale = 1
	}
	return &DeviceSurface{provider: provider, size: size, present: present, scale: scale}, nil
}

// Device returns the shared GPU device handle.
func (s *DeviceSurface) Device() any { return s.provider.Device() }

// Queue returns the shared GPU queue handle.
func (s *DeviceSurface) Queue() any { return s.provider.Queue() }

// SurfaceFormat returns the texture format frames are presented in.
func (s *DeviceSurface) SurfaceFormat() gputypes.TextureFormat {
	return s.provider.SurfaceFormat()
}

func (s *DeviceSurface) MakeCurrent() error    { return nil }
func (s *DeviceSurface) MakeNotCurrent() error { return nil }

func (s *DeviceSurface) SwapBuffers() error {
	if s.present == nil {
		return nil
	}
	return s.present()
}

func (s *DeviceSurface) Size() (int, int)     { return s.size() }
func (s *DeviceSurface) ScaleFactor() float64 { return s.scale }
