// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ggcanvas implements the ggrender Canvas interface on top of a
// gg drawing context, so the renderer's output lands in gg's CPU/GPU
// pipeline. Create one Canvas per window and hand it to ggrender.New.
package ggcanvas
