package ggrender

// SurfaceContext is the window-system surface the backend renders into.
// Implementations wrap whatever the host windowing layer provides: an OpenGL
// context that must be made current before use, or a surface whose currency
// is a no-op because the underlying API has none.
//
// MakeCurrent and MakeNotCurrent bracket every frame; between the two the
// backend owns the surface exclusively. SwapBuffers may only be called while
// current. Size reports the drawable size in physical pixels, ScaleFactor
// the ratio of physical to logical pixels.
type SurfaceContext interface {
	MakeCurrent() error
	MakeNotCurrent() error
	SwapBuffers() error
	Size() (width, height int)
	ScaleFactor() float64
}

// ContextHolder enforces the exclusive current/not-current handoff of a
// SurfaceContext. At any moment the surface is either parked in the holder
// or checked out through exactly one ActiveContext; trying to hold it twice,
// or to return a token the holder did not issue, is a programming error and
// panics.
type ContextHolder struct {
	surface SurfaceContext
	current bool
}

// NewContextHolder wraps surface in the not-current state.
func NewContextHolder(surface SurfaceContext) *ContextHolder {
	return &ContextHolder{surface: surface}
}

// Acquire makes the surface current and hands out the token for it.
func (h *ContextHolder) Acquire() (*ActiveContext, error) {
	if h.current {
		panic("ggrender: GPU context acquired while already current")
	}
	if err := h.surface.MakeCurrent(); err != nil {
		return nil, err
	}
	h.current = true
	return &ActiveContext{holder: h, surface: h.surface}, nil
}

// Release makes the surface not current again and invalidates the token.
func (h *ContextHolder) Release(active *ActiveContext) error {
	if active == nil || active.holder != h {
		panic("ggrender: released a context this holder did not issue")
	}
	if active.released {
		panic("ggrender: GPU context released twice")
	}
	if !h.current {
		panic("ggrender: GPU context released while not current")
	}
	active.released = true
	h.current = false
	return h.surface.MakeNotCurrent()
}

// ActiveContext is the proof that the surface is current. It is issued by
// Acquire and consumed by Release; operations that require currency take it
// as a parameter or live on it.
type ActiveContext struct {
	holder   *ContextHolder
	surface  SurfaceContext
	released bool
}

// SwapBuffers presents the rendered frame.
func (a *ActiveContext) SwapBuffers() error {
	if a.released {
		panic("ggrender: SwapBuffers on a released context")
	}
	return a.surface.SwapBuffers()
}

// Surface returns the underlying surface.
func (a *ActiveContext) Surface() SurfaceContext { return a.surface }

// ExclusiveSurface adapts host windowing callbacks (GLFW, SDL, EGL
// bindings) to the SurfaceContext interface for desktop GL-style contexts
// with a real current/not-current distinction. Current, NotCurrent and
// Present may be nil when the host has no such operation.
type ExclusiveSurface struct {
	Current    func() error
	NotCurrent func() error
	Present    func() error
	SizeFn     func() (width, height int)
	Scale      float64
}

func (s *ExclusiveSurface) MakeCurrent() error {
	if s.Current == nil {
		return nil
	}
	return s.Current()
}

func (s *ExclusiveSurface) MakeNotCurrent() error {
	if s.NotCurrent == nil {
		return nil
	}
	return s.NotCurrent()
}

func (s *ExclusiveSurface) SwapBuffers() error {
	if s.Present == nil {
		return nil
	}
	return s.Present()
}

func (s *ExclusiveSurface) Size() (int, int) {
	if s.SizeFn == nil {
		return 0, 0
	}
	return s.SizeFn()
}

func (s *ExclusiveSurface) ScaleFactor() float64 {
	if s.Scale <= 0 {
		return 1
	}
	return s.Scale
}

// PersistentSurface is a SurfaceContext for APIs without a currency notion.
// MakeCurrent and MakeNotCurrent are no-ops; presentation is delegated to
// the present callback, which may be nil when the canvas presents on flush.
type PersistentSurface struct {
	width, height int
	scale         float64
	present       func() error
}

// NewPersistentSurface returns a surface of the given physical size. A zero
// or negative scale is taken as 1.
func NewPersistentSurface(width, height int, scale float64, present func() error) *PersistentSurface {
	if scale <= 0 {
		scale = 1
	}
	return &PersistentSurface{width: width, height: height, scale: scale, present: present}
}

// SetSize updates the drawable size after a window resize.
func (s *PersistentSurface) SetSize(width, height int) {
	s.width, s.height = width, height
}

func (s *PersistentSurface) MakeCurrent() error    { return nil }
func (s *PersistentSurface) MakeNotCurrent() error { return nil }

func (s *PersistentSurface) SwapBuffers() error {
	if s.present == nil {
		return nil
	}
	return s.present()
}

func (s *PersistentSurface) Size() (int, int)     { return s.width, s.height }
func (s *PersistentSurface) ScaleFactor() float64 { return s.scale }
