package ggrender

// Option configures a Backend at construction time.
type Option func(*options)

type options struct {
	decoder      ImageDecoder
	fontCacheDir string
	systemFonts  bool
	scaleFactor  float64
}

func defaultOptions() options {
	return options{
		decoder:     defaultDecoder,
		systemFonts: true,
	}
}

// WithImageDecoder replaces the built-in image decoder, for hosts that need
// extra formats or want to restrict the supported set.
func WithImageDecoder(decode ImageDecoder) Option {
	return func(o *options) { o.decoder = decode }
}

// WithFontCacheDir sets the directory the system font index is cached in.
// By default the platform's user cache directory is used.
func WithFontCacheDir(dir string) Option {
	return func(o *options) { o.fontCacheDir = dir }
}

// WithoutSystemFonts disables system font matching. Only fonts registered
// through RegisterFontFromMemory resolve; everything else fails with
// ErrFontUnavailable.
func WithoutSystemFonts() Option {
	return func(o *options) { o.systemFonts = false }
}

// WithScaleFactor overrides the scale factor reported by the surface.
func WithScaleFactor(scale float64) Option {
	return func(o *options) { o.scaleFactor = scale }
}
