package ggrender

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"
)

// NormalWeight is the weight used when a FontRequest leaves Weight zero.
const NormalWeight = 400

// FontRequest names the font an item wants to render with. The zero value
// of each field means "unspecified": an empty Family matches any registered
// application font before falling back to the platform's sans-serif, a zero
// Weight means normal (400), and PixelSize is taken as-is.
type FontRequest struct {
	Family    string
	Weight    int
	PixelSize float64
}

func (r FontRequest) weight() int {
	if r.Weight == 0 {
		return NormalWeight
	}
	return r.Weight
}

// Font is a canvas-resident font handle. It stays valid for the lifetime of
// the backend that produced it; fonts are never evicted.
type Font struct {
	id     FontID
	canvas Canvas
}

// ID returns the canvas font handle.
func (f *Font) ID() FontID { return f.id }

// TextWidth measures text at the given pixel size.
func (f *Font) TextWidth(pixelSize float64, text string) float64 {
	return f.canvas.TextWidth(f.id, pixelSize, text)
}

// Height returns the line height (ascent plus descent plus line gap) at the
// given pixel size.
func (f *Font) Height(pixelSize float64) float64 {
	return f.canvas.FontHeight(f.id, pixelSize)
}

// OffsetForXPosition maps a horizontal offset within rendered text to a byte
// offset into text. Cursor mapping is not implemented yet; it always reports
// the start of the string.
func (f *Font) OffsetForXPosition(pixelSize float64, text string, x float64) int {
	return 0
}

type fontCacheKey struct {
	family string
	weight int
}

// applicationFont is one face registered from memory by the application.
type applicationFont struct {
	family string // lowercased
	weight int
	data   []byte
}

var (
	appFontsMu sync.RWMutex
	appFonts   []applicationFont
)

// RegisterFontFromMemory adds the faces of a font collection to the
// process-wide application font registry. Registered fonts take priority
// over system fonts when requests are resolved, across every backend in the
// process. The data must stay alive and unmodified for the process lifetime.
func RegisterFontFromMemory(data []byte) error {
	faces, err := font.ParseTTC(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("ggrender: register font: %w", err)
	}

	appFontsMu.Lock()
	defer appFontsMu.Unlock()
	for _, face := range faces {
		desc := face.Describe()
		appFonts = append(appFonts, applicationFont{
			family: strings.ToLower(desc.Family),
			weight: int(desc.Aspect.Weight),
			data:   data,
		})
	}
	return nil
}

// lookupApplicationFont returns the registered face closest in weight to the
// request, restricted to the requested family unless the family is empty.
func lookupApplicationFont(family string, weight int) ([]byte, bool) {
	family = strings.ToLower(family)

	appFontsMu.RLock()
	defer appFontsMu.RUnlock()

	var best *applicationFont
	for i := range appFonts {
		f := &appFonts[i]
		if family != "" && f.family != family {
			continue
		}
		if best == nil || weightDistance(f.weight, weight) < weightDistance(best.weight, weight) {
			best = f
		}
	}
	if best == nil {
		return nil, false
	}
	return best.data, true
}

func weightDistance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// fontLocation is a system font found on disk or, for fonts the scanner only
// has in memory, as raw bytes.
type fontLocation struct {
	path string
	data []byte
}

// systemFontLocator finds an installed font matching a family and weight.
type systemFontLocator interface {
	locate(family string, weight int) (fontLocation, error)
}

// fontscanLocator scans the platform font directories once, on first use,
// and answers queries from the resulting footprint index.
type fontscanLocator struct {
	cacheDir string

	once    sync.Once
	fonts   []fontscan.Footprint
	loadErr error
}

func (l *fontscanLocator) load() {
	l.fonts, l.loadErr = fontscan.SystemFonts(nil, l.cacheDir)
	if l.loadErr == nil {
		Logger().Debug("scanned system fonts", slog.Int("count", len(l.fonts)))
	}
}

// Families tried when the requested family is absent or the request leaves
// the family empty. Mirrors common platform sans-serif defaults.
var fallbackFamilies = []string{"dejavu sans", "noto sans", "liberation sans", "arial", "helvetica", "roboto"}

func (l *fontscanLocator) locate(family string, weight int) (fontLocation, error) {
	l.once.Do(l.load)
	if l.loadErr != nil {
		return fontLocation{}, fmt.Errorf("scan system fonts: %w", l.loadErr)
	}
	if len(l.fonts) == 0 {
		return fontLocation{}, fmt.Errorf("no system fonts found: %w", ErrFontUnavailable)
	}

	if family != "" {
		if fp, ok := matchFootprint(l.fonts, family, weight); ok {
			return fontLocation{path: fp.Location.File}, nil
		}
	}
	for _, fallback := range fallbackFamilies {
		if fp, ok := matchFootprint(l.fonts, fallback, weight); ok {
			return fontLocation{path: fp.Location.File}, nil
		}
	}
	// Last resort: any face, nearest weight.
	fp, _ := matchFootprint(l.fonts, "", weight)
	return fontLocation{path: fp.Location.File}, nil
}

// matchFootprint picks the footprint of the given family (any family when
// empty) whose weight is nearest the request.
func matchFootprint(fonts []fontscan.Footprint, family string, weight int) (fontscan.Footprint, bool) {
	family = strings.ToLower(family)

	best := -1
	for i := range fonts {
		if family != "" && strings.ToLower(string(fonts[i].Family)) != family {
			continue
		}
		if best < 0 || weightDistance(int(fonts[i].Aspect.Weight), weight) < weightDistance(int(fonts[best].Aspect.Weight), weight) {
			best = i
		}
	}
	if best < 0 {
		return fontscan.Footprint{}, false
	}
	return fonts[best], true
}

// fontCache resolves font requests to canvas fonts and memoizes the result
// per (family, weight). Entries live as long as the backend.
type fontCache struct {
	mu     sync.Mutex
	canvas Canvas
	fonts  map[fontCacheKey]*Font
	system systemFontLocator // nil when system fonts are disabled
}

func newFontCache(canvas Canvas, system systemFontLocator) *fontCache {
	return &fontCache{canvas: canvas, fonts: make(map[fontCacheKey]*Font), system: system}
}

// font returns the canvas font for the request, loading it on first use.
// Application fonts win over system fonts for the same family.
func (c *fontCache) font(req FontRequest) (*Font, error) {
	key := fontCacheKey{family: strings.ToLower(req.Family), weight: req.weight()}

	c.mu.Lock()
	defer c.mu.Unlock()

	if f, ok := c.fonts[key]; ok {
		return f, nil
	}

	id, err := c.loadLocked(key)
	if err != nil {
		return nil, err
	}
	f := &Font{id: id, canvas: c.canvas}
	c.fonts[key] = f
	return f, nil
}

func (c *fontCache) loadLocked(key fontCacheKey) (FontID, error) {
	if data, ok := lookupApplicationFont(key.family, key.weight); ok {
		id, err := c.canvas.AddFontMem(data)
		if err == nil {
			return id, nil
		}
		// A registered font the canvas cannot parse should not take the
		// whole request down; try the system instead.
		Logger().Warn("application font rejected by canvas",
			slog.String("family", key.family), slog.Any("error", err))
	}

	if c.system == nil {
		return 0, fmt.Errorf("ggrender: font %q weight %d: %w", key.family, key.weight, ErrFontUnavailable)
	}
	loc, err := c.system.locate(key.family, key.weight)
	if err != nil {
		return 0, fmt.Errorf("ggrender: font %q weight %d: %w", key.family, key.weight, err)
	}
	if loc.path != "" {
		return c.canvas.AddFontFile(loc.path)
	}
	return c.canvas.AddFontMem(loc.data)
}
