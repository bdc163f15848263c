package font

import (
	"fmt"
	"sort"
)

// GraphicsStateFont is the /Font entry of an ExtGState resource: a font
// and the size it selects.
type GraphicsStateFont struct {
	Font Resource
	Size float64
}

// Cache holds the decoding strategies of one page, keyed by resource name.
// It is built once before the page's operators are interpreted and only
// read afterwards.
type Cache struct {
	fonts  map[string]*Info
	states map[string]GraphicsStateFont
}

// NewCache builds a strategy for every font in fonts and for every font
// selected through an ExtGState in states. Fonts reached through a graphics
// state are stored under their own declared name, and only when the font
// resource dictionary does not already provide that name.
//
// Fonts that fail to build are left out of the cache and their errors are
// returned for the caller to report.
func NewCache(fonts map[string]Resource, states map[string]GraphicsStateFont) (*Cache, []error) {
	c := &Cache{
		fonts:  make(map[string]*Info, len(fonts)),
		states: states,
	}

	var errs []error
	add := func(name string, res Resource) {
		info, err := New(res)
		if err != nil {
			errs = append(errs, fmt.Errorf("font /%s: %w", name, err))
			return
		}
		c.fonts[name] = info
	}

	// Map iteration order is random; sorting keeps warnings stable.
	for _, name := range sortedKeys(fonts) {
		add(name, fonts[name])
	}
	for _, stateName := range sortedKeys(states) {
		res := states[stateName].Font
		if res.Name == "" {
			continue
		}
		if _, ok := c.fonts[res.Name]; ok {
			continue
		}
		add(res.Name, res)
	}

	return c, errs
}

// Font returns the strategy for a /Tf font name. Unknown names decode as
// raw bytes.
func (c *Cache) Font(name string) *Info {
	if c != nil {
		if info, ok := c.fonts[name]; ok {
			return info
		}
	}
	return RawBytes
}

// GraphicsStateFont resolves a /gs resource name to the font and size it
// selects. ok is false when the state is unknown or sets no font.
func (c *Cache) GraphicsStateFont(name string) (info *Info, size float64, ok bool) {
	if c == nil {
		return nil, 0, false
	}
	gs, found := c.states[name]
	if !found {
		return nil, 0, false
	}
	if gs.Font.Name == "" {
		return RawBytes, gs.Size, true
	}
	return c.Font(gs.Font.Name), gs.Size, true
}

// Len returns the number of cached fonts.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.fonts)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
