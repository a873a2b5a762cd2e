package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

const fallbackAccent = "#64748b"

type discCacheKey struct {
	color string
	size  int
}

var (
	discCache   = map[discCacheKey]image.Image{}
	discCacheMu sync.RWMutex
)

// tokenSVG is the round token from the prototype: accent fill, light ring.
func tokenSVG(accent string) []byte {
	return []byte(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100" width="100" height="100">`+
			`<circle cx="50" cy="52" r="42" fill="#0f172a" fill-opacity="0.25"/>`+
			`<circle cx="50" cy="50" r="42" fill="%s" stroke="#f8fafc" stroke-width="4"/>`+
			`</svg>`, accent))
}

// renderDisc rasterises the token disc for accent at size x size pixels.
func renderDisc(accent string, size int) (image.Image, error) {
	accent = normalizeHex(accent)
	key := discCacheKey{color: accent, size: size}

	discCacheMu.RLock()
	if img, ok := discCache[key]; ok {
		discCacheMu.RUnlock()
		return img, nil
	}
	discCacheMu.RUnlock()

	icon, err := oksvg.ReadIconStream(bytes.NewReader(sanitizeSVG(tokenSVG(accent))))
	if err != nil {
		return nil, fmt.Errorf("parse token svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Transparent), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	discCacheMu.Lock()
	discCache[key] = img
	discCacheMu.Unlock()
	return img, nil
}

// sanitizeSVG fixes style spellings oksvg does not accept.
func sanitizeSVG(svg []byte) []byte {
	fixed := bytes.ReplaceAll(svg, []byte("fill: #"), []byte("fill:#"))
	fixed = bytes.ReplaceAll(fixed, []byte("stroke: #"), []byte("stroke:#"))
	return fixed
}

// normalizeHex returns a lowercase #rrggbb value, or the fallback accent.
func normalizeHex(raw string) string {
	if _, ok := parseHex(raw); !ok {
		return fallbackAccent
	}
	s := strings.ToLower(strings.TrimSpace(raw))
	if len(s) == 4 {
		s = "#" + string([]byte{s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	return s
}

// parseHex accepts #rgb and #rrggbb.
func parseHex(raw string) (color.RGBA, bool) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 || !strings.HasPrefix(strings.TrimSpace(raw), "#") {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
}

func mustHex(raw string, fallback color.RGBA) color.RGBA {
	if c, ok := parseHex(raw); ok {
		return c
	}
	return fallback
}
