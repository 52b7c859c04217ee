package main

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	faviconGlyph      = "J"
	faviconSize       = 64
	faviconBackground = "#111827"
	faviconForeground = "#a5b4fc"
	faviconFontSize   = 48

	// The glyph is centered on this point, middle baseline.
	faviconCenterX = 32
	faviconCenterY = 34
)

// ErrFaviconUnavailable means no drawing surface could be prepared for the icon.
var ErrFaviconUnavailable = errors.New("favicon drawing surface unavailable")

// Favicon renders the site icon: one glyph on a solid square, PNG encoded.
// Rendering happens at most once per value; every accessor shares the result.
type Favicon struct {
	glyph      string
	size       int
	background string
	foreground string
	fontData   []byte

	once    sync.Once
	renders atomic.Int32
	png     []byte
	dataURI string
	err     error
}

func NewFavicon() *Favicon {
	return newFavicon(gobold.TTF)
}

func newFavicon(fontData []byte) *Favicon {
	return &Favicon{
		glyph:      faviconGlyph,
		size:       faviconSize,
		background: faviconBackground,
		foreground: faviconForeground,
		fontData:   fontData,
	}
}

// Render draws and encodes the icon on first use and returns the cached PNG afterwards.
func (f *Favicon) Render() ([]byte, error) {
	f.once.Do(func() {
		f.renders.Add(1)
		f.png, f.err = f.draw()
		if f.err == nil {
			f.dataURI = "data:image/png;base64," + base64.StdEncoding.EncodeToString(f.png)
		}
	})
	return f.png, f.err
}

// DataURI is the icon as an inline image, or "" when it could not be drawn.
func (f *Favicon) DataURI() string {
	if _, err := f.Render(); err != nil {
		return ""
	}
	return f.dataURI
}

// renderCount reports how many times the icon was actually drawn.
func (f *Favicon) renderCount() int {
	return int(f.renders.Load())
}

func (f *Favicon) draw() ([]byte, error) {
	bg, err := parseHexColor(f.background)
	if err != nil {
		return nil, err
	}
	fg, err := parseHexColor(f.foreground)
	if err != nil {
		return nil, err
	}
	face, err := f.face()
	if err != nil {
		return nil, err
	}
	defer face.Close()

	img := image.NewRGBA(image.Rect(0, 0, f.size, f.size))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
	}
	m := face.Metrics()
	width := d.MeasureString(f.glyph)
	d.Dot = fixed.Point26_6{
		X: fixed.I(faviconCenterX) - width/2,
		Y: fixed.I(faviconCenterY) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(f.glyph)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode favicon: %w", err)
	}
	return buf.Bytes(), nil
}

func (f *Favicon) face() (font.Face, error) {
	ttf, err := opentype.Parse(f.fontData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFaviconUnavailable, err)
	}
	face, err := opentype.NewFace(ttf, &opentype.FaceOptions{
		Size:    faviconFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFaviconUnavailable, err)
	}
	return face, nil
}

// parseHexColor accepts #rrggbb.
func parseHexColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
