package render

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"image/png"
	"testing"

	"github.com/park285/westeros-chess/pkg/boarddto"
)

func sampleView() boarddto.BoardView {
	return boarddto.BoardView{
		TurnText: "White to move",
		Style:    boarddto.BoardStyle{LightSquare: "#f1f5f9", DarkSquare: "#94a3b8"},
		Pieces: []boarddto.Piece{
			{Square: "e1", Code: "wK", Token: boarddto.Token{Label: "JS", Background: "#1e293b"}},
			{Square: "g8", Code: "bN", Token: boarddto.Token{Background: "#6b7280"}},
			{Square: "zz", Code: "wP", Token: boarddto.Token{Label: "X", Background: "#166534"}},
		},
		LastFrom: "e2",
		LastTo:   "e4",
	}
}

func TestRenderPNG_Dimensions(t *testing.T) {
	r, err := NewPNGRenderer(32)
	if err != nil {
		t.Fatalf("NewPNGRenderer: %v", err)
	}
	data, err := r.RenderPNG(context.Background(), sampleView(), Options{})
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 32*8+32 || b.Dy() != 32*8+40+16 {
		t.Fatalf("bounds = %v", b)
	}
}

func TestRenderPNG_FlipDiffers(t *testing.T) {
	r, _ := NewPNGRenderer(0)
	a, err := r.RenderPNG(context.Background(), sampleView(), Options{})
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	b, err := r.RenderPNG(context.Background(), sampleView(), Options{Flip: true, Caption: "Black view"})
	if err != nil {
		t.Fatalf("RenderPNG flipped: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatalf("flipped render identical")
	}
}

func TestRenderPNG_TokenColor(t *testing.T) {
	r, _ := NewPNGRenderer(40)
	data, err := r.RenderPNG(context.Background(), boarddto.BoardView{
		Pieces: []boarddto.Piece{{Square: "a1", Token: boarddto.Token{Background: "#ff0000"}}},
	}, Options{})
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, _ := png.Decode(bytes.NewReader(data))
	// a1 occupies the bottom-left square; sample near the top of the disc
	x := 20 + 20
	y := 50 + 7*40 + 12
	c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	if c.R < 200 || c.G > 60 || c.B > 60 {
		t.Fatalf("expected red token pixel at (%d,%d), got %+v", x, y, c)
	}
}

func TestRenderPNG_Canceled(t *testing.T) {
	r, _ := NewPNGRenderer(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.RenderPNG(ctx, sampleView(), Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestNewPNGRenderer_Range(t *testing.T) {
	for _, size := range []int{MinSquareSize - 1, MaxSquareSize + 1} {
		if _, err := NewPNGRenderer(size); !errors.Is(err, ErrSquareSize) {
			t.Fatalf("size %d: err = %v", size, err)
		}
	}
}

func TestParseHex(t *testing.T) {
	if c, ok := parseHex("#1e293b"); !ok || c != (color.RGBA{0x1e, 0x29, 0x3b, 255}) {
		t.Fatalf("parseHex = %v %v", c, ok)
	}
	if c, ok := parseHex("#fff"); !ok || c != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("short hex = %v %v", c, ok)
	}
	for _, bad := range []string{"", "1e293b", "#12345", "#gggggg"} {
		if _, ok := parseHex(bad); ok {
			t.Fatalf("parseHex(%q) accepted", bad)
		}
	}
	if normalizeHex("nope") != fallbackAccent || normalizeHex("#ABC") != "#aabbcc" {
		t.Fatalf("normalizeHex broken")
	}
}

func TestRenderDisc_Cached(t *testing.T) {
	a, err := renderDisc("#166534", 30)
	if err != nil {
		t.Fatalf("renderDisc: %v", err)
	}
	b, _ := renderDisc("#166534", 30)
	if a != b {
		t.Fatalf("disc not cached")
	}
}
