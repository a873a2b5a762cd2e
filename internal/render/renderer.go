// Package render draws a board view as a PNG: coloured squares, one round
// character token per piece, coordinates and a small header.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/park285/westeros-chess/pkg/boarddto"
)

const (
	DefaultSquareSize = 72
	MinSquareSize     = 24
	MaxSquareSize     = 160
)

var ErrSquareSize = errors.New("render: square size out of range")

// Options controls a single render.
type Options struct {
	// Flip draws the board from black's side.
	Flip bool
	// Caption replaces the view's turn text in the header.
	Caption string
}

type BoardRenderer interface {
	RenderPNG(ctx context.Context, view boarddto.BoardView, opts Options) ([]byte, error)
}

type PNGRenderer struct {
	squareSize int
	face       font.Face
}

func NewPNGRenderer(squareSize int) (*PNGRenderer, error) {
	if squareSize == 0 {
		squareSize = DefaultSquareSize
	}
	if squareSize < MinSquareSize || squareSize > MaxSquareSize {
		return nil, fmt.Errorf("%w: %d", ErrSquareSize, squareSize)
	}
	return &PNGRenderer{squareSize: squareSize, face: basicfont.Face7x13}, nil
}

var _ BoardRenderer = (*PNGRenderer)(nil)

var (
	defaultLight        = color.RGBA{241, 245, 249, 255}
	defaultDark         = color.RGBA{148, 163, 184, 255}
	backgroundColor     = color.RGBA{226, 232, 240, 255}
	headerPanelColor    = color.NRGBA{R: 15, G: 23, B: 42, A: 245}
	headerShadowColor   = color.NRGBA{0, 0, 0, 50}
	headerTextColor     = color.NRGBA{R: 241, G: 245, B: 249, A: 255}
	tokenTextColor      = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	coordinateTextColor = color.NRGBA{R: 51, G: 65, B: 85, A: 255}
	lastMoveFill        = color.NRGBA{R: 250, G: 204, B: 21, A: 110}
	lastMoveArrow       = color.NRGBA{R: 30, G: 64, B: 175, A: 120}
)

func (r *PNGRenderer) RenderPNG(ctx context.Context, view boarddto.BoardView, opts Options) ([]byte, error) {
	sq := r.squareSize
	boardSize := sq * 8
	margin := sq / 2
	headerHeight := sq + sq/4

	totalWidth := boardSize + margin*2
	totalHeight := boardSize + headerHeight + margin
	origin := image.Point{X: margin, Y: headerHeight}
	g := geometry{origin: origin, size: sq, flip: opts.Flip}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	img := image.NewRGBA(image.Rect(0, 0, totalWidth, totalHeight))
	imagedraw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, imagedraw.Src)

	light := mustHex(view.Style.LightSquare, defaultLight)
	dark := mustHex(view.Style.DarkSquare, defaultDark)
	drawSquares(img, g, light, dark)
	drawLastMove(img, g, view.LastFrom, view.LastTo)

	if err := r.drawTokens(ctx, img, g, view.Pieces); err != nil {
		return nil, err
	}
	r.drawCoordinates(img, g)
	r.drawHeader(img, view, opts, image.Rect(origin.X, sq/4, origin.X+boardSize, headerHeight-sq/4))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// geometry maps board coordinates (file 0 = a, rank 0 = 1) to pixels.
type geometry struct {
	origin image.Point
	size   int
	flip   bool
}

func (g geometry) rect(file, rank int) image.Rectangle {
	col, row := file, 7-rank
	if g.flip {
		col, row = 7-file, rank
	}
	x := g.origin.X + col*g.size
	y := g.origin.Y + row*g.size
	return image.Rect(x, y, x+g.size, y+g.size)
}

func (g geometry) squareRect(name string) (image.Rectangle, bool) {
	file, rank, ok := parseSquare(name)
	if !ok {
		return image.Rectangle{}, false
	}
	return g.rect(file, rank), true
}

func parseSquare(name string) (file, rank int, ok bool) {
	s := strings.ToLower(strings.TrimSpace(name))
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return 0, 0, false
	}
	return int(s[0] - 'a'), int(s[1] - '1'), true
}

func drawSquares(dst *image.RGBA, g geometry, light, dark color.Color) {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			clr := light
			if (file+rank)%2 == 0 {
				clr = dark
			}
			imagedraw.Draw(dst, g.rect(file, rank), image.NewUniform(clr), image.Point{}, imagedraw.Src)
		}
	}
}

func drawLastMove(img *image.RGBA, g geometry, from, to string) {
	fromRect, okFrom := g.squareRect(from)
	toRect, okTo := g.squareRect(to)
	if !okFrom || !okTo {
		return
	}
	imagedraw.Draw(img, fromRect, image.NewUniform(lastMoveFill), image.Point{}, imagedraw.Over)
	imagedraw.Draw(img, toRect, image.NewUniform(lastMoveFill), image.Point{}, imagedraw.Over)
	drawArrow(img, center(fromRect), center(toRect), g.size, lastMoveArrow)
}

func (r *PNGRenderer) drawTokens(ctx context.Context, img *image.RGBA, g geometry, pieces []boarddto.Piece) error {
	inset := g.size / 10
	discSize := g.size - inset*2
	drawer := &font.Drawer{Dst: img, Face: r.face, Src: image.NewUniform(tokenTextColor)}
	ascent := r.face.Metrics().Ascent.Ceil()

	for _, p := range pieces {
		if err := ctx.Err(); err != nil {
			return err
		}
		rect, ok := g.squareRect(p.Square)
		if !ok {
			continue
		}
		disc, err := renderDisc(p.Token.Background, discSize)
		if err != nil {
			return err
		}
		at := rect.Min.Add(image.Pt(inset, inset))
		imagedraw.Draw(img, image.Rectangle{Min: at, Max: at.Add(image.Pt(discSize, discSize))}, disc, image.Point{}, imagedraw.Over)

		label := strings.TrimSpace(p.Token.Label)
		if label == "" {
			continue
		}
		c := center(rect)
		drawCenteredText(drawer, label, c.X, c.Y+ascent/2-1)
	}
	return nil
}

func (r *PNGRenderer) drawCoordinates(img *image.RGBA, g geometry) {
	drawer := &font.Drawer{Dst: img, Face: r.face, Src: image.NewUniform(coordinateTextColor)}
	ascent := r.face.Metrics().Ascent.Ceil()
	for i := 0; i < 8; i++ {
		rankRect := g.rect(0, i)
		if g.flip {
			rankRect = g.rect(7, i)
		}
		drawCenteredText(drawer, string(rune('1'+i)), g.origin.X-g.size/4, center(rankRect).Y+ascent/2)

		fileRect := g.rect(i, 0)
		if g.flip {
			fileRect = g.rect(i, 7)
		}
		drawCenteredText(drawer, string(rune('a'+i)), center(fileRect).X, g.origin.Y+8*g.size+ascent+2)
	}
}

func (r *PNGRenderer) drawHeader(img *image.RGBA, view boarddto.BoardView, opts Options, rect image.Rectangle) {
	text := strings.TrimSpace(opts.Caption)
	if text == "" {
		text = strings.TrimSpace(view.TurnText)
	}
	if text == "" {
		text = "Westeros Chess"
	}
	radius := rect.Dy() / 3
	drawRoundedPanel(img, rect.Add(image.Pt(0, 4)), radius, headerShadowColor)
	drawRoundedPanel(img, rect, radius, headerPanelColor)
	drawer := &font.Drawer{Dst: img, Face: r.face}
	text = truncateWithEllipsis(r.face, text, rect.Dx()-24)
	drawCenteredString(drawer, rect, text, headerTextColor)
}

func center(r image.Rectangle) image.Point {
	return image.Pt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)
}
