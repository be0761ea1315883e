package render

import (
	"math"

	vkerr "github.com/matzehuels/vankamp/pkg/errors"
	"github.com/matzehuels/vankamp/pkg/geom"
	"github.com/matzehuels/vankamp/pkg/planar"
)

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 800

	// DefaultMargin is the default padding around the drawing in pixels.
	DefaultMargin = 40

	// DefaultScale is the default PNG resolution multiplier.
	DefaultScale = 2.0

	vertexRadius = 4
)

// Options controls frame size and decoration.
//
// A zero Width or Height falls back to the 800px default. A zero Margin is
// taken literally and draws edge to edge; start from [DefaultOptions] for the
// 40px padding.
type Options struct {
	Width  int
	Height int
	Margin int

	// Labels draws vertex indices next to each vertex.
	Labels bool

	// FillCells shades each cell with a palette color.
	FillCells bool

	// Title is written into the SVG <title> element when non-empty.
	Title string
}

// DefaultOptions returns an 800x800 frame with cell shading and no labels.
func DefaultOptions() Options {
	return Options{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Margin:    DefaultMargin,
		FillCells: true,
	}
}

func (o *Options) setDefaults() {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Margin < 0 {
		o.Margin = 0
	}
}

// frame maps layout coordinates to pixel coordinates.
type frame struct {
	minX, maxY float64
	scale      float64
	offX, offY float64
}

func newFrame(pos []geom.Point, opts Options) (frame, error) {
	if len(pos) == 0 {
		return frame{}, vkerr.New(vkerr.ErrCodeInvalidInput, "layout has no vertices")
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pos {
		if !geom.IsFinite(p) {
			return frame{}, vkerr.New(vkerr.ErrCodeInvalidInput, "non-finite vertex position %v", p)
		}
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	innerW := float64(opts.Width - 2*opts.Margin)
	innerH := float64(opts.Height - 2*opts.Margin)
	if innerW <= 0 || innerH <= 0 {
		return frame{}, vkerr.New(vkerr.ErrCodeInvalidConfig,
			"margin %d leaves no room in a %dx%d frame", opts.Margin, opts.Width, opts.Height)
	}

	dx, dy := maxX-minX, maxY-minY
	scale := math.Inf(1)
	if dx > 0 {
		scale = innerW / dx
	}
	if dy > 0 {
		scale = math.Min(scale, innerH/dy)
	}
	if math.IsInf(scale, 1) {
		scale = 1
	}

	return frame{
		minX:  minX,
		maxY:  maxY,
		scale: scale,
		offX:  float64(opts.Margin) + (innerW-dx*scale)/2,
		offY:  float64(opts.Margin) + (innerH-dy*scale)/2,
	}, nil
}

// point returns pixel coordinates with y pointing down.
func (f frame) point(p geom.Point) (float64, float64) {
	return f.offX + (p.X-f.minX)*f.scale, f.offY + (f.maxY-p.Y)*f.scale
}

func (f frame) pixel(p geom.Point) (int, int) {
	x, y := f.point(p)
	return int(math.Round(x)), int(math.Round(y))
}

// crossingEdges returns the edges of l that cross at least one other edge.
func crossingEdges(l *planar.Layout) map[planar.Edge]bool {
	out := make(map[planar.Edge]bool)
	for _, e := range l.Graph().Edges() {
		if l.EdgeCrossings(e) > 0 {
			out[e] = true
		}
	}
	return out
}
