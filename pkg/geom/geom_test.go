package geom

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestSegmentLength(t *testing.T) {
	tests := []struct {
		a, b Point
		want float64
	}{
		{Point{X: 0, Y: 0}, Point{X: 3, Y: 4}, 5},
		{Point{X: 1, Y: 1}, Point{X: 1, Y: 1}, 0},
		{Point{X: -1, Y: 0}, Point{X: 1, Y: 0}, 2},
	}

	for _, tt := range tests {
		if got := SegmentLength(tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("SegmentLength(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestOrientation(t *testing.T) {
	a, b := Point{X: 0, Y: 0}, Point{X: 1, Y: 0}

	if !Orientation(a, b, Point{X: 0, Y: 1}) {
		t.Error("left turn should be counter-clockwise")
	}
	if Orientation(a, b, Point{X: 0, Y: -1}) {
		t.Error("right turn should not be counter-clockwise")
	}
	if Orientation(a, b, Point{X: 2, Y: 0}) {
		t.Error("collinear points should not be counter-clockwise")
	}
}

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d Point
		want       bool
	}{
		{
			name: "proper crossing",
			a:    Point{X: 0, Y: 0}, b: Point{X: 2, Y: 2},
			c: Point{X: 0, Y: 2}, d: Point{X: 2, Y: 0},
			want: true,
		},
		{
			name: "disjoint",
			a:    Point{X: 0, Y: 0}, b: Point{X: 1, Y: 0},
			c: Point{X: 0, Y: 1}, d: Point{X: 1, Y: 1},
			want: false,
		},
		{
			name: "would cross if extended",
			a:    Point{X: 0, Y: 0}, b: Point{X: 1, Y: 1},
			c: Point{X: 3, Y: 0}, d: Point{X: 2, Y: 1},
			want: false,
		},
		{
			name: "collinear overlap is not detected",
			a:    Point{X: 0, Y: 0}, b: Point{X: 2, Y: 0},
			c: Point{X: 1, Y: 0}, d: Point{X: 3, Y: 0},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentsIntersect(tt.a, tt.b, tt.c, tt.d); got != tt.want {
				t.Errorf("SegmentsIntersect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCentroid(t *testing.T) {
	got := Centroid([]Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}})
	if got != (Point{X: 1, Y: 1}) {
		t.Errorf("Centroid() = %v, want (1, 1)", got)
	}
	if got := Centroid(nil); got != (Point{}) {
		t.Errorf("Centroid(nil) = %v, want origin", got)
	}
}

func TestSignedArea(t *testing.T) {
	ccw := []Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	if got := SignedArea(ccw); got != 1 {
		t.Errorf("SignedArea(ccw square) = %v, want 1", got)
	}
	cw := []Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}
	if got := SignedArea(cw); got != -1 {
		t.Errorf("SignedArea(cw square) = %v, want -1", got)
	}
}

func TestClockwiseAngle(t *testing.T) {
	east, north, west := Point{X: 1}, Point{Y: 1}, Point{X: -1}

	tests := []struct {
		from, to Point
		want     float64
	}{
		{north, east, math.Pi / 2},
		{east, north, 3 * math.Pi / 2},
		{east, west, math.Pi},
		{east, east, 0},
	}

	for _, tt := range tests {
		got := ClockwiseAngle(tt.from, tt.to)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("ClockwiseAngle(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
		if got < 0 || got >= 2*math.Pi {
			t.Errorf("ClockwiseAngle(%v, %v) = %v, outside [0, 2π)", tt.from, tt.to, got)
		}
	}
}

func TestIntersectionProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	coord := gen.Float64Range(-10, 10)

	properties.Property("symmetric under endpoint swap", prop.ForAll(
		func(ax, ay, bx, by, cx, cy, dx, dy float64) bool {
			a, b := Point{X: ax, Y: ay}, Point{X: bx, Y: by}
			c, d := Point{X: cx, Y: cy}, Point{X: dx, Y: dy}
			return SegmentsIntersect(a, b, c, d) == SegmentsIntersect(b, a, d, c)
		},
		coord, coord, coord, coord, coord, coord, coord, coord,
	))

	properties.Property("segments sharing an endpoint never cross", prop.ForAll(
		func(ax, ay, bx, by, cx, cy float64) bool {
			a, b, c := Point{X: ax, Y: ay}, Point{X: bx, Y: by}, Point{X: cx, Y: cy}
			return !SegmentsIntersect(a, b, a, c)
		},
		coord, coord, coord, coord, coord, coord,
	))

	properties.Property("clockwise angle within [0, 2π)", prop.ForAll(
		func(ax, ay, bx, by float64) bool {
			got := ClockwiseAngle(Point{X: ax, Y: ay}, Point{X: bx, Y: by})
			return got >= 0 && got < 2*math.Pi
		},
		coord, coord, coord, coord,
	))

	properties.TestingRun(t)
}
