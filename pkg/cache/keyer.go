package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"math"

	"github.com/matzehuels/vankamp/pkg/geom"
	"github.com/matzehuels/vankamp/pkg/planar"
)

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies a refined layout by its input and optimizer settings.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered artifact of a refined layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every setting that changes the refined layout.
type LayoutKeyOpts struct {
	Mode          string             `json:"mode"`
	Passes        int                `json:"passes"`
	Seed          uint64             `json:"seed"`
	MinEdge       float64            `json:"min_edge"`
	MaxEdge       float64            `json:"max_edge"`
	Nudge         float64            `json:"nudge"`
	Tolerance     float64            `json:"tolerance"`
	MaxIterations int                `json:"max_iterations"`
	Weights       map[string]float64 `json:"weights"`
}

// ArtifactKeyOpts holds every setting that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Margin    int     `json:"margin"`
	Labels    bool    `json:"labels"`
	FillCells bool    `json:"fill_cells"`
	Scale     float64 `json:"scale"`
}

// DefaultKeyer produces "layout:" and "artifact:" prefixed SHA-256 keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// InputHash hashes an edge list together with the initial vertex positions.
// Edge order is part of the hash because it determines where face tracing
// starts. Coordinates are hashed by their bit patterns, so positions that
// print identically but differ in the last bit get distinct keys.
func InputHash(edges []planar.Edge, pos []geom.Point) string {
	h := sha256.New()
	var buf [8]byte
	word := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	word(uint64(len(edges)))
	for _, e := range edges {
		word(uint64(e.From))
		word(uint64(e.To))
	}
	word(uint64(len(pos)))
	for _, p := range pos {
		word(math.Float64bits(p.X))
		word(math.Float64bits(p.Y))
	}
	return "input:" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey streams parts as JSON into a SHA-256 and returns "prefix:hex".
func hashKey(prefix string, parts ...any) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, p := range parts {
		_ = enc.Encode(p)
	}
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}
