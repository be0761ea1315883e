package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxVertexID is the largest accepted vertex id. Graphs are stored densely
// over [0, max id], so the bound also caps allocation.
const MaxVertexID = 1<<24 - 1

// ValidateEdge validates the endpoints of one undirected edge.
// Vertex ids must lie in [0, MaxVertexID] and an edge must join two distinct
// vertices.
func ValidateEdge(u, v int) error {
	if u < 0 || v < 0 {
		return New(ErrCodeMalformedInput, "negative vertex id in edge (%d, %d)", u, v)
	}
	if u > MaxVertexID || v > MaxVertexID {
		return New(ErrCodeMalformedInput, "vertex id in edge (%d, %d) exceeds %d", u, v, MaxVertexID)
	}
	if u == v {
		return New(ErrCodeMalformedInput, "self-loop on vertex %d", u)
	}
	return nil
}

// ValidateThresholds validates the acceptable edge-length window.
//
// Validation rules:
//   - Both bounds must be finite
//   - The minimum must be positive (it is a penalty denominator)
//   - The maximum must not be below the minimum
func ValidateThresholds(minEdge, maxEdge float64) error {
	if math.IsNaN(minEdge) || math.IsInf(minEdge, 0) || math.IsNaN(maxEdge) || math.IsInf(maxEdge, 0) {
		return New(ErrCodeInvalidConfig, "edge thresholds must be finite")
	}
	if minEdge <= 0 {
		return New(ErrCodeInvalidConfig, "minimum edge threshold must be positive, got %g", minEdge)
	}
	if maxEdge < minEdge {
		return New(ErrCodeInvalidConfig, "maximum edge threshold %g is below minimum %g", maxEdge, minEdge)
	}
	return nil
}

// ValidatePath validates a user supplied file path.
// It rejects empty paths and paths containing null bytes or control characters.
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}
	return nil
}
