package graph

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	vkerr "github.com/matzehuels/vankamp/pkg/errors"
	"github.com/matzehuels/vankamp/pkg/planar"
)

// ReadEdgeListFile reads an edge list from path.
func ReadEdgeListFile(path string) (*planar.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, vkerr.Wrap(vkerr.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadEdgeList(f)
}

// ReadEdgeList parses an edge list. Edges keep their line order.
func ReadEdgeList(r io.Reader) (*planar.Graph, error) {
	var edges []planar.Edge
	seen := make(map[planar.Edge]int)

	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, vkerr.New(vkerr.ErrCodeMalformedInput, "line %d: expected 2 vertex ids, got %d tokens", line, len(fields))
		}
		u, err := parseVertex(fields[0])
		if err != nil {
			return nil, vkerr.New(vkerr.ErrCodeMalformedInput, "line %d: %v", line, err)
		}
		v, err := parseVertex(fields[1])
		if err != nil {
			return nil, vkerr.New(vkerr.ErrCodeMalformedInput, "line %d: %v", line, err)
		}
		if err := vkerr.ValidateEdge(u, v); err != nil {
			return nil, vkerr.New(vkerr.ErrCodeMalformedInput, "line %d: %s", line, vkerr.UserMessage(err))
		}
		e := planar.Edge{From: u, To: v}
		if prev, dup := seen[e.Key()]; dup {
			return nil, vkerr.New(vkerr.ErrCodeMalformedInput, "line %d: edge (%d, %d) already listed on line %d", line, u, v, prev)
		}
		seen[e.Key()] = line
		edges = append(edges, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read edge list: %w", err)
	}
	if len(edges) == 0 {
		return nil, vkerr.New(vkerr.ErrCodeMalformedInput, "edge list is empty")
	}

	g, err := planar.FromEdges(edges)
	if err != nil {
		return nil, vkerr.Wrap(vkerr.ErrCodeMalformedInput, err, "build graph")
	}
	return g, nil
}

func parseVertex(tok string) (planar.Vertex, error) {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("invalid vertex id %q", tok)
	}
	return n, nil
}

// WriteEdgeList writes g in the format ReadEdgeList reads.
func WriteEdgeList(w io.Writer, g *planar.Graph) error {
	bw := bufio.NewWriter(w)
	for _, e := range g.Edges() {
		if _, err := fmt.Fprintf(bw, "%d %d\n", e.From, e.To); err != nil {
			return err
		}
	}
	return bw.Flush()
}
