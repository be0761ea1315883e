// Package graph provides the wire formats for graphs and drawings.
//
// This package sits at the serialization boundary between files and the
// in-memory types of package planar.
//
// # Edge Lists
//
// Graphs are read from plain text, one undirected edge per line:
//
//	# a square
//	0 1
//	1 2
//	2 3
//	3 0
//
// Tokens are separated by whitespace. Blank lines and lines starting with #
// are skipped. Vertex ids are non-negative integers; the graph has one more
// vertex than the largest id. Bad tokens, self-loops, and duplicate edges
// fail with MALFORMED_INPUT and the offending line number.
//
//	g, err := graph.ReadEdgeListFile("square.txt")
//
// # Layouts
//
// Drawings are stored as JSON:
//
//	{
//	  "run_id": "5f0c...",
//	  "nodes": [{"id": 0, "x": 0, "y": 0}, ...],
//	  "edges": [{"from": 0, "to": 1}, ...],
//	  "cells": [[0, 1, 2, 3]],
//	  "stats": {"passes": 10, ...}
//	}
//
// A layout file with only nodes is also accepted as an initial drawing:
// [Layout.Positions] returns the coordinates indexed by vertex.
//
//	out := graph.Export(layout, cells)
//	err := graph.WriteLayoutFile(out, "refined.json")
//
// # Connectivity
//
// [Components] splits a graph into connected components using gonum's
// graph algorithms; the optimizer works per drawing, but callers use this to
// warn about disconnected input.
package graph
