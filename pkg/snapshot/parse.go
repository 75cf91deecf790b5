package snapshot

import (
	"strconv"
	"strings"

	"github.com/matzehuels/structviz/pkg/errors"
)

// ParseArray decodes an array snapshot such as "[5,3,8]".
// Elements that are not integers are dropped.
func ParseArray(s string) Array {
	out := Array{}
	for _, tok := range splitTopLevel(unwrap(s)) {
		n, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

// ParseMatrix decodes a square matrix snapshot such as "[[0,5],[5,0]]".
func ParseMatrix(s string) (Matrix, error) {
	rows, err := parseRows(s, ShapeMatrix)
	if err != nil {
		return nil, err
	}

	m := make(Matrix, 0, len(rows))
	for i, row := range rows {
		vals := ParseArray("[" + row + "]")
		if i > 0 && len(vals) != len(m[0]) {
			return nil, errors.Malformed(ShapeMatrix, "row %d has %d columns, row 0 has %d", i, len(vals), len(m[0]))
		}
		m = append(m, []int(vals))
	}
	if len(m) > 0 && len(m[0]) != len(m) {
		return nil, errors.Malformed(ShapeMatrix, "%d rows of %d columns is not square", len(m), len(m[0]))
	}
	return m, nil
}

// ParseNodeList decodes an in-order node list such as "[1:0:0,3:1:-1]".
func ParseNodeList(s string) (NodeList, error) {
	out := NodeList{}
	for i, tok := range splitTopLevel(unwrap(s)) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		fields := strings.Split(tok, ":")
		if len(fields) != 3 {
			return nil, errors.Malformed(ShapeNodeList, "element %d %q has %d fields, want value:height:balance", i, tok, len(fields))
		}
		var vals [3]int
		for j, f := range fields {
			n, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return nil, errors.Malformed(ShapeNodeList, "element %d %q: field %d is not an integer", i, tok, j)
			}
			vals[j] = n
		}
		out = append(out, NodeEntry{Value: vals[0], Height: vals[1], Balance: vals[2]})
	}
	return out, nil
}

// ParseBuckets decodes a bucket list such as "[[12:1,2:7],[],[3:3]]".
// Tokens inside a bucket are trimmed and kept as-is.
func ParseBuckets(s string) (Buckets, error) {
	rows, err := parseRows(s, ShapeBuckets)
	if err != nil {
		return nil, err
	}

	out := make(Buckets, 0, len(rows))
	for _, row := range rows {
		bucket := Bucket{}
		for _, tok := range strings.Split(row, ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				bucket = append(bucket, tok)
			}
		}
		out = append(out, bucket)
	}
	return out, nil
}

// ParseEdges decodes a spanning tree result such as "[0-1:4,1-2:2]".
func ParseEdges(s string) ([]Edge, error) {
	out := []Edge{}
	for _, tok := range splitTopLevel(unwrap(s)) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		e, ok := parseEdge(tok)
		if !ok {
			return nil, errors.Malformed(ShapeEdges, "token %q is not u-v:weight", tok)
		}
		out = append(out, e)
	}
	return out, nil
}

func parseEdge(tok string) (Edge, bool) {
	nodes, weight, ok := strings.Cut(tok, ":")
	if !ok {
		return Edge{}, false
	}
	from, to, ok := strings.Cut(nodes, "-")
	if !ok {
		return Edge{}, false
	}
	u, errU := strconv.Atoi(strings.TrimSpace(from))
	v, errV := strconv.Atoi(strings.TrimSpace(to))
	w, errW := strconv.Atoi(strings.TrimSpace(weight))
	if errU != nil || errV != nil || errW != nil {
		return Edge{}, false
	}
	return Edge{U: u, V: v, Weight: w}, true
}

// parseRows splits a list of bracketed rows and returns each row's interior.
func parseRows(s, shape string) ([]string, error) {
	inner := unwrap(s)
	if strings.TrimSpace(inner) == "" {
		return nil, nil
	}
	if depth(inner) != 0 {
		return nil, errors.Malformed(shape, "unbalanced brackets")
	}

	var rows []string
	for i, tok := range splitTopLevel(inner) {
		tok = strings.TrimSpace(tok)
		if !strings.HasPrefix(tok, "[") || !strings.HasSuffix(tok, "]") {
			return nil, errors.Malformed(shape, "row %d %q is not bracketed", i, tok)
		}
		rows = append(rows, tok[1:len(tok)-1])
	}
	return rows, nil
}

// unwrap strips one leading and one trailing bracket.
func unwrap(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	return strings.TrimSuffix(s, "]")
}

// splitTopLevel splits s on commas that are not nested inside brackets.
func splitTopLevel(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var parts []string
	level, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			level++
		case ']':
			level--
		case ',':
			if level == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

func depth(s string) int {
	level := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			level++
		case ']':
			level--
			if level < 0 {
				return level
			}
		}
	}
	return level
}
