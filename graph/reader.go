package graph

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Read parses a ".cedge" edge list and returns the graph together with the
// original vertex ids: ids[k] is the file id of dense vertex k.
func Read(r io.Reader, directed bool) (*Graph, []int, error) {
	type rawEdge struct {
		from, to int
		weight   float64
	}

	var (
		raw  []rawEdge
		seen = make(map[int]struct{})
		line int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 4 {
			return nil, nil, fmt.Errorf("line %d: want 4 columns, got %d: %w", line, len(fields), ErrParse)
		}
		from, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: from %q: %w", line, fields[1], ErrParse)
		}
		to, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: to %q: %w", line, fields[2], ErrParse)
		}
		w, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: weight %q: %w", line, fields[3], ErrParse)
		}
		raw = append(raw, rawEdge{from: from, to: to, weight: w})
		seen[from] = struct{}{}
		seen[to] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("read edge list: %w", err)
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	dense := make(map[int]int, len(ids))
	for k, id := range ids {
		dense[id] = k
	}

	edges := make([]Edge, len(raw))
	for k, e := range raw {
		edges[k] = Edge{From: dense[e.from], To: dense[e.to], Weight: e.weight}
	}
	g, err := New(len(ids), directed, edges)
	if err != nil {
		return nil, nil, err
	}

	return g, ids, nil
}
