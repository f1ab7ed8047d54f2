// Package ubjpath implements a small dotted-path query language over
// a [ubj.Value] tree: "a.b[2].c" walks into Map field "a", then Map
// field "b", then Array element 2, then Map field "c".
package ubjpath

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/creachadair/mds/slice"
	"github.com/danderson/ubj"
)

type segment struct {
	key     string
	isIndex bool
	index   int
}

var parsed cache[string, []segment]

// Get walks root according to path and returns the Value found
// there. Parsed paths are cached, so repeated lookups with the same
// path string do not re-parse it.
func Get(root ubj.Value, path string) (ubj.Value, error) {
	segs, err := parsed.Get(path)
	if err != nil {
		segs, err = parsePath(path)
		if err != nil {
			return ubj.Value{}, fmt.Errorf("ubjpath: %q: %w", path, err)
		}
		parsed.Set(path, segs)
	}

	cur := root
	for _, s := range segs {
		if s.isIndex {
			e, ok := cur.Elem(s.index)
			if !ok {
				return ubj.Value{}, fmt.Errorf("ubjpath: %q: element %d: not found or not an array", path, s.index)
			}
			cur = e
		} else {
			e, ok := cur.Lookup(s.key)
			if !ok {
				return ubj.Value{}, fmt.Errorf("ubjpath: %q: key %q: not found or not a map", path, s.key)
			}
			cur = e
		}
	}
	return cur, nil
}

// parsePath splits a path like "a.b[2].c" into segments. A bare
// identifier is a map-key segment; "[N]" is an array-index segment.
// Identifiers may be immediately followed by one or more "[N]"
// suffixes, e.g. "a[0][1]".
func parsePath(path string) ([]segment, error) {
	if path == "" {
		return nil, nil
	}
	parts := strings.Split(path, ".")
	nonEmpty := slices.Collect(slice.Select(parts, func(s string) bool { return s != "" }))
	if len(nonEmpty) != len(parts) {
		return nil, fmt.Errorf("empty path component in %q", path)
	}

	var segs []segment
	for _, part := range parts {
		key, indices, err := splitIndices(part)
		if err != nil {
			return nil, err
		}
		if key != "" {
			segs = append(segs, segment{key: key})
		}
		for _, idx := range indices {
			segs = append(segs, segment{isIndex: true, index: idx})
		}
	}
	return segs, nil
}

// splitIndices splits "name[1][2]" into ("name", [1, 2]). A leading
// "[N]" with no name (e.g. "[1]") yields an empty key.
func splitIndices(part string) (key string, indices []int, err error) {
	br := strings.IndexByte(part, '[')
	if br < 0 {
		return part, nil, nil
	}
	key = part[:br]
	rest := part[br:]
	for len(rest) > 0 {
		if rest[0] != '[' {
			return "", nil, fmt.Errorf("malformed index in %q", part)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return "", nil, fmt.Errorf("unterminated index in %q", part)
		}
		n, err := strconv.Atoi(rest[1:end])
		if err != nil {
			return "", nil, fmt.Errorf("bad index in %q: %w", part, err)
		}
		indices = append(indices, n)
		rest = rest[end+1:]
	}
	return key, indices, nil
}
