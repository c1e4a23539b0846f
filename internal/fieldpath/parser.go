// internal/fieldpath/parser.go
package fieldpath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// segmentRegex parses a single dotted segment, e.g. `name`, `name[1]` or `name[1][2]`.
var (
	segmentRegex = regexp.MustCompile(`^([a-zA-Z0-9_-]*)((?:\[\d+\])*)$`)
	indexRegex   = regexp.MustCompile(`\[(\d+)\]`)
)

// Parse creates a Path from its canonical string representation.
func Parse(raw string) (Path, error) {
	if raw == "" {
		return nil, fmt.Errorf("field path cannot be empty")
	}

	var p Path
	for i, segmentStr := range strings.Split(raw, ".") {
		matches := segmentRegex.FindStringSubmatch(segmentStr)
		if matches == nil {
			return nil, fmt.Errorf("invalid path segment format: %q", segmentStr)
		}

		name := matches[1]
		if name == "" && (i > 0 || matches[2] == "") {
			return nil, fmt.Errorf("field path contains empty segment")
		}
		if name != "" {
			p = append(p, NewSegment(name))
		}

		for _, idx := range indexRegex.FindAllStringSubmatch(matches[2], -1) {
			n, err := strconv.Atoi(idx[1])
			if err != nil {
				return nil, fmt.Errorf("invalid index in segment %q: %w", segmentStr, err)
			}
			p = p.Index(n)
		}
	}

	return p, nil
}
