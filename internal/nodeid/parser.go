package nodeid

import (
	"fmt"
	"regexp"
	"strconv"
)

// nodeRegex matches the ordinary node form, e.g. `node(00ab12cd34ef5678)`.
var nodeRegex = regexp.MustCompile(`^node\(([0-9a-fA-F]{1,16})\)$`)

// Parse creates an ID from its canonical text form.
func Parse(raw string) (ID, error) {
	switch raw {
	case "":
		return ID{}, fmt.Errorf("identifier cannot be empty")
	case "GraphInput":
		return GraphInput, nil
	case "GraphOutput":
		return GraphOutput, nil
	}

	matches := nodeRegex.FindStringSubmatch(raw)
	if matches == nil {
		return ID{}, fmt.Errorf("invalid node identifier format: %q", raw)
	}

	hash, err := strconv.ParseUint(matches[1], 16, 64)
	if err != nil {
		// Unreachable due to regex length bound
		return ID{}, fmt.Errorf("internal error parsing node hash: %w", err)
	}
	return FromHash(hash), nil
}
