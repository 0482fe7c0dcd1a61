package handlers

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// parsePageParam parses a 1-based page number. Missing, malformed, and
// non-positive values become 1. Positive values too large for an int become
// math.MaxInt, which pagination clamps to the last page.
func parsePageParam(param string) int {
	param = strings.TrimSpace(param)
	page, err := strconv.Atoi(param)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(param, "-") {
		return math.MaxInt
	}
	if err != nil || page < 1 {
		return 1
	}
	return page
}
